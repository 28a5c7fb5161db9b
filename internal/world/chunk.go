package world

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Chunk dimensions, per the engine's tunables (see EXTERNAL INTERFACES).
const (
	ChunkSize = 32
	WorldY    = 256
)

// Chunk owns the sparse block storage and light levels for one CHUNK_SIZE
// x WorldY x CHUNK_SIZE column of the world, identified by its (p, q)
// chunk coordinate. Mirrors the chunk struct in
// _examples/original_source/src/main.c, but with two BlockMaps (blocks,
// lights) instead of one combined map, since this engine keeps light
// levels independent of the placed-block id.
type Chunk struct {
	P, Q int

	blocks *BlockMap
	lights *BlockMap

	dirty     bool
	generated bool // true once a WorkerPool terrain job has populated this chunk

	// Mesh metadata, set by the last completed MeshBuilder run for this
	// chunk. Faces/vertices are consumed by the renderer; meshVersion lets
	// the worker harvest step detect a stale result (see WorkerPool).
	meshVertices []float32
	meshVersion  uint64
	gpuHandle    uint32 // VAO/VBO id, owned and mutated only on the main thread
	gpuValid     bool
}

// NewChunk creates an empty chunk at the given chunk coordinate.
func NewChunk(p, q int) *Chunk {
	return &Chunk{
		P:      p,
		Q:      q,
		blocks: NewBlockMap(),
		lights: NewBlockMap(),
		dirty:  true,
	}
}

// shadowBit marks a BlockMap entry as a mirrored copy of a neighbor
// chunk's edge block rather than a block this chunk owns. Block ids in
// this engine fit in 7 bits, so the packed BlockMap's 8-bit w field has a
// spare high bit to play the role the original engine filled by storing
// the shadow copy as a negated block id.
const shadowBit = 0x80

// GetBlock returns the block id at local coordinates (x, y, z), 0 (air) if
// out of the chunk's vertical range or unset. Shadow (mirrored seam)
// entries read back as their underlying block id, so occlusion/lighting
// checks near a chunk edge don't need to special-case them.
func (c *Chunk) GetBlock(x, y, z int) BlockType {
	if y < 0 || y >= WorldY {
		return BlockTypeAir
	}
	return BlockType(c.blocks.Get(x, y, z) &^ shadowBit)
}

// IsShadowBlock reports whether the entry at (x, y, z) is a mirrored copy
// written by a neighboring chunk's WorldController.setBlock rather than a
// block this chunk owns.
func (c *Chunk) IsShadowBlock(x, y, z int) bool {
	if y < 0 || y >= WorldY {
		return false
	}
	return c.blocks.Get(x, y, z)&shadowBit != 0
}

// SetBlock writes a block id this chunk owns at local coordinates (x, y, z).
func (c *Chunk) SetBlock(x, y, z int, blockType BlockType) {
	if y < 0 || y >= WorldY {
		return
	}
	if c.blocks.Get(x, y, z) != uint8(blockType) {
		c.blocks.Set(x, y, z, uint8(blockType))
		c.dirty = true
	}
}

// SetShadowBlock mirrors a neighbor chunk's edge block into this chunk
// without claiming ownership of it, used by WorldController.setBlock to
// propagate seam-crossing occupancy.
func (c *Chunk) SetShadowBlock(x, y, z int, blockType BlockType) {
	if y < 0 || y >= WorldY {
		return
	}
	c.blocks.Set(x, y, z, uint8(blockType)|shadowBit)
}

// GetLight returns the light level (0-15) at local coordinates.
func (c *Chunk) GetLight(x, y, z int) uint8 {
	if y < 0 || y >= WorldY {
		return 0
	}
	return c.lights.Get(x, y, z)
}

// SetLight writes a light level at local coordinates.
func (c *Chunk) SetLight(x, y, z int, level uint8) {
	if y < 0 || y >= WorldY {
		return
	}
	c.lights.Set(x, y, z, level)
}

// Blocks returns the chunk's live block BlockMap (not a copy). Callers
// that need an isolated snapshot for a worker job must call Copy().
func (c *Chunk) Blocks() *BlockMap { return c.blocks }

// Lights returns the chunk's live light BlockMap (not a copy).
func (c *Chunk) Lights() *BlockMap { return c.lights }

// ReplaceMaps installs freshly generated block/light maps, used by the
// WorkerPool harvest step after a terrain-generation job completes.
func (c *Chunk) ReplaceMaps(blocks, lights *BlockMap) {
	c.blocks = blocks
	c.lights = lights
	c.dirty = true
	c.generated = true
}

// IsGenerated reports whether terrain generation has populated this chunk.
func (c *Chunk) IsGenerated() bool {
	return c.generated
}

// IsAir checks if the block at the specified local coordinates is air.
func (c *Chunk) IsAir(x, y, z int) bool {
	return c.GetBlock(x, y, z) == BlockTypeAir
}

// HasLightSource reports whether this chunk owns at least one block that
// emits light, used by WorldController's dirty-propagation rule (a chunk's
// 3x3 neighborhood is marked dirty only when a light source exists
// somewhere in it, since that's the only way an edit can change another
// chunk's lighting).
func (c *Chunk) HasLightSource() bool {
	found := false
	c.blocks.ForEach(func(x, y, z int, w uint8) {
		if found {
			return
		}
		if LightEmission(BlockType(w&^shadowBit)) > 0 {
			found = true
		}
	})
	return found
}

// IsDirty returns whether the chunk needs a fresh mesh build.
func (c *Chunk) IsDirty() bool {
	return c.dirty
}

// MarkDirty forces a rebuild on the next scheduling pass, used by
// WorldController seam propagation.
func (c *Chunk) MarkDirty() {
	c.dirty = true
}

// SetClean marks the chunk as meshed and up to date.
func (c *Chunk) SetClean() {
	c.dirty = false
}

// SetMesh installs the vertex buffer produced by a completed MeshBuilder
// job. Must only be called from the main thread during worker harvest.
func (c *Chunk) SetMesh(vertices []float32, version uint64) {
	c.meshVertices = vertices
	c.meshVersion = version
}

// Mesh returns the most recently installed vertex buffer.
func (c *Chunk) Mesh() ([]float32, uint64) {
	return c.meshVertices, c.meshVersion
}

// BlockCount reports how many non-air blocks the chunk holds.
func (c *Chunk) BlockCount() int {
	return c.blocks.Len()
}

// GetActiveBlocks returns the world-space positions of every non-air block
// in this chunk, used by legacy debug rendering paths.
func (c *Chunk) GetActiveBlocks() []mgl32.Vec3 {
	var positions []mgl32.Vec3
	offsetX := c.P * ChunkSize
	offsetZ := c.Q * ChunkSize
	c.blocks.ForEach(func(x, y, z int, w uint8) {
		positions = append(positions, mgl32.Vec3{
			float32(offsetX + x),
			float32(y),
			float32(offsetZ + z),
		})
	})
	return positions
}
