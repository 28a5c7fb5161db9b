package world

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Ticker interface for updating entities (avoids circular dependency with entity package)
type Ticker interface {
	Update(dt float64)
	IsDead() bool
	SetDead()
	Position() mgl32.Vec3
}

// ItemEntityConfigurator is called when adding ItemEntity to configure it with world services
// This avoids import cycles by using a function reference set from the entity package
var ItemEntityConfigurator func(item Ticker, world interface{})

// World composes the resident chunk set, the terrain generator, entity
// bookkeeping, and the edit/lifecycle controller into the single facade
// the rest of the engine talks to.
type World struct {
	Index      *ChunkIndex
	Controller *WorldController
	Gen        TerrainGenerator
	entities   *EntityManager
}

// New creates a new world with a deterministic terrain generator.
func New() *World {
	index := NewChunkIndex()
	return &World{
		Index:      index,
		Controller: NewWorldController(index),
		Gen:        NewGenerator(1337),
		entities:   NewEntityManager(),
	}
}

// NewEmpty creates an empty world (kept for call sites that just need a
// scratch world, e.g. tests and benchmarks).
func NewEmpty() *World {
	return New()
}

// Close is a no-op now that generation runs through the explicit
// WorkerPool rather than background streamer goroutines; kept so existing
// call sites don't need to change.
func (w *World) Close() {}

// AddEntity adds an entity to the world
func (w *World) AddEntity(e Ticker) {
	if ItemEntityConfigurator != nil {
		ItemEntityConfigurator(e, w)
	}
	w.entities.Add(e)
}

// UpdateEntities updates all entities and removes dead ones
func (w *World) UpdateEntities(dt float64) {
	w.entities.Update(dt)
}

// GetEntities returns a safe copy of the current entities in the world
func (w *World) GetEntities() []Ticker {
	return w.entities.GetAll()
}

// GetNearbyEntities returns entities within a box centered at (cx, cy, cz) with ranges (rx, ry, rz).
func (w *World) GetNearbyEntities(cx, cy, cz, rx, ry, rz float32) []Ticker {
	minX, maxX := cx-rx, cx+rx
	minY, maxY := cy-ry, cy+ry
	minZ, maxZ := cz-rz, cz+rz

	var result []Ticker
	for _, e := range w.entities.GetAll() {
		pos := e.Position()
		if pos.X() >= minX && pos.X() <= maxX &&
			pos.Y() >= minY && pos.Y() <= maxY &&
			pos.Z() >= minZ && pos.Z() <= maxZ {
			result = append(result, e)
		}
	}
	return result
}

// GetChunk returns the chunk at the given chunk coordinate (p, q).
func (w *World) GetChunk(p, q int, create bool) *Chunk {
	if create {
		return w.Index.FindOrCreate(p, q)
	}
	return w.Index.Find(p, q)
}

// GetChunkFromBlockCoords returns the chunk owning the block at world (x, y, z).
func (w *World) GetChunkFromBlockCoords(x, y, z int, create bool) *Chunk {
	p, q := chunkOf(x, z)
	return w.GetChunk(p, q, create)
}

// Get returns the block type at the specified world coordinates
func (w *World) Get(x, y, z int) BlockType {
	return w.Controller.GetBlock(x, y, z)
}

// IsAir checks if the block at the specified world coordinates is air
func (w *World) IsAir(x, y, z int) bool {
	return w.Get(x, y, z) == BlockTypeAir
}

// Set sets the block type at the specified world coordinates
func (w *World) Set(x, y, z int, val BlockType) {
	w.Controller.SetBlock(x, y, z, val)
}

// GetActiveBlocks returns a list of positions of all non-air blocks in the world
func (w *World) GetActiveBlocks() []mgl32.Vec3 {
	var positions []mgl32.Vec3
	for _, cw := range w.Index.Snapshot() {
		positions = append(positions, cw.Chunk.GetActiveBlocks()...)
	}
	return positions
}

// GetAllChunks returns every resident chunk paired with its coordinate
func (w *World) GetAllChunks() []ChunkWithCoord {
	return w.Index.Snapshot()
}

// StreamChunksAroundSync synchronously ensures chunks and generates any
// missing terrain around a world position (x, z) within radius (in
// chunks). Kept as a convenience for callers that don't drive the
// WorkerPool directly (tests, tooling).
func (w *World) StreamChunksAroundSync(x, z float32, radius int) {
	cp, cq := chunkOf(int(x), int(z))
	for _, c := range w.Controller.EnsureChunks(cp, cq, radius) {
		w.Gen.PopulateChunk(c)
	}
}

// StreamChunksAroundAsync ensures chunk skeletons exist within radius (in
// chunks) of world position (x, z) without generating their terrain
// synchronously. A freshly created chunk is dirty and ungenerated; the
// mesh worker pool picks it up as a Load job the next time it comes into
// render range (see internal/graphics/renderables/blocks.ensureChunkMesh),
// so terrain generation and meshing both happen off the main thread.
func (w *World) StreamChunksAroundAsync(x, z float32, radius int) {
	cp, cq := chunkOf(int(x), int(z))
	w.Controller.EnsureChunks(cp, cq, radius)
}

// EvictFarChunks removes chunks outside the given radius (in chunks) from the center (world x,z).
func (w *World) EvictFarChunks(x, z float32, radius int) int {
	cp, cq := chunkOf(int(x), int(z))
	return w.Controller.DeleteChunks(cp, cq, radius)
}

// SurfaceHeightAt exposes the terrain surface height used for generation at world (x,z).
func (w *World) SurfaceHeightAt(x, z int) int {
	return w.Gen.HeightAt(x, z)
}

// AppendChunksInRadiusXZ appends all loaded chunks within a radius
func (w *World) AppendChunksInRadiusXZ(cx, cz, radius int, dst []ChunkWithCoord) []ChunkWithCoord {
	return w.Index.WithinRadius(cx, cz, radius, dst)
}

// GetModCount returns the current modification count of the chunk index
func (w *World) GetModCount() uint64 {
	return w.Index.ModCount()
}

// floorDiv performs integer division that rounds down for negative numbers
func floorDiv(a, b int) int {
	if a < 0 {
		return (a - b + 1) / b
	}
	return a / b
}

// mod returns the remainder of a/b, always positive
func mod(a, b int) int {
	result := a % b
	if result < 0 {
		result += b
	}
	return result
}
