package world

import (
	"voxelforge/internal/profiling"
)

// WorldController owns chunk lifecycle around a moving player position:
// creating chunks within CreateRadius, evicting chunks beyond DeleteRadius,
// and propagating block edits across chunk seams. Grounded in the
// ensure/dirty/delete flow of _examples/original_source/src/main.c's main
// loop, reworked into an explicit type the way the teacher structures its
// ChunkStore/ChunkStreamer pair.
type WorldController struct {
	Index *ChunkIndex
}

// NewWorldController wraps a ChunkIndex with edit/lifecycle operations.
func NewWorldController(index *ChunkIndex) *WorldController {
	return &WorldController{Index: index}
}

// chunkOf converts a world block coordinate to its owning chunk coordinate.
func chunkOf(x, z int) (p, q int) {
	return floorDiv(x, ChunkSize), floorDiv(z, ChunkSize)
}

func localOf(x, z, p, q int) (lx, lz int) {
	return x - p*ChunkSize, z - q*ChunkSize
}

// SetBlock writes a block at world coordinates (x, y, z), creating the
// owning chunk if needed, mirroring a shadow copy into any neighbor chunk
// whose seam the edit falls within one block of, and marking every
// affected chunk dirty. Matches set_block / dirty_chunk in the original
// engine's main loop.
func (wc *WorldController) SetBlock(x, y, z int, b BlockType) {
	defer profiling.Track("world.WorldController.SetBlock")()
	p, q := chunkOf(x, z)
	owner := wc.Index.FindOrCreate(p, q)
	if owner == nil {
		return
	}
	lx, lz := localOf(x, z, p, q)
	owner.SetBlock(lx, y, lz, b)

	if b == BlockTypeAir {
		owner.SetLight(lx, y, lz, 0)
		if above := owner.GetBlock(lx, y+1, lz); IsPlant(above) {
			owner.SetBlock(lx, y+1, lz, BlockTypeAir)
			wc.propagateSeam(p, q, lx, y+1, lz, BlockTypeAir)
		}
	}

	wc.propagateSeam(p, q, lx, y, lz, b)
	wc.markDirtyIfLit(p, q)
}

// propagateSeam mirrors an edit near a chunk boundary into the 1-3
// neighboring chunks whose own edge cell it touches, as a shadow (not
// owned) block, and marks those neighbors dirty so their next mesh build
// sees the edit without needing their own owner chunk dereferenced.
func (wc *WorldController) propagateSeam(p, q, lx, y, lz int, b BlockType) {
	type delta struct{ dp, dq, nlx, nlz int }
	var neighbors []delta
	if lx == 0 {
		neighbors = append(neighbors, delta{-1, 0, ChunkSize, lz})
	} else if lx == ChunkSize-1 {
		neighbors = append(neighbors, delta{1, 0, -1, lz})
	}
	if lz == 0 {
		neighbors = append(neighbors, delta{0, -1, lx, ChunkSize})
	} else if lz == ChunkSize-1 {
		neighbors = append(neighbors, delta{0, 1, lx, -1})
	}
	if len(neighbors) == 2 {
		neighbors = append(neighbors, delta{neighbors[0].dp, neighbors[1].dq, neighbors[0].nlx, neighbors[1].nlz})
	}

	for _, d := range neighbors {
		nb := wc.Index.Find(p+d.dp, q+d.dq)
		if nb == nil {
			continue
		}
		nb.SetShadowBlock(d.nlx, y, d.nlz, b)
		nb.MarkDirty()
	}
}

// markDirtyIfLit marks the 3x3 neighborhood around (p, q) dirty when any
// chunk in that neighborhood contains a light source, since only then
// could the edit have changed a neighbor's lighting. Matches has_lights /
// dirty_chunk's neighborhood rule.
func (wc *WorldController) markDirtyIfLit(p, q int) {
	lit := false
	for dp := -1; dp <= 1; dp++ {
		for dq := -1; dq <= 1; dq++ {
			if c := wc.Index.Find(p+dp, q+dq); c != nil && c.HasLightSource() {
				lit = true
			}
		}
	}
	if !lit {
		return
	}
	for dp := -1; dp <= 1; dp++ {
		for dq := -1; dq <= 1; dq++ {
			if c := wc.Index.Find(p+dp, q+dq); c != nil {
				c.MarkDirty()
			}
		}
	}
}

// GetBlock reads a block at world coordinates, returning air for any
// chunk that is not resident.
func (wc *WorldController) GetBlock(x, y, z int) BlockType {
	p, q := chunkOf(x, z)
	c := wc.Index.Find(p, q)
	if c == nil {
		return BlockTypeAir
	}
	lx, lz := localOf(x, z, p, q)
	return c.GetBlock(lx, y, lz)
}

// EnsureChunks creates every (possibly-empty) chunk within createRadius of
// (cp, cq), returning the ones that still need terrain generated.
func (wc *WorldController) EnsureChunks(cp, cq, createRadius int) []*Chunk {
	var needsGen []*Chunk
	for dp := -createRadius; dp <= createRadius; dp++ {
		for dq := -createRadius; dq <= createRadius; dq++ {
			if chebyshev(dp, dq) > createRadius {
				continue
			}
			c := wc.Index.FindOrCreate(cp+dp, cq+dq)
			if c != nil && c.BlockCount() == 0 && !c.generated {
				needsGen = append(needsGen, c)
			}
		}
	}
	return needsGen
}

// DeleteChunks evicts every chunk beyond deleteRadius of (cp, cq).
func (wc *WorldController) DeleteChunks(cp, cq, deleteRadius int) int {
	return wc.Index.EvictBeyond(cp, cq, deleteRadius)
}
