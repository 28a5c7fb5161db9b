package meshing

import (
	"voxelforge/internal/profiling"
	"voxelforge/internal/world"
)

// VertexStride is the number of float32s per emitted vertex:
// position (3), normal (3), uv (2), ambient occlusion (1), light (1).
// Unlike the teacher's packed-uint32 greedy-mesh format (built for a much
// larger per-chunk vertex budget), a per-vertex-AO cube/plant mesher needs
// its shading terms explicit, matching the extra vertex attributes
// gen_cube/gen_plant append in _examples/original_source/src/main.c.
const VertexStride = 10

// sample reads the block id at a coordinate local to the work item's
// center chunk, where lx/lz may range one cell beyond [0, ChunkSize) into
// a neighboring chunk. Missing neighbor snapshots (chunk not yet
// generated) read as air.
func sample(item *WorkItem, lx, ly, lz int) world.BlockType {
	if ly < 0 || ly >= world.WorldY {
		return world.BlockTypeAir
	}
	dx, sx := sector(lx)
	dz, sz := sector(lz)
	bm := item.Blocks[dz+1][dx+1]
	if bm == nil {
		return world.BlockTypeAir
	}
	return world.BlockType(bm.Get(sx, ly, sz)) &^ 0x80
}

func sampleLight(item *WorkItem, lx, ly, lz int) uint8 {
	if ly < 0 || ly >= world.WorldY {
		return 0
	}
	dx, sx := sector(lx)
	dz, sz := sector(lz)
	lm := item.Lights[dz+1][dx+1]
	if lm == nil {
		return 0
	}
	return lm.Get(sx, ly, sz)
}

func setLight(item *WorkItem, lx, ly, lz int, w uint8) {
	if ly < 0 || ly >= world.WorldY {
		return
	}
	dx, sx := sector(lx)
	dz, sz := sector(lz)
	lm := item.Lights[dz+1][dx+1]
	if lm == nil {
		return
	}
	lm.Set(sx, ly, sz, w)
}

func sector(l int) (sectorIdx, local int) {
	if l < 0 {
		return -1, l + world.ChunkSize
	}
	if l >= world.ChunkSize {
		return 1, l - world.ChunkSize
	}
	return 0, l
}

func isOpaque(item *WorkItem, lx, ly, lz int) bool {
	return world.IsOpaque(sample(item, lx, ly, lz))
}

// lightFill propagates a light value outward from a source with strictly
// decreasing intensity, bounded to the full padded 3x3 neighborhood window
// the WorkItem carries (one chunk width past the center chunk's own extent
// on every side of x/z, addressable via sector()) and to the full world
// height in y. Ported from light_fill in _examples/original_source/src/main.c:
// early-out once a cell already holds at least w, recurse into all 6
// neighbors at w-1 after writing, never cross into an opaque cell unless
// this is the forced source cell. The window bound is not "one cell past
// the edge" — a max-intensity-15 source must be able to flood its full
// remaining Manhattan distance into a neighbor chunk, not just the single
// seam cell.
func lightFill(item *WorkItem, lx, ly, lz int, w uint8, force bool) {
	if lx < -world.ChunkSize || lx >= 2*world.ChunkSize || lz < -world.ChunkSize || lz >= 2*world.ChunkSize {
		return
	}
	if ly < 0 || ly >= world.WorldY {
		return
	}
	if !force && isOpaque(item, lx, ly, lz) {
		return
	}
	if sampleLight(item, lx, ly, lz) >= w {
		return
	}
	setLight(item, lx, ly, lz, w)
	if w <= 1 {
		return
	}
	lightFill(item, lx-1, ly, lz, w-1, false)
	lightFill(item, lx+1, ly, lz, w-1, false)
	lightFill(item, lx, ly-1, lz, w-1, false)
	lightFill(item, lx, ly+1, lz, w-1, false)
	lightFill(item, lx, ly, lz-1, w-1, false)
	lightFill(item, lx, ly, lz+1, w-1, false)
}

// seedLights runs lightFill from every light-emitting block owned by the
// center chunk (Step B of the mesh build).
func seedLights(item *WorkItem) {
	bm := item.Blocks[1][1]
	if bm == nil {
		return
	}
	bm.ForEach(func(x, y, z int, w uint8) {
		if emission := world.LightEmission(world.BlockType(w &^ 0x80)); emission > 0 {
			lightFill(item, x, y, z, emission, true)
		}
	})
}

// BuildMesh runs the full MeshBuilder pipeline (Steps A-D) over a WorkItem
// and returns the packed vertex buffer for the center chunk.
func BuildMesh(item *WorkItem) []float32 {
	defer profiling.Track("meshing.BuildMesh")()

	seedLights(item)

	bm := item.Blocks[1][1]
	if bm == nil {
		return nil
	}

	var verts []float32
	bm.ForEach(func(x, y, z int, raw uint8) {
		b := world.BlockType(raw &^ 0x80)
		if b == world.BlockTypeAir {
			return
		}
		if world.IsPlant(b) {
			emitPlant(item, &verts, x, y, z, b)
			return
		}
		for _, face := range cubeFaces {
			nx, ny, nz := x+face.normal[0], y+face.normal[1], z+face.normal[2]
			if isOpaque(item, nx, ny, nz) {
				continue
			}
			emitFace(item, &verts, x, y, z, b, face)
		}
	})
	return verts
}
