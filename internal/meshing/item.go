package meshing

import "voxelforge/internal/world"

// BuildWorkItem deep-copies the 3x3 neighborhood of block/light maps
// centered on (p, q) out of idx into a new WorkItem. This is the snapshot
// step §4.6/§5 require: a worker never reads a chunk's own live BlockMap,
// only a copy taken on the main thread before dispatch. load marks a
// terrain-generation job; the center chunk's copied maps are then replaced
// by the ones the pool's TerrainGenerator produces.
func BuildWorkItem(idx *world.ChunkIndex, p, q int, load bool) *WorkItem {
	item := &WorkItem{P: p, Q: q, Load: load}
	for dz := -1; dz <= 1; dz++ {
		for dx := -1; dx <= 1; dx++ {
			c := idx.Find(p+dx, q+dz)
			if c == nil {
				continue
			}
			item.Blocks[dz+1][dx+1] = c.Blocks().Copy()
			item.Lights[dz+1][dx+1] = c.Lights().Copy()
		}
	}
	return item
}

// ApplyHarvested installs a completed WorkItem's output onto the chunk it
// was built for, if that chunk is still resident (it may have been
// evicted while the worker ran, per §5's ordering guarantee). Load jobs
// replace the chunk's own maps with the freshly generated ones; every job
// installs the mesh buffer the worker already built.
func ApplyHarvested(idx *world.ChunkIndex, item *WorkItem) {
	c := idx.Find(item.P, item.Q)
	if c == nil {
		return
	}
	if item.Load {
		c.ReplaceMaps(item.Blocks[1][1], item.Lights[1][1])
	}
	c.SetMesh(item.Vertices, item.Version)
}
