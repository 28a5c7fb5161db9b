package blocks

import (
	"sync"

	"voxelforge/internal/meshing"
	"voxelforge/internal/world"
)

// Chunk meshes cache per chunk
var chunkMeshes map[world.ChunkCoord]*chunkMesh

// Per-column (XZ) combined meshes to reduce draw/cull granularity
var columnMeshes map[[2]int]*columnMesh

// Global mesh worker pool
var meshPool *meshing.WorkerPool

// pendingMesh tracks which chunk coordinates currently have a job in
// flight, so ensureChunkMesh doesn't dispatch the same coordinate twice
// while a worker is still busy with it.
var pendingMesh map[world.ChunkCoord]bool
var pendingMeshMutex sync.Mutex

// InitMeshSystem initializes the mesh worker pool and data structures. w
// supplies the TerrainGenerator load jobs run against.
func InitMeshSystem(workers int, w *world.World) {
	meshPool = meshing.NewWorkerPool(workers, w.Gen)
	chunkMeshes = make(map[world.ChunkCoord]*chunkMesh)
	columnMeshes = make(map[[2]int]*columnMesh)
	pendingMesh = make(map[world.ChunkCoord]bool)
}

// ShutdownMeshSystem releases the mesh system's GPU-side resources. The
// worker pool itself has no graceful stop (workers run until process
// exit, per §5); only the atlas GPU state needs tearing down here.
func ShutdownMeshSystem() {
	CleanupAtlas()
}

// ProcessMeshResults harvests every worker job that finished since the
// last frame and applies it to the cached CPU mesh buffers. Should be
// called regularly from the main render thread.
func ProcessMeshResults(w *world.World) {
	if meshPool == nil {
		return
	}
	for _, item := range meshPool.Harvest() {
		meshing.ApplyHarvested(w.Index, item)
		applyMeshResult(item)
	}
}

// applyMeshResult refreshes the GPU-facing CPU vertex cache for one
// finished WorkItem's chunk.
func applyMeshResult(item *meshing.WorkItem) {
	coord := world.ChunkCoord{P: item.P, Q: item.Q}

	pendingMeshMutex.Lock()
	delete(pendingMesh, coord)
	pendingMeshMutex.Unlock()

	existing := chunkMeshes[coord]
	if existing == nil {
		existing = &chunkMesh{
			firstFloat:  -1,
			firstVertex: -1,
		}
	}

	verts := item.Vertices
	if len(verts) > 0 {
		existing.vertexCount = int32(len(verts) / meshing.VertexStride)
		existing.cpuVerts = verts

		key := [2]int{coord.P, coord.Q}
		if col := columnMeshes[key]; col != nil {
			col.dirty = true
		}
	} else {
		existing.vertexCount = 0
		existing.cpuVerts = nil
	}
	chunkMeshes[coord] = existing
}

// scoreChunk computes the §4.6 Score for a candidate chunk (lower goes
// first): being invisible (outside the camera frustum) dominates the score,
// then priority (a chunk that already has a mesh gets priority 1, so it is
// remeshed after chunks that have none yet), then distance from the
// player's chunk in Chebyshev steps.
func scoreChunk(coord world.ChunkCoord, hasOldBuffer bool, pcx, pcz int, planes [6]plane) int {
	chunkSizeXf := float32(world.ChunkSize)
	chunkSizeYf := float32(world.WorldY)
	cx := float32(coord.P) * chunkSizeXf
	cz := float32(coord.Q) * chunkSizeXf
	visible := aabbIntersectsFrustumPlanesF(cx, 0, cz, cx+chunkSizeXf, chunkSizeYf, cz+chunkSizeXf, planes)

	priority := 0
	if hasOldBuffer {
		priority = 1
	}

	dp := coord.P - pcx
	dq := coord.Q - pcz
	distance := absInt(dp)
	if d := absInt(dq); d > distance {
		distance = d
	}

	return meshing.Score(!visible, priority, distance)
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// dispatchMeshJobs implements the §4.6 scheduling policy: for each idle
// worker, rank every dirty candidate chunk bound to that worker's affinity
// slot (AffinityIndex) by Score and dispatch only the single lowest-scoring
// one. A busy worker is left alone for this frame; its other candidates are
// reconsidered once it idles and wins the comparison again (or loses to a
// more urgent one that appeared meanwhile).
func dispatchMeshJobs(w *world.World, nearbyChunks []world.ChunkWithCoord, pcx, pcz int, planes [6]plane) {
	if meshPool == nil {
		return
	}
	n := meshPool.NumWorkers()
	best := make([]world.ChunkWithCoord, n)
	bestScore := make([]int, n)
	has := make([]bool, n)

	for _, cc := range nearbyChunks {
		ch := cc.Chunk
		if ch == nil || !ch.IsDirty() {
			continue
		}
		coord := cc.Coord
		workerIdx := meshing.AffinityIndex(coord.P, coord.Q, n)
		if !meshPool.IsIdle(workerIdx) {
			continue
		}
		pendingMeshMutex.Lock()
		pending := pendingMesh[coord]
		pendingMeshMutex.Unlock()
		if pending {
			continue
		}

		score := scoreChunk(coord, chunkMeshes[coord] != nil, pcx, pcz, planes)
		if !has[workerIdx] || score < bestScore[workerIdx] {
			best[workerIdx] = cc
			bestScore[workerIdx] = score
			has[workerIdx] = true
		}
	}

	for i := 0; i < n; i++ {
		if has[i] {
			ensureChunkMesh(w, best[i].Coord, best[i].Chunk)
		}
	}
}

func ensureChunkMesh(w *world.World, coord world.ChunkCoord, ch *world.Chunk) *chunkMesh {
	if ch == nil {
		return nil
	}

	existing := chunkMeshes[coord]

	// Return existing mesh if present and chunk is clean
	if existing != nil && !ch.IsDirty() {
		return existing
	}

	pendingMeshMutex.Lock()
	hasPendingJob := pendingMesh[coord]
	pendingMeshMutex.Unlock()

	// If chunk is dirty and no job is pending, dispatch a new mesh job to
	// the worker permanently bound to this coordinate (see AffinityIndex).
	if ch.IsDirty() && !hasPendingJob && meshPool != nil {
		item := meshing.BuildWorkItem(w.Index, coord.P, coord.Q, !ch.IsGenerated())
		workerIdx := meshing.AffinityIndex(coord.P, coord.Q, meshPool.NumWorkers())

		if meshPool.TryDispatch(workerIdx, item) {
			pendingMeshMutex.Lock()
			pendingMesh[coord] = true
			pendingMeshMutex.Unlock()

			// Mark chunk as clean to prevent duplicate submissions; if the
			// chunk is edited again before this job is harvested, the stale
			// mesh shows until that edit re-dirties it (see §5 ordering).
			ch.SetClean()
		}
	}

	// Return existing mesh if available, even if it's being updated
	return existing
}

// PruneMeshesByWorld removes cached meshes that are not in the world anymore or beyond a radius from center.
// Returns number of meshes freed.
func PruneMeshesByWorld(w *world.World, centerX, centerZ float32, radiusChunks int) int {
	retain := make(map[world.ChunkCoord]struct{})
	all := w.GetAllChunks()
	for _, cc := range all {
		retain[cc.Coord] = struct{}{}
	}
	cx := int(centerX) / world.ChunkSize
	cz := int(centerZ) / world.ChunkSize

	freed := 0
	for coord, m := range chunkMeshes {
		// Keep if present and within radius
		_, present := retain[coord]
		dx := coord.P - cx
		dz := coord.Q - cz
		if !present || dx*dx+dz*dz > radiusChunks*radiusChunks {
			if m != nil {
				m.cpuVerts = nil
				m.fluidVerts = nil
			}
			delete(chunkMeshes, coord)
			colKey := [2]int{coord.P, coord.Q}
			if col := columnMeshes[colKey]; col != nil {
				col.dirty = true
				col.vertexCount = 0
				col.firstFloat = -1
				col.firstVertex = -1
			}
			freed++
		}
	}

	// Also prune column meshes that are completely out of range
	for key, col := range columnMeshes {
		dx := key[0] - cx
		dz := key[1] - cz
		if dx*dx+dz*dz > radiusChunks*radiusChunks {
			// Mark as empty and reclaim space tracking
			if col.firstFloat >= 0 && col.vertexCount > 0 {
				if r := atlasRegions[col.regionKey]; r != nil {
					r.fragmentedBytes += int(col.vertexCount) * vertexStrideBytes
				}
			}

			col.vertexCount = 0
			col.firstFloat = -1
			col.firstVertex = -1
			col.dirty = true
			// Remove it from the map so it can be GC'd; the reference in
			// atlasRegion.orderedColumns drops during the next compaction.
			delete(columnMeshes, key)
		}
	}

	return freed
}
