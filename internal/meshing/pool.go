package meshing

import (
	"sync"

	"voxelforge/internal/profiling"
	"voxelforge/internal/world"
)

// WorkerState is the lifecycle of a single worker slot.
type WorkerState int

const (
	WorkerIdle WorkerState = iota
	WorkerBusy
	WorkerDone
)

// WorkItem is the self-contained unit of work handed to a worker: either a
// terrain-generation request (Load == true) or a remesh request for an
// already-generated chunk. Every map a worker touches is a deep copy taken
// before dispatch, so the worker never reads or writes chunk state shared
// with the main thread — it operates purely on the 3x3 neighborhood
// snapshot centered on (P, Q), indexed [dz+1][dx+1].
type WorkItem struct {
	P, Q int
	Load bool

	Blocks [3][3]*world.BlockMap
	Lights [3][3]*world.BlockMap

	// Outputs, written only by the worker that owns this item and read
	// only by the main thread during harvest.
	Vertices []float32
	Version  uint64

	// highest memoizes the topmost opaque y per (x, z) column of the padded
	// window, built lazily during meshing (§4.4 step A) and consulted by
	// the AO kernel's shade term. Scratch only; never read outside a single
	// BuildMesh call.
	highest map[[2]int]int
}

type worker struct {
	mu    sync.Mutex
	cond  *sync.Cond
	state WorkerState
	item  *WorkItem
	index int
}

// WorkerPool runs a fixed number of workers, each holding at most one
// WorkItem at a time behind a mutex+condvar. Scheduling (deciding which
// chunk a worker should build next) and harvesting (consuming a finished
// WorkItem) both happen on the main thread; see WorldController. Workers
// never touch GPU state or shared chunk storage directly.
type WorkerPool struct {
	workers []*worker
	gen     world.TerrainGenerator
}

// NewWorkerPool starts n fixed workers backed by the given terrain
// generator (used only for Load jobs).
func NewWorkerPool(n int, gen world.TerrainGenerator) *WorkerPool {
	if n < 1 {
		n = 1
	}
	p := &WorkerPool{gen: gen}
	for i := 0; i < n; i++ {
		w := &worker{state: WorkerIdle, index: i}
		w.cond = sync.NewCond(&w.mu)
		p.workers = append(p.workers, w)
		go p.run(w)
	}
	return p
}

// NumWorkers reports the fixed worker count (used for affinity hashing).
func (p *WorkerPool) NumWorkers() int {
	return len(p.workers)
}

// AffinityIndex returns the worker index a chunk at (p, q) is permanently
// bound to: (|p| XOR |q|) mod N. Every chunk is always scheduled on the
// same worker, so a worker's queue never needs cross-worker coordination.
func AffinityIndex(p, q, n int) int {
	return (abs(p) ^ abs(q)) % n
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func (p *WorkerPool) run(w *worker) {
	for {
		w.mu.Lock()
		for w.state != WorkerBusy {
			w.cond.Wait()
		}
		item := w.item
		w.mu.Unlock()

		if item.Load {
			p.runTerrainJob(item)
		}
		p.runMeshJob(item)

		w.mu.Lock()
		w.state = WorkerDone
		w.cond.Broadcast()
		w.mu.Unlock()
	}
}

func (p *WorkerPool) runTerrainJob(item *WorkItem) {
	defer profiling.Track("meshing.WorkerPool.terrain")()
	c := world.NewChunk(item.P, item.Q)
	p.gen.PopulateChunk(c)
	item.Blocks[1][1] = c.Blocks()
	item.Lights[1][1] = c.Lights()
}

func (p *WorkerPool) runMeshJob(item *WorkItem) {
	defer profiling.Track("meshing.WorkerPool.mesh")()
	item.Vertices = BuildMesh(item)
}

// TryDispatch hands item to worker i if that worker is idle. Returns false
// (without blocking) if the worker is still busy with a prior item.
func (p *WorkerPool) TryDispatch(i int, item *WorkItem) bool {
	w := p.workers[i]
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.state != WorkerIdle {
		return false
	}
	w.item = item
	w.state = WorkerBusy
	w.cond.Broadcast()
	return true
}

// IsIdle reports whether worker i is available for a new item.
func (p *WorkerPool) IsIdle(i int) bool {
	w := p.workers[i]
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state == WorkerIdle
}

// Harvest collects every worker currently in the Done state, resetting it
// to Idle, and returns their finished WorkItems. Called once per frame
// from the main thread.
func (p *WorkerPool) Harvest() []*WorkItem {
	var done []*WorkItem
	for _, w := range p.workers {
		w.mu.Lock()
		if w.state == WorkerDone {
			done = append(done, w.item)
			w.item = nil
			w.state = WorkerIdle
		}
		w.mu.Unlock()
	}
	return done
}

// Score ranks scheduling candidates: lower is more urgent. invisible
// chunks (outside the camera frustum) are deprioritized above all else,
// then explicit priority, then distance from the player.
func Score(invisible bool, priority, distance int) int {
	inv := 0
	if invisible {
		inv = 1
	}
	return (inv << 24) | (priority << 16) | (distance & 0xFFFF)
}
