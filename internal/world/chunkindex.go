package world

import (
	"sync"

	"voxelforge/internal/profiling"
)

// MaxChunks bounds how many chunks can be resident at once. The index is a
// flat array, mirroring the fixed "chunks[MAX_CHUNKS]" array of
// _examples/original_source/src/main.c: radius queries and eviction scan
// it linearly, Find goes through a coord-to-slot map, and eviction is a
// trivial swap-remove.
const MaxChunks = 8192

// ChunkCoord identifies a chunk by its (p, q) position, i.e. block
// coordinates (p*ChunkSize, q*ChunkSize) at the chunk's near corner.
type ChunkCoord struct {
	P, Q int
}

// ChunkWithCoord pairs a chunk with its coordinate, used by callers that
// iterate the index without re-deriving P/Q from the chunk itself.
type ChunkWithCoord struct {
	Chunk *Chunk
	Coord ChunkCoord
}

// ChunkIndex owns every resident chunk in a fixed-capacity flat array. Find
// looks the slot up in a coord-to-slot map; Evict uses swap-remove against
// the last live slot.
// Concurrency: the worker pool only ever reads chunk contents through
// snapshotted WorkItem copies (see BuildWorkItem), so the index itself is
// only ever mutated from the main thread and the RWMutex exists to let
// renderer/debug goroutines read consistently without that assumption
// becoming load-bearing.
type ChunkIndex struct {
	mu       sync.RWMutex
	chunks   [MaxChunks]*Chunk
	count    int
	byCoord  map[ChunkCoord]int // coord -> slot, kept in sync with chunks[]
	modCount uint64
}

func NewChunkIndex() *ChunkIndex {
	return &ChunkIndex{
		byCoord: make(map[ChunkCoord]int, MaxChunks),
	}
}

// Find returns the chunk at (p, q), or nil if not resident.
func (ci *ChunkIndex) Find(p, q int) *Chunk {
	ci.mu.RLock()
	defer ci.mu.RUnlock()
	if slot, ok := ci.byCoord[ChunkCoord{P: p, Q: q}]; ok {
		return ci.chunks[slot]
	}
	return nil
}

// FindOrCreate returns the chunk at (p, q), allocating an empty one (not
// yet populated by TerrainGen) if none is resident. Returns nil if the
// index is at capacity and (p, q) is not already present.
func (ci *ChunkIndex) FindOrCreate(p, q int) *Chunk {
	ci.mu.Lock()
	defer ci.mu.Unlock()
	coord := ChunkCoord{P: p, Q: q}
	if slot, ok := ci.byCoord[coord]; ok {
		return ci.chunks[slot]
	}
	if ci.count >= MaxChunks {
		return nil
	}
	c := NewChunk(p, q)
	ci.chunks[ci.count] = c
	ci.byCoord[coord] = ci.count
	ci.count++
	ci.modCount++
	return c
}

// Insert installs an already-populated chunk (used by the worker harvest
// step for terrain-generation results). Returns false if the index is full
// or the slot is already taken.
func (ci *ChunkIndex) Insert(c *Chunk) bool {
	ci.mu.Lock()
	defer ci.mu.Unlock()
	coord := ChunkCoord{P: c.P, Q: c.Q}
	if _, ok := ci.byCoord[coord]; ok {
		return false
	}
	if ci.count >= MaxChunks {
		return false
	}
	ci.chunks[ci.count] = c
	ci.byCoord[coord] = ci.count
	ci.count++
	ci.modCount++
	return true
}

// Evict removes the chunk at (p, q) via swap-remove with the last live
// slot, returning true if a chunk was removed.
func (ci *ChunkIndex) Evict(p, q int) bool {
	ci.mu.Lock()
	defer ci.mu.Unlock()
	coord := ChunkCoord{P: p, Q: q}
	slot, ok := ci.byCoord[coord]
	if !ok {
		return false
	}
	last := ci.count - 1
	if slot != last {
		moved := ci.chunks[last]
		ci.chunks[slot] = moved
		ci.byCoord[ChunkCoord{P: moved.P, Q: moved.Q}] = slot
	}
	ci.chunks[last] = nil
	delete(ci.byCoord, coord)
	ci.count--
	ci.modCount++
	return true
}

// EvictBeyond removes every chunk whose chunk-distance (Chebyshev) from
// (cp, cq) exceeds radius. Returns the number removed.
func (ci *ChunkIndex) EvictBeyond(cp, cq, radius int) int {
	defer profiling.Track("world.ChunkIndex.EvictBeyond")()
	removed := 0
	for {
		ci.mu.RLock()
		victim := ChunkCoord{}
		found := false
		for i := 0; i < ci.count; i++ {
			c := ci.chunks[i]
			if chebyshev(c.P-cp, c.Q-cq) > radius {
				victim = ChunkCoord{P: c.P, Q: c.Q}
				found = true
				break
			}
		}
		ci.mu.RUnlock()
		if !found {
			break
		}
		ci.Evict(victim.P, victim.Q)
		removed++
	}
	return removed
}

func chebyshev(dx, dz int) int {
	if dx < 0 {
		dx = -dx
	}
	if dz < 0 {
		dz = -dz
	}
	if dx > dz {
		return dx
	}
	return dz
}

// Len reports the number of resident chunks.
func (ci *ChunkIndex) Len() int {
	ci.mu.RLock()
	defer ci.mu.RUnlock()
	return ci.count
}

// ModCount increases on every insert/evict, letting callers detect whether
// the resident set changed since a cached reading.
func (ci *ChunkIndex) ModCount() uint64 {
	ci.mu.RLock()
	defer ci.mu.RUnlock()
	return ci.modCount
}

// Snapshot returns every resident chunk paired with its coordinate.
func (ci *ChunkIndex) Snapshot() []ChunkWithCoord {
	ci.mu.RLock()
	defer ci.mu.RUnlock()
	out := make([]ChunkWithCoord, ci.count)
	for i := 0; i < ci.count; i++ {
		c := ci.chunks[i]
		out[i] = ChunkWithCoord{Chunk: c, Coord: ChunkCoord{P: c.P, Q: c.Q}}
	}
	return out
}

// WithinRadius appends every resident chunk within Chebyshev radius of
// (cp, cq) into dst and returns the resulting slice.
func (ci *ChunkIndex) WithinRadius(cp, cq, radius int, dst []ChunkWithCoord) []ChunkWithCoord {
	ci.mu.RLock()
	defer ci.mu.RUnlock()
	for i := 0; i < ci.count; i++ {
		c := ci.chunks[i]
		if chebyshev(c.P-cp, c.Q-cq) <= radius {
			dst = append(dst, ChunkWithCoord{Chunk: c, Coord: ChunkCoord{P: c.P, Q: c.Q}})
		}
	}
	return dst
}

// Neighbors returns the (up to) 4 chunks sharing an edge with (p, q).
func (ci *ChunkIndex) Neighbors(p, q int) []*Chunk {
	var out []*Chunk
	for _, d := range [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}} {
		if c := ci.Find(p+d[0], q+d[1]); c != nil {
			out = append(out, c)
		}
	}
	return out
}
