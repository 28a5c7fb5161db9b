package world

import "testing"

func TestWorldSetGet(t *testing.T) {
	w := New()
	w.Set(5, 10, 5, BlockTypeStone)
	if got := w.Get(5, 10, 5); got != BlockTypeStone {
		t.Errorf("expected BlockTypeStone, got %v", got)
	}
}

func TestWorldGetMissingChunkIsAir(t *testing.T) {
	w := New()
	if !w.IsAir(1000, 10, 1000) {
		t.Error("expected air for a block in a non-resident chunk")
	}
}

func TestWorldStreamChunksAroundSync(t *testing.T) {
	w := New()
	w.StreamChunksAroundSync(0, 0, 1)

	chunks := w.GetAllChunks()
	if len(chunks) == 0 {
		t.Fatal("expected chunks to be created and generated")
	}
	for _, cw := range chunks {
		if !cw.Chunk.IsGenerated() {
			t.Errorf("chunk (%d,%d) was created but never generated", cw.Coord.P, cw.Coord.Q)
		}
	}
}

func TestWorldEvictFarChunks(t *testing.T) {
	w := New()
	w.StreamChunksAroundSync(0, 0, 3)
	before := len(w.GetAllChunks())
	if before == 0 {
		t.Fatal("expected chunks to exist before eviction")
	}

	evicted := w.EvictFarChunks(0, 0, 1)
	if evicted == 0 {
		t.Error("expected at least one chunk to be evicted")
	}
	after := len(w.GetAllChunks())
	if after != before-evicted {
		t.Errorf("expected %d chunks remaining, got %d", before-evicted, after)
	}
}

func TestWorldSetBlockPropagatesSeam(t *testing.T) {
	w := New()
	w.Index.FindOrCreate(0, 0)
	w.Index.FindOrCreate(1, 0)

	w.Set(ChunkSize-1, 5, 3, BlockTypeStone)

	// World x = ChunkSize-1 is local x = -1 in chunk (1, 0).
	neighbor := w.Index.Find(1, 0)
	if neighbor.GetBlock(-1, 5, 3) != BlockTypeStone {
		t.Error("expected edit near chunk seam to mirror into neighbor chunk")
	}
	if !neighbor.IsShadowBlock(-1, 5, 3) {
		t.Error("expected mirrored block to be marked as a shadow block")
	}
}

func TestWorldSurfaceHeightAt(t *testing.T) {
	w := New()
	h := w.SurfaceHeightAt(0, 0)
	if h <= 0 || h >= WorldY {
		t.Errorf("SurfaceHeightAt returned %d, expected within (0, %d)", h, WorldY)
	}
}

func TestWorldAddAndGetEntities(t *testing.T) {
	w := New()
	if len(w.GetEntities()) != 0 {
		t.Fatal("expected no entities in a fresh world")
	}
}

func BenchmarkWorldStreamChunksAroundSync(b *testing.B) {
	for i := 0; i < b.N; i++ {
		w := New()
		w.StreamChunksAroundSync(0, 0, 2)
	}
}

func BenchmarkWorldHeightAt(b *testing.B) {
	w := New()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = w.SurfaceHeightAt(i%1024, (i*31)%1024)
	}
}
