package world

import (
	"crypto/sha256"
	"testing"
)

func TestGeneratorImplementsInterface(t *testing.T) {
	var _ TerrainGenerator = NewGenerator(123)
}

// hashChunkBlocks computes a SHA-256 hash of all blocks in a chunk.
func hashChunkBlocks(c *Chunk) [32]byte {
	h := sha256.New()
	for ly := 0; ly < WorldY; ly++ {
		for lx := 0; lx < ChunkSize; lx++ {
			for lz := 0; lz < ChunkSize; lz++ {
				b := byte(c.GetBlock(lx, ly, lz))
				h.Write([]byte{b})
			}
		}
	}
	var result [32]byte
	copy(result[:], h.Sum(nil))
	return result
}

func TestGeneratorDeterminism(t *testing.T) {
	seed := int64(12345)
	g1 := NewGenerator(seed)
	c1 := NewChunk(0, 0)
	g1.PopulateChunk(c1)

	g2 := NewGenerator(seed)
	c2 := NewChunk(0, 0)
	g2.PopulateChunk(c2)

	if hashChunkBlocks(c1) != hashChunkBlocks(c2) {
		t.Fatal("same seed and coordinate produced different chunks")
	}
}

func TestGeneratorDeterminismAcrossChunks(t *testing.T) {
	seed := int64(12345)
	for _, pos := range [][2]int{{0, 0}, {1, 0}, {0, 1}, {-1, -1}, {5, -3}} {
		g1 := NewGenerator(seed)
		c1 := NewChunk(pos[0], pos[1])
		g1.PopulateChunk(c1)

		g2 := NewGenerator(seed)
		c2 := NewChunk(pos[0], pos[1])
		g2.PopulateChunk(c2)

		if hashChunkBlocks(c1) != hashChunkBlocks(c2) {
			t.Fatalf("chunk (%d,%d) not deterministic", pos[0], pos[1])
		}
	}
}

func TestGeneratorTerrainNotEmpty(t *testing.T) {
	g := NewGenerator(1337)
	c := NewChunk(0, 0)
	g.PopulateChunk(c)

	if c.BlockCount() == 0 {
		t.Fatal("expected terrain to contain non-air blocks")
	}
}

func TestGeneratorBedrockFloor(t *testing.T) {
	g := NewGenerator(1337)
	c := NewChunk(0, 0)
	g.PopulateChunk(c)

	if b := c.GetBlock(8, 0, 8); b != BlockTypeBedrock {
		t.Errorf("expected bedrock at y=0, got %v", b)
	}
}

func TestGeneratorHeightAtInRange(t *testing.T) {
	g := NewGenerator(1337)
	h := g.HeightAt(0, 0)
	if h <= 0 || h >= WorldY {
		t.Errorf("HeightAt returned %d, expected within (0, %d)", h, WorldY)
	}
}

func TestGeneratorSurfaceMatchesHeightAt(t *testing.T) {
	g := NewGenerator(42)
	c := NewChunk(0, 0)
	g.PopulateChunk(c)

	h := g.HeightAt(8, 8)
	top := c.GetBlock(8, h, 8)
	if top != BlockTypeGrass && top != BlockTypeSand {
		t.Errorf("expected grass or sand at computed surface height %d, got %v", h, top)
	}
	if c.GetBlock(8, h+1, 8) != BlockTypeAir &&
		!IsPlant(c.GetBlock(8, h+1, 8)) &&
		c.GetBlock(8, h+1, 8) != BlockTypeWood &&
		c.GetBlock(8, h+1, 8) != BlockTypeLeaves {
		t.Errorf("expected open space or dressing above surface, got %v", c.GetBlock(8, h+1, 8))
	}
}

func BenchmarkPopulateChunk(b *testing.B) {
	g := NewGenerator(12345)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c := NewChunk(0, 0)
		g.PopulateChunk(c)
	}
}
