package world

import (
	"math"

	opensimplex "github.com/ojrac/opensimplex-go"
)

// TerrainGenerator produces a populated chunk for a given (p, q). A pure
// function of its inputs: the same seed and coordinate always yield the
// same blocks, so generation can run on any worker without synchronization.
type TerrainGenerator interface {
	HeightAt(worldX, worldZ int) int
	PopulateChunk(c *Chunk)
}

// Generator implements TerrainGenerator with layered simplex noise, the
// CEMENT/SAND/DIRT/GRASS column layering, tree/flower/tall-grass dressing,
// and cloud placement described for TerrainGen. Replaces the teacher's
// hand-rolled SplitMix64 value-noise generator (internal/world/noise.go)
// with github.com/ojrac/opensimplex-go, since the engine's noise
// collaborator is specified as simplex noise.
type Generator struct {
	seed int64

	height opensimplex.Noise // 2D: surface height field
	cave   opensimplex.Noise // 3D-ish: layer thickness / detail
	cloud  opensimplex.Noise // 3D: cloud placement
	tree   opensimplex.Noise // 2D: tree/flower/grass placement

	scale       float64
	baseHeight  int
	amplitude   float64
	octaves     int
	persistence float64
	lacunarity  float64
}

const (
	cloudHeight    = 160
	cloudThreshold = 0.76
	seaLevel       = 48
)

// NewGenerator builds a deterministic generator for the given seed.
func NewGenerator(seed int64) *Generator {
	return &Generator{
		seed:        seed,
		height:      opensimplex.NewNormalized(seed),
		cave:        opensimplex.NewNormalized(seed + 1),
		cloud:       opensimplex.NewNormalized(seed + 2),
		tree:        opensimplex.NewNormalized(seed + 3),
		scale:       1.0 / 96.0,
		baseHeight:  52,
		amplitude:   36,
		octaves:     4,
		persistence: 0.5,
		lacunarity:  2.0,
	}
}

func (g *Generator) octave2D(n opensimplex.Noise, x, z float64) float64 {
	amplitude := 1.0
	frequency := 1.0
	sum := 0.0
	norm := 0.0
	for i := 0; i < g.octaves; i++ {
		sum += n.Eval2(x*frequency, z*frequency) * amplitude
		norm += amplitude
		amplitude *= g.persistence
		frequency *= g.lacunarity
	}
	if norm == 0 {
		return 0
	}
	return sum / norm // [0,1]
}

// HeightAt computes the terrain surface height (block Y) at world (x, z).
func (g *Generator) HeightAt(worldX, worldZ int) int {
	x := float64(worldX) * g.scale
	z := float64(worldZ) * g.scale
	n := g.octave2D(g.height, x, z) // [0,1]
	h := float64(g.baseHeight) + (n-0.5)*2*g.amplitude
	if h < 1 {
		h = 1
	}
	if h > WorldY-1 {
		h = WorldY - 1
	}
	return int(math.Floor(h))
}

// PopulateChunk fills every column of the chunk with its layered terrain,
// plants, and clouds. Pure given (c.P, c.Q) and the generator's seed.
func (g *Generator) PopulateChunk(c *Chunk) {
	baseX := c.P * ChunkSize
	baseZ := c.Q * ChunkSize

	for lx := 0; lx < ChunkSize; lx++ {
		for lz := 0; lz < ChunkSize; lz++ {
			wx := baseX + lx
			wz := baseZ + lz
			h := g.HeightAt(wx, wz)
			g.layerColumn(c, lx, lz, wx, wz, h)
		}
	}
	c.dirty = true
	c.generated = true
}

func (g *Generator) layerColumn(c *Chunk, lx, lz, wx, wz, h int) {
	// STONE core (BEDROCK at y=0) under a CEMENT band, then a SAND cap near
	// sea level or a DIRT layer under a single-block GRASS cap — the
	// layering is stable by height band, with a thin noise-perturbed
	// boundary between stone and cement so the seam isn't a flat plane.
	cementTop := h - 4 - int(g.octave2D(g.cave, float64(wx)*0.1, float64(wz)*0.1)*3)
	if cementTop < 1 {
		cementTop = 1
	}

	for y := 0; y < cementTop; y++ {
		if y == 0 {
			c.SetBlock(lx, y, lz, BlockTypeBedrock)
		} else {
			c.SetBlock(lx, y, lz, BlockTypeStone)
		}
	}
	for y := cementTop; y < h; y++ {
		c.SetBlock(lx, y, lz, BlockTypeCement)
	}

	switch {
	case h <= seaLevel+1:
		c.SetBlock(lx, h, lz, BlockTypeSand)
	default:
		c.SetBlock(lx, h-1, lz, BlockTypeDirt)
		c.SetBlock(lx, h, lz, BlockTypeGrass)
	}

	g.dressColumn(c, lx, lz, wx, wz, h)
	g.placeClouds(c, lx, lz, wx, wz)
}

// dressColumn places tall grass, flowers, and trees on grass columns above
// sea level, using the tree noise field to decide placement deterministically.
func (g *Generator) dressColumn(c *Chunk, lx, lz, wx, wz, h int) {
	if h <= seaLevel+1 || h+1 >= WorldY {
		return
	}
	if c.GetBlock(lx, h, lz) != BlockTypeGrass {
		return
	}

	v := g.tree.Eval2(float64(wx)*0.5, float64(wz)*0.5)
	switch {
	case v > 0.985:
		g.placeTree(c, lx, h+1, lz)
	case v > 0.9:
		c.SetBlock(lx, h+1, lz, BlockTypeFlower)
	case v > 0.6:
		c.SetBlock(lx, h+1, lz, BlockTypeTallGrass)
	}
}

func (g *Generator) placeTree(c *Chunk, lx, y, lz int) {
	const trunkHeight = 5
	if y+trunkHeight+2 >= WorldY || lx-2 < 0 || lx+2 >= ChunkSize || lz-2 < 0 || lz+2 >= ChunkSize {
		return
	}
	for i := 0; i < trunkHeight; i++ {
		c.SetBlock(lx, y+i, lz, BlockTypeWood)
	}
	crownY := y + trunkHeight
	for dx := -2; dx <= 2; dx++ {
		for dz := -2; dz <= 2; dz++ {
			for dy := -1; dy <= 1; dy++ {
				if dx == 0 && dz == 0 && dy <= 0 {
					continue
				}
				if dx*dx+dz*dz+dy*dy > 6 {
					continue
				}
				c.SetBlock(lx+dx, crownY+dy, lz+dz, BlockTypeLeaves)
			}
		}
	}
}

// placeClouds scatters CLOUD blocks at a fixed height band using a 3D
// noise threshold, independent of the terrain column below.
func (g *Generator) placeClouds(c *Chunk, lx, lz, wx, wz int) {
	if cloudHeight >= WorldY {
		return
	}
	for dy := -2; dy <= 2; dy++ {
		y := cloudHeight + dy
		n := g.cloud.Eval3(float64(wx)*0.02, float64(y)*0.1, float64(wz)*0.02)
		if n > cloudThreshold {
			c.SetBlock(lx, y, lz, BlockTypeCloud)
		}
	}
}
