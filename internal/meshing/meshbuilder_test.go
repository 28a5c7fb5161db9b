package meshing

import (
	"testing"

	"voxelforge/internal/world"
)

// newEmptyItem builds a WorkItem with all nine neighborhood maps allocated
// and empty, centered on (0, 0).
func newEmptyItem() *WorkItem {
	item := &WorkItem{P: 0, Q: 0}
	for dz := 0; dz < 3; dz++ {
		for dx := 0; dx < 3; dx++ {
			item.Blocks[dz][dx] = world.NewBlockMap()
			item.Lights[dz][dx] = world.NewBlockMap()
		}
	}
	return item
}

func TestBuildMeshDeterministic(t *testing.T) {
	build := func() []float32 {
		item := newEmptyItem()
		item.Blocks[1][1].Set(5, 10, 5, uint8(world.BlockTypeStone))
		item.Blocks[1][1].Set(5, 11, 5, uint8(world.BlockTypeStone))
		item.Blocks[1][1].Set(6, 10, 5, uint8(world.BlockTypeDirt))
		return BuildMesh(item)
	}
	a := build()
	b := build()
	if len(a) != len(b) {
		t.Fatalf("vertex count differs across identical runs: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("vertex buffers diverge at float %d: %v vs %v", i, a[i], b[i])
		}
	}
}

// countVertsInBlockBox scans a packed vertex buffer (VertexStride floats
// each, six vertices per face) and counts the vertices of every face whose
// center lies within the unit cube centered on (bx, by, bz) +/- 0.5 on
// every axis — i.e. vertices that belong to a face of that specific block.
// A neighboring block's faces share edges with that cube, so their
// vertices can touch it, but their centers lie outside it.
func countVertsInBlockBox(verts []float32, bx, by, bz float32) int {
	const eps = 1e-4
	const faceFloats = 6 * VertexStride
	count := 0
	for i := 0; i+faceFloats <= len(verts); i += faceFloats {
		var x, y, z float32
		for v := i; v < i+faceFloats; v += VertexStride {
			x, y, z = x+verts[v]/6, y+verts[v+1]/6, z+verts[v+2]/6
		}
		if x >= bx-0.5-eps && x <= bx+0.5+eps &&
			y >= by-0.5-eps && y <= by+0.5+eps &&
			z >= bz-0.5-eps && z <= bz+0.5+eps {
			count += 6
		}
	}
	return count
}

func TestBuildMeshFullySurroundedBlockContributesNoFaces(t *testing.T) {
	item := newEmptyItem()
	item.Blocks[1][1].Set(5, 10, 5, uint8(world.BlockTypeStone))
	offsets := [][3]int{{1, 0, 0}, {-1, 0, 0}, {0, 1, 0}, {0, -1, 0}, {0, 0, 1}, {0, 0, -1}}
	for _, o := range offsets {
		item.Blocks[1][1].Set(5+o[0], 10+o[1], 5+o[2], uint8(world.BlockTypeStone))
	}
	verts := BuildMesh(item)
	// The target's own faces would be centered on its unit bounding box;
	// neighboring cubes' faces are centered outside it, so this isolates
	// the target's contribution from the neighbors' own surface faces.
	if n := countVertsInBlockBox(verts, 5, 10, 5); n != 0 {
		t.Fatalf("fully enclosed block contributed %d vertices within its own box, want 0", n)
	}
}

func TestBuildMeshSingleExposedFaceEmitsOneFaceWorth(t *testing.T) {
	item := newEmptyItem()
	item.Blocks[1][1].Set(5, 10, 5, uint8(world.BlockTypeStone))
	offsets := [][3]int{{-1, 0, 0}, {0, 1, 0}, {0, -1, 0}, {0, 0, 1}, {0, 0, -1}}
	for _, o := range offsets {
		item.Blocks[1][1].Set(5+o[0], 10+o[1], 5+o[2], uint8(world.BlockTypeStone))
	}
	verts := BuildMesh(item)
	if n := countVertsInBlockBox(verts, 5, 10, 5); n != 6 {
		t.Fatalf("single exposed face contributed %d vertices within its own box, want 6", n)
	}
}

func TestLightFillDecaysByManhattanDistance(t *testing.T) {
	item := newEmptyItem()
	item.Blocks[1][1].Set(16, 100, 16, uint8(world.BlockTypeLightSource))
	seedLights(item)

	for d := 0; d <= 5; d++ {
		got := sampleLight(item, 16+d, 100, 16)
		want := uint8(0)
		if emission := world.LightEmission(world.BlockTypeLightSource); int(emission)-d > 0 {
			want = emission - uint8(d)
		}
		if got != want {
			t.Fatalf("light at distance %d = %d, want %d", d, got, want)
		}
	}
}

func TestLightFillCrossesChunkSeamWithFullFalloff(t *testing.T) {
	item := newEmptyItem()
	// A source more than 1 block from the seam (local x=10, intensity 15)
	// must still reach well past the seam into the neighbor chunk's
	// snapshot (item.Blocks[1][0]/Lights[1][0]) with the correct S-d
	// falloff, not get clipped at the one-cell pad.
	item.Blocks[1][1].Set(10, 100, 16, uint8(world.BlockTypeLightSource))
	seedLights(item)

	for _, tc := range []struct {
		lx   int
		want uint8
	}{
		{10, 15},
		{0, 5},  // distance 10, still inside the center chunk
		{-3, 2}, // distance 13, three cells into the neighbor at x<0
		{-5, 0}, // distance 15, fully decayed
	} {
		if got := sampleLight(item, tc.lx, 100, 16); got != tc.want {
			t.Fatalf("light at lx=%d = %d, want %d", tc.lx, got, tc.want)
		}
	}
}

func TestLightFillBlockedByOpaqueWall(t *testing.T) {
	item := newEmptyItem()
	item.Blocks[1][1].Set(16, 100, 16, uint8(world.BlockTypeLightSource))
	// A full plane at x=17 spanning every (y, z) the flood could possibly
	// reach (light decays to 0 after 15 steps, so +-15 around the source
	// in y and the full chunk width in z) blocks every path around it, not
	// just the direct one.
	for y := 85; y <= 115; y++ {
		for z := 1; z <= 31; z++ {
			item.Blocks[1][1].Set(17, y, z, uint8(world.BlockTypeStone))
		}
	}
	seedLights(item)

	if got := sampleLight(item, 18, 100, 16); got != 0 {
		t.Fatalf("light leaked through opaque wall: got %d, want 0", got)
	}
}

// TestOcclusionAOSymmetryUnderFaceRotation checks the §8 "AO symmetry"
// property for the top face: rotating the local opaque neighborhood 90°
// about the face normal rotates the four corner AO values correspondingly.
// Each corner's AO depends on exactly three neighbor cells (two "sides"
// plus one "corner" cell) in the y+1 layer; a 90° rotation about Y maps
// (dx, dz) -> (-dz, dx), which in turn maps each corner's 3-cell set onto
// a different corner's 3-cell set (index0<->1<->3<->2<->0), so the
// occlusion values must permute the same way.
func TestOcclusionAOSymmetryUnderFaceRotation(t *testing.T) {
	topFace := cubeFaces[2] // {0, 1, 0}
	if topFace.normal != [3]int{0, 1, 0} {
		t.Fatalf("cubeFaces[2] = %v, want the +Y face", topFace.normal)
	}

	pattern := [3][3]bool{
		{true, false, true},  // dz=-1: dx=-1,0,1
		{false, true, false}, // dz=0
		{true, true, false},  // dz=1
	}

	buildItem := func(rotate bool) *WorkItem {
		item := newEmptyItem()
		for dz := -1; dz <= 1; dz++ {
			for dx := -1; dx <= 1; dx++ {
				if !pattern[dz+1][dx+1] {
					continue
				}
				px, pz := dx, dz
				if rotate {
					px, pz = -dz, dx
				}
				item.Blocks[1][1].Set(5+px, 11, 5+pz, uint8(world.BlockTypeStone))
			}
		}
		return item
	}

	orig := occlusion(buildItem(false), 5, 10, 5, topFace)
	rotated := occlusion(buildItem(true), 5, 10, 5, topFace)

	perm := map[int]int{0: 2, 1: 0, 2: 3, 3: 1} // rotated[i] should equal orig[perm[i]]
	for i, want := range perm {
		if rotated[i].ao != orig[want].ao {
			t.Fatalf("rotated corner %d AO = %v, want orig corner %d AO = %v", i, rotated[i].ao, want, orig[want].ao)
		}
	}
}

func TestPlantAlwaysEmitsFourFacesWorth(t *testing.T) {
	// Plants skip face culling entirely (BuildMesh dispatches straight to
	// emitPlant without consulting neighbor opacity), so a plant emits the
	// same fixed vertex count whether or not its neighbors are opaque.
	// Neighbor stones are transparent-agnostic (a plant and empty air both
	// read as non-opaque to isOpaque), so their own exposed-face count is
	// identical whether the center cell holds the plant or nothing — the
	// difference between the two scenarios isolates the plant's own
	// contribution from the neighbors' surface faces.
	withPlant := newEmptyItem()
	withPlant.Blocks[1][1].Set(5, 10, 5, uint8(world.BlockTypeTallGrass))
	withoutPlant := newEmptyItem()

	offsets := [][3]int{{1, 0, 0}, {-1, 0, 0}, {0, 1, 0}, {0, -1, 0}, {0, 0, 1}, {0, 0, -1}}
	for _, o := range offsets {
		withPlant.Blocks[1][1].Set(5+o[0], 10+o[1], 5+o[2], uint8(world.BlockTypeStone))
		withoutPlant.Blocks[1][1].Set(5+o[0], 10+o[1], 5+o[2], uint8(world.BlockTypeStone))
	}

	a := BuildMesh(withPlant)
	b := BuildMesh(withoutPlant)

	floatsPerPlant := 4 * 6 * VertexStride
	if diff := len(a) - len(b); diff != floatsPerPlant {
		t.Fatalf("plant contributed %d floats once neighbor surfaces are factored out, want %d", diff, floatsPerPlant)
	}
}
