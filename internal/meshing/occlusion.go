package meshing

import "voxelforge/internal/world"

// curve maps an occlusion value (0-3) to a shading factor, exactly the
// lookup table used by occlusion() in
// _examples/original_source/src/main.c.
var curve = [4]float32{0.0, 0.25, 0.5, 0.75}

type face struct {
	normal [3]int
	// tangent axes, as index into [3]int (0=x,1=y,2=z), perpendicular to normal
	tanA, tanB int
	u, v       [2]float32 // unused placeholder for future UV work
}

var cubeFaces = []face{
	{normal: [3]int{1, 0, 0}, tanA: 1, tanB: 2},
	{normal: [3]int{-1, 0, 0}, tanA: 1, tanB: 2},
	{normal: [3]int{0, 1, 0}, tanA: 0, tanB: 2},
	{normal: [3]int{0, -1, 0}, tanA: 0, tanB: 2},
	{normal: [3]int{0, 0, 1}, tanA: 0, tanB: 1},
	{normal: [3]int{0, 0, -1}, tanA: 0, tanB: 1},
}

func axisOffset(axis, v int) [3]int {
	var o [3]int
	o[axis] = v
	return o
}

func addOffset(a, b [3]int) [3]int {
	return [3]int{a[0] + b[0], a[1] + b[1], a[2] + b[2]}
}

// corner holds the per-vertex ambient-occlusion factor and averaged light
// level for one corner of an emitted face.
type corner struct {
	ao    float32
	light float32
}

// highestOpaqueY returns the highest opaque y for the vertical column
// (lx, lz) in the padded window, memoized per WorkItem build. Mirrors the
// highest[] scratch array computed once per mesh build in
// _examples/original_source/src/main.c (populated there in the same pass
// as the opaque mask); here it is built lazily, one column at a time, the
// first time the shade term asks for it.
func highestOpaqueY(item *WorkItem, lx, lz int) int {
	if item.highest == nil {
		item.highest = make(map[[2]int]int)
	}
	key := [2]int{lx, lz}
	if h, ok := item.highest[key]; ok {
		return h
	}
	h := -1
	for y := world.WorldY - 1; y >= 0; y-- {
		if isOpaque(item, lx, y, lz) {
			h = y
			break
		}
	}
	item.highest[key] = h
	return h
}

// shade is the cheap downward sky-occlusion cue from spec §4.4: 1 - oy*0.125
// where oy in [0,8) is the smallest vertical offset above (lx, ly, lz) that
// hits an opaque cell, but only when (lx, ly, lz) lies at or below the
// column's highest opaque block -- a cell already poking above the terrain
// skips the scan and shades at 0, matching main.c's
// `if (y + dy <= highest[XZ(x+dx, z+dz)]) { ... }` guard.
func shade(item *WorkItem, lx, ly, lz int) float32 {
	if ly > highestOpaqueY(item, lx, lz) {
		return 0
	}
	for oy := 0; oy < 8; oy++ {
		if isOpaque(item, lx, ly+oy, lz) {
			return 1.0 - float32(oy)*0.125
		}
	}
	return 0
}

// occlusion computes the 4 corner shading values for a face of the block
// at (x, y, z), following occlusion() in main.c: each corner samples two
// face-adjacent "side" cells and one diagonal "corner" cell one step past
// the face plane. Both sides opaque forces maximum occlusion (avoids
// light leaking through a solid L-shaped wall corner); otherwise occlusion
// is the count of opaque cells among side1/side2/corner. ao_raw adds the
// mean shade value across the same 4-cell cluster {face cell, side1,
// side2, corner} used for the light mean, clamped to 1.0 — the sky
// occlusion term §4.4.1 requires alongside the occlusion curve. Light is
// the mean of the light level across that same cluster, with the center
// cell's full brightness forced through when it is itself a maximal light
// source.
func occlusion(item *WorkItem, x, y, z int, f face) [4]corner {
	var out [4]corner
	faceCell := addOffset([3]int{x, y, z}, f.normal)
	centerLight := sampleLight(item, faceCell[0], faceCell[1], faceCell[2])

	signs := [4][2]int{{-1, -1}, {1, -1}, {-1, 1}, {1, 1}}
	for i, s := range signs {
		side1 := addOffset(faceCell, axisOffset(f.tanA, s[0]))
		side2 := addOffset(faceCell, axisOffset(f.tanB, s[1]))
		cornerCell := addOffset(side1, axisOffset(f.tanB, s[1]))

		o1 := isOpaque(item, side1[0], side1[1], side1[2])
		o2 := isOpaque(item, side2[0], side2[1], side2[2])
		oc := isOpaque(item, cornerCell[0], cornerCell[1], cornerCell[2])

		var value int
		if o1 && o2 {
			value = 3
		} else {
			value = boolToInt(o1) + boolToInt(o2) + boolToInt(oc)
		}

		l1 := sampleLight(item, side1[0], side1[1], side1[2])
		l2 := sampleLight(item, side2[0], side2[1], side2[2])
		lc := sampleLight(item, cornerCell[0], cornerCell[1], cornerCell[2])
		mean := (float32(centerLight) + float32(l1) + float32(l2) + float32(lc)) / 4.0 / 15.0

		light := mean
		if centerLight == 15 {
			light = 1.0
		}

		shadeSum := shade(item, faceCell[0], faceCell[1], faceCell[2]) +
			shade(item, side1[0], side1[1], side1[2]) +
			shade(item, side2[0], side2[1], side2[2]) +
			shade(item, cornerCell[0], cornerCell[1], cornerCell[2])
		ao := curve[value] + shadeSum/4.0
		if ao > 1.0 {
			ao = 1.0
		}

		out[i] = corner{ao: ao, light: light}
	}
	return out
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// emitFace appends one quad (2 triangles, 6 vertices) for the given cube
// face of the block at (x, y, z), attaching per-vertex AO and light.
func emitFace(item *WorkItem, verts *[]float32, x, y, z int, b world.BlockType, f face) {
	corners := occlusion(item, x, y, z, f)
	quad := faceQuad(f, float32(x), float32(y), float32(z))

	// corners[] is ordered (tanA-, tanB-), (tanA+, tanB-), (tanA-, tanB+), (tanA+, tanB+)
	// matching quad's 4 distinct positions before triangulation.
	idx := [6]int{0, 1, 2, 2, 1, 3}
	for _, qi := range idx {
		p := quad[qi]
		c := corners[qi]
		appendVertex(verts, p, f.normal, c.ao, c.light)
	}
}

// faceQuad returns the 4 unique corner positions of a unit cube face
// centered at (x, y, z), in the same (tanA-,tanB-),(tanA+,tanB-),
// (tanA-,tanB+),(tanA+,tanB+) order occlusion() produces.
func faceQuad(f face, x, y, z float32) [4][3]float32 {
	center := [3]float32{x + 0.5*float32(f.normal[0]), y + 0.5*float32(f.normal[1]), z + 0.5*float32(f.normal[2])}
	base := [3]float32{x, y, z}
	if f.normal[0] != 0 {
		base[0] = center[0]
	}
	if f.normal[1] != 0 {
		base[1] = center[1]
	}
	if f.normal[2] != 0 {
		base[2] = center[2]
	}

	var out [4][3]float32
	signs := [4][2]float32{{-0.5, -0.5}, {0.5, -0.5}, {-0.5, 0.5}, {0.5, 0.5}}
	for i, s := range signs {
		p := base
		p[f.tanA] += s[0]
		p[f.tanB] += s[1]
		out[i] = p
	}
	return out
}

func appendVertex(verts *[]float32, pos [3]float32, normal [3]int, ao, light float32) {
	*verts = append(*verts,
		pos[0], pos[1], pos[2],
		float32(normal[0]), float32(normal[1]), float32(normal[2]),
		0, 0, // uv left to the texture atlas lookup done by the renderer collaborator
		ao, light,
	)
}

// emitPlant appends the two crossed quads used for cross-shaped plant
// geometry (tall grass, flowers). Plants always render all 4 quad faces
// regardless of neighbor occlusion, matching the exception noted for
// non-cube geometry.
func emitPlant(item *WorkItem, verts *[]float32, x, y, z int, b world.BlockType) {
	light := sampleLight(item, x, y, z)
	l := float32(light) / 15.0
	if light == 15 {
		l = 1.0
	}
	fx, fy, fz := float32(x), float32(y), float32(z)

	diag1 := [4][3]float32{
		{fx - 0.35, fy - 0.5, fz - 0.35}, {fx + 0.35, fy - 0.5, fz + 0.35},
		{fx - 0.35, fy + 0.5, fz - 0.35}, {fx + 0.35, fy + 0.5, fz + 0.35},
	}
	diag2 := [4][3]float32{
		{fx - 0.35, fy - 0.5, fz + 0.35}, {fx + 0.35, fy - 0.5, fz - 0.35},
		{fx - 0.35, fy + 0.5, fz + 0.35}, {fx + 0.35, fy + 0.5, fz - 0.35},
	}
	idx := [6]int{0, 1, 2, 2, 1, 3}
	for _, quad := range [][4][3]float32{diag1, diag2} {
		for _, qi := range idx {
			appendVertex(verts, quad[qi], [3]int{0, 1, 0}, 1.0, l)
		}
		// second pass renders the same quad with a reversed winding so the
		// cross geometry is visible from both sides.
		for i := len(idx) - 1; i >= 0; i-- {
			appendVertex(verts, quad[idx[i]], [3]int{0, -1, 0}, 1.0, l)
		}
	}
}
