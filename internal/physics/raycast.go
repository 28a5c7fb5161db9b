package physics

import (
	"math"
	"voxelforge/internal/profiling"

	"voxelforge/internal/world"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	MinReachDistance = 0.1
	MaxReachDistance = 8.0
)

// RaycastResult stores the result of a raycast operation
type RaycastResult struct {
	HitPosition      [3]int
	AdjacentPosition [3]int
	Distance         float32
	Hit              bool
}

// RaycastStep is the fixed sample spacing along the ray, matching the DDA
// voxel walk described for the engine's picker (1/32 block per sample).
const RaycastStep = 1.0 / 32.0

// cellAt floors each axis independently, mapping a continuous position to
// the voxel that owns it. Blocks occupy [n, n+1) on every axis (the same
// convention BlockMap/Chunk storage uses), so this is a plain floor with no
// per-axis offset — a previous revision floored X/Z with a +0.5 bias and
// ceil'd Y, which silently shifted every sampled cell off of the block it
// was meant to test.
func cellAt(p mgl32.Vec3) [3]int {
	return [3]int{
		int(math.Floor(float64(p.X()))),
		int(math.Floor(float64(p.Y()))),
		int(math.Floor(float64(p.Z()))),
	}
}

// Raycast walks from start along direction in fixed RaycastStep increments,
// testing the voxel a sample falls in each time that voxel changes. Returns
// the first occupied cell hit (Hit=true, HitPosition) and the last empty
// cell walked through before it (AdjacentPosition, for "place against this
// face"). Mirrors hit_test in _examples/original_source/src/main.c.
func Raycast(start mgl32.Vec3, direction mgl32.Vec3, minDist, maxDist float32, world *world.World) RaycastResult {
	defer profiling.Track("physics.Raycast")()
	if direction.Len() == 0 {
		return RaycastResult{}
	}
	dir := direction.Normalize()
	steps := int(maxDist / RaycastStep)

	lastCell := cellAt(start)
	haveCell := false
	result := RaycastResult{Hit: false}

	for i := 0; i <= steps; i++ {
		dist := float32(i) * RaycastStep
		if dist < minDist {
			continue
		}

		pos := start.Add(dir.Mul(dist))
		cell := cellAt(pos)
		if haveCell && cell == lastCell {
			continue
		}

		if !world.IsAir(cell[0], cell[1], cell[2]) {
			result.HitPosition = cell
			result.AdjacentPosition = lastCell
			result.Distance = dist
			result.Hit = true
			return result
		}

		lastCell = cell
		haveCell = true
	}

	return result
}
