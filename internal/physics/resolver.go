package physics

import (
	"math"

	"voxelforge/internal/profiling"
	"voxelforge/internal/world"

	"github.com/go-gl/mathgl/mgl32"
)

// PlayerState is the minimal player model the CollisionResolver operates
// on, per the engine's data model: a feet-anchored position, look angles,
// an input-driven velocity, and a vertical gravity accumulator tracked
// separately from velocity so landing can reset fall speed without
// clobbering horizontal input.
type PlayerState struct {
	Position  mgl32.Vec3
	Yaw       float32
	Pitch     float32
	Velocity  mgl32.Vec3
	VyGravity float32
}

// Player AABB is fixed at 0.5 x 1.0 x 0.5, centered on x/z, feet at Y.
const (
	PlayerHalfWidth = 0.25
	PlayerHeight    = 1.0

	gravityAccel = 25.0
	gravityFloor = -250.0
)

// ObstaclePredicate reports whether a block id blocks movement. Supplied by
// the BlockTraits collaborator (is_obstacle); air never needs to be passed
// since Resolve already skips it.
type ObstaclePredicate func(world.BlockType) bool

// Resolve advances ps one frame of length dt against the block field,
// implementing the swept-AABB CollisionResolver of the engine's physics
// model: sub-step count scales with velocity so a fast fall can't tunnel
// through a one-block floor, each sub-step moves the AABB and finds every
// obstacle AABB among the 27 integer cells around the tentative position,
// takes the candidate with the smallest valid swept-AABB entry time, and
// zeroes the velocity component (and the sub-step's displacement) along
// that candidate's largest per-axis entry time. The sweep then repeats
// against the corrected displacement, up to three passes, so a resting
// floor contact and a wall met in the same sub-step are both resolved.
// Gravity integrates
// every sub-step and resets to zero whenever a sub-step's vertical
// response lands the player or stops an upward jump against a ceiling.
// Falling below y=0 respawns on top of the ground at the current (x, z).
// Returns whether the player ended the frame grounded.
func Resolve(ps *PlayerState, dt float32, w *world.World, isObstacle ObstaclePredicate) bool {
	defer profiling.Track("physics.Resolve")()

	speed := ps.Velocity.Len()
	steps := int(math.Round(float64(speed) * float64(dt) * 8))
	if steps < 8 {
		steps = 8
	}
	ut := dt / float32(steps)

	grounded := false
	for s := 0; s < steps; s++ {
		ps.VyGravity -= ut * gravityAccel
		if ps.VyGravity < gravityFloor {
			ps.VyGravity = gravityFloor
		}

		vMove := mgl32.Vec3{ps.Velocity.X(), ps.Velocity.Y() + ps.VyGravity, ps.Velocity.Z()}
		from := ps.Position
		to := from.Add(vMove.Mul(ut))

		for pass := 0; pass < 3; pass++ {
			hit, axis := sweepAgainstNeighborhood(from, to, w, isObstacle)
			if !hit {
				break
			}
			to[axis] = from[axis]
			switch axis {
			case 0:
				ps.Velocity = mgl32.Vec3{0, ps.Velocity.Y(), ps.Velocity.Z()}
			case 2:
				ps.Velocity = mgl32.Vec3{ps.Velocity.X(), ps.Velocity.Y(), 0}
			case 1:
				if vMove.Y() < 0 {
					grounded = true
				}
				ps.Velocity = mgl32.Vec3{ps.Velocity.X(), 0, ps.Velocity.Z()}
				ps.VyGravity = 0
			}
		}
		ps.Position = to
	}

	if ps.Position.Y() < 0 {
		h := w.SurfaceHeightAt(int(math.Floor(float64(ps.Position.X()))), int(math.Floor(float64(ps.Position.Z()))))
		ps.Position = mgl32.Vec3{ps.Position.X(), float32(h + 1), ps.Position.Z()}
		ps.Velocity = mgl32.Vec3{}
		ps.VyGravity = 0
		grounded = true
	}

	return grounded
}

// sweepAgainstNeighborhood finds the obstacle (among the 27 integer cells
// around the tentative position "to") with the smallest valid swept-AABB
// entry time against the AABB moving from "from" to "to", and reports
// which axis that candidate's collision should zero.
func sweepAgainstNeighborhood(from, to mgl32.Vec3, w *world.World, isObstacle ObstaclePredicate) (collided bool, axis int) {
	vel := to.Sub(from)
	aMin := mgl32.Vec3{from.X() - PlayerHalfWidth, from.Y(), from.Z() - PlayerHalfWidth}
	aMax := mgl32.Vec3{from.X() + PlayerHalfWidth, from.Y() + PlayerHeight, from.Z() + PlayerHalfWidth}

	cx := int(math.Round(float64(to.X())))
	cy := int(math.Round(float64(to.Y())))
	cz := int(math.Round(float64(to.Z())))

	bestEntry := float32(math.Inf(1))
	bestAxis := -1
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			for dz := -1; dz <= 1; dz++ {
				bx, by, bz := cx+dx, cy+dy, cz+dz
				blk := w.Get(bx, by, bz)
				if blk == world.BlockTypeAir || !isObstacle(blk) {
					continue
				}
				bMin := mgl32.Vec3{float32(bx), float32(by), float32(bz)}
				bMax := bMin.Add(mgl32.Vec3{1, 1, 1})

				entry, exit, eAxis, ok := sweptEntry(aMin, aMax, vel, bMin, bMax)
				if !ok || entry > exit || entry > 1 || entry < 0 {
					continue
				}
				if entry < bestEntry {
					bestEntry = entry
					bestAxis = eAxis
				}
			}
		}
	}
	if bestAxis < 0 {
		return false, -1
	}
	return true, bestAxis
}

// sweptEntry computes the per-axis entry/exit times of a moving AABB
// (aMin, aMax, displaced by vel over one unit of time) against a static
// AABB (bMin, bMax), returning the joint entry/exit time and the axis
// whose own entry time is largest (the axis the collision should resolve
// along), matching the XYZ axis-selection form of the resolver.
func sweptEntry(aMin, aMax, vel, bMin, bMax mgl32.Vec3) (entryTime, exitTime float32, axis int, ok bool) {
	var entry, exit [3]float32
	for a := 0; a < 3; a++ {
		v := vel[a]
		switch {
		case v > 0:
			entry[a] = (bMin[a] - aMax[a]) / v
			exit[a] = (bMax[a] - aMin[a]) / v
		case v < 0:
			entry[a] = (bMax[a] - aMin[a]) / v
			exit[a] = (bMin[a] - aMax[a]) / v
		default:
			if aMax[a] <= bMin[a] || aMin[a] >= bMax[a] {
				entry[a] = float32(math.Inf(1))
				exit[a] = float32(math.Inf(1))
			} else {
				entry[a] = float32(math.Inf(-1))
				exit[a] = float32(math.Inf(1))
			}
		}
	}

	entryTime = entry[0]
	if entry[1] > entryTime {
		entryTime = entry[1]
	}
	if entry[2] > entryTime {
		entryTime = entry[2]
	}
	exitTime = exit[0]
	if exit[1] < exitTime {
		exitTime = exit[1]
	}
	if exit[2] < exitTime {
		exitTime = exit[2]
	}
	if math.IsInf(float64(entryTime), 1) || entryTime > exitTime {
		return 0, 0, 0, false
	}
	if entryTime < 0 {
		entryTime = 0
	}

	axis = 0
	if entry[1] > entry[axis] {
		axis = 1
	}
	if entry[2] > entry[axis] {
		axis = 2
	}
	return entryTime, exitTime, axis, true
}
