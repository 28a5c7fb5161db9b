package physics

import (
	"testing"

	"voxelforge/internal/world"

	"github.com/go-gl/mathgl/mgl32"
)

func isObstacleBlock(b world.BlockType) bool {
	return b != world.BlockTypeAir && !world.IsPlant(b)
}

func TestResolveLandsOnGroundWithoutTunneling(t *testing.T) {
	w := world.NewEmpty()
	for x := -2; x <= 2; x++ {
		for z := -2; z <= 2; z++ {
			w.Set(x, 10, z, world.BlockTypeStone)
		}
	}

	ps := &PlayerState{
		Position: mgl32.Vec3{0, 12, 0},
		Velocity: mgl32.Vec3{0, -50, 0},
	}

	for i := 0; i < 120; i++ {
		grounded := Resolve(ps, 1.0/60.0, w, isObstacleBlock)
		if ps.Position.Y() < 11 {
			t.Fatalf("player tunneled through the floor: y=%f", ps.Position.Y())
		}
		if grounded {
			break
		}
	}

	if ps.Position.Y() < 11 {
		t.Fatalf("expected player to rest on top of the floor (y>=11), got y=%f", ps.Position.Y())
	}
}

func TestResolveStopsAtWall(t *testing.T) {
	w := world.NewEmpty()
	for y := 0; y < 3; y++ {
		w.Set(5, y, 0, world.BlockTypeStone)
	}
	// floor so the player doesn't just fall forever
	for x := -2; x <= 6; x++ {
		for z := -2; z <= 2; z++ {
			w.Set(x, -1, z, world.BlockTypeStone)
		}
	}

	ps := &PlayerState{
		Position: mgl32.Vec3{0, 0, 0},
		Velocity: mgl32.Vec3{20, 0, 0},
	}

	for i := 0; i < 60; i++ {
		Resolve(ps, 1.0/60.0, w, isObstacleBlock)
	}

	if ps.Position.X() >= 4.75 {
		t.Fatalf("expected player to be stopped by the wall before x=4.75, got x=%f", ps.Position.X())
	}
}

func TestResolveRespawnsWhenFallingBelowWorld(t *testing.T) {
	w := world.NewEmpty()
	w.Set(0, 20, 0, world.BlockTypeStone)

	ps := &PlayerState{
		Position: mgl32.Vec3{0, -5, 0},
	}

	grounded := Resolve(ps, 1.0/60.0, w, isObstacleBlock)
	if !grounded {
		t.Fatal("expected respawn to report grounded")
	}
	if ps.Position.Y() < 0 {
		t.Fatalf("expected respawn above y=0, got y=%f", ps.Position.Y())
	}
}
