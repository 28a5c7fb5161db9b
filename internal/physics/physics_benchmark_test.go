package physics

import (
	"testing"

	"voxelforge/internal/world"

	"github.com/go-gl/mathgl/mgl32"
)

func makeWorldForPhysics() *world.World {
	w := world.New()
	w.StreamChunksAroundSync(0, 0, 6)
	return w
}

func BenchmarkCollides(b *testing.B) {
	w := makeWorldForPhysics()
	pos := mgl32.Vec3{0, 70, 0}
	width := float32(0.5)
	height := float32(1.8)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = Collides(pos, width, height, w)
	}
}

func BenchmarkRaycastThroughLoadedWorld(b *testing.B) {
	w := makeWorldForPhysics()
	start := mgl32.Vec3{0, 70, 0}
	dir := mgl32.Vec3{1, -0.2, 0}.Normalize()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = Raycast(start, dir, MinReachDistance, MaxReachDistance, w)
	}
}
