package world

import (
	"github.com/go-gl/mathgl/mgl32"
)

type BlockType uint16

const (
	BlockTypeAir BlockType = iota
	BlockTypeGrass
	BlockTypeDirt
	BlockTypeSand
	BlockTypeCement
	BlockTypeStone
	BlockTypeBedrock
	BlockTypeWood
	BlockTypeLeaves
	BlockTypeTallGrass
	BlockTypeFlower
	BlockTypeCloud
	BlockTypeLightSource
)

// IsPlant reports whether a block id is a cross-quad "plant" (tall grass,
// flowers) rather than a full cube. Plants always expose all 4 of their
// quads regardless of neighbor occlusion, matching the spec's face-culling
// exception for non-cube geometry.
func IsPlant(b BlockType) bool {
	return b == BlockTypeTallGrass || b == BlockTypeFlower
}

// IsOpaque reports whether a block id occludes light and neighboring faces.
// Plants and clouds are non-opaque despite being solid-ish in other ways.
func IsOpaque(b BlockType) bool {
	switch b {
	case BlockTypeAir, BlockTypeTallGrass, BlockTypeFlower, BlockTypeCloud, BlockTypeLeaves:
		return false
	default:
		return true
	}
}

// LightEmission returns the light level a block emits at its own cell, or
// 0 if it is not a light source.
func LightEmission(b BlockType) uint8 {
	if b == BlockTypeLightSource {
		return 15
	}
	return 0
}

// Block data
const (
	BlockSize = 1.0
)

var (
	// Cube vertices with position and normal attributes
	CubeVertices = []float32{
		// NORTH
		-0.5, -0.5, 0.5, 0, 0, 1,
		0.5, -0.5, 0.5, 0, 0, 1,
		0.5, 0.5, 0.5, 0, 0, 1,
		0.5, 0.5, 0.5, 0, 0, 1,
		-0.5, 0.5, 0.5, 0, 0, 1,
		-0.5, -0.5, 0.5, 0, 0, 1,

		// SOUTH
		0.5, -0.5, -0.5, 0, 0, -1,
		-0.5, -0.5, -0.5, 0, 0, -1,
		-0.5, 0.5, -0.5, 0, 0, -1,
		-0.5, 0.5, -0.5, 0, 0, -1,
		0.5, 0.5, -0.5, 0, 0, -1,
		0.5, -0.5, -0.5, 0, 0, -1,

		// WEST
		-0.5, -0.5, -0.5, -1, 0, 0,
		-0.5, -0.5, 0.5, -1, 0, 0,
		-0.5, 0.5, 0.5, -1, 0, 0,
		-0.5, 0.5, 0.5, -1, 0, 0,
		-0.5, 0.5, -0.5, -1, 0, 0,
		-0.5, -0.5, -0.5, -1, 0, 0,

		// EAST
		0.5, -0.5, 0.5, 1, 0, 0,
		0.5, -0.5, -0.5, 1, 0, 0,
		0.5, 0.5, -0.5, 1, 0, 0,
		0.5, 0.5, -0.5, 1, 0, 0,
		0.5, 0.5, 0.5, 1, 0, 0,
		0.5, -0.5, 0.5, 1, 0, 0,

		// TOP
		-0.5, 0.5, 0.5, 0, 1, 0,
		0.5, 0.5, 0.5, 0, 1, 0,
		0.5, 0.5, -0.5, 0, 1, 0,
		0.5, 0.5, -0.5, 0, 1, 0,
		-0.5, 0.5, -0.5, 0, 1, 0,
		-0.5, 0.5, 0.5, 0, 1, 0,

		// BOTTOM
		-0.5, -0.5, -0.5, 0, -1, 0,
		0.5, -0.5, -0.5, 0, -1, 0,
		0.5, -0.5, 0.5, 0, -1, 0,
		0.5, -0.5, 0.5, 0, -1, 0,
		-0.5, -0.5, 0.5, 0, -1, 0,
		-0.5, -0.5, -0.5, 0, -1, 0,
	}

	// Wireframe cube edges for highlighting
	CubeWireframeVertices = []float32{
		-0.5, -0.5, -0.5, 0.5, -0.5, -0.5,
		0.5, -0.5, -0.5, 0.5, -0.5, 0.5,
		0.5, -0.5, 0.5, -0.5, -0.5, 0.5,
		-0.5, -0.5, 0.5, -0.5, -0.5, -0.5,
		-0.5, 0.5, -0.5, 0.5, 0.5, -0.5,
		0.5, 0.5, -0.5, 0.5, 0.5, 0.5,
		0.5, 0.5, 0.5, -0.5, 0.5, 0.5,
		-0.5, 0.5, 0.5, -0.5, 0.5, -0.5,
		-0.5, -0.5, -0.5, -0.5, 0.5, -0.5,
		0.5, -0.5, -0.5, 0.5, 0.5, -0.5,
		0.5, -0.5, 0.5, 0.5, 0.5, 0.5,
		-0.5, -0.5, 0.5, -0.5, 0.5, 0.5,
	}
)

// BlockFace identifies a face of a block
type BlockFace int

const (
	FaceNorth BlockFace = iota
	FaceSouth
	FaceEast
	FaceWest
	FaceTop
	FaceBottom
)

// GetBlockColor returns the color for a specific block face
func GetBlockColor(face BlockFace) mgl32.Vec3 {
	// Different colors for each face
	switch face {
	case FaceNorth:
		return mgl32.Vec3{1.0, 0.0, 0.0} // Red
	case FaceSouth:
		return mgl32.Vec3{0.0, 1.0, 0.0} // Green
	case FaceEast:
		return mgl32.Vec3{0.0, 0.0, 1.0} // Blue
	case FaceWest:
		return mgl32.Vec3{1.0, 1.0, 0.0} // Yellow
	case FaceTop:
		return mgl32.Vec3{1.0, 0.0, 1.0} // Magenta
	case FaceBottom:
		return mgl32.Vec3{0.0, 1.0, 1.0} // Cyan
	default:
		return mgl32.Vec3{0.5, 0.5, 0.5} // Gray (fallback)
	}
}
