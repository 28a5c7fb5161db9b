package blocks

import (
	"log"

	"voxelforge/internal/meshing"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// vertexStrideBytes is the GPU-side byte stride of one emitted vertex:
// position(3) + normal(3) + uv(2) + ao(1) + light(1) float32s, matching
// meshing.VertexStride.
const vertexStrideBytes = meshing.VertexStride * 4

// defaultRegionKey names the single atlas region backing the growable
// atlasVAO/atlasVBO pair below. The region/compaction bookkeeping
// (atlasRegion.orderedColumns, fragmentedBytes) exists per-key so the
// draw path in blocks.go can multi-draw per region; this build only ever
// populates one region rather than partitioning chunks across several.
var defaultRegionKey = [2]int{0, 0}

// Atlas VBO/VAO management
var (
	atlasVAO           uint32
	atlasVBO           uint32
	atlasCapacityBytes int
	atlasTotalFloats   int
	firstsScratch      []int32
	countsScratch      []int32
	fallbackScratch    []*chunkMesh
	currentFrame       uint64
	// atlasRegions tracks per-region GL state and draw ordering keyed by
	// chunkMesh.regionKey / columnMesh.regionKey. Only defaultRegionKey is
	// ever populated; the map exists so a multi-region atlas could be
	// grown into later without reshaping the draw path in blocks.go.
	atlasRegions = map[[2]int]*atlasRegion{}
)

func defaultRegion() *atlasRegion {
	r := atlasRegions[defaultRegionKey]
	if r == nil {
		r = &atlasRegion{key: defaultRegionKey}
		atlasRegions[defaultRegionKey] = r
	}
	return r
}

// CleanupAtlas releases the atlas VBO/VAO and any per-region GL state.
func CleanupAtlas() {
	for _, r := range atlasRegions {
		if r == nil {
			continue
		}
		if r.vao != 0 {
			gl.DeleteVertexArrays(1, &r.vao)
		}
		if r.vbo != 0 {
			gl.DeleteBuffers(1, &r.vbo)
		}
	}
	atlasRegions = map[[2]int]*atlasRegion{}

	atlasVBO = 0
	atlasVAO = 0
	atlasCapacityBytes = 0
	atlasTotalFloats = 0
}

func ensureAtlasCapacity(requiredBytes int) {
	if requiredBytes <= atlasCapacityBytes {
		return
	}
	capBytes := atlasCapacityBytes
	if capBytes == 0 {
		capBytes = 1 << 22 // 4MB
	}
	for capBytes < requiredBytes {
		capBytes *= 2
	}
	// Allocate new buffer; we'll rebuild contents from CPU copies (portable)
	var newVBO uint32
	gl.GenBuffers(1, &newVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, newVBO)
	gl.BufferData(gl.ARRAY_BUFFER, capBytes, nil, gl.DYNAMIC_DRAW)

	// Swap buffers: rebind VAO attributes to the new VBO
	oldVBO := atlasVBO
	atlasVBO = newVBO
	atlasCapacityBytes = capBytes

	gl.BindVertexArray(atlasVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, atlasVBO)
	bindVertexAttribs()
	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	r := defaultRegion()
	r.vao = atlasVAO
	r.vbo = atlasVBO
	r.capacityBytes = atlasCapacityBytes
	r.growthCount++

	// Rebuild atlas from CPU-side chunk meshes (avoids CopyBufferSubData)
	rebuildAtlasFromCPU()

	// All column meshes' atlas offsets are now invalid; mark for rebuild
	for _, col := range columnMeshes {
		if col == nil {
			continue
		}
		col.firstFloat = -1
		col.dirty = true
	}

	if oldVBO != 0 {
		gl.DeleteBuffers(1, &oldVBO)
	}
}

// rebuildAtlasFromCPU compacts and re-uploads all available chunk meshes into the atlas VBO.
func rebuildAtlasFromCPU() {
	if atlasVBO == 0 {
		return
	}
	// Reset offset
	atlasTotalFloats = 0
	gl.BindBuffer(gl.ARRAY_BUFFER, atlasVBO)
	for coord, m := range chunkMeshes {
		_ = coord
		if m == nil || m.vertexCount == 0 || len(m.cpuVerts) == 0 {
			m.firstFloat = -1
			m.firstVertex = -1
			continue
		}
		bytes := len(m.cpuVerts) * 4
		offsetBytes := atlasTotalFloats * 4
		gl.BufferSubData(gl.ARRAY_BUFFER, offsetBytes, bytes, gl.Ptr(m.cpuVerts))
		m.firstFloat = atlasTotalFloats
		m.firstVertex = int32(atlasTotalFloats / meshing.VertexStride)
		atlasTotalFloats += len(m.cpuVerts)
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	defaultRegion().fragmentedBytes = 0
}

func appendOrUpdateAtlas(m *chunkMesh) {
	if m == nil {
		return
	}
	verts := m.cpuVerts
	if len(verts) == 0 {
		m.firstFloat = -1
		m.firstVertex = -1
		return
	}
	bytes := len(verts) * 4
	if m.firstFloat < 0 && m.vertexCount == int32(len(verts)/meshing.VertexStride) {
		// Append new
		requiredBytes := (atlasTotalFloats + len(verts)) * 4
		ensureAtlasCapacity(requiredBytes)
		offsetBytes := atlasTotalFloats * 4
		gl.BindBuffer(gl.ARRAY_BUFFER, atlasVBO)
		gl.BufferSubData(gl.ARRAY_BUFFER, offsetBytes, bytes, gl.Ptr(verts))
		gl.BindBuffer(gl.ARRAY_BUFFER, 0)
		m.firstFloat = atlasTotalFloats
		m.firstVertex = int32(atlasTotalFloats / meshing.VertexStride)
		m.regionKey = defaultRegionKey
		atlasTotalFloats += len(verts)
		return
	}
	// Update existing region (size may change; simple strategy: if different, re-append)
	oldCountFloats := int(m.vertexCount) * meshing.VertexStride
	if m.firstFloat >= 0 && oldCountFloats == len(verts) {
		gl.BindBuffer(gl.ARRAY_BUFFER, atlasVBO)
		gl.BufferSubData(gl.ARRAY_BUFFER, m.firstFloat*4, bytes, gl.Ptr(verts))
		gl.BindBuffer(gl.ARRAY_BUFFER, 0)
		return
	}
	// Size changed: append new region and invalidate old by leaving a hole (simple, avoids compaction for now)
	if m.firstFloat >= 0 {
		defaultRegion().fragmentedBytes += oldCountFloats * 4
	}
	requiredBytes := (atlasTotalFloats + len(verts)) * 4
	ensureAtlasCapacity(requiredBytes)
	offsetBytes := atlasTotalFloats * 4
	gl.BindBuffer(gl.ARRAY_BUFFER, atlasVBO)
	gl.BufferSubData(gl.ARRAY_BUFFER, offsetBytes, bytes, gl.Ptr(verts))
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	m.firstFloat = atlasTotalFloats
	m.firstVertex = int32(atlasTotalFloats / meshing.VertexStride)
	m.regionKey = defaultRegionKey
	atlasTotalFloats += len(verts)
}

func ensureColumnMeshForXZ(x, z int) *columnMesh {
	key := [2]int{x, z}
	col := columnMeshes[key]
	if col == nil {
		col = &columnMesh{x: x, z: z, firstFloat: -1, firstVertex: -1, dirty: true}
		columnMeshes[key] = col
	}
	if !col.dirty {
		return col
	}
	// Count total floats across Y-chunk meshes in this column
	total := 0
	for coord, cm := range chunkMeshes {
		if coord.P == x && coord.Q == z && cm != nil && cm.vertexCount > 0 && len(cm.cpuVerts) > 0 {
			total += len(cm.cpuVerts)
		}
	}
	// If currently nothing ready to build, keep previous geometry to avoid flicker
	if total == 0 {
		// Keep column marked dirty so renderer uses per-chunk fallback until ready
		return col
	}
	buf := make([]float32, 0, total)
	for coord, cm := range chunkMeshes {
		if coord.P == x && coord.Q == z && cm != nil && cm.vertexCount > 0 && len(cm.cpuVerts) > 0 {
			buf = append(buf, cm.cpuVerts...)
		}
	}
	// If size unchanged and region valid, update in place
	if int32(len(buf)/meshing.VertexStride) == col.vertexCount && col.firstFloat >= 0 {
		gl.BindBuffer(gl.ARRAY_BUFFER, atlasVBO)
		gl.BufferSubData(gl.ARRAY_BUFFER, col.firstFloat*4, len(buf)*4, gl.Ptr(buf))
		gl.BindBuffer(gl.ARRAY_BUFFER, 0)
		col.cpuVerts = buf
		col.dirty = false
		col.firstVertex = int32(col.firstFloat / meshing.VertexStride)
		return col
	}
	// Otherwise append new region
	requiredBytes := (atlasTotalFloats + len(buf)) * 4
	ensureAtlasCapacity(requiredBytes)
	offsetBytes := atlasTotalFloats * 4
	gl.BindBuffer(gl.ARRAY_BUFFER, atlasVBO)
	gl.BufferSubData(gl.ARRAY_BUFFER, offsetBytes, len(buf)*4, gl.Ptr(buf))
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	col.cpuVerts = buf
	col.vertexCount = int32(len(buf) / meshing.VertexStride)
	col.firstFloat = atlasTotalFloats
	col.firstVertex = int32(atlasTotalFloats / meshing.VertexStride)
	col.regionKey = defaultRegionKey
	atlasTotalFloats += len(buf)
	col.dirty = false

	// insert into the region's draw-ordered column list, keeping it sorted
	// by firstVertex so adjacent columns can be folded into one MultiDraw run
	r := defaultRegion()
	inserted := false
	for i, c := range r.orderedColumns {
		if c == nil || c.firstVertex < 0 {
			continue
		}
		if col.firstVertex < c.firstVertex {
			r.orderedColumns = append(r.orderedColumns, nil)
			copy(r.orderedColumns[i+1:], r.orderedColumns[i:])
			r.orderedColumns[i] = col
			inserted = true
			break
		}
	}
	if !inserted {
		r.orderedColumns = append(r.orderedColumns, col)
	}
	return col
}

// flushAllRegionWrites applies any writes queued on a region's pendingWrites
// buffer. appendOrUpdateAtlas/ensureColumnMeshForXZ above write straight
// through to the VBO, so pendingWrites never accumulates in this build;
// this exists as the hook a batched-write strategy would drain from.
func flushAllRegionWrites() {
	for _, r := range atlasRegions {
		if r == nil || len(r.pendingWrites) == 0 {
			continue
		}
		gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
		for _, w := range r.pendingWrites {
			if len(w.data) == 0 {
				continue
			}
			gl.BufferSubData(gl.ARRAY_BUFFER, w.offsetBytes, len(w.data)*2, gl.Ptr(w.data))
		}
		gl.BindBuffer(gl.ARRAY_BUFFER, 0)
		r.pendingWrites = r.pendingWrites[:0]
	}
}

// compactFragmentationThreshold triggers a region compaction once fragmented
// (overwritten-but-unreclaimed) bytes exceed a quarter of its capacity.
const compactFragmentationThreshold = 4

// maybeCompactRegions rebuilds the atlas from the live CPU mesh copies once a
// region's fragmentation (bytes left behind by resized chunk/column
// re-appends) grows large enough to be worth the compaction pass.
func maybeCompactRegions() {
	for _, r := range atlasRegions {
		if r == nil || r.capacityBytes == 0 {
			continue
		}
		if r.fragmentedBytes*compactFragmentationThreshold < r.capacityBytes {
			continue
		}
		rebuildAtlasFromCPU()
		for _, col := range columnMeshes {
			if col != nil {
				col.dirty = true
			}
		}
		r.fragmentedBytes = 0
		r.lastCompact = currentFrame
		r.orderedColumns = nil
	}
}

// glCheckError logs (and drains) any pending GL errors under label. Used
// sparingly after multi-draw calls where a bad region/offset would
// otherwise fail silently.
func glCheckError(label string) {
	for {
		errCode := gl.GetError()
		if errCode == gl.NO_ERROR {
			return
		}
		log.Printf("gl error after %s: 0x%x", label, errCode)
	}
}

func setupAtlas() {
	gl.GenVertexArrays(1, &atlasVAO)
	gl.BindVertexArray(atlasVAO)

	gl.GenBuffers(1, &atlasVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, atlasVBO)
	initial := 1 << 22 // 4MB
	gl.BufferData(gl.ARRAY_BUFFER, initial, nil, gl.DYNAMIC_DRAW)
	atlasCapacityBytes = initial
	atlasTotalFloats = 0

	bindVertexAttribs()

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	r := defaultRegion()
	r.vao = atlasVAO
	r.vbo = atlasVBO
	r.capacityBytes = atlasCapacityBytes
}

// bindVertexAttribs wires up the 5 vertex attributes MeshBuilder emits per
// meshing.VertexStride: position(3) + normal(3) + uv(2) + ao(1) + light(1).
// Must be called with the target VBO already bound to gl.ARRAY_BUFFER.
func bindVertexAttribs() {
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, int32(vertexStrideBytes), gl.PtrOffset(0))
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 3, gl.FLOAT, false, int32(vertexStrideBytes), gl.PtrOffset(3*4))
	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointer(2, 2, gl.FLOAT, false, int32(vertexStrideBytes), gl.PtrOffset(6*4))
	gl.EnableVertexAttribArray(3)
	gl.VertexAttribPointer(3, 1, gl.FLOAT, false, int32(vertexStrideBytes), gl.PtrOffset(8*4))
	gl.EnableVertexAttribArray(4)
	gl.VertexAttribPointer(4, 1, gl.FLOAT, false, int32(vertexStrideBytes), gl.PtrOffset(9*4))
}
