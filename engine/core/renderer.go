package core

// Renderer is the GPU backend the 2D batcher draws through.
type Renderer interface {
	Resize(w, h int)
	Clear(r, g, b, a float32)
	CreatePipeline(desc PipelineDesc) (Pipeline, error)
	CreateTexture(desc TextureDesc) (Texture, error)
	CreateMesh(desc MeshDesc) (Mesh, error)
	UpdateMesh(m Mesh, vertices []float32, indices []uint32) error
	Draw(cmd DrawCmd)
	Info() GPUInfo
	Shutdown()
}

// Pipeline, Texture and Mesh are backend-owned handles. They compare
// equal when they refer to the same resource.
type (
	Pipeline interface{ Release() }
	Mesh     interface{ Release() }
	Texture  interface {
		Release()
		Size() (w, h int)
	}
)

type PipelineDesc struct {
	VertexSource   string
	FragmentSource string
	DepthTest      bool
	Blend          bool
}

type TextureFormat int

const (
	TextureRGBA8 TextureFormat = iota
)

type TextureDesc struct {
	Width, Height int
	Format        TextureFormat
	Pixels        []byte
	MinFilter     string // "nearest" or "linear"
	MagFilter     string
	WrapU, WrapV  string // "clamp" or "repeat"
}

type AttribType int

const (
	AttribFloat32 AttribType = iota
)

type VertexAttrib struct {
	Location uint32
	Size     int32
	Type     AttribType
	Offset   int
}

type VertexLayout struct {
	Stride     int32
	Attributes []VertexAttrib
}

type MeshDesc struct {
	Vertices []float32
	Indices  []uint32
	Layout   VertexLayout
	Dynamic  bool
}

// Scissor restricts drawing to a framebuffer rectangle, origin top-left.
type Scissor struct {
	Enabled    bool
	X, Y, W, H int32
}

type DrawCmd struct {
	Pipe       Pipeline
	Mesh       Mesh
	IndexCount int // 0 draws every index of the mesh
	Uniforms   map[string]any
	Samplers   map[string]Texture
	Scissor    Scissor
}

type GPUInfo struct {
	Vendor, Renderer, Version string
}
