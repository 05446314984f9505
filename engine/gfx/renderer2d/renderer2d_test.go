package renderer2d

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/hubastard/grove-inspector/engine/colors"
	"github.com/hubastard/grove-inspector/engine/core"
)

type fakeRes struct{ w, h int }

func (*fakeRes) Release()           {}
func (f *fakeRes) Size() (int, int) { return f.w, f.h }

type drawn struct {
	indices  int
	samplers int
	scissor  core.Scissor
}

type fakeRenderer struct {
	draws []drawn
}

func (*fakeRenderer) Resize(int, int)                          {}
func (*fakeRenderer) Clear(float32, float32, float32, float32) {}
func (*fakeRenderer) Info() core.GPUInfo                       { return core.GPUInfo{} }
func (*fakeRenderer) Shutdown()                                {}

func (*fakeRenderer) CreatePipeline(core.PipelineDesc) (core.Pipeline, error) {
	return &fakeRes{}, nil
}

func (*fakeRenderer) CreateTexture(d core.TextureDesc) (core.Texture, error) {
	return &fakeRes{d.Width, d.Height}, nil
}

func (*fakeRenderer) CreateMesh(core.MeshDesc) (core.Mesh, error) { return &fakeRes{}, nil }

func (*fakeRenderer) UpdateMesh(core.Mesh, []float32, []uint32) error { return nil }

func (f *fakeRenderer) Draw(cmd core.DrawCmd) {
	f.draws = append(f.draws, drawn{indices: cmd.IndexCount, samplers: len(cmd.Samplers), scissor: cmd.Scissor})
}

func newTest(t *testing.T, maxQuads int) (*Renderer2D, *fakeRenderer) {
	t.Helper()
	fr := &fakeRenderer{}
	rd, err := New(fr, "vs", "fs", maxQuads)
	if err != nil {
		t.Fatal(err)
	}
	return rd, fr
}

func TestBatchesQuadsIntoOneDraw(t *testing.T) {
	rd, fr := newTest(t, 100)
	rd.BeginScene([16]float32{})
	for range 3 {
		rd.DrawQuad(0, 0, 1, 1, colors.White, 0)
	}
	rd.EndScene()
	want := []drawn{{indices: 3 * indsPerQuad, samplers: 1}}
	if diff := cmp.Diff(want, fr.draws, cmp.AllowUnexported(drawn{})); diff != "" {
		t.Errorf("draws (-want +got):\n%s", diff)
	}
	if s := rd.Stats(); s.DrawCalls != 1 || s.QuadCount != 3 || s.TotalVertexCount() != 12 {
		t.Errorf("stats = %+v", s)
	}
}

func TestFlushesWhenFull(t *testing.T) {
	rd, fr := newTest(t, 2)
	rd.BeginScene([16]float32{})
	for range 5 {
		rd.DrawQuad(0, 0, 1, 1, colors.White, 0)
	}
	rd.EndScene()
	if len(fr.draws) != 3 {
		t.Errorf("%d draws, want 3", len(fr.draws))
	}
}

func TestScissorSplitsBatches(t *testing.T) {
	rd, fr := newTest(t, 100)
	rd.BeginScene([16]float32{})
	rd.DrawQuad(0, 0, 1, 1, colors.White, 0)
	rd.SetScissor(10, 20, 30.5, 40)
	rd.SetScissor(10, 20, 30.5, 40) // unchanged: no flush
	rd.DrawQuad(0, 0, 1, 1, colors.White, 0)
	rd.SetScissor(0, 0, 0, 0)
	rd.DrawQuad(0, 0, 1, 1, colors.White, 0)
	rd.EndScene()

	want := []drawn{
		{indices: indsPerQuad, samplers: 1},
		{indices: indsPerQuad, samplers: 1, scissor: core.Scissor{Enabled: true, X: 10, Y: 20, W: 31, H: 40}},
		{indices: indsPerQuad, samplers: 1},
	}
	if diff := cmp.Diff(want, fr.draws, cmp.AllowUnexported(drawn{})); diff != "" {
		t.Errorf("draws (-want +got):\n%s", diff)
	}
}

func TestTextureSlotsOverflowFlushes(t *testing.T) {
	rd, fr := newTest(t, 100)
	rd.BeginScene([16]float32{})
	for i := range maxTexSlots + 2 {
		sub := FromPixels(&fakeRes{i + 1, 1}, 0, 0, 1, 1, 1, 1)
		rd.DrawSubTexQuad(0, 0, 1, 1, sub, colors.White, 0)
	}
	rd.EndScene()
	if len(fr.draws) != 2 || fr.draws[0].samplers != maxTexSlots {
		t.Errorf("draws = %+v", fr.draws)
	}
}

func TestFromPixels(t *testing.T) {
	sub := FromPixels(nil, 16, 32, 16, 16, 64, 64)
	if sub.U0 != 0.25 || sub.V0 != 0.5 || sub.U1 != 0.5 || sub.V1 != 0.75 {
		t.Errorf("sub = %+v", sub)
	}
}
