package main

import (
	"time"

	"github.com/hubastard/grove-inspector/engine/colors"
	"github.com/hubastard/grove-inspector/engine/core"
	"github.com/hubastard/grove-inspector/engine/gfx/renderer2d"
	"github.com/hubastard/grove-inspector/engine/profiler"
	"github.com/hubastard/grove-inspector/engine/scene"
	"github.com/hubastard/grove-inspector/engine/scratch"
	"github.com/hubastard/grove-inspector/engine/text"
)

// LayerStatus draws one line of frame and process counters under the
// panels.
type LayerStatus struct {
	cam   *scene.OrthoCamera2D
	r2d   *renderer2d.Renderer2D
	font  *text.Font
	stats *renderer2d.Statistics
	panel *LayerInspector

	frameDuration float32
	tick          int
}

func (l *LayerStatus) OnAttach(e *core.Engine) {
	w, h := e.Window.FramebufferSize()
	l.cam = scene.NewScreenOrtho(w, h)
}

func (l *LayerStatus) OnDetach(e *core.Engine) {}

func (l *LayerStatus) OnUpdate(e *core.Engine, dt float64) {}

func (l *LayerStatus) OnRender(e *core.Engine, alpha float64) {
	end := profiler.Start("LayerStatus.OnRender")
	defer end()

	scratch.Reset()
	st := profiler.ReadStats()
	fps := float64(0)
	if l.frameDuration > 0 {
		fps = 1000.0 / float64(l.frameDuration)
	}
	line := scratch.F().
		S("frame ").I(l.tick).
		S("  ").F64(float64(l.frameDuration), 2).S(" ms (").F64(fps, 0).S(" fps)").
		S("  draws ").I(l.stats.DrawCalls).
		S("  quads ").I(l.stats.QuadCount).
		S("  heap ").F64(float64(st.HeapAlloc)/(1<<20), 1).S(" MB").
		S("  goroutines ").I(st.Goroutines).
		S("  locale ").S(l.panel.cat.Locale()).
		S("  editor ").F64(scopeMillis(scopeEditor), 3).S(" ms").
		S("  preview ").F64(scopeMillis(scopePreview), 3).S(" ms").
		S("  edits ").I(l.panel.edits).
		View()

	y := l.cam.Height() - statusHeight
	l.r2d.BeginScene(l.cam.VP())
	{
		l.r2d.DrawQuad(l.cam.Width()/2, y+statusHeight/2, l.cam.Width(), statusHeight, colors.Black.WithAlpha(0.5), 0)
		text.DrawText(l.r2d, l.font, 8, y+6, line, 14, colors.LightGray)
	}
	l.r2d.EndScene()
}

// scopeMillis is the mean time of a profiler scope, zero when the profiler
// is compiled out.
func scopeMillis(name string) float64 {
	s, _ := profiler.Scope(name)
	return float64(s.Mean()) / float64(time.Millisecond)
}

func (l *LayerStatus) OnEvent(e *core.Engine, ev core.Event) bool {
	if v, ok := ev.(core.EventResize); ok {
		l.cam.SetViewportPixels(v.W, v.H)
	}
	return false
}
