package main

import (
	"github.com/hubastard/grove-inspector/cmd/inspector-demo/models"
	"github.com/hubastard/grove-inspector/engine/core"
	"github.com/hubastard/grove-inspector/engine/gfx/renderer2d"
	"github.com/hubastard/grove-inspector/engine/i18n"
	"github.com/hubastard/grove-inspector/engine/inspect"
	"github.com/hubastard/grove-inspector/engine/profiler"
	"github.com/hubastard/grove-inspector/engine/scene"
	"github.com/hubastard/grove-inspector/engine/text"
	"github.com/hubastard/grove-inspector/engine/ui"
	"go.uber.org/zap"
)

const (
	statusHeight = 28
	stateMaxAge  = 600 // frames before unused widget state is dropped

	scopeEditor  = "inspect.Level"
	scopePreview = "inspect.Player"
)

// LayerInspector draws the level editor and a read-only preview of its
// player.
type LayerInspector struct {
	cam   *scene.OrthoCamera2D
	r2d   *renderer2d.Renderer2D
	ui    *ui.Ctx
	cat   *i18n.Catalog
	stats *renderer2d.Statistics
	log   *zap.Logger
	keys  []ui.Key

	level    models.Level
	defaults models.Level
	edits    int
}

func NewLayerInspector(p *text.Painter, cat *i18n.Catalog, stats *renderer2d.Statistics, log *zap.Logger) *LayerInspector {
	return &LayerInspector{
		r2d:      p.R2D,
		ui:       ui.New(p, ui.WithLogger(log)),
		cat:      cat,
		stats:    stats,
		log:      log,
		level:    models.DefaultLevel(),
		defaults: models.DefaultLevel(),
	}
}

func (l *LayerInspector) OnAttach(e *core.Engine) {
	w, h := e.Window.FramebufferSize()
	l.cam = scene.NewScreenOrtho(w, h)
	l.setTitle(e)
}

func (l *LayerInspector) OnDetach(e *core.Engine) {}

func (l *LayerInspector) OnUpdate(e *core.Engine, dt float64) {}

func (l *LayerInspector) OnRender(e *core.Engine, alpha float64) {
	end := profiler.Start("LayerInspector.OnRender")
	defer end()

	l.r2d.BeginScene(l.cam.VP())
	l.ui.BeginFrame(l.frameInput(e.Input))
	{
		l.ui.Label(ui.RichText(l.text("demo.editor")).WithHeading())
		showEnd := profiler.Start(scopeEditor)
		resp := l.level.Inspect().
			Reset2(&l.defaults).
			Translate(l.cat.Translate).
			Logger(l.log).
			MaxHeight(l.cam.Height() * 0.6).
			Show(l.ui)
		showEnd()
		if resp.Changed {
			l.level.Touch()
			l.edits++
			l.setTitle(e)
		}

		l.ui.Space(8)
		l.ui.Label(ui.RichText(l.text("demo.preview")).WithHeading())
		previewEnd := profiler.Start(scopePreview)
		l.level.Player.InspectImut().
			Label(ui.RichText(l.text("level.Player"))).
			ViewMode(inspect.ViewCompact).
			Translate(l.cat.Translate).
			Show(l.ui)
		previewEnd()
	}
	l.ui.EndFrame()
	l.r2d.EndScene()
	*l.stats = l.r2d.Stats()

	if n := l.ui.Memory().Prune(stateMaxAge); n > 0 {
		l.log.Debug("pruned widget state", zap.Int("entries", n))
	}
}

func (l *LayerInspector) OnEvent(e *core.Engine, ev core.Event) bool {
	switch v := ev.(type) {
	case core.EventKey:
		if !v.Down || v.Mods&core.ModCtrl == 0 {
			return false
		}
		switch v.Key {
		case core.KeyL:
			l.nextLocale()
			return true
		case core.KeyR:
			l.level = models.DefaultLevel()
			l.setTitle(e)
			return true
		}
	case core.EventResize:
		l.cam.SetViewportPixels(v.W, v.H)
	}
	return false
}

// frameInput converts the engine input of this frame for the ui.
func (l *LayerInspector) frameInput(in *core.Input) ui.Input {
	l.keys = l.keys[:0]
	for _, k := range in.KeyPresses() {
		switch k {
		case core.KeyBackspace:
			l.keys = append(l.keys, ui.KeyBackspace)
		case core.KeyEnter:
			l.keys = append(l.keys, ui.KeyEnter)
		case core.KeyEscape:
			l.keys = append(l.keys, ui.KeyEscape)
		case core.KeyTab:
			l.keys = append(l.keys, ui.KeyTab)
		}
	}
	mx, my := in.Mouse()
	return ui.Input{
		MouseX:        float32(mx),
		MouseY:        float32(my),
		MouseDown:     in.ButtonDown(core.MouseLeft),
		MousePressed:  in.ButtonPressed(core.MouseLeft),
		MouseReleased: in.ButtonReleased(core.MouseLeft),
		ScrollY:       float32(in.Scroll()),
		Text:          in.Typed(),
		Keys:          l.keys,
		Viewport:      ui.RectXYWH(8, 8, l.cam.Width()-16, l.cam.Height()-statusHeight-16),
	}
}

func (l *LayerInspector) text(key string) string {
	s, _ := l.cat.Translate(key)
	return s
}

func (l *LayerInspector) nextLocale() {
	locales := l.cat.Locales()
	if len(locales) == 0 {
		return
	}
	next := locales[0]
	for i, loc := range locales {
		if loc == l.cat.Locale() {
			next = locales[(i+1)%len(locales)]
			break
		}
	}
	if err := l.cat.SetLocale(next); err != nil {
		l.log.Warn("switch locale", zap.String("locale", next), zap.Error(err))
		return
	}
	l.log.Info("locale", zap.String("locale", next))
}

func (l *LayerInspector) setTitle(e *core.Engine) {
	title := "Grove Inspector: " + l.level.Name
	if l.level.Dirty() {
		title += " *"
	}
	e.Window.SetTitle(title)
}
