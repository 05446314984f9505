// Command inspector-demo opens a window with an editor and a read-only
// preview of a sample level.
package main

import (
	"flag"
	"fmt"
	"image"
	"os"
	"time"

	"github.com/hubastard/grove-inspector/cmd/inspector-demo/models"
	"github.com/hubastard/grove-inspector/engine/assets"
	"github.com/hubastard/grove-inspector/engine/colors"
	"github.com/hubastard/grove-inspector/engine/core"
	glbackend "github.com/hubastard/grove-inspector/engine/gfx/gl"
	"github.com/hubastard/grove-inspector/engine/gfx/renderer2d"
	"github.com/hubastard/grove-inspector/engine/i18n"
	"github.com/hubastard/grove-inspector/engine/platform"
	"github.com/hubastard/grove-inspector/engine/profiler"
	"github.com/hubastard/grove-inspector/engine/scratch"
	"github.com/hubastard/grove-inspector/engine/text"
	"go.uber.org/zap"
)

type App struct {
	locale    string
	lastFrame time.Time
	tick      int

	r2d    *renderer2d.Renderer2D
	font   *text.Font
	stats  renderer2d.Statistics
	panel  *LayerInspector
	status *LayerStatus
}

func (a *App) OnStart(e *core.Engine) error {
	profiler.Init(1 << 10) // ~1K scope samples
	scratch.Init(4096)

	vs, err := assets.LoadShader("renderer2d.vert")
	if err != nil {
		return err
	}
	fs, err := assets.LoadShader("renderer2d.frag")
	if err != nil {
		return err
	}
	a.r2d, err = renderer2d.New(e.Renderer, vs, fs, 10000)
	if err != nil {
		return err
	}
	a.font, err = text.LoadGoRegular(e.Renderer, 32)
	if err != nil {
		return err
	}

	cat, err := i18n.New("en", i18n.WithLogger(e.Log.Named("i18n")))
	if err != nil {
		return err
	}
	if err := cat.LoadFS(models.Locales, "locales/*.yaml"); err != nil {
		return err
	}
	if err := cat.SetLocale(a.locale); err != nil {
		return err
	}

	painter := &text.Painter{R2D: a.r2d, Font: a.font}
	a.panel = NewLayerInspector(painter, cat, &a.stats, e.Log.Named("inspector"))
	e.Layers.Push(a.panel)

	a.status = &LayerStatus{r2d: a.r2d, font: a.font, stats: &a.stats, panel: a.panel}
	e.Layers.Push(a.status)
	return nil
}

func (a *App) OnUpdate(e *core.Engine, dt float64) {
	a.tick++

	now := time.Now()
	if !a.lastFrame.IsZero() {
		a.status.frameDuration = float32(now.Sub(a.lastFrame).Seconds() * 1000.0)
		a.status.tick = a.tick
	}
	a.lastFrame = now
}

func (a *App) OnRender(e *core.Engine, alpha float64) {}

func (a *App) OnEvent(e *core.Engine, ev core.Event) {
	k, ok := ev.(core.EventKey)
	if !ok || !k.Down {
		return
	}
	switch {
	case k.Key == core.KeyEscape:
		e.Window.RequestClose()
	case k.Key == core.KeyP && k.Mods&core.ModCtrl != 0:
		path, err := profiler.Dump()
		if err != nil {
			e.Log.Error("profiler dump", zap.Error(err))
			return
		}
		e.Log.Info("speedscope dump", zap.String("path", path))
	}
}

func (a *App) OnShutdown(e *core.Engine) {
	a.font.Release()
	a.r2d.Release()
}

func main() {
	verbose := flag.Bool("v", false, "log debug output")
	locale := flag.String("locale", "en", "locale of the labels")
	flag.Parse()

	zcfg := zap.NewDevelopmentConfig()
	if !*verbose {
		zcfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	log, err := zcfg.Build()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer log.Sync()

	icon, err := assets.LoadPNG("inspector.png")
	if err != nil {
		log.Fatal("load icon", zap.Error(err))
	}

	cfg := core.Config{
		Title:      "Grove Inspector",
		Width:      1280,
		Height:     720,
		VSync:      true,
		ClearColor: colors.DarkGray,
		Log:        log,
	}
	app := &App{locale: *locale}

	newWindow := func(cfg core.Config) (core.Window, error) {
		return platform.NewGLFWWindow(cfg, platform.Options{Icons: []image.Image{icon}})
	}
	newRenderer := func(win core.Window, cfg core.Config) (core.Renderer, error) {
		return glbackend.NewRendererGL(win, cfg)
	}

	if err := core.Run(app, cfg, newWindow, newRenderer); err != nil {
		log.Fatal("run", zap.Error(err))
	}
}
