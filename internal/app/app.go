package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync/atomic"
	"time"

	"github.com/rook-computer/feltview/internal/intent"
	"github.com/rook-computer/feltview/internal/loop"
	"github.com/rook-computer/feltview/internal/raster"
	"github.com/rook-computer/feltview/internal/render"
	"github.com/rook-computer/feltview/internal/render/components"
	"github.com/rook-computer/feltview/internal/sink"
	"github.com/rook-computer/feltview/internal/state"
	"github.com/rook-computer/feltview/internal/system"
	"github.com/rook-computer/feltview/internal/theme"
	"github.com/rook-computer/feltview/internal/web"
)

var ErrFixedCanvas = errors.New("canvas size is fixed by configuration")

// App owns the render loop and everything that feeds it. Every touch of
// the surface happens on the loop goroutine.
type App struct {
	Config Config
	Logger Logger

	loop     *loop.Loop
	store    *state.Store
	themes   *theme.Manager
	host     render.Host
	viewport *render.ViewportHost
	surfaces *render.SurfaceManager
	layers   *render.LayerManager
	pipeline *render.Pipeline
	bridge   *intent.Bridge
	hub      *web.Hub
	frames   *sink.Memory
	sinks    *sink.Fanout
	Web      web.Server

	exitOnce atomic.Bool
	exitCh   chan error
}

// New wires the renderer from cfg. Sinks that cannot be opened are
// errors; a theme pack that cannot be loaded falls back and is logged.
func New(cfg Config, logger Logger) (*App, error) {
	if logger == nil {
		logger = NoopLogger{}
	}
	app := &App{
		Config: cfg,
		Logger: logger,
		loop:   loop.New(64),
		store:  state.NewStore(),
		frames: sink.NewMemory(),
		exitCh: make(chan error, 1),
	}
	app.themes = theme.NewManager(cfg.ThemePack, cfg.ThemeID, logger)

	if cfg.Width > 0 || cfg.Height > 0 {
		app.host = render.StaticHost{Width: cfg.Width, Height: cfg.Height}
	} else {
		app.viewport = render.NewViewportHost()
		app.host = app.viewport
	}
	app.surfaces = render.NewSurfaceManager(app.host, app.loop, cfg.Surface, logger)
	// A new surface starts empty. Redraw the stored state unless a deferred
	// render is about to run.
	app.surfaces.OnReady = func(w, h int) {
		logger.Infof("app", "surface ready %dx%d", w, h)
		if app.store.Applied() && !app.surfaces.HasDeferred() {
			app.rerender()
		}
	}
	app.layers = render.NewLayerManager(app.surfaces)

	sinks, err := openSinks(cfg, app.frames, logger)
	if err != nil {
		return nil, err
	}
	app.sinks = sinks

	app.hub = web.NewHub(logger)
	app.hub.States = app
	app.bridge = intent.NewBridge(intent.Fanout(app.hub.Publish, app.logIntent), logger)

	app.pipeline = render.NewPipeline(app.surfaces, app.layers, render.PipelineOptions{
		Tokens:  app.themes,
		Effects: app.bridge,
		Logger:  logger,
	})
	app.pipeline.Register(components.Default()...)
	app.pipeline.AddPresenter(raster.NewPresenter(raster.New(logger), app.sinks))

	if cfg.Server.ListenAddr != "" {
		srv := web.NewHTTPServer(cfg.Server, web.APIV1Deps{
			State:    app,
			Frames:   app.frames,
			Themes:   app,
			Viewport: app,
			Status:   app,
			Intents:  app.hub,
		})
		srv.Logger = logger
		app.Web = srv
	} else {
		app.Web = web.NoopServer{}
	}
	return app, nil
}

func openSinks(cfg Config, mem *sink.Memory, logger Logger) (*sink.Fanout, error) {
	out := sink.NewFanout(mem)
	if cfg.PNGPath != "" {
		out.Add(sink.NewPNGFile(cfg.PNGPath, cfg.PNGSequence))
	}
	if cfg.Framebuffer != "" {
		fb, err := sink.OpenFramebuffer(cfg.Framebuffer, cfg.TakeConsole, logger)
		if err != nil {
			_ = out.Close()
			return nil, fmt.Errorf("open framebuffer %s: %w", cfg.Framebuffer, err)
		}
		out.Add(fb)
	}
	if cfg.Terminal {
		term, err := sink.OpenTerminal(logger)
		if err != nil {
			_ = out.Close()
			return nil, fmt.Errorf("open terminal preview: %w", err)
		}
		out.Add(term)
	}
	return out, nil
}

// Exit requests the app to stop running.
func (app *App) Exit(err error) {
	if app.exitCh == nil {
		return
	}
	if !app.exitOnce.CompareAndSwap(false, true) {
		return
	}
	select {
	case app.exitCh <- err:
	default:
	}
}

// Run starts the loop, the surface polling and the web server, then blocks
// until ctx is done or Exit is called.
func (app *App) Run(ctx context.Context) error {
	loopCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() { _ = app.loop.Run(loopCtx) }()
	app.loop.Post(app.surfaces.Start)

	if err := app.Web.Start(loopCtx); err != nil {
		app.Logger.Errorf("app", "web start error: %v", err)
		cancel()
		<-app.loop.Done()
		_ = app.sinks.Close()
		return err
	}

	if key, ok, err := system.ParseKey(app.Config.ExitKey); err != nil {
		app.Logger.Errorf("app", "%v", err)
	} else if ok {
		system.StartExitOnKey(loopCtx, app.Logger, key, func() { app.Exit(nil) })
	}

	if app.Config.StatePath != "" {
		if err := app.submitFile(loopCtx, app.Config.StatePath); err != nil {
			app.Logger.Errorf("app", "initial state: %v", err)
		}
	}

	var err error
	select {
	case <-ctx.Done():
		err = ctx.Err()
	case err = <-app.exitCh:
	}
	cancel()
	<-app.loop.Done()
	if serr := app.Web.Stop(); serr != nil {
		app.Logger.Errorf("app", "web stop error: %v", serr)
	}
	if cerr := app.sinks.Close(); cerr != nil {
		app.Logger.Errorf("app", "close sinks: %v", cerr)
	}
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func (app *App) submitFile(ctx context.Context, path string) error {
	st, err := state.LoadFile(path)
	if err != nil {
		return err
	}
	sub, err := app.SubmitState(ctx, st)
	if err != nil {
		return err
	}
	for _, w := range sub.Warnings {
		app.Logger.Errorf("app", "%s: %s", path, w)
	}
	return nil
}

// SubmitState applies st and renders it when it differs from the last
// state. Invariant violations are reported, never fatal.
func (app *App) SubmitState(ctx context.Context, st state.TableState) (web.Submission, error) {
	result := make(chan web.Submission, 1)
	err := app.loop.Do(ctx, func() {
		changed, verr := app.store.Apply(st)
		if changed {
			app.pipeline.RenderOnce(st)
		}
		result <- web.Submission{Changed: changed, Warnings: warnings(verr)}
	})
	if err != nil {
		return web.Submission{}, fmt.Errorf("submit state: %w", err)
	}
	sub := <-result
	for _, w := range sub.Warnings {
		app.Logger.Errorf("state", "%s", w)
	}
	return sub, nil
}

func warnings(err error) []string {
	if err == nil {
		return nil
	}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		var out []string
		for _, e := range joined.Unwrap() {
			out = append(out, warnings(e)...)
		}
		return out
	}
	return []string{err.Error()}
}

// rerender draws the stored state again without re-sending its effects.
func (app *App) rerender() {
	st := app.store.Snapshot()
	st.Effects = nil
	app.pipeline.RenderOnce(st)
}

func (app *App) Themes() []theme.ThemeDef { return app.themes.Themes() }

func (app *App) Active() theme.ThemeDef { return app.themes.Active() }

func (app *App) SelectTheme(ctx context.Context, id string) error {
	result := make(chan error, 1)
	if err := app.loop.Do(ctx, func() {
		err := app.themes.Select(id)
		if err == nil {
			app.rerender()
		}
		result <- err
	}); err != nil {
		return err
	}
	return <-result
}

func (app *App) ReloadThemes(ctx context.Context) error {
	return app.loop.Do(ctx, func() {
		app.themes.Reload()
		app.rerender()
	})
}

// SetViewport resizes the host when the canvas follows the client.
func (app *App) SetViewport(ctx context.Context, width, height int) error {
	if app.viewport == nil {
		return ErrFixedCanvas
	}
	return app.loop.Do(ctx, func() {
		if app.viewport.Resize(width, height) {
			app.surfaces.NotifyLayout()
		}
	})
}

func (app *App) Status(ctx context.Context) (web.Status, error) {
	result := make(chan web.Status, 1)
	err := app.loop.Do(ctx, func() {
		var st web.Status
		st.Ready = app.surfaces.IsReady()
		if s := app.surfaces.Surface(); s != nil {
			st.Width, st.Height = s.Size()
		}
		st.Attempts = app.surfaces.Attempts()
		st.Exhausted = app.surfaces.Exhausted()
		st.Frames = app.pipeline.Frames()
		result <- st
	})
	if err != nil {
		return web.Status{}, err
	}
	st := <-result
	st.Theme = app.themes.Active().ID
	st.ThemeSource = app.themes.Source()
	st.IntentsForwarded, st.IntentsFailed = app.bridge.Stats()
	return st, nil
}

// Frames exposes the latest rendered frame.
func (app *App) Frames() *sink.Memory { return app.frames }

func (app *App) logIntent(in intent.Intent) {
	app.Logger.Infof("intent", "%s %s seat %d -> %d amount %d", in.Type, in.Payload.Type, in.Payload.FromSeat, in.Payload.ToSeat, in.Payload.Amount)
}

// Logger interface and implementations
type Logger interface {
	Infof(component string, format string, args ...interface{})
	Errorf(component string, format string, args ...interface{})
}

type NoopLogger struct{}

func (NoopLogger) Infof(component, format string, args ...interface{})  {}
func (NoopLogger) Errorf(component, format string, args ...interface{}) {}

type FileLogger struct{ w io.Writer }

func NewFileLogger(w io.Writer) FileLogger { return FileLogger{w: w} }
func (l FileLogger) Infof(component string, format string, args ...interface{}) {
	writeLog(l.w, "INFO", component, format, args...)
}
func (l FileLogger) Errorf(component string, format string, args ...interface{}) {
	writeLog(l.w, "ERROR", component, format, args...)
}

func writeLog(w io.Writer, level, component, format string, args ...interface{}) {
	timestamp := time.Now().Format(time.RFC3339)
	msg := fmt.Sprintf(format, args...)
	_, _ = io.WriteString(w, timestamp+" ["+level+"] "+component+": "+msg+"\n")
}
