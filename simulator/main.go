package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/rook-computer/feltview/internal/app"
)

func main() {
	// The renderer's HTTP API stays off unless FELTVIEW_LISTEN is set.
	base := app.DefaultConfig()
	base.Server.ListenAddr = ""
	cfg, err := app.ConfigFromEnv(base)
	if err != nil {
		fmt.Println("config error:", err)
		os.Exit(2)
	}

	scenario := flag.String("scenario", "heads-up", "scripted hand: "+strings.Join(scriptNames(), " | "))
	outDir := flag.String("out", "/tmp/feltview-sim", "directory receiving one PNG per frame")
	size := flag.String("size", "1280x720", "canvas size")
	themePack := flag.String("theme-pack", "", "theme pack JSON file")
	themeID := flag.String("theme", "", "theme id")
	interval := flag.Duration("interval", 0, "delay between steps; zero renders the whole hand and exits")
	repeat := flag.Bool("loop", false, "start the hand over when it ends (needs -interval)")
	control := flag.String("control", "", "listen address for the /sim control endpoints (optional)")
	verbose := flag.Bool("v", false, "log every component, not only intents")
	flag.Parse()

	processCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *themePack != "" {
		cfg.ThemePack = *themePack
	}
	if *themeID != "" {
		cfg.ThemeID = *themeID
	}
	if cfg.Width, cfg.Height, err = app.ParseSize(*size); err != nil {
		fmt.Println("size error:", err)
		os.Exit(2)
	}
	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		fmt.Println("output dir error:", err)
		os.Exit(1)
	}
	cfg.PNGPath = filepath.Join(*outDir, "table.png")
	cfg.PNGSequence = true

	logger := &stdoutLogger{out: os.Stdout, errOut: os.Stderr, verbose: *verbose}
	a, err := app.New(cfg, logger)
	if err != nil {
		fmt.Println("app error:", err)
		os.Exit(1)
	}

	runCtx, cancel := context.WithCancel(processCtx)
	defer cancel()
	runErr := make(chan error, 1)
	go func() { runErr <- a.Run(runCtx) }()

	if err := waitReady(processCtx, a); err != nil {
		fmt.Println("surface error:", err)
		os.Exit(1)
	}

	sim := NewSimControl(processCtx, a, *scenario)
	if err := sim.ApplyScenario(*scenario); err != nil {
		fmt.Println("scenario init error:", err)
		os.Exit(2)
	}

	var server *http.Server
	if *control != "" {
		mux := http.NewServeMux()
		registerSimEndpoints(mux, sim)
		server = &http.Server{Addr: *control, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
		go func() {
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				fmt.Println("control server error:", err)
			}
		}()
		fmt.Println("Simulator control on", *control)
	}

	fmt.Println("Scenario:", *scenario)
	fmt.Println("Frames:", *outDir)

	switch {
	case *interval > 0:
		err = sim.Play(processCtx, *interval, *repeat)
	case server != nil:
		// Stepping is driven through /sim/step.
		<-processCtx.Done()
	default:
		for err == nil {
			_, err = sim.Step(processCtx)
		}
		if errors.Is(err, errScriptDone) {
			err = nil
		}
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		fmt.Println("simulation error:", err)
	}

	st := sim.Status()
	fmt.Printf("Rendered %d/%d steps of %s, %d warnings\n", st.Step, st.Steps, st.Scenario, st.Warnings)

	if server != nil {
		<-processCtx.Done()
		_ = server.Close()
	}
	cancel()
	if err := <-runErr; err != nil {
		fmt.Println("app error:", err)
	}
}

// waitReady blocks until the surface exists, so no frame is lost to the
// single deferred render slot.
func waitReady(ctx context.Context, a *app.App) error {
	for {
		st, err := a.Status(ctx)
		if err != nil {
			return err
		}
		if st.Ready {
			return nil
		}
		if st.Exhausted {
			return errors.New("surface never became ready")
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(10 * time.Millisecond):
		}
	}
}
