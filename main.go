package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rook-computer/feltview/internal/app"
)

const envStdioLog = "FELTVIEW_STDIO_LOG"

func main() {
	cfg := app.DefaultConfig()

	debug := flag.Bool("debug", false, "enable debug logging to ./feltview-debug.log")
	stdioLog := flag.String("stdio-log", "", "redirect stdout+stderr (including panics) to this file; also configurable via "+envStdioLog)
	size := flag.String("size", "", "fixed canvas size such as 1280x720; empty follows the viewport set over HTTP")
	flag.StringVar(&cfg.ThemePack, "theme-pack", "", "theme pack JSON file; falls back to the embedded pack")
	flag.StringVar(&cfg.ThemeID, "theme", "", "theme id to select")
	flag.StringVar(&cfg.PNGPath, "png", "", "write every frame to this PNG file")
	flag.BoolVar(&cfg.PNGSequence, "png-seq", false, "number PNG frames instead of overwriting")
	flag.StringVar(&cfg.Framebuffer, "fb", "", "framebuffer device to draw to, e.g. /dev/fb0")
	flag.BoolVar(&cfg.TakeConsole, "take-console", false, "switch the console to graphics mode while drawing to the framebuffer")
	flag.BoolVar(&cfg.Terminal, "term", false, "preview frames in the terminal")
	flag.StringVar(&cfg.ExitKey, "exit-key", "", "console key that quits (esc, q, f4)")
	flag.StringVar(&cfg.StatePath, "state", "", "table state JSON to render at startup")
	listen := flag.String("listen", cfg.Server.ListenAddr, "HTTP API listen address; empty or off disables it")
	flag.Parse()

	// Best-effort: redirect all stdout/stderr output (including panic stack traces)
	// to a file so crashes are diagnosable even when the console is left in graphics mode.
	logPath := *stdioLog
	if logPath == "" {
		logPath = os.Getenv(envStdioLog)
	}
	if logPath != "" {
		if err := redirectStdIO(logPath); err != nil {
			fmt.Println("stdio log redirect error:", err)
		}
	}

	var logger app.Logger = app.NoopLogger{}
	if *debug {
		f, err := os.OpenFile("./feltview-debug.log", os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err == nil {
			defer f.Close()
			logger = app.NewFileLogger(f)
			logger.Infof("main", "debug logging enabled")
		} else {
			fmt.Println("debug log open error:", err)
		}
	}

	cfg.Server.ListenAddr = app.ParseListen(*listen)
	cfg, err := app.ConfigFromEnv(cfg)
	if err != nil {
		fmt.Println("config error:", err)
		os.Exit(2)
	}
	if *size != "" {
		if cfg.Width, cfg.Height, err = app.ParseSize(*size); err != nil {
			fmt.Println("config error:", err)
			os.Exit(2)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(cfg, logger)
	if err != nil {
		fmt.Println("app start error:", err)
		os.Exit(1)
	}
	if cfg.Server.ListenAddr != "" && !cfg.Terminal {
		fmt.Println("feltview listening on", cfg.Server.ListenAddr)
	}
	if err := a.Run(ctx); err != nil {
		fmt.Println("app error:", err)
		os.Exit(1)
	}
}
