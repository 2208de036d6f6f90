package app

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/rook-computer/feltview/internal/render"
	"github.com/rook-computer/feltview/internal/web"
)

const (
	EnvListenAddr = "FELTVIEW_LISTEN"
	EnvDevMode    = "FELTVIEW_DEV"
	EnvThemePack  = "FELTVIEW_THEME_PACK"
	EnvTheme      = "FELTVIEW_THEME"
	EnvSize       = "FELTVIEW_SIZE"
)

// ListenOff as a listen address disables the HTTP API.
const ListenOff = "off"

// Config selects the canvas, the theme and where frames go.
type Config struct {
	Surface render.SurfaceConfig

	// Width and Height fix the canvas. When both are zero the canvas
	// follows the viewport set through the API.
	Width  int
	Height int

	ThemePack string
	ThemeID   string

	PNGPath     string
	PNGSequence bool
	Framebuffer string
	TakeConsole bool
	Terminal    bool

	// ExitKey names the key that stops the app on the framebuffer console.
	ExitKey string

	// Server.ListenAddr empty disables the HTTP API.
	Server web.ServerConfig

	// StatePath is rendered once the surface is ready.
	StatePath string
}

func DefaultConfig() Config {
	return Config{
		Surface: render.DefaultSurfaceConfig(),
		Server:  web.ServerConfig{ListenAddr: ":8080"},
	}
}

// ConfigFromEnv overlays environment settings on base.
func ConfigFromEnv(base Config) (Config, error) {
	cfg := base
	if v := os.Getenv(EnvListenAddr); v != "" {
		cfg.Server.ListenAddr = ParseListen(v)
	}
	if raw := os.Getenv(EnvDevMode); raw != "" {
		dev, err := strconv.ParseBool(raw)
		if err != nil {
			return Config{}, fmt.Errorf("%s must be a boolean (got %q): %w", EnvDevMode, raw, err)
		}
		cfg.Server.DevMode = dev
	}
	if v := os.Getenv(EnvThemePack); v != "" {
		cfg.ThemePack = v
	}
	if v := os.Getenv(EnvTheme); v != "" {
		cfg.ThemeID = v
	}
	if v := os.Getenv(EnvSize); v != "" {
		w, h, err := ParseSize(v)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", EnvSize, err)
		}
		cfg.Width, cfg.Height = w, h
	}
	return cfg, nil
}

// ParseListen maps "off" (any case) to the empty address that disables the
// API. A bare port such as "9090" gets its colon.
func ParseListen(addr string) string {
	addr = strings.TrimSpace(addr)
	if strings.EqualFold(addr, ListenOff) {
		return ""
	}
	if _, err := strconv.Atoi(addr); err == nil {
		return ":" + addr
	}
	return addr
}

// ParseSize parses "WIDTHxHEIGHT". An empty string means no fixed size.
func ParseSize(s string) (int, int, error) {
	if s == "" {
		return 0, 0, nil
	}
	ws, hs, ok := strings.Cut(strings.ToLower(s), "x")
	if !ok {
		return 0, 0, fmt.Errorf("size must look like 1280x720 (got %q)", s)
	}
	w, err := strconv.Atoi(ws)
	if err != nil {
		return 0, 0, fmt.Errorf("size width %q: %w", ws, err)
	}
	h, err := strconv.Atoi(hs)
	if err != nil {
		return 0, 0, fmt.Errorf("size height %q: %w", hs, err)
	}
	if w <= 0 || h <= 0 {
		return 0, 0, fmt.Errorf("size must be positive (got %q)", s)
	}
	return w, h, nil
}
