package app

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/rook-computer/feltview/internal/render"
	"github.com/rook-computer/feltview/internal/state"
	"github.com/rook-computer/feltview/internal/theme"
	"github.com/rook-computer/feltview/internal/web"
)

func testConfig(t *testing.T) Config {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Server.ListenAddr = ""
	cfg.Surface = render.SurfaceConfig{MinWidth: 10, MinHeight: 10, RetryInterval: time.Millisecond, MaxAttempts: 0}
	cfg.Width, cfg.Height = 320, 240
	cfg.ThemePack = filepath.Join(t.TempDir(), "missing.json")
	return cfg
}

func headsUp() state.TableState {
	return state.TableState{
		HandID: "h-1",
		Seats: []state.SeatView{
			{PlayerID: "p1", DisplayName: "Ann", CurrentStack: 990, CurrentBet: 10, HoleCards: []string{"Ah", "Kd"}, Acting: true},
			{PlayerID: "p2", DisplayName: "Bo", CurrentStack: 995, CurrentBet: 5},
		},
		Pot:    state.Pot{Amount: 15},
		Dealer: state.Dealer{SeatIndex: 1},
		Blinds: state.Blinds{Small: 5, Big: 10},
	}
}

func startApp(t *testing.T, cfg Config) (*App, func() error) {
	t.Helper()
	a, err := New(cfg, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- a.Run(ctx) }()
	stop := func() error {
		cancel()
		select {
		case err := <-errCh:
			return err
		case <-time.After(5 * time.Second):
			return errors.New("run did not return")
		}
	}
	t.Cleanup(func() { _ = stop() })
	return a, stop
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %s", what)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestSubmitStateRendersFrame(t *testing.T) {
	cfg := testConfig(t)
	cfg.PNGPath = filepath.Join(t.TempDir(), "table.png")
	a, _ := startApp(t, cfg)
	ctx := context.Background()

	sub, err := a.SubmitState(ctx, headsUp())
	if err != nil {
		t.Fatalf("SubmitState: %v", err)
	}
	if !sub.Changed || len(sub.Warnings) != 0 {
		t.Fatalf("first submission = %+v", sub)
	}
	waitFor(t, "png frame", func() bool {
		_, err := os.Stat(cfg.PNGPath)
		return err == nil
	})
	snap, ok := a.Frames().Latest()
	if !ok {
		t.Fatal("memory sink has no frame")
	}
	if b := snap.Frame.Bounds(); b.Dx() != 320 || b.Dy() != 240 {
		t.Fatalf("frame bounds = %v", b)
	}

	again, err := a.SubmitState(ctx, headsUp())
	if err != nil {
		t.Fatal(err)
	}
	if again.Changed {
		t.Fatal("identical state should not re-render")
	}
	st, err := a.Status(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if !st.Ready || st.Frames != 1 || st.Width != 320 || st.ThemeSource != theme.SourceEmbedded {
		t.Fatalf("status = %+v", st)
	}
}

func TestSubmitStateReportsWarnings(t *testing.T) {
	a, _ := startApp(t, testConfig(t))
	bad := headsUp()
	bad.Seats[1].Acting = true
	bad.Board = []string{"2c", "3c"}

	sub, err := a.SubmitState(context.Background(), bad)
	if err != nil {
		t.Fatal(err)
	}
	if !sub.Changed || len(sub.Warnings) != 2 {
		t.Fatalf("submission = %+v", sub)
	}
}

func TestViewportDefersUntilSized(t *testing.T) {
	cfg := testConfig(t)
	cfg.Width, cfg.Height = 0, 0
	a, _ := startApp(t, cfg)
	ctx := context.Background()

	if _, err := a.SubmitState(ctx, headsUp()); err != nil {
		t.Fatal(err)
	}
	st, err := a.Status(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if st.Ready || st.Frames != 0 {
		t.Fatalf("status before viewport = %+v", st)
	}
	if err := a.SetViewport(ctx, 640, 360); err != nil {
		t.Fatalf("SetViewport: %v", err)
	}
	waitFor(t, "deferred frame", func() bool {
		snap, ok := a.Frames().Latest()
		return ok && snap.Frame.Bounds().Dx() == 640
	})
}

func TestViewportResizeRedrawsStoredState(t *testing.T) {
	cfg := testConfig(t)
	cfg.Width, cfg.Height = 0, 0
	a, _ := startApp(t, cfg)
	ctx := context.Background()

	if err := a.SetViewport(ctx, 400, 300); err != nil {
		t.Fatal(err)
	}
	st := headsUp()
	st.Effects = []state.Effect{{Type: state.EffectChipToPot, FromSeat: 0, ToSeat: -1, Amount: 10}}
	if _, err := a.SubmitState(ctx, st); err != nil {
		t.Fatal(err)
	}
	waitFor(t, "400x300 frame", func() bool {
		snap, ok := a.Frames().Latest()
		return ok && snap.Frame.Bounds().Dx() == 400
	})

	if err := a.SetViewport(ctx, 800, 600); err != nil {
		t.Fatal(err)
	}
	waitFor(t, "800x600 frame", func() bool {
		snap, ok := a.Frames().Latest()
		return ok && snap.Frame.Bounds().Dx() == 800 && snap.Frame.Bounds().Dy() == 600
	})
	status, err := a.Status(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if status.Frames != 2 || status.Width != 800 {
		t.Fatalf("status = %+v", status)
	}
	if status.IntentsForwarded != 1 {
		t.Fatalf("resize re-sent effects: forwarded = %d", status.IntentsForwarded)
	}
}

func TestStatusAfterCancel(t *testing.T) {
	a, _ := startApp(t, testConfig(t))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	st, err := a.Status(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Status err = %v, want context.Canceled", err)
	}
	if st != (web.Status{}) {
		t.Fatalf("status on error = %+v, want zero value", st)
	}
	if err := a.SelectTheme(ctx, "default"); err == nil {
		t.Fatal("SelectTheme with a cancelled context should fail")
	}
}

func TestSetViewportOnFixedCanvas(t *testing.T) {
	a, _ := startApp(t, testConfig(t))
	if err := a.SetViewport(context.Background(), 800, 600); !errors.Is(err, ErrFixedCanvas) {
		t.Fatalf("err = %v, want ErrFixedCanvas", err)
	}
}

func TestThemeSwitchRerendersWithoutEffects(t *testing.T) {
	cfg := testConfig(t)
	cfg.ThemePack = filepath.Join(t.TempDir(), "pack.json")
	pack := `{"themes": [{"id": "green", "palette": {"felt": "#1E6B3A"}}, {"id": "blue", "palette": {"felt": "#1E3A6B"}}]}`
	if err := os.WriteFile(cfg.ThemePack, []byte(pack), 0o644); err != nil {
		t.Fatal(err)
	}
	a, _ := startApp(t, cfg)
	ctx := context.Background()

	st := headsUp()
	st.Effects = []state.Effect{{Type: state.EffectChipToPot, FromSeat: 0, ToSeat: -1, Amount: 10}}
	if _, err := a.SubmitState(ctx, st); err != nil {
		t.Fatal(err)
	}
	waitFor(t, "frame", func() bool { _, ok := a.Frames().Latest(); return ok })

	if err := a.SelectTheme(ctx, "nope"); !errors.Is(err, theme.ErrUnknownTheme) {
		t.Fatalf("err = %v, want ErrUnknownTheme", err)
	}
	if err := a.SelectTheme(ctx, "blue"); err != nil {
		t.Fatalf("SelectTheme: %v", err)
	}
	if err := a.ReloadThemes(ctx); err != nil {
		t.Fatalf("ReloadThemes: %v", err)
	}
	status, err := a.Status(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if status.Frames != 3 || status.Theme != "blue" {
		t.Fatalf("status = %+v", status)
	}
	if status.IntentsForwarded != 1 {
		t.Fatalf("intents forwarded = %d, want 1", status.IntentsForwarded)
	}
	if diff := cmp.Diff([]string{"green", "blue"}, themeIDs(a.Themes())); diff != "" {
		t.Fatalf("themes (-want +got):\n%s", diff)
	}
}

func themeIDs(defs []theme.ThemeDef) []string {
	ids := make([]string, 0, len(defs))
	for _, d := range defs {
		ids = append(ids, d.ID)
	}
	return ids
}

func TestInitialStateFile(t *testing.T) {
	cfg := testConfig(t)
	cfg.StatePath = filepath.Join(t.TempDir(), "hand.json")
	body := `{"seats": [{"player_id": "p1", "display_name": "Ann", "current_stack": 100}], "board": ["2c", "7d", "Td"], "street": "FLOP"}`
	if err := os.WriteFile(cfg.StatePath, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	a, _ := startApp(t, cfg)
	waitFor(t, "frame from state file", func() bool { _, ok := a.Frames().Latest(); return ok })
}

func TestExitStopsRun(t *testing.T) {
	a, err := New(testConfig(t), nil)
	if err != nil {
		t.Fatal(err)
	}
	errCh := make(chan error, 1)
	go func() { errCh <- a.Run(context.Background()) }()

	want := errors.New("bye")
	a.Exit(want)
	a.Exit(errors.New("ignored"))
	select {
	case got := <-errCh:
		if !errors.Is(got, want) {
			t.Fatalf("Run returned %v, want %v", got, want)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after Exit")
	}
	if _, err := a.SubmitState(context.Background(), headsUp()); err == nil {
		t.Fatal("SubmitState after shutdown should fail")
	}
}

func TestNewFailsOnBadFramebuffer(t *testing.T) {
	cfg := testConfig(t)
	cfg.Framebuffer = filepath.Join(t.TempDir(), "fb9")
	if _, err := New(cfg, nil); err == nil {
		t.Fatal("expected error for missing framebuffer device")
	}
}

func TestWarningsFlattenJoinedErrors(t *testing.T) {
	err := errors.Join(
		errors.Join(errors.New("a"), fmt.Errorf("b: %w", errors.New("inner"))),
		errors.New("c"),
	)
	if diff := cmp.Diff([]string{"a", "b: inner", "c"}, warnings(err)); diff != "" {
		t.Fatalf("warnings (-want +got):\n%s", diff)
	}
	if warnings(nil) != nil {
		t.Fatal("nil error should have no warnings")
	}
}

func TestFileLoggerFormat(t *testing.T) {
	var buf bytes.Buffer
	log := NewFileLogger(&buf)
	log.Infof("surface", "ready %dx%d", 320, 240)
	log.Errorf("web", "boom")
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("lines = %q", lines)
	}
	if !strings.HasSuffix(lines[0], " [INFO] surface: ready 320x240") {
		t.Fatalf("info line = %q", lines[0])
	}
	if !strings.HasSuffix(lines[1], " [ERROR] web: boom") {
		t.Fatalf("error line = %q", lines[1])
	}
	stamp := strings.SplitN(lines[0], " ", 2)[0]
	if _, err := time.Parse(time.RFC3339, stamp); err != nil {
		t.Fatalf("timestamp %q: %v", stamp, err)
	}
}

func TestParseSize(t *testing.T) {
	tests := []struct {
		in      string
		w, h    int
		wantErr bool
	}{
		{in: ""},
		{in: "1280x720", w: 1280, h: 720},
		{in: "800X600", w: 800, h: 600},
		{in: "1280", wantErr: true},
		{in: "x720", wantErr: true},
		{in: "0x720", wantErr: true},
		{in: "axb", wantErr: true},
	}
	for _, tt := range tests {
		w, h, err := ParseSize(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Fatalf("ParseSize(%q): expected error", tt.in)
			}
			continue
		}
		if err != nil || w != tt.w || h != tt.h {
			t.Fatalf("ParseSize(%q) = %d, %d, %v", tt.in, w, h, err)
		}
	}
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv(EnvThemePack, "/etc/feltview/themes.json")
	t.Setenv(EnvTheme, "midnight")
	t.Setenv(EnvSize, "1024x768")
	t.Setenv(EnvListenAddr, ":9090")
	t.Setenv(EnvDevMode, "true")

	cfg, err := ConfigFromEnv(DefaultConfig())
	if err != nil {
		t.Fatalf("ConfigFromEnv: %v", err)
	}
	if cfg.ThemePack != "/etc/feltview/themes.json" || cfg.ThemeID != "midnight" {
		t.Fatalf("theme config = %q %q", cfg.ThemePack, cfg.ThemeID)
	}
	if cfg.Width != 1024 || cfg.Height != 768 {
		t.Fatalf("size = %dx%d", cfg.Width, cfg.Height)
	}
	if cfg.Server.ListenAddr != ":9090" || !cfg.Server.DevMode {
		t.Fatalf("server = %+v", cfg.Server)
	}

	t.Setenv(EnvSize, "huge")
	if _, err := ConfigFromEnv(DefaultConfig()); err == nil {
		t.Fatal("expected error for bad size")
	}
	t.Setenv(EnvSize, "")

	t.Setenv(EnvDevMode, "maybe")
	if _, err := ConfigFromEnv(DefaultConfig()); err == nil {
		t.Fatal("expected error for non-boolean dev mode")
	}
	t.Setenv(EnvDevMode, "")

	t.Setenv(EnvListenAddr, "OFF")
	cfg, err = ConfigFromEnv(DefaultConfig())
	if err != nil || cfg.Server.ListenAddr != "" {
		t.Fatalf("listen off = %q, %v", cfg.Server.ListenAddr, err)
	}
	t.Setenv(EnvListenAddr, "")
	cfg, err = ConfigFromEnv(DefaultConfig())
	if err != nil || cfg.Server.ListenAddr != ":8080" || cfg.Server.DevMode {
		t.Fatalf("defaults = %+v, %v", cfg.Server, err)
	}
}

func TestParseListen(t *testing.T) {
	for in, want := range map[string]string{
		"off":            "",
		" Off ":          "",
		"9090":           ":9090",
		":8080":          ":8080",
		"127.0.0.1:9000": "127.0.0.1:9000",
	} {
		if got := ParseListen(in); got != want {
			t.Fatalf("ParseListen(%q) = %q, want %q", in, got, want)
		}
	}
}
