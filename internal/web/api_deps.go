package web

import (
	"context"
	"errors"

	"github.com/rook-computer/feltview/internal/sink"
	"github.com/rook-computer/feltview/internal/state"
	"github.com/rook-computer/feltview/internal/theme"
)

var errNotConfigured = errors.New("not configured")

// StateSubmitter accepts table states for rendering. Invariant violations
// come back as warnings; the state is rendered regardless.
type StateSubmitter interface {
	SubmitState(ctx context.Context, st state.TableState) (Submission, error)
}

type Submission struct {
	Changed  bool     `json:"changed"`
	Warnings []string `json:"warnings,omitempty"`
}

// FrameSource serves the last rendered frame.
type FrameSource interface {
	PNG() ([]byte, sink.Snapshot, error)
}

// ThemeController lists and switches themes. Switching re-renders the
// current state.
type ThemeController interface {
	Themes() []theme.ThemeDef
	Active() theme.ThemeDef
	SelectTheme(ctx context.Context, id string) error
	ReloadThemes(ctx context.Context) error
}

// ViewportController sets the extent of the render host.
type ViewportController interface {
	SetViewport(ctx context.Context, width, height int) error
}

// StatusReporter describes the renderer for GET /status.
type StatusReporter interface {
	Status(ctx context.Context) (Status, error)
}

type Status struct {
	Ready            bool   `json:"ready"`
	Width            int    `json:"width"`
	Height           int    `json:"height"`
	Attempts         int    `json:"attempts"`
	Exhausted        bool   `json:"exhausted"`
	Frames           uint64 `json:"frames"`
	Theme            string `json:"theme"`
	ThemeSource      string `json:"theme_source"`
	IntentsForwarded uint64 `json:"intents_forwarded"`
	IntentsFailed    uint64 `json:"intents_failed"`
	IntentsDropped   uint64 `json:"intents_dropped"`
	Consumers        int    `json:"consumers"`
}

type APIV1Deps struct {
	State    StateSubmitter
	Frames   FrameSource
	Themes   ThemeController
	Viewport ViewportController
	Status   StatusReporter
	Intents  *Hub
}

func (d APIV1Deps) withDefaults() APIV1Deps {
	out := d
	if out.State == nil {
		out.State = noopDeps{}
	}
	if out.Frames == nil {
		out.Frames = noopDeps{}
	}
	if out.Themes == nil {
		out.Themes = noopDeps{}
	}
	if out.Viewport == nil {
		out.Viewport = noopDeps{}
	}
	if out.Status == nil {
		out.Status = noopDeps{}
	}
	return out
}

type noopDeps struct{}

func (noopDeps) SubmitState(context.Context, state.TableState) (Submission, error) {
	return Submission{}, errNotConfigured
}

func (noopDeps) PNG() ([]byte, sink.Snapshot, error) { return nil, sink.Snapshot{}, sink.ErrNoFrame }

func (noopDeps) Themes() []theme.ThemeDef { return nil }

func (noopDeps) Active() theme.ThemeDef { return theme.ThemeDef{} }

func (noopDeps) SelectTheme(context.Context, string) error { return errNotConfigured }

func (noopDeps) ReloadThemes(context.Context) error { return errNotConfigured }

func (noopDeps) SetViewport(context.Context, int, int) error { return errNotConfigured }

func (noopDeps) Status(context.Context) (Status, error) { return Status{}, errNotConfigured }
