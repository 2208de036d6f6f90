package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/rook-computer/feltview/internal/state"
	"github.com/rook-computer/feltview/internal/web"
)

var errScriptDone = errors.New("scenario finished")

type submitter interface {
	SubmitState(ctx context.Context, st state.TableState) (web.Submission, error)
}

// SimControl steps a scripted hand through the renderer.
type SimControl struct {
	processCtx      context.Context
	target          submitter
	startupScenario string

	mu       sync.Mutex
	scenario string
	states   []state.TableState
	pos      int
	warnings int
}

func NewSimControl(processCtx context.Context, target submitter, startupScenario string) *SimControl {
	if processCtx == nil {
		processCtx = context.Background()
	}
	c := &SimControl{processCtx: processCtx, target: target, startupScenario: strings.TrimSpace(startupScenario)}
	if c.startupScenario == "" {
		c.startupScenario = "heads-up"
	}
	return c
}

func (c *SimControl) ApplyScenario(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		name = c.startupScenario
	}
	states, err := loadScript(name)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.scenario, c.states, c.pos, c.warnings = name, states, 0, 0
	c.mu.Unlock()
	return nil
}

func (c *SimControl) Reset() error {
	return c.ApplyScenario(c.startupScenario)
}

type SimStatus struct {
	Scenario string `json:"scenario"`
	Step     int    `json:"step"`
	Steps    int    `json:"steps"`
	Warnings int    `json:"warnings"`
}

func (c *SimControl) Status() SimStatus {
	c.mu.Lock()
	defer c.mu.Unlock()
	return SimStatus{Scenario: c.scenario, Step: c.pos, Steps: len(c.states), Warnings: c.warnings}
}

// Step submits the next snapshot. It returns errScriptDone once the hand
// has been played out.
func (c *SimControl) Step(ctx context.Context) (web.Submission, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pos >= len(c.states) {
		return web.Submission{}, errScriptDone
	}
	sub, err := c.target.SubmitState(ctx, c.states[c.pos])
	if err != nil {
		return sub, fmt.Errorf("step %d of %s: %w", c.pos, c.scenario, err)
	}
	c.pos++
	c.warnings += len(sub.Warnings)
	return sub, nil
}

// Play steps every interval until the hand ends. With repeat the hand
// starts over instead.
func (c *SimControl) Play(ctx context.Context, interval time.Duration, repeat bool) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		_, err := c.Step(ctx)
		switch {
		case errors.Is(err, errScriptDone) && repeat:
			if err := c.ApplyScenario(c.Status().Scenario); err != nil {
				return err
			}
			continue
		case errors.Is(err, errScriptDone):
			return nil
		case err != nil:
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-c.processCtx.Done():
			return c.processCtx.Err()
		case <-ticker.C:
		}
	}
}

func registerSimEndpoints(mux *http.ServeMux, control *SimControl) {
	mux.HandleFunc("/sim/reset", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeSimError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		if err := control.Reset(); err != nil {
			writeSimError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeSimJSON(w, http.StatusOK, control.Status())
	})

	mux.HandleFunc("/sim/scenario/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeSimError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		name := strings.Trim(strings.TrimPrefix(r.URL.Path, "/sim/scenario/"), "/")
		if err := control.ApplyScenario(name); err != nil {
			writeSimError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeSimJSON(w, http.StatusOK, control.Status())
	})

	mux.HandleFunc("/sim/step", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeSimError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		sub, err := control.Step(r.Context())
		switch {
		case errors.Is(err, errScriptDone):
			writeSimError(w, http.StatusConflict, err.Error())
			return
		case err != nil:
			writeSimError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeSimJSON(w, http.StatusOK, map[string]any{"status": control.Status(), "submission": sub})
	})

	mux.HandleFunc("/sim/status", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeSimError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		writeSimJSON(w, http.StatusOK, map[string]any{"status": control.Status(), "scenarios": scriptNames()})
	})
}

func writeSimJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeSimError(w http.ResponseWriter, status int, message string) {
	writeSimJSON(w, status, map[string]any{"error": message})
}

// stdoutLogger prints intents to out and errors to errOut. Verbose adds
// every other info line.
type stdoutLogger struct {
	mu      sync.Mutex
	out     io.Writer
	errOut  io.Writer
	verbose bool
}

func (l *stdoutLogger) Infof(component, format string, args ...interface{}) {
	if component != "intent" && !l.verbose {
		return
	}
	l.print(l.out, component, format, args...)
}

func (l *stdoutLogger) Errorf(component, format string, args ...interface{}) {
	l.print(l.errOut, component, format, args...)
}

func (l *stdoutLogger) print(w io.Writer, component, format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(w, "%-7s %s\n", component, fmt.Sprintf(format, args...))
}
