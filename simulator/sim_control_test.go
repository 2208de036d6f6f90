package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/rook-computer/feltview/internal/state"
	"github.com/rook-computer/feltview/internal/web"
)

type recordingTarget struct {
	states []state.TableState
	store  *state.Store
}

func (r *recordingTarget) SubmitState(ctx context.Context, st state.TableState) (web.Submission, error) {
	r.states = append(r.states, st)
	changed, err := r.store.Apply(st)
	sub := web.Submission{Changed: changed}
	if err != nil {
		sub.Warnings = append(sub.Warnings, err.Error())
	}
	return sub, nil
}

func TestScriptsAreValidHands(t *testing.T) {
	wantSeats := map[string]int{"heads-up": 2, "six-max": 6, "full-ring": 9}
	if diff := cmp.Diff([]string{"full-ring", "heads-up", "six-max"}, scriptNames()); diff != "" {
		t.Fatalf("scenarios (-want +got):\n%s", diff)
	}
	for name, seats := range wantSeats {
		t.Run(name, func(t *testing.T) {
			states, err := loadScript(name)
			if err != nil {
				t.Fatal(err)
			}
			if len(states) < 10 {
				t.Fatalf("only %d steps", len(states))
			}
			var prev state.TableState
			var chips int64
			for i, st := range states {
				if len(st.Seats) != seats {
					t.Fatalf("step %d: %d seats", i, len(st.Seats))
				}
				if err := st.Validate(); err != nil {
					t.Fatalf("step %d: %v", i, err)
				}
				if i > 0 {
					if err := state.ValidateTransition(prev, st); err != nil {
						t.Fatalf("step %d: %v", i, err)
					}
				}
				total := st.Pot.Total()
				for _, seat := range st.Seats {
					if seat.CurrentStack < 0 {
						t.Fatalf("step %d: negative stack for %s", i, seat.DisplayName)
					}
					total += seat.CurrentStack + seat.CurrentBet
				}
				if i == 0 {
					chips = total
				} else if total != chips {
					t.Fatalf("step %d: chips not conserved: %d != %d", i, total, chips)
				}
				prev = st
			}
			last := states[len(states)-1]
			winners := 0
			for _, seat := range last.Seats {
				if seat.Winner {
					winners++
				}
			}
			if winners != 1 || last.Effects[0].Type != state.EffectPotToWinner {
				t.Fatalf("final step: %d winners, effects %+v", winners, last.Effects)
			}
		})
	}
	if _, err := loadScript("omaha"); err == nil {
		t.Fatal("expected error for unknown scenario")
	}
}

func TestScriptsAreDeterministic(t *testing.T) {
	a, _ := loadScript("six-max")
	b, _ := loadScript("six-max")
	if diff := cmp.Diff(a, b); diff != "" {
		t.Fatalf("six-max differs between runs (-a +b):\n%s", diff)
	}
}

func TestStepPlaysHandToTheEnd(t *testing.T) {
	target := &recordingTarget{store: state.NewStore()}
	c := NewSimControl(context.Background(), target, "")
	if err := c.ApplyScenario(""); err != nil {
		t.Fatal(err)
	}
	if got := c.Status().Scenario; got != "heads-up" {
		t.Fatalf("default scenario = %q", got)
	}
	steps := c.Status().Steps
	for i := 0; i < steps; i++ {
		if _, err := c.Step(context.Background()); err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
	}
	if _, err := c.Step(context.Background()); !errors.Is(err, errScriptDone) {
		t.Fatalf("err = %v, want errScriptDone", err)
	}
	if len(target.states) != steps || c.Status().Warnings != 0 {
		t.Fatalf("submitted %d of %d, status %+v", len(target.states), steps, c.Status())
	}
	if err := c.Reset(); err != nil || c.Status().Step != 0 {
		t.Fatalf("reset: %v %+v", err, c.Status())
	}
}

func TestPlayStopsAtEnd(t *testing.T) {
	target := &recordingTarget{store: state.NewStore()}
	c := NewSimControl(context.Background(), target, "heads-up")
	if err := c.ApplyScenario(""); err != nil {
		t.Fatal(err)
	}
	if err := c.Play(context.Background(), time.Microsecond, false); err != nil {
		t.Fatalf("Play: %v", err)
	}
	if st := c.Status(); st.Step != st.Steps {
		t.Fatalf("status = %+v", st)
	}
}

func TestSimEndpoints(t *testing.T) {
	target := &recordingTarget{store: state.NewStore()}
	c := NewSimControl(context.Background(), target, "heads-up")
	if err := c.ApplyScenario(""); err != nil {
		t.Fatal(err)
	}
	mux := http.NewServeMux()
	registerSimEndpoints(mux, c)

	do := func(method, path string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(method, path, nil))
		return rec
	}

	if rec := do(http.MethodPost, "/sim/step"); rec.Code != http.StatusOK {
		t.Fatalf("step: %d %s", rec.Code, rec.Body)
	}
	if rec := do(http.MethodGet, "/sim/step"); rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("GET step: %d", rec.Code)
	}
	if rec := do(http.MethodPost, "/sim/scenario/nine-max"); rec.Code != http.StatusBadRequest {
		t.Fatalf("bad scenario: %d", rec.Code)
	}
	rec := do(http.MethodPost, "/sim/scenario/full-ring")
	var st SimStatus
	if err := json.NewDecoder(rec.Body).Decode(&st); err != nil {
		t.Fatal(err)
	}
	if st.Scenario != "full-ring" || st.Step != 0 {
		t.Fatalf("status = %+v", st)
	}
	rec = do(http.MethodGet, "/sim/status")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"six-max"`) {
		t.Fatalf("status: %d %s", rec.Code, rec.Body)
	}
	if rec := do(http.MethodPost, "/sim/reset"); rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "heads-up") {
		t.Fatalf("reset: %d %s", rec.Code, rec.Body)
	}
}

func TestStdoutLoggerPrintsIntents(t *testing.T) {
	var out, errOut bytes.Buffer
	l := &stdoutLogger{out: &out, errOut: &errOut}
	l.Infof("surface", "ready")
	l.Infof("intent", "REQUEST_SOUND")
	l.Errorf("render", "boom")
	if out.String() != "intent  REQUEST_SOUND\n" {
		t.Fatalf("stdout = %q", out.String())
	}
	if errOut.String() != "render  boom\n" {
		t.Fatalf("stderr = %q", errOut.String())
	}
}
