package web

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/rook-computer/feltview/internal/sink"
	"github.com/rook-computer/feltview/internal/state"
	"github.com/rook-computer/feltview/internal/theme"
)

// largest accepted state or viewport body
const maxBodyBytes = 1 << 20

type apiError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type okResponse struct {
	OK bool `json:"ok"`
}

type themeEntry struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Active bool   `json:"active"`
}

type themesResponse struct {
	Active string       `json:"active"`
	Themes []themeEntry `json:"themes"`
}

type viewportRequest struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

func apiV1Router(deps APIV1Deps) http.Handler {
	deps = deps.withDefaults()
	mux := http.NewServeMux()
	mux.HandleFunc("/state", func(w http.ResponseWriter, r *http.Request) { handleState(w, r, deps) })
	mux.HandleFunc("/frame.png", func(w http.ResponseWriter, r *http.Request) { handleFrame(w, r, deps) })
	mux.HandleFunc("/themes", func(w http.ResponseWriter, r *http.Request) { handleThemes(w, r, deps) })
	mux.HandleFunc("/theme/reload", func(w http.ResponseWriter, r *http.Request) { handleThemeReload(w, r, deps) })
	mux.HandleFunc("/theme/{id}", func(w http.ResponseWriter, r *http.Request) { handleThemeSelect(w, r, deps) })
	mux.HandleFunc("/viewport", func(w http.ResponseWriter, r *http.Request) { handleViewport(w, r, deps) })
	mux.HandleFunc("/status", func(w http.ResponseWriter, r *http.Request) { handleStatus(w, r, deps) })
	mux.HandleFunc("/intents", func(w http.ResponseWriter, r *http.Request) {
		if deps.Intents == nil {
			writeAPIError(w, http.StatusNotImplemented, "not_implemented", "intent stream not configured")
			return
		}
		deps.Intents.ServeHTTP(w, r)
	})
	return mux
}

func handleState(w http.ResponseWriter, r *http.Request, deps APIV1Deps) {
	if r.Method != http.MethodPost {
		writeAPIError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
		return
	}
	var st state.TableState
	if err := decodeBody(r, &st); err != nil {
		writeAPIError(w, http.StatusBadRequest, "invalid_state", err.Error())
		return
	}
	sub, err := deps.State.SubmitState(r.Context(), st)
	if err != nil {
		writeDepError(w, "render_failed", err)
		return
	}
	status := http.StatusAccepted
	if !sub.Changed {
		status = http.StatusOK
	}
	writeJSON(w, status, sub)
}

func handleFrame(w http.ResponseWriter, r *http.Request, deps APIV1Deps) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		writeAPIError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
		return
	}
	data, snap, err := deps.Frames.PNG()
	if errors.Is(err, sink.ErrNoFrame) {
		writeAPIError(w, http.StatusServiceUnavailable, "no_frame", err.Error())
		return
	}
	if err != nil {
		writeAPIError(w, http.StatusInternalServerError, "encode_failed", err.Error())
		return
	}
	etag := `"` + snap.ID.String() + `"`
	w.Header().Set("ETag", etag)
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("X-Frame-Seq", strconv.FormatUint(snap.Seq, 10))
	if r.Header.Get("If-None-Match") == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodGet {
		_, _ = w.Write(data)
	}
}

func handleThemes(w http.ResponseWriter, r *http.Request, deps APIV1Deps) {
	if r.Method != http.MethodGet {
		writeAPIError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
		return
	}
	writeJSON(w, http.StatusOK, themesBody(deps))
}

func handleThemeSelect(w http.ResponseWriter, r *http.Request, deps APIV1Deps) {
	if r.Method != http.MethodPost {
		writeAPIError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
		return
	}
	id := r.PathValue("id")
	err := deps.Themes.SelectTheme(r.Context(), id)
	if errors.Is(err, theme.ErrUnknownTheme) {
		writeAPIError(w, http.StatusNotFound, "theme_not_found", err.Error())
		return
	}
	if err != nil {
		writeDepError(w, "select_failed", err)
		return
	}
	writeJSON(w, http.StatusOK, themesBody(deps))
}

func handleThemeReload(w http.ResponseWriter, r *http.Request, deps APIV1Deps) {
	if r.Method != http.MethodPost {
		writeAPIError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
		return
	}
	if err := deps.Themes.ReloadThemes(r.Context()); err != nil {
		writeDepError(w, "reload_failed", err)
		return
	}
	writeJSON(w, http.StatusOK, themesBody(deps))
}

func themesBody(deps APIV1Deps) themesResponse {
	active := deps.Themes.Active().ID
	out := themesResponse{Active: active, Themes: []themeEntry{}}
	for _, def := range deps.Themes.Themes() {
		out.Themes = append(out.Themes, themeEntry{ID: def.ID, Name: def.Name, Active: def.ID == active})
	}
	return out
}

func handleViewport(w http.ResponseWriter, r *http.Request, deps APIV1Deps) {
	if r.Method != http.MethodPost {
		writeAPIError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
		return
	}
	var req viewportRequest
	if err := decodeBody(r, &req); err != nil {
		writeAPIError(w, http.StatusBadRequest, "invalid_viewport", err.Error())
		return
	}
	if req.Width < 0 || req.Height < 0 {
		writeAPIError(w, http.StatusBadRequest, "invalid_viewport", "width and height must not be negative")
		return
	}
	if err := deps.Viewport.SetViewport(r.Context(), req.Width, req.Height); err != nil {
		writeDepError(w, "viewport_failed", err)
		return
	}
	writeJSON(w, http.StatusOK, okResponse{OK: true})
}

func handleStatus(w http.ResponseWriter, r *http.Request, deps APIV1Deps) {
	if r.Method != http.MethodGet {
		writeAPIError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
		return
	}
	st, err := deps.Status.Status(r.Context())
	if err != nil {
		writeDepError(w, "status_failed", err)
		return
	}
	if deps.Intents != nil {
		st.Consumers = deps.Intents.Consumers()
		st.IntentsDropped = deps.Intents.Dropped()
	}
	writeJSON(w, http.StatusOK, st)
}

func decodeBody(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		return err
	}
	return nil
}

// writeDepError maps a dependency failure to a response. Missing wiring is
// 501, anything else 500.
func writeDepError(w http.ResponseWriter, code string, err error) {
	if errors.Is(err, errNotConfigured) {
		writeAPIError(w, http.StatusNotImplemented, "not_implemented", err.Error())
		return
	}
	writeAPIError(w, http.StatusInternalServerError, code, err.Error())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeAPIError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, apiError{Error: code, Message: message})
}
