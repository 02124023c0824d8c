// Package admin serves the HTTP view of the form catalog, stored player
// records and live session snapshots, and lets operators move players in
// and out of the session.
package admin

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/KirkDiggler/rpg-forms/internal/engine"
	"github.com/KirkDiggler/rpg-forms/internal/entities"
	"github.com/KirkDiggler/rpg-forms/internal/errors"
	"github.com/KirkDiggler/rpg-forms/internal/orchestrators/session"
	"github.com/KirkDiggler/rpg-forms/internal/orchestrators/transformation"
	"github.com/KirkDiggler/rpg-forms/internal/repositories/player"
)

// Session is the part of a running session the handler reads and drives
type Session interface {
	Join(ctx context.Context, input session.JoinInput) (*session.JoinOutput, error)
	Leave(ctx context.Context, input session.LeaveInput) (*session.LeaveOutput, error)
	Snapshot(entityID string) (entities.FormSnapshot, bool)
	Snapshots() []entities.FormSnapshot
	Do(entityID string, fn func(*transformation.Controller)) bool
}

// HandlerConfig holds dependencies for the admin handler
type HandlerConfig struct {
	Registry   *engine.Registry
	Repository player.Repository
	Session    Session

	// Optional; /metrics is not served when nil
	Gatherer prometheus.Gatherer
}

// Validate ensures all required dependencies are present
func (c *HandlerConfig) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Registry == nil {
		vb.RequiredField("Registry")
	}
	if c.Repository == nil {
		vb.RequiredField("Repository")
	}
	if c.Session == nil {
		vb.RequiredField("Session")
	}

	return vb.Build()
}

// Handler routes admin requests
type Handler struct {
	registry *engine.Registry
	repo     player.Repository
	session  Session
	mux      *http.ServeMux
}

// NewHandler creates a new admin handler with the given configuration
func NewHandler(cfg *HandlerConfig) (*Handler, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	h := &Handler{
		registry: cfg.Registry,
		repo:     cfg.Repository,
		session:  cfg.Session,
		mux:      http.NewServeMux(),
	}

	h.mux.HandleFunc("GET /healthz", h.health)
	h.mux.HandleFunc("GET /v1/forms", h.listForms)
	h.mux.HandleFunc("GET /v1/players", h.listPlayers)
	h.mux.HandleFunc("GET /v1/players/{id}", h.getPlayer)
	h.mux.HandleFunc("GET /v1/snapshots", h.listSnapshots)
	h.mux.HandleFunc("GET /v1/snapshots/{id}", h.getSnapshot)
	h.mux.HandleFunc("POST /v1/players/{id}/join", h.join)
	h.mux.HandleFunc("POST /v1/players/{id}/leave", h.leave)
	h.mux.HandleFunc("POST /v1/players/{id}/transform", h.transform)
	h.mux.HandleFunc("POST /v1/players/{id}/power-down", h.powerDown)
	if cfg.Gatherer != nil {
		h.mux.Handle("GET /metrics", promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{}))
	}

	return h, nil
}

// ServeHTTP implements http.Handler
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

// FormView is the catalog entry returned by /v1/forms
type FormView struct {
	Key          entities.FormKey   `json:"key"`
	DisplayName  string             `json:"display_name"`
	Branch       entities.Branch    `json:"branch"`
	Tier         int                `json:"tier"`
	Prerequisite entities.FormKey   `json:"prerequisite,omitempty"`
	Sources      []entities.FormKey `json:"sources,omitempty"`
	MasteryTrack entities.FormKey   `json:"mastery_track,omitempty"`
	Aura         entities.AuraID    `json:"aura"`
}

// JoinRequest is the optional body of POST /v1/players/{id}/join
type JoinRequest struct {
	// Authoritative marks the player as owned by this server
	Authoritative bool `json:"authoritative"`
}

// JoinResponse is returned by POST /v1/players/{id}/join
type JoinResponse struct {
	Snapshot entities.FormSnapshot `json:"snapshot"`
	Created  bool                  `json:"created"`
}

// LeaveResponse is returned by POST /v1/players/{id}/leave
type LeaveResponse struct {
	Record *entities.PlayerRecord `json:"record,omitempty"`
	Saved  bool                   `json:"saved"`
}

// TransformRequest is the body of POST /v1/players/{id}/transform
type TransformRequest struct {
	Form entities.FormKey `json:"form"`
}

func (h *Handler) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) listForms(w http.ResponseWriter, _ *http.Request) {
	defs := h.registry.All()
	out := make([]FormView, 0, len(defs))
	for _, def := range defs {
		out = append(out, FormView{
			Key:          def.Key,
			DisplayName:  def.DisplayName,
			Branch:       def.Branch,
			Tier:         def.Tier,
			Prerequisite: def.Prerequisite,
			Sources:      def.Sources,
			MasteryTrack: def.MasteryTrack,
			Aura:         def.Aura,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) listPlayers(w http.ResponseWriter, r *http.Request) {
	out, err := h.repo.List(r.Context(), player.ListInput{})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out.Records)
}

func (h *Handler) getPlayer(w http.ResponseWriter, r *http.Request) {
	out, err := h.repo.Get(r.Context(), player.GetInput{EntityID: r.PathValue("id")})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out.Record)
}

func (h *Handler) listSnapshots(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.session.Snapshots())
}

func (h *Handler) getSnapshot(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	snap, ok := h.session.Snapshot(id)
	if !ok {
		h.writeError(w, r, errors.NotFoundf("player %s is not in the session", id))
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (h *Handler) join(w http.ResponseWriter, r *http.Request) {
	var req JoinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !stderrors.Is(err, io.EOF) {
		h.writeError(w, r, errors.WrapWithCode(err, errors.CodeInvalidArgument, "invalid request body"))
		return
	}

	out, err := h.session.Join(r.Context(), session.JoinInput{
		EntityID:      r.PathValue("id"),
		Authoritative: req.Authoritative,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	status := http.StatusOK
	if out.Created {
		status = http.StatusCreated
	}
	writeJSON(w, status, JoinResponse{Snapshot: out.Snapshot, Created: out.Created})
}

func (h *Handler) leave(w http.ResponseWriter, r *http.Request) {
	out, err := h.session.Leave(r.Context(), session.LeaveInput{EntityID: r.PathValue("id")})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, LeaveResponse{Record: out.Record, Saved: out.Record != nil})
}

func (h *Handler) transform(w http.ResponseWriter, r *http.Request) {
	var req TransformRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, r, errors.WrapWithCode(err, errors.CodeInvalidArgument, "invalid request body"))
		return
	}
	if req.Form == "" {
		h.writeError(w, r, errors.InvalidArgument("form is required"))
		return
	}

	id := r.PathValue("id")
	var (
		snap entities.FormSnapshot
		err  error
	)
	found := h.session.Do(id, func(c *transformation.Controller) {
		if err = c.CheckTransform(req.Form); err != nil {
			return
		}
		c.RequestTransform(r.Context(), req.Form)
		snap = c.Snapshot()
	})
	if !found {
		h.writeError(w, r, errors.NotFoundf("player %s is not in the session", id))
		return
	}
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (h *Handler) powerDown(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	var snap entities.FormSnapshot
	found := h.session.Do(id, func(c *transformation.Controller) {
		c.RequestPowerDown(r.Context())
		snap = c.Snapshot()
	})
	if !found {
		h.writeError(w, r, errors.NotFoundf("player %s is not in the session", id))
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

type errorBody struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Meta    map[string]any `json:"meta,omitempty"`
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := errors.GetCode(err)
	if code == errors.CodeInternal {
		slog.ErrorContext(r.Context(), "Admin request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
		)
	}
	writeJSON(w, code.HTTPStatus(), errorBody{
		Code:    code.String(),
		Message: errors.GetMessage(err),
		Meta:    errors.GetMeta(err),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
