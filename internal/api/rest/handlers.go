package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/fortuna/courtside/internal/service"
)

const (
	serviceName    = "courtside"
	serviceVersion = "1.0.0"
)

// Dashboard is the set of views the API serves
type Dashboard interface {
	CurrentSeason() int
	CurrentStartYear() int
	Team(ctx context.Context) *service.TeamView
	Live(ctx context.Context) *service.LiveView
	Schedule(ctx context.Context, seasonYear int) *service.ScheduleView
	Roster(ctx context.Context, seasonYear int) *service.RosterView
	History(ctx context.Context, startYear int) (*service.HistoryView, error)
	Game(ctx context.Context, eventID string) *service.GameView
}

// LiveSnapshots is the poller's view of the latest live snapshot
type LiveSnapshots interface {
	Latest() *service.LiveView
	Status() map[string]interface{}
}

// Handler contains dependencies for HTTP handlers
type Handler struct {
	dash        Dashboard
	live        LiveSnapshots
	cacheHealth func(context.Context) error
}

// NewHandler creates a new handler
func NewHandler(dash Dashboard, live LiveSnapshots) *Handler {
	return &Handler{dash: dash, live: live}
}

// SetCacheHealth adds a cache backend check to /health
func (h *Handler) SetCacheHealth(check func(context.Context) error) {
	h.cacheHealth = check
}

// HealthCheck handles health check requests
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	status := http.StatusOK
	resp := map[string]interface{}{
		"status":  "healthy",
		"service": serviceName,
		"version": serviceVersion,
	}
	if h.live != nil {
		resp["poller"] = h.live.Status()
	}
	if h.cacheHealth != nil {
		resp["cache"] = "ok"
		if err := h.cacheHealth(r.Context()); err != nil {
			status = http.StatusServiceUnavailable
			resp["status"] = "degraded"
			resp["cache"] = err.Error()
		}
	}
	respondJSON(w, status, resp)
}

// GetTeam returns the team summary for the current season
func (h *Handler) GetTeam(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.dash.Team(r.Context()))
}

// GetLive returns the poller's latest snapshot, or a fresh one when polling
// is off or has not completed yet
func (h *Handler) GetLive(w http.ResponseWriter, r *http.Request) {
	if h.live != nil {
		if view := h.live.Latest(); view != nil {
			respondJSON(w, http.StatusOK, view)
			return
		}
	}
	respondJSON(w, http.StatusOK, h.dash.Live(r.Context()))
}

// GetSchedule returns a season's games (?season=2026, season end year)
func (h *Handler) GetSchedule(w http.ResponseWriter, r *http.Request) {
	season, err := yearParam(r, "season", h.dash.CurrentSeason())
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid season parameter", err)
		return
	}
	respondJSON(w, http.StatusOK, h.dash.Schedule(r.Context(), season))
}

// GetRoster returns the roster grouped by position (?season=2026)
func (h *Handler) GetRoster(w http.ResponseWriter, r *http.Request) {
	season, err := yearParam(r, "season", h.dash.CurrentSeason())
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid season parameter", err)
		return
	}
	respondJSON(w, http.StatusOK, h.dash.Roster(r.Context(), season))
}

// GetHistory returns one season's results (?year=2025, season start year)
func (h *Handler) GetHistory(w http.ResponseWriter, r *http.Request) {
	year, err := yearParam(r, "year", h.dash.CurrentStartYear())
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid year parameter", err)
		return
	}

	view, err := h.dash.History(r.Context(), year)
	var rangeErr *service.ErrSeasonOutOfRange
	if errors.As(err, &rangeErr) {
		respondError(w, http.StatusBadRequest, "Season not available", err)
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to build history", err)
		return
	}
	respondJSON(w, http.StatusOK, view)
}

// GetGame returns one game's reconciled result
func (h *Handler) GetGame(w http.ResponseWriter, r *http.Request) {
	gameID := mux.Vars(r)["gameID"]
	if _, err := strconv.ParseUint(gameID, 10, 64); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid game ID", fmt.Errorf("game id %q is not numeric", gameID))
		return
	}
	respondJSON(w, http.StatusOK, h.dash.Game(r.Context(), gameID))
}

func yearParam(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	year, err := strconv.Atoi(raw)
	if err != nil {
		return 0, err
	}
	if year < 1900 || year > 2999 {
		return 0, fmt.Errorf("%s %d out of range", name, year)
	}
	return year, nil
}

// respondJSON writes a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError writes an error response
func respondError(w http.ResponseWriter, status int, message string, err error) {
	response := map[string]interface{}{
		"error":  message,
		"status": status,
	}
	if err != nil {
		response["details"] = err.Error()
	}
	respondJSON(w, status, response)
}
