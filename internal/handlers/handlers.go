package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"strconv"
	"time"

	"github.com/XavierBriggs/fortuna/services/bet-analytics/internal/cache"
	"github.com/XavierBriggs/fortuna/services/bet-analytics/internal/engine"
	"github.com/XavierBriggs/fortuna/services/bet-analytics/internal/ledger"
	"github.com/XavierBriggs/fortuna/services/bet-analytics/internal/store"
	"github.com/XavierBriggs/fortuna/services/bet-analytics/pkg/models"
	"github.com/XavierBriggs/fortuna/services/bet-analytics/pkg/oddsmath"
)

// Broadcaster pushes analytics updates to connected dashboards
type Broadcaster interface {
	Broadcast(update models.AnalyticsUpdate)
	GetClientCount() int
}

// Handler contains dependencies for HTTP handlers
type Handler struct {
	store             store.LedgerStore
	statsCache        *cache.StatsCache // nil disables caching
	hub               Broadcaster
	initialBalance    float64
	defaultBankroll   float64
	defaultIterations int
	maxIterations     int
}

// NewHandler creates a new handler
func NewHandler(ledgerStore store.LedgerStore, statsCache *cache.StatsCache, hub Broadcaster,
	initialBalance, defaultBankroll float64, defaultIterations, maxIterations int) *Handler {
	return &Handler{
		store:             ledgerStore,
		statsCache:        statsCache,
		hub:               hub,
		initialBalance:    initialBalance,
		defaultBankroll:   defaultBankroll,
		defaultIterations: defaultIterations,
		maxIterations:     maxIterations,
	}
}

// Single-user deployment for now; the ledger key is stable until auth lands
const userID = "default"

// HealthCheck returns service health
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	status := "healthy"
	if err := h.store.Ping(ctx); err != nil {
		status = "degraded"
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":         status,
		"service":        "bet-analytics",
		"active_clients": h.hub.GetClientCount(),
	})
}

// Evaluate computes point-estimate risk metrics for one scenario
func (h *Handler) Evaluate(w http.ResponseWriter, r *http.Request) {
	var req models.EvaluateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("invalid request: %v", err))
		return
	}

	if req.Bankroll == 0 {
		req.Bankroll = h.defaultBankroll
	}

	result, err := engine.Evaluate(req.Scenario, req.Bankroll)
	if err != nil {
		respondError(w, statusForEngineError(err), err.Error())
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// Portfolio evaluates a set of scenarios and aggregates them
func (h *Handler) Portfolio(w http.ResponseWriter, r *http.Request) {
	var req models.PortfolioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("invalid request: %v", err))
		return
	}

	if len(req.Scenarios) == 0 {
		respondError(w, http.StatusBadRequest, "at least one scenario is required")
		return
	}
	if req.Bankroll == 0 {
		req.Bankroll = h.defaultBankroll
	}

	results := make([]models.SimulationResult, 0, len(req.Scenarios))
	for _, scenario := range req.Scenarios {
		result, err := engine.Evaluate(scenario, req.Bankroll)
		if err != nil {
			respondError(w, statusForEngineError(err), fmt.Sprintf("scenario %q: %v", scenario.Name, err))
			return
		}
		results = append(results, *result)
	}

	respondJSON(w, http.StatusOK, models.PortfolioResponse{
		Results: results,
		Summary: engine.Aggregate(results),
	})
}

// Simulate runs a Monte Carlo simulation over a set of scenarios
func (h *Handler) Simulate(w http.ResponseWriter, r *http.Request) {
	var req models.SimulateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("invalid request: %v", err))
		return
	}

	if req.Iterations == 0 {
		req.Iterations = h.defaultIterations
	}
	if req.Iterations > h.maxIterations {
		respondError(w, http.StatusBadRequest,
			fmt.Sprintf("iterations %d exceeds maximum %d", req.Iterations, h.maxIterations))
		return
	}

	// Callers control reproducibility: a fixed seed replays the same run
	seed := time.Now().UnixNano()
	if req.Seed != nil {
		seed = *req.Seed
	}

	sim := engine.NewSimulator(rand.NewSource(seed))
	report, err := sim.Run(req.Scenarios, req.Iterations)
	if err != nil {
		respondError(w, statusForEngineError(err), err.Error())
		return
	}

	h.hub.Broadcast(models.AnalyticsUpdate{
		Type:       models.MessageTypeSimulationCompleted,
		Report:     report,
		OccurredAt: time.Now(),
	})

	respondJSON(w, http.StatusOK, report)
}

// AppendEntry appends one entry to the bankroll ledger
func (h *Handler) AppendEntry(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var entry models.BankrollEntry
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("invalid request: %v", err))
		return
	}

	now := time.Now()
	if err := ledger.Prepare(&entry, now); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.store.Append(ctx, &entry); err != nil {
		respondError(w, http.StatusInternalServerError, "failed to append entry")
		fmt.Printf("✗ append entry: %v\n", err)
		return
	}

	h.hub.Broadcast(models.AnalyticsUpdate{
		Type:       models.MessageTypeEntryAppended,
		Entry:      &entry,
		OccurredAt: now,
	})

	// Statistics are a pure function of the entry sequence, so every append
	// makes the cached snapshot stale: recompute, replace, broadcast
	if stats, err := h.refreshStatistics(ctx, now); err != nil {
		fmt.Printf("⚠️  refresh statistics: %v\n", err)
	} else {
		h.hub.Broadcast(models.AnalyticsUpdate{
			Type:       models.MessageTypeStatsUpdated,
			Statistics: stats,
			OccurredAt: now,
		})
	}

	respondJSON(w, http.StatusCreated, entry)
}

// ListEntries returns ledger entries with optional filters
func (h *Handler) ListEntries(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	filters := store.EntryFilters{
		Type:  r.URL.Query().Get("type"),
		Limit: parseIntParam(r, "limit", 100),
	}

	if sinceStr := r.URL.Query().Get("since"); sinceStr != "" {
		if t, err := time.Parse(time.RFC3339, sinceStr); err == nil {
			filters.Since = &t
		}
	}
	if untilStr := r.URL.Query().Get("until"); untilStr != "" {
		if t, err := time.Parse(time.RFC3339, untilStr); err == nil {
			filters.Until = &t
		}
	}

	if filters.Limit > 1000 {
		filters.Limit = 1000
	}

	entries, err := h.store.List(ctx, filters)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to retrieve entries")
		fmt.Printf("✗ list entries: %v\n", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"entries": entries,
		"count":   len(entries),
	})
}

// GetStatistics returns the derived bankroll statistics view
func (h *Handler) GetStatistics(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if h.statsCache != nil {
		cached, err := h.statsCache.Get(ctx, userID)
		if err != nil {
			fmt.Printf("⚠️  stats cache read: %v\n", err)
		} else if cached != nil {
			respondJSON(w, http.StatusOK, cached)
			return
		}
	}

	stats, err := h.refreshStatistics(ctx, time.Now())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to compute statistics")
		fmt.Printf("✗ compute statistics: %v\n", err)
		return
	}

	respondJSON(w, http.StatusOK, stats)
}

// refreshStatistics recomputes the statistics view from the full ledger and
// replaces the cached snapshot
func (h *Handler) refreshStatistics(ctx context.Context, now time.Time) (*models.BankrollStatistics, error) {
	entries, err := h.store.List(ctx, store.EntryFilters{})
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}

	stats := ledger.ComputeStatistics(entries, h.initialBalance, now)

	if h.statsCache != nil {
		if err := h.statsCache.Set(ctx, userID, &stats); err != nil {
			fmt.Printf("⚠️  stats cache write: %v\n", err)
		}
	}

	return &stats, nil
}

// statusForEngineError maps validation failures to 400, everything else to 500
func statusForEngineError(err error) int {
	switch {
	case errors.Is(err, engine.ErrInvalidStake),
		errors.Is(err, engine.ErrInvalidProbability),
		errors.Is(err, engine.ErrInvalidBankroll),
		errors.Is(err, engine.ErrNoIterations),
		errors.Is(err, engine.ErrNoScenarios),
		errors.Is(err, oddsmath.ErrZeroOdds):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// parseIntParam parses an integer query parameter with a default
func parseIntParam(r *http.Request, name string, defaultValue int) int {
	if value := r.URL.Query().Get(name); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// respondJSON writes a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError writes an error response
func respondError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{
		"error": message,
	})
}
