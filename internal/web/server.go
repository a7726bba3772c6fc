package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	sdkmath "cosmossdk.io/math"
	"github.com/gorilla/mux"

	"github.com/openamm/poolgov/internal/governance"
	"github.com/openamm/poolgov/internal/logger"
	"github.com/openamm/poolgov/internal/state"
	"github.com/openamm/poolgov/internal/types"
)

var webLogger = logger.GetForComponent("web_server")

// WebServer exposes the governance engine over HTTP: the collaborator
// engine's hooks, the admin management API, and the read accessors.
type WebServer struct {
	router *mux.Router
	engine *governance.Engine
	port   string
}

// NewWebServer creates a new web server instance around an engine.
func NewWebServer(engine *governance.Engine, port string) *WebServer {
	if port == "" {
		port = "8080"
	}

	server := &WebServer{
		router: mux.NewRouter(),
		engine: engine,
		port:   port,
	}

	server.setupRoutes()
	return server
}

// setupRoutes configures all HTTP routes
func (ws *WebServer) setupRoutes() {
	// Health endpoint (direct route)
	ws.router.HandleFunc("/health", ws.handleHealth).Methods("GET")

	// Collaborator engine hooks
	hooks := ws.router.PathPrefix("/api/hooks").Subrouter()
	hooks.HandleFunc("/initialize", ws.handleInitialize).Methods("POST")
	hooks.HandleFunc("/pre-swap", ws.handlePreSwap).Methods("POST")
	hooks.HandleFunc("/post-swap", ws.handlePostSwap).Methods("POST")

	// Management API and read accessors
	api := ws.router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/health", ws.handleHealth).Methods("GET")
	api.HandleFunc("/pools/{id}", ws.handleGetPool).Methods("GET")
	api.HandleFunc("/pools/{id}/fee", ws.handleGetEffectiveFee).Methods("GET")
	api.HandleFunc("/pools/{id}/pending-fee", ws.handleGetPendingFee).Methods("GET")
	api.HandleFunc("/pools/{id}/events", ws.handleGetEvents).Methods("GET")
	api.HandleFunc("/pools/{id}/strategy", ws.handleSetStrategy).Methods("POST")
	api.HandleFunc("/pools/{id}/fee/queue", ws.handleQueueFee).Methods("POST")
	api.HandleFunc("/pools/{id}/fee/finalize", ws.handleFinalizeFee).Methods("POST")
	api.HandleFunc("/pools/{id}/admin/propose", ws.handleProposeTransfer).Methods("POST")
	api.HandleFunc("/pools/{id}/admin/accept", ws.handleAcceptTransfer).Methods("POST")

	// Add CORS middleware
	ws.router.Use(ws.corsMiddleware)
	ws.router.Use(ws.loggingMiddleware)
}

// Start starts the web server
func (ws *WebServer) Start() error {
	webLogger.Info().Str("port", ws.port).Msg("Starting web server")

	server := &http.Server{
		Addr:         ":" + ws.port,
		Handler:      ws.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return server.ListenAndServe()
}

// Handler returns the configured router, for tests and embedding.
func (ws *WebServer) Handler() http.Handler {
	return ws.router
}

// --- hook handlers ---

type initializeRequest struct {
	PoolID    uint64          `json:"pool_id"`
	Initiator types.Principal `json:"initiator"`
}

func (ws *WebServer) handleInitialize(w http.ResponseWriter, r *http.Request) {
	var req initializeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ws.writeErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := ws.engine.OnPoolInitialize(types.PoolID(req.PoolID), req.Initiator); err != nil {
		ws.writeGovernanceError(w, err)
		return
	}

	ws.writeJSONResponse(w, http.StatusCreated, map[string]interface{}{
		"pool_id": req.PoolID,
		"admin":   req.Initiator,
	})
}

type preSwapRequest struct {
	PoolID          uint64          `json:"pool_id"`
	Sender          types.Principal `json:"sender,omitempty"`
	AmountSpecified sdkmath.Int     `json:"amount_specified"`
	AToB            bool            `json:"a_to_b"`
}

func (ws *WebServer) handlePreSwap(w http.ResponseWriter, r *http.Request) {
	var req preSwapRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ws.writeErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	params := types.SwapParams{
		Sender:          req.Sender,
		AmountSpecified: req.AmountSpecified,
		AToB:            req.AToB,
	}
	fee, err := ws.engine.OnPreSwap(types.PoolID(req.PoolID), params)
	if err != nil {
		ws.writeGovernanceError(w, err)
		return
	}

	ws.writeJSONResponse(w, http.StatusOK, map[string]interface{}{
		"pool_id": req.PoolID,
		"fee":     fee,
	})
}

type postSwapRequest struct {
	PoolID  uint64      `json:"pool_id"`
	AmountA sdkmath.Int `json:"amount_a"`
	AmountB sdkmath.Int `json:"amount_b"`
}

func (ws *WebServer) handlePostSwap(w http.ResponseWriter, r *http.Request) {
	var req postSwapRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ws.writeErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	delta := types.SettlementDelta{AmountA: req.AmountA, AmountB: req.AmountB}
	if err := ws.engine.OnPostSwap(types.PoolID(req.PoolID), delta); err != nil {
		ws.writeGovernanceError(w, err)
		return
	}

	ws.writeJSONResponse(w, http.StatusOK, map[string]interface{}{"pool_id": req.PoolID})
}

// --- management handlers ---

type managementRequest struct {
	Caller   types.Principal `json:"caller"`
	NewAdmin types.Principal `json:"new_admin,omitempty"`
	Strategy string          `json:"strategy,omitempty"`
	Value    uint64          `json:"value,omitempty"`
}

func (ws *WebServer) decodeManagement(w http.ResponseWriter, r *http.Request) (types.PoolID, managementRequest, bool) {
	poolID, ok := ws.poolIDFromPath(w, r)
	if !ok {
		return 0, managementRequest{}, false
	}
	var req managementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ws.writeErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return 0, managementRequest{}, false
	}
	return poolID, req, true
}

func (ws *WebServer) handleSetStrategy(w http.ResponseWriter, r *http.Request) {
	poolID, req, ok := ws.decodeManagement(w, r)
	if !ok {
		return
	}
	if err := ws.engine.SetStrategy(poolID, req.Caller, req.Strategy); err != nil {
		ws.writeGovernanceError(w, err)
		return
	}
	ws.writeJSONResponse(w, http.StatusOK, map[string]interface{}{
		"pool_id":  poolID,
		"strategy": req.Strategy,
	})
}

func (ws *WebServer) handleQueueFee(w http.ResponseWriter, r *http.Request) {
	poolID, req, ok := ws.decodeManagement(w, r)
	if !ok {
		return
	}
	if err := ws.engine.QueueFee(poolID, req.Caller, req.Value); err != nil {
		ws.writeGovernanceError(w, err)
		return
	}
	info, err := ws.engine.PendingFeeInfo(poolID)
	if err != nil {
		ws.writeGovernanceError(w, err)
		return
	}
	ws.writeJSONResponse(w, http.StatusOK, info)
}

func (ws *WebServer) handleFinalizeFee(w http.ResponseWriter, r *http.Request) {
	poolID, req, ok := ws.decodeManagement(w, r)
	if !ok {
		return
	}
	if err := ws.engine.FinalizeFee(poolID, req.Caller); err != nil {
		ws.writeGovernanceError(w, err)
		return
	}
	rec, err := ws.engine.Snapshot(poolID)
	if err != nil {
		ws.writeGovernanceError(w, err)
		return
	}
	ws.writeJSONResponse(w, http.StatusOK, map[string]interface{}{
		"pool_id":      poolID,
		"fee_override": rec.FeeOverride,
	})
}

func (ws *WebServer) handleProposeTransfer(w http.ResponseWriter, r *http.Request) {
	poolID, req, ok := ws.decodeManagement(w, r)
	if !ok {
		return
	}
	if err := ws.engine.ProposeAdminTransfer(poolID, req.Caller, req.NewAdmin); err != nil {
		ws.writeGovernanceError(w, err)
		return
	}
	ws.writeJSONResponse(w, http.StatusOK, map[string]interface{}{
		"pool_id":       poolID,
		"pending_admin": req.NewAdmin,
	})
}

func (ws *WebServer) handleAcceptTransfer(w http.ResponseWriter, r *http.Request) {
	poolID, req, ok := ws.decodeManagement(w, r)
	if !ok {
		return
	}
	if err := ws.engine.AcceptAdminTransfer(poolID, req.Caller); err != nil {
		ws.writeGovernanceError(w, err)
		return
	}
	ws.writeJSONResponse(w, http.StatusOK, map[string]interface{}{
		"pool_id": poolID,
		"admin":   req.Caller,
	})
}

// --- read accessors ---

func (ws *WebServer) handleGetPool(w http.ResponseWriter, r *http.Request) {
	poolID, ok := ws.poolIDFromPath(w, r)
	if !ok {
		return
	}
	rec, err := ws.engine.Snapshot(poolID)
	if err != nil {
		ws.writeGovernanceError(w, err)
		return
	}
	ws.writeJSONResponse(w, http.StatusOK, rec)
}

func (ws *WebServer) handleGetEffectiveFee(w http.ResponseWriter, r *http.Request) {
	poolID, ok := ws.poolIDFromPath(w, r)
	if !ok {
		return
	}

	params := types.SwapParams{AmountSpecified: sdkmath.ZeroInt()}
	if amountStr := r.URL.Query().Get("amount"); amountStr != "" {
		amount, parsed := sdkmath.NewIntFromString(amountStr)
		if !parsed {
			ws.writeErrorResponse(w, http.StatusBadRequest, "Invalid amount")
			return
		}
		params.AmountSpecified = amount
	}
	params.AToB = r.URL.Query().Get("a_to_b") == "true"

	fee, err := ws.engine.EffectiveFee(poolID, params)
	if err != nil {
		ws.writeGovernanceError(w, err)
		return
	}
	ws.writeJSONResponse(w, http.StatusOK, map[string]interface{}{
		"pool_id": poolID,
		"fee":     fee,
	})
}

func (ws *WebServer) handleGetPendingFee(w http.ResponseWriter, r *http.Request) {
	poolID, ok := ws.poolIDFromPath(w, r)
	if !ok {
		return
	}
	info, err := ws.engine.PendingFeeInfo(poolID)
	if err != nil {
		ws.writeGovernanceError(w, err)
		return
	}
	ws.writeJSONResponse(w, http.StatusOK, info)
}

func (ws *WebServer) handleGetEvents(w http.ResponseWriter, r *http.Request) {
	poolID, ok := ws.poolIDFromPath(w, r)
	if !ok {
		return
	}

	limit := 20
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if parsedLimit, err := strconv.Atoi(limitStr); err == nil && parsedLimit > 0 && parsedLimit <= 100 {
			limit = parsedLimit
		}
	}

	events, err := state.GetRecentGovernanceEvents(poolID, limit)
	if err != nil {
		webLogger.Error().Err(err).Uint64("poolId", uint64(poolID)).Msg("Failed to get governance events")
		ws.writeErrorResponse(w, http.StatusInternalServerError, "Failed to retrieve events")
		return
	}

	ws.writeJSONResponse(w, http.StatusOK, map[string]interface{}{
		"events": events,
		"count":  len(events),
		"limit":  limit,
	})
}

// handleHealth returns server health status
func (ws *WebServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	dbHealthy := true
	if err := state.TestDBConnection(); err != nil {
		dbHealthy = false
	}

	overallStatus := "OK"
	statusCode := http.StatusOK
	if !dbHealthy {
		overallStatus = "DEGRADED"
		statusCode = http.StatusServiceUnavailable
	}

	response := map[string]interface{}{
		"status":    overallStatus,
		"timestamp": time.Now().UTC().Format(time.RFC3339Nano),
		"component": map[string]interface{}{
			"name":    "poolgov-fee-governance-engine",
			"version": "1.0.0",
		},
		"engine_status": map[string]interface{}{
			"database_healthy": dbHealthy,
			"pool_count":       ws.engine.PoolCount(),
		},
	}

	ws.writeJSONResponse(w, statusCode, response)
}

// --- helpers ---

func (ws *WebServer) poolIDFromPath(w http.ResponseWriter, r *http.Request) (types.PoolID, bool) {
	vars := mux.Vars(r)
	id, err := strconv.ParseUint(vars["id"], 10, 64)
	if err != nil {
		ws.writeErrorResponse(w, http.StatusBadRequest, "Invalid pool ID")
		return 0, false
	}
	return types.PoolID(id), true
}

// writeGovernanceError maps a typed governance error onto an HTTP status so
// management callers learn exactly which precondition failed.
func (ws *WebServer) writeGovernanceError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, types.ErrPoolNotFound):
		status = http.StatusNotFound
	case errors.Is(err, types.ErrUnauthorized), errors.Is(err, types.ErrNotPendingAdmin):
		status = http.StatusForbidden
	case errors.Is(err, types.ErrZeroAddress), errors.Is(err, types.ErrFeeTooHigh), errors.Is(err, types.ErrUnknownStrategy):
		status = http.StatusBadRequest
	case errors.Is(err, types.ErrPoolAlreadyRegistered), errors.Is(err, types.ErrNoPendingAdmin), errors.Is(err, types.ErrFeeChangeTimelocked):
		status = http.StatusConflict
	}
	ws.writeErrorResponse(w, status, err.Error())
}

// writeJSONResponse writes a JSON response
func (ws *WebServer) writeJSONResponse(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		webLogger.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

// writeErrorResponse writes an error response
func (ws *WebServer) writeErrorResponse(w http.ResponseWriter, statusCode int, message string) {
	response := map[string]interface{}{
		"error":     true,
		"message":   message,
		"timestamp": time.Now().UTC(),
	}

	ws.writeJSONResponse(w, statusCode, response)
}

// corsMiddleware adds CORS headers
func (ws *WebServer) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// loggingMiddleware logs each request at debug level
func (ws *WebServer) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		webLogger.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Dur("duration", time.Since(start)).
			Msg("Handled request")
	})
}
