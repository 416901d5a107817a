package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/wallet-roaster/internal/analytics"
	"github.com/wallet-roaster/internal/service"
)

// handleHealth handles health check requests. Cache reachability degrades
// the report but does not fail it: snapshots can still be served upstream.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := map[string]string{
		"status":  "healthy",
		"service": "wallet-roaster",
	}

	if s.cacheHealth != nil {
		if err := s.cacheHealth.Ping(r.Context()); err != nil {
			status["status"] = "degraded"
			status["cache"] = "unreachable"
		} else {
			status["cache"] = "ok"
		}
	}

	respondJSON(w, http.StatusOK, status)
}

// handleGetWallet returns the analytics-enriched snapshot for an address
func (s *Server) handleGetWallet(w http.ResponseWriter, r *http.Request) {
	address := mux.Vars(r)["address"]

	snapshot, err := s.walletService.GetSnapshot(r.Context(), address)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, snapshot)
}

// handleRefreshWallet rebuilds the snapshot from upstream, bypassing cache
func (s *Server) handleRefreshWallet(w http.ResponseWriter, r *http.Request) {
	address := mux.Vars(r)["address"]

	snapshot, err := s.walletService.Refresh(r.Context(), address)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, snapshot)
}

// handleGetInsights returns the derived statistics for an address: the
// transaction insights plus chart insights when a value series is available
func (s *Server) handleGetInsights(w http.ResponseWriter, r *http.Request) {
	address := mux.Vars(r)["address"]

	snapshot, err := s.walletService.GetSnapshot(r.Context(), address)
	if err != nil {
		respondError(w, err)
		return
	}

	response := map[string]interface{}{
		"address":          snapshot.Address,
		"tradingFrequency": snapshot.TradingFrequency,
		"transactions":     snapshot.TransactionInsights,
	}
	if snapshot.ChartData != nil {
		response["chart"] = analytics.ComputeChartInsights(snapshot.ChartData.Points)
	}

	respondJSON(w, http.StatusOK, response)
}

// handleGetChart returns the value series with derived statistics and axis bounds
func (s *Server) handleGetChart(w http.ResponseWriter, r *http.Request) {
	address := mux.Vars(r)["address"]

	view, err := s.walletService.GetChart(r.Context(), address)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, view)
}

// handleGenerateRoast produces a scored roast for an address. The engine
// query parameter selects the provider; anything but "ai" scores
// deterministically.
func (s *Server) handleGenerateRoast(w http.ResponseWriter, r *http.Request) {
	address := mux.Vars(r)["address"]

	engine := service.EngineDeterministic
	if r.URL.Query().Get("engine") == string(service.EngineGenerative) {
		engine = service.EngineGenerative
	}

	result, err := s.roastService.GenerateRoast(r.Context(), address, engine)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}
