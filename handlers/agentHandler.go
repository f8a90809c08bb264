package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"reactagent/models"
	"reactagent/services/agent"

	"github.com/gorilla/mux"
)

type AgentHandler struct {
	service *agent.Service
}

func NewAgentHandler(service *agent.Service) *AgentHandler {
	return &AgentHandler{service: service}
}

func (h *AgentHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/agent/run", h.Run).Methods("POST")
}

func (h *AgentHandler) Run(w http.ResponseWriter, r *http.Request) {
	log.Printf("[INFO] Received agent run request")

	var req models.RunRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("[ERROR] Failed to decode run request JSON: %v", err)
		h.writeErrorResponse(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	if req.Task == "" {
		log.Printf("[ERROR] No task provided in run request")
		h.writeErrorResponse(w, http.StatusBadRequest, "A task is required")
		return
	}

	result, err := h.service.RunWithBudget(r.Context(), req.Task, req.MaxIterations)
	if err != nil {
		log.Printf("[ERROR] Agent run failed: %v", err)
		h.writeErrorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	log.Printf("[INFO] Agent run completed: success=%t iterations=%d", result.Success, result.Iterations)
	h.writeJSONResponse(w, http.StatusOK, result)
}

func (h *AgentHandler) writeJSONResponse(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

func (h *AgentHandler) writeErrorResponse(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
