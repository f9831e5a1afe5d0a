package quiz

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/vocab-coach/backend/internal/grader"
	"github.com/vocab-coach/backend/internal/models"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	userID, collectionID, ok := requestIDs(w, r)
	if !ok {
		return
	}

	summary, err := h.service.Summary(userID, collectionID)
	if err != nil {
		h.writeServiceError(w, "GetSummary", err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (h *Handler) NextWord(w http.ResponseWriter, r *http.Request) {
	userID, collectionID, ok := requestIDs(w, r)
	if !ok {
		return
	}

	next, err := h.service.Next(userID, collectionID)
	if err != nil {
		h.writeServiceError(w, "NextWord", err)
		return
	}
	writeJSON(w, http.StatusOK, next)
}

func (h *Handler) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	userID, collectionID, ok := requestIDs(w, r)
	if !ok {
		return
	}

	var req models.AnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}
	if req.WordID == 0 {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "word_id is required"})
		return
	}

	resp, err := h.service.Answer(r.Context(), userID, collectionID, req)
	if err != nil {
		h.writeServiceError(w, "SubmitAnswer", err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) SubmitQuery(w http.ResponseWriter, r *http.Request) {
	userID, collectionID, ok := requestIDs(w, r)
	if !ok {
		return
	}

	var req models.QueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}
	if req.WordID == 0 {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "word_id is required"})
		return
	}

	resp, err := h.service.Query(r.Context(), userID, collectionID, req)
	if err != nil {
		h.writeServiceError(w, "SubmitQuery", err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// writeServiceError maps service errors onto HTTP responses. A grader
// outage is not an HTTP failure: the client gets a retryable api_error
// payload and nothing was recorded.
func (h *Handler) writeServiceError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, grader.ErrUnavailable):
		writeJSON(w, http.StatusOK, models.GraderUnavailableResponse{
			APIError: true,
			Reason:   "The examiner is temporarily unavailable. Try again in a moment.",
		})
	case errors.Is(err, ErrNotFound):
		writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "Collection not found"})
	case errors.Is(err, ErrNotCalibrated):
		writeJSON(w, http.StatusConflict, models.ErrorResponse{Error: "Collection has not been calibrated"})
	case errors.Is(err, ErrWordMismatch):
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid word"})
	case errors.Is(err, ErrEmptyDefinition):
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Definition is required"})
	default:
		log.Printf("[quiz] %s error: %v", op, err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Internal server error"})
	}
}

func requestIDs(w http.ResponseWriter, r *http.Request) (userID, collectionID int64, ok bool) {
	userID, authed := r.Context().Value("user_id").(int64)
	if !authed {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return 0, 0, false
	}

	collectionID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid collection ID"})
		return 0, 0, false
	}
	return userID, collectionID, true
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
