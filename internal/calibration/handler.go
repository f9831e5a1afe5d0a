package calibration

import (
	"database/sql"
	"encoding/json"
	"log"
	"math"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/vocab-coach/backend/internal/models"
)

type Handler struct {
	store *Store
}

func NewHandler(store *Store) *Handler {
	return &Handler{store: store}
}

// GetSample returns the calibration sample for a collection, common → rare.
// The sample is a deterministic function of the collection's words, so the
// submit endpoint can recompute it instead of persisting it.
func (h *Handler) GetSample(w http.ResponseWriter, r *http.Request) {
	collection, ok := h.loadCollection(w, r)
	if !ok {
		return
	}

	words, err := h.store.GetScoredWords(collection.ID)
	if err != nil {
		log.Printf("[calibration] load words for collection %d: %v", collection.ID, err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to load words"})
		return
	}

	sample := Sample(words, DefaultSampleSize)
	writeJSON(w, http.StatusOK, models.CalibrationSampleResponse{Words: sample})
}

// Submit computes and stores the collection's threshold, either from
// positional known/unknown answers or from an explicit override value.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	collection, ok := h.loadCollection(w, r)
	if !ok {
		return
	}

	var req models.CalibrateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	var threshold float64
	if req.Threshold != nil {
		threshold = ClampThreshold(*req.Threshold)
	} else {
		words, err := h.store.GetScoredWords(collection.ID)
		if err != nil {
			log.Printf("[calibration] load words for collection %d: %v", collection.ID, err)
			writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to load words"})
			return
		}
		sample := Sample(words, DefaultSampleSize)
		threshold = EstimateThreshold(sample, req.Answers)
	}

	if err := h.store.SetThreshold(collection.ID, threshold); err != nil {
		log.Printf("[calibration] set threshold for collection %d: %v", collection.ID, err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to store threshold"})
		return
	}

	percentile := ThresholdToPercentile(threshold)
	writeJSON(w, http.StatusOK, models.CalibrateResponse{
		Threshold:  threshold,
		Percentile: math.Round(percentile*10) / 10,
	})
}

func (h *Handler) loadCollection(w http.ResponseWriter, r *http.Request) (*models.WordCollection, bool) {
	userID, ok := r.Context().Value("user_id").(int64)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return nil, false
	}

	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid collection ID"})
		return nil, false
	}

	collection, err := h.store.GetCollection(id, userID)
	if err == sql.ErrNoRows {
		writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "Collection not found"})
		return nil, false
	}
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Internal server error"})
		return nil, false
	}
	return collection, true
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
