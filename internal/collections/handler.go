package collections

import (
	"database/sql"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"github.com/vocab-coach/backend/internal/extractor"
	"github.com/vocab-coach/backend/internal/models"
)

const maxUploadBytes = 50 << 20 // 50MB

type Handler struct {
	store   *Store
	service *Service
}

func NewHandler(store *Store, service *Service) *Handler {
	return &Handler{store: store, service: service}
}

// Upload accepts a multipart PDF with an optional page range and kicks off
// background extraction.
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Upload too large or malformed"})
		return
	}

	file, header, err := r.FormFile("pdf")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "A PDF file is required"})
		return
	}
	defer file.Close()

	if !strings.HasSuffix(strings.ToLower(header.Filename), ".pdf") {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Please upload a PDF file"})
		return
	}

	pages, err := parsePageRange(r.FormValue("start_page"), r.FormValue("end_page"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		return
	}

	document, err := io.ReadAll(file)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Failed to read upload"})
		return
	}

	baseName := strings.TrimSuffix(header.Filename, filepath.Ext(header.Filename))
	name := BuildName(baseName, pages)

	collection, err := h.service.CreateFromUpload(userID, name, document, header.Filename, pages)
	if err != nil {
		log.Printf("[collections] Upload error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to create collection"})
		return
	}

	writeJSON(w, http.StatusAccepted, collection)
}

// List is the dashboard: every collection with its mastery stats.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	collections, err := h.store.List(userID)
	if err != nil {
		log.Printf("[collections] List error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to list collections"})
		return
	}

	stats := make([]models.CollectionStats, 0, len(collections))
	for _, c := range collections {
		st, err := h.store.Stats(c)
		if err != nil {
			log.Printf("[collections] stats for collection %d: %v", c.ID, err)
			writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to compute stats"})
			return
		}
		stats = append(stats, st)
	}

	writeJSON(w, http.StatusOK, stats)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	collection, ok := h.loadOwned(w, r)
	if !ok {
		return
	}

	words, err := h.store.Words(collection.ID)
	if err != nil {
		log.Printf("[collections] Get words error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to load words"})
		return
	}
	if words == nil {
		words = []models.Word{}
	}

	writeJSON(w, http.StatusOK, models.CollectionDetail{Collection: *collection, Words: words})
}

func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	collection, ok := h.loadOwned(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, models.CollectionStatusResponse{Status: collection.Status})
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid collection ID"})
		return
	}

	if err := h.store.Delete(id, userID); err != nil {
		if err == sql.ErrNoRows {
			writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "Collection not found"})
			return
		}
		log.Printf("[collections] Delete error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to delete collection"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}

func (h *Handler) loadOwned(w http.ResponseWriter, r *http.Request) (*models.WordCollection, bool) {
	userID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return nil, false
	}

	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid collection ID"})
		return nil, false
	}

	collection, err := h.store.Get(id, userID)
	if err == sql.ErrNoRows {
		writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "Collection not found"})
		return nil, false
	}
	if err != nil {
		log.Printf("[collections] load error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Internal server error"})
		return nil, false
	}
	return collection, true
}

// parsePageRange reads optional 1-based form fields. Empty start means the
// whole document.
func parsePageRange(startStr, endStr string) (*extractor.PageRange, error) {
	startStr = strings.TrimSpace(startStr)
	endStr = strings.TrimSpace(endStr)
	if startStr == "" {
		return nil, nil
	}

	start, err := strconv.Atoi(startStr)
	if err != nil || start < 1 {
		return nil, errInvalidPage
	}

	pages := &extractor.PageRange{Start: start}
	if endStr != "" {
		end, err := strconv.Atoi(endStr)
		if err != nil || end < start {
			return nil, errInvalidPage
		}
		pages.End = end
	}
	return pages, nil
}

var errInvalidPage = errors.New("Invalid page range")

func getUserID(r *http.Request) (int64, bool) {
	uid, ok := r.Context().Value("user_id").(int64)
	return uid, ok
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
