// Package handlers implements the HTTP handlers of the read-only API.
package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Nathaniel-Dominguez/Limited-Draft-Analysis/internal/api/response"
	"github.com/Nathaniel-Dominguez/Limited-Draft-Analysis/internal/export"
	"github.com/Nathaniel-Dominguez/Limited-Draft-Analysis/internal/mtga/draft/analytics"
	"github.com/Nathaniel-Dominguez/Limited-Draft-Analysis/internal/storage"
	"github.com/Nathaniel-Dominguez/Limited-Draft-Analysis/internal/storage/models"
)

const defaultListLimit = 50

// BatchStore is the part of the storage service the batch handlers read.
type BatchStore interface {
	ListBatches(ctx context.Context, setCode string, limit int) ([]*models.Batch, error)
	GetBatch(ctx context.Context, id string) (*models.Batch, error)
	GetBatchSummary(ctx context.Context, id string) (analytics.Summary, error)
	GetBatchRecords(ctx context.Context, id string) ([]analytics.Record, error)
	GetBatchDecks(ctx context.Context, id string) ([]analytics.DeckStat, error)
}

// BatchHandler serves stored simulation batches.
type BatchHandler struct {
	store BatchStore
}

// NewBatchHandler creates a new batch handler.
func NewBatchHandler(store BatchStore) *BatchHandler {
	return &BatchHandler{store: store}
}

// ListBatches handles GET /api/v1/batches?set=&limit=.
func (h *BatchHandler) ListBatches(w http.ResponseWriter, r *http.Request) {
	limit := defaultListLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			response.BadRequest(w, fmt.Errorf("invalid limit %q", v))
			return
		}
		limit = n
	}

	batches, err := h.store.ListBatches(r.Context(), r.URL.Query().Get("set"), limit)
	if err != nil {
		response.InternalError(w, err)
		return
	}
	if batches == nil {
		batches = []*models.Batch{}
	}

	response.List(w, batches, len(batches))
}

// GetBatch handles GET /api/v1/batches/{batchID}.
func (h *BatchHandler) GetBatch(w http.ResponseWriter, r *http.Request) {
	batch, err := h.store.GetBatch(r.Context(), chi.URLParam(r, "batchID"))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	response.Success(w, batch)
}

// GetSummary handles GET /api/v1/batches/{batchID}/summary.
// With ?metric= it returns that metric's counts, highest first.
func (h *BatchHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.store.GetBatchSummary(r.Context(), chi.URLParam(r, "batchID"))
	if err != nil {
		writeStoreError(w, err)
		return
	}

	metric := r.URL.Query().Get("metric")
	if metric == "" {
		response.Success(w, summary)
		return
	}
	if _, ok := summary[metric]; !ok {
		response.NotFound(w, fmt.Errorf("metric %q not in summary", metric))
		return
	}
	response.Success(w, summary.Sorted(metric))
}

// GetRecords handles GET /api/v1/batches/{batchID}/records.
// ?format=csv streams the records as CSV.
func (h *BatchHandler) GetRecords(w http.ResponseWriter, r *http.Request) {
	records, err := h.store.GetBatchRecords(r.Context(), chi.URLParam(r, "batchID"))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if records == nil {
		records = []analytics.Record{}
	}

	if r.URL.Query().Get("format") == string(export.FormatCSV) {
		w.Header().Set("Content-Type", "text/csv")
		if err := export.ExportToWriter(w, export.FormatCSV, records, false); err != nil {
			response.InternalError(w, err)
		}
		return
	}

	response.List(w, records, len(records))
}

// GetDecks handles GET /api/v1/batches/{batchID}/decks.
func (h *BatchHandler) GetDecks(w http.ResponseWriter, r *http.Request) {
	decks, err := h.store.GetBatchDecks(r.Context(), chi.URLParam(r, "batchID"))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if decks == nil {
		decks = []analytics.DeckStat{}
	}

	response.List(w, decks, len(decks))
}

func writeStoreError(w http.ResponseWriter, err error) {
	if errors.Is(err, storage.ErrBatchNotFound) {
		response.NotFound(w, err)
		return
	}
	response.InternalError(w, err)
}
