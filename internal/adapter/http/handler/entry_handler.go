package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/example/bookkeeper/internal/adapter/http/dto"
	"github.com/example/bookkeeper/internal/domain"
	"github.com/example/bookkeeper/internal/usecase"
)

// EntryService defines the behavior needed by EntryHandler.
type EntryService interface {
	CreateEntry(ctx context.Context, input usecase.CreateEntryInput) (*domain.Entry, error)
	UpdateEntry(ctx context.Context, id string, input usecase.UpdateEntryInput) (*domain.Entry, error)
	DeleteEntry(ctx context.Context, id string) error
	ListEntries(ctx context.Context, filter domain.EntryFilter) (*usecase.ListEntriesResult, error)
}

// EntryHandler handles journal entry HTTP requests.
type EntryHandler struct {
	entryUC EntryService
}

// NewEntryHandler creates a new EntryHandler.
func NewEntryHandler(entryUC EntryService) *EntryHandler {
	return &EntryHandler{entryUC: entryUC}
}

// Create records a new journal entry.
func (h *EntryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	input, err := req.ToUseCaseInput()
	if err != nil {
		writeDomainError(w, err, "invalid entry date")
		return
	}

	entry, err := h.entryUC.CreateEntry(r.Context(), input)
	if err != nil {
		writeDomainError(w, err, "failed to create entry")
		return
	}

	writeJSON(w, http.StatusCreated, dto.Response{Success: true, Data: dto.EntryFromDomain(entry)})
}

// Update applies a partial update to a journal entry.
func (h *EntryHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing entry ID", "")
		return
	}

	var req dto.UpdateEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	input, err := req.ToUseCaseInput()
	if err != nil {
		writeDomainError(w, err, "invalid entry date")
		return
	}

	entry, err := h.entryUC.UpdateEntry(r.Context(), id, input)
	if err != nil {
		writeDomainError(w, err, "failed to update entry")
		return
	}

	writeJSON(w, http.StatusOK, dto.Response{Success: true, Data: dto.EntryFromDomain(entry)})
}

// Delete removes a journal entry. Derived balances reflect the removal on
// the next read.
func (h *EntryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing entry ID", "")
		return
	}

	if err := h.entryUC.DeleteEntry(r.Context(), id); err != nil {
		writeDomainError(w, err, "failed to delete entry")
		return
	}

	writeJSON(w, http.StatusOK, dto.Response{Success: true})
}

// List lists journal entries matching the query filters.
func (h *EntryHandler) List(w http.ResponseWriter, r *http.Request) {
	filter, err := entryFilterFromQuery(r)
	if err != nil {
		writeDomainError(w, err, "invalid filter")
		return
	}

	result, err := h.entryUC.ListEntries(r.Context(), filter)
	if err != nil {
		writeDomainError(w, err, "failed to list entries")
		return
	}

	writeJSON(w, http.StatusOK, dto.ListEntriesResponse{
		Success: true,
		Data:    dto.EntriesFromDomain(result.Entries),
		Pagination: dto.PaginationResponse{
			Limit:  result.Limit,
			Offset: result.Offset,
			Total:  result.Total,
		},
	})
}

func entryFilterFromQuery(r *http.Request) (domain.EntryFilter, error) {
	q := r.URL.Query()

	filter := domain.EntryFilter{
		AccountID: q.Get("accountId"),
		Document:  q.Get("document"),
		Limit:     parseIntQuery(r, "limit", 0),
		Offset:    parseIntQuery(r, "offset", 0),
	}

	if v := q.Get("fromDate"); v != "" {
		date, err := domain.ParseDate(v)
		if err != nil {
			return domain.EntryFilter{}, err
		}
		filter.FromDate = date
	}
	if v := q.Get("toDate"); v != "" {
		date, err := domain.ParseDate(v)
		if err != nil {
			return domain.EntryFilter{}, err
		}
		filter.ToDate = date
	}

	return filter, nil
}
