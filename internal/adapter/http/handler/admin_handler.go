package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/example/bookkeeper/internal/adapter/http/dto"
	"github.com/example/bookkeeper/internal/usecase"
)

// SweepService defines the behavior needed by AdminHandler.
type SweepService interface {
	Recalculate(ctx context.Context) (*usecase.SweepReport, error)
	CheckConsistency(ctx context.Context) (totalDebits, totalCredits decimal.Decimal, err error)
	Health(ctx context.Context) (accounts, entries int64, err error)
}

// AdminHandler handles administrative HTTP requests.
type AdminHandler struct {
	sweepUC SweepService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(sweepUC SweepService) *AdminHandler {
	return &AdminHandler{sweepUC: sweepUC}
}

// Recalculate audits the full journal and reports how many entries still
// satisfy the recording invariants. The journal itself is not modified.
func (h *AdminHandler) Recalculate(w http.ResponseWriter, r *http.Request) {
	report, err := h.sweepUC.Recalculate(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to recalculate", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.Response{Success: true, Data: dto.SweepFromReport(report)})
}

// Consistency verifies that debit and credit totals match over the whole
// journal.
func (h *AdminHandler) Consistency(w http.ResponseWriter, r *http.Request) {
	debits, credits, err := h.sweepUC.CheckConsistency(r.Context())
	if err != nil {
		if errors.Is(err, usecase.ErrInconsistentLedger) {
			writeJSON(w, http.StatusConflict, map[string]any{
				"success":      false,
				"consistent":   false,
				"totalDebits":  debits,
				"totalCredits": credits,
			})
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to check consistency", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":      true,
		"consistent":   true,
		"totalDebits":  debits,
		"totalCredits": credits,
	})
}

// Health reports registry and journal totals.
func (h *AdminHandler) Health(w http.ResponseWriter, r *http.Request) {
	accounts, entries, err := h.sweepUC.Health(r.Context())
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, "database unreachable", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.Response{Success: true, Data: dto.AdminHealthResponse{
		Status:   "ok",
		Database: "connected",
		Accounts: accounts,
		Entries:  entries,
	}})
}
