package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/example/bookkeeper/internal/adapter/http/dto"
	"github.com/example/bookkeeper/internal/domain"
)

type balanceServiceStub struct {
	asOfFn   func(ctx context.Context, date time.Time) ([]domain.Balance, error)
	periodFn func(ctx context.Context, start, end time.Time) ([]domain.Balance, error)
}

func (s *balanceServiceStub) BalanceAsOf(ctx context.Context, date time.Time) ([]domain.Balance, error) {
	return s.asOfFn(ctx, date)
}

func (s *balanceServiceStub) BalancePeriod(ctx context.Context, start, end time.Time) ([]domain.Balance, error) {
	return s.periodFn(ctx, start, end)
}

func TestBalanceHandler_Get_Period(t *testing.T) {
	balances := []domain.Balance{{
		AccountID:   "acc-1",
		AccountName: "Cash",
		AccountType: domain.AccountTypeAsset,
		Balance:     decimal.NewFromInt(1200),
	}}

	var gotStart, gotEnd time.Time
	handler := NewBalanceHandler(&balanceServiceStub{
		periodFn: func(ctx context.Context, start, end time.Time) ([]domain.Balance, error) {
			gotStart, gotEnd = start, end
			return balances, nil
		},
		asOfFn: func(ctx context.Context, date time.Time) ([]domain.Balance, error) {
			t.Fatal("expected a period computation")
			return nil, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/balances?startDate=2024-01-01&endDate=2024-06-30", nil)
	rec := httptest.NewRecorder()

	handler.Get(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if gotStart.Format(domain.DateLayout) != "2024-01-01" || gotEnd.Format(domain.DateLayout) != "2024-06-30" {
		t.Fatalf("unexpected window %v..%v", gotStart, gotEnd)
	}

	var resp dto.BalancesResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !resp.Success || len(resp.Data) != 1 || resp.Data[0].AccountID != "acc-1" {
		t.Fatalf("unexpected response %+v", resp)
	}
	if resp.StartDate != "2024-01-01" || resp.EndDate != "2024-06-30" {
		t.Fatalf("expected window echoed back, got %s..%s", resp.StartDate, resp.EndDate)
	}
}

func TestBalanceHandler_Get_AsOfWhenStartOmitted(t *testing.T) {
	var gotDate time.Time
	handler := NewBalanceHandler(&balanceServiceStub{
		asOfFn: func(ctx context.Context, date time.Time) ([]domain.Balance, error) {
			gotDate = date
			return nil, nil
		},
		periodFn: func(ctx context.Context, start, end time.Time) ([]domain.Balance, error) {
			t.Fatal("expected an as-of computation")
			return nil, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/balances?endDate=2024-06-30", nil)
	rec := httptest.NewRecorder()

	handler.Get(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if gotDate.Format(domain.DateLayout) != "2024-06-30" {
		t.Fatalf("expected as-of date from endDate, got %v", gotDate)
	}

	var resp dto.BalancesResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.StartDate != "2000-01-01" {
		t.Fatalf("expected default start date, got %s", resp.StartDate)
	}
}

func TestBalanceHandler_Get_BadDate(t *testing.T) {
	handler := NewBalanceHandler(&balanceServiceStub{})

	req := httptest.NewRequest(http.MethodGet, "/balances?endDate=soon", nil)
	rec := httptest.NewRecorder()

	handler.Get(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
