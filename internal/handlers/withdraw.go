package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/WingTeck/golub-banka/internal/ledger"
	"github.com/WingTeck/golub-banka/internal/logger"
	"github.com/WingTeck/golub-banka/internal/middlewares"
	"github.com/WingTeck/golub-banka/internal/models"
)

// Withdrawer defines the interface that the service must implement.
type Withdrawer interface {
	Withdraw(ctx context.Context, reference string, amount decimal.Decimal) (models.Pigeon, error)
}

// WithdrawRequest represents the JSON body for withdrawing funds
// swagger:model WithdrawRequest
type WithdrawRequest struct {
	// Amount to withdraw, positive with at most two decimal places
	// required: true
	// default: 20.00
	Amount decimal.Decimal `json:"amount"`
}

// NewWithdrawHandler returns an HTTP handler for withdrawing funds from the
// authenticated owner's account.
// @Summary Withdraw funds
// @Description Removes funds from the authenticated owner's account and returns the updated snapshot. Overdrafts are rejected.
// @Tags wallet
// @Accept json
// @Produce json
// @Param request body handlers.WithdrawRequest true "Withdraw request"
// @Success 200 {object} models.APIResponse{data=models.Pigeon} "Updated account"
// @Failure 400 {object} models.APIResponse "Invalid amount or insufficient funds"
// @Failure 401 {object} models.APIResponse "Unauthorized"
// @Failure 404 {object} models.APIResponse "Account not found"
// @Router /withdraw [post]
// @Security BearerAuth
func NewWithdrawHandler(svc Withdrawer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		accountID := middlewares.AccountIDFromContext(r.Context())
		if accountID == "" {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(models.APIResponse{Success: false, Message: "Unauthorized"})
			return
		}

		var req WithdrawRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Log.Errorw("failed to decode withdraw request", "error", err)
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(models.APIResponse{Success: false, Message: "Invalid request body"})
			return
		}

		account, err := svc.Withdraw(r.Context(), accountID, req.Amount)
		if err != nil {
			switch err {
			case ledger.ErrInvalidAmount:
				w.WriteHeader(http.StatusBadRequest)
				json.NewEncoder(w).Encode(models.APIResponse{Success: false, Message: "Invalid amount"})
			case ledger.ErrInsufficientFunds:
				w.WriteHeader(http.StatusBadRequest)
				json.NewEncoder(w).Encode(models.APIResponse{Success: false, Message: "Insufficient funds"})
			case ledger.ErrNotFound:
				w.WriteHeader(http.StatusNotFound)
				json.NewEncoder(w).Encode(models.APIResponse{Success: false, Message: "Account not found"})
			default:
				logger.Log.Errorw("internal server error", "err", err)
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(models.APIResponse{Success: false, Message: "Internal server error"})
			}
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(models.APIResponse{Success: true, Data: account})
	}
}
