package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/WingTeck/golub-banka/internal/ledger"
	"github.com/WingTeck/golub-banka/internal/logger"
	"github.com/WingTeck/golub-banka/internal/middlewares"
	"github.com/WingTeck/golub-banka/internal/models"
)

// TransactionLister defines the interface that the service must implement.
type TransactionLister interface {
	Transactions(ctx context.Context, reference string) ([]models.Transaction, error)
}

// NewTransactionsHandler returns an HTTP handler for the authenticated
// owner's retained transaction history.
// @Summary List transactions
// @Description Returns the most recent transactions of the authenticated owner's account, oldest first. At most ten entries are retained.
// @Tags account
// @Produce json
// @Success 200 {object} models.APIResponse{data=[]models.Transaction} "Transaction history"
// @Failure 401 {object} models.APIResponse "Unauthorized"
// @Failure 404 {object} models.APIResponse "Account not found"
// @Router /transactions [get]
// @Security BearerAuth
func NewTransactionsHandler(svc TransactionLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		accountID := middlewares.AccountIDFromContext(r.Context())
		if accountID == "" {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(models.APIResponse{Success: false, Message: "Unauthorized"})
			return
		}

		txns, err := svc.Transactions(r.Context(), accountID)
		if err != nil {
			switch err {
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

		if txns == nil {
			txns = []models.Transaction{}
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(models.APIResponse{Success: true, Data: txns})
	}
}
