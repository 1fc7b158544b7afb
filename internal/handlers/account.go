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

// AccountGetter defines the interface that the service must implement.
type AccountGetter interface {
	GetAccount(ctx context.Context, reference string) (models.Pigeon, error)
}

// NewAccountHandler returns an HTTP handler for fetching the authenticated
// owner's account snapshot.
// @Summary Get account
// @Description Returns the account snapshot for the authenticated owner: balance, card number, and retained transaction history.
// @Tags account
// @Produce json
// @Success 200 {object} models.APIResponse{data=models.Pigeon} "Account snapshot"
// @Failure 401 {object} models.APIResponse "Unauthorized"
// @Failure 404 {object} models.APIResponse "Account not found"
// @Router /account [get]
// @Security BearerAuth
func NewAccountHandler(svc AccountGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		accountID := middlewares.AccountIDFromContext(r.Context())
		if accountID == "" {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(models.APIResponse{Success: false, Message: "Unauthorized"})
			return
		}

		account, err := svc.GetAccount(r.Context(), accountID)
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

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(models.APIResponse{Success: true, Data: account})
	}
}
