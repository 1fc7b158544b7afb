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

// AccountLister defines the interface that the service must implement.
type AccountLister interface {
	ListAccounts(ctx context.Context, reference string) ([]models.Pigeon, error)
}

// NewAccountsHandler returns an HTTP handler listing every account registered
// under the authenticated owner.
// @Summary List accounts
// @Description Returns all accounts belonging to the authenticated owner. Under the single-account policy the list has one entry.
// @Tags account
// @Produce json
// @Success 200 {object} models.APIResponse{data=[]models.Pigeon} "Accounts"
// @Failure 401 {object} models.APIResponse "Unauthorized"
// @Failure 404 {object} models.APIResponse "Account not found"
// @Router /accounts [get]
// @Security BearerAuth
func NewAccountsHandler(svc AccountLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		accountID := middlewares.AccountIDFromContext(r.Context())
		if accountID == "" {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(models.APIResponse{Success: false, Message: "Unauthorized"})
			return
		}

		accounts, err := svc.ListAccounts(r.Context(), accountID)
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
		json.NewEncoder(w).Encode(models.APIResponse{Success: true, Data: accounts})
	}
}
