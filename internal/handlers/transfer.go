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

// Transferer defines the interface that the service must implement.
type Transferer interface {
	Transfer(ctx context.Context, senderReference, receiverCardNumber string, amount decimal.Decimal) (models.Pigeon, error)
}

// TransferRequest represents the JSON body for a peer-to-peer transfer
// swagger:model TransferRequest
type TransferRequest struct {
	// Recipient card number, sixteen digits
	// required: true
	// default: 0000000000000002
	CardNumber string `json:"cardNumber"`

	// Amount to transfer, positive with at most two decimal places
	// required: true
	// default: 20.00
	Amount decimal.Decimal `json:"amount"`
}

// NewTransferHandler returns an HTTP handler for transferring funds from the
// authenticated owner's account to another card.
// @Summary Transfer funds
// @Description Moves funds from the authenticated owner's account to the account owning the given card number. Returns the updated sender snapshot.
// @Tags wallet
// @Accept json
// @Produce json
// @Param request body handlers.TransferRequest true "Transfer request"
// @Success 200 {object} models.APIResponse{data=models.Pigeon} "Updated sender account"
// @Failure 400 {object} models.APIResponse "Invalid amount, self transfer, or insufficient funds"
// @Failure 401 {object} models.APIResponse "Unauthorized"
// @Failure 404 {object} models.APIResponse "Sender or recipient not found"
// @Router /transfer [post]
// @Security BearerAuth
func NewTransferHandler(svc Transferer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		accountID := middlewares.AccountIDFromContext(r.Context())
		if accountID == "" {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(models.APIResponse{Success: false, Message: "Unauthorized"})
			return
		}

		var req TransferRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Log.Errorw("failed to decode transfer request", "error", err)
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(models.APIResponse{Success: false, Message: "Invalid request body"})
			return
		}

		account, err := svc.Transfer(r.Context(), accountID, req.CardNumber, req.Amount)
		if err != nil {
			switch err {
			case ledger.ErrInvalidAmount:
				w.WriteHeader(http.StatusBadRequest)
				json.NewEncoder(w).Encode(models.APIResponse{Success: false, Message: "Invalid amount"})
			case ledger.ErrSelfTransfer:
				w.WriteHeader(http.StatusBadRequest)
				json.NewEncoder(w).Encode(models.APIResponse{Success: false, Message: "Cannot transfer to own card"})
			case ledger.ErrInsufficientFunds:
				w.WriteHeader(http.StatusBadRequest)
				json.NewEncoder(w).Encode(models.APIResponse{Success: false, Message: "Insufficient funds"})
			case ledger.ErrRecipientNotFound:
				w.WriteHeader(http.StatusNotFound)
				json.NewEncoder(w).Encode(models.APIResponse{Success: false, Message: "Recipient not found"})
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
