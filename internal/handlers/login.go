package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/WingTeck/golub-banka/internal/logger"
	"github.com/WingTeck/golub-banka/internal/models"
	"github.com/WingTeck/golub-banka/internal/services"
)

// LoginGetter defines the interface that the service must implement.
type LoginGetter interface {
	Login(ctx context.Context, owner, password string) (string, models.Pigeon, error)
}

// LoginRequest represents the JSON body for owner login
// swagger:model LoginRequest
type LoginRequest struct {
	// Owner name
	// required: true
	// default: ana
	Owner string `json:"owner"`

	// Password
	// required: true
	// default: secret123
	Password string `json:"password"`
}

// LoginResult carries the issued token and the account it is bound to.
// swagger:model LoginResult
type LoginResult struct {
	// JWT token
	Token string `json:"token"`

	// Account snapshot
	Account models.Pigeon `json:"account"`
}

// NewLoginHandler returns an HTTP handler for owner login.
// @Summary Log in an owner
// @Description Verifies credentials and returns a JWT bound to the owner's pigeon account.
// @Tags auth
// @Accept json
// @Produce json
// @Param loginRequest body handlers.LoginRequest true "Owner login request"
// @Success 200 {object} models.APIResponse{data=handlers.LoginResult} "Token issued"
// @Failure 400 {object} models.APIResponse "Invalid request body"
// @Failure 401 {object} models.APIResponse "Invalid owner or password"
// @Router /login [post]
func NewLoginHandler(svc LoginGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		var req LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(models.APIResponse{Success: false, Message: "Invalid request body"})
			return
		}

		token, account, err := svc.Login(r.Context(), req.Owner, req.Password)
		if err != nil {
			switch err {
			case services.ErrOwnerDoesNotExist, services.ErrInvalidCredentials:
				w.WriteHeader(http.StatusUnauthorized)
				json.NewEncoder(w).Encode(models.APIResponse{Success: false, Message: "Invalid owner or password"})
			default:
				logger.Log.Errorw("internal server error", "err", err)
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(models.APIResponse{Success: false, Message: "Internal server error"})
			}
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(models.APIResponse{
			Success: true,
			Data:    LoginResult{Token: token, Account: account},
		})
	}
}
