package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/WingTeck/golub-banka/internal/logger"
	"github.com/WingTeck/golub-banka/internal/models"
	"github.com/WingTeck/golub-banka/internal/services"
)

// Registerer defines the interface that the service must implement.
type Registerer interface {
	Register(ctx context.Context, owner, password string) error
}

// RegisterRequest represents the JSON body for owner registration
// swagger:model RegisterRequest
type RegisterRequest struct {
	// Owner name
	// required: true
	// default: ana
	Owner string `json:"owner"`

	// Password
	// required: true
	// default: secret123
	Password string `json:"password"`
}

// NewRegisterHandler returns an HTTP handler for owner registration.
// @Summary Register a new owner
// @Description Creates login credentials and opens the owner's pigeon account. Owner names are unique.
// @Tags auth
// @Accept json
// @Produce json
// @Param registerRequest body handlers.RegisterRequest true "Owner registration request"
// @Success 201 {object} models.APIResponse "Owner registered and account opened"
// @Failure 400 {object} models.APIResponse "Invalid request body"
// @Failure 409 {object} models.APIResponse "Owner already registered"
// @Router /register [post]
func NewRegisterHandler(svc Registerer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		var req RegisterRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(models.APIResponse{Success: false, Message: "Invalid request body"})
			return
		}
		if req.Owner == "" || req.Password == "" {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(models.APIResponse{Success: false, Message: "Owner and password are required"})
			return
		}

		if err := svc.Register(r.Context(), req.Owner, req.Password); err != nil {
			switch err {
			case services.ErrOwnerAlreadyExists:
				w.WriteHeader(http.StatusConflict)
				json.NewEncoder(w).Encode(models.APIResponse{Success: false, Message: "Owner already registered"})
			default:
				logger.Log.Errorw("internal server error", "err", err)
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(models.APIResponse{Success: false, Message: "Internal server error"})
			}
			return
		}

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(models.APIResponse{Success: true})
	}
}
