package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/ruralpay/ledger/internal/models"
	"github.com/ruralpay/ledger/internal/services"
)

type UserHandler struct {
	bank      *services.BankingService
	validator *services.ValidationHelper
}

func NewUserHandler(bank *services.BankingService) *UserHandler {
	return &UserHandler{
		bank:      bank,
		validator: services.NewValidationHelper(),
	}
}

// RegisterRequest represents the registration request payload
type RegisterRequest struct {
	Username string `json:"username" validate:"required" example:"alice"`
	Password string `json:"password" validate:"required" example:"secret123"`
	Email    string `json:"email" validate:"required" example:"alice@example.com"`
	UserType string `json:"user_type,omitempty" example:"STANDARD"`
}

// LoginRequest represents the login request payload
type LoginRequest struct {
	Username string `json:"username" validate:"required" example:"alice"`
	Password string `json:"password" validate:"required" example:"secret123"`
}

// Register creates a user
// @Summary Register user
// @Tags users
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration request"
// @Success 201 {object} models.UserSnapshot
// @Failure 400 {object} services.ErrorResponse
// @Router /users [post]
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if !decodeJSON(w, r, h.validator, &req) {
		return
	}
	if req.UserType == "" {
		req.UserType = string(models.UserStandard)
	}

	user, err := h.bank.RegisterUser(req.Username, req.Password, req.Email, req.UserType)
	if err != nil {
		services.SendDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, user.Snapshot())
}

// Login checks credentials
// @Summary Login
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login request"
// @Success 200 {object} models.UserSnapshot
// @Failure 401 {object} services.ErrorResponse
// @Router /auth/login [post]
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !decodeJSON(w, r, h.validator, &req) {
		return
	}

	user, err := h.bank.Authenticate(req.Username, req.Password)
	if err != nil {
		services.SendDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, user.Snapshot())
}

func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.bank.UserByID(chi.URLParam(r, "userId"))
	if err != nil {
		services.SendDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user.Snapshot())
}

// DeactivateUser deactivates the user together with every account it owns.
func (h *UserHandler) DeactivateUser(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")
	if err := h.bank.DeactivateUser(userID); err != nil {
		services.SendDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "deactivated",
		"user_id": userID,
	})
}

func (h *UserHandler) ListAccounts(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")
	if _, err := h.bank.UserByID(userID); err != nil {
		services.SendDomainError(w, err)
		return
	}

	accounts := h.bank.AccountsOf(userID)
	snapshots := make([]models.AccountSnapshot, 0, len(accounts))
	for _, a := range accounts {
		snapshots = append(snapshots, a.Snapshot())
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"accounts": snapshots,
		"count":    len(snapshots),
	})
}
