package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/fjod/agromarket/internal/domain"
)

type Accounts interface {
	Signup(ctx context.Context, u *domain.User) (*domain.User, error)
	Login(ctx context.Context, mail, password string) (*domain.User, string, error)
}

type AccountHandler struct {
	accounts Accounts
	timeout  time.Duration
	log      *slog.Logger
}

func NewAccountHandler(accounts Accounts, timeout time.Duration, log *slog.Logger) *AccountHandler {
	return &AccountHandler{accounts: accounts, timeout: timeout, log: log}
}

type SignupRequestDTO struct {
	Username    string `json:"username"`
	Mail        string `json:"mail"`
	Password    string `json:"password"`
	PhoneNumber string `json:"phonenumber"`
	Location    string `json:"location"`
	Type        string `json:"type"`
}

type LoginRequestDTO struct {
	Mail     string `json:"mail"`
	Password string `json:"password"`
}

type UserResponse struct {
	Message string       `json:"message"`
	User    *domain.User `json:"user"`
	Token   string       `json:"token,omitempty"`
}

// Signup accepts multipart/form-data with an optional "pic" file, or JSON.
func (h *AccountHandler) Signup(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req SignupRequestDTO
	var pic []byte
	if isMultipart(r) {
		if err := parseMultipart(r); err != nil {
			respondServiceError(w, r, h.log, err)
			return
		}
		req = SignupRequestDTO{
			Username:    formValue(r, "username"),
			Mail:        formValue(r, "mail"),
			Password:    r.FormValue("password"),
			PhoneNumber: formValue(r, "phonenumber"),
			Location:    formValue(r, "location"),
			Type:        formValue(r, "type"),
		}
		var err error
		if pic, err = formFile(r, "pic"); err != nil {
			respondServiceError(w, r, h.log, err)
			return
		}
	} else if err := decodeJSON(r, &req); err != nil {
		respondServiceError(w, r, h.log, err)
		return
	}

	user, err := h.accounts.Signup(ctx, &domain.User{
		Username:    req.Username,
		Mail:        req.Mail,
		Password:    req.Password,
		PhoneNumber: req.PhoneNumber,
		Location:    req.Location,
		Pic:         pic,
		Type:        domain.Role(req.Type),
	})
	if err != nil {
		respondServiceError(w, r, h.log, err)
		return
	}

	respondJSON(w, http.StatusCreated, UserResponse{Message: "User created successfully", User: user})
}

func (h *AccountHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req LoginRequestDTO
	if err := decodeJSON(r, &req); err != nil {
		respondServiceError(w, r, h.log, err)
		return
	}

	user, token, err := h.accounts.Login(ctx, req.Mail, req.Password)
	if err != nil {
		respondServiceError(w, r, h.log, err)
		return
	}

	respondJSON(w, http.StatusOK, UserResponse{Message: "Login successful", User: user, Token: token})
}
