package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/fjod/agromarket/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

type UserStore interface {
	Create(ctx context.Context, u *domain.User) error
	FindByMail(ctx context.Context, mail string) (*domain.User, error)
}

type TokenIssuer interface {
	Issue(userID, mail, role string) (string, error)
}

type AccountService struct {
	users  UserStore
	tokens TokenIssuer
	cost   int
}

func NewAccountService(users UserStore, tokens TokenIssuer) *AccountService {
	return &AccountService{users: users, tokens: tokens, cost: bcrypt.DefaultCost}
}

// Signup stores a new user with the password replaced by its bcrypt hash.
func (s *AccountService) Signup(ctx context.Context, u *domain.User) (*domain.User, error) {
	u.Mail = strings.TrimSpace(u.Mail)
	if err := u.Validate(); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), s.cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, fmt.Errorf("%w: password is too long", domain.ErrInvalidArgument)
		}
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	u.Password = string(hash)

	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}
	u.Password = ""
	return u, nil
}

// Login checks the credentials and returns the user with a signed token.
func (s *AccountService) Login(ctx context.Context, mail, password string) (*domain.User, string, error) {
	if strings.TrimSpace(mail) == "" || password == "" {
		return nil, "", fmt.Errorf("%w: mail and password are required", domain.ErrInvalidArgument)
	}

	u, err := s.users.FindByMail(ctx, strings.TrimSpace(mail))
	if errors.Is(err, domain.ErrNotFound) {
		return nil, "", fmt.Errorf("%w: user not found", domain.ErrInvalidCredentials)
	}
	if err != nil {
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		return nil, "", domain.ErrInvalidCredentials
	}
	u.Password = ""

	token, err := s.tokens.Issue(u.ID.Hex(), u.Mail, string(u.Type))
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}
