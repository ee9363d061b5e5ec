package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"atrium/models"
)

var (
	// ErrEmailTaken indicates a signup with an already registered email.
	ErrEmailTaken = errors.New("email already registered")
	// ErrInvalidCredentials indicates login failure.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrNoSuchEmail indicates no account exists for an email.
	ErrNoSuchEmail = errors.New("no account with that email")
)

// Repository is the persistence seam for identity accounts.
type Repository interface {
	CreateAccount(ctx context.Context, account models.Account) error
	FindAccountByEmail(ctx context.Context, email string) (*models.Account, error)
}

// Service is the identity provider: it mints principals at signup,
// checks credentials at login, issues bearer tokens and resolves
// accounts by email.
type Service struct {
	repo   Repository
	signer *TokenSigner
}

// NewService constructs a new Service.
func NewService(repo Repository, signer *TokenSigner) *Service {
	return &Service{repo: repo, signer: signer}
}

// SignUp mints a new principal, stores the account and issues a token.
// Returns ErrEmailTaken if the email is already registered.
func (s *Service) SignUp(ctx context.Context, email, password string) (string, string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", "", fmt.Errorf("failed to hash password: %w", err)
	}

	userID := uuid.NewString()
	account := models.Account{
		UserID:       userID,
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := s.repo.CreateAccount(ctx, account); err != nil {
		return "", "", err
	}

	token, err := s.signer.Issue(userID)
	if err != nil {
		return "", "", fmt.Errorf("failed to issue token: %w", err)
	}
	return userID, token, nil
}

// LogIn validates email/password credentials and issues a token.
func (s *Service) LogIn(ctx context.Context, email, password string) (string, string, error) {
	account, err := s.repo.FindAccountByEmail(ctx, email)
	if err != nil {
		return "", "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return "", "", ErrInvalidCredentials
	}

	token, err := s.signer.Issue(account.UserID)
	if err != nil {
		return "", "", fmt.Errorf("failed to issue token: %w", err)
	}
	return account.UserID, token, nil
}

// Verify validates a bearer token and returns the principal behind it.
func (s *Service) Verify(tokenString string) (string, error) {
	return s.signer.Verify(tokenString)
}

// LookupByEmail resolves an email address to a principal.
// Returns ErrNoSuchEmail if no account exists.
func (s *Service) LookupByEmail(ctx context.Context, email string) (string, error) {
	account, err := s.repo.FindAccountByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	return account.UserID, nil
}
