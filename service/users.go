package service

import (
	"context"
	"errors"

	"atrium/auth"
	"atrium/models"
)

// GetUsersInfo resolves a comma-separated list of principals to display
// names. Principals without a directory row are omitted; zero matches is
// an error.
func (s *Service) GetUsersInfo(ctx context.Context, userIDs string) (map[string]models.UserInfo, error) {
	infos, err := s.directory.GetUsersInfo(ctx, splitUserIDs(userIDs))
	if err != nil {
		return nil, technical(err)
	}
	if len(infos) == 0 {
		return nil, fail(KindNotFound, msgNoAccounts)
	}
	return infos, nil
}

// AddUserInfo inserts a display-name row for a principal.
func (s *Service) AddUserInfo(ctx context.Context, userID string, info models.UserInfo) error {
	if err := s.directory.InsertUserInfo(ctx, userID, info); err != nil {
		return technical(err)
	}
	return nil
}

// SignUp creates an identity account and its directory row, and returns
// a token for the new principal.
func (s *Service) SignUp(ctx context.Context, req models.SignUpRequest) (*models.AuthResponse, error) {
	userID, token, err := s.identity.SignUp(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrEmailTaken) {
			return nil, fail(KindConflict, msgEmailTaken)
		}
		return nil, technical(err)
	}

	info := models.UserInfo{FirstName: req.FirstName, LastName: req.LastName}
	if err := s.directory.InsertUserInfo(ctx, userID, info); err != nil {
		// The account exists without a directory row; surfaced as
		// technical rather than rolled back, matching the split-store
		// model's lack of cross-store transactions.
		return nil, technical(err)
	}

	return &models.AuthResponse{Token: token, UserID: userID}, nil
}

// LogIn checks credentials and returns a token for the principal.
func (s *Service) LogIn(ctx context.Context, req models.LogInRequest) (*models.AuthResponse, error) {
	userID, token, err := s.identity.LogIn(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			return nil, fail(KindUnauthenticated, msgBadCredentials)
		}
		return nil, technical(err)
	}
	return &models.AuthResponse{Token: token, UserID: userID}, nil
}
