// Package service implements the project administration workflow:
// authorization against a project's administrator set, single-entry
// mutations of that set, and the denormalized user lookups around them.
package service

import (
	"context"
	"strings"

	"atrium/models"
)

// Identity verifies bearer tokens and resolves accounts, and performs
// the signup/login flows that mint principals.
type Identity interface {
	Verify(token string) (string, error)
	LookupByEmail(ctx context.Context, email string) (string, error)
	SignUp(ctx context.Context, email, password string) (userID, token string, err error)
	LogIn(ctx context.Context, email, password string) (userID, token string, err error)
}

// Directory is the relational store of display names, keyed by principal.
type Directory interface {
	InsertUserInfo(ctx context.Context, userID string, info models.UserInfo) error
	GetUsersInfo(ctx context.Context, userIDs []string) (map[string]models.UserInfo, error)
	GetUserInfo(ctx context.Context, userID string) (*models.UserInfo, error)
}

// ProjectStore is the document store of project records. Get must treat
// a document without administrator entries as having an empty set, and
// SetAdmin/RemoveAdmin must touch only the named entry.
type ProjectStore interface {
	Create(ctx context.Context, name, createdBy string) (*models.Project, error)
	Get(ctx context.Context, projectID string) (*models.Project, error)
	SetAdmin(ctx context.Context, projectID, userID string) error
	RemoveAdmin(ctx context.Context, projectID, userID string) error
	ListByAdmin(ctx context.Context, userID string) ([]models.Project, error)
}

// Service is the project admin service. All dependencies are injected;
// it holds no state of its own.
type Service struct {
	identity  Identity
	directory Directory
	projects  ProjectStore
}

func New(identity Identity, directory Directory, projects ProjectStore) *Service {
	return &Service{
		identity:  identity,
		directory: directory,
		projects:  projects,
	}
}

func splitUserIDs(csv string) []string {
	parts := strings.Split(csv, ",")
	ids := make([]string, 0, len(parts))
	for _, part := range parts {
		if id := strings.TrimSpace(part); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}
