// Package docstore holds project documents in Redis, one hash per
// project. Hash fields give field-level merge semantics: HSET touches
// only the named field and HDEL removes exactly one field, so concurrent
// writers to different administrator entries never clobber each other.
package docstore

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"atrium/models"
)

// ErrNotFound indicates no project document exists for an id.
var ErrNotFound = errors.New("project not found")

const (
	fieldName      = "name"
	fieldCreatedBy = "created_by_user_id"

	// Administrator entries are stored as one hash field per principal,
	// "admin:<user_id>" = "1". The set-as-fields encoding is what makes
	// single-entry merge writes and deletes possible.
	adminFieldPrefix = "admin:"
)

// Store reads and writes project documents.
type Store struct {
	client *redis.Client
}

func New(client *redis.Client) *Store {
	return &Store{client: client}
}

func projectKey(projectID string) string {
	return "project:" + projectID
}

// adminIndexKey is the per-user set of project ids the user administers,
// kept so listing does not scan the keyspace.
func adminIndexKey(userID string) string {
	return "admin_projects:" + userID
}

func adminField(userID string) string {
	return adminFieldPrefix + userID
}

// Create writes a new project document with the creator as its sole
// administrator.
func (s *Store) Create(ctx context.Context, name, createdBy string) (*models.Project, error) {
	projectID := uuid.NewString()

	fields := map[string]interface{}{
		fieldName:      name,
		fieldCreatedBy: createdBy,
	}
	fields[adminField(createdBy)] = "1"

	if err := s.client.HSet(ctx, projectKey(projectID), fields).Err(); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}
	if err := s.client.SAdd(ctx, adminIndexKey(createdBy), projectID).Err(); err != nil {
		return nil, fmt.Errorf("failed to index project: %w", err)
	}

	return &models.Project{
		ID:        projectID,
		Name:      name,
		CreatedBy: createdBy,
		Admins:    map[string]bool{createdBy: true},
	}, nil
}

// Get fetches a project document. Returns ErrNotFound if absent. A
// document with no administrator fields decodes to an empty set rather
// than failing.
func (s *Store) Get(ctx context.Context, projectID string) (*models.Project, error) {
	fields, err := s.client.HGetAll(ctx, projectKey(projectID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	if len(fields) == 0 {
		return nil, ErrNotFound
	}

	return decodeProject(projectID, fields), nil
}

// SetAdmin merge-writes a single administrator entry. Sibling fields,
// including every other administrator entry, are untouched.
func (s *Store) SetAdmin(ctx context.Context, projectID, userID string) error {
	if err := s.client.HSet(ctx, projectKey(projectID), adminField(userID), "1").Err(); err != nil {
		return fmt.Errorf("failed to add administrator: %w", err)
	}
	if err := s.client.SAdd(ctx, adminIndexKey(userID), projectID).Err(); err != nil {
		return fmt.Errorf("failed to index administrator: %w", err)
	}
	return nil
}

// RemoveAdmin deletes exactly one administrator field.
func (s *Store) RemoveAdmin(ctx context.Context, projectID, userID string) error {
	if err := s.client.HDel(ctx, projectKey(projectID), adminField(userID)).Err(); err != nil {
		return fmt.Errorf("failed to remove administrator: %w", err)
	}
	if err := s.client.SRem(ctx, adminIndexKey(userID), projectID).Err(); err != nil {
		return fmt.Errorf("failed to unindex administrator: %w", err)
	}
	return nil
}

// ListByAdmin returns every project the given principal administers,
// ordered by id for stable output.
func (s *Store) ListByAdmin(ctx context.Context, userID string) ([]models.Project, error) {
	projectIDs, err := s.client.SMembers(ctx, adminIndexKey(userID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	sort.Strings(projectIDs)

	projects := make([]models.Project, 0, len(projectIDs))
	for _, projectID := range projectIDs {
		project, err := s.Get(ctx, projectID)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				// stale index entry
				continue
			}
			return nil, err
		}
		projects = append(projects, *project)
	}

	return projects, nil
}

func decodeProject(projectID string, fields map[string]string) *models.Project {
	project := &models.Project{
		ID:     projectID,
		Admins: map[string]bool{},
	}

	for field, value := range fields {
		switch {
		case field == fieldName:
			project.Name = value
		case field == fieldCreatedBy:
			project.CreatedBy = value
		case strings.HasPrefix(field, adminFieldPrefix):
			if value == "1" {
				project.Admins[strings.TrimPrefix(field, adminFieldPrefix)] = true
			}
		}
	}

	return project
}
