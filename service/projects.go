package service

import (
	"context"

	"atrium/models"
)

// CreateProject creates a project with the caller as creator and sole
// administrator.
func (s *Service) CreateProject(ctx context.Context, callerID, name string) (*models.Project, error) {
	project, err := s.projects.Create(ctx, name, callerID)
	if err != nil {
		return nil, technical(err)
	}
	return project, nil
}

// ListProjects returns every project the caller administers together with
// display names for each principal any of them references.
func (s *Service) ListProjects(ctx context.Context, callerID string) (*models.ProjectsResponse, error) {
	projects, err := s.projects.ListByAdmin(ctx, callerID)
	if err != nil {
		return nil, technical(err)
	}

	seen := map[string]bool{}
	userIDs := []string{}
	for _, project := range projects {
		for _, userID := range append(adminIDs(project), project.CreatedBy) {
			if userID != "" && !seen[userID] {
				seen[userID] = true
				userIDs = append(userIDs, userID)
			}
		}
	}

	users := map[string]models.UserInfo{}
	if len(userIDs) > 0 {
		users, err = s.directory.GetUsersInfo(ctx, userIDs)
		if err != nil {
			return nil, technical(err)
		}
	}

	return &models.ProjectsResponse{
		Projects: projects,
		Users:    users,
		Total:    len(projects),
	}, nil
}

func adminIDs(project models.Project) []string {
	ids := make([]string, 0, len(project.Admins))
	for userID := range project.Admins {
		ids = append(ids, userID)
	}
	return ids
}
