package service

import (
	"context"
	"errors"

	"atrium/auth"
	"atrium/docstore"
	"atrium/models"
)

// authorize verifies the caller's token and checks that the caller is in
// the project's administrator set. Both Add and Remove share it.
func (s *Service) authorize(ctx context.Context, token, projectID string) (*models.Project, error) {
	callerID, err := s.identity.Verify(token)
	if err != nil {
		return nil, fail(KindUnauthenticated, msgNotLoggedIn)
	}

	project, err := s.projects.Get(ctx, projectID)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return nil, fail(KindNotFound, msgProjectNotFound)
		}
		return nil, technical(err)
	}

	if !project.IsAdmin(callerID) {
		return nil, fail(KindForbidden, msgNotAdmin)
	}

	return project, nil
}

// AddAdministrator grants the account behind email administrator rights
// on the project, provided the caller already has them. The write touches
// only the new entry; existing entries are preserved even under
// concurrent additions.
func (s *Service) AddAdministrator(ctx context.Context, token, projectID, email string) (*models.AdminAddedResponse, error) {
	project, err := s.authorize(ctx, token, projectID)
	if err != nil {
		return nil, err
	}

	targetID, err := s.identity.LookupByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, auth.ErrNoSuchEmail) {
			return nil, fail(KindNotFound, msgEmailNotFound)
		}
		return nil, technical(err)
	}

	if project.IsAdmin(targetID) {
		return nil, fail(KindConflict, msgAlreadyAdmin)
	}

	if err := s.projects.SetAdmin(ctx, projectID, targetID); err != nil {
		return nil, technical(err)
	}

	info, err := s.directory.GetUserInfo(ctx, targetID)
	if err != nil {
		// The account exists but the directory has no row for it; the
		// admin entry is already written at this point.
		return nil, technical(err)
	}

	return &models.AdminAddedResponse{
		FirstName: info.FirstName,
		LastName:  info.LastName,
		UserID:    targetID,
	}, nil
}

// RemoveAdministrator revokes an administrator entry, provided the caller
// is an administrator and the target currently holds an entry. The
// returned set is the post-removal state, computed from the snapshot read
// for the authorization check rather than re-fetched.
func (s *Service) RemoveAdministrator(ctx context.Context, token, projectID, adminUserID string) (*models.AdminRemovedResponse, error) {
	project, err := s.authorize(ctx, token, projectID)
	if err != nil {
		return nil, err
	}

	if !project.IsAdmin(adminUserID) {
		return nil, fail(KindNotFound, msgRemovedNotAdmin)
	}

	if err := s.projects.RemoveAdmin(ctx, projectID, adminUserID); err != nil {
		return nil, technical(err)
	}

	remaining := make(map[string]bool, len(project.Admins))
	for userID := range project.Admins {
		if userID != adminUserID {
			remaining[userID] = true
		}
	}

	return &models.AdminRemovedResponse{
		Success: true,
		Admins:  remaining,
	}, nil
}
