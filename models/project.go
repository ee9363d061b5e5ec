package models

// Project is a named resource with one creator and a set of administrators.
// Admins is a true set in the domain model; the document store encodes it
// as one field per administrator because its query language cannot test
// membership inside an array value.
type Project struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	CreatedBy string          `json:"created_by_user_id"`
	Admins    map[string]bool `json:"administrator_users"`
}

// IsAdmin reports whether the given principal is in the administrator set.
// Safe on a nil set, which a malformed document may produce.
func (p *Project) IsAdmin(userID string) bool {
	return p.Admins[userID]
}

// CreateProjectRequest is the payload for creating a new project.
// The caller becomes the creator and sole administrator.
type CreateProjectRequest struct {
	Name string `json:"name" binding:"required,min=3,max=255"`
}

// ProjectsResponse lists every project the caller administers, with a
// lookup table of display names for each principal referenced by any of
// them (creators and administrators alike).
type ProjectsResponse struct {
	Projects []Project           `json:"projects"`
	Users    map[string]UserInfo `json:"users"`
	Total    int                 `json:"total"`
}

// AddAdminRequest asks that the account behind Email be added to the
// administrator set of the given project. The token identifies the caller,
// who must already be an administrator.
type AddAdminRequest struct {
	UserToken string `json:"user_token"`
	ProjectID string `json:"project_id"`
	Email     string `json:"email"`
}

// RemoveAdminRequest asks that AdminUserID be removed from the
// administrator set of the given project.
type RemoveAdminRequest struct {
	UserToken   string `json:"user_token"`
	ProjectID   string `json:"project_id"`
	AdminUserID string `json:"administrator_user_id"`
}

// AdminAddedResponse echoes the newly added administrator's identity and
// display name so the caller can render it without another lookup.
type AdminAddedResponse struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	UserID    string `json:"user_id"`
}

// AdminRemovedResponse carries the administrator set as it stands after
// the removal.
type AdminRemovedResponse struct {
	Success bool            `json:"success"`
	Admins  map[string]bool `json:"administrator_users"`
}
