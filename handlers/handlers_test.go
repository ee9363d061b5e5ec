package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"atrium/auth"
	"atrium/docstore"
	"atrium/middleware"
	"atrium/models"
	"atrium/service"
)

type memoryRepo struct {
	accounts map[string]models.Account
}

func (r *memoryRepo) CreateAccount(_ context.Context, account models.Account) error {
	if _, ok := r.accounts[account.Email]; ok {
		return auth.ErrEmailTaken
	}
	r.accounts[account.Email] = account
	return nil
}

func (r *memoryRepo) FindAccountByEmail(_ context.Context, email string) (*models.Account, error) {
	account, ok := r.accounts[email]
	if !ok {
		return nil, auth.ErrNoSuchEmail
	}
	return &account, nil
}

type memoryDirectory struct {
	infos   map[string]models.UserInfo
	failing bool
}

func (d *memoryDirectory) InsertUserInfo(_ context.Context, userID string, info models.UserInfo) error {
	if d.failing {
		return errors.New("directory unavailable")
	}
	d.infos[userID] = info
	return nil
}

func (d *memoryDirectory) GetUsersInfo(_ context.Context, userIDs []string) (map[string]models.UserInfo, error) {
	if d.failing {
		return nil, errors.New("directory unavailable")
	}
	result := map[string]models.UserInfo{}
	for _, userID := range userIDs {
		if info, ok := d.infos[userID]; ok {
			result[userID] = info
		}
	}
	return result, nil
}

func (d *memoryDirectory) GetUserInfo(_ context.Context, userID string) (*models.UserInfo, error) {
	if d.failing {
		return nil, errors.New("directory unavailable")
	}
	info, ok := d.infos[userID]
	if !ok {
		return nil, errors.New("no user info row")
	}
	return &info, nil
}

type app struct {
	router    *gin.Engine
	directory *memoryDirectory
	store     *docstore.Store
}

func newTestApp(t *testing.T) *app {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	signer := auth.NewTokenSigner("test-secret", time.Hour)
	identity := auth.NewService(&memoryRepo{accounts: map[string]models.Account{}}, signer)
	directory := &memoryDirectory{infos: map[string]models.UserInfo{}}
	store := docstore.New(client)
	svc := service.New(identity, directory, store)

	r := gin.New()
	r.GET("/health", HealthCheck)

	api := r.Group("/api")
	api.POST("/signup", SignUp(svc))
	api.POST("/login", LogIn(svc))
	api.POST("/getUsersInfo", GetUsersInfo(svc))
	api.POST("/addUserInfo", AddUserInfo(svc))
	api.POST("/addAdminToProject", AddAdminToProject(svc))
	api.POST("/removeAdminFromProject", RemoveAdminFromProject(svc))

	authed := api.Group("", middleware.AuthRequired(signer))
	authed.POST("/projects", CreateProject(svc))
	authed.GET("/projects", ListProjects(svc))

	return &app{router: r, directory: directory, store: store}
}

func (a *app) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

// signUp registers a user through the API and returns the token and id.
func (a *app) signUp(t *testing.T, email, first, last string) (string, string) {
	t.Helper()

	w := a.do(t, http.MethodPost, "/api/signup", "", gin.H{
		"email":      email,
		"password":   "hunter2222",
		"first_name": first,
		"last_name":  last,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	body := decodeBody(t, w)
	return body["token"].(string), body["user_id"].(string)
}

func TestHealthCheck(t *testing.T) {
	a := newTestApp(t)

	w := a.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", decodeBody(t, w)["status"])
}

func TestSignUpAndLogIn(t *testing.T) {
	a := newTestApp(t)

	token, userID := a.signUp(t, "ada@example.com", "Ada", "Lovelace")
	assert.NotEmpty(t, token)
	assert.Equal(t, "Ada", a.directory.infos[userID].FirstName)

	w := a.do(t, http.MethodPost, "/api/login", "", gin.H{
		"email":    "ada@example.com",
		"password": "hunter2222",
	})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, userID, decodeBody(t, w)["user_id"])

	w = a.do(t, http.MethodPost, "/api/login", "", gin.H{
		"email":    "ada@example.com",
		"password": "wrongwrong",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "invalid email or password", decodeBody(t, w)["error"])
}

func TestAddAdminToProjectFlow(t *testing.T) {
	a := newTestApp(t)
	ctx := context.Background()

	ownerToken, ownerID := a.signUp(t, "u1@x.com", "Grace", "Hopper")
	_, targetID := a.signUp(t, "u2@x.com", "A", "B")

	project, err := a.store.Create(ctx, "P1", ownerID)
	require.NoError(t, err)

	w := a.do(t, http.MethodPost, "/api/addAdminToProject", "", gin.H{
		"user_token": ownerToken,
		"project_id": project.ID,
		"email":      "u2@x.com",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	body := decodeBody(t, w)
	assert.Equal(t, "A", body["first_name"])
	assert.Equal(t, "B", body["last_name"])
	assert.Equal(t, targetID, body["user_id"])

	stored, err := a.store.Get(ctx, project.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsAdmin(targetID))
}

func TestAddAdminToProject_Errors(t *testing.T) {
	a := newTestApp(t)
	ctx := context.Background()

	ownerToken, ownerID := a.signUp(t, "u1@x.com", "Grace", "Hopper")
	strangerToken, _ := a.signUp(t, "u3@x.com", "C", "D")

	project, err := a.store.Create(ctx, "P1", ownerID)
	require.NoError(t, err)

	tests := []struct {
		name       string
		payload    gin.H
		wantStatus int
		wantError  string
	}{
		{
			name:       "bad token",
			payload:    gin.H{"user_token": "bogus", "project_id": project.ID, "email": "u3@x.com"},
			wantStatus: http.StatusUnauthorized,
			wantError:  "user not logged in",
		},
		{
			name:       "unknown project",
			payload:    gin.H{"user_token": ownerToken, "project_id": "nope", "email": "u3@x.com"},
			wantStatus: http.StatusNotFound,
			wantError:  "project id not found",
		},
		{
			name:       "caller not admin",
			payload:    gin.H{"user_token": strangerToken, "project_id": project.ID, "email": "u1@x.com"},
			wantStatus: http.StatusForbidden,
			wantError:  "user does not have administrative rights to project",
		},
		{
			name:       "unknown email",
			payload:    gin.H{"user_token": ownerToken, "project_id": project.ID, "email": "nobody@x.com"},
			wantStatus: http.StatusNotFound,
			wantError:  "we couldn't find a user with that email address",
		},
		{
			name:       "already admin",
			payload:    gin.H{"user_token": ownerToken, "project_id": project.ID, "email": "u1@x.com"},
			wantStatus: http.StatusConflict,
			wantError:  "user is already an administrator for this project",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := a.do(t, http.MethodPost, "/api/addAdminToProject", "", tt.payload)
			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantError, decodeBody(t, w)["error"])
		})
	}
}

func TestRemoveAdminFromProject(t *testing.T) {
	a := newTestApp(t)
	ctx := context.Background()

	ownerToken, ownerID := a.signUp(t, "u1@x.com", "Grace", "Hopper")
	_, targetID := a.signUp(t, "u2@x.com", "A", "B")

	project, err := a.store.Create(ctx, "P1", ownerID)
	require.NoError(t, err)
	require.NoError(t, a.store.SetAdmin(ctx, project.ID, targetID))

	w := a.do(t, http.MethodPost, "/api/removeAdminFromProject", "", gin.H{
		"user_token":            ownerToken,
		"project_id":            project.ID,
		"administrator_user_id": targetID,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	body := decodeBody(t, w)
	assert.Equal(t, true, body["success"])

	admins := body["administrator_users"].(map[string]interface{})
	assert.Contains(t, admins, ownerID)
	assert.NotContains(t, admins, targetID)

	// Removing again fails; the target no longer holds an entry.
	w = a.do(t, http.MethodPost, "/api/removeAdminFromProject", "", gin.H{
		"user_token":            ownerToken,
		"project_id":            project.ID,
		"administrator_user_id": targetID,
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "removed user is not an administrator for this project", decodeBody(t, w)["error"])
}

func TestGetUsersInfo_Endpoint(t *testing.T) {
	a := newTestApp(t)

	_, u1 := a.signUp(t, "u1@x.com", "Grace", "Hopper")

	w := a.do(t, http.MethodPost, "/api/getUsersInfo", "", gin.H{"user_ids": u1 + ",missing"})
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	require.Contains(t, body, u1)
	assert.NotContains(t, body, "missing")

	w = a.do(t, http.MethodPost, "/api/getUsersInfo", "", gin.H{"user_ids": "missing"})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "no accounts with these ids exist", decodeBody(t, w)["error"])
}

func TestGetUsersInfo_TechnicalFault(t *testing.T) {
	a := newTestApp(t)
	a.directory.failing = true

	w := a.do(t, http.MethodPost, "/api/getUsersInfo", "", gin.H{"user_ids": "U1"})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	// Unclassified faults are flattened; the raw error never leaks.
	assert.Equal(t, "technical error", decodeBody(t, w)["error"])
}

func TestAddUserInfo_Endpoint(t *testing.T) {
	a := newTestApp(t)

	w := a.do(t, http.MethodPost, "/api/addUserInfo", "", gin.H{
		"user_id":    "U1",
		"first_name": "Grace",
		"last_name":  "Hopper",
	})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "success", decodeBody(t, w)["status"])
	assert.Equal(t, "Grace", a.directory.infos["U1"].FirstName)
}

func TestProjectRoutes_RequireAuth(t *testing.T) {
	a := newTestApp(t)

	w := a.do(t, http.MethodGet, "/api/projects", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = a.do(t, http.MethodGet, "/api/projects", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "user not logged in", decodeBody(t, w)["error"])
}

func TestCreateAndListProjects(t *testing.T) {
	a := newTestApp(t)

	token, userID := a.signUp(t, "u1@x.com", "Grace", "Hopper")

	w := a.do(t, http.MethodPost, "/api/projects", token, gin.H{"name": "Apollo"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	created := decodeBody(t, w)
	assert.Equal(t, "Apollo", created["name"])
	assert.Equal(t, userID, created["created_by_user_id"])

	w = a.do(t, http.MethodGet, "/api/projects", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, float64(1), body["total"])

	users := body["users"].(map[string]interface{})
	require.Contains(t, users, userID)
}

func TestCreateProject_ValidatesName(t *testing.T) {
	a := newTestApp(t)
	token, _ := a.signUp(t, "u1@x.com", "Grace", "Hopper")

	w := a.do(t, http.MethodPost, "/api/projects", token, gin.H{"name": "ab"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
