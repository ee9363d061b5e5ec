package service

import (
	"context"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"atrium/auth"
	"atrium/docstore"
	"atrium/models"
)

// fakeIdentity maps tokens and emails to principals directly.
type fakeIdentity struct {
	tokens map[string]string // token -> principal
	emails map[string]string // email -> principal
}

func newFakeIdentity() *fakeIdentity {
	return &fakeIdentity{
		tokens: map[string]string{},
		emails: map[string]string{},
	}
}

func (f *fakeIdentity) Verify(token string) (string, error) {
	userID, ok := f.tokens[token]
	if !ok {
		return "", auth.ErrInvalidToken
	}
	return userID, nil
}

func (f *fakeIdentity) LookupByEmail(_ context.Context, email string) (string, error) {
	userID, ok := f.emails[email]
	if !ok {
		return "", auth.ErrNoSuchEmail
	}
	return userID, nil
}

func (f *fakeIdentity) SignUp(_ context.Context, email, _ string) (string, string, error) {
	if _, ok := f.emails[email]; ok {
		return "", "", auth.ErrEmailTaken
	}
	userID := "uid-" + email
	f.emails[email] = userID
	token := "token-" + userID
	f.tokens[token] = userID
	return userID, token, nil
}

func (f *fakeIdentity) LogIn(_ context.Context, email, password string) (string, string, error) {
	userID, ok := f.emails[email]
	if !ok || password == "wrong" {
		return "", "", auth.ErrInvalidCredentials
	}
	return userID, "token-" + userID, nil
}

// register wires up a principal with a token and an email in one step.
func (f *fakeIdentity) register(userID, token, email string) {
	f.tokens[token] = userID
	f.emails[email] = userID
}

type fakeDirectory struct {
	infos   map[string]models.UserInfo
	failing bool
}

func newFakeDirectory() *fakeDirectory {
	return &fakeDirectory{infos: map[string]models.UserInfo{}}
}

var errDirectoryDown = errors.New("directory unavailable")

func (f *fakeDirectory) InsertUserInfo(_ context.Context, userID string, info models.UserInfo) error {
	if f.failing {
		return errDirectoryDown
	}
	f.infos[userID] = info
	return nil
}

func (f *fakeDirectory) GetUsersInfo(_ context.Context, userIDs []string) (map[string]models.UserInfo, error) {
	if f.failing {
		return nil, errDirectoryDown
	}
	result := map[string]models.UserInfo{}
	for _, userID := range userIDs {
		if info, ok := f.infos[userID]; ok {
			result[userID] = info
		}
	}
	return result, nil
}

func (f *fakeDirectory) GetUserInfo(_ context.Context, userID string) (*models.UserInfo, error) {
	if f.failing {
		return nil, errDirectoryDown
	}
	info, ok := f.infos[userID]
	if !ok {
		return nil, errors.New("no user info row")
	}
	return &info, nil
}

type fixture struct {
	svc       *Service
	identity  *fakeIdentity
	directory *fakeDirectory
	store     *docstore.Store
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	identity := newFakeIdentity()
	directory := newFakeDirectory()
	store := docstore.New(client)

	return &fixture{
		svc:       New(identity, directory, store),
		identity:  identity,
		directory: directory,
		store:     store,
	}
}

// seedProject creates a project owned by U1 with token "t1" and email
// "u1@x.com", and a second registered account U2 ("u2@x.com", token "t2")
// that is not yet an administrator.
func (fx *fixture) seedProject(t *testing.T) *models.Project {
	t.Helper()

	fx.identity.register("U1", "t1", "u1@x.com")
	fx.identity.register("U2", "t2", "u2@x.com")
	fx.directory.infos["U1"] = models.UserInfo{FirstName: "Grace", LastName: "Hopper"}
	fx.directory.infos["U2"] = models.UserInfo{FirstName: "A", LastName: "B"}

	project, err := fx.store.Create(context.Background(), "P1", "U1")
	require.NoError(t, err)
	return project
}
