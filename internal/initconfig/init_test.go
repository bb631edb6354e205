package initconfig

import (
	"context"
	"flexnas/internal/models"
	"flexnas/internal/services"
	"flexnas/internal/services/mocks"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const tomlInit = `
[[user]]
name = "alice"
email = "alice@nas.local"
password = "alicepass1"
permissions = ["manage_shares"]

[[user]]
name = "admin"
email = "admin@nas.local"
password = "ignored123"

[[share]]
name = "media"
path = "/mnt/media"
public = true
`

const yamlInit = `
users:
  - name: bob
    email: bob@nas.local
    password: bobpass12
    role: user
shares:
  - name: home
    path: /mnt/home
    allowed_users: [bob]
    read_only: true
  - name: taken
    path: /mnt/taken
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoad(t *testing.T) {
	cfg, err := Load(writeFile(t, "init.toml", tomlInit))
	require.NoError(t, err)
	require.Len(t, cfg.Users, 2)
	assert.Equal(t, []string{"manage_shares"}, cfg.Users[0].Permissions)
	require.Len(t, cfg.Shares, 1)
	assert.True(t, cfg.Shares[0].Public)

	cfg, err = Load(writeFile(t, "init.yml", yamlInit))
	require.NoError(t, err)
	require.Len(t, cfg.Users, 1)
	assert.Equal(t, "user", cfg.Users[0].Role)
	require.Len(t, cfg.Shares, 2)
	assert.Equal(t, []string{"bob"}, cfg.Shares[0].AllowedUsers)
	assert.True(t, cfg.Shares[0].ReadOnly)

	_, err = Load(writeFile(t, "broken.yaml", "users: ["))
	assert.Error(t, err)

	_, err = Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestRunCreatesMissingEntries(t *testing.T) {
	ctx := context.Background()
	admin := &models.User{ID: 1, Username: "admin", Role: models.RoleAdmin}
	path := writeFile(t, "init.toml", tomlInit)

	users := new(mocks.MockUserService)
	shares := new(mocks.MockShareService)
	users.On("GetUserByUsername", ctx, "admin").Return(admin, nil)
	users.On("GetUserByUsername", ctx, "alice").Return(nil, fmt.Errorf("user 'alice': %w", services.ErrNotFound))
	users.On("CreateUser", ctx, admin, mock.MatchedBy(func(p models.UserCreatePayload) bool {
		return p.Username == "alice" && p.Password == "alicepass1" && p.Email == "alice@nas.local"
	})).Return(&models.User{ID: 2, Username: "alice"}, nil).Once()
	shares.On("CreateShare", ctx, admin, mock.MatchedBy(func(p models.SharePayload) bool {
		return p.Name == "media" && p.Path == "/mnt/media" && p.IsPublic
	})).Return(&models.Share{ID: 1, Name: "media"}, nil).Once()

	Run(ctx, users, shares, path)

	users.AssertExpectations(t)
	shares.AssertExpectations(t)

	// Passwords are scrubbed from the file afterwards.
	cfg, err := Load(path)
	require.NoError(t, err)
	for _, u := range cfg.Users {
		assert.Empty(t, u.Password)
	}
	assert.Equal(t, "alice", cfg.Users[0].Name)
}

func TestRunSkipsExistingShares(t *testing.T) {
	ctx := context.Background()
	admin := &models.User{ID: 1, Username: "admin", Role: models.RoleAdmin}
	path := writeFile(t, "init.yaml", yamlInit)

	users := new(mocks.MockUserService)
	shares := new(mocks.MockShareService)
	users.On("GetUserByUsername", ctx, "admin").Return(admin, nil)
	users.On("GetUserByUsername", ctx, "bob").Return(nil, services.ErrNotFound)
	users.On("CreateUser", ctx, admin, mock.AnythingOfType("models.UserCreatePayload")).Return(&models.User{ID: 2}, nil)
	shares.On("CreateShare", ctx, admin, mock.MatchedBy(func(p models.SharePayload) bool { return p.Name == "home" })).
		Return(&models.Share{ID: 1}, nil)
	shares.On("CreateShare", ctx, admin, mock.MatchedBy(func(p models.SharePayload) bool { return p.Name == "taken" })).
		Return(nil, fmt.Errorf("share name 'taken' is taken: %w", services.ErrConflict))

	Run(ctx, users, shares, path)

	shares.AssertNumberOfCalls(t, "CreateShare", 2)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Empty(t, cfg.Users[0].Password)
	assert.Len(t, cfg.Shares, 2)
}

func TestRunWithoutAdminDoesNothing(t *testing.T) {
	ctx := context.Background()
	path := writeFile(t, "init.toml", tomlInit)

	users := new(mocks.MockUserService)
	shares := new(mocks.MockShareService)
	users.On("GetUserByUsername", ctx, "admin").Return(nil, services.ErrNotFound)

	Run(ctx, users, shares, path)

	users.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything, mock.Anything)
	shares.AssertNotCalled(t, "CreateShare", mock.Anything, mock.Anything, mock.Anything)

	// The file is untouched when nothing ran.
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "alicepass1", cfg.Users[0].Password)
}
