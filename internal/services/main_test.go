// filepath: internal/services/main_test.go
package services

import (
	"context"
	"flexnas/internal/config"
	"flexnas/internal/db/migrations"
	"flexnas/internal/models"
	"flexnas/internal/repository"
	"path/filepath"
	"testing"

	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/require"
)

// testEnv is a migrated database with the services wired over it.
type testEnv struct {
	Repo     *repository.Repository
	Activity *activityService
	Users    *userService
	Shares   *shareService
	Backups  *backupService
	Quotas   *quotaService
	Settings *settingsService
	Proto    *protocolService
	Services *serviceManager
	Renamer  *fakeRenamer

	Admin *models.User
}

// setupIntegrationTest creates a real Repository backed by a temp file.
func setupIntegrationTest(t *testing.T) *testEnv {
	t.Helper()

	cfg := &config.Config{
		Database: config.DatabaseConfig{Path: filepath.Join(t.TempDir(), "test.db")},
	}
	repo, err := repository.NewRepository(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("sqlite3"); err != nil {
		t.Fatalf("Failed to set goose dialect: %v", err)
	}
	if err := goose.Up(repo.DB, "."); err != nil {
		t.Fatalf("Failed to migrate integration DB: %v", err)
	}

	activity := NewActivityService(repo, nil)
	renamer := &fakeRenamer{}
	env := &testEnv{
		Repo:     repo,
		Activity: activity,
		Users:    NewUserService(repo, activity),
		Shares:   NewShareService(repo, activity),
		Backups:  NewBackupService(repo, activity),
		Quotas:   NewQuotaService(repo, activity),
		Settings: NewSettingsService(repo, activity, renamer, 0),
		Proto:    NewProtocolService(repo, activity),
		Services: NewServiceManager(repo, activity),
		Renamer:  renamer,
	}

	require.NoError(t, env.Users.InitializeAdminUser(context.Background(), &config.Config{AdminPassword: "adminpass"}))
	env.Admin, err = repo.GetUserByUsername(context.Background(), AdminUsername)
	require.NoError(t, err)
	return env
}

// newUser creates a non-admin account holding perms.
func (e *testEnv) newUser(t *testing.T, username string, perms ...models.Permission) *models.User {
	t.Helper()
	user, err := e.Repo.CreateUser(context.Background(), &repository.UserCreateArgs{
		Username:    username,
		Email:       username + "@nas.local",
		Password:    "password123",
		Role:        models.RoleUser,
		Permissions: models.NewPermissionSet(perms...),
	})
	require.NoError(t, err)
	return user
}

func (e *testEnv) activityCount(t *testing.T) int {
	t.Helper()
	n, err := e.Repo.CountActivity(context.Background())
	require.NoError(t, err)
	return n
}

type fakeRenamer struct {
	names []string
	err   error
}

func (f *fakeRenamer) SetHostname(ctx context.Context, name string) error {
	f.names = append(f.names, name)
	return f.err
}
