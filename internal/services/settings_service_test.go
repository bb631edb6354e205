// filepath: internal/services/settings_service_test.go
package services

import (
	"context"
	"errors"
	"flexnas/internal/models"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNetworkSettings_RoundTrip(t *testing.T) {
	env := setupIntegrationTest(t)
	ctx := context.Background()

	_, err := env.Settings.GetNetworkSettings(ctx)
	assert.ErrorIs(t, err, ErrNotFound)

	in := models.NetworkSettings{
		Hostname:    "nas01",
		Domain:      "home.example.com",
		IPAddress:   "192.168.1.20",
		SubnetMask:  "255.255.255.0",
		Gateway:     "192.168.1.1",
		DNSServers:  []string{"1.1.1.1", "8.8.8.8"},
		DHCPEnabled: false,
	}
	_, err = env.Settings.UpdateNetworkSettings(ctx, env.Admin, in)
	require.NoError(t, err)

	out, err := env.Settings.GetNetworkSettings(ctx)
	require.NoError(t, err)
	out.UpdatedAt = nil
	assert.Equal(t, in, *out)
	assert.Equal(t, []string{"nas01"}, env.Renamer.names)

	// Same hostname again: no rename.
	_, err = env.Settings.UpdateNetworkSettings(ctx, env.Admin, in)
	require.NoError(t, err)
	assert.Len(t, env.Renamer.names, 1)
}

func TestSettings_Validation(t *testing.T) {
	env := setupIntegrationTest(t)
	ctx := context.Background()

	_, err := env.Settings.UpdateNetworkSettings(ctx, env.Admin, models.NetworkSettings{})
	assert.ErrorIs(t, err, ErrValidation)
	_, err = env.Settings.UpdateNetworkSettings(ctx, env.Admin, models.NetworkSettings{Hostname: "nas", DNSServers: []string{"not-an-ip"}})
	assert.ErrorIs(t, err, ErrValidation)
	_, err = env.Settings.UpdateStorageSettings(ctx, env.Admin, models.StorageSettings{})
	assert.ErrorIs(t, err, ErrValidation)

	plain := env.newUser(t, "plain")
	_, err = env.Settings.UpdateStorageSettings(ctx, plain, models.DefaultStorageSettings())
	assert.ErrorIs(t, err, ErrForbidden)

	sysAdmin := env.newUser(t, "ops", models.PermManageSystem)
	_, err = env.Settings.UpdateStorageSettings(ctx, sysAdmin, models.DefaultStorageSettings())
	assert.NoError(t, err)
}

func TestSettings_RenameFailureIsSwallowed(t *testing.T) {
	env := setupIntegrationTest(t)
	ctx := context.Background()
	env.Renamer.err = errors.New("hostnamectl: not found")

	st, err := env.Settings.UpdateSystemSettings(ctx, env.Admin, models.SystemSettings{Hostname: "box", Timezone: "UTC", SSHPort: 22})
	require.NoError(t, err)
	assert.Equal(t, "box", st.Hostname)

	stored, err := env.Settings.GetSystemSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, "box", stored.Hostname)
}

func TestGetAndUpdateSettings_Aggregate(t *testing.T) {
	env := setupIntegrationTest(t)
	ctx := context.Background()

	defaults, err := env.Settings.GetSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, "RAID 1", defaults.Storage.RAIDLevel)
	assert.True(t, defaults.Network.DHCPEnabled)
	assert.Equal(t, 22, defaults.System.SSHPort)

	storage := models.DefaultStorageSettings()
	storage.RAIDLevel = "RAID 6"
	got, err := env.Settings.UpdateSettings(ctx, env.Admin, models.SettingsUpdatePayload{Storage: &storage})
	require.NoError(t, err)
	assert.Equal(t, "RAID 6", got.Storage.RAIDLevel)

	_, err = env.Settings.GetSystemSettings(ctx)
	assert.ErrorIs(t, err, ErrNotFound, "omitted sections stay untouched")

	// An invalid section aborts the whole update before anything is written.
	before := env.activityCount(t)
	_, err = env.Settings.UpdateSettings(ctx, env.Admin, models.SettingsUpdatePayload{
		Storage: &storage,
		Network: &models.NetworkSettings{},
	})
	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, before, env.activityCount(t))
}
