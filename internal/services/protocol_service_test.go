// filepath: internal/services/protocol_service_test.go
package services

import (
	"context"
	"flexnas/internal/models"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListProtocols(t *testing.T) {
	env := setupIntegrationTest(t)
	ctx := context.Background()

	protocols, err := env.Proto.ListProtocols(ctx)
	require.NoError(t, err)
	require.Len(t, protocols, 4)
	assert.Equal(t, "SMB", protocols[0].DisplayName)
	assert.Equal(t, models.ServiceStopped, protocols[0].Status)

	_, err = env.Proto.GetProtocol(ctx, "afp")
	assert.ErrorIs(t, err, ErrNotFound)

	smb, err := env.Proto.GetProtocol(ctx, "SMB")
	require.NoError(t, err)
	assert.Equal(t, "smb", smb.Name)

	view, err := env.Proto.ControlProtocol(ctx, env.Admin, "WebDAV", models.ActionStart)
	require.NoError(t, err)
	assert.True(t, view.IsEnabled)
}

func TestUpdateProtocol(t *testing.T) {
	env := setupIntegrationTest(t)
	ctx := context.Background()

	share, err := env.Shares.CreateShare(ctx, env.Admin, sharePayload("media"))
	require.NoError(t, err)
	_, err = env.Proto.UpdateProtocolShare(ctx, env.Admin, "nfs", share.ID, models.ProtocolSharePayload{
		ProtocolConfig: map[string]interface{}{"squash": "root"},
	})
	require.NoError(t, err)

	t.Run("port and config kept when omitted", func(t *testing.T) {
		view, err := env.Proto.UpdateProtocol(ctx, env.Admin, "nfs", models.ProtocolUpdatePayload{IsEnabled: ptr(true)})
		require.NoError(t, err)
		assert.True(t, view.IsEnabled)
		assert.Equal(t, models.ServiceRunning, view.Status)
		assert.Equal(t, 2049, view.Port)
		assert.Equal(t, float64(8), view.Config["threads"])
	})

	t.Run("new config replaces old and keeps shares", func(t *testing.T) {
		view, err := env.Proto.UpdateProtocol(ctx, env.Admin, "nfs", models.ProtocolUpdatePayload{
			IsEnabled: ptr(true),
			Port:      ptr(3049),
			Config:    map[string]interface{}{"threads": float64(16), "custom_flag": "x"},
		})
		require.NoError(t, err)
		assert.Equal(t, 3049, view.Port)
		assert.Equal(t, float64(16), view.Config["threads"])
		assert.Equal(t, "x", view.Config["custom_flag"])
		assert.NotContains(t, view.Config, "udp")
		assert.Contains(t, view.Config, models.ProtocolSharesKey)
	})

	t.Run("known keys are type checked", func(t *testing.T) {
		_, err := env.Proto.UpdateProtocol(ctx, env.Admin, "nfs", models.ProtocolUpdatePayload{
			IsEnabled: ptr(true),
			Config:    map[string]interface{}{"threads": "many"},
		})
		assert.ErrorIs(t, err, ErrValidation)

		_, err = env.Proto.UpdateProtocol(ctx, env.Admin, "smb", models.ProtocolUpdatePayload{
			IsEnabled: ptr(true),
			Config:    map[string]interface{}{"security": "share"},
		})
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("isEnabled is required", func(t *testing.T) {
		_, err := env.Proto.UpdateProtocol(ctx, env.Admin, "nfs", models.ProtocolUpdatePayload{})
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("manage_system required", func(t *testing.T) {
		plain := env.newUser(t, "plain")
		_, err := env.Proto.UpdateProtocol(ctx, plain, "nfs", models.ProtocolUpdatePayload{IsEnabled: ptr(false)})
		assert.ErrorIs(t, err, ErrForbidden)
	})
}

func TestControlProtocol(t *testing.T) {
	env := setupIntegrationTest(t)
	ctx := context.Background()

	view, err := env.Proto.ControlProtocol(ctx, env.Admin, "ftp", models.ActionStart)
	require.NoError(t, err)
	assert.True(t, view.IsEnabled)

	view, err = env.Proto.ControlProtocol(ctx, env.Admin, "ftp", models.ActionStop)
	require.NoError(t, err)
	assert.False(t, view.IsEnabled)

	// Restart does not change the enabled state of a protocol.
	view, err = env.Proto.ControlProtocol(ctx, env.Admin, "ftp", models.ActionRestart)
	require.NoError(t, err)
	assert.False(t, view.IsEnabled)

	_, err = env.Proto.ControlProtocol(ctx, env.Admin, "ftp", "reload")
	assert.ErrorIs(t, err, ErrValidation)
	_, err = env.Proto.ControlProtocol(ctx, env.Admin, "afp", models.ActionStart)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestProtocolShares(t *testing.T) {
	env := setupIntegrationTest(t)
	ctx := context.Background()

	share, err := env.Shares.CreateShare(ctx, env.Admin, sharePayload("docs"))
	require.NoError(t, err)

	listed, err := env.Proto.ListProtocolShares(ctx, "smb")
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Empty(t, listed[0].ProtocolConfig)

	_, err = env.Proto.UpdateProtocolShare(ctx, env.Admin, "smb", share.ID, models.ProtocolSharePayload{
		ProtocolConfig: map[string]interface{}{"browseable": true},
	})
	require.NoError(t, err)

	got, err := env.Proto.GetProtocolShare(ctx, "smb", share.ID)
	require.NoError(t, err)
	assert.Equal(t, true, got.ProtocolConfig["browseable"])

	smb, err := env.Proto.GetProtocol(ctx, "smb")
	require.NoError(t, err)
	assert.Equal(t, "WORKGROUP", smb.Config["workgroup"], "other keys are preserved")

	_, err = env.Proto.UpdateProtocolShare(ctx, env.Admin, "smb", 999, models.ProtocolSharePayload{})
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = env.Proto.UpdateProtocolShare(ctx, env.Admin, "afp", share.ID, models.ProtocolSharePayload{})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestProtocolShares_FollowShareLifecycle(t *testing.T) {
	env := setupIntegrationTest(t)
	ctx := context.Background()

	share, err := env.Shares.CreateShare(ctx, env.Admin, sharePayload("media"))
	require.NoError(t, err)
	_, err = env.Proto.UpdateProtocolShare(ctx, env.Admin, "smb", share.ID, models.ProtocolSharePayload{
		ProtocolConfig: map[string]interface{}{"browseable": false},
	})
	require.NoError(t, err)

	t.Run("rename keeps the override", func(t *testing.T) {
		_, err := env.Shares.UpdateShare(ctx, env.Admin, share.ID, sharePayload("movies"))
		require.NoError(t, err)
		got, err := env.Proto.GetProtocolShare(ctx, "smb", share.ID)
		require.NoError(t, err)
		assert.Equal(t, false, got.ProtocolConfig["browseable"])
	})

	t.Run("delete drops the override", func(t *testing.T) {
		require.NoError(t, env.Shares.DeleteShare(ctx, env.Admin, share.ID))
		again, err := env.Shares.CreateShare(ctx, env.Admin, sharePayload("movies"))
		require.NoError(t, err)
		got, err := env.Proto.GetProtocolShare(ctx, "smb", again.ID)
		require.NoError(t, err)
		assert.Empty(t, got.ProtocolConfig)

		smb, err := env.Proto.GetProtocol(ctx, "smb")
		require.NoError(t, err)
		assert.Equal(t, "WORKGROUP", smb.Config["workgroup"])
	})
}

func TestProtocolShares_ConcurrentUpdatesBothPersist(t *testing.T) {
	env := setupIntegrationTest(t)
	ctx := context.Background()

	const n = 6
	ids := make([]int64, n)
	for i := range ids {
		share, err := env.Shares.CreateShare(ctx, env.Admin, sharePayload(fmt.Sprintf("s%d", i)))
		require.NoError(t, err)
		ids[i] = share.ID
	}

	var wg sync.WaitGroup
	errs := make([]error, n)
	for i, id := range ids {
		wg.Add(1)
		go func(i int, id int64) {
			defer wg.Done()
			_, errs[i] = env.Proto.UpdateProtocolShare(ctx, env.Admin, "webdav", id, models.ProtocolSharePayload{
				ProtocolConfig: map[string]interface{}{"index": i},
			})
		}(i, id)
	}
	wg.Wait()
	for _, err := range errs {
		require.NoError(t, err)
	}

	listed, err := env.Proto.ListProtocolShares(ctx, "webdav")
	require.NoError(t, err)
	for _, ps := range listed {
		assert.NotEmpty(t, ps.ProtocolConfig, "override for %s was lost", ps.Name)
	}
}

func TestServiceManager(t *testing.T) {
	env := setupIntegrationTest(t)
	ctx := context.Background()

	services, err := env.Services.ListServices(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, services)
	id := services[0].ID
	assert.Equal(t, "Smb", services[0].DisplayName)

	// Restart of a generic service ends enabled.
	view, err := env.Services.ControlService(ctx, env.Admin, id, models.ActionRestart)
	require.NoError(t, err)
	assert.True(t, view.IsEnabled)

	view, err = env.Services.UpdateService(ctx, env.Admin, id, models.ServiceUpdatePayload{IsEnabled: ptr(false)})
	require.NoError(t, err)
	assert.False(t, view.IsEnabled)
	assert.Equal(t, "WORKGROUP", view.Config["workgroup"])

	t.Run("config replace keeps share overrides", func(t *testing.T) {
		share, err := env.Shares.CreateShare(ctx, env.Admin, sharePayload("media"))
		require.NoError(t, err)
		_, err = env.Proto.UpdateProtocolShare(ctx, env.Admin, "smb", share.ID, models.ProtocolSharePayload{
			ProtocolConfig: map[string]interface{}{"browseable": false},
		})
		require.NoError(t, err)

		view, err := env.Services.UpdateService(ctx, env.Admin, id, models.ServiceUpdatePayload{
			IsEnabled: ptr(true),
			Config:    map[string]interface{}{"workgroup": "HOME"},
		})
		require.NoError(t, err)
		assert.Equal(t, "HOME", view.Config["workgroup"])

		got, err := env.Proto.GetProtocolShare(ctx, "smb", share.ID)
		require.NoError(t, err)
		assert.Equal(t, false, got.ProtocolConfig["browseable"])
	})

	t.Run("protocol config is type-checked", func(t *testing.T) {
		_, err := env.Services.UpdateService(ctx, env.Admin, id, models.ServiceUpdatePayload{
			IsEnabled: ptr(false),
			Config:    map[string]interface{}{"security": "bogus"},
		})
		assert.ErrorIs(t, err, ErrValidation)

		smb, err := env.Proto.GetProtocol(ctx, "smb")
		require.NoError(t, err)
		assert.Equal(t, "HOME", smb.Config["workgroup"])
		assert.True(t, smb.IsEnabled)
	})

	_, err = env.Services.GetService(ctx, 999)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = env.Services.ControlService(ctx, env.Admin, 999, models.ActionStart)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = env.Services.UpdateService(ctx, env.Admin, id, models.ServiceUpdatePayload{})
	assert.ErrorIs(t, err, ErrValidation)
}
