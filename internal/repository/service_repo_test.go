// filepath: internal/repository/service_repo_test.go
package repository

import (
	"context"
	"errors"
	"flexnas/internal/models"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetServices_Seeded(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	protocols, err := repo.GetServices(ctx, models.ServiceTypeFileSharing)
	require.NoError(t, err)
	require.Len(t, protocols, 4)

	names := []string{}
	for _, p := range protocols {
		names = append(names, p.Name)
		assert.False(t, p.Enabled)
	}
	assert.Equal(t, []string{"smb", "nfs", "ftp", "webdav"}, names)

	nfs, err := repo.GetServiceByName(ctx, "nfs")
	require.NoError(t, err)
	assert.Equal(t, 2049, nfs.Port)
	assert.Equal(t, float64(8), nfs.Config["threads"])

	_, err = repo.GetServiceByName(ctx, "afp")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestModifyService(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	updated, err := repo.ModifyServiceByName(ctx, "smb", func(svc *models.Service) error {
		svc.Enabled = true
		svc.Config["workgroup"] = "HOME"
		return nil
	})
	require.NoError(t, err)
	assert.True(t, updated.Enabled)

	stored, err := repo.GetServiceByID(ctx, updated.ID)
	require.NoError(t, err)
	assert.True(t, stored.Enabled)
	assert.Equal(t, "HOME", stored.Config["workgroup"])
	assert.Equal(t, "FLEXNAS", stored.Config["netbios_name"])

	// An error from the callback rolls the change back.
	boom := errors.New("boom")
	_, err = repo.ModifyServiceByName(ctx, "smb", func(svc *models.Service) error {
		svc.Enabled = false
		return boom
	})
	assert.ErrorIs(t, err, boom)
	stored, err = repo.GetServiceByName(ctx, "smb")
	require.NoError(t, err)
	assert.True(t, stored.Enabled)

	_, err = repo.ModifyServiceByID(ctx, 999, func(*models.Service) error { return nil })
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestModifyService_ConcurrentShareOverrides(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	const writers = 8
	var wg sync.WaitGroup
	errs := make(chan error, writers)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := repo.ModifyServiceByName(ctx, "nfs", func(svc *models.Service) error {
				shares, _ := svc.Config[models.ProtocolSharesKey].(map[string]interface{})
				if shares == nil {
					shares = map[string]interface{}{}
				}
				shares[fmt.Sprintf("share%d", i)] = map[string]interface{}{"writer": i}
				svc.Config[models.ProtocolSharesKey] = shares
				return nil
			})
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	stored, err := repo.GetServiceByName(ctx, "nfs")
	require.NoError(t, err)
	shares, ok := stored.Config[models.ProtocolSharesKey].(map[string]interface{})
	require.True(t, ok)
	assert.Len(t, shares, writers, "every writer's key must survive")
	assert.Equal(t, float64(8), stored.Config["threads"])
}
