// filepath: internal/services/share_service_test.go
package services

import (
	"context"
	"flexnas/internal/models"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sharePayload(name string) models.SharePayload {
	return models.SharePayload{Name: name, Path: "/srv/" + name, Description: name + " share"}
}

func TestCreateShare_Permissions(t *testing.T) {
	env := setupIntegrationTest(t)
	ctx := context.Background()

	plain := env.newUser(t, "plain")
	_, err := env.Shares.CreateShare(ctx, plain, sharePayload("media"))
	assert.ErrorIs(t, err, ErrForbidden)
	n, _ := env.Repo.CountShares(ctx)
	assert.Zero(t, n, "no row may be inserted")

	manager := env.newUser(t, "manager", models.PermManageShares)
	share, err := env.Shares.CreateShare(ctx, manager, sharePayload("media"))
	require.NoError(t, err)
	assert.Equal(t, manager.ID, share.CreatedBy)

	_, err = env.Shares.CreateShare(ctx, env.Admin, sharePayload("media"))
	assert.ErrorIs(t, err, ErrConflict)

	_, err = env.Shares.CreateShare(ctx, env.Admin, models.SharePayload{Name: "rel", Path: "relative/path"})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestListShares_Visibility(t *testing.T) {
	env := setupIntegrationTest(t)
	ctx := context.Background()
	al := env.newUser(t, "al")
	env.newUser(t, "alice")

	public := sharePayload("public")
	public.IsPublic = true
	private := sharePayload("private")
	private.AllowedUsers = []string{"alice"}
	for _, p := range []models.SharePayload{public, private, sharePayload("admin-only")} {
		_, err := env.Shares.CreateShare(ctx, env.Admin, p)
		require.NoError(t, err)
	}

	all, err := env.Shares.ListShares(ctx, env.Admin)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	// "al" is a substring of "alice" but must not see alice's share.
	visible, err := env.Shares.ListShares(ctx, al)
	require.NoError(t, err)
	require.Len(t, visible, 1)
	assert.Equal(t, "public", visible[0].Name)

	_, err = env.Shares.GetShare(ctx, al, all[1].ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateAndDeleteShare(t *testing.T) {
	env := setupIntegrationTest(t)
	ctx := context.Background()

	a, err := env.Shares.CreateShare(ctx, env.Admin, sharePayload("a"))
	require.NoError(t, err)
	_, err = env.Shares.CreateShare(ctx, env.Admin, sharePayload("b"))
	require.NoError(t, err)

	upd := sharePayload("a2")
	upd.ReadOnly = true
	updated, err := env.Shares.UpdateShare(ctx, env.Admin, a.ID, upd)
	require.NoError(t, err)
	assert.Equal(t, "a2", updated.Name)
	assert.True(t, updated.ReadOnly)

	_, err = env.Shares.UpdateShare(ctx, env.Admin, a.ID, sharePayload("b"))
	assert.ErrorIs(t, err, ErrConflict)
	_, err = env.Shares.UpdateShare(ctx, env.Admin, 999, sharePayload("c"))
	assert.ErrorIs(t, err, ErrNotFound)

	sharesBefore, _ := env.Repo.CountShares(ctx)
	activityBefore := env.activityCount(t)

	assert.ErrorIs(t, env.Shares.DeleteShare(ctx, env.Admin, 999), ErrNotFound)
	sharesAfter, _ := env.Repo.CountShares(ctx)
	assert.Equal(t, sharesBefore, sharesAfter)
	assert.Equal(t, activityBefore, env.activityCount(t))

	require.NoError(t, env.Shares.DeleteShare(ctx, env.Admin, a.ID))
	sharesAfter, _ = env.Repo.CountShares(ctx)
	assert.Equal(t, sharesBefore-1, sharesAfter)
	assert.Equal(t, activityBefore+1, env.activityCount(t))
}
