package service

import (
	"context"
	"testing"

	"communityhub/internal/model"
	"communityhub/internal/pkg"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHasRoleUnprovisionedRole(t *testing.T) {
	e := newEnv(t)
	user := e.addUser(t, "Ann", "a@x.com")

	// no role records exist at all
	ok, err := e.rbac.HasRole(context.Background(), user.ID, model.RoleCommunityAdmin)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHasRoleDerivedFromMembers(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	admin, _, memberRole := e.seedRoles(t)
	user := e.addUser(t, "Ann", "a@x.com")
	owner := e.addUser(t, "Bob", "b@x.com")

	community, err := e.communitySvc.Create(ctx, owner.ID, "Test Club")
	require.NoError(t, err)

	ok, err := e.rbac.HasRole(ctx, user.ID, model.RoleCommunityAdmin)
	require.NoError(t, err)
	assert.False(t, ok, "no member record assigns the role yet")

	require.NoError(t, e.members.Create(ctx, &model.Member{
		ID:          pkg.NewID(),
		CommunityID: community.ID,
		UserID:      user.ID,
		RoleID:      admin.ID,
	}))

	ok, err = e.rbac.HasRole(ctx, user.ID, model.RoleCommunityAdmin)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = e.rbac.HasRole(ctx, user.ID, memberRole.Name)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHasCommunityRoleIsScoped(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	e.seedRoles(t)
	alice := e.addUser(t, "Alice", "alice@x.com")
	bob := e.addUser(t, "Bob", "bob@x.com")

	// alice owns (and so admins) club A, bob owns club B
	clubA, err := e.communitySvc.Create(ctx, alice.ID, "Club A")
	require.NoError(t, err)
	clubB, err := e.communitySvc.Create(ctx, bob.ID, "Club B")
	require.NoError(t, err)

	ok, err := e.rbac.HasCommunityRole(ctx, alice.ID, clubA.ID,
		model.RoleCommunityAdmin, model.RoleCommunityModerator)
	require.NoError(t, err)
	assert.True(t, ok)

	// admin of A carries nothing in B
	ok, err = e.rbac.HasCommunityRole(ctx, alice.ID, clubB.ID,
		model.RoleCommunityAdmin, model.RoleCommunityModerator)
	require.NoError(t, err)
	assert.False(t, ok)
}
