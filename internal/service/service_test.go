package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"communityhub/internal/model"
	"communityhub/internal/pkg"
	"communityhub/internal/repository/memory"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// env wires every service against the in-memory repositories.
type env struct {
	users       *memory.UserRepository
	roles       *memory.RoleRepository
	communities *memory.CommunityRepository
	members     *memory.MemberRepository

	rbac         *RBACService
	userSvc      *UserService
	roleSvc      *RoleService
	memberSvc    *MemberService
	communitySvc *CommunityService

	events *recordingPublisher
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []pkg.Event
}

func (p *recordingPublisher) Publish(ctx context.Context, event pkg.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) all() []pkg.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]pkg.Event(nil), p.events...)
}

func newEnv(t *testing.T) *env {
	t.Helper()

	e := &env{
		users:       memory.NewUserRepository(),
		roles:       memory.NewRoleRepository(),
		communities: memory.NewCommunityRepository(),
		members:     memory.NewMemberRepository(),
		events:      &recordingPublisher{},
	}

	logger := zap.NewNop()
	maker := pkg.NewTokenMaker("test-secret", time.Hour)

	e.rbac = NewRBACService(e.roles, e.members)
	e.userSvc = NewUserService(e.users, maker, nil, logger)
	e.roleSvc = NewRoleService(e.roles)
	e.memberSvc = NewMemberService(e.members, e.communities, e.users, e.roles, e.rbac, e.events, logger)
	e.communitySvc = NewCommunityService(e.communities, e.members, e.users, e.roles, e.memberSvc, e.events, logger)
	return e
}

// seedRoles provisions the two privileged roles plus a plain member role.
func (e *env) seedRoles(t *testing.T) (admin, moderator, member *model.Role) {
	t.Helper()
	ctx := context.Background()

	require.NoError(t, e.roleSvc.EnsureSeedRoles(ctx))

	var err error
	admin, err = e.roles.FindByName(ctx, model.RoleCommunityAdmin)
	require.NoError(t, err)
	moderator, err = e.roles.FindByName(ctx, model.RoleCommunityModerator)
	require.NoError(t, err)
	member, err = e.roleSvc.Create(ctx, "Community Member")
	require.NoError(t, err)
	return admin, moderator, member
}

func (e *env) addUser(t *testing.T, name, email string) *model.User {
	t.Helper()

	user := &model.User{
		ID:       pkg.NewID(),
		Name:     name,
		Email:    email,
		Password: "x",
	}
	require.NoError(t, e.users.Create(context.Background(), user))
	return user
}
