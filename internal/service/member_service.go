package service

import (
	"context"
	"errors"

	"communityhub/internal/model"
	"communityhub/internal/pkg"
	"communityhub/internal/repository"

	"go.uber.org/zap"
)

// EventPublisher receives membership domain events. Implementations must be
// safe for concurrent use; a nil publisher disables events.
type EventPublisher interface {
	Publish(ctx context.Context, event pkg.Event) error
}

type MemberService struct {
	members     repository.MemberRepository
	communities repository.CommunityRepository
	users       repository.UserRepository
	roles       repository.RoleRepository
	rbac        *RBACService
	events      EventPublisher
	logger      *zap.Logger
}

func NewMemberService(
	members repository.MemberRepository,
	communities repository.CommunityRepository,
	users repository.UserRepository,
	roles repository.RoleRepository,
	rbac *RBACService,
	events EventPublisher,
	logger *zap.Logger,
) *MemberService {
	return &MemberService{
		members:     members,
		communities: communities,
		users:       users,
		roles:       roles,
		rbac:        rbac,
		events:      events,
		logger:      logger,
	}
}

// Add is the admin-gated entry point: the caller must hold Community Admin.
func (s *MemberService) Add(ctx context.Context, callerID, communityID, userID, roleID string) (*model.Member, error) {
	isAdmin, err := s.rbac.HasRole(ctx, callerID, model.RoleCommunityAdmin)
	if err != nil {
		return nil, err
	}
	if !isAdmin {
		return nil, ErrNotAllowed
	}
	return s.CreateMembership(ctx, communityID, userID, roleID)
}

// CreateMembership enforces the membership invariants without any RBAC gate:
// community, user and role must exist, and the (community, user, role)
// triple must be new. The community service uses it directly to seed the
// owner's admin membership.
func (s *MemberService) CreateMembership(ctx context.Context, communityID, userID, roleID string) (*model.Member, error) {
	if _, err := s.communities.FindByID(ctx, communityID); err != nil {
		return nil, notFoundOr(err)
	}
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		return nil, notFoundOr(err)
	}
	if _, err := s.roles.FindByID(ctx, roleID); err != nil {
		return nil, notFoundOr(err)
	}

	exists, err := s.members.Exists(ctx, communityID, userID, roleID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrAlreadyMember
	}

	member := &model.Member{
		ID:          pkg.NewID(),
		CommunityID: communityID,
		UserID:      userID,
		RoleID:      roleID,
	}
	if err := s.members.Create(ctx, member); err != nil {
		// 唯一索引兜底：并发下 check-then-insert 撞车也算重复
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrAlreadyMember
		}
		return nil, err
	}

	s.publish(ctx, pkg.Event{
		Type:        pkg.EventMemberAdded,
		CommunityID: communityID,
		UserID:      userID,
		RoleID:      roleID,
		MemberID:    member.ID,
	})
	return member, nil
}

// Remove deletes a membership. The caller must hold Admin or Moderator
// inside the member's own community; an unknown member id and an
// unauthorized caller are indistinguishable to the outside.
func (s *MemberService) Remove(ctx context.Context, callerID, memberID string) error {
	member, err := s.members.FindByID(ctx, memberID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrMemberNotFound
		}
		return err
	}

	allowed, err := s.rbac.HasCommunityRole(ctx, callerID, member.CommunityID,
		model.RoleCommunityAdmin, model.RoleCommunityModerator)
	if err != nil {
		return err
	}
	if !allowed {
		return ErrMemberNotFound
	}

	if err := s.members.Delete(ctx, memberID); err != nil {
		return err
	}

	s.publish(ctx, pkg.Event{
		Type:        pkg.EventMemberRemoved,
		CommunityID: member.CommunityID,
		UserID:      member.UserID,
		RoleID:      member.RoleID,
		MemberID:    member.ID,
	})
	return nil
}

// publish is best effort: a broker outage must not fail the request.
func (s *MemberService) publish(ctx context.Context, event pkg.Event) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(ctx, event); err != nil {
		s.logger.Warn("event publish failed",
			zap.String("type", event.Type),
			zap.String("community_id", event.CommunityID),
			zap.Error(err),
		)
	}
}

func notFoundOr(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrResourceNotFound
	}
	return err
}
