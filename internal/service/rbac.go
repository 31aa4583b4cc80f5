package service

import (
	"context"
	"errors"

	"communityhub/internal/repository"
)

// RBACService answers "does this user hold this named role". Member records
// are the single authoritative source: a user holds a role iff some Member
// record assigns it. A role name that is not provisioned at all answers
// false rather than erroring.
type RBACService struct {
	roles   repository.RoleRepository
	members repository.MemberRepository
}

func NewRBACService(roles repository.RoleRepository, members repository.MemberRepository) *RBACService {
	return &RBACService{roles: roles, members: members}
}

// HasRole checks the role across all communities.
func (s *RBACService) HasRole(ctx context.Context, userID, roleName string) (bool, error) {
	role, err := s.roles.FindByName(ctx, roleName)
	if errors.Is(err, repository.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return s.members.ExistsByUserAndRole(ctx, userID, role.ID)
}

// HasCommunityRole checks whether the user holds any of the named roles
// inside the given community.
func (s *RBACService) HasCommunityRole(ctx context.Context, userID, communityID string, roleNames ...string) (bool, error) {
	memberships, err := s.members.FindByCommunityAndUser(ctx, communityID, userID)
	if err != nil {
		return false, err
	}
	if len(memberships) == 0 {
		return false, nil
	}

	held := make(map[string]bool, len(memberships))
	for _, m := range memberships {
		held[m.RoleID] = true
	}

	for _, name := range roleNames {
		role, err := s.roles.FindByName(ctx, name)
		if errors.Is(err, repository.ErrNotFound) {
			continue // role not provisioned: treated as not held
		}
		if err != nil {
			return false, err
		}
		if held[role.ID] {
			return true, nil
		}
	}
	return false, nil
}
