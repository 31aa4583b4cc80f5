package service

import (
	"context"
	"errors"

	"communityhub/internal/model"
	"communityhub/internal/pkg"
	"communityhub/internal/repository"
)

type RoleService struct {
	roles repository.RoleRepository
}

func NewRoleService(roles repository.RoleRepository) *RoleService {
	return &RoleService{roles: roles}
}

func (s *RoleService) Create(ctx context.Context, name string) (*model.Role, error) {
	if _, err := s.roles.FindByName(ctx, name); err == nil {
		return nil, ErrRoleExists
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	role := &model.Role{ID: pkg.NewID(), Name: name}
	if err := s.roles.Create(ctx, role); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrRoleExists
		}
		return nil, err
	}
	return role, nil
}

// List is the one listing that rejects an out-of-range page instead of
// returning an empty one. Page 1 of an empty store is still valid.
func (s *RoleService) List(ctx context.Context, page int) ([]model.Role, pkg.PageMeta, error) {
	total, err := s.roles.Count(ctx)
	if err != nil {
		return nil, pkg.PageMeta{}, err
	}

	meta, offset := pkg.Paginate(page, total)
	if !meta.InRange() {
		return nil, pkg.PageMeta{}, ErrPageOutOfRange
	}

	roles, err := s.roles.List(ctx, offset, pkg.PerPage)
	if err != nil {
		return nil, pkg.PageMeta{}, err
	}
	return roles, meta, nil
}

// EnsureSeedRoles provisions the two privileged roles community creation and
// moderation depend on. Called once at startup.
func (s *RoleService) EnsureSeedRoles(ctx context.Context) error {
	for _, name := range []string{model.RoleCommunityAdmin, model.RoleCommunityModerator} {
		_, err := s.roles.FindByName(ctx, name)
		if err == nil {
			continue
		}
		if !errors.Is(err, repository.ErrNotFound) {
			return err
		}
		if _, err := s.Create(ctx, name); err != nil && !errors.Is(err, ErrRoleExists) {
			return err
		}
	}
	return nil
}
