package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"communityhub/internal/model"
	"communityhub/internal/repository"
)

type RoleRepository struct {
	mu    sync.RWMutex
	roles map[string]model.Role
}

func NewRoleRepository() *RoleRepository {
	return &RoleRepository{roles: make(map[string]model.Role)}
}

func (r *RoleRepository) Create(ctx context.Context, role *model.Role) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.roles[role.ID]; exists {
		return repository.ErrDuplicate
	}
	for _, existing := range r.roles {
		if existing.Name == role.Name {
			return repository.ErrDuplicate
		}
	}
	now := time.Now()
	if role.CreatedAt.IsZero() {
		role.CreatedAt = now
	}
	if role.UpdatedAt.IsZero() {
		role.UpdatedAt = now
	}
	r.roles[role.ID] = *role
	return nil
}

func (r *RoleRepository) FindByID(ctx context.Context, id string) (*model.Role, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	role, exists := r.roles[id]
	if !exists {
		return nil, repository.ErrNotFound
	}
	return &role, nil
}

func (r *RoleRepository) FindByIDs(ctx context.Context, ids []string) ([]model.Role, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var roles []model.Role
	for _, id := range ids {
		if role, exists := r.roles[id]; exists {
			roles = append(roles, role)
		}
	}
	return roles, nil
}

func (r *RoleRepository) FindByName(ctx context.Context, name string) (*model.Role, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, role := range r.roles {
		if role.Name == name {
			rl := role
			return &rl, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *RoleRepository) List(ctx context.Context, offset, limit int) ([]model.Role, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]model.Role, 0, len(r.roles))
	for _, role := range r.roles {
		all = append(all, role)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return slicePage(all, offset, limit), nil
}

func (r *RoleRepository) Count(ctx context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.roles)), nil
}

// slicePage applies offset/limit the way the SQL driver does.
func slicePage[T any](all []T, offset, limit int) []T {
	if offset >= len(all) {
		return nil
	}
	end := len(all)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return all[offset:end]
}
