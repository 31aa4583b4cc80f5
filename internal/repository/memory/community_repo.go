package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"communityhub/internal/model"
	"communityhub/internal/repository"
)

type CommunityRepository struct {
	mu          sync.RWMutex
	communities map[string]model.Community
}

func NewCommunityRepository() *CommunityRepository {
	return &CommunityRepository{communities: make(map[string]model.Community)}
}

func (r *CommunityRepository) Create(ctx context.Context, community *model.Community) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.communities[community.ID]; exists {
		return repository.ErrDuplicate
	}
	for _, existing := range r.communities {
		if existing.Slug == community.Slug {
			return repository.ErrDuplicate
		}
	}
	now := time.Now()
	if community.CreatedAt.IsZero() {
		community.CreatedAt = now
	}
	if community.UpdatedAt.IsZero() {
		community.UpdatedAt = now
	}
	r.communities[community.ID] = *community
	return nil
}

func (r *CommunityRepository) FindByID(ctx context.Context, id string) (*model.Community, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	community, exists := r.communities[id]
	if !exists {
		return nil, repository.ErrNotFound
	}
	return &community, nil
}

func (r *CommunityRepository) FindByIDs(ctx context.Context, ids []string) ([]model.Community, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var communities []model.Community
	for _, id := range ids {
		if community, exists := r.communities[id]; exists {
			communities = append(communities, community)
		}
	}
	return communities, nil
}

func (r *CommunityRepository) FindBySlug(ctx context.Context, slug string) (*model.Community, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, community := range r.communities {
		if community.Slug == slug {
			c := community
			return &c, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *CommunityRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.communities, id)
	return nil
}

func (r *CommunityRepository) List(ctx context.Context, offset, limit int) ([]model.Community, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slicePage(r.sorted(func(model.Community) bool { return true }), offset, limit), nil
}

func (r *CommunityRepository) Count(ctx context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.communities)), nil
}

func (r *CommunityRepository) ListByOwner(ctx context.Context, owner string, offset, limit int) ([]model.Community, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	matched := r.sorted(func(c model.Community) bool { return c.Owner == owner })
	return slicePage(matched, offset, limit), nil
}

func (r *CommunityRepository) CountByOwner(ctx context.Context, owner string) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var count int64
	for _, community := range r.communities {
		if community.Owner == owner {
			count++
		}
	}
	return count, nil
}

func (r *CommunityRepository) sorted(match func(model.Community) bool) []model.Community {
	var all []model.Community
	for _, community := range r.communities {
		if match(community) {
			all = append(all, community)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return all
}
