package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"communityhub/internal/model"
	"communityhub/internal/repository"
)

type MemberRepository struct {
	mu      sync.RWMutex
	members map[string]model.Member
}

func NewMemberRepository() *MemberRepository {
	return &MemberRepository{members: make(map[string]model.Member)}
}

func (r *MemberRepository) Create(ctx context.Context, member *model.Member) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.members[member.ID]; exists {
		return repository.ErrDuplicate
	}
	// uk_member_triple 等价约束
	for _, existing := range r.members {
		if existing.CommunityID == member.CommunityID &&
			existing.UserID == member.UserID &&
			existing.RoleID == member.RoleID {
			return repository.ErrDuplicate
		}
	}
	if member.CreatedAt.IsZero() {
		member.CreatedAt = time.Now()
	}
	r.members[member.ID] = *member
	return nil
}

func (r *MemberRepository) FindByID(ctx context.Context, id string) (*model.Member, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	member, exists := r.members[id]
	if !exists {
		return nil, repository.ErrNotFound
	}
	return &member, nil
}

func (r *MemberRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.members, id)
	return nil
}

func (r *MemberRepository) Exists(ctx context.Context, communityID, userID, roleID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, member := range r.members {
		if member.CommunityID == communityID && member.UserID == userID && member.RoleID == roleID {
			return true, nil
		}
	}
	return false, nil
}

func (r *MemberRepository) ExistsByUserAndRole(ctx context.Context, userID, roleID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, member := range r.members {
		if member.UserID == userID && member.RoleID == roleID {
			return true, nil
		}
	}
	return false, nil
}

func (r *MemberRepository) FindByCommunityAndUser(ctx context.Context, communityID, userID string) ([]model.Member, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sorted(func(m model.Member) bool {
		return m.CommunityID == communityID && m.UserID == userID
	}), nil
}

func (r *MemberRepository) ListByCommunity(ctx context.Context, communityID string, offset, limit int) ([]model.Member, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	matched := r.sorted(func(m model.Member) bool { return m.CommunityID == communityID })
	return slicePage(matched, offset, limit), nil
}

func (r *MemberRepository) CountByCommunity(ctx context.Context, communityID string) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var count int64
	for _, member := range r.members {
		if member.CommunityID == communityID {
			count++
		}
	}
	return count, nil
}

func (r *MemberRepository) ListByUser(ctx context.Context, userID string, offset, limit int) ([]model.Member, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	matched := r.sorted(func(m model.Member) bool { return m.UserID == userID })
	return slicePage(matched, offset, limit), nil
}

func (r *MemberRepository) CountByUser(ctx context.Context, userID string) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var count int64
	for _, member := range r.members {
		if member.UserID == userID {
			count++
		}
	}
	return count, nil
}

func (r *MemberRepository) sorted(match func(model.Member) bool) []model.Member {
	var all []model.Member
	for _, member := range r.members {
		if match(member) {
			all = append(all, member)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return all
}
