// Package repository defines the persistence interface the services depend
// on. Drivers live in the mysql and memory subpackages.
package repository

import (
	"context"
	"errors"

	"communityhub/internal/model"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id string) (*model.User, error)
	FindByIDs(ctx context.Context, ids []string) ([]model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
}

type RoleRepository interface {
	Create(ctx context.Context, role *model.Role) error
	FindByID(ctx context.Context, id string) (*model.Role, error)
	FindByIDs(ctx context.Context, ids []string) ([]model.Role, error)
	FindByName(ctx context.Context, name string) (*model.Role, error)
	List(ctx context.Context, offset, limit int) ([]model.Role, error)
	Count(ctx context.Context) (int64, error)
}

type CommunityRepository interface {
	Create(ctx context.Context, community *model.Community) error
	FindByID(ctx context.Context, id string) (*model.Community, error)
	FindByIDs(ctx context.Context, ids []string) ([]model.Community, error)
	FindBySlug(ctx context.Context, slug string) (*model.Community, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, offset, limit int) ([]model.Community, error)
	Count(ctx context.Context) (int64, error)
	ListByOwner(ctx context.Context, owner string, offset, limit int) ([]model.Community, error)
	CountByOwner(ctx context.Context, owner string) (int64, error)
}

type MemberRepository interface {
	Create(ctx context.Context, member *model.Member) error
	FindByID(ctx context.Context, id string) (*model.Member, error)
	Delete(ctx context.Context, id string) error
	Exists(ctx context.Context, communityID, userID, roleID string) (bool, error)
	ExistsByUserAndRole(ctx context.Context, userID, roleID string) (bool, error)
	FindByCommunityAndUser(ctx context.Context, communityID, userID string) ([]model.Member, error)
	ListByCommunity(ctx context.Context, communityID string, offset, limit int) ([]model.Member, error)
	CountByCommunity(ctx context.Context, communityID string) (int64, error)
	ListByUser(ctx context.Context, userID string, offset, limit int) ([]model.Member, error)
	CountByUser(ctx context.Context, userID string) (int64, error)
}
