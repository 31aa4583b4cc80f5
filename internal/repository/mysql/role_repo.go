package mysql

import (
	"context"

	"communityhub/internal/model"

	"gorm.io/gorm"
)

type RoleRepository struct {
	DB *gorm.DB
}

func NewRoleRepository(db *gorm.DB) *RoleRepository {
	return &RoleRepository{DB: db}
}

func (r *RoleRepository) Create(ctx context.Context, role *model.Role) error {
	return translate(r.DB.WithContext(ctx).Create(role).Error)
}

func (r *RoleRepository) FindByID(ctx context.Context, id string) (*model.Role, error) {
	var role model.Role
	err := r.DB.WithContext(ctx).First(&role, "id = ?", id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &role, nil
}

func (r *RoleRepository) FindByIDs(ctx context.Context, ids []string) ([]model.Role, error) {
	var roles []model.Role
	if len(ids) == 0 {
		return roles, nil
	}
	err := r.DB.WithContext(ctx).Where("id IN ?", ids).Find(&roles).Error
	return roles, translate(err)
}

func (r *RoleRepository) FindByName(ctx context.Context, name string) (*model.Role, error) {
	var role model.Role
	err := r.DB.WithContext(ctx).Where("name = ?", name).First(&role).Error
	if err != nil {
		return nil, translate(err)
	}
	return &role, nil
}

func (r *RoleRepository) List(ctx context.Context, offset, limit int) ([]model.Role, error) {
	var roles []model.Role
	err := r.DB.WithContext(ctx).Order("created_at, id").Offset(offset).Limit(limit).Find(&roles).Error
	return roles, translate(err)
}

func (r *RoleRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.Role{}).Count(&count).Error
	return count, translate(err)
}
