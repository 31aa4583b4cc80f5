package mysql

import (
	"context"

	"communityhub/internal/model"

	"gorm.io/gorm"
)

type CommunityRepository struct {
	DB *gorm.DB
}

func NewCommunityRepository(db *gorm.DB) *CommunityRepository {
	return &CommunityRepository{DB: db}
}

func (r *CommunityRepository) Create(ctx context.Context, community *model.Community) error {
	return translate(r.DB.WithContext(ctx).Create(community).Error)
}

func (r *CommunityRepository) FindByID(ctx context.Context, id string) (*model.Community, error) {
	var community model.Community
	err := r.DB.WithContext(ctx).First(&community, "id = ?", id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &community, nil
}

func (r *CommunityRepository) FindByIDs(ctx context.Context, ids []string) ([]model.Community, error) {
	var communities []model.Community
	if len(ids) == 0 {
		return communities, nil
	}
	err := r.DB.WithContext(ctx).Where("id IN ?", ids).Find(&communities).Error
	return communities, translate(err)
}

func (r *CommunityRepository) FindBySlug(ctx context.Context, slug string) (*model.Community, error) {
	var community model.Community
	err := r.DB.WithContext(ctx).Where("slug = ?", slug).First(&community).Error
	if err != nil {
		return nil, translate(err)
	}
	return &community, nil
}

// Delete 幂等硬删除：记录不存在也视为成功。
func (r *CommunityRepository) Delete(ctx context.Context, id string) error {
	return translate(r.DB.WithContext(ctx).Delete(&model.Community{}, "id = ?", id).Error)
}

func (r *CommunityRepository) List(ctx context.Context, offset, limit int) ([]model.Community, error) {
	var communities []model.Community
	err := r.DB.WithContext(ctx).Order("created_at, id").Offset(offset).Limit(limit).Find(&communities).Error
	return communities, translate(err)
}

func (r *CommunityRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.Community{}).Count(&count).Error
	return count, translate(err)
}

func (r *CommunityRepository) ListByOwner(ctx context.Context, owner string, offset, limit int) ([]model.Community, error) {
	var communities []model.Community
	err := r.DB.WithContext(ctx).Where("owner = ?", owner).
		Order("created_at, id").Offset(offset).Limit(limit).Find(&communities).Error
	return communities, translate(err)
}

func (r *CommunityRepository) CountByOwner(ctx context.Context, owner string) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.Community{}).Where("owner = ?", owner).Count(&count).Error
	return count, translate(err)
}
