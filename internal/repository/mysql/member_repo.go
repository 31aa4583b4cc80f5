package mysql

import (
	"context"

	"communityhub/internal/model"

	"gorm.io/gorm"
)

type MemberRepository struct {
	DB *gorm.DB
}

func NewMemberRepository(db *gorm.DB) *MemberRepository {
	return &MemberRepository{DB: db}
}

// Create relies on uk_member_triple to reject a duplicate
// (community, user, role) even when two inserts race.
func (r *MemberRepository) Create(ctx context.Context, member *model.Member) error {
	return translate(r.DB.WithContext(ctx).Create(member).Error)
}

func (r *MemberRepository) FindByID(ctx context.Context, id string) (*model.Member, error) {
	var member model.Member
	err := r.DB.WithContext(ctx).First(&member, "id = ?", id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &member, nil
}

func (r *MemberRepository) Delete(ctx context.Context, id string) error {
	return translate(r.DB.WithContext(ctx).Delete(&model.Member{}, "id = ?", id).Error)
}

func (r *MemberRepository) Exists(ctx context.Context, communityID, userID, roleID string) (bool, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.Member{}).
		Where("community_id = ? AND user_id = ? AND role_id = ?", communityID, userID, roleID).
		Count(&count).Error
	return count > 0, translate(err)
}

func (r *MemberRepository) ExistsByUserAndRole(ctx context.Context, userID, roleID string) (bool, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.Member{}).
		Where("user_id = ? AND role_id = ?", userID, roleID).
		Count(&count).Error
	return count > 0, translate(err)
}

func (r *MemberRepository) FindByCommunityAndUser(ctx context.Context, communityID, userID string) ([]model.Member, error) {
	var members []model.Member
	err := r.DB.WithContext(ctx).
		Where("community_id = ? AND user_id = ?", communityID, userID).
		Find(&members).Error
	return members, translate(err)
}

func (r *MemberRepository) ListByCommunity(ctx context.Context, communityID string, offset, limit int) ([]model.Member, error) {
	var members []model.Member
	err := r.DB.WithContext(ctx).Where("community_id = ?", communityID).
		Order("created_at, id").Offset(offset).Limit(limit).Find(&members).Error
	return members, translate(err)
}

func (r *MemberRepository) CountByCommunity(ctx context.Context, communityID string) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.Member{}).
		Where("community_id = ?", communityID).Count(&count).Error
	return count, translate(err)
}

func (r *MemberRepository) ListByUser(ctx context.Context, userID string, offset, limit int) ([]model.Member, error) {
	var members []model.Member
	err := r.DB.WithContext(ctx).Where("user_id = ?", userID).
		Order("created_at, id").Offset(offset).Limit(limit).Find(&members).Error
	return members, translate(err)
}

func (r *MemberRepository) CountByUser(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.Member{}).
		Where("user_id = ?", userID).Count(&count).Error
	return count, translate(err)
}
