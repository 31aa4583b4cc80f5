package model

import "time"

// Member ties one user to one role inside one community.
// 同一 (community, user, role) 只允许一条记录。
type Member struct {
	ID          string `gorm:"primaryKey;size:32"`
	CommunityID string `gorm:"size:32;not null;index;uniqueIndex:uk_member_triple"`
	UserID      string `gorm:"size:32;not null;index;uniqueIndex:uk_member_triple"`
	RoleID      string `gorm:"size:32;not null;uniqueIndex:uk_member_triple"`
	CreatedAt   time.Time
}
