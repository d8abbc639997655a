package model

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NewID 生成主键
func NewID() string {
	return uuid.NewString()
}

func ensureID(id *string) {
	if *id == "" {
		*id = NewID()
	}
}

func (u *User) BeforeCreate(_ *gorm.DB) error {
	ensureID(&u.ID)
	return nil
}

func (q *UserQuest) BeforeCreate(_ *gorm.DB) error {
	ensureID(&q.ID)
	return nil
}

func (d *DailyCastLimit) BeforeCreate(_ *gorm.DB) error {
	ensureID(&d.ID)
	return nil
}

func (b *SbtBadge) BeforeCreate(_ *gorm.DB) error {
	ensureID(&b.ID)
	return nil
}

func (d *ContentDraft) BeforeCreate(_ *gorm.DB) error {
	ensureID(&d.ID)
	return nil
}

func (f *Feedback) BeforeCreate(_ *gorm.DB) error {
	ensureID(&f.ID)
	return nil
}
