package models

import (
	"time"
)

// Topic groups questions inside a bank. Topics may nest via ParentTopicID,
// which must reference another topic in the same bank.
type Topic struct {
	ID            string  `json:"id" gorm:"primaryKey;size:40"`
	BankID        string  `json:"bank_id" gorm:"not null;size:40;index" validate:"required"`
	Name          string  `json:"name" gorm:"not null;size:255" validate:"required,min=1,max=255"`
	Description   string  `json:"description,omitempty" gorm:"type:text"`
	ParentTopicID *string `json:"parent_topic_id,omitempty" gorm:"size:40;index"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`

	// Relations
	Bank        *QuestionBank `json:"-" gorm:"foreignKey:BankID"`
	ParentTopic *Topic        `json:"-" gorm:"foreignKey:ParentTopicID"`

	// Computed fields (not stored)
	QuestionCount int64 `json:"question_count" gorm:"-"`
}

func (Topic) TableName() string {
	return "topics"
}
