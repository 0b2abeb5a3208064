package models

import (
	"time"
)

type QuestionBank struct {
	ID          string    `json:"id" gorm:"primaryKey;size:40"`
	Name        string    `json:"name" gorm:"not null;size:255" validate:"required,min=1,max=255"`
	Subject     string    `json:"subject" gorm:"not null;size:255;index" validate:"required,min=1,max=255"`
	Description string    `json:"description,omitempty" gorm:"type:text"`
	GradeLevel  string    `json:"grade_level,omitempty" gorm:"size:50"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	// Relations
	Topics    []Topic    `json:"topics,omitempty" gorm:"foreignKey:BankID;constraint:OnDelete:CASCADE"`
	Questions []Question `json:"questions,omitempty" gorm:"foreignKey:BankID;constraint:OnDelete:CASCADE"`

	// Computed fields (not stored)
	QuestionCount int64 `json:"question_count" gorm:"-"`
	TopicCount    int64 `json:"topic_count" gorm:"-"`
}

func (QuestionBank) TableName() string {
	return "question_banks"
}
