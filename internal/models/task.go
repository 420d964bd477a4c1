package models

import (
	"time"
)

type Task struct {
	ID          uint64    `gorm:"primarykey" json:"id"`
	Description string    `gorm:"type:varchar(255);not null" json:"description"`
	UserID      uint64    `gorm:"not null;index" json:"user_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Relations
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
