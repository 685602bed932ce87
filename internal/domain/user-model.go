package domain

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string `json:"-"`
	FirstName    string `gorm:"type:varchar(150);not null" json:"first_name"`
	LastName     string `gorm:"type:varchar(150);not null" json:"last_name"`
	Phone        string `gorm:"type:varchar(20)" json:"phone"`
	Role         Role   `gorm:"type:varchar(20);not null;default:'applicant'" json:"role"`
	Status       string `gorm:"type:varchar(20);not null;default:'active'" json:"status"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
