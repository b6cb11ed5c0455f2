package domain

import (
	"time"

	"github.com/google/uuid"
)

// UserType defines the kinds of user accounts.
type UserType string

const (
	UserTypeNormal UserType = "normal"
	UserTypeAdmin  UserType = "admin"
)

// User represents a platform account. Every property is owned by a user;
// ownership is checked on every mutating property operation.
type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Email     string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"not null" json:"-"`
	FirstName string    `gorm:"size:100" json:"first_name"`
	LastName  string    `gorm:"size:100" json:"last_name"`
	Phone     string    `gorm:"size:30" json:"phone,omitempty"`
	UserType  UserType  `gorm:"type:varchar(20);not null;default:'normal'" json:"user_type"`
	IsActive  bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for the User model.
func (User) TableName() string {
	return "users"
}
