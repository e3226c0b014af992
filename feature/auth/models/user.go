package models

import "time"

// Role is the subscription tier of an account.
type Role string

const (
	RoleFree    Role = "free"
	RolePremium Role = "premium"
	RolePro     Role = "pro"
)

// User is one registered account.
type User struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Email    string `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Username string `gorm:"uniqueIndex;size:50;not null" json:"username"`
	// HashedPassword is a bcrypt hash. Empty for accounts created through
	// Google sign-in that never set a password.
	HashedPassword string `gorm:"size:255;not null" json:"-"`

	FullName *string `gorm:"size:255" json:"full_name"`
	Phone    *string `gorm:"size:32" json:"phone"`
	CEP      *string `gorm:"size:16" json:"cep"`

	Role       Role `gorm:"type:varchar(16);default:free;not null" json:"role"`
	IsActive   bool `gorm:"default:true;not null" json:"is_active"`
	IsVerified bool `gorm:"default:false;not null" json:"is_verified"`

	// GoogleID links the account to a Google identity.
	GoogleID   *string `gorm:"uniqueIndex;size:64" json:"google_id,omitempty"`
	PictureURL *string `gorm:"size:512" json:"picture_url"`

	// LudopediaAccessToken is the stored OAuth token used to read the
	// user's Ludopedia collection. Never serialized.
	LudopediaAccessToken *string `gorm:"size:512" json:"-"`

	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
	LastLogin *time.Time `json:"last_login"`
}
