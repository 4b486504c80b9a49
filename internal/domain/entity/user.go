package entity

import (
	"time"

	"github.com/google/uuid"
)

// User represents the centralized authentication table
type User struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	RoleID      int       `gorm:"not null;index" json:"role_id"`
	Email       string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Password    string    `gorm:"type:text;not null" json:"-"`
	FullName    string    `gorm:"type:varchar(255);not null" json:"full_name"`
	Phone       string    `gorm:"type:varchar(30)" json:"phone,omitempty"`
	AvatarURL   string    `gorm:"type:text" json:"avatar_url,omitempty"`
	ProviderUID *string   `gorm:"type:varchar(128);uniqueIndex" json:"-"`
	IsActive    bool      `gorm:"not null;index" json:"is_active"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Role                Role                 `gorm:"foreignKey:RoleID" json:"role,omitempty"`
	ProfessionalProfile *ProfessionalProfile `gorm:"foreignKey:UserID" json:"professional_profile,omitempty"`
	PatientProfile      *PatientProfile      `gorm:"foreignKey:UserID" json:"patient_profile,omitempty"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) IsAdmin() bool {
	return u.RoleID == RoleIDAdmin
}

func (u *User) IsProfessional() bool {
	return u.RoleID == RoleIDProfessional
}

func (u *User) IsPatient() bool {
	return u.RoleID == RoleIDPatient
}

// UserFilter narrows user listings. Zero values are ignored.
type UserFilter struct {
	RoleID int
	Name   string
	Limit  int
	Offset int
}
