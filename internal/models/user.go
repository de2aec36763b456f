package models

import (
	"strings"
	"time"

	"codebliss/internal/apperror"
	"codebliss/pkg/utils"

	"gorm.io/gorm"
)

type User struct {
	ID        string    `gorm:"primaryKey;size:36" json:"_id"`
	Name      string    `gorm:"not null;size:32" json:"name"`
	Username  string    `gorm:"unique;not null;size:32" json:"username"`
	Email     string    `gorm:"unique;not null;size:120" json:"email"`
	Password  string    `gorm:"not null;size:255" json:"-"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Projects []Project `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`

	// set by SetPassword, consumed by BeforeSave
	passwordChanged bool
}

// SetPassword stages a plaintext password. It is replaced by its hash on
// the next save and never reaches the database in clear.
func (u *User) SetPassword(plain string) {
	u.Password = plain
	u.passwordChanged = true
}

// VerifyPassword checks plain against the stored hash.
func (u *User) VerifyPassword(plain string) bool {
	return utils.CheckPasswordHash(plain, u.Password)
}

// Normalize applies the storage form of the identity fields.
func (u *User) Normalize() {
	u.Name = strings.TrimSpace(u.Name)
	u.Username = strings.ToLower(strings.TrimSpace(u.Username))
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = utils.NewID()
	}
	return nil
}

func (u *User) BeforeSave(tx *gorm.DB) error {
	u.Normalize()

	if !u.passwordChanged {
		return nil
	}
	hash, err := utils.HashPassword(u.Password)
	if err != nil {
		return apperror.Internal(err)
	}
	u.Password = hash
	u.passwordChanged = false
	return nil
}

// Profile is the public view of a user; the password hash never leaves the store.
type Profile struct {
	ID       string `json:"_id"`
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

func (u *User) Profile() Profile {
	return Profile{
		ID:       u.ID,
		Name:     u.Name,
		Username: u.Username,
		Email:    u.Email,
	}
}
