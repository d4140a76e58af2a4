package models

import "time"

// Profile holds the user's display details.
type Profile struct {
	Name    string `json:"name" gorm:"type:varchar(100)"`
	Address string `json:"address" gorm:"type:varchar(255)"`
	Phone   string `json:"phone" gorm:"type:varchar(50)"`
}

// User represents a registered shopper.
type User struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Username  string    `json:"username" gorm:"uniqueIndex;type:varchar(100)"`
	Email     string    `json:"email" gorm:"uniqueIndex;type:varchar(255)"`
	Password  string    `json:"-" gorm:"type:varchar(255)"` // bcrypt hash, never serialized
	Profile   Profile   `json:"profile" gorm:"embedded;embeddedPrefix:profile_"`
	CreatedAt time.Time `json:"createdAt"`
}

// PublicUser is the projection of a User that is safe to return to clients.
type PublicUser struct {
	ID       string  `json:"id"`
	Username string  `json:"username"`
	Email    string  `json:"email"`
	Profile  Profile `json:"profile"`
}

// Public returns the client-facing projection of u.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		Profile:  u.Profile,
	}
}
