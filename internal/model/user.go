package model

import "time"

// User represents an account in the system: the admin plus the
// cabinet makers and installers jobs are assigned to.
type User struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	FirstName string    `json:"firstName" gorm:"size:255;not null"`
	LastName  string    `json:"lastName" gorm:"size:255;not null"`
	Email     string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	Username  string    `json:"username" gorm:"uniqueIndex;size:255;not null"`
	Cell      string    `json:"cell" gorm:"size:50;not null"`
	Office    string    `json:"office" gorm:"size:255;not null"`
	Role      Role      `json:"role" gorm:"size:50;not null"`
	Password  string    `json:"-" gorm:"size:255;not null"` // bcrypt hash, never exposed in JSON
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FullName returns the display name used when flattening user
// references into job responses.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}
