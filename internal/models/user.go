package models

import (
	"time"

	"github.com/google/uuid"
)

// Preferences holds the per-user settings carried inside the User record.
type Preferences struct {
	Notifications bool   `json:"notifications"`
	DarkMode      bool   `json:"darkMode"`
	Language      string `json:"language"`
}

func DefaultPreferences() Preferences {
	return Preferences{
		Notifications: true,
		DarkMode:      false,
		Language:      "en",
	}
}

// User is the account record stored in the registry. The session holds its
// own copy of the current user, so updates must be written to both places.
type User struct {
	ID          uuid.UUID   `json:"id"`
	Email       string      `json:"email"`
	Name        string      `json:"name"`
	CreatedAt   time.Time   `json:"createdAt"`
	Preferences Preferences `json:"preferences"`
}

// UserUpdate is a partial update merged into an existing User. Nil fields
// are left untouched.
type UserUpdate struct {
	Name          *string `json:"name,omitempty"`
	Notifications *bool   `json:"notifications,omitempty"`
	DarkMode      *bool   `json:"darkMode,omitempty"`
	Language      *string `json:"language,omitempty"`
}

// Apply merges the update into a copy of the user and returns it.
func (u UserUpdate) Apply(user User) User {
	if u.Name != nil {
		user.Name = *u.Name
	}
	if u.Notifications != nil {
		user.Preferences.Notifications = *u.Notifications
	}
	if u.DarkMode != nil {
		user.Preferences.DarkMode = *u.DarkMode
	}
	if u.Language != nil {
		user.Preferences.Language = *u.Language
	}
	return user
}
