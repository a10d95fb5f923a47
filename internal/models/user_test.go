package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestUserUpdateApplyMergesOnlySetFields(t *testing.T) {
	user := User{
		ID:          uuid.New(),
		Email:       "ann@x.com",
		Name:        "Ann",
		Preferences: DefaultPreferences(),
	}

	lang := "fr"
	merged := UserUpdate{Language: &lang}.Apply(user)
	require.Equal(t, "fr", merged.Preferences.Language)
	require.Equal(t, "Ann", merged.Name)
	require.True(t, merged.Preferences.Notifications)

	// original untouched
	require.Equal(t, "en", user.Preferences.Language)

	name := "Ann B."
	off := false
	merged = UserUpdate{Name: &name, Notifications: &off}.Apply(merged)
	require.Equal(t, "Ann B.", merged.Name)
	require.False(t, merged.Preferences.Notifications)
	require.Equal(t, "fr", merged.Preferences.Language)
}

func TestParseMediaType(t *testing.T) {
	mt, err := ParseMediaType("movie")
	require.NoError(t, err)
	require.Equal(t, MediaTypeMovie, mt)

	mt, err = ParseMediaType("tv")
	require.NoError(t, err)
	require.Equal(t, MediaTypeTV, mt)

	_, err = ParseMediaType("book")
	require.Error(t, err)
}
