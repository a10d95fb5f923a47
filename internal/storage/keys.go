package storage

// Persisted key layout. The mobile client shipped with these exact keys, so
// they are part of the external contract and must not be renamed or scoped.
const (
	KeyAuthUser        = "auth_user"
	KeyRegisteredUsers = "registered_users"
	KeyMovieWatchlist  = "watchlist"
	KeyTVWatchlist     = "tvWatchlist"
	KeyThemePreference = "theme_preference"
)

// PasswordKey returns the credential key for a user id.
func PasswordKey(userID string) string {
	return "password_" + userID
}
