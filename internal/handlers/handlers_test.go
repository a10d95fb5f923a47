package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"moviedeck/internal/config"
	"moviedeck/internal/dto"
	"moviedeck/internal/handlers"
	"moviedeck/internal/routes"
	"moviedeck/internal/services"
	"moviedeck/internal/storage"
)

func testApp(t *testing.T) *fiber.App {
	t.Helper()

	catalogSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"page":1,"results":[{"id":550,"title":"Fight Club"}],"total_pages":1,"total_results":1}`))
	}))
	t.Cleanup(catalogSrv.Close)

	cfg := &config.Config{
		JWTSecret:         "test-secret",
		JWTExpiry:         time.Hour,
		SeedName:          "Demo User",
		SeedEmail:         "demo@moviedeck.app",
		SeedPassword:      "demo123",
		ContentAPIBaseURL: catalogSrv.URL,
		ContentAPIKey:     "test-key",
		ContentAPITimeout: 5 * time.Second,
		CORSOrigins:       "*",
	}

	store := storage.NewMemoryStore()
	sessionService := services.NewSessionService(store, cfg)
	sessionService.Initialize(context.Background())
	watchlistService := services.NewWatchlistService(store)
	catalogClient := services.NewCatalogClient(cfg)

	app := fiber.New()
	routes.Setup(app, cfg,
		handlers.NewAuthHandler(sessionService),
		handlers.NewWatchlistHandler(watchlistService),
		handlers.NewCatalogHandler(catalogClient),
		handlers.NewPreferenceHandler(store),
		handlers.NewHealthHandler(func() error { return nil }),
	)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (*http.Response, []byte) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, 5000)
	require.NoError(t, err)
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, data
}

func register(t *testing.T, app *fiber.App, email string) dto.AuthResponse {
	t.Helper()
	resp, body := doJSON(t, app, http.MethodPost, "/api/auth/register", "", dto.RegisterRequest{
		Name:            "Ann",
		Email:           email,
		Password:        "secret1",
		ConfirmPassword: "secret1",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, string(body))
	var auth dto.AuthResponse
	require.NoError(t, json.Unmarshal(body, &auth))
	require.NotEmpty(t, auth.AccessToken)
	return auth
}

func TestHealth(t *testing.T) {
	app := testApp(t)
	resp, body := doJSON(t, app, http.MethodGet, "/api/health", "", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var health dto.HealthResponse
	require.NoError(t, json.Unmarshal(body, &health))
	require.Equal(t, "ok", health.Status)
	require.Equal(t, "ok", health.DB)
}

func TestRegisterLoginFlow(t *testing.T) {
	app := testApp(t)
	auth := register(t, app, "ann@x.com")
	require.Equal(t, "ann@x.com", auth.User.Email)

	resp, _ := doJSON(t, app, http.MethodPost, "/api/auth/logout", auth.AccessToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, body := doJSON(t, app, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{
		Email: "ANN@x.com", Password: "secret1",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var again dto.AuthResponse
	require.NoError(t, json.Unmarshal(body, &again))
	require.Equal(t, auth.User.ID, again.User.ID)
}

func TestRegisterValidationAndConflict(t *testing.T) {
	app := testApp(t)

	resp, _ := doJSON(t, app, http.MethodPost, "/api/auth/register", "", dto.RegisterRequest{
		Name: "Ann", Email: "ann@x.com", Password: "secret1", ConfirmPassword: "other",
	})
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	register(t, app, "ann@x.com")
	resp, _ = doJSON(t, app, http.MethodPost, "/api/auth/register", "", dto.RegisterRequest{
		Name: "Ann", Email: "ANN@X.COM", Password: "secret1", ConfirmPassword: "secret1",
	})
	require.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

func TestLoginFailures(t *testing.T) {
	app := testApp(t)
	register(t, app, "ann@x.com")

	resp, _ := doJSON(t, app, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{
		Email: "nobody@x.com", Password: "secret1",
	})
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{
		Email: "ann@x.com", Password: "wrong",
	})
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestProfileUpdate(t *testing.T) {
	app := testApp(t)
	auth := register(t, app, "ann@x.com")

	name := "Ann B."
	dark := true
	resp, body := doJSON(t, app, http.MethodPut, "/api/auth/me", auth.AccessToken, dto.UpdateProfileRequest{
		Name: &name, DarkMode: &dark,
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var user dto.UserResponse
	require.NoError(t, json.Unmarshal(body, &user))
	require.Equal(t, "Ann B.", user.Name)
	require.True(t, user.Preferences.DarkMode)

	resp, body = doJSON(t, app, http.MethodGet, "/api/auth/me", auth.AccessToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(body, &user))
	require.Equal(t, "Ann B.", user.Name)
}

func TestWatchlistRequiresToken(t *testing.T) {
	app := testApp(t)
	resp, _ := doJSON(t, app, http.MethodGet, "/api/watchlist", "", nil)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestWatchlistToggleAndList(t *testing.T) {
	app := testApp(t)
	auth := register(t, app, "ann@x.com")

	resp, body := doJSON(t, app, http.MethodPost, "/api/watchlist/toggle", auth.AccessToken, dto.ToggleWatchlistRequest{
		MediaType: "movie", ID: 42, Title: "X",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode, string(body))
	var toggle dto.ToggleWatchlistResponse
	require.NoError(t, json.Unmarshal(body, &toggle))
	require.True(t, toggle.InWatchlist)

	resp, body = doJSON(t, app, http.MethodGet, "/api/watchlist/contains/movie/42", auth.AccessToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var contains dto.ContainsResponse
	require.NoError(t, json.Unmarshal(body, &contains))
	require.True(t, contains.InWatchlist)

	// same id on the tv side stays independent
	resp, body = doJSON(t, app, http.MethodPost, "/api/watchlist/toggle", auth.AccessToken, dto.ToggleWatchlistRequest{
		MediaType: "tv", ID: 42, Name: "X Show",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, body = doJSON(t, app, http.MethodGet, "/api/watchlist?scope=all", auth.AccessToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var list dto.WatchlistResponse
	require.NoError(t, json.Unmarshal(body, &list))
	require.Equal(t, 2, list.Count)

	resp, _ = doJSON(t, app, http.MethodDelete, "/api/watchlist/entries/movie/42", auth.AccessToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, body = doJSON(t, app, http.MethodGet, "/api/watchlist?scope=all", auth.AccessToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(body, &list))
	require.Equal(t, 1, list.Count)

	resp, _ = doJSON(t, app, http.MethodDelete, "/api/watchlist?scope=all", auth.AccessToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestWatchlistBadMediaType(t *testing.T) {
	app := testApp(t)
	auth := register(t, app, "ann@x.com")

	resp, _ := doJSON(t, app, http.MethodPost, "/api/watchlist/toggle", auth.AccessToken, dto.ToggleWatchlistRequest{
		MediaType: "book", ID: 1,
	})
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestCatalogProxy(t *testing.T) {
	app := testApp(t)

	resp, body := doJSON(t, app, http.MethodGet, "/api/catalog/movies/popular", "", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Contains(t, string(body), "Fight Club")

	resp, _ = doJSON(t, app, http.MethodGet, "/api/catalog/movies/bogus", "", nil)
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodGet, "/api/catalog/search", "", nil)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestThemePreference(t *testing.T) {
	app := testApp(t)

	resp, body := doJSON(t, app, http.MethodGet, "/api/preferences/theme", "", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var theme dto.ThemeResponse
	require.NoError(t, json.Unmarshal(body, &theme))
	require.Equal(t, "auto", theme.Theme)

	auth := register(t, app, "ann@x.com")
	resp, _ = doJSON(t, app, http.MethodPut, "/api/preferences/theme", auth.AccessToken, dto.ThemeRequest{Theme: "dark"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodPut, "/api/preferences/theme", auth.AccessToken, dto.ThemeRequest{Theme: "neon"})
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, body = doJSON(t, app, http.MethodGet, "/api/preferences/theme", "", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(body, &theme))
	require.Equal(t, "dark", theme.Theme)
}
