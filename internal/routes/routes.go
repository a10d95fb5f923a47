package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"moviedeck/internal/config"
	"moviedeck/internal/handlers"
	"moviedeck/internal/middleware"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	authHandler *handlers.AuthHandler,
	watchlistHandler *handlers.WatchlistHandler,
	catalogHandler *handlers.CatalogHandler,
	preferenceHandler *handlers.PreferenceHandler,
	healthHandler *handlers.HealthHandler,
) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", healthHandler.Check)

	// Theme read is public so the client can style itself before login
	api.Get("/preferences/theme", preferenceHandler.GetTheme)
	api.Put("/preferences/theme", middleware.JWTProtected(cfg), preferenceHandler.SetTheme)

	// Auth — public, with a stricter limit: 10 req/min per IP
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)

	// Protected account routes
	api.Post("/auth/logout", middleware.JWTProtected(cfg), authHandler.Logout)
	api.Get("/auth/me", middleware.JWTProtected(cfg), authHandler.Me)
	api.Put("/auth/me", middleware.JWTProtected(cfg), authHandler.UpdateMe)
	api.Delete("/auth/data", middleware.JWTProtected(cfg), authHandler.WipeData)

	// Watchlist (protected)
	watchlist := api.Group("/watchlist", middleware.JWTProtected(cfg))
	watchlist.Get("/", watchlistHandler.List)
	watchlist.Post("/toggle", watchlistHandler.Toggle)
	watchlist.Get("/contains/:type/:id", watchlistHandler.Contains)
	watchlist.Delete("/entries/:type/:id", watchlistHandler.Remove)
	watchlist.Delete("/", watchlistHandler.Clear)

	// Catalog proxy (public)
	catalog := api.Group("/catalog")
	catalog.Get("/movies/:category", catalogHandler.MovieCategory)
	catalog.Get("/tv/:category", catalogHandler.TVCategory)
	catalog.Get("/movie/:id", catalogHandler.MovieDetail)
	catalog.Get("/tvshow/:id", catalogHandler.TVDetail)
	catalog.Get("/search", catalogHandler.Search)
	catalog.Get("/discover", catalogHandler.Discover)
}
