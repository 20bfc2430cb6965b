package routes

import (
	"net/http"

	"github.com/midwaife/backend/internal/app"
	"github.com/midwaife/backend/internal/handler"
	"github.com/midwaife/backend/internal/middleware"
)

func SetupRoutes(app *app.App) http.Handler {
	// Handlers
	health := handler.NewHealthHandler(app.DB)
	meals := handler.NewMealHandler(app.MealService)
	milestones := handler.NewMilestoneHandler(app.MilestoneService)
	users := handler.NewUserHandler(app.UserService)
	dailyLogs := handler.NewDailyLogHandler(app.DailyLogService)

	mux := http.NewServeMux()

	// ============================================================================
	// PUBLIC ROUTES
	// ============================================================================

	mux.HandleFunc("GET /healthz", health.Health)

	// ============================================================================
	// FOOD CATALOG
	// ============================================================================

	mux.HandleFunc("GET /api/meals/foods", meals.Foods)
	mux.HandleFunc("GET /api/meals/foods/{id}", meals.Food)
	mux.HandleFunc("POST /api/meals/foods", meals.CreateFood)

	// ============================================================================
	// MEALS
	// ============================================================================

	mux.HandleFunc("GET /api/meals/week", meals.Week)
	mux.HandleFunc("GET /api/meals/range", meals.Range)
	mux.HandleFunc("GET /api/meals/export", meals.Export)
	mux.HandleFunc("POST /api/meals/upsert", meals.Upsert)
	mux.HandleFunc("POST /api/meals/add-item", meals.AddItem)
	mux.HandleFunc("DELETE /api/meals/item", meals.RemoveItem)
	mux.HandleFunc("DELETE /api/meals/{meal_id}", meals.Delete)

	// Milestones
	mux.HandleFunc("GET /api/meals/milestones", milestones.List)
	mux.HandleFunc("GET /api/meals/milestones/{week}", milestones.ByWeek)

	// ============================================================================
	// USERS & DAILY LOGS
	// ============================================================================

	mux.HandleFunc("POST /api/users", users.Create)
	mux.HandleFunc("GET /api/users/{id}", users.Get)

	mux.HandleFunc("GET /api/daily-logs/{user_id}", dailyLogs.List)
	mux.HandleFunc("GET /api/daily-logs/{user_id}/{date}", dailyLogs.Get)
	mux.HandleFunc("PUT /api/daily-logs", dailyLogs.Upsert)
	mux.HandleFunc("DELETE /api/daily-logs/{user_id}/{date}", dailyLogs.Delete)

	// ============================================================================
	// FALLBACK
	// ============================================================================

	mux.HandleFunc("/{path...}", handler.NotFound)

	// Global middleware - executed in order (top to bottom)
	limiter := middleware.NewRateLimiter(app.Cfg.WriteRateLimit, app.Cfg.WriteRateWindow)
	limiter.TrustProxy = app.Cfg.TrustProxyHeaders
	return middleware.Chain(
		mux,
		middleware.RequestID,
		middleware.RequestLogging,
		middleware.Recover(app.Cfg.SentryDSN != ""),
		middleware.BearerAuth(app.AuthService), // Must run before the limiter so writes are keyed by user
		middleware.RateLimitWrites(limiter),
	)
}
