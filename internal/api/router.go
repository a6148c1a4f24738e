package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/taskify/taskify-api/docs"
	"github.com/taskify/taskify-api/internal/api/handler"
	"github.com/taskify/taskify-api/internal/api/middleware"
	"github.com/taskify/taskify-api/internal/core/domain"
	"github.com/taskify/taskify-api/internal/core/security"
	"github.com/taskify/taskify-api/internal/core/service"
	"github.com/taskify/taskify-api/internal/infrastructure/config"
	mongodb "github.com/taskify/taskify-api/internal/infrastructure/db/mongo"
	redisdb "github.com/taskify/taskify-api/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// rdb may be nil; the login throttle then degrades to allowing every attempt.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("taskify"))

	// --- Repositories ---
	userRepo := mongodb.NewUserRepository(db)
	roleRepo := mongodb.NewRoleRepository(db)
	permRepo := mongodb.NewPermissionRepository(db)
	taskRepo := mongodb.NewTaskRepository(db)
	tagRepo := mongodb.NewTagRepository(db)

	// --- Core services ---
	hasher := security.NewHasher(security.HashParams{
		Time:        cfg.Argon2.Time,
		Memory:      cfg.Argon2.Memory,
		Parallelism: cfg.Argon2.Parallelism,
	})
	tokens := security.NewTokenService(cfg.JWT.Secret, cfg.JWT.TTL())
	throttle := redisdb.NewLoginThrottle(rdb, cfg.Login.MaxAttempts, cfg.Login.LockoutWindow())

	authService := service.NewAuthService(userRepo, hasher, tokens, throttle, log)
	userService := service.NewUserService(userRepo, roleRepo, hasher, log)
	roleService := service.NewRoleService(roleRepo, permRepo, userRepo, log)
	permService := service.NewPermissionService(permRepo, log)
	taskService := service.NewTaskService(taskRepo, tagRepo, log)
	tagService := service.NewTagService(tagRepo, taskRepo, log)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService, roleService)
	roleHandler := handler.NewRoleHandler(roleService)
	permHandler := handler.NewPermissionHandler(permService)
	taskHandler := handler.NewTaskHandler(taskService)
	tagHandler := handler.NewTagHandler(tagService)

	authMW := middleware.Auth(authService, roleRepo)

	// --- Auth routes ---
	e.POST("/auth/login", authHandler.Login)
	e.GET("/auth/me", authHandler.Me, authMW)

	// --- Administration ---
	users := e.Group("/v1/users", authMW, middleware.RequirePermission(domain.PermManageUsers))
	users.POST("", userHandler.Create)
	users.GET("", userHandler.List)
	users.GET("/:id", userHandler.Get)
	users.POST("/:id/deactivate", userHandler.Deactivate)
	users.POST("/:id/activate", userHandler.Activate)

	roles := e.Group("/v1/roles", authMW, middleware.RequirePermission(domain.PermManageRoles))
	roles.POST("", roleHandler.Create)
	roles.GET("", roleHandler.List)
	roles.GET("/:id", roleHandler.Get)
	roles.PUT("/:id/permissions", roleHandler.AssignPermissions)
	roles.PATCH("/:id/permissions", roleHandler.UpdatePermissions)

	perms := e.Group("/v1/permissions", authMW, middleware.RequirePermission(domain.PermManageRoles))
	perms.POST("", permHandler.Create)
	perms.GET("", permHandler.List)

	// --- Tasks and tags ---
	tasks := e.Group("/v1/tasks", authMW)
	tasks.POST("", taskHandler.Create, middleware.RequirePermission(domain.PermCreateTask))
	tasks.GET("", taskHandler.List, middleware.RequirePermission(domain.PermViewTask))
	tasks.GET("/:id", taskHandler.Get, middleware.RequirePermission(domain.PermViewTask))
	tasks.PATCH("/:id", taskHandler.Update, middleware.RequirePermission(domain.PermUpdateTask))
	tasks.DELETE("/:id", taskHandler.Delete, middleware.RequirePermission(domain.PermDeleteTask))

	tags := e.Group("/v1/tags", authMW)
	tags.POST("", tagHandler.Create, middleware.RequirePermission(domain.PermManageTags))
	tags.GET("", tagHandler.List, middleware.RequirePermission(domain.PermViewTask))
	tags.GET("/:name/tasks", tagHandler.Tasks, middleware.RequirePermission(domain.PermViewTask))

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
