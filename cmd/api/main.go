package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-supermarket-inventory/internal/apperror"
	"go-supermarket-inventory/internal/handler"
	"go-supermarket-inventory/internal/model"
	"go-supermarket-inventory/internal/repository"
	"go-supermarket-inventory/internal/service"
	"go-supermarket-inventory/pkg/config"
	"go-supermarket-inventory/pkg/database"
	"go-supermarket-inventory/pkg/jwt"
	applogger "go-supermarket-inventory/pkg/logger"
	"go-supermarket-inventory/pkg/telemetry"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"go.uber.org/zap"
)

func main() {
	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	zlog, err := applogger.New(cfg)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer zlog.Sync()

	ctx := context.Background()
	shutdownTracer, err := telemetry.Setup(ctx, cfg)
	if err != nil {
		zlog.Fatal("telemetry setup failed", zap.Error(err))
	}

	// 2. Setup Database
	db, err := database.Connect(cfg)
	if err != nil {
		zlog.Fatal("database connection failed", zap.Error(err))
	}
	sqlDB, err := db.DB()
	if err != nil {
		zlog.Fatal("database handle unavailable", zap.Error(err))
	}
	if err := db.AutoMigrate(&model.Role{}, &model.User{}, &model.Category{}, &model.Supplier{}, &model.Product{}); err != nil {
		zlog.Fatal("auto migrate failed", zap.Error(err))
	}

	// 3. Dependency Injection (Wiring Layers)
	productRepo := repository.NewProductRepo(db)
	categoryRepo := repository.NewCategoryRepo(db)
	supplierRepo := repository.NewSupplierRepo(db)
	userRepo := repository.NewUserRepo(db)
	roleRepo := repository.NewRoleRepo(db)

	seedRolesAndAdmin(ctx, zlog, cfg, roleRepo, userRepo)

	tokens := jwt.NewManager(cfg.JWTSecret, cfg.JWTExpiresIn)

	handlers := handler.Handlers{
		Auth:     handler.NewAuthHandler(service.NewAuthService(userRepo, roleRepo, tokens, time.Now)),
		User:     handler.NewUserHandler(service.NewUserService(userRepo, roleRepo)),
		Product:  handler.NewProductHandler(service.NewProductService(productRepo, categoryRepo, supplierRepo, time.Now)),
		Category: handler.NewCategoryHandler(service.NewCategoryService(categoryRepo, productRepo)),
		Supplier: handler.NewSupplierHandler(service.NewSupplierService(supplierRepo, productRepo)),
		Health:   handler.NewHealthHandler(cfg.Env, sqlDB.PingContext),

		UploadsDir: cfg.UploadsDir,
	}
	if err := os.MkdirAll(cfg.UploadsDir, 0o755); err != nil {
		zlog.Fatal("cannot create uploads directory", zap.Error(err), zap.String("dir", cfg.UploadsDir))
	}

	// 4. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName:      "Supermarket Inventory API v" + config.ServiceVersion,
		ErrorHandler: handler.ErrorHandler(zlog, cfg.IsDevelopment()),
		BodyLimit:    10 * 1024 * 1024,
	})

	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowCredentials: true,
	}))

	// 5. Routes
	handler.RegisterRoutes(app, handlers, tokens)

	// 6. Graceful Shutdown
	go func() {
		zlog.Info("server starting", zap.String("port", cfg.Port), zap.String("env", cfg.Env))
		if err := app.Listen(":" + cfg.Port); err != nil {
			zlog.Panic("listen failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zlog.Info("shutting down server")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		zlog.Error("server forced to shutdown", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := shutdownTracer(shutdownCtx); err != nil {
		zlog.Warn("tracer shutdown failed", zap.Error(err))
	}
	if err := sqlDB.Close(); err != nil {
		zlog.Warn("database close failed", zap.Error(err))
	}

	zlog.Info("server exited")
}

// seedRolesAndAdmin creates the default roles and an administrator account if
// they don't exist yet.
func seedRolesAndAdmin(ctx context.Context, zlog *zap.Logger, cfg *config.Config, roles repository.RoleRepository, users repository.UserRepository) {
	if err := roles.SeedDefaults(ctx); err != nil {
		zlog.Warn("failed to seed roles", zap.Error(err))
		return
	}

	_, err := users.FindByUsername(ctx, "admin")
	if err == nil {
		return
	}
	if !apperror.Is(err, apperror.KindNotFound) {
		zlog.Warn("failed to look up admin user", zap.Error(err))
		return
	}

	adminRole, err := roles.FindByName(ctx, model.RoleAdmin)
	if err != nil {
		zlog.Warn("administrator role missing", zap.Error(err))
		return
	}

	admin := &model.User{
		Username:  "admin",
		Email:     "admin@supermarket.local",
		FirstName: "Administrador",
		LastName:  "Sistema",
		RoleID:    adminRole.ID,
		IsActive:  true,
	}
	admin.CreatedBy = "system"
	admin.UpdatedBy = "system"

	if err := admin.SetPassword(cfg.SeedAdminPassword); err != nil {
		zlog.Warn("failed to hash admin password", zap.Error(err))
		return
	}
	if err := users.Create(ctx, admin); err != nil {
		zlog.Warn("failed to create admin user", zap.Error(err))
		return
	}
	zlog.Info("admin user created", zap.String("username", admin.Username))
}
