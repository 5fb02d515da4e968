package app

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "callcenter/docs"
	"callcenter/internal/config"
	"callcenter/internal/handlers"
	"callcenter/internal/middleware"
	"callcenter/internal/pdf"
	"callcenter/internal/repositories"
	"callcenter/internal/routes"
	"callcenter/internal/services"
)

func OpenDB(cfg *config.Config) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.Database.DSN)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}
	return db, nil
}

// NewRouter wires repositories, services and handlers onto a gin engine.
func NewRouter(cfg *config.Config, db *sql.DB) (*gin.Engine, error) {
	// === Repos ===
	userRepo := repositories.NewUserRepository(db)
	taskRepo := repositories.NewTaskRepository(db)
	retailerRepo := repositories.NewRetailerRepository(db)
	callLogRepo := repositories.NewCallLogRepository(db)

	// === Services ===
	secret := []byte(cfg.Auth.JWTSecret)
	authService := services.NewAuthService(secret, cfg.Auth.AccessTTL, cfg.Auth.RefreshTTL)
	emailService := services.NewEmailService(
		cfg.Email.SMTPHost,
		cfg.Email.SMTPPort,
		cfg.Email.SMTPUser,
		cfg.Email.SMTPPassword,
		cfg.Email.FromEmail,
	)
	if emailService == nil {
		log.Printf("[app] smtp not configured, e-mail disabled")
	}

	var notifier services.Notifier
	tg, err := services.NewTelegramNotifier(cfg.Telegram.BotToken)
	if err != nil {
		return nil, err
	}
	if tg != nil {
		notifier = tg
	} else {
		log.Printf("[app] telegram token empty, notifications disabled")
	}

	pdfGen := pdf.NewReportGenerator(cfg.Files.RootDir, cfg.Files.FontPath)

	userService := services.NewUserService(userRepo, emailService, authService)
	taskService := services.NewTaskService(taskRepo, retailerRepo, callLogRepo, userRepo, notifier)
	retailerService := services.NewRetailerService(retailerRepo)
	reportService := services.NewReportService(taskRepo, callLogRepo, userRepo, pdfGen, emailService)

	// === Gin ===
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(corsMiddleware())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	routes.SetupRoutes(
		router,
		secret,
		handlers.NewAuthHandler(userService),
		handlers.NewUserHandler(userService),
		handlers.NewTaskHandler(taskService),
		handlers.NewRetailerHandler(retailerService),
		handlers.NewReportHandler(reportService),
	)
	return router, nil
}

// Run serves the API until SIGINT/SIGTERM.
func Run(cfg *config.Config) error {
	db, err := OpenDB(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("[app] close db: %v", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Database.MigrateOnStart {
		if err := repositories.Migrate(ctx, db); err != nil {
			return err
		}
		log.Printf("[app] schema up to date")
	}

	router, err := NewRouter(cfg, db)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		log.Printf("[app] listening on %s", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Printf("[app] shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization, X-Request-ID")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
