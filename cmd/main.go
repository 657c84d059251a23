package main

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/lshigami/smartcampus/config"
	"github.com/lshigami/smartcampus/database"
	_ "github.com/lshigami/smartcampus/docs" // Swagger docs
	adminctrl "github.com/lshigami/smartcampus/internal/controller/admin"
	userctrl "github.com/lshigami/smartcampus/internal/controller/user"
	"github.com/lshigami/smartcampus/internal/logger"
	"github.com/lshigami/smartcampus/internal/middleware"
	"github.com/lshigami/smartcampus/internal/repository"
	"github.com/lshigami/smartcampus/internal/service"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// @title Smart Campus CBT API
// @version 1.0
// @description Computer-based testing for the smart campus portal: start timed exam attempts with AI-generated questions, submit answers for one-time grading, and review results.
// @host localhost:8080
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the JWT.
func main() {
	logger.Init("info", "console")
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "smartcampus",
		Short:        "Smart campus CBT exam service",
		SilenceUsage: true,
	}

	serve := serveCmd()
	root.AddCommand(serve, migrateCmd(), exportCmd(), seedCmd(), tokenCmd())

	// "serve" is the default when no subcommand is given.
	root.RunE = serve.RunE
	root.Flags().AddFlagSet(serve.Flags())
	return root
}

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		RunE:  runServe,
	}
	f := cmd.Flags()
	f.String("port", "", "HTTP listen port (overrides SERVER_PORT)")
	f.String("db-driver", "", "Database driver: postgres or sqlite (overrides DATABASE_DRIVER)")
	return cmd
}

// loadConfig binds the command's flags onto the matching env keys and
// returns the resolved config with logging reconfigured.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	bindings := map[string]string{
		"port":      "SERVER_PORT",
		"db-driver": "DATABASE_DRIVER",
		"db-path":   "DATABASE_PATH",
		"log-level": "LOG_LEVEL",
	}
	for flag, key := range bindings {
		if fl := cmd.Flags().Lookup(flag); fl != nil && fl.Changed {
			_ = viper.BindPFlag(key, fl)
		}
	}
	cfg, err := config.NewConfig()
	if err != nil {
		return nil, err
	}
	logger.Init(cfg.Log.Level, cfg.Log.Format)
	return cfg, nil
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cfg.Auth.JWTSecret == "" {
		return errors.New("JWT_SECRET must be set to serve the API")
	}

	app := fx.New(
		fx.Supply(cfg),

		// Core Application Components
		fx.Provide(
			database.NewDatabase,
			NewGinEngine,
		),

		// Repositories Layer
		fx.Provide(
			repository.NewCourseRepository,
			repository.NewRegistrationRepository,
			repository.NewSettingRepository,
			repository.NewExamRepository,
			repository.NewExamAttemptRepository,
			repository.NewExamQuestionRepository,
		),

		// Services Layer
		fx.Provide(
			service.NewTextGenerator,
			service.NewQuestionSource,
			service.NewAcademicService,
			service.NewExamSessionService,
			service.NewResultsService,
			service.NewAdminAuditService,
		),

		// API Controllers Layer
		fx.Provide(
			userctrl.NewExamController,
			adminctrl.NewAuditController,
		),

		fx.Invoke(AutoMigrateDB),
		fx.Invoke(CloseTextGeneratorOnStop),
		fx.Invoke(RegisterRoutesAndStartServer),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Error().Err(err).Msg("Failed to start application")
		return err
	}

	<-app.Done()
	log.Info().Msg("Application shutting down gracefully...")
	stopCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return app.Stop(stopCtx)
}

func NewGinEngine(cfg *config.Config) *gin.Engine {
	if cfg.Server.GinMode != "" {
		gin.SetMode(cfg.Server.GinMode)
	}

	r := gin.New()
	r.Use(middleware.RequestLogger())
	r.Use(gin.Recovery())

	origins := cfg.Server.AllowedOrigins
	corsCfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.HeaderRequestID},
		ExposeHeaders: []string{"Content-Length", "Content-Disposition", middleware.HeaderRequestID},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = origins
		corsCfg.AllowCredentials = true
	}
	r.Use(cors.New(corsCfg))

	// URL: http://localhost:PORT/swagger/index.html
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return r
}

func AutoMigrateDB(db *gorm.DB) error {
	return database.Migrate(db)
}

// CloseTextGeneratorOnStop releases provider clients that hold connections.
func CloseTextGeneratorOnStop(lc fx.Lifecycle, gen service.TextGenerator) {
	closer, ok := gen.(io.Closer)
	if !ok {
		return
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			log.Info().Str("provider", gen.Name()).Msg("Closing AI client")
			return closer.Close()
		},
	})
}

// RegisterRoutesAndStartServer configures API routes and manages server lifecycle.
func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	examCtrl *userctrl.ExamController,
	auditCtrl *adminctrl.AuditController,
) {
	api := router.Group("/api/v1", middleware.RequireAuth(cfg.Auth.JWTSecret))
	examCtrl.RegisterRoutes(api)

	adminAPI := api.Group("/admin", middleware.RequireAdmin())
	auditCtrl.RegisterRoutes(adminAPI)

	server := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("Smart campus CBT server starting on port %s", cfg.Server.Port)
			log.Info().Msgf("Swagger UI available at http://localhost:%s/swagger/index.html", cfg.Server.Port)
			go func() {
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal().Err(err).Msg("Server ListenAndServe failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("Server shutting down...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	})
}
