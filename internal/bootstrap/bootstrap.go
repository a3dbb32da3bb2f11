package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	appControllers "github.com/yigit/internhub/internal/app/controllers"
	"github.com/yigit/internhub/internal/app/forms"
	appMigrations "github.com/yigit/internhub/internal/app/migrations"
	appRepos "github.com/yigit/internhub/internal/app/repositories"
	appRoutes "github.com/yigit/internhub/internal/app/routes"
	appServices "github.com/yigit/internhub/internal/app/services"
	"github.com/yigit/internhub/internal/config"
	"github.com/yigit/internhub/internal/db"
	appMiddleware "github.com/yigit/internhub/internal/middleware"
	"github.com/yigit/internhub/internal/pkg/filestorage"
	"github.com/yigit/internhub/internal/pkg/logger"
	"github.com/yigit/internhub/internal/seed"
)

// multipart framing and text fields on top of the upload itself
const formOverheadBytes = 1 << 20

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos              *appRepos.Repositories
	AccountService     *appServices.AccountService
	OpportunityService *appServices.OpportunityService
	FileStorage        filestorage.FileStorage
	Controllers        appRoutes.Controllers
	Logger             zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.ParseLevel(cfg.Logging.Level)
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	lgr := logger.Configure(logger.Config{
		Level:   logLevel,
		Pretty:  prettyLog,
		Service: "internhub",
	})

	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection, runs migrations and
// seeds the default data.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool
	lgr.Info().Msg("Database connection successfully established.")

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	migrationsDir := cfg.Database.MigrationsDir
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		database.Close()
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	lgr.Info().Str("path", migrationsDir).Msg("Running database migrations...")
	if err := appMigrations.NewMigrator(dbPool, lgr).MigrateFromDirectory(ctx, migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		database.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	if err := seed.CreateDefaultData(ctx, appRepos.NewCareerRepository(dbPool), lgr); err != nil {
		// Log the error but don't fail startup
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return dbPool, nil
}

// NewFileStorage picks the storage backend named by the configuration.
func NewFileStorage(cfg *config.Config, lgr zerolog.Logger) (filestorage.FileStorage, error) {
	switch strings.ToLower(cfg.Storage.Driver) {
	case config.StorageCloudinary:
		lgr.Info().Str("folder", cfg.Storage.Folder).Msg("Using cloudinary file storage")
		storage, err := filestorage.NewCloudinaryStorage(cfg.Storage.CloudinaryURL, cfg.Storage.Folder)
		if err != nil {
			return nil, err
		}
		return storage, nil
	case config.StorageLocal:
		lgr.Info().Str("path", cfg.Storage.Path).Msg("Using local file storage")
		storage, err := filestorage.NewLocalStorage(cfg.Storage.Path, cfg.UploadsBaseURL())
		if err != nil {
			return nil, err
		}
		return storage, nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	files, err := NewFileStorage(cfg, lgr)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize file storage")
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}

	deps := &Dependencies{
		Repos:       appRepos.NewRepositories(dbPool),
		FileStorage: files,
		Logger:      lgr,
	}
	repos := deps.Repos
	maxUpload := cfg.MaxUploadBytes()

	forms.SetTimeZone(cfg.Location())
	lgr.Info().Str("timeZone", cfg.Location().String()).Msg("Form dates use configured time zone")

	deps.AccountService = appServices.NewAccountService(dbPool, repos.UserRepository, repos.StudentRepository, lgr)
	deps.OpportunityService = appServices.NewOpportunityService(repos.OpportunityRepository, lgr)

	deps.Controllers = appRoutes.Controllers{
		Auth:         appControllers.NewAuthController(repos.CareerRepository, deps.AccountService, files, maxUpload, lgr),
		Student:      appControllers.NewStudentController(repos.StudentRepository, files, maxUpload),
		Organization: appControllers.NewOrganizationController(repos.OrganizationRepository, files, maxUpload),
		Opportunity: appControllers.NewOpportunityController(
			repos.OrganizationRepository,
			repos.OpportunityRepository,
			deps.OpportunityService,
			maxUpload,
		),
		Enrollment: appControllers.NewEnrollmentController(repos.EnrollmentRepository, repos.DocumentRepository, files, maxUpload),
	}

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.Use(gin.Recovery(), appMiddleware.RequestLogger(lgr))
	router.MaxMultipartMemory = cfg.MaxUploadBytes()

	appRoutes.SetupRouter(router, deps.Controllers, cfg.MaxUploadBytes()+formOverheadBytes)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	return router
}
