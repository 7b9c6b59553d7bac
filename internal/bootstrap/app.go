package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Tejas-Atram/AI-Resume-Builder/internal/ai"
	googleauth "github.com/Tejas-Atram/AI-Resume-Builder/internal/auth"
	"github.com/Tejas-Atram/AI-Resume-Builder/internal/llm"
	"github.com/Tejas-Atram/AI-Resume-Builder/internal/llm/groq"
	"github.com/Tejas-Atram/AI-Resume-Builder/internal/resumes"
	"github.com/Tejas-Atram/AI-Resume-Builder/internal/shared/config"
	"github.com/Tejas-Atram/AI-Resume-Builder/internal/shared/server"
	"github.com/Tejas-Atram/AI-Resume-Builder/internal/shared/storage/db"
	"github.com/Tejas-Atram/AI-Resume-Builder/internal/shared/storage/object"
	localstore "github.com/Tejas-Atram/AI-Resume-Builder/internal/shared/storage/object/local"
	s3store "github.com/Tejas-Atram/AI-Resume-Builder/internal/shared/storage/object/s3"
	"github.com/Tejas-Atram/AI-Resume-Builder/internal/usage"
	"github.com/Tejas-Atram/AI-Resume-Builder/internal/users"
)

// App holds the wired application: services, handlers, and the router.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB
	Store  object.ObjectStore

	ResumesRepo resumes.Repo
	UsersRepo   users.Repo

	ResumesService *resumes.Service
	UsersService   *users.Service
	UsageService   *usage.Service
	AIService      *ai.Service

	ResumeHandler *resumes.Handler
	UserHandler   *users.Handler
	AIHandler     *ai.Handler
	GoogleAuth    *googleauth.GoogleService
}

// Build wires the full dependency graph from configuration.
func Build(cfg config.Config) (*App, error) {
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config: cfg,
		DB:     sqlDB,
		Store:  store,
	}
	buildServices(app)

	localFilesDir := ""
	if cfg.ObjectStoreType == "local" {
		localFilesDir = cfg.LocalStoreDir
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:        cfg,
		AIHandler:     app.AIHandler,
		ResumeHandler: app.ResumeHandler,
		UserHandler:   app.UserHandler,
		GoogleAuth:    app.GoogleAuth,
		LocalFilesDir: localFilesDir,
	})

	return app, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory repositories")
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		if strings.TrimSpace(cfg.S3Bucket) == "" {
			return nil, fmt.Errorf("OBJECT_STORE=s3 requires S3_BUCKET")
		}
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
	default:
		return localstore.New(cfg.LocalStoreDir, cfg.PublicBaseURL), nil
	}
}

func buildServices(app *App) {
	var resumesRepo resumes.Repo
	var usersRepo users.Repo
	var usageSvc *usage.Service

	if app.DB != nil {
		resumesRepo = &resumes.PGRepo{DB: app.DB}
		usersRepo = &users.PGRepo{DB: app.DB}
		usageSvc = usage.NewPostgresService(usage.NewPGStore(app.DB, app.Config.AIDailyLimit))
	} else {
		resumesRepo = resumes.NewMemoryRepo()
		usersRepo = users.NewMemoryRepo()
		usageSvc = usage.NewService(app.Config.AIDailyLimit)
	}

	llmClient := llm.Client(llm.PlaceholderClient{})
	if strings.TrimSpace(app.Config.GroqAPIKey) != "" {
		groqClient, err := groq.NewClient(app.Config.GroqAPIKey, app.Config.LLMModel)
		if err != nil {
			log.Printf("bootstrap: groq client init failed; AI routes disabled: %v", err)
		} else {
			llmClient = groqClient
		}
	} else {
		log.Printf("bootstrap: GROQ_API_KEY empty; AI routes return errors until configured")
	}

	resumeSvc := resumes.NewService(resumesRepo, app.Store)
	userSvc := users.NewService(usersRepo)
	aiSvc := ai.NewService(llmClient, resumeSvc, usageSvc, app.Store)
	googleAuthSvc := googleauth.NewGoogleService(
		app.Config.GoogleClientID,
		app.Config.GoogleClientSecret,
		app.Config.GoogleRedirectURL,
		app.Config.UIRedirectURL,
		userSvc,
	)

	app.ResumesRepo = resumesRepo
	app.UsersRepo = usersRepo
	app.ResumesService = resumeSvc
	app.UsersService = userSvc
	app.UsageService = usageSvc
	app.AIService = aiSvc
	app.ResumeHandler = resumes.NewHandler(resumeSvc)
	app.UserHandler = users.NewHandler(userSvc)
	app.AIHandler = ai.NewHandler(aiSvc)
	app.GoogleAuth = googleAuthSvc
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
