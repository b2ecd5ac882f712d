package container

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/biyeghor/biyeghor-backend/internal/config"
	"github.com/biyeghor/biyeghor-backend/internal/delivery/http"
	"github.com/biyeghor/biyeghor-backend/internal/delivery/http/handler"
	"github.com/biyeghor/biyeghor-backend/internal/delivery/http/middleware"
	"github.com/biyeghor/biyeghor-backend/internal/infrastructure/database"
	"github.com/biyeghor/biyeghor-backend/internal/infrastructure/server"
	"github.com/biyeghor/biyeghor-backend/internal/repository"
	"github.com/biyeghor/biyeghor-backend/internal/repository/memory"
	"github.com/biyeghor/biyeghor-backend/internal/repository/postgres"
	redisrepo "github.com/biyeghor/biyeghor-backend/internal/repository/redis"
	"github.com/biyeghor/biyeghor-backend/internal/usecase/connection"
	"github.com/biyeghor/biyeghor-backend/internal/usecase/credit"
	"github.com/biyeghor/biyeghor-backend/internal/usecase/profileview"
	"github.com/biyeghor/biyeghor-backend/internal/usecase/unlock"
)

// Container holds all application dependencies
type Container struct {
	Config *config.Config
	Log    *logrus.Logger
	DB     *sqlx.DB
	Redis  *redis.Client
	Server *server.Server
}

// NewContainer creates a new dependency injection container
func NewContainer(cfg *config.Config) (*Container, error) {
	log := newLogger(cfg.Logging.Level)

	var (
		db    *sqlx.DB
		store repository.Store
		err   error
	)
	switch cfg.Database.Driver {
	case "memory":
		log.Warn("using in-memory storage, data will not survive restarts")
		store = memory.NewStore()
	default:
		db, err = database.NewPostgresDB(&cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		if cfg.Database.Migrate {
			if err := database.Migrate(db, "migrations"); err != nil {
				return nil, err
			}
		}
		store = postgres.NewStore(db)
	}

	var redisClient *redis.Client
	var unlockCache *redisrepo.UnlockCache
	if cfg.Redis.Enabled {
		redisClient, err = database.NewRedisClient(&cfg.Redis)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize redis: %w", err)
		}
		unlockCache = redisrepo.NewUnlockCache(redisClient, cfg.Policy.UnlockCacheTTL)
	}

	// Initialize use cases
	ledgerUseCase := credit.NewLedgerUseCase(store)

	connectionUseCase := connection.NewConnectionUseCase(store, ledgerUseCase, connection.Policy{
		MinBalanceToSend: cfg.Policy.InterestMinBalance,
		InterestFee:      cfg.Policy.InterestFee,
	})

	unlockUseCase := unlock.NewUnlockUseCase(store, ledgerUseCase, unlock.Policy{
		UnitCost:                cfg.Policy.UnlockCost,
		RequireAcceptedInterest: cfg.Policy.UnlockRequireAccepted,
	})

	profileViewUseCase := profileview.NewProfileViewUseCase(store, unlockCache, nil)

	// Initialize handlers
	profileHandler := handler.NewProfileHandler(profileViewUseCase, unlockUseCase)
	interestHandler := handler.NewInterestHandler(connectionUseCase)
	walletHandler := handler.NewWalletHandler(ledgerUseCase)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT.AccessSecret)

	// Initialize router
	router := http.NewRouter(
		profileHandler,
		interestHandler,
		walletHandler,
		authMiddleware,
		log,
	)

	// Initialize server
	srv := server.NewServer(&cfg.Server, router.Setup(), log)

	return &Container{
		Config: cfg,
		Log:    log,
		DB:     db,
		Redis:  redisClient,
		Server: srv,
	}, nil
}

func newLogger(level string) *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})
	if parsed, err := logrus.ParseLevel(level); err == nil {
		log.SetLevel(parsed)
	}
	return log
}

// Close closes all connections
func (c *Container) Close() error {
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			c.Log.WithError(err).Error("failed to close redis")
		}
	}

	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			return fmt.Errorf("failed to close database: %w", err)
		}
	}

	return nil
}
