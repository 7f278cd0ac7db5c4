package app

import (
	"context"
	"database/sql"
	"fmt"

	"relief-dispatch/common/database"
	commonredis "relief-dispatch/common/redis"
	"relief-dispatch/internal/activity"
	"relief-dispatch/internal/config"
	"relief-dispatch/internal/dispatch"
	"relief-dispatch/internal/domain"
	"relief-dispatch/internal/draft"
	"relief-dispatch/internal/geo"
	"relief-dispatch/internal/repository"
	"relief-dispatch/internal/service"
	"relief-dispatch/internal/store"

	"go.uber.org/zap"
)

// KeyPrefix namespaces every key written to Redis.
const KeyPrefix = "relief:"

// App the wired bulk send stack.
type App struct {
	Catalog       *geo.Catalog
	Templates     repository.TemplatesRepository
	Beneficiaries repository.BeneficiaryLookup
	Requests      repository.RequestsRepository
	Submitter     draft.Submitter
	Service       service.BulkSendService

	db          *sql.DB
	redisClient *commonredis.Client
	logger      *zap.Logger
}

// New wires the stack from cfg. Postgres and Redis are used only when enabled;
// otherwise the bundled in-memory data serves every port.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	a := &App{logger: logger}

	catalog, err := geo.LoadDefault()
	if err != nil {
		return nil, err
	}
	a.Catalog = catalog

	templates, err := repository.NewSeededTemplatesRepo()
	if err != nil {
		return nil, err
	}
	a.Templates = templates

	if cfg.DBEnabled {
		db, err := database.NewPostgresDB(ctx, &cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		a.db = db
		a.Beneficiaries = repository.NewPostgresBeneficiariesRepo(db, logger)
		a.Requests = repository.NewPostgresRequestsRepo(db, logger)
		logger.Info("Using Postgres for beneficiaries and requests", zap.String("host", cfg.Database.Host))
	} else {
		beneficiaries, err := repository.NewSeededBeneficiariesRepo()
		if err != nil {
			return nil, err
		}
		a.Beneficiaries = beneficiaries
		a.Requests = repository.NewMemoryRequestsRepo()
	}

	var submitter draft.Submitter = draft.NewSimulatedSubmitter(cfg.BulkSend.SubmitDelay)
	if cfg.RedisEnabled {
		client, err := commonredis.Connect(ctx, &cfg.Redis)
		if err != nil {
			logger.Warn("Redis enabled but unreachable, beneficiary counts not cached", zap.Error(err))
		} else {
			a.redisClient = client
			a.Beneficiaries = NewCountCache(client, a.Beneficiaries, cfg, logger)
			if cfg.BulkSend.SubmitStream != "" {
				submitter = dispatch.NewStreamSubmitter(client, cfg.BulkSend.SubmitStream, cfg.BulkSend.SubmitStreamMaxLen, logger)
				logger.Info("Publishing bulk requests to redis stream", zap.String("stream", cfg.BulkSend.SubmitStream))
			}
		}
	}
	a.Submitter = submitter

	a.Service = service.NewBulkSendService(service.Deps{
		Catalog:       a.Catalog,
		Templates:     a.Templates,
		Beneficiaries: a.Beneficiaries,
		Requests:      a.Requests,
		Submitter:     submitter,
		Activity:      activity.NewZapLogger(logger),
		Actor: domain.Actor{
			ID:   cfg.Organization.ID,
			Name: cfg.Organization.Name,
			Type: domain.RequesterTypeOrganization,
		},
	}, logger)

	return a, nil
}

// NewCountCache puts the Redis count cache in front of next.
func NewCountCache(client *commonredis.Client, next repository.BeneficiaryLookup, cfg *config.Config, logger *zap.Logger) *repository.CachedBeneficiaryLookup {
	return repository.NewCachedBeneficiaryLookup(next, store.NewRedisKV(client, KeyPrefix), cfg.BulkSend.BeneficiaryCacheTTL, logger)
}

// DB is the Postgres pool, or nil when the database is disabled.
func (a *App) DB() *sql.DB { return a.db }

func (a *App) Close() {
	if a.redisClient != nil {
		if err := commonredis.Close(a.redisClient); err != nil {
			a.logger.Warn("Failed to close redis client", zap.Error(err))
		}
	}
	if err := database.Close(a.db); err != nil {
		a.logger.Warn("Failed to close database", zap.Error(err))
	}
}
