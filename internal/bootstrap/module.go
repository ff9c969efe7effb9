package bootstrap

import (
	"context"
	"log/slog"

	"go.uber.org/fx"
	"gorm.io/gorm"

	"deskbridge/internal/bootstrap/config"
	"deskbridge/internal/bootstrap/database"
	"deskbridge/internal/bootstrap/logging"
	eventsinfra "deskbridge/internal/infrastructure/events"
	origininfra "deskbridge/internal/infrastructure/origin"
	sqliterepo "deskbridge/internal/infrastructure/persistence/sqlite/repository"
	sqliteuow "deskbridge/internal/infrastructure/persistence/sqlite/uow"
	"deskbridge/internal/ports"
	"deskbridge/internal/usecase/ingest"
	"deskbridge/internal/usecase/push"
	"deskbridge/internal/usecase/synccycle"
)

var Module = fx.Options(
	fx.Provide(provideConfig),
	fx.Provide(provideDatabase),
	fx.Provide(provideApp),
	fx.Provide(
		fx.Annotate(
			sqliterepo.NewSyncStateRepository,
			fx.As(new(ports.SyncStateRepository)),
		),
	),
	fx.Provide(
		fx.Annotate(
			sqliterepo.NewMappingRepository,
			fx.As(new(ports.MappingRepository)),
		),
	),
	fx.Provide(
		fx.Annotate(
			sqliterepo.NewRawRecordRepository,
			fx.As(new(ports.RawRecordRepository)),
		),
	),
	fx.Provide(
		fx.Annotate(
			sqliterepo.NewCanonicalRepository,
			fx.As(new(ports.CanonicalRepository)),
		),
	),
	fx.Provide(
		fx.Annotate(
			sqliteuow.NewUnitOfWork,
			fx.As(new(ports.UnitOfWork)),
		),
	),
	fx.Provide(
		fx.Annotate(
			origininfra.NewHTTPUpdater,
			fx.As(new(ports.OriginUpdater)),
		),
	),
	fx.Provide(providePublisher),
	fx.Provide(provideSyncCycleService),
	fx.Provide(provideIngestService),
	fx.Provide(providePushService),
)

type configParams struct {
	fx.In

	Ctx        context.Context
	ConfigFile string `name:"configFile"`
}

func provideConfig(p configParams) (config.Config, error) {
	ctx := logging.WithAttrs(p.Ctx, slog.String("component", "bootstrap.fx"))
	return config.Load(ctx, p.ConfigFile)
}

func provideDatabase(lc fx.Lifecycle, ctx context.Context, cfg config.Config) (*gorm.DB, error) {
	logCtx := logging.WithAttrs(ctx, slog.String("component", "bootstrap.fx"))

	db, err := database.Open(logCtx, cfg.Database)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.Close()
		},
	})

	return db, nil
}

func provideApp(cfg config.Config, db *gorm.DB) *App {
	return &App{
		Config: cfg,
		DB:     db,
	}
}

func providePublisher(lc fx.Lifecycle, cfg config.Config) (ports.CyclePublisher, error) {
	publisher, err := eventsinfra.NewPublisher(cfg.Events.NATSURL, cfg.Events.Subject)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			publisher.Close()
			return nil
		},
	})

	return publisher, nil
}

func provideSyncCycleService(cfg config.Config) *synccycle.Service {
	return synccycle.NewService(cfg.Staging.Root)
}

func provideIngestService(
	state ports.SyncStateRepository,
	mappings ports.MappingRepository,
	raws ports.RawRecordRepository,
	canon ports.CanonicalRepository,
	uow ports.UnitOfWork,
	publisher ports.CyclePublisher,
) *ingest.Service {
	return ingest.NewService(state, mappings, raws, canon, uow, publisher)
}

func providePushService(
	cfg config.Config,
	state ports.SyncStateRepository,
	mappings ports.MappingRepository,
	canon ports.CanonicalRepository,
	updater ports.OriginUpdater,
) *push.Service {
	return push.NewService(state, mappings, canon, updater, cfg.Push.Profile, cfg.Push.MaxAttempts)
}
