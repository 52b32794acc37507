package commands

import (
	"context"
	"errors"
	"time"

	"uploadgate"
	"uploadgate/config"
	"uploadgate/internal/application/usecase"
	"uploadgate/internal/infrastructure/broker"
	"uploadgate/internal/infrastructure/database"
	"uploadgate/internal/infrastructure/disk"
	"uploadgate/internal/infrastructure/minio"
	"uploadgate/internal/infrastructure/observer"
	"uploadgate/internal/presentation/handler"
	"uploadgate/pkg/logger"
)

// app holds everything built from a config. closers run in reverse order.
type app struct {
	cfg     *config.Config
	store   *disk.Store
	routes  handler.Routes
	closers []func() error
}

func version() string {
	return uploadgate.StringVersion()
}

func loadConfig(args []string) *config.Config {
	if len(args) < 3 {
		ExitOnError(errors.New("at least 1 arguments expected\nuse help command for more information"))
	}

	cfg, err := config.Load(args[2])
	if err != nil {
		ExitOnError(err)
	}

	logger.InitGlobalLogger(&cfg.Logger)

	return cfg
}

func build(cfg *config.Config) (*app, error) {
	a := &app{
		cfg:   cfg,
		store: disk.New(&cfg.Storage),
	}

	var archive usecase.Archive

	if cfg.BrokerConfig.Enabled {
		brokerClient, err := broker.NewClient(cfg.BrokerConfig)
		if err != nil {
			return nil, a.fail(err)
		}
		a.closers = append(a.closers, brokerClient.Close)

		archive.Publisher = broker.NewPublisher(brokerClient, cfg.PublisherConfig)
	}

	var minIORemover *minio.Remover
	if cfg.MinIOClient.Enabled {
		minIOClient, err := minio.New(&cfg.MinIOClient)
		if err != nil {
			return nil, a.fail(err)
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		err = minIOClient.EnsureBucket(ctx, cfg.MinIOUploader.Bucket)
		cancel()
		if err != nil {
			return nil, a.fail(err)
		}

		minIORemover = minio.NewRemover(minIOClient.MinioClient, &cfg.MinIORemover)
		archive.Mirror = minio.NewUploader(minIOClient.MinioClient, &cfg.MinIOUploader)
		archive.MirrorRemover = minIORemover
	}

	if cfg.DBConfig.Enabled {
		db, err := database.Connect(cfg.DBConfig)
		if err != nil {
			return nil, a.fail(err)
		}
		a.closers = append(a.closers, db.Stop)

		dbRetriever := database.NewUploadRetriever(db)
		dbRemover := database.NewUploadRemover(db)
		archive.Writer = database.NewUploadWriter(db)

		a.routes.List = handler.NewListHandler(usecase.NewLister(database.NewUploadLister(db)))
		a.routes.Get = handler.NewGetHandler(usecase.NewGetter(dbRetriever))

		deleter := usecase.NewDeleter(dbRetriever, dbRemover, a.store, nil)
		if minIORemover != nil {
			deleter = usecase.NewDeleter(dbRetriever, dbRemover, a.store, minIORemover)
		}
		a.routes.Delete = handler.NewDeleteHandler(deleter)
	}

	uploader := usecase.NewUploader(&cfg.Upload, nil, a.store, observer.NewLog(), archive)

	a.routes.Upload = handler.NewUploadHandler(uploader, cfg.Server.WriteMethod)
	a.routes.UploadPath = cfg.Server.UploadPath
	a.routes.Auth = cfg.Auth.Enabled

	return a, nil
}

func (a *app) fail(err error) error {
	a.close()

	return err
}

func (a *app) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			logger.Error("failed to close resource", "err", err)
		}
	}

	a.closers = nil
}
