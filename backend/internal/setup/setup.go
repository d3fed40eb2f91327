package setup

import (
	"fmt"

	"github.com/mergington/activities/backend/internal/handler"
	"github.com/mergington/activities/backend/internal/service"
	"github.com/mergington/activities/backend/internal/storage"
	"github.com/mergington/activities/backend/internal/storage/memory"
	"github.com/mergington/activities/backend/internal/storage/pg"
	"github.com/mergington/activities/shared/config"
)

// Dependencies struct to hold all initialized dependencies.
type Dependencies struct {
	Storage storage.Storage
	Handler *handler.Handler
	Config  *config.Config
}

// SetupDependencies initializes all dependencies required for the application.
func SetupDependencies(cfg *config.Config) (*Dependencies, error) {
	store, err := newStorage(cfg)
	if err != nil {
		return nil, err
	}

	activity := service.NewActivity(store)
	h := handler.New(activity, store, cfg.Public.Backend.FrontendURL)

	return &Dependencies{
		Storage: store,
		Handler: h,
		Config:  cfg,
	}, nil
}

func newStorage(cfg *config.Config) (storage.Storage, error) {
	switch cfg.Public.Backend.Storage {
	case config.StoragePostgres:
		store, err := pg.New(cfg.Private.Pg)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize postgres storage: %w", err)
		}
		return store, nil
	default:
		return memory.New(storage.Seed()), nil
	}
}
