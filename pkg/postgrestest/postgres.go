package postgrestest

import (
	"context"
	"fmt"
	"time"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"

	"github.com/goto/oaflow/internal/store"
	"github.com/goto/oaflow/internal/store/postgres"
	"github.com/goto/oaflow/pkg/log"
)

const (
	pgUser   = "test_user"
	pgPass   = "test_pass"
	pgDBName = "test_db"
)

// NewTestStore starts a disposable postgres container and returns a migrated store connected to it
func NewTestStore(logger log.Logger) (*postgres.Store, *dockertest.Pool, *dockertest.Resource, error) {
	opts := &dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "13",
		Env: []string{
			"POSTGRES_PASSWORD=" + pgPass,
			"POSTGRES_USER=" + pgUser,
			"POSTGRES_DB=" + pgDBName,
		},
	}

	pool, err := dockertest.NewPool("")
	if err != nil {
		return nil, nil, nil, fmt.Errorf("could not create dockertest pool: %w", err)
	}

	resource, err := pool.RunWithOptions(opts, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		return nil, nil, nil, fmt.Errorf("could not start resource: %w", err)
	}

	if err := resource.Expire(120); err != nil {
		return nil, nil, nil, err
	}

	cfg := store.Config{
		Host:     "localhost",
		User:     pgUser,
		Password: pgPass,
		Name:     pgDBName,
		Port:     resource.GetPort("5432/tcp"),
		SslMode:  "disable",
	}

	var st *postgres.Store
	pool.MaxWait = 60 * time.Second
	if err := pool.Retry(func() error {
		st, err = postgres.NewStore(cfg)
		if err != nil {
			return err
		}
		sqlDB, err := st.DB().DB()
		if err != nil {
			return err
		}
		return sqlDB.Ping()
	}); err != nil {
		return nil, nil, nil, fmt.Errorf("could not connect to docker: %w", err)
	}

	if err := st.Migrate(); err != nil {
		return nil, nil, nil, fmt.Errorf("migrating test store: %w", err)
	}
	logger.Info(context.Background(), "test store ready", "port", cfg.Port)

	return st, pool, resource, nil
}

// PurgeTestDocker stops the container started by NewTestStore
func PurgeTestDocker(pool *dockertest.Pool, resource *dockertest.Resource) error {
	if err := pool.Purge(resource); err != nil {
		return fmt.Errorf("could not purge resource: %w", err)
	}
	return nil
}
