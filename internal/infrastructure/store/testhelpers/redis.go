package testhelpers

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/scorepoint/scoring-gateway/internal/config"
)

type TestRedis struct {
	Container testcontainers.Container
	Config    config.StoreConfig
}

// SetupTestRedis starts a disposable redis container and returns the store
// configuration pointing at it.
func SetupTestRedis(t *testing.T) *TestRedis {
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "redis:7-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor: wait.ForLog("Ready to accept connections").
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)

	port, err := container.MappedPort(ctx, "6379")
	require.NoError(t, err)

	return &TestRedis{
		Container: container,
		Config: config.StoreConfig{
			Addr:         host + ":" + port.Port(),
			DB:           0,
			DialTimeout:  time.Second,
			ReadTimeout:  time.Second,
			WriteTimeout: time.Second,
		},
	}
}

func (tr *TestRedis) Cleanup(t *testing.T) {
	require.NoError(t, tr.Container.Terminate(context.Background()))
}
