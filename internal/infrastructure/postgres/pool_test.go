package postgres

import (
	"testing"
	"time"

	"github.com/jhoicas/wms-api/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoolConfigFor(t *testing.T) {
	cfg := config.DBConfig{
		Host: "db", Port: 5432, User: "wms", Password: "secret", DBName: "wms", SSLMode: "disable",
		MaxConns: 10, MinConns: 2, MaxConnLifetime: time.Hour, LockTimeout: 15 * time.Second,
	}

	pc, err := poolConfigFor(cfg, "wms-api")
	require.NoError(t, err)

	assert.Equal(t, int32(10), pc.MaxConns)
	assert.Equal(t, int32(2), pc.MinConns)
	assert.Equal(t, time.Hour, pc.MaxConnLifetime)
	assert.Equal(t, "15000", pc.ConnConfig.RuntimeParams["lock_timeout"])
	assert.Equal(t, "wms-api", pc.ConnConfig.RuntimeParams["application_name"])
	assert.Equal(t, "db", pc.ConnConfig.Host)
	assert.NotNil(t, pc.AfterConnect)
}

func TestPoolConfigFor_Minimos(t *testing.T) {
	pc, err := poolConfigFor(config.DBConfig{DatabaseURL: "postgres://u:p@localhost:5432/wms"}, "")
	require.NoError(t, err)

	assert.Equal(t, int32(1), pc.MaxConns)
	_, ok := pc.ConnConfig.RuntimeParams["lock_timeout"]
	assert.False(t, ok)
}

func TestPoolConfigFor_DSNInvalido(t *testing.T) {
	_, err := poolConfigFor(config.DBConfig{DatabaseURL: "postgres://u:p@localhost:notaport/wms"}, "")
	assert.Error(t, err)
}
