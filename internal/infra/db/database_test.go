package db

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salesledger/backend/config"
	"github.com/salesledger/backend/internal/integration/persistence/model"
)

func TestNewConnection_SQLite(t *testing.T) {
	database, err := NewConnection(&config.DatabaseConfig{Driver: DriverSQLite, URL: "file::memory:"})
	require.NoError(t, err)
	defer database.Close()

	require.NoError(t, database.AutoMigrate(model.AllModels()...))
	assert.NoError(t, database.Ping(context.Background()))
	assert.True(t, database.DB().Migrator().HasTable(&model.TransactionLineModel{}))
}

func TestNewConnection_UnsupportedDriver(t *testing.T) {
	_, err := NewConnection(&config.DatabaseConfig{Driver: "mysql"})
	assert.Error(t, err)
}
