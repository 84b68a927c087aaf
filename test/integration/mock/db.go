package mock

import (
	"fmt"
	"sync"

	"gorm.io/gorm"

	"github.com/salesledger/backend/config"
	"github.com/salesledger/backend/internal/infra/db"
)

var once sync.Once
var database *Db

// Db is a shared in-memory sqlite store. Models are kept in migration order.
type Db struct {
	Database *db.Database
	DbConn   *gorm.DB
	models   map[string]any
	order    []any
}

// NewDb opens the store once per test binary and migrates models.
func NewDb(cfg *config.DatabaseConfig, models ...any) *Db {
	if database == nil {
		once.Do(
			func() {
				database = open(cfg, models)
			},
		)
	}

	return database
}

func open(cfg *config.DatabaseConfig, models []any) *Db {
	conn, err := db.NewConnection(cfg)
	if err != nil {
		panic("failed to connect to database. err: " + err.Error())
	}

	if err := conn.AutoMigrate(models...); err != nil {
		panic(fmt.Sprintf("failed to migrate database. err: %s", err.Error()))
	}

	newDbMock := &Db{
		Database: conn,
		DbConn:   conn.DB(),
		models:   make(map[string]any, len(models)),
		order:    models,
	}

	for _, model := range models {
		stmt := &gorm.Statement{DB: newDbMock.DbConn}
		if err := stmt.Parse(model); err != nil {
			panic(err)
		}
		newDbMock.models[stmt.Schema.Table] = model
	}

	return newDbMock
}

// ClearDB deletes every row, children before parents.
func (d *Db) ClearDB() error {
	for i := len(d.order) - 1; i >= 0; i-- {
		err := d.DbConn.Session(&gorm.Session{AllowGlobalUpdate: true}).Unscoped().Delete(d.order[i]).Error
		if err != nil {
			return fmt.Errorf("failed to clear %T: %w", d.order[i], err)
		}
	}
	return nil
}

func (d *Db) GetModel(table string) (any, bool) {
	model, ok := d.models[table]
	return model, ok
}
