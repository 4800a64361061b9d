package db

import (
	"fmt"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/lexio-dev/lexio/internal/models"
)

var DB *gorm.DB

// ConnectDatabase opens the configured backend. Only sqlite is implemented;
// foreign-key enforcement and WAL are set per-connection via DSN pragmas.
func ConnectDatabase(backend, path string) error {
	switch backend {
	case "sqlite":
		dsn := fmt.Sprintf("%s?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)", path)

		var err error

		DB, err = gorm.Open(sqlite.Open(dsn), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})

		return err
	case "postgres":
		return fmt.Errorf("postgres backend not implemented; set DB_BACKEND=sqlite")
	default:
		return fmt.Errorf("unknown DB_BACKEND: %s", backend)
	}
}

func MigrateDatabase() error {
	tables := []interface{}{
		&models.User{},
		&models.Project{},
		&models.ProjectMembership{},
		&models.LinguisticObject{},
		&models.MetadataEntry{},
		&models.Relation{},
	}

	migrator := DB.Migrator()

	for _, table := range tables {
		if !migrator.HasTable(table) {
			if err := DB.AutoMigrate(table); err != nil {
				return err
			}
		}
	}

	return nil
}

// Ping touches the schema; used by the readiness probe.
func Ping() error {
	return DB.Exec("SELECT 1").Error
}
