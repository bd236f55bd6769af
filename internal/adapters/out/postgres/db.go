package postgres

import (
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"textile/internal/adapters/out/postgres/auditrepo"
	"textile/internal/adapters/out/postgres/clientrepo"
	"textile/internal/adapters/out/postgres/configrepo"
	"textile/internal/adapters/out/postgres/financerepo"
	"textile/internal/adapters/out/postgres/nonconformityrepo"
	"textile/internal/adapters/out/postgres/orderrepo"
	"textile/internal/adapters/out/postgres/paymentbatchrepo"
	"textile/internal/adapters/out/postgres/shipmentrepo"

	_ "github.com/lib/pq"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DSN builds a lib/pq connection string.
func DSN(host, port, user, password, dbName, sslMode string) string {
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, port, user, password, dbName, sslMode)
}

// Open connects through lib/pq and hands the pool to GORM, so driver errors
// surface as *pq.Error for pgerr.Translate.
func Open(dsn string) (*gorm.DB, error) {
	sqlDB, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	if err = sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	db, err := gorm.Open(gormpostgres.New(gormpostgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("open gorm: %w", err)
	}
	return db, nil
}

// Models lists every persisted table in dependency order.
func Models() []any {
	return []any{
		&clientrepo.ClientDTO{},
		&orderrepo.OrderDTO{},
		&shipmentrepo.ShipmentDTO{},
		&nonconformityrepo.NonConformityDTO{},
		&paymentbatchrepo.BatchDTO{},
		&financerepo.EntryDTO{},
		&auditrepo.EntryDTO{},
		&configrepo.ConfigDTO{},
	}
}

// Migrate creates or updates the schema.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	slog.Info("schema migrated", "tables", len(Models()))
	return nil
}
