package db

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Connect picks the driver explicitly or, when driver is empty, from the DSN shape.
func Connect(ctx context.Context, driver, dsn string) (*gorm.DB, error) {
	if driver == "" {
		driver = DetectDriver(dsn)
	}

	switch strings.ToLower(driver) {
	case DriverPostgres:
		return ConnectPostgres(ctx, dsn)
	case DriverSQLite:
		return ConnectSQLite(ctx, dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
}

func DetectDriver(dsn string) string {
	lower := strings.ToLower(strings.TrimSpace(dsn))
	if strings.HasPrefix(lower, "postgres://") || strings.HasPrefix(lower, "postgresql://") || strings.Contains(lower, "host=") {
		return DriverPostgres
	}
	return DriverSQLite
}
