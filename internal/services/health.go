package services

import (
	"context"
	"fmt"
	"strconv"

	"github.com/localnerve/publishdb/internal/config"
	"github.com/localnerve/publishdb/internal/database"
	"github.com/localnerve/publishdb/internal/models"
	"github.com/localnerve/publishdb/internal/utils"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// HealthCheckResult represents the result of a health check
type HealthCheckResult struct {
	Status       string            `json:"status"`
	Database     string            `json:"database"`
	Schema       string            `json:"schema"`
	Versions     map[string]int    `json:"versions,omitempty"`
	Details      map[string]string `json:"details,omitempty"`
	ErrorMessage string            `json:"error,omitempty"`
}

// HealthCheck pings the database and compares every table's stored schema
// version against the version this build expects.
func HealthCheck(ctx context.Context, cfg *config.Config, db *gorm.DB, registry *database.Registry, log *zap.Logger) HealthCheckResult {
	result := HealthCheckResult{
		Status:  "healthy",
		Details: make(map[string]string),
	}
	fail := func(msg string) {
		result.Status = "unhealthy"
		if result.ErrorMessage == "" {
			result.ErrorMessage = msg
		} else {
			result.ErrorMessage += "; " + msg
		}
	}

	if !cfg.IsSQLite() {
		if err := utils.PingDatabaseHost(cfg.DBHost, cfg.DBPort); err != nil {
			result.Details["database_host_error"] = err.Error()
			fail(fmt.Sprintf("Database host unreachable: %v", err))
			log.Warn("health check failed - database host", zap.Error(err))
		}
	}

	// Check database connectivity
	sqlDB, err := db.DB()
	if err != nil {
		result.Database = "error"
		result.Details["database_error"] = err.Error()
		fail(fmt.Sprintf("Database connection error: %v", err))
		log.Warn("health check failed - database connection", zap.Error(err))
		return result
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		result.Database = "unreachable"
		result.Details["database_ping_error"] = err.Error()
		fail(fmt.Sprintf("Database ping failed: %v", err))
		log.Warn("health check failed - database ping", zap.Error(err))
		return result
	}
	result.Database = "ok"
	result.Details["database_type"] = cfg.DBType
	result.Details["database_name"] = cfg.DBDatabase

	versions, err := registry.Versions(ctx, db)
	if err != nil {
		result.Schema = "error"
		fail(fmt.Sprintf("Schema versions unreadable: %v", err))
		log.Warn("health check failed - schema versions", zap.Error(err))
		return result
	}
	result.Versions = versions
	result.Schema = "ok"
	for _, table := range registry.Tables() {
		want := models.CurrentVersion(table)
		if got := versions[table.Name()]; got != want {
			result.Schema = "stale"
			result.Details["schema_"+table.Name()] = strconv.Itoa(got) + " != " + strconv.Itoa(want)
			fail(fmt.Sprintf("%s schema at %d, expected %d", table.Name(), got, want))
		}
	}

	if result.Status == "healthy" {
		log.Debug("health check passed")
	}
	return result
}
