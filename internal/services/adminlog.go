package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/localnerve/publishdb/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RecordAdminAction appends an admin log entry. An empty session id gets a new one.
func RecordAdminAction(ctx context.Context, db *gorm.DB, entry models.AdminLog) (models.AdminLog, error) {
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now().UTC()
	}
	if entry.SessionID == "" {
		entry.SessionID = uuid.NewString()
	}
	if err := db.WithContext(ctx).Create(&entry).Error; err != nil {
		return models.AdminLog{}, err
	}
	return entry, nil
}

// RecentAdminActions lists the newest entries first. A zero userID means every user.
func RecentAdminActions(ctx context.Context, db *gorm.DB, userID uint, limit int) ([]models.AdminLog, error) {
	q := db.WithContext(ctx).Model(&models.AdminLog{})
	if userID != 0 {
		q = q.Where("user_id = ?", userID)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}
	var entries []models.AdminLog
	err := q.Order(clause.OrderByColumn{Column: clause.Column{Name: "timestamp"}, Desc: true}).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "id"}, Desc: true}).
		Find(&entries).Error
	return entries, err
}
