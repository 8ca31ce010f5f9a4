package services

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/localnerve/publishdb/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// sessionKeyBytes is the size of a generated session signing key.
const sessionKeyBytes = 24

// GetInt reads an integer global. ok is false when the key is unset.
func GetInt(ctx context.Context, db *gorm.DB, key string) (value int, ok bool, err error) {
	g, found, err := getGlobal(ctx, db, key)
	if err != nil || !found || g.IntValue == nil {
		return 0, false, err
	}
	return *g.IntValue, true, nil
}

// SetInt writes an integer global, creating the row when needed.
func SetInt(ctx context.Context, db *gorm.DB, key string, value int) error {
	return upsertGlobal(ctx, db, models.Global{Key: key, IntValue: &value}, "int_value")
}

// GetString reads a string global. ok is false when the key is unset.
func GetString(ctx context.Context, db *gorm.DB, key string) (value string, ok bool, err error) {
	g, found, err := getGlobal(ctx, db, key)
	if err != nil || !found || g.StringValue == nil {
		return "", false, err
	}
	return *g.StringValue, true, nil
}

// SetString writes a string global, creating the row when needed.
func SetString(ctx context.Context, db *gorm.DB, key, value string) error {
	return upsertGlobal(ctx, db, models.Global{Key: key, StringValue: &value}, "string_value")
}

// SessionKey returns the site's session signing key, generating and storing
// one on first use.
func SessionKey(ctx context.Context, db *gorm.DB) (string, error) {
	buf := make([]byte, sessionKeyBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate session key: %w", err)
	}
	candidate := base64.StdEncoding.EncodeToString(buf)

	g := models.Global{}
	err := db.WithContext(ctx).
		Where(models.Global{Key: models.SessionKeyName}).
		Attrs(models.Global{StringValue: &candidate}).
		FirstOrCreate(&g).Error
	if err != nil {
		return "", err
	}
	if g.StringValue == nil || *g.StringValue == "" {
		if err := db.WithContext(ctx).Model(&g).Update("string_value", candidate).Error; err != nil {
			return "", err
		}
		return candidate, nil
	}
	return *g.StringValue, nil
}

func getGlobal(ctx context.Context, db *gorm.DB, key string) (models.Global, bool, error) {
	var g models.Global
	err := db.WithContext(ctx).Where(models.Global{Key: key}).First(&g).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return g, false, nil
	}
	if err != nil {
		return g, false, err
	}
	return g, true, nil
}

func upsertGlobal(ctx context.Context, db *gorm.DB, g models.Global, column string) error {
	return db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{column}),
	}).Create(&g).Error
}
