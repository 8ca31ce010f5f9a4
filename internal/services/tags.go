package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/localnerve/publishdb/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TagPage attaches the named tag to a page, creating the tag if needed.
// Tagging twice is a no-op.
func TagPage(ctx context.Context, db *gorm.DB, pageID uint, name string) (models.Tag, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return models.Tag{}, errors.New("tag name is empty")
	}
	var tag models.Tag
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&models.Page{}, pageID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("page %d: %w", pageID, ErrNotFound)
			}
			return err
		}
		if err := tx.Where(models.Tag{Name: name}).FirstOrCreate(&tag).Error; err != nil {
			return err
		}
		return tx.Clauses(clause.OnConflict{DoNothing: true}).
			Create(&models.TaggedPage{TagID: tag.ID, PageID: pageID}).Error
	})
	return tag, err
}

// UntagPage detaches a tag from a page.
func UntagPage(ctx context.Context, db *gorm.DB, pageID uint, name string) error {
	var tag models.Tag
	err := db.WithContext(ctx).Where(models.Tag{Name: strings.ToLower(strings.TrimSpace(name))}).First(&tag).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	return db.WithContext(ctx).
		Where("tag_id = ? AND page_id = ?", tag.ID, pageID).
		Delete(&models.TaggedPage{}).Error
}

// PagesByTag lists the visible pages carrying a tag, in archive order.
func PagesByTag(ctx context.Context, db *gorm.DB, rule models.VisibilityRule, name string) ([]models.Page, error) {
	var pages []models.Page
	err := db.WithContext(ctx).
		Joins("JOIN tagged_pages ON tagged_pages.page_id = pages.id").
		Joins("JOIN tags ON tags.id = tagged_pages.tag_id").
		Where("tags.name = ?", strings.ToLower(strings.TrimSpace(name))).
		Where(visibility("pages", rule)).
		Order("pages.publish_date ASC").Order("pages.slug ASC").
		Find(&pages).Error
	return pages, err
}

// PageTags lists the tag names on a page, alphabetically.
func PageTags(ctx context.Context, db *gorm.DB, pageID uint) ([]string, error) {
	var names []string
	err := db.WithContext(ctx).Model(&models.Tag{}).
		Joins("JOIN tagged_pages ON tagged_pages.tag_id = tags.id").
		Where("tagged_pages.page_id = ?", pageID).
		Order("tags.name").
		Pluck("tags.name", &names).Error
	return names, err
}
