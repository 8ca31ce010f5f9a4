// pages.go
//
// A content publishing site with a versioned schema and archive navigation
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of publishdb.
// publishdb is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// publishdb is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with publishdb.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/localnerve/publishdb/internal/models"
	"gorm.io/gorm"
)

// PageInput describes a page to create. A zero PublishDate means now.
type PageInput struct {
	Slug           string
	Title          string
	Description    string
	UserID         uint
	SectionID      *uint
	ContentClassID *uint
	PublishDate    time.Time
	PublishStatus  models.PublishStatus
	IsVisible      bool
	Theme          string
}

// CreatePage inserts a page.
func CreatePage(ctx context.Context, db *gorm.DB, in PageInput) (models.Page, error) {
	if !in.PublishStatus.Valid() {
		return models.Page{}, fmt.Errorf("%w: %d", models.ErrUnknownPublishStatus, int(in.PublishStatus))
	}
	publishDate := in.PublishDate
	if publishDate.IsZero() {
		publishDate = time.Now()
	}
	page := models.Page{
		Slug:           in.Slug,
		Title:          in.Title,
		Description:    in.Description,
		UserID:         in.UserID,
		SectionID:      in.SectionID,
		ContentClassID: in.ContentClassID,
		PublishDate:    publishDate,
		PublishStatus:  in.PublishStatus,
		IsVisible:      in.IsVisible,
		Theme:          in.Theme,
	}
	if err := db.WithContext(ctx).Create(&page).Error; err != nil {
		return models.Page{}, err
	}
	return page, nil
}

// PageBySlug loads a page by its unique slug regardless of visibility.
func PageBySlug(ctx context.Context, db *gorm.DB, slug string) (models.Page, error) {
	var page models.Page
	if err := db.WithContext(ctx).Where(&models.Page{Slug: slug}).First(&page).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return page, fmt.Errorf("page %q: %w", slug, ErrNotFound)
		}
		return page, err
	}
	return page, nil
}

// SetPublishStatus changes the status and visibility flag of a page.
func SetPublishStatus(ctx context.Context, db *gorm.DB, pageID uint, status models.PublishStatus, visible bool) error {
	if !status.Valid() {
		return fmt.Errorf("%w: %d", models.ErrUnknownPublishStatus, int(status))
	}
	res := db.WithContext(ctx).Model(&models.Page{}).
		Where("id = ?", pageID).
		Updates(map[string]interface{}{"publish_status": status, "is_visible": visible})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("page %d: %w", pageID, ErrNotFound)
	}
	return nil
}

// AddPageContent appends a content block after the page's existing blocks.
func AddPageContent(ctx context.Context, db *gorm.DB, content models.PageContent) (models.PageContent, error) {
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var last struct{ Max *int }
		if err := tx.Model(&models.PageContent{}).
			Select("MAX(display_order) AS max").
			Where("page_id = ?", content.PageID).
			Scan(&last).Error; err != nil {
			return err
		}
		content.DisplayOrder = 0
		if last.Max != nil {
			content.DisplayOrder = *last.Max + 1
		}
		return tx.Create(&content).Error
	})
	return content, err
}

// PageContents returns a page's blocks in display order.
func PageContents(ctx context.Context, db *gorm.DB, pageID uint) ([]models.PageContent, error) {
	var contents []models.PageContent
	err := db.WithContext(ctx).
		Where("page_id = ?", pageID).
		Order("display_order").
		Find(&contents).Error
	return contents, err
}
