// bookmarks.go
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

	"github.com/localnerve/publishdb/internal/models"
	"gorm.io/gorm"
)

// CreateBookmark anchors a labelled bookmark in a section's archive. The page
// must belong to the section or one of its descendants.
func CreateBookmark(ctx context.Context, db *gorm.DB, sectionID, pageID uint, label string) (models.PageBookmark, error) {
	bm := models.PageBookmark{SectionID: sectionID, PageID: pageID, Label: label}
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var page models.Page
		if err := tx.First(&page, pageID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("page %d: %w", pageID, ErrNotFound)
			}
			return err
		}
		tree, err := LoadSectionTree(ctx, tx)
		if err != nil {
			return err
		}
		if _, ok := tree.Section(sectionID); !ok {
			return fmt.Errorf("section %d: %w", sectionID, ErrNotFound)
		}
		if page.SectionID == nil || !tree.Contains(sectionID, *page.SectionID) {
			return fmt.Errorf("page %d in section %d: %w", pageID, sectionID, ErrBookmarkOutOfScope)
		}
		return tx.Create(&bm).Error
	})
	return bm, err
}

// BookmarkByID loads a bookmark.
func BookmarkByID(ctx context.Context, db *gorm.DB, id uint) (models.PageBookmark, error) {
	var bm models.PageBookmark
	if err := db.WithContext(ctx).First(&bm, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return bm, fmt.Errorf("bookmark %d: %w", id, ErrNotFound)
		}
		return bm, err
	}
	return bm, nil
}

// DeleteBookmark removes a bookmark.
func DeleteBookmark(ctx context.Context, db *gorm.DB, id uint) error {
	res := db.WithContext(ctx).Delete(&models.PageBookmark{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("bookmark %d: %w", id, ErrNotFound)
	}
	return nil
}
