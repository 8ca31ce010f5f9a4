// navigator.go
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
	"gorm.io/hints"
)

// Scope limits navigation to a section, optionally including its descendants.
// A nil Section means the whole site.
type Scope struct {
	Section   *uint
	Recursive bool
}

// Unscoped navigates across every section.
func Unscoped() Scope {
	return Scope{}
}

// InSection navigates within one section, and its descendants when recursive.
func InSection(id uint, recursive bool) Scope {
	return Scope{Section: &id, Recursive: recursive}
}

// BookmarkHit is a bookmark together with the page it is anchored at.
type BookmarkHit struct {
	Bookmark models.PageBookmark
	Page     models.Page
}

// Navigator answers position queries over the visible archive.
// Results are ordered by (publish_date, slug). A missing neighbour is
// reported as found == false, never as an error.
type Navigator struct {
	DB   *gorm.DB
	Rule models.VisibilityRule
}

// NewNavigator creates a navigator using rule as the visibility gate.
func NewNavigator(db *gorm.DB, rule models.VisibilityRule) *Navigator {
	return &Navigator{DB: db, Rule: rule}
}

// Next returns the visible page right after page in scope.
func (n *Navigator) Next(ctx context.Context, page models.Page, scope Scope) (models.Page, bool, error) {
	q, err := n.pages(ctx, scope)
	if err != nil {
		return models.Page{}, false, err
	}
	q = q.Where(afterPage("pages", page, false)).
		Order("pages.publish_date ASC").Order("pages.slug ASC")
	return firstPage(q)
}

// Previous returns the visible page right before page in scope.
func (n *Navigator) Previous(ctx context.Context, page models.Page, scope Scope) (models.Page, bool, error) {
	q, err := n.pages(ctx, scope)
	if err != nil {
		return models.Page{}, false, err
	}
	q = q.Where(beforePage("pages", page, false)).
		Order("pages.publish_date DESC").Order("pages.slug DESC")
	return firstPage(q)
}

// First returns the earliest visible page in scope.
func (n *Navigator) First(ctx context.Context, scope Scope) (models.Page, bool, error) {
	q, err := n.pages(ctx, scope)
	if err != nil {
		return models.Page{}, false, err
	}
	return firstPage(q.Order("pages.publish_date ASC").Order("pages.slug ASC"))
}

// Last returns the latest visible page in scope.
func (n *Navigator) Last(ctx context.Context, scope Scope) (models.Page, bool, error) {
	q, err := n.pages(ctx, scope)
	if err != nil {
		return models.Page{}, false, err
	}
	return firstPage(q.Order("pages.publish_date DESC").Order("pages.slug DESC"))
}

// Position returns the 1-based index of page among the visible pages in
// scope and the size of that set. found is false when page itself is not
// part of the visible set.
func (n *Navigator) Position(ctx context.Context, page models.Page, scope Scope) (index, total int64, found bool, err error) {
	q, err := n.pages(ctx, scope)
	if err != nil {
		return 0, 0, false, err
	}
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return 0, 0, false, err
	}
	var self int64
	if err := q.Session(&gorm.Session{}).Where("pages.id = ?", page.ID).Count(&self).Error; err != nil {
		return 0, 0, false, err
	}
	if self == 0 {
		return 0, total, false, nil
	}
	var before int64
	if err := q.Session(&gorm.Session{}).Where(beforePage("pages", page, false)).Count(&before).Error; err != nil {
		return 0, 0, false, err
	}
	return before + 1, total, true, nil
}

// Pages lists the visible pages in scope in archive order, up to limit (0 means all).
func (n *Navigator) Pages(ctx context.Context, scope Scope, limit int) ([]models.Page, error) {
	q, err := n.pages(ctx, scope)
	if err != nil {
		return nil, err
	}
	q = q.Order("pages.publish_date ASC").Order("pages.slug ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	var pages []models.Page
	if err := q.Find(&pages).Error; err != nil {
		return nil, err
	}
	return pages, nil
}

// BookmarkBefore returns the nearest bookmark in section anchored at or before page.
func (n *Navigator) BookmarkBefore(ctx context.Context, sectionID uint, page models.Page) (BookmarkHit, bool, error) {
	q := n.bookmarks(ctx, sectionID).
		Where(beforePage("pages", page, true)).
		Order("pages.publish_date DESC").Order("pages.slug DESC")
	return n.firstBookmark(ctx, q)
}

// BookmarkAfter returns the nearest bookmark in section anchored strictly after page.
func (n *Navigator) BookmarkAfter(ctx context.Context, sectionID uint, page models.Page) (BookmarkHit, bool, error) {
	q := n.bookmarks(ctx, sectionID).
		Where(afterPage("pages", page, false)).
		Order("pages.publish_date ASC").Order("pages.slug ASC")
	return n.firstBookmark(ctx, q)
}

// PreviousBookmark returns the bookmark before bm in its section.
func (n *Navigator) PreviousBookmark(ctx context.Context, bm models.PageBookmark) (BookmarkHit, bool, error) {
	anchor, err := n.anchor(ctx, bm)
	if err != nil {
		return BookmarkHit{}, false, err
	}
	q := n.bookmarks(ctx, bm.SectionID).
		Where(beforePage("pages", anchor, false)).
		Order("pages.publish_date DESC").Order("pages.slug DESC")
	return n.firstBookmark(ctx, q)
}

// NextBookmark returns the bookmark after bm in its section.
func (n *Navigator) NextBookmark(ctx context.Context, bm models.PageBookmark) (BookmarkHit, bool, error) {
	anchor, err := n.anchor(ctx, bm)
	if err != nil {
		return BookmarkHit{}, false, err
	}
	q := n.bookmarks(ctx, bm.SectionID).
		Where(afterPage("pages", anchor, false)).
		Order("pages.publish_date ASC").Order("pages.slug ASC")
	return n.firstBookmark(ctx, q)
}

// Bookmarks lists the bookmarks of a section in archive order of their anchors.
func (n *Navigator) Bookmarks(ctx context.Context, sectionID uint) ([]BookmarkHit, error) {
	var ids []uint
	err := n.bookmarks(ctx, sectionID).
		Order("pages.publish_date ASC").Order("pages.slug ASC").
		Pluck("page_bookmarks.id", &ids).Error
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}

	var rows []models.PageBookmark
	if err := n.DB.WithContext(ctx).Preload("Page").Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	byID := make(map[uint]models.PageBookmark, len(rows))
	for _, row := range rows {
		byID[row.ID] = row
	}

	hits := make([]BookmarkHit, 0, len(ids))
	for _, id := range ids {
		bm, ok := byID[id]
		if !ok || bm.Page == nil {
			continue
		}
		page := *bm.Page
		bm.Page = nil
		hits = append(hits, BookmarkHit{Bookmark: bm, Page: page})
	}
	return hits, nil
}

// pages is the visible set for scope.
func (n *Navigator) pages(ctx context.Context, scope Scope) (*gorm.DB, error) {
	q := n.DB.WithContext(ctx).Model(&models.Page{})
	if n.DB.Dialector.Name() == "mysql" {
		index := "idx_pages_archive_order"
		if scope.Section != nil && !scope.Recursive {
			index = "idx_pages_section_order"
		}
		q = q.Clauses(hints.UseIndex(index))
	}
	q = q.Where(visibility("pages", n.Rule))

	if scope.Section == nil {
		return q, nil
	}
	ids := []uint{*scope.Section}
	if scope.Recursive {
		tree, err := LoadSectionTree(ctx, n.DB)
		if err != nil {
			return nil, fmt.Errorf("load section tree: %w", err)
		}
		if d := tree.Descendants(*scope.Section); len(d) > 0 {
			ids = d
		}
	}
	return q.Where("pages.section_id IN ?", ids), nil
}

// bookmarks joins the section's bookmarks to their visible anchor pages.
func (n *Navigator) bookmarks(ctx context.Context, sectionID uint) *gorm.DB {
	return n.DB.WithContext(ctx).Model(&models.Page{}).
		Joins("JOIN page_bookmarks ON page_bookmarks.page_id = pages.id").
		Where("page_bookmarks.section_id = ?", sectionID).
		Where(visibility("pages", n.Rule))
}

func (n *Navigator) firstBookmark(ctx context.Context, q *gorm.DB) (BookmarkHit, bool, error) {
	var ids []uint
	if err := q.Limit(1).Pluck("page_bookmarks.id", &ids).Error; err != nil {
		return BookmarkHit{}, false, err
	}
	if len(ids) == 0 {
		return BookmarkHit{}, false, nil
	}

	var hit BookmarkHit
	db := n.DB.WithContext(ctx)
	if err := db.First(&hit.Bookmark, ids[0]).Error; err != nil {
		return BookmarkHit{}, false, err
	}
	if err := db.First(&hit.Page, hit.Bookmark.PageID).Error; err != nil {
		return BookmarkHit{}, false, err
	}
	return hit, true, nil
}

func (n *Navigator) anchor(ctx context.Context, bm models.PageBookmark) (models.Page, error) {
	var page models.Page
	if err := n.DB.WithContext(ctx).First(&page, bm.PageID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return page, fmt.Errorf("bookmark %d anchor page %d: %w", bm.ID, bm.PageID, ErrNotFound)
		}
		return page, err
	}
	return page, nil
}

func firstPage(q *gorm.DB) (models.Page, bool, error) {
	var pages []models.Page
	if err := q.Limit(1).Find(&pages).Error; err != nil {
		return models.Page{}, false, err
	}
	if len(pages) == 0 {
		return models.Page{}, false, nil
	}
	return pages[0], true, nil
}
