// fixtures.go
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

package testutil

import (
	"testing"
	"time"

	"github.com/localnerve/publishdb/internal/models"
	"gorm.io/gorm"
)

// Fixtures inserts rows for tests, failing the test on any error.
type Fixtures struct {
	T  testing.TB
	DB *gorm.DB
}

// NewFixtures binds a fixture builder to db.
func NewFixtures(t testing.TB, db *gorm.DB) *Fixtures {
	return &Fixtures{T: t, DB: db}
}

// Day returns midnight UTC on the given date.
func Day(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// User inserts a user.
func (f *Fixtures) User(name string) models.User {
	f.T.Helper()
	u := models.User{Name: name}
	f.create(&u)
	return u
}

// Section inserts a section under parent (nil for a root).
func (f *Fixtures) Section(slug string, owner models.User, parent *models.Section) models.Section {
	f.T.Helper()
	s := models.Section{Slug: slug, Title: slug, UserID: owner.ID}
	if parent != nil {
		s.ParentID = &parent.ID
	}
	f.create(&s)
	return s
}

// PageOption adjusts a page before it is inserted.
type PageOption func(*models.Page)

// Draft leaves the page unpublished.
func Draft() PageOption {
	return func(p *models.Page) { p.PublishStatus = models.PublishStatusDraft }
}

// Hidden clears the visibility flag.
func Hidden() PageOption {
	return func(p *models.Page) { p.IsVisible = false }
}

// Unsectioned detaches the page from any section.
func Unsectioned() PageOption {
	return func(p *models.Page) { p.SectionID = nil }
}

// Page inserts a published, visible page in section dated at.
func (f *Fixtures) Page(slug string, section models.Section, at time.Time, opts ...PageOption) models.Page {
	f.T.Helper()
	p := models.Page{
		Slug:          slug,
		Title:         slug,
		UserID:        section.UserID,
		SectionID:     &section.ID,
		PublishDate:   at,
		PublishStatus: models.PublishStatusPublished,
		IsVisible:     true,
	}
	for _, opt := range opts {
		opt(&p)
	}
	f.create(&p)
	return p
}

// Bookmark anchors a labelled bookmark at page in section.
func (f *Fixtures) Bookmark(section models.Section, page models.Page, label string) models.PageBookmark {
	f.T.Helper()
	bm := models.PageBookmark{SectionID: section.ID, PageID: page.ID, Label: label}
	f.create(&bm)
	return bm
}

func (f *Fixtures) create(value interface{}) {
	f.T.Helper()
	if err := f.DB.Create(value).Error; err != nil {
		f.T.Fatalf("create %T: %v", value, err)
	}
}
