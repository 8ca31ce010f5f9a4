// content.go
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

package models

import (
	"time"

	"gorm.io/gorm"
)

// ContentClass names a kind of page ("image", "article").
type ContentClass struct {
	ID          uint   `gorm:"primaryKey;autoIncrement"`
	Name        string `gorm:"size:191;not null;uniqueIndex"`
	Description string `gorm:"size:1024;not null;default:''"`
}

// Section is a node in the site hierarchy. ParentID links form a forest;
// writes go through services that refuse cycles.
type Section struct {
	ID            uint      `gorm:"primaryKey;autoIncrement"`
	Slug          string    `gorm:"size:191;not null;uniqueIndex"`
	Title         string    `gorm:"size:255;not null;default:''"`
	UserID        uint      `gorm:"not null;index"`
	User          *User     `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	ParentID      *uint     `gorm:"index"`
	Parent        *Section  `gorm:"constraint:OnDelete:SET NULL" json:"-"`
	Children      []Section `gorm:"foreignKey:ParentID" json:"-"`
	Theme         string    `gorm:"size:191;not null;default:''"`
	SplashAssetID *uint
	SplashAsset   *Asset `gorm:"constraint:OnDelete:SET NULL" json:"-"`
	CreatedAt     time.Time
}

// Page is a content entry. Archive order is (PublishDate, Slug).
type Page struct {
	ID             uint          `gorm:"primaryKey;autoIncrement"`
	Slug           string        `gorm:"size:191;not null;uniqueIndex;index:idx_pages_archive_order,priority:2;index:idx_pages_section_order,priority:3"`
	UserID         uint          `gorm:"not null;index"`
	User           *User         `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	SectionID      *uint         `gorm:"index:idx_pages_section_order,priority:1"`
	Section        *Section      `gorm:"constraint:OnDelete:SET NULL" json:"-"`
	ContentClassID *uint         `gorm:"index"`
	ContentClass   *ContentClass `gorm:"constraint:OnDelete:SET NULL" json:"-"`
	Title          string        `gorm:"size:255;not null"`
	Description    string        `gorm:"size:2000;not null;default:''"`
	CreatedAt      time.Time
	PublishDate    time.Time     `gorm:"not null;index:idx_pages_archive_order,priority:1;index:idx_pages_section_order,priority:2"`
	PublishStatus  PublishStatus `gorm:"not null;default:0"`
	IsVisible      bool          `gorm:"not null;default:false"`
	Theme          string        `gorm:"size:191;not null;default:''"`
}

// BeforeSave stores publish dates in UTC at second precision so archive
// comparisons agree across dialects.
func (p *Page) BeforeSave(tx *gorm.DB) error {
	p.PublishDate = ArchiveTime(p.PublishDate)
	return nil
}

// ArchiveTime is the stored form of a publish date: UTC, whole seconds.
// Values bound against publish_date must use it too.
func ArchiveTime(t time.Time) time.Time {
	return t.UTC().Truncate(time.Second)
}

// Before reports whether p sorts strictly before other in archive order.
func (p Page) Before(other Page) bool {
	if !p.PublishDate.Equal(other.PublishDate) {
		return p.PublishDate.Before(other.PublishDate)
	}
	return p.Slug < other.Slug
}

// PageContent is one ordered chunk of a page.
type PageContent struct {
	ID           uint   `gorm:"primaryKey;autoIncrement"`
	PageID       uint   `gorm:"not null;uniqueIndex:idx_page_contents_order,priority:1"`
	Page         *Page  `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	DisplayOrder int    `gorm:"not null;uniqueIndex:idx_page_contents_order,priority:2"`
	AssetID      *uint  `gorm:"index"`
	Asset        *Asset `gorm:"constraint:OnDelete:SET NULL" json:"-"`
	Caption      string `gorm:"size:1024;not null;default:''"`
	LinkURL      string `gorm:"size:1024;not null;default:''"`
	Text         string `gorm:"type:text"`
	CustomMarkup string `gorm:"type:text"`
}

// Tag is a free-form label.
type Tag struct {
	ID   uint   `gorm:"primaryKey;autoIncrement"`
	Name string `gorm:"size:191;not null;uniqueIndex"`
}

// TaggedPage joins tags and pages.
type TaggedPage struct {
	ID     uint  `gorm:"primaryKey;autoIncrement"`
	TagID  uint  `gorm:"not null;uniqueIndex:idx_tagged_pages_pair,priority:1"`
	Tag    *Tag  `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	PageID uint  `gorm:"not null;uniqueIndex:idx_tagged_pages_pair,priority:2;index"`
	Page   *Page `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

// PageBookmark is a named waypoint in a section's archive, anchored at one page.
type PageBookmark struct {
	ID        uint     `gorm:"primaryKey;autoIncrement"`
	SectionID uint     `gorm:"not null;uniqueIndex:idx_page_bookmarks_anchor,priority:1"`
	Section   *Section `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	PageID    uint     `gorm:"not null;uniqueIndex:idx_page_bookmarks_anchor,priority:2;index"`
	Page      *Page    `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Label     string   `gorm:"size:255;not null"`
}

// TableName overrides the table name for ContentClass
func (ContentClass) TableName() string {
	return "content_classes"
}

// TableName overrides the table name for Section
func (Section) TableName() string {
	return "sections"
}

// TableName overrides the table name for Page
func (Page) TableName() string {
	return "pages"
}

// TableName overrides the table name for PageContent
func (PageContent) TableName() string {
	return "page_contents"
}

// TableName overrides the table name for Tag
func (Tag) TableName() string {
	return "tags"
}

// TableName overrides the table name for TaggedPage
func (TaggedPage) TableName() string {
	return "tagged_pages"
}

// TableName overrides the table name for PageBookmark
func (PageBookmark) TableName() string {
	return "page_bookmarks"
}
