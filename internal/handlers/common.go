// common.go
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

package handlers

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/publishdb/internal/models"
	"github.com/localnerve/publishdb/internal/services"
	"github.com/localnerve/publishdb/internal/types"
	"github.com/localnerve/publishdb/internal/utils"
	"gorm.io/gorm"
)

// PageView is the public JSON shape of a page.
type PageView struct {
	Slug          string               `json:"slug"`
	Title         string               `json:"title"`
	Description   string               `json:"description,omitempty"`
	SectionID     *uint                `json:"sectionId,omitempty"`
	PublishDate   time.Time            `json:"publishDate"`
	PublishStatus models.PublishStatus `json:"publishStatus"`
	Theme         string               `json:"theme,omitempty"`
}

// BookmarkView is the public JSON shape of a bookmark and its anchor page.
type BookmarkView struct {
	ID        uint     `json:"id"`
	Label     string   `json:"label"`
	SectionID uint     `json:"sectionId"`
	Page      PageView `json:"page"`
}

func newPageView(p models.Page) *PageView {
	return &PageView{
		Slug:          p.Slug,
		Title:         p.Title,
		Description:   p.Description,
		SectionID:     p.SectionID,
		PublishDate:   p.PublishDate,
		PublishStatus: p.PublishStatus,
		Theme:         p.Theme,
	}
}

func newBookmarkView(hit services.BookmarkHit) *BookmarkView {
	return &BookmarkView{
		ID:        hit.Bookmark.ID,
		Label:     hit.Bookmark.Label,
		SectionID: hit.Bookmark.SectionID,
		Page:      *newPageView(hit.Page),
	}
}

// parseScope reads the section and recursive query arguments.
// An empty section means the whole site.
func parseScope(ctx context.Context, c *fiber.Ctx, db *gorm.DB) (services.Scope, error) {
	slug := c.Query("section")
	recursive := false
	if raw := c.Query("recursive"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return services.Scope{}, types.NewBadRequest("archive.validation.recursive", "recursive must be a boolean, got %q", raw)
		}
		recursive = v
	}
	if slug == "" {
		return services.Unscoped(), nil
	}
	section, err := services.SectionBySlug(ctx, db, slug)
	if err != nil {
		return services.Scope{}, err
	}
	return services.InSection(section.ID, recursive), nil
}

// respondError maps service errors onto JSON error responses.
func respondError(c *fiber.Ctx, err error, errorType string) error {
	var custom *types.CustomError
	switch {
	case errors.As(err, &custom):
		return utils.ErrorResponse(c, custom.Message, custom.Code, custom.Type)
	case errors.Is(err, services.ErrNotFound):
		return utils.NotFoundResponse(c, err.Error())
	}
	return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, errorType)
}
