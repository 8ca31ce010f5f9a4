// archive.go
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

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/publishdb/internal/models"
	"github.com/localnerve/publishdb/internal/services"
	"gorm.io/gorm"
)

// ArchiveHandler handles archive navigation routes
type ArchiveHandler struct {
	DB        *gorm.DB
	Navigator *services.Navigator
}

// NewArchiveHandler builds a handler over db using rule as the visibility gate.
func NewArchiveHandler(db *gorm.DB, rule models.VisibilityRule) *ArchiveHandler {
	return &ArchiveHandler{DB: db, Navigator: services.NewNavigator(db, rule)}
}

// PageResult is the response for single page navigation.
type PageResult struct {
	Found bool      `json:"found"`
	Page  *PageView `json:"page,omitempty"`
}

// PositionResult is the response for a page position query.
type PositionResult struct {
	Found bool  `json:"found"`
	Index int64 `json:"index,omitempty"`
	Total int64 `json:"total"`
}

// BookmarksResult lists a section's bookmarks.
type BookmarksResult struct {
	Bookmarks []BookmarkView `json:"bookmarks"`
}

// AroundResult holds the bookmarks on either side of a page.
type AroundResult struct {
	Before *BookmarkView `json:"before"`
	After  *BookmarkView `json:"after"`
}

// TaggedResult lists the visible pages carrying a tag.
type TaggedResult struct {
	Tag   string     `json:"tag"`
	Pages []PageView `json:"pages"`
}

func pageResult(page models.Page, found bool) PageResult {
	if !found {
		return PageResult{}
	}
	return PageResult{Found: true, Page: newPageView(page)}
}

// First handles GET /api/archive/first
// @Summary First page
// @Description Earliest visible page, optionally within a section
// @Tags Archive
// @Produce json
// @Param section query string false "Section slug"
// @Param recursive query bool false "Include descendant sections"
// @Success 200 {object} PageResult
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /archive/first [get]
func (h *ArchiveHandler) First(c *fiber.Ctx) error {
	ctx := c.UserContext()
	scope, err := parseScope(ctx, c, h.DB)
	if err != nil {
		return respondError(c, err, "archive.first")
	}
	page, found, err := h.Navigator.First(ctx, scope)
	if err != nil {
		return respondError(c, err, "archive.first")
	}
	return c.JSON(pageResult(page, found))
}

// Last handles GET /api/archive/last
// @Summary Last page
// @Description Latest visible page, optionally within a section
// @Tags Archive
// @Produce json
// @Param section query string false "Section slug"
// @Param recursive query bool false "Include descendant sections"
// @Success 200 {object} PageResult
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /archive/last [get]
func (h *ArchiveHandler) Last(c *fiber.Ctx) error {
	ctx := c.UserContext()
	scope, err := parseScope(ctx, c, h.DB)
	if err != nil {
		return respondError(c, err, "archive.last")
	}
	page, found, err := h.Navigator.Last(ctx, scope)
	if err != nil {
		return respondError(c, err, "archive.last")
	}
	return c.JSON(pageResult(page, found))
}

// Next handles GET /api/archive/pages/:slug/next
// @Summary Next page
// @Description Visible page immediately after the given page
// @Tags Archive
// @Produce json
// @Param slug path string true "Page slug"
// @Param section query string false "Section slug"
// @Param recursive query bool false "Include descendant sections"
// @Success 200 {object} PageResult
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /archive/pages/{slug}/next [get]
func (h *ArchiveHandler) Next(c *fiber.Ctx) error {
	return h.neighbour(c, "archive.next", h.Navigator.Next)
}

// Previous handles GET /api/archive/pages/:slug/previous
// @Summary Previous page
// @Description Visible page immediately before the given page
// @Tags Archive
// @Produce json
// @Param slug path string true "Page slug"
// @Param section query string false "Section slug"
// @Param recursive query bool false "Include descendant sections"
// @Success 200 {object} PageResult
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /archive/pages/{slug}/previous [get]
func (h *ArchiveHandler) Previous(c *fiber.Ctx) error {
	return h.neighbour(c, "archive.previous", h.Navigator.Previous)
}

type neighbourFunc func(ctx context.Context, page models.Page, scope services.Scope) (models.Page, bool, error)

func (h *ArchiveHandler) neighbour(c *fiber.Ctx, errorType string, fn neighbourFunc) error {
	ctx := c.UserContext()
	page, err := services.PageBySlug(ctx, h.DB, c.Params("slug"))
	if err != nil {
		return respondError(c, err, errorType)
	}
	scope, err := parseScope(ctx, c, h.DB)
	if err != nil {
		return respondError(c, err, errorType)
	}
	next, found, err := fn(ctx, page, scope)
	if err != nil {
		return respondError(c, err, errorType)
	}
	return c.JSON(pageResult(next, found))
}

// Position handles GET /api/archive/pages/:slug/position
// @Summary Page position
// @Description 1-based index of the page among the visible pages in scope
// @Tags Archive
// @Produce json
// @Param slug path string true "Page slug"
// @Param section query string false "Section slug"
// @Param recursive query bool false "Include descendant sections"
// @Success 200 {object} PositionResult
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /archive/pages/{slug}/position [get]
func (h *ArchiveHandler) Position(c *fiber.Ctx) error {
	ctx := c.UserContext()
	page, err := services.PageBySlug(ctx, h.DB, c.Params("slug"))
	if err != nil {
		return respondError(c, err, "archive.position")
	}
	scope, err := parseScope(ctx, c, h.DB)
	if err != nil {
		return respondError(c, err, "archive.position")
	}
	index, total, found, err := h.Navigator.Position(ctx, page, scope)
	if err != nil {
		return respondError(c, err, "archive.position")
	}
	return c.JSON(PositionResult{Found: found, Index: index, Total: total})
}

// Bookmarks handles GET /api/archive/sections/:slug/bookmarks
// @Summary Section bookmarks
// @Description Bookmarks of a section in archive order
// @Tags Archive
// @Produce json
// @Param slug path string true "Section slug"
// @Success 200 {object} BookmarksResult
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /archive/sections/{slug}/bookmarks [get]
func (h *ArchiveHandler) Bookmarks(c *fiber.Ctx) error {
	ctx := c.UserContext()
	section, err := services.SectionBySlug(ctx, h.DB, c.Params("slug"))
	if err != nil {
		return respondError(c, err, "archive.bookmarks")
	}
	hits, err := h.Navigator.Bookmarks(ctx, section.ID)
	if err != nil {
		return respondError(c, err, "archive.bookmarks")
	}
	result := BookmarksResult{Bookmarks: make([]BookmarkView, 0, len(hits))}
	for _, hit := range hits {
		result.Bookmarks = append(result.Bookmarks, *newBookmarkView(hit))
	}
	return c.JSON(result)
}

// BookmarksAround handles GET /api/archive/sections/:slug/bookmarks/around/:page
// @Summary Bookmarks around a page
// @Description Nearest bookmark at or before the page and nearest bookmark after it
// @Tags Archive
// @Produce json
// @Param slug path string true "Section slug"
// @Param page path string true "Page slug"
// @Success 200 {object} AroundResult
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /archive/sections/{slug}/bookmarks/around/{page} [get]
func (h *ArchiveHandler) BookmarksAround(c *fiber.Ctx) error {
	ctx := c.UserContext()
	section, err := services.SectionBySlug(ctx, h.DB, c.Params("slug"))
	if err != nil {
		return respondError(c, err, "archive.bookmarks.around")
	}
	page, err := services.PageBySlug(ctx, h.DB, c.Params("page"))
	if err != nil {
		return respondError(c, err, "archive.bookmarks.around")
	}

	var result AroundResult
	before, found, err := h.Navigator.BookmarkBefore(ctx, section.ID, page)
	if err != nil {
		return respondError(c, err, "archive.bookmarks.around")
	}
	if found {
		result.Before = newBookmarkView(before)
	}
	after, found, err := h.Navigator.BookmarkAfter(ctx, section.ID, page)
	if err != nil {
		return respondError(c, err, "archive.bookmarks.around")
	}
	if found {
		result.After = newBookmarkView(after)
	}
	return c.JSON(result)
}

// Tagged handles GET /api/archive/tags/:name
// @Summary Pages by tag
// @Description Visible pages carrying a tag, in archive order
// @Tags Archive
// @Produce json
// @Param name path string true "Tag name"
// @Success 200 {object} TaggedResult
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /archive/tags/{name} [get]
func (h *ArchiveHandler) Tagged(c *fiber.Ctx) error {
	name := c.Params("name")
	pages, err := services.PagesByTag(c.UserContext(), h.DB, h.Navigator.Rule, name)
	if err != nil {
		return respondError(c, err, "archive.tags")
	}
	result := TaggedResult{Tag: name, Pages: make([]PageView, 0, len(pages))}
	for _, p := range pages {
		result.Pages = append(result.Pages, *newPageView(p))
	}
	return c.JSON(result)
}
