// archive_test.go
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

package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/publishdb/internal/config"
	"github.com/localnerve/publishdb/internal/database"
	"github.com/localnerve/publishdb/internal/handlers"
	"github.com/localnerve/publishdb/internal/models"
	"github.com/localnerve/publishdb/internal/services"
	"github.com/localnerve/publishdb/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"
)

// setupApp builds a site with a comics section holding pages a, b and c, a
// child section holding page x, and a bookmark at b.
func setupApp(t *testing.T, cacheFor time.Duration) (*fiber.App, *gorm.DB) {
	t.Helper()
	db := testutil.NewSite(t)
	f := testutil.NewFixtures(t, db)
	owner := f.User("author")
	comics := f.Section("comics", owner, nil)
	extras := f.Section("extras", owner, &comics)

	f.Page("a", comics, testutil.Day(2020, 1, 1))
	b := f.Page("b", comics, testutil.Day(2020, 1, 2))
	f.Page("x", extras, testutil.Day(2020, 1, 2).Add(time.Hour))
	f.Page("c", comics, testutil.Day(2020, 1, 3))
	f.Page("draft", comics, testutil.Day(2020, 1, 4), testutil.Draft())
	f.Bookmark(comics, b, "Ch.2")

	cfg := &config.Config{
		DBType:          "sqlite-purego",
		CacheExpiration: cacheFor,
		VisibilityRule:  models.VisibleBoth,
	}
	app := fiber.New()
	handlers.Register(app, cfg, db, database.DefaultRegistry(), zaptest.NewLogger(t))
	return app, db
}

func get(t *testing.T, app *fiber.App, target string, out interface{}) *http.Response {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, target, nil))
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp
}

func TestArchiveFirstAndLast(t *testing.T) {
	app, _ := setupApp(t, 0)

	var result handlers.PageResult
	resp := get(t, app, "/api/archive/first?section=comics", &result)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.True(t, result.Found)
	assert.Equal(t, "a", result.Page.Slug)

	result = handlers.PageResult{}
	get(t, app, "/api/archive/last?section=comics", &result)
	require.True(t, result.Found)
	assert.Equal(t, "c", result.Page.Slug)
	assert.Equal(t, models.PublishStatusPublished, result.Page.PublishStatus)

	result = handlers.PageResult{}
	get(t, app, "/api/archive/last?section=extras", &result)
	require.True(t, result.Found)
	assert.Equal(t, "x", result.Page.Slug)
}

func TestArchiveNextAndPrevious(t *testing.T) {
	app, _ := setupApp(t, 0)

	var result handlers.PageResult
	get(t, app, "/api/archive/pages/b/next?section=comics", &result)
	require.True(t, result.Found)
	assert.Equal(t, "c", result.Page.Slug)

	result = handlers.PageResult{}
	get(t, app, "/api/archive/pages/b/next?section=comics&recursive=true", &result)
	require.True(t, result.Found)
	assert.Equal(t, "x", result.Page.Slug)

	result = handlers.PageResult{}
	get(t, app, "/api/archive/pages/c/previous?section=comics&recursive=1", &result)
	require.True(t, result.Found)
	assert.Equal(t, "x", result.Page.Slug)

	result = handlers.PageResult{}
	resp := get(t, app, "/api/archive/pages/c/next?section=comics", &result)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.False(t, result.Found)
	assert.Nil(t, result.Page)

	result = handlers.PageResult{}
	get(t, app, "/api/archive/pages/a/previous", &result)
	assert.False(t, result.Found)
}

func TestArchivePosition(t *testing.T) {
	app, _ := setupApp(t, 0)

	var result handlers.PositionResult
	get(t, app, "/api/archive/pages/c/position?section=comics&recursive=true", &result)
	assert.True(t, result.Found)
	assert.Equal(t, int64(4), result.Index)
	assert.Equal(t, int64(4), result.Total)

	result = handlers.PositionResult{}
	get(t, app, "/api/archive/pages/draft/position?section=comics", &result)
	assert.False(t, result.Found)
	assert.Equal(t, int64(3), result.Total)
}

func TestArchiveErrors(t *testing.T) {
	app, _ := setupApp(t, 0)

	var body map[string]interface{}
	resp := get(t, app, "/api/archive/pages/missing/next", &body)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, false, body["ok"])

	resp = get(t, app, "/api/archive/first?section=nowhere", nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	body = nil
	resp = get(t, app, "/api/archive/first?section=comics&recursive=sometimes", &body)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "archive.validation.recursive", body["type"])

	resp = get(t, app, "/api/archive/sections/nowhere/bookmarks", nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestArchiveBookmarks(t *testing.T) {
	app, _ := setupApp(t, 0)

	var list handlers.BookmarksResult
	get(t, app, "/api/archive/sections/comics/bookmarks", &list)
	require.Len(t, list.Bookmarks, 1)
	assert.Equal(t, "Ch.2", list.Bookmarks[0].Label)
	assert.Equal(t, "b", list.Bookmarks[0].Page.Slug)

	var around handlers.AroundResult
	get(t, app, "/api/archive/sections/comics/bookmarks/around/c", &around)
	require.NotNil(t, around.Before)
	assert.Equal(t, "Ch.2", around.Before.Label)
	assert.Nil(t, around.After)

	around = handlers.AroundResult{}
	get(t, app, "/api/archive/sections/comics/bookmarks/around/a", &around)
	assert.Nil(t, around.Before)
	require.NotNil(t, around.After)
	assert.Equal(t, "Ch.2", around.After.Label)

	var empty handlers.BookmarksResult
	get(t, app, "/api/archive/sections/extras/bookmarks", &empty)
	assert.NotNil(t, empty.Bookmarks)
	assert.Empty(t, empty.Bookmarks)
}

func TestArchiveTagged(t *testing.T) {
	app, db := setupApp(t, 0)
	ctx := t.Context()
	for _, slug := range []string{"c", "a", "draft"} {
		page, err := services.PageBySlug(ctx, db, slug)
		require.NoError(t, err)
		_, err = services.TagPage(ctx, db, page.ID, "strips")
		require.NoError(t, err)
	}

	var result handlers.TaggedResult
	get(t, app, "/api/archive/tags/strips", &result)
	assert.Equal(t, "strips", result.Tag)
	require.Len(t, result.Pages, 2)
	assert.Equal(t, "a", result.Pages[0].Slug)
	assert.Equal(t, "c", result.Pages[1].Slug)
}

func TestArchiveCache(t *testing.T) {
	app, db := setupApp(t, time.Minute)

	var result handlers.PageResult
	resp := get(t, app, "/api/archive/last?section=comics", &result)
	assert.Equal(t, "miss", resp.Header.Get("X-Cache"))
	assert.Equal(t, "c", result.Page.Slug)

	page, err := services.PageBySlug(t.Context(), db, "c")
	require.NoError(t, err)
	require.NoError(t, services.SetPublishStatus(t.Context(), db, page.ID, models.PublishStatusDraft, true))

	result = handlers.PageResult{}
	resp = get(t, app, "/api/archive/last?utm_source=feed&section=comics", &result)
	assert.Equal(t, "hit", resp.Header.Get("X-Cache"))
	assert.Equal(t, "c", result.Page.Slug, "cached until expiry")

	result = handlers.PageResult{}
	resp = get(t, app, "/api/archive/last?section=comics&recursive=false", &result)
	assert.Equal(t, "miss", resp.Header.Get("X-Cache"))
	assert.Equal(t, "b", result.Page.Slug)
}

func TestHealthRoute(t *testing.T) {
	app, _ := setupApp(t, 0)

	var result services.HealthCheckResult
	resp := get(t, app, "/health", &result)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "healthy", result.Status)
}

func TestVersionHeader(t *testing.T) {
	app, _ := setupApp(t, 0)

	req := httptest.NewRequest(http.MethodGet, "/api/archive/first", nil)
	req.Header.Set("X-Api-Version", "1")
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "1.0.0", resp.Header.Get("X-Api-Version"))
}
