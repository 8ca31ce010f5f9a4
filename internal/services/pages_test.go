package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/localnerve/publishdb/internal/models"
	"github.com/localnerve/publishdb/internal/services"
	"github.com/localnerve/publishdb/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePage(t *testing.T) {
	db := testutil.NewSite(t)
	f := testutil.NewFixtures(t, db)
	owner := f.User("author")
	s := f.Section("s", owner, nil)
	ctx := context.Background()

	before := time.Now().UTC().Add(-time.Second)
	page, err := services.CreatePage(ctx, db, services.PageInput{
		Slug:      "hello",
		Title:     "Hello",
		UserID:    owner.ID,
		SectionID: &s.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, models.PublishStatusDraft, page.PublishStatus)
	assert.False(t, page.IsVisible)
	assert.Zero(t, page.PublishDate.Nanosecond())
	assert.Equal(t, time.UTC, page.PublishDate.Location())
	assert.False(t, page.PublishDate.Before(before.Truncate(time.Second)))

	loaded, err := services.PageBySlug(ctx, db, "hello")
	require.NoError(t, err)
	assert.Equal(t, page.ID, loaded.ID)
	assert.True(t, page.PublishDate.Equal(loaded.PublishDate))

	_, err = services.PageBySlug(ctx, db, "missing")
	assert.ErrorIs(t, err, services.ErrNotFound)

	_, err = services.CreatePage(ctx, db, services.PageInput{Slug: "bad", UserID: owner.ID, PublishStatus: 7})
	assert.ErrorIs(t, err, models.ErrUnknownPublishStatus)

	_, err = services.CreatePage(ctx, db, services.PageInput{Slug: "hello", UserID: owner.ID})
	assert.Error(t, err, "slugs are unique")
}

func TestSetPublishStatus(t *testing.T) {
	site := newABCSite(t)
	ctx := context.Background()
	nav := services.NewNavigator(site.db, models.VisibleBoth)
	scope := services.InSection(site.section.ID, false)

	require.NoError(t, services.SetPublishStatus(ctx, site.db, site.b.ID, models.PublishStatusDraft, true))
	next, found, err := nav.Next(ctx, site.a, scope)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "c", next.Slug)

	require.NoError(t, services.SetPublishStatus(ctx, site.db, site.b.ID, models.PublishStatusPublished, true))
	next, _, err = nav.Next(ctx, site.a, scope)
	require.NoError(t, err)
	assert.Equal(t, "b", next.Slug)

	loaded, err := services.PageBySlug(ctx, site.db, "b")
	require.NoError(t, err)
	assert.True(t, loaded.PublishDate.Equal(site.b.PublishDate), "status changes keep the publish date")

	assert.ErrorIs(t, services.SetPublishStatus(ctx, site.db, 9999, models.PublishStatusPublished, true), services.ErrNotFound)
	assert.ErrorIs(t, services.SetPublishStatus(ctx, site.db, site.b.ID, 9, true), models.ErrUnknownPublishStatus)
}

func TestPageContents(t *testing.T) {
	site := newABCSite(t)
	ctx := context.Background()

	for _, text := range []string{"one", "two", "three"} {
		_, err := services.AddPageContent(ctx, site.db, models.PageContent{PageID: site.a.ID, Text: text, DisplayOrder: 42})
		require.NoError(t, err)
	}
	_, err := services.AddPageContent(ctx, site.db, models.PageContent{PageID: site.b.ID, Text: "other"})
	require.NoError(t, err)

	contents, err := services.PageContents(ctx, site.db, site.a.ID)
	require.NoError(t, err)
	require.Len(t, contents, 3)
	for i, c := range contents {
		assert.Equal(t, i, c.DisplayOrder)
	}
	assert.Equal(t, "three", contents[2].Text)
}
