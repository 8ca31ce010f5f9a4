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

func TestGlobals(t *testing.T) {
	db := testutil.NewSite(t)
	ctx := context.Background()

	_, ok, err := services.GetInt(ctx, db, "answer")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, services.SetInt(ctx, db, "answer", 41))
	require.NoError(t, services.SetInt(ctx, db, "answer", 42))
	v, ok, err := services.GetInt(ctx, db, "answer")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 42, v)

	_, ok, err = services.GetString(ctx, db, "answer")
	require.NoError(t, err)
	assert.False(t, ok, "an int global has no string value")

	require.NoError(t, services.SetString(ctx, db, "motto", "hello"))
	s, ok, err := services.GetString(ctx, db, "motto")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "hello", s)

	var count int64
	require.NoError(t, db.Model(&models.Global{}).Where(map[string]interface{}{"key": []string{"answer", "motto"}}).Count(&count).Error)
	assert.Equal(t, int64(2), count)
}

func TestSessionKeyIsStable(t *testing.T) {
	db := testutil.NewSite(t)
	ctx := context.Background()

	first, err := services.SessionKey(ctx, db)
	require.NoError(t, err)
	assert.Len(t, first, 32)

	second, err := services.SessionKey(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	stored, ok, err := services.GetString(ctx, db, models.SessionKeyName)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, first, stored)
}

func TestUserPasswords(t *testing.T) {
	db := testutil.NewSite(t)
	ctx := context.Background()

	user, err := services.CreateUser(ctx, db, services.UserInput{
		Name:     "Alice",
		Username: "alice",
		Email:    " Alice@Example.com ",
		Password: "correct horse",
	})
	require.NoError(t, err)

	got, err := services.CheckPassword(ctx, db, "alice", "correct horse")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	_, err = services.CheckPassword(ctx, db, "alice", "battery staple")
	assert.ErrorIs(t, err, services.ErrInvalidPassword)
	_, err = services.CheckPassword(ctx, db, "mallory", "correct horse")
	assert.ErrorIs(t, err, services.ErrInvalidPassword)

	_, err = services.CreateUser(ctx, db, services.UserInput{Name: "Alice2", Username: "alice2", Email: "alice@example.com", Password: "x"})
	assert.Error(t, err, "emails are unique regardless of case")

	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	token, err := services.IssueResetToken(ctx, db, "ALICE@example.com", now)
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	assert.ErrorIs(t, services.ResetPassword(ctx, db, token, "late", now.Add(services.ResetTokenTTL)), services.ErrResetTokenInvalid)
	assert.ErrorIs(t, services.ResetPassword(ctx, db, "bogus", "nope", now), services.ErrResetTokenInvalid)

	require.NoError(t, services.ResetPassword(ctx, db, token, "battery staple", now.Add(time.Hour)))
	_, err = services.CheckPassword(ctx, db, "alice", "battery staple")
	require.NoError(t, err)
	_, err = services.CheckPassword(ctx, db, "alice", "correct horse")
	assert.ErrorIs(t, err, services.ErrInvalidPassword)

	assert.ErrorIs(t, services.ResetPassword(ctx, db, token, "again", now.Add(time.Hour)), services.ErrResetTokenInvalid, "tokens are single use")

	_, err = services.IssueResetToken(ctx, db, "nobody@example.com", now)
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestAdminLog(t *testing.T) {
	db := testutil.NewSite(t)
	f := testutil.NewFixtures(t, db)
	admin := f.User("admin")
	other := f.User("other")
	ctx := context.Background()
	base := testutil.Day(2024, 1, 1)

	for i, path := range []string{"/a", "/b", "/c"} {
		_, err := services.RecordAdminAction(ctx, db, models.AdminLog{
			UserID:    admin.ID,
			Timestamp: base.Add(time.Duration(i) * time.Minute),
			IP:        "127.0.0.1",
			Path:      path,
		})
		require.NoError(t, err)
	}
	entry, err := services.RecordAdminAction(ctx, db, models.AdminLog{UserID: other.ID, IP: "10.0.0.1", Path: "/other", SessionID: "fixed"})
	require.NoError(t, err)
	assert.Equal(t, "fixed", entry.SessionID)
	assert.False(t, entry.Timestamp.IsZero())

	recent, err := services.RecentAdminActions(ctx, db, admin.ID, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "/c", recent[0].Path)
	assert.Equal(t, "/b", recent[1].Path)
	assert.NotEmpty(t, recent[0].SessionID)
	assert.NotEqual(t, recent[0].SessionID, recent[1].SessionID)

	all, err := services.RecentAdminActions(ctx, db, 0, 0)
	require.NoError(t, err)
	assert.Len(t, all, 4)
}

func TestTags(t *testing.T) {
	site := newABCSite(t)
	f := testutil.NewFixtures(t, site.db)
	draft := f.Page("draft", site.section, testutil.Day(2020, 1, 4), testutil.Draft())
	ctx := context.Background()

	for _, p := range []models.Page{site.c, site.a, draft} {
		_, err := services.TagPage(ctx, site.db, p.ID, " Strips ")
		require.NoError(t, err)
	}
	_, err := services.TagPage(ctx, site.db, site.a.ID, "strips")
	require.NoError(t, err, "tagging twice is a no-op")
	_, err = services.TagPage(ctx, site.db, site.a.ID, "colour")
	require.NoError(t, err)

	names, err := services.PageTags(ctx, site.db, site.a.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"colour", "strips"}, names)

	pages, err := services.PagesByTag(ctx, site.db, models.VisibleBoth, "STRIPS")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "c"}, slugs(pages))

	pages, err = services.PagesByTag(ctx, site.db, models.VisibleByFlag, "strips")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "c", "draft"}, slugs(pages))

	require.NoError(t, services.UntagPage(ctx, site.db, site.a.ID, "strips"))
	require.NoError(t, services.UntagPage(ctx, site.db, site.a.ID, "never-used"))
	pages, err = services.PagesByTag(ctx, site.db, models.VisibleBoth, "strips")
	require.NoError(t, err)
	assert.Equal(t, []string{"c"}, slugs(pages))

	_, err = services.TagPage(ctx, site.db, 9999, "strips")
	assert.ErrorIs(t, err, services.ErrNotFound)
	_, err = services.TagPage(ctx, site.db, site.a.ID, "  ")
	assert.Error(t, err)
}

func TestAssets(t *testing.T) {
	db := testutil.NewSite(t)
	f := testutil.NewFixtures(t, db)
	alice := f.User("alice")
	bob := f.User("bob")
	ctx := context.Background()
	width, height := 640, 480

	asset, created, err := services.StoreAsset(ctx, db, services.AssetInput{
		UserID:      alice.ID,
		FilePath:    "uploads/cat.png",
		ContentType: "image/png",
		Content:     []byte("not really a png"),
		Width:       &width,
		Height:      &height,
		Metadata:    map[string]interface{}{"camera": "pinhole"},
	})
	require.NoError(t, err)
	assert.True(t, created)
	assert.Len(t, asset.ContentHash, 64)

	again, created, err := services.StoreAsset(ctx, db, services.AssetInput{
		UserID:   alice.ID,
		FilePath: "uploads/cat-copy.png",
		Content:  []byte("not really a png"),
	})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, asset.ID, again.ID)
	assert.Equal(t, "uploads/cat.png", again.FilePath)

	var meta map[string]string
	require.NoError(t, again.Metadata.Decode(&meta))
	assert.Equal(t, "pinhole", meta["camera"])

	theirs, created, err := services.StoreAsset(ctx, db, services.AssetInput{
		UserID:  bob.ID,
		Content: []byte("not really a png"),
	})
	require.NoError(t, err)
	assert.True(t, created)
	assert.NotEqual(t, asset.ID, theirs.ID)
	assert.Equal(t, "application/octet-stream", theirs.ContentType)

	_, err = services.AddRendition(ctx, db, models.RenderedAsset{AssetID: asset.ID, SizeMode: models.SizeModeExact, Width: 100, Height: 75, FilePath: "r/1.png"})
	require.NoError(t, err)
	_, err = services.AddRendition(ctx, db, models.RenderedAsset{AssetID: asset.ID, SizeMode: models.SizeModeExact, Width: 100, Height: 75, FilePath: "r/2.png"})
	require.NoError(t, err)
	_, err = services.AddRendition(ctx, db, models.RenderedAsset{AssetID: asset.ID, SizeMode: models.SizeModeHarmonic, Width: 320, Height: 240, Scale: 2, FilePath: "r/3.png"})
	require.NoError(t, err)
	_, err = services.AddRendition(ctx, db, models.RenderedAsset{AssetID: asset.ID, SizeMode: 5, FilePath: "r/bad.png"})
	assert.ErrorIs(t, err, models.ErrUnknownSizeMode)

	renditions, err := services.Renditions(ctx, db, asset.ID)
	require.NoError(t, err)
	require.Len(t, renditions, 2)
	assert.Equal(t, models.SizeModeHarmonic, renditions[0].SizeMode)
	assert.Equal(t, "r/2.png", renditions[1].FilePath)
	assert.Equal(t, 1, renditions[1].Scale)
}
