package services_test

import (
	"context"
	"testing"

	"github.com/localnerve/publishdb/internal/models"
	"github.com/localnerve/publishdb/internal/services"
	"github.com/localnerve/publishdb/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uintPtr(v uint) *uint { return &v }

func section(id uint, parent *uint) models.Section {
	return models.Section{ID: id, ParentID: parent}
}

func TestSectionTree(t *testing.T) {
	//   1         5
	//  / \
	// 2   3
	//     |
	//     4
	tree := services.NewSectionTree([]models.Section{
		section(4, uintPtr(3)),
		section(1, nil),
		section(3, uintPtr(1)),
		section(2, uintPtr(1)),
		section(5, nil),
	})

	assert.Equal(t, 5, tree.Len())
	assert.Equal(t, []uint{1, 5}, tree.Roots())
	assert.Equal(t, []uint{2, 3}, tree.Children(1))
	assert.Equal(t, []uint{1, 2, 3, 4}, tree.Descendants(1))
	assert.Equal(t, []uint{3, 4}, tree.Descendants(3))
	assert.Equal(t, []uint{5}, tree.Descendants(5))
	assert.Nil(t, tree.Descendants(42))
	assert.Equal(t, []uint{3, 1}, tree.Ancestors(4))
	assert.Empty(t, tree.Ancestors(1))

	assert.True(t, tree.Contains(1, 4))
	assert.True(t, tree.Contains(4, 4))
	assert.False(t, tree.Contains(4, 1))
	assert.False(t, tree.Contains(5, 4))
	assert.False(t, tree.Contains(42, 42))

	assert.True(t, tree.WouldCycle(1, uintPtr(4)))
	assert.True(t, tree.WouldCycle(3, uintPtr(3)))
	assert.False(t, tree.WouldCycle(4, uintPtr(2)))
	assert.False(t, tree.WouldCycle(1, nil))
}

func TestSectionTreeToleratesStoredCycle(t *testing.T) {
	tree := services.NewSectionTree([]models.Section{
		section(1, uintPtr(2)),
		section(2, uintPtr(1)),
	})
	assert.Equal(t, []uint{1, 2}, tree.Descendants(1))
	assert.Equal(t, []uint{2}, tree.Ancestors(1))
	assert.Empty(t, tree.Roots())
}

func TestCreateAndMoveSection(t *testing.T) {
	db := testutil.NewSite(t)
	f := testutil.NewFixtures(t, db)
	owner := f.User("author")
	ctx := context.Background()

	root, err := services.CreateSection(ctx, db, services.SectionInput{Slug: "root", Title: "Root", UserID: owner.ID})
	require.NoError(t, err)
	child, err := services.CreateSection(ctx, db, services.SectionInput{Slug: "child", UserID: owner.ID, ParentID: &root.ID})
	require.NoError(t, err)
	grandchild, err := services.CreateSection(ctx, db, services.SectionInput{Slug: "grandchild", UserID: owner.ID, ParentID: &child.ID})
	require.NoError(t, err)

	_, err = services.CreateSection(ctx, db, services.SectionInput{Slug: "orphan", UserID: owner.ID, ParentID: uintPtr(9999)})
	assert.ErrorIs(t, err, services.ErrNotFound)

	assert.ErrorIs(t, services.MoveSection(ctx, db, root.ID, &grandchild.ID), services.ErrSectionCycle)
	assert.ErrorIs(t, services.MoveSection(ctx, db, root.ID, &root.ID), services.ErrSectionCycle)
	assert.ErrorIs(t, services.MoveSection(ctx, db, 9999, nil), services.ErrNotFound)
	assert.ErrorIs(t, services.MoveSection(ctx, db, child.ID, uintPtr(9999)), services.ErrNotFound)

	require.NoError(t, services.MoveSection(ctx, db, grandchild.ID, nil))
	tree, err := services.LoadSectionTree(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, []uint{root.ID, grandchild.ID}, tree.Roots())

	require.NoError(t, services.MoveSection(ctx, db, root.ID, &grandchild.ID))
	tree, err = services.LoadSectionTree(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, []uint{grandchild.ID, root.ID, child.ID}, tree.Descendants(grandchild.ID))

	loaded, err := services.SectionBySlug(ctx, db, "root")
	require.NoError(t, err)
	require.NotNil(t, loaded.ParentID)
	assert.Equal(t, grandchild.ID, *loaded.ParentID)

	_, err = services.SectionBySlug(ctx, db, "nope")
	assert.ErrorIs(t, err, services.ErrNotFound)
}
