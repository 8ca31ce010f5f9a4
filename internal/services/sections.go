// sections.go
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
	"sort"

	"github.com/localnerve/publishdb/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SectionTree is an in-memory arena of sections keyed by id. Parent links are
// ids; every walk tracks visited nodes so a corrupt cycle cannot loop forever.
type SectionTree struct {
	nodes    map[uint]models.Section
	children map[uint][]uint
}

// NewSectionTree indexes sections by id and parent.
func NewSectionTree(sections []models.Section) *SectionTree {
	t := &SectionTree{
		nodes:    make(map[uint]models.Section, len(sections)),
		children: make(map[uint][]uint),
	}
	for _, s := range sections {
		s.Parent, s.Children = nil, nil
		t.nodes[s.ID] = s
	}
	for _, s := range sections {
		if s.ParentID != nil {
			t.children[*s.ParentID] = append(t.children[*s.ParentID], s.ID)
		}
	}
	for id := range t.children {
		sort.Slice(t.children[id], func(i, j int) bool { return t.children[id][i] < t.children[id][j] })
	}
	return t
}

// LoadSectionTree reads every section into a tree.
func LoadSectionTree(ctx context.Context, db *gorm.DB) (*SectionTree, error) {
	var sections []models.Section
	if err := db.WithContext(ctx).Order("id").Find(&sections).Error; err != nil {
		return nil, err
	}
	return NewSectionTree(sections), nil
}

// Section returns the section with id.
func (t *SectionTree) Section(id uint) (models.Section, bool) {
	s, ok := t.nodes[id]
	return s, ok
}

// Len is the number of sections in the tree.
func (t *SectionTree) Len() int {
	return len(t.nodes)
}

// Children returns the direct children of id in id order.
func (t *SectionTree) Children(id uint) []uint {
	return append([]uint(nil), t.children[id]...)
}

// Roots returns the sections without a parent, in id order.
func (t *SectionTree) Roots() []uint {
	var roots []uint
	for id, s := range t.nodes {
		if s.ParentID == nil {
			roots = append(roots, id)
		}
	}
	sort.Slice(roots, func(i, j int) bool { return roots[i] < roots[j] })
	return roots
}

// Descendants returns id followed by every transitive child, breadth first.
func (t *SectionTree) Descendants(id uint) []uint {
	if _, ok := t.nodes[id]; !ok {
		return nil
	}
	visited := map[uint]bool{id: true}
	out := []uint{id}
	for i := 0; i < len(out); i++ {
		for _, child := range t.children[out[i]] {
			if visited[child] {
				continue
			}
			visited[child] = true
			out = append(out, child)
		}
	}
	return out
}

// Ancestors returns the parent chain of id, nearest first.
func (t *SectionTree) Ancestors(id uint) []uint {
	var out []uint
	visited := map[uint]bool{id: true}
	node, ok := t.nodes[id]
	for ok && node.ParentID != nil {
		parent := *node.ParentID
		if visited[parent] {
			break
		}
		visited[parent] = true
		out = append(out, parent)
		node, ok = t.nodes[parent]
	}
	return out
}

// Contains reports whether id is root or one of its descendants.
func (t *SectionTree) Contains(root, id uint) bool {
	if root == id {
		_, ok := t.nodes[id]
		return ok
	}
	for _, a := range t.Ancestors(id) {
		if a == root {
			return true
		}
	}
	return false
}

// WouldCycle reports whether giving id the parent newParent creates a cycle.
func (t *SectionTree) WouldCycle(id uint, newParent *uint) bool {
	if newParent == nil {
		return false
	}
	if *newParent == id {
		return true
	}
	return t.Contains(id, *newParent)
}

// SectionInput describes a section to create.
type SectionInput struct {
	Slug          string
	Title         string
	UserID        uint
	ParentID      *uint
	Theme         string
	SplashAssetID *uint
}

// CreateSection inserts a section under an existing parent.
func CreateSection(ctx context.Context, db *gorm.DB, in SectionInput) (models.Section, error) {
	section := models.Section{
		Slug:          in.Slug,
		Title:         in.Title,
		UserID:        in.UserID,
		ParentID:      in.ParentID,
		Theme:         in.Theme,
		SplashAssetID: in.SplashAssetID,
	}
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if in.ParentID != nil {
			var parent models.Section
			if err := tx.First(&parent, *in.ParentID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("parent section %d: %w", *in.ParentID, ErrNotFound)
				}
				return err
			}
		}
		return tx.Create(&section).Error
	})
	return section, err
}

// MoveSection reparents a section. A nil parent makes it a root.
func MoveSection(ctx context.Context, db *gorm.DB, id uint, newParent *uint) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var sections []models.Section
		if err := tx.Clauses(lockingClause(tx)...).Order("id").Find(&sections).Error; err != nil {
			return err
		}
		tree := NewSectionTree(sections)
		if _, ok := tree.Section(id); !ok {
			return fmt.Errorf("section %d: %w", id, ErrNotFound)
		}
		if newParent != nil {
			if _, ok := tree.Section(*newParent); !ok {
				return fmt.Errorf("parent section %d: %w", *newParent, ErrNotFound)
			}
		}
		if tree.WouldCycle(id, newParent) {
			return fmt.Errorf("move section %d under %d: %w", id, *newParent, ErrSectionCycle)
		}
		return tx.Model(&models.Section{ID: id}).Update("parent_id", newParent).Error
	})
}

// SectionBySlug loads a section by its unique slug.
func SectionBySlug(ctx context.Context, db *gorm.DB, slug string) (models.Section, error) {
	var section models.Section
	if err := db.WithContext(ctx).Where(&models.Section{Slug: slug}).First(&section).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return section, fmt.Errorf("section %q: %w", slug, ErrNotFound)
		}
		return section, err
	}
	return section, nil
}

// lockingClause takes row locks where the dialect supports SELECT ... FOR UPDATE.
func lockingClause(tx *gorm.DB) []clause.Expression {
	switch tx.Dialector.Name() {
	case "mysql", "postgres":
		return []clause.Expression{clause.Locking{Strength: "UPDATE"}}
	}
	return nil
}
