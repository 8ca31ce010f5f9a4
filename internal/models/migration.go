// migration.go
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
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

var (
	// ErrSchemaAhead means the stored version is newer than any migration this build knows.
	ErrSchemaAhead = errors.New("schema version ahead of code")
	// ErrBrokenHistory means a table's migration list is not numbered 1..N.
	ErrBrokenHistory = errors.New("broken migration history")
)

// Op is a single reversible schema operation.
type Op struct {
	Up   func(tx *gorm.DB) error
	Down func(tx *gorm.DB) error
}

// Migration moves a table from Version-1 to Version.
type Migration struct {
	Version int
	Ops     []Op
}

// Step groups ops into the migration that produces version.
func Step(version int, ops ...Op) Migration {
	return Migration{Version: version, Ops: ops}
}

// Up applies the ops in order.
func (m Migration) Up(tx *gorm.DB) error {
	for _, op := range m.Ops {
		if op.Up == nil {
			continue
		}
		if err := op.Up(tx); err != nil {
			return err
		}
	}
	return nil
}

// Down reverts the ops in reverse order.
func (m Migration) Down(tx *gorm.DB) error {
	for i := len(m.Ops) - 1; i >= 0; i-- {
		if m.Ops[i].Down == nil {
			continue
		}
		if err := m.Ops[i].Down(tx); err != nil {
			return err
		}
	}
	return nil
}

// Table describes one registered table and its migration history.
type Table interface {
	// Name is the stable name used in the schema version key.
	Name() string
	// Model is a pointer to the gorm model for the table's current shape.
	Model() interface{}
	// History lists migrations in version order, starting at 1.
	History() []Migration
}

// TableDef is the stock Table implementation.
type TableDef struct {
	name    string
	model   interface{}
	history []Migration
}

// NewTable declares a table. history may be empty for tables still at version 0.
func NewTable(name string, model interface{}, history ...Migration) TableDef {
	return TableDef{name: name, model: model, history: history}
}

func (t TableDef) Name() string         { return t.name }
func (t TableDef) Model() interface{}   { return t.model }
func (t TableDef) History() []Migration { return t.history }

// CurrentVersion is the version a table reaches after every migration.
func CurrentVersion(t Table) int {
	return len(t.History())
}

// ValidateHistory checks that versions run 1..N without gaps.
func ValidateHistory(t Table) error {
	for i, m := range t.History() {
		if m.Version != i+1 {
			return fmt.Errorf("%w: %s has version %d at position %d", ErrBrokenHistory, t.Name(), m.Version, i+1)
		}
	}
	return nil
}

// UpdateSchema brings a table from fromVersion to its current version and
// returns that version. Migrations only run when checkUpdate is set; a freshly
// created table already has the current shape.
func UpdateSchema(tx *gorm.DB, t Table, checkUpdate bool, fromVersion int) (int, error) {
	if err := ValidateHistory(t); err != nil {
		return fromVersion, err
	}
	current := CurrentVersion(t)
	if fromVersion < 0 || fromVersion > current {
		return fromVersion, fmt.Errorf("%w: %s stored at %d, latest known is %d", ErrSchemaAhead, t.Name(), fromVersion, current)
	}
	if !checkUpdate {
		return current, nil
	}
	for _, m := range t.History()[fromVersion:] {
		if err := m.Up(tx); err != nil {
			return fromVersion, fmt.Errorf("%s: migrate to version %d: %w", t.Name(), m.Version, err)
		}
	}
	return current, nil
}

// DowngradeSchema reverts a table from fromVersion down to toVersion.
func DowngradeSchema(tx *gorm.DB, t Table, fromVersion, toVersion int) error {
	if err := ValidateHistory(t); err != nil {
		return err
	}
	if fromVersion > CurrentVersion(t) {
		return fmt.Errorf("%w: %s stored at %d, latest known is %d", ErrSchemaAhead, t.Name(), fromVersion, CurrentVersion(t))
	}
	if toVersion < 0 || toVersion > fromVersion {
		return fmt.Errorf("%s: cannot downgrade from %d to %d", t.Name(), fromVersion, toVersion)
	}
	history := t.History()
	for v := fromVersion; v > toVersion; v-- {
		if err := history[v-1].Down(tx); err != nil {
			return fmt.Errorf("%s: revert version %d: %w", t.Name(), v, err)
		}
	}
	return nil
}

// AddColumn adds the column backing field. Reverting drops it.
func AddColumn(model interface{}, field string) Op {
	return Op{
		Up: func(tx *gorm.DB) error {
			exists, err := ColumnExists(tx, model, field)
			if err != nil || exists {
				return err
			}
			return tx.Migrator().AddColumn(model, field)
		},
		Down: func(tx *gorm.DB) error {
			exists, err := ColumnExists(tx, model, field)
			if err != nil || !exists {
				return err
			}
			return tx.Migrator().DropColumn(model, field)
		},
	}
}

// RenameColumn renames a legacy column to the one backing field. If the legacy
// column never existed the new column is added instead.
func RenameColumn(model interface{}, oldName, field string) Op {
	return Op{
		Up: func(tx *gorm.DB) error {
			hasNew, err := ColumnExists(tx, model, field)
			if err != nil || hasNew {
				return err
			}
			hasOld, err := ColumnExists(tx, model, oldName)
			if err != nil {
				return err
			}
			if !hasOld {
				return tx.Migrator().AddColumn(model, field)
			}
			return tx.Migrator().RenameColumn(model, oldName, field)
		},
		Down: func(tx *gorm.DB) error {
			hasNew, err := ColumnExists(tx, model, field)
			if err != nil || !hasNew {
				return err
			}
			hasOld, err := ColumnExists(tx, model, oldName)
			if err != nil || hasOld {
				return err
			}
			return tx.Migrator().RenameColumn(model, field, oldName)
		},
	}
}

// ColumnExists reports whether the table has a column with exactly this name.
// name may be a field name or a column name. Unlike Migrator.HasColumn on
// SQLite, which pattern-matches the table DDL, "name" never matches "username".
func ColumnExists(tx *gorm.DB, model interface{}, name string) (bool, error) {
	stmt := &gorm.Statement{DB: tx}
	if err := stmt.Parse(model); err != nil {
		return false, err
	}
	if f := stmt.Schema.LookUpField(name); f != nil {
		name = f.DBName
	}
	columns, err := tx.Migrator().ColumnTypes(model)
	if err != nil {
		return false, err
	}
	for _, c := range columns {
		if strings.EqualFold(c.Name(), name) {
			return true, nil
		}
	}
	return false, nil
}

// CreateIndex creates a named index declared in the model tags.
func CreateIndex(model interface{}, name string) Op {
	return Op{
		Up: func(tx *gorm.DB) error {
			m := tx.Migrator()
			if m.HasIndex(model, name) {
				return nil
			}
			return m.CreateIndex(model, name)
		},
		Down: func(tx *gorm.DB) error {
			m := tx.Migrator()
			if !m.HasIndex(model, name) {
				return nil
			}
			return m.DropIndex(model, name)
		},
	}
}

// Transform rewrites existing rows. It has no inverse; reverting the
// surrounding step drops or renames the columns it touched.
func Transform(fn func(tx *gorm.DB) error) Op {
	return Op{Up: fn}
}
