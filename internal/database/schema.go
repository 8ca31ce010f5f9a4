// schema.go
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

package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/localnerve/publishdb/internal/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrNotConfirmed is returned by DropAllTables when the caller did not confirm.
var ErrNotConfirmed = errors.New("refusing to drop tables without confirmation")

// globalsTableName is the registry name of the version stamp table.
const globalsTableName = "Global"

// Registry is the ordered set of tables the site owns.
type Registry struct {
	tables []models.Table
}

// NewRegistry checks the ordering contract: the globals table is first,
// because every other table's version stamp is stored in it.
func NewRegistry(tables ...models.Table) (*Registry, error) {
	if len(tables) == 0 || tables[0].Name() != globalsTableName {
		return nil, fmt.Errorf("registry must start with the %s table", globalsTableName)
	}
	seen := make(map[string]struct{}, len(tables))
	for _, t := range tables {
		if _, dup := seen[t.Name()]; dup {
			return nil, fmt.Errorf("table %s registered twice", t.Name())
		}
		seen[t.Name()] = struct{}{}
		if err := models.ValidateHistory(t); err != nil {
			return nil, err
		}
	}
	return &Registry{tables: tables}, nil
}

// DefaultRegistry holds every site table.
func DefaultRegistry() *Registry {
	r, err := NewRegistry(models.Tables()...)
	if err != nil {
		panic(err)
	}
	return r
}

// Tables returns the registered tables in order.
func (r *Registry) Tables() []models.Table {
	return append([]models.Table(nil), r.tables...)
}

// Lookup finds a registered table by name.
func (r *Registry) Lookup(name string) (models.Table, bool) {
	for _, t := range r.tables {
		if t.Name() == name {
			return t, true
		}
	}
	return nil, false
}

// CreateTables creates missing tables and migrates existing ones to their
// current version, stamping each version into globals. Everything happens in
// one transaction; any failure leaves the database as it was.
func (r *Registry) CreateTables(ctx context.Context, db *gorm.DB, log *zap.Logger) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, table := range r.tables {
			if err := r.updateTable(tx, table, log); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *Registry) updateTable(tx *gorm.DB, table models.Table, log *zap.Logger) error {
	migrator := tx.Migrator()

	created := false
	if !migrator.HasTable(table.Model()) {
		if err := migrator.CreateTable(table.Model()); err != nil {
			return fmt.Errorf("create table %s: %w", table.Name(), err)
		}
		created = true
	}

	stamp, err := versionStamp(tx, table.Name())
	if err != nil {
		return err
	}
	from := 0
	if stamp.IntValue != nil {
		from = *stamp.IntValue
	}

	to, err := models.UpdateSchema(tx, table, !created, from)
	if err != nil {
		return err
	}

	if stamp.IntValue == nil || *stamp.IntValue != to {
		if err := tx.Model(&stamp).Update("int_value", to).Error; err != nil {
			return fmt.Errorf("stamp %s version %d: %w", table.Name(), to, err)
		}
	}

	if created || from != to {
		log.Info("schema updated",
			zap.String("table", table.Name()),
			zap.Bool("created", created),
			zap.Int("from", from),
			zap.Int("to", to),
		)
	}
	return nil
}

// versionStamp gets or creates the globals row for a table, defaulting to version 0.
func versionStamp(tx *gorm.DB, tableName string) (models.Global, error) {
	zero := 0
	stamp := models.Global{}
	err := tx.Where(models.Global{Key: models.SchemaVersionKey(tableName)}).
		Attrs(models.Global{IntValue: &zero}).
		FirstOrCreate(&stamp).Error
	if err != nil {
		return stamp, fmt.Errorf("version stamp for %s: %w", tableName, err)
	}
	return stamp, nil
}

// Versions reads the stored version stamp of every registered table.
// Tables without a stamp are reported at -1.
func (r *Registry) Versions(ctx context.Context, db *gorm.DB) (map[string]int, error) {
	keys := make([]string, 0, len(r.tables))
	for _, t := range r.tables {
		keys = append(keys, models.SchemaVersionKey(t.Name()))
	}

	var rows []models.Global
	if err := db.WithContext(ctx).Where(map[string]interface{}{"key": keys}).Find(&rows).Error; err != nil {
		return nil, err
	}

	byKey := make(map[string]int, len(rows))
	for _, row := range rows {
		if row.IntValue != nil {
			byKey[row.Key] = *row.IntValue
		}
	}

	versions := make(map[string]int, len(r.tables))
	for _, t := range r.tables {
		v, ok := byKey[models.SchemaVersionKey(t.Name())]
		if !ok {
			v = -1
		}
		versions[t.Name()] = v
	}
	return versions, nil
}

// Rollback reverts one table to toVersion using the down half of its
// migrations, and lowers its stamp. Development use only.
func (r *Registry) Rollback(ctx context.Context, db *gorm.DB, tableName string, toVersion int, log *zap.Logger) error {
	table, ok := r.Lookup(tableName)
	if !ok {
		return fmt.Errorf("unknown table %s", tableName)
	}

	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		stamp, err := versionStamp(tx, table.Name())
		if err != nil {
			return err
		}
		from := 0
		if stamp.IntValue != nil {
			from = *stamp.IntValue
		}
		if err := models.DowngradeSchema(tx, table, from, toVersion); err != nil {
			return err
		}
		if err := tx.Model(&stamp).Update("int_value", toVersion).Error; err != nil {
			return err
		}
		log.Warn("schema rolled back",
			zap.String("table", table.Name()),
			zap.Int("from", from),
			zap.Int("to", toVersion),
		)
		return nil
	})
}

// DropAllTables drops every registered table. Without confirmed it fails
// before touching db.
func (r *Registry) DropAllTables(ctx context.Context, db *gorm.DB, confirmed bool) error {
	if !confirmed {
		return ErrNotConfirmed
	}
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := len(r.tables) - 1; i >= 0; i-- {
			if err := tx.Migrator().DropTable(r.tables[i].Model()); err != nil {
				return fmt.Errorf("drop table %s: %w", r.tables[i].Name(), err)
			}
		}
		return nil
	})
}
