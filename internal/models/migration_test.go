package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// recorder builds ops that only log their calls.
type recorder struct {
	calls []string
}

func (r *recorder) op(name string) Op {
	return Op{
		Up:   func(*gorm.DB) error { r.calls = append(r.calls, "up "+name); return nil },
		Down: func(*gorm.DB) error { r.calls = append(r.calls, "down "+name); return nil },
	}
}

func recordedTable(r *recorder) Table {
	return NewTable("Thing", &struct{}{},
		Step(1, r.op("a1"), r.op("a2")),
		Step(2, r.op("b")),
		Step(3, r.op("c")),
	)
}

func TestUpdateSchemaAppliesRemainingSteps(t *testing.T) {
	r := &recorder{}
	to, err := UpdateSchema(nil, recordedTable(r), true, 1)
	require.NoError(t, err)
	assert.Equal(t, 3, to)
	assert.Equal(t, []string{"up b", "up c"}, r.calls)
}

func TestUpdateSchemaFromZero(t *testing.T) {
	r := &recorder{}
	to, err := UpdateSchema(nil, recordedTable(r), true, 0)
	require.NoError(t, err)
	assert.Equal(t, 3, to)
	assert.Equal(t, []string{"up a1", "up a2", "up b", "up c"}, r.calls)
}

func TestUpdateSchemaWithoutCheckRunsNothing(t *testing.T) {
	r := &recorder{}
	to, err := UpdateSchema(nil, recordedTable(r), false, 0)
	require.NoError(t, err)
	assert.Equal(t, 3, to)
	assert.Empty(t, r.calls)
}

func TestUpdateSchemaCurrentIsNoop(t *testing.T) {
	r := &recorder{}
	to, err := UpdateSchema(nil, recordedTable(r), true, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, to)
	assert.Empty(t, r.calls)
}

func TestUpdateSchemaAhead(t *testing.T) {
	r := &recorder{}
	_, err := UpdateSchema(nil, recordedTable(r), true, 4)
	assert.ErrorIs(t, err, ErrSchemaAhead)

	// checkUpdate does not hide a newer stored schema
	_, err = UpdateSchema(nil, recordedTable(r), false, 4)
	assert.ErrorIs(t, err, ErrSchemaAhead)
	assert.Empty(t, r.calls)
}

func TestValidateHistory(t *testing.T) {
	r := &recorder{}
	gap := NewTable("Gap", &struct{}{}, Step(1, r.op("a")), Step(3, r.op("c")))
	assert.ErrorIs(t, ValidateHistory(gap), ErrBrokenHistory)

	_, err := UpdateSchema(nil, gap, true, 0)
	assert.ErrorIs(t, err, ErrBrokenHistory)
	assert.Empty(t, r.calls)

	assert.NoError(t, ValidateHistory(NewTable("Empty", &struct{}{})))
}

func TestDowngradeSchemaRevertsInReverse(t *testing.T) {
	r := &recorder{}
	require.NoError(t, DowngradeSchema(nil, recordedTable(r), 3, 1))
	assert.Equal(t, []string{"down c", "down b"}, r.calls)

	assert.Error(t, DowngradeSchema(nil, recordedTable(r), 1, 2))
	assert.ErrorIs(t, DowngradeSchema(nil, recordedTable(r), 5, 0), ErrSchemaAhead)
}

func TestMigrationDownSkipsIrreversibleOps(t *testing.T) {
	r := &recorder{}
	m := Step(1, r.op("a"), Transform(func(*gorm.DB) error { r.calls = append(r.calls, "transform"); return nil }))
	require.NoError(t, m.Up(nil))
	require.NoError(t, m.Down(nil))
	assert.Equal(t, []string{"up a", "transform", "down a"}, r.calls)
}

func TestTablesRegistry(t *testing.T) {
	tables := Tables()
	require.NotEmpty(t, tables)
	assert.Equal(t, "Global", tables[0].Name())

	seen := map[string]bool{}
	for _, table := range tables {
		assert.False(t, seen[table.Name()], "duplicate table %s", table.Name())
		seen[table.Name()] = true
		assert.NoError(t, ValidateHistory(table))
	}
	assert.Equal(t, "schemaVersion.Page", SchemaVersionKey("Page"))
}

func TestPageBefore(t *testing.T) {
	day := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	a := Page{Slug: "a", PublishDate: day}
	b := Page{Slug: "b", PublishDate: day}
	c := Page{Slug: "a", PublishDate: day.Add(time.Hour)}

	assert.True(t, a.Before(b))
	assert.False(t, b.Before(a))
	assert.True(t, b.Before(c))
	assert.False(t, a.Before(a))
}

func TestArchiveTime(t *testing.T) {
	instant := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	local := instant.In(time.FixedZone("UTC-5", -5*3600)).Add(999 * time.Millisecond)

	got := ArchiveTime(local)
	assert.Equal(t, time.UTC, got.Location())
	assert.True(t, got.Equal(instant))
	assert.Zero(t, got.Nanosecond())
}
