package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishStatusScan(t *testing.T) {
	var s PublishStatus
	require.NoError(t, s.Scan(int64(1)))
	assert.Equal(t, PublishStatusPublished, s)

	require.NoError(t, s.Scan([]byte("4")))
	assert.Equal(t, PublishStatusStatic, s)

	err := s.Scan(int64(9))
	assert.ErrorIs(t, err, ErrUnknownPublishStatus)
	assert.Equal(t, PublishStatusStatic, s, "a rejected code must not overwrite the value")

	assert.ErrorIs(t, s.Scan(nil), ErrUnknownPublishStatus)
	assert.ErrorIs(t, s.Scan(3.5), ErrUnknownPublishStatus)
}

func TestPublishStatusValueRejectsUnknown(t *testing.T) {
	v, err := PublishStatusQueued.Value()
	require.NoError(t, err)
	assert.Equal(t, int64(3), v)

	_, err = PublishStatus(42).Value()
	assert.ErrorIs(t, err, ErrUnknownPublishStatus)
}

func TestPublishStatusJSONUsesNames(t *testing.T) {
	out, err := json.Marshal(struct {
		Status PublishStatus `json:"status"`
	}{PublishStatusPending})
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"pending"}`, string(out))

	var in struct {
		Status PublishStatus `json:"status"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"status":"Published"}`), &in))
	assert.Equal(t, PublishStatusPublished, in.Status)

	assert.ErrorIs(t, json.Unmarshal([]byte(`{"status":"archived"}`), &in), ErrUnknownPublishStatus)
}

func TestSizeModeScan(t *testing.T) {
	var m SizeMode
	require.NoError(t, m.Scan(int64(1)))
	assert.Equal(t, SizeModeExact, m)
	assert.ErrorIs(t, m.Scan(int64(2)), ErrUnknownSizeMode)

	mode, err := ParseSizeMode("harmonic")
	require.NoError(t, err)
	assert.Equal(t, SizeModeHarmonic, mode)
}

func TestVisibilityRule(t *testing.T) {
	published := Page{PublishStatus: PublishStatusPublished}
	flagged := Page{PublishStatus: PublishStatusDraft, IsVisible: true}
	both := Page{PublishStatus: PublishStatusPublished, IsVisible: true}

	assert.True(t, VisibleBoth.Visible(both))
	assert.False(t, VisibleBoth.Visible(published))
	assert.False(t, VisibleBoth.Visible(flagged))

	assert.True(t, VisibleByStatus.Visible(published))
	assert.False(t, VisibleByStatus.Visible(flagged))

	assert.True(t, VisibleByFlag.Visible(flagged))
	assert.False(t, VisibleByFlag.Visible(published))

	rule, err := ParseVisibilityRule("")
	require.NoError(t, err)
	assert.Equal(t, VisibleBoth, rule)

	rule, err = ParseVisibilityRule("Flag")
	require.NoError(t, err)
	assert.Equal(t, VisibleByFlag, rule)

	_, err = ParseVisibilityRule("either")
	assert.ErrorIs(t, err, ErrUnknownVisibilityRule)
}
