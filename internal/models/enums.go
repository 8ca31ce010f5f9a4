package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrUnknownPublishStatus is returned when a stored or supplied publish status code is not in the table below.
	ErrUnknownPublishStatus = errors.New("unknown publish status")
	// ErrUnknownSizeMode is returned when a stored or supplied size mode code is not in the table below.
	ErrUnknownSizeMode = errors.New("unknown size mode")
	// ErrUnknownVisibilityRule is returned for an unrecognized visibility rule name.
	ErrUnknownVisibilityRule = errors.New("unknown visibility rule")
)

// PublishStatus is the publication state of a page. Persisted as an integer:
//
//	draft=0 published=1 pending=2 queued=3 static=4
//
// The codes are stable and must never be renumbered.
type PublishStatus int

const (
	PublishStatusDraft     PublishStatus = 0
	PublishStatusPublished PublishStatus = 1
	PublishStatusPending   PublishStatus = 2
	PublishStatusQueued    PublishStatus = 3
	PublishStatusStatic    PublishStatus = 4
)

var publishStatusNames = map[PublishStatus]string{
	PublishStatusDraft:     "draft",
	PublishStatusPublished: "published",
	PublishStatusPending:   "pending",
	PublishStatusQueued:    "queued",
	PublishStatusStatic:    "static",
}

// Valid reports whether s is one of the known codes.
func (s PublishStatus) Valid() bool {
	_, ok := publishStatusNames[s]
	return ok
}

func (s PublishStatus) String() string {
	if name, ok := publishStatusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("PublishStatus(%d)", int(s))
}

// ParsePublishStatus maps a status name to its code.
func ParsePublishStatus(name string) (PublishStatus, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for code, n := range publishStatusNames {
		if n == name {
			return code, nil
		}
	}
	return PublishStatusDraft, fmt.Errorf("%w: %q", ErrUnknownPublishStatus, name)
}

// Value implements driver.Valuer.
func (s PublishStatus) Value() (driver.Value, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownPublishStatus, int(s))
	}
	return int64(s), nil
}

// Scan implements sql.Scanner. Unknown codes are rejected rather than coerced.
func (s *PublishStatus) Scan(value interface{}) error {
	code, err := scanEnumCode(value)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnknownPublishStatus, err)
	}
	status := PublishStatus(code)
	if !status.Valid() {
		return fmt.Errorf("%w: %d", ErrUnknownPublishStatus, code)
	}
	*s = status
	return nil
}

// MarshalJSON renders the status by name.
func (s PublishStatus) MarshalJSON() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownPublishStatus, int(s))
	}
	return json.Marshal(s.String())
}

// UnmarshalJSON accepts the status name.
func (s *PublishStatus) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	status, err := ParsePublishStatus(name)
	if err != nil {
		return err
	}
	*s = status
	return nil
}

// SizeMode says how a rendered asset variant was sized. Persisted as an integer:
//
//	harmonic=0 exact=1
type SizeMode int

const (
	// SizeModeHarmonic renders at a fraction/multiple of the source size.
	SizeModeHarmonic SizeMode = 0
	// SizeModeExact renders at exactly the requested box.
	SizeModeExact SizeMode = 1
)

var sizeModeNames = map[SizeMode]string{
	SizeModeHarmonic: "harmonic",
	SizeModeExact:    "exact",
}

func (m SizeMode) Valid() bool {
	_, ok := sizeModeNames[m]
	return ok
}

func (m SizeMode) String() string {
	if name, ok := sizeModeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("SizeMode(%d)", int(m))
}

// ParseSizeMode maps a size mode name to its code.
func ParseSizeMode(name string) (SizeMode, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for code, n := range sizeModeNames {
		if n == name {
			return code, nil
		}
	}
	return SizeModeHarmonic, fmt.Errorf("%w: %q", ErrUnknownSizeMode, name)
}

// Value implements driver.Valuer.
func (m SizeMode) Value() (driver.Value, error) {
	if !m.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownSizeMode, int(m))
	}
	return int64(m), nil
}

// Scan implements sql.Scanner.
func (m *SizeMode) Scan(value interface{}) error {
	code, err := scanEnumCode(value)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnknownSizeMode, err)
	}
	mode := SizeMode(code)
	if !mode.Valid() {
		return fmt.Errorf("%w: %d", ErrUnknownSizeMode, code)
	}
	*m = mode
	return nil
}

func (m SizeMode) MarshalJSON() ([]byte, error) {
	if !m.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownSizeMode, int(m))
	}
	return json.Marshal(m.String())
}

// scanEnumCode normalizes the integer representations drivers hand back.
func scanEnumCode(value interface{}) (int64, error) {
	switch v := value.(type) {
	case int64:
		return v, nil
	case int32:
		return int64(v), nil
	case int:
		return int64(v), nil
	case []byte:
		return strconv.ParseInt(string(v), 10, 64)
	case string:
		return strconv.ParseInt(v, 10, 64)
	case nil:
		return 0, errors.New("NULL code")
	default:
		return 0, fmt.Errorf("unsupported code type %T", value)
	}
}

// VisibilityRule selects which columns gate a page into the visible set.
type VisibilityRule int

const (
	// VisibleBoth requires publish_status = published and is_visible = true.
	VisibleBoth VisibilityRule = iota
	// VisibleByStatus only looks at publish_status.
	VisibleByStatus
	// VisibleByFlag only looks at is_visible.
	VisibleByFlag
)

func (r VisibilityRule) String() string {
	switch r {
	case VisibleBoth:
		return "both"
	case VisibleByStatus:
		return "status"
	case VisibleByFlag:
		return "flag"
	}
	return fmt.Sprintf("VisibilityRule(%d)", int(r))
}

// ParseVisibilityRule accepts "both", "status" or "flag". Empty means both.
func ParseVisibilityRule(name string) (VisibilityRule, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "both":
		return VisibleBoth, nil
	case "status":
		return VisibleByStatus, nil
	case "flag":
		return VisibleByFlag, nil
	}
	return VisibleBoth, fmt.Errorf("%w: %q", ErrUnknownVisibilityRule, name)
}

// Visible reports whether a page passes the rule. Mirrors the SQL predicate used by the navigator.
func (r VisibilityRule) Visible(p Page) bool {
	switch r {
	case VisibleByStatus:
		return p.PublishStatus == PublishStatusPublished
	case VisibleByFlag:
		return p.IsVisible
	default:
		return p.PublishStatus == PublishStatusPublished && p.IsVisible
	}
}
