package testutil

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// ExecScript runs a semicolon separated SQL script one statement at a time.
// "--" comments outside quotes are dropped first.
func ExecScript(db *gorm.DB, script string) error {
	lines := strings.Split(script, "\n")

	stripped := make([]string, 0, len(lines))
	for _, l := range lines {
		stripped = append(stripped, excludeComment(l))
	}

	for _, q := range strings.Split(strings.Join(stripped, "\n"), ";") {
		if strings.TrimSpace(q) == "" {
			continue
		}
		if err := db.Exec(q).Error; err != nil {
			return fmt.Errorf("%w: when executing > %s", err, strings.TrimSpace(q))
		}
	}
	return nil
}

// excludeComment removes a trailing "--" comment, ignoring dashes inside
// single or double quoted strings.
func excludeComment(line string) string {
	var quote rune
	for i, r := range line {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			}
		case r == '\'' || r == '"':
			quote = r
		case r == '-' && strings.HasPrefix(line[i:], "--"):
			return line[:i]
		}
	}
	return line
}
