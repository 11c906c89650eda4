package news

import (
	"regexp"
	"time"
)

// Record is a single persisted news item. Records are only ever inserted or
// deleted, never updated in place.
type Record struct {
	ID         int64
	University string
	Title      string
	Date       time.Time
	Link       string
	Category   Category
}

var chinesePattern = regexp.MustCompile(`[\x{4e00}-\x{9fa5}]`)

// ContainsChinese reports whether s contains at least one Chinese character.
// Titles without any are out of scope for this deployment and are filtered
// out before they can become records.
func ContainsChinese(s string) bool {
	return chinesePattern.MatchString(s)
}
