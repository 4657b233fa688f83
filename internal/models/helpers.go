package models

import (
	"strings"
	"time"
)

// DisplayName renders a stored file name for humans. Underscores become spaces;
// the stored name itself is never changed.
func DisplayName(fileName string) string {
	return strings.ReplaceAll(fileName, "_", " ")
}

// createdAtLayouts are tried in order when parsing a document timestamp.
var createdAtLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// FormatDate renders a createdAt timestamp as "Jan 2, 2006".
// Unparsable values are returned unchanged.
func FormatDate(createdAt string) string {
	for _, layout := range createdAtLayouts {
		if t, err := time.Parse(layout, createdAt); err == nil {
			return t.Format("Jan 2, 2006")
		}
	}
	return createdAt
}

// Initials builds a short avatar label from a display name, e.g. "Raktim Shrestha" -> "RS".
func Initials(name string) string {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return "?"
	}
	var b strings.Builder
	for _, f := range fields {
		if b.Len() >= 2 {
			break
		}
		b.WriteString(strings.ToUpper(string([]rune(f)[0])))
	}
	return b.String()
}
