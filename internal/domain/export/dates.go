package export

import "time"

// Layouts accepted for date columns in exported files.
var dateLayouts = []string{
	"2006-01-02",
	"02-01-2006",
	"2006/01/02",
	"02/01/2006",
	"2006.01.02",
	"02.01.2006",
}

// FormatDMY reformats a date string into DD-MM-YYYY. Anything that matches
// none of the accepted layouts passes through unchanged; empty stays empty.
func FormatDMY(value string) string {
	if value == "" {
		return ""
	}
	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed.Format("02-01-2006")
		}
	}
	return value
}
