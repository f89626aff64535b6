package sysmdns

import (
	"maps"
	"slices"
	"strings"
	"unicode/utf8"
)

// MaxTxtRecordLength is the maximum length of a single "key=value" txt record.
const MaxTxtRecordLength = 255

// LimitTxtValues returns a copy of text where each "key=value" record fits
// into MaxTxtRecordLength.
//
// Remarks:
//   - Values are cut on the UTF-8 rune boundary.
//   - Keys that don't fit even with an empty value are dropped.
func LimitTxtValues(text map[string]string) map[string]string {
	limited := make(map[string]string, len(text))

	for key, value := range text {
		limit := MaxTxtRecordLength - len(key) - 1
		if limit < 0 {
			continue
		}

		limited[key] = truncateUTF8(value, limit)
	}

	return limited
}

func truncateUTF8(s string, limit int) string {
	if len(s) <= limit {
		return s
	}

	for limit > 0 && !utf8.RuneStart(s[limit]) {
		limit--
	}

	return s[:limit]
}

// FormatTxtRecords converts text into "key=value" txt records ordered by key.
//
// Remarks:
//   - Records are limited with LimitTxtValues.
func FormatTxtRecords(text map[string]string) []string {
	limited := LimitTxtValues(text)

	records := make([]string, 0, len(limited))

	for _, key := range slices.Sorted(maps.Keys(limited)) {
		records = append(records, key+"="+limited[key])
	}

	return records
}

// ParseTxtRecords converts "key=value" txt records into the map.
//
// Remarks:
//   - A record without '=' is a key with an empty value.
//   - Records with an empty key are ignored.
//   - If the key is repeated, the first record wins.
func ParseTxtRecords(records []string) map[string]string {
	text := make(map[string]string, len(records))

	for _, record := range records {
		key, value, _ := strings.Cut(record, "=")
		if key == "" {
			continue
		}

		if _, ok := text[key]; ok {
			continue
		}

		text[key] = value
	}

	return text
}
