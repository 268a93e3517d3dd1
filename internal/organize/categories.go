package organize

import (
	"path/filepath"
	"strings"
	"time"
)

// CategoryOther receives files whose extension maps to no category.
const CategoryOther = "other"

// DuplicatesFolder receives relocated duplicate files.
const DuplicatesFolder = "_duplicates"

// Date bucket names.
const (
	BucketThisWeek  = "this_week"
	BucketThisMonth = "this_month"
	BucketOlder     = "older"
	BucketUnknown   = "unknown"
)

var builtinCategories = map[string][]string{
	"images":    {".jpg", ".jpeg", ".png", ".gif", ".webp", ".svg", ".heic", ".raw"},
	"documents": {".pdf", ".doc", ".docx", ".txt", ".rtf", ".xls", ".xlsx", ".ppt", ".pptx", ".csv", ".md"},
	"videos":    {".mp4", ".mkv", ".avi", ".mov", ".webm"},
	"audio":     {".mp3", ".wav", ".flac", ".aac", ".ogg", ".m4a"},
	"archives":  {".zip", ".rar", ".7z", ".tar", ".gz"},
	"code":      {".py", ".js", ".ts", ".html", ".css", ".java", ".cpp", ".c", ".go", ".rs", ".sh", ".json"},
}

// Table maps lowercase file extensions onto category names. It is built once
// per run and never mutated afterwards.
type Table map[string]string

// NewTable builds the extension table from the built-in category sets plus
// any extra extension mappings from configuration. Extras win on overlap.
func NewTable(extra map[string]string) Table {
	table := make(Table)
	for category, exts := range builtinCategories {
		for _, ext := range exts {
			table[ext] = category
		}
	}
	for ext, category := range extra {
		if ext != "" && category != "" {
			table[ext] = category
		}
	}
	return table
}

// Category returns the destination category for path based on its extension,
// matched case-insensitively.
func (t Table) Category(path string) string {
	if category, ok := t[strings.ToLower(filepath.Ext(path))]; ok {
		return category
	}
	return CategoryOther
}

// DateBucket maps a modification time onto an age bucket relative to now.
// An unreadable timestamp maps to BucketUnknown.
func DateBucket(now, modTime time.Time, ok bool) string {
	if !ok {
		return BucketUnknown
	}
	age := now.Sub(modTime)
	switch {
	case age < 7*24*time.Hour:
		return BucketThisWeek
	case age < 30*24*time.Hour:
		return BucketThisMonth
	default:
		return BucketOlder
	}
}
