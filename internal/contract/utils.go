package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/searchpulse/searchpulse/schema"
)

// Color variables for trend rendering in console output.
var (
	GrowthColor  = color.New(color.FgGreen)            // improvements
	StrongColor  = color.New(color.FgGreen, color.Bold) // strong improvements
	DeclineColor = color.New(color.FgRed)              // regressions
	WorstColor   = color.New(color.FgRed, color.Bold)  // strong regressions
	NeutralColor = color.New(color.FgYellow)           // stable
)

// ColorTrendLabel returns the colored human label for a trend category.
// Polarity is already folded into the category at classification time,
// so growth is always good news here.
func ColorTrendLabel(t schema.TrendCategory) string {
	text := t.Label()
	switch t {
	case schema.StrongGrowth:
		return StrongColor.Sprint(text)
	case schema.Growth:
		return GrowthColor.Sprint(text)
	case schema.Decline:
		return DeclineColor.Sprint(text)
	case schema.StrongDecline:
		return WorstColor.Sprint(text)
	default:
		return NeutralColor.Sprint(text)
	}
}

// SelectOutputFile returns the appropriate file handle for output based
// on the provided file path, falling back to os.Stdout when empty.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// GetStoreDBFilePath returns the path to the SQLite DB file for the run store.
func GetStoreDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".searchpulse_runs.db"
	}
	return filepath.Join(homeDir, ".searchpulse_runs.db")
}

// EntitySlug derives the entity identifier from an export filename by
// stripping the directory, extension, and the known export prefixes
// ("GSC-30vs30-overMonth-acme-dental.csv" -> "acme-dental").
func EntitySlug(path string) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	for _, prefix := range []string{"GSC-30vs30-overMonth-", "GSC-YOY-overMonth-", "GSC-queries-", "GA4-"} {
		if strings.HasPrefix(base, prefix) {
			return strings.TrimPrefix(base, prefix)
		}
	}
	return base
}

// TruncateText truncates a string to a maximum width with an ellipsis
// suffix. Requires maxWidth > 3 so there is room for the ellipsis.
func TruncateText(s string, maxWidth int) string {
	runes := []rune(s)
	if len(runes) > maxWidth && maxWidth > 3 {
		return string(runes[:maxWidth-3]) + "..."
	}
	return s
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}
