package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
)

// Significance label constants, keyed off the depth signal to noise ratio.
const (
	StrongValue    = "Strong"    // Strong detection
	CandidateValue = "Candidate" // Plausible candidate
	TentativeValue = "Tentative" // Needs follow-up
	WeakValue      = "Weak"      // Consistent with noise
)

// Color variables for console output.
var (
	StrongColor    = color.New(color.FgGreen, color.Bold) // strongColor marks a confident detection.
	CandidateColor = color.New(color.FgCyan, color.Bold)  // candidateColor marks a promising signal.
	TentativeColor = color.New(color.FgYellow)            // tentativeColor represents standard caution, not bold.
	WeakColor      = color.New(color.FgRed)               // weakColor marks a likely noise peak.
)

// GetPlainLabel returns a plain text label indicating the detection
// significance based on the peak's depth signal to noise ratio. This is the
// core logic used for CSV, JSON, and table printing.
func GetPlainLabel(depthSNR float64) string {
	switch {
	case depthSNR >= 15:
		return StrongValue
	case depthSNR >= 9:
		return CandidateValue
	case depthSNR >= 5:
		return TentativeValue
	default:
		return WeakValue
	}
}

// GetColorLabel returns a colored text label for console output (table).
// It uses GetPlainLabel to determine the string, and then applies the
// appropriate color.
func GetColorLabel(depthSNR float64) string {
	text := GetPlainLabel(depthSNR)

	switch text {
	case StrongValue:
		return StrongColor.Sprint(text)
	case CandidateValue:
		return CandidateColor.Sprint(text)
	case TentativeValue:
		return TentativeColor.Sprint(text)
	default: // "Weak"
		return WeakColor.Sprint(text)
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on
// the provided file path. An empty path means os.Stdout.
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

// GetStoreDBFilePath returns the path to the SQLite DB file for run tracking.
func GetStoreDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".periscan_runs.db"
	}
	return filepath.Join(homeDir, ".periscan_runs.db")
}

// TruncatePath shortens a path to maxWidth runes, keeping the tail.
func TruncatePath(path string, maxWidth int) string {
	runes := []rune(path)
	if len(runes) > maxWidth && maxWidth > 3 {
		return "..." + string(runes[len(runes)-maxWidth+3:])
	}
	return path
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
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
