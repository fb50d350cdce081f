package errors

import (
	"fmt"
	"log/slog"
)

// CLIErrorAdapter handles error presentation and exit code determination for the CLI.
type CLIErrorAdapter struct {
	verbose bool
	logger  *slog.Logger
}

// NewCLIErrorAdapter creates a new CLI error adapter.
func NewCLIErrorAdapter(verbose bool, logger *slog.Logger) *CLIErrorAdapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CLIErrorAdapter{
		verbose: verbose,
		logger:  logger,
	}
}

// ExitCodeFor determines the appropriate exit code for an error.
func (a *CLIErrorAdapter) ExitCodeFor(err error) int {
	if err == nil {
		return 0
	}
	if classified, ok := AsClassified(err); ok {
		return a.exitCodeFromClassified(classified)
	}
	return 1
}

func (a *CLIErrorAdapter) exitCodeFromClassified(err *ClassifiedError) int {
	switch err.Category() {
	case CategoryValidation:
		return 2 // Invalid input document
	case CategoryConfig:
		return 7 // Configuration error
	case CategoryMetadata, CategoryOverwrite:
		return 3 // Malformed metadata or overwrite input
	case CategoryPath, CategoryLink:
		return 4 // Resolution/collision error
	case CategoryFileSystem:
		return 11
	case CategoryInternal:
		return 10
	default:
		return 1
	}
}

// FormatError formats an error for user-friendly display.
func (a *CLIErrorAdapter) FormatError(err error) string {
	if err == nil {
		return ""
	}
	classified, ok := AsClassified(err)
	if !ok {
		return fmt.Sprintf("Error: %v", err)
	}

	msg := fmt.Sprintf("Error (%s): %s", classified.Category(), classified.Message())
	if a.verbose {
		if cause := classified.Unwrap(); cause != nil {
			msg += fmt.Sprintf("\n  cause: %v", cause)
		}
		for key, value := range classified.Context() {
			msg += fmt.Sprintf("\n  %s: %v", key, value)
		}
	}
	return msg
}

// LogError logs the error through the adapter's logger at a level matching
// its severity.
func (a *CLIErrorAdapter) LogError(err error) {
	if err == nil {
		return
	}
	classified, ok := AsClassified(err)
	if !ok {
		a.logger.Error("Unclassified error", "error", err)
		return
	}
	attrs := []any{"category", string(classified.Category())}
	for key, value := range classified.Context() {
		attrs = append(attrs, key, value)
	}
	if classified.IsWarning() {
		a.logger.Warn(classified.Message(), attrs...)
		return
	}
	attrs = append(attrs, "error", classified.Error())
	a.logger.Error(classified.Message(), attrs...)
}
