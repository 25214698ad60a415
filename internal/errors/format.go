package errors

import (
	"fmt"
	"strings"
)

// FormatForCLI formats an error for CLI output.
// Uses a concise format suitable for terminal display.
func FormatForCLI(err error) string {
	if err == nil {
		return ""
	}

	be, ok := err.(*BuildError)
	if !ok {
		be = Wrap(ErrCodeInternal, err)
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Error: %s\n", be.Message))

	if be.Suggestion != "" {
		sb.WriteString(fmt.Sprintf("Suggestion: %s\n", be.Suggestion))
	}

	for key, value := range be.Details {
		sb.WriteString(fmt.Sprintf("  %s: %s\n", key, value))
	}

	sb.WriteString(fmt.Sprintf("[%s]", be.Code))
	return sb.String()
}
