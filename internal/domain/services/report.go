package services

import (
	"fmt"

	"github.com/verhound/verhound/internal/domain/entities"
)

// Formatter renders detection results in either the short two-token form or
// the verbose method-plus-evidence form.
type Formatter struct {
	short bool
}

// NewFormatter creates a formatter. short selects the one-line output mode.
func NewFormatter(short bool) *Formatter {
	return &Formatter{short: short}
}

// FormatOutcome renders a successful detection.
func (f *Formatter) FormatOutcome(baseName string, outcome *entities.StrategyOutcome) string {
	if f.short {
		return fmt.Sprintf("%s %s\n", baseName, outcome.Version)
	}
	return fmt.Sprintf("Version of %s found using %s:\n\n%s\n",
		baseName, methodHeader(outcome), outcome.Evidence)
}

// FormatStatus renders a terminal failure.
func (f *Formatter) FormatStatus(baseName string, status entities.Status) string {
	if f.short {
		return fmt.Sprintf("%s %s\n", baseName, status.Token())
	}
	return statusSentence(baseName, status) + "\n"
}

// methodHeader names the method that succeeded, including the flag that did
// the work where one exists.
func methodHeader(outcome *entities.StrategyOutcome) string {
	switch outcome.Method {
	case entities.MethodFlag:
		return fmt.Sprintf("flag '%s'", outcome.Detail)
	case entities.MethodHelp:
		return fmt.Sprintf("help flag '%s'", outcome.Detail)
	case entities.MethodPackageManager:
		return "package manager"
	case entities.MethodBinaryStrings:
		return "strings"
	case entities.MethodNoArgs:
		return "no arguments"
	default:
		return outcome.Method.String()
	}
}

// statusSentence maps the failure taxonomy to its fixed long-mode sentence.
func statusSentence(baseName string, status entities.Status) string {
	switch status {
	case entities.StatusNotFound:
		return fmt.Sprintf("Command '%s' was not found on this system.", baseName)
	case entities.StatusNoPermission:
		return fmt.Sprintf("You do not have permission to execute '%s'.", baseName)
	case entities.StatusNoPermissionUser:
		return fmt.Sprintf("The restricted user is not permitted to execute '%s'.", baseName)
	case entities.StatusFoundButUnparsed:
		return fmt.Sprintf("Output of '%s' looks like it contains a version, but no version token could be parsed from it.", baseName)
	case entities.StatusUndetermined:
		return fmt.Sprintf("The version of '%s' could not be determined.", baseName)
	default:
		return fmt.Sprintf("The version of '%s' could not be determined.", baseName)
	}
}
