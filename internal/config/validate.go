package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/AbdelazizMoustafa10m/tealog/internal/level"
	"github.com/AbdelazizMoustafa10m/tealog/internal/storage"
	"github.com/AbdelazizMoustafa10m/tealog/internal/writer"
)

// ValidationSeverity indicates whether a validation issue is an error or warning.
type ValidationSeverity string

const (
	// SeverityError indicates a fatal validation issue; the configuration is unusable.
	SeverityError ValidationSeverity = "error"
	// SeverityWarning indicates an informational validation issue; the configuration works
	// but may have problems.
	SeverityWarning ValidationSeverity = "warning"
)

// ValidationIssue represents a single validation finding.
type ValidationIssue struct {
	Severity ValidationSeverity
	Field    string // dotted path, e.g., "storage.backend"
	Message  string
}

// ValidationResult holds all validation findings.
type ValidationResult struct {
	Issues []ValidationIssue
}

// HasErrors returns true if any issue has error severity.
func (vr *ValidationResult) HasErrors() bool {
	for _, issue := range vr.Issues {
		if issue.Severity == SeverityError {
			return true
		}
	}
	return false
}

// HasWarnings returns true if any issue has warning severity.
func (vr *ValidationResult) HasWarnings() bool {
	for _, issue := range vr.Issues {
		if issue.Severity == SeverityWarning {
			return true
		}
	}
	return false
}

// Errors returns only error-severity issues.
func (vr *ValidationResult) Errors() []ValidationIssue {
	var errs []ValidationIssue
	for _, issue := range vr.Issues {
		if issue.Severity == SeverityError {
			errs = append(errs, issue)
		}
	}
	return errs
}

// Warnings returns only warning-severity issues.
func (vr *ValidationResult) Warnings() []ValidationIssue {
	var warns []ValidationIssue
	for _, issue := range vr.Issues {
		if issue.Severity == SeverityWarning {
			warns = append(warns, issue)
		}
	}
	return warns
}

// Validate checks the configuration for correctness and completeness.
// It performs semantic validation of every section plus unknown key
// detection.
//
// meta is the TOML metadata from LoadFromFile, or nil when no file was
// loaded. Check HasErrors() to determine if the config is usable.
func Validate(cfg *Config, meta *toml.MetaData) *ValidationResult {
	vr := &ValidationResult{}

	if cfg == nil {
		addError(vr, "", "configuration is nil")
		return vr
	}

	validateStorage(vr, &cfg.Storage)
	validateWriter(vr, &cfg.Writer)
	validateLevels(vr, cfg.Levels)
	validateUnknownKeys(vr, meta)

	return vr
}

// validateStorage checks the [storage] section.
func validateStorage(vr *ValidationResult, s *StorageConfig) {
	backend := storage.Backend(s.Backend)
	if !slices.Contains(storage.Backends(), backend) {
		addError(vr, "storage.backend",
			fmt.Sprintf("unrecognized backend %q; must be one of: %s", s.Backend, joinValues(storage.Backends())))
		return
	}

	switch backend {
	case storage.BackendFile, storage.BackendLevelDB:
		if s.Path == "" {
			addError(vr, "storage.path", fmt.Sprintf("must not be empty for the %s backend", backend))
			return
		}
		if dir := filepath.Dir(s.Path); dir != "." {
			if _, err := os.Stat(dir); err != nil {
				addWarning(vr, "storage.path",
					fmt.Sprintf("directory %q does not exist and will be created", dir))
			}
		}
	default:
		if s.Path != "" {
			addWarning(vr, "storage.path", fmt.Sprintf("ignored by the %s backend", backend))
		}
	}
}

// validateWriter checks the [writer] section.
func validateWriter(vr *ValidationResult, w *WriterConfig) {
	if !slices.Contains(writer.Kinds(), writer.Kind(w.Kind)) {
		addError(vr, "writer.kind",
			fmt.Sprintf("unrecognized writer %q; must be one of: %s", w.Kind, joinValues(writer.Kinds())))
	}

	if w.Format != "" && !slices.Contains(writer.Formats(), writer.Format(w.Format)) {
		addError(vr, "writer.format",
			fmt.Sprintf("unrecognized format %q; must be one of: %s, or empty", w.Format, joinValues(writer.Formats())))
		return
	}

	if w.Format != "" && w.Format != string(writer.FormatText) && w.Kind != string(writer.KindCharm) {
		addWarning(vr, "writer.format",
			fmt.Sprintf("format %q only applies to the charm writer", w.Format))
	}
}

// validateLevels checks the [levels] section.
func validateLevels(vr *ValidationResult, levels map[string]string) {
	names := make([]string, 0, len(levels))
	for name := range levels {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if name == "" {
			addError(vr, "levels", "logger name must not be empty")
			continue
		}
		if _, err := level.Parse(levels[name]); err != nil {
			addError(vr, "levels."+name,
				fmt.Sprintf("unrecognized level %q; must be one of: debug, info, warn, error, none", levels[name]))
		}
	}
}

// joinValues renders a set of allowed values for an issue message.
func joinValues[T ~string](values []T) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = string(v)
	}
	return strings.Join(parts, ", ")
}

// validateUnknownKeys checks for TOML keys that did not map to any config struct field.
func validateUnknownKeys(vr *ValidationResult, meta *toml.MetaData) {
	if meta == nil {
		return
	}

	for _, key := range meta.Undecoded() {
		path := strings.Join(key, ".")
		addWarning(vr, path, "unknown configuration key")
	}
}

// addError appends an error-severity issue to the validation result.
func addError(vr *ValidationResult, field, message string) {
	vr.Issues = append(vr.Issues, ValidationIssue{
		Severity: SeverityError,
		Field:    field,
		Message:  message,
	})
}

// addWarning appends a warning-severity issue to the validation result.
func addWarning(vr *ValidationResult, field, message string) {
	vr.Issues = append(vr.Issues, ValidationIssue{
		Severity: SeverityWarning,
		Field:    field,
		Message:  message,
	})
}
