package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// programNameRegex matches valid lowered program names: a leading
// letter, then letters, digits, and underscores (a valid Rust crate
// identifier).
var programNameRegex = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// ValidateProgramName validates the name used for the generated program
// crate and its library target.
func ValidateProgramName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidProgramName, "program name cannot be empty")
	}

	if len(name) > 64 {
		return New(ErrCodeInvalidProgramName, "program name too long (max 64 characters)")
	}

	if !programNameRegex.MatchString(name) {
		return New(ErrCodeInvalidProgramName, "invalid program name: %q (lowercase letters, digits, underscores)", name)
	}

	return nil
}

// ValidateArtifactFilename validates a generated artifact's relative
// path before it is written to disk. It prevents path traversal out of
// the output directory.
//
// The validation rules are intentionally conservative:
//   - No empty names
//   - No control characters or null bytes
//   - No absolute paths
//   - No path traversal sequences (..)
//   - No backslashes (Windows path injection)
//   - Maximum length of 256 characters
func ValidateArtifactFilename(name string) error {
	if name == "" {
		return New(ErrCodeInvalidArtifact, "artifact filename cannot be empty")
	}

	if len(name) > 256 {
		return New(ErrCodeInvalidArtifact, "artifact filename too long (max 256 characters)")
	}

	for _, r := range name {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidArtifact, "artifact filename contains invalid characters")
		}
	}

	if strings.HasPrefix(name, "/") {
		return New(ErrCodeInvalidArtifact, "artifact filename must be relative")
	}

	if strings.Contains(name, "..") {
		return New(ErrCodeInvalidArtifact, "artifact filename cannot contain path traversal sequences (..)")
	}

	if strings.Contains(name, "\\") {
		return New(ErrCodeInvalidArtifact, "artifact filename cannot contain backslashes")
	}

	return nil
}

// ValidateGraphSize rejects graphs above the configured node/edge caps.
// The core operations complete in low-millisecond time for editor-scale
// graphs and have no internal timeout; callers bound runtime by bounding
// input size here instead.
func ValidateGraphSize(nodeCount, edgeCount, maxNodes, maxEdges int) error {
	if maxNodes > 0 && nodeCount > maxNodes {
		return New(ErrCodeGraphTooLarge, "graph has %d nodes (max %d)", nodeCount, maxNodes)
	}
	if maxEdges > 0 && edgeCount > maxEdges {
		return New(ErrCodeGraphTooLarge, "graph has %d connections (max %d)", edgeCount, maxEdges)
	}
	return nil
}
