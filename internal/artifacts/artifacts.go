// Package artifacts reads and writes the files handed between pipeline
// stages: the profile JSON, the SQL script and plain-text reports.
package artifacts

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jonathan/profile-builder/internal/types"
)

// JSONIndent is the indentation of written profile documents
const JSONIndent = "    "

// NotFoundError is returned when an input artifact does not exist
type NotFoundError struct {
	Kind string
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s file not found: %s", e.Kind, e.Path)
}

// RejectedPath is where a document that failed strict checks is kept
// instead of path, e.g. json_output.json becomes json_output.rejected.json
func RejectedPath(path string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + ".rejected" + ext
}

// WriteJSON pretty-prints raw with a 4-space indent and writes it to path.
// raw must be valid JSON; otherwise nothing is written.
func WriteJSON(path string, raw []byte) error {
	var buf bytes.Buffer
	if err := json.Indent(&buf, bytes.TrimSpace(raw), "", JSONIndent); err != nil {
		return fmt.Errorf("refusing to write invalid JSON to %s: %w", path, err)
	}
	return writeAtomic(path, buf.Bytes())
}

// WriteValue marshals v with the profile indent and writes it to path
func WriteValue(path string, v any) error {
	data, err := json.MarshalIndent(v, "", JSONIndent)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", path, err)
	}
	return writeAtomic(path, data)
}

// WriteText writes content to path unchanged
func WriteText(path, content string) error {
	return writeAtomic(path, []byte(content))
}

// ReadProfile loads the profile document at path. Missing fields decode as
// empty values.
func ReadProfile(path string) (*types.Profile, []byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil, &NotFoundError{Kind: "JSON", Path: path}
		}
		return nil, nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var profile types.Profile
	if err := json.Unmarshal(data, &profile); err != nil {
		return nil, nil, fmt.Errorf("failed to parse profile JSON %s: %w", path, err)
	}
	profile.Normalize()
	return &profile, data, nil
}

// RequireFile returns a *NotFoundError naming path when it does not exist
func RequireFile(kind, path string) error {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &NotFoundError{Kind: kind, Path: path}
		}
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}
	return nil
}

// writeAtomic writes data to a temporary sibling of path and renames it into
// place, so readers never observe a partial file.
func writeAtomic(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+"-*")
	if err != nil {
		return fmt.Errorf("failed to create temporary file for %s: %w", path, err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to set permissions on %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to flush %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("failed to move %s into place: %w", path, err)
	}
	return nil
}
