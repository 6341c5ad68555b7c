package script

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"curvelab/curve"
)

// Version written into new documents.
const Version = "1.0"

// Metadata carries descriptive fields that are round-tripped untouched.
type Metadata struct {
	Title      string `json:"title,omitempty"`
	Creator    string `json:"creator,omitempty"`
	Notes      string `json:"notes,omitempty"`
	DurationMs int    `json:"duration,omitempty"`
}

// Script is the persisted document: a curve plus opaque envelope fields.
// Only Actions is load-bearing for the editor.
type Script struct {
	Version  string      `json:"version"`
	Inverted bool        `json:"inverted"`
	Range    int         `json:"range"`
	Metadata Metadata    `json:"metadata,omitempty"`
	Actions  curve.Curve `json:"actions"`
}

// New returns an empty document with defaults.
func New() *Script {
	return &Script{Version: Version, Range: 100}
}

// Load reads and validates a document. This is the trust boundary: a file
// with non-monotonic times, out-of-range positions or no samples at all is
// rejected with a descriptive error, never silently repaired.
func Load(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", path)
	}

	var s Script
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, errors.Wrapf(err, "parse %s", path)
	}

	if len(s.Actions) == 0 {
		return nil, errors.Errorf("%s: script has no actions", path)
	}
	if err := curve.Validate(s.Actions); err != nil {
		return nil, errors.Wrapf(err, "%s", path)
	}

	return &s, nil
}

// Save writes the document atomically: full JSON to a temp file in the
// same directory, then rename. The curve is normalized first so the file
// always honors the ascending-time, unique-timestamp contract.
func Save(path string, s *Script) error {
	out := *s
	out.Actions = curve.Normalize(s.Actions)
	if out.Version == "" {
		out.Version = Version
	}

	data, err := json.MarshalIndent(&out, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encode script")
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrapf(err, "create %s", dir)
	}

	tmp, err := os.CreateTemp(dir, ".curvelab-*")
	if err != nil {
		return errors.Wrap(err, "create temp file")
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return errors.Wrapf(err, "write %s", tmpName)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return errors.Wrapf(err, "close %s", tmpName)
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return errors.Wrapf(err, "rename into %s", path)
	}
	return nil
}
