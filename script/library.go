package script

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// SaveInfo describes one timestamped snapshot in the library.
type SaveInfo struct {
	Filename  string
	Label     string // optional, parsed from the filename
	Timestamp time.Time
}

const saveTimeLayout = "2006-01-02_15-04-05"

// LibraryDir returns the snapshot library root.
func LibraryDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "resolve home dir")
	}
	return filepath.Join(home, ".config", "curvelab", "scripts"), nil
}

// DocumentDir returns the snapshot directory for a named document.
func DocumentDir(name string) (string, error) {
	base, err := LibraryDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, name), nil
}

// ListDocuments returns all document names in the library, sorted.
func ListDocuments() ([]string, error) {
	dir, err := LibraryDir()
	if err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, errors.Wrapf(err, "read %s", dir)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// ListSaves returns the snapshots for a document, newest first. Filenames
// are 2006-01-02_15-04-05.json with an optional _label suffix; anything
// else in the directory is ignored.
func ListSaves(name string) ([]SaveInfo, error) {
	dir, err := DocumentDir(name)
	if err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []SaveInfo{}, nil
		}
		return nil, errors.Wrapf(err, "read %s", dir)
	}

	var saves []SaveInfo
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		base := strings.TrimSuffix(entry.Name(), ".json")
		if len(base) < len(saveTimeLayout) {
			continue
		}
		ts, err := time.Parse(saveTimeLayout, base[:len(saveTimeLayout)])
		if err != nil {
			continue
		}
		label := ""
		if len(base) > len(saveTimeLayout)+1 && base[len(saveTimeLayout)] == '_' {
			label = base[len(saveTimeLayout)+1:]
		}
		saves = append(saves, SaveInfo{Filename: entry.Name(), Label: label, Timestamp: ts})
	}

	sort.Slice(saves, func(i, j int) bool {
		return saves[i].Timestamp.After(saves[j].Timestamp)
	})
	return saves, nil
}

// Snapshot writes a timestamped copy of the document into the library.
// Called only on explicit save; nothing in the editor saves automatically.
func Snapshot(name, label string, s *Script) (string, error) {
	dir, err := DocumentDir(name)
	if err != nil {
		return "", err
	}

	filename := time.Now().Format(saveTimeLayout)
	if label = sanitizeLabel(label); label != "" {
		filename += "_" + label
	}
	filename += ".json"

	path := filepath.Join(dir, filename)
	if err := Save(path, s); err != nil {
		return "", err
	}
	return path, nil
}

// LoadSave reads one snapshot back.
func LoadSave(name, filename string) (*Script, error) {
	dir, err := DocumentDir(name)
	if err != nil {
		return nil, err
	}
	return Load(filepath.Join(dir, filename))
}

// DeleteSave removes one snapshot.
func DeleteSave(name, filename string) error {
	dir, err := DocumentDir(name)
	if err != nil {
		return err
	}
	return os.Remove(filepath.Join(dir, filename))
}

func sanitizeLabel(label string) string {
	label = strings.TrimSpace(label)
	label = strings.ReplaceAll(label, "/", "-")
	label = strings.ReplaceAll(label, "\\", "-")
	label = strings.ReplaceAll(label, " ", "_")
	return label
}
