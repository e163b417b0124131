package baseline

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// DefaultFileName is the well-known state file, relative to the working directory.
const DefaultFileName = ".mypykaizen.json"

// Store reads and writes a Record at a fixed path.
type Store struct {
	path   string
	logger *slog.Logger
}

// NewStore creates a Store for path. An empty path selects DefaultFileName.
func NewStore(path string, logger *slog.Logger) *Store {
	if path == "" {
		path = DefaultFileName
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{path: path, logger: logger}
}

// Path returns the state file path.
func (s *Store) Path() string {
	return s.path
}

// Exists reports whether the state file is present.
func (s *Store) Exists() bool {
	info, err := os.Stat(s.path)
	return err == nil && !info.IsDir()
}

// Load reads the record. A missing file or undecodable content yields a fresh
// record; only I/O failures other than non-existence are returned as errors.
func (s *Store) Load() (Record, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.logger.Debug("no baseline file, starting fresh", "path", s.path)
			return Fresh(), nil
		}
		return Record{}, fmt.Errorf("reading baseline file: %w", err)
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		s.logger.Warn("failed to decode baseline file, continuing with a fresh baseline",
			"path", s.path, "error", err)
		return Fresh(), nil
	}

	if rec.FileVersion != SchemaVersion {
		s.logger.Warn("unrecognized baseline schema version, reading known fields",
			"path", s.path, "found", rec.FileVersion, "expected", SchemaVersion)
		rec.FileVersion = SchemaVersion
	}

	s.logger.Debug("loaded baseline", "path", s.path,
		"initialized", rec.Initialized(), "lines", len(rec.LastFullOutput))
	return rec, nil
}

// Save overwrites the state file with rec. The write goes through a temporary
// file in the same directory followed by a rename.
func (s *Store) Save(rec Record) error {
	data, err := Marshal(rec)
	if err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temporary baseline file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing baseline file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("writing baseline file: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("setting baseline file mode: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("replacing baseline file: %w", err)
	}

	s.logger.Debug("saved baseline", "path", s.path, "bytes", len(data))
	return nil
}

// Marshal renders rec the way it is stored on disk: 4-space indentation,
// no HTML escaping and a trailing newline.
func Marshal(rec Record) ([]byte, error) {
	if rec.FileVersion == "" {
		rec.FileVersion = SchemaVersion
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(rec); err != nil {
		return nil, fmt.Errorf("marshaling baseline: %w", err)
	}
	return buf.Bytes(), nil
}
