package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// WriteCollected writes the collected artifact to path, replacing the
// previous one.
func WriteCollected(path string, c Collected) error {
	if c.Articles == nil {
		c.Articles = []Article{}
	}
	return writeJSON(path, c)
}

// ReadCollected reads the collected artifact from path.
func ReadCollected(path string) (Collected, error) {
	var c Collected
	if err := readJSON(path, &c); err != nil {
		return Collected{}, err
	}
	return c, nil
}

// WriteFiltered writes the filtered artifact to path, replacing the
// previous one.
func WriteFiltered(path string, f Filtered) error {
	if f.Articles == nil {
		f.Articles = []Scored{}
	}
	return writeJSON(path, f)
}

// ReadFiltered reads the filtered artifact from path.
func ReadFiltered(path string) (Filtered, error) {
	var f Filtered
	if err := readJSON(path, &f); err != nil {
		return Filtered{}, err
	}
	return f, nil
}

// writeJSON marshals v and replaces the file at path atomically, so that a
// reader never observes a partially written artifact.
func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("make parent dir: %w", err)
	}

	bts, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal artifact: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("make temp file: %w", err)
	}

	if _, err = tmp.Write(bts); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("write temp file: %w", err)
	}

	if err = tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("close temp file: %w", err)
	}

	if err = os.Rename(tmp.Name(), path); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("replace %s: %w", path, err)
	}

	return nil
}

func readJSON(path string, v any) error {
	bts, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	if err = json.Unmarshal(bts, v); err != nil {
		return fmt.Errorf("unmarshal %s: %w", path, err)
	}

	return nil
}
