package stats

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"github.com/m-mizutani/goerr/v2"
	"gopkg.in/yaml.v3"
)

// JSONPersister stores the snapshot in a single JSON file.
type JSONPersister struct {
	path string
}

// NewJSONPersister creates a JSONPersister, ensuring the parent directory exists.
func NewJSONPersister(path string) (*JSONPersister, error) {
	if err := ensureDir(path); err != nil {
		return nil, err
	}
	return &JSONPersister{path: path}, nil
}

func (p *JSONPersister) Save(_ context.Context, snap Snapshot) error {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return goerr.Wrap(err, "json marshal")
	}
	return writeFile(p.path, data)
}

func (p *JSONPersister) Load(_ context.Context) (Snapshot, error) {
	data, err := readFile(p.path)
	if err != nil || data == nil {
		return Snapshot{}, err
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return Snapshot{}, goerr.Wrap(err, "json unmarshal", goerr.V("path", p.path))
	}
	return snap, nil
}

// YAMLPersister stores the snapshot in a single YAML file.
type YAMLPersister struct {
	path string
}

// NewYAMLPersister creates a YAMLPersister, ensuring the parent directory exists.
func NewYAMLPersister(path string) (*YAMLPersister, error) {
	if err := ensureDir(path); err != nil {
		return nil, err
	}
	return &YAMLPersister{path: path}, nil
}

func (p *YAMLPersister) Save(_ context.Context, snap Snapshot) error {
	data, err := yaml.Marshal(snap)
	if err != nil {
		return goerr.Wrap(err, "yaml marshal")
	}
	return writeFile(p.path, data)
}

func (p *YAMLPersister) Load(_ context.Context) (Snapshot, error) {
	data, err := readFile(p.path)
	if err != nil || data == nil {
		return Snapshot{}, err
	}
	var snap Snapshot
	if err := yaml.Unmarshal(data, &snap); err != nil {
		return Snapshot{}, goerr.Wrap(err, "yaml unmarshal", goerr.V("path", p.path))
	}
	return snap, nil
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return goerr.Wrap(err, "failed to create stats directory", goerr.V("dir", dir))
	}
	return nil
}

// readFile returns nil data and no error when the file does not exist yet.
func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read stats file", goerr.V("path", path))
	}
	return data, nil
}

// writeFile replaces path through a rename so readers never see a torn file.
func writeFile(path string, data []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return goerr.Wrap(err, "failed to write stats file", goerr.V("path", tmp))
	}
	if err := os.Rename(tmp, path); err != nil {
		return goerr.Wrap(err, "failed to replace stats file", goerr.V("path", path))
	}
	return nil
}
