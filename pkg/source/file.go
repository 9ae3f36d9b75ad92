package source

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/stakemap/pkg/errors"
	"github.com/matzehuels/stakemap/pkg/project"
)

// FileSource reads a dataset from a .json or .toml file. The file is re-read
// on every Load, so edits show up on the next rebuild.
type FileSource struct {
	path string
}

// NewFileSource checks the extension and returns a source for path. The
// file itself is not opened until Load.
func NewFileSource(path string) (*FileSource, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json", ".toml":
		return &FileSource{path: path}, nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported dataset file %q (want .json or .toml)", filepath.Base(path))
	}
}

// Describe returns "file:<path>".
func (s *FileSource) Describe() string { return "file:" + s.path }

// Load reads, decodes, normalizes and validates the dataset.
func (s *FileSource) Load(ctx context.Context) (project.Dataset, error) {
	if err := ctx.Err(); err != nil {
		return project.Dataset{}, err
	}
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return project.Dataset{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "dataset file %s not found", s.path)
	}
	if err != nil {
		return project.Dataset{}, errors.Wrap(errors.ErrCodeSourceUnavailable, err, "read %s", s.path)
	}

	ds, err := Decode(data, filepath.Ext(s.path))
	if err != nil {
		return project.Dataset{}, err
	}
	return finish(ds)
}

// Close does nothing for file sources.
func (s *FileSource) Close() error { return nil }

// Decode parses a dataset document. ext selects the format (".json" or
// ".toml"). Unknown JSON fields are rejected so typos in hand-written files
// surface early.
func Decode(data []byte, ext string) (project.Dataset, error) {
	var ds project.Dataset
	switch strings.ToLower(ext) {
	case ".json":
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&ds); err != nil {
			return project.Dataset{}, errors.Wrap(errors.ErrCodeInvalidDataset, err, "decode json dataset")
		}
	case ".toml":
		md, err := toml.Decode(string(data), &ds)
		if err != nil {
			return project.Dataset{}, errors.Wrap(errors.ErrCodeInvalidDataset, err, "decode toml dataset")
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return project.Dataset{}, errors.New(errors.ErrCodeInvalidDataset, "unknown key %q in toml dataset", undecoded[0].String())
		}
	default:
		return project.Dataset{}, errors.New(errors.ErrCodeInvalidFormat, "unsupported dataset format %q", ext)
	}
	return ds, nil
}

var _ Source = (*FileSource)(nil)
