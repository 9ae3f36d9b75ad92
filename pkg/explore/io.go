package explore

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// MarshalView encodes a view as indented JSON.
func MarshalView(v View) ([]byte, error) {
	return json.MarshalIndent(v, "", "  ")
}

// WriteView writes a view as JSON to w.
func WriteView(v View, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// WriteViewFile writes a view as JSON to path. The file is created with
// 0644 permissions.
func WriteViewFile(v View, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteView(v, f)
}

// ReadView decodes a view previously written by [WriteView].
func ReadView(r io.Reader) (View, error) {
	var v View
	if err := json.NewDecoder(r).Decode(&v); err != nil {
		return View{}, fmt.Errorf("decode view: %w", err)
	}
	return v, nil
}

// ReadViewFile reads a view from a JSON file.
func ReadViewFile(path string) (View, error) {
	f, err := os.Open(path)
	if err != nil {
		return View{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadView(f)
}
