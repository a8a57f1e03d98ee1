package openapi

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// MarshalJSON serializes the spec to indented JSON bytes.
func MarshalJSON(spec *Spec) ([]byte, error) {
	return json.MarshalIndent(spec, "", "  ")
}

// Encode writes the indented spec to w, terminated by a newline.
func Encode(w io.Writer, spec *Spec) error {
	data, err := MarshalJSON(spec)
	if err != nil {
		return fmt.Errorf("encode openapi spec: %w", err)
	}
	_, err = w.Write(append(data, '\n'))
	return err
}

// WriteJSON writes the indented spec to filename, creating parent directories.
func WriteJSON(spec *Spec, filename string) error {
	if dir := filepath.Dir(filename); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}

	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	if err := Encode(f, spec); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
