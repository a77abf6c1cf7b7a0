package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// WriteJSON encodes a trace as indented JSON and writes it to w.
// The output can be re-imported with [ReadJSON].
func WriteJSON(t Trace, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(t); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes a trace to a JSON file at path.
// This is a convenience wrapper around [WriteJSON] for file-based output.
func ExportJSON(t Trace, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteJSON(t, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
