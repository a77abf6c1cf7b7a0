package io

import (
	"encoding/json"
	"io"
	"os"

	"github.com/matzehuels/floatsheet/pkg/errors"
)

// ReadJSON decodes and validates a trace from r.
//
// Unknown fields are rejected so a misspelled key does not silently
// replay a different gesture. Decoding failures carry INVALID_FORMAT;
// a well-formed but unreplayable trace carries INVALID_INPUT.
func ReadJSON(r io.Reader) (Trace, error) {
	var t Trace
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&t); err != nil {
		return Trace{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode trace")
	}
	if err := t.Validate(); err != nil {
		return Trace{}, err
	}
	return t, nil
}

// ImportJSON reads a trace from the JSON file at path.
func ImportJSON(path string) (Trace, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Trace{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "trace file %s not found", path)
		}
		return Trace{}, errors.Wrap(errors.ErrCodeInternal, err, "open %s", path)
	}
	defer f.Close()
	return ReadJSON(f)
}
