package io

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/chartnote/pkg/errors"
)

// ReadDocument decodes a document in format f from r.
//
// Decoding is strict: keys the document schema does not know are errors,
// so a misspelled option fails loudly instead of silently inheriting.
// Annotations themselves are not checked here; unknown annotation types
// and unresolvable anchors are reported by annotation.Validate once the
// chart exists.
//
// ReadDocument does not close r.
func ReadDocument(r io.Reader, f Format) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDocument, err, "read document")
	}

	var doc Document
	switch f {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		dec.UseNumber()
		err = dec.Decode(&doc)
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		err = dec.Decode(&doc)
		if err == io.EOF {
			err = nil
		}
	case FormatTOML:
		var md toml.MetaData
		md, err = toml.NewDecoder(bytes.NewReader(data)).Decode(&doc)
		if err == nil {
			err = undecoded(md)
		}
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown document format %q", f)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode %s document", f)
	}
	return &doc, nil
}

// undecoded reports TOML keys that matched no field. Keys below data
// tables are free-form and always accepted.
func undecoded(md toml.MetaData) error {
	var unknown []string
	for _, k := range md.Undecoded() {
		if slices.Contains(k, "data") {
			continue
		}
		unknown = append(unknown, k.String())
	}
	if len(unknown) > 0 {
		return errors.New(errors.ErrCodeInvalidFormat, "unknown keys: %s", strings.Join(unknown, ", "))
	}
	return nil
}

// ImportDocument reads the document at path, picking the format from the
// extension.
func ImportDocument(path string) (*Document, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	f, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "document %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidDocument, err, "open %s", path)
	}
	defer file.Close()
	return ReadDocument(file, f)
}
