package codec

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/fxamacker/cbor/v2"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/aasgraph/pkg/errors"
	"github.com/matzehuels/aasgraph/pkg/store"
)

// Format names a rendition of the document tree.
type Format string

const (
	FormatJSON Format = "json"
	FormatCBOR Format = "cbor"
	FormatYAML Format = "yaml"
)

// Formats lists the supported formats.
var Formats = []Format{FormatJSON, FormatCBOR, FormatYAML}

// ParseFormat parses a format name, case-insensitively. "yml" is accepted
// for YAML.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "json":
		return FormatJSON, nil
	case "cbor":
		return FormatCBOR, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return "", errors.New(errors.ErrCodeInvalidInput, "unknown format %q (want json, cbor or yaml)", s)
}

// FormatFromPath guesses the format from a file extension, defaulting to
// JSON.
func FormatFromPath(path string) Format {
	if f, err := ParseFormat(strings.TrimPrefix(filepath.Ext(path), ".")); err == nil {
		return f
	}
	return FormatJSON
}

var (
	cborEnc cbor.EncMode
	cborDec cbor.DecMode
)

func init() {
	var err error
	cborEnc, err = cbor.EncOptions{
		Sort:          cbor.SortCanonical,
		IndefLength:   cbor.IndefLengthForbidden,
		NilContainers: cbor.NilContainerAsNull,
	}.EncMode()
	if err != nil {
		panic(fmt.Sprintf("cbor encoder mode: %v", err))
	}
	cborDec, err = cbor.DecOptions{
		DupMapKey:      cbor.DupMapKeyEnforcedAPF,
		DefaultMapType: reflect.TypeOf(map[string]any(nil)),
	}.DecMode()
	if err != nil {
		panic(fmt.Sprintf("cbor decoder mode: %v", err))
	}
}

// parseTree reads a generic tree of maps, slices and scalars.
func parseTree(r io.Reader, f Format) (any, error) {
	var tree any
	var err error
	switch f {
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.UseNumber()
		err = dec.Decode(&tree)
	case FormatCBOR:
		err = cborDec.NewDecoder(r).Decode(&tree)
	case FormatYAML:
		err = yaml.NewDecoder(r).Decode(&tree)
	default:
		return nil, errors.New(errors.ErrCodeInvalidInput, "unknown format %q", f)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeDecodeFailure, err, "parse %s", f)
	}
	return tree, nil
}

func writeTree(w io.Writer, tree any, f Format) error {
	switch f {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(tree)
	case FormatCBOR:
		return cborEnc.NewEncoder(w).Encode(tree)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(tree); err != nil {
			return err
		}
		return enc.Close()
	}
	return errors.New(errors.ErrCodeInvalidInput, "unknown format %q", f)
}

func read(r io.Reader, f Format) (*store.DictStore, error) {
	res, err := NewDecoder(DecodeOptions{}).Decode(context.Background(), r, f)
	if err != nil {
		return nil, err
	}
	return res.Store, nil
}

func write(s store.ObjectStore, w io.Writer, f Format) error {
	return NewEncoder(EncodeOptions{}).Encode(context.Background(), w, s, f)
}

// ReadJSON decodes a JSON document from r in failsafe mode. Recovered
// issues are logged; use a [Decoder] to inspect them.
func ReadJSON(r io.Reader) (*store.DictStore, error) { return read(r, FormatJSON) }

// WriteJSON encodes every object of s as an indented JSON document.
func WriteJSON(s store.ObjectStore, w io.Writer) error { return write(s, w, FormatJSON) }

// ReadCBOR decodes a CBOR rendition of the document tree in failsafe mode.
func ReadCBOR(r io.Reader) (*store.DictStore, error) { return read(r, FormatCBOR) }

// WriteCBOR encodes s as canonical CBOR.
func WriteCBOR(s store.ObjectStore, w io.Writer) error { return write(s, w, FormatCBOR) }

// ReadYAML decodes a YAML rendition of the document tree in failsafe mode.
func ReadYAML(r io.Reader) (*store.DictStore, error) { return read(r, FormatYAML) }

// WriteYAML encodes s as YAML.
func WriteYAML(s store.ObjectStore, w io.Writer) error { return write(s, w, FormatYAML) }

// ImportJSON reads a JSON document from a file.
func ImportJSON(path string) (*store.DictStore, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadJSON(f)
}

// ExportJSON writes s as a JSON document to a file.
func ExportJSON(s store.ObjectStore, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteJSON(s, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
