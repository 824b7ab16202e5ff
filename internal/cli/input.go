package cli

import (
	"bytes"
	"context"
	"io"
	"os"

	"github.com/matzehuels/aasgraph/pkg/cache"
	"github.com/matzehuels/aasgraph/pkg/codec"
	"github.com/matzehuels/aasgraph/pkg/errors"
)

// document is an input file read into memory.
type document struct {
	path   string
	format codec.Format
	data   []byte
	hash   string
}

// readDocument reads path ("-" for stdin). The format comes from the
// explicit name if given, otherwise from the file extension.
func readDocument(path, format string) (*document, error) {
	f := codec.FormatFromPath(path)
	if format != "" {
		var err error
		if f, err = codec.ParseFormat(format); err != nil {
			return nil, err
		}
	}

	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if os.IsNotExist(err) {
		return nil, errors.New(errors.ErrCodeNotFound, "%s does not exist", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read %s", path)
	}
	return &document{path: path, format: f, data: data, hash: cache.Hash(data)}, nil
}

// decode parses the document. Recovered problems are logged against the
// file name.
func (d *document) decode(ctx context.Context, strict bool) (*codec.Result, error) {
	dec := codec.NewDecoder(codec.DecodeOptions{
		Strict: strict,
		Logger: loggerFromContext(ctx).With("file", d.path),
	})
	return dec.Decode(ctx, bytes.NewReader(d.data), d.format)
}

// writeOutput writes data to path, or to stdout if path is empty or "-".
func writeOutput(path string, data []byte) error {
	if path == "" || path == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// boolSetting returns the flag value if it was given, otherwise the
// config value.
func boolSetting(changed, flag, config bool) bool {
	if changed {
		return flag
	}
	return config
}
