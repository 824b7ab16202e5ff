package filestore

import (
	"bytes"
	"context"
	"encoding/json"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/matzehuels/aasgraph/pkg/cache"
	"github.com/matzehuels/aasgraph/pkg/codec"
	"github.com/matzehuels/aasgraph/pkg/errors"
	"github.com/matzehuels/aasgraph/pkg/model"
	"github.com/matzehuels/aasgraph/pkg/observability"
)

// Scheme is the URI scheme served by [Backend].
const Scheme = "file"

func init() {
	model.RegisterBackend(Scheme, Backend{})
}

// Backend synchronizes identifiables with the JSON files named by their
// file:// source URIs. The fragment of a source URI is the SHA-256 of the
// file content last read or written, used as the revision token for
// optimistic concurrency.
type Backend struct{}

// SourceURI returns the source URI for a file with the given revision
// token.
func SourceURI(path, token string) string {
	u := url.URL{Scheme: Scheme, Path: filepath.ToSlash(path), Fragment: token}
	return u.String()
}

// ParseSource splits a source URI into file path and revision token.
func ParseSource(uri string) (path, token string, err error) {
	u, err := url.Parse(uri)
	if err != nil {
		return "", "", errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid source %q", uri)
	}
	if u.Scheme != Scheme || u.Path == "" {
		return "", "", errors.New(errors.ErrCodeInvalidInput, "not a file source: %q", uri)
	}
	return filepath.FromSlash(u.Path), u.Fragment, nil
}

// UpdateObject reloads the file of storeObject and reconciles target with
// the object found at relativePath in the fresh copy.
func (Backend) UpdateObject(ctx context.Context, target, storeObject model.Referable, relativePath []string) (err error) {
	start := time.Now()
	defer func() { observability.Store().OnUpdate(ctx, storeObject.Source(), time.Since(start), err) }()

	path, _, err := ParseSource(storeObject.Source())
	if err != nil {
		return err
	}
	fresh, token, err := readObject(ctx, path)
	if err != nil {
		return err
	}
	src, err := descend(fresh, relativePath)
	if err != nil {
		return err
	}
	if err := model.UpdateFrom(target, src); err != nil {
		return err
	}
	storeObject.SetSource(SourceURI(path, token))
	return nil
}

// CommitObject writes storeObject back to its file. Files hold whole
// identifiables, so the commit covers target and all its siblings. It
// fails with CONFLICT if the file changed since it was last read or
// written through this source.
func (Backend) CommitObject(ctx context.Context, target, storeObject model.Referable, relativePath []string) (err error) {
	start := time.Now()
	defer func() { observability.Store().OnCommit(ctx, storeObject.Source(), time.Since(start), err) }()

	obj, ok := storeObject.(model.Identifiable)
	if !ok {
		return errors.New(errors.ErrCodeInvalidInput, "file sources must be set on identifiables, not %s", storeObject.Kind())
	}
	path, token, err := ParseSource(storeObject.Source())
	if err != nil {
		return err
	}
	current, err := fileToken(path)
	if err != nil {
		return err
	}
	if current != token {
		return errors.New(errors.ErrCodeConflict, "%s changed since it was last read", path)
	}
	token, err = writeObject(path, obj)
	if err != nil {
		return err
	}
	storeObject.SetSource(SourceURI(path, token))
	return nil
}

func descend(root model.Referable, path []string) (model.Referable, error) {
	cur := root
	for _, name := range path {
		ns, ok := cur.(model.Namespace)
		if !ok {
			return nil, errors.New(errors.ErrCodeNotANamespace, "%s %q has no children", cur.Kind(), cur.IDShort())
		}
		next, err := ns.GetReferable(name)
		if err != nil {
			return nil, err
		}
		cur = next
	}
	return cur, nil
}

// fileToken returns the revision token of a file, or "" if it does not
// exist.
func fileToken(path string) (string, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return cache.Hash(data), nil
}

var (
	decoder = codec.NewDecoder(codec.DecodeOptions{Strict: true})
	encoder = codec.NewEncoder(codec.EncodeOptions{})
)

func readObject(ctx context.Context, path string) (model.Identifiable, string, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, "", errors.New(errors.ErrCodeNotFound, "no stored object at %s", path)
	}
	if err != nil {
		return nil, "", err
	}
	var tree any
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&tree); err != nil {
		return nil, "", errors.Wrap(errors.ErrCodeDecodeFailure, err, "%s", path)
	}
	obj, _, err := decoder.DecodeIdentifiable(ctx, tree)
	if err != nil {
		return nil, "", errors.Wrap(errors.GetCode(err), err, "%s", path)
	}
	return obj, cache.Hash(data), nil
}

// writeObject replaces the file at path with obj and returns the new
// revision token.
func writeObject(path string, obj model.Identifiable) (string, error) {
	data, err := json.MarshalIndent(encoder.EncodeIdentifiable(obj), "", "  ")
	if err != nil {
		return "", err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp-*")
	if err != nil {
		return "", err
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return "", err
	}
	if err := tmp.Close(); err != nil {
		return "", err
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return "", err
	}
	return cache.Hash(data), nil
}
