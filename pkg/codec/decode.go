package codec

import (
	"context"
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/aasgraph/pkg/errors"
	"github.com/matzehuels/aasgraph/pkg/model"
	"github.com/matzehuels/aasgraph/pkg/observability"
	"github.com/matzehuels/aasgraph/pkg/store"
)

// DecodeOptions configures a Decoder.
type DecodeOptions struct {
	// Strict turns every recoverable problem into a decode failure.
	Strict bool
	// Logger receives failsafe issues at warn level. Nil uses log.Default().
	Logger *log.Logger
}

// Issue is a problem the failsafe decoder recovered from.
type Issue struct {
	// Path locates the offending node, e.g. "$.submodels[0].submodelElements[3]".
	Path string
	Err  error
}

func (i Issue) String() string { return i.Path + ": " + i.Err.Error() }

// Result is the outcome of decoding a document.
type Result struct {
	Store  *store.DictStore
	Issues []Issue
}

// Decoder turns documents into object graphs.
type Decoder struct {
	opts DecodeOptions
}

// NewDecoder returns a decoder with the given options.
func NewDecoder(opts DecodeOptions) *Decoder {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	return &Decoder{opts: opts}
}

// Decode parses a document in format f from r.
func (d *Decoder) Decode(ctx context.Context, r io.Reader, f Format) (*Result, error) {
	hooks := observability.Codec()
	hooks.OnDecodeStart(ctx, string(f))
	start := time.Now()

	tree, err := parseTree(r, f)
	var res *Result
	if err == nil {
		res, err = d.DecodeTree(ctx, tree)
	}

	objects, issues := 0, 0
	if res != nil {
		objects, issues = res.Store.Len(), len(res.Issues)
	}
	hooks.OnDecodeComplete(ctx, string(f), objects, issues, time.Since(start), err)
	return res, err
}

// DecodeTree decodes an already parsed generic tree. The tree is
// consumed: decoded nodes are replaced in place.
func (d *Decoder) DecodeTree(ctx context.Context, tree any) (*Result, error) {
	root, ok := tree.(map[string]any)
	if !ok {
		return nil, errors.New(errors.ErrCodeDecodeFailure, "$: expected an object, found %s", describe(tree))
	}
	st := d.newState(ctx)
	st.walk(root, "$")
	if st.err != nil {
		return nil, st.err
	}

	s, _ := store.NewDictStore()
	for _, c := range rootCollections {
		if err := st.collect(s, root, c); err != nil {
			return nil, err
		}
	}
	return &Result{Store: s, Issues: st.issues}, nil
}

// DecodeIdentifiable decodes a single tagged identifiable node, as
// written by [Encoder.EncodeIdentifiable].
func (d *Decoder) DecodeIdentifiable(ctx context.Context, tree any) (model.Identifiable, []Issue, error) {
	st := d.newState(ctx)
	out := st.walk(tree, "$")
	if st.err != nil {
		return nil, nil, st.err
	}
	obj, ok := out.(model.Identifiable)
	if !ok {
		return nil, st.issues, errors.New(errors.ErrCodeDecodeFailure, "$: expected an identifiable, found %s", describe(out))
	}
	return obj, st.issues, nil
}

type rootCollection struct {
	key  string
	kind model.Kind
}

var rootCollections = []rootCollection{
	{"assetAdministrationShells", model.KindAssetAdministrationShell},
	{"submodels", model.KindSubmodel},
	{"assets", model.KindAsset},
	{"conceptDescriptions", model.KindConceptDescription},
}

// state is the per-call decoding state.
type state struct {
	ctx    context.Context
	strict bool
	logger *log.Logger
	issues []Issue
	failed map[string]bool
	err    error
}

func (d *Decoder) newState(ctx context.Context) *state {
	return &state{ctx: ctx, strict: d.opts.Strict, logger: d.opts.Logger, failed: make(map[string]bool)}
}

// fail records a problem at path. In strict mode the first problem aborts
// decoding and is returned as a decode failure; in failsafe mode it is
// logged and recorded as an issue and nil is returned.
func (st *state) fail(path string, err error) error {
	if st.strict {
		if st.err == nil {
			st.err = errors.Wrap(errors.ErrCodeDecodeFailure, err, "at %s", path)
		}
		return st.err
	}
	st.logger.Warn("decode issue", "path", path, "err", err)
	observability.Codec().OnIssue(st.ctx, path, err)
	st.issues = append(st.issues, Issue{Path: path, Err: err})
	st.failed[path] = true
	return nil
}

// drop records that the node v at path was left out of a typed slot. A
// node whose own decoding already failed at path is not reported twice.
func (st *state) drop(path, want string, v any) error {
	if st.failed[path] {
		st.logger.Debug("dropped undecoded node", "path", path, "want", want)
		return nil
	}
	return st.fail(path, errors.New(errors.ErrCodeInvalidInput, "expected %s, found %s; dropped", want, describe(v)))
}

// walk decodes the tree bottom-up. Children are decoded before their
// parent so a parent's constructor sees decoded children in place of raw
// nodes. Tagged nodes that fail to decode stay raw in failsafe mode.
func (st *state) walk(node any, path string) any {
	if st.err != nil {
		return node
	}
	switch n := node.(type) {
	case map[string]any:
		keys := make([]string, 0, len(n))
		for k := range n {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		for _, k := range keys {
			if k == "modelType" {
				continue
			}
			n[k] = st.walk(n[k], path+"."+k)
			if st.err != nil {
				return node
			}
		}
		o := object{m: n, path: path}
		name, ok := o.modelType()
		if !ok {
			return node
		}
		obj, err := st.construct(name, o)
		if err != nil {
			st.fail(path, err)
			return node
		}
		return obj
	case []any:
		for i := range n {
			n[i] = st.walk(n[i], fmt.Sprintf("%s[%d]", path, i))
			if st.err != nil {
				return node
			}
		}
	}
	return node
}

// collect moves the decoded objects of one root collection into s.
func (st *state) collect(s *store.DictStore, root map[string]any, c rootCollection) error {
	o := object{m: root, path: "$"}
	items, err := o.list(c.key)
	if err != nil {
		return st.fail(o.at(c.key), err)
	}
	for i, item := range items {
		p := fmt.Sprintf("%s[%d]", o.at(c.key), i)
		obj, ok := item.(model.Identifiable)
		if !ok {
			if err := st.drop(p, c.kind.String(), item); err != nil {
				return err
			}
			continue
		}
		if obj.Kind() != c.kind {
			// Failsafe keeps the object; it is still a valid identifiable.
			if err := st.fail(p, errors.New(errors.ErrCodeInvalidInput, "%s found in %s", obj.Kind(), c.key)); err != nil {
				return err
			}
		}
		if err := s.Add(obj); err != nil {
			if err := st.fail(p, err); err != nil {
				return err
			}
		}
	}
	return nil
}

// expect is the type-expectation guard for typed child slots. A child that
// is not a T is dropped with an issue (failsafe) or fails decoding.
func expect[T any](st *state, v any, path, want string) (T, bool, error) {
	if x, ok := v.(T); ok {
		return x, true, nil
	}
	var zero T
	err := st.drop(path, want, v)
	return zero, false, err
}
