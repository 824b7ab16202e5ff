package codec

import (
	"encoding/json"
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/matzehuels/aasgraph/pkg/errors"
	"github.com/matzehuels/aasgraph/pkg/model"
	"github.com/matzehuels/aasgraph/pkg/xsd"
)

// object is a JSON object node of the generic tree together with its
// location, used for typed field access during decoding.
type object struct {
	m    map[string]any
	path string
}

func (o object) at(key string) string { return o.path + "." + key }

func fieldError(path, format string, args ...any) error {
	return errors.New(errors.ErrCodeMalformedValue, "%s: %s", path, fmt.Sprintf(format, args...))
}

// modelType returns the discriminator name, or false for untagged nodes.
func (o object) modelType() (string, bool) {
	mt, ok := o.m["modelType"].(map[string]any)
	if !ok {
		return "", false
	}
	name, ok := mt["name"].(string)
	return name, ok && name != ""
}

func (o object) has(key string) bool {
	v, ok := o.m[key]
	return ok && v != nil
}

// str returns an optional string field.
func (o object) str(key string) (string, error) {
	v, ok := o.m[key]
	if !ok || v == nil {
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		return "", fieldError(o.at(key), "expected a string, found %s", describe(v))
	}
	return s, nil
}

// requiredStr returns a string field that must be present and non-empty.
func (o object) requiredStr(key string) (string, error) {
	if !o.has(key) {
		return "", fieldError(o.at(key), "required field is missing")
	}
	s, err := o.str(key)
	if err == nil && s == "" {
		err = fieldError(o.at(key), "required field is empty")
	}
	return s, err
}

func (o object) boolean(key string) (bool, error) {
	v, ok := o.m[key]
	if !ok || v == nil {
		return false, nil
	}
	switch b := v.(type) {
	case bool:
		return b, nil
	case string:
		if b == "true" || b == "false" {
			return b == "true", nil
		}
	}
	return false, fieldError(o.at(key), "expected a boolean, found %s", describe(v))
}

// list returns an optional array field. A missing field is an empty list.
func (o object) list(key string) ([]any, error) {
	v, ok := o.m[key]
	if !ok || v == nil {
		return nil, nil
	}
	l, ok := v.([]any)
	if !ok {
		return nil, fieldError(o.at(key), "expected an array, found %s", describe(v))
	}
	return l, nil
}

func (o object) obj(key string) (object, bool, error) {
	v, ok := o.m[key]
	if !ok || v == nil {
		return object{}, false, nil
	}
	m, ok := v.(map[string]any)
	if !ok {
		return object{}, false, fieldError(o.at(key), "expected an object, found %s", describe(v))
	}
	return object{m: m, path: o.at(key)}, true, nil
}

func (o object) identifier() (model.Identifier, error) {
	id, ok, err := o.obj("identification")
	if err != nil {
		return model.Identifier{}, err
	}
	if !ok {
		return model.Identifier{}, fieldError(o.at("identification"), "required field is missing")
	}
	value, err := id.requiredStr("id")
	if err != nil {
		return model.Identifier{}, err
	}
	typ, err := id.requiredStr("idType")
	if err != nil {
		return model.Identifier{}, err
	}
	t, err := model.ParseIdentifierType(typ)
	if err != nil {
		return model.Identifier{}, err
	}
	ident := model.Identifier{ID: value, IDType: t}
	return ident, ident.Validate()
}

// langStrings reads a [{language, text}] array.
func (o object) langStrings(key string) (model.LangStringSet, error) {
	items, err := o.list(key)
	if err != nil || items == nil {
		return nil, err
	}
	m := make(map[string]string, len(items))
	for i, item := range items {
		p := fmt.Sprintf("%s[%d]", o.at(key), i)
		e, ok := item.(map[string]any)
		if !ok {
			return nil, fieldError(p, "expected a language string, found %s", describe(item))
		}
		ls := object{m: e, path: p}
		lang, err := ls.requiredStr("language")
		if err != nil {
			return nil, err
		}
		text, err := ls.str("text")
		if err != nil {
			return nil, err
		}
		m[lang] = text
	}
	return model.NewLangStringSet(m)
}

func (o object) reference(key string) (*model.Reference, error) {
	if !o.has(key) {
		return nil, nil
	}
	ref, err := parseReference(o.m[key], o.at(key))
	if err != nil {
		return nil, err
	}
	return &ref, nil
}

func (o object) requiredReference(key string) (model.Reference, error) {
	if !o.has(key) {
		return model.Reference{}, fieldError(o.at(key), "required field is missing")
	}
	return parseReference(o.m[key], o.at(key))
}

func (o object) aasReference(key string, target model.Kind) (*model.AASReference, error) {
	ref, err := o.reference(key)
	if err != nil || ref == nil {
		return nil, err
	}
	r, err := model.AsAASReference(*ref, target)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (o object) requiredAASReference(key string, target model.Kind) (model.AASReference, error) {
	ref, err := o.requiredReference(key)
	if err != nil {
		return model.AASReference{}, err
	}
	return model.AsAASReference(ref, target)
}

func (o object) references(key string) ([]model.Reference, error) {
	items, err := o.list(key)
	if err != nil {
		return nil, err
	}
	refs := make([]model.Reference, 0, len(items))
	for i, item := range items {
		ref, err := parseReference(item, fmt.Sprintf("%s[%d]", o.at(key), i))
		if err != nil {
			return nil, err
		}
		refs = append(refs, ref)
	}
	return refs, nil
}

func (o object) aasReferences(key string, target model.Kind) ([]model.AASReference, error) {
	refs, err := o.references(key)
	if err != nil {
		return nil, err
	}
	out := make([]model.AASReference, 0, len(refs))
	for _, ref := range refs {
		r, err := model.AsAASReference(ref, target)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

func parseReference(v any, path string) (model.Reference, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return model.Reference{}, fieldError(path, "expected a reference, found %s", describe(v))
	}
	o := object{m: m, path: path}
	items, err := o.list("keys")
	if err != nil {
		return model.Reference{}, err
	}
	keys := make([]model.Key, 0, len(items))
	for i, item := range items {
		k, err := parseKey(item, fmt.Sprintf("%s[%d]", o.at("keys"), i))
		if err != nil {
			return model.Reference{}, err
		}
		keys = append(keys, k)
	}
	ref, err := model.NewReference(keys...)
	if err != nil {
		return model.Reference{}, errors.Wrap(errors.GetCode(err), err, "%s", path)
	}
	return ref, nil
}

func parseKey(v any, path string) (model.Key, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return model.Key{}, fieldError(path, "expected a key, found %s", describe(v))
	}
	o := object{m: m, path: path}
	typ, err := o.requiredStr("type")
	if err != nil {
		return model.Key{}, err
	}
	elem, ok := model.ParseKeyElement(typ)
	if !ok {
		return model.Key{}, fieldError(o.at("type"), "unknown key element %q", typ)
	}
	idType, err := o.requiredStr("idType")
	if err != nil {
		return model.Key{}, err
	}
	kt, err := model.ParseKeyIDType(idType)
	if err != nil {
		return model.Key{}, err
	}
	local, err := o.boolean("local")
	if err != nil {
		return model.Key{}, err
	}
	value, err := o.str("value")
	if err != nil {
		return model.Key{}, err
	}
	return model.Key{Type: elem, Local: local, Value: value, IDType: kt}, nil
}

// valueType reads a value type given either as a plain name or in the
// {"dataObjectType": {"name": ...}} form.
func (o object) valueType(key string) (xsd.DataType, error) {
	v, ok := o.m[key]
	if !ok || v == nil {
		return xsd.TypeInvalid, fieldError(o.at(key), "required field is missing")
	}
	if m, ok := v.(map[string]any); ok {
		if dot, ok := m["dataObjectType"].(map[string]any); ok {
			v = dot["name"]
		}
	}
	name, ok := v.(string)
	if !ok {
		return xsd.TypeInvalid, fieldError(o.at(key), "expected a value type name, found %s", describe(v))
	}
	return xsd.ParseDataType(name)
}

// scalar converts a value node into a value of type t. Strings are parsed
// as lexical forms; other literals must match the category of t.
func (o object) scalar(key string, t xsd.DataType) (xsd.Value, error) {
	v, ok := o.m[key]
	if !ok || v == nil {
		return nil, nil
	}
	var (
		val xsd.Value
		err error
	)
	if s, ok := v.(string); ok {
		val, err = xsd.Parse(t, s)
	} else {
		val, err = xsd.TrivialCast(literal(v), t)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeMalformedValue, err, "%s", o.at(key))
	}
	return val, nil
}

// literal maps a decoded number onto the Go type TrivialCast expects.
func literal(v any) any {
	n, ok := v.(json.Number)
	if !ok {
		return v
	}
	s := string(n)
	if !strings.ContainsAny(s, ".eE") {
		if i, ok := new(big.Int).SetString(s, 10); ok {
			return i
		}
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return s
}

// describe names a tree node or decoded object for messages.
func describe(v any) string {
	switch x := v.(type) {
	case nil:
		return "null"
	case map[string]any:
		if name, ok := (object{m: x}).modelType(); ok {
			return fmt.Sprintf("undecoded %s", name)
		}
		return "untagged object"
	case []any:
		return "array"
	case string:
		return "string"
	case bool:
		return "boolean"
	case model.Referable:
		return x.Kind().String()
	case model.Constraint:
		return x.Kind().String()
	case *model.OperationVariable:
		return x.Kind().String()
	}
	return fmt.Sprintf("%T", v)
}
