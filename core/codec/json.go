package codec

import (
	"bytes"
	"encoding"
	"encoding/json"
	"errors"
	"reflect"
	"strings"

	"github.com/stoewer/go-strcase"
)

// maxDepth bounds nesting so pointer cycles fail instead of overflowing the stack.
const maxDepth = 1000

var (
	errTooDeep = errors.New("codec: value nested too deeply or cyclic")

	jsonMarshalerType = reflect.TypeOf((*json.Marshaler)(nil)).Elem()
	textMarshalerType = reflect.TypeOf((*encoding.TextMarshaler)(nil)).Elem()
)

// Marshal encodes v as JSON. Exported struct fields without an explicit json
// name are written in lowerCamelCase; tagged names, map keys and values with
// their own MarshalJSON/MarshalText are kept as they are. It is the fiber
// JSONEncoder of the server.
func Marshal(v any) ([]byte, error) {
	tree, err := camelize(reflect.ValueOf(v), 0)
	if err != nil {
		return nil, err
	}
	return json.Marshal(tree)
}

// object keeps struct field order, which a map[string]any would lose.
type object []member

type member struct {
	key   string
	value any
}

func (o object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, m := range o {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(m.key)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(m.value)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func camelize(v reflect.Value, depth int) (any, error) {
	if !v.IsValid() {
		return nil, nil
	}
	if depth > maxDepth {
		return nil, errTooDeep
	}
	if m, ok := selfMarshaling(v); ok {
		return m, nil
	}

	switch v.Kind() {
	case reflect.Pointer, reflect.Interface:
		if v.IsNil() {
			return nil, nil
		}
		return camelize(v.Elem(), depth+1)

	case reflect.Struct:
		return camelizeStruct(v, depth)

	case reflect.Map:
		if v.IsNil() {
			return nil, nil
		}
		if v.Type().Key().Kind() != reflect.String {
			return v.Interface(), nil
		}
		out := make(map[string]any, v.Len())
		iter := v.MapRange()
		for iter.Next() {
			val, err := camelize(iter.Value(), depth+1)
			if err != nil {
				return nil, err
			}
			out[iter.Key().String()] = val
		}
		return out, nil

	case reflect.Slice:
		if v.IsNil() {
			return nil, nil
		}
		// []byte keeps its base64 encoding.
		if v.Type().Elem().Kind() == reflect.Uint8 {
			return v.Interface(), nil
		}
		return camelizeList(v, depth)

	case reflect.Array:
		return camelizeList(v, depth)

	default:
		return v.Interface(), nil
	}
}

func camelizeList(v reflect.Value, depth int) (any, error) {
	out := make([]any, v.Len())
	for i := range out {
		val, err := camelize(v.Index(i), depth+1)
		if err != nil {
			return nil, err
		}
		out[i] = val
	}
	return out, nil
}

func camelizeStruct(v reflect.Value, depth int) (object, error) {
	t := v.Type()
	members := object{}

	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		tag := f.Tag.Get("json")
		if tag == "-" {
			continue
		}
		name, opts, _ := strings.Cut(tag, ",")
		fv := v.Field(i)

		// Untagged embedded structs are flattened, as encoding/json does.
		if f.Anonymous && name == "" {
			inner := fv
			if inner.Kind() == reflect.Pointer {
				if inner.IsNil() {
					continue
				}
				inner = inner.Elem()
			}
			if _, ok := selfMarshaling(inner); !ok && inner.Kind() == reflect.Struct {
				promoted, err := camelizeStruct(inner, depth+1)
				if err != nil {
					return nil, err
				}
				members = append(members, promoted...)
				continue
			}
		}

		if hasOption(opts, "omitempty") && isEmptyValue(fv) {
			continue
		}
		if name == "" {
			name = strcase.LowerCamelCase(f.Name)
		}

		val, err := camelize(fv, depth+1)
		if err != nil {
			return nil, err
		}
		if hasOption(opts, "string") && isScalar(fv.Kind()) {
			quoted, err := json.Marshal(val)
			if err != nil {
				return nil, err
			}
			val = string(quoted)
		}
		members = append(members, member{key: name, value: val})
	}
	return members, nil
}

// selfMarshaling returns the value to hand to encoding/json when v encodes
// itself, following the same addressability rules as encoding/json.
func selfMarshaling(v reflect.Value) (any, bool) {
	t := v.Type()
	if t.Kind() != reflect.Interface && (t.Implements(jsonMarshalerType) || t.Implements(textMarshalerType)) {
		return v.Interface(), true
	}
	if t.Kind() != reflect.Pointer && v.CanAddr() {
		pt := reflect.PointerTo(t)
		if pt.Implements(jsonMarshalerType) || pt.Implements(textMarshalerType) {
			return v.Addr().Interface(), true
		}
	}
	return nil, false
}

func hasOption(opts, option string) bool {
	for opts != "" {
		var o string
		o, opts, _ = strings.Cut(opts, ",")
		if o == option {
			return true
		}
	}
	return false
}

func isScalar(k reflect.Kind) bool {
	switch k {
	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

func isEmptyValue(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Array, reflect.Map, reflect.Slice, reflect.String:
		return v.Len() == 0
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64,
		reflect.Interface, reflect.Pointer:
		return v.IsZero()
	}
	return false
}
