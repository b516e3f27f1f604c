package gslides

import (
	"fmt"
	"math"
	"reflect"
	"strings"
	"sync"
)

// The codec maps between decoded JSON (map[string]any trees as produced by
// encoding/json) and the typed model. It is driven by `json` struct tags and
// preserves wire fidelity: absent fields stay absent, explicit zeros are kept
// through pointer fields, and keys the model does not know are carried in the
// struct's UnknownFields map and merged back on encode.
//
// Types whose wire form is ambiguous (a value that may be a bare literal or
// an object, or a tagged union) implement apiDecoder/apiEncoder to take over
// their own conversion.

type apiDecoder interface {
	decodeAPI(raw any) error
}

type apiEncoder interface {
	encodeAPI() (any, error)
}

type codecField struct {
	name  string
	index int
}

type codecStruct struct {
	fields     []codecField
	byName     map[string]int
	unknownIdx int
}

var codecCache sync.Map // reflect.Type -> *codecStruct

func codecInfo(t reflect.Type) *codecStruct {
	if v, ok := codecCache.Load(t); ok {
		return v.(*codecStruct)
	}
	info := &codecStruct{byName: make(map[string]int), unknownIdx: -1}
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.PkgPath != "" {
			continue
		}
		tag, ok := f.Tag.Lookup("json")
		if !ok {
			continue
		}
		name, _, _ := strings.Cut(tag, ",")
		if name == "-" {
			if f.Name == "UnknownFields" {
				info.unknownIdx = i
			}
			continue
		}
		if name == "" {
			continue
		}
		info.byName[name] = len(info.fields)
		info.fields = append(info.fields, codecField{name: name, index: i})
	}
	codecCache.Store(t, info)
	return info
}

// decodeStruct fills dst, a pointer to a struct, from a decoded JSON object.
// Custom decoders call it to reuse the tag-driven walk without recursing into
// themselves.
func decodeStruct(dst any, raw any) error {
	m, ok := raw.(map[string]any)
	if !ok {
		return fmt.Errorf("%w: want object, got %s", ErrSchemaMismatch, jsonTypeName(raw))
	}
	return decodeStructMap(reflect.ValueOf(dst).Elem(), m, "")
}

// encodeStruct is the inverse of decodeStruct: src is a pointer to a struct.
func encodeStruct(src any) (map[string]any, error) {
	return encodeStructMap(reflect.ValueOf(src).Elem())
}

func decodeStructMap(dst reflect.Value, m map[string]any, path string) error {
	info := codecInfo(dst.Type())
	var unknown map[string]any
	for key, raw := range m {
		if fi, ok := info.byName[key]; ok && raw != nil {
			fieldPath := key
			if path != "" {
				fieldPath = path + "." + key
			}
			if err := decodeValue(dst.Field(info.fields[fi].index), raw, fieldPath); err != nil {
				return err
			}
			continue
		}
		// Unknown keys and explicit nulls are carried verbatim so that
		// re-encoding reproduces the input.
		if unknown == nil {
			unknown = make(map[string]any)
		}
		unknown[key] = raw
	}
	if unknown != nil && info.unknownIdx >= 0 {
		dst.Field(info.unknownIdx).Set(reflect.ValueOf(unknown))
	}
	return nil
}

func decodeValue(dst reflect.Value, raw any, path string) error {
	if raw == nil {
		return nil
	}
	switch dst.Kind() {
	case reflect.Pointer:
		elem := reflect.New(dst.Type().Elem())
		if dec, ok := elem.Interface().(apiDecoder); ok {
			if err := dec.decodeAPI(raw); err != nil {
				return wrapPath(path, err)
			}
			dst.Set(elem)
			return nil
		}
		if err := decodeValue(elem.Elem(), raw, path); err != nil {
			return err
		}
		dst.Set(elem)
		return nil
	case reflect.Struct:
		if dst.CanAddr() {
			if dec, ok := dst.Addr().Interface().(apiDecoder); ok {
				return wrapPath(path, dec.decodeAPI(raw))
			}
		}
		m, ok := raw.(map[string]any)
		if !ok {
			return mismatch(path, "object", raw)
		}
		return decodeStructMap(dst, m, path)
	case reflect.String:
		s, ok := raw.(string)
		if !ok {
			return mismatch(path, "string", raw)
		}
		dst.SetString(s)
		return nil
	case reflect.Bool:
		b, ok := raw.(bool)
		if !ok {
			return mismatch(path, "boolean", raw)
		}
		dst.SetBool(b)
		return nil
	case reflect.Float64:
		f, ok := raw.(float64)
		if !ok {
			return mismatch(path, "number", raw)
		}
		dst.SetFloat(f)
		return nil
	case reflect.Int64:
		f, ok := raw.(float64)
		if !ok || f != math.Trunc(f) {
			return mismatch(path, "integer", raw)
		}
		dst.SetInt(int64(f))
		return nil
	case reflect.Slice:
		arr, ok := raw.([]any)
		if !ok {
			return mismatch(path, "array", raw)
		}
		out := reflect.MakeSlice(dst.Type(), len(arr), len(arr))
		for i, item := range arr {
			if err := decodeValue(out.Index(i), item, fmt.Sprintf("%s[%d]", path, i)); err != nil {
				return err
			}
		}
		dst.Set(out)
		return nil
	case reflect.Map:
		m, ok := raw.(map[string]any)
		if !ok {
			return mismatch(path, "object", raw)
		}
		out := reflect.MakeMapWithSize(dst.Type(), len(m))
		for k, item := range m {
			ev := reflect.New(dst.Type().Elem()).Elem()
			if err := decodeValue(ev, item, path+"."+k); err != nil {
				return err
			}
			out.SetMapIndex(reflect.ValueOf(k), ev)
		}
		dst.Set(out)
		return nil
	case reflect.Interface:
		dst.Set(reflect.ValueOf(raw))
		return nil
	}
	return fmt.Errorf("%w: %s: cannot decode into %s", ErrSchemaMismatch, path, dst.Type())
}

func encodeStructMap(src reflect.Value) (map[string]any, error) {
	info := codecInfo(src.Type())
	out := make(map[string]any, len(info.fields))
	for _, f := range info.fields {
		v, present, err := encodeField(src.Field(f.index))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", f.name, err)
		}
		if present {
			out[f.name] = v
		}
	}
	if info.unknownIdx >= 0 {
		if uf := src.Field(info.unknownIdx); !uf.IsNil() {
			for k, v := range uf.Interface().(map[string]any) {
				out[k] = v
			}
		}
	}
	return out, nil
}

// encodeField reports whether the field is present on the wire. Zero values
// of non-pointer kinds mean "absent"; presence of an explicit zero is always
// expressed through a pointer field.
func encodeField(fv reflect.Value) (any, bool, error) {
	switch fv.Kind() {
	case reflect.Pointer:
		if fv.IsNil() {
			return nil, false, nil
		}
	case reflect.String:
		if fv.String() == "" {
			return nil, false, nil
		}
	case reflect.Bool:
		if !fv.Bool() {
			return nil, false, nil
		}
	case reflect.Float64:
		if fv.Float() == 0 {
			return nil, false, nil
		}
	case reflect.Int64:
		if fv.Int() == 0 {
			return nil, false, nil
		}
	case reflect.Slice, reflect.Map, reflect.Interface:
		if fv.IsNil() {
			return nil, false, nil
		}
	}
	v, err := encodeValue(fv)
	return v, err == nil, err
}

func encodeValue(v reflect.Value) (any, error) {
	switch v.Kind() {
	case reflect.Pointer:
		if v.IsNil() {
			return nil, nil
		}
		if enc, ok := v.Interface().(apiEncoder); ok {
			return enc.encodeAPI()
		}
		return encodeValue(v.Elem())
	case reflect.Struct:
		if v.CanAddr() {
			if enc, ok := v.Addr().Interface().(apiEncoder); ok {
				return enc.encodeAPI()
			}
			return encodeStructMap(v)
		}
		tmp := reflect.New(v.Type())
		tmp.Elem().Set(v)
		if enc, ok := tmp.Interface().(apiEncoder); ok {
			return enc.encodeAPI()
		}
		return encodeStructMap(tmp.Elem())
	case reflect.String:
		return v.String(), nil
	case reflect.Bool:
		return v.Bool(), nil
	case reflect.Float64:
		return v.Float(), nil
	case reflect.Int64:
		// All numbers are canonically float64, matching encoding/json.
		return float64(v.Int()), nil
	case reflect.Slice:
		out := make([]any, v.Len())
		for i := 0; i < v.Len(); i++ {
			item, err := encodeValue(v.Index(i))
			if err != nil {
				return nil, err
			}
			out[i] = item
		}
		return out, nil
	case reflect.Map:
		out := make(map[string]any, v.Len())
		iter := v.MapRange()
		for iter.Next() {
			item, err := encodeValue(iter.Value())
			if err != nil {
				return nil, err
			}
			out[iter.Key().String()] = item
		}
		return out, nil
	case reflect.Interface:
		if v.IsNil() {
			return nil, nil
		}
		return v.Interface(), nil
	}
	return nil, fmt.Errorf("%w: cannot encode %s", ErrSchemaMismatch, v.Type())
}

func mismatch(path, want string, raw any) error {
	if path == "" {
		return fmt.Errorf("%w: want %s, got %s", ErrSchemaMismatch, want, jsonTypeName(raw))
	}
	return fmt.Errorf("%w: %s: want %s, got %s", ErrSchemaMismatch, path, want, jsonTypeName(raw))
}

func wrapPath(path string, err error) error {
	if err == nil || path == "" {
		return err
	}
	return fmt.Errorf("%s: %w", path, err)
}

func jsonTypeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case float64:
		return "number"
	case string:
		return "string"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	}
	return fmt.Sprintf("%T", v)
}
