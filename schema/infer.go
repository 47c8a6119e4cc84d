package schema

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"slices"
)

// OrderedObject is a decoded JSON object that remembers its key order.
// Duplicate keys keep their first position and their last value.
type OrderedObject struct {
	Keys   []string
	Values map[string]any
}

// Get returns the value stored under key.
func (o *OrderedObject) Get(key string) (any, bool) {
	v, ok := o.Values[key]
	return v, ok
}

// MarshalJSON writes the object back out in its original key order.
func (o *OrderedObject) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range o.Keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(o.Values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// DecodeOrdered decodes a single JSON document. Objects become
// *OrderedObject, arrays []any, numbers json.Number.
func DecodeOrdered(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	v, err := decodeValue(dec)
	if err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("unexpected data after top-level value")
	}
	return v, nil
}

func decodeValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			obj := &OrderedObject{Values: make(map[string]any)}
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return nil, fmt.Errorf("object key is %T, not string", keyTok)
				}
				val, err := decodeValue(dec)
				if err != nil {
					return nil, err
				}
				if _, seen := obj.Values[key]; !seen {
					obj.Keys = append(obj.Keys, key)
				}
				obj.Values[key] = val
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return obj, nil
		case '[':
			arr := []any{}
			for dec.More() {
				val, err := decodeValue(dec)
				if err != nil {
					return nil, err
				}
				arr = append(arr, val)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return arr, nil
		default:
			return nil, fmt.Errorf("unexpected delimiter %q", t)
		}
	default:
		return tok, nil
	}
}

// InferJSON decodes raw JSON with key order preserved and infers its type.
func InferJSON(data []byte) (TypeDescriptor, error) {
	v, err := DecodeOrdered(data)
	if err != nil {
		return nil, err
	}
	return Infer(v), nil
}

// Infer maps a decoded JSON value to a type descriptor.
//
// null carries no evidence and infers as String. Arrays infer from their
// first non-null element; an empty array infers as [JSON]. Objects infer as
// inline ObjectDescriptors in key order. Plain map[string]any values are
// accepted too, with keys sorted since Go maps have no order.
func Infer(v any) TypeDescriptor {
	switch val := v.(type) {
	case nil:
		return String()
	case bool:
		return Boolean()
	case string:
		return String()
	case json.Number:
		if numberIsIntegral(val) {
			return Int()
		}
		return Float()
	case float64:
		if floatIsIntegral(val) {
			return Int()
		}
		return Float()
	case float32:
		if floatIsIntegral(float64(val)) {
			return Int()
		}
		return Float()
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return Int()
	case []any:
		if len(val) == 0 {
			return List(JSON())
		}
		return List(Infer(firstNonNull(val)))
	case *OrderedObject:
		return inferObject(val)
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		return inferObject(&OrderedObject{Keys: keys, Values: val})
	default:
		return String()
	}
}

func inferObject(obj *OrderedObject) *ObjectDescriptor {
	d := &ObjectDescriptor{Fields: make([]FieldDescriptor, 0, len(obj.Keys))}
	for _, k := range obj.Keys {
		d.Fields = append(d.Fields, FieldDescriptor{Name: k, Type: Infer(obj.Values[k])})
	}
	return d
}

// firstNonNull returns the first non-null element, or nil if every element
// is null.
func firstNonNull(arr []any) any {
	for _, v := range arr {
		if v != nil {
			return v
		}
	}
	return nil
}

func numberIsIntegral(n json.Number) bool {
	if _, err := n.Int64(); err == nil {
		return true
	}
	f, err := n.Float64()
	if err != nil {
		return false
	}
	return floatIsIntegral(f)
}

func floatIsIntegral(f float64) bool {
	return !math.IsInf(f, 0) && !math.IsNaN(f) && f == math.Trunc(f)
}
