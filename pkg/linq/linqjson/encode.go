package linqjson

import (
	"bytes"
	"io"
	"strconv"
	"strings"

	jsoniter "github.com/json-iterator/go"

	"go.llib.dev/linqkit/pkg/linq"
)

// Encode writes v as JSON.
// Objects keep their key order, and groupings are written as {"key": ..., "items": [...]}.
func Encode(w io.Writer, v any) error {
	stream := jsoniter.NewStream(config, w, 4096)
	writeValue(stream, v)
	if stream.Error != nil {
		return stream.Error
	}
	return stream.Flush()
}

func Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeValue(stream *jsoniter.Stream, v any) {
	switch v := v.(type) {
	case Object:
		stream.WriteObjectStart()
		var more bool
		for key, val := range v.All() {
			if more {
				stream.WriteMore()
			}
			more = true
			stream.WriteObjectField(key)
			writeValue(stream, val)
		}
		stream.WriteObjectEnd()
	case []any:
		stream.WriteArrayStart()
		for i, e := range v {
			if 0 < i {
				stream.WriteMore()
			}
			writeValue(stream, e)
		}
		stream.WriteArrayEnd()
	case linq.Grouping[any, any]:
		obj := NewObject()
		obj.Set("key", v.Key())
		obj.Set("items", v.Items())
		writeValue(stream, obj)
	case linq.KeyValue[string, any]:
		obj := NewObject()
		obj.Set("key", v.Key)
		obj.Set("value", v.Value)
		writeValue(stream, obj)
	default:
		stream.WriteVal(v)
	}
}

// Get walks a dot separated path of object keys and array indexes.
// An empty path returns v itself.
//
//	linqjson.Get(doc, "address.city")
//	linqjson.Get(doc, "tags.0")
func Get(v any, path string) (any, bool) {
	if path == "" {
		return v, true
	}
	for _, name := range strings.Split(path, ".") {
		switch c := v.(type) {
		case Object:
			next, ok := c.Lookup(name)
			if !ok {
				return nil, false
			}
			v = next
		case []any:
			index, err := strconv.Atoi(name)
			if err != nil || index < 0 || len(c) <= index {
				return nil, false
			}
			v = c[index]
		default:
			return nil, false
		}
	}
	return v, true
}
