// internal/domain/models/attrs.go
package models

import (
	"encoding/json"
	"reflect"
	"strings"
	"sync"
)

// ID identifies a backend record. The backend hands out both numeric and
// string ids, so either JSON form is accepted; the value is kept as text.
type ID string

// UnmarshalJSON accepts "abc", 42 and null.
func (id *ID) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	switch {
	case s == "null":
		*id = ""
		return nil
	case strings.HasPrefix(s, `"`):
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*id = ID(v)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*id = ID(n.String())
	return nil
}

// String returns the id as text.
func (id ID) String() string { return string(id) }

// Attrs holds the fields of a backend record that have no typed slot on the
// Go struct. They survive a decode/encode round trip unchanged.
type Attrs map[string]json.RawMessage

// Clone returns a copy that shares no map with a.
func (a Attrs) Clone() Attrs {
	if a == nil {
		return nil
	}
	out := make(Attrs, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}

// Get decodes one extra attribute into dst. It reports false when the key is
// absent or does not decode.
func (a Attrs) Get(key string, dst any) bool {
	raw, ok := a[key]
	if !ok {
		return false
	}
	return json.Unmarshal(raw, dst) == nil
}

// Merge shallow-merges patch into rec: every top-level key in patch replaces
// the same key of rec, everything else is kept. rec is not modified.
func Merge[T any](rec T, patch Attrs) (T, error) {
	var out T
	b, err := json.Marshal(rec)
	if err != nil {
		return out, err
	}
	fields := map[string]json.RawMessage{}
	if err := json.Unmarshal(b, &fields); err != nil {
		return out, err
	}
	for k, v := range patch {
		fields[k] = v
	}
	b, err = json.Marshal(fields)
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal(b, &out); err != nil {
		return out, err
	}
	return out, nil
}

// decodeOpen unmarshals data into known (a pointer to a method-less struct)
// and returns the keys no struct field claimed.
func decodeOpen(data []byte, known any) (Attrs, error) {
	if err := json.Unmarshal(data, known); err != nil {
		return nil, err
	}
	var all map[string]json.RawMessage
	if err := json.Unmarshal(data, &all); err != nil {
		return nil, err
	}
	for _, k := range jsonKeys(reflect.TypeOf(known).Elem()) {
		delete(all, k)
	}
	if len(all) == 0 {
		return nil, nil
	}
	return Attrs(all), nil
}

// encodeOpen marshals known and folds extra in. Typed fields win over an
// extra attribute with the same key.
func encodeOpen(known any, extra Attrs) ([]byte, error) {
	b, err := json.Marshal(known)
	if err != nil || len(extra) == 0 {
		return b, err
	}
	var all map[string]json.RawMessage
	if err := json.Unmarshal(b, &all); err != nil {
		return nil, err
	}
	for k, v := range extra {
		if _, taken := all[k]; !taken {
			all[k] = v
		}
	}
	return json.Marshal(all)
}

var keyCache sync.Map // reflect.Type -> []string

func jsonKeys(t reflect.Type) []string {
	if v, ok := keyCache.Load(t); ok {
		return v.([]string)
	}
	var keys []string
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		tag := f.Tag.Get("json")
		if tag == "-" {
			continue
		}
		name, _, _ := strings.Cut(tag, ",")
		if name == "" {
			name = f.Name
		}
		keys = append(keys, name)
	}
	keyCache.Store(t, keys)
	return keys
}
