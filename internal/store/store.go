package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"sort"
	"strconv"
	"unicode/utf8"
)

// UsernameField is the record key naming the owning account.
const UsernameField = "username"

// TitleField is the record key holding the display title.
const TitleField = "title"

// Record is a single task object. Unknown fields are preserved.
type Record map[string]any

// Has reports whether the record carries key, whatever its value.
func (r Record) Has(key string) bool {
	_, ok := r[key]
	return ok
}

// SetDefault sets key to value only when key is absent.
// It returns true if the record was modified.
func (r Record) SetDefault(key string, value any) bool {
	if r.Has(key) {
		return false
	}
	r[key] = value
	return true
}

// Title returns the record title, or fallback when the title key is absent.
func (r Record) Title(fallback string) string {
	v, ok := r[TitleField]
	if !ok {
		return fallback
	}
	switch t := v.(type) {
	case string:
		return t
	case nil:
		return "null"
	default:
		return fmt.Sprintf("%v", t)
	}
}

// Collection maps task IDs to task records.
type Collection map[string]Record

// IDs returns the collection keys in numeric-aware order.
func (c Collection) IDs() []string {
	ids := make([]string, 0, len(c))
	for id := range c {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		return CompareIDs(ids[i], ids[j])
	})
	return ids
}

// idSortKey extracts the numeric value from a task ID for sorting.
// For IDs like "T001", "2", "T10", it returns 1, 2, 10 respectively.
// If the ID doesn't end in a number, it returns -1.
func idSortKey(id string) int {
	i := 0
	for i < len(id) && (id[i] < '0' || id[i] > '9') {
		i++
	}
	if i == len(id) {
		return -1
	}
	num, err := strconv.Atoi(id[i:])
	if err != nil {
		return -1
	}
	return num
}

// CompareIDs returns true if id1 should come before id2 in numeric-aware ordering.
// If both IDs have numeric parts, compares numerically. Otherwise falls back to
// lexicographic comparison.
func CompareIDs(id1, id2 string) bool {
	k1 := idSortKey(id1)
	k2 := idSortKey(id2)
	if k1 >= 0 && k2 >= 0 && k1 != k2 {
		return k1 < k2
	}
	return id1 < id2
}

// Exists reports whether path exists. A missing file is not an error.
func Exists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, fmt.Errorf("stat %s: %w", path, err)
}

// LoadCollection reads and parses a task collection from path.
func LoadCollection(path string) (Collection, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read task file: %w", err)
	}
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("parse task file %s: invalid UTF-8", path)
	}

	doc, err := decode(data)
	if err != nil {
		return nil, fmt.Errorf("parse task file %s: %w", path, err)
	}

	if err := validateShape(path, doc); err != nil {
		return nil, err
	}

	return toCollection(path, doc)
}

// Save writes the collection to path, replacing any prior contents.
func (c Collection) Save(path string) error {
	if c == nil {
		c = Collection{}
	}
	if err := writeJSON(path, c); err != nil {
		return fmt.Errorf("write task file: %w", err)
	}
	return nil
}

func decode(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var doc any
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("empty document")
		}
		return nil, err
	}

	var extra any
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		if err != nil {
			return nil, err
		}
		return nil, errors.New("unexpected data after top-level value")
	}

	return doc, nil
}

func toCollection(path string, doc any) (Collection, error) {
	obj, ok := doc.(map[string]any)
	if !ok {
		return nil, &ShapeError{Path: path, Err: fmt.Errorf("expected object, got %s", jsonKind(doc))}
	}

	c := make(Collection, len(obj))
	for id, v := range obj {
		rec, ok := v.(map[string]any)
		if !ok {
			return nil, &ShapeError{Path: path, Location: id, Err: fmt.Errorf("expected object, got %s", jsonKind(v))}
		}
		c[id] = Record(rec)
	}
	return c, nil
}

func jsonKind(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case map[string]any:
		return "object"
	case []any:
		return "array"
	case string:
		return "string"
	case bool:
		return "boolean"
	case json.Number, float64:
		return "number"
	default:
		return fmt.Sprintf("%T", v)
	}
}

// writeJSON writes v as indented UTF-8 JSON with a trailing newline.
func writeJSON(path string, v any) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("marshal %s: %w", path, err)
	}

	if err := os.WriteFile(path, unescapeSeparators(buf.Bytes()), 0644); err != nil {
		return err
	}
	return nil
}

// unescapeSeparators turns the \u2028 and \u2029 escapes emitted by
// encoding/json back into raw characters. Other escapes are copied as-is,
// so an escaped backslash followed by "u2028" is left alone.
func unescapeSeparators(b []byte) []byte {
	if !bytes.Contains(b, []byte(`\u202`)) {
		return b
	}
	out := make([]byte, 0, len(b))
	for i := 0; i < len(b); i++ {
		if b[i] != '\\' {
			out = append(out, b[i])
			continue
		}
		if i+5 < len(b) && string(b[i+1:i+5]) == "u202" && (b[i+5] == '8' || b[i+5] == '9') {
			if b[i+5] == '8' {
				out = append(out, "\u2028"...)
			} else {
				out = append(out, "\u2029"...)
			}
			i += 5
			continue
		}
		out = append(out, b[i])
		if i+1 < len(b) {
			i++
			out = append(out, b[i])
		}
	}
	return out
}
