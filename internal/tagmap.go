package internal

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"
)

// ValueKind identifies the shape of a tag value as reported by the tag reader.
type ValueKind int

const (
	KindScalar ValueKind = iota
	KindList
	KindUnsupported
)

func (k ValueKind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindList:
		return "list"
	default:
		return "unsupported"
	}
}

// TagValue is a single tag value. Readers produce one of three shapes: a plain
// string, an ordered list of strings, or a library specific value that is only
// usable through its string form.
type TagValue struct {
	kind   ValueKind
	scalar string
	list   []string
	raw    any
}

// Scalar wraps a plain string tag value.
func Scalar(s string) TagValue {
	return TagValue{kind: KindScalar, scalar: s}
}

// List wraps a multi-valued tag.
func List(values ...string) TagValue {
	return TagValue{kind: KindList, list: values}
}

// Unsupported wraps any other value returned by a tag reader.
func Unsupported(v any) TagValue {
	return TagValue{kind: KindUnsupported, raw: v}
}

func (v TagValue) Kind() ValueKind { return v.kind }

// String converts the value to the text used for path building. Lists yield
// their first element.
func (v TagValue) String() string {
	switch v.kind {
	case KindScalar:
		return v.scalar
	case KindList:
		if len(v.list) == 0 {
			return ""
		}
		return v.list[0]
	default:
		if v.raw == nil {
			return ""
		}
		if s, ok := v.raw.(fmt.Stringer); ok {
			return s.String()
		}
		return fmt.Sprint(v.raw)
	}
}

// MarshalJSON renders lists as arrays and everything else as a string.
func (v TagValue) MarshalJSON() ([]byte, error) {
	if v.kind == KindList {
		list := v.list
		if list == nil {
			list = []string{}
		}
		return json.Marshal(list)
	}
	return json.Marshal(v.String())
}

// TagMap holds the raw tags of one file keyed by lower-cased tag name.
type TagMap map[string]TagValue

// Keys returns the tag names in lexical order.
func (m TagMap) Keys() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// newTagMap builds a TagMap from a raw reader map. Keys are normalized with
// tagKey; when two raw keys collapse into the same name the lexically first
// one is kept.
func newTagMap(raw map[string]any) TagMap {
	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	tags := make(TagMap, len(raw))
	for _, k := range keys {
		lk := tagKey(k)
		if _, ok := tags[lk]; ok {
			continue
		}
		tags[lk] = tagValueOf(raw[k])
	}
	return tags
}

// tagKey lower-cases a raw tag name. MP4 atom names are raw bytes, so
// "\xa9ART" arrives as Latin-1 and is decoded to "©art" instead of being
// mangled into U+FFFD.
func tagKey(raw string) string {
	if !utf8.ValidString(raw) {
		runes := make([]rune, 0, len(raw))
		for i := 0; i < len(raw); i++ {
			runes = append(runes, rune(raw[i]))
		}
		raw = string(runes)
	}
	return strings.ToLower(raw)
}

func tagValueOf(v any) TagValue {
	switch t := v.(type) {
	case string:
		return Scalar(t)
	case []string:
		return List(t...)
	default:
		return Unsupported(v)
	}
}
