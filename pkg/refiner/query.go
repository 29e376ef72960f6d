package refiner

import (
	"net/url"
	"reflect"
	"sort"
	"strings"
)

// Query holds the parameters that survived resolution: searches in definition
// order, sorts in resolution order.
type Query struct {
	Keys   Keys          `json:"-"`
	Search []SearchParam `json:"search,omitempty"`
	Sort   []SortParam   `json:"sort,omitempty"`
}

func (q Query) IsEmpty() bool {
	return len(q.Search) == 0 && len(q.Sort) == 0
}

// Map returns {searchKey: {name: value}, sortKey: {name: direction}},
// leaving out empty parts.
func (q Query) Map() map[string]any {
	out := make(map[string]any, 2)
	if len(q.Search) > 0 {
		search := make(map[string]any, len(q.Search))
		for _, s := range q.Search {
			search[s.Name] = s.Value
		}
		out[q.Keys.Search] = search
	}
	if len(q.Sort) > 0 {
		sorts := make(map[string]string, len(q.Sort))
		for _, s := range q.Sort {
			sorts[s.Name] = s.Direction
		}
		out[q.Keys.Sort] = sorts
	}
	return out
}

// Input converts the query back into request input.
func (q Query) Input() Input {
	in := Input{Search: make(map[string]any, len(q.Search))}
	for _, s := range q.Search {
		in.Search[s.Name] = s.Value
	}
	in.Sort = append(in.Sort, q.Sort...)
	return in
}

// Encode renders the query string in bracket notation, keeping order.
// Nil search values are left out.
func (q Query) Encode() string {
	var parts []string
	for _, s := range q.Search {
		parts = encodeValue(parts, q.Keys.Search+"["+s.Name+"]", s.Value)
	}
	for _, s := range q.Sort {
		parts = append(parts, url.QueryEscape(q.Keys.Sort+"["+s.Name+"]")+"="+url.QueryEscape(s.Direction))
	}
	return strings.Join(parts, "&")
}

func encodeValue(parts []string, key string, value any) []string {
	switch v := value.(type) {
	case nil:
		return parts
	case map[string]any:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			parts = encodeValue(parts, key+"["+k+"]", v[k])
		}
		return parts
	}

	if kind := reflect.ValueOf(value).Kind(); kind == reflect.Slice || kind == reflect.Array {
		for _, item := range toValues(value) {
			parts = encodeValue(parts, key+"[]", item)
		}
		return parts
	}
	return append(parts, url.QueryEscape(key)+"="+url.QueryEscape(stringify(value)))
}
