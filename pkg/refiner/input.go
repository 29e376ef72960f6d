package refiner

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"
)

const maxFormBody = 1 << 20

// Keys names the request parameters holding search filters and sort directives,
// e.g. /products?search[name]=desk&sort[price]=desc.
type Keys struct {
	Search string
	Sort   string
}

// DefaultKeys returns the "search" and "sort" parameter names.
func DefaultKeys() Keys {
	return Keys{Search: "search", Sort: "sort"}
}

// Validate checks that both parameter names are set.
func (k Keys) Validate() error {
	if k.Search == "" || k.Sort == "" {
		return invalidConfiguration("search and sort parameter keys must not be empty")
	}
	return nil
}

// SortParam is one raw sort directive. The direction may be empty in default
// sorts, meaning ascending.
type SortParam struct {
	Name      string `json:"name"`
	Direction string `json:"direction"`
}

// SearchParam is one resolved search value.
type SearchParam struct {
	Name  string `json:"name"`
	Value any    `json:"value"`
}

// Input is the raw refinement input of one request.
// Search maps field names to scalars, lists or nested maps; Sort keeps the
// order in which the client listed the directives.
type Input struct {
	Search map[string]any
	Sort   []SortParam
}

// SetSort records a directive, replacing the direction of an existing one in place.
func (in *Input) SetSort(name, direction string) {
	for i := range in.Sort {
		if in.Sort[i].Name == name {
			in.Sort[i].Direction = direction
			return
		}
	}
	in.Sort = append(in.Sort, SortParam{Name: name, Direction: direction})
}

func (in *Input) merge(other Input) {
	if in.Search == nil {
		in.Search = make(map[string]any, len(other.Search))
	}
	for k, v := range other.Search {
		in.Search[k] = v
	}
	for _, s := range other.Sort {
		in.SetSort(s.Name, s.Direction)
	}
}

// ParseQuery reads the search and sort parameters from a raw query string in
// bracket notation:
//
//	search[name]=desk            scalar
//	search[ids][]=1&search[ids][]=2  list (numeric indexes also build a list)
//	search[price][min]=10        nested map
//	sort[name]=asc&sort[price]=desc
//
// Pairs under other keys are skipped without being decoded. Invalid escape
// sequences are kept as they are.
func ParseQuery(raw string, keys Keys) Input {
	in := Input{Search: map[string]any{}}
	for _, pair := range strings.Split(raw, "&") {
		if pair == "" {
			continue
		}
		k, v, _ := strings.Cut(pair, "=")

		base, segments := splitKey(unescape(k))
		switch {
		case base == keys.Search && len(segments) > 0:
			setPath(in.Search, segments, unescape(v))
		case base == keys.Sort && len(segments) == 1:
			in.SetSort(segments[0], unescape(v))
		}
	}
	return in
}

func unescape(s string) string {
	if out, err := url.QueryUnescape(s); err == nil {
		return out
	}
	return strings.ReplaceAll(s, "+", " ")
}

// FromRequest extracts the refinement input from the URL query and, for form
// or JSON requests, from the body. Body values take precedence.
func FromRequest(r *http.Request, keys Keys) (Input, error) {
	in := ParseQuery(r.URL.RawQuery, keys)
	if r.Body == nil || r.Body == http.NoBody {
		return in, nil
	}

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "application/json":
		body, err := FromJSON(r.Body, keys)
		if err != nil {
			return Input{}, err
		}
		in.merge(body)
	case "application/x-www-form-urlencoded":
		raw, err := io.ReadAll(io.LimitReader(r.Body, maxFormBody))
		if err != nil {
			return Input{}, fmt.Errorf("read form body: %w", err)
		}
		in.merge(ParseQuery(string(raw), keys))
	}
	return in, nil
}

// FromJSON reads {"search": {...}, "sort": {"name": "asc", ...}} keeping the
// order of the sort object. Values of other types under either key are ignored.
func FromJSON(r io.Reader, keys Keys) (Input, error) {
	var doc map[string]json.RawMessage
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return Input{}, fmt.Errorf("decode json input: %w", err)
	}

	in := Input{Search: map[string]any{}}
	if raw, ok := doc[keys.Search]; ok {
		var search any
		if err := json.Unmarshal(raw, &search); err != nil {
			return Input{}, fmt.Errorf("decode %s: %w", keys.Search, err)
		}
		if m, ok := search.(map[string]any); ok {
			in.Search = m
		}
	}
	if raw, ok := doc[keys.Sort]; ok {
		if err := decodeSortObject(raw, &in); err != nil {
			return Input{}, fmt.Errorf("decode %s: %w", keys.Sort, err)
		}
	}
	return in, nil
}

func decodeSortObject(raw json.RawMessage, in *Input) error {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '{' {
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	if _, err := dec.Token(); err != nil {
		return err
	}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		name, _ := tok.(string)

		var direction any
		if err := dec.Decode(&direction); err != nil {
			return err
		}
		if s, ok := direction.(string); ok {
			in.SetSort(name, s)
		}
	}
	return nil
}

// splitKey splits "search[a][]" into "search" and ["a", ""].
func splitKey(key string) (string, []string) {
	open := strings.IndexByte(key, '[')
	if open <= 0 {
		return key, nil
	}

	base, rest := key[:open], key[open:]
	var segments []string
	for strings.HasPrefix(rest, "[") {
		end := strings.IndexByte(rest, ']')
		if end < 0 {
			break
		}
		segments = append(segments, rest[1:end])
		rest = rest[end+1:]
	}
	return base, segments
}

func setPath(m map[string]any, segments []string, value string) {
	head := segments[0]
	if len(segments) == 1 {
		m[head] = value
		return
	}

	next := segments[1:]
	if len(next) == 1 && isListSegment(next[0]) {
		list, _ := m[head].([]any)
		m[head] = append(list, value)
		return
	}

	child, ok := m[head].(map[string]any)
	if !ok {
		child = map[string]any{}
		m[head] = child
	}
	setPath(child, next, value)
}

func isListSegment(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
