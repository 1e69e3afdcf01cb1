package cosmic

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Depth is how many levels of object relations the bucket resolves inline.
type Depth uint8

const (
	DepthNone Depth = 0
	DepthOne  Depth = 1
)

// Query is one read against the bucket: an object type, dotted-path equality
// filters, a field projection and a relation expansion depth.
type Query struct {
	Type    string
	Filters map[string]any
	Props   []string
	Depth   Depth
	Limit   int
	Skip    int
}

// Where returns a copy of q with one more equality filter.
func (q Query) Where(path string, value any) Query {
	filters := make(map[string]any, len(q.Filters)+1)
	for k, v := range q.Filters {
		filters[k] = v
	}
	filters[path] = value
	q.Filters = filters
	return q
}

// Selector is the JSON document sent as the "query" parameter.
func (q Query) Selector() map[string]any {
	sel := make(map[string]any, len(q.Filters)+1)
	for k, v := range q.Filters {
		sel[k] = v
	}
	if q.Type != "" {
		sel["type"] = q.Type
	}
	return sel
}

func (q Query) values() (url.Values, error) {
	if q.Type == "" {
		return nil, fmt.Errorf("query has no object type")
	}
	sel, err := json.Marshal(q.Selector())
	if err != nil {
		return nil, fmt.Errorf("failed to encode query: %w", err)
	}

	v := url.Values{}
	v.Set("query", string(sel))
	if len(q.Props) > 0 {
		v.Set("props", strings.Join(q.Props, ","))
	}
	v.Set("depth", strconv.Itoa(int(q.Depth)))
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.Skip > 0 {
		v.Set("skip", strconv.Itoa(q.Skip))
	}
	return v, nil
}

// ObjectsResponse is the collection envelope returned by the objects endpoint.
type ObjectsResponse struct {
	Objects []json.RawMessage `json:"objects"`
	Total   int               `json:"total"`
	Limit   int               `json:"limit,omitempty"`
	Skip    int               `json:"skip,omitempty"`
}

// ObjectResponse wraps a single object.
type ObjectResponse struct {
	Object json.RawMessage `json:"object"`
}
