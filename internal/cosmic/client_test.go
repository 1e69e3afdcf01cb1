package cosmic

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, status int, body string, seen *url.URL) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if seen != nil {
			*seen = *r.URL
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestFindEncodesQuery(t *testing.T) {
	var seen url.URL
	srv := newTestServer(t, http.StatusOK, `{"objects":[{"id":"1"},{"id":"2"}],"total":2}`, &seen)

	client := NewClient(srv.URL, "game-hub", "secret")
	q := Query{
		Type:  "game-posts",
		Props: []string{"id", "title", "slug"},
		Depth: DepthOne,
	}.Where("metadata.featured", true)

	resp, err := client.Find(context.Background(), q)
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Total)
	assert.Len(t, resp.Objects, 2)

	assert.Equal(t, "/buckets/game-hub/objects", seen.Path)
	params := seen.Query()
	assert.Equal(t, "id,title,slug", params.Get("props"))
	assert.Equal(t, "1", params.Get("depth"))
	assert.Equal(t, "secret", params.Get("read_key"))

	var sel map[string]any
	require.NoError(t, json.Unmarshal([]byte(params.Get("query")), &sel))
	assert.Equal(t, map[string]any{"type": "game-posts", "metadata.featured": true}, sel)
}

func TestWhereDoesNotMutateReceiver(t *testing.T) {
	base := Query{Type: "game-posts"}
	a := base.Where("slug", "a")
	b := a.Where("metadata.featured", true)

	assert.Nil(t, base.Filters)
	assert.Equal(t, map[string]any{"slug": "a"}, a.Filters)
	assert.Equal(t, map[string]any{"slug": "a", "metadata.featured": true}, b.Filters)
}

func TestFindRequiresType(t *testing.T) {
	client := NewClient("http://127.0.0.1:0", "bucket", "")
	_, err := client.Find(context.Background(), Query{})
	require.Error(t, err)
	assert.False(t, IsNotFound(err))
}

func TestFindNotFound(t *testing.T) {
	srv := newTestServer(t, http.StatusNotFound, `{"status":404,"message":"No objects found"}`, nil)
	client := NewClient(srv.URL, "bucket", "")

	_, err := client.Find(context.Background(), Query{Type: "tournaments"})
	require.Error(t, err)
	assert.True(t, IsNotFound(err))

	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, "No objects found", se.Message)
}

func TestFindServerError(t *testing.T) {
	srv := newTestServer(t, http.StatusInternalServerError, `upstream exploded`, nil)
	client := NewClient(srv.URL, "bucket", "")

	_, err := client.Find(context.Background(), Query{Type: "tournaments"})
	require.Error(t, err)
	assert.False(t, IsNotFound(err))
	assert.Contains(t, err.Error(), "status 500")
	assert.Contains(t, err.Error(), "upstream exploded")
}

func TestFindMalformedBody(t *testing.T) {
	srv := newTestServer(t, http.StatusOK, `{not json`, nil)
	client := NewClient(srv.URL, "bucket", "")

	_, err := client.Find(context.Background(), Query{Type: "categories"})
	require.Error(t, err)
	assert.False(t, IsNotFound(err))
	assert.Contains(t, err.Error(), "unmarshal")
}

func TestFindOne(t *testing.T) {
	var seen url.URL
	srv := newTestServer(t, http.StatusOK, `{"objects":[{"id":"42","slug":"hello"}],"total":1}`, &seen)
	client := NewClient(srv.URL, "bucket", "")

	resp, err := client.FindOne(context.Background(), Query{Type: "game-posts"}.Where("slug", "hello"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"42","slug":"hello"}`, string(resp.Object))
	assert.Equal(t, "1", seen.Query().Get("limit"))
}

func TestFindOneEmptyIsNotFound(t *testing.T) {
	srv := newTestServer(t, http.StatusOK, `{"objects":[],"total":0}`, nil)
	client := NewClient(srv.URL, "bucket", "")

	_, err := client.FindOne(context.Background(), Query{Type: "game-posts"})
	assert.True(t, IsNotFound(err))
}

func TestIsNotFoundWrapped(t *testing.T) {
	err := errors.Join(errors.New("outer"), &StatusError{Status: http.StatusNotFound})
	assert.True(t, IsNotFound(err))
	assert.False(t, IsNotFound(&StatusError{Status: http.StatusUnauthorized}))
	assert.False(t, IsNotFound(nil))
}

func TestWithTimeoutLeavesSharedClientAlone(t *testing.T) {
	shared := &http.Client{}
	c := NewClient("", "game-hub", "", WithHTTPClient(shared), WithTimeout(3*time.Second))

	assert.Zero(t, shared.Timeout)
	assert.NotSame(t, shared, c.client)
	assert.Equal(t, 3*time.Second, c.client.Timeout)

	NewClient("", "game-hub", "", WithHTTPClient(http.DefaultClient), WithTimeout(time.Second))
	assert.Zero(t, http.DefaultClient.Timeout)
}

func TestNilHTTPClientKeepsDefault(t *testing.T) {
	var c *Client
	require.NotPanics(t, func() {
		c = NewClient("", "game-hub", "", WithHTTPClient(nil), WithTimeout(2*time.Second))
	})
	require.NotNil(t, c.client)
	assert.Equal(t, 2*time.Second, c.client.Timeout)

	assert.Equal(t, DefaultTimeout, NewClient("", "game-hub", "", WithHTTPClient(nil)).client.Timeout)
}
