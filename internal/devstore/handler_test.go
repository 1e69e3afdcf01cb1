package devstore

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"testing"

	"github.com/AdamBeresnev/game-hub/internal/content"
	"github.com/AdamBeresnev/game-hub/internal/cosmic"
	"github.com/AdamBeresnev/game-hub/internal/db"
	"github.com/AdamBeresnev/game-hub/internal/httputil"
	"github.com/AdamBeresnev/game-hub/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testBucket  = "game-hub"
	testReadKey = "secret"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	database, err := db.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	require.NoError(t, db.RunMigrations(database.DB))

	f, err := os.Open("../../fixtures/content.yaml")
	require.NoError(t, err)
	defer f.Close()
	fixtures, err := store.LoadFixtures(f)
	require.NoError(t, err)

	objects := store.NewObjectStore(database)
	_, err = objects.Seed(context.Background(), fixtures)
	require.NoError(t, err)

	srv := httptest.NewServer(NewHandler(objects, testBucket, testReadKey).Routes())
	t.Cleanup(srv.Close)
	return srv
}

func get(t *testing.T, rawURL string) (int, httputil.APIError) {
	t.Helper()
	resp, err := http.Get(rawURL)
	require.NoError(t, err)
	defer resp.Body.Close()

	var body httputil.APIError
	_ = json.NewDecoder(resp.Body).Decode(&body)
	return resp.StatusCode, body
}

func objectsURL(srv *httptest.Server, bucket string, params url.Values) string {
	return srv.URL + "/v3/buckets/" + bucket + "/objects?" + params.Encode()
}

func TestRejectsWrongReadKey(t *testing.T) {
	srv := newTestServer(t)

	status, body := get(t, objectsURL(srv, testBucket, url.Values{
		"query":    {`{"type":"categories"}`},
		"read_key": {"nope"},
	}))
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Unauthorized", body.Message)
}

func TestUnknownBucket(t *testing.T) {
	srv := newTestServer(t)

	status, _ := get(t, objectsURL(srv, "other", url.Values{
		"query":    {`{"type":"categories"}`},
		"read_key": {testReadKey},
	}))
	assert.Equal(t, http.StatusNotFound, status)
}

func TestBadRequests(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name   string
		params url.Values
	}{
		{"missing query", url.Values{}},
		{"query not json", url.Values{"query": {"type=categories"}}},
		{"query without type", url.Values{"query": {`{"slug":"creative"}`}}},
		{"negative depth", url.Values{"query": {`{"type":"categories"}`}, "depth": {"-1"}}},
		{"limit not a number", url.Values{"query": {`{"type":"categories"}`}, "limit": {"ten"}}},
		{"negative skip", url.Values{"query": {`{"type":"categories"}`}, "skip": {"-2"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.params.Set("read_key", testReadKey)
			status, body := get(t, objectsURL(srv, testBucket, tt.params))
			assert.Equal(t, http.StatusBadRequest, status)
			assert.NotEmpty(t, body.Message)
		})
	}
}

func TestNoMatchesIsNotFound(t *testing.T) {
	srv := newTestServer(t)

	status, body := get(t, objectsURL(srv, testBucket, url.Values{
		"query":    {`{"type":"game-posts","slug":"missing"}`},
		"read_key": {testReadKey},
	}))
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, httputil.APIError{Status: http.StatusNotFound, Message: "No objects found"}, body)
}

func TestClientAgainstDevStore(t *testing.T) {
	srv := newTestServer(t)
	client := cosmic.NewClient(srv.URL+"/v3", testBucket, testReadKey)
	ctx := context.Background()

	resp, err := client.Find(ctx, cosmic.Query{Type: "categories", Props: []string{"slug"}, Limit: 2, Skip: 1})
	require.NoError(t, err)
	assert.Equal(t, 4, resp.Total)
	require.Len(t, resp.Objects, 2)
	assert.JSONEq(t, `{"slug":"creative"}`, string(resp.Objects[0]))

	_, err = client.FindOne(ctx, cosmic.Query{Type: "tournaments"}.Where("slug", "missing"))
	assert.True(t, cosmic.IsNotFound(err))
}

func TestAccessorAgainstDevStore(t *testing.T) {
	srv := newTestServer(t)
	accessor := content.NewAccessor(cosmic.NewClient(srv.URL+"/v3", testBucket, testReadKey))
	ctx := context.Background()

	posts, err := accessor.ListPosts(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 7)
	assert.Equal(t, "fncs-major-one-recap", posts[0].Slug)
	assert.Equal(t, "editing-drills", posts[6].Slug)
	for _, p := range posts {
		require.NotNil(t, p.Metadata.Category, p.Slug)
		assert.NotEmpty(t, p.Metadata.Category.Metadata.Name, p.Slug)
	}

	featured, err := accessor.ListFeaturedPosts(ctx)
	require.NoError(t, err)
	require.Len(t, featured, 2)
	assert.Equal(t, "fncs-major-one-recap", featured[0].Slug)
	assert.Equal(t, "chapter-six-season-one-overview", featured[1].Slug)

	post, err := accessor.GetPost(ctx, "zone-wars-island-review")
	require.NoError(t, err)
	require.NotNil(t, post)
	assert.Equal(t, "creative", post.Metadata.Category.Slug)
	assert.Equal(t, content.PostReview, post.Metadata.PostType.Key)

	missing, err := accessor.GetPost(ctx, "no-such-post")
	require.NoError(t, err)
	assert.Nil(t, missing)

	tournaments, err := accessor.ListTournaments(ctx)
	require.NoError(t, err)
	require.Len(t, tournaments, 6)
	assert.Equal(t, "winter-royale", tournaments[0].Slug)
	assert.Equal(t, "summer-skirmish-qualifier", tournaments[5].Slug)

	categories, err := accessor.ListCategories(ctx)
	require.NoError(t, err)
	require.Len(t, categories, 4)
	assert.Equal(t, content.DefaultCategoryColor, categories[3].DisplayColor())

	competitive, err := accessor.ListPostsByCategory(ctx, categories[2].ID)
	require.NoError(t, err)
	require.Len(t, competitive, 2)
	assert.Equal(t, "fncs-major-one-recap", competitive[0].Slug)
	assert.Equal(t, "editing-drills", competitive[1].Slug)

	guides, err := accessor.ListPostsByType(ctx, content.PostGuide)
	require.NoError(t, err)
	require.Len(t, guides, 3)
	assert.Equal(t, "best-landing-spots", guides[0].Slug)

	none, err := accessor.ListPostsByCategory(ctx, "no-such-category")
	require.NoError(t, err)
	assert.Empty(t, none)
}
