package content

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"testing"

	"github.com/AdamBeresnev/game-hub/internal/cosmic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captureLogs routes the default logger into a buffer for the rest of the test.
func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })
	return &buf
}

func logRecords(t *testing.T, buf *bytes.Buffer, msg string) []map[string]any {
	t.Helper()
	var out []map[string]any
	sc := bufio.NewScanner(bytes.NewReader(buf.Bytes()))
	for sc.Scan() {
		var rec map[string]any
		require.NoError(t, json.Unmarshal(sc.Bytes(), &rec))
		if rec["msg"] == msg {
			out = append(out, rec)
		}
	}
	require.NoError(t, sc.Err())
	return out
}

func TestRetrievalFailureIsLogged(t *testing.T) {
	buf := captureLogs(t)
	store := &fakeStore{err: &cosmic.StatusError{Status: http.StatusInternalServerError, Message: "boom"}}

	_, err := NewAccessor(store).GetPost(context.Background(), "any")
	require.Error(t, err)

	recs := logRecords(t, buf, "content retrieval failed")
	require.Len(t, recs, 1)
	assert.Equal(t, "ERROR", recs[0]["level"])
	assert.Equal(t, "get post by slug", recs[0]["operation"])
	assert.Equal(t, "cosmic: status 500: boom", recs[0]["error"])
}

func TestNotFoundIsNotLogged(t *testing.T) {
	buf := captureLogs(t)

	p, err := NewAccessor(&fakeStore{}).GetPost(context.Background(), "absent")
	require.NoError(t, err)
	assert.Nil(t, p)
	assert.Empty(t, logRecords(t, buf, "content retrieval failed"))
}

func TestQuarantineIsLogged(t *testing.T) {
	buf := captureLogs(t)
	weird := post("2", "2024-02-01T00:00:00Z", false, "news", nil)
	weird["type"] = "tournaments"
	raw, err := json.Marshal(weird)
	require.NoError(t, err)

	posts, err := decodeList[GamePost]([]json.RawMessage{raw})
	require.NoError(t, err)
	assert.Empty(t, posts)

	recs := logRecords(t, buf, "quarantined content object")
	require.Len(t, recs, 1)
	assert.Equal(t, "WARN", recs[0]["level"])
	assert.Contains(t, recs[0]["error"], `got "tournaments", want "game-posts" (id 2)`)
}

func TestUnknownTypeIsQuarantined(t *testing.T) {
	buf := captureLogs(t)
	page := post("3", "2024-02-01T00:00:00Z", false, "news", nil)
	page["type"] = "pages"
	raw, err := json.Marshal(page)
	require.NoError(t, err)

	_, err = decode[GamePost](raw)
	assert.ErrorIs(t, err, ErrUnexpectedKind)
	assert.Contains(t, err.Error(), `unknown type "pages"`)

	posts, err := decodeList[GamePost]([]json.RawMessage{raw})
	require.NoError(t, err)
	assert.Empty(t, posts)
	assert.Len(t, logRecords(t, buf, "quarantined content object"), 1)
}

func TestMissingColorIsLogged(t *testing.T) {
	buf := captureLogs(t)
	store := &fakeStore{objects: []map[string]any{category("c1", "maps", "")}}

	categories, err := NewAccessor(store).ListCategories(context.Background())
	require.NoError(t, err)
	require.Len(t, categories, 1)
	assert.Equal(t, DefaultCategoryColor, categories[0].DisplayColor())

	recs := logRecords(t, buf, "content data quality")
	require.Len(t, recs, 1)
	assert.Equal(t, "WARN", recs[0]["level"])
	assert.Equal(t, "categories", recs[0]["type"])
	assert.Equal(t, "maps", recs[0]["slug"])
	assert.Equal(t, "missing color, using "+DefaultCategoryColor, recs[0]["issue"])
}

func TestUnknownSelectKeysAreLogged(t *testing.T) {
	buf := captureLogs(t)
	store := &fakeStore{objects: []map[string]any{
		tournament("t1", "2024-04-01", "cancelled"),
		post("p1", "2024-01-01T00:00:00Z", false, "podcast", nil),
	}}
	accessor := NewAccessor(store)

	tournaments, err := accessor.ListTournaments(context.Background())
	require.NoError(t, err)
	require.Len(t, tournaments, 1)
	assert.Equal(t, TournamentStatus("cancelled"), tournaments[0].Metadata.Status.Key)
	assert.Equal(t, "CANCELLED", tournaments[0].Metadata.Status.Label())

	posts, err := accessor.ListPosts(context.Background())
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, PostType("podcast"), posts[0].Metadata.PostType.Key)

	var issues []any
	for _, rec := range logRecords(t, buf, "content data quality") {
		issues = append(issues, rec["issue"])
	}
	assert.Contains(t, issues, `unknown status "cancelled", showing as is`)
	assert.Contains(t, issues, `unknown post_type "podcast", showing as is`)
}
