package bodhi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(url string) *Client {
	return NewClientWithOptions(url, DefaultRetryConfig())
}

func TestNewClientDefaults(t *testing.T) {
	client := NewClientWithOptions("", DefaultRetryConfig())

	assert.Equal(t, "https://bodhi.fedoraproject.org", client.BaseURL)
	assert.Equal(t, DefaultRowsPerPage, client.RowsPerPage)
	assert.NotNil(t, client.HTTPClient)
	assert.Contains(t, client.UserAgent, "fedora-feedback/")
}

func TestQueryUpdatesSendsFilters(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/updates/", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, []string{"F40"}, q["releases"])
		assert.Equal(t, "testing", q.Get("status"))
		assert.Equal(t, "rpm", q.Get("content_type"))
		assert.Equal(t, "1", q.Get("page"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))

		json.NewEncoder(w).Encode(updatesPage{
			Updates: []Update{{
				Alias:  "FEDORA-2024-0001",
				User:   User{Name: "packager"},
				Builds: []Build{{NVR: "foo-1.1-1.fc40", Type: "rpm"}},
				Comments: []Comment{
					{ID: 1, Text: "works", Karma: 1, User: User{Name: "tester"}},
				},
			}},
			Page:  1,
			Pages: 1,
			Total: 1,
		})
	}))
	defer server.Close()

	updates, err := newTestClient(server.URL).QueryUpdates(context.Background(), TestingQuery("F40"))
	require.NoError(t, err)
	require.Len(t, updates, 1)

	u := updates[0]
	assert.Equal(t, "FEDORA-2024-0001", u.Alias)
	assert.Equal(t, "packager", u.User.Name)
	assert.Equal(t, "foo-1.1-1.fc40", u.Builds[0].NVR)
	assert.Equal(t, "tester", u.Comments[0].User.Name)
}

func TestQueryUpdatesFollowsPagination(t *testing.T) {
	var requests int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&requests, 1)
		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		json.NewEncoder(w).Encode(updatesPage{
			Updates: []Update{{Alias: "FEDORA-2024-" + strconv.Itoa(page)}},
			Page:    page,
			Pages:   3,
			Total:   3,
		})
	}))
	defer server.Close()

	updates, err := newTestClient(server.URL).QueryUpdates(context.Background(), TestingQuery("F40"))
	require.NoError(t, err)

	assert.Equal(t, int32(3), atomic.LoadInt32(&requests))
	require.Len(t, updates, 3)
	assert.Equal(t, "FEDORA-2024-1", updates[0].Alias)
	assert.Equal(t, "FEDORA-2024-3", updates[2].Alias)
}

func TestQueryUpdatesEmpty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"updates": [], "page": 1, "pages": 0, "rows_per_page": 100, "total": 0}`))
	}))
	defer server.Close()

	updates, err := newTestClient(server.URL).QueryUpdates(context.Background(), TestingQuery("F40"))
	require.NoError(t, err)
	assert.Empty(t, updates)
}

func TestQueryUpdatesMissingCommentsField(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"updates": [{"alias": "A", "user": {"name": "x"}, "builds": [{"nvr": "a-1-1"}]}], "page": 1, "pages": 1}`))
	}))
	defer server.Close()

	updates, err := newTestClient(server.URL).QueryUpdates(context.Background(), TestingQuery("F40"))
	require.NoError(t, err)
	require.Len(t, updates, 1)
	assert.Nil(t, updates[0].Comments)
}

func TestQueryUpdatesBadRelease(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"status": "error", "errors": [{"location": "querystring", "name": "releases", "description": "Invalid releases specified: F99"}]}`))
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).QueryUpdates(context.Background(), TestingQuery("F99"))
	require.ErrorIs(t, err, ErrRemoteService)
	assert.Contains(t, err.Error(), "Invalid releases specified: F99")
	assert.Contains(t, err.Error(), "status 400")
}

func TestQueryUpdatesMalformedJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>maintenance</html>`))
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).QueryUpdates(context.Background(), TestingQuery("F40"))
	require.ErrorIs(t, err, ErrRemoteService)
	assert.Contains(t, err.Error(), "failed to parse response")
}

func TestQueryUpdatesConnectionRefused(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	_, err := newTestClient(url).QueryUpdates(context.Background(), TestingQuery("F40"))
	require.ErrorIs(t, err, ErrRemoteService)
}

func TestDescribeErrorTruncatesPlainBodies(t *testing.T) {
	long := make([]byte, 500)
	for i := range long {
		long[i] = 'x'
	}
	got := describeError(long)
	assert.Len(t, got, 203)
}
