package quote

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"content":"Well begun is half done.","author":"Aristotle"}`))
	}))
	defer srv.Close()

	q, err := NewClient(srv.URL).Fetch(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "Well begun is half done.", q.Content)
	assert.Equal(t, "Aristotle", q.Author)
}

func TestFetchWithoutConfiguredService(t *testing.T) {
	_, err := NewClient("").Fetch(context.Background())

	assert.Error(t, err)
}

func TestFetchRejectsEmptyQuote(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"content":"","author":""}`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Fetch(context.Background())

	assert.Error(t, err)
}
