package instagram

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"folio-gate/domain"
	"folio-gate/errors"

	"github.com/stretchr/testify/require"
)

func TestClient_Media(t *testing.T) {
	req := require.New(t)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		req.Equal("/1784/media", r.URL.Path)
		req.Equal("id,media_url,permalink", r.URL.Query().Get("fields"))
		req.Equal("ig-token", r.URL.Query().Get("access_token"))
		_, _ = w.Write([]byte(`{"data":[{"id":"1","media_url":"https://cdn/1.jpg","permalink":"https://ig/p/1"}]}`))
	}))
	defer server.Close()

	posts, err := NewClient(server.URL+"/", "ig-token", "1784", nil).Media(context.Background())
	req.NoError(err)
	req.Equal([]domain.MediaPost{{ID: "1", MediaURL: "https://cdn/1.jpg", Permalink: "https://ig/p/1"}}, posts)
}

func TestClient_ErrorPayload(t *testing.T) {
	req := require.New(t)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"message":"Invalid OAuth access token"}}`))
	}))
	defer server.Close()

	_, err := NewClient(server.URL, "ig-token", "1784", nil).Media(context.Background())
	var apiErr *APIError
	req.ErrorAs(err, &apiErr)
	req.Equal("Invalid OAuth access token", apiErr.Message)
}

func TestClient_TransportErrorIsRedacted(t *testing.T) {
	req := require.New(t)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	_, err := NewClient(server.URL, "ig-secret-token", "1784", nil).Media(context.Background())
	req.Error(err)
	req.NotContains(err.Error(), "ig-secret-token")
}

func TestClient_MissingCredentials(t *testing.T) {
	_, err := NewClient("http://unused", "token", "", nil).Media(context.Background())
	require.ErrorIs(t, err, errors.ErrMissingCredential)
}
