package peticoes

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client := NewClient(srv.URL+"/api", WithLocalStoreDir(t.TempDir()))
	return client, srv
}

func writeEnvelope(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"success": status < 300,
		"message": "ok",
		"data":    data,
	})
}

func TestPetitionGetUnwrapsEnvelope(t *testing.T) {
	client, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/petitions/ciclovia", r.URL.Path)
		writeEnvelope(w, http.StatusOK, map[string]any{
			"petition": map[string]any{
				"id":    "abc-123",
				"title": "Ciclovia",
				"slug":  "ciclovia",
				"goal":  100,
			},
		})
	})

	petition, err := client.Petitions.Get(context.Background(), "ciclovia")
	require.NoError(t, err)
	assert.Equal(t, "abc-123", petition.ID)
	assert.Equal(t, "Ciclovia", petition.Title)
	assert.Equal(t, 100, petition.Goal)
}

func TestPetitionListPassesSort(t *testing.T) {
	client, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "-goal", r.URL.Query().Get("sort"))
		writeEnvelope(w, http.StatusOK, map[string]any{
			"petitions": []map[string]any{{"id": "a"}, {"id": "b"}},
		})
	})

	petitions, err := client.Petitions.List(context.Background(), "-goal")
	require.NoError(t, err)
	assert.Len(t, petitions, 2)
}

func TestAPIErrorCarriesStatusAndBody(t *testing.T) {
	client, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"success":false,"message":"Invalid sort field"}`))
	})

	_, err := client.Petitions.List(context.Background(), "evil")
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Contains(t, apiErr.Body, "Invalid sort field")
}

func TestSignRemoteSuccess(t *testing.T) {
	client, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/petitions/ciclovia/signatures", r.URL.Path)
		writeEnvelope(w, http.StatusCreated, map[string]any{
			"signature": map[string]any{
				"id":       "sig-1",
				"email":    "maria@example.com",
				"protocol": "PET-abcdefghij",
			},
		})
	})

	result, err := client.Signatures.Sign(context.Background(), "ciclovia", SignatureRequest{
		FullName: "Maria Silva",
		Email:    "maria@example.com",
	})
	require.NoError(t, err)
	assert.False(t, result.Degraded)
	assert.Nil(t, result.RemoteErr)
	assert.Equal(t, "sig-1", result.Signature.ID)
	assert.Equal(t, "PET-abcdefghij", result.Signature.Protocol)
}

func TestSignFallsBackToLocalStore(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // remote is unreachable from the start

	client := NewClient(srv.URL+"/api", WithLocalStoreDir(t.TempDir()))

	result, err := client.Signatures.Sign(context.Background(), "ciclovia", SignatureRequest{
		FullName: "Maria Silva",
		Email:    "maria@example.com",
	})
	require.NoError(t, err)
	assert.True(t, result.Degraded)
	assert.Error(t, result.RemoteErr)
	assert.Contains(t, result.Signature.ID, "local-")
	assert.Equal(t, "ciclovia", result.Signature.PetitionID)
	assert.True(t, result.Signature.TermsAccepted)

	pending, err := client.Signatures.PendingLocal()
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "maria@example.com", pending[0].Email)

	// degraded saves accumulate
	_, err = client.Signatures.Sign(context.Background(), "ciclovia", SignatureRequest{
		FullName: "Joana Souza",
		Email:    "joana@example.com",
	})
	require.NoError(t, err)

	pending, err = client.Signatures.PendingLocal()
	require.NoError(t, err)
	assert.Len(t, pending, 2)
}

func TestSignServerErrorAlsoDegrades(t *testing.T) {
	client, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	result, err := client.Signatures.Sign(context.Background(), "ciclovia", SignatureRequest{
		FullName: "Maria Silva",
		Email:    "maria@example.com",
	})
	require.NoError(t, err)
	assert.True(t, result.Degraded)

	var apiErr *APIError
	require.True(t, errors.As(result.RemoteErr, &apiErr))
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
}

func TestLinkPageSaveFallsBackToLocalStore(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	client := NewClient(srv.URL+"/api", WithLocalStoreDir(t.TempDir()))

	result, err := client.LinkPages.Create(context.Background(), LinkPageRequest{Title: "Movimento"})
	require.NoError(t, err)
	assert.True(t, result.Degraded)
	assert.Error(t, result.RemoteErr)
	assert.Equal(t, "Movimento", result.LinkPage.Title)
	assert.Contains(t, result.LinkPage.ID, "local-")
}

func TestQRCodeURL(t *testing.T) {
	client := NewClient("http://petitions.test/api", WithLocalStoreDir(t.TempDir()))
	assert.Equal(t, "http://petitions.test/api/v1/petitions/ciclovia/qrcode", client.Petitions.QRCodeURL("ciclovia"))
}

func TestNewClientDefaultBaseURL(t *testing.T) {
	client := NewClient("", WithLocalStoreDir(t.TempDir()))
	assert.Equal(t, DefaultBaseURL, client.baseURL)
}
