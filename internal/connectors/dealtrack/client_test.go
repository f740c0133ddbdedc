package dealtrack

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openhouse-labs/dealsync-cli/internal/core/domain"
)

// staticTokens is a test token provider.
type staticTokens struct {
	key string
}

func (t *staticTokens) GetToken(_ context.Context) (string, error) { return t.key, nil }
func (t *staticTokens) IsAuthenticated() bool                      { return t.key != "" }

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(ClientOptions{
		BaseURL:    server.URL,
		Tokens:     &staticTokens{key: "test-key"},
		HTTPClient: server.Client(),
	})
}

// TestClient_Resolve_ByID tests resolving a numeric identifier.
func TestClient_Resolve_ByID(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/transactions/111", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"transaction": {"id": 111, "role": "buyer", "property_address": "12 Elm St", "status": "active"}}`))
	})

	records, err := client.Resolve(context.Background(), domain.Identifier{Kind: domain.IdentifierID, ID: 111})

	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, domain.TransactionID(111), records[0].ID)
	assert.Equal(t, domain.RoleBuyer, records[0].Role)
	assert.Equal(t, "12 Elm St", records[0].PropertyAddress)
	assert.Equal(t, domain.StatusActive, records[0].Status)
}

// TestClient_Resolve_ByEmail tests that an email may match several
// transactions.
func TestClient_Resolve_ByEmail(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/transactions", r.URL.Path)
		assert.Equal(t, "jane@example.com", r.URL.Query().Get("email"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"transactions": [
			{"id": 7, "role": "buyer", "property_address": "1 Main St", "status": "active"},
			{"id": 9, "role": "seller", "property_address": "2 Oak Ave", "status": "pending"}
		]}`))
	})

	records, err := client.Resolve(context.Background(), domain.Identifier{Kind: domain.IdentifierEmail, Email: "jane@example.com"})

	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, domain.RoleSeller, records[1].Role)
}

// TestClient_Resolve_NotFound tests that a 404 maps to the terminal
// not-found sentinel.
func TestClient_Resolve_NotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"code": "not_found", "message": "no such transaction"}`))
	})

	_, err := client.Resolve(context.Background(), domain.Identifier{Kind: domain.IdentifierID, ID: 42})

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Contains(t, err.Error(), "no such transaction")
}

// TestClient_Resolve_EmptyEmailMatch tests that zero matches for an
// email is not-found, not a bare empty slice.
func TestClient_Resolve_EmptyEmailMatch(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"transactions": []}`))
	})

	_, err := client.Resolve(context.Background(), domain.Identifier{Kind: domain.IdentifierEmail, Email: "nobody@example.com"})

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// TestClient_Resolve_ServerError tests that a 5xx stays retryable: no
// terminal sentinel is attached.
func TestClient_Resolve_ServerError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := client.Resolve(context.Background(), domain.Identifier{Kind: domain.IdentifierID, ID: 1})

	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrNotFound)
	assert.NotErrorIs(t, err, domain.ErrInvalidInput)
}

// TestClient_SubmitDocument tests a multipart upload.
func TestClient_SubmitDocument(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/transactions/111/documents", r.URL.Path)

		require.NoError(t, r.ParseMultipartForm(1<<20))
		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "contract.pdf", header.Filename)
		assert.Equal(t, "application/pdf", header.Header.Get("Content-Type"))

		w.WriteHeader(http.StatusCreated)
	})

	err := client.SubmitDocument(context.Background(), 111, "contract.pdf", "application/pdf", []byte("%PDF-1.4"))

	assert.NoError(t, err)
}

// TestClient_SubmitDocument_Rejected tests that a 422 is terminal
// invalid input, never retried by callers.
func TestClient_SubmitDocument_Rejected(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"code": "invalid_document", "message": "unsupported file type"}`))
	})

	err := client.SubmitDocument(context.Background(), 111, "notes.txt", "text/plain", []byte("hi"))

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "unsupported file type")
}
