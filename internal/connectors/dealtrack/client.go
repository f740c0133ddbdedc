package dealtrack

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/openhouse-labs/dealsync-cli/internal/connectors/google"
	"github.com/openhouse-labs/dealsync-cli/internal/core/domain"
	"github.com/openhouse-labs/dealsync-cli/internal/core/ports/driven"
)

// defaultTimeout bounds a single API call. Submissions carry whole
// documents, so this is generous.
const defaultTimeout = 60 * time.Second

// defaultRateLimit keeps the client well below DealTrack's documented
// 300 requests/minute per key.
var defaultRateLimit = google.RateLimitConfig{RequestsPerSecond: 4.0, BurstSize: 8}

// Ensure Client implements the interface.
var _ driven.TransactionRegistry = (*Client)(nil)

// ClientOptions configures a DealTrack client.
type ClientOptions struct {
	// BaseURL is the API endpoint, e.g. https://api.dealtrack.example.
	BaseURL string

	// Tokens provides the API key for the Authorization header.
	Tokens driven.TokenProvider

	// HTTPClient overrides the default client, mainly for tests.
	HTTPClient *http.Client
}

// Client is an HTTP client for the DealTrack API implementing
// driven.TransactionRegistry.
type Client struct {
	baseURL    string
	tokens     driven.TokenProvider
	httpClient *http.Client
	limiter    *google.RateLimiter
}

// NewClient creates a DealTrack API client.
func NewClient(opts ClientOptions) *Client {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	return &Client{
		baseURL:    strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/"),
		tokens:     opts.Tokens,
		httpClient: httpClient,
		limiter:    google.NewRateLimiterWithConfig(defaultRateLimit),
	}
}

// transactionPayload is one transaction on the wire.
type transactionPayload struct {
	ID              int64  `json:"id"`
	Role            string `json:"role"`
	PropertyAddress string `json:"property_address"`
	Status          string `json:"status"`
}

// errorPayload is DealTrack's error envelope.
type errorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Resolve returns the transactions matching an identifier, unfiltered
// by status. A numeric identifier fetches one transaction by ID; an
// email lists every transaction the client is a party to.
func (c *Client) Resolve(ctx context.Context, id domain.Identifier) ([]domain.TransactionRecord, error) {
	switch id.Kind {
	case domain.IdentifierID:
		return c.resolveByID(ctx, id.ID)
	case domain.IdentifierEmail:
		return c.resolveByEmail(ctx, id.Email)
	default:
		return nil, fmt.Errorf("resolve: %w", domain.ErrInvalidInput)
	}
}

func (c *Client) resolveByID(ctx context.Context, txID domain.TransactionID) ([]domain.TransactionRecord, error) {
	var payload struct {
		Transaction transactionPayload `json:"transaction"`
	}
	path := fmt.Sprintf("/v1/transactions/%d", txID)
	if err := c.getJSON(ctx, path, &payload); err != nil {
		return nil, err
	}
	return []domain.TransactionRecord{toRecord(payload.Transaction)}, nil
}

func (c *Client) resolveByEmail(ctx context.Context, email string) ([]domain.TransactionRecord, error) {
	var payload struct {
		Transactions []transactionPayload `json:"transactions"`
	}
	path := "/v1/transactions?email=" + url.QueryEscape(email)
	if err := c.getJSON(ctx, path, &payload); err != nil {
		return nil, err
	}
	if len(payload.Transactions) == 0 {
		return nil, fmt.Errorf("no transactions for %s: %w", email, domain.ErrNotFound)
	}
	records := make([]domain.TransactionRecord, 0, len(payload.Transactions))
	for _, tx := range payload.Transactions {
		records = append(records, toRecord(tx))
	}
	return records, nil
}

// SubmitDocument uploads one file to one transaction as a multipart
// form, the file under the "file" field.
func (c *Client) SubmitDocument(ctx context.Context, txID domain.TransactionID, filename, contentType string, content []byte) error {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, filename))
	if contentType != "" {
		header.Set("Content-Type", contentType)
	}
	part, err := writer.CreatePart(header)
	if err != nil {
		return fmt.Errorf("build upload form: %w", err)
	}
	if _, err := part.Write(content); err != nil {
		return fmt.Errorf("build upload form: %w", err)
	}
	if err := writer.WriteField("filename", filename); err != nil {
		return fmt.Errorf("build upload form: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("build upload form: %w", err)
	}

	path := fmt.Sprintf("/v1/transactions/%d/documents", txID)
	resp, err := c.do(ctx, http.MethodPost, path, writer.FormDataContentType(), body.Bytes())
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode <= 299 {
		return nil
	}
	return c.classify(resp, fmt.Sprintf("submit %s to transaction %d", filename, txID))
}

// getJSON performs a GET and decodes a JSON body into out.
func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	resp, err := c.do(ctx, http.MethodGet, path, "", nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.classify(resp, "GET "+path)
	}
	// A body the API mangled counts as transient: callers retry it.
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response for %s: %w", path, err)
	}
	return nil
}

// do sends one rate-limited, authenticated request.
func (c *Client) do(ctx context.Context, method, path, contentType string, body []byte) (*http.Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	key, err := c.tokens.GetToken(ctx)
	if err != nil {
		return nil, fmt.Errorf("dealtrack credentials: %w", err)
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+key)
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("dealtrack request: %w", err)
	}
	return resp, nil
}

// classify drains the response and maps its status onto the error
// taxonomy: 404 and auth failures are terminal sentinels, a rejected
// payload is terminal invalid input, 429 and 5xx stay retryable.
func (c *Client) classify(resp *http.Response, op string) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	detail := strings.TrimSpace(string(body))
	var parsed errorPayload
	if json.Unmarshal(body, &parsed) == nil && parsed.Message != "" {
		detail = parsed.Message
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%s: %s: %w", op, detail, domain.ErrNotFound)
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return fmt.Errorf("%s: %s: %w", op, detail, domain.ErrAuthInvalid)
	case resp.StatusCode == http.StatusTooManyRequests:
		c.limiter.RecordRateLimitError(parseRetryAfterSeconds(resp.Header.Get("Retry-After")))
		return fmt.Errorf("%s: %s: %w", op, detail, domain.ErrRateLimited)
	case resp.StatusCode >= 500:
		return fmt.Errorf("%s: status %d: %s", op, resp.StatusCode, detail)
	default:
		return fmt.Errorf("%s: status %d: %s: %w", op, resp.StatusCode, detail, domain.ErrInvalidInput)
	}
}

func toRecord(tx transactionPayload) domain.TransactionRecord {
	return domain.TransactionRecord{
		ID:              domain.TransactionID(tx.ID),
		Role:            domain.ParseRole(tx.Role),
		PropertyAddress: tx.PropertyAddress,
		Status:          domain.Status(tx.Status),
	}
}

func parseRetryAfterSeconds(header string) int {
	header = strings.TrimSpace(header)
	if header == "" {
		return 0
	}
	seconds, err := strconv.Atoi(header)
	if err != nil || seconds < 0 {
		return 0
	}
	return seconds
}
