// Package notion is the HTTP adapter for the remote document service.
package notion

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/hashicorp/go-hclog"

	"github.com/ntncli/ntn/internal/domain"
	"github.com/ntncli/ntn/internal/ports"
)

const (
	DefaultBaseURL = "https://api.notion.com"
	DefaultVersion = "2022-06-28"

	// MaxPageSize is the service's hard page-size ceiling. Every list
	// operation clamps to it.
	MaxPageSize = 100

	maxBodyBytes      = 4 << 20
	defaultMaxRetries = 2
)

type Config struct {
	BaseURL    string
	Token      string
	Version    string
	HTTPClient *http.Client
	Logger     hclog.Logger
	// MaxRetries bounds the retry attempts for idempotent reads that hit
	// a transient failure. Mutations are never retried.
	MaxRetries uint64
}

// Client is a session bound to one bearer token. Construction does not
// validate the token against the network.
type Client struct {
	baseURL    string
	token      string
	version    string
	httpClient *http.Client
	logger     hclog.Logger
	maxRetries uint64
}

var _ ports.DocumentAPI = (*Client)(nil)

func NewClient(cfg Config) *Client {
	client := &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		token:      cfg.Token,
		version:    cfg.Version,
		httpClient: cfg.HTTPClient,
		logger:     cfg.Logger,
		maxRetries: cfg.MaxRetries,
	}

	if client.baseURL == "" {
		client.baseURL = DefaultBaseURL
	}
	if client.version == "" {
		client.version = DefaultVersion
	}
	if client.httpClient == nil {
		client.httpClient = http.DefaultClient
	}
	if client.logger == nil {
		client.logger = hclog.NewNullLogger()
	}
	if client.maxRetries == 0 {
		client.maxRetries = defaultMaxRetries
	}

	return client
}

func (c *Client) WhoAmI(ctx context.Context) (domain.Object, error) {
	var user domain.Object
	if err := c.do(ctx, http.MethodGet, "/v1/users/me", nil, &user, true); err != nil {
		return nil, fmt.Errorf("who am i: %w", err)
	}

	return user, nil
}

func (c *Client) Search(ctx context.Context, object string, pageSize int) (ports.ObjectList, error) {
	body := map[string]any{
		"filter":    map[string]any{"property": "object", "value": object},
		"page_size": ClampPageSize(pageSize),
	}

	var list listEnvelope
	if err := c.do(ctx, http.MethodPost, "/v1/search", body, &list, true); err != nil {
		return ports.ObjectList{}, fmt.Errorf("search %s objects: %w", object, err)
	}

	return list.toPorts(), nil
}

func (c *Client) GetPage(ctx context.Context, id string) (domain.Object, error) {
	var page domain.Object
	if err := c.do(ctx, http.MethodGet, "/v1/pages/"+id, nil, &page, true); err != nil {
		return nil, fmt.Errorf("retrieve page: %w", err)
	}

	return page, nil
}

func (c *Client) CreatePage(ctx context.Context, params ports.CreatePageParams) (domain.Object, error) {
	body := map[string]any{
		"parent": map[string]any{"type": "page_id", "page_id": params.ParentPageID},
		"properties": map[string]any{
			"title": map[string]any{"title": textRichText(params.Title)},
		},
	}
	if len(params.Content) > 0 {
		body["children"] = paragraphBlocks(params.Content)
	}

	var page domain.Object
	if err := c.do(ctx, http.MethodPost, "/v1/pages", body, &page, false); err != nil {
		return nil, fmt.Errorf("create page: %w", err)
	}

	return page, nil
}

func (c *Client) UpdatePage(ctx context.Context, id string, params ports.UpdatePageParams) (domain.Object, error) {
	body := map[string]any{}
	if params.Title != "" {
		body["properties"] = map[string]any{
			"title": map[string]any{"title": textRichText(params.Title)},
		}
	}
	if params.Archived != nil {
		body["archived"] = *params.Archived
	}

	var page domain.Object
	if err := c.do(ctx, http.MethodPatch, "/v1/pages/"+id, body, &page, false); err != nil {
		return nil, fmt.Errorf("update page: %w", err)
	}

	return page, nil
}

func (c *Client) GetDatabase(ctx context.Context, id string) (domain.Object, error) {
	var database domain.Object
	if err := c.do(ctx, http.MethodGet, "/v1/databases/"+id, nil, &database, true); err != nil {
		return nil, fmt.Errorf("retrieve database: %w", err)
	}

	return database, nil
}

func (c *Client) QueryDatabase(ctx context.Context, id string, params ports.QueryDatabaseParams) (ports.ObjectList, error) {
	body := map[string]any{
		"page_size": ClampPageSize(params.PageSize),
	}
	if len(params.Filter) > 0 {
		body["filter"] = params.Filter
	}
	if len(params.Sorts) > 0 {
		body["sorts"] = params.Sorts
	}

	var list listEnvelope
	if err := c.do(ctx, http.MethodPost, "/v1/databases/"+id+"/query", body, &list, true); err != nil {
		return ports.ObjectList{}, fmt.Errorf("query database: %w", err)
	}

	return list.toPorts(), nil
}

func (c *Client) CreateDatabase(ctx context.Context, params ports.CreateDatabaseParams) (domain.Object, error) {
	properties := any(map[string]any{
		"Name": map[string]any{"title": map[string]any{}},
	})
	if len(params.Schema) > 0 {
		properties = params.Schema
	}

	body := map[string]any{
		"parent":     map[string]any{"type": "page_id", "page_id": params.ParentPageID},
		"title":      textRichText(params.Title),
		"properties": properties,
	}

	var database domain.Object
	if err := c.do(ctx, http.MethodPost, "/v1/databases", body, &database, false); err != nil {
		return nil, fmt.Errorf("create database: %w", err)
	}

	return database, nil
}

func (c *Client) UpdateDatabase(ctx context.Context, id string, params ports.UpdateDatabaseParams) (domain.Object, error) {
	body := map[string]any{}
	if params.Title != "" {
		body["title"] = textRichText(params.Title)
	}
	if len(params.Schema) > 0 {
		body["properties"] = params.Schema
	}
	if params.Archived != nil {
		body["archived"] = *params.Archived
	}

	var database domain.Object
	if err := c.do(ctx, http.MethodPatch, "/v1/databases/"+id, body, &database, false); err != nil {
		return nil, fmt.Errorf("update database: %w", err)
	}

	return database, nil
}

func (c *Client) ListBlockChildren(ctx context.Context, id string) (ports.ObjectList, error) {
	path := fmt.Sprintf("/v1/blocks/%s/children?page_size=%d", id, MaxPageSize)

	var list listEnvelope
	if err := c.do(ctx, http.MethodGet, path, nil, &list, true); err != nil {
		return ports.ObjectList{}, fmt.Errorf("list block children: %w", err)
	}

	return list.toPorts(), nil
}

func (c *Client) AppendBlockChildren(ctx context.Context, id string, paragraphs []string) (ports.ObjectList, error) {
	body := map[string]any{"children": paragraphBlocks(paragraphs)}

	var list listEnvelope
	if err := c.do(ctx, http.MethodPatch, "/v1/blocks/"+id+"/children", body, &list, false); err != nil {
		return ports.ObjectList{}, fmt.Errorf("append block children: %w", err)
	}

	return list.toPorts(), nil
}

// ClampPageSize folds any requested size into [1, MaxPageSize]. Zero and
// negative values mean "as many as allowed".
func ClampPageSize(size int) int {
	if size <= 0 || size > MaxPageSize {
		return MaxPageSize
	}
	return size
}

type listEnvelope struct {
	Results    []domain.Object `json:"results"`
	HasMore    bool            `json:"has_more"`
	NextCursor string          `json:"next_cursor"`
}

func (e listEnvelope) toPorts() ports.ObjectList {
	return ports.ObjectList{
		Results:    e.Results,
		HasMore:    e.HasMore,
		NextCursor: e.NextCursor,
	}
}

type serviceError struct {
	Object  string `json:"object"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (c *Client) do(ctx context.Context, method, path string, body, out any, idempotent bool) error {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
	}

	if !idempotent {
		return c.roundTrip(ctx, method, path, payload, out)
	}

	operation := func() error {
		err := c.roundTrip(ctx, method, path, payload, out)
		if err == nil || isRetryable(err) {
			return err
		}
		return backoff.Permanent(err)
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(newBackOff(), c.maxRetries), ctx)
	return backoff.Retry(operation, policy)
}

func newBackOff() backoff.BackOff {
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = 250 * time.Millisecond
	policy.MaxInterval = 2 * time.Second
	return policy
}

func isRetryable(err error) bool {
	var apiErr *domain.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code == domain.CodeRateLimited || apiErr.Code == domain.CodeServiceUnavailable
	}

	var statusErr *domain.StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Status == http.StatusTooManyRequests || statusErr.Status >= 500
	}

	return false
}

func (c *Client) roundTrip(ctx context.Context, method, path string, payload []byte, out any) error {
	var bodyReader io.Reader
	if payload != nil {
		bodyReader = bytes.NewReader(payload)
	}

	request, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	request.Header.Set("Authorization", "Bearer "+c.token)
	request.Header.Set("Notion-Version", c.version)
	if payload != nil {
		request.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	response, err := c.httpClient.Do(request)
	if err != nil {
		c.logger.Debug("document api call failed", "method", method, "path", path, "duration", time.Since(start), "error", err)
		return fmt.Errorf("perform request: %w", err)
	}
	defer response.Body.Close()

	body, err := io.ReadAll(io.LimitReader(response.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	c.logger.Debug("document api call",
		"method", method,
		"path", path,
		"status", response.StatusCode,
		"duration", time.Since(start),
	)

	if response.StatusCode < 200 || response.StatusCode > 299 {
		var svcErr serviceError
		if err := json.Unmarshal(body, &svcErr); err == nil && svcErr.Code != "" {
			return &domain.APIError{
				Status:  response.StatusCode,
				Code:    svcErr.Code,
				Message: svcErr.Message,
			}
		}
		return &domain.StatusError{
			Status: response.StatusCode,
			Body:   strings.TrimSpace(string(body)),
		}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}

func textRichText(content string) []map[string]any {
	return []map[string]any{
		{"type": "text", "text": map[string]any{"content": content}},
	}
}

func paragraphBlocks(lines []string) []map[string]any {
	blocks := make([]map[string]any, 0, len(lines))
	for _, line := range lines {
		blocks = append(blocks, map[string]any{
			"object": "block",
			"type":   "paragraph",
			"paragraph": map[string]any{
				"rich_text": textRichText(line),
			},
		})
	}

	return blocks
}
