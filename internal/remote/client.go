// Package remote provides the tenant-scoped document store client.
//
// Documents live under tenants/{tenantId}/{collection}/{documentId}. The
// client is deliberately thin: no retries, no caching, no pagination
// cursor exposed to callers. Every operation returns an error wrapping
// the transport failure and leaves retry policy to the sync jobs.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// Collection names, fixed. The order is the order DeleteAllInTenant
// processes them.
const (
	CollectionWorkActivityLogs     = "work_activity_logs"
	CollectionOperatorInfo         = "operator_info"
	CollectionActivityCategories   = "activity_categories"
	CollectionTheBoysInfo          = "the_boys_info"
	CollectionProductionActivities = "production_activities"
	CollectionComponentInfo        = "component_info"
)

// Collections lists every known collection name.
func Collections() []string {
	return []string{
		CollectionWorkActivityLogs,
		CollectionOperatorInfo,
		CollectionActivityCategories,
		CollectionTheBoysInfo,
		CollectionProductionActivities,
		CollectionComponentInfo,
	}
}

// deleteBatchSize is the page size used when wiping a tenant.
const deleteBatchSize = 500

// Document is one remote document with its identity attached.
type Document struct {
	ID     string         `json:"id"`
	Fields map[string]any `json:"fields"`
}

type listResponse struct {
	Documents     []Document `json:"documents"`
	NextPageToken string     `json:"next_page_token"`
}

type batchDeleteRequest struct {
	IDs []string `json:"ids"`
}

type errorBody struct {
	Error string `json:"error"`
}

// Client talks to the remote document store over HTTP.
// It is safe for concurrent use.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
}

// NewClient creates a document store client. If httpClient is nil,
// http.DefaultClient is used.
func NewClient(httpClient *http.Client, baseURL, token string) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		token:      strings.TrimSpace(token),
	}
}

func (c *Client) docPath(tenantID, collection, documentID string) string {
	return "/tenants/" + url.PathEscape(tenantID) +
		"/" + url.PathEscape(collection) +
		"/" + url.PathEscape(documentID)
}

func (c *Client) collectionPath(tenantID, collection string) string {
	return "/tenants/" + url.PathEscape(tenantID) + "/" + url.PathEscape(collection)
}

// Put writes the full document body at the given identity. The write is
// an overwrite, not a merge: fields absent from body are removed.
func (c *Client) Put(ctx context.Context, tenantID, collection, documentID string, body map[string]any) error {
	return c.do(ctx, http.MethodPut, c.docPath(tenantID, collection, documentID), body, nil)
}

// Delete removes the document at the given identity.
// Deleting a missing document is not an error.
func (c *Client) Delete(ctx context.Context, tenantID, collection, documentID string) error {
	return c.do(ctx, http.MethodDelete, c.docPath(tenantID, collection, documentID), nil, nil)
}

// ListAll fetches the tenant's entire collection as a single point-in-time
// snapshot. Internally it pages through the collection and concatenates
// the pages before returning.
func (c *Client) ListAll(ctx context.Context, tenantID, collection string) ([]Document, error) {
	var all []Document
	pageToken := ""

	for {
		path := c.collectionPath(tenantID, collection) + "?page_size=" + fmt.Sprint(deleteBatchSize)
		if pageToken != "" {
			path += "&page_token=" + url.QueryEscape(pageToken)
		}

		var page listResponse
		if err := c.do(ctx, http.MethodGet, path, nil, &page); err != nil {
			return nil, fmt.Errorf("failed to list %s: %w", collection, err)
		}

		all = append(all, page.Documents...)
		if page.NextPageToken == "" {
			return all, nil
		}
		pageToken = page.NextPageToken
	}
}

// DeleteAllInTenant wipes every known collection for the tenant. Each
// collection is paged through and batch-deleted (500 per batch) until a
// page comes back empty. Used only for a full account wipe.
func (c *Client) DeleteAllInTenant(ctx context.Context, tenantID string) error {
	for _, collection := range Collections() {
		for {
			var page listResponse
			path := c.collectionPath(tenantID, collection) + "?page_size=" + fmt.Sprint(deleteBatchSize)
			if err := c.do(ctx, http.MethodGet, path, nil, &page); err != nil {
				return fmt.Errorf("failed to page %s for wipe: %w", collection, err)
			}
			if len(page.Documents) == 0 {
				break
			}

			ids := make([]string, 0, len(page.Documents))
			for _, doc := range page.Documents {
				ids = append(ids, doc.ID)
			}
			req := batchDeleteRequest{IDs: ids}
			if err := c.do(ctx, http.MethodPost, c.collectionPath(tenantID, collection)+":batchDelete", req, nil); err != nil {
				return fmt.Errorf("failed to batch delete from %s: %w", collection, err)
			}
		}
	}
	return nil
}

// Ping probes the store for reachability. Used by the scheduler's
// network-connected execution constraint.
func (c *Client) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/healthz", nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		r = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, r)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		token := c.token
		if !strings.HasPrefix(strings.ToLower(token), "bearer ") {
			token = "Bearer " + token
		}
		req.Header.Set("Authorization", token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if out == nil {
			return nil
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response from %s: %w", path, err)
		}
		return nil
	}

	// Deleting something already gone is fine; the write it mirrors
	// already happened locally.
	if method == http.MethodDelete && resp.StatusCode == http.StatusNotFound {
		return nil
	}

	var eb errorBody
	_ = json.NewDecoder(resp.Body).Decode(&eb)
	if strings.TrimSpace(eb.Error) != "" {
		return fmt.Errorf("%s %s: status %d: %s", method, path, resp.StatusCode, eb.Error)
	}
	return fmt.Errorf("%s %s: status %d", method, path, resp.StatusCode)
}
