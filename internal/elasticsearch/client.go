// Package elasticsearch implements the backend client consumed by the
// manager core, on top of the official go-elasticsearch client.
package elasticsearch

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	es "github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"github.com/PWalkow/ElasticsearchBundle/internal/manager"
)

// Client wraps the Elasticsearch client with the index, mapping and bulk
// operations the manager core needs. It implements manager.BackendClient.
type Client struct {
	esClient *es.Client
	config   *Config
}

// Config holds Elasticsearch connection configuration.
type Config struct {
	URL        string
	Username   string
	Password   string
	MaxRetries int
	Timeout    time.Duration
}

// NewClient creates a new Elasticsearch client and verifies connectivity.
func NewClient(cfg *Config) (*Client, error) {
	addresses := []string{cfg.URL}
	if !strings.HasPrefix(cfg.URL, "http://") && !strings.HasPrefix(cfg.URL, "https://") {
		addresses = []string{"http://" + cfg.URL}
	}

	transport := &http.Transport{
		TLSClientConfig: &tls.Config{
			InsecureSkipVerify: false,
		},
	}

	clientConfig := es.Config{
		Addresses:  addresses,
		Transport:  transport,
		MaxRetries: cfg.MaxRetries,
	}

	if cfg.Username != "" && cfg.Password != "" {
		clientConfig.Username = cfg.Username
		clientConfig.Password = cfg.Password
	}

	esClient, err := es.NewClient(clientConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Elasticsearch client: %w", err)
	}

	res, err := esClient.Ping()
	if err != nil {
		return nil, fmt.Errorf("failed to ping Elasticsearch: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("error pinging Elasticsearch: %s", res.String())
	}

	return &Client{
		esClient: esClient,
		config:   cfg,
	}, nil
}

// GetClient returns the underlying Elasticsearch client.
func (c *Client) GetClient() *es.Client {
	return c.esClient
}

// CreateIndex creates an index with the given settings body.
func (c *Client) CreateIndex(ctx context.Context, indexName string, body map[string]any) error {
	var bodyReader io.Reader
	if body != nil {
		bodyBytes, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal index body: %w", err)
		}
		bodyReader = bytes.NewReader(bodyBytes)
	}

	res, err := c.esClient.Indices.Create(indexName,
		c.esClient.Indices.Create.WithBody(bodyReader),
		c.esClient.Indices.Create.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("failed to create index: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		respBody, _ := io.ReadAll(res.Body)
		return fmt.Errorf("error creating index: %s", string(respBody))
	}

	return nil
}

// DeleteIndex deletes an index. A missing index is reported as
// manager.ErrIndexNotFound so callers can absorb exactly that case.
func (c *Client) DeleteIndex(ctx context.Context, indexName string) error {
	res, err := c.esClient.Indices.Delete([]string{indexName},
		c.esClient.Indices.Delete.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("failed to delete index: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%w: %s", manager.ErrIndexNotFound, indexName)
	}
	if res.IsError() {
		respBody, _ := io.ReadAll(res.Body)
		return fmt.Errorf("error deleting index: %s", string(respBody))
	}

	return nil
}

// IndexExists checks if an index exists.
func (c *Client) IndexExists(ctx context.Context, indexName string) (bool, error) {
	res, err := c.esClient.Indices.Exists([]string{indexName},
		c.esClient.Indices.Exists.WithContext(ctx),
	)
	if err != nil {
		return false, fmt.Errorf("failed to check index existence: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		return false, nil
	}
	if res.IsError() {
		return false, fmt.Errorf("error checking index existence: %s", res.String())
	}

	return true, nil
}

// RefreshIndex makes recent writes visible to search.
func (c *Client) RefreshIndex(ctx context.Context, indexName string) error {
	res, err := c.esClient.Indices.Refresh(
		c.esClient.Indices.Refresh.WithIndex(indexName),
		c.esClient.Indices.Refresh.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("failed to refresh index: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		respBody, _ := io.ReadAll(res.Body)
		return fmt.Errorf("error refreshing index: %s", string(respBody))
	}

	return nil
}

// FlushIndex flushes the index transaction log.
func (c *Client) FlushIndex(ctx context.Context, indexName string) error {
	res, err := c.esClient.Indices.Flush(
		c.esClient.Indices.Flush.WithIndex(indexName),
		c.esClient.Indices.Flush.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("failed to flush index: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		respBody, _ := io.ReadAll(res.Body)
		return fmt.Errorf("error flushing index: %s", string(respBody))
	}

	return nil
}

// ClearIndexCache clears the index-level caches.
func (c *Client) ClearIndexCache(ctx context.Context, indexName string) error {
	res, err := c.esClient.Indices.ClearCache(
		c.esClient.Indices.ClearCache.WithIndex(indexName),
		c.esClient.Indices.ClearCache.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("failed to clear index cache: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		respBody, _ := io.ReadAll(res.Body)
		return fmt.Errorf("error clearing index cache: %s", string(respBody))
	}

	return nil
}

// GetMapping returns the live mapping of the index keyed by type name,
// filtered to the requested types when any are given.
func (c *Client) GetMapping(ctx context.Context, indexName string, types []string) (map[string]any, error) {
	res, err := c.esClient.Indices.GetMapping(
		c.esClient.Indices.GetMapping.WithIndex(indexName),
		c.esClient.Indices.GetMapping.WithContext(ctx),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get index mapping: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: %s", manager.ErrIndexNotFound, indexName)
	}
	if res.IsError() {
		respBody, _ := io.ReadAll(res.Body)
		return nil, fmt.Errorf("error getting index mapping: %s", string(respBody))
	}

	var mappingData map[string]any
	if err := json.NewDecoder(res.Body).Decode(&mappingData); err != nil {
		return nil, fmt.Errorf("failed to decode mapping: %w", err)
	}

	indexData, ok := mappingData[indexName].(map[string]any)
	if !ok {
		return map[string]any{}, nil
	}
	mappings, ok := indexData["mappings"].(map[string]any)
	if !ok {
		return map[string]any{}, nil
	}

	if len(types) == 0 {
		return mappings, nil
	}

	filtered := make(map[string]any)
	for _, typeName := range types {
		if fragment, exists := mappings[typeName]; exists {
			filtered[typeName] = fragment
		}
	}
	return filtered, nil
}

// PutMapping pushes the given type-keyed mapping fragments to the index,
// one put-mapping request per type.
func (c *Client) PutMapping(ctx context.Context, indexName string, mapping map[string]any) error {
	for typeName, fragment := range mapping {
		fragmentJSON, err := json.Marshal(fragment)
		if err != nil {
			return fmt.Errorf("failed to marshal mapping for type %s: %w", typeName, err)
		}

		res, err := c.esClient.Indices.PutMapping(
			[]string{indexName},
			bytes.NewReader(fragmentJSON),
			c.esClient.Indices.PutMapping.WithContext(ctx),
		)
		if err != nil {
			return fmt.Errorf("failed to put mapping for type %s: %w", typeName, err)
		}

		if res.IsError() {
			respBody, _ := io.ReadAll(res.Body)
			res.Body.Close()
			return fmt.Errorf("error putting mapping for type %s: %s", typeName, string(respBody))
		}
		res.Body.Close()
	}

	return nil
}

// Bulk serializes the batch to the newline-delimited bulk format and executes
// it as a single request. The legacy replication param has no modern engine
// equivalent and is not transmitted; consistency maps to wait_for_active_shards.
func (c *Client) Bulk(ctx context.Context, batch []map[string]any, params manager.BulkParams) (map[string]any, error) {
	buf, err := encodeBulkBody(batch)
	if err != nil {
		return nil, err
	}

	opts := []func(*esapi.BulkRequest){
		c.esClient.Bulk.WithContext(ctx),
	}
	if params.Refresh {
		opts = append(opts, c.esClient.Bulk.WithRefresh("true"))
	}
	if params.Consistency != "" {
		opts = append(opts, c.esClient.Bulk.WithWaitForActiveShards(params.Consistency))
	}

	res, err := c.esClient.Bulk(buf, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to execute bulk request: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		respBody, _ := io.ReadAll(res.Body)
		return nil, fmt.Errorf("error executing bulk request: %s", string(respBody))
	}

	var response map[string]any
	if err := json.NewDecoder(res.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("failed to decode bulk response: %w", err)
	}

	return response, nil
}

// encodeBulkBody serializes batch entries into the newline-delimited bulk
// wire format, one JSON object per line.
func encodeBulkBody(batch []map[string]any) (*bytes.Buffer, error) {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	for _, entry := range batch {
		if err := encoder.Encode(entry); err != nil {
			return nil, fmt.Errorf("failed to encode bulk entry: %w", err)
		}
	}
	return &buf, nil
}

// ServerInfo returns the engine name and version from the root endpoint.
func (c *Client) ServerInfo(ctx context.Context) (manager.ServerInfo, error) {
	res, err := c.esClient.Info(c.esClient.Info.WithContext(ctx))
	if err != nil {
		return manager.ServerInfo{}, fmt.Errorf("failed to get server info: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		respBody, _ := io.ReadAll(res.Body)
		return manager.ServerInfo{}, fmt.Errorf("error getting server info: %s", string(respBody))
	}

	var info struct {
		Name    string `json:"name"`
		Version struct {
			Number string `json:"number"`
		} `json:"version"`
	}
	if err := json.NewDecoder(res.Body).Decode(&info); err != nil {
		return manager.ServerInfo{}, fmt.Errorf("failed to decode server info: %w", err)
	}

	return manager.ServerInfo{
		Name:    info.Name,
		Version: info.Version.Number,
	}, nil
}

// GetClusterHealth gets the overall cluster health.
func (c *Client) GetClusterHealth(ctx context.Context) (map[string]any, error) {
	res, err := c.esClient.Cluster.Health(c.esClient.Cluster.Health.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to get cluster health: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		respBody, _ := io.ReadAll(res.Body)
		return nil, fmt.Errorf("error getting cluster health: %s", string(respBody))
	}

	var healthData map[string]any
	if err := json.NewDecoder(res.Body).Decode(&healthData); err != nil {
		return nil, fmt.Errorf("failed to decode cluster health: %w", err)
	}

	return healthData, nil
}
