package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"
)

// Client defines the consumed surface of the remote catalog API.
type Client interface {
	// ListProductsPage fetches one page of the product catalog (id + variants).
	ListProductsPage(ctx context.Context, page, perPage int) ([]Product, error)
	// PatchVariants applies a batch price update to one remote product.
	// A non-2xx response is an error for that product only.
	PatchVariants(ctx context.Context, productID int64, patches []VariantPatch) error
}

// NewClient creates an HTTP client for the remote catalog API.
func NewClient(cfg Config) Client {
	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 30
	}
	timeoutDuration := time.Duration(timeout) * time.Second

	// Custom transport with strict timeouts so a stalled remote call cannot
	// hang a batch run.
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   timeoutDuration,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   timeoutDuration,
		ExpectContinueTimeout: 1 * time.Second,
		ResponseHeaderTimeout: timeoutDuration,
	}

	return &httpClient{
		cfg:  cfg,
		http: &http.Client{Transport: transport},
	}
}

type httpClient struct {
	cfg  Config
	http *http.Client
}

func (c *httpClient) ListProductsPage(ctx context.Context, page, perPage int) ([]Product, error) {
	url := fmt.Sprintf("%s/%s/%s/products?page=%d&per_page=%d&fields=id,variants",
		strings.TrimSuffix(c.cfg.BaseURL, "/"), c.cfg.APIVersion, c.cfg.StoreID, page, perPage)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	c.setHeaders(req)

	res, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("remote catalog list failed: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		body, _ := io.ReadAll(res.Body)
		return nil, fmt.Errorf("remote catalog %d: %s", res.StatusCode, strings.TrimSpace(string(body)))
	}

	var products []Product
	if err := json.NewDecoder(res.Body).Decode(&products); err != nil {
		return nil, fmt.Errorf("failed to decode products page %d: %w", page, err)
	}

	return products, nil
}

func (c *httpClient) PatchVariants(ctx context.Context, productID int64, patches []VariantPatch) error {
	url := fmt.Sprintf("%s/%s/%s/products/%d/variants",
		strings.TrimSuffix(c.cfg.BaseURL, "/"), c.cfg.APIVersion, c.cfg.StoreID, productID)

	body, err := json.Marshal(patches)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	c.setHeaders(req)

	res, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("remote patch of product %d failed: %w", productID, err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		respBody, _ := io.ReadAll(res.Body)
		return fmt.Errorf("remote patch of product %d -> %d: %s", productID, res.StatusCode, strings.TrimSpace(string(respBody)))
	}

	// Drain so the connection can be reused.
	_, _ = io.Copy(io.Discard, res.Body)
	return nil
}

// setHeaders applies the authentication and identification headers the
// platform requires on every call.
func (c *httpClient) setHeaders(req *http.Request) {
	req.Header.Set("Authentication", "bearer "+c.cfg.Token)
	req.Header.Set("User-Agent", c.cfg.UserAgent)
	req.Header.Set("Content-Type", "application/json")
}
