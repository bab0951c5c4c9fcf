// Package productclient is a Go client for the product catalog API.
package productclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const productsPath = "/api/products"

// MsgFillAllFields is reported when a product is missing a field before any request is sent.
const MsgFillAllFields = "Please fill all the fields"

var (
	// ErrMissingFields is returned by CreateProduct when name, price or image is empty.
	ErrMissingFields = errors.New("missing product fields")
)

// Product is a product as returned by the API.
type Product struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name"`
	Price     float64   `json:"price"`
	Image     string    `json:"image"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewProduct is the payload for CreateProduct.
type NewProduct struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Image string  `json:"image"`
}

// ProductUpdate is the payload for UpdateProduct. Nil fields are not sent.
type ProductUpdate struct {
	Name  *string  `json:"name,omitempty"`
	Price *float64 `json:"price,omitempty"`
	Image *string  `json:"image,omitempty"`
}

// APIError is an unsuccessful envelope returned by the server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("product api: %d %s", e.StatusCode, e.Message)
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

// Client calls the product endpoints of one server.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// New creates a client for the server at baseURL, e.g. "http://localhost:5000".
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CreateProduct validates p locally and creates it on the server.
func (c *Client) CreateProduct(ctx context.Context, p NewProduct) (*Product, error) {
	if p.Name == "" || p.Price == 0 || p.Image == "" {
		return nil, ErrMissingFields
	}

	env, err := c.do(ctx, http.MethodPost, productsPath, p)
	if err != nil {
		return nil, err
	}
	return decodeProduct(env.Data)
}

// ListProducts returns every product.
func (c *Client) ListProducts(ctx context.Context) ([]Product, error) {
	env, err := c.do(ctx, http.MethodGet, productsPath, nil)
	if err != nil {
		return nil, err
	}

	products := make([]Product, 0)
	if err := json.Unmarshal(env.Data, &products); err != nil {
		return nil, fmt.Errorf("failed to decode products: %w", err)
	}
	return products, nil
}

// UpdateProduct applies update to the product with the given id.
// It returns a nil product when the server has no product with that id.
func (c *Client) UpdateProduct(ctx context.Context, id string, update ProductUpdate) (*Product, error) {
	env, err := c.do(ctx, http.MethodPut, productsPath+"/"+url.PathEscape(id), update)
	if err != nil {
		return nil, err
	}
	return decodeProduct(env.Data)
}

// DeleteProduct deletes the product with the given id and returns the server's message.
func (c *Client) DeleteProduct(ctx context.Context, id string) (string, error) {
	env, err := c.do(ctx, http.MethodDelete, productsPath+"/"+url.PathEscape(id), nil)
	if err != nil {
		return "", err
	}
	return env.Message, nil
}

func (c *Client) do(ctx context.Context, method, path string, body any) (*envelope, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("failed to decode response (status %d): %w", resp.StatusCode, err)
	}
	if !env.Success {
		return nil, &APIError{StatusCode: resp.StatusCode, Message: env.Message}
	}
	return &env, nil
}

func decodeProduct(data json.RawMessage) (*Product, error) {
	if len(data) == 0 || string(data) == "null" {
		return nil, nil
	}
	var product Product
	if err := json.Unmarshal(data, &product); err != nil {
		return nil, fmt.Errorf("failed to decode product: %w", err)
	}
	return &product, nil
}
