package client

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/dmitrijs2005/rootshare/internal/client/models"
)

// Plants lists the caller's plants, optionally filtered by status ("" = all).
func (c *HTTPClient) Plants(ctx context.Context, status models.PlantStatus) ([]models.Plant, error) {
	q := url.Values{}
	if status != "" {
		q.Set("status", string(status))
	}
	var out []models.Plant
	err := c.do(ctx, c.resource, call{method: http.MethodGet, endpoint: "plants", path: "plants", query: q, out: &out})
	return orEmpty(out, err)
}

// FeaturedPlants lists plants from all users; limit <= 0 uses the server default.
func (c *HTTPClient) FeaturedPlants(ctx context.Context, limit int) ([]models.Plant, error) {
	q := url.Values{}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	var out []models.Plant
	err := c.do(ctx, c.resource, call{method: http.MethodGet, endpoint: "plants/featured", path: "plants/featured", query: q, out: &out})
	return orEmpty(out, err)
}

func (c *HTTPClient) Plant(ctx context.Context, id string) (*models.Plant, error) {
	var out models.Plant
	if err := c.do(ctx, c.resource, call{method: http.MethodGet, endpoint: "plants/{id}", path: "plants/" + url.PathEscape(id), out: &out}); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) CreatePlant(ctx context.Context, req models.CreatePlantRequest) (*models.Plant, error) {
	var out models.Plant
	if err := c.do(ctx, c.resource, call{method: http.MethodPost, endpoint: "plants", path: "plants", in: req, out: &out}); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) UpdatePlant(ctx context.Context, id string, req models.UpdatePlantRequest) (*models.Plant, error) {
	var out models.Plant
	if err := c.do(ctx, c.resource, call{method: http.MethodPatch, endpoint: "plants/{id}", path: "plants/" + url.PathEscape(id), in: req, out: &out}); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) DeletePlant(ctx context.Context, id string) (*models.DeleteResponse, error) {
	var out models.DeleteResponse
	if err := c.do(ctx, c.resource, call{method: http.MethodDelete, endpoint: "plants/{id}", path: "plants/" + url.PathEscape(id), out: &out}); err != nil {
		return nil, err
	}
	return &out, nil
}

// Posts returns the community feed, newest first.
func (c *HTTPClient) Posts(ctx context.Context) ([]models.Post, error) {
	var out []models.Post
	err := c.do(ctx, c.resource, call{method: http.MethodGet, endpoint: "posts", path: "posts", out: &out})
	return orEmpty(out, err)
}

func (c *HTTPClient) Post(ctx context.Context, id string) (*models.Post, error) {
	var out models.Post
	if err := c.do(ctx, c.resource, call{method: http.MethodGet, endpoint: "posts/{id}", path: "posts/" + url.PathEscape(id), out: &out}); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) CreatePost(ctx context.Context, req models.CreatePostRequest) (*models.Post, error) {
	var out models.Post
	if err := c.do(ctx, c.resource, call{method: http.MethodPost, endpoint: "posts", path: "posts", in: req, out: &out}); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) UpdatePost(ctx context.Context, id string, req models.UpdatePostRequest) (*models.Post, error) {
	var out models.Post
	if err := c.do(ctx, c.resource, call{method: http.MethodPatch, endpoint: "posts/{id}", path: "posts/" + url.PathEscape(id), in: req, out: &out}); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) DeletePost(ctx context.Context, id string) (*models.DeleteResponse, error) {
	var out models.DeleteResponse
	if err := c.do(ctx, c.resource, call{method: http.MethodDelete, endpoint: "posts/{id}", path: "posts/" + url.PathEscape(id), out: &out}); err != nil {
		return nil, err
	}
	return &out, nil
}

// orEmpty treats an empty list body as an empty list rather than an error.
func orEmpty[T any](items []T, err error) ([]T, error) {
	if err != nil {
		if errors.Is(err, ErrEmptyResponse) {
			return []T{}, nil
		}
		return nil, err
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}
