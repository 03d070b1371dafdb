package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/rootshare/internal/client/client"
	"github.com/dmitrijs2005/rootshare/internal/client/models"
	"golang.org/x/sync/errgroup"
)

// PlantService wraps the plant endpoints. The bearer token is supplied by
// the resource client's token source.
type PlantService interface {
	List(ctx context.Context, status models.PlantStatus) ([]models.Plant, error)
	Featured(ctx context.Context, limit int) ([]models.Plant, error)
	Get(ctx context.Context, id string) (*models.Plant, error)
	Create(ctx context.Context, req models.CreatePlantRequest) (*models.Plant, error)
	Update(ctx context.Context, id string, req models.UpdatePlantRequest) (*models.Plant, error)
	Delete(ctx context.Context, id string) error
}

// PostService wraps the community feed endpoints.
type PostService interface {
	List(ctx context.Context) ([]models.Post, error)
	Get(ctx context.Context, id string) (*models.Post, error)
	Create(ctx context.Context, req models.CreatePostRequest) (*models.Post, error)
	Update(ctx context.Context, id string, req models.UpdatePostRequest) (*models.Post, error)
	Delete(ctx context.Context, id string) error
}

type plantService struct {
	client client.ResourceClient
}

func NewPlantService(c client.ResourceClient) PlantService {
	return &plantService{client: c}
}

type postService struct {
	client client.ResourceClient
}

func NewPostService(c client.ResourceClient) PostService {
	return &postService{client: c}
}

// resourceFailure prefixes err with what was attempted. A missing token is
// reported as ErrNotAuthenticated.
func resourceFailure(what string, err error) error {
	if errors.Is(err, client.ErrNoAccessToken) {
		return ErrNotAuthenticated
	}
	if client.StatusCode(err) == 0 && !errors.Is(err, client.ErrEmptyResponse) {
		return fmt.Errorf("%w: %w", ErrNetwork, err)
	}
	return fmt.Errorf("failed to %s: %w", what, err)
}

func (s *plantService) List(ctx context.Context, status models.PlantStatus) ([]models.Plant, error) {
	plants, err := s.client.Plants(ctx, status)
	if err != nil {
		return nil, resourceFailure("fetch plants", err)
	}
	return plants, nil
}

func (s *plantService) Featured(ctx context.Context, limit int) ([]models.Plant, error) {
	plants, err := s.client.FeaturedPlants(ctx, limit)
	if err != nil {
		return nil, resourceFailure("fetch featured plants", err)
	}
	return plants, nil
}

func (s *plantService) Get(ctx context.Context, id string) (*models.Plant, error) {
	p, err := s.client.Plant(ctx, id)
	if err != nil {
		return nil, resourceFailure("fetch plant", err)
	}
	return p, nil
}

func (s *plantService) Create(ctx context.Context, req models.CreatePlantRequest) (*models.Plant, error) {
	p, err := s.client.CreatePlant(ctx, req)
	if err != nil {
		return nil, resourceFailure("create plant", err)
	}
	return p, nil
}

func (s *plantService) Update(ctx context.Context, id string, req models.UpdatePlantRequest) (*models.Plant, error) {
	p, err := s.client.UpdatePlant(ctx, id, req)
	if err != nil {
		return nil, resourceFailure("update plant", err)
	}
	return p, nil
}

func (s *plantService) Delete(ctx context.Context, id string) error {
	if _, err := s.client.DeletePlant(ctx, id); err != nil && !errors.Is(err, client.ErrEmptyResponse) {
		return resourceFailure("delete plant", err)
	}
	return nil
}

func (s *postService) List(ctx context.Context) ([]models.Post, error) {
	posts, err := s.client.Posts(ctx)
	if err != nil {
		return nil, resourceFailure("fetch posts", err)
	}
	return posts, nil
}

func (s *postService) Get(ctx context.Context, id string) (*models.Post, error) {
	p, err := s.client.Post(ctx, id)
	if err != nil {
		return nil, resourceFailure("fetch post", err)
	}
	return p, nil
}

func (s *postService) Create(ctx context.Context, req models.CreatePostRequest) (*models.Post, error) {
	p, err := s.client.CreatePost(ctx, req)
	if err != nil {
		return nil, resourceFailure("create post", err)
	}
	return p, nil
}

func (s *postService) Update(ctx context.Context, id string, req models.UpdatePostRequest) (*models.Post, error) {
	p, err := s.client.UpdatePost(ctx, id, req)
	if err != nil {
		return nil, resourceFailure("update post", err)
	}
	return p, nil
}

func (s *postService) Delete(ctx context.Context, id string) error {
	if _, err := s.client.DeletePost(ctx, id); err != nil && !errors.Is(err, client.ErrEmptyResponse) {
		return resourceFailure("delete post", err)
	}
	return nil
}

// FeaturedLimit is how many plants the home screen shows.
const FeaturedLimit = 10

// Feed is what the home screen shows.
type Feed struct {
	Featured []models.Plant
	Posts    []models.Post
}

// LoadFeed fetches featured plants and posts concurrently. The first error
// cancels the other request.
func LoadFeed(ctx context.Context, plants PlantService, posts PostService) (*Feed, error) {
	var feed Feed
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		feed.Featured, err = plants.Featured(ctx, FeaturedLimit)
		return err
	})
	g.Go(func() error {
		var err error
		feed.Posts, err = posts.List(ctx)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &feed, nil
}
