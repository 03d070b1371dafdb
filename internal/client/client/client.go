package client

import (
	"context"

	"github.com/dmitrijs2005/rootshare/internal/client/models"
)

// Client is the auth half of the backend API. Bearer-protected calls take
// the token explicitly because refresh and logout use different ones.
type Client interface {
	Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error)
	Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error)
	GoogleAuth(ctx context.Context, req models.GoogleTokenRequest) (*models.AuthResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (*models.AuthTokens, error)
	Logout(ctx context.Context, accessToken string) error
	CurrentUser(ctx context.Context, accessToken string) (*models.User, error)
}

// ResourceClient covers plants and posts. The bearer token comes from the
// configured oauth2.TokenSource.
type ResourceClient interface {
	Plants(ctx context.Context, status models.PlantStatus) ([]models.Plant, error)
	FeaturedPlants(ctx context.Context, limit int) ([]models.Plant, error)
	Plant(ctx context.Context, id string) (*models.Plant, error)
	CreatePlant(ctx context.Context, req models.CreatePlantRequest) (*models.Plant, error)
	UpdatePlant(ctx context.Context, id string, req models.UpdatePlantRequest) (*models.Plant, error)
	DeletePlant(ctx context.Context, id string) (*models.DeleteResponse, error)

	Posts(ctx context.Context) ([]models.Post, error)
	Post(ctx context.Context, id string) (*models.Post, error)
	CreatePost(ctx context.Context, req models.CreatePostRequest) (*models.Post, error)
	UpdatePost(ctx context.Context, id string, req models.UpdatePostRequest) (*models.Post, error)
	DeletePost(ctx context.Context, id string) (*models.DeleteResponse, error)
}
