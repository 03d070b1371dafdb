package cli

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/rootshare/internal/client/models"
	"github.com/stretchr/testify/require"
)

func registered(t *testing.T, app *App) {
	t.Helper()
	stubInputs(t, []string{"ann", "a@b.com"}, []string{"Abcdef12", "Abcdef12"})
	require.NoError(t, app.Register(context.Background()))
}

func TestFormatPlantAndPost(t *testing.T) {
	p := models.Plant{ID: "p1", Name: "Monstera", Species: "Monstera deliciosa", Status: models.PlantStatusGifted}
	require.Equal(t, "p1  Monstera                Monstera deliciosa Plant [Gifted]", formatPlant(p))

	post := models.Post{Type: models.PostTypeSwap, Content: "trade #monstera", Plant: &p, LikesCount: 2}
	require.Equal(t, "[Swap] trade #monstera (Monstera) #monstera  likes:2 comments:0", formatPost(post))
}

func TestApp_PlantsPostsAndHome(t *testing.T) {
	ctx := context.Background()
	app, api := newTestApp(t)
	out := captureOutput(t)
	registered(t, app)

	stubInputs(t, []string{"Monstera", "Monstera deliciosa", ""}, nil)
	require.NoError(t, app.AddPlant(ctx))
	require.Contains(t, out.text(), "Added:")

	out.reset()
	require.NoError(t, app.Plants(ctx, nil))
	require.Contains(t, out.text(), "Monstera deliciosa Plant [Active]")

	out.reset()
	require.NoError(t, app.Plants(ctx, []string{"dead"}))
	require.Equal(t, "No plants yet. Add one with 'addplant'.", out.text())

	list, err := app.plants.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, list, 1)

	stubInputs(t, []string{"swap", list[0].ID, "Cutting for trade #monstera"}, nil)
	require.NoError(t, app.AddPost(ctx))

	out.reset()
	require.NoError(t, app.Posts(ctx))
	require.Contains(t, out.text(), "[Swap] Cutting for trade #monstera (Monstera) #monstera")

	out.reset()
	require.NoError(t, app.Home(ctx))
	text := out.text()
	require.Contains(t, text, "Featured plants:")
	require.Contains(t, text, "Monstera deliciosa Plant")
	require.Contains(t, text, "Community:")
	require.Contains(t, text, "[Swap]")
	require.Equal(t, 1, api.Calls("plants/featured"))

	out.reset()
	require.NoError(t, app.Stats(ctx))
	require.Contains(t, out.text(), "rootshare_client_api_requests_total{code=201,endpoint=plants} 1")
	require.Contains(t, out.text(), "rootshare_client_api_requests_total{code=201,endpoint=auth/register} 1")
}

func TestApp_Plants_BadStatus(t *testing.T) {
	app, api := newTestApp(t)
	out := captureOutput(t)

	require.NoError(t, app.Plants(context.Background(), []string{"wilting"}))
	require.Equal(t, "Usage: plants [active|dead|gifted]", out.text())
	require.Zero(t, api.TotalCalls())
}

func TestApp_AddPost_Rejected(t *testing.T) {
	ctx := context.Background()
	app, api := newTestApp(t)
	out := captureOutput(t)
	registered(t, app)
	out.reset()

	stubInputs(t, []string{"rant"}, nil)
	require.NoError(t, app.AddPost(ctx))
	require.Equal(t, "Unknown post type: rant", out.text())

	out.reset()
	stubInputs(t, []string{"", "", ""}, nil)
	require.NoError(t, app.AddPost(ctx))
	require.Equal(t, "Post text is required.", out.text())

	require.Zero(t, api.Calls("posts"))
}

func TestApp_ResourcesWithoutSession(t *testing.T) {
	ctx := context.Background()
	app, api := newTestApp(t)
	out := captureOutput(t)

	require.Error(t, app.Home(ctx))
	require.Contains(t, out.text(), "Error: Not authenticated")
	require.Zero(t, api.TotalCalls())
}

func TestApp_StatsEmpty(t *testing.T) {
	app, _ := newTestApp(t)
	out := captureOutput(t)

	require.NoError(t, app.Stats(context.Background()))
	require.Equal(t, "No requests yet.", out.text())
}
