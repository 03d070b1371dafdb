package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/rootshare/internal/client/models"
	"github.com/dmitrijs2005/rootshare/internal/client/services"
)

func formatPlant(p models.Plant) string {
	return fmt.Sprintf("%s  %-23s %-24s [%s]", p.ID, p.DisplayTitle(), p.DisplayCategory(), p.Badge())
}

func formatPost(p models.Post) string {
	s := fmt.Sprintf("[%s] %s", p.TypeBadge(), p.Content)
	if p.Plant != nil {
		s += fmt.Sprintf(" (%s)", p.Plant.DisplayTitle())
	}
	if tags := p.Tags(); len(tags) > 0 {
		s += " " + strings.Join(tags, " ")
	}
	return s + fmt.Sprintf("  likes:%d comments:%d", p.LikesCount, p.CommentsCount)
}

// Home prints the featured plants and the community feed.
func (a *App) Home(ctx context.Context) error {
	feed, err := services.LoadFeed(ctx, a.plants, a.posts)
	if err != nil {
		return a.fail(ctx, "load feed", err)
	}

	printlnFn("Featured plants:")
	if len(feed.Featured) == 0 {
		printlnFn("  (none)")
	}
	for _, p := range feed.Featured {
		printlnFn(" ", formatPlant(p))
	}

	printlnFn("Community:")
	if len(feed.Posts) == 0 {
		printlnFn("  (no posts yet)")
	}
	for _, p := range feed.Posts {
		printlnFn(" ", formatPost(p))
	}
	return nil
}

// Plants lists the user's plants, optionally filtered by status.
func (a *App) Plants(ctx context.Context, args []string) error {
	var status models.PlantStatus
	if len(args) > 0 {
		st, ok := models.ParsePlantStatus(args[0])
		if !ok {
			printlnFn("Usage: plants [active|dead|gifted]")
			return nil
		}
		status = st
	}

	list, err := a.plants.List(ctx, status)
	if err != nil {
		return a.fail(ctx, "list plants", err)
	}
	if len(list) == 0 {
		printlnFn("No plants yet. Add one with 'addplant'.")
	}
	for _, p := range list {
		printlnFn(formatPlant(p))
	}
	return nil
}

func (a *App) AddPlant(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Plant name", a.out)
	if err != nil {
		return err
	}
	species, err := getSimpleText(a.reader, "Species", a.out)
	if err != nil {
		return err
	}
	image, err := getSimpleText(a.reader, "Image URL (optional)", a.out)
	if err != nil {
		return err
	}

	p, err := a.plants.Create(ctx, models.CreatePlantRequest{Name: name, Species: species, ImageURL: image})
	if err != nil {
		return a.fail(ctx, "create plant", err)
	}
	printlnFn("Added:", formatPlant(*p))
	return nil
}

func (a *App) Posts(ctx context.Context) error {
	list, err := a.posts.List(ctx)
	if err != nil {
		return a.fail(ctx, "list posts", err)
	}
	if len(list) == 0 {
		printlnFn("No posts yet.")
	}
	for _, p := range list {
		printlnFn(formatPost(p))
	}
	return nil
}

// AddPost asks for the post type, an optional plant and the text.
func (a *App) AddPost(ctx context.Context) error {
	typ, err := getSimpleText(a.reader, "Type (update, swap, giveaway) [update]", a.out)
	if err != nil {
		return err
	}
	pt := models.PostTypeUpdate
	if typ != "" {
		var ok bool
		if pt, ok = models.ParsePostType(typ); !ok {
			printlnFn("Unknown post type:", typ)
			return nil
		}
	}

	plantID, err := getSimpleText(a.reader, "Plant ID (optional)", a.out)
	if err != nil {
		return err
	}
	content, err := getMultiline(a.reader, "Text", a.out)
	if err != nil {
		return err
	}
	if content == "" {
		printlnFn("Post text is required.")
		return nil
	}

	req := models.CreatePostRequest{Type: pt, Content: content}
	if plantID != "" {
		req.PlantID = &plantID
	}
	p, err := a.posts.Create(ctx, req)
	if err != nil {
		return a.fail(ctx, "create post", err)
	}
	printlnFn("Posted:", formatPost(*p))
	return nil
}

// Stats prints the API call counters recorded in this session.
func (a *App) Stats(ctx context.Context) error {
	samples, err := a.metrics.Counters()
	if err != nil {
		return a.fail(ctx, "metrics", err)
	}
	if len(samples) == 0 {
		printlnFn("No requests yet.")
	}
	for _, s := range samples {
		printlnFn(fmt.Sprintf("%s{%s} %g", s.Name, s.Labels, s.Value))
	}
	return nil
}
