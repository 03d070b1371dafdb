package models

import "regexp"

type PostType string

const (
	PostTypeUpdate   PostType = "update"
	PostTypeSwap     PostType = "swap"
	PostTypeGiveaway PostType = "giveaway"
)

func ParsePostType(s string) (PostType, bool) {
	switch pt := PostType(s); pt {
	case PostTypeUpdate, PostTypeSwap, PostTypeGiveaway:
		return pt, true
	}
	return "", false
}

// Post is a community feed item. The backend populates plantId with the
// full plant document.
type Post struct {
	ID            string   `json:"_id"`
	UserID        string   `json:"userId"`
	Plant         *Plant   `json:"plantId,omitempty"`
	Type          PostType `json:"type"`
	Content       string   `json:"content"`
	Images        []string `json:"images"`
	LikesCount    int      `json:"likesCount"`
	CommentsCount int      `json:"commentsCount"`
	CreatedAt     string   `json:"createdAt"`
	UpdatedAt     string   `json:"updatedAt"`
}

var hashtagRe = regexp.MustCompile(`#\w+`)

// Tags returns the hashtags found in the post content, in order.
func (p Post) Tags() []string {
	return hashtagRe.FindAllString(p.Content, -1)
}

func (p Post) TypeBadge() string {
	switch p.Type {
	case PostTypeSwap:
		return "Swap"
	case PostTypeGiveaway:
		return "Giveaway"
	default:
		return "Update"
	}
}

type CreatePostRequest struct {
	PlantID *string  `json:"plantId,omitempty"`
	Type    PostType `json:"type"`
	Content string   `json:"content"`
	Images  []string `json:"images,omitempty"`
}

type UpdatePostRequest struct {
	PlantID *string   `json:"plantId,omitempty"`
	Type    *PostType `json:"type,omitempty"`
	Content *string   `json:"content,omitempty"`
	Images  []string  `json:"images,omitempty"`
}
