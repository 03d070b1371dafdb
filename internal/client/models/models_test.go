package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUser_DecodesBackendDocument(t *testing.T) {
	raw := `{"_id":"u1","email":"a@b.com","username":"alice","role":"admin","authProvider":"google",
		"createdAt":"2024-01-01T00:00:00Z","updatedAt":"2024-01-02T00:00:00Z"}`

	var u User
	require.NoError(t, json.Unmarshal([]byte(raw), &u))

	assert.Equal(t, "u1", u.ID)
	assert.Nil(t, u.ProfileImageURL)
	assert.True(t, u.IsAdmin())
	assert.Equal(t, AuthProviderGoogle, u.AuthProvider)
}

func TestPlant_DisplayHelpers(t *testing.T) {
	p := Plant{Name: "Monstera deliciosa variegata", Species: "Monstera", Status: PlantStatusGifted}

	assert.Equal(t, "Monstera deliciosa v...", p.DisplayTitle())
	assert.Equal(t, "Monstera Plant", p.DisplayCategory())
	assert.Equal(t, "Gifted", p.Badge())

	short := Plant{Name: "Fern"}
	assert.Equal(t, "Fern", short.DisplayTitle())
	assert.Equal(t, "Active", short.Badge())
}

func TestPost_TagsAndBadge(t *testing.T) {
	p := Post{Content: "New leaf! #monstera #plantlife", Type: PostTypeGiveaway}
	assert.Equal(t, []string{"#monstera", "#plantlife"}, p.Tags())
	assert.Equal(t, "Giveaway", p.TypeBadge())

	assert.Empty(t, Post{Content: "no tags"}.Tags())
	assert.Equal(t, "Update", Post{}.TypeBadge())
}

func TestPost_DecodesPopulatedPlant(t *testing.T) {
	raw := `{"_id":"p1","plantId":{"_id":"pl1","name":"Fern","status":"active"},"type":"swap","images":["a.jpg"]}`

	var p Post
	require.NoError(t, json.Unmarshal([]byte(raw), &p))
	require.NotNil(t, p.Plant)
	assert.Equal(t, "pl1", p.Plant.ID)
	assert.Equal(t, PostTypeSwap, p.Type)
}

func TestParseEnums(t *testing.T) {
	st, ok := ParsePlantStatus("dead")
	assert.True(t, ok)
	assert.Equal(t, PlantStatusDead, st)
	_, ok = ParsePlantStatus("wilted")
	assert.False(t, ok)

	pt, ok := ParsePostType("swap")
	assert.True(t, ok)
	assert.Equal(t, PostTypeSwap, pt)
	_, ok = ParsePostType("")
	assert.False(t, ok)
}

func TestUpdatePlantRequest_OmitsNilFields(t *testing.T) {
	name := "Fern"
	b, err := json.Marshal(UpdatePlantRequest{Name: &name})
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"Fern"}`, string(b))
}
