package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/Adarsh8067/Recipe-Sharing-Platform/internal/models"
)

func TestSplitTags(t *testing.T) {
	assert.Equal(t, []string{"pasta", "quick"}, SplitTags("pasta, quick"))
	assert.Equal(t, []string{"one"}, SplitTags("one,, ,"))
	assert.Empty(t, SplitTags(""))
	assert.NotNil(t, SplitTags(""), "empty tags serialize as [] not null")
}

func TestParseNutrition(t *testing.T) {
	m := ParseNutrition([]byte(`{"calories": 420, "protein": "12g"}`))
	require.NotNil(t, m)
	assert.EqualValues(t, 420, m["calories"])

	assert.Nil(t, ParseNutrition(nil))
	assert.Nil(t, ParseNutrition([]byte("not json")))
	assert.Nil(t, ParseNutrition([]byte(`[1,2]`)), "non-object nutrition is treated as absent")
}

func TestImageURL(t *testing.T) {
	assert.Nil(t, ImageURL("http://localhost:8080", ""))

	u := ImageURL("http://localhost:8080/", "/uploads/recipes/a.jpg")
	require.NotNil(t, u)
	assert.Equal(t, "http://localhost:8080/uploads/recipes/a.jpg", *u)

	s3 := ImageURL("http://localhost:8080", "https://bucket.s3.amazonaws.com/recipe-images/a.png")
	require.NotNil(t, s3)
	assert.Equal(t, "https://bucket.s3.amazonaws.com/recipe-images/a.png", *s3, "absolute URLs pass through")
}

func TestFormatRecipe(t *testing.T) {
	cook := &models.User{
		ID:        3,
		Username:  "marco",
		FirstName: "Marco",
		LastName:  "Rossi",
		UserType:  "chef",
	}
	recipe := &models.Recipe{
		ID:              7,
		UserID:          3,
		Title:           "Carbonara",
		Description:     "The real one",
		Category:        "Main Course",
		DifficultyLevel: "Medium",
		Tags:            "pasta,roman",
		NutritionInfo:   datatypes.JSON([]byte(`{"calories": 600}`)),
		LikesCount:      4,
		CreatedAt:       time.Now(),
	}

	view := FormatRecipe(recipe, cook, "http://localhost:8080")
	assert.EqualValues(t, 7, view.ID)
	assert.Equal(t, "marco", view.Author.Username)
	assert.Equal(t, "Marco Rossi", view.Author.Name)
	assert.Equal(t, "chef", view.Author.Role)
	assert.Equal(t, []string{"pasta", "roman"}, view.Tags)
	assert.EqualValues(t, 600, view.NutritionInfo["calories"])
	assert.Equal(t, 4, view.Likes)
	assert.Nil(t, view.Image)
}

func TestNewPagination(t *testing.T) {
	p := NewPagination(2, 10, 25)
	assert.Equal(t, 3, p.TotalPages)
	assert.True(t, p.HasNext)
	assert.True(t, p.HasPrev)

	first := NewPagination(1, 10, 5)
	assert.Equal(t, 1, first.TotalPages)
	assert.False(t, first.HasNext)
	assert.False(t, first.HasPrev)

	empty := NewPagination(1, 10, 0)
	assert.Equal(t, 0, empty.TotalPages)
	assert.False(t, empty.HasNext)
}

func TestFormatUserFullName(t *testing.T) {
	u := &models.User{Username: "ada", FirstName: "Ada", LastName: "Lovelace", UserType: "user"}
	view := FormatUser(u)
	assert.Equal(t, "Ada Lovelace", view.Name)
	assert.Equal(t, "user", view.Role)
}
