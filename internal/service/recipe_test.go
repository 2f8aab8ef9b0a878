package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Adarsh8067/Recipe-Sharing-Platform/internal/models"
	"github.com/Adarsh8067/Recipe-Sharing-Platform/internal/service"
	"github.com/Adarsh8067/Recipe-Sharing-Platform/internal/testhelpers"
	"github.com/Adarsh8067/Recipe-Sharing-Platform/internal/types"
)

func recipeInput(title string) *types.RecipeInput {
	return &types.RecipeInput{
		Title:       title,
		Description: "A description",
		Category:    "Main Course",
		Cuisine:     "Italian",
		Tags:        "pasta,quick",
		Ingredients: []types.IngredientInput{
			{Name: "Spaghetti", Quantity: "400", Unit: "g"},
			{Name: "Guanciale", Quantity: "150", Unit: "g"},
			{Name: "Pecorino", Quantity: "50", Unit: "g"},
		},
		Instructions: []types.InstructionInput{
			{Text: "Boil the pasta."},
			{Text: "Crisp the guanciale."},
			{Text: "Combine off the heat."},
		},
	}
}

func TestCreateRecipe(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	recipes := service.NewRecipeService(db, nil)
	user := testhelpers.CreateTestUser(t, db, "cook", "cook@example.com")
	ctx := context.Background()

	recipe, err := recipes.Create(ctx, user.ID, recipeInput("Carbonara"), "")
	require.NoError(t, err)
	assert.Equal(t, "Carbonara", recipe.Title)
	assert.Equal(t, "Medium", recipe.DifficultyLevel, "difficulty defaults when omitted")
	assert.True(t, recipe.IsPublished)

	var ingredients []models.Ingredient
	require.NoError(t, db.Where("recipe_id = ?", recipe.ID).Order("order_index").Find(&ingredients).Error)
	require.Len(t, ingredients, 3)
	assert.Equal(t, 1, ingredients[0].OrderIndex)
	assert.Equal(t, "Spaghetti", ingredients[0].Name)
	assert.Equal(t, 3, ingredients[2].OrderIndex)

	var instructions []models.Instruction
	require.NoError(t, db.Where("recipe_id = ?", recipe.ID).Order("step_number").Find(&instructions).Error)
	require.Len(t, instructions, 3)
	assert.Equal(t, 1, instructions[0].StepNumber)

	var owner models.User
	require.NoError(t, db.First(&owner, user.ID).Error)
	assert.Equal(t, 1, owner.RecipesCount, "create increments the author's counter")
}

func TestCreateRecipeRequiresFields(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	recipes := service.NewRecipeService(db, nil)
	user := testhelpers.CreateTestUser(t, db, "cook", "cook@example.com")

	input := recipeInput("")
	_, err := recipes.Create(context.Background(), user.ID, input, "")
	assert.ErrorIs(t, err, service.ErrMissingFields)

	var owner models.User
	require.NoError(t, db.First(&owner, user.ID).Error)
	assert.Zero(t, owner.RecipesCount, "failed create leaves the counter untouched")
}

func TestUpdateRecipeReplacesChildren(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	recipes := service.NewRecipeService(db, nil)
	user := testhelpers.CreateTestUser(t, db, "cook", "cook@example.com")
	ctx := context.Background()

	recipe, err := recipes.Create(ctx, user.ID, recipeInput("Carbonara"), "")
	require.NoError(t, err)

	next := recipeInput("Cacio e Pepe")
	next.Ingredients = []types.IngredientInput{
		{Name: "Tonnarelli", Quantity: "400", Unit: "g"},
		{Name: "Pecorino", Quantity: "120", Unit: "g"},
	}
	next.Instructions = []types.InstructionInput{
		{Text: "Toast the pepper."},
		{Text: "Emulsify cheese and pasta water."},
	}

	updated, _, err := recipes.Update(ctx, user.ID, recipe.ID, next, nil)
	require.NoError(t, err)
	assert.Equal(t, "Cacio e Pepe", updated.Title)

	var ingredients []models.Ingredient
	require.NoError(t, db.Where("recipe_id = ?", recipe.ID).Order("order_index").Find(&ingredients).Error)
	require.Len(t, ingredients, 2, "old rows are gone after the rewrite")
	assert.Equal(t, "Tonnarelli", ingredients[0].Name)
	assert.Equal(t, 1, ingredients[0].OrderIndex)
	assert.Equal(t, 2, ingredients[1].OrderIndex)
}

func TestCreateRecipeRollsBackOnChildFailure(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	recipes := service.NewRecipeService(db, nil)
	user := testhelpers.CreateTestUser(t, db, "cook", "cook@example.com")

	// Dropping the table makes the instruction insert fail after the
	// parent and ingredient rows were written in the same transaction.
	require.NoError(t, db.Migrator().DropTable(&models.Instruction{}))

	_, err := recipes.Create(context.Background(), user.ID, recipeInput("Carbonara"), "")
	require.Error(t, err)

	var recipeCount int64
	require.NoError(t, db.Model(&models.Recipe{}).Count(&recipeCount).Error)
	assert.Zero(t, recipeCount, "the parent row does not survive the rollback")

	var ingredientCount int64
	require.NoError(t, db.Model(&models.Ingredient{}).Count(&ingredientCount).Error)
	assert.Zero(t, ingredientCount)

	var owner models.User
	require.NoError(t, db.First(&owner, user.ID).Error)
	assert.Zero(t, owner.RecipesCount, "the counter is not bumped for a rolled back create")
}

func TestUpdateRecipeRollsBackOnChildFailure(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	recipes := service.NewRecipeService(db, nil)
	user := testhelpers.CreateTestUser(t, db, "cook", "cook@example.com")
	ctx := context.Background()

	recipe, err := recipes.Create(ctx, user.ID, recipeInput("Carbonara"), "")
	require.NoError(t, err)

	require.NoError(t, db.Migrator().DropTable(&models.Instruction{}))

	_, _, err = recipes.Update(ctx, user.ID, recipe.ID, recipeInput("Cacio e Pepe"), nil)
	require.Error(t, err)

	var stored models.Recipe
	require.NoError(t, db.First(&stored, recipe.ID).Error)
	assert.Equal(t, "Carbonara", stored.Title, "scalar changes are rolled back")

	var ingredients []models.Ingredient
	require.NoError(t, db.Where("recipe_id = ?", recipe.ID).Find(&ingredients).Error)
	assert.Len(t, ingredients, 3, "the original child rows survive")
}

func TestUpdateRecipeRejectsNonOwner(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	recipes := service.NewRecipeService(db, nil)
	owner := testhelpers.CreateTestUser(t, db, "owner", "owner@example.com")
	intruder := testhelpers.CreateTestUser(t, db, "intruder", "intruder@example.com")
	ctx := context.Background()

	recipe, err := recipes.Create(ctx, owner.ID, recipeInput("Carbonara"), "")
	require.NoError(t, err)

	_, _, err = recipes.Update(ctx, intruder.ID, recipe.ID, recipeInput("Stolen"), nil)
	assert.ErrorIs(t, err, service.ErrNotOwner)

	var unchanged models.Recipe
	require.NoError(t, db.First(&unchanged, recipe.ID).Error)
	assert.Equal(t, "Carbonara", unchanged.Title)
}

func TestDeleteRecipeRemovesEverything(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	recipes := service.NewRecipeService(db, nil)
	social := service.NewSocialService(db, nil)
	owner := testhelpers.CreateTestUser(t, db, "owner", "owner@example.com")
	fan := testhelpers.CreateTestUser(t, db, "fan", "fan@example.com")
	ctx := context.Background()

	recipe, err := recipes.Create(ctx, owner.ID, recipeInput("Carbonara"), "")
	require.NoError(t, err)

	_, err = social.ToggleLike(ctx, fan.ID, recipe.ID)
	require.NoError(t, err)
	_, err = social.AddComment(ctx, fan.ID, recipe.ID, &types.CommentRequest{Comment: "Lovely"})
	require.NoError(t, err)

	_, err = recipes.Delete(ctx, owner.ID, recipe.ID)
	require.NoError(t, err)

	for name, model := range map[string]interface{}{
		"ingredients":  &models.Ingredient{},
		"instructions": &models.Instruction{},
		"likes":        &models.Like{},
		"comments":     &models.Comment{},
	} {
		var n int64
		require.NoError(t, db.Model(model).Where("recipe_id = ?", recipe.ID).Count(&n).Error)
		assert.Zero(t, n, "leftover %s rows", name)
	}

	var ownerRow models.User
	require.NoError(t, db.First(&ownerRow, owner.ID).Error)
	assert.Zero(t, ownerRow.RecipesCount)

	_, err = recipes.GetByID(ctx, recipe.ID)
	assert.ErrorIs(t, err, service.ErrRecipeNotFound)
}

func TestDeleteRecipeRejectsNonOwner(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	recipes := service.NewRecipeService(db, nil)
	owner := testhelpers.CreateTestUser(t, db, "owner", "owner@example.com")
	intruder := testhelpers.CreateTestUser(t, db, "intruder", "intruder@example.com")
	ctx := context.Background()

	recipe, err := recipes.Create(ctx, owner.ID, recipeInput("Carbonara"), "")
	require.NoError(t, err)

	_, err = recipes.Delete(ctx, intruder.ID, recipe.ID)
	assert.ErrorIs(t, err, service.ErrNotOwner)
}

func TestGetByIDHidesUnpublished(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	recipes := service.NewRecipeService(db, nil)
	user := testhelpers.CreateTestUser(t, db, "cook", "cook@example.com")
	ctx := context.Background()

	recipe, err := recipes.Create(ctx, user.ID, recipeInput("Secret"), "")
	require.NoError(t, err)
	require.NoError(t, db.Model(&models.Recipe{}).Where("id = ?", recipe.ID).
		Update("is_published", false).Error)

	_, err = recipes.GetByID(ctx, recipe.ID)
	assert.ErrorIs(t, err, service.ErrRecipeNotFound)

	// The owner still sees it through the edit path.
	detail, err := recipes.GetForEdit(ctx, user.ID, recipe.ID)
	require.NoError(t, err)
	assert.Equal(t, "Secret", detail.Recipe.Title)
}

func TestGetByIDDetail(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	recipes := service.NewRecipeService(db, nil)
	social := service.NewSocialService(db, nil)
	user := testhelpers.CreateTestUser(t, db, "cook", "cook@example.com")
	ctx := context.Background()

	recipe, err := recipes.Create(ctx, user.ID, recipeInput("Carbonara"), "")
	require.NoError(t, err)
	_, err = social.AddComment(ctx, user.ID, recipe.ID, &types.CommentRequest{Comment: "First!"})
	require.NoError(t, err)

	detail, err := recipes.GetByID(ctx, recipe.ID)
	require.NoError(t, err)
	assert.Equal(t, "cook", detail.Author.Username)
	assert.Len(t, detail.Ingredients, 3)
	assert.Len(t, detail.Instructions, 3)
	assert.EqualValues(t, 1, detail.CommentsCount)
	require.Len(t, detail.Comments, 1)
	assert.Equal(t, "First!", detail.Comments[0].Comment.Text)
}

func TestListPagination(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	recipes := service.NewRecipeService(db, nil)
	user := testhelpers.CreateTestUser(t, db, "cook", "cook@example.com")
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		testhelpers.CreateTestRecipe(t, db, user.ID, "Recipe")
	}
	unpublished := testhelpers.CreateTestRecipe(t, db, user.ID, "Hidden")
	require.NoError(t, db.Model(&models.Recipe{}).Where("id = ?", unpublished.ID).
		Update("is_published", false).Error)

	page, err := recipes.List(ctx, 1, 2)
	require.NoError(t, err)
	assert.Len(t, page.Recipes, 2)
	assert.EqualValues(t, 5, page.Total, "unpublished recipes are excluded")
	assert.Equal(t, "cook", page.Recipes[0].Author.Username)

	last, err := recipes.List(ctx, 3, 2)
	require.NoError(t, err)
	assert.Len(t, last.Recipes, 1)

	mine, err := recipes.ListByUser(ctx, user.ID, 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 6, mine.Total, "owner listing includes unpublished")
}

func TestListSaved(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	recipes := service.NewRecipeService(db, nil)
	social := service.NewSocialService(db, nil)
	cook := testhelpers.CreateTestUser(t, db, "cook", "cook@example.com")
	reader := testhelpers.CreateTestUser(t, db, "reader", "reader@example.com")
	ctx := context.Background()

	first := testhelpers.CreateTestRecipe(t, db, cook.ID, "First")
	testhelpers.CreateTestRecipe(t, db, cook.ID, "Second")

	_, err := social.ToggleSave(ctx, reader.ID, first.ID)
	require.NoError(t, err)

	saved, err := recipes.ListSaved(ctx, reader.ID, 1, 10)
	require.NoError(t, err)
	require.Len(t, saved.Recipes, 1)
	assert.Equal(t, "First", saved.Recipes[0].Recipe.Title)
	assert.EqualValues(t, 1, saved.Total)
}
