package main

import (
	"context"
	"log"
	"strings"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Adarsh8067/Recipe-Sharing-Platform/config"
	"github.com/Adarsh8067/Recipe-Sharing-Platform/internal/database"
	"github.com/Adarsh8067/Recipe-Sharing-Platform/internal/models"
	"github.com/Adarsh8067/Recipe-Sharing-Platform/internal/service"
	"github.com/Adarsh8067/Recipe-Sharing-Platform/internal/types"
)

type seedUser struct {
	username  string
	email     string
	firstName string
	lastName  string
	userType  string
	bio       string
}

var seedUsers = []seedUser{
	{"marcellini", "marco@example.com", "Marco", "Rossi", "chef", "Northern Italian cooking, thirty years at the stove."},
	{"sofiabakes", "sofia@example.com", "Sofia", "Alvarez", "chef", "Pastry chef with a weakness for citrus."},
	{"home_cook_dan", "dan@example.com", "Dan", "Mitchell", "user", "Weeknight dinners for a family of five."},
}

var seedRecipes = []types.RecipeInput{
	{
		Title:       "Classic Basil Pesto Pasta",
		Description: "Genovese pesto made by hand, tossed with trofie and a splash of pasta water.",
		Category:    "Main Course",
		Cuisine:     "Italian",
		Difficulty:  "Easy",
		Tags:        "pasta,vegetarian,quick",
		Ingredients: []types.IngredientInput{
			{Name: "Fresh basil", Quantity: "2", Unit: "cups"},
			{Name: "Pine nuts", Quantity: "3", Unit: "tbsp"},
			{Name: "Parmigiano Reggiano", Quantity: "50", Unit: "g"},
			{Name: "Trofie pasta", Quantity: "400", Unit: "g"},
		},
		Instructions: []types.InstructionInput{
			{Text: "Toast the pine nuts in a dry pan until golden."},
			{Text: "Pound basil, nuts, garlic and cheese into a rough paste."},
			{Text: "Cook the pasta, reserve a cup of water, and toss everything together."},
		},
	},
	{
		Title:       "Lemon Olive Oil Cake",
		Description: "A dense, fragrant cake that keeps for days and only improves.",
		Category:    "Dessert",
		Cuisine:     "Mediterranean",
		Difficulty:  "Medium",
		Tags:        "cake,baking,citrus",
		Ingredients: []types.IngredientInput{
			{Name: "Olive oil", Quantity: "150", Unit: "ml"},
			{Name: "Lemons", Quantity: "2", Notes: "zest and juice"},
			{Name: "Flour", Quantity: "250", Unit: "g"},
			{Name: "Sugar", Quantity: "200", Unit: "g"},
		},
		Instructions: []types.InstructionInput{
			{Text: "Whisk oil, sugar, eggs and lemon until pale."},
			{Text: "Fold in flour and bake at 170C for 45 minutes."},
		},
	},
	{
		Title:       "Weeknight Chickpea Curry",
		Description: "Pantry curry that goes from cupboard to table in half an hour.",
		Category:    "Main Course",
		Cuisine:     "Indian",
		Difficulty:  "Easy",
		Tags:        "vegan,curry,budget",
		Ingredients: []types.IngredientInput{
			{Name: "Chickpeas", Quantity: "2", Unit: "cans"},
			{Name: "Coconut milk", Quantity: "400", Unit: "ml"},
			{Name: "Curry powder", Quantity: "2", Unit: "tbsp"},
		},
		Instructions: []types.InstructionInput{
			{Text: "Soften onion and garlic, bloom the curry powder."},
			{Text: "Add chickpeas and coconut milk, simmer for twenty minutes."},
		},
	},
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash seed password: %v", err)
	}

	users := make([]models.User, 0, len(seedUsers))
	for _, su := range seedUsers {
		var user models.User
		err := db.Where("username = ?", su.username).First(&user).Error
		if err == nil {
			log.Printf("User %s already seeded, skipping", su.username)
			users = append(users, user)
			continue
		}
		if err != gorm.ErrRecordNotFound {
			log.Fatalf("Failed to look up user %s: %v", su.username, err)
		}

		user = models.User{
			Username:     su.username,
			Email:        su.email,
			PasswordHash: string(hashed),
			FirstName:    su.firstName,
			LastName:     su.lastName,
			UserType:     su.userType,
			Bio:          su.bio,
			IsVerified:   su.userType == "chef",
		}
		if err := db.Create(&user).Error; err != nil {
			log.Fatalf("Failed to seed user %s: %v", su.username, err)
		}
		log.Printf("Seeded user %s", su.username)
		users = append(users, user)
	}

	recipes := service.NewRecipeService(db, nil)
	for i := range seedRecipes {
		input := &seedRecipes[i]
		owner := users[i%len(users)]

		var existing models.Recipe
		if err := db.Where("title = ? AND user_id = ?", input.Title, owner.ID).First(&existing).Error; err == nil {
			log.Printf("Recipe %q already seeded, skipping", input.Title)
			continue
		}

		recipe, err := recipes.Create(context.Background(), owner.ID, input, "")
		if err != nil {
			log.Fatalf("Failed to seed recipe %q: %v", input.Title, err)
		}
		log.Printf("Seeded recipe %d: %s (by %s, tags %s)",
			recipe.ID, recipe.Title, owner.Username, strings.ReplaceAll(recipe.Tags, ",", ", "))
	}

	log.Println("Seeding complete")
}
