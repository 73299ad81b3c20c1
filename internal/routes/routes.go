package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/freshplate/freshplate-backend/internal/config"
	"github.com/freshplate/freshplate-backend/internal/handlers"
	"github.com/freshplate/freshplate-backend/internal/middleware"
)

func SetupRoutes(r *chi.Mux, cfg *config.Config) {
	requireSignin := middleware.RequireSignin(cfg.JWTSecret)

	// Recipe routes. The static segments (updateCreator, user, transfer) are
	// registered alongside {recipeId}; chi matches them first.
	r.Route("/api/recipes", func(r chi.Router) {
		r.Get("/", handlers.ListRecipes)
		r.With(requireSignin).Post("/", handlers.CreateRecipe)
		r.With(requireSignin).Put("/updateCreator", handlers.UpdateCreator)
		r.With(requireSignin).Delete("/user/{name}", handlers.DeleteUserRecipes)
		r.With(requireSignin).Put("/transfer/{name}", handlers.TransferRecipesToAdmin)
		r.Get("/{recipeId}/photo", handlers.RecipePhoto)
		r.With(requireSignin).Get("/{recipeId}", handlers.ReadRecipe)
		r.With(requireSignin).Put("/{recipeId}", handlers.UpdateRecipe)
		r.With(requireSignin).Delete("/{recipeId}", handlers.DeleteRecipe)
	})

	// User routes
	r.Post("/api/users", handlers.Signup)
	r.With(requireSignin).Get("/api/users/{userId}", handlers.ReadUser)
	r.With(requireSignin).Put("/api/users/{userId}", handlers.UpdateUser)
	r.With(requireSignin).Delete("/api/users/{userId}", handlers.DeleteUser)

	// Auth routes
	r.Post("/auth/signin", handlers.Signin)
	r.Get("/auth/signout", handlers.Signout)

	// Contact us routes
	r.Post("/api/contacts", handlers.SubmitContact)
	r.With(requireSignin).Get("/api/contacts", handlers.GetContacts)
}
