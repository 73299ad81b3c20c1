package handlers

import (
	_ "embed"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/freshplate/freshplate-backend/internal/middleware"
	"github.com/freshplate/freshplate-backend/internal/models"
	"github.com/freshplate/freshplate-backend/internal/services"
	"github.com/freshplate/freshplate-backend/internal/store"
)

// AdminCreator is the canonical creator value recipes are reassigned to when a
// departing user chooses to transfer them. Existing data from older
// deployments may still contain the lowercase spelling.
const AdminCreator = "Admin"

// maxRecipeFormSize caps a recipe submission including its image.
const maxRecipeFormSize = 20 << 20 // 20MB

//go:embed assets/default_recipe.png
var defaultRecipeImage []byte

// isOwner is the single authorization predicate for recipe mutation. Ownership
// is compared by creator name, which is why user renames must cascade through
// UpdateCreator.
func isOwner(identity *services.Identity, recipe *models.Recipe) bool {
	return identity != nil && identity.Name == recipe.Creator
}

// loadRecipe resolves the {recipeId} route param to a stored recipe, writing
// the error response itself when the lookup fails.
func loadRecipe(w http.ResponseWriter, r *http.Request) *models.Recipe {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "recipeId"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Recipe not found")
		return nil
	}

	ctx, cancel := storeCtx(r.Context())
	defer cancel()

	recipe, err := recipeStore.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusBadRequest, "Recipe not found")
		} else {
			writeError(w, http.StatusBadRequest, "Could not retrieve recipe")
		}
		return nil
	}
	return recipe
}

// setNumericField applies a submitted numeric form value to an optional field.
// The literal "null" clears the field; anything else must parse as a number.
func setNumericField(dst **int, value string) error {
	if value == "null" || value == "" {
		*dst = nil
		return nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return err
	}
	*dst = &n
	return nil
}

// formImage extracts an uploaded "image" file from a parsed multipart form.
// Returns nil when no image was submitted.
func formImage(r *http.Request) (*models.RecipeImage, error) {
	if r.MultipartForm == nil {
		return nil, nil
	}
	headers := r.MultipartForm.File["image"]
	if len(headers) == 0 {
		return nil, nil
	}

	file, err := headers[0].Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}

	contentType := headers[0].Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}
	return &models.RecipeImage{Data: data, ContentType: contentType}, nil
}

// CreateRecipe stores a new recipe from a multipart form. The creator is
// always the authenticated caller, regardless of any submitted creator field.
func CreateRecipe(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFrom(r.Context())

	if err := r.ParseMultipartForm(maxRecipeFormSize); err != nil {
		writeError(w, http.StatusBadRequest, "Image could not be uploaded")
		return
	}

	now := time.Now()
	recipe := models.Recipe{
		Title:        strings.TrimSpace(r.FormValue("title")),
		Ingredients:  strings.TrimSpace(r.FormValue("ingredients")),
		Instructions: strings.TrimSpace(r.FormValue("instructions")),
		Creator:      identity.Name,
		Created:      now,
		Updated:      now,
	}
	if recipe.Title == "" {
		writeError(w, http.StatusBadRequest, "Title is required")
		return
	}
	if recipe.Ingredients == "" {
		writeError(w, http.StatusBadRequest, "At least one ingredient is required")
		return
	}
	if recipe.Instructions == "" {
		writeError(w, http.StatusBadRequest, "Instructions are required")
		return
	}

	for _, field := range []struct {
		name string
		dst  **int
	}{
		{"preptime", &recipe.Preptime},
		{"cooktime", &recipe.Cooktime},
		{"servings", &recipe.Servings},
	} {
		if err := setNumericField(field.dst, r.FormValue(field.name)); err != nil {
			writeError(w, http.StatusBadRequest, field.name+" must be a number")
			return
		}
	}

	image, err := formImage(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Image could not be uploaded")
		return
	}
	if image != nil {
		recipe.Image = *image
	}

	ctx, cancel := storeCtx(r.Context())
	defer cancel()

	if err := recipeStore.Insert(ctx, &recipe); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save recipe")
		return
	}

	writeJSON(w, http.StatusCreated, recipe)
}

// ListRecipes returns every recipe. No auth, no filtering, no pagination;
// ordering is store-default and the client re-sorts as it sees fit.
func ListRecipes(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := storeCtx(r.Context())
	defer cancel()

	recipes, err := recipeStore.FindAll(ctx)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Could not retrieve recipes")
		return
	}
	writeJSON(w, http.StatusOK, recipes)
}

// ReadRecipe returns one recipe to any authenticated caller.
func ReadRecipe(w http.ResponseWriter, r *http.Request) {
	recipe := loadRecipe(w, r)
	if recipe == nil {
		return
	}
	writeJSON(w, http.StatusOK, recipe)
}

// UpdateRecipe applies a partial multipart update to an owned recipe. Fields
// absent from the form keep their prior values; a new image replaces the old
// one only when supplied. Concurrent updates are last-write-wins.
func UpdateRecipe(w http.ResponseWriter, r *http.Request) {
	recipe := loadRecipe(w, r)
	if recipe == nil {
		return
	}
	identity := middleware.IdentityFrom(r.Context())
	if !isOwner(identity, recipe) {
		writeError(w, http.StatusForbidden, "User is not authorized to update this recipe")
		return
	}

	if err := r.ParseMultipartForm(maxRecipeFormSize); err != nil {
		writeError(w, http.StatusBadRequest, "Image could not be uploaded")
		return
	}

	for key, values := range r.MultipartForm.Value {
		if len(values) == 0 {
			continue
		}
		value := values[0]
		switch key {
		case "title":
			recipe.Title = strings.TrimSpace(value)
		case "ingredients":
			recipe.Ingredients = strings.TrimSpace(value)
		case "instructions":
			recipe.Instructions = strings.TrimSpace(value)
		case "creator":
			// An owner may hand the recipe over directly; non-owners never
			// reach this point.
			recipe.Creator = strings.TrimSpace(value)
		case "preptime":
			if err := setNumericField(&recipe.Preptime, value); err != nil {
				writeError(w, http.StatusBadRequest, "preptime must be a number")
				return
			}
		case "cooktime":
			if err := setNumericField(&recipe.Cooktime, value); err != nil {
				writeError(w, http.StatusBadRequest, "cooktime must be a number")
				return
			}
		case "servings":
			if err := setNumericField(&recipe.Servings, value); err != nil {
				writeError(w, http.StatusBadRequest, "servings must be a number")
				return
			}
		}
	}

	if recipe.Title == "" {
		writeError(w, http.StatusBadRequest, "Title is required")
		return
	}
	if recipe.Ingredients == "" {
		writeError(w, http.StatusBadRequest, "At least one ingredient is required")
		return
	}
	if recipe.Instructions == "" {
		writeError(w, http.StatusBadRequest, "Instructions are required")
		return
	}

	image, err := formImage(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Image could not be uploaded")
		return
	}
	if image != nil {
		recipe.Image = *image
	}

	recipe.Updated = time.Now()

	ctx, cancel := storeCtx(r.Context())
	defer cancel()

	if err := recipeStore.Replace(ctx, recipe); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save recipe")
		return
	}

	writeJSON(w, http.StatusOK, recipe)
}

// DeleteRecipe permanently removes an owned recipe.
func DeleteRecipe(w http.ResponseWriter, r *http.Request) {
	recipe := loadRecipe(w, r)
	if recipe == nil {
		return
	}
	identity := middleware.IdentityFrom(r.Context())
	if !isOwner(identity, recipe) {
		writeError(w, http.StatusForbidden, "User is not authorized to delete this recipe")
		return
	}

	ctx, cancel := storeCtx(r.Context())
	defer cancel()

	if err := recipeStore.Delete(ctx, recipe.ID); err != nil {
		writeError(w, http.StatusBadRequest, "Failed to delete recipe")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Recipe deleted successfully"})
}

// RecipePhoto serves the stored image bytes with their content type, falling
// back to the bundled default image when the recipe has none.
func RecipePhoto(w http.ResponseWriter, r *http.Request) {
	recipe := loadRecipe(w, r)
	if recipe == nil {
		return
	}
	if recipe.HasImage() {
		w.Header().Set("Content-Type", recipe.Image.ContentType)
		w.Write(recipe.Image.Data)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Write(defaultRecipeImage)
}

type UpdateCreatorRequest struct {
	OldName string `json:"oldName"`
	NewName string `json:"newName"`
}

// UpdateCreator bulk-reassigns every recipe owned by oldName to newName. This
// is the rename cascade: it must run as part of a user rename flow because
// recipes reference their owner by name only. Zero matches is reported as 404
// but callers treat it as non-fatal; a user with no recipes is valid.
func UpdateCreator(w http.ResponseWriter, r *http.Request) {
	var req UpdateCreatorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"success": false,
			"message": "Invalid request body",
		})
		return
	}
	if req.OldName == "" || req.NewName == "" {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"success": false,
			"message": "Both oldName and newName are required",
		})
		return
	}

	ctx, cancel := storeCtx(r.Context())
	defer cancel()

	matched, modified, err := recipeStore.UpdateCreator(ctx, req.OldName, req.NewName)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"success": false,
			"message": "Could not update recipe creators",
		})
		return
	}
	if matched == 0 {
		writeJSON(w, http.StatusNotFound, map[string]interface{}{
			"success": false,
			"message": "No recipes found with the old creator name",
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":       true,
		"message":       "Recipe creators updated successfully",
		"matchedCount":  matched,
		"modifiedCount": modified,
	})
}

// DeleteUserRecipes removes every recipe owned by the named user. Used when an
// account is deleted and the user chose to delete their recipes. Zero matches
// is not an error.
func DeleteUserRecipes(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	ctx, cancel := storeCtx(r.Context())
	defer cancel()

	deleted, err := recipeStore.DeleteByCreator(ctx, name)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Could not delete user recipes")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message":      "User recipes deleted successfully",
		"deletedCount": deleted,
	})
}

// TransferRecipesToAdmin reassigns every recipe owned by the named user to the
// canonical admin creator. Used when an account is deleted and the user chose
// to keep their recipes on the site.
func TransferRecipesToAdmin(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	ctx, cancel := storeCtx(r.Context())
	defer cancel()

	_, modified, err := recipeStore.UpdateCreator(ctx, name, AdminCreator)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Could not transfer recipes")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message":       "Recipes transferred to admin successfully",
		"modifiedCount": modified,
	})
}
