// Package handler implements the HTTP handlers for the recipe API.
// All handlers are methods on Server. Methods are split into domain-specific
// files (recipe.go, user.go, etc.) but all share the same Server struct so
// they can access its dependencies.
package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dezz1er/foodgram-project-react/internal/domain"
	"github.com/dezz1er/foodgram-project-react/internal/middleware"
	"github.com/dezz1er/foodgram-project-react/internal/service"
	"github.com/dezz1er/foodgram-project-react/internal/validation"
)

// The servicer interfaces are defined here, in the consumer package, following
// the Go convention: "accept interfaces, return concrete types". They let
// handler tests inject mocks without touching the database or service layer.

// UserServicer defines the account operations the handlers depend on.
type UserServicer interface {
	Register(ctx context.Context, input service.RegisterInput) (domain.User, error)
	Login(ctx context.Context, email, password string) (string, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.User, error)
	ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.User, int64, error)
	SetPassword(ctx context.Context, userID uuid.UUID, current, next string) error
}

// RecipeServicer defines the recipe composition operations.
type RecipeServicer interface {
	Create(ctx context.Context, authorID uuid.UUID, input service.RecipeInput) (domain.Recipe, error)
	Update(ctx context.Context, userID, recipeID uuid.UUID, input service.RecipeInput) (domain.Recipe, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Recipe, error)
	ListPaged(ctx context.Context, f domain.RecipeFilter, p domain.PaginationParams) ([]domain.Recipe, int64, error)
	Delete(ctx context.Context, userID, recipeID uuid.UUID) error
}

// TagServicer defines the tag operations.
type TagServicer interface {
	GetByID(ctx context.Context, id uuid.UUID) (domain.Tag, error)
	List(ctx context.Context) ([]domain.Tag, error)
}

// IngredientServicer defines the ingredient catalog operations.
type IngredientServicer interface {
	GetByID(ctx context.Context, id uuid.UUID) (domain.Ingredient, error)
	List(ctx context.Context, prefix string) ([]domain.Ingredient, error)
}

// RelationServicer defines the favorite/cart operations.
type RelationServicer interface {
	Add(ctx context.Context, kind domain.RelationKind, userID, recipeID uuid.UUID) (domain.Recipe, error)
	Remove(ctx context.Context, kind domain.RelationKind, userID, recipeID uuid.UUID) error
	Marked(ctx context.Context, userID uuid.UUID, kind domain.RelationKind, recipeIDs []uuid.UUID) (map[uuid.UUID]bool, error)
}

// SubscriptionServicer defines the author-subscription operations.
type SubscriptionServicer interface {
	Subscribe(ctx context.Context, userID, authorID uuid.UUID, recipesLimit int) (domain.SubscribedAuthor, error)
	Unsubscribe(ctx context.Context, userID, authorID uuid.UUID) error
	IsSubscribed(ctx context.Context, userID, authorID uuid.UUID) (bool, error)
	ListPaged(ctx context.Context, userID uuid.UUID, recipesLimit int, p domain.PaginationParams) ([]domain.SubscribedAuthor, int64, error)
}

// ShoppingListServicer renders a user's aggregated shopping list.
type ShoppingListServicer interface {
	Build(ctx context.Context, userID uuid.UUID) (string, error)
}

// ImageSaver persists a base64 image data URL and returns a stable URL.
// Satisfied by *imagestore.Store.
type ImageSaver interface {
	SaveDataURL(dataURL string) (string, error)
}

// Server holds the handler dependencies for all API endpoints.
type Server struct {
	users    UserServicer
	recipes  RecipeServicer
	tags     TagServicer
	ingreds  IngredientServicer
	rels     RelationServicer
	subs     SubscriptionServicer
	shopping ShoppingListServicer
	images   ImageSaver
	validate *validation.Validator
}

// NewServer constructs the Server with all its dependencies.
func NewServer(
	users UserServicer,
	recipes RecipeServicer,
	tags TagServicer,
	ingreds IngredientServicer,
	rels RelationServicer,
	subs SubscriptionServicer,
	shopping ShoppingListServicer,
	images ImageSaver,
) *Server {
	return &Server{
		users:    users,
		recipes:  recipes,
		tags:     tags,
		ingreds:  ingreds,
		rels:     rels,
		subs:     subs,
		shopping: shopping,
		images:   images,
		validate: validation.New(),
	}
}

// Routes builds the chi router for the full API surface. authn is the token
// middleware (middleware.NewAuthenticator in production, a stub in tests);
// it resolves bearer tokens into the request context, and RequireUser guards
// the routes that need an identity.
func (s *Server) Routes(authn func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(authn)

	r.Get("/healthz", s.GetHealth)

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/token/login", s.Login)
		r.With(middleware.RequireUser).Post("/auth/token/logout", s.Logout)

		r.Route("/users", func(r chi.Router) {
			r.Post("/", s.RegisterUser)
			r.Get("/", s.ListUsers)
			r.With(middleware.RequireUser).Get("/me", s.GetMe)
			r.With(middleware.RequireUser).Post("/set_password", s.SetPassword)
			r.With(middleware.RequireUser).Get("/subscriptions", s.ListSubscriptions)
			r.Get("/{id}", s.GetUser)
			r.With(middleware.RequireUser).Post("/{id}/subscribe", s.Subscribe)
			r.With(middleware.RequireUser).Delete("/{id}/subscribe", s.Unsubscribe)
		})

		r.Route("/tags", func(r chi.Router) {
			r.Get("/", s.ListTags)
			r.Get("/{id}", s.GetTag)
		})

		r.Route("/ingredients", func(r chi.Router) {
			r.Get("/", s.ListIngredients)
			r.Get("/{id}", s.GetIngredient)
		})

		r.Route("/recipes", func(r chi.Router) {
			r.Get("/", s.ListRecipes)
			r.With(middleware.RequireUser).Post("/", s.CreateRecipe)
			r.With(middleware.RequireUser).Get("/download_shopping_cart", s.DownloadShoppingCart)
			r.Get("/{id}", s.GetRecipe)
			r.With(middleware.RequireUser).Patch("/{id}", s.UpdateRecipe)
			r.With(middleware.RequireUser).Delete("/{id}", s.DeleteRecipe)
			// PUT is not part of the API surface; PATCH carries the whole
			// composition, so PUT is rejected explicitly.
			r.Put("/{id}", methodNotAllowed)
			r.With(middleware.RequireUser).Post("/{id}/favorite", s.AddFavorite)
			r.With(middleware.RequireUser).Delete("/{id}/favorite", s.RemoveFavorite)
			r.With(middleware.RequireUser).Post("/{id}/shopping_cart", s.AddToCart)
			r.With(middleware.RequireUser).Delete("/{id}/shopping_cart", s.RemoveFromCart)
		})
	})

	return r
}

// GetHealth handles GET /healthz.
func (s *Server) GetHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func methodNotAllowed(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusMethodNotAllowed, ErrorResponse{Error: ErrorDetail{
		Code: "method_not_allowed", Message: "method not allowed",
	}})
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// decodeJSON decodes the request body into dst, reporting malformed bodies.
func decodeJSON(r *http.Request, dst any) error {
	return json.NewDecoder(r.Body).Decode(dst)
}

// pathUUID parses the {id} path parameter.
func pathUUID(r *http.Request, name string) (uuid.UUID, error) {
	return uuid.Parse(chi.URLParam(r, name))
}

// currentUser returns the authenticated user ID, or uuid.Nil for anonymous
// requests. Routes wrapped with middleware.RequireUser always have one.
func currentUser(r *http.Request) uuid.UUID {
	id, _ := middleware.UserID(r.Context())
	return id
}

// queryInt parses an optional integer query parameter.
// Unparseable values are treated as absent.
func queryInt(r *http.Request, name string) *int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &n
}
