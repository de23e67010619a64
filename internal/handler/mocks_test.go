package handler_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/dezz1er/foodgram-project-react/internal/domain"
	"github.com/dezz1er/foodgram-project-react/internal/handler"
	"github.com/dezz1er/foodgram-project-react/internal/middleware"
	"github.com/dezz1er/foodgram-project-react/internal/service"
)

// Hand-written test doubles for every servicer interface the handlers depend
// on. Each method is a function field — set only the ones your test needs.

type mockUserServicer struct {
	register    func(ctx context.Context, input service.RegisterInput) (domain.User, error)
	login       func(ctx context.Context, email, password string) (string, error)
	getByID     func(ctx context.Context, id uuid.UUID) (domain.User, error)
	listPaged   func(ctx context.Context, p domain.PaginationParams) ([]domain.User, int64, error)
	setPassword func(ctx context.Context, userID uuid.UUID, current, next string) error
}

func (m *mockUserServicer) Register(ctx context.Context, input service.RegisterInput) (domain.User, error) {
	return m.register(ctx, input)
}
func (m *mockUserServicer) Login(ctx context.Context, email, password string) (string, error) {
	return m.login(ctx, email, password)
}
func (m *mockUserServicer) GetByID(ctx context.Context, id uuid.UUID) (domain.User, error) {
	return m.getByID(ctx, id)
}
func (m *mockUserServicer) ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.User, int64, error) {
	return m.listPaged(ctx, p)
}
func (m *mockUserServicer) SetPassword(ctx context.Context, userID uuid.UUID, current, next string) error {
	return m.setPassword(ctx, userID, current, next)
}

var _ handler.UserServicer = (*mockUserServicer)(nil)

type mockRecipeServicer struct {
	create    func(ctx context.Context, authorID uuid.UUID, input service.RecipeInput) (domain.Recipe, error)
	update    func(ctx context.Context, userID, recipeID uuid.UUID, input service.RecipeInput) (domain.Recipe, error)
	getByID   func(ctx context.Context, id uuid.UUID) (domain.Recipe, error)
	listPaged func(ctx context.Context, f domain.RecipeFilter, p domain.PaginationParams) ([]domain.Recipe, int64, error)
	delete    func(ctx context.Context, userID, recipeID uuid.UUID) error
}

func (m *mockRecipeServicer) Create(ctx context.Context, authorID uuid.UUID, input service.RecipeInput) (domain.Recipe, error) {
	return m.create(ctx, authorID, input)
}
func (m *mockRecipeServicer) Update(ctx context.Context, userID, recipeID uuid.UUID, input service.RecipeInput) (domain.Recipe, error) {
	return m.update(ctx, userID, recipeID, input)
}
func (m *mockRecipeServicer) GetByID(ctx context.Context, id uuid.UUID) (domain.Recipe, error) {
	return m.getByID(ctx, id)
}
func (m *mockRecipeServicer) ListPaged(ctx context.Context, f domain.RecipeFilter, p domain.PaginationParams) ([]domain.Recipe, int64, error) {
	return m.listPaged(ctx, f, p)
}
func (m *mockRecipeServicer) Delete(ctx context.Context, userID, recipeID uuid.UUID) error {
	return m.delete(ctx, userID, recipeID)
}

var _ handler.RecipeServicer = (*mockRecipeServicer)(nil)

type mockTagServicer struct {
	getByID func(ctx context.Context, id uuid.UUID) (domain.Tag, error)
	list    func(ctx context.Context) ([]domain.Tag, error)
}

func (m *mockTagServicer) GetByID(ctx context.Context, id uuid.UUID) (domain.Tag, error) {
	return m.getByID(ctx, id)
}
func (m *mockTagServicer) List(ctx context.Context) ([]domain.Tag, error) {
	return m.list(ctx)
}

var _ handler.TagServicer = (*mockTagServicer)(nil)

type mockIngredientServicer struct {
	getByID func(ctx context.Context, id uuid.UUID) (domain.Ingredient, error)
	list    func(ctx context.Context, prefix string) ([]domain.Ingredient, error)
}

func (m *mockIngredientServicer) GetByID(ctx context.Context, id uuid.UUID) (domain.Ingredient, error) {
	return m.getByID(ctx, id)
}
func (m *mockIngredientServicer) List(ctx context.Context, prefix string) ([]domain.Ingredient, error) {
	return m.list(ctx, prefix)
}

var _ handler.IngredientServicer = (*mockIngredientServicer)(nil)

type mockRelationServicer struct {
	add    func(ctx context.Context, kind domain.RelationKind, userID, recipeID uuid.UUID) (domain.Recipe, error)
	remove func(ctx context.Context, kind domain.RelationKind, userID, recipeID uuid.UUID) error
	marked func(ctx context.Context, userID uuid.UUID, kind domain.RelationKind, recipeIDs []uuid.UUID) (map[uuid.UUID]bool, error)
}

func (m *mockRelationServicer) Add(ctx context.Context, kind domain.RelationKind, userID, recipeID uuid.UUID) (domain.Recipe, error) {
	return m.add(ctx, kind, userID, recipeID)
}
func (m *mockRelationServicer) Remove(ctx context.Context, kind domain.RelationKind, userID, recipeID uuid.UUID) error {
	return m.remove(ctx, kind, userID, recipeID)
}
func (m *mockRelationServicer) Marked(ctx context.Context, userID uuid.UUID, kind domain.RelationKind, recipeIDs []uuid.UUID) (map[uuid.UUID]bool, error) {
	return m.marked(ctx, userID, kind, recipeIDs)
}

var _ handler.RelationServicer = (*mockRelationServicer)(nil)

type mockSubscriptionServicer struct {
	subscribe    func(ctx context.Context, userID, authorID uuid.UUID, recipesLimit int) (domain.SubscribedAuthor, error)
	unsubscribe  func(ctx context.Context, userID, authorID uuid.UUID) error
	isSubscribed func(ctx context.Context, userID, authorID uuid.UUID) (bool, error)
	listPaged    func(ctx context.Context, userID uuid.UUID, recipesLimit int, p domain.PaginationParams) ([]domain.SubscribedAuthor, int64, error)
}

func (m *mockSubscriptionServicer) Subscribe(ctx context.Context, userID, authorID uuid.UUID, recipesLimit int) (domain.SubscribedAuthor, error) {
	return m.subscribe(ctx, userID, authorID, recipesLimit)
}
func (m *mockSubscriptionServicer) Unsubscribe(ctx context.Context, userID, authorID uuid.UUID) error {
	return m.unsubscribe(ctx, userID, authorID)
}
func (m *mockSubscriptionServicer) IsSubscribed(ctx context.Context, userID, authorID uuid.UUID) (bool, error) {
	return m.isSubscribed(ctx, userID, authorID)
}
func (m *mockSubscriptionServicer) ListPaged(ctx context.Context, userID uuid.UUID, recipesLimit int, p domain.PaginationParams) ([]domain.SubscribedAuthor, int64, error) {
	return m.listPaged(ctx, userID, recipesLimit, p)
}

var _ handler.SubscriptionServicer = (*mockSubscriptionServicer)(nil)

type mockShoppingListServicer struct {
	build func(ctx context.Context, userID uuid.UUID) (string, error)
}

func (m *mockShoppingListServicer) Build(ctx context.Context, userID uuid.UUID) (string, error) {
	return m.build(ctx, userID)
}

var _ handler.ShoppingListServicer = (*mockShoppingListServicer)(nil)

type mockImageSaver struct {
	save func(dataURL string) (string, error)
}

func (m *mockImageSaver) SaveDataURL(dataURL string) (string, error) {
	return m.save(dataURL)
}

var _ handler.ImageSaver = (*mockImageSaver)(nil)

// ---- test server wiring ----------------------------------------------------

// serverMocks bundles one mock per dependency, pre-wired with benign defaults
// so tests only override what they exercise.
type serverMocks struct {
	users    *mockUserServicer
	recipes  *mockRecipeServicer
	tags     *mockTagServicer
	ingreds  *mockIngredientServicer
	rels     *mockRelationServicer
	subs     *mockSubscriptionServicer
	shopping *mockShoppingListServicer
	images   *mockImageSaver
}

// defaultMocks returns mocks that satisfy the recipe DTO assembly path:
// no marks, no subscriptions, a fixed author for any user lookup.
func defaultMocks() *serverMocks {
	return &serverMocks{
		users: &mockUserServicer{
			getByID: func(_ context.Context, id uuid.UUID) (domain.User, error) {
				return domain.User{ID: id, Email: "author@example.com", Username: "author"}, nil
			},
		},
		recipes: &mockRecipeServicer{},
		tags:    &mockTagServicer{},
		ingreds: &mockIngredientServicer{},
		rels: &mockRelationServicer{
			marked: func(_ context.Context, _ uuid.UUID, _ domain.RelationKind, _ []uuid.UUID) (map[uuid.UUID]bool, error) {
				return map[uuid.UUID]bool{}, nil
			},
		},
		subs: &mockSubscriptionServicer{
			isSubscribed: func(_ context.Context, _, _ uuid.UUID) (bool, error) {
				return false, nil
			},
		},
		shopping: &mockShoppingListServicer{},
		images: &mockImageSaver{
			save: func(_ string) (string, error) { return "/media/stored.png", nil },
		},
	}
}

// router builds the full route tree over the mocks with a stub authenticator:
// requests carrying viewer != uuid.Nil run authenticated as that user.
func (m *serverMocks) router(viewer uuid.UUID) http.Handler {
	srv := handler.NewServer(m.users, m.recipes, m.tags, m.ingreds, m.rels, m.subs, m.shopping, m.images)
	return srv.Routes(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if viewer != uuid.Nil {
				r = r.WithContext(middleware.WithUserID(r.Context(), viewer))
			}
			next.ServeHTTP(w, r)
		})
	})
}

// do runs one request through the router and returns the recorder.
func do(t *testing.T, h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

// recipeFixture returns a fully composed recipe for response assembly tests.
func recipeFixture(authorID uuid.UUID) domain.Recipe {
	return domain.Recipe{
		ID:          uuid.New(),
		AuthorID:    authorID,
		Name:        "Borscht",
		Text:        "Chop, boil, serve.",
		CookingTime: 90,
		ImageURL:    "/media/borscht.png",
		Tags: []domain.Tag{
			{ID: uuid.New(), Name: "Dinner", Slug: "dinner", Color: "#49B64E"},
		},
		Ingredients: []domain.IngredientLine{
			{IngredientID: uuid.New(), Name: "beetroot", MeasurementUnit: "g", Amount: 500},
		},
		CreatedAt: time.Now().UTC(),
	}
}
