package repo_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"

	"github.com/dezz1er/foodgram-project-react/internal/domain"
	"github.com/dezz1er/foodgram-project-react/internal/repo"
	"github.com/dezz1er/foodgram-project-react/testutil"
)

// newTestTx opens a transaction against the test database. The transaction is
// rolled back automatically when the test finishes, giving free per-test
// isolation. Every repo under test is constructed over this transaction;
// repos that open their own transactions get savepoints, so the atomicity
// paths are exercised for real.
//
// Requires TEST_DATABASE_URL to be set and all migrations to be applied
// (TestMain takes care of the latter).
func newTestTx(t *testing.T) pgx.Tx {
	t.Helper()
	pool := testutil.NewPool(t)

	tx, err := pool.Begin(context.Background())
	require.NoError(t, err, "begin transaction")

	t.Cleanup(func() {
		// Rollback discards all changes made during the test — no cleanup SQL needed.
		_ = tx.Rollback(context.Background())
	})

	return tx
}

// seedUser inserts a user with unique email and username.
func seedUser(t *testing.T, tx pgx.Tx) domain.User {
	t.Helper()
	suffix := uuid.NewString()[:8]
	user, err := repo.NewUserRepo(tx).Create(context.Background(), domain.User{
		Email:        "user-" + suffix + "@example.com",
		Username:     "user-" + suffix,
		FirstName:    "Test",
		LastName:     "User",
		PasswordHash: "$2a$10$fakehashfakehashfakehash",
	})
	require.NoError(t, err, "seed user")
	return user
}

// seedTag inserts a tag with a unique name and slug.
func seedTag(t *testing.T, tx pgx.Tx) domain.Tag {
	t.Helper()
	suffix := uuid.NewString()[:8]
	tag, err := repo.NewTagRepo(tx).Create(context.Background(), domain.Tag{
		Name:  "Tag " + suffix,
		Slug:  "tag-" + suffix,
		Color: "#49B64E",
	})
	require.NoError(t, err, "seed tag")
	return tag
}

// seedIngredient inserts a catalog entry with a unique name.
func seedIngredient(t *testing.T, tx pgx.Tx, unit string) domain.Ingredient {
	t.Helper()
	suffix := uuid.NewString()[:8]
	ing, err := repo.NewIngredientRepo(tx).Create(context.Background(), domain.Ingredient{
		Name:            "ingredient-" + suffix,
		MeasurementUnit: unit,
	})
	require.NoError(t, err, "seed ingredient")
	return ing
}

// seedRecipe inserts a complete recipe for the author with one fresh tag and
// one fresh ingredient line of the given amount.
func seedRecipe(t *testing.T, tx pgx.Tx, authorID uuid.UUID, amount int) domain.Recipe {
	t.Helper()
	tag := seedTag(t, tx)
	ing := seedIngredient(t, tx, "g")

	recipe, err := repo.NewRecipeRepo(tx).Create(context.Background(), domain.Recipe{
		AuthorID:    authorID,
		Name:        "Recipe " + uuid.NewString()[:8],
		Text:        "Cook it well.",
		CookingTime: 30,
		ImageURL:    "/media/test.png",
		Ingredients: []domain.IngredientLine{{IngredientID: ing.ID, Amount: amount}},
	}, []uuid.UUID{tag.ID})
	require.NoError(t, err, "seed recipe")
	return recipe
}
