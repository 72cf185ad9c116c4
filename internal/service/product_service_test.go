package service_test

import (
	"context"
	"strings"
	"testing"

	"github.com/dom/product-catalog-api/internal/domain"
	"github.com/dom/product-catalog-api/internal/repository/postgres"
	"github.com/dom/product-catalog-api/internal/service"
	"github.com/dom/product-catalog-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestProductService_CreateAndGet(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	products := service.NewProductService(postgres.NewProductRepository(testDB.DB), zap.NewNop())
	ctx := context.Background()

	owner, _ := testutil.NewUserBuilder().Build(t, testDB.DB)

	input := service.ProductInput{
		Title:       "Canon EOS 1500D",
		Description: strings.Repeat("A solid entry-level DSLR camera. ", 3),
		Price:       879.99,
		Image:       "https://example.com/canon.jpg",
	}

	created, err := products.Create(ctx, owner.ID, input)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(created.ProductID, "product_"), "external id prefix")
	assert.Len(t, created.ProductID, len("product_")+10)
	assert.Equal(t, owner.ID, created.UserID)

	got, err := products.Get(ctx, created.ProductID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, input.Title, got.Title)

	t.Run("duplicate title conflicts", func(t *testing.T) {
		_, err := products.Create(ctx, owner.ID, input)
		assert.ErrorIs(t, err, domain.ErrTitleTaken)
	})

	t.Run("missing product is not found", func(t *testing.T) {
		_, err := products.Get(ctx, "product_0000000000")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestProductService_Ownership(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	products := service.NewProductService(postgres.NewProductRepository(testDB.DB), zap.NewNop())
	ctx := context.Background()

	owner, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	stranger, _ := testutil.NewUserBuilder().Build(t, testDB.DB)

	product := testutil.NewProductBuilder().WithOwner(owner).Build(t, testDB.DB)

	update := service.ProductInput{
		Title:       "Renamed Product",
		Description: strings.Repeat("An updated description for a renamed product. ", 2),
		Price:       99.99,
		Image:       "https://example.com/renamed.jpg",
	}

	t.Run("stranger cannot update", func(t *testing.T) {
		_, err := products.Update(ctx, stranger.ID, product.ProductID, update)
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("stranger cannot delete", func(t *testing.T) {
		err := products.Delete(ctx, stranger.ID, product.ProductID)
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("owner update is reflected on next read", func(t *testing.T) {
		updated, err := products.Update(ctx, owner.ID, product.ProductID, update)
		require.NoError(t, err)
		assert.Equal(t, "Renamed Product", updated.Title)
		assert.Equal(t, product.ProductID, updated.ProductID, "external id is immutable")

		got, err := products.Get(ctx, product.ProductID)
		require.NoError(t, err)
		assert.Equal(t, "Renamed Product", got.Title)
		assert.Equal(t, 99.99, got.Price)
	})

	t.Run("owner can delete", func(t *testing.T) {
		require.NoError(t, products.Delete(ctx, owner.ID, product.ProductID))

		_, err := products.Get(ctx, product.ProductID)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}
