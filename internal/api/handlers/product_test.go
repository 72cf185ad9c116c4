package handlers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/dom/product-catalog-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type productResponse struct {
	ID          string  `json:"id"`
	ProductID   string  `json:"productId"`
	User        string  `json:"user"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Image       string  `json:"image"`
}

func TestProductHandler_Create(t *testing.T) {
	ts := testutil.NewTestServer(t)

	userA, pairA := testutil.NewUserBuilder().
		WithEmail("creator@x.com").
		BuildAndLogin(t, ts)

	t.Run("requires authentication", func(t *testing.T) {
		req := testutil.CreateAuthenticatedRequest(t, http.MethodPost, ts.APIURL("/products"), testutil.ProductPayload("No Auth Product"), "")
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("rejects a short description", func(t *testing.T) {
		payload := testutil.ProductPayload("Short Description Product")
		payload["description"] = "too short"

		req := testutil.CreateAuthenticatedRequest(t, http.MethodPost, ts.APIURL("/products"), payload, pairA.AccessToken)
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		testutil.AssertErrorResponse(t, resp, http.StatusBadRequest, "description")
	})

	t.Run("rejects a negative price", func(t *testing.T) {
		payload := testutil.ProductPayload("Negative Price Product")
		payload["price"] = -5.0

		req := testutil.CreateAuthenticatedRequest(t, http.MethodPost, ts.APIURL("/products"), payload, pairA.AccessToken)
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		testutil.AssertErrorResponse(t, resp, http.StatusBadRequest, "price")
	})

	t.Run("creates a product owned by the caller", func(t *testing.T) {
		req := testutil.CreateAuthenticatedRequest(t, http.MethodPost, ts.APIURL("/products"), testutil.ProductPayload("Fresh Product"), pairA.AccessToken)
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		require.Equal(t, http.StatusCreated, resp.StatusCode)

		var product productResponse
		testutil.AssertJSONResponse(t, resp, &product)
		assert.Contains(t, product.ProductID, "product_")
		assert.Equal(t, userA.ID.String(), product.User)
		assert.Equal(t, "Fresh Product", product.Title)
	})

	t.Run("duplicate title conflicts", func(t *testing.T) {
		req := testutil.CreateAuthenticatedRequest(t, http.MethodPost, ts.APIURL("/products"), testutil.ProductPayload("Fresh Product"), pairA.AccessToken)
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusConflict, resp.StatusCode)
	})
}

func TestProductHandler_Get(t *testing.T) {
	ts := testutil.NewTestServer(t)

	owner, _ := testutil.NewUserBuilder().Build(t, ts.DB.DB)
	product := testutil.NewProductBuilder().WithOwner(owner).Build(t, ts.DB.DB)

	t.Run("read by id is public", func(t *testing.T) {
		resp, err := http.Get(ts.APIURL("/products/" + product.ProductID))
		require.NoError(t, err)
		defer resp.Body.Close()

		require.Equal(t, http.StatusOK, resp.StatusCode)

		var got productResponse
		testutil.AssertJSONResponse(t, resp, &got)
		assert.Equal(t, product.ProductID, got.ProductID)
		assert.Equal(t, product.Title, got.Title)
	})

	t.Run("missing product is 404", func(t *testing.T) {
		resp, err := http.Get(ts.APIURL("/products/product_0000000000"))
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestProductHandler_Ownership(t *testing.T) {
	ts := testutil.NewTestServer(t)

	_, pairA := testutil.NewUserBuilder().
		WithEmail("owner@x.com").
		BuildAndLogin(t, ts)
	_, pairB := testutil.NewUserBuilder().
		WithEmail("intruder@x.com").
		BuildAndLogin(t, ts)

	// User A creates a product.
	req := testutil.CreateAuthenticatedRequest(t, http.MethodPost, ts.APIURL("/products"), testutil.ProductPayload("Contested Product"), pairA.AccessToken)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var product productResponse
	testutil.AssertJSONResponse(t, resp, &product)
	productURL := ts.APIURL("/products/" + product.ProductID)

	update := testutil.ProductPayload("Contested Product Renamed")

	t.Run("user B cannot update", func(t *testing.T) {
		req := testutil.CreateAuthenticatedRequest(t, http.MethodPut, productURL, update, pairB.AccessToken)
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("user B cannot delete", func(t *testing.T) {
		req := testutil.CreateAuthenticatedRequest(t, http.MethodDelete, productURL, nil, pairB.AccessToken)
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("owner update succeeds and is visible on next read", func(t *testing.T) {
		req := testutil.CreateAuthenticatedRequest(t, http.MethodPut, productURL, update, pairA.AccessToken)
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		readResp, err := http.Get(productURL)
		require.NoError(t, err)
		defer readResp.Body.Close()

		var got productResponse
		testutil.AssertJSONResponse(t, readResp, &got)
		assert.Equal(t, "Contested Product Renamed", got.Title)
		assert.Equal(t, product.ProductID, got.ProductID, "external id never changes")
	})

	t.Run("owner delete succeeds", func(t *testing.T) {
		req := testutil.CreateAuthenticatedRequest(t, http.MethodDelete, productURL, nil, pairA.AccessToken)
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		readResp, err := http.Get(productURL)
		require.NoError(t, err)
		defer readResp.Body.Close()
		assert.Equal(t, http.StatusNotFound, readResp.StatusCode)
	})

	t.Run("update of a missing product is 404", func(t *testing.T) {
		req := testutil.CreateAuthenticatedRequest(t, http.MethodPut, ts.APIURL(fmt.Sprintf("/products/product_%010d", 0)), update, pairA.AccessToken)
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}
