package http

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/fjod/agromarket/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestProducts_CreateMultipart(t *testing.T) {
	products := newFakeProducts()
	router := newTestRouter(Handlers{Products: NewProductHandler(products, &fakeCart{}, defaultTestTimeout, discardLog)})
	owner := primitive.NewObjectID()

	rec := doMultipart(t, router, "/products", map[string]string{
		"userId":      owner.Hex(),
		"productName": "Drip Kit",
		"productId":   "DK-7",
		"productType": "crop",
		"price":       "1499.00",
		"quantity":    "5",
	}, formFileField{field: "image", name: "kit.jpg", content: []byte{0xff, 0xd8}})

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	stored := products.byCode["DK-7"]
	require.NotNil(t, stored)
	assert.Equal(t, owner, stored.UserID)
	assert.True(t, decimal.RequireFromString("1499").Equal(stored.Price))
	assert.Equal(t, 5, stored.Quantity)
	assert.Equal(t, []byte{0xff, 0xd8}, stored.Image)
	assert.Equal(t, "Product created successfully", decodeBody[ProductResponse](t, rec).Message)
}

func TestProducts_CreateValidation(t *testing.T) {
	router := newTestRouter(Handlers{})

	rec := doJSON(t, router, http.MethodPost, "/products", map[string]any{"productName": "No code"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/products", map[string]any{"productName": "x", "productId": "x", "productType": "tractor"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doMultipart(t, router, "/products", map[string]string{"productName": "x", "productId": "x", "price": "cheap"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProducts_SearchWithoutMatchesIsEmptyList(t *testing.T) {
	products := newFakeProducts()
	router := newTestRouter(Handlers{Products: NewProductHandler(products, &fakeCart{}, defaultTestTimeout, discardLog)})

	rec := doJSON(t, router, http.MethodGet, "/products?productName=rice", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
	assert.Equal(t, "rice", products.search)
}

func TestProducts_ByCode(t *testing.T) {
	p := &domain.Product{ID: primitive.NewObjectID(), Name: "Urea", Code: "U-1", Price: decimal.RequireFromString("9.5")}
	router := newTestRouter(Handlers{Products: NewProductHandler(newFakeProducts(p), &fakeCart{}, defaultTestTimeout, discardLog)})

	rec := doJSON(t, router, http.MethodGet, "/products/U-1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Urea", decodeBody[domain.Product](t, rec).Name)

	rec = doJSON(t, router, http.MethodPut, "/products/U-1", `[1,2]`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, router, http.MethodDelete, "/products/U-1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Product deleted successfully", decodeBody[ProductResponse](t, rec).Message)

	rec = doJSON(t, router, http.MethodGet, "/products/U-1", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestProducts_ChangesInvalidateCarts(t *testing.T) {
	p := &domain.Product{ID: primitive.NewObjectID(), Name: "Urea", Code: "U-1", Price: decimal.RequireFromString("9.5")}
	carts := &fakeCart{}
	router := newTestRouter(Handlers{Products: NewProductHandler(newFakeProducts(p), carts, defaultTestTimeout, discardLog)})

	rec := doJSON(t, router, http.MethodPut, "/products/U-1", map[string]any{"price": "11"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, []primitive.ObjectID{p.ID}, carts.changed)

	rec = doJSON(t, router, http.MethodPut, "/products/U-1", `[1,2]`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Len(t, carts.changed, 1)

	rec = doJSON(t, router, http.MethodDelete, "/products/U-1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []primitive.ObjectID{p.ID, p.ID}, carts.changed)
}

func TestShops_CreateWithItems(t *testing.T) {
	shops := &fakeShops{}
	router := newTestRouter(Handlers{Shops: NewShopHandler(shops, defaultTestTimeout, discardLog)})
	a, b := primitive.NewObjectID(), primitive.NewObjectID()
	items, err := json.Marshal([]string{a.Hex(), b.Hex()})
	require.NoError(t, err)

	rec := doMultipart(t, router, "/shops", map[string]string{
		"title":     "Green Acres",
		"location":  "Nashik",
		"ownerName": "Patil",
		"items":     string(items),
	})

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	require.NotNil(t, shops.created)
	assert.Equal(t, []primitive.ObjectID{a, b}, shops.created.Items)

	rec = doMultipart(t, router, "/shops", map[string]string{
		"title": "x", "location": "y", "ownerName": "z", "items": "not-json",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doMultipart(t, router, "/shops", map[string]string{
		"title": "x", "location": "y", "ownerName": "z", "items": `["zz"]`,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestShops_Routes(t *testing.T) {
	router := newTestRouter(Handlers{})

	rec := doJSON(t, router, http.MethodGet, "/shops", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	rec = doJSON(t, router, http.MethodGet, "/shops/"+primitive.NewObjectID().Hex(), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/shops/not-an-id", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, router, http.MethodDelete, "/shops/"+primitive.NewObjectID().Hex(), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Shop deleted successfully", decodeBody[MessageResponse](t, rec).Message)
}

func TestMarketPrices_Create(t *testing.T) {
	prices := &fakeMarketPrices{}
	router := newTestRouter(Handlers{MarketPrices: NewMarketPriceHandler(prices, defaultTestTimeout, discardLog)})

	rec := doJSON(t, router, http.MethodPost, "/marketprices", `{"item":"Onion","price":24.3,"category":"vegetable"}`)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	require.NotNil(t, prices.created)
	assert.True(t, decimal.RequireFromString("24.3").Equal(prices.created.Price))

	rec = doJSON(t, router, http.MethodPost, "/marketprices", `{"item":"Onion","price":1,"category":"spices"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, router, http.MethodDelete, "/marketprices/"+primitive.NewObjectID().Hex(), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "MarketPrice deleted successfully", decodeBody[MessageResponse](t, rec).Message)
}

func TestTrainings_NameAndIDShareSegment(t *testing.T) {
	training := &domain.Training{ID: primitive.NewObjectID(), Title: "Soil", Name: "soil-101", Course: "Basics", Link: "https://example.com"}
	trainings := &fakeTrainings{byName: map[string]*domain.Training{"soil-101": training}}
	router := newTestRouter(Handlers{Trainings: NewTrainingHandler(trainings, defaultTestTimeout, discardLog)})

	rec := doJSON(t, router, http.MethodGet, "/trainings/soil-101", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, training.ID, decodeBody[domain.Training](t, rec).ID)

	rec = doJSON(t, router, http.MethodGet, "/trainings/unknown", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, router, http.MethodPut, "/trainings/"+training.ID.Hex(), `{"link":"https://example.com/v2"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, training.ID, trainings.updatedID)

	rec = doJSON(t, router, http.MethodDelete, "/trainings/"+training.ID.Hex(), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, training.ID, trainings.deletedID)
	assert.Equal(t, "Training deleted successfully", decodeBody[MessageResponse](t, rec).Message)

	rec = doJSON(t, router, http.MethodDelete, "/trainings/soil-101", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
