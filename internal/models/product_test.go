// internal/models/product_test.go
package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestComposeProduct(t *testing.T) {
	createdAt := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	updatedAt := createdAt.Add(48 * time.Hour)

	publicProduct := &PublicProduct{
		BaseModel: BaseModel{
			ID:        uuid.New(),
			CreatedAt: createdAt.Add(-time.Hour),
			UpdatedAt: createdAt.Add(-time.Hour),
		},
		Name:  "Galaxy S23",
		Model: "SM-S911B",
		Attributes: []Attribute{
			{Name: "RAM", Value: "8GB"},
			{Name: "Color", Value: "Black"},
		},
		OnlineSellers: []Seller{
			{Name: "Amazon", Price: 65000, IsOnline: true, Link: "https://a/x"},
			{Name: "Flipkart", Price: 64499, IsOnline: true, Link: "https://f/y"},
		},
	}
	userProduct := &UserProduct{
		BaseModel: BaseModel{
			ID:        uuid.New(),
			CreatedAt: createdAt,
			UpdatedAt: updatedAt,
		},
		UserID:          uuid.New(),
		PublicProductID: publicProduct.ID,
		LocalSellers: []Seller{
			{Name: "LocalShop", Price: 64000, IsOnline: false},
		},
	}

	product := ComposeProduct(userProduct, publicProduct)

	// Identity and timestamps come from the private link
	assert.Equal(t, userProduct.ID, product.ID)
	assert.Equal(t, userProduct.UserID, product.UserID)
	assert.Equal(t, createdAt, product.CreatedAt)
	assert.Equal(t, updatedAt, product.UpdatedAt)

	// Catalog fields come from the shared record
	assert.Equal(t, publicProduct.ID, product.PublicProductID)
	assert.Equal(t, "Galaxy S23", product.Name)
	assert.Equal(t, "SM-S911B", product.Model)
	assert.Equal(t, publicProduct.Attributes, product.Attributes)

	// Sellers are online followed by local, in order
	assert.Len(t, product.Sellers, 3)
	assert.Equal(t, "Amazon", product.Sellers[0].Name)
	assert.Equal(t, "Flipkart", product.Sellers[1].Name)
	assert.Equal(t, "LocalShop", product.Sellers[2].Name)
}

func TestComposeProductKeepsViewTimeDuplicates(t *testing.T) {
	publicProduct := &PublicProduct{
		OnlineSellers: []Seller{
			{Name: "Amazon", Price: 65000, IsOnline: true, Link: "https://a/x"},
		},
	}
	userProduct := &UserProduct{
		LocalSellers: []Seller{
			{Name: "Amazon", Price: 65000, IsOnline: false, Link: "https://a/x"},
		},
	}

	product := ComposeProduct(userProduct, publicProduct)

	// No cross-dedup at view time
	assert.Len(t, product.Sellers, 2)
}

func TestComposeProductEmptyLists(t *testing.T) {
	product := ComposeProduct(&UserProduct{}, &PublicProduct{Name: "TV", Model: "X90L"})

	assert.NotNil(t, product.Sellers)
	assert.Empty(t, product.Sellers)
	assert.Empty(t, product.Attributes)
}
