// internal/services/product_service_test.go
package services

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func validSaveRequest() *SaveProductRequest {
	return &SaveProductRequest{
		Name:  "Galaxy S23",
		Model: "SM-S911B",
		Attributes: []AttributeInput{
			{Name: "RAM", Value: "8GB"},
		},
		Sellers: []SellerInput{
			{Name: "Amazon", Price: 65000, IsOnline: true, Link: "https://a/x"},
			{Name: "LocalShop", Price: 64000, IsOnline: false},
		},
	}
}

func TestSaveFailsFastWhenStoreNotConfigured(t *testing.T) {
	service := NewProductService(nil)

	_, err := service.Save(uuid.New(), validSaveRequest())

	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestDeleteFailsFastWhenStoreNotConfigured(t *testing.T) {
	service := NewProductService(nil)

	assert.ErrorIs(t, service.Delete(uuid.New(), uuid.New()), ErrNotConfigured)
}

func TestFindPublicProductByModelAbsentWhenNotConfigured(t *testing.T) {
	service := NewProductService(nil)

	product, found := service.FindPublicProductByModel("SM-S911B")

	assert.False(t, found)
	assert.Nil(t, product)
}

func TestSaveRejectsInvalidEditBeforeStoreInteraction(t *testing.T) {
	// The bare handle is never touched: validation runs first
	service := NewProductService(&gorm.DB{Config: &gorm.Config{}})

	tests := []struct {
		name   string
		mutate func(*SaveProductRequest)
	}{
		{"missing name", func(r *SaveProductRequest) { r.Name = "" }},
		{"missing model", func(r *SaveProductRequest) { r.Model = "" }},
		{"no attributes", func(r *SaveProductRequest) { r.Attributes = nil }},
		{"no sellers", func(r *SaveProductRequest) { r.Sellers = nil }},
		{"non-positive price", func(r *SaveProductRequest) { r.Sellers[0].Price = 0 }},
		{"missing seller name", func(r *SaveProductRequest) { r.Sellers[0].Name = "" }},
		{"online seller without link", func(r *SaveProductRequest) { r.Sellers[0].Link = "" }},
		{"attribute without value", func(r *SaveProductRequest) { r.Attributes[0].Value = "" }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := validSaveRequest()
			tc.mutate(req)

			_, err := service.Save(uuid.New(), req)

			require.Error(t, err)
			assert.Contains(t, err.Error(), "validation failed")
			assert.False(t, errors.Is(err, ErrNotConfigured))
		})
	}
}

func TestPartitionSellersSplitsByOnlineFlag(t *testing.T) {
	sellers := []SellerInput{
		{Name: "Amazon", Price: 65000, IsOnline: true, Link: "https://a/x"},
		{Name: "LocalShop", Price: 64000, IsOnline: false},
		{Name: "Flipkart", Price: 64499, IsOnline: true, Link: "https://f/y"},
		{Name: "CornerStore", Price: 63500, IsOnline: false, Address: "Mumbai, IN"},
	}

	online, local := partitionSellers(sellers)

	// Every seller lands in exactly one list, order preserved
	require.Len(t, online, 2)
	require.Len(t, local, 2)
	assert.Equal(t, "Amazon", online[0].Name)
	assert.Equal(t, "Flipkart", online[1].Name)
	assert.Equal(t, "LocalShop", local[0].Name)
	assert.Equal(t, "CornerStore", local[1].Name)
	assert.Equal(t, len(sellers), len(online)+len(local))
}

func TestPartitionSellersEmptyInput(t *testing.T) {
	online, local := partitionSellers(nil)

	assert.Empty(t, online)
	assert.Empty(t, local)
}

func TestAttributeRowsAssignSequentialPositions(t *testing.T) {
	rows := attributeRows([]AttributeInput{
		{Name: "RAM", Value: "8GB"},
		{Name: "Color", Value: "Black"},
	}, 3)

	require.Len(t, rows, 2)
	assert.Equal(t, 3, rows[0].Position)
	assert.Equal(t, 4, rows[1].Position)
	assert.Equal(t, "RAM", rows[0].Name)
	assert.Equal(t, "Black", rows[1].Value)
}

func TestSellerRowsCarryAllFields(t *testing.T) {
	rows := sellerRows([]SellerInput{
		{Name: "LocalShop", Price: 64000, IsOnline: false, Address: "Pune, IN", Phone: "+91-98765"},
	}, 0)

	require.Len(t, rows, 1)
	assert.Equal(t, "LocalShop", rows[0].Name)
	assert.Equal(t, 64000.0, rows[0].Price)
	assert.False(t, rows[0].IsOnline)
	assert.Equal(t, "Pune, IN", rows[0].Address)
	assert.Equal(t, "+91-98765", rows[0].Phone)
	assert.Equal(t, 0, rows[0].Position)
}
