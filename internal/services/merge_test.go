// internal/services/merge_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pricewise/pricewise-backend/internal/models"
)

func TestMissingAttributesSkipsExistingNames(t *testing.T) {
	existing := []models.Attribute{
		{Name: "RAM", Value: "8GB"},
		{Name: "Storage", Value: "256GB"},
	}
	candidates := []models.Attribute{
		{Name: "RAM", Value: "8GB"},
		{Name: "Color", Value: "Black"},
	}

	missing := MissingAttributes(existing, candidates)

	assert.Len(t, missing, 1)
	assert.Equal(t, "Color", missing[0].Name)
	assert.Equal(t, "Black", missing[0].Value)
}

func TestMissingAttributesSelfMergeIsEmpty(t *testing.T) {
	attrs := []models.Attribute{
		{Name: "RAM", Value: "8GB"},
		{Name: "Screen Size", Value: "6.1 inches"},
	}

	assert.Empty(t, MissingAttributes(attrs, attrs))
}

func TestMissingAttributesDropsConflictingValue(t *testing.T) {
	existing := []models.Attribute{{Name: "RAM", Value: "8GB"}}
	candidates := []models.Attribute{{Name: "RAM", Value: "12GB"}}

	// First writer wins: a different value for the same name is dropped
	assert.Empty(t, MissingAttributes(existing, candidates))
}

func TestMissingAttributesIsCaseSensitive(t *testing.T) {
	existing := []models.Attribute{{Name: "RAM", Value: "8GB"}}
	candidates := []models.Attribute{{Name: "ram", Value: "8GB"}}

	missing := MissingAttributes(existing, candidates)

	assert.Len(t, missing, 1)
	assert.Equal(t, "ram", missing[0].Name)
}

func TestMissingAttributesPreservesCandidateOrder(t *testing.T) {
	existing := []models.Attribute{{Name: "B", Value: "2"}}
	candidates := []models.Attribute{
		{Name: "C", Value: "3"},
		{Name: "B", Value: "2"},
		{Name: "A", Value: "1"},
	}

	missing := MissingAttributes(existing, candidates)

	assert.Len(t, missing, 2)
	assert.Equal(t, "C", missing[0].Name)
	assert.Equal(t, "A", missing[1].Name)
}

func TestMissingAttributesDedupsWithinCandidates(t *testing.T) {
	candidates := []models.Attribute{
		{Name: "RAM", Value: "8GB"},
		{Name: "RAM", Value: "12GB"},
	}

	missing := MissingAttributes(nil, candidates)

	// Name stays unique among merged attributes even within one edit
	assert.Len(t, missing, 1)
	assert.Equal(t, "8GB", missing[0].Value)
}

func TestMissingAttributesDoesNotMutateInputs(t *testing.T) {
	existing := []models.Attribute{{Name: "RAM", Value: "8GB"}}
	candidates := []models.Attribute{
		{Name: "RAM", Value: "8GB"},
		{Name: "Color", Value: "Black"},
	}

	MissingAttributes(existing, candidates)

	assert.Equal(t, []models.Attribute{{Name: "RAM", Value: "8GB"}}, existing)
	assert.Equal(t, "RAM", candidates[0].Name)
	assert.Equal(t, "Color", candidates[1].Name)
}

func TestMissingSellersSkipsExistingLinks(t *testing.T) {
	existing := []models.Seller{
		{Name: "Amazon", Price: 65000, IsOnline: true, Link: "https://a/x"},
	}
	candidates := []models.Seller{
		{Name: "Amazon India", Price: 64500, IsOnline: true, Link: "https://a/x"},
		{Name: "Flipkart", Price: 63999, IsOnline: true, Link: "https://f/y"},
	}

	missing := MissingSellers(existing, candidates)

	// Same link is the same listing regardless of the display name
	assert.Len(t, missing, 1)
	assert.Equal(t, "Flipkart", missing[0].Name)
}

func TestMissingSellersSelfMergeIsEmpty(t *testing.T) {
	sellers := []models.Seller{
		{Name: "Amazon", Price: 65000, IsOnline: true, Link: "https://a/x"},
		{Name: "Croma", Price: 65999, IsOnline: true, Link: "https://c/z"},
	}

	assert.Empty(t, MissingSellers(sellers, sellers))
}

func TestMissingSellersIsCaseSensitive(t *testing.T) {
	existing := []models.Seller{{Name: "Amazon", Link: "https://a/X"}}
	candidates := []models.Seller{{Name: "Amazon", Link: "https://a/x"}}

	assert.Len(t, MissingSellers(existing, candidates), 1)
}

func TestMissingSellersPreservesCandidateOrder(t *testing.T) {
	existing := []models.Seller{{Name: "Amazon", Link: "https://a/x"}}
	candidates := []models.Seller{
		{Name: "Croma", Link: "https://c/1"},
		{Name: "Amazon", Link: "https://a/x"},
		{Name: "Flipkart", Link: "https://f/2"},
	}

	missing := MissingSellers(existing, candidates)

	assert.Len(t, missing, 2)
	assert.Equal(t, "Croma", missing[0].Name)
	assert.Equal(t, "Flipkart", missing[1].Name)
}
