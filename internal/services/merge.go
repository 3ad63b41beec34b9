// internal/services/merge.go
package services

import (
	"github.com/pricewise/pricewise-backend/internal/models"
)

// The merge is additive only. Candidates whose key already exists are
// dropped, even when their value differs (first writer wins); nothing is
// ever removed or rewritten. Keys compare byte-exact and case-sensitive:
// "RAM" and "ram" are distinct attributes, and two links differing only
// in case are distinct sellers.

// MissingAttributes returns the candidates whose name is not present in
// existing, preserving candidate order. Neither input is mutated.
func MissingAttributes(existing, candidates []models.Attribute) []models.Attribute {
	seen := make(map[string]struct{}, len(existing))
	for _, attr := range existing {
		seen[attr.Name] = struct{}{}
	}

	var missing []models.Attribute
	for _, attr := range candidates {
		if _, ok := seen[attr.Name]; ok {
			continue
		}
		seen[attr.Name] = struct{}{}
		missing = append(missing, attr)
	}
	return missing
}

// MissingSellers returns the candidates whose link is not present in
// existing, preserving candidate order. Neither input is mutated.
func MissingSellers(existing, candidates []models.Seller) []models.Seller {
	seen := make(map[string]struct{}, len(existing))
	for _, seller := range existing {
		seen[seller.Link] = struct{}{}
	}

	var missing []models.Seller
	for _, seller := range candidates {
		if _, ok := seen[seller.Link]; ok {
			continue
		}
		seen[seller.Link] = struct{}{}
		missing = append(missing, seller)
	}
	return missing
}
