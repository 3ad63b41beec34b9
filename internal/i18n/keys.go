// internal/i18n/keys.go
package i18n

// Translation keys constants
const (
	// Common
	KeySuccess = "success"
	KeyError   = "error"

	// Authentication
	KeyAuthRequired     = "auth.required"
	KeyAuthInvalidToken = "auth.invalid_token"
	KeyAuthTokenExpired = "auth.token_expired"

	// Users
	KeyUserProfileUpdated = "user.profile_updated"
	KeyUserNotFound       = "user.not_found"

	// Products
	KeyProductSaved    = "product.saved"
	KeyProductDeleted  = "product.deleted"
	KeyProductNotFound = "product.not_found"
	KeyProductOrphaned = "product.orphaned"
	KeyProductConflict = "product.conflict"

	// Public catalog
	KeyPublicProductNotFound = "public_product.not_found"

	// Seller lookup
	KeySellerLookupFailed = "seller_lookup.failed"

	// Store
	KeyStoreNotConfigured = "store.not_configured"

	// Validation
	KeyValidationInvalid  = "validation.invalid"
	KeyValidationRequired = "validation.required"
)
