// internal/models/product.go
package models

import (
	"time"

	"github.com/google/uuid"
)

// PublicProduct is the shared catalog record for one physical product.
// It is owned by no single user: every save against the same model number
// may append attributes and online sellers, and the merge path never
// edits or removes what is already there.
//
// Model is the de facto natural key for find-or-create but carries no
// uniqueness constraint; duplicates created by racing first-time saves
// are tolerated and resolved oldest-first at lookup time.
type PublicProduct struct {
	BaseModel
	Name    string `json:"name" gorm:"size:255;not null"`
	Model   string `json:"model" gorm:"size:100;not null;index"`
	Version int64  `json:"version" gorm:"not null;default:0"`

	// Relationships
	Attributes    []Attribute `json:"attributes,omitempty" gorm:"foreignKey:PublicProductID"`
	OnlineSellers []Seller    `json:"online_sellers,omitempty" gorm:"foreignKey:PublicProductID"`
}

// UserProduct is a user's private link to a PublicProduct. It carries the
// quotes from local (offline) stores, which are never shared. Deleting it
// removes only the link, never the public record.
type UserProduct struct {
	BaseModel
	UserID          uuid.UUID `json:"user_id" gorm:"type:uuid;not null;index"`
	PublicProductID uuid.UUID `json:"public_product_id" gorm:"type:uuid;not null;index"`

	// Relationships
	LocalSellers  []Seller       `json:"local_sellers,omitempty" gorm:"foreignKey:UserProductID"`
	PublicProduct *PublicProduct `json:"-" gorm:"foreignKey:PublicProductID"`
}

// Attribute is one named specification of a public product. Name is the
// dedup key for the merge; comparison is byte-exact and case-sensitive.
type Attribute struct {
	ID              uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	PublicProductID uuid.UUID `json:"-" gorm:"type:uuid;not null;index"`
	Name            string    `json:"name" gorm:"size:100;not null"`
	Value           string    `json:"value" gorm:"size:255;not null"`
	Position        int       `json:"-" gorm:"not null;default:0"`
}

// Seller is a price quote. Online sellers hang off a PublicProduct and are
// deduplicated by Link; local sellers hang off a UserProduct. Exactly one
// of the two owner columns is set, which the save path enforces.
type Seller struct {
	ID              uuid.UUID  `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	PublicProductID *uuid.UUID `json:"-" gorm:"type:uuid;index"`
	UserProductID   *uuid.UUID `json:"-" gorm:"type:uuid;index"`
	Name            string     `json:"name" gorm:"size:100;not null"`
	Price           float64    `json:"price" gorm:"type:decimal(12,2);not null"`
	IsOnline        bool       `json:"is_online" gorm:"not null;default:false"`
	Address         string     `json:"address,omitempty" gorm:"size:255"`
	Phone           string     `json:"phone,omitempty" gorm:"size:30"`
	Link            string     `json:"link,omitempty" gorm:"size:512"`
	Position        int        `json:"-" gorm:"not null;default:0"`
}

// Product is the composite view the rest of the application consumes. It
// is never persisted: identity and timestamps come from the UserProduct,
// catalog fields from the PublicProduct, and sellers are the public
// online list followed by the private local list with no cross-dedup.
type Product struct {
	ID              uuid.UUID   `json:"id"`
	UserID          uuid.UUID   `json:"user_id"`
	PublicProductID uuid.UUID   `json:"public_product_id"`
	Name            string      `json:"name"`
	Model           string      `json:"model"`
	Attributes      []Attribute `json:"attributes"`
	Sellers         []Seller    `json:"sellers"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}

// ComposeProduct joins a user's private link with its public record.
// Callers must have resolved both; a missing public record is a not-found
// condition upstream, not this function's concern.
func ComposeProduct(userProduct *UserProduct, publicProduct *PublicProduct) *Product {
	sellers := make([]Seller, 0, len(publicProduct.OnlineSellers)+len(userProduct.LocalSellers))
	sellers = append(sellers, publicProduct.OnlineSellers...)
	sellers = append(sellers, userProduct.LocalSellers...)

	return &Product{
		ID:              userProduct.ID,
		UserID:          userProduct.UserID,
		PublicProductID: publicProduct.ID,
		Name:            publicProduct.Name,
		Model:           publicProduct.Model,
		Attributes:      publicProduct.Attributes,
		Sellers:         sellers,
		CreatedAt:       userProduct.CreatedAt,
		UpdatedAt:       userProduct.UpdatedAt,
	}
}
