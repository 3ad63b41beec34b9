// internal/services/product_service.go
package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/pricewise/pricewise-backend/internal/models"
	"github.com/pricewise/pricewise-backend/internal/utils"
)

// maxMergeAttempts bounds the retry loop for version conflicts on the
// shared public record.
const maxMergeAttempts = 3

type ProductService struct {
	db *gorm.DB
}

type AttributeInput struct {
	Name  string `json:"name" validate:"required,min=1,max=100"`
	Value string `json:"value" validate:"required,min=1,max=255"`
}

type SellerInput struct {
	Name     string  `json:"name" validate:"required,min=1,max=100"`
	Price    float64 `json:"price" validate:"required,gt=0"`
	IsOnline bool    `json:"is_online"`
	Address  string  `json:"address,omitempty" validate:"omitempty,max=255"`
	Phone    string  `json:"phone,omitempty" validate:"omitempty,max=30"`
	Link     string  `json:"link,omitempty" validate:"omitempty,url,max=512"`
}

// SaveProductRequest is one user edit. ID, when set, names the existing
// UserProduct being updated. PublicProductID is a client-side hint from a
// prior lookup and is trusted as-is; a stale hint surfaces as not-found
// when the public record is read inside the transaction.
type SaveProductRequest struct {
	ID              *uuid.UUID       `json:"id,omitempty"`
	PublicProductID *uuid.UUID       `json:"public_product_id,omitempty"`
	Name            string           `json:"name" validate:"required,min=2,max=255"`
	Model           string           `json:"model" validate:"required,min=1,max=100"`
	Attributes      []AttributeInput `json:"attributes" validate:"required,min=1,dive"`
	Sellers         []SellerInput    `json:"sellers" validate:"required,min=1,dive"`
}

func NewProductService(db *gorm.DB) *ProductService {
	return &ProductService{db: db}
}

// FindPublicProductByModel resolves the shared record for an exact model
// string, no normalization. When duplicates exist (racing first-time
// saves can create them) the oldest wins. By contract this call folds
// store failure into absence: callers get "not there" either way, and
// the save path does its own lookup with real error propagation.
func (s *ProductService) FindPublicProductByModel(model string) (*models.PublicProduct, bool) {
	if s.db == nil || model == "" {
		return nil, false
	}

	var product models.PublicProduct
	err := s.db.
		Preload("Attributes", orderByPosition).
		Preload("OnlineSellers", orderByPosition).
		Where("model = ?", model).
		Order("created_at ASC").
		First(&product).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			logrus.WithError(err).WithField("model", model).Warn("public product lookup failed")
		}
		return nil, false
	}

	return &product, true
}

// Save reconciles one user edit with the shared catalog: sellers are
// partitioned by online/local, the public record is found or created and
// new attributes/online sellers appended, and the user's private link is
// created or updated. Public mutation and private upsert commit in one
// transaction. A concurrent append to the same public record is detected
// via its version column and the whole save retries.
func (s *ProductService) Save(userID uuid.UUID, req *SaveProductRequest) (*models.Product, error) {
	if s.db == nil {
		return nil, ErrNotConfigured
	}

	// Reject malformed edits before touching the store
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	for _, seller := range req.Sellers {
		if seller.IsOnline && seller.Link == "" {
			return nil, fmt.Errorf("validation failed: online seller %q requires a link", seller.Name)
		}
	}

	onlineSellers, localSellers := partitionSellers(req.Sellers)

	var userProductID uuid.UUID
	var err error
	for attempt := 1; attempt <= maxMergeAttempts; attempt++ {
		userProductID, err = s.saveOnce(userID, req, onlineSellers, localSellers)
		if !errors.Is(err, ErrMergeConflict) {
			break
		}
		logrus.WithFields(logrus.Fields{
			"model":   req.Model,
			"attempt": attempt,
		}).Info("merge conflict on public product, retrying")
	}
	if err != nil {
		return nil, err
	}

	return s.GetProduct(userID, userProductID)
}

func (s *ProductService) saveOnce(userID uuid.UUID, req *SaveProductRequest, onlineSellers, localSellers []SellerInput) (uuid.UUID, error) {
	var userProductID uuid.UUID

	err := s.db.Transaction(func(tx *gorm.DB) error {
		publicID, err := s.upsertPublicProduct(tx, req, onlineSellers)
		if err != nil {
			return err
		}

		userProductID, err = s.upsertUserProduct(tx, userID, req.ID, publicID, localSellers)
		return err
	})

	return userProductID, err
}

// upsertPublicProduct resolves the shared record (client hint, then model
// lookup, then create) and appends whatever the edit contributes that is
// not already present. Existing entries are never edited or removed.
func (s *ProductService) upsertPublicProduct(tx *gorm.DB, req *SaveProductRequest, onlineSellers []SellerInput) (uuid.UUID, error) {
	var existing models.PublicProduct
	var found bool

	query := tx.Preload("Attributes", orderByPosition).Preload("OnlineSellers", orderByPosition)
	if req.PublicProductID != nil {
		// Hint from a prior lookup, used directly without re-matching by model
		err := query.First(&existing, "id = ?", *req.PublicProductID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return uuid.Nil, ErrPublicProductNotFound
			}
			return uuid.Nil, fmt.Errorf("failed to read public product: %w", err)
		}
		found = true
	} else {
		err := query.Where("model = ?", req.Model).Order("created_at ASC").First(&existing).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return uuid.Nil, fmt.Errorf("failed to look up public product: %w", err)
		}
		found = err == nil
	}

	if !found {
		product := &models.PublicProduct{
			Name:          req.Name,
			Model:         req.Model,
			Attributes:    attributeRows(req.Attributes, 0),
			OnlineSellers: sellerRows(onlineSellers, 0),
		}
		if err := tx.Create(product).Error; err != nil {
			return uuid.Nil, fmt.Errorf("failed to create public product: %w", err)
		}
		return product.ID, nil
	}

	newAttrs := MissingAttributes(existing.Attributes, attributeRows(req.Attributes, len(existing.Attributes)))
	newSellers := MissingSellers(existing.OnlineSellers, sellerRows(onlineSellers, len(existing.OnlineSellers)))
	if len(newAttrs) == 0 && len(newSellers) == 0 {
		// Nothing new to merge, skip the write entirely
		return existing.ID, nil
	}

	// Conditional on the version read above: a concurrent append bumps it
	// and turns this into a detectable, retryable conflict instead of a
	// silent lost update.
	res := tx.Model(&models.PublicProduct{}).
		Where("id = ? AND version = ?", existing.ID, existing.Version).
		Updates(map[string]interface{}{
			"version":    gorm.Expr("version + 1"),
			"updated_at": time.Now(),
		})
	if res.Error != nil {
		return uuid.Nil, fmt.Errorf("failed to update public product: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return uuid.Nil, ErrMergeConflict
	}

	for i := range newAttrs {
		newAttrs[i].PublicProductID = existing.ID
	}
	for i := range newSellers {
		newSellers[i].PublicProductID = &existing.ID
	}
	if len(newAttrs) > 0 {
		if err := tx.Create(&newAttrs).Error; err != nil {
			return uuid.Nil, fmt.Errorf("failed to append attributes: %w", err)
		}
	}
	if len(newSellers) > 0 {
		if err := tx.Create(&newSellers).Error; err != nil {
			return uuid.Nil, fmt.Errorf("failed to append online sellers: %w", err)
		}
	}

	return existing.ID, nil
}

// upsertUserProduct creates the private link on first save, or replaces
// its local-seller quotes on edit. The update branch touches nothing on
// the public side.
func (s *ProductService) upsertUserProduct(tx *gorm.DB, userID uuid.UUID, existingID *uuid.UUID, publicID uuid.UUID, localSellers []SellerInput) (uuid.UUID, error) {
	if existingID == nil {
		userProduct := &models.UserProduct{
			UserID:          userID,
			PublicProductID: publicID,
			LocalSellers:    sellerRows(localSellers, 0),
		}
		if err := tx.Create(userProduct).Error; err != nil {
			return uuid.Nil, fmt.Errorf("failed to create user product: %w", err)
		}
		return userProduct.ID, nil
	}

	var userProduct models.UserProduct
	if err := tx.Where("id = ? AND user_id = ?", *existingID, userID).First(&userProduct).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return uuid.Nil, ErrProductNotFound
		}
		return uuid.Nil, fmt.Errorf("failed to read user product: %w", err)
	}

	if err := tx.Where("user_product_id = ?", userProduct.ID).Delete(&models.Seller{}).Error; err != nil {
		return uuid.Nil, fmt.Errorf("failed to clear local sellers: %w", err)
	}

	sellers := sellerRows(localSellers, 0)
	for i := range sellers {
		sellers[i].UserProductID = &userProduct.ID
	}
	if len(sellers) > 0 {
		if err := tx.Create(&sellers).Error; err != nil {
			return uuid.Nil, fmt.Errorf("failed to save local sellers: %w", err)
		}
	}

	if err := tx.Model(&userProduct).Update("updated_at", time.Now()).Error; err != nil {
		return uuid.Nil, fmt.Errorf("failed to stamp user product: %w", err)
	}

	return userProduct.ID, nil
}

// GetProduct returns the composed view of one saved product for its owner.
func (s *ProductService) GetProduct(userID, userProductID uuid.UUID) (*models.Product, error) {
	if s.db == nil {
		return nil, ErrNotConfigured
	}

	var userProduct models.UserProduct
	err := s.db.
		Preload("LocalSellers", orderByPosition).
		Where("id = ? AND user_id = ?", userProductID, userID).
		First(&userProduct).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to read user product: %w", err)
	}

	var publicProduct models.PublicProduct
	err = s.db.
		Preload("Attributes", orderByPosition).
		Preload("OnlineSellers", orderByPosition).
		First(&publicProduct, "id = ?", userProduct.PublicProductID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrphanedProduct
		}
		return nil, fmt.Errorf("failed to read public product: %w", err)
	}

	return models.ComposeProduct(&userProduct, &publicProduct), nil
}

// ListProducts returns the user's composed products, newest first by
// default. Orphaned links (public record gone) are skipped with a
// warning rather than breaking the whole page.
func (s *ProductService) ListProducts(userID uuid.UUID, params utils.PaginationParams) ([]models.Product, int64, error) {
	if s.db == nil {
		return nil, 0, ErrNotConfigured
	}

	query := s.db.Model(&models.UserProduct{}).Where("user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	allowedSortFields := []string{"created_at", "updated_at"}
	query = utils.ApplySort(query, params, allowedSortFields)
	query = utils.ApplyPagination(query, params)

	var userProducts []models.UserProduct
	if err := query.Preload("LocalSellers", orderByPosition).Find(&userProducts).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch products: %w", err)
	}

	products := make([]models.Product, 0, len(userProducts))
	for i := range userProducts {
		var publicProduct models.PublicProduct
		err := s.db.
			Preload("Attributes", orderByPosition).
			Preload("OnlineSellers", orderByPosition).
			First(&publicProduct, "id = ?", userProducts[i].PublicProductID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				logrus.WithFields(logrus.Fields{
					"user_product_id":   userProducts[i].ID,
					"public_product_id": userProducts[i].PublicProductID,
				}).Warn("skipping orphaned user product")
				continue
			}
			return nil, 0, fmt.Errorf("failed to read public product: %w", err)
		}
		products = append(products, *models.ComposeProduct(&userProducts[i], &publicProduct))
	}

	return products, total, nil
}

// Delete removes only the user's private link and its local quotes. The
// public record always survives. An already-missing link is a no-op.
func (s *ProductService) Delete(userID, userProductID uuid.UUID) error {
	if s.db == nil {
		return ErrNotConfigured
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ? AND user_id = ?", userProductID, userID).Delete(&models.UserProduct{})
		if res.Error != nil {
			return fmt.Errorf("failed to delete user product: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return nil
		}

		if err := tx.Where("user_product_id = ?", userProductID).Delete(&models.Seller{}).Error; err != nil {
			return fmt.Errorf("failed to delete local sellers: %w", err)
		}
		return nil
	})
}

// Helper methods

func orderByPosition(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}

// partitionSellers splits an edit's sellers by the online flag. Every
// seller lands in exactly one of the two lists.
func partitionSellers(sellers []SellerInput) (online, local []SellerInput) {
	for _, seller := range sellers {
		if seller.IsOnline {
			online = append(online, seller)
		} else {
			local = append(local, seller)
		}
	}
	return online, local
}

func attributeRows(inputs []AttributeInput, startPosition int) []models.Attribute {
	rows := make([]models.Attribute, 0, len(inputs))
	for i, input := range inputs {
		rows = append(rows, models.Attribute{
			Name:     input.Name,
			Value:    input.Value,
			Position: startPosition + i,
		})
	}
	return rows
}

func sellerRows(inputs []SellerInput, startPosition int) []models.Seller {
	rows := make([]models.Seller, 0, len(inputs))
	for i, input := range inputs {
		rows = append(rows, models.Seller{
			Name:     input.Name,
			Price:    input.Price,
			IsOnline: input.IsOnline,
			Address:  input.Address,
			Phone:    input.Phone,
			Link:     input.Link,
			Position: startPosition + i,
		})
	}
	return rows
}
