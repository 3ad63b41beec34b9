// internal/handlers/seller.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/pricewise/pricewise-backend/internal/i18n"
	"github.com/pricewise/pricewise-backend/internal/services"
	"github.com/pricewise/pricewise-backend/internal/utils"
)

type SellerHandler struct {
	sellerFinderService *services.SellerFinderService
}

type FindSellersRequest struct {
	ProductName string `json:"product_name"`
	Model       string `json:"model"`
}

func NewSellerHandler(sellerFinderService *services.SellerFinderService) *SellerHandler {
	return &SellerHandler{
		sellerFinderService: sellerFinderService,
	}
}

// POST /sellers/find
//
// Empty product name or model is not an error here: the finder
// short-circuits to an empty list without contacting the model.
func (h *SellerHandler) FindSellers(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req FindSellersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	sellers, err := h.sellerFinderService.FindSellers(c.Request.Context(), req.ProductName, req.Model)
	if err != nil {
		if errors.Is(err, services.ErrSellerLookupFailed) {
			utils.ErrorResponse(c, 502, "SELLER_LOOKUP_FAILED", i18n.T(lang, i18n.KeySellerLookupFailed), nil)
			return
		}
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{
		"sellers": sellers,
	})
}
