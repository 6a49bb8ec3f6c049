package handlers

import (
	"net/http"

	"medibook/models"
	"medibook/services/catalog"
	"medibook/utils"

	"github.com/gin-gonic/gin"
)

// CatalogHandler serves the read-only option lists the wizards render.
type CatalogHandler struct {
	Catalog catalog.Catalog
}

// NewCatalogHandler builds a handler over the catalog port.
func NewCatalogHandler(cat catalog.Catalog) *CatalogHandler {
	return &CatalogHandler{Catalog: cat}
}

// ListProviders returns the providers for a workflow kind.
func (h *CatalogHandler) ListProviders(c *gin.Context) {
	kind := models.WorkflowKind(c.Query("kind"))
	if !models.ValidKind(kind) {
		utils.JSONError(c, http.StatusBadRequest, "unknown workflow kind", string(kind))
		return
	}
	c.JSON(http.StatusOK, gin.H{"providers": h.Catalog.ListProviders(kind)})
}

// ListSlots returns the available slots for a provider on a date.
func (h *CatalogHandler) ListSlots(c *gin.Context) {
	providerID := c.Query("providerId")
	date := c.Query("date")
	if providerID == "" || date == "" {
		utils.JSONError(c, http.StatusBadRequest, "providerId and date are required", "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"slots": h.Catalog.ListAvailableSlots(providerID, date)})
}

// ListPaymentMethods returns the payment methods a kind declares.
func (h *CatalogHandler) ListPaymentMethods(c *gin.Context) {
	kind := models.WorkflowKind(c.Query("kind"))
	if !models.ValidKind(kind) {
		utils.JSONError(c, http.StatusBadRequest, "unknown workflow kind", string(kind))
		return
	}
	c.JSON(http.StatusOK, gin.H{"paymentMethods": h.Catalog.ListPaymentMethods(kind)})
}
