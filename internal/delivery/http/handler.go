package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sburdges-eng/lariat-bible-sub000/internal/domain"
	"github.com/sburdges-eng/lariat-bible-sub000/internal/infrastructure/catalog"
	"github.com/sburdges-eng/lariat-bible-sub000/internal/usecase"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	importer   *usecase.ImportService
	comparator *usecase.ComparisonService
	costing    *usecase.CostingService
	store      *catalog.MemoryStore
}

// NewHandler creates a new HTTP handler
func NewHandler(
	importer *usecase.ImportService,
	comparator *usecase.ComparisonService,
	costing *usecase.CostingService,
	store *catalog.MemoryStore,
) *Handler {
	return &Handler{
		importer:   importer,
		comparator: comparator,
		costing:    costing,
		store:      store,
	}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "lariat-costing",
		"version": "1.0.0",
	})
}

// ImportCatalog replaces a vendor's catalog with the posted rows.
func (h *Handler) ImportCatalog(c *gin.Context) {
	vendor := c.Param("vendor")

	var rows []domain.VendorRow
	if err := c.ShouldBindJSON(&rows); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	report, err := h.importer.ImportCatalog(vendor, rows)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// GetCatalog returns a vendor's current catalog.
func (h *Handler) GetCatalog(c *gin.Context) {
	products, err := h.store.Catalog(c.Param("vendor"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": products, "count": len(products)})
}

// ListVendors returns the vendors with a stored catalog.
func (h *Handler) ListVendors(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"vendors": h.store.Vendors()})
}

type compareRequest struct {
	VendorA string `json:"vendorA" binding:"required"`
	VendorB string `json:"vendorB" binding:"required"`
}

// Compare runs a matching pass between two vendor catalogs.
func (h *Handler) Compare(c *gin.Context) {
	var req compareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	report, err := h.comparator.Compare(req.VendorA, req.VendorB)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

type verifyMatchRequest struct {
	VendorA string `json:"vendorA" binding:"required"`
	VendorB string `json:"vendorB" binding:"required"`
	CodeA   string `json:"codeA" binding:"required"`
	CodeB   string `json:"codeB" binding:"required"`
}

// VerifyMatch pins a match so later passes keep it.
func (h *Handler) VerifyMatch(c *gin.Context) {
	var req verifyMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.comparator.VerifyMatch(req.VendorA, req.VendorB, req.CodeA, req.CodeB); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"verified": true})
}

// UpsertIngredient creates or updates a canonical ingredient.
func (h *Handler) UpsertIngredient(c *gin.Context) {
	var ing domain.Ingredient
	if err := c.ShouldBindJSON(&ing); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	saved, err := h.store.UpsertIngredient(ing)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, saved)
}

// ListIngredients returns all canonical ingredients.
func (h *Handler) ListIngredients(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ingredients": h.store.Ingredients()})
}

type adoptMatchRequest struct {
	IngredientID string              `json:"ingredientId" binding:"required"`
	Match        domain.ProductMatch `json:"match" binding:"required"`
}

// AdoptMatch links a match's recommended vendor to an ingredient.
func (h *Handler) AdoptMatch(c *gin.Context) {
	var req adoptMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.comparator.AdoptMatch(req.IngredientID, req.Match); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"adopted": true})
}

// CostRecipe prices a recipe and records a cost snapshot.
func (h *Handler) CostRecipe(c *gin.Context) {
	var recipe domain.Recipe
	if err := c.ShouldBindJSON(&recipe); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.costing.CostRecipe(recipe)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// SnapshotHistory returns the cost history of a recipe.
func (h *Handler) SnapshotHistory(c *gin.Context) {
	recipeID := c.Param("id")
	history := h.store.Snapshots(recipeID)
	if len(history) == 0 {
		respondError(c, domain.ErrNoSnapshot)
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipeId": recipeID, "snapshots": history})
}

// SnapshotVariance compares the two most recent snapshots of a recipe.
func (h *Handler) SnapshotVariance(c *gin.Context) {
	variance, err := h.costing.VarianceReport(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, variance)
}

// respondError maps domain sentinel errors to HTTP status codes.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrUnknownVendor),
		errors.Is(err, domain.ErrIngredientNotFound),
		errors.Is(err, domain.ErrMatchNotFound),
		errors.Is(err, domain.ErrNoSnapshot):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidRequest),
		errors.Is(err, domain.ErrInvalidIngredient),
		errors.Is(err, domain.ErrUnparseablePackSize),
		errors.Is(err, domain.ErrZeroQuantity),
		errors.Is(err, domain.ErrUnknownUnit),
		errors.Is(err, domain.ErrIncompatibleUnits):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrBelowThreshold):
		status = http.StatusConflict
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
