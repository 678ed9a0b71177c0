package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/wearly/supportbot/internal/services"
	"github.com/wearly/supportbot/internal/utils"
)

type CatalogHandler struct {
	catalog services.CatalogService
}

func NewCatalogHandler(catalog services.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

func (h *CatalogHandler) ListProducts(c *gin.Context) {
	products, err := h.catalog.ListProducts(c.Request.Context(), queryLimit(c, 100))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": products, "count": len(products)})
}

func (h *CatalogHandler) SearchProducts(c *gin.Context) {
	query := c.Query("query")
	if query == "" {
		writeError(c, utils.E(utils.CodeInvalidArgument, "CatalogHandler.SearchProducts", "query is required", nil))
		return
	}

	products, err := h.catalog.SearchProducts(c.Request.Context(), query, queryLimit(c, 20))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": products, "count": len(products), "query": query})
}

func (h *CatalogHandler) PopularProducts(c *gin.Context) {
	products, err := h.catalog.GetPopularProducts(c.Request.Context(), queryLimit(c, 10))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": products, "count": len(products)})
}

func (h *CatalogHandler) GetProduct(c *gin.Context) {
	id, ok := intParam(c, "CatalogHandler.GetProduct", "product_id")
	if !ok {
		return
	}

	details, err := h.catalog.GetProduct(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, details)
}

func (h *CatalogHandler) UserOrders(c *gin.Context) {
	userID, ok := intParam(c, "CatalogHandler.UserOrders", "user_id")
	if !ok {
		return
	}

	orders, err := h.catalog.GetUserOrders(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders, "count": len(orders)})
}

func (h *CatalogHandler) OrderItems(c *gin.Context) {
	orderID, ok := intParam(c, "CatalogHandler.OrderItems", "order_id")
	if !ok {
		return
	}

	items, err := h.catalog.GetOrderItems(c.Request.Context(), orderID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items, "count": len(items)})
}

func (h *CatalogHandler) Categories(c *gin.Context) {
	categories, err := h.catalog.ListCategories(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories, "count": len(categories)})
}

func (h *CatalogHandler) Brands(c *gin.Context) {
	brands, err := h.catalog.ListBrands(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"brands": brands, "count": len(brands)})
}
