package api

import (
	"errors"
	"net/http"

	resdto "marketplace-catalog/internal/handler/dto/response"
	"marketplace-catalog/internal/handler/httperr"
	"marketplace-catalog/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var errMissingUserID = errors.New("missing user id")

type ProductStockHandler struct {
	q queries.ProductStockQueries
}

func NewProductStockHandler(q queries.ProductStockQueries) *ProductStockHandler {
	return &ProductStockHandler{q: q}
}

// @Summary Product stock
// @Description Live variant quantities and the version to send back on admin edits
// @Tags products
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} resdto.ProductStockResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/products/{id}/stock [get]
func (h *ProductStockHandler) GetStock(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id")
		return
	}
	view, err := h.q.GetStock(c.Request.Context(), id)
	if err != nil {
		httperr.AbortWithUsecaseError(c, err)
		return
	}
	res, err := resdto.FromProductStockView(view)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error")
		return
	}
	c.JSON(http.StatusOK, res)
}
