package api

import (
	"net/http"

	reqdto "marketplace-catalog/internal/handler/dto/request"
	resdto "marketplace-catalog/internal/handler/dto/response"
	"marketplace-catalog/internal/handler/httperr"
	"marketplace-catalog/internal/handler/middleware"
	"marketplace-catalog/internal/usecase/commands"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AdminHandler struct {
	reservations commands.ReservationCommands
	stock        commands.AdminStockCommands
}

func NewAdminHandler(reservations commands.ReservationCommands, stock commands.AdminStockCommands) *AdminHandler {
	return &AdminHandler{reservations: reservations, stock: stock}
}

// @Summary Expire reservations now
// @Description Run one expiration sweep outside the schedule
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.ExpireSummaryResponse
// @Failure 401 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Router /api/admin/reservations/expire [post]
func (h *AdminHandler) ExpireReservations(c *gin.Context) {
	summary, err := h.reservations.ExpireReservations(c.Request.Context())
	if err != nil {
		httperr.AbortWithUsecaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromExpireSummary(summary))
}

// @Summary Adjust variant stock
// @Description Restock or write off a variant. expectedVersion guards against stale edits.
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Product ID"
// @Param request body reqdto.AdjustStockRequest true "Adjustment"
// @Success 200 {object} resdto.StockAdjustmentResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /api/admin/products/{id}/stock [patch]
func (h *AdminHandler) AdjustStock(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id")
		return
	}
	var req reqdto.AdjustStockRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request")
		return
	}
	actor, _ := middleware.GetSubject(c)

	result, err := h.stock.AdjustStock(c.Request.Context(), req.ToInput(id, actor))
	if err != nil {
		httperr.AbortWithUsecaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromMutationResult(result))
}
