package api

import (
	"net/http"
	"strings"

	reqdto "marketplace-catalog/internal/handler/dto/request"
	resdto "marketplace-catalog/internal/handler/dto/response"
	"marketplace-catalog/internal/handler/httperr"
	"marketplace-catalog/internal/usecase/commands"
	"marketplace-catalog/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type ReservationHandler struct {
	cmds commands.ReservationCommands
	q    queries.ReservationQueries
}

func NewReservationHandler(cmds commands.ReservationCommands, q queries.ReservationQueries) *ReservationHandler {
	return &ReservationHandler{cmds: cmds, q: q}
}

// @Summary Reserve stock
// @Description Hold stock for a user's checkout. All items are reserved or none.
// @Tags reservations
// @Accept json
// @Produce json
// @Param request body reqdto.ReserveStockRequest true "Reserve request"
// @Success 201 {object} resdto.ReservationResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /api/reservations/reserve [post]
func (h *ReservationHandler) Reserve(c *gin.Context) {
	var req reqdto.ReserveStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request")
		return
	}

	view, err := h.cmds.ReserveStock(c.Request.Context(), req.ToInput())
	if err != nil {
		httperr.AbortWithUsecaseError(c, err)
		return
	}
	h.render(c, http.StatusCreated, view)
}

// @Summary Confirm reservation
// @Description Confirm the latest reservation of a user after payment
// @Tags reservations
// @Produce json
// @Param userId path string true "User ID"
// @Success 200 {object} resdto.ReservationResponse
// @Failure 404 {object} httperr.Response
// @Router /api/reservations/confirm/{userId} [post]
func (h *ReservationHandler) Confirm(c *gin.Context) {
	userID, ok := userParam(c)
	if !ok {
		return
	}
	view, err := h.cmds.ConfirmReservation(c.Request.Context(), userID)
	if err != nil {
		httperr.AbortWithUsecaseError(c, err)
		return
	}
	h.render(c, http.StatusOK, view)
}

// @Summary Release reservation
// @Description Release the latest pending reservation of a user and restore its stock
// @Tags reservations
// @Produce json
// @Param userId path string true "User ID"
// @Success 200 {object} resdto.ReservationResponse
// @Failure 404 {object} httperr.Response
// @Router /api/reservations/release/{userId} [post]
func (h *ReservationHandler) Release(c *gin.Context) {
	userID, ok := userParam(c)
	if !ok {
		return
	}
	view, err := h.cmds.ReleaseReservation(c.Request.Context(), userID)
	if err != nil {
		httperr.AbortWithUsecaseError(c, err)
		return
	}
	h.render(c, http.StatusOK, view)
}

// @Summary Latest reservation
// @Tags reservations
// @Produce json
// @Param userId path string true "User ID"
// @Success 200 {object} resdto.ReservationResponse
// @Failure 404 {object} httperr.Response
// @Router /api/reservations/latest/{userId} [get]
func (h *ReservationHandler) Latest(c *gin.Context) {
	userID, ok := userParam(c)
	if !ok {
		return
	}
	view, err := h.q.GetLatestByUser(c.Request.Context(), userID)
	if err != nil {
		httperr.AbortWithUsecaseError(c, err)
		return
	}
	h.render(c, http.StatusOK, view)
}

func (h *ReservationHandler) render(c *gin.Context, status int, view *queries.ReservationView) {
	res, err := resdto.FromReservationView(view)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error")
		return
	}
	c.JSON(status, res)
}

func userParam(c *gin.Context) (string, bool) {
	userID := strings.TrimSpace(c.Param("userId"))
	if userID == "" {
		httperr.AbortWithError(c, http.StatusBadRequest, errMissingUserID, "userId is required")
		return "", false
	}
	return userID, true
}
