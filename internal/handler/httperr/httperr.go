package httperr

import (
	"errors"
	"net/http"

	"marketplace-catalog/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

// Response is the error envelope every failed request receives.
type Response struct {
	Status int       `json:"-"`
	Error  ErrorBody `json:"error"`
}

type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

const (
	CodeBadRequest    = "BAD_REQUEST"
	CodeUnauthorized  = "UNAUTHORIZED"
	CodeForbidden     = "FORBIDDEN"
	CodeInternalError = "INTERNAL_ERROR"
)

type mapping struct {
	target  error
	status  int
	code    string
	message string
}

// First matching sentinel wins.
var mappings = []mapping{
	{errs.ErrProductNotFound, http.StatusNotFound, "PRODUCT_NOT_FOUND", "Product not found"},
	{errs.ErrVariantNotFound, http.StatusNotFound, "VARIANT_NOT_FOUND", "Variant not found"},
	{errs.ErrReservationNotFound, http.StatusNotFound, "RESERVATION_NOT_FOUND", "Reservation not found"},
	{errs.ErrMissingOptions, http.StatusBadRequest, "MISSING_OPTIONS", "Variant options are required"},
	{errs.ErrInvalidReservationRequest, http.StatusBadRequest, "INVALID_RESERVATION", "Invalid reservation request"},
	{errs.ErrInvalidStockAdjustment, http.StatusBadRequest, "INVALID_ADJUSTMENT", "Invalid stock adjustment"},
	{errs.ErrInsufficientStock, http.StatusUnprocessableEntity, "INSUFFICIENT_STOCK", "Insufficient stock"},
	{errs.ErrVersionConflict, http.StatusConflict, "CONCURRENT_MODIFICATION", "Stock was modified concurrently, retry"},
}

func New(status int, code, msg string) Response {
	return Response{Status: status, Error: ErrorBody{Code: code, Message: msg}}
}

func Internal() Response {
	return New(http.StatusInternalServerError, CodeInternalError, "Internal server error")
}

// Of maps a usecase error to the response the client sees.
func Of(err error) Response {
	for _, m := range mappings {
		if errors.Is(err, m.target) {
			return New(m.status, m.code, m.message)
		}
	}
	return Internal()
}

// StatusOf is Of reduced to the status and public message.
func StatusOf(err error) (int, string) {
	r := Of(err)
	return r.Status, r.Error.Message
}

// AbortWithError keeps err on the context for the request log and writes msg to the client.
func AbortWithError(c *gin.Context, status int, err error, msg string) {
	abort(c, err, New(status, codeForStatus(status), msg))
}

// AbortWithUsecaseError aborts with the response Of assigns to err.
func AbortWithUsecaseError(c *gin.Context, err error) {
	abort(c, err, Of(err))
}

func abort(c *gin.Context, err error, resp Response) {
	if err == nil {
		panic("httperr: aborting without an error")
	}
	_ = c.Error(gin.Error{Err: err, Type: gin.ErrorTypePublic, Meta: resp})
	c.AbortWithStatusJSON(resp.Status, resp)
}

func codeForStatus(status int) string {
	switch status {
	case http.StatusBadRequest:
		return CodeBadRequest
	case http.StatusUnauthorized:
		return CodeUnauthorized
	case http.StatusForbidden:
		return CodeForbidden
	default:
		if status >= http.StatusInternalServerError {
			return CodeInternalError
		}
		return http.StatusText(status)
	}
}
