//go:build unit

package api_test

import (
	"net/http"
	"testing"

	"marketplace-catalog/internal/handler/api"
	resdto "marketplace-catalog/internal/handler/dto/response"
	"marketplace-catalog/internal/handler/middleware"
	"marketplace-catalog/internal/pkg/errs"
	"marketplace-catalog/internal/pkg/jwt"
	"marketplace-catalog/internal/usecase"
	"marketplace-catalog/internal/usecase/commands"
	"marketplace-catalog/tests/common/builder"
	"marketplace-catalog/tests/common/httptest"
	"marketplace-catalog/tests/common/testutil"
	commandsmock "marketplace-catalog/tests/mock/commands"
	queriesmock "marketplace-catalog/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

const (
	adminToken  = "admin-token"
	viewerToken = "viewer-token"
)

// stubValidator resolves fixed tokens to principals.
type stubValidator map[string]usecase.Principal

func (v stubValidator) ValidateToken(token string) (usecase.Principal, error) {
	p, ok := v[token]
	if !ok {
		return usecase.Principal{}, jwt.ErrInvalidToken
	}
	return p, nil
}

type AdminHandlerTestSuite struct {
	suite.Suite
	router           *gin.Engine
	mockCtrl         *gomock.Controller
	mockReservations *commandsmock.MockReservationCommands
	mockStock        *commandsmock.MockAdminStockCommands
	mockProducts     *queriesmock.MockProductStockQueries
}

func (s *AdminHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockReservations = commandsmock.NewMockReservationCommands(s.mockCtrl)
	s.mockStock = commandsmock.NewMockAdminStockCommands(s.mockCtrl)
	s.mockProducts = queriesmock.NewMockProductStockQueries(s.mockCtrl)

	auth := middleware.NewAuthMiddleware(stubValidator{
		adminToken:  {Subject: "ops-1", Role: jwt.RoleAdmin},
		viewerToken: {Subject: "u-1", Role: "customer"},
	})
	admin := api.NewAdminHandler(s.mockReservations, s.mockStock)
	products := api.NewProductStockHandler(s.mockProducts)

	s.router.GET("/products/:id/stock", products.GetStock)
	group := s.router.Group("/admin", auth.RequireAuth(), auth.RequireAdmin())
	group.POST("/reservations/expire", admin.ExpireReservations)
	group.PATCH("/products/:id/stock", admin.AdjustStock)
}

func (s *AdminHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestAdminHandlerSuite(t *testing.T) {
	suite.Run(t, new(AdminHandlerTestSuite))
}

func (s *AdminHandlerTestSuite) TestGetStock() {
	b := builder.NewStockBuilder().With(func(sb *builder.StockBuilder) { sb.Version = 7 })
	url := "/products/" + b.ProductID.String() + "/stock"

	s.Run("success: returns variants with the current version", func() {
		s.mockProducts.EXPECT().GetStock(gomock.Any(), b.ProductID).Return(b.BuildView(), nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")

		var body resdto.ProductStockResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(int64(7), body.Version)
		s.Require().Len(body.Variants, 1)
		s.Equal(b.Quantity, body.Variants[0].Quantity)
		s.True(body.Variants[0].Available)
	})

	s.Run("error: invalid id is 400", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/products/abc/stock", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid id")
	})

	s.Run("error: unknown product is 404", func() {
		s.mockProducts.EXPECT().GetStock(gomock.Any(), b.ProductID).Return(nil, errs.ErrProductNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Product not found")
	})
}

func (s *AdminHandlerTestSuite) TestExpireReservations() {
	url := "/admin/reservations/expire"

	s.Run("success: returns the sweep summary", func() {
		s.mockReservations.EXPECT().ExpireReservations(gomock.Any()).
			Return(commands.ExpireSummary{Scanned: 3, Expired: 2, Skipped: 1}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, adminToken)

		var body resdto.ExpireSummaryResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(resdto.ExpireSummaryResponse{Scanned: 3, Expired: 2, Skipped: 1}, body)
	})

	s.Run("error: missing token is 401", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Access token required")
	})

	s.Run("error: unknown token is 401", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "forged")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Invalid or expired token")
	})

	s.Run("error: non-admin is 403", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, viewerToken)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "Insufficient permissions")
	})
}

func (s *AdminHandlerTestSuite) TestAdjustStock() {
	b := builder.NewStockBuilder()
	url := "/admin/products/" + b.ProductID.String() + "/stock"
	reqBody := b.BuildAdjustRequestDTO()

	s.Run("success: actor is the token subject", func() {
		want := commands.AdjustStockInput{
			ProductID: b.ProductID,
			Options:   b.Options,
			Delta:     b.Delta,
			Actor:     "ops-1",
		}
		s.mockStock.EXPECT().AdjustStock(gomock.Any(), want).Return(b.BuildMutationResult(), nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, reqBody, adminToken)

		var body resdto.StockAdjustmentResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(b.Quantity+b.Delta, body.NewQuantity)
		s.Equal(int64(1), body.NewVersion)
	})

	s.Run("error: validation", func() {
		cases := []struct {
			name   string
			mutate func(m map[string]any)
		}{
			{name: "missing delta", mutate: testutil.Field("delta", nil)},
			{name: "zero delta", mutate: testutil.Field("delta", 0)},
			{name: "missing options", mutate: testutil.Field("options", nil)},
			{name: "negative expectedVersion", mutate: testutil.Field("expectedVersion", -1)},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, testutil.DtoMap(s.T(), reqBody, tc.mutate), adminToken)
				s.Equal(http.StatusBadRequest, rec.Code, rec.Body.String())
			})
		}
	})

	s.Run("error: stale version is 409", func() {
		s.mockStock.EXPECT().AdjustStock(gomock.Any(), gomock.Any()).
			Return(commands.MutationResult{}, errs.Wrap(errs.ErrVersionConflict, "adjust")).Times(1)

		body := testutil.DtoMap(s.T(), reqBody, testutil.Field("expectedVersion", 3))
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, body, adminToken)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "modified concurrently")
	})

	s.Run("error: write-off below zero is 422", func() {
		s.mockStock.EXPECT().AdjustStock(gomock.Any(), gomock.Any()).
			Return(commands.MutationResult{}, errs.ErrInsufficientStock).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, reqBody, adminToken)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnprocessableEntity, "Insufficient stock")
	})

	s.Run("error: non-admin is 403", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, reqBody, viewerToken)
		s.Equal(http.StatusForbidden, rec.Code)
	})
}
