//go:build e2e

package reservation_test

import (
	"context"
	"net/http"
	"sync"
	"testing"

	reqdto "marketplace-catalog/internal/handler/dto/request"
	resdto "marketplace-catalog/internal/handler/dto/response"
	"marketplace-catalog/tests/common/authtest"
	"marketplace-catalog/tests/common/builder"
	"marketplace-catalog/tests/common/dbtest"
	"marketplace-catalog/tests/common/httptest"
	"marketplace-catalog/tests/e2e"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	reserveURL = "/api/reservations/reserve"
	confirmURL = "/api/reservations/confirm/"
	releaseURL = "/api/reservations/release/"
	latestURL  = "/api/reservations/latest/"
	expireURL  = "/api/admin/reservations/expire"
)

var blackM = map[string]string{"Size": "M", "Color": "Black"}

type ReservationSuite struct {
	e2e.SharedSuite
}

func (s *ReservationSuite) SetupSubTest() {
	s.SharedSuite.SetupSubTest()
}

func TestReservationSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(ReservationSuite))
}

func (s *ReservationSuite) reserveRequest(userID string, productID uuid.UUID, qty int) reqdto.ReserveStockRequest {
	return builder.NewReservationBuilder().With(func(r *builder.ReservationBuilder) {
		r.UserID = userID
		r.ProductID = productID
		r.Options = blackM
		r.Quantity = qty
	}).BuildRequestDTO()
}

// =============================================================================
// TestReserveAndRelease
// =============================================================================

func (s *ReservationSuite) TestReserveAndRelease() {
	s.Run("予約で在庫が減り解放で戻る", func() {
		t := s.T()
		pid := dbtest.CreateTestProduct(t, s.DB, "Tee", dbtest.Variant(blackM, 5))

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, reserveURL, s.reserveRequest("u-1", pid, 3), "")
		var created resdto.ReservationResponse
		httptest.AssertSuccessResponse(t, w, http.StatusCreated, &created)
		require.Equal(t, "pending", created.Status)

		state := dbtest.LoadProductState(t, s.DB, pid)
		require.Equal(t, []int{2}, state.Quantities)
		require.Equal(t, int64(1), state.Version)

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, latestURL+"u-1", nil, "")
		var latest resdto.ReservationResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &latest)
		require.Equal(t, created.ID, latest.ID)

		w = httptest.PerformRequest(t, s.Router, http.MethodPost, releaseURL+"u-1", nil, "")
		var released resdto.ReservationResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &released)
		require.Equal(t, "released", released.Status)

		state = dbtest.LoadProductState(t, s.DB, pid)
		require.Equal(t, []int{5}, state.Quantities)
		require.Equal(t, int64(2), state.Version)
		require.Equal(t, 2, dbtest.CountMovements(t, s.DB, created.ID.String(), "applied"))

		// idempotent
		w = httptest.PerformRequest(t, s.Router, http.MethodPost, releaseURL+"u-1", nil, "")
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &released)
		require.Equal(t, []int{5}, dbtest.LoadProductState(t, s.DB, pid).Quantities)
	})

	s.Run("在庫不足は422で何も減らない", func() {
		t := s.T()
		a := dbtest.CreateTestProduct(t, s.DB, "A", dbtest.Variant(blackM, 5))
		b := dbtest.CreateTestProduct(t, s.DB, "B", dbtest.Variant(blackM, 1))

		req := s.reserveRequest("u-2", a, 2)
		req.Items = append(req.Items, reqdto.ReserveItemRequest{ProductID: b, Options: blackM, Quantity: 2})

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, reserveURL, req, "")
		res := httptest.AssertErrorResponse(t, w, http.StatusUnprocessableEntity, "Insufficient stock")
		require.Equal(t, "INSUFFICIENT_STOCK", res.Error.Code)

		require.Equal(t, []int{5}, dbtest.LoadProductState(t, s.DB, a).Quantities)
		require.Equal(t, []int{1}, dbtest.LoadProductState(t, s.DB, b).Quantities)
	})

	s.Run("存在しないバリアントは404", func() {
		t := s.T()
		pid := dbtest.CreateTestProduct(t, s.DB, "Tee", dbtest.Variant(blackM, 5))

		req := s.reserveRequest("u-3", pid, 1)
		req.Items[0].Options = map[string]string{"Size": "XL", "Color": "Black"}

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, reserveURL, req, "")
		httptest.AssertErrorResponse(t, w, http.StatusNotFound, "Variant not found")
	})

	s.Run("予約がないユーザーは404", func() {
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, confirmURL+"nobody", nil, "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusNotFound, "Reservation not found")
	})
}

// =============================================================================
// TestConfirm
// =============================================================================

func (s *ReservationSuite) TestConfirm() {
	s.Run("確定後は在庫を戻さない", func() {
		t := s.T()
		pid := dbtest.CreateTestProduct(t, s.DB, "Tee", dbtest.Variant(blackM, 5))

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, reserveURL, s.reserveRequest("u-1", pid, 2), "")
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		w = httptest.PerformRequest(t, s.Router, http.MethodPost, confirmURL+"u-1", nil, "")
		var confirmed resdto.ReservationResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &confirmed)
		require.Equal(t, "confirmed", confirmed.Status)

		w = httptest.PerformRequest(t, s.Router, http.MethodPost, releaseURL+"u-1", nil, "")
		var after resdto.ReservationResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &after)
		require.Equal(t, "confirmed", after.Status)
		require.Equal(t, []int{3}, dbtest.LoadProductState(t, s.DB, pid).Quantities)
	})
}

// =============================================================================
// TestExpire
// =============================================================================

func (s *ReservationSuite) TestExpire() {
	s.Run("スイーパーが期限切れを回収する", func() {
		t := s.T()
		pid := dbtest.CreateTestProduct(t, s.DB, "Tee", dbtest.Variant(blackM, 5))

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, reserveURL, s.reserveRequest("u-1", pid, 4), "")
		var created resdto.ReservationResponse
		httptest.AssertSuccessResponse(t, w, http.StatusCreated, &created)
		dbtest.ExpireReservation(t, s.DB, created.ID)

		summary, err := s.Sweeper.RunOnce(context.Background())
		require.NoError(t, err)
		require.Equal(t, 1, summary.Expired)

		require.Equal(t, "expired", dbtest.ReservationStatus(t, s.DB, created.ID))
		require.Equal(t, []int{5}, dbtest.LoadProductState(t, s.DB, pid).Quantities)

		again, err := s.Sweeper.RunOnce(context.Background())
		require.NoError(t, err)
		require.Equal(t, 0, again.Scanned)
	})

	s.Run("管理APIからも回収できる", func() {
		t := s.T()
		pid := dbtest.CreateTestProduct(t, s.DB, "Tee", dbtest.Variant(blackM, 5))

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, reserveURL, s.reserveRequest("u-2", pid, 1), "")
		var created resdto.ReservationResponse
		httptest.AssertSuccessResponse(t, w, http.StatusCreated, &created)
		dbtest.ExpireReservation(t, s.DB, created.ID)

		w = httptest.PerformRequest(t, s.Router, http.MethodPost, expireURL, nil, "")
		require.Equal(t, http.StatusUnauthorized, w.Code)

		token := authtest.NewJWTHelper(s.Config.JWT).AdminToken(t, "ops-1")
		w = httptest.PerformRequest(t, s.Router, http.MethodPost, expireURL, nil, token)
		var summary resdto.ExpireSummaryResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &summary)
		require.Equal(t, 1, summary.Expired)

		w = httptest.PerformRequest(t, s.Router, http.MethodPost, confirmURL+"u-2", nil, "")
		var after resdto.ReservationResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &after)
		require.Equal(t, "expired", after.Status)
	})
}

// =============================================================================
// TestConcurrentReserve
// =============================================================================

func (s *ReservationSuite) TestConcurrentReserve() {
	s.Run("同時予約でも売り越さない", func() {
		t := s.T()
		const (
			stock   = 10
			workers = 25
		)
		pid := dbtest.CreateTestProduct(t, s.DB, "Tee", dbtest.Variant(blackM, stock))

		var (
			wg       sync.WaitGroup
			mu       sync.Mutex
			reserved int
			codes    = map[int]int{}
		)
		for range workers {
			wg.Add(1)
			go func() {
				defer wg.Done()
				userID := uuid.NewString()
				w := httptest.PerformRequest(t, s.Router, http.MethodPost, reserveURL, s.reserveRequest(userID, pid, 1), "")
				mu.Lock()
				defer mu.Unlock()
				codes[w.Code]++
				if w.Code == http.StatusCreated {
					reserved++
				}
			}()
		}
		wg.Wait()

		for code := range codes {
			require.Contains(t, []int{http.StatusCreated, http.StatusConflict, http.StatusUnprocessableEntity}, code)
		}
		state := dbtest.LoadProductState(t, s.DB, pid)
		require.GreaterOrEqual(t, state.Quantities[0], 0)
		require.Equal(t, stock-reserved, state.Quantities[0])
		require.Equal(t, int64(reserved), state.Version)
	})
}
