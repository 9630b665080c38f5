package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/srgjo27/shutterbook/internal/adapter/handler"
	"github.com/srgjo27/shutterbook/internal/adapter/handler/middleware"
	"github.com/srgjo27/shutterbook/internal/core/apperrors"
	"github.com/srgjo27/shutterbook/internal/core/domain"
	"github.com/srgjo27/shutterbook/internal/core/ports/mocks"
	"github.com/srgjo27/shutterbook/internal/core/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	server        http.Handler
	auth          *middleware.Authenticator
	photographers *mocks.PhotographerRepository
	bookings      *mocks.BookingRepository
	reviews       *mocks.ReviewRepository
	messages      *mocks.MessageRepository
	users         *mocks.UserRepository
}

func newFixture(t *testing.T) *fixture {
	f := &fixture{
		auth:          middleware.NewAuthenticator("router-test-secret"),
		photographers: mocks.NewPhotographerRepository(t),
		bookings:      mocks.NewBookingRepository(t),
		reviews:       mocks.NewReviewRepository(t),
		messages:      mocks.NewMessageRepository(t),
		users:         mocks.NewUserRepository(t),
	}

	searchSvc := services.NewSearchService(f.photographers, f.reviews, nil)
	bookingSvc := services.NewBookingService(f.bookings, f.photographers)

	f.server = handler.NewRouter(handler.Handlers{
		Photographers: handler.NewPhotographerHandler(searchSvc, services.NewProfileService(f.photographers, searchSvc)),
		Bookings:      handler.NewBookingHandler(bookingSvc, services.NewReviewService(f.reviews, f.bookings, f.photographers, searchSvc)),
		Messages:      handler.NewMessageHandler(services.NewMessageService(f.messages, f.users)),
		Admin:         handler.NewAdminHandler(services.NewStatsService(searchSvc, f.bookings, f.reviews, f.users)),
	}, handler.RouterConfig{
		Auth:           f.auth,
		Limiter:        middleware.NewRateLimiter(100, 100),
		Metrics:        middleware.NewMetrics(),
		AllowedOrigins: []string{"http://localhost:3000"},
	})

	return f
}

func (f *fixture) token(t *testing.T, id domain.Identity) string {
	token, err := f.auth.SignToken(id, time.Hour)
	require.NoError(t, err)
	return "Bearer " + token
}

func (f *fixture) do(method, path, auth, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	rec := httptest.NewRecorder()
	f.server.ServeHTTP(rec, req)
	return rec
}

func identity(role domain.Role) domain.Identity {
	return domain.Identity{UserID: uuid.New(), Name: string(role), Role: role}
}

func photographerAt(rate domain.Money, rating float64) domain.Photographer {
	return domain.Photographer{
		PhotographerProfile: domain.PhotographerProfile{
			ID:              uuid.New(),
			UserID:          uuid.New(),
			Location:        "Jakarta",
			HourlyRate:      rate,
			Rating:          rating,
			Specialties:     []string{"wedding"},
			Availability:    true,
			PortfolioImages: []string{},
		},
		Name: "Photographer",
	}
}

func TestRouter_Health(t *testing.T) {
	f := newFixture(t)

	rec := f.do(http.MethodGet, "/health", "", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestRouter_SearchPhotographers(t *testing.T) {
	f := newFixture(t)

	cheap, mid, pricey := photographerAt(8000, 4.1), photographerAt(12000, 4.8), photographerAt(30000, 5.0)
	f.photographers.On("ListAll", mock.Anything).Return([]domain.Photographer{pricey, cheap, mid}, nil)

	rec := f.do(http.MethodGet, "/photographers?sort=price-low&max_price=20000", "", "")

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Photographers []domain.Photographer `json:"photographers"`
		Count         int                   `json:"count"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 2, body.Count)
	assert.Equal(t, cheap.UserID, body.Photographers[0].UserID)
	assert.Equal(t, mid.UserID, body.Photographers[1].UserID)
}

func TestRouter_SearchPhotographers_BadQuery(t *testing.T) {
	f := newFixture(t)

	for _, q := range []string{"sort=cheapest", "min_price=ten", "min_rating=9"} {
		rec := f.do(http.MethodGet, "/photographers?"+q, "", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code, q)
	}
}

func TestRouter_CreateBooking(t *testing.T) {
	photographer := photographerAt(15000, 4.9)
	body := `{"photographer_id":"` + photographer.UserID.String() + `","date":"2099-06-01T09:00:00Z","duration_hours":3,"location":"Jakarta","type":"wedding"}`

	t.Run("anonymous", func(t *testing.T) {
		f := newFixture(t)
		rec := f.do(http.MethodPost, "/bookings", "", body)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("photographers cannot book", func(t *testing.T) {
		f := newFixture(t)
		rec := f.do(http.MethodPost, "/bookings", f.token(t, identity(domain.RolePhotographer)), body)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("malformed body", func(t *testing.T) {
		f := newFixture(t)
		rec := f.do(http.MethodPost, "/bookings", f.token(t, identity(domain.RoleClient)), "{")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("client books with server side price", func(t *testing.T) {
		f := newFixture(t)
		f.photographers.On("GetByUserID", mock.Anything, photographer.UserID).Return(&photographer, nil)
		f.bookings.On("CreateBooking", mock.Anything, mock.AnythingOfType("*domain.Booking")).Return(nil)

		rec := f.do(http.MethodPost, "/bookings", f.token(t, identity(domain.RoleClient)), body)

		require.Equal(t, http.StatusCreated, rec.Code)
		var resp services.CreateBookingResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, int64(45000), resp.TotalPrice)
		assert.Equal(t, "pending", resp.Status)
	})
}

func TestRouter_ConfirmBooking_InvalidID(t *testing.T) {
	f := newFixture(t)

	rec := f.do(http.MethodPost, "/bookings/not-a-uuid/confirm", f.token(t, identity(domain.RolePhotographer)), "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouter_ConfirmBooking_NotFound(t *testing.T) {
	f := newFixture(t)
	id := uuid.New()
	f.bookings.On("GetByID", mock.Anything, id).Return(nil, apperrors.NewNotFoundError("booking not found"))

	rec := f.do(http.MethodPost, "/bookings/"+id.String()+"/confirm", f.token(t, identity(domain.RolePhotographer)), "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouter_AdminStats_RequiresAdmin(t *testing.T) {
	f := newFixture(t)

	rec := f.do(http.MethodGet, "/admin/stats", f.token(t, identity(domain.RoleClient)), "")

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRouter_RemovePortfolioImage_BadIndex(t *testing.T) {
	f := newFixture(t)

	rec := f.do(http.MethodDelete, "/me/portfolio/first", f.token(t, identity(domain.RolePhotographer)), "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouter_UnknownRoute(t *testing.T) {
	f := newFixture(t)

	rec := f.do(http.MethodGet, "/nope", "", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"route not found"}`, rec.Body.String())
}
