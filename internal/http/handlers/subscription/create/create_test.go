package create

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/d-directory/d-directory/internal/models"
)

// MockService реализует интерфейс create.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Replace(ctx context.Context, contractorID int, req models.DummySubscription) (int, error) {
	args := m.Called(ctx, contractorID, req)
	return args.Int(0), args.Error(1)
}

func TestCreateSubscriptionHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	validBody := models.DummySubscription{
		PlanID:            2,
		BillingCycleStart: "2025-06-01T00:00:00Z",
		BillingCycleEnd:   "2025-07-01T00:00:00Z",
	}

	tests := []struct {
		name           string
		contractorID   string
		requestBody    interface{}
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:         "успешное оформление подписки",
			contractorID: "7",
			requestBody:  validBody,
			setupMock: func(m *MockService) {
				m.On("Replace", mock.Anything, 7, mock.AnythingOfType("models.DummySubscription")).
					Return(11, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"subscription_id":11`,
		},
		{
			name:           "некорректный id подрядчика",
			contractorID:   "abc",
			requestBody:    validBody,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"invalid contractor id"}`,
		},
		{
			name:           "некорректный JSON",
			contractorID:   "7",
			requestBody:    "not a json",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"invalid request body"}`,
		},
		{
			name:         "ошибка валидации",
			contractorID: "7",
			requestBody: models.DummySubscription{
				PlanID:          2,
				BillingCycleEnd: "2025-07-01T00:00:00Z",
			},
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `field BillingCycleStart is a required field`,
		},
		{
			name:         "подрядчик не найден",
			contractorID: "7",
			requestBody:  validBody,
			setupMock: func(m *MockService) {
				m.On("Replace", mock.Anything, 7, mock.AnythingOfType("models.DummySubscription")).
					Return(0, models.ErrContractorNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"status":"Error","error":"contractor not found"}`,
		},
		{
			name:         "план не найден",
			contractorID: "7",
			requestBody:  validBody,
			setupMock: func(m *MockService) {
				m.On("Replace", mock.Anything, 7, mock.AnythingOfType("models.DummySubscription")).
					Return(0, models.ErrPlanNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"status":"Error","error":"plan not found"}`,
		},
		{
			name:         "даты цикла не в формате RFC 3339",
			contractorID: "7",
			requestBody: models.DummySubscription{
				PlanID:            2,
				BillingCycleStart: "2025-06-01",
				BillingCycleEnd:   "2025-07-01",
			},
			setupMock: func(m *MockService) {
				m.On("Replace", mock.Anything, 7, mock.AnythingOfType("models.DummySubscription")).
					Return(0, models.ErrInvalidBillingCycle)
			},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `billing cycle dates must be RFC 3339 with end after start`,
		},
		{
			name:         "конец цикла раньше начала",
			contractorID: "7",
			requestBody: models.DummySubscription{
				PlanID:            2,
				BillingCycleStart: "2025-07-01T00:00:00Z",
				BillingCycleEnd:   "2025-06-01T00:00:00Z",
			},
			setupMock: func(m *MockService) {
				m.On("Replace", mock.Anything, 7, mock.AnythingOfType("models.DummySubscription")).
					Return(0, models.ErrInvalidBillingCycle)
			},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `billing cycle dates must be RFC 3339 with end after start`,
		},
		{
			name:         "ошибка сервиса",
			contractorID: "7",
			requestBody:  validBody,
			setupMock: func(m *MockService) {
				m.On("Replace", mock.Anything, 7, mock.AnythingOfType("models.DummySubscription")).
					Return(0, errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","error":"could not create subscription"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			var body []byte
			var err error
			if str, ok := tt.requestBody.(string); ok {
				body = []byte(str)
			} else {
				body, err = json.Marshal(tt.requestBody)
				assert.NoError(t, err)
			}

			req := httptest.NewRequest(http.MethodPost,
				"/contractors/"+tt.contractorID+"/subscription", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			req = req.WithContext(context.WithValue(req.Context(), middleware.RequestIDKey, "req-id"))

			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", tt.contractorID)
			req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)

			mockService.AssertExpectations(t)
		})
	}
}
