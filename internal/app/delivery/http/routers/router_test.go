package routers

import (
	"bytes"
	"context"
	"doccare-service/internal/app/config"
	"doccare-service/internal/app/delivery/http/controllers"
	"doccare-service/internal/app/delivery/http/middlewares"
	"doccare-service/internal/app/models"
	"doccare-service/internal/app/services/shared/jwtmanager"
	"doccare-service/internal/app/services/shared/ratelimiter"
	"doccare-service/internal/app/services/shared/redis"
	"doccare-service/internal/pkg/constvars"
	"doccare-service/internal/pkg/dto/requests"
	"doccare-service/internal/pkg/dto/responses"
	"doccare-service/internal/pkg/exceptions"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockAppointmentUsecase struct {
	mock.Mock
}

func (m *MockAppointmentUsecase) BookAppointment(ctx context.Context, actor models.Actor, request *requests.BookAppointment) (*models.Appointment, error) {
	args := m.Called(ctx, actor, request)
	appointment, _ := args.Get(0).(*models.Appointment)
	return appointment, args.Error(1)
}

func (m *MockAppointmentUsecase) GetAppointment(ctx context.Context, actor models.Actor, appointmentID string) (*models.Appointment, error) {
	args := m.Called(ctx, actor, appointmentID)
	appointment, _ := args.Get(0).(*models.Appointment)
	return appointment, args.Error(1)
}

func (m *MockAppointmentUsecase) ListAppointments(ctx context.Context, actor models.Actor, filter models.AppointmentFilter) ([]models.Appointment, *responses.Pagination, error) {
	args := m.Called(ctx, actor, filter)
	appointments, _ := args.Get(0).([]models.Appointment)
	pagination, _ := args.Get(1).(*responses.Pagination)
	return appointments, pagination, args.Error(2)
}

func (m *MockAppointmentUsecase) CancelAppointment(ctx context.Context, actor models.Actor, appointmentID string, request *requests.CancelAppointment) (*models.Appointment, error) {
	args := m.Called(ctx, actor, appointmentID, request)
	appointment, _ := args.Get(0).(*models.Appointment)
	return appointment, args.Error(1)
}

func (m *MockAppointmentUsecase) RescheduleAppointment(ctx context.Context, actor models.Actor, appointmentID string, request *requests.RescheduleAppointment) (*responses.RescheduleAppointment, error) {
	args := m.Called(ctx, actor, appointmentID, request)
	response, _ := args.Get(0).(*responses.RescheduleAppointment)
	return response, args.Error(1)
}

func (m *MockAppointmentUsecase) UpdateAppointmentStatus(ctx context.Context, actor models.Actor, appointmentID string, request *requests.UpdateAppointmentStatus) (*models.Appointment, error) {
	args := m.Called(ctx, actor, appointmentID, request)
	appointment, _ := args.Get(0).(*models.Appointment)
	return appointment, args.Error(1)
}

func (m *MockAppointmentUsecase) ListAvailableSlots(ctx context.Context, doctorID, date string) (*responses.AvailableSlots, error) {
	args := m.Called(ctx, doctorID, date)
	slots, _ := args.Get(0).(*responses.AvailableSlots)
	return slots, args.Error(1)
}

type MockPaymentUsecase struct {
	mock.Mock
}

func (m *MockPaymentUsecase) CreatePaymentRecord(ctx context.Context, appointmentID string) (*models.Payment, error) {
	args := m.Called(ctx, appointmentID)
	payment, _ := args.Get(0).(*models.Payment)
	return payment, args.Error(1)
}

func (m *MockPaymentUsecase) SubmitPayment(ctx context.Context, actor models.Actor, appointmentID string, request *requests.SubmitPayment) (*models.Payment, error) {
	args := m.Called(ctx, actor, appointmentID, request)
	payment, _ := args.Get(0).(*models.Payment)
	return payment, args.Error(1)
}

func (m *MockPaymentUsecase) GetPaymentByAppointment(ctx context.Context, actor models.Actor, appointmentID string) (*models.Payment, error) {
	args := m.Called(ctx, actor, appointmentID)
	payment, _ := args.Get(0).(*models.Payment)
	return payment, args.Error(1)
}

func (m *MockPaymentUsecase) TransferPaymentToRescheduledAppointment(ctx context.Context, oldAppointmentID, newAppointmentID string) (*models.Payment, error) {
	args := m.Called(ctx, oldAppointmentID, newAppointmentID)
	payment, _ := args.Get(0).(*models.Payment)
	return payment, args.Error(1)
}

func (m *MockPaymentUsecase) PrepareRescheduledPayment(ctx context.Context, oldAppointmentID, newAppointmentID string) (*models.Payment, error) {
	args := m.Called(ctx, oldAppointmentID, newAppointmentID)
	payment, _ := args.Get(0).(*models.Payment)
	return payment, args.Error(1)
}

func (m *MockPaymentUsecase) DiscardRescheduledPayment(ctx context.Context, newAppointmentID string) error {
	return m.Called(ctx, newAppointmentID).Error(0)
}

func (m *MockPaymentUsecase) ExpirePayment(ctx context.Context, payment *models.Payment) error {
	return m.Called(ctx, payment).Error(0)
}

func (m *MockPaymentUsecase) ExpireOverduePayments(ctx context.Context, now time.Time) (models.SweepStats, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(models.SweepStats), args.Error(1)
}

type MockConsultationUsecase struct {
	mock.Mock
}

func (m *MockConsultationUsecase) StartConsultation(ctx context.Context, actor models.Actor, appointmentID string) (*responses.ConsultationState, error) {
	args := m.Called(ctx, actor, appointmentID)
	state, _ := args.Get(0).(*responses.ConsultationState)
	return state, args.Error(1)
}

func (m *MockConsultationUsecase) CompleteConsultation(ctx context.Context, appointmentID string) (*models.Appointment, error) {
	args := m.Called(ctx, appointmentID)
	appointment, _ := args.Get(0).(*models.Appointment)
	return appointment, args.Error(1)
}

func (m *MockConsultationUsecase) CompleteExpiredConsultations(ctx context.Context, now time.Time) (models.SweepStats, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(models.SweepStats), args.Error(1)
}

func (m *MockConsultationUsecase) GetConsultationState(ctx context.Context, actor models.Actor, appointmentID string) (*responses.ConsultationState, error) {
	args := m.Called(ctx, actor, appointmentID)
	state, _ := args.Get(0).(*responses.ConsultationState)
	return state, args.Error(1)
}

func (m *MockConsultationUsecase) CanRateConsultation(ctx context.Context, actor models.Actor, appointmentID string) (bool, error) {
	args := m.Called(ctx, actor, appointmentID)
	return args.Bool(0), args.Error(1)
}

func (m *MockConsultationUsecase) IsConsultationActive(start time.Time) bool {
	return m.Called(start).Bool(0)
}

func (m *MockConsultationUsecase) RemainingTime(start time.Time) time.Duration {
	return m.Called(start).Get(0).(time.Duration)
}

type MockSweepRunner struct {
	mock.Mock
}

func (m *MockSweepRunner) Run(ctx context.Context, name string) (models.SweepStats, error) {
	args := m.Called(ctx, name)
	return args.Get(0).(models.SweepStats), args.Error(1)
}

const testAPIKey = "test-sweep-api-key-12345"

var (
	testPatient = models.Actor{ID: "patient-1", Role: models.ActorRolePatient}
	testDoctor  = models.Actor{ID: "doctor-1", Role: models.ActorRoleDoctor}
)

type routerFixture struct {
	router       *chi.Mux
	jwtManager   *jwtmanager.JWTManager
	appointments *MockAppointmentUsecase
	payments     *MockPaymentUsecase
	consultation *MockConsultationUsecase
	sweeps       *MockSweepRunner
}

func newRouterFixture(t *testing.T) *routerFixture {
	t.Helper()
	logger := zap.NewNop()
	internalConfig := &config.InternalConfig{
		App: config.App{
			Version:              "v1",
			EndpointPrefix:       "api",
			BaseUrl:              "http://localhost:8080/api/v1",
			MaxRequests:          1000,
			SweepAPIKey:          testAPIKey,
			SweepAPIKeyRateLimit: 10,
		},
		JWT: config.AppJWT{Secret: "s3cret", Issuer: "doccare-service", TokenTTLInMinutes: 5},
	}

	jwtManager, err := jwtmanager.NewJWTManager(internalConfig, logger)
	require.NoError(t, err)
	limiter := ratelimiter.NewResourceLimiter(redis.NewMemoryRedisRepository(nil), logger)
	middlewareInstance := middlewares.NewMiddlewares(logger, internalConfig, jwtManager, limiter)

	fixture := &routerFixture{
		router:       chi.NewRouter(),
		jwtManager:   jwtManager,
		appointments: new(MockAppointmentUsecase),
		payments:     new(MockPaymentUsecase),
		consultation: new(MockConsultationUsecase),
		sweeps:       new(MockSweepRunner),
	}
	SetupRoutes(fixture.router, internalConfig, middlewareInstance, Controllers{
		Appointment:  controllers.NewAppointmentController(logger, fixture.appointments, internalConfig),
		Payment:      controllers.NewPaymentController(logger, fixture.payments, internalConfig),
		Consultation: controllers.NewConsultationController(logger, fixture.consultation, internalConfig),
		Sweep:        controllers.NewSweepController(logger, fixture.sweeps),
	})
	return fixture
}

func (f *routerFixture) do(t *testing.T, method, path string, actor *models.Actor, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var payload *bytes.Buffer
	if body != nil {
		jsonBody, err := json.Marshal(body)
		require.NoError(t, err)
		payload = bytes.NewBuffer(jsonBody)
	} else {
		payload = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, payload)
	req.Header.Set(constvars.HeaderContentType, constvars.MIMEApplicationJSON)
	if actor != nil {
		created, err := f.jwtManager.CreateToken(context.Background(), &jwtmanager.CreateTokenInput{Actor: *actor})
		require.NoError(t, err)
		req.Header.Set(constvars.HeaderAuthorization, constvars.AuthorizationBearerPrefix+created.Token)
	}

	rr := httptest.NewRecorder()
	f.router.ServeHTTP(rr, req)
	return rr
}

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	body := map[string]interface{}{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	return body
}

func TestAppointmentRoutes(t *testing.T) {
	f := newRouterFixture(t)

	t.Run("Book with valid token", func(t *testing.T) {
		f.appointments.On("BookAppointment", mock.Anything, testPatient, mock.AnythingOfType("*requests.BookAppointment")).
			Return(&models.Appointment{ID: "appt-1", Status: models.AppointmentStatusPending}, nil).Once()

		rr := f.do(t, http.MethodPost, "/api/v1/appointments", &testPatient, requests.BookAppointment{
			DoctorID: "doctor-1", Date: "2025-03-10", Time: "09:00",
		})

		assert.Equal(t, http.StatusCreated, rr.Code)
		body := decodeBody(t, rr)
		assert.Equal(t, true, body["success"])
		assert.NotEmpty(t, rr.Header().Get(constvars.HeaderXRequestID))
	})

	t.Run("Book without token", func(t *testing.T) {
		rr := f.do(t, http.MethodPost, "/api/v1/appointments", nil, requests.BookAppointment{
			DoctorID: "doctor-1", Date: "2025-03-10", Time: "09:00",
		})
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("Book with invalid body", func(t *testing.T) {
		rr := f.do(t, http.MethodPost, "/api/v1/appointments", &testPatient, requests.BookAppointment{
			Date: "10/03/2025", Time: "09:00",
		})
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("Book on a taken slot", func(t *testing.T) {
		f.appointments.On("BookAppointment", mock.Anything, testPatient, mock.AnythingOfType("*requests.BookAppointment")).
			Return(nil, exceptions.ErrSlotAlreadyBooked(nil, "doctor-1", "2025-03-10", "09:00")).Once()

		rr := f.do(t, http.MethodPost, "/api/v1/appointments", &testPatient, requests.BookAppointment{
			DoctorID: "doctor-1", Date: "2025-03-10", Time: "09:00",
		})
		assert.Equal(t, http.StatusConflict, rr.Code)
		assert.Equal(t, false, decodeBody(t, rr)["success"])
	})

	t.Run("Cancel without body", func(t *testing.T) {
		f.appointments.On("CancelAppointment", mock.Anything, testDoctor, "appt-1", mock.AnythingOfType("*requests.CancelAppointment")).
			Return(&models.Appointment{ID: "appt-1", Status: models.AppointmentStatusCancelled}, nil).Once()

		rr := f.do(t, http.MethodPost, "/api/v1/appointments/appt-1/cancel", &testDoctor, nil)
		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("Update status", func(t *testing.T) {
		f.appointments.On("UpdateAppointmentStatus", mock.Anything, testDoctor, "appt-1", &requests.UpdateAppointmentStatus{Status: "completed"}).
			Return(&models.Appointment{ID: "appt-1", Status: models.AppointmentStatusCompleted}, nil).Once()

		rr := f.do(t, http.MethodPatch, "/api/v1/appointments/appt-1/status", &testDoctor, requests.UpdateAppointmentStatus{Status: "completed"})
		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("Update status rejects cancelled", func(t *testing.T) {
		rr := f.do(t, http.MethodPatch, "/api/v1/appointments/appt-1/status", &testDoctor, requests.UpdateAppointmentStatus{Status: "cancelled"})
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("List with pagination", func(t *testing.T) {
		f.appointments.On("ListAppointments", mock.Anything, testPatient, models.AppointmentFilter{Page: 2, PageSize: 5}).
			Return([]models.Appointment{{ID: "appt-1"}}, &responses.Pagination{Total: 6, Page: 2, PageSize: 5}, nil).Once()

		rr := f.do(t, http.MethodGet, "/api/v1/appointments?page=2&page_size=5", &testPatient, nil)
		assert.Equal(t, http.StatusOK, rr.Code)
		body := decodeBody(t, rr)
		assert.NotNil(t, body["pagination"])
	})

	t.Run("Available slots", func(t *testing.T) {
		f.appointments.On("ListAvailableSlots", mock.Anything, "doctor-1", "2025-03-10").
			Return(&responses.AvailableSlots{DoctorID: "doctor-1", Date: "2025-03-10", Slots: []string{"09:00"}}, nil).Once()

		rr := f.do(t, http.MethodGet, "/api/v1/doctors/doctor-1/slots?date=2025-03-10", &testPatient, nil)
		assert.Equal(t, http.StatusOK, rr.Code)
	})

	f.appointments.AssertExpectations(t)
}

func TestPaymentAndConsultationRoutes(t *testing.T) {
	f := newRouterFixture(t)

	t.Run("Submit payment", func(t *testing.T) {
		request := requests.SubmitPayment{Method: "card", CardLast4: "4242", CardHolderName: "Jane"}
		f.payments.On("SubmitPayment", mock.Anything, testPatient, "appt-1", &request).
			Return(&models.Payment{ID: "pay-1", Status: models.PaymentStatusCompleted, Method: models.PaymentMethodCard}, nil).Once()

		rr := f.do(t, http.MethodPost, "/api/v1/appointments/appt-1/payment", &testPatient, request)
		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("Submit payment missing card fields", func(t *testing.T) {
		rr := f.do(t, http.MethodPost, "/api/v1/appointments/appt-1/payment", &testPatient, requests.SubmitPayment{Method: "card"})
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("Payment past deadline", func(t *testing.T) {
		request := requests.SubmitPayment{Method: "bkash", WalletNumber: "01700000000", TransactionID: "TX1"}
		f.payments.On("SubmitPayment", mock.Anything, testPatient, "appt-2", &request).
			Return(nil, exceptions.ErrPaymentDeadlinePassed(nil, "pay-2", time.Now())).Once()

		rr := f.do(t, http.MethodPost, "/api/v1/appointments/appt-2/payment", &testPatient, request)
		assert.Equal(t, http.StatusGone, rr.Code)
	})

	t.Run("Get payment", func(t *testing.T) {
		f.payments.On("GetPaymentByAppointment", mock.Anything, testDoctor, "appt-1").
			Return(&models.Payment{ID: "pay-1"}, nil).Once()

		rr := f.do(t, http.MethodGet, "/api/v1/appointments/appt-1/payment", &testDoctor, nil)
		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("Start consultation too early", func(t *testing.T) {
		f.consultation.On("StartConsultation", mock.Anything, testDoctor, "appt-1").
			Return(nil, exceptions.ErrConsultationNotReady(nil, "appt-1", time.Now().Add(time.Hour))).Once()

		rr := f.do(t, http.MethodPost, "/api/v1/appointments/appt-1/consultation/start", &testDoctor, nil)
		assert.Equal(t, http.StatusConflict, rr.Code)
	})

	t.Run("Consultation state", func(t *testing.T) {
		f.consultation.On("GetConsultationState", mock.Anything, testPatient, "appt-1").
			Return(&responses.ConsultationState{AppointmentID: "appt-1", ConsultationStatus: "in_progress", IsActive: true}, nil).Once()

		rr := f.do(t, http.MethodGet, "/api/v1/appointments/appt-1/consultation", &testPatient, nil)
		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("Can rate", func(t *testing.T) {
		f.consultation.On("CanRateConsultation", mock.Anything, testPatient, "appt-1").Return(true, nil).Once()

		rr := f.do(t, http.MethodGet, "/api/v1/appointments/appt-1/consultation/can-rate", &testPatient, nil)
		require.Equal(t, http.StatusOK, rr.Code)
		data, ok := decodeBody(t, rr)["data"].(map[string]interface{})
		require.True(t, ok)
		assert.Equal(t, true, data["can_rate"])
	})

	f.payments.AssertExpectations(t)
	f.consultation.AssertExpectations(t)
}

func TestSweepRoutes(t *testing.T) {
	f := newRouterFixture(t)

	post := func(name, apiKey string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/internal/sweeps/"+name, nil)
		if apiKey != "" {
			req.Header.Set(constvars.HeaderXAPIKey, apiKey)
		}
		rr := httptest.NewRecorder()
		f.router.ServeHTTP(rr, req)
		return rr
	}

	t.Run("Run with valid API key", func(t *testing.T) {
		f.sweeps.On("Run", mock.Anything, constvars.WatcherNamePaymentExpiry).
			Return(models.SweepStats{Name: constvars.WatcherNamePaymentExpiry, Processed: 2}, nil).Once()

		rr := post(constvars.WatcherNamePaymentExpiry, testAPIKey)
		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("Unknown sweep", func(t *testing.T) {
		f.sweeps.On("Run", mock.Anything, "nope").
			Return(models.SweepStats{}, exceptions.ErrUnknownSweep(nil, "nope")).Once()

		rr := post("nope", testAPIKey)
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("Missing API key", func(t *testing.T) {
		rr := post(constvars.WatcherNamePaymentExpiry, "")
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("A bearer token is not an API key", func(t *testing.T) {
		rr := f.do(t, http.MethodPost, "/api/v1/internal/sweeps/payment-expiry", &testDoctor, nil)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	f.sweeps.AssertExpectations(t)
}
