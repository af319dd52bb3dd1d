package book_appointment

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/service/schedule"
	bookAppointment "github.com/m04kA/SMC-AppointmentService/internal/usecase/book_appointment"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

type fakeUseCase struct {
	executeFn func(ctx context.Context, req *bookAppointment.Request) (*bookAppointment.Response, error)
}

func (f *fakeUseCase) Execute(ctx context.Context, req *bookAppointment.Request) (*bookAppointment.Response, error) {
	return f.executeFn(ctx, req)
}

type fakeMetrics struct {
	booked     int
	rejections []string
}

func (f *fakeMetrics) IncBooked() { f.booked++ }

func (f *fakeMetrics) IncValidationRejection(code string) {
	f.rejections = append(f.rejections, code)
}

func newRequest(body string) *http.Request {
	r := httptest.NewRequest(http.MethodPost, "/appointments", strings.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	return r
}

func TestHandler_Handle_Created(t *testing.T) {
	uc := &fakeUseCase{executeFn: func(_ context.Context, req *bookAppointment.Request) (*bookAppointment.Response, error) {
		assert.Equal(t, "2025-06-16", req.Date)
		assert.Equal(t, "09:00", req.Time)
		assert.Equal(t, "abc", req.IdempotencyKey)
		return &bookAppointment.Response{
			ID:   42,
			Date: types.MustDate(req.Date),
			Time: types.MustTimeString(req.Time),
		}, nil
	}}
	m := &fakeMetrics{}
	h := NewHandler(uc, m, logger.NewNop())

	r := newRequest(`{"date":"2025-06-16","time":"09:00"}`)
	r.Header.Set(IdempotencyKeyHeader, "abc")
	rec := httptest.NewRecorder()
	h.Handle(rec, r)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"id":42,"date":"2025-06-16","time":"09:00"}`, rec.Body.String())
	assert.Equal(t, 1, m.booked)
}

func TestHandler_Handle_ReplayNotCounted(t *testing.T) {
	uc := &fakeUseCase{executeFn: func(context.Context, *bookAppointment.Request) (*bookAppointment.Response, error) {
		return &bookAppointment.Response{
			ID:       42,
			Date:     types.MustDate("2025-06-16"),
			Time:     types.MustTimeString("09:00"),
			Replayed: true,
		}, nil
	}}
	m := &fakeMetrics{}
	h := NewHandler(uc, m, logger.NewNop())

	rec := httptest.NewRecorder()
	h.Handle(rec, newRequest(`{"date":"2025-06-16","time":"09:00"}`))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Zero(t, m.booked)
}

func TestHandler_Handle_ValidationError(t *testing.T) {
	uc := &fakeUseCase{executeFn: func(context.Context, *bookAppointment.Request) (*bookAppointment.Response, error) {
		return nil, domain.NewValidationError(domain.CodeBookCapacityReached,
			"This time slot has reached the maximum number of bookings")
	}}
	m := &fakeMetrics{}
	h := NewHandler(uc, m, logger.NewNop())

	rec := httptest.NewRecorder()
	h.Handle(rec, newRequest(`{"date":"2025-06-16","time":"09:00"}`))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"message":"This time slot has reached the maximum number of bookings","code":"BOOK-01"}`,
		rec.Body.String())
	assert.Equal(t, []string{"BOOK-01"}, m.rejections)
	assert.Zero(t, m.booked)
}

func TestHandler_Handle_EmptyBodyReachesValidator(t *testing.T) {
	called := false
	uc := &fakeUseCase{executeFn: func(_ context.Context, req *bookAppointment.Request) (*bookAppointment.Response, error) {
		called = true
		assert.Empty(t, req.Date)
		assert.Empty(t, req.Time)
		return nil, domain.NewValidationError(domain.CodeBookMissingBoth, "`date` and `time` are required in the body")
	}}
	h := NewHandler(uc, &fakeMetrics{}, logger.NewNop())

	rec := httptest.NewRecorder()
	h.Handle(rec, newRequest(""))

	assert.True(t, called)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "BOOK-02")
}

func TestHandler_Handle_MalformedBody(t *testing.T) {
	uc := &fakeUseCase{executeFn: func(context.Context, *bookAppointment.Request) (*bookAppointment.Response, error) {
		t.Fatal("use case must not be called")
		return nil, nil
	}}
	h := NewHandler(uc, &fakeMetrics{}, logger.NewNop())

	rec := httptest.NewRecorder()
	h.Handle(rec, newRequest(`{"date":`))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.NotContains(t, rec.Body.String(), `"code"`)
}

func TestHandler_Handle_NonStringFieldsGetValidationCode(t *testing.T) {
	validator := schedule.NewValidator(time.UTC)
	now := time.Date(2025, 6, 16, 8, 0, 0, 0, time.UTC)
	uc := &fakeUseCase{executeFn: func(_ context.Context, req *bookAppointment.Request) (*bookAppointment.Response, error) {
		_, err := validator.ValidateBooking(domain.DefaultConfiguration(), req.Date, req.Time, now)
		return nil, err
	}}

	tests := []struct {
		name     string
		body     string
		wantCode string
	}{
		{name: "numeric date", body: `{"date":20250616,"time":"09:00"}`, wantCode: "BOOK-05"},
		{name: "numeric time", body: `{"date":"2025-06-16","time":900}`, wantCode: "BOOK-08"},
		{name: "object time", body: `{"date":"2025-06-16","time":{"h":9}}`, wantCode: "BOOK-08"},
		{name: "null date", body: `{"date":null,"time":"09:00"}`, wantCode: "BOOK-03"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &fakeMetrics{}
			h := NewHandler(uc, m, logger.NewNop())

			rec := httptest.NewRecorder()
			h.Handle(rec, newRequest(tt.body))

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			var body map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantCode, body["code"])
			assert.NotEmpty(t, body["message"])
			assert.Equal(t, []string{tt.wantCode}, m.rejections)
		})
	}
}

func TestHandler_Handle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{name: "idempotency mismatch", err: bookAppointment.ErrIdempotencyMismatch, wantStatus: http.StatusConflict, wantCode: "IDEMPOTENCY-01"},
		{name: "idempotency in progress", err: bookAppointment.ErrIdempotencyInProgress, wantStatus: http.StatusConflict, wantCode: "IDEMPOTENCY-02"},
		{name: "configuration missing", err: bookAppointment.ErrConfigurationNotFound, wantStatus: http.StatusServiceUnavailable},
		{name: "internal", err: errors.New("boom"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &fakeUseCase{executeFn: func(context.Context, *bookAppointment.Request) (*bookAppointment.Response, error) {
				return nil, tt.err
			}}
			h := NewHandler(uc, &fakeMetrics{}, logger.NewNop())

			rec := httptest.NewRecorder()
			h.Handle(rec, newRequest(`{"date":"2025-06-16","time":"09:00"}`))

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantCode != "" {
				assert.Contains(t, rec.Body.String(), tt.wantCode)
			}
		})
	}
}
