package cancel_appointment

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/service/schedule"
	cancelAppointment "github.com/m04kA/SMC-AppointmentService/internal/usecase/cancel_appointment"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

type fakeUseCase struct {
	executeFn func(ctx context.Context, req *cancelAppointment.Request) (*cancelAppointment.Response, error)
}

func (f *fakeUseCase) Execute(ctx context.Context, req *cancelAppointment.Request) (*cancelAppointment.Response, error) {
	return f.executeFn(ctx, req)
}

type fakeMetrics struct {
	cancelled  int
	rejections []string
}

func (f *fakeMetrics) IncCancelled() { f.cancelled++ }

func (f *fakeMetrics) IncValidationRejection(code string) {
	f.rejections = append(f.rejections, code)
}

func newRequest(body string) *http.Request {
	return httptest.NewRequest(http.MethodDelete, "/appointments", strings.NewReader(body))
}

func TestHandler_Handle_OK(t *testing.T) {
	uc := &fakeUseCase{executeFn: func(_ context.Context, req *cancelAppointment.Request) (*cancelAppointment.Response, error) {
		return &cancelAppointment.Response{
			ID:   7,
			Date: types.MustDate(req.Date),
			Time: types.MustTimeString(req.Time),
		}, nil
	}}
	m := &fakeMetrics{}
	h := NewHandler(uc, m, logger.NewNop())

	rec := httptest.NewRecorder()
	h.Handle(rec, newRequest(`{"date":"2025-06-16","time":"10:00"}`))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"id":7,"date":"2025-06-16","time":"10:00"}`, rec.Body.String())
	assert.Equal(t, 1, m.cancelled)
}

func TestHandler_Handle_NothingToCancel(t *testing.T) {
	uc := &fakeUseCase{executeFn: func(context.Context, *cancelAppointment.Request) (*cancelAppointment.Response, error) {
		return nil, domain.NewValidationError(domain.CodeCancelNotFound, "There is no available appointment to be cancelled")
	}}
	m := &fakeMetrics{}
	h := NewHandler(uc, m, logger.NewNop())

	rec := httptest.NewRecorder()
	h.Handle(rec, newRequest(`{"date":"2025-06-16","time":"10:00"}`))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"message":"There is no available appointment to be cancelled","code":"CANCEL-01"}`, rec.Body.String())
	assert.Equal(t, []string{"CANCEL-01"}, m.rejections)
	assert.Zero(t, m.cancelled)
}

func TestHandler_Handle_InternalError(t *testing.T) {
	uc := &fakeUseCase{executeFn: func(context.Context, *cancelAppointment.Request) (*cancelAppointment.Response, error) {
		return nil, errors.New("boom")
	}}
	h := NewHandler(uc, &fakeMetrics{}, logger.NewNop())

	rec := httptest.NewRecorder()
	h.Handle(rec, newRequest(`{"date":"2025-06-16","time":"10:00"}`))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"message":"Internal server error"}`, rec.Body.String())
}

func TestHandler_Handle_NonStringFieldsGetValidationCode(t *testing.T) {
	validator := schedule.NewValidator(time.UTC)
	now := time.Date(2025, 6, 16, 8, 0, 0, 0, time.UTC)
	uc := &fakeUseCase{executeFn: func(_ context.Context, req *cancelAppointment.Request) (*cancelAppointment.Response, error) {
		_, err := validator.ValidateCancellation(domain.DefaultConfiguration(), req.Date, req.Time, now)
		return nil, err
	}}
	h := NewHandler(uc, &fakeMetrics{}, logger.NewNop())

	rec := httptest.NewRecorder()
	h.Handle(rec, newRequest(`{"date":20250616,"time":"09:00"}`))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"message":"`+"`date`"+` must be in the format YYYY-MM-DD with valid month and day","code":"CANCEL-05"}`,
		rec.Body.String())

	rec = httptest.NewRecorder()
	h.Handle(rec, newRequest(`{"date":"2025-06-17","time":1000}`))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `"code":"CANCEL-08"`)
}
