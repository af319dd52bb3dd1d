package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

func TestRespondValidationError(t *testing.T) {
	rec := httptest.NewRecorder()

	RespondValidationError(rec, domain.NewValidationError(domain.CodeBookOffGrid, "off grid"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, map[string]string{"message": "off grid", "code": "BOOK-08"}, body)
}

func TestRespondInternalError_OmitsCode(t *testing.T) {
	rec := httptest.NewRecorder()

	RespondInternalError(rec)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"message":"Internal server error"}`, rec.Body.String())
}

func TestDecodeJSON(t *testing.T) {
	var v struct {
		Date string `json:"date"`
	}

	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"date":"2025-06-16"}`))
	require.NoError(t, DecodeJSON(r, &v))
	assert.Equal(t, "2025-06-16", v.Date)

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(""))
	assert.NoError(t, DecodeJSON(r, &v))

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"date":`))
	assert.Error(t, DecodeJSON(r, &v))
}

func TestBodyField_UnmarshalJSON(t *testing.T) {
	var v struct {
		Date BodyField `json:"date"`
		Time BodyField `json:"time"`
	}

	require.NoError(t, json.Unmarshal([]byte(`{"date":"2025-06-16","time":"09:00"}`), &v))
	assert.Equal(t, BodyField("2025-06-16"), v.Date)
	assert.Equal(t, BodyField("09:00"), v.Time)

	require.NoError(t, json.Unmarshal([]byte(`{"date":20250616,"time":true}`), &v))
	assert.Equal(t, BodyField("20250616"), v.Date)
	assert.Equal(t, BodyField("true"), v.Time)

	require.NoError(t, json.Unmarshal([]byte(`{"date":null,"time":["09:00"]}`), &v))
	assert.Empty(t, v.Date)
	assert.Equal(t, BodyField(`["09:00"]`), v.Time)
}
