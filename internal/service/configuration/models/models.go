package models

import (
	"encoding/json"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// Request модели

// UpdateConfigurationRequest тело PATCH /configuration.
// Поля хранятся в сыром виде: тип каждого значения проверяется сервисом
// и ошибка типа получает код своего поля.
type UpdateConfigurationRequest struct {
	SlotDuration           json.RawMessage `json:"slotDuration,omitempty"`
	MaxSlotsPerAppointment json.RawMessage `json:"maxSlotsPerAppointment,omitempty"`
	OperationalStart       json.RawMessage `json:"operationalStart,omitempty"`
	OperationalEnd         json.RawMessage `json:"operationalEnd,omitempty"`
	DaysOff                json.RawMessage `json:"daysOff,omitempty"`
	UnavailableHours       json.RawMessage `json:"unavailableHours,omitempty"`
	IsWeekendOff           json.RawMessage `json:"isWeekendOff,omitempty"`
}

// IsEmpty возвращает true, если ни одно поле не передано
func (r *UpdateConfigurationRequest) IsEmpty() bool {
	return r.SlotDuration == nil &&
		r.MaxSlotsPerAppointment == nil &&
		r.OperationalStart == nil &&
		r.OperationalEnd == nil &&
		r.DaysOff == nil &&
		r.UnavailableHours == nil &&
		r.IsWeekendOff == nil
}

// ConfigurationPatch проверенные значения частичного обновления.
// nil означает, что поле не меняется.
type ConfigurationPatch struct {
	SlotDuration           *int
	MaxSlotsPerAppointment *int
	OperationalStart       *types.TimeString
	OperationalEnd         *types.TimeString
	DaysOff                *[]types.Date
	UnavailableHours       *[]types.TimeString
	IsWeekendOff           *bool
}

// ApplyToConfiguration применяет изменения к конфигурации
func (p *ConfigurationPatch) ApplyToConfiguration(cfg *domain.Configuration) {
	if p.SlotDuration != nil {
		cfg.SlotDuration = *p.SlotDuration
	}
	if p.MaxSlotsPerAppointment != nil {
		cfg.MaxSlotsPerAppointment = *p.MaxSlotsPerAppointment
	}
	if p.OperationalStart != nil {
		cfg.OperationalStart = *p.OperationalStart
	}
	if p.OperationalEnd != nil {
		cfg.OperationalEnd = *p.OperationalEnd
	}
	if p.DaysOff != nil {
		cfg.DaysOff = *p.DaysOff
	}
	if p.UnavailableHours != nil {
		cfg.UnavailableHours = *p.UnavailableHours
	}
	if p.IsWeekendOff != nil {
		cfg.IsWeekendOff = *p.IsWeekendOff
	}
}

// Response модели

// ConfigurationResponse конфигурация в формате API
type ConfigurationResponse struct {
	ID                     int64     `json:"id"`
	SlotDuration           int       `json:"slotDuration"`
	MaxSlotsPerAppointment int       `json:"maxSlotsPerAppointment"`
	OperationalStart       string    `json:"operationalStart"`
	OperationalEnd         string    `json:"operationalEnd"`
	DaysOff                string    `json:"daysOff"`
	UnavailableHours       string    `json:"unavailableHours"`
	IsWeekendOff           bool      `json:"isWeekendOff"`
	UpdatedAt              time.Time `json:"updatedAt"`
}

// FromDomainConfiguration конвертирует domain модель в DTO
func FromDomainConfiguration(c *domain.Configuration) *ConfigurationResponse {
	if c == nil {
		return nil
	}

	return &ConfigurationResponse{
		ID:                     c.ID,
		SlotDuration:           c.SlotDuration,
		MaxSlotsPerAppointment: c.MaxSlotsPerAppointment,
		OperationalStart:       c.OperationalStart.String(),
		OperationalEnd:         c.OperationalEnd.String(),
		DaysOff:                c.FormatDaysOff(),
		UnavailableHours:       c.FormatUnavailableHours(),
		IsWeekendOff:           c.IsWeekendOff,
		UpdatedAt:              c.UpdatedAt,
	}
}
