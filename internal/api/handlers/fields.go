package handlers

import (
	"bytes"
	"encoding/json"
)

// BodyField строковое поле тела запроса, которое разбирается без ошибки типа.
// Строка берется как есть, null считается отсутствующим значением,
// любое другое JSON-значение сохраняется текстом и отклоняется валидатором с кодом ошибки.
type BodyField string

// UnmarshalJSON implements json.Unmarshaler
func (f *BodyField) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = BodyField(s)
		return nil
	}

	*f = BodyField(data)
	return nil
}
