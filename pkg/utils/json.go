package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ใช้ instance เดียวทั้ง process (validator cache struct info ไว้ข้างใน)
var validate = validator.New(validator.WithRequiredStructEnabled())

func init() {
	// ให้ error รายงานชื่อ field ตาม json tag แทนชื่อ struct field
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

type ErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

// ValidationError คือ body ที่ parse ไม่ได้ หรือ field ไม่ผ่าน rule
type ValidationError struct {
	Message string
	Fields  map[string]string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func WriteJSON(w http.ResponseWriter, status int, data any) {
	if data == nil {
		w.WriteHeader(status)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func WriteError(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, ErrorResponse{Error: message})
}

// WriteValidationError เขียน 422 พร้อมรายละเอียด field ที่ผิด
func WriteValidationError(w http.ResponseWriter, err error) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		WriteJSON(w, http.StatusUnprocessableEntity, ErrorResponse{Error: ve.Message, Fields: ve.Fields})
		return
	}
	WriteError(w, http.StatusUnprocessableEntity, err.Error())
}

// DecodeJSON อ่าน body เข้า dst แล้ว validate ตาม tag `validate`
// error ที่คืนเป็น *ValidationError เสมอ
func DecodeJSON(r io.Reader, dst any) error {
	dec := json.NewDecoder(r)
	if err := dec.Decode(dst); err != nil {
		var typeErr *json.UnmarshalTypeError
		switch {
		case errors.Is(err, io.EOF):
			return &ValidationError{Message: "request body is required"}
		case errors.As(err, &typeErr):
			return &ValidationError{
				Message: "invalid json body",
				Fields:  map[string]string{typeErr.Field: fmt.Sprintf("must be %s", typeErr.Type.String())},
			}
		default:
			return &ValidationError{Message: "invalid json body"}
		}
	}

	if err := validate.Struct(dst); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return &ValidationError{Message: err.Error()}
		}
		fields := make(map[string]string, len(fieldErrs))
		for _, fe := range fieldErrs {
			fields[fe.Field()] = fe.Tag()
		}
		return &ValidationError{Message: "validation failed", Fields: fields}
	}

	return nil
}
