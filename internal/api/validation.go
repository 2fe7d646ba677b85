package api

import (
	"encoding/json" // Email decoding
	"errors"        // Error inspection
	"reflect"       // Struct field tags
	"strings"       // String manipulation
	"sync"          // One-time validator setup
	"time"          // Date parsing

	"asset_inventory/internal/apperr" // Error taxonomy
	"asset_inventory/internal/domain" // Roles

	"github.com/gin-gonic/gin"               // Gin web framework
	"github.com/gin-gonic/gin/binding"       // Request binding
	"github.com/go-playground/validator/v10" // Struct validation
	"github.com/google/uuid"                 // ID format checks
)

var registerOnce sync.Once

// RegisterValidators installs the custom "role" rule and json field naming on gin's validator
func RegisterValidators() {
	registerOnce.Do(func() {
		binding.EnableDecoderDisallowUnknownFields = true // Reject fields the endpoint doesn't know
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(jsonFieldName)
		_ = v.RegisterValidation("role", func(fl validator.FieldLevel) bool {
			return domain.Role(fl.Field().String()).Valid()
		})
	})
}

// jsonFieldName reports validation failures under the JSON name of the field
func jsonFieldName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	if name == "" || name == "-" {
		return f.Name
	}
	return name
}

// bindJSON decodes and validates the body into dst, any failure is a 422
func bindJSON(c *gin.Context, dst any) error {
	err := c.ShouldBindJSON(dst)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, fe.Field())
		}
		return apperr.Validation("Datos inválidos, por favor revisa: "+strings.Join(fields, ", ")+".", err)
	}
	return apperr.Validation("Datos inválidos, por favor revisa tu información.", err)
}

// parseID validates the :id path parameter before any lookup
func parseID(c *gin.Context, msg string) (string, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return "", apperr.BadRequest(msg)
	}
	return id.String(), nil
}

// Email is an address normalised while decoding, so validation sees the stored form
type Email string

// UnmarshalJSON trims and lower-cases the address
func (e *Email) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	*e = Email(domain.NormalizeEmail(s))
	return nil
}

// fail hands err to the error middleware and stops the chain
func fail(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

// Date accepts RFC 3339 timestamps as well as plain YYYY-MM-DD dates
type Date struct {
	time.Time
}

// UnmarshalJSON tries RFC 3339 first, then YYYY-MM-DD
func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	for _, layout := range []string{time.RFC3339Nano, time.DateOnly} {
		if t, err := time.Parse(layout, s); err == nil {
			d.Time = t
			return nil
		}
	}
	return errors.New("invalid date: " + s)
}

// timePtr unwraps an optional Date
func (d *Date) timePtr() *time.Time {
	if d == nil {
		return nil
	}
	t := d.Time
	return &t
}
