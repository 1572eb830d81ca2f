// Package architecture implements the architecture resource: the JSON record, its
// conversion to storage rows, and the HTTP handlers for init, create, update, list and delete.
package architecture

import (
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/tansive/archsrv/internal/archsrv/db/models"
	"github.com/tansive/archsrv/internal/common/httpx"
)

// Architecture is the JSON representation of an architecture record.
type Architecture struct {
	ArchID  int32  `json:"arch_id"`
	Name    string `json:"name"`
	Status  bool   `json:"status"`
	Version string `json:"version"`
	Putch   string `json:"putch"`
}

// architectureSpec is the decoding target for request bodies. Pointers distinguish a
// missing field from a zero value.
type architectureSpec struct {
	ArchID  *int32  `json:"arch_id" validate:"required"`
	Name    *string `json:"name" validate:"required"`
	Status  *bool   `json:"status" validate:"required"`
	Version *string `json:"version" validate:"required"`
	Putch   *string `json:"putch" validate:"required"`
}

var specValidator = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// DecodeArchitecture reads an architecture from the request body. Every field must be
// present and of the right type; anything else is a DeserializationError.
func DecodeArchitecture(r *http.Request, limit int64) (*Architecture, error) {
	spec := &architectureSpec{}
	if err := httpx.GetRequestData(r, spec, limit); err != nil {
		return nil, err
	}
	if err := specValidator.Struct(spec); err != nil {
		return nil, httpx.ErrUnableToParseReqData(validationMessage(err))
	}
	return &Architecture{
		ArchID:  *spec.ArchID,
		Name:    *spec.Name,
		Status:  *spec.Status,
		Version: *spec.Version,
		Putch:   *spec.Putch,
	}, nil
}

func validationMessage(err error) string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err.Error()
	}
	missing := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		missing = append(missing, fe.Field())
	}
	return "missing required fields: " + strings.Join(missing, ", ")
}

// ToModel converts the record to a storage row.
func (a *Architecture) ToModel() *models.Architecture {
	return &models.Architecture{
		ArchID:  a.ArchID,
		Name:    a.Name,
		Status:  a.Status,
		Version: a.Version,
		Putch:   a.Putch,
	}
}

// FromModel converts a storage row to the record.
func FromModel(m *models.Architecture) *Architecture {
	return &Architecture{
		ArchID:  m.ArchID,
		Name:    m.Name,
		Status:  m.Status,
		Version: m.Version,
		Putch:   m.Putch,
	}
}

// FromModels converts rows to records. The result is never nil so it encodes as [].
func FromModels(rows []*models.Architecture) []*Architecture {
	result := make([]*Architecture, 0, len(rows))
	for _, m := range rows {
		result = append(result, FromModel(m))
	}
	return result
}

type statusRsp struct {
	Status bool `json:"status"`
}
