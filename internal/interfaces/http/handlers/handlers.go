package handlers

import (
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/ermis/jwt-rsa256-api/internal/domain"
	"github.com/ermis/jwt-rsa256-api/internal/interfaces/http/errors"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

var validate = newValidator()

// newValidator reports fields by their JSON names
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// decodeRequest decodes the JSON body into req and validates it.
// Unknown fields are rejected. An empty body is accepted only when allowEmpty is set.
func decodeRequest(r *http.Request, req interface{}, allowEmpty bool) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(req); err != nil {
		if allowEmpty && stderrors.Is(err, io.EOF) {
			return nil
		}
		return domain.ErrInvalidRequestBody.Wrap(err)
	}

	if err := validate.Struct(req); err != nil {
		return errors.FromValidator(err)
	}
	return nil
}

// respondRequestError renders a decodeRequest failure
func respondRequestError(w http.ResponseWriter, logger *zap.Logger, err error) {
	logger.Debug("Rejected request body", zap.Error(err))

	var validationErrs errors.ValidationErrors
	if stderrors.As(err, &validationErrs) {
		errors.RespondErrorWithDetails(w, domain.ErrInvalidField.Wrap(validationErrs), validationErrs.ToErrorDetails())
		return
	}
	errors.RespondWithError(w, errors.FromError(err))
}

func respondJSON(w http.ResponseWriter, logger *zap.Logger, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Error("Failed to encode response", zap.Error(err))
	}
}
