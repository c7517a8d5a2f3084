package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	appErrors "github.com/dvalverde/pos-companion/internal/errors"
	"github.com/dvalverde/pos-companion/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

func decodeJSONBody(w http.ResponseWriter, r *http.Request, dest any) error {
	defer r.Body.Close()

	err := json.NewDecoder(r.Body).Decode(dest)

	if errors.Is(err, io.EOF) {
		response.Error(w, appErrors.BadRequestError("Request body cannot be empty"))
		return err
	}

	if err != nil {
		response.Error(w, appErrors.BadRequestError("Invalid JSON body").WithError(err))
		return err
	}

	return nil
}

func validateStruct(w http.ResponseWriter, validate *validator.Validate, data any) bool {
	if err := validate.Struct(data); err != nil {
		if validationErrs, ok := err.(validator.ValidationErrors); ok {
			response.ValidationError(w, validationErrs)
		} else {
			response.Error(w, appErrors.InternalError("Unexpected validation error").WithError(err))
		}

		return false
	}

	return true
}
