package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"store_manager/internal/apperrors"
	"store_manager/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterValidation makes the binding validator report fields by their
// JSON names so error bodies use wire names.
func RegisterValidation() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		switch name {
		case "-":
			return ""
		case "":
			return fld.Name
		}
		return name
	})
}

// bindJSON decodes the body into obj and validates it. On failure the error
// response has already been written and false is returned.
func bindJSON(c *gin.Context, obj interface{}) bool {
	err := c.ShouldBindJSON(obj)
	if errors.Is(err, io.EOF) {
		// An empty body still has to satisfy the required fields.
		err = binding.Validator.ValidateStruct(obj)
	}
	if err == nil {
		return true
	}

	var vErrs validator.ValidationErrors
	var typeErr *json.UnmarshalTypeError
	var syntaxErr *json.SyntaxError
	switch {
	case errors.As(err, &vErrs):
		c.JSON(http.StatusBadRequest, translateValidation(vErrs).Fields)
	case errors.As(err, &typeErr) && typeErr.Field != "":
		field := typeErr.Field
		if i := strings.IndexAny(field, ".["); i > 0 {
			field = field[:i]
		}
		c.JSON(http.StatusBadRequest, apperrors.FieldError(field, typeMessage(typeErr.Type.Kind())).Fields)
	case errors.As(err, &syntaxErr):
		c.JSON(http.StatusBadRequest, gin.H{"detail": fmt.Sprintf("JSON parse error - %s", syntaxErr.Error())})
	default:
		c.JSON(http.StatusBadRequest, gin.H{"detail": fmt.Sprintf("JSON parse error - %s", err.Error())})
	}
	return false
}

func translateValidation(errs validator.ValidationErrors) *apperrors.ValidationError {
	vErr := apperrors.NewValidationError()
	for _, fe := range errs {
		field, nested := fieldPath(fe)
		msg := validationMessage(fe)
		if nested != "" {
			msg = nested + ": " + msg
		}
		vErr.Add(field, msg)
	}
	return vErr
}

// fieldPath splits a namespace such as "OrderRequest.items[1].product" into
// the top-level field ("items") and the remaining path ("items[1].product").
func fieldPath(fe validator.FieldError) (string, string) {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		ns = ns[i+1:]
	}
	top := ns
	if i := strings.IndexAny(top, ".["); i >= 0 {
		top = top[:i]
	}
	if top == ns {
		return top, ""
	}
	return top, ns
}

func validationMessage(fe validator.FieldError) string {
	isString := fe.Kind() == reflect.String
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "email":
		return "Enter a valid email address."
	case "url":
		return "Enter a valid URL."
	case "oneof":
		return fmt.Sprintf("\"%v\" is not a valid choice.", fe.Value())
	case "max":
		if isString {
			return fmt.Sprintf("Ensure this field has no more than %s characters.", fe.Param())
		}
		return fmt.Sprintf("Ensure this value is less than or equal to %s.", fe.Param())
	case "min":
		if isString {
			return fmt.Sprintf("Ensure this field has at least %s characters.", fe.Param())
		}
		return fmt.Sprintf("Ensure this value is greater than or equal to %s.", fe.Param())
	default:
		return "Invalid value."
	}
}

func typeMessage(kind reflect.Kind) string {
	switch kind {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "A valid integer is required."
	case reflect.Float32, reflect.Float64:
		return "A valid number is required."
	case reflect.Bool:
		return "Must be a valid boolean."
	case reflect.String:
		return "Not a valid string."
	case reflect.Slice:
		return "Expected a list of items."
	default:
		return "Invalid value."
	}
}

// respondError maps service errors onto status codes and bodies.
func respondError(c *gin.Context, log *logger.Logger, err error) {
	if vErr, ok := apperrors.IsValidation(err); ok {
		c.JSON(http.StatusBadRequest, vErr.Fields)
		return
	}

	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"detail": "Not found."})
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "No active account found with the given credentials"})
	case errors.Is(err, apperrors.ErrInvalidToken):
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "Token is invalid or expired", "code": "token_not_valid"})
	default:
		log.Error("request failed", "method", c.Request.Method, "path", c.Request.URL.Path, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error."})
	}
}
