package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"campusmove/pkg/logger"
	"campusmove/pkg/model"

	"github.com/go-playground/validator/v10"
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return ""
	}
	var messages []string
	for _, err := range v {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %d error(s): [%s]", len(v), strings.Join(messages, "; "))
}

type NavigationValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewNavigationValidator(log *logger.Logger) *NavigationValidator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	if err := v.RegisterValidation("travelmode", validateTravelMode); err != nil {
		log.Fatal("Failed to register travelmode validation", "error", err)
	}

	log.Info("Navigation validator initialized successfully")

	return &NavigationValidator{
		validate: v,
		logger:   log,
	}
}

func validateTravelMode(fl validator.FieldLevel) bool {
	_, ok := model.ParseTravelMode(fl.Field().String())
	return ok
}

// Validate checks any navigation request struct.
func (v *NavigationValidator) Validate(req any) error {
	if err := v.validate.Struct(req); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.translateValidationErrors(validationErrs)
		}
		return err
	}
	return nil
}

// ValidateLatLng checks a bare coordinate pair, e.g. one read from a query string.
func (v *NavigationValidator) ValidateLatLng(p model.LatLng) error {
	return v.Validate(&p)
}

func (v *NavigationValidator) translateValidationErrors(errs validator.ValidationErrors) ValidationErrors {
	var validationErrors ValidationErrors

	for _, err := range errs {
		field := fieldPath(err)
		var message string
		switch err.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", field)
		case "required_without":
			message = "origin or destination is required"
		case "latitude":
			message = fmt.Sprintf("%s must be a latitude between -90 and 90", field)
		case "longitude":
			message = fmt.Sprintf("%s must be a longitude between -180 and 180", field)
		case "travelmode":
			message = fmt.Sprintf("%s must be one of WALKING, DRIVING, BICYCLING, TRANSIT, WHEELCHAIR", field)
		default:
			message = err.Error()
		}

		validationErrors = append(validationErrors, ValidationError{
			Field:   field,
			Message: message,
		})
	}

	return validationErrors
}

// fieldPath drops the struct name from the namespace: "destination.lat".
func fieldPath(err validator.FieldError) string {
	ns := err.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return err.Field()
}
