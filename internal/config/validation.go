package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var goValidator = validator.New()

// ValidationErrors lists every field that failed validation.
type ValidationErrors struct {
	Errors []string `json:"errors"`
}

func (ve ValidationErrors) Error() string {
	if len(ve.Errors) == 0 {
		return "no validation errors"
	}
	return strings.Join(ve.Errors, "; ")
}

func Validate(cfg Config) error {
	err := goValidator.Struct(cfg)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err
	}
	out := ValidationErrors{}
	for _, e := range ve {
		out.Errors = append(out.Errors, fmt.Sprintf("%s %s", jsonKey(e.StructField()), e.ActualTag()))
	}
	return out
}

func jsonKey(field string) string {
	switch field {
	case "BaseURL":
		return "base_url"
	case "TimeoutSec":
		return "timeout_seconds"
	case "Workers":
		return "workers"
	case "WaitTimeoutSec":
		return "wait_timeout_seconds"
	case "Level":
		return "log_level"
	case "Format":
		return "log_format"
	default:
		return field
	}
}
