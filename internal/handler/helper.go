package handler

import (
	"github.com/faridhnr/skillswap/pkg/validator"
)

func formatValidationError(err error) string {
	return validator.FormatValidationError(err)
}
