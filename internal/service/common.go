package service

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrNothingToConfirm = errors.New("nothing to confirm")
	ErrImportCancelled  = errors.New("import cancelled")
)

func validatePositiveFloat(name string, value float64) error {
	if value <= 0 || math.IsNaN(value) || math.IsInf(value, 0) {
		return fmt.Errorf("%s must be > 0", name)
	}
	return nil
}

func validateNonNegativeInt(name string, value int) error {
	if value < 0 {
		return fmt.Errorf("%s must be >= 0", name)
	}
	return nil
}

func normalizeInput(text string) string {
	return strings.Join(strings.Fields(strings.ToLower(text)), " ")
}

func newID() string {
	return uuid.NewString()
}
