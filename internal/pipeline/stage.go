package pipeline

import (
	"fmt"

	"go.uber.org/zap"
)

// runStage invokes one enrichment call and degrades to the stage's
// deterministic fallback when the call errors, panics, or returns nothing.
// It never fails: the caller always gets a structurally valid output, and
// every degradation appends a message to errs.
func runStage[T any](name string, errs *[]string, invoke func() (*T, error), fallback func() *T) (out *T) {
	defer func() {
		if r := recover(); r != nil {
			zap.L().Error("stage panicked", zap.String("stage", name), zap.Any("panic", r))
			*errs = append(*errs, fmt.Sprintf("%s stage panicked: %v", name, r))
			out = fallback()
		}
	}()

	result, err := invoke()
	switch {
	case err != nil:
		zap.L().Warn("stage degraded to fallback", zap.String("stage", name), zap.Error(err))
		*errs = append(*errs, fmt.Sprintf("%s stage failed: %v", name, err))
		return fallback()
	case result == nil:
		zap.L().Warn("stage returned nothing", zap.String("stage", name))
		*errs = append(*errs, fmt.Sprintf("%s stage returned no output", name))
		return fallback()
	default:
		return result
	}
}
