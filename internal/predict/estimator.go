package predict

import (
	"errors"
	"fmt"
)

var (
	// ErrModelUnavailable means the variant's artifact never loaded.
	ErrModelUnavailable = errors.New("model artifact unavailable")
	// ErrShapeMismatch means the vector does not fit the loaded model.
	ErrShapeMismatch = errors.New("feature vector shape mismatch")
)

type Estimator struct {
	artifacts Artifacts
}

func NewEstimator(artifacts Artifacts) *Estimator {
	return &Estimator{artifacts: artifacts}
}

// Supports reports whether the variant's model loaded at boot.
func (e *Estimator) Supports(variant Variant) bool {
	switch variant {
	case VariantMinimal:
		return e.artifacts.Linear != nil
	case VariantExtended:
		return e.artifacts.MLP != nil && e.artifacts.Scaler != nil
	default:
		return false
	}
}

// Estimate returns the predicted travel time in minutes, never negative.
// Shape is validated against both the variant and the loaded model before
// any arithmetic runs.
func (e *Estimator) Estimate(f Features) (float64, error) {
	if !f.Variant.Known() {
		return 0, fmt.Errorf("%w: unknown variant %q", ErrShapeMismatch, f.Variant)
	}
	if len(f.Vector) != f.Variant.Size() {
		return 0, fmt.Errorf("%w: variant %s expects %d features, got %d",
			ErrShapeMismatch, f.Variant, f.Variant.Size(), len(f.Vector))
	}
	if !e.Supports(f.Variant) {
		return 0, fmt.Errorf("%w: variant %s", ErrModelUnavailable, f.Variant)
	}

	var minutes float64
	switch f.Variant {
	case VariantMinimal:
		if e.artifacts.Linear.InputSize() != len(f.Vector) {
			return 0, fmt.Errorf("%w: model expects %d features, got %d",
				ErrShapeMismatch, e.artifacts.Linear.InputSize(), len(f.Vector))
		}
		minutes = e.artifacts.Linear.Predict(f.Vector)
	case VariantExtended:
		scaler := e.artifacts.Scaler
		if len(scaler.Mean) != len(f.Vector) || len(scaler.Std) != len(f.Vector) {
			return 0, fmt.Errorf("%w: scaler expects %d features, got %d",
				ErrShapeMismatch, len(scaler.Mean), len(f.Vector))
		}
		scaled := scaler.Transform(f.Vector)
		if e.artifacts.MLP.InputSize() != len(scaled) {
			return 0, fmt.Errorf("%w: model expects %d features, got %d",
				ErrShapeMismatch, e.artifacts.MLP.InputSize(), len(scaled))
		}
		minutes = e.artifacts.MLP.Predict(scaled)
	}

	if minutes < 0 {
		minutes = 0
	}
	return minutes, nil
}
