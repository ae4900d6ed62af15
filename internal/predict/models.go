package predict

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// LinearModel is a plain linear regression: dot(weights, x) + intercept.
type LinearModel struct {
	Weights   []float64 `json:"weights"`
	Intercept float64   `json:"intercept"`
}

func (m *LinearModel) InputSize() int {
	return len(m.Weights)
}

func (m *LinearModel) Predict(x []float64) float64 {
	sum := m.Intercept
	for i, w := range m.Weights {
		sum += w * x[i]
	}
	return sum
}

// Scaler standardizes features: (x - mean) / std, element-wise.
type Scaler struct {
	Mean []float64 `json:"mean"`
	Std  []float64 `json:"std"`
}

func (s *Scaler) Transform(x []float64) []float64 {
	out := make([]float64, len(x))
	for i, v := range x {
		std := s.Std[i]
		if std == 0 {
			std = 1
		}
		out[i] = (v - s.Mean[i]) / std
	}
	return out
}

// MLPModel is a feed-forward regressor with ReLU hidden layers and a
// linear output layer. Weights are stored per layer as [out][in].
type MLPModel struct {
	Layers []MLPLayer `json:"layers"`
}

type MLPLayer struct {
	Weights [][]float64 `json:"weights"`
	Biases  []float64   `json:"biases"`
}

func (m *MLPModel) InputSize() int {
	if len(m.Layers) == 0 || len(m.Layers[0].Weights) == 0 {
		return 0
	}
	return len(m.Layers[0].Weights[0])
}

func (m *MLPModel) Predict(x []float64) float64 {
	activation := x
	for i, layer := range m.Layers {
		next := make([]float64, len(layer.Weights))
		for j, row := range layer.Weights {
			sum := layer.Biases[j]
			for k, w := range row {
				sum += w * activation[k]
			}
			if i < len(m.Layers)-1 && sum < 0 {
				sum = 0 // ReLU on hidden layers only
			}
			next[j] = sum
		}
		activation = next
	}
	if len(activation) == 0 {
		return 0
	}
	return activation[0]
}

// Artifacts holds whatever models loaded successfully. A missing artifact
// disables its variant; it does not prevent the process from starting.
type Artifacts struct {
	Linear *LinearModel
	MLP    *MLPModel
	Scaler *Scaler
}

const (
	linearModelFile = "minimal_model.json"
	mlpModelFile    = "extended_model.json"
	scalerFile      = "extended_scaler.json"
)

// LoadArtifacts reads model files from dir. Absent files are skipped;
// a file that exists but does not parse is an error.
func LoadArtifacts(dir string) (Artifacts, error) {
	var a Artifacts

	var linear LinearModel
	ok, err := loadJSON(filepath.Join(dir, linearModelFile), &linear)
	if err != nil {
		return Artifacts{}, err
	}
	if ok {
		a.Linear = &linear
	}

	var mlp MLPModel
	ok, err = loadJSON(filepath.Join(dir, mlpModelFile), &mlp)
	if err != nil {
		return Artifacts{}, err
	}
	if ok {
		a.MLP = &mlp
	}

	var scaler Scaler
	ok, err = loadJSON(filepath.Join(dir, scalerFile), &scaler)
	if err != nil {
		return Artifacts{}, err
	}
	if ok {
		a.Scaler = &scaler
	}

	return a, nil
}

func loadJSON(path string, out any) (bool, error) {
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read model artifact %s: %w", path, err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return false, fmt.Errorf("parse model artifact %s: %w", path, err)
	}
	return true, nil
}
