package ml

import (
	"errors"
	"os"

	logrus "github.com/sirupsen/logrus"
)

// ErrModelUnavailable means the scoring engine failed to initialize.
// Callers treat it as a retryable service error, never a client error.
var ErrModelUnavailable = errors.New("scoring model unavailable")

// engine is the process-wide scoring model. Initialized once by Setup at
// startup, read-only afterwards.
var engine *Model

// Setup loads the model from path, training and persisting a new one when
// no saved model exists. Called once before the server starts serving; if
// it fails the engine stays unready and predictions fail closed.
func Setup(path string) error {
	m, err := Load(path)
	switch {
	case err == nil:
		logrus.WithField("path", path).Info("heart model loaded")
	case os.IsNotExist(err):
		logrus.WithField("path", path).Info("no saved model, training a new one")
		m = Train()
		if err := m.Save(path); err != nil {
			return err
		}
	default:
		return err
	}
	engine = m
	return nil
}

// Engine returns the loaded model, or nil when Setup has not succeeded.
func Engine() *Model {
	return engine
}

// Ready reports whether the scoring engine can serve predictions.
func Ready() bool {
	return engine != nil
}
