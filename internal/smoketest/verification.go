package smoketest

import "fmt"

// verifyPrediction checks a prediction against the configured bounds.
func verifyPrediction(pred predictResponse, config *Config) error {
	if pred.PatientID == "" {
		return fmt.Errorf("%w: empty patient_id", ErrOutOfBounds)
	}
	if pred.Score < config.ScoreMin || pred.Score > config.ScoreMax {
		return fmt.Errorf("%w: score %.2f outside [%.2f, %.2f]", ErrOutOfBounds, pred.Score, config.ScoreMin, config.ScoreMax)
	}
	if pred.Confidence < config.ConfidenceMin || pred.Confidence > config.ConfidenceMax {
		return fmt.Errorf("%w: confidence %.2f outside [%.2f, %.2f]", ErrOutOfBounds, pred.Confidence, config.ConfidenceMin, config.ConfidenceMax)
	}
	if pred.ModelVersion == "" {
		return fmt.Errorf("%w: empty model_version", ErrOutOfBounds)
	}
	return nil
}
