// internal/models/Prediction.go
package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"smart_health/internal/ml"
)

// Prediction is the append-only record produced by the prediction pipeline.
// It keeps a denormalized copy of the patient's display name so the record
// stays readable even if doctor accounts come and go. Rows are never updated
// after creation; the owning patient or an admin may delete them.
type Prediction struct {
	gorm.Model
	Ref         string           `json:"ref" gorm:"uniqueIndex"` // public identifier used in API paths
	PatientID   uint             `json:"patient_id" gorm:"index"`
	Patient     PatientProfile   `gorm:"foreignKey:PatientID" json:"-"`
	PatientName string           `json:"patient_name"`
	Input       ml.FeatureVector `json:"input" gorm:"embedded;embeddedPrefix:input_"`
	Result      int              `json:"result"` // 0: healthy, 1: at risk
	Accuracy    float64          `json:"accuracy"`
	Probability float64          `json:"probability"`
}

func (p *Prediction) BeforeCreate(tx *gorm.DB) error {
	if p.Ref == "" {
		p.Ref = uuid.NewString()
	}
	return nil
}
