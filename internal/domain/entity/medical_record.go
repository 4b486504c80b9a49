package entity

import (
	"time"

	"github.com/google/uuid"
)

// MedicalRecord is one entry in a patient's medical history
type MedicalRecord struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	PatientID      uuid.UUID  `gorm:"type:uuid;not null;index" json:"patient_id"`
	ProfessionalID uuid.UUID  `gorm:"type:uuid;not null;index" json:"professional_id"`
	AppointmentID  *uuid.UUID `gorm:"type:uuid;index" json:"appointment_id,omitempty"`
	RecordDate     time.Time  `gorm:"type:date;not null;index" json:"record_date"`
	Diagnosis      string     `gorm:"type:text;not null" json:"diagnosis"`
	Symptoms       string     `gorm:"type:text" json:"symptoms,omitempty"`
	Treatment      string     `gorm:"type:text" json:"treatment,omitempty"`
	Prescription   string     `gorm:"type:text" json:"prescription,omitempty"`
	Notes          string     `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt      time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Patient      User `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Professional User `gorm:"foreignKey:ProfessionalID" json:"professional,omitempty"`
}

func (MedicalRecord) TableName() string {
	return "medical_records"
}

type MedicalRecordFilter struct {
	PatientID      *uuid.UUID
	ProfessionalID *uuid.UUID
}
