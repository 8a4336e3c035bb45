package service

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dmehra2102/prod-golang-projects/meddesk/internal/domain/hospital"
)

// Demo records loaded into any empty catalog on first start.

func demoPatients() []hospital.Patient {
	return []hospital.Patient{
		{ID: uuid.New(), Document: "12345678", FullName: "Ana Ruiz", BirthDate: date(1990, time.May, 2)},
		{ID: uuid.New(), Document: "87654321", FullName: "Carlos Pérez", BirthDate: date(1987, time.November, 21)},
	}
}

func demoMedications() []hospital.Medication {
	return []hospital.Medication{
		{ID: uuid.New(), Name: "Paracetamol 500 mg", Stock: 40},
		{ID: uuid.New(), Name: "Amoxicilina 500 mg", Stock: 25},
	}
}

func demoTestTypes() []hospital.LabTestType {
	return []hospital.LabTestType{
		{ID: uuid.New(), Code: "HB", Name: "Hemoglobina", Price: decimal.NewFromInt(12)},
		{ID: uuid.New(), Code: "GLU", Name: "Glucosa", Price: decimal.NewFromInt(10)},
		{ID: uuid.New(), Code: "PCR", Name: "Proteína C Reactiva", Price: decimal.NewFromInt(30)},
	}
}

func date(year int, month time.Month, day int) *time.Time {
	d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &d
}
