package hospital

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Patient struct {
	ID        uuid.UUID  `json:"id"`
	Document  string     `json:"document"`
	FullName  string     `json:"full_name"`
	BirthDate *time.Time `json:"birth_date,omitempty"`
}

type Medication struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Stock int       `json:"stock"`
}

// Dispense records medication issued to a patient. Immutable once created.
type Dispense struct {
	ID           uuid.UUID `json:"id"`
	PatientID    uuid.UUID `json:"patient_id"`
	MedicationID uuid.UUID `json:"medication_id"`
	Quantity     int       `json:"quantity"`
	Date         time.Time `json:"date"`
}

type LabTestType struct {
	ID    uuid.UUID       `json:"id"`
	Code  string          `json:"code"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

type LabOrderStatus string

const (
	LabOrderPending  LabOrderStatus = "pending"
	LabOrderResulted LabOrderStatus = "resulted"
)

func (s LabOrderStatus) IsValid() bool {
	switch s {
	case LabOrderPending, LabOrderResulted:
		return true
	}
	return false
}

type LabOrder struct {
	ID         uuid.UUID      `json:"id"`
	PatientID  uuid.UUID      `json:"patient_id"`
	TestTypeID uuid.UUID      `json:"test_type_id"`
	Date       time.Time      `json:"date"`
	Status     LabOrderStatus `json:"status"`
	ResultText string         `json:"result_text,omitempty"`
}

type ItemKind string

const (
	KindLab      ItemKind = "lab"
	KindPharmacy ItemKind = "pharmacy"
)

type InvoiceItem struct {
	ID          uuid.UUID       `json:"id"`
	Kind        ItemKind        `json:"kind"`
	RefID       uuid.UUID       `json:"ref_id"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
}

type Invoice struct {
	ID        uuid.UUID     `json:"id"`
	PatientID uuid.UUID     `json:"patient_id"`
	Date      time.Time     `json:"date"`
	Items     []InvoiceItem `json:"items"`
}

// Total is recomputed from the items on every call, never stored.
func (i Invoice) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range i.Items {
		total = total.Add(item.Amount)
	}
	return total
}

// HistoryEntry is one human-readable event in a patient's timeline.
type HistoryEntry struct {
	When time.Time `json:"when"`
	Text string    `json:"text"`
}

// Data is the aggregate root: every collection the desk works with,
// loaded and persisted as a single unit.
type Data struct {
	Patients     []Patient     `json:"patients"`
	Medications  []Medication  `json:"medications"`
	Dispenses    []Dispense    `json:"dispenses"`
	LabTestTypes []LabTestType `json:"lab_test_types"`
	LabOrders    []LabOrder    `json:"lab_orders"`
	Invoices     []Invoice     `json:"invoices"`
}

func NewData() *Data {
	return &Data{}
}

// Medication returns a pointer into the collection so stock can be
// debited in place, or nil when the id does not resolve.
func (d *Data) Medication(id uuid.UUID) *Medication {
	for i := range d.Medications {
		if d.Medications[i].ID == id {
			return &d.Medications[i]
		}
	}
	return nil
}

func (d *Data) TestType(id uuid.UUID) *LabTestType {
	for i := range d.LabTestTypes {
		if d.LabTestTypes[i].ID == id {
			return &d.LabTestTypes[i]
		}
	}
	return nil
}

func (d *Data) LabOrder(id uuid.UUID) *LabOrder {
	for i := range d.LabOrders {
		if d.LabOrders[i].ID == id {
			return &d.LabOrders[i]
		}
	}
	return nil
}

func (d *Data) Dispense(id uuid.UUID) *Dispense {
	for i := range d.Dispenses {
		if d.Dispenses[i].ID == id {
			return &d.Dispenses[i]
		}
	}
	return nil
}
