package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/dmehra2102/prod-golang-projects/meddesk/internal/domain/hospital"
	"github.com/dmehra2102/prod-golang-projects/meddesk/internal/storage"
	"github.com/dmehra2102/prod-golang-projects/meddesk/pkg/metrics"
)

// storageKey is the single record the whole aggregate lives under.
// Changing the aggregate shape after data exists is not migration-safe,
// hence the version suffix.
const storageKey = "hospital-data-v1"

// pharmacyUnitRate is the flat demo rate billed per dispensed unit.
// Medications carry no price field.
var pharmacyUnitRate = decimal.RequireFromString("2.5")

// HospitalService owns the in-memory aggregate and persists the whole of
// it after every mutation. Single writer by construction: the surrounding
// application runs one session against one store.
type HospitalService struct {
	store   storage.Store
	metrics *metrics.Collector
	log     *zap.Logger
	data    *hospital.Data
	now     func() time.Time
}

func NewHospitalService(store storage.Store, m *metrics.Collector, log *zap.Logger) *HospitalService {
	return &HospitalService{
		store:   store,
		metrics: m,
		log:     log,
		data:    hospital.NewData(),
		// UTC so the aggregate survives a JSON round trip value-equal.
		now: func() time.Time { return time.Now().UTC() },
	}
}

// EnsureSeed loads the aggregate and populates any empty catalog with the
// demo records. It always persists once, even when nothing was seeded.
func (s *HospitalService) EnsureSeed(ctx context.Context) error {
	raw, err := s.store.Get(ctx, storageKey)
	switch {
	case err == nil:
		data := hospital.NewData()
		if err := json.Unmarshal(raw, data); err != nil {
			return fmt.Errorf("decoding hospital data: %w", err)
		}
		s.data = data
	case errors.Is(err, storage.ErrNotFound):
		s.data = hospital.NewData()
	default:
		return fmt.Errorf("loading hospital data: %w", err)
	}

	seeded := false
	if len(s.data.Patients) == 0 {
		s.data.Patients = demoPatients()
		seeded = true
	}
	if len(s.data.Medications) == 0 {
		s.data.Medications = demoMedications()
		seeded = true
	}
	if len(s.data.LabTestTypes) == 0 {
		s.data.LabTestTypes = demoTestTypes()
		seeded = true
	}
	if seeded {
		s.log.Info("seeded demo catalogs",
			zap.Int("patients", len(s.data.Patients)),
			zap.Int("medications", len(s.data.Medications)),
			zap.Int("test_types", len(s.data.LabTestTypes)),
		)
	}

	return s.Save(ctx)
}

// Save serializes the whole aggregate under the fixed key. Best effort,
// last write wins; a failure leaves memory ahead of storage.
func (s *HospitalService) Save(ctx context.Context) error {
	start := time.Now()

	raw, err := json.Marshal(s.data)
	if err != nil {
		return fmt.Errorf("encoding hospital data: %w", err)
	}
	if err := s.store.Set(ctx, storageKey, raw); err != nil {
		s.metrics.SaveFailures.Inc()
		return fmt.Errorf("persisting hospital data: %w", err)
	}

	s.metrics.SaveDuration.Observe(time.Since(start).Seconds())
	return nil
}

// Patients returns a fresh copy ordered by full name.
func (s *HospitalService) Patients() []hospital.Patient {
	out := make([]hospital.Patient, len(s.data.Patients))
	copy(out, s.data.Patients)
	sort.Slice(out, func(i, j int) bool { return out[i].FullName < out[j].FullName })
	return out
}

func (s *HospitalService) AddPatient(ctx context.Context, document, fullName string, birthDate *time.Time) (hospital.Patient, error) {
	p := hospital.Patient{
		ID:        uuid.New(),
		Document:  document,
		FullName:  fullName,
		BirthDate: birthDate,
	}
	s.data.Patients = append(s.data.Patients, p)
	s.metrics.PatientsRegistered.Inc()
	s.log.Info("patient registered", zap.String("patient_id", p.ID.String()))
	return p, s.Save(ctx)
}

// Medications returns a fresh copy ordered by name.
func (s *HospitalService) Medications() []hospital.Medication {
	out := make([]hospital.Medication, len(s.data.Medications))
	copy(out, s.data.Medications)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (s *HospitalService) AddMedication(ctx context.Context, name string, stock int) (hospital.Medication, error) {
	m := hospital.Medication{ID: uuid.New(), Name: name, Stock: stock}
	s.data.Medications = append(s.data.Medications, m)
	s.metrics.MedicationsRegistered.Inc()
	s.log.Info("medication registered", zap.String("medication_id", m.ID.String()), zap.Int("stock", stock))
	return m, s.Save(ctx)
}

// Dispenses returns a fresh copy, most recent first.
func (s *HospitalService) Dispenses() []hospital.Dispense {
	out := make([]hospital.Dispense, len(s.data.Dispenses))
	copy(out, s.data.Dispenses)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out
}

// Dispense debits stock and records the hand-out as one in-memory step,
// then persists once. Fails without touching anything when the medication
// is unknown or the quantity is not 0 < qty <= stock.
func (s *HospitalService) Dispense(ctx context.Context, patientID, medicationID uuid.UUID, qty int) (hospital.Dispense, error) {
	med := s.data.Medication(medicationID)
	if med == nil {
		return hospital.Dispense{}, hospital.ErrMedicationNotFound
	}
	if qty <= 0 || qty > med.Stock {
		return hospital.Dispense{}, hospital.ErrInvalidQuantity
	}

	med.Stock -= qty
	d := hospital.Dispense{
		ID:           uuid.New(),
		PatientID:    patientID,
		MedicationID: medicationID,
		Quantity:     qty,
		Date:         s.now(),
	}
	s.data.Dispenses = append(s.data.Dispenses, d)

	s.metrics.Dispenses.Inc()
	s.metrics.DispensedUnits.Add(float64(qty))
	s.log.Info("medication dispensed",
		zap.String("dispense_id", d.ID.String()),
		zap.String("medication_id", medicationID.String()),
		zap.Int("quantity", qty),
		zap.Int("remaining_stock", med.Stock),
	)

	return d, s.Save(ctx)
}

// TestTypes returns a fresh copy ordered by name.
func (s *HospitalService) TestTypes() []hospital.LabTestType {
	out := make([]hospital.LabTestType, len(s.data.LabTestTypes))
	copy(out, s.data.LabTestTypes)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (s *HospitalService) AddTestType(ctx context.Context, code, name string, price decimal.Decimal) (hospital.LabTestType, error) {
	t := hospital.LabTestType{ID: uuid.New(), Code: code, Name: name, Price: price}
	s.data.LabTestTypes = append(s.data.LabTestTypes, t)
	s.metrics.TestTypesRegistered.Inc()
	s.log.Info("lab test type registered", zap.String("test_type_id", t.ID.String()), zap.String("code", code))
	return t, s.Save(ctx)
}

// LabOrders returns a fresh copy, most recent first.
func (s *HospitalService) LabOrders() []hospital.LabOrder {
	out := make([]hospital.LabOrder, len(s.data.LabOrders))
	copy(out, s.data.LabOrders)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out
}

// CreateLabOrder does not check that the patient or test type exist;
// dangling references surface as NotFound when the order is read or
// invoiced later.
func (s *HospitalService) CreateLabOrder(ctx context.Context, patientID, testTypeID uuid.UUID) (hospital.LabOrder, error) {
	o := hospital.LabOrder{
		ID:         uuid.New(),
		PatientID:  patientID,
		TestTypeID: testTypeID,
		Date:       s.now(),
		Status:     hospital.LabOrderPending,
	}
	s.data.LabOrders = append(s.data.LabOrders, o)

	s.metrics.LabOrdersCreated.Inc()
	s.log.Info("lab order created",
		zap.String("order_id", o.ID.String()),
		zap.String("test_type_id", testTypeID.String()),
	)

	return o, s.Save(ctx)
}

// ResultLabOrder marks the order resulted. Resulting an already-resulted
// order overwrites the previous text.
func (s *HospitalService) ResultLabOrder(ctx context.Context, orderID uuid.UUID, resultText string) error {
	o := s.data.LabOrder(orderID)
	if o == nil {
		return hospital.ErrLabOrderNotFound
	}

	o.Status = hospital.LabOrderResulted
	o.ResultText = resultText

	s.metrics.LabResultsRecorded.Inc()
	s.log.Info("lab order resulted", zap.String("order_id", orderID.String()))

	return s.Save(ctx)
}

// Invoices returns a fresh copy, most recent first.
func (s *HospitalService) Invoices() []hospital.Invoice {
	out := make([]hospital.Invoice, len(s.data.Invoices))
	copy(out, s.data.Invoices)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out
}

// CreateInvoice bills the given lab orders at catalog price and the given
// dispenses at the flat per-unit rate, lab items first, both groups in
// input order. Any unresolvable id aborts before the aggregate is touched.
func (s *HospitalService) CreateInvoice(ctx context.Context, patientID uuid.UUID, labOrderIDs, dispenseIDs []uuid.UUID) (hospital.Invoice, error) {
	items := make([]hospital.InvoiceItem, 0, len(labOrderIDs)+len(dispenseIDs))

	for _, id := range labOrderIDs {
		o := s.data.LabOrder(id)
		if o == nil {
			return hospital.Invoice{}, hospital.ErrLabOrderNotFound
		}
		tt := s.data.TestType(o.TestTypeID)
		if tt == nil {
			return hospital.Invoice{}, hospital.ErrTestTypeNotFound
		}
		items = append(items, hospital.InvoiceItem{
			ID:          uuid.New(),
			Kind:        hospital.KindLab,
			RefID:       o.ID,
			Description: fmt.Sprintf("Lab: %s %s", tt.Code, tt.Name),
			Amount:      tt.Price,
		})
	}

	for _, id := range dispenseIDs {
		d := s.data.Dispense(id)
		if d == nil {
			return hospital.Invoice{}, hospital.ErrDispenseNotFound
		}
		med := s.data.Medication(d.MedicationID)
		if med == nil {
			return hospital.Invoice{}, hospital.ErrMedicationNotFound
		}
		items = append(items, hospital.InvoiceItem{
			ID:          uuid.New(),
			Kind:        hospital.KindPharmacy,
			RefID:       d.ID,
			Description: fmt.Sprintf("Pharmacy: %s x%d", med.Name, d.Quantity),
			Amount:      pharmacyUnitRate.Mul(decimal.NewFromInt(int64(d.Quantity))),
		})
	}

	inv := hospital.Invoice{
		ID:        uuid.New(),
		PatientID: patientID,
		Date:      s.now(),
		Items:     items,
	}
	s.data.Invoices = append(s.data.Invoices, inv)

	s.metrics.InvoicesCreated.Inc()
	s.log.Info("invoice created",
		zap.String("invoice_id", inv.ID.String()),
		zap.Int("items", len(items)),
		zap.String("total", inv.Total().StringFixed(2)),
	)

	return inv, s.Save(ctx)
}

// History merges the patient's lab orders, dispenses and invoices into one
// newest-first timeline. Ties keep the concatenation order.
func (s *HospitalService) History(patientID uuid.UUID) ([]hospital.HistoryEntry, error) {
	var entries []hospital.HistoryEntry

	for _, o := range s.data.LabOrders {
		if o.PatientID != patientID {
			continue
		}
		tt := s.data.TestType(o.TestTypeID)
		if tt == nil {
			return nil, hospital.ErrTestTypeNotFound
		}
		state := "pending"
		if o.Status == hospital.LabOrderResulted {
			state = "result: " + o.ResultText
		}
		entries = append(entries, hospital.HistoryEntry{
			When: o.Date,
			Text: fmt.Sprintf("Lab: %s %s (%s)", tt.Code, tt.Name, state),
		})
	}

	for _, d := range s.data.Dispenses {
		if d.PatientID != patientID {
			continue
		}
		med := s.data.Medication(d.MedicationID)
		if med == nil {
			return nil, hospital.ErrMedicationNotFound
		}
		entries = append(entries, hospital.HistoryEntry{
			When: d.Date,
			Text: fmt.Sprintf("Pharmacy: %s x%d", med.Name, d.Quantity),
		})
	}

	for _, inv := range s.data.Invoices {
		if inv.PatientID != patientID {
			continue
		}
		entries = append(entries, hospital.HistoryEntry{
			When: inv.Date,
			Text: fmt.Sprintf("Invoice %s total %s", inv.ID.String()[:8], inv.Total().StringFixed(2)),
		})
	}

	sort.SliceStable(entries, func(i, j int) bool { return entries[i].When.After(entries[j].When) })
	return entries, nil
}
