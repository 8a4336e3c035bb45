package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Collector struct {
	PatientsRegistered    prometheus.Counter
	MedicationsRegistered prometheus.Counter
	TestTypesRegistered   prometheus.Counter

	Dispenses      prometheus.Counter
	DispensedUnits prometheus.Counter

	LabOrdersCreated   prometheus.Counter
	LabResultsRecorded prometheus.Counter
	InvoicesCreated    prometheus.Counter

	SaveDuration prometheus.Histogram
	SaveFailures prometheus.Counter
}

// NewCollector registers all collectors on reg. Taking the registerer
// instead of using the package default keeps test binaries free of
// duplicate-registration panics.
func NewCollector(serviceName string, reg prometheus.Registerer) *Collector {
	factory := promauto.With(reg)

	return &Collector{
		PatientsRegistered: factory.NewCounter(prometheus.CounterOpts{
			Namespace: serviceName,
			Subsystem: "registry",
			Name:      "patients_registered_total",
			Help:      "Total number of patient records created.",
		}),

		MedicationsRegistered: factory.NewCounter(prometheus.CounterOpts{
			Namespace: serviceName,
			Subsystem: "registry",
			Name:      "medications_registered_total",
			Help:      "Total number of medications added to the catalog.",
		}),

		TestTypesRegistered: factory.NewCounter(prometheus.CounterOpts{
			Namespace: serviceName,
			Subsystem: "registry",
			Name:      "test_types_registered_total",
			Help:      "Total number of lab test types added to the catalog.",
		}),

		Dispenses: factory.NewCounter(prometheus.CounterOpts{
			Namespace: serviceName,
			Subsystem: "pharmacy",
			Name:      "dispenses_total",
			Help:      "Total number of dispense records created.",
		}),

		DispensedUnits: factory.NewCounter(prometheus.CounterOpts{
			Namespace: serviceName,
			Subsystem: "pharmacy",
			Name:      "dispensed_units_total",
			Help:      "Total medication units debited from stock.",
		}),

		LabOrdersCreated: factory.NewCounter(prometheus.CounterOpts{
			Namespace: serviceName,
			Subsystem: "lab",
			Name:      "orders_created_total",
			Help:      "Total lab orders created.",
		}),

		LabResultsRecorded: factory.NewCounter(prometheus.CounterOpts{
			Namespace: serviceName,
			Subsystem: "lab",
			Name:      "results_recorded_total",
			Help:      "Total lab results recorded, overwrites included.",
		}),

		InvoicesCreated: factory.NewCounter(prometheus.CounterOpts{
			Namespace: serviceName,
			Subsystem: "billing",
			Name:      "invoices_created_total",
			Help:      "Total invoices created.",
		}),

		SaveDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: serviceName,
			Subsystem: "storage",
			Name:      "save_duration_seconds",
			Help:      "Latency of whole-aggregate persistence.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0},
		}),

		SaveFailures: factory.NewCounter(prometheus.CounterOpts{
			Namespace: serviceName,
			Subsystem: "storage",
			Name:      "save_failures_total",
			Help:      "Persistence failures. Memory is ahead of storage after each one.",
		}),
	}
}
