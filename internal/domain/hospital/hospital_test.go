package hospital

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestInvoiceTotal_SumsItems(t *testing.T) {
	inv := Invoice{
		Items: []InvoiceItem{
			{Kind: KindLab, Amount: decimal.NewFromInt(12)},
			{Kind: KindLab, Amount: decimal.NewFromInt(10)},
			{Kind: KindPharmacy, Amount: decimal.RequireFromString("7.5")},
		},
	}
	require.True(t, inv.Total().Equal(decimal.RequireFromString("29.5")))
}

func TestInvoiceTotal_EmptyInvoice(t *testing.T) {
	require.True(t, Invoice{}.Total().IsZero())
}

func TestDataLookups(t *testing.T) {
	data := NewData()
	med := Medication{ID: uuid.New(), Name: "Paracetamol 500 mg", Stock: 40}
	data.Medications = append(data.Medications, med)

	found := data.Medication(med.ID)
	require.NotNil(t, found)
	require.Equal(t, med.Name, found.Name)

	// Lookup returns a pointer into the collection so stock mutates in place.
	found.Stock -= 5
	require.Equal(t, 35, data.Medications[0].Stock)

	require.Nil(t, data.Medication(uuid.New()))
	require.Nil(t, data.LabOrder(uuid.New()))
	require.Nil(t, data.TestType(uuid.New()))
	require.Nil(t, data.Dispense(uuid.New()))
}

func TestLabOrderStatusValidity(t *testing.T) {
	require.True(t, LabOrderPending.IsValid())
	require.True(t, LabOrderResulted.IsValid())
	require.False(t, LabOrderStatus("cancelled").IsValid())
}
