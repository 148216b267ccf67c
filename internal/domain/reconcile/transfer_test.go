package reconcile

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/medtrack-api/internal/domain/entity"
)

var (
	srcDate = time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	dstDate = time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
)

func invRow(companyID, product, lot, qty string) *entity.InventoryRow {
	return &entity.InventoryRow{
		ID:             companyID + "-" + product + "-" + lot,
		CompanyID:      companyID,
		Date:           srcDate,
		ProductNum:     product,
		MedicationName: "Ibuprofeno 400mg",
		Expiry:         time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC),
		Lot:            lot,
		StockQuantity:  decimal.RequireFromString(qty),
	}
}

func snapshot(rows ...*entity.InventoryRow) map[entity.ItemKey]*entity.InventoryRow {
	m := make(map[entity.ItemKey]*entity.InventoryRow, len(rows))
	for _, r := range rows {
		m[r.Key()] = r
	}
	return m
}

func matchedFor(items []*entity.SpecItem, qty string) map[entity.ItemKey]decimal.Decimal {
	m := make(map[entity.ItemKey]decimal.Decimal)
	for _, it := range items {
		m[it.Key()] = decimal.RequireFromString(qty)
	}
	return m
}

func TestPlanTransferDescuentaYAcredita(t *testing.T) {
	src := invRow("origen", "P0001", "L1", "10")
	dst := invRow("destino", "P0001", "L1", "2")
	matched := map[entity.ItemKey]decimal.Decimal{
		src.Key(): decimal.NewFromInt(7),
	}

	plan := PlanTransfer(matched, snapshot(src), snapshot(dst), "destino", dstDate, srcDate)

	require.Len(t, plan.SourceUpdates, 1)
	assert.True(t, plan.SourceUpdates[0].StockQuantity.Equal(decimal.NewFromInt(3)))
	require.Len(t, plan.DestUpdates, 1)
	assert.True(t, plan.DestUpdates[0].StockQuantity.Equal(decimal.NewFromInt(9)))
	assert.Empty(t, plan.DestInserts)
	assert.Empty(t, plan.Clamps)
	assert.Empty(t, plan.MissingSource)

	assert.Equal(t, 1, plan.Summary.MovedKeys)
	assert.True(t, plan.Summary.MovedQty.Equal(decimal.NewFromInt(7)))
	assert.Equal(t, 1, plan.Summary.SourceUpdated)
	assert.Equal(t, 1, plan.Summary.DestUpdated)
	assert.Equal(t, 0, plan.Summary.DestCreated)
}

func TestPlanTransferCreaFilaDestino(t *testing.T) {
	src := invRow("origen", "P0001", "L1", "10")
	matched := map[entity.ItemKey]decimal.Decimal{
		src.Key(): decimal.NewFromInt(4),
	}

	plan := PlanTransfer(matched, snapshot(src), snapshot(), "destino", dstDate, srcDate)

	require.Len(t, plan.DestInserts, 1)
	ins := plan.DestInserts[0]
	assert.Equal(t, "destino", ins.CompanyID)
	assert.Equal(t, dstDate, ins.Date)
	assert.Equal(t, "P0001", ins.ProductNum)
	assert.Equal(t, "L1", ins.Lot)
	assert.Equal(t, "Ibuprofeno 400mg", ins.MedicationName, "el nombre se copia de la fila de origen")
	assert.True(t, ins.StockQuantity.Equal(decimal.NewFromInt(4)))
	assert.Equal(t, 1, plan.Summary.DestCreated)
}

func TestPlanTransferClampEnOrigen(t *testing.T) {
	// El stock de origen nunca queda negativo; el destino recibe la
	// cantidad conciliada completa de todas formas.
	src := invRow("origen", "P0001", "L1", "3")
	matched := map[entity.ItemKey]decimal.Decimal{
		src.Key(): decimal.NewFromInt(7),
	}

	plan := PlanTransfer(matched, snapshot(src), snapshot(), "destino", dstDate, srcDate)

	require.Len(t, plan.Clamps, 1)
	clamp := plan.Clamps[0]
	assert.True(t, clamp.Before.Equal(decimal.NewFromInt(3)))
	assert.True(t, clamp.After.IsZero())
	assert.True(t, clamp.Wanted.Equal(decimal.NewFromInt(7)))

	require.Len(t, plan.SourceUpdates, 1)
	assert.True(t, plan.SourceUpdates[0].StockQuantity.IsZero())
	require.Len(t, plan.DestInserts, 1)
	assert.True(t, plan.DestInserts[0].StockQuantity.Equal(decimal.NewFromInt(7)))
}

func TestPlanTransferOrigenSinFila(t *testing.T) {
	item := specItem("P0001", "L1", "5")
	matched := matchedFor([]*entity.SpecItem{item}, "5")

	plan := PlanTransfer(matched, snapshot(), snapshot(), "destino", dstDate, srcDate)

	require.Len(t, plan.MissingSource, 1)
	assert.Equal(t, item.Key(), plan.MissingSource[0])
	assert.Empty(t, plan.SourceUpdates)
	// El crédito en destino se aplica igual.
	require.Len(t, plan.DestInserts, 1)
	assert.True(t, plan.DestInserts[0].StockQuantity.Equal(decimal.NewFromInt(5)))
	assert.Equal(t, 1, plan.Summary.MovedKeys)
}

func TestPlanTransferOrigenYaEnCero(t *testing.T) {
	// Fila en cero: el clamp no cambia la cantidad y no se encola update.
	src := invRow("origen", "P0001", "L1", "0")
	matched := map[entity.ItemKey]decimal.Decimal{
		src.Key(): decimal.NewFromInt(2),
	}

	plan := PlanTransfer(matched, snapshot(src), snapshot(), "destino", dstDate, srcDate)

	assert.Empty(t, plan.SourceUpdates)
	require.Len(t, plan.Clamps, 1)
	require.Len(t, plan.DestInserts, 1)
}

func TestPlanTransferIgnoraCantidadCero(t *testing.T) {
	src := invRow("origen", "P0001", "L1", "10")
	matched := map[entity.ItemKey]decimal.Decimal{
		src.Key(): decimal.Zero,
	}

	plan := PlanTransfer(matched, snapshot(src), snapshot(), "destino", dstDate, srcDate)

	assert.Equal(t, 0, plan.Summary.MovedKeys)
	assert.Empty(t, plan.SourceUpdates)
	assert.Empty(t, plan.DestInserts)
}

func TestPlanTransferDobleAplicacionDuplicaEfecto(t *testing.T) {
	// La operación no es idempotente: aplicarla dos veces mueve el doble.
	src := invRow("origen", "P0001", "L1", "10")
	dst := invRow("destino", "P0001", "L1", "0")
	matched := map[entity.ItemKey]decimal.Decimal{
		src.Key(): decimal.NewFromInt(4),
	}

	PlanTransfer(matched, snapshot(src), snapshot(dst), "destino", dstDate, srcDate)
	PlanTransfer(matched, snapshot(src), snapshot(dst), "destino", dstDate, srcDate)

	assert.True(t, src.StockQuantity.Equal(decimal.NewFromInt(2)))
	assert.True(t, dst.StockQuantity.Equal(decimal.NewFromInt(8)))
}

func TestPlanTransferOrdenDeterminista(t *testing.T) {
	a := invRow("origen", "P0001", "L1", "10")
	b := invRow("origen", "P0002", "L1", "10")
	matched := map[entity.ItemKey]decimal.Decimal{
		a.Key(): decimal.NewFromInt(1),
		b.Key(): decimal.NewFromInt(1),
	}

	plan := PlanTransfer(matched, snapshot(a, b), snapshot(), "destino", dstDate, srcDate)

	require.Len(t, plan.SourceUpdates, 2)
	assert.Equal(t, "P0001", plan.SourceUpdates[0].ProductNum)
	assert.Equal(t, "P0002", plan.SourceUpdates[1].ProductNum)
}
