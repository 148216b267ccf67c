package reconcile

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/medtrack-api/internal/domain"
	"github.com/tu-usuario/medtrack-api/internal/domain/entity"
)

var testDate = time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

const (
	srcCompany = "00000000-0000-0000-0000-00000000000a"
	dstCompany = "00000000-0000-0000-0000-00000000000b"
)

type fixture struct {
	uc       *UseCase
	specRepo *fakeSpecRepo
	invRepo  *fakeInvRepo
	discRepo *fakeDiscRepo
}

func newFixture(companyIDs ...string) *fixture {
	specRepo := &fakeSpecRepo{}
	invRepo := &fakeInvRepo{}
	discRepo := &fakeDiscRepo{}
	tx := &fakeTxRunner{specRepo: specRepo, invRepo: invRepo, discRepo: discRepo}
	uc := NewUseCase(tx, specRepo, invRepo, discRepo, newFakeCompanyRepo(companyIDs...), nil, zerolog.Nop())
	return &fixture{uc: uc, specRepo: specRepo, invRepo: invRepo, discRepo: discRepo}
}

func specItemFor(companyID, product, lot string, qty int64) *entity.SpecItem {
	q := decimal.NewFromInt(qty)
	return &entity.SpecItem{
		CompanyID:      companyID,
		Date:           testDate,
		ProductNum:     product,
		MedicationName: "Amoxicilina 500mg",
		Expiry:         time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC),
		Lot:            lot,
		Quantity:       &q,
	}
}

func invRowFor(companyID, product, lot string, qty int64) *entity.InventoryRow {
	return &entity.InventoryRow{
		ID:             companyID + "-" + product + "-" + lot,
		CompanyID:      companyID,
		Date:           testDate,
		ProductNum:     product,
		MedicationName: "Amoxicilina 500mg",
		Expiry:         time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC),
		Lot:            lot,
		StockQuantity:  decimal.NewFromInt(qty),
	}
}

// ── ComputeDiscrepancies ──────────────────────────────────────────────────────

func TestComputeDiscrepanciesPersisteElReporte(t *testing.T) {
	f := newFixture(srcCompany)
	f.specRepo.add(specItemFor(srcCompany, "P0001", "L1", 10), entity.DirectionOutgoing)
	f.specRepo.add(specItemFor(srcCompany, "P0001", "L1", 7), entity.DirectionInspected)

	out, err := f.uc.ComputeDiscrepancies(context.Background(), srcCompany, testDate)

	require.NoError(t, err)
	require.Len(t, out.Discrepancies, 1)
	assert.Equal(t, entity.ReasonShortfall, out.Discrepancies[0].Reason)
	assert.True(t, out.Discrepancies[0].Quantity.Equal(decimal.NewFromInt(3)))
	assert.Equal(t, 1, out.MismatchedKeys)
	assert.Len(t, f.discRepo.records, 1, "el reporte debe quedar persistido")
}

func TestComputeDiscrepanciesReemplazaCorridaAnterior(t *testing.T) {
	f := newFixture(srcCompany)
	f.specRepo.add(specItemFor(srcCompany, "P0001", "L1", 10), entity.DirectionOutgoing)

	_, err := f.uc.ComputeDiscrepancies(context.Background(), srcCompany, testDate)
	require.NoError(t, err)
	_, err = f.uc.ComputeDiscrepancies(context.Background(), srcCompany, testDate)
	require.NoError(t, err)

	assert.Len(t, f.discRepo.records, 1, "recalcular no debe duplicar registros")
}

func TestComputeDiscrepanciesCompaniaInexistente(t *testing.T) {
	f := newFixture(srcCompany)

	_, err := f.uc.ComputeDiscrepancies(context.Background(), "otra", testDate)

	assert.ErrorIs(t, err, domain.ErrCompanyNotFound)
}

// ── ApplyMatchedTransfer ──────────────────────────────────────────────────────

func TestApplyMatchedTransferMueveElMinimo(t *testing.T) {
	f := newFixture(srcCompany, dstCompany)
	f.specRepo.add(specItemFor(srcCompany, "P0001", "L1", 10), entity.DirectionOutgoing)
	f.specRepo.add(specItemFor(srcCompany, "P0001", "L1", 7), entity.DirectionInspected)
	src := invRowFor(srcCompany, "P0001", "L1", 10)
	f.invRepo.rows = append(f.invRepo.rows, src)

	out, err := f.uc.ApplyMatchedTransfer(context.Background(), srcCompany, dstCompany, testDate)

	require.NoError(t, err)
	assert.Equal(t, 1, out.MovedKeys)
	assert.True(t, out.MovedQty.Equal(decimal.NewFromInt(7)))
	assert.Equal(t, 1, out.SourceUpdated)
	assert.Equal(t, 1, out.DestCreated)
	assert.True(t, src.StockQuantity.Equal(decimal.NewFromInt(3)), "el origen queda con 10-7")

	dstRows, _ := f.invRepo.ListByCompanyDate(context.Background(), dstCompany, testDate)
	require.Len(t, dstRows, 1)
	assert.True(t, dstRows[0].StockQuantity.Equal(decimal.NewFromInt(7)))
}

func TestApplyMatchedTransferSinConciliadasNoTocaNada(t *testing.T) {
	f := newFixture(srcCompany, dstCompany)
	f.specRepo.add(specItemFor(srcCompany, "P0001", "L1", 10), entity.DirectionOutgoing)
	// sin inspecciones: no hay mínimo conciliado

	out, err := f.uc.ApplyMatchedTransfer(context.Background(), srcCompany, dstCompany, testDate)

	require.NoError(t, err)
	assert.Equal(t, 0, out.MovedKeys)
	assert.True(t, out.MovedQty.IsZero())
	assert.Empty(t, f.invRepo.rows)
}

func TestApplyMatchedTransferAvisaFilaDeOrigenAusente(t *testing.T) {
	f := newFixture(srcCompany, dstCompany)
	f.specRepo.add(specItemFor(srcCompany, "P0001", "L1", 5), entity.DirectionOutgoing)
	f.specRepo.add(specItemFor(srcCompany, "P0001", "L1", 5), entity.DirectionInspected)
	// sin inventario en origen

	out, err := f.uc.ApplyMatchedTransfer(context.Background(), srcCompany, dstCompany, testDate)

	require.NoError(t, err)
	require.Len(t, out.Warnings, 1)
	assert.Equal(t, "MISSING_SOURCE_ROW", out.Warnings[0].Code)
	assert.Equal(t, 1, out.DestCreated, "el crédito en destino se aplica igual")
}

func TestApplyMatchedTransferMismaCompania(t *testing.T) {
	f := newFixture(srcCompany)

	_, err := f.uc.ApplyMatchedTransfer(context.Background(), srcCompany, srcCompany, testDate)

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ── CarryOverInventory ────────────────────────────────────────────────────────

func TestCarryOverCopiaElSnapshotPrevio(t *testing.T) {
	f := newFixture(srcCompany)
	prev := invRowFor(srcCompany, "P0001", "L1", 10)
	prev.Date = testDate.AddDate(0, 0, -3)
	f.invRepo.rows = append(f.invRepo.rows, prev)

	out, err := f.uc.CarryOverInventory(context.Background(), srcCompany, testDate)

	require.NoError(t, err)
	assert.Equal(t, prev.Date.Format("2006-01-02"), out.FromDate)
	assert.Equal(t, 1, out.RowsCreated)

	today, _ := f.invRepo.ListByCompanyDate(context.Background(), srcCompany, testDate)
	require.Len(t, today, 1)
	assert.True(t, today[0].StockQuantity.Equal(decimal.NewFromInt(10)))
}

func TestCarryOverRespetaFilasExistentes(t *testing.T) {
	f := newFixture(srcCompany)
	prev := invRowFor(srcCompany, "P0001", "L1", 10)
	prev.Date = testDate.AddDate(0, 0, -1)
	current := invRowFor(srcCompany, "P0001", "L1", 4) // ya tiene cantidad propia
	f.invRepo.rows = append(f.invRepo.rows, prev, current)

	out, err := f.uc.CarryOverInventory(context.Background(), srcCompany, testDate)

	require.NoError(t, err)
	assert.Equal(t, 0, out.RowsCreated)
	assert.Equal(t, 1, out.RowsSkipped)
	assert.True(t, current.StockQuantity.Equal(decimal.NewFromInt(4)), "la fila existente no se pisa")
}

func TestCarryOverSinSnapshotPrevio(t *testing.T) {
	f := newFixture(srcCompany)

	out, err := f.uc.CarryOverInventory(context.Background(), srcCompany, testDate)

	require.NoError(t, err)
	assert.Empty(t, out.FromDate)
	assert.Equal(t, 0, out.RowsCreated)
}

// ── RebuildFromDiscrepancies ──────────────────────────────────────────────────

func TestRebuildAplicaAjustes(t *testing.T) {
	f := newFixture(srcCompany)
	row := invRowFor(srcCompany, "P0001", "L1", 10)
	f.invRepo.rows = append(f.invRepo.rows, row)
	f.discRepo.records = append(f.discRepo.records, &entity.Discrepancy{
		CompanyID:  srcCompany,
		Date:       testDate,
		ProductNum: "P0001",
		Expiry:     row.Expiry,
		Lot:        "L1",
		Reason:     entity.ReasonSurplus,
		Quantity:   decimal.NewFromInt(3),
	})

	out, err := f.uc.RebuildFromDiscrepancies(context.Background(), srcCompany, testDate)

	require.NoError(t, err)
	assert.True(t, out.Success)
	assert.Equal(t, 1, out.AppliedRows)
	assert.True(t, row.StockQuantity.Equal(decimal.NewFromInt(13)))
}

func TestRebuildFalloDePersistenciaDevuelveCuerpoEstructurado(t *testing.T) {
	f := newFixture(srcCompany)
	row := invRowFor(srcCompany, "P0001", "L1", 10)
	f.invRepo.rows = append(f.invRepo.rows, row)
	f.invRepo.updateErr = errPersistencia
	f.discRepo.records = append(f.discRepo.records, &entity.Discrepancy{
		CompanyID:  srcCompany,
		Date:       testDate,
		ProductNum: "P0001",
		Expiry:     row.Expiry,
		Lot:        "L1",
		Reason:     entity.ReasonShortfall,
		Quantity:   decimal.NewFromInt(2),
	})

	out, err := f.uc.RebuildFromDiscrepancies(context.Background(), srcCompany, testDate)

	require.NoError(t, err, "el fallo viaja dentro del cuerpo, no como error")
	assert.False(t, out.Success)
	assert.Contains(t, out.Error, "simulado")
}

// ── RunInspection ─────────────────────────────────────────────────────────────

func TestRunInspectionOrquestaLosTresPasos(t *testing.T) {
	f := newFixture(srcCompany, dstCompany)
	prev := invRowFor(srcCompany, "P0001", "L1", 10)
	prev.Date = testDate.AddDate(0, 0, -1)
	f.invRepo.rows = append(f.invRepo.rows, prev)
	f.specRepo.add(specItemFor(srcCompany, "P0001", "L1", 10), entity.DirectionOutgoing)
	f.specRepo.add(specItemFor(srcCompany, "P0001", "L1", 7), entity.DirectionInspected)

	out, err := f.uc.RunInspection(context.Background(), srcCompany, dstCompany, testDate)

	require.NoError(t, err)
	require.NotNil(t, out.SourceCarryOver)
	assert.Equal(t, 1, out.SourceCarryOver.RowsCreated)
	require.NotNil(t, out.Report)
	assert.Equal(t, 1, out.Report.MismatchedKeys)
	require.NotNil(t, out.Transfer)
	assert.True(t, out.Transfer.MovedQty.Equal(decimal.NewFromInt(7)))
}
