package reconcile

import (
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/medtrack-api/internal/domain/entity"
)

// RebuildPlan ajustes sobre un snapshot de inventario derivados de los
// registros de discrepancia ya persistidos (ruta legada de corrección).
type RebuildPlan struct {
	Updates []*entity.InventoryRow
	Clamps  []ClampEvent
	Missing []entity.ItemKey
	Skipped int
}

// PlanRebuild aplica cada discrepancia como un ajuste sobre el snapshot:
// SURPLUS suma su cantidad y las otras tres razones la restan, siempre
// con piso en cero. Las claves sin fila de inventario se anotan en
// Missing y las razones desconocidas se cuentan en Skipped.
func PlanRebuild(records []*entity.Discrepancy, snapshot map[entity.ItemKey]*entity.InventoryRow) *RebuildPlan {
	plan := &RebuildPlan{}
	queued := make(map[entity.ItemKey]struct{})

	for _, rec := range records {
		var delta decimal.Decimal
		switch rec.Reason {
		case entity.ReasonSurplus:
			delta = rec.Quantity.Abs()
		case entity.ReasonShortfall, entity.ReasonNotShipped, entity.ReasonNotInspected:
			delta = rec.Quantity.Abs().Neg()
		default:
			plan.Skipped++
			continue
		}

		k := rec.Key()
		row, ok := snapshot[k]
		if !ok {
			plan.Missing = append(plan.Missing, k)
			continue
		}

		newQty := row.StockQuantity.Add(delta)
		if newQty.Sign() < 0 {
			plan.Clamps = append(plan.Clamps, ClampEvent{
				Key:    k,
				Before: row.StockQuantity,
				After:  decimal.Zero,
				Wanted: delta.Neg(),
			})
			newQty = decimal.Zero
		}
		row.StockQuantity = newQty

		// Varias discrepancias pueden tocar la misma fila; se encola una vez.
		if _, ok := queued[k]; !ok {
			queued[k] = struct{}{}
			plan.Updates = append(plan.Updates, row)
		}
	}
	return plan
}
