package reconcile

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/medtrack-api/internal/domain/entity"
)

// ClampEvent queda registrado cuando un descuento dejaría el stock de
// origen en negativo y la fila se fija en cero en su lugar.
type ClampEvent struct {
	Key    entity.ItemKey
	Before decimal.Decimal
	After  decimal.Decimal
	Wanted decimal.Decimal
}

// TransferSummary totales del plan, pensados para la respuesta HTTP y el log.
type TransferSummary struct {
	MovedKeys     int
	MovedQty      decimal.Decimal
	SourceUpdated int
	DestUpdated   int
	DestCreated   int
}

// TransferPlan mutaciones a persistir para aplicar un traslado conciliado.
// El plan es puro: quien lo ejecute decide la transacción.
type TransferPlan struct {
	SourceUpdates []*entity.InventoryRow
	DestUpdates   []*entity.InventoryRow
	DestInserts   []*entity.InventoryRow
	MissingSource []entity.ItemKey
	Clamps        []ClampEvent
	Summary       TransferSummary
}

// PlanTransfer construye el plan de traslado para las cantidades
// conciliadas: descuenta del inventario de origen y acredita en el de
// destino, clave por clave, en orden determinista.
//
// Reglas por clave:
//   - la cantidad a mover es siempre la magnitud conciliada; claves con
//     cantidad cero se ignoran;
//   - si la fila de origen no existe, la clave se anota en MissingSource
//     y el crédito en destino se aplica igual;
//   - si el descuento dejaría el stock en negativo, la fila se fija en
//     cero y se registra un ClampEvent;
//   - un descuento que no cambia la cantidad (fila ya en cero) no genera
//     actualización de origen.
func PlanTransfer(matched map[entity.ItemKey]decimal.Decimal, source, dest map[entity.ItemKey]*entity.InventoryRow, destCompanyID string, destDate, sourceDate time.Time) *TransferPlan {
	keys := make([]entity.ItemKey, 0, len(matched))
	for k := range matched {
		keys = append(keys, k)
	}
	sortKeys(keys)

	plan := &TransferPlan{}
	for _, k := range keys {
		qty := matched[k].Abs()
		if qty.Sign() <= 0 {
			continue
		}

		// Lado origen: descuento con piso en cero.
		src, ok := source[k]
		if !ok {
			plan.MissingSource = append(plan.MissingSource, k)
		} else {
			newQty := src.StockQuantity.Sub(qty)
			if newQty.Sign() < 0 {
				plan.Clamps = append(plan.Clamps, ClampEvent{
					Key:    k,
					Before: src.StockQuantity,
					After:  decimal.Zero,
					Wanted: qty,
				})
				newQty = decimal.Zero
			}
			if !newQty.Equal(src.StockQuantity) {
				src.StockQuantity = newQty
				src.Date = sourceDate
				plan.SourceUpdates = append(plan.SourceUpdates, src)
			}
		}

		// Lado destino: acreditar sobre la fila existente o crear una nueva.
		if dst, ok := dest[k]; ok {
			dst.StockQuantity = dst.StockQuantity.Add(qty)
			dst.Date = destDate
			plan.DestUpdates = append(plan.DestUpdates, dst)
		} else {
			name := ""
			if src != nil {
				name = src.MedicationName
			}
			plan.DestInserts = append(plan.DestInserts, &entity.InventoryRow{
				CompanyID:      destCompanyID,
				Date:           destDate,
				ProductNum:     k.ProductNum,
				MedicationName: name,
				Expiry:         k.ExpiryTime(),
				Lot:            k.Lot,
				StockQuantity:  qty,
			})
		}

		plan.Summary.MovedKeys++
		plan.Summary.MovedQty = plan.Summary.MovedQty.Add(qty)
	}

	plan.Summary.SourceUpdated = len(plan.SourceUpdates)
	plan.Summary.DestUpdated = len(plan.DestUpdates)
	plan.Summary.DestCreated = len(plan.DestInserts)
	return plan
}
