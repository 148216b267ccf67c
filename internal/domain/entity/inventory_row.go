package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryRow fila del libro de inventario de una compañía para una fecha.
// La cantidad nunca queda negativa después de una operación del núcleo:
// una resta que quedaría bajo cero se ajusta a cero y el ajuste se reporta.
type InventoryRow struct {
	ID             string
	CompanyID      string
	Date           time.Time
	ProductNum     string
	MedicationName string
	Expiry         time.Time
	Lot            string
	StockQuantity  decimal.Decimal
	UpdatedAt      time.Time
}

// Key devuelve la clave de identidad (producto, vencimiento, lote).
func (r *InventoryRow) Key() ItemKey {
	return NewItemKey(r.ProductNum, r.Expiry, r.Lot)
}
