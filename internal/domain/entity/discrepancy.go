package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Razones de discrepancia entre lo despachado y lo inspeccionado.
const (
	ReasonNotShipped   = "NOT_SHIPPED_BUT_INSPECTED" // inspeccionado sin salida registrada
	ReasonNotInspected = "NOT_INSPECTED"             // despachado sin inspección
	ReasonShortfall    = "SHORTFALL"                 // la salida excede la inspección
	ReasonSurplus      = "SURPLUS"                   // la inspección excede la salida
)

// Discrepancy registro durable de una clave no conciliada en una fecha.
// Se crea una sola vez por corrida (insert masivo) y nunca se actualiza.
// La cantidad se guarda siempre positiva; la dirección la da la razón.
type Discrepancy struct {
	ID             string
	CompanyID      string
	Date           time.Time
	ProductNum     string
	Expiry         time.Time
	Lot            string
	MedicationName string
	Reason         string
	Quantity       decimal.Decimal
	CreatedAt      time.Time
}

// Key devuelve la clave de identidad (producto, vencimiento, lote).
func (d *Discrepancy) Key() ItemKey {
	return NewItemKey(d.ProductNum, d.Expiry, d.Lot)
}
