package entity

import "time"

// ManufacturingHash mapeo entre el número de lote original y el alias
// de 9 caracteres que viaja dentro de la etiqueta EPC.
type ManufacturingHash struct {
	HashedCode   string
	OriginalCode string
	CreatedAt    time.Time
}
