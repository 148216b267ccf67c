package entity

import "time"

// Company representa una de las partes de la conciliación (quien despacha
// o quien recibe). El par nombre + código funciona como credencial de
// acceso.
type Company struct {
	ID        string
	Name      string
	Code      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
