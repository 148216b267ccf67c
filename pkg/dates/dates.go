// Package dates normaliza las fechas que llegan por la API: los
// lectores RFID y los clientes legados mandan formatos distintos.
package dates

import (
	"fmt"
	"strings"
	"time"
)

var layouts = []string{"2006-01-02", "2006/01/02", "20060102"}

// Normalize interpreta una fecha en formato YYYY-MM-DD, YYYY/MM/DD o
// YYYYMMDD y la devuelve a medianoche UTC.
func Normalize(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("fecha no reconocida: %q", s)
}
