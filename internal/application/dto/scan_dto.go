package dto

// BulkScanRequest body para POST /api/scans/bulk: lote de lecturas EPC
// de un lector RFID.
type BulkScanRequest struct {
	CompanyID string   `json:"company_id" validate:"required,uuid"`
	Date      string   `json:"date" validate:"required"`
	Direction string   `json:"direction" validate:"required,oneof=OUTGOING INSPECTED"`
	EPCs      []string `json:"epcs" validate:"required,min=1"`

	// TargetCompanyID solo aplica a lecturas INSPECTED: dispara la
	// orquestación de inspección contra la compañía de origen.
	TargetCompanyID string `json:"target_company_id,omitempty"`
}

// BulkScanResultDTO resumen de la ingesta de un lote de lecturas.
type BulkScanResultDTO struct {
	Ingested    int `json:"ingested"`
	Duplicates  int `json:"duplicates"`
	Unparseable int `json:"unparseable"`
	UnknownLots int `json:"unknown_lots"`
	Created     int `json:"created"`
	Updated     int `json:"updated"`

	// Inspection presente cuando la ingesta INSPECTED disparó la
	// conciliación completa contra la compañía de origen.
	Inspection *InspectionResultDTO `json:"inspection,omitempty"`
}

// RegisterLotRequest body para POST /api/lots.
type RegisterLotRequest struct {
	LotNumber string `json:"lot_number" validate:"required,min=1,max=100"`
}

// RegisterLotResponse alias emitido para un lote.
type RegisterLotResponse struct {
	LotNumber  string `json:"lot_number"`
	HashedCode string `json:"hashed_code"`
}
