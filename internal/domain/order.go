package domain

import "time"

// Assignment ist die endgültige Farbe einer eingefärbten Zone.
type Assignment struct {
	ColorID    string `json:"color_id"`
	ColorHex   string `json:"color_hex"`
	FabricType string `json:"fabric_type"`
}

// Selection ist eine Bestellzeile: eine Zone mit ihrer Farbe.
type Selection struct {
	AreaID     string `json:"area_id"`
	FabricType string `json:"fabric_type"`
	ColorID    string `json:"color_id"`
	ColorHex   string `json:"color_hex"`
}

// CustomerInfo enthält die Kontaktdaten des Kunden.
type CustomerInfo struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
	Date  string `json:"date"`
}

// Order ist eine abgeschlossene Bestellung samt erzeugtem PDF.
type Order struct {
	ID           string       `json:"id"`
	CustomerInfo CustomerInfo `json:"customer_info"`
	Selections   []Selection  `json:"selections"`
	CreatedAt    time.Time    `json:"created_at"`
	PDF          []byte       `json:"-"`
}

// OrderReceipt ist die Antwort auf eine erfolgreich angelegte Bestellung.
type OrderReceipt struct {
	OrderID  string `json:"order_id"`
	PDFReady bool   `json:"pdf_ready"`
}
