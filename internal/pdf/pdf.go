// Package pdf erzeugt das Bestelldokument eines Overalls.
package pdf

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
	"golang.org/x/text/encoding/charmap"

	"overol-konfigurator-backend/internal/domain"
)

// FileName ist der Download-Name des Dokuments einer Bestellung.
func FileName(orderID string) string {
	return fmt.Sprintf("overol_orden_%s.pdf", orderID)
}

// Renderer setzt Bestellungen als A4-Dokument.
type Renderer struct {
	creator string
}

// NewRenderer gibt einen Renderer zurück; creator landet in den Metadaten.
func NewRenderer(creator string) *Renderer {
	return &Renderer{creator: creator}
}

// colorGroup fasst alle Zonen einer Farbe innerhalb eines Stofftyps zusammen.
type colorGroup struct {
	hex   string
	areas []string
}

type fabricGroup struct {
	fabricType string
	colors     []*colorGroup
}

// Render erzeugt das PDF zu order. fabricTypes liefert die Anzeigenamen der
// Stofftypen; fehlt einer, wird "tela2" als "Tela #2" ausgegeben.
func (r *Renderer) Render(order domain.Order, fabricTypes []domain.FabricType) ([]byte, error) {
	names := make(map[string]string, len(fabricTypes))
	for _, ft := range fabricTypes {
		names[ft.ID] = ft.Name
	}

	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetTitle(fmt.Sprintf("Orden %s", order.ID), true)
	doc.SetCreator(r.creator, true)
	doc.SetCreationDate(order.CreatedAt)
	doc.SetMargins(20, 20, 20)
	doc.AddPage()

	doc.SetFont("Helvetica", "B", 18)
	doc.SetTextColor(0, 0, 139)
	doc.MultiCell(0, 9, encode("OVEROL FREEFLY - ORDEN DE PERSONALIZACIÓN"), "", "C", false)
	doc.SetTextColor(0, 0, 0)
	doc.Ln(8)

	heading := func(s string) {
		doc.SetFont("Helvetica", "B", 14)
		doc.CellFormat(0, 8, encode(s), "", 1, "L", false, 0, "")
		doc.SetFont("Helvetica", "", 11)
	}
	field := func(label, value string) {
		doc.SetFont("Helvetica", "B", 11)
		doc.CellFormat(35, 6, encode(label), "", 0, "L", false, 0, "")
		doc.SetFont("Helvetica", "", 11)
		doc.CellFormat(0, 6, encode(value), "", 1, "L", false, 0, "")
	}

	ci := order.CustomerInfo
	heading("INFORMACIÓN DEL CLIENTE")
	field("Nombre:", ci.Name)
	field("Teléfono:", ci.Phone)
	field("Email:", ci.Email)
	field("Fecha:", ci.Date)
	doc.Ln(6)

	heading("SELECCIÓN DE COLORES")
	for _, g := range groupSelections(order.Selections) {
		doc.SetFont("Helvetica", "B", 12)
		doc.CellFormat(0, 7, encode(fabricName(names, g.fabricType)+":"), "", 1, "L", false, 0, "")
		doc.SetFont("Helvetica", "", 11)
		for _, c := range g.colors {
			if red, green, blue, ok := domain.RGB(c.hex); ok {
				doc.SetFillColor(red, green, blue)
				doc.Rect(doc.GetX(), doc.GetY()+1, 4, 4, "FD")
			}
			doc.SetX(doc.GetX() + 6)
			line := fmt.Sprintf("Color: %s - Áreas: %s", c.hex, strings.Join(c.areas, ", "))
			doc.MultiCell(0, 6, encode(line), "", "L", false)
		}
		doc.Ln(3)
	}

	doc.Ln(6)
	field("ID de Orden:", order.ID)
	doc.SetFont("Helvetica", "B", 11)
	doc.CellFormat(45, 6, encode("Fecha de Creación:"), "", 0, "L", false, 0, "")
	doc.SetFont("Helvetica", "", 11)
	doc.CellFormat(0, 6, order.CreatedAt.Format(time.RFC3339), "", 1, "L", false, 0, "")

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf erzeugen: %w", err)
	}
	return buf.Bytes(), nil
}

func fabricName(names map[string]string, fabricType string) string {
	if name := names[fabricType]; name != "" {
		return name
	}
	return strings.Replace(fabricType, "tela", "Tela #", 1)
}

// groupSelections gruppiert nach Stofftyp und innerhalb davon nach Farbe,
// jeweils in der Reihenfolge des ersten Auftretens.
func groupSelections(selections []domain.Selection) []*fabricGroup {
	var groups []*fabricGroup
	byFabric := map[string]*fabricGroup{}
	byColor := map[string]*colorGroup{}

	for _, s := range selections {
		fg, ok := byFabric[s.FabricType]
		if !ok {
			fg = &fabricGroup{fabricType: s.FabricType}
			byFabric[s.FabricType] = fg
			groups = append(groups, fg)
		}
		key := s.FabricType + "\x00" + s.ColorID + "-" + s.ColorHex
		cg, ok := byColor[key]
		if !ok {
			cg = &colorGroup{hex: s.ColorHex}
			byColor[key] = cg
			fg.colors = append(fg.colors, cg)
		}
		cg.areas = append(cg.areas, s.AreaID)
	}
	return groups
}

// encode übersetzt UTF-8 nach Windows-1252 für die PDF-Standardschriften.
// Nicht darstellbare Zeichen werden durch "?" ersetzt.
func encode(s string) string {
	var b strings.Builder
	enc := charmap.Windows1252
	for _, r := range s {
		if c, ok := enc.EncodeRune(r); ok {
			b.WriteByte(c)
		} else {
			b.WriteByte('?')
		}
	}
	return b.String()
}
