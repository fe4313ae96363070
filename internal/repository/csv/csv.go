// Package csv importiert und exportiert den Farbkatalog als CSV
// (Spalten: id, name, hex_value, fabric_type).
package csv

import (
	stdcsv "encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gocarina/gocsv"
	"go.uber.org/zap"

	"overol-konfigurator-backend/internal/domain"
)

// colorRecord ist eine Zeile der Farbdatei.
type colorRecord struct {
	ID         string `csv:"id"`
	Name       string `csv:"name"`
	HexValue   string `csv:"hex_value"`
	FabricType string `csv:"fabric_type"`
}

// LoadColorsFile liest alle gültigen Farben aus der Datei unter path.
func LoadColorsFile(path string, logger *zap.Logger) ([]domain.Color, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("datei öffnen %s: %w", path, err)
	}
	defer file.Close()

	colors, err := ReadColors(file, logger)
	if err != nil {
		return nil, fmt.Errorf("farbdatei %s: %w", path, err)
	}
	logger.Info("farben aus CSV geladen",
		zap.Int("anzahl", len(colors)),
		zap.String("datei", path),
	)
	return colors, nil
}

// ReadColors liest Farben aus r. Ungültige Zeilen werden mit einer Warnung
// übersprungen; eine ID, die mehrfach vorkommt, gilt nur beim ersten Mal.
func ReadColors(r io.Reader, logger *zap.Logger) ([]domain.Color, error) {
	reader := stdcsv.NewReader(r)
	reader.TrimLeadingSpace = true

	var records []*colorRecord
	if err := gocsv.UnmarshalCSV(reader, &records); err != nil {
		if errors.Is(err, gocsv.ErrEmptyCSVFile) {
			return []domain.Color{}, nil
		}
		return nil, fmt.Errorf("csv lesen: %w", err)
	}

	out := make([]domain.Color, 0, len(records))
	seen := make(map[string]struct{}, len(records))
	for i, rec := range records {
		c, err := toColor(rec)
		if err != nil {
			logger.Warn("ungültiger datensatz wird übersprungen",
				zap.Int("zeile", i+2),
				zap.Error(err),
			)
			continue
		}
		if _, dup := seen[c.ID]; dup {
			logger.Warn("doppelte farb-id wird übersprungen", zap.String("id", c.ID))
			continue
		}
		seen[c.ID] = struct{}{}
		out = append(out, c)
	}
	return out, nil
}

// WriteColors schreibt colors samt Kopfzeile nach w.
func WriteColors(w io.Writer, colors []domain.Color) error {
	records := make([]*colorRecord, 0, len(colors))
	for _, c := range colors {
		records = append(records, &colorRecord{
			ID:         c.ID,
			Name:       c.Name,
			HexValue:   c.HexValue,
			FabricType: c.FabricType,
		})
	}
	if err := gocsv.Marshal(records, w); err != nil {
		return fmt.Errorf("csv schreiben: %w", err)
	}
	return nil
}

// toColor wandelt eine CSV-Zeile in eine geprüfte Farbe um.
func toColor(rec *colorRecord) (domain.Color, error) {
	c := domain.Color{
		ID:         strings.TrimSpace(rec.ID),
		Name:       strings.TrimSpace(rec.Name),
		HexValue:   domain.NormalizeHex(rec.HexValue),
		FabricType: strings.TrimSpace(rec.FabricType),
	}
	if c.ID == "" || c.Name == "" || c.FabricType == "" {
		return domain.Color{}, fmt.Errorf("id, name und stofftyp sind erforderlich: %w", domain.ErrInvalidInput)
	}
	if !domain.ValidHex(c.HexValue) {
		return domain.Color{}, fmt.Errorf("ungültiger farbwert %q: %w", rec.HexValue, domain.ErrInvalidInput)
	}
	return c, nil
}
