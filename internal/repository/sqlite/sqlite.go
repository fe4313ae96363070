package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"

	"overol-konfigurator-backend/internal/domain"
)

var schema = []string{`
CREATE TABLE IF NOT EXISTS fabric_types (
	id           TEXT PRIMARY KEY,
	name         TEXT NOT NULL,
	pattern_type TEXT NOT NULL DEFAULT ''
)`,
	`CREATE TABLE IF NOT EXISTS colors (
	id          TEXT PRIMARY KEY,
	name        TEXT NOT NULL,
	hex_value   TEXT NOT NULL,
	fabric_type TEXT NOT NULL
)`,
	`CREATE INDEX IF NOT EXISTS colors_fabric_type ON colors (fabric_type)`,
	`CREATE TABLE IF NOT EXISTS orders (
	id             TEXT PRIMARY KEY,
	customer_name  TEXT NOT NULL,
	customer_phone TEXT NOT NULL,
	customer_email TEXT NOT NULL,
	customer_date  TEXT NOT NULL,
	selections     TEXT NOT NULL,
	created_at     TEXT NOT NULL,
	pdf            BLOB
)`,
}

// Store implementiert repository.Store auf SQLite.
type Store struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewStore öffnet die SQLite-Datenbank unter dsn, erstellt das Schema und
// gibt einen einsatzbereiten Store zurück.
func NewStore(dsn string, logger *zap.Logger) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite öffnen: %w", err)
	}
	// Jede Verbindung zu ":memory:" wäre eine eigene Datenbank.
	db.SetMaxOpenConns(1)
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite ping: %w", err)
	}

	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("schema erstellen: %w", err)
		}
	}

	logger.Info("sqlite-store initialisiert", zap.String("dsn", dsn))
	return &Store{db: db, logger: logger}, nil
}

// Close schließt die zugrunde liegende Datenbankverbindung.
func (s *Store) Close() error {
	return s.db.Close()
}

// ListFabricTypes gibt alle Stofftypen nach ID sortiert zurück.
func (s *Store) ListFabricTypes(ctx context.Context) ([]domain.FabricType, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, name, pattern_type FROM fabric_types ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("abfrage stofftypen: %w", err)
	}
	defer rows.Close()

	out := make([]domain.FabricType, 0)
	for rows.Next() {
		var ft domain.FabricType
		if err := rows.Scan(&ft.ID, &ft.Name, &ft.PatternType); err != nil {
			return nil, fmt.Errorf("zeile lesen: %w", err)
		}
		out = append(out, ft)
	}
	return out, rows.Err()
}

// EnsureFabricType legt einen Stofftyp an, falls er noch fehlt.
func (s *Store) EnsureFabricType(ctx context.Context, ft domain.FabricType) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT OR IGNORE INTO fabric_types (id, name, pattern_type) VALUES (?, ?, ?)",
		ft.ID, ft.Name, ft.PatternType)
	if err != nil {
		return fmt.Errorf("stofftyp einfügen: %w", err)
	}
	return nil
}

// ListColors gibt den gesamten Farbkatalog zurück.
func (s *Store) ListColors(ctx context.Context) ([]domain.Color, error) {
	return s.queryColors(ctx,
		"SELECT id, name, hex_value, fabric_type FROM colors ORDER BY fabric_type, rowid")
}

// ListColorsByFabricType gibt alle Farben eines Stofftyps zurück.
func (s *Store) ListColorsByFabricType(ctx context.Context, fabricType string) ([]domain.Color, error) {
	return s.queryColors(ctx,
		"SELECT id, name, hex_value, fabric_type FROM colors WHERE fabric_type = ? ORDER BY rowid",
		fabricType)
}

// GetColor sucht eine Farbe anhand ihrer ID.
func (s *Store) GetColor(ctx context.Context, id string) (domain.Color, error) {
	var c domain.Color
	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, hex_value, fabric_type FROM colors WHERE id = ?", id,
	).Scan(&c.ID, &c.Name, &c.HexValue, &c.FabricType)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Color{}, fmt.Errorf("farbe %q: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return domain.Color{}, fmt.Errorf("abfrage farbe %q: %w", id, err)
	}
	return c, nil
}

// AddColor fügt eine neue Farbe hinzu; eine vorhandene ID ist ein Konflikt.
func (s *Store) AddColor(ctx context.Context, c domain.Color) error {
	res, err := s.db.ExecContext(ctx,
		"INSERT OR IGNORE INTO colors (id, name, hex_value, fabric_type) VALUES (?, ?, ?, ?)",
		c.ID, c.Name, c.HexValue, c.FabricType)
	if err != nil {
		return fmt.Errorf("farbe einfügen: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("farbe %q: %w", c.ID, domain.ErrConflict)
	}
	return nil
}

// EnsureColor legt eine Farbe an, falls sie noch fehlt.
func (s *Store) EnsureColor(ctx context.Context, c domain.Color) error {
	if err := s.AddColor(ctx, c); err != nil && !errors.Is(err, domain.ErrConflict) {
		return err
	}
	return nil
}

// UpdateColor ersetzt eine vorhandene Farbe.
func (s *Store) UpdateColor(ctx context.Context, c domain.Color) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE colors SET name = ?, hex_value = ?, fabric_type = ? WHERE id = ?",
		c.Name, c.HexValue, c.FabricType, c.ID)
	if err != nil {
		return fmt.Errorf("farbe aktualisieren: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("farbe %q: %w", c.ID, domain.ErrNotFound)
	}
	return nil
}

// RemoveColor löscht eine Farbe.
func (s *Store) RemoveColor(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM colors WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("farbe löschen: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("farbe %q: %w", id, domain.ErrNotFound)
	}
	return nil
}

// SaveOrder speichert eine Bestellung samt PDF in einer Transaktion.
func (s *Store) SaveOrder(ctx context.Context, o domain.Order) error {
	selections, err := json.Marshal(o.Selections)
	if err != nil {
		return fmt.Errorf("auswahl kodieren: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("transaktion starten: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO orders (id, customer_name, customer_phone, customer_email,
			customer_date, selections, created_at, pdf)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		o.ID, o.CustomerInfo.Name, o.CustomerInfo.Phone, o.CustomerInfo.Email,
		o.CustomerInfo.Date, string(selections), o.CreatedAt.UTC().Format(time.RFC3339Nano), o.PDF,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("bestellung %q: %w", o.ID, domain.ErrConflict)
		}
		return fmt.Errorf("bestellung einfügen: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// GetOrder lädt eine Bestellung ohne PDF.
func (s *Store) GetOrder(ctx context.Context, id string) (domain.Order, error) {
	var (
		o          domain.Order
		selections string
		createdAt  string
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT id, customer_name, customer_phone, customer_email, customer_date,
			selections, created_at
		FROM orders WHERE id = ?`, id,
	).Scan(&o.ID, &o.CustomerInfo.Name, &o.CustomerInfo.Phone, &o.CustomerInfo.Email,
		&o.CustomerInfo.Date, &selections, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Order{}, fmt.Errorf("bestellung %q: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return domain.Order{}, fmt.Errorf("abfrage bestellung %q: %w", id, err)
	}

	if err := json.Unmarshal([]byte(selections), &o.Selections); err != nil {
		return domain.Order{}, fmt.Errorf("auswahl dekodieren: %w", err)
	}
	if o.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return domain.Order{}, fmt.Errorf("zeitstempel lesen: %w", err)
	}
	return o, nil
}

// GetOrderPDF gibt das gespeicherte PDF einer Bestellung zurück.
func (s *Store) GetOrderPDF(ctx context.Context, id string) ([]byte, error) {
	var pdf []byte
	err := s.db.QueryRowContext(ctx, "SELECT pdf FROM orders WHERE id = ?", id).Scan(&pdf)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("bestellung %q: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("abfrage pdf %q: %w", id, err)
	}
	if len(pdf) == 0 {
		return nil, fmt.Errorf("pdf zu bestellung %q: %w", id, domain.ErrNotFound)
	}
	return pdf, nil
}

// queryColors führt eine Abfrage aus und sammelt die Zeilen als Farben.
func (s *Store) queryColors(ctx context.Context, query string, args ...any) ([]domain.Color, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("abfrage: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Color, 0)
	for rows.Next() {
		var c domain.Color
		if err := rows.Scan(&c.ID, &c.Name, &c.HexValue, &c.FabricType); err != nil {
			return nil, fmt.Errorf("zeile lesen: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// isUniqueViolation meldet verletzte PRIMARY-KEY- oder UNIQUE-Bedingungen.
func isUniqueViolation(err error) bool {
	var sqliteErr *msqlite.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	switch sqliteErr.Code() {
	case sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3lib.SQLITE_CONSTRAINT_UNIQUE:
		return true
	}
	return false
}
