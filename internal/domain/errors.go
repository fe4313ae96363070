package domain

import "errors"

var (
	ErrNotFound        = errors.New("nicht gefunden")
	ErrInvalidInput    = errors.New("ungültige eingabe")
	ErrConflict        = errors.New("existiert bereits")
	ErrUnauthorized    = errors.New("nicht autorisiert")
	ErrCapacityReached = errors.New("kapazitätsgrenze erreicht")

	// ErrFabricTypeMismatch meldet den Versuch, eine Zone eines anderen
	// Stofftyps zu einer nicht leeren Auswahl hinzuzufügen.
	ErrFabricTypeMismatch = errors.New("zonen mit unterschiedlichen stofftypen können nicht gemeinsam ausgewählt werden")

	// ErrEmptySelection meldet eine Bestellung ohne eingefärbte Zone.
	ErrEmptySelection = errors.New("keine zone eingefärbt")
)
