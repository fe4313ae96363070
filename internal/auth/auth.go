// Package auth prüft die Zugangsdaten der Farbverwaltung. Das Passwort liegt
// nur als bcrypt-Hash vor; nach erfolgreicher Anmeldung wird ein kurzlebiges
// HS256-Token ausgestellt.
package auth

import (
	"crypto/rand"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"overol-konfigurator-backend/internal/domain"
)

const (
	issuer  = "overol-konfigurator"
	subject = "color-admin"
)

// Authenticator prüft Passwort und Tokens der Farbverwaltung.
type Authenticator struct {
	hash   []byte
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// Option passt einen Authenticator an.
type Option func(*Authenticator)

// WithClock ersetzt die Uhr, z.B. in Tests.
func WithClock(now func() time.Time) Option {
	return func(a *Authenticator) { a.now = now }
}

// New erstellt einen Authenticator. Ein leerer passwordHash sperrt die
// Verwaltung vollständig; ein leeres secret wird zufällig erzeugt, womit
// Tokens einen Neustart nicht überleben.
func New(passwordHash, secret string, ttl time.Duration, opts ...Option) (*Authenticator, error) {
	a := &Authenticator{
		hash:   []byte(strings.TrimSpace(passwordHash)),
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
	if len(a.hash) > 0 {
		if _, err := bcrypt.Cost(a.hash); err != nil {
			return nil, fmt.Errorf("ungültiger passwort-hash: %w", err)
		}
	}
	if len(a.secret) == 0 {
		a.secret = make([]byte, 32)
		if _, err := rand.Read(a.secret); err != nil {
			return nil, fmt.Errorf("token-schlüssel erzeugen: %w", err)
		}
	}
	if a.ttl <= 0 {
		a.ttl = time.Hour
	}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// HashPassword erzeugt einen bcrypt-Hash für die Konfiguration.
func HashPassword(password string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("passwort hashen: %w", err)
	}
	return string(h), nil
}

// Enabled meldet, ob ein Passwort konfiguriert ist.
func (a *Authenticator) Enabled() bool {
	return len(a.hash) > 0
}

// CheckPassword vergleicht password mit dem konfigurierten Hash.
func (a *Authenticator) CheckPassword(password string) error {
	if !a.Enabled() || password == "" {
		return domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword(a.hash, []byte(password)); err != nil {
		return fmt.Errorf("falsches passwort: %w", domain.ErrUnauthorized)
	}
	return nil
}

// Login prüft password und stellt ein Token samt Ablaufzeit aus.
func (a *Authenticator) Login(password string) (string, time.Time, error) {
	if err := a.CheckPassword(password); err != nil {
		return "", time.Time{}, err
	}
	now := a.now()
	expires := now.Add(a.ttl)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expires),
	})
	signed, err := token.SignedString(a.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("token signieren: %w", err)
	}
	return signed, expires, nil
}

// VerifyToken prüft Signatur, Aussteller und Ablauf eines Tokens.
func (a *Authenticator) VerifyToken(token string) error {
	if !a.Enabled() || token == "" {
		return domain.ErrUnauthorized
	}
	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return a.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithSubject(subject),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(a.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return fmt.Errorf("token abgelaufen: %w", domain.ErrUnauthorized)
		}
		return fmt.Errorf("ungültiges token: %w", domain.ErrUnauthorized)
	}
	return nil
}

// Authorize akzeptiert ein gültiges Token oder das Passwort.
func (a *Authenticator) Authorize(token, password string) error {
	if token != "" {
		return a.VerifyToken(token)
	}
	return a.CheckPassword(password)
}
