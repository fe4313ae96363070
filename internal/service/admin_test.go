package service

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"overol-konfigurator-backend/internal/domain"
)

func neuerTestAdmin(repo *mockRepo) *AdminService {
	return NewAdminService(mockAuth{}, repo, repo, testLogger())
}

func TestAdmin_Login(t *testing.T) {
	svc := neuerTestAdmin(newMockRepo())

	token, expires, err := svc.Login("geheim")
	require.NoError(t, err)
	assert.Equal(t, "gültig", token)
	assert.False(t, expires.IsZero())

	_, _, err = svc.Login("falsch")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestAdmin_OhneBerechtigung(t *testing.T) {
	repo := newMockRepo()
	svc := neuerTestAdmin(repo)

	_, err := svc.Execute(context.Background(), Credentials{Password: "falsch"}, ColorCommand{
		Action: ActionRemove, ColorID: "rojo",
	})
	require.ErrorIs(t, err, domain.ErrUnauthorized)
	assert.Len(t, repo.colors, 3)
}

func TestAdmin_Hinzufuegen(t *testing.T) {
	repo := newMockRepo()
	svc := neuerTestAdmin(repo)

	msg, err := svc.Execute(context.Background(), Credentials{Token: "gültig"}, ColorCommand{
		Action: ActionAdd,
		Color:  &domain.Color{ID: " verde ", Name: "Verde", HexValue: "#00ff00 ", FabricType: "tela2"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Color added successfully", msg)

	c, err := repo.GetColor(context.Background(), "verde")
	require.NoError(t, err)
	assert.Equal(t, "#00FF00", c.HexValue)
}

func TestAdmin_HinzufuegenUngueltig(t *testing.T) {
	tests := []struct {
		name  string
		color *domain.Color
		want  error
	}{
		{"keine farbdaten", nil, domain.ErrInvalidInput},
		{"id fehlt", &domain.Color{Name: "Verde", HexValue: "#00FF00", FabricType: "tela2"}, domain.ErrInvalidInput},
		{"farbwert ungültig", &domain.Color{ID: "verde", Name: "Verde", HexValue: "00FF00", FabricType: "tela2"}, domain.ErrInvalidInput},
		{"stofftyp unbekannt", &domain.Color{ID: "verde", Name: "Verde", HexValue: "#00FF00", FabricType: "tela9"}, domain.ErrInvalidInput},
		{"doppelt", &domain.Color{ID: "rojo", Name: "Rojo", HexValue: "#FF0000", FabricType: "tela1"}, domain.ErrConflict},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := neuerTestAdmin(newMockRepo())
			_, err := svc.Execute(context.Background(), Credentials{Password: "geheim"}, ColorCommand{
				Action: ActionAdd, Color: tt.color,
			})
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestAdmin_EntfernenUndAktualisieren(t *testing.T) {
	repo := newMockRepo()
	svc := neuerTestAdmin(repo)
	ctx := context.Background()
	cred := Credentials{Password: "geheim"}

	msg, err := svc.Execute(ctx, cred, ColorCommand{Action: ActionRemove, ColorID: "negro"})
	require.NoError(t, err)
	assert.Equal(t, "Color removed successfully", msg)

	_, err = svc.Execute(ctx, cred, ColorCommand{Action: ActionRemove, ColorID: "negro"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = svc.Execute(ctx, cred, ColorCommand{Action: ActionRemove})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	msg, err = svc.Execute(ctx, cred, ColorCommand{
		Action: ActionUpdate,
		Color:  &domain.Color{ID: "rojo", Name: "Rojo fuego", HexValue: "#ee1111", FabricType: "tela1"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Color updated successfully", msg)

	c, err := repo.GetColor(ctx, "rojo")
	require.NoError(t, err)
	assert.Equal(t, "Rojo fuego", c.Name)
	assert.Equal(t, "#EE1111", c.HexValue)

	_, err = svc.Execute(ctx, cred, ColorCommand{
		Action: ActionUpdate,
		Color:  &domain.Color{ID: "lila", Name: "Lila", HexValue: "#AA00AA", FabricType: "tela1"},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAdmin_UnbekannteAktion(t *testing.T) {
	svc := neuerTestAdmin(newMockRepo())
	_, err := svc.Execute(context.Background(), Credentials{Password: "geheim"}, ColorCommand{Action: "purge"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAdmin_Export(t *testing.T) {
	svc := neuerTestAdmin(newMockRepo())

	var buf bytes.Buffer
	require.NoError(t, svc.ExportColors(context.Background(), Credentials{Token: "gültig"}, &buf))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 4)
	assert.Contains(t, buf.String(), "#0000FF")

	buf.Reset()
	err := svc.ExportColors(context.Background(), Credentials{}, &buf)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	assert.Zero(t, buf.Len())
}
