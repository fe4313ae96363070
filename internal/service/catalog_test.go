package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"overol-konfigurator-backend/internal/domain"
)

func TestZones_Kopie(t *testing.T) {
	svc := neuerTestCatalog(newMockRepo())
	zones := svc.Zones()
	require.Len(t, zones, 3)

	zones[0].ID = "X"
	assert.Equal(t, "A", svc.Zones()[0].ID)
}

func TestZone_Unbekannt(t *testing.T) {
	svc := neuerTestCatalog(newMockRepo())
	_, err := svc.Zone("Z")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	z, err := svc.Zone("C")
	require.NoError(t, err)
	assert.Equal(t, "tela2", z.FabricType)
}

func TestColorsByFabricType(t *testing.T) {
	svc := neuerTestCatalog(newMockRepo())
	colors, err := svc.ColorsByFabricType(context.Background(), " tela1 ")
	require.NoError(t, err)
	assert.Len(t, colors, 2)

	colors, err = svc.ColorsByFabricType(context.Background(), "tela9")
	require.NoError(t, err)
	assert.Empty(t, colors)
	assert.NotNil(t, colors)
}

func TestColor_NichtGefunden(t *testing.T) {
	svc := neuerTestCatalog(newMockRepo())
	_, err := svc.Color(context.Background(), "lila")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
