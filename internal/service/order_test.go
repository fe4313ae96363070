package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"overol-konfigurator-backend/internal/domain"
)

func gueltigeAuswahl() []domain.Selection {
	return []domain.Selection{
		{AreaID: "A", FabricType: "tela1", ColorID: "rojo", ColorHex: "#FF0000"},
		{AreaID: "C", FabricType: "tela2", ColorID: "azul", ColorHex: "#0000ff"},
	}
}

func TestCreateOrder_Gueltig(t *testing.T) {
	repo := newMockRepo()
	r := &mockRenderer{}
	svc := neuerTestOrderService(repo, r)

	receipt, err := svc.Create(context.Background(), gueltigerKunde(), gueltigeAuswahl())
	require.NoError(t, err)
	assert.True(t, receipt.PDFReady)
	require.NotEmpty(t, receipt.OrderID)
	assert.Equal(t, 1, r.calls)

	order, err := svc.Get(context.Background(), receipt.OrderID)
	require.NoError(t, err)
	assert.Equal(t, "Ana García", order.CustomerInfo.Name)
	assert.Len(t, order.Selections, 2)

	doc, err := svc.PDF(context.Background(), receipt.OrderID)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-"+receipt.OrderID, string(doc))
}

func TestCreateOrder_DatumStandard(t *testing.T) {
	repo := newMockRepo()
	svc := neuerTestOrderService(repo, &mockRenderer{})

	kunde := gueltigerKunde()
	kunde.Date = ""
	receipt, err := svc.Create(context.Background(), kunde, gueltigeAuswahl())
	require.NoError(t, err)

	order, err := svc.Get(context.Background(), receipt.OrderID)
	require.NoError(t, err)
	assert.Equal(t, "2026-10-16", order.CustomerInfo.Date)
}

func TestCreateOrder_UngueltigeKundendaten(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*domain.CustomerInfo)
	}{
		{"name fehlt", func(c *domain.CustomerInfo) { c.Name = "  " }},
		{"telefon fehlt", func(c *domain.CustomerInfo) { c.Phone = "" }},
		{"email fehlt", func(c *domain.CustomerInfo) { c.Email = "" }},
		{"email ungültig", func(c *domain.CustomerInfo) { c.Email = "ana-at-example" }},
		{"datum ungültig", func(c *domain.CustomerInfo) { c.Date = "16.10.2026" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newMockRepo()
			r := &mockRenderer{}
			svc := neuerTestOrderService(repo, r)

			kunde := gueltigerKunde()
			tt.mutate(&kunde)
			_, err := svc.Create(context.Background(), kunde, gueltigeAuswahl())
			require.ErrorIs(t, err, domain.ErrInvalidInput)
			assert.Zero(t, r.calls)
			assert.Empty(t, repo.orders)
		})
	}
}

func TestCreateOrder_UngueltigeAuswahl(t *testing.T) {
	tests := []struct {
		name string
		sel  []domain.Selection
		want error
	}{
		{"leer", nil, domain.ErrEmptySelection},
		{"unbekannte zone", []domain.Selection{
			{AreaID: "Z", FabricType: "tela1", ColorID: "rojo", ColorHex: "#FF0000"},
		}, domain.ErrInvalidInput},
		{"zone doppelt", []domain.Selection{
			{AreaID: "A", FabricType: "tela1", ColorID: "rojo", ColorHex: "#FF0000"},
			{AreaID: "A", FabricType: "tela1", ColorID: "negro", ColorHex: "#000000"},
		}, domain.ErrInvalidInput},
		{"falscher stofftyp der zone", []domain.Selection{
			{AreaID: "C", FabricType: "tela1", ColorID: "rojo", ColorHex: "#FF0000"},
		}, domain.ErrInvalidInput},
		{"unbekannte farbe", []domain.Selection{
			{AreaID: "A", FabricType: "tela1", ColorID: "lila", ColorHex: "#AA00AA"},
		}, domain.ErrInvalidInput},
		{"farbe anderer stofftyp", []domain.Selection{
			{AreaID: "A", FabricType: "tela1", ColorID: "azul", ColorHex: "#0000FF"},
		}, domain.ErrInvalidInput},
		{"farbwert passt nicht", []domain.Selection{
			{AreaID: "A", FabricType: "tela1", ColorID: "rojo", ColorHex: "#FF0001"},
		}, domain.ErrInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newMockRepo()
			svc := neuerTestOrderService(repo, &mockRenderer{})
			_, err := svc.Create(context.Background(), gueltigerKunde(), tt.sel)
			require.ErrorIs(t, err, tt.want)
			assert.Empty(t, repo.orders)
		})
	}
}

func TestCreateOrder_RendererFehler(t *testing.T) {
	repo := newMockRepo()
	svc := neuerTestOrderService(repo, &mockRenderer{err: errRender})

	_, err := svc.Create(context.Background(), gueltigerKunde(), gueltigeAuswahl())
	require.ErrorIs(t, err, errRender)
	assert.Empty(t, repo.orders)
}

func TestGetOrder_LeereID(t *testing.T) {
	svc := neuerTestOrderService(newMockRepo(), &mockRenderer{})
	_, err := svc.Get(context.Background(), " ")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.PDF(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.PDF(context.Background(), "fehlt")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
