package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"github.com/jhoicas/wms-api/internal/domain/entity"
)

func latin1(t *testing.T, s string) []byte {
	t.Helper()
	out, err := charmap.ISO8859_1.NewEncoder().String(s)
	require.NoError(t, err)
	return []byte(out)
}

func TestParseLocations_Latin1YJerarquia(t *testing.T) {
	raw := latin1(t, `<?xml version="1.0" encoding="ISO-8859-1"?>
<ubicaciones empresa="C1">
  <ubicacion codigo="EST-1" nombre="Estantería 1" padre="STOCK" uso="interna"/>
  <ubicacion codigo="WH" nombre="WH" uso="vista"/>
  <ubicacion codigo="STOCK" nombre="Stock" padre="WH" uso="interna"/>
  <ubicacion codigo="CLI" nombre="Clientes" uso="cliente"/>
</ubicaciones>`)

	locs, err := parseLocations(bytes.NewReader(raw))
	require.NoError(t, err)
	require.Len(t, locs, 4)

	// padres antes que hijos
	assert.Equal(t, "WH", locs[0].Name)
	assert.Equal(t, "Stock", locs[1].Name)
	assert.Equal(t, "WH/Stock/Estantería 1", locs[2].FullName)
	assert.Equal(t, entity.LocationUsageInternal, locs[2].Usage)
	require.NotNil(t, locs[2].ParentID)
	assert.Equal(t, locs[1].ID, *locs[2].ParentID)
	assert.Nil(t, locs[3].ParentID)
	assert.Equal(t, entity.LocationUsageCustomer, locs[3].Usage)

	again, err := parseLocations(bytes.NewReader(raw))
	require.NoError(t, err)
	assert.Equal(t, locs[2].ID, again[2].ID, "ids estables entre ejecuciones")
}

func TestParseLocations_Errores(t *testing.T) {
	cases := map[string]string{
		"sin empresa":     `<ubicaciones><ubicacion codigo="A" nombre="A" uso="interna"/></ubicaciones>`,
		"padre faltante":  `<ubicaciones empresa="C1"><ubicacion codigo="A" nombre="A" padre="X" uso="interna"/></ubicaciones>`,
		"uso desconocido": `<ubicaciones empresa="C1"><ubicacion codigo="A" nombre="A" uso="bodega"/></ubicaciones>`,
		"repetido":        `<ubicaciones empresa="C1"><ubicacion codigo="A" nombre="A" uso="interna"/><ubicacion codigo="A" nombre="B" uso="interna"/></ubicaciones>`,
		"ciclo":           `<ubicaciones empresa="C1"><ubicacion codigo="A" nombre="A" padre="B" uso="interna"/><ubicacion codigo="B" nombre="B" padre="A" uso="interna"/></ubicaciones>`,
	}
	for name, xml := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := parseLocations(strings.NewReader(xml))
			assert.Error(t, err)
		})
	}
}

func TestWriteSQL_EscapaComillas(t *testing.T) {
	parent := "P"
	var b strings.Builder
	require.NoError(t, writeSQL(&b, []*entity.Location{
		{ID: "P", CompanyID: "C1", Name: "WH", FullName: "WH", Usage: entity.LocationUsageView},
		{ID: "L", CompanyID: "C1", ParentID: &parent, Name: "D'Luca", FullName: "WH/D'Luca", Usage: entity.LocationUsageInternal},
	}))

	out := b.String()
	assert.Contains(t, out, "VALUES ('P', 'C1', NULL, 'WH', 'WH', 'view')")
	assert.Contains(t, out, "VALUES ('L', 'C1', 'P', 'D''Luca', 'WH/D''Luca', 'internal')")
	assert.Equal(t, 2, strings.Count(out, "ON CONFLICT (id)"))
}
