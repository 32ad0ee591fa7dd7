// seed_locations genera el script SQL que carga las ubicaciones del almacén a partir del
// XML exportado por el WMS anterior (codificado en ISO-8859-1).
//
// Uso: go run ./cmd/seed_locations [ruta/ubicaciones.xml]
// Por defecto busca ubicaciones.xml en el directorio actual.
// Escribe: internal/infrastructure/postgres/migrations/002_seed_locations.sql
package main

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/wms-api/internal/domain/entity"
	"github.com/jhoicas/wms-api/internal/domain/inventory"
)

type export struct {
	Company     string      `xml:"empresa,attr"`
	Ubicaciones []ubicacion `xml:"ubicacion"`
}

type ubicacion struct {
	Codigo string `xml:"codigo,attr"`
	Nombre string `xml:"nombre,attr"`
	Padre  string `xml:"padre,attr"`
	Uso    string `xml:"uso,attr"`
}

var usages = map[string]string{
	"interna":    entity.LocationUsageInternal,
	"transito":   entity.LocationUsageTransit,
	"tránsito":   entity.LocationUsageTransit,
	"proveedor":  entity.LocationUsageSupplier,
	"cliente":    entity.LocationUsageCustomer,
	"inventario": entity.LocationUsageInventory,
	"vista":      entity.LocationUsageView,
}

func main() {
	xmlPath := "ubicaciones.xml"
	if len(os.Args) > 1 {
		xmlPath = os.Args[1]
	}
	f, err := os.Open(xmlPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir XML: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	locations, err := parseLocations(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer ubicaciones: %v\n", err)
		os.Exit(1)
	}

	outPath := filepath.Join(findModuleRoot(), "internal", "infrastructure", "postgres", "migrations", "002_seed_locations.sql")
	out, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	if err := writeSQL(out, locations); err != nil {
		fmt.Fprintf(os.Stderr, "Escribir SQL: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Generado %s: %d ubicaciones\n", outPath, len(locations))
}

// parseLocations decodifica el XML y devuelve las ubicaciones con padres antes que hijos.
// Los ids se derivan del código (UUID v5) para que volver a generar el script no duplique filas.
func parseLocations(r io.Reader) ([]*entity.Location, error) {
	var e export
	dec := xml.NewDecoder(r)
	dec.CharsetReader = func(charset string, input io.Reader) (io.Reader, error) {
		if strings.EqualFold(charset, "ISO-8859-1") || strings.EqualFold(charset, "ISO8859-1") {
			return transform.NewReader(input, charmap.ISO8859_1.NewDecoder()), nil
		}
		return input, nil
	}
	if err := dec.Decode(&e); err != nil {
		return nil, fmt.Errorf("decodificar XML: %w", err)
	}
	company := strings.TrimSpace(e.Company)
	if company == "" {
		return nil, fmt.Errorf("el atributo empresa es obligatorio")
	}

	byCode := make(map[string]ubicacion, len(e.Ubicaciones))
	var codes []string
	for _, u := range e.Ubicaciones {
		u.Codigo = inventory.NormalizeToken(u.Codigo)
		u.Padre = inventory.NormalizeToken(u.Padre)
		u.Nombre = strings.TrimSpace(u.Nombre)
		if u.Codigo == "" || u.Nombre == "" {
			continue
		}
		if _, dup := byCode[u.Codigo]; dup {
			return nil, fmt.Errorf("código repetido: %s", u.Codigo)
		}
		byCode[u.Codigo] = u
		codes = append(codes, u.Codigo)
	}

	built := make(map[string]*entity.Location, len(codes))
	visiting := make(map[string]bool)
	var out []*entity.Location
	var build func(code string) (*entity.Location, error)
	build = func(code string) (*entity.Location, error) {
		if loc, ok := built[code]; ok {
			return loc, nil
		}
		if visiting[code] {
			return nil, fmt.Errorf("ciclo de ubicaciones en %s", code)
		}
		u, ok := byCode[code]
		if !ok {
			return nil, fmt.Errorf("ubicación padre inexistente: %s", code)
		}
		usage, ok := usages[strings.ToLower(strings.TrimSpace(u.Uso))]
		if !ok {
			return nil, fmt.Errorf("uso desconocido %q en %s", u.Uso, code)
		}
		visiting[code] = true
		loc := &entity.Location{
			ID:        uuid.NewSHA1(uuid.NameSpaceOID, []byte(company+"/"+code)).String(),
			CompanyID: company,
			Name:      u.Nombre,
			FullName:  u.Nombre,
			Usage:     usage,
		}
		if u.Padre != "" {
			parent, err := build(u.Padre)
			if err != nil {
				return nil, err
			}
			loc.ParentID = &parent.ID
			loc.FullName = parent.FullName + "/" + u.Nombre
		}
		delete(visiting, code)
		built[code] = loc
		out = append(out, loc)
		return loc, nil
	}
	for _, code := range codes {
		if _, err := build(code); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func writeSQL(w io.Writer, locations []*entity.Location) error {
	var b strings.Builder
	b.WriteString("-- Ubicaciones del almacén\n")
	b.WriteString("-- Generado por cmd/seed_locations\n\n")
	for _, l := range locations {
		parent := "NULL"
		if l.ParentID != nil {
			parent = "'" + *l.ParentID + "'"
		}
		fmt.Fprintf(&b, "INSERT INTO locations (id, company_id, parent_id, name, full_name, usage)\n")
		fmt.Fprintf(&b, "VALUES ('%s', '%s', %s, '%s', '%s', '%s')\n",
			l.ID, escapeSQL(l.CompanyID), parent, escapeSQL(l.Name), escapeSQL(l.FullName), l.Usage)
		b.WriteString("ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, full_name = EXCLUDED.full_name, usage = EXCLUDED.usage;\n")
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

func findModuleRoot() string {
	dir, _ := os.Getwd()
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return dir
		}
		dir = parent
	}
}
