package reconcile

import (
	"context"

	"github.com/jhoicas/wms-api/internal/application/picking"
	"github.com/jhoicas/wms-api/internal/domain/entity"
	"github.com/jhoicas/wms-api/internal/domain/inventory"
	"github.com/jhoicas/wms-api/internal/domain/repository"
)

// PackageGrouping acumula líneas por etiqueta de paquete durante una pasada.
// Solo agrega; cada pasada usa su propia instancia.
type PackageGrouping struct {
	labels []string
	lines  map[string][]string
}

// NewPackageGrouping crea un agrupador vacío.
func NewPackageGrouping() *PackageGrouping {
	return &PackageGrouping{lines: map[string][]string{}}
}

// Add agrega la línea a la etiqueta. Etiquetas vacías se ignoran.
func (g *PackageGrouping) Add(label, lineID string) {
	label = inventory.NormalizeToken(label)
	if label == "" || lineID == "" {
		return
	}
	if _, ok := g.lines[label]; !ok {
		g.labels = append(g.labels, label)
	}
	g.lines[label] = append(g.lines[label], lineID)
}

// Len devuelve la cantidad de etiquetas con líneas.
func (g *PackageGrouping) Len() int {
	return len(g.labels)
}

// Flush empaca cada grupo en un paquete nuevo y le pone la etiqueta como nombre.
// Devuelve los paquetes en el orden en que aparecieron las etiquetas.
func (g *PackageGrouping) Flush(ctx context.Context, store repository.Store, companyID string) ([]*entity.Package, error) {
	packages := make([]*entity.Package, 0, len(g.labels))
	for _, label := range g.labels {
		pkg, err := picking.PutInPack(ctx, store, companyID, g.lines[label])
		if err != nil {
			return nil, err
		}
		if err := store.Packages().Rename(ctx, pkg.ID, label); err != nil {
			return nil, err
		}
		pkg.Name = label
		packages = append(packages, pkg)
	}
	return packages, nil
}
