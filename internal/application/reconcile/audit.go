package reconcile

import (
	"context"
	"strings"

	"github.com/jhoicas/wms-api/internal/domain/entity"
	"github.com/jhoicas/wms-api/internal/domain/repository"
)

// formatter convierte el valor crudo de un campo en texto legible.
type formatter func(ctx context.Context, store repository.Store, raw string) (string, error)

// trackedField describe un campo de la línea realizada que se audita.
type trackedField struct {
	label  string
	raw    func(l *entity.MoveLine) string
	format formatter
}

// Campos auditados de la línea realizada. Conjunto cerrado: agregar un campo aquí es la
// única forma de auditarlo.
var moveLineFields = []trackedField{
	{label: "Producto", raw: func(l *entity.MoveLine) string { return l.ProductID }, format: productName},
	{label: "Cantidad", raw: func(l *entity.MoveLine) string { return l.Quantity.String() }, format: scalar},
	{label: "Lote/Serie", raw: func(l *entity.MoveLine) string { return deref(l.LotID) }, format: lotName},
	{label: "Nombre de lote", raw: func(l *entity.MoveLine) string { return l.LotName }, format: scalar},
	{label: "Desde", raw: func(l *entity.MoveLine) string { return l.LocationID }, format: locationName},
	{label: "Hacia", raw: func(l *entity.MoveLine) string { return l.LocationDestID }, format: locationName},
	{label: "Paquete destino", raw: func(l *entity.MoveLine) string { return deref(l.ResultPackageID) }, format: packageName},
}

const emptyValue = "(vacío)"

func scalar(_ context.Context, _ repository.Store, raw string) (string, error) {
	return raw, nil
}

func productName(ctx context.Context, store repository.Store, id string) (string, error) {
	p, err := store.Products().GetByID(ctx, id)
	if err != nil || p == nil {
		return id, err
	}
	return p.DisplayName(), nil
}

func lotName(ctx context.Context, store repository.Store, id string) (string, error) {
	l, err := store.Lots().GetByID(ctx, id)
	if err != nil || l == nil {
		return id, err
	}
	return l.Name, nil
}

func locationName(ctx context.Context, store repository.Store, id string) (string, error) {
	l, err := store.Locations().GetByID(ctx, id)
	if err != nil || l == nil {
		return id, err
	}
	if l.FullName != "" {
		return l.FullName, nil
	}
	return l.Name, nil
}

func packageName(ctx context.Context, store repository.Store, id string) (string, error) {
	p, err := store.Packages().GetByID(ctx, id)
	if err != nil || p == nil {
		return id, err
	}
	return p.Name, nil
}

func display(ctx context.Context, store repository.Store, f trackedField, raw string) (string, error) {
	if raw == "" {
		return emptyValue, nil
	}
	return f.format(ctx, store, raw)
}

// diffLine describe los campos que cambian de before a after ("Campo: antes → después").
// Sin cambios devuelve una lista vacía.
func diffLine(ctx context.Context, store repository.Store, before, after *entity.MoveLine) ([]string, error) {
	var changes []string
	for _, f := range moveLineFields {
		oldRaw, newRaw := f.raw(before), f.raw(after)
		if oldRaw == newRaw {
			continue
		}
		oldText, err := display(ctx, store, f, oldRaw)
		if err != nil {
			return nil, err
		}
		newText, err := display(ctx, store, f, newRaw)
		if err != nil {
			return nil, err
		}
		changes = append(changes, f.label+": "+oldText+" → "+newText)
	}
	return changes, nil
}

// describeLine lista los campos con valor de una línea recién creada.
func describeLine(ctx context.Context, store repository.Store, line *entity.MoveLine) ([]string, error) {
	var fields []string
	for _, f := range moveLineFields {
		raw := f.raw(line)
		if raw == "" {
			continue
		}
		text, err := f.format(ctx, store, raw)
		if err != nil {
			return nil, err
		}
		fields = append(fields, f.label+": "+text)
	}
	return fields, nil
}

func joinChanges(changes []string) string {
	return strings.Join(changes, "\n")
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
