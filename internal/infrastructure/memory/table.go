package memory

import (
	"maps"
	"slices"

	"github.com/jhoicas/wms-api/internal/domain"
)

// table guarda filas por id conservando el orden de inserción, que es el orden por
// defecto de las consultas (equivalente al ORDER BY created_at de PostgreSQL).
type table[T any] struct {
	rows  map[string]T
	order []string
}

func newTable[T any]() *table[T] {
	return &table[T]{rows: map[string]T{}}
}

func (t *table[T]) clone() *table[T] {
	return &table[T]{rows: maps.Clone(t.rows), order: slices.Clone(t.order)}
}

// get devuelve una copia de la fila o nil.
func (t *table[T]) get(id string) *T {
	v, ok := t.rows[id]
	if !ok {
		return nil
	}
	return &v
}

func (t *table[T]) insert(id string, v T) error {
	if _, ok := t.rows[id]; ok {
		return domain.ErrDuplicate
	}
	t.rows[id] = v
	t.order = append(t.order, id)
	return nil
}

func (t *table[T]) put(id string, v T) error {
	if _, ok := t.rows[id]; !ok {
		return domain.ErrNotFound
	}
	t.rows[id] = v
	return nil
}

// update aplica fn sobre la fila id.
func (t *table[T]) update(id string, fn func(*T)) error {
	v, ok := t.rows[id]
	if !ok {
		return domain.ErrNotFound
	}
	fn(&v)
	t.rows[id] = v
	return nil
}

// find devuelve copias de las filas que cumplen match, en orden de inserción.
// limit <= 0 significa sin límite.
func (t *table[T]) find(match func(*T) bool, limit int) []*T {
	out := make([]*T, 0)
	for _, id := range t.order {
		v := t.rows[id]
		if match != nil && !match(&v) {
			continue
		}
		out = append(out, &v)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}

func (t *table[T]) first(match func(*T) bool) *T {
	rows := t.find(match, 1)
	if len(rows) == 0 {
		return nil
	}
	return rows[0]
}

func sameRef(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
