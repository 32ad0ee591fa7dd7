package memory

import (
	"context"
	"fmt"

	"github.com/jhoicas/wms-api/internal/domain"
	"github.com/jhoicas/wms-api/internal/domain/entity"
	"github.com/jhoicas/wms-api/internal/domain/repository"
)

type lotRepo struct{ t *tables }

var _ repository.LotRepository = lotRepo{}

func (r lotRepo) Create(_ context.Context, lot *entity.Lot) error {
	dup := r.t.lots.first(func(l *entity.Lot) bool {
		return l.ProductID == lot.ProductID && l.Name == lot.Name
	})
	if dup != nil {
		return domain.ErrDuplicate
	}
	return r.t.lots.insert(lot.ID, *lot)
}

func (r lotRepo) GetByID(_ context.Context, id string) (*entity.Lot, error) {
	return r.t.lots.get(id), nil
}

func (r lotRepo) FindByName(_ context.Context, productID, name string) (*entity.Lot, error) {
	return r.t.lots.first(func(l *entity.Lot) bool {
		return l.ProductID == productID && l.Name == name
	}), nil
}

type packageRepo struct{ t *tables }

var _ repository.PackageRepository = packageRepo{}

func (r packageRepo) Create(_ context.Context, p *entity.Package) error {
	return r.t.packages.insert(p.ID, *p)
}

func (r packageRepo) GetByID(_ context.Context, id string) (*entity.Package, error) {
	return r.t.packages.get(id), nil
}

func (r packageRepo) FindByName(_ context.Context, companyID, name string) (*entity.Package, error) {
	return r.t.packages.first(func(p *entity.Package) bool {
		return p.CompanyID == companyID && p.Name == name
	}), nil
}

func (r packageRepo) Rename(_ context.Context, id, name string) error {
	return r.t.packages.update(id, func(p *entity.Package) { p.Name = name })
}

func (r packageRepo) NextName(_ context.Context) (string, error) {
	r.t.packageSeq++
	return fmt.Sprintf("PACK%07d", r.t.packageSeq), nil
}

type quantRepo struct{ t *tables }

var _ repository.QuantRepository = quantRepo{}

func (r quantRepo) Find(_ context.Context, key entity.QuantKey) (*entity.Quant, error) {
	return r.t.quants.first(func(q *entity.Quant) bool {
		return q.CompanyID == key.CompanyID &&
			q.LocationID == key.LocationID &&
			q.ProductID == key.ProductID &&
			sameRef(q.LotID, key.LotID) &&
			sameRef(q.PackageID, key.PackageID) &&
			sameRef(q.OwnerID, key.OwnerID)
	}), nil
}

func (r quantRepo) GetByID(_ context.Context, id string) (*entity.Quant, error) {
	return r.t.quants.get(id), nil
}

func (r quantRepo) Create(_ context.Context, q *entity.Quant) error {
	return r.t.quants.insert(q.ID, *q)
}

func (r quantRepo) Update(_ context.Context, q *entity.Quant) error {
	return r.t.quants.put(q.ID, *q)
}

type productRepo struct{ t *tables }

var _ repository.ProductRepository = productRepo{}

func (r productRepo) Create(_ context.Context, p *entity.Product) error {
	return r.t.products.insert(p.ID, *p)
}

func (r productRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	return r.t.products.get(id), nil
}

type locationRepo struct{ t *tables }

var _ repository.LocationRepository = locationRepo{}

func (r locationRepo) Create(_ context.Context, l *entity.Location) error {
	return r.t.locations.insert(l.ID, *l)
}

func (r locationRepo) GetByID(_ context.Context, id string) (*entity.Location, error) {
	return r.t.locations.get(id), nil
}

type movementRepo struct{ t *tables }

var _ repository.InventoryMovementRepository = movementRepo{}

func (r movementRepo) Create(_ context.Context, m *entity.InventoryMovement) error {
	return r.t.movements.insert(m.ID, *m)
}

func (r movementRepo) ListByTransaction(_ context.Context, transactionID string) ([]*entity.InventoryMovement, error) {
	return r.t.movements.find(func(m *entity.InventoryMovement) bool {
		return m.TransactionID == transactionID
	}, 0), nil
}
