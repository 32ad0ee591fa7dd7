package repository

import (
	"context"

	"github.com/jhoicas/wms-api/internal/domain/entity"
)

// PackageRepository define el puerto de persistencia para paquetes.
type PackageRepository interface {
	Create(ctx context.Context, pkg *entity.Package) error
	GetByID(ctx context.Context, id string) (*entity.Package, error)
	FindByName(ctx context.Context, companyID, name string) (*entity.Package, error)
	Rename(ctx context.Context, id, name string) error
	// NextName devuelve el siguiente nombre de la secuencia de paquetes (PACK0000001).
	NextName(ctx context.Context) (string, error)
}
