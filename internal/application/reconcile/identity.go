package reconcile

import (
	"context"

	"github.com/jhoicas/wms-api/internal/domain/entity"
	"github.com/jhoicas/wms-api/internal/domain/repository"
)

// IdentityResolver decide a qué línea realizada existente corresponde una línea reportada.
type IdentityResolver struct{}

// Resolve busca la primera línea no consumida de la transferencia con el mismo producto,
// la misma cantidad y, si hay lote, el mismo lote. nil significa "crear línea nueva".
// Las líneas marcadas con SkipLineMatching o sin producto nunca se emparejan.
func (IdentityResolver) Resolve(ctx context.Context, lines repository.MoveLineRepository, transferID string, rl ReportLine, lot *ResolvedLot, consumed map[string]struct{}) (*entity.MoveLine, error) {
	if rl.SkipLineMatching || rl.ProductID == "" {
		return nil, nil
	}
	quantity := rl.QuantityDone
	filter := entity.MoveLineFilter{
		TransferID: transferID,
		ProductID:  rl.ProductID,
		Quantity:   &quantity,
		ExcludeIDs: make([]string, 0, len(consumed)),
		Limit:      1,
	}
	for id := range consumed {
		filter.ExcludeIDs = append(filter.ExcludeIDs, id)
	}
	if lot != nil {
		lot.filter(&filter)
	}
	found, err := lines.Find(ctx, filter)
	if err != nil || len(found) == 0 {
		return nil, err
	}
	return found[0], nil
}
