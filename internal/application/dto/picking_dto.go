package dto

import (
	"time"

	"github.com/jhoicas/wms-api/internal/application/reconcile"
	"github.com/jhoicas/wms-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// MoveLineRequest es una línea reportada por la app móvil.
// lot_id es el nombre de lote/serie escaneado; stock_lot_id un lote existente.
type MoveLineRequest struct {
	ID                string          `json:"id,omitempty"`
	PickingID         string          `json:"picking_id,omitempty"`
	ProductID         string          `json:"product_id"`
	QuantityDone      decimal.Decimal `json:"quantity_done"`
	LotID             string          `json:"lot_id,omitempty"`
	StockLotID        string          `json:"stock_lot_id,omitempty"`
	LocationID        string          `json:"location_id,omitempty"`
	LocationDestID    string          `json:"location_dest_id,omitempty"`
	ProductPackage    string          `json:"product_package,omitempty"`
	ProductPackagesID string          `json:"product_packages_id,omitempty"`
	SkipLineMatching  bool            `json:"skip_line_matching,omitempty"`
}

// PickingValidateRequest body para POST /api/pickings/validate y /api/move-lines/sync.
type PickingValidateRequest struct {
	PickingID       string            `json:"picking_id"`
	MoveLineIDs     []MoveLineRequest `json:"move_line_ids"`
	CreateBackorder *bool             `json:"create_backorder,omitempty"`
}

// PickingValidateBatchRequest body para POST /api/pickings/validate/batch y /api/move-lines/sync.
type PickingValidateBatchRequest struct {
	Data []PickingValidateRequest `json:"data"`
}

// BatchValidateRequest body para POST /api/batches/validate.
type BatchValidateRequest struct {
	BatchID         string            `json:"batch_id"`
	MoveLineIDs     []MoveLineRequest `json:"move_line_ids"`
	CreateBackorder *bool             `json:"create_backorder,omitempty"`
}

// BatchValidateSyncRequest body para POST /api/batches/validate/sync.
type BatchValidateSyncRequest struct {
	Data []BatchValidateRequest `json:"data"`
}

// StockQuantRequest es un conteo físico.
// package acepta el id de un paquete existente o una etiqueta.
type StockQuantRequest struct {
	LocationID        string          `json:"location_id"`
	ProductID         string          `json:"product_id"`
	Lot               string          `json:"lot,omitempty"`
	Package           string          `json:"package,omitempty"`
	OwnerID           string          `json:"owner_id,omitempty"`
	InventoryQuantity decimal.Decimal `json:"inventory_quantity"`
	InventoryDate     *time.Time      `json:"inventory_date,omitempty"`
}

// StockQuantsRequest body para POST /api/stock-quants.
type StockQuantsRequest struct {
	StockQuant []StockQuantRequest `json:"stock_quant"`
}

// PackLineRequest línea a empacar: id de línea existente o producto a copiar.
type PackLineRequest struct {
	ID           string          `json:"id,omitempty"`
	ProductID    string          `json:"product_id,omitempty"`
	QuantityDone decimal.Decimal `json:"quantity_done"`
}

// PutInPackRequest body para POST /api/pickings/put-in-pack.
type PutInPackRequest struct {
	PickingID   string            `json:"picking_id"`
	MoveLineIDs []PackLineRequest `json:"move_line_ids"`
}

// ResultResponse resultado de una operación de reconciliación.
type ResultResponse struct {
	Status     bool   `json:"status"`
	Code       string `json:"code"`
	Message    string `json:"message"`
	PickingID  string `json:"picking_id,omitempty"`
	BatchID    string `json:"batch_id,omitempty"`
	ProductID  string `json:"product_id,omitempty"`
	LocationID string `json:"location_id,omitempty"`
	Applied    *int   `json:"applied,omitempty"`
}

// ResultListResponse resultados por elemento, en el orden de la solicitud.
type ResultListResponse struct {
	Count  int              `json:"count"`
	Status bool             `json:"status"`
	Data   []ResultResponse `json:"data"`
}

// PackageResponse paquete creado por put-in-pack.
type PackageResponse struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Weight   decimal.Decimal `json:"weight"`
	PackDate time.Time       `json:"pack_date"`
}

// PutInPackResponse resultado de put-in-pack.
type PutInPackResponse struct {
	ResultResponse
	Package *PackageResponse `json:"package,omitempty"`
}

// ChangeResponse entrada del historial de cambios desde la app.
type ChangeResponse struct {
	ID         string    `json:"id"`
	MoveLineID string    `json:"move_line_id"`
	Created    bool      `json:"created"`
	Changes    string    `json:"changes"`
	CreatedBy  string    `json:"created_by,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// ChangesResponse historial de una transferencia.
type ChangesResponse struct {
	Count   int              `json:"count"`
	Changes []ChangeResponse `json:"changes"`
}

func (l MoveLineRequest) toReportLine() reconcile.ReportLine {
	return reconcile.ReportLine{
		ID:               l.ID,
		TransferID:       l.PickingID,
		ProductID:        l.ProductID,
		QuantityDone:     l.QuantityDone,
		LotToken:         l.LotID,
		LotID:            l.StockLotID,
		LocationID:       l.LocationID,
		LocationDestID:   l.LocationDestID,
		PackageLabel:     l.ProductPackage,
		PackageID:        l.ProductPackagesID,
		SkipLineMatching: l.SkipLineMatching,
	}
}

func reportLines(in []MoveLineRequest) []reconcile.ReportLine {
	out := make([]reconcile.ReportLine, 0, len(in))
	for _, l := range in {
		out = append(out, l.toReportLine())
	}
	return out
}

// ToTransferRequest traduce el body al comando del servicio.
func (r PickingValidateRequest) ToTransferRequest() reconcile.TransferRequest {
	return reconcile.TransferRequest{
		TransferID:      r.PickingID,
		Lines:           reportLines(r.MoveLineIDs),
		CreateBackorder: r.CreateBackorder,
	}
}

// ToTransferRequests traduce cada elemento en orden.
func (r PickingValidateBatchRequest) ToTransferRequests() []reconcile.TransferRequest {
	out := make([]reconcile.TransferRequest, 0, len(r.Data))
	for _, item := range r.Data {
		out = append(out, item.ToTransferRequest())
	}
	return out
}

// ToBatchRequest traduce el body al comando del servicio.
func (r BatchValidateRequest) ToBatchRequest() reconcile.BatchRequest {
	return reconcile.BatchRequest{
		BatchID:         r.BatchID,
		Lines:           reportLines(r.MoveLineIDs),
		CreateBackorder: r.CreateBackorder,
	}
}

// ToBatchRequests traduce cada elemento en orden.
func (r BatchValidateSyncRequest) ToBatchRequests() []reconcile.BatchRequest {
	out := make([]reconcile.BatchRequest, 0, len(r.Data))
	for _, item := range r.Data {
		out = append(out, item.ToBatchRequest())
	}
	return out
}

// ToStockCounts traduce los conteos en orden.
func (r StockQuantsRequest) ToStockCounts() []reconcile.StockCount {
	out := make([]reconcile.StockCount, 0, len(r.StockQuant))
	for _, q := range r.StockQuant {
		out = append(out, reconcile.StockCount{
			LocationID: q.LocationID,
			ProductID:  q.ProductID,
			LotToken:   q.Lot,
			Package:    q.Package,
			OwnerID:    q.OwnerID,
			Counted:    q.InventoryQuantity,
			CountDate:  q.InventoryDate,
		})
	}
	return out
}

// ToPackRequest traduce el body al comando del servicio.
func (r PutInPackRequest) ToPackRequest() reconcile.PackRequest {
	lines := make([]reconcile.PackLine, 0, len(r.MoveLineIDs))
	for _, l := range r.MoveLineIDs {
		lines = append(lines, reconcile.PackLine{ID: l.ID, ProductID: l.ProductID, QuantityDone: l.QuantityDone})
	}
	return reconcile.PackRequest{TransferID: r.PickingID, Lines: lines}
}

// FromResult arma la respuesta de un resultado.
func FromResult(r reconcile.Result) ResultResponse {
	return ResultResponse{
		Status:     r.OK,
		Code:       r.Code,
		Message:    r.Message,
		PickingID:  r.TransferID,
		BatchID:    r.BatchID,
		ProductID:  r.ProductID,
		LocationID: r.LocationID,
	}
}

// FromStockCountResult incluye la cantidad de conteos aplicados.
func FromStockCountResult(r reconcile.Result) ResultResponse {
	out := FromResult(r)
	applied := r.Applied
	out.Applied = &applied
	return out
}

// FromResults arma la lista de resultados.
func FromResults(rs []reconcile.Result) ResultListResponse {
	data := make([]ResultResponse, 0, len(rs))
	for _, r := range rs {
		data = append(data, FromResult(r))
	}
	return ResultListResponse{Count: len(data), Status: true, Data: data}
}

// FromPackageResult arma la respuesta de put-in-pack.
func FromPackageResult(r reconcile.PackageResult) PutInPackResponse {
	out := PutInPackResponse{ResultResponse: FromResult(r.Result)}
	if r.Package != nil {
		out.Package = &PackageResponse{
			ID:       r.Package.ID,
			Name:     r.Package.Name,
			Weight:   r.Package.Weight,
			PackDate: r.Package.PackDate,
		}
	}
	return out
}

// FromAuditEntries arma el historial.
func FromAuditEntries(entries []*entity.AuditEntry) ChangesResponse {
	out := ChangesResponse{Changes: make([]ChangeResponse, 0, len(entries))}
	for _, e := range entries {
		out.Changes = append(out.Changes, ChangeResponse{
			ID:         e.ID,
			MoveLineID: e.MoveLineID,
			Created:    e.Created,
			Changes:    e.Changes,
			CreatedBy:  e.CreatedBy,
			CreatedAt:  e.CreatedAt,
		})
	}
	out.Count = len(out.Changes)
	return out
}
