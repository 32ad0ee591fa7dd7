package reconcile

import (
	"errors"
	"fmt"

	"github.com/jhoicas/wms-api/internal/domain/entity"
)

// Códigos de resultado estables que recibe el cliente móvil.
const (
	CodeSuccess           = "success"
	CodePostDataError     = "post_data_error"
	CodeAlreadyValidated  = "already_validated"
	CodePickingNotExists  = "picking_not_exists"
	CodePickingCancelled  = "picking_cancelled"
	CodePickingNotInBatch = "picking_not_in_batch"
	CodeBatchCancelled    = "batch_cancelled"
	CodeMoveLinesEmpty    = "move_line_ids_empty"
	CodeBatchNotExists    = "batch_picking_not_exists"
	CodeUnknownError      = "unknown_error"
	CodeFail              = "fail"
	CodeBadRequest        = "bad_request"
	CodeInvalidMoveLine   = "invalid_move_line"
	CodeMoveLineNotFound  = "move_line_not_found"
	CodePackageNotCreated = "package_not_created"
	CodeStockQuantData    = "stock_quant_data"
)

// Result es el resultado de toda operación de reconciliación. OK=false siempre trae Code.
// Las operaciones por lotes devuelven []Result en el orden de entrada.
type Result struct {
	OK         bool
	Code       string
	Message    string
	TransferID string
	BatchID    string
	ProductID  string
	LocationID string
	Applied    int // conteos aplicados (solo UpsertStockCounts)
}

// PackageResult es el resultado de PutLinesIntoPackage.
type PackageResult struct {
	Result
	Package *entity.Package
}

func success(code, message string) Result {
	return Result{OK: true, Code: code, Message: message}
}

func failed(code, message string) Result {
	return Result{Code: code, Message: message}
}

func (r Result) forTransfer(id string) Result {
	r.TransferID = id
	return r
}

func (r Result) forBatch(id string) Result {
	r.BatchID = id
	return r
}

// ResolutionError indica que una línea reportada no pudo resolverse (producto inexistente,
// línea ajena a la transferencia, ubicaciones por defecto imposibles de derivar).
// Aborta la pasada completa.
type ResolutionError struct {
	ProductID  string
	LocationID string
	Reason     string
}

func (e *ResolutionError) Error() string {
	return e.Reason
}

func resolutionErrorf(productID, format string, args ...any) *ResolutionError {
	return &ResolutionError{ProductID: productID, Reason: fmt.Sprintf(format, args...)}
}

// failure es un resultado estructurado detectado a mitad de la transacción: revierte lo
// escrito y se devuelve tal cual al cliente.
type failure struct {
	result Result
}

func (f *failure) Error() string {
	return f.result.Code + ": " + f.result.Message
}

func fail(r Result) error {
	return &failure{result: r}
}

// outcome traduce el error de una transacción al resultado del cliente.
func outcome(err error, transferID, batchID string) Result {
	var f *failure
	if errors.As(err, &f) {
		return f.result
	}
	var re *ResolutionError
	if errors.As(err, &re) {
		r := failed(CodeUnknownError, "Error al preparar los datos de la transferencia: "+re.Reason)
		r.ProductID = re.ProductID
		r.LocationID = re.LocationID
		r.TransferID, r.BatchID = transferID, batchID
		return r
	}
	r := failed(CodeBadRequest, err.Error())
	r.TransferID, r.BatchID = transferID, batchID
	return r
}
