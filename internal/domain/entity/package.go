package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Uso del paquete.
const (
	PackageUseDisposable = "disposable"
	PackageUseReusable   = "reusable"
)

// Package es un contenedor físico asignado como paquete resultado a líneas realizadas.
type Package struct {
	ID         string
	CompanyID  string
	Name       string
	PackageUse string
	Weight     decimal.Decimal
	PackDate   time.Time
	CreatedAt  time.Time
}
