// Package ledger contiene la agregación de saldos: funciones puras sobre el log
// de asientos, independientes del mecanismo de persistencia.
package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/AlmacenObra-api/internal/domain/entity"
)

// ComputeBalances pliega la cantidad firmada de cada asiento en un acumulador por
// clave (descripción y unidad recortadas). Asientos con descripción vacía se
// omiten. Función pura del contenido actual del ledger: sin estado oculto ni caché.
func ComputeBalances(entries []*entity.LedgerEntry) map[entity.BalanceKey]decimal.Decimal {
	balances := make(map[entity.BalanceKey]decimal.Decimal, len(entries))
	for _, e := range entries {
		key := e.Key()
		if key.Description == "" {
			continue
		}
		balances[key] = balances[key].Add(e.Quantity)
	}
	return balances
}

// BalanceOf devuelve el saldo actual de una clave; cero si nunca se ha visto.
// El resultado no depende del orden de lectura del log.
func BalanceOf(entries []*entity.LedgerEntry, description, unit string) decimal.Decimal {
	key := entity.NewBalanceKey(description, unit)
	total := decimal.Zero
	for _, e := range entries {
		if e.Key() == key {
			total = total.Add(e.Quantity)
		}
	}
	return total
}
