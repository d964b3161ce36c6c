// Package money contiene las reglas de cálculo de un documento: subtotal,
// desglose de BTW por tipo y total, más el formateo nl-BE de importes.
//
// Los importes se acumulan con shopspring/decimal (precisión arbitraria) y solo
// se redondean al mostrarlos, de modo que el redondeo es determinista.
package money

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/factuurr/internal/domain/entity"
)

var hundred = decimal.NewFromInt(100)

// Breakdown importe de BTW acumulado por tipo (porcentaje → importe).
// Solo contiene claves para tipos usados por al menos una línea.
type Breakdown map[int]decimal.Decimal

// Rates devuelve los tipos presentes en orden ascendente.
func (b Breakdown) Rates() []int {
	rates := make([]int, 0, len(b))
	for r := range b {
		rates = append(rates, r)
	}
	sort.Ints(rates)
	return rates
}

// Sum suma todos los importes del desglose.
func (b Breakdown) Sum() decimal.Decimal {
	sum := decimal.Zero
	for _, v := range b {
		sum = sum.Add(v)
	}
	return sum
}

// LineTotal = cantidad × precio unitario (sin BTW).
func LineTotal(item entity.LineItem) decimal.Decimal {
	return item.Quantity.Mul(item.UnitPrice)
}

// LineVAT = cantidad × precio unitario × tipo / 100.
func LineVAT(item entity.LineItem) decimal.Decimal {
	return LineTotal(item).Mul(decimal.NewFromInt(int64(item.VATRate))).Div(hundred)
}

// Subtotal suma los totales de línea sin redondear.
func Subtotal(items []entity.LineItem) decimal.Decimal {
	sum := decimal.Zero
	for _, it := range items {
		sum = sum.Add(LineTotal(it))
	}
	return sum
}

// VATBreakdown agrupa el BTW de cada línea por su tipo.
func VATBreakdown(items []entity.LineItem) Breakdown {
	out := make(Breakdown)
	for _, it := range items {
		out[it.VATRate] = out[it.VATRate].Add(LineVAT(it))
	}
	return out
}

// Total = subtotal + suma del desglose de BTW.
func Total(items []entity.LineItem) decimal.Decimal {
	return Subtotal(items).Add(VATBreakdown(items).Sum())
}

// Totals proyección calculada de un documento. Nunca se persiste.
type Totals struct {
	Subtotal decimal.Decimal
	VAT      Breakdown
	Total    decimal.Decimal
}

// Compute calcula los tres valores derivados de una sola pasada de lectura.
func Compute(items []entity.LineItem) Totals {
	sub := Subtotal(items)
	vat := VATBreakdown(items)
	return Totals{Subtotal: sub, VAT: vat, Total: sub.Add(vat.Sum())}
}
