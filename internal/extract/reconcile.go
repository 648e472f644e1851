package extract

import (
	"github.com/shopspring/decimal"

	"github.com/rbarros/fintrack/constants"
)

// Reconciliation recomputes aggregate totals from the itemized lists,
// overwriting whatever the model reported. Model-side totals are unreliable
// (arithmetic slips, omissions); recomputing from the items is the only
// correctness guarantee, so it is applied unconditionally.

// ReconcilePayslip derives gross, deductions and net from the rubricas.
// Totals are rounded to 2 decimal places, half up.
func ReconcilePayslip(p Payslip) Payslip {
	credits := sumRubricas(p.RubricasCreditos)
	debits := sumRubricas(p.RubricasDebitos)

	p.ValorBrutoTotal = credits.Round(2)
	p.ValorDescontosTotal = debits.Round(2)
	p.ValorLiquidoTotal = credits.Sub(debits).Round(2)
	return p
}

// ReconcileBankStatement derives debit/credit totals and the transaction
// count from the itemized list.
func ReconcileBankStatement(s BankStatement) BankStatement {
	debits := decimal.Zero
	credits := decimal.Zero
	for _, t := range s.Transacoes {
		switch t.Tipo {
		case constants.DirectionDebit:
			debits = debits.Add(t.Valor)
		case constants.DirectionCredit:
			credits = credits.Add(t.Valor)
		}
	}

	s.TotalDebitos = debits.Round(2)
	s.TotalCreditos = credits.Round(2)
	s.TotalTransacoes = len(s.Transacoes)
	return s
}

// ReconcileCardStatement derives the spend total and the transaction count
// from the itemized list.
func ReconcileCardStatement(s CardStatement) CardStatement {
	total := decimal.Zero
	for _, t := range s.Transacoes {
		total = total.Add(t.Valor)
	}

	s.TotalGastos = total.Round(2)
	s.TotalTransacoes = len(s.Transacoes)
	return s
}

func sumRubricas(rubricas []Rubrica) decimal.Decimal {
	total := decimal.Zero
	for _, r := range rubricas {
		total = total.Add(r.Valor)
	}
	return total
}
