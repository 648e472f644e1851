package extract

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/rbarros/fintrack/constants"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestReconcilePayslipOverridesModelTotals(t *testing.T) {
	p := Payslip{
		RubricasCreditos: []Rubrica{
			{Descricao: "Subsídio", Valor: dec("30000.00")},
			{Descricao: "Gratificação GECJ", Valor: dec("1500.50")},
		},
		RubricasDebitos: []Rubrica{
			{Descricao: "Imposto de Renda", Valor: dec("7000.25")},
		},
		// Deliberately wrong model-reported totals.
		ValorBrutoTotal:     dec("99999.99"),
		ValorDescontosTotal: dec("1.00"),
		ValorLiquidoTotal:   dec("123.45"),
	}

	got := ReconcilePayslip(p)

	if !got.ValorBrutoTotal.Equal(dec("31500.50")) {
		t.Errorf("bruto = %s, want 31500.50", got.ValorBrutoTotal)
	}
	if !got.ValorDescontosTotal.Equal(dec("7000.25")) {
		t.Errorf("descontos = %s, want 7000.25", got.ValorDescontosTotal)
	}
	if !got.ValorLiquidoTotal.Equal(dec("24500.25")) {
		t.Errorf("liquido = %s, want 24500.25", got.ValorLiquidoTotal)
	}
}

func TestReconcilePayslipRounding(t *testing.T) {
	p := Payslip{
		RubricasCreditos: []Rubrica{
			{Valor: dec("10.005")},
		},
	}

	got := ReconcilePayslip(p)

	if !got.ValorBrutoTotal.Equal(dec("10.01")) {
		t.Errorf("bruto = %s, want 10.01 (half-up)", got.ValorBrutoTotal)
	}
}

func TestReconcileBankStatementOrderIndependent(t *testing.T) {
	items := []Transacao{
		{Descricao: "PIX recebido", Valor: dec("1000.00"), Tipo: constants.DirectionCredit},
		{Descricao: "debito automatico", Valor: dec("50.00"), Tipo: constants.DirectionDebit},
		{Descricao: "compra cartao", Valor: dec("13.37"), Tipo: constants.DirectionDebit},
	}
	permuted := []Transacao{items[2], items[0], items[1]}

	a := ReconcileBankStatement(BankStatement{Transacoes: items})
	b := ReconcileBankStatement(BankStatement{Transacoes: permuted})

	if !a.TotalDebitos.Equal(b.TotalDebitos) || !a.TotalCreditos.Equal(b.TotalCreditos) {
		t.Errorf("totals differ across permutations: %s/%s vs %s/%s",
			a.TotalDebitos, a.TotalCreditos, b.TotalDebitos, b.TotalCreditos)
	}
	if a.TotalTransacoes != 3 {
		t.Errorf("count = %d, want 3", a.TotalTransacoes)
	}
}

func TestReconcileBankStatementTwoTransactions(t *testing.T) {
	s := BankStatement{
		Transacoes: []Transacao{
			{Descricao: "debito", Valor: dec("50.00"), Tipo: constants.DirectionDebit},
			{Descricao: "credito", Valor: dec("1000.00"), Tipo: constants.DirectionCredit},
		},
		TotalDebitos:  dec("0"),
		TotalCreditos: dec("123456"),
	}

	got := ReconcileBankStatement(s)

	if !got.TotalDebitos.Equal(dec("50.00")) {
		t.Errorf("total_debitos = %s, want 50.00", got.TotalDebitos)
	}
	if !got.TotalCreditos.Equal(dec("1000.00")) {
		t.Errorf("total_creditos = %s, want 1000.00", got.TotalCreditos)
	}
	if got.TotalTransacoes != 2 {
		t.Errorf("total_transacoes = %d, want 2", got.TotalTransacoes)
	}
}

func TestReconcileReconcileIsIdempotent(t *testing.T) {
	s := CardStatement{
		Transacoes: []Transacao{
			{Descricao: "restaurante", Valor: dec("85.40")},
			{Descricao: "mercado", Valor: dec("214.60")},
		},
	}

	once := ReconcileCardStatement(s)
	twice := ReconcileCardStatement(once)

	if !once.TotalGastos.Equal(twice.TotalGastos) || once.TotalTransacoes != twice.TotalTransacoes {
		t.Errorf("reconcile not idempotent: %s/%d vs %s/%d",
			once.TotalGastos, once.TotalTransacoes, twice.TotalGastos, twice.TotalTransacoes)
	}
	if !once.TotalGastos.Equal(dec("300.00")) {
		t.Errorf("total_gastos = %s, want 300.00", once.TotalGastos)
	}
}
