// Package extract holds the structured documents produced by the LLM
// pipeline and the deterministic post-processing applied to them:
// total reconciliation and payslip categorization.
package extract

import "github.com/shopspring/decimal"

// Rubrica is a single payslip line item. The amount is always non-negative;
// whether it is income or a deduction is carried by the bucket it was
// classified into (rubricas_creditos vs rubricas_debitos), never by sign.
type Rubrica struct {
	Descricao string          `json:"descricao"`
	Valor     decimal.Decimal `json:"valor"`
	Categoria string          `json:"categoria,omitempty"`
}

// Payslip is the extracted shape of a contracheque. The three totals are
// always recomputed from the rubricas by ReconcilePayslip; whatever the
// model reported for them is discarded.
type Payslip struct {
	RubricasCreditos []Rubrica `json:"rubricas_creditos"`
	RubricasDebitos  []Rubrica `json:"rubricas_debitos"`

	EmpresaPagadora string `json:"empresa_pagadora,omitempty"`
	Funcionario     string `json:"funcionario,omitempty"`
	CompetenciaMes  int    `json:"competencia_mes,omitempty"`
	CompetenciaAno  int    `json:"competencia_ano,omitempty"`
	DataPagamento   string `json:"data_pagamento,omitempty"`

	ValorBrutoTotal     decimal.Decimal `json:"valor_bruto_total"`
	ValorDescontosTotal decimal.Decimal `json:"valor_descontos_total"`
	ValorLiquidoTotal   decimal.Decimal `json:"valor_liquido_total"`
}

// Transacao is a single statement line item. Dates are free-form strings in
// whatever format the document used (typically DD/MM/AAAA); Tipo is set for
// bank statements only, Parcela for card statements only.
type Transacao struct {
	Data              string          `json:"data"`
	Descricao         string          `json:"descricao"`
	Valor             decimal.Decimal `json:"valor"`
	Tipo              string          `json:"tipo,omitempty"`
	CategoriaSugerida string          `json:"categoria_sugerida,omitempty"`
	Parcela           string          `json:"parcela,omitempty"`
}

// BankStatement is the extracted shape of an extrato bancário.
type BankStatement struct {
	Banco         string          `json:"banco,omitempty"`
	Conta         string          `json:"conta,omitempty"`
	PeriodoInicio string          `json:"periodo_inicio,omitempty"`
	PeriodoFim    string          `json:"periodo_fim,omitempty"`
	SaldoInicial  decimal.Decimal `json:"saldo_inicial"`
	SaldoFinal    decimal.Decimal `json:"saldo_final"`

	Transacoes []Transacao `json:"transacoes"`

	TotalDebitos    decimal.Decimal `json:"total_debitos"`
	TotalCreditos   decimal.Decimal `json:"total_creditos"`
	TotalTransacoes int             `json:"total_transacoes"`
}

// CardStatement is the extracted shape of an extrato de cartão de crédito.
type CardStatement struct {
	BandeiraCartao    string          `json:"bandeira_cartao,omitempty"`
	NumeroFinalCartao string          `json:"numero_final_cartao,omitempty"`
	PeriodoInicio     string          `json:"periodo_inicio,omitempty"`
	PeriodoFim        string          `json:"periodo_fim,omitempty"`
	ValorFatura       decimal.Decimal `json:"valor_fatura"`
	DataVencimento    string          `json:"data_vencimento,omitempty"`

	Transacoes []Transacao `json:"transacoes"`

	TotalGastos     decimal.Decimal `json:"total_gastos"`
	TotalTransacoes int             `json:"total_transacoes"`
}
