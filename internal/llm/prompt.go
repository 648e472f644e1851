package llm

import (
	"fmt"

	"github.com/rbarros/fintrack/constants"
)

// Text budgets per document kind, in characters of extracted document text.
// Longer documents are truncated silently: trailing transactions are lost.
// This is a known fidelity limitation carried over deliberately; chunking or
// multi-call reconciliation is out of scope.
const (
	payslipTextBudget   = 3000
	statementTextBudget = 4000
)

// Prompt is one (system, user) instruction pair ready for dispatch.
// Truncated records whether the document text was cut to fit the budget;
// it is logged but never surfaced to callers.
type Prompt struct {
	System    string
	User      string
	Truncated bool
}

const payslipSystemPrompt = `Você é um especialista em análise de contracheques do poder judiciário brasileiro.

INSTRUÇÕES CRÍTICAS PARA EXTRAÇÃO:
1. Identifique CADA linha do contracheque que representa uma rubrica
2. Para CADA rubrica, extraia APENAS:
   - DESCRIÇÃO: nome exato da rubrica
   - VALOR: SOMENTE das colunas "CRÉDITOS R$" ou "DÉBITOS R$"
3. REGRA DE CLASSIFICAÇÃO:
   - Se apenas a coluna "CRÉDITOS R$" estiver preenchida → é um CRÉDITO (receita)
   - Se apenas a coluna "DÉBITOS R$" estiver preenchida → é um DÉBITO (desconto)
4. Extraia informações do cabeçalho (empresa, funcionário, competência)
5. Retorne JSON válido sem markdown

ESTRUTURA DE RESPOSTA OBRIGATÓRIA:
{
  "rubricas_creditos": [
    {"descricao": "descrição exata da rubrica", "valor": 0.0}
  ],
  "rubricas_debitos": [
    {"descricao": "descrição exata da rubrica", "valor": 0.0}
  ],
  "empresa_pagadora": "nome da empresa",
  "funcionario": "nome do funcionário",
  "competencia_mes": 12,
  "competencia_ano": 2024,
  "data_pagamento": "2024-12-15",
  "valor_bruto_total": 0.0,
  "valor_liquido_total": 0.0
}`

const bankStatementSystemPrompt = `Você é um especialista em análise de extratos bancários brasileiros.

INSTRUÇÕES CRÍTICAS PARA EXTRAÇÃO:
1. Identifique TODAS as transações do extrato bancário
2. Para CADA transação, extraia:
   - DATA: formato DD/MM/AAAA
   - DESCRIÇÃO: descrição completa da transação
   - VALOR: valor da transação (sempre positivo)
   - TIPO: "debito" (saída de dinheiro) ou "credito" (entrada de dinheiro)
3. Extraia informações do cabeçalho:
   - Nome do banco
   - Número da conta (últimos 4 dígitos)
   - Período do extrato (data início e fim)
   - Saldo inicial e final
4. Categorize automaticamente cada transação
5. Retorne JSON válido sem markdown

ESTRUTURA DE RESPOSTA OBRIGATÓRIA:
{
  "banco": "nome do banco",
  "conta": "número da conta (últimos 4 dígitos)",
  "periodo_inicio": "DD/MM/AAAA",
  "periodo_fim": "DD/MM/AAAA",
  "saldo_inicial": 0.0,
  "saldo_final": 0.0,
  "transacoes": [
    {
      "data": "DD/MM/AAAA",
      "descricao": "descrição da transação",
      "valor": 0.0,
      "tipo": "debito ou credito",
      "categoria_sugerida": "categoria"
    }
  ],
  "total_debitos": 0.0,
  "total_creditos": 0.0,
  "total_transacoes": 0
}`

const cardStatementSystemPrompt = `Você é um especialista em análise de extratos de cartão de crédito brasileiros.

INSTRUÇÕES CRÍTICAS PARA EXTRAÇÃO:
1. Identifique TODAS as transações do cartão de crédito
2. Para CADA transação, extraia:
   - DATA: formato DD/MM/AAAA (data da compra)
   - DESCRIÇÃO: estabelecimento e descrição completa
   - VALOR: valor da transação
   - PARCELA: se é parcelado (ex: "2/12")
3. Extraia informações da fatura:
   - Bandeira do cartão (Visa, Mastercard, etc.)
   - Últimos 4 dígitos do cartão
   - Período da fatura
   - Valor total da fatura
   - Data de vencimento
4. Categorize automaticamente cada transação
5. Retorne JSON válido sem markdown

ESTRUTURA DE RESPOSTA OBRIGATÓRIA:
{
  "bandeira_cartao": "Visa/Mastercard/etc",
  "numero_final_cartao": "últimos 4 dígitos",
  "periodo_inicio": "DD/MM/AAAA",
  "periodo_fim": "DD/MM/AAAA",
  "valor_fatura": 0.0,
  "data_vencimento": "DD/MM/AAAA",
  "transacoes": [
    {
      "data": "DD/MM/AAAA",
      "descricao": "estabelecimento - descrição",
      "valor": 0.0,
      "categoria_sugerida": "categoria",
      "parcela": "1/1 ou 2/12 etc"
    }
  ],
  "total_gastos": 0.0,
  "total_transacoes": 0
}`

// BuildPrompt composes the fixed system instruction for the document kind
// and a user instruction embedding the filename and a budget-bounded excerpt
// of the extracted text. Pure function of its inputs.
func BuildPrompt(kind constants.DocumentKind, filename, text string) Prompt {
	switch kind {
	case constants.DocPayslip:
		excerpt, truncated := truncateText(text, payslipTextBudget)
		return Prompt{
			System:    payslipSystemPrompt,
			User:      fmt.Sprintf("Analise este contracheque (%s) e extraia TODAS as rubricas individuais. Texto: %s", filename, excerpt),
			Truncated: truncated,
		}
	case constants.DocBankStatement:
		excerpt, truncated := truncateText(text, statementTextBudget)
		return Prompt{
			System:    bankStatementSystemPrompt,
			User:      fmt.Sprintf("Analise este extrato bancário (%s) e extraia TODAS as transações. Texto: %s", filename, excerpt),
			Truncated: truncated,
		}
	case constants.DocCardStatement:
		excerpt, truncated := truncateText(text, statementTextBudget)
		return Prompt{
			System:    cardStatementSystemPrompt,
			User:      fmt.Sprintf("Analise este extrato de cartão de crédito (%s) e extraia TODAS as transações. Texto: %s", filename, excerpt),
			Truncated: truncated,
		}
	}
	return Prompt{}
}

// truncateText cuts text at budget characters (runes, so multi-byte text is
// never split mid-character).
func truncateText(text string, budget int) (string, bool) {
	runes := []rune(text)
	if len(runes) <= budget {
		return text, false
	}
	return string(runes[:budget]), true
}
