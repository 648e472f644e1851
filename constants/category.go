package constants

// Payslip ledger category labels. Labels are kept in Portuguese because they
// flow straight into the ledger and the exported spreadsheets.
const (
	CategorySalario            = "Salário"
	CategoryAdicionais         = "Adicionais"
	CategoryGratificacao       = "Gratificação"
	CategoryVerbasIndenizacao  = "Verbas indenizatórias"
	CategoryAulasPalestras     = "Aulas/Palestras"
	CategoryAbateTeto          = "Abate teto"
	CategorySaude              = "Saúde"
	CategoryAssociacao         = "Associação"
	CategoryEmprestimos        = "Empréstimos"
	CategoryPrevidenciaPublica = "Previdência pública"
	CategoryPrevidenciaPrivada = "Previdência privada"
	CategoryPensaoAlimenticia  = "Pensão alimentícia"
	CategoryImpostos           = "Impostos e taxas públicas"
	CategoryOutros             = "Outros"
)

// CategoryRule maps a keyword set to a ledger category. Rules are evaluated
// in order and the first match wins; overlapping keywords across rules make
// the order part of the contract, so do not reorder.
type CategoryRule struct {
	Keywords []string
	Label    string
}

// PayslipCreditRules categorize credit rubricas (income side).
var PayslipCreditRules = []CategoryRule{
	{Keywords: []string{"subsídio", "salário", "vencimento"}, Label: CategorySalario},
	{Keywords: []string{"substituição", "adicional"}, Label: CategoryAdicionais},
	{Keywords: []string{"gratificação", "grat", "gecj"}, Label: CategoryGratificacao},
	{Keywords: []string{"auxílio", "assistência", "licença"}, Label: CategoryVerbasIndenizacao},
	{Keywords: []string{"curso", "concurso", "palestra"}, Label: CategoryAulasPalestras},
}

// PayslipDebitRules categorize debit rubricas (deduction side).
// "ir" matches as a plain substring, same as every other keyword.
var PayslipDebitRules = []CategoryRule{
	{Keywords: []string{"devolução", "limite constitucional", "abate"}, Label: CategoryAbateTeto},
	{Keywords: []string{"plano de saúde", "saúde"}, Label: CategorySaude},
	{Keywords: []string{"amatra", "associação"}, Label: CategoryAssociacao},
	{Keywords: []string{"empréstimo"}, Label: CategoryEmprestimos},
	{Keywords: []string{"rpps", "previdência pública"}, Label: CategoryPrevidenciaPublica},
	{Keywords: []string{"funprespjud", "previdência privada"}, Label: CategoryPrevidenciaPrivada},
	{Keywords: []string{"pensão alimentícia"}, Label: CategoryPensaoAlimenticia},
	{Keywords: []string{"imposto de renda", "ir"}, Label: CategoryImpostos},
}
