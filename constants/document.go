package constants

// DocumentKind discriminates the three supported financial document types.
type DocumentKind string

const (
	DocPayslip       DocumentKind = "payslip"
	DocBankStatement DocumentKind = "bank_statement"
	DocCardStatement DocumentKind = "card_statement"
)

// MimePDF is the only mime type the extraction pipeline accepts.
const MimePDF = "application/pdf"

// Transaction direction values as emitted by the statement prompts.
const (
	DirectionDebit  = "debito"
	DirectionCredit = "credito"
)

// Ledger entry kinds.
const (
	EntryReceita = "receita"
	EntryGasto   = "gasto"
)
