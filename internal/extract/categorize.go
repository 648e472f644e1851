package extract

import (
	"strings"

	"github.com/rbarros/fintrack/constants"
)

// Bucket selects which rule table a rubrica description is matched against.
type Bucket string

const (
	BucketCredit Bucket = "credit"
	BucketDebit  Bucket = "debit"
)

// Categorize maps a rubrica description to a ledger category by first-match
// evaluation of the ordered keyword tables in constants. Descriptions that
// match no rule fall back to "Outros".
func Categorize(descricao string, bucket Bucket) string {
	rules := constants.PayslipCreditRules
	if bucket == BucketDebit {
		rules = constants.PayslipDebitRules
	}
	return firstMatch(descricao, rules)
}

// CategorizePayslip fills the suggested category of every rubrica, credits
// against the credit table and debits against the debit table.
func CategorizePayslip(p Payslip) Payslip {
	for i := range p.RubricasCreditos {
		p.RubricasCreditos[i].Categoria = Categorize(p.RubricasCreditos[i].Descricao, BucketCredit)
	}
	for i := range p.RubricasDebitos {
		p.RubricasDebitos[i].Categoria = Categorize(p.RubricasDebitos[i].Descricao, BucketDebit)
	}
	return p
}

func firstMatch(descricao string, rules []constants.CategoryRule) string {
	lower := strings.ToLower(descricao)
	for _, rule := range rules {
		for _, kw := range rule.Keywords {
			if strings.Contains(lower, kw) {
				return rule.Label
			}
		}
	}
	return constants.CategoryOutros
}
