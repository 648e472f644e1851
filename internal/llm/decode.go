package llm

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rbarros/fintrack/constants"
	"github.com/rbarros/fintrack/internal/common"
	"github.com/rbarros/fintrack/internal/extract"
)

// StripCodeFence removes a surrounding markdown code fence from model output.
// Providers are told to answer with bare JSON but some wrap it in
// ```json ... ``` anyway. Input without a fence is returned unchanged
// (minus surrounding whitespace).
func StripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 && !strings.ContainsAny(s[:nl], "{[") {
		// Drop the language tag line ("json").
		s = s[nl+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// DecodePayslip turns raw model output into a Payslip. Any parse, schema, or
// decode failure maps to ErrMalformedModelOutput; absent fields stay at their
// zero values and are repaired downstream by reconciliation.
func DecodePayslip(raw string) (extract.Payslip, error) {
	var out extract.Payslip
	if err := decodeInto(constants.DocPayslip, raw, &out); err != nil {
		return extract.Payslip{}, err
	}
	return out, nil
}

func DecodeBankStatement(raw string) (extract.BankStatement, error) {
	var out extract.BankStatement
	if err := decodeInto(constants.DocBankStatement, raw, &out); err != nil {
		return extract.BankStatement{}, err
	}
	return out, nil
}

func DecodeCardStatement(raw string) (extract.CardStatement, error) {
	var out extract.CardStatement
	if err := decodeInto(constants.DocCardStatement, raw, &out); err != nil {
		return extract.CardStatement{}, err
	}
	return out, nil
}

func decodeInto(kind constants.DocumentKind, raw string, v any) error {
	data := []byte(StripCodeFence(raw))
	if err := validateAgainstSchema(schemaFor(kind), data); err != nil {
		return fmt.Errorf("%w: %v", common.ErrMalformedModelOutput, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%w: %v", common.ErrMalformedModelOutput, err)
	}
	return nil
}
