package llm

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/rbarros/fintrack/constants"
)

// The schemas are deliberately permissive: every property is typed but none
// is required, and unknown properties pass. Models routinely omit header
// fields, and the decoder tolerates that; the schemas only reject outputs
// whose present fields carry the wrong shape.

var valueType = map[string]any{"type": []string{"number", "string"}}

var rubricaSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"descricao": map[string]any{"type": "string"},
		"valor":     valueType,
	},
}

var transacaoSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"data":               map[string]any{"type": "string"},
		"descricao":          map[string]any{"type": "string"},
		"valor":              valueType,
		"tipo":               map[string]any{"type": "string"},
		"categoria_sugerida": map[string]any{"type": "string"},
		"parcela":            map[string]any{"type": "string"},
	},
}

var payslipSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"rubricas_creditos":     map[string]any{"type": "array", "items": rubricaSchema},
		"rubricas_debitos":      map[string]any{"type": "array", "items": rubricaSchema},
		"empresa_pagadora":      map[string]any{"type": "string"},
		"funcionario":           map[string]any{"type": "string"},
		"competencia_mes":       map[string]any{"type": "integer"},
		"competencia_ano":       map[string]any{"type": "integer"},
		"data_pagamento":        map[string]any{"type": "string"},
		"valor_bruto_total":     valueType,
		"valor_descontos_total": valueType,
		"valor_liquido_total":   valueType,
	},
}

var bankStatementSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"banco":            map[string]any{"type": "string"},
		"conta":            map[string]any{"type": "string"},
		"periodo_inicio":   map[string]any{"type": "string"},
		"periodo_fim":      map[string]any{"type": "string"},
		"saldo_inicial":    valueType,
		"saldo_final":      valueType,
		"transacoes":       map[string]any{"type": "array", "items": transacaoSchema},
		"total_debitos":    valueType,
		"total_creditos":   valueType,
		"total_transacoes": map[string]any{"type": "integer"},
	},
}

var cardStatementSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"bandeira_cartao":     map[string]any{"type": "string"},
		"numero_final_cartao": map[string]any{"type": "string"},
		"periodo_inicio":      map[string]any{"type": "string"},
		"periodo_fim":         map[string]any{"type": "string"},
		"valor_fatura":        valueType,
		"data_vencimento":     map[string]any{"type": "string"},
		"transacoes":          map[string]any{"type": "array", "items": transacaoSchema},
		"total_gastos":        valueType,
		"total_transacoes":    map[string]any{"type": "integer"},
	},
}

func schemaFor(kind constants.DocumentKind) map[string]any {
	switch kind {
	case constants.DocPayslip:
		return payslipSchema
	case constants.DocBankStatement:
		return bankStatementSchema
	default:
		return cardStatementSchema
	}
}

// validateAgainstSchema validates data against schemaMap.
func validateAgainstSchema(schemaMap map[string]any, data []byte) error {
	b, err := json.Marshal(schemaMap)
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("schema.json", bytes.NewReader(b)); err != nil {
		return fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile("schema.json")
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal data: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("json does not match schema: %w", err)
	}
	return nil
}
