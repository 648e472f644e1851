package llm

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/rbarros/fintrack/internal/common"
)

func TestStripCodeFence(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"bare json", `{"a": 1}`, `{"a": 1}`},
		{"fenced with tag", "```json\n{\"a\": 1}\n```", `{"a": 1}`},
		{"fenced no tag", "```\n{\"a\": 1}\n```", `{"a": 1}`},
		{"surrounding whitespace", "  \n{\"a\": 1}\n ", `{"a": 1}`},
		{"fence glued to brace", "```{\"a\": 1}```", `{"a": 1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripCodeFence(tt.in); got != tt.want {
				t.Errorf("StripCodeFence(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestDecodePayslipFencedEqualsBare(t *testing.T) {
	body := `{
		"rubricas_creditos": [{"descricao": "Subsídio", "valor": 30000.00}],
		"rubricas_debitos": [{"descricao": "IR", "valor": 7000.25}],
		"funcionario": "Maria",
		"competencia_mes": 1,
		"competencia_ano": 2025
	}`

	bare, err := DecodePayslip(body)
	if err != nil {
		t.Fatalf("bare: %v", err)
	}
	fenced, err := DecodePayslip("```json\n" + body + "\n```")
	if err != nil {
		t.Fatalf("fenced: %v", err)
	}

	if bare.Funcionario != "Maria" || fenced.Funcionario != bare.Funcionario {
		t.Errorf("funcionario mismatch: %q vs %q", bare.Funcionario, fenced.Funcionario)
	}
	if len(bare.RubricasCreditos) != 1 || !bare.RubricasCreditos[0].Valor.Equal(decimal.RequireFromString("30000.00")) {
		t.Errorf("rubricas_creditos decoded wrong: %+v", bare.RubricasCreditos)
	}
	if len(fenced.RubricasDebitos) != 1 || fenced.RubricasDebitos[0].Descricao != "IR" {
		t.Errorf("rubricas_debitos decoded wrong: %+v", fenced.RubricasDebitos)
	}
}

func TestDecodeMalformedOutput(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"not json", "desculpe, não consegui analisar o documento"},
		{"truncated json", `{"transacoes": [{"descricao": "a"`},
		{"wrong shape", `{"transacoes": "não é um array"}`},
		{"wrong item shape", `{"transacoes": [{"valor": {"x": 1}}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecodeBankStatement(tt.raw); !errors.Is(err, common.ErrMalformedModelOutput) {
				t.Errorf("err = %v, want ErrMalformedModelOutput", err)
			}
		})
	}
}

func TestDecodeLenientMissingFields(t *testing.T) {
	got, err := DecodeBankStatement(`{"transacoes": [{"descricao": "pix", "valor": 10.5, "tipo": "credito"}]}`)
	if err != nil {
		t.Fatalf("DecodeBankStatement: %v", err)
	}
	if got.Banco != "" || got.Conta != "" {
		t.Errorf("missing header fields must stay zero, got %+v", got)
	}
	if len(got.Transacoes) != 1 || !got.Transacoes[0].Valor.Equal(decimal.RequireFromString("10.5")) {
		t.Errorf("transacoes decoded wrong: %+v", got.Transacoes)
	}
}

func TestDecodeAcceptsStringAmounts(t *testing.T) {
	got, err := DecodeCardStatement(`{"transacoes": [{"descricao": "mercado", "valor": "214.60"}], "valor_fatura": "300.00"}`)
	if err != nil {
		t.Fatalf("DecodeCardStatement: %v", err)
	}
	if !got.Transacoes[0].Valor.Equal(decimal.RequireFromString("214.60")) {
		t.Errorf("valor = %s, want 214.60", got.Transacoes[0].Valor)
	}
	if !got.ValorFatura.Equal(decimal.RequireFromString("300.00")) {
		t.Errorf("valor_fatura = %s, want 300.00", got.ValorFatura)
	}
}

func TestDecodeIgnoresUnknownFields(t *testing.T) {
	got, err := DecodePayslip(`{"rubricas_creditos": [], "observacao_do_modelo": "campo extra"}`)
	if err != nil {
		t.Fatalf("DecodePayslip: %v", err)
	}
	if got.RubricasCreditos == nil {
		t.Error("rubricas_creditos should decode to an empty slice")
	}
}
