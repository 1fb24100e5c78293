package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExpandTemplate(t *testing.T) {
	vars := TemplateVars{
		Name:             "Maria Clara Souza",
		Phone:            "11988887777",
		SubscriptionDate: "15/08/2026",
	}

	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"first name", "Olá {nome}!", "Olá Maria!"},
		{"full name", "Bem-vinda, {nome_completo}.", "Bem-vinda, Maria Clara Souza."},
		{"phone and date", "{telefone} desde {data_assinatura}", "11988887777 desde 15/08/2026"},
		{"case insensitive", "Olá {NOME}!", "Olá Maria!"},
		{"unknown token kept", "Use o cupom {cupom}", "Use o cupom {cupom}"},
		{"no tokens", "Mensagem fixa", "Mensagem fixa"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandTemplate(tt.content, vars))
		})
	}
}

func TestExpandTemplateEmptyNameFallsBack(t *testing.T) {
	vars := TemplateVars{Name: "  "}
	assert.Equal(t, "Olá Cliente!", ExpandTemplate("Olá {nome}!", vars))
	assert.Equal(t, "Olá Cliente!", ExpandTemplate("Olá {nome_completo}!", vars))
}

func TestTruncatePreview(t *testing.T) {
	long := strings.Repeat("A", 150)
	assert.Equal(t, strings.Repeat("A", 100)+"...", TruncatePreview(long))

	exact := strings.Repeat("B", 100)
	assert.Equal(t, exact, TruncatePreview(exact))

	assert.Equal(t, "curto", TruncatePreview("curto"))
}
