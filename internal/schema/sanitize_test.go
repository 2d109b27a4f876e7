package schema

import (
	"regexp"
	"testing"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "already clean", input: "valor_total", want: "valor_total"},
		{name: "uppercase", input: "Chamados", want: "chamados"},
		{name: "mixed case with digits", input: "Ano2023", want: "ano2023"},
		{name: "spaces", input: "data do sinistro", want: "data_do_sinistro"},
		{name: "punctuation", input: "valor (R$)", want: "valor__r__"},
		{name: "hyphens", input: "uf-origem", want: "uf_origem"},
		{name: "accented runes collapse per byte", input: "região", want: "regi__o"},
		{name: "empty", input: "", want: ""},
		{name: "only specials", input: "!!!", want: "___"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Sanitize(tt.input); got != tt.want {
				t.Errorf("Sanitize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSanitize_Idempotent(t *testing.T) {
	inputs := []string{"Chamados", "data do sinistro", "valor (R$)", "região", "", "a_b_c", "UF - Destino"}
	for _, in := range inputs {
		once := Sanitize(in)
		if twice := Sanitize(once); twice != once {
			t.Errorf("Sanitize(Sanitize(%q)) = %q, want %q", in, twice, once)
		}
	}
}

func TestSanitize_OutputCharset(t *testing.T) {
	valid := regexp.MustCompile(`^[a-z0-9_]*$`)
	inputs := []string{"Chamados", "valor (R$)", "região", "ÁÉÍ", "tab\tseparated", "a;b;c"}
	for _, in := range inputs {
		if got := Sanitize(in); !valid.MatchString(got) {
			t.Errorf("Sanitize(%q) = %q, contains characters outside [a-z0-9_]", in, got)
		}
	}
}
