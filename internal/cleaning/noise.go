// Package cleaning normalizes scraped job descriptions before they reach
// scoring and feedback. It combines a heuristic line filter with an optional
// AI refinement pass.
package cleaning

import (
	"regexp"
	"strings"
)

// noisePrefixes lists line prefixes that mark scraped UI chrome rather than
// posting content. The table is bilingual because the supported source serves
// Portuguese and English layouts. Matching is case-sensitive and ordered;
// extend the table rather than adding branches to Filter.
var noisePrefixes = []string{
	"Mostrar mais",
	"Show more",
	"Show less",
	"Ver mais",
	"Veja mais",
	"Saiba mais",
	"Candidatar-se",
	"Candidate-se",
	"Apply",
	"Apply now",
	"Turn on job alerts",
	"Ativar alerta de vagas",
	"Veja quem você conhece",
	"Descubra quem",
	"Número de candidatos",
	"há ",
	"Há ",
	"Nível de experiência",
	"Tipo de emprego",
	"Função",
	"Setor",
	"Localização da vaga",
	"Conheça a empresa",
	"Sobre a empresa",
	"Sobre nós",
	"Informações adicionais",
	"Informações da vaga",
}

var blankRuns = regexp.MustCompile(`\n{3,}`)

// Filter removes boilerplate lines from a scraped job description.
// Lines are trimmed; empty lines and lines starting with a known noise
// prefix are dropped, so blank-line paragraph breaks do not survive
// filtering. A final pass collapses any residual newline runs. Filter is
// pure and idempotent; empty input is returned unchanged.
func Filter(text string) string {
	if text == "" {
		return text
	}

	lines := strings.Split(text, "\n")
	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || isNoiseLine(line) {
			continue
		}
		kept = append(kept, line)
	}

	cleaned := strings.Join(kept, "\n")
	cleaned = blankRuns.ReplaceAllString(cleaned, "\n\n")
	return strings.TrimSpace(cleaned)
}

func isNoiseLine(line string) bool {
	for _, prefix := range noisePrefixes {
		if strings.HasPrefix(line, prefix) {
			return true
		}
	}
	return false
}
