package report

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// NomeArquivoCarne monta o nome de arquivo do carnê de um associado:
// "carne_Nome_Sem_Acento_AAAAMMDD.pdf".
func NomeArquivoCarne(nomeAssociado string, data time.Time) string {
	return fmt.Sprintf("carne_%s_%s.pdf", limparNome(nomeAssociado), data.Format("20060102"))
}

// limparNome remove acentos e troca qualquer caractere fora de
// [A-Za-z0-9] por underscore, sem repetir underscores.
func limparNome(nome string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	semAcento, _, err := transform.String(t, nome)
	if err != nil {
		semAcento = nome
	}

	var b strings.Builder
	anteriorUnderscore := false
	for _, r := range semAcento {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
			anteriorUnderscore = false
		default:
			if !anteriorUnderscore {
				b.WriteByte('_')
				anteriorUnderscore = true
			}
		}
	}
	return strings.Trim(b.String(), "_")
}
