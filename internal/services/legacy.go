package services

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/example/ordem-servico/internal/models"
)

// Orders that predate the dados_json payload keep their sold items only as
// free text in detalhes_produto, one line per item ending in a price
// suffix: "Caneca personalizada - R$ 1.234,56".
var legacyLineRegex = regexp.MustCompile(`^(.*?)\s*[-–]\s*R\$\s*([\d.]+,\d{2})\s*$`)

// ParseResumoProdutos extracts item lines from a legacy product summary.
// Lines without the price suffix are skipped.
func ParseResumoProdutos(resumo string) []models.ItemPedido {
	var itens []models.ItemPedido
	for _, line := range strings.Split(resumo, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		m := legacyLineRegex.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		valor, err := ParseBRL(m[2])
		if err != nil {
			continue
		}
		itens = append(itens, models.ItemPedido{
			Descricao:  strings.TrimSpace(m[1]),
			Quantidade: 1,
			Valor:      valor,
		})
	}
	return itens
}

// ParseBRL converts a pt-BR formatted decimal ("1.234,56") to a float:
// "." is the thousands separator, "," the fraction separator.
func ParseBRL(s string) (float64, error) {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, ".", "")
	s = strings.ReplaceAll(s, ",", ".")
	return strconv.ParseFloat(s, 64)
}
