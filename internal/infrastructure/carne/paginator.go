package carne

import "github.com/abmepi/financeiro-api/internal/domain/entity"

// Grade de 2 colunas por 3 linhas em A4 paisagem (297x210mm).
var (
	posicoesX = []float64{10, 151}
	posicoesY = []float64{10, 75, 140}
)

// BoletinsPorPagina é a capacidade da grade: 2 colunas x 3 linhas.
const BoletinsPorPagina = 6

// Pagina agrupa os boletins desenhados em uma folha.
type Pagina struct {
	Boletins []Boletim
}

// Documento é o carnê completo, pronto para renderizar.
type Documento struct {
	Paginas []Pagina
}

// Paginar monta os boletins na ordem recebida, preenchendo a grade linha a
// linha (esquerda para a direita, cima para baixo) e abrindo nova página a
// cada seis boletins.
func Paginar(dados []DadosBoletim, cfg *entity.ConfiguracaoCobranca, logoCaminho string) Documento {
	var doc Documento
	for i, d := range dados {
		slot := i % BoletinsPorPagina
		if slot == 0 {
			doc.Paginas = append(doc.Paginas, Pagina{})
		}
		x := posicoesX[slot%len(posicoesX)]
		y := posicoesY[slot/len(posicoesX)]

		pagina := &doc.Paginas[len(doc.Paginas)-1]
		pagina.Boletins = append(pagina.Boletins, MontarBoletim(d, cfg, logoCaminho, x, y))
	}
	return doc
}
