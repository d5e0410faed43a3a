package entity

import "time"

// ConfiguracaoCobranca guarda os dados de cobrança impressos no carnê
// (chave PIX, titular, banco, mensagem e QR Code).
//
// Invariante: no máximo uma configuração ativa por vez; ativar uma desativa
// todas as outras na mesma transação.
type ConfiguracaoCobranca struct {
	ID                  string
	Nome                string
	Ativo               bool
	ChavePix            string
	Titular             string
	Banco               string
	Mensagem            string // texto livre, impresso sempre em 3 linhas
	TelefoneComprovante string
	QRCodeAtivo         bool
	QRCodeImagem        string // caminho da imagem; vazio = desenhar placeholder
	QRCodeTamanho       int    // lado do QR Code em mm
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// ConfiguracaoPadrao devolve a configuração criada quando nenhuma existe.
func ConfiguracaoPadrao() *ConfiguracaoCobranca {
	return &ConfiguracaoCobranca{
		Nome:                "Configuração Padrão",
		Ativo:               true,
		ChavePix:            "86 988197790",
		Titular:             "Gustavo Henrique de Araujo Sousa",
		Banco:               "MERCADO PAGO",
		Mensagem:            "Pague suas mensalidades na sede da associação ou pelo QR Code e envie o comprovante para o telefone informado",
		TelefoneComprovante: "86 988197790",
		QRCodeAtivo:         true,
		QRCodeTamanho:       15,
	}
}
