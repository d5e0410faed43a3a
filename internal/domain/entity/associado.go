package entity

import "fmt"

// Associado é o registro de membro consumido deste subsistema. O cadastro em
// si (CRUD, vínculos, documentos) pertence a outro módulo; aqui só leitura.
type Associado struct {
	ID          string
	Nome        string
	CPF         string
	Matricula   string
	Rua         string
	Numero      string
	Complemento string
	Bairro      string
	Cidade      string
	Estado      string
	CEP         string
	Ativo       bool
}

// EnderecoCompleto monta o endereço postal em linha única, no formato usado
// nos boletins: "rua, numero [- complemento] - bairro - cidade/estado - CEP: cep".
func (a *Associado) EnderecoCompleto() string {
	endereco := fmt.Sprintf("%s, %s", a.Rua, a.Numero)
	if a.Complemento != "" {
		endereco += " - " + a.Complemento
	}
	endereco += fmt.Sprintf(" - %s - %s/%s - CEP: %s", a.Bairro, a.Cidade, a.Estado, a.CEP)
	return endereco
}
