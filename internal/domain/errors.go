package domain

import "errors"

// Erros de domínio (sem dependências externas).
var (
	ErrNaoEncontrado   = errors.New("recurso não encontrado")
	ErrEntradaInvalida = errors.New("entrada inválida")
	ErrDuplicado       = errors.New("registro duplicado para a competência")
	ErrJaQuitada       = errors.New("mensalidade já quitada ou cancelada")
	ErrConflito        = errors.New("conflito com o estado atual")
	ErrInativo         = errors.New("registro inativo")
)
