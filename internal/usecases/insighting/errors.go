package insighting

import "errors"

var (
	// ErrSnapshotUnavailable indica que alguma das coleções não pôde ser lida; nada foi calculado
	ErrSnapshotUnavailable = errors.New("snapshot indisponível")
	ErrInvalidDateRange    = errors.New("a data de início não pode ser posterior à data de fim")
)
