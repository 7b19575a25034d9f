package postgres

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	return pgCode(err) == "23505"
}

// isSerializationFailure serialization_failure (40001) o deadlock_detected (40P01): la tx se puede reintentar.
func isSerializationFailure(err error) bool {
	switch pgCode(err) {
	case "40001", "40P01":
		return true
	}
	return false
}

// isInvalidTextRepresentation 22P02, p. ej. un id que no es UUID.
func isInvalidTextRepresentation(err error) bool {
	return pgCode(err) == "22P02"
}

// isCheckViolation 23514, p. ej. cantidad negativa en una ubicación.
func isCheckViolation(err error) bool {
	return pgCode(err) == "23514"
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// likePattern envuelve term en %...% escapando los comodines de LIKE.
func likePattern(term string) string {
	return "%" + likeEscaper.Replace(term) + "%"
}
