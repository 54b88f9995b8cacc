package postgres

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return strings.Contains(err.Error(), "23505")
}

// isUUID reporta si s se puede comparar contra una columna UUID.
// Con otro texto Postgres responde 22P02 en lugar de "sin filas".
func isUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}

// nullable convierte "" en NULL.
func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// where arma cláusulas AND con placeholders numerados; cada predicado se agrega solo si aplica.
type where struct {
	clauses []string
	args    []any
}

func newWhere(base string, args ...any) *where {
	return &where{clauses: []string{base}, args: args}
}

// add agrega "<expr> $n" y su argumento. expr termina en el operador (ej. "m.fecha >=").
func (w *where) add(expr string, arg any) {
	w.args = append(w.args, arg)
	w.clauses = append(w.clauses, fmt.Sprintf("%s $%d", expr, len(w.args)))
}

func (w *where) addIf(ok bool, expr string, arg any) {
	if ok {
		w.add(expr, arg)
	}
}

// addExpr agrega una expresión completa; cada %[1]s se reemplaza por el mismo placeholder.
func (w *where) addExpr(format string, arg any) {
	w.args = append(w.args, arg)
	w.clauses = append(w.clauses, fmt.Sprintf(format, fmt.Sprintf("$%d", len(w.args))))
}

func (w *where) addTime(expr string, t *time.Time) {
	if t != nil {
		w.add(expr, *t)
	}
}

func (w *where) String() string {
	return " WHERE " + strings.Join(w.clauses, " AND ")
}

// page agrega LIMIT/OFFSET si limit > 0.
func (w *where) page(limit, offset int) string {
	if limit <= 0 {
		return ""
	}
	w.args = append(w.args, limit, offset)
	return fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(w.args)-1, len(w.args))
}
