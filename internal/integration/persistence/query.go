// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/ledger-backoffice/backend/internal/application/adapter"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds a lowercase LIKE pattern matching keyword anywhere.
// Use it with `LIKE ? ESCAPE '\'`.
func containsPattern(keyword string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(keyword)) + "%"
}

func paginate(query *gorm.DB, pagination adapter.Pagination) *gorm.DB {
	return query.Offset(pagination.Offset()).Limit(pagination.Limit)
}

func isDuplicateKey(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
