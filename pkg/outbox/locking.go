package outbox

import "gorm.io/gorm/clause"

// lockingClause claims outbox rows for a single publisher instance.
func lockingClause() clause.Expression {
	return clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"}
}
