package postgresql

import (
	"context"

	"github.com/simagang/presensi-backend-go/internal/pkg/database"
)

// GetQuerier returns the transaction carried by ctx, or the pool.
// Repositories call this so the same method works inside and outside a
// database.TxManager unit of work.
func GetQuerier(ctx context.Context, db *database.DB) database.Querier {
	if tx, ok := database.TxFromContext(ctx); ok {
		return tx
	}
	return db.Pool
}
