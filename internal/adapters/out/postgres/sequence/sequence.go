// Package sequence reserves identifiers from the bigserial sequences behind each table.
package sequence

import (
	"context"

	"textile/internal/adapters/out/postgres/pgerr"
	"textile/internal/core/domain/model/kernel"

	"gorm.io/gorm"
)

// Next returns the next value of the id sequence of table. Values are never
// handed out twice, even when the transaction that reserved them rolls back.
func Next(ctx context.Context, db *gorm.DB, table string) (kernel.ID, error) {
	var value int64
	err := db.WithContext(ctx).
		Raw("SELECT nextval(pg_get_serial_sequence(?, 'id'))", table).
		Scan(&value).Error
	if err != nil {
		return kernel.ID{}, pgerr.Translate(err, "next id", table, nil)
	}
	return kernel.NewID(value)
}
