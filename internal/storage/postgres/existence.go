package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/joshu-sajeev/staybook/middleware"
)

// lookupColumns lists the table.column pairs exists= rules may query.
var lookupColumns = map[string]struct{}{
	"hotel_rooms:room_id":           {},
	"payment_methods:pay_method_id": {},
}

// ExistenceChecker answers exists= validation rules from the database.
type ExistenceChecker struct {
	db *gorm.DB
}

func NewExistenceChecker(db *gorm.DB) *ExistenceChecker {
	return &ExistenceChecker{db: db}
}

var _ middleware.ExistenceChecker = (*ExistenceChecker)(nil)

func (c *ExistenceChecker) Exists(ctx context.Context, table, column string, value any) (bool, error) {
	if _, ok := lookupColumns[table+":"+column]; !ok {
		return false, fmt.Errorf("exists: %s.%s is not a lookup column", table, column)
	}

	var count int64
	err := c.db.WithContext(ctx).
		Table(table).
		Where(clause.Eq{Column: clause.Column{Name: column}, Value: value}).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("exists %s.%s: %w", table, column, err)
	}
	return count > 0, nil
}
