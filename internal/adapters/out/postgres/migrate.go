package postgres

import (
	"fmt"

	"fulfillment/internal/adapters/out/postgres/assignmentrepo"
	"fulfillment/internal/adapters/out/postgres/attemptrepo"
	"fulfillment/internal/adapters/out/postgres/batchrepo"
	"fulfillment/internal/adapters/out/postgres/codrepo"
	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/adapters/out/postgres/returnrepo"

	"gorm.io/gorm"
)

// Tables lists every table owned by the service, children after parents.
var Tables = []string{
	"orders", "order_items", "shipping_attempts", "batches",
	"cod_records", "cod_transfers", "return_requests", "staff_assignments",
}

// Migrate creates or updates the schema, including the partial unique indexes
// gorm tags cannot express.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.LineItemDTO{},
		&attemptrepo.AttemptDTO{},
		&batchrepo.BatchDTO{},
		&codrepo.RecordDTO{},
		&codrepo.TransferDTO{},
		&returnrepo.RequestDTO{},
		&assignmentrepo.HoldingDTO{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	statements := []string{
		fmt.Sprintf(`CREATE UNIQUE INDEX IF NOT EXISTS ux_shipping_attempts_active_order
			ON shipping_attempts (order_id) WHERE status NOT IN (%s)`, intList(attemptrepo.TerminalStatuses())),
		fmt.Sprintf(`CREATE UNIQUE INDEX IF NOT EXISTS ux_return_requests_active_order
			ON return_requests (order_id) WHERE status IN (%s)`, intList(returnrepo.ActiveStatuses())),
	}
	for _, stmt := range statements {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("create index: %w", err)
		}
	}

	return nil
}

func intList(values []int) string {
	out := ""
	for i, v := range values {
		if i > 0 {
			out += ", "
		}
		out += fmt.Sprint(v)
	}
	return out
}
