package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/inventory"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
)

// creditOrderLines returns the stock behind each order line to the owner's
// pool, logging one "order_cancelled" entry per line. A missing stock record
// is a data-integrity gap and fails the whole restock rather than being
// silently skipped.
func creditOrderLines(
	ctx context.Context,
	invRepo ports.InventoryRepository,
	o *order.Order,
	actorID kernel.UUID,
) error {
	for _, line := range o.Lines() {
		record, err := invRepo.GetForUpdate(ctx, o.Owner(), line.ProductID)
		if err != nil {
			return err
		}
		if err = record.Credit(line.Quantity, actorID, inventory.ActionOrderCancelled); err != nil {
			return err
		}
		if err = invRepo.Update(ctx, record); err != nil {
			return err
		}
	}
	return nil
}
