package engine

// CancelOrder removes a resting order from its side's queue and marks it
// CANCELLED. MARKET/IOC orders never rest, so in practice only LIMIT
// orders reach the lifecycle guard with a cancellable status; this is
// enforced by status rather than order type.
func (b *Book) CancelOrder(orderID uint64) (Snapshot, error) {
	order, ok := b.registry[orderID]
	if !ok {
		return Snapshot{}, &NotFoundError{OrderID: orderID}
	}
	if !order.resting() {
		return Snapshot{}, validationErrorf("order %d is in terminal status %s and cannot be cancelled", orderID, order.Status)
	}

	b.restingSide(order.Side).Remove(order.OrderID)
	order.Status = Cancelled

	return order.snapshot(), nil
}
