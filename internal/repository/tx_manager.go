package repository

import "context"

// Repositories bound to one transaction. Order placement runs header insert,
// line inserts and stock decrements against the same tx.
type TxRepos interface {
	Orders() OrderRepository
	OrderItems() OrderItemRepository
	Inventory() InventoryRepository
}

// Hides begin/commit/rollback from the usecase layer. fn returning an error
// rolls the whole unit of work back.
type TransactionManager interface {
	WithinTx(ctx context.Context, fn func(r TxRepos) error) error
}
