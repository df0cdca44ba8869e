package repository

import "context"

// TransactionManager defines the interface for managing database transactions.
// This allows the use case layer to handle transactions without depending on a specific DB driver like GORM.
//
// Every mutating operation of the order/credit/stock lifecycle (checkout,
// confirm, complete, cancel, repayment, limit increase) runs inside a single
// Execute call so that either all of its row updates persist or none do.
type TransactionManager interface {
	// Execute runs a function within a database transaction.
	// If the function returns an error, the transaction is rolled back. Otherwise, it's committed.
	// All repository operations within the function will use the same database transaction.
	Execute(ctx context.Context, fn func(txRepoFactory RepositoryFactory) error) error
}

// RepositoryFactory provides a way to get repository instances that are bound to a specific transaction.
// This ensures all repository operations within a transaction use the same database connection.
type RepositoryFactory interface {
	// NewCreditAccountRepository returns a CreditAccountRepository bound to the current transaction.
	NewCreditAccountRepository() CreditAccountRepository

	// NewCreditHistoryRepository returns a CreditHistoryRepository bound to the current transaction.
	NewCreditHistoryRepository() CreditHistoryRepository

	// NewOrderRepository returns an OrderRepository bound to the current transaction.
	NewOrderRepository() OrderRepository

	// NewProductRepository returns a ProductRepository bound to the current transaction.
	NewProductRepository() ProductRepository

	// NewCartRepository returns a CartRepository bound to the current transaction.
	NewCartRepository() CartRepository

	// NewSellerProfileRepository returns a SellerProfileRepository bound to the current transaction.
	NewSellerProfileRepository() SellerProfileRepository
}
