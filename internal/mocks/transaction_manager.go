// Package mocks provides hand-written test doubles for the repository and
// domain service interfaces.
package mocks

import (
	"context"

	"foodflex/internal/domain/repository"
)

// TransactionManager is a pass-through fake: Execute invokes the callback
// with the configured factory and returns its error. No real transaction is
// involved, so tests exercise the business logic directly.
type TransactionManager struct {
	Factory repository.RepositoryFactory
}

// Execute runs fn against the configured factory.
func (m *TransactionManager) Execute(_ context.Context, fn func(repository.RepositoryFactory) error) error {
	return fn(m.Factory)
}

// RepositoryFactory hands out the configured repository doubles.
type RepositoryFactory struct {
	CreditAccounts repository.CreditAccountRepository
	CreditHistory  repository.CreditHistoryRepository
	Orders         repository.OrderRepository
	Products       repository.ProductRepository
	Carts          repository.CartRepository
	SellerProfiles repository.SellerProfileRepository
}

// NewCreditAccountRepository returns the configured credit account repository.
func (f *RepositoryFactory) NewCreditAccountRepository() repository.CreditAccountRepository {
	return f.CreditAccounts
}

// NewCreditHistoryRepository returns the configured credit history repository.
func (f *RepositoryFactory) NewCreditHistoryRepository() repository.CreditHistoryRepository {
	return f.CreditHistory
}

// NewOrderRepository returns the configured order repository.
func (f *RepositoryFactory) NewOrderRepository() repository.OrderRepository {
	return f.Orders
}

// NewProductRepository returns the configured product repository.
func (f *RepositoryFactory) NewProductRepository() repository.ProductRepository {
	return f.Products
}

// NewCartRepository returns the configured cart repository.
func (f *RepositoryFactory) NewCartRepository() repository.CartRepository {
	return f.Carts
}

// NewSellerProfileRepository returns the configured seller profile repository.
func (f *RepositoryFactory) NewSellerProfileRepository() repository.SellerProfileRepository {
	return f.SellerProfiles
}
