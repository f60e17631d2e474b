package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"bankcore/internal/errors"
	"bankcore/internal/model"
	"bankcore/internal/repository"
)

// LedgerService handles deposits, withdrawals and transaction history.
type LedgerService interface {
	LatestBalance(ctx context.Context, userID uint) (decimal.Decimal, error)
	Deposit(ctx context.Context, userID uint, amount decimal.Decimal) (decimal.Decimal, error)
	Withdraw(ctx context.Context, userID uint, amount decimal.Decimal) (decimal.Decimal, error)
	History(ctx context.Context, userID uint) ([]model.LedgerEntry, error)
}

type ledgerService struct {
	ledgerRepo repository.LedgerRepository
	// Mutex map for per-user locking: reading the latest balance and
	// appending the next entry must not interleave for the same user, or
	// two concurrent writes would both build on the same stale balance.
	userMutexes sync.Map
}

// NewLedgerService creates a new ledger service.
func NewLedgerService(ledgerRepo repository.LedgerRepository) LedgerService {
	return &ledgerService{ledgerRepo: ledgerRepo}
}

// getMutex returns the mutex for a specific user ID.
func (s *ledgerService) getMutex(userID uint) *sync.Mutex {
	value, _ := s.userMutexes.LoadOrStore(userID, &sync.Mutex{})
	return value.(*sync.Mutex)
}

// LatestBalance returns the balance of the newest ledger entry for the user,
// or zero when the user has no entries.
func (s *ledgerService) LatestBalance(ctx context.Context, userID uint) (decimal.Decimal, error) {
	entry, err := s.ledgerRepo.LatestEntry(ctx, userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return decimal.Zero, nil
		}
		return decimal.Zero, fmt.Errorf("latest entry: %w", err)
	}
	return entry.Balance, nil
}

// Deposit appends a deposit entry and returns the new balance.
func (s *ledgerService) Deposit(ctx context.Context, userID uint, amount decimal.Decimal) (decimal.Decimal, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, errors.ErrInvalidAmount
	}

	mutex := s.getMutex(userID)
	mutex.Lock()
	defer mutex.Unlock()

	balance, err := s.LatestBalance(ctx, userID)
	if err != nil {
		return decimal.Zero, err
	}

	newBalance := balance.Add(amount)
	entry := &model.LedgerEntry{
		UserID:  userID,
		Kind:    model.EntryKindDeposit,
		Amount:  amount,
		Balance: newBalance,
	}
	if err := s.ledgerRepo.Append(ctx, entry); err != nil {
		return decimal.Zero, fmt.Errorf("append deposit: %w", err)
	}

	return newBalance, nil
}

// Withdraw appends a withdrawal entry and returns the new balance. A
// withdrawal that would overdraw fails; the balance is never clamped.
func (s *ledgerService) Withdraw(ctx context.Context, userID uint, amount decimal.Decimal) (decimal.Decimal, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, errors.ErrInvalidAmount
	}

	mutex := s.getMutex(userID)
	mutex.Lock()
	defer mutex.Unlock()

	balance, err := s.LatestBalance(ctx, userID)
	if err != nil {
		return decimal.Zero, err
	}

	if amount.GreaterThan(balance) {
		return decimal.Zero, errors.ErrInsufficientFunds
	}

	newBalance := balance.Sub(amount)
	entry := &model.LedgerEntry{
		UserID:  userID,
		Kind:    model.EntryKindWithdrawal,
		Amount:  amount,
		Balance: newBalance,
	}
	if err := s.ledgerRepo.Append(ctx, entry); err != nil {
		return decimal.Zero, fmt.Errorf("append withdrawal: %w", err)
	}

	return newBalance, nil
}

// History returns the user's ledger entries, newest first.
func (s *ledgerService) History(ctx context.Context, userID uint) ([]model.LedgerEntry, error) {
	entries, err := s.ledgerRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	if entries == nil {
		// render an empty JSON array, not null
		entries = []model.LedgerEntry{}
	}
	return entries, nil
}
