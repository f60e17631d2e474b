package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"bankcore/internal/model"
)

func TestLedgerRepository_Append(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewLedgerRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `accounts`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	entry := &model.LedgerEntry{
		UserID:  1,
		Kind:    model.EntryKindDeposit,
		Amount:  decimal.NewFromInt(100),
		Balance: decimal.NewFromInt(100),
	}
	err := repo.Append(context.Background(), entry)
	require.NoError(t, err)
	assert.Equal(t, uint(1), entry.ID)
	// BeforeCreate assigns the transaction reference.
	assert.NotEmpty(t, entry.Reference)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLedgerRepository_LatestEntry(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewLedgerRepository(db)

	rows := sqlmock.NewRows([]string{"id", "user_id", "type", "amount", "balance"}).
		AddRow(4, 1, "withdrawal", "30.00", "70.00")
	mock.ExpectQuery("SELECT \\* FROM `accounts` WHERE user_id = \\? ORDER BY id DESC").
		WillReturnRows(rows)

	entry, err := repo.LatestEntry(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, uint(4), entry.ID)
	assert.Equal(t, model.EntryKindWithdrawal, entry.Kind)
	assert.True(t, decimal.NewFromInt(70).Equal(entry.Balance))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLedgerRepository_LatestEntry_Empty(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewLedgerRepository(db)

	mock.ExpectQuery("SELECT \\* FROM `accounts` WHERE user_id = \\? ORDER BY id DESC").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "type", "amount", "balance"}))

	entry, err := repo.LatestEntry(context.Background(), 1)
	assert.Nil(t, entry)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLedgerRepository_ListByUser(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewLedgerRepository(db)

	rows := sqlmock.NewRows([]string{"id", "user_id", "type", "amount", "balance"}).
		AddRow(2, 1, "withdrawal", "30.00", "70.00").
		AddRow(1, 1, "deposit", "100.00", "100.00")
	mock.ExpectQuery("SELECT \\* FROM `accounts` WHERE user_id = \\? ORDER BY id DESC").
		WithArgs(1).
		WillReturnRows(rows)

	entries, err := repo.ListByUser(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Greater(t, entries[0].ID, entries[1].ID)
	assert.Equal(t, model.EntryKindWithdrawal, entries[0].Kind)
	assert.Equal(t, model.EntryKindDeposit, entries[1].Kind)
	assert.NoError(t, mock.ExpectationsWereMet())
}
