package repository

import (
	"context"
	"database/sql"

	apperrors "github.com/syteworks/stellar-custody/internal/errors"
	walletDomain "github.com/syteworks/stellar-custody/internal/wallet/domain"
)

// MySQLAccountRepository implements Account persistence for MySQL.
type MySQLAccountRepository struct {
	db *sql.DB
}

// NewMySQLAccountRepository creates a MySQL-backed account repository.
func NewMySQLAccountRepository(db *sql.DB) *MySQLAccountRepository {
	return &MySQLAccountRepository{db: db}
}

// Create inserts a provisioned account record.
func (m *MySQLAccountRepository) Create(ctx context.Context, account *walletDomain.Account) error {
	query := `INSERT INTO wallet_accounts (id, public_key, encrypted_secret, transaction_hash, trustline_added, created_at)
			  VALUES (?, ?, ?, ?, ?, ?)`

	_, err := m.db.ExecContext(
		ctx,
		query,
		account.ID,
		account.PublicKey,
		account.EncryptedSecret,
		account.TransactionHash,
		account.TrustlineAdded,
		account.CreatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create wallet account")
	}
	return nil
}

// GetByPublicKey retrieves an account record by its Stellar public key.
func (m *MySQLAccountRepository) GetByPublicKey(
	ctx context.Context,
	publicKey string,
) (*walletDomain.Account, error) {
	query := `SELECT id, public_key, encrypted_secret, transaction_hash, trustline_added, created_at
			  FROM wallet_accounts
			  WHERE public_key = ?`

	var account walletDomain.Account
	err := m.db.QueryRowContext(ctx, query, publicKey).Scan(
		&account.ID,
		&account.PublicKey,
		&account.EncryptedSecret,
		&account.TransactionHash,
		&account.TrustlineAdded,
		&account.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get wallet account by public key")
	}

	return &account, nil
}
