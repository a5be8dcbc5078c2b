// Package repository implements persistence for provisioned custodial
// accounts. Repositories support both PostgreSQL and MySQL.
package repository

import (
	"context"
	"database/sql"

	apperrors "github.com/syteworks/stellar-custody/internal/errors"
	walletDomain "github.com/syteworks/stellar-custody/internal/wallet/domain"
)

// PostgreSQLAccountRepository implements Account persistence for PostgreSQL.
type PostgreSQLAccountRepository struct {
	db *sql.DB
}

// NewPostgreSQLAccountRepository creates a PostgreSQL-backed account repository.
func NewPostgreSQLAccountRepository(db *sql.DB) *PostgreSQLAccountRepository {
	return &PostgreSQLAccountRepository{db: db}
}

// Create inserts a provisioned account record.
func (p *PostgreSQLAccountRepository) Create(ctx context.Context, account *walletDomain.Account) error {
	query := `INSERT INTO wallet_accounts (id, public_key, encrypted_secret, transaction_hash, trustline_added, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := p.db.ExecContext(
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
func (p *PostgreSQLAccountRepository) GetByPublicKey(
	ctx context.Context,
	publicKey string,
) (*walletDomain.Account, error) {
	query := `SELECT id, public_key, encrypted_secret, transaction_hash, trustline_added, created_at
			  FROM wallet_accounts
			  WHERE public_key = $1`

	var account walletDomain.Account
	err := p.db.QueryRowContext(ctx, query, publicKey).Scan(
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
