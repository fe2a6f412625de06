package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/SscSPs/sms_budget_tracker/internal/apperrors"
	"github.com/SscSPs/sms_budget_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/sms_budget_tracker/internal/core/ports/repositories"
	"github.com/SscSPs/sms_budget_tracker/internal/models"
	"github.com/SscSPs/sms_budget_tracker/internal/utils/mapping"
	"github.com/SscSPs/sms_budget_tracker/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// uniqueViolation is the Postgres SQLSTATE for unique_violation.
const uniqueViolation = "23505"

const transactionColumns = `
	transaction_id, owner_id, amount, transaction_type, category, merchant, description_excerpt,
	occurred_at, balance_after, source_channel, raw_message, normalized_message,
	is_cash_withdrawal, cash_spending_recorded, withdrawal_id, created_at`

const insertTransactionQuery = `
	INSERT INTO transactions (` + transactionColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);`

// Listings are newest first with created_at and transaction_id as tie-breakers,
// matching the cursor in utils/pagination.
const listOrderBy = `ORDER BY occurred_at DESC, created_at DESC, transaction_id DESC`

type PgxTransactionRepository struct {
	BaseRepository
}

// newPgxTransactionRepository creates a new repository for SMS and manual transactions.
func newPgxTransactionRepository(pool *pgxpool.Pool) portsrepo.TransactionRepositoryWithTx {
	return &PgxTransactionRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxTransactionRepository implements portsrepo.TransactionRepositoryWithTx
var _ portsrepo.TransactionRepositoryWithTx = (*PgxTransactionRepository)(nil)

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row rowScanner) (models.Transaction, error) {
	var m models.Transaction
	err := row.Scan(
		&m.TransactionID,
		&m.OwnerID,
		&m.Amount,
		&m.TransactionType,
		&m.Category,
		&m.Merchant,
		&m.DescriptionExcerpt,
		&m.OccurredAt,
		&m.BalanceAfter,
		&m.SourceChannel,
		&m.RawMessage,
		&m.NormalizedMessage,
		&m.IsCashWithdrawal,
		&m.CashSpendingRecorded,
		&m.WithdrawalID,
		&m.CreatedAt,
	)
	return m, err
}

func insertArgs(m models.Transaction) []any {
	return []any{
		m.TransactionID,
		m.OwnerID,
		m.Amount,
		m.TransactionType,
		m.Category,
		m.Merchant,
		m.DescriptionExcerpt,
		m.OccurredAt,
		m.BalanceAfter,
		m.SourceChannel,
		m.RawMessage,
		m.NormalizedMessage,
		m.IsCashWithdrawal,
		m.CashSpendingRecorded,
		m.WithdrawalID,
		m.CreatedAt,
	}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// SaveTransaction inserts a transaction. The partial unique index on
// (owner_id, normalized_message) turns a concurrent duplicate into ErrDuplicate.
func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	m := mapping.ToModelTransaction(txn)
	if _, err := r.Pool.Exec(ctx, insertTransactionQuery, insertArgs(m)...); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: message already stored", apperrors.ErrDuplicate)
		}
		return apperrors.NewAppError(500, "failed to insert transaction "+m.TransactionID, err)
	}
	return nil
}

// FindTransactionByID retrieves a transaction owned by ownerID.
func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, ownerID, transactionID string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE owner_id = $1 AND transaction_id = $2;`

	m, err := scanTransaction(r.Pool.QueryRow(ctx, query, ownerID, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find transaction by ID "+transactionID, err)
	}
	d := mapping.ToDomainTransaction(m)
	return &d, nil
}

// ListTransactions retrieves a page of transactions using token-based pagination.
func (r *PgxTransactionRepository) ListTransactions(ctx context.Context, ownerID string, filter portsrepo.TransactionFilter, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// We fetch one extra item to determine if there's a next page.
	fetchLimit := limit + 1

	conditions := []string{"owner_id = $1"}
	args := []any{ownerID}
	add := func(cond string, values ...any) {
		placeholders := make([]any, len(values))
		for i, v := range values {
			args = append(args, v)
			placeholders[i] = "$" + strconv.Itoa(len(args))
		}
		conditions = append(conditions, fmt.Sprintf(cond, placeholders...))
	}

	if filter.Category != nil {
		add("category = %s", string(*filter.Category))
	}
	if filter.Type != nil {
		add("transaction_type = %s", string(*filter.Type))
	}
	if filter.From != nil {
		add("occurred_at >= %s", *filter.From)
	}
	if filter.To != nil {
		add("occurred_at < %s", *filter.To)
	}
	if nextToken != nil && *nextToken != "" {
		cursor, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", fmt.Errorf("%w: %v", apperrors.ErrValidation, err))
		}
		// Tuple comparison is concise and efficient in Postgres
		add("(occurred_at, created_at, transaction_id) < (%s, %s, %s)", cursor.OccurredAt, cursor.CreatedAt, cursor.TransactionID)
	}

	args = append(args, fetchLimit)
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE ` + strings.Join(conditions, " AND ") +
		" " + listOrderBy + " LIMIT $" + strconv.Itoa(len(args)) + ";"

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query transactions for owner "+ownerID, err)
	}
	defer rows.Close()

	results := make([]models.Transaction, 0, fetchLimit)
	for rows.Next() {
		m, err := scanTransaction(rows)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan transaction row for owner "+ownerID, err)
		}
		results = append(results, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating transaction rows for owner "+ownerID, err)
	}

	var nextTokenVal *string
	if len(results) > limit {
		// The token points to the last item included in this page.
		last := results[limit-1]
		token := pagination.EncodeToken(last.OccurredAt, last.CreatedAt, last.TransactionID)
		nextTokenVal = &token
		results = results[:limit]
	}

	return mapping.ToDomainTransactionSlice(results), nextTokenVal, nil
}

// ListRawMessages returns the raw text of the owner's SMS transactions, oldest first.
func (r *PgxTransactionRepository) ListRawMessages(ctx context.Context, ownerID string) ([]string, error) {
	query := `
		SELECT raw_message FROM transactions
		WHERE owner_id = $1 AND raw_message IS NOT NULL
		ORDER BY created_at;
	`
	rows, err := r.Pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query raw messages for owner "+ownerID, err)
	}
	messages, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to read raw messages for owner "+ownerID, err)
	}
	return messages, nil
}

// ListPendingWithdrawals returns withdrawals whose cash spending is still open.
func (r *PgxTransactionRepository) ListPendingWithdrawals(ctx context.Context, ownerID string) ([]domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions
		WHERE owner_id = $1 AND is_cash_withdrawal AND NOT cash_spending_recorded ` + listOrderBy + `;`

	rows, err := r.Pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query pending withdrawals for owner "+ownerID, err)
	}
	defer rows.Close()

	results := []models.Transaction{}
	for rows.Next() {
		m, err := scanTransaction(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan pending withdrawal for owner "+ownerID, err)
		}
		results = append(results, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating pending withdrawals for owner "+ownerID, err)
	}
	return mapping.ToDomainTransactionSlice(results), nil
}

// FindLatestWithBalance returns the newest transaction that reported a balance.
func (r *PgxTransactionRepository) FindLatestWithBalance(ctx context.Context, ownerID string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions
		WHERE owner_id = $1 AND balance_after IS NOT NULL ` + listOrderBy + ` LIMIT 1;`

	m, err := scanTransaction(r.Pool.QueryRow(ctx, query, ownerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find latest balance for owner "+ownerID, err)
	}
	d := mapping.ToDomainTransaction(m)
	return &d, nil
}

// UpdateTransactionCategory recategorizes a transaction.
func (r *PgxTransactionRepository) UpdateTransactionCategory(ctx context.Context, ownerID, transactionID string, category domain.Category) error {
	query := `UPDATE transactions SET category = $3 WHERE owner_id = $1 AND transaction_id = $2;`

	tag, err := r.Pool.Exec(ctx, query, ownerID, transactionID, string(category))
	if err != nil {
		return apperrors.NewAppError(500, "failed to update category of transaction "+transactionID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// RecordCashSpending closes the withdrawal and inserts the spending entries in one database transaction.
func (r *PgxTransactionRepository) RecordCashSpending(ctx context.Context, ownerID, withdrawalID string, spending []domain.Transaction) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		// The conditional update doubles as a row lock, so two concurrent
		// requests cannot both close the same withdrawal.
		closeQuery := `
			UPDATE transactions SET cash_spending_recorded = TRUE
			WHERE owner_id = $1 AND transaction_id = $2 AND is_cash_withdrawal AND NOT cash_spending_recorded;
		`
		tag, err := tx.Exec(ctx, closeQuery, ownerID, withdrawalID)
		if err != nil {
			return apperrors.NewAppError(500, "failed to close withdrawal "+withdrawalID, err)
		}
		if tag.RowsAffected() == 0 {
			var exists bool
			existsQuery := `SELECT EXISTS (SELECT 1 FROM transactions WHERE owner_id = $1 AND transaction_id = $2);`
			if err := tx.QueryRow(ctx, existsQuery, ownerID, withdrawalID).Scan(&exists); err != nil {
				return apperrors.NewAppError(500, "failed to look up withdrawal "+withdrawalID, err)
			}
			if !exists {
				return apperrors.ErrNotFound
			}
			return fmt.Errorf("%w: transaction %s is not a pending withdrawal", apperrors.ErrValidation, withdrawalID)
		}

		batch := &pgx.Batch{}
		for _, s := range spending {
			batch.Queue(insertTransactionQuery, insertArgs(mapping.ToModelTransaction(s))...)
		}
		// Close the batch results to surface errors from each command
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("%w: spending entry already stored", apperrors.ErrDuplicate)
			}
			return apperrors.NewAppError(500, "failed to insert cash spending for withdrawal "+withdrawalID, err)
		}
		return nil
	})
}

// DeleteTransaction removes a transaction. Spending entries of a deleted
// withdrawal keep their amounts; their withdrawal_id is cleared by the FK.
func (r *PgxTransactionRepository) DeleteTransaction(ctx context.Context, ownerID, transactionID string) error {
	query := `DELETE FROM transactions WHERE owner_id = $1 AND transaction_id = $2;`

	tag, err := r.Pool.Exec(ctx, query, ownerID, transactionID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete transaction "+transactionID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
