// Package repository contains data access logic separated from HTTP handlers.
// This file holds the queries for the clients table.
package repository

import (
	"context"      // context allows passing deadlines and cancellation signals to DB operations
	"database/sql" // sql provides generic database operations and drivers
	"errors"
	"fmt"

	"github.com/iliyamo/client-accounts/internal/model"
)

// ClientRepo encapsulates all database queries related to clients.  It
// depends on a sql.DB connection which is opened and closed by the caller.
// Queries only use `?` placeholders and portable SQL so the same repository
// runs on MySQL and SQLite.
type ClientRepo struct {
	db *sql.DB // db is the underlying database connection pool
}

// NewClientRepo constructs a ClientRepo with the provided DB handle.
func NewClientRepo(db *sql.DB) *ClientRepo {
	return &ClientRepo{db: db}
}

// Create inserts a new client.  ErrDuplicateKey is returned when the account
// number is already taken.
func (r *ClientRepo) Create(ctx context.Context, c *model.Client) error {
	const q = "INSERT INTO clients (num_compte, nom, solde) VALUES (?, ?, ?)"
	if _, err := r.db.ExecContext(ctx, q, c.NumCompte, c.Nom, c.Solde); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("insert client %d: %w", c.NumCompte, ErrDuplicateKey)
		}
		return fmt.Errorf("insert client %d: %w", c.NumCompte, err)
	}
	return nil
}

// List returns every client ordered by account number.  The result is never
// nil so it encodes as an empty JSON array.
func (r *ClientRepo) List(ctx context.Context) ([]model.Client, error) {
	const q = "SELECT num_compte, nom, solde FROM clients ORDER BY num_compte"
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	defer rows.Close()

	out := []model.Client{}
	for rows.Next() {
		var (
			c     model.Client
			nom   sql.NullString
			solde sql.NullFloat64
		)
		if err := rows.Scan(&c.NumCompte, &nom, &solde); err != nil {
			return nil, fmt.Errorf("scan client: %w", err)
		}
		c.Nom, c.Solde = nom.String, solde.Float64
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	return out, nil
}

// Update overwrites nom and solde for numCompte without checking existence
// first.  ErrClientNotFound is returned when no row matched.  On MySQL this
// relies on the connection reporting matched rather than changed rows (see
// database.Open), so rewriting identical values still counts as a match.
func (r *ClientRepo) Update(ctx context.Context, numCompte int64, nom string, solde float64) error {
	const q = "UPDATE clients SET nom = ?, solde = ? WHERE num_compte = ?"
	res, err := r.db.ExecContext(ctx, q, nom, solde, numCompte)
	if err != nil {
		return fmt.Errorf("update client %d: %w", numCompte, err)
	}
	if err := matchedOne(res); err != nil {
		return fmt.Errorf("update client %d: %w", numCompte, err)
	}
	return nil
}

// Delete removes the client.  ErrClientNotFound is returned when no row was
// removed.
func (r *ClientRepo) Delete(ctx context.Context, numCompte int64) error {
	const q = "DELETE FROM clients WHERE num_compte = ?"
	res, err := r.db.ExecContext(ctx, q, numCompte)
	if err != nil {
		return fmt.Errorf("delete client %d: %w", numCompte, err)
	}
	if err := matchedOne(res); err != nil {
		return fmt.Errorf("delete client %d: %w", numCompte, err)
	}
	return nil
}

// matchedOne reports ErrClientNotFound when res touched no row.
func matchedOne(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return ErrClientNotFound
	}
	return nil
}

// Summary computes min, max and total balance in a single query.  The
// aggregates are NULL on an empty table; they are reported as zero.
func (r *ClientRepo) Summary(ctx context.Context) (model.BalanceSummary, error) {
	const q = "SELECT MIN(solde), MAX(solde), SUM(solde) FROM clients"
	var minV, maxV, total sql.NullFloat64
	if err := r.db.QueryRowContext(ctx, q).Scan(&minV, &maxV, &total); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.BalanceSummary{}, nil
		}
		return model.BalanceSummary{}, fmt.Errorf("balance summary: %w", err)
	}
	return model.BalanceSummary{Min: minV.Float64, Max: maxV.Float64, Total: total.Float64}, nil
}
