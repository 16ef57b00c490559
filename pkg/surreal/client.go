package surreal

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/surrealdb/surrealdb.go"
)

type Client struct {
	db *surrealdb.DB
}

// identifierRegex ensures that table names and fields only contain alphanumeric characters and underscores
var identifierRegex = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)

func validateIdentifier(s string) error {
	if !identifierRegex.MatchString(s) {
		return fmt.Errorf("invalid identifier: %s", s)
	}
	return nil
}

func NewClient(ctx context.Context, host, user, pass, namespace, database string) (*Client, error) {
	db, err := surrealdb.New(host)
	if err != nil {
		return nil, fmt.Errorf("failed to create surrealdb client: %w", err)
	}

	if _, err = db.SignIn(ctx, map[string]interface{}{
		"user": user,
		"pass": pass,
	}); err != nil {
		db.Close(ctx)
		return nil, fmt.Errorf("failed to signin to surrealdb: %w", err)
	}

	if err = db.Use(ctx, namespace, database); err != nil {
		db.Close(ctx)
		return nil, fmt.Errorf("failed to use surrealdb namespace/database: %w", err)
	}

	return &Client{db: db}, nil
}

func (c *Client) Close(ctx context.Context) {
	c.db.Close(ctx)
}

// SelectWhere runs a SELECT of the given fields from table filtered by
// equality on every filter key, and decodes the rows into T.
func SelectWhere[T any](ctx context.Context, c *Client, table string, fields []string, filter map[string]interface{}) ([]T, error) {
	query, err := buildSelect(table, fields, filter)
	if err != nil {
		return nil, err
	}

	vars := make(map[string]interface{}, len(filter))
	for k, v := range filter {
		vars[k] = v
	}

	results, err := surrealdb.Query[[]T](ctx, c.db, query, vars)
	if err != nil {
		return nil, fmt.Errorf("surreal query failed: %w", err)
	}
	if results == nil || len(*results) == 0 {
		return nil, nil
	}

	// single statement, single result set
	last := (*results)[len(*results)-1]
	if last.Status != "" && last.Status != "OK" {
		return nil, fmt.Errorf("surreal query status %s", last.Status)
	}
	return last.Result, nil
}

// Exec runs a statement whose result is not needed, such as schema setup or
// seeding.
func (c *Client) Exec(ctx context.Context, sql string, vars map[string]interface{}) error {
	if vars == nil {
		vars = map[string]interface{}{}
	}
	if _, err := surrealdb.Query[interface{}](ctx, c.db, sql, vars); err != nil {
		return fmt.Errorf("surreal exec failed: %w", err)
	}
	return nil
}

func buildSelect(table string, fields []string, filter map[string]interface{}) (string, error) {
	if err := validateIdentifier(table); err != nil {
		return "", err
	}

	projection := "*"
	if len(fields) > 0 {
		for _, f := range fields {
			if err := validateIdentifier(f); err != nil {
				return "", err
			}
		}
		projection = strings.Join(fields, ", ")
	}

	where, err := buildWhereClause(filter)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("SELECT %s FROM %s WHERE %s;", projection, table, where), nil
}

func buildWhereClause(filter map[string]interface{}) (string, error) {
	if len(filter) == 0 {
		return "true", nil
	}

	keys := make([]string, 0, len(filter))
	for k := range filter {
		if err := validateIdentifier(k); err != nil {
			return "", err
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	clauses := make([]string, len(keys))
	for i, k := range keys {
		clauses[i] = fmt.Sprintf("%s = $%s", k, k)
	}
	return strings.Join(clauses, " AND "), nil
}
