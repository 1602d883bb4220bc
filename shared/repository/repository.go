package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"

	"ecodash/infras/otel"
	"ecodash/infras/postgres"
	"ecodash/shared/constant"
	"ecodash/shared/dto"
	"ecodash/shared/logger"

	"github.com/jmoiron/sqlx"
)

var (
	errRequiredFilter = errors.New("required filter")
)

// querier is satisfied by both *sqlx.DB and *sqlx.Tx.
type querier interface {
	NamedExecContext(ctx context.Context, query string, arg any) (sql.Result, error)
	PrepareNamedContext(ctx context.Context, query string) (*sqlx.NamedStmt, error)
}

// Repository runs named-parameter queries for the rows of one table, mapped
// onto T through its `db` struct tags.
type Repository[T any] struct {
	db      *postgres.Connection
	otel    otel.Otel
	table   string
	entity  string
	primary string
	columns []string
}

func NewRepository[T any](entityName, tableName, primaryColumn string, dbConnection *postgres.Connection, otl otel.Otel) Repository[T] {
	var zero T

	return Repository[T]{
		db:      dbConnection,
		otel:    otl,
		table:   tableName,
		entity:  entityName,
		primary: primaryColumn,
		columns: getColumns(reflect.TypeOf(zero)),
	}
}

func (repo *Repository[T]) scope(ctx context.Context, operation string) (context.Context, otel.Scope) {
	return repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName,
		constant.OtelRepositoryScopeName+"."+repo.entity+"."+operation)
}

func (repo *Repository[T]) fail(scope otel.Scope, action string, err error) error {
	logger.ErrorWithStack(err)
	scope.TraceError(err)

	return fmt.Errorf("failed to %s (%s): %w", action, repo.entity, err)
}

func (repo *Repository[T]) insert(ctx context.Context, exec querier, model T) error {
	ctx, scope := repo.scope(ctx, "insert")
	defer scope.End()

	placeholders := make([]string, len(repo.columns))
	for i, col := range repo.columns {
		placeholders[i] = ":" + col
	}

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", repo.table, strings.Join(repo.columns, ", "), strings.Join(placeholders, ", "))
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	if _, err := exec.NamedExecContext(ctx, query, model); err != nil {
		return repo.fail(scope, "insert data", err)
	}

	return nil
}

func (repo *Repository[T]) InsertTx(ctx context.Context, sqltx *sqlx.Tx, model T) error {
	return repo.insert(ctx, sqltx, model)
}

func (repo *Repository[T]) exist(ctx context.Context, prep querier, filter dto.FilterGroup) (bool, error) {
	ctx, scope := repo.scope(ctx, "exist")
	defer scope.End()

	where, args := repo.BuildWhereClause(filter)
	if where == "" {
		return false, errRequiredFilter
	}

	query := fmt.Sprintf("SELECT EXISTS(SELECT 1 FROM %s%s)", repo.table, where)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	stmt, err := prep.PrepareNamedContext(ctx, query)
	if err != nil {
		return false, repo.fail(scope, "check exist data", err)
	}
	defer stmt.Close()

	var exist bool
	if err = stmt.GetContext(ctx, &exist, args); err != nil {
		return false, repo.fail(scope, "check exist data", err)
	}

	return exist, nil
}

// ExistTx checks existence inside sqltx so the answer reflects rows the
// transaction has locked or written.
func (repo *Repository[T]) ExistTx(ctx context.Context, sqltx *sqlx.Tx, filter dto.FilterGroup) (bool, error) {
	return repo.exist(ctx, sqltx, filter)
}

// Get returns the first row matching filter, or the zero T when none does.
func (repo *Repository[T]) Get(ctx context.Context, filter dto.FilterGroup, columns ...string) (T, error) {
	ctx, scope := repo.scope(ctx, "Get")
	defer scope.End()

	var model T

	where, args := repo.BuildWhereClause(filter)
	query := fmt.Sprintf("SELECT %s FROM %s%s LIMIT 1", repo.getSelectQuery(columns...), repo.table, where)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	stmt, err := repo.db.Read.PrepareNamedContext(ctx, query)
	if err != nil {
		return model, repo.fail(scope, "prepare statement", err)
	}
	defer stmt.Close()

	err = stmt.GetContext(ctx, &model, args)
	if errors.Is(err, sql.ErrNoRows) {
		return model, nil
	}

	if err != nil {
		return model, repo.fail(scope, "get data", err)
	}

	return model, nil
}

// GetAll returns every row matching filter. Rows are ordered by params.SortBy
// when it names a column, then by the primary column so pages are stable.
func (repo *Repository[T]) GetAll(ctx context.Context, params dto.QueryParams, filter dto.FilterGroup, columns ...string) ([]T, error) {
	ctx, scope := repo.scope(ctx, "GetAll")
	defer scope.End()

	where, args := repo.BuildWhereClause(filter)

	var pagination string

	switch {
	case params.Page > 0 && params.Limit > 0:
		args["limit"] = params.Limit
		args["offset"] = (params.Page - 1) * params.Limit
		pagination = " LIMIT :limit OFFSET :offset"
	case params.Limit > 0:
		args["limit"] = params.Limit
		pagination = " LIMIT :limit"
	}

	query := fmt.Sprintf("SELECT %s FROM %s%s%s%s",
		repo.getSelectQuery(columns...), repo.table, where, repo.orderBy(params), pagination)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	models := []T{}

	stmt, err := repo.db.Read.PrepareNamedContext(ctx, query)
	if err != nil {
		return models, repo.fail(scope, "prepare statement", err)
	}
	defer stmt.Close()

	if err = stmt.SelectContext(ctx, &models, args); err != nil {
		return models, repo.fail(scope, "get all data", err)
	}

	return models, nil
}

func (repo *Repository[T]) delete(ctx context.Context, exec querier, filter dto.FilterGroup) error {
	ctx, scope := repo.scope(ctx, "delete")
	defer scope.End()

	where, args := repo.BuildWhereClause(filter)
	if where == "" {
		return errRequiredFilter
	}

	query := fmt.Sprintf("DELETE FROM %s%s", repo.table, where)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	if _, err := exec.NamedExecContext(ctx, query, args); err != nil {
		return repo.fail(scope, "delete data", err)
	}

	return nil
}

// Delete removes every row matching filter. An empty filter is refused.
func (repo *Repository[T]) Delete(ctx context.Context, filter dto.FilterGroup) error {
	return repo.delete(ctx, repo.db.Write, filter)
}

// WithTransaction runs fn inside a write transaction, committing when fn
// returns nil and rolling back otherwise.
func (repo *Repository[T]) WithTransaction(ctx context.Context, fn func(sqltx *sqlx.Tx) error) (err error) {
	ctx, scope := repo.scope(ctx, "WithTransaction")
	defer scope.End()

	sqltx, err := repo.db.Write.BeginTxx(ctx, nil)
	if err != nil {
		return repo.fail(scope, "begin transaction", err)
	}

	defer func() {
		if err == nil {
			return
		}

		if rbErr := sqltx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			logger.ErrorWithStack(rbErr)
		}
	}()

	if err = fn(sqltx); err != nil {
		scope.TraceError(err)

		return err
	}

	if err = sqltx.Commit(); err != nil {
		return repo.fail(scope, "commit transaction", err)
	}

	return nil
}

// LockTx takes a transaction-scoped advisory lock on key. Transactions locking
// the same key run one after another until commit or rollback.
func (repo *Repository[T]) LockTx(ctx context.Context, sqltx *sqlx.Tx, key string) error {
	ctx, scope := repo.scope(ctx, "LockTx")
	defer scope.End()

	const query = "SELECT pg_advisory_xact_lock(hashtext($1))"
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	if _, err := sqltx.ExecContext(ctx, query, repo.lockKey(key)); err != nil {
		return repo.fail(scope, "acquire lock", err)
	}

	return nil
}

func (repo *Repository[T]) lockKey(key string) string {
	return repo.table + constant.CacheKeySeparator + key
}

// BuildWhereClause renders filter as a WHERE clause with a leading space, or
// an empty string when filter has no predicates.
func (repo *Repository[T]) BuildWhereClause(filter dto.FilterGroup) (string, map[string]any) {
	where, args := filter.GetWhereClause()
	if where == "" {
		return "", map[string]any{}
	}

	return " WHERE " + where, args
}

func (repo *Repository[T]) orderBy(params dto.QueryParams) string {
	primary := repo.table + "." + repo.primary + " " + dto.SortDirAsc

	if params.SortBy == "" || params.SortBy == repo.primary || !repo.hasColumn(params.SortBy) {
		return " ORDER BY " + primary
	}

	sortDir := dto.SortDirDesc
	if params.SortDir == dto.SortDirAsc {
		sortDir = dto.SortDirAsc
	}

	return fmt.Sprintf(" ORDER BY %s.%s %s, %s", repo.table, params.SortBy, sortDir, primary)
}

func (repo *Repository[T]) getSelectQuery(only ...string) string {
	selected := make([]string, 0, len(repo.columns))

	for _, col := range repo.columns {
		if len(only) > 0 && !slices.Contains(only, col) {
			continue
		}

		selected = append(selected, repo.table+"."+col)
	}

	return strings.Join(selected, ", ")
}

func (repo *Repository[T]) hasColumn(name string) bool {
	return slices.Contains(repo.columns, name)
}

// getColumns lists the `db` tags of t in field order, descending into
// embedded structs.
func getColumns(t reflect.Type) []string {
	var columns []string

	for i := range t.NumField() {
		field := t.Field(i)

		if field.Anonymous && field.Type.Kind() == reflect.Struct {
			columns = append(columns, getColumns(field.Type)...)

			continue
		}

		if tag := field.Tag.Get("db"); tag != "" && tag != "-" {
			columns = append(columns, tag)
		}
	}

	return columns
}
