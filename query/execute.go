package query

import (
	"context"
	"strings"
	"time"

	"github.com/gertd/go-pluralize"
	"github.com/rs/zerolog"
	"github.com/spf13/cast"

	"github.com/Konsultn-Engineering/sqlbridge/database"
)

var pluralizer = pluralize.NewClient()

// readKeywords start raw statements that return rows.
var readKeywords = map[string]bool{
	"SELECT":   true,
	"SHOW":     true,
	"WITH":     true,
	"EXPLAIN":  true,
	"DESCRIBE": true,
	"PRAGMA":   true,
	"VALUES":   true,
}

// Result is the outcome of one Execute. Records is set for statements that
// return rows; RowsAffected and LastInsertID for the rest.
type Result struct {
	Kind         Kind
	Records      []database.Record
	RowsAffected int64
	LastInsertID int64
}

// Execute runs the pending statement. Whatever the outcome, the builder is
// reset to SELECT * FROM table before Execute returns.
func (b *Builder) Execute(ctx context.Context) (*Result, error) {
	defer b.reset()

	sql, params, err := b.ToSQL()
	if err != nil {
		return nil, err
	}

	kind := b.head.kind()
	start := time.Now()
	log := zerolog.Ctx(ctx)

	if returnsRows(kind, sql) {
		rows, err := b.db.QueryContext(ctx, sql, params...)
		if err != nil {
			return nil, b.fail(ctx, "query", sql, params, err)
		}
		records, err := database.ScanRecords(rows)
		if err != nil {
			return nil, b.fail(ctx, "query", sql, params, err)
		}

		log.Debug().
			Str("kind", kind.String()).
			Str("sql", sql).
			Int("params", len(params)).
			Dur("duration", time.Since(start)).
			Msg(pluralizer.Pluralize("row", len(records), true))

		return &Result{Kind: kind, Records: records}, nil
	}

	res, err := b.db.ExecContext(ctx, sql, params...)
	if err != nil {
		return nil, b.fail(ctx, "exec", sql, params, err)
	}

	out := &Result{Kind: kind}
	if out.RowsAffected, err = res.RowsAffected(); err != nil {
		return nil, b.fail(ctx, "exec", sql, params, err)
	}
	// Not every backend reports insert ids.
	if id, err := res.LastInsertId(); err == nil {
		out.LastInsertID = id
	}

	log.Debug().
		Str("kind", kind.String()).
		Str("sql", sql).
		Int("params", len(params)).
		Dur("duration", time.Since(start)).
		Msg(pluralizer.Pluralize("row", int(out.RowsAffected), true) + " affected")

	return out, nil
}

// Count runs SELECT COUNT(*) AS count with the pending modifiers and returns
// the count. An empty result counts as zero.
func (b *Builder) Count(ctx context.Context) (int64, error) {
	b.head = &selectHead{count: true}

	res, err := b.Execute(ctx)
	if err != nil {
		return 0, err
	}
	if len(res.Records) == 0 {
		return 0, nil
	}
	return cast.ToInt64E(res.Records[0]["count"])
}

func (b *Builder) fail(ctx context.Context, op, sql string, params []any, err error) error {
	zerolog.Ctx(ctx).Debug().
		Err(err).
		Str("op", op).
		Str("sql", sql).
		Msg("statement failed")

	return &QueryError{Op: op, SQL: sql, Args: params, Err: err}
}

func returnsRows(kind Kind, sql string) bool {
	switch kind {
	case KindSelect:
		return true
	case KindRaw:
		fields := strings.Fields(sql)
		if len(fields) == 0 {
			return false
		}
		return readKeywords[strings.ToUpper(strings.TrimLeft(fields[0], "("))]
	default:
		return false
	}
}
