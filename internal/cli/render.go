package cli

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Konsultn-Engineering/sqlbridge/dialect"
	"github.com/Konsultn-Engineering/sqlbridge/query"
)

type renderOptions struct {
	table       string
	mode        string
	columns     []string
	where       []string
	set         []string
	order       string
	page        string
	dialect     string
	interpolate bool
}

func newRenderCmd() *cobra.Command {
	opts := &renderOptions{}

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Print the SQL and parameters a builder chain produces",
		Example: `  sqlbridge render --table items --where id=5
  sqlbridge render --table items --mode update --set name=pen --where id=5 --interpolate
  sqlbridge render --table items --order created_at:desc --page 10:3 --dialect postgres`,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := opts.build()
			if err != nil {
				return err
			}

			if opts.interpolate {
				if err := b.Err(); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), b.Interpolated())
				return nil
			}

			sql, params, err := b.ToSQL()
			if err != nil {
				return err
			}
			encoded, err := json.Marshal(params)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, sql)
			fmt.Fprintln(out, string(encoded))
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.table, "table", "t", "", "table name (required)")
	f.StringVarP(&opts.mode, "mode", "m", "select", "select, count, max-id, insert, update or delete")
	f.StringSliceVar(&opts.columns, "columns", nil, "columns to select")
	f.StringArrayVarP(&opts.where, "where", "w", nil, "column=value filter, repeatable")
	f.StringArrayVarP(&opts.set, "set", "s", nil, "column=value for insert or update, repeatable")
	f.StringVar(&opts.order, "order", "", "field:asc or field:desc")
	f.StringVar(&opts.page, "page", "", "pageSize:pageNum")
	f.StringVar(&opts.dialect, "dialect", "mysql", "mysql, postgres or sqlite")
	f.BoolVar(&opts.interpolate, "interpolate", false, "inline parameters for reading (never execute the output)")
	_ = cmd.MarkFlagRequired("table")

	return cmd
}

func (o *renderOptions) build() (*query.Builder, error) {
	b := query.New(nil, dialect.ByName(o.dialect)).Table(o.table)

	data := query.NewData()
	for _, kv := range o.set {
		k, v, ok := strings.Cut(kv, "=")
		if !ok {
			return nil, fmt.Errorf("--set %q: expected column=value", kv)
		}
		data.Set(k, v)
	}

	switch o.mode {
	case "select":
		b.Select(o.columns)
	case "count":
		b.Select(o.columns, query.WithCount())
	case "max-id":
		b.Select(o.columns, query.WithMaxID())
	case "insert":
		b.Insert(data)
	case "update":
		b.Update(data)
	case "delete":
		b.Delete()
	default:
		return nil, fmt.Errorf("unknown mode %q", o.mode)
	}

	if len(o.where) > 0 {
		raw := make([][]any, 0, len(o.where))
		for _, kv := range o.where {
			k, v, ok := strings.Cut(kv, "=")
			if !ok {
				return nil, fmt.Errorf("--where %q: expected column=value", kv)
			}
			raw = append(raw, []any{k, v})
		}
		conds, err := query.ParseConditions(raw)
		if err != nil {
			return nil, err
		}
		b.Where(conds...)
	}

	if o.order != "" {
		field, dir, _ := strings.Cut(o.order, ":")
		b.OrderBy(field, dir)
	}

	if o.page != "" {
		size, num, err := parsePage(o.page)
		if err != nil {
			return nil, err
		}
		b.Limit(size, num)
	}

	return b, nil
}

func parsePage(s string) (int, int, error) {
	sizeStr, numStr, ok := strings.Cut(s, ":")
	if !ok {
		return 0, 0, fmt.Errorf("--page %q: expected pageSize:pageNum", s)
	}
	size, err := strconv.Atoi(sizeStr)
	if err != nil {
		return 0, 0, fmt.Errorf("--page %q: %w", s, err)
	}
	num, err := strconv.Atoi(numStr)
	if err != nil {
		return 0, 0, fmt.Errorf("--page %q: %w", s, err)
	}
	return size, num, nil
}
