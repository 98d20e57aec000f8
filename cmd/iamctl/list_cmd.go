package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/go-faster/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/iota-uz/iam-console/modules/iam"
	"github.com/iota-uz/iam-console/pkg/listing"
)

type listOptions struct {
	Search  string
	Filters []string
	Sort    string
	Page    int
	Limit   int
	Output  string
}

func newListCmd(global *globalOptions) *cobra.Command {
	var opts listOptions
	slugs := make([]string, 0, len(iam.Entities()))
	for _, e := range iam.Entities() {
		slugs = append(slugs, e.Slug)
	}

	cmd := &cobra.Command{
		Use:       "list <entity>",
		Short:     "List an entity through the JSON API",
		Long:      "List an entity through the JSON API.\n\nEntities: " + strings.Join(slugs, ", "),
		Args:      cobra.ExactArgs(1),
		ValidArgs: slugs,
		RunE: func(cmd *cobra.Command, args []string) error {
			entity, ok := iam.LookupEntity(args[0])
			if !ok {
				return errors.Errorf("unknown entity %q (expected one of %s)", args[0], strings.Join(slugs, ", "))
			}
			query, err := opts.query(entity.Descriptor)
			if err != nil {
				return err
			}
			client := newAPIClient(global.apiURL(), global.Timeout, global.Debug)

			ctx, cancel := context.WithTimeout(cmd.Context(), global.Timeout)
			defer cancel()
			view, err := runList(ctx, entity.Descriptor, client.fetcher(entity.Slug), query)
			if err != nil {
				return err
			}
			if opts.Output == "json" {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(map[string]any{"rows": view.Rows, "total": view.Total})
			}
			return printTable(cmd.OutOrStdout(), entity.Columns, view)
		},
	}

	cmd.Flags().StringVar(&opts.Search, "search", "", "search term")
	cmd.Flags().StringArrayVar(&opts.Filters, "filter", nil, "filter as key=value[,value] (repeatable)")
	cmd.Flags().StringVar(&opts.Sort, "sort", "", "sort as field[:asc|desc]")
	cmd.Flags().IntVar(&opts.Page, "page", 1, "page number, starting at 1")
	cmd.Flags().IntVar(&opts.Limit, "limit", 0, "page size (default: the entity's page size)")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "table", "table or json")
	return cmd
}

// query turns the flags into the list page's URL query. Unknown filters and
// unsortable fields are rejected here rather than silently dropped.
func (o listOptions) query(desc *listing.Descriptor) (url.Values, error) {
	q := url.Values{}
	if s := strings.TrimSpace(o.Search); s != "" {
		q.Set(desc.SearchParam, s)
	}
	for _, raw := range o.Filters {
		key, value, ok := strings.Cut(raw, "=")
		if !ok || key == "" {
			return nil, errors.Errorf("filter %q: expected key=value", raw)
		}
		if _, known := desc.Filter(key); !known {
			return nil, errors.Errorf("filter %q: unknown key %q", raw, key)
		}
		q.Add(key, value)
	}
	if o.Sort != "" {
		field, order, _ := strings.Cut(o.Sort, ":")
		if !desc.IsSortable(field) {
			return nil, errors.Errorf("sort %q: %q is not sortable", o.Sort, field)
		}
		switch strings.ToLower(order) {
		case "", listing.SortAsc, listing.SortDesc:
		default:
			return nil, errors.Errorf("sort %q: order must be asc or desc", o.Sort)
		}
		if order == "" {
			order = listing.SortAsc
		}
		q.Set(listing.ParamSortBy, field)
		q.Set(listing.ParamSortOrder, strings.ToLower(order))
	}
	if o.Page > 1 {
		q.Set(listing.ParamPage, strconv.Itoa(o.Page))
	}
	if o.Limit > 0 {
		q.Set(listing.ParamLimit, strconv.Itoa(o.Limit))
	}
	return q, nil
}

// runList drives a listing controller once over query, the way a list page does.
func runList(ctx context.Context, desc *listing.Descriptor, fetcher listing.Fetcher[remoteRow], query url.Values) (listing.View[remoteRow], error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	logger := logrus.New()
	logger.SetLevel(logrus.WarnLevel)
	ctrl := listing.NewController(desc, fetcher, listing.NewMemoryURL(query.Encode()), listing.WithLogger(logrus.NewEntry(logger)))
	if err := ctrl.Initialize(ctx); err != nil {
		return listing.View[remoteRow]{}, err
	}
	return ctrl.Wait(ctx)
}

func printTable(out io.Writer, columns []string, view listing.View[remoteRow]) error {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	header := make([]string, len(columns))
	for i, c := range columns {
		header[i] = strings.ToUpper(c)
	}
	fmt.Fprintln(tw, strings.Join(header, "\t"))
	for _, row := range view.Rows {
		cells := make([]string, len(columns))
		for i, c := range columns {
			cells[i] = cellText(row.Value(c))
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(out, "page %d of %d, %d total\n",
		view.State.Pagination.PageIndex+1, view.PageCount(), view.Total)
	return err
}

func cellText(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case bool:
		if t {
			return "yes"
		}
		return "no"
	case string:
		if ts, err := time.Parse(time.RFC3339Nano, t); err == nil {
			return ts.UTC().Format("2006-01-02 15:04")
		}
		return t
	}
	return fmt.Sprint(v)
}
