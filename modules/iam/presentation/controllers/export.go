package controllers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-faster/errors"
	"github.com/xuri/excelize/v2"

	"github.com/iota-uz/iam-console/components/table"
	"github.com/iota-uz/iam-console/pkg/composables"
	"github.com/iota-uz/iam-console/pkg/intl"
	"github.com/iota-uz/iam-console/pkg/listing"
)

const exportMaxRows = 10000

// Export writes every row matching the current search and filters, in the current
// order, as an xlsx workbook. Pagination is ignored.
func (c *ResourceController[E]) Export(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), c.fetchTimeout)
	defer cancel()
	desc := c.res.Service.Descriptor()
	state := listing.ParseURL(desc, r.URL.Query())

	f, err := c.workbook(ctx, state)
	if err != nil {
		c.fail(w, r, err)
		return
	}
	defer func() {
		if err := f.Close(); err != nil {
			composables.UseLogger(ctx).WithError(err).Warn("failed to close workbook")
		}
	}()

	name := fmt.Sprintf("%s-%s.xlsx", c.res.Slug, time.Now().UTC().Format("20060102-150405"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
	if err := f.Write(w); err != nil {
		composables.UseLogger(ctx).WithError(err).Error("failed to write workbook")
	}
}

func (c *ResourceController[E]) workbook(ctx context.Context, state listing.State) (*excelize.File, error) {
	desc := c.res.Service.Descriptor()
	f := excelize.NewFile()
	sheet := "Sheet1"

	header := make([]interface{}, len(c.res.Columns))
	for i, col := range c.res.Columns {
		header[i] = intl.T(ctx, col.Label)
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, errors.Wrap(err, "write header")
	}

	state.Pagination = listing.Pagination{PageSize: desc.MaxSize()}
	line := 2
	for line-2 < exportMaxRows {
		// the service is read directly so exports never see cached pages
		page, err := c.res.Service.List(ctx, listing.Derive(desc, state))
		if err != nil {
			return nil, err
		}
		for _, row := range page.Rows {
			values := make([]interface{}, len(c.res.Columns))
			for i, col := range c.res.Columns {
				values[i] = exportValue(ctx, col, row)
			}
			cell, err := excelize.CoordinatesToCellName(1, line)
			if err != nil {
				return nil, errors.Wrap(err, "cell name")
			}
			if err := f.SetSheetRow(sheet, cell, &values); err != nil {
				return nil, errors.Wrapf(err, "write row %d", line)
			}
			line++
		}
		state.Pagination.PageIndex++
		if len(page.Rows) == 0 || state.Pagination.PageIndex*state.Pagination.PageSize >= page.Total {
			break
		}
	}
	return f, nil
}

func exportValue(ctx context.Context, col table.Column, row listing.Record) interface{} {
	v := row.Value(col.Key)
	if col.Format != nil {
		return col.Format(ctx, v)
	}
	switch t := v.(type) {
	case time.Time:
		return t.UTC()
	case bool, int, int64, float64, string:
		return t
	case nil:
		return ""
	}
	return fmt.Sprint(v)
}
