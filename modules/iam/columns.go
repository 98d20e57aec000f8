package iam

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/iota-uz/iam-console/components/table"
	"github.com/iota-uz/iam-console/pkg/intl"
)

func translate(ctx context.Context, id, fallback string) string {
	if v := intl.T(ctx, id); v != id {
		return v
	}
	return fallback
}

func text(key string) table.Column {
	return table.Column{Key: key, Label: "Resources.Columns." + key}
}

func muted(key string) table.Column {
	c := text(key)
	c.Class = "text-gray-500"
	return c
}

// option shows a filter option value through its translation.
func option(key string) table.Column {
	c := text(key)
	c.Format = func(ctx context.Context, v any) string {
		s := fmt.Sprint(v)
		return translate(ctx, "Listing.Options."+s, s)
	}
	return c
}

func flag(key string) table.Column {
	c := text(key)
	c.Format = func(ctx context.Context, v any) string {
		b, _ := v.(bool)
		return intl.T(ctx, "Resources.Bool."+strconv.FormatBool(b))
	}
	return c
}

func timestamp(key string) table.Column {
	c := muted(key)
	c.Format = func(_ context.Context, v any) string {
		t, ok := v.(time.Time)
		if !ok || t.IsZero() {
			return ""
		}
		return t.Format("2006-01-02 15:04")
	}
	return c
}

func description() table.Column {
	c := muted("description")
	c.Label = "Resources.Columns.desc"
	return c
}

var (
	emailTemplateColumns = []table.Column{
		text("display_name"), muted("name"), option("type"), option("status"), flag("is_system"), timestamp("created_at"),
	}
	emailTemplateFields = []table.Column{
		text("name"), text("display_name"), text("subject"), option("type"), option("status"), flag("is_system"),
		timestamp("created_at"), timestamp("updated_at"),
	}

	identityProviderColumns = []table.Column{
		text("display_name"), option("type"), muted("issuer"), option("status"), flag("is_default"), timestamp("created_at"),
	}
	identityProviderFields = []table.Column{
		text("name"), text("display_name"), option("type"), text("issuer"), option("status"), flag("is_default"),
		timestamp("created_at"), timestamp("updated_at"),
	}

	socialProviderColumns = []table.Column{
		text("name"), option("provider"), muted("client_id"), option("status"), timestamp("created_at"),
	}
	socialProviderFields = []table.Column{
		text("name"), option("provider"), text("client_id"), option("status"), flag("is_system"),
		timestamp("created_at"), timestamp("updated_at"),
	}

	policyColumns = []table.Column{
		text("name"), description(), option("type"), option("status"), flag("is_system"), timestamp("created_at"),
	}
	policyFields = []table.Column{
		text("name"), description(), option("type"), option("status"), flag("is_system"),
		timestamp("created_at"), timestamp("updated_at"),
	}

	roleColumns = []table.Column{
		text("display_name"), muted("name"), option("status"), flag("is_system"), timestamp("created_at"),
	}
	roleFields = []table.Column{
		text("name"), text("display_name"), description(), text("service_id"), option("status"), flag("is_system"),
		timestamp("created_at"), timestamp("updated_at"),
	}

	serviceColumns = []table.Column{
		text("display_name"), muted("name"), option("type"), option("status"), flag("is_system"), timestamp("created_at"),
	}
	serviceFields = []table.Column{
		text("name"), text("display_name"), option("type"), option("status"), flag("is_system"),
		timestamp("created_at"), timestamp("updated_at"),
	}

	notificationColumns = []table.Column{
		text("title"), option("channel"), option("status"), timestamp("created_at"), timestamp("updated_at"),
	}
	notificationFields = notificationColumns
)
