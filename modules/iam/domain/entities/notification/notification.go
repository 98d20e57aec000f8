package notification

import (
	"time"

	"github.com/google/uuid"

	"github.com/iota-uz/iam-console/modules/iam/domain/resource"
	"github.com/iota-uz/iam-console/pkg/listing"
)

const Resource = "notifications"

const (
	StatusDraft     = "draft"
	StatusScheduled = "scheduled"
	StatusSent      = "sent"
	StatusFailed    = "failed"
)

// Notification is a broadcast to users. Notifications are never protected.
type Notification struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Title     string    `db:"title" json:"title"`
	Channel   string    `db:"channel" json:"channel"`
	Status    string    `db:"status" json:"status"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

var _ resource.Entity[*Notification] = (*Notification)(nil)

var Columns = []string{"id", "title", "channel", "status", "created_at", "updated_at"}

var Descriptor = func() *listing.Descriptor {
	d := resource.Common(
		Resource,
		[]string{"title"},
		[]listing.FilterField{
			{
				Key:   "channel",
				Param: "channel",
				Label: "Channel",
				Kind:  listing.FilterMulti,
				Options: []listing.Option{
					{Value: "email", Label: "Email"},
					{Value: "sms", Label: "SMS"},
					{Value: "push", Label: "Push"},
					{Value: "in_app", Label: "In-app"},
				},
			},
			{
				Key:   "status",
				Param: "status",
				Label: "Status",
				Kind:  listing.FilterMulti,
				Options: []listing.Option{
					{Value: StatusDraft, Label: "Draft"},
					{Value: StatusScheduled, Label: "Scheduled"},
					{Value: StatusSent, Label: "Sent"},
					{Value: StatusFailed, Label: "Failed"},
				},
			},
		},
		"title", "channel", "status",
	)
	d.StatusTransitions = []listing.StatusTransition{
		{From: StatusDraft, To: StatusScheduled, Label: "Schedule"},
		{From: StatusScheduled, To: StatusDraft, Label: "Unschedule"},
		{From: StatusFailed, To: StatusScheduled, Label: "Retry"},
	}
	return d
}()

func (n *Notification) RowID() string     { return n.ID.String() }
func (n *Notification) RowLabel() string  { return n.Title }
func (n *Notification) RowStatus() string { return n.Status }
func (n *Notification) Protected() bool   { return false }

func (n *Notification) Value(column string) any {
	switch column {
	case "id":
		return n.ID
	case "title":
		return n.Title
	case "channel":
		return n.Channel
	case "status":
		return n.Status
	case "created_at":
		return n.CreatedAt
	case "updated_at":
		return n.UpdatedAt
	}
	return nil
}

func (n *Notification) WithStatus(status string, at time.Time) *Notification {
	cp := *n
	cp.Status = status
	cp.UpdatedAt = at
	return &cp
}
