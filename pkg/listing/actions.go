package listing

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

var (
	ErrProtectedRow      = errors.New("listing: row is protected")
	ErrInvalidTransition = errors.New("listing: status transition not allowed")
	ErrDialogOpen        = errors.New("listing: another dialog is open")
	ErrNoDialog          = errors.New("listing: no dialog open")
)

// Row is what per-row actions need to know about a record.
type Row interface {
	RowID() string
	RowLabel() string
	RowStatus() string
	Protected() bool
}

type Mutator interface {
	UpdateStatus(ctx context.Context, id, status string) error
	Delete(ctx context.Context, id string) error
}

// Notifier shows the outcome of a mutation to the user.
type Notifier interface {
	Success(message string)
	Error(err error)
}

type Action string

const (
	ActionView   Action = "view"
	ActionEdit   Action = "edit"
	ActionStatus Action = "status"
	ActionDelete Action = "delete"
)

type MenuItem struct {
	Action   Action
	Label    string
	Status   string
	Disabled bool
}

type ActionState int

const (
	Idle ActionState = iota
	StatusDialogOpen
	DeleteDialogOpen
)

func (s ActionState) String() string {
	switch s {
	case StatusDialogOpen:
		return "status_dialog_open"
	case DeleteDialogOpen:
		return "delete_dialog_open"
	default:
		return "idle"
	}
}

type Dialog struct {
	Open         bool
	Kind         ActionState
	Title        string
	Description  string
	TargetStatus string
	IsLoading    bool
	Err          error
}

// RowActions drives the confirmation dialogs of one row. The dialog stays open when the
// mutation fails so the user can retry or cancel.
type RowActions struct {
	desc     *Descriptor
	row      Row
	mutator  Mutator
	notifier Notifier

	mu      sync.Mutex
	state   ActionState
	target  string
	loading bool
	err     error
}

func NewRowActions(desc *Descriptor, row Row, mutator Mutator, notifier Notifier) *RowActions {
	return &RowActions{desc: desc, row: row, mutator: mutator, notifier: notifier}
}

func (a *RowActions) State() ActionState {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

// Menu lists the actions of the row. Everything but view is disabled for protected
// rows.
func (a *RowActions) Menu() []MenuItem {
	protected := a.row.Protected()
	items := []MenuItem{
		{Action: ActionView, Label: "View"},
		{Action: ActionEdit, Label: "Edit", Disabled: protected},
	}
	for _, t := range a.desc.Transitions(a.row.RowStatus()) {
		items = append(items, MenuItem{Action: ActionStatus, Label: t.Label, Status: t.To, Disabled: protected})
	}
	return append(items, MenuItem{Action: ActionDelete, Label: "Delete", Disabled: protected})
}

func (a *RowActions) OpenStatusDialog(status string) error {
	if a.row.Protected() {
		return ErrProtectedRow
	}
	if !a.desc.CanTransition(a.row.RowStatus(), status) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, a.row.RowStatus(), status)
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.state != Idle {
		return ErrDialogOpen
	}
	a.state, a.target, a.err = StatusDialogOpen, status, nil
	return nil
}

func (a *RowActions) OpenDeleteDialog() error {
	if a.row.Protected() {
		return ErrProtectedRow
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.state != Idle {
		return ErrDialogOpen
	}
	a.state, a.target, a.err = DeleteDialogOpen, "", nil
	return nil
}

// Cancel closes the dialog. It has no effect while a mutation is running.
func (a *RowActions) Cancel() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.loading {
		return
	}
	a.state, a.target, a.err = Idle, "", nil
}

// Confirm runs the mutation of the open dialog. On success the dialog closes; on
// failure it stays open with the error set.
func (a *RowActions) Confirm(ctx context.Context) error {
	a.mu.Lock()
	if a.state == Idle {
		a.mu.Unlock()
		return ErrNoDialog
	}
	if a.loading {
		a.mu.Unlock()
		return ErrDialogOpen
	}
	state, target := a.state, a.target
	a.loading, a.err = true, nil
	a.mu.Unlock()

	var (
		err error
		msg string
	)
	if state == StatusDialogOpen {
		err = a.mutator.UpdateStatus(ctx, a.row.RowID(), target)
		msg = fmt.Sprintf("%s status changed to %s", a.row.RowLabel(), target)
	} else {
		err = a.mutator.Delete(ctx, a.row.RowID())
		msg = fmt.Sprintf("%s deleted", a.row.RowLabel())
	}

	a.mu.Lock()
	a.loading = false
	if err != nil {
		a.err = err
	} else {
		a.state, a.target = Idle, ""
	}
	a.mu.Unlock()

	if a.notifier != nil {
		if err != nil {
			a.notifier.Error(err)
		} else {
			a.notifier.Success(msg)
		}
	}
	return err
}

func (a *RowActions) Dialog() Dialog {
	a.mu.Lock()
	defer a.mu.Unlock()
	d := Dialog{Open: a.state != Idle, Kind: a.state, TargetStatus: a.target, IsLoading: a.loading, Err: a.err}
	switch a.state {
	case StatusDialogOpen:
		d.Title = "Change status"
		d.Description = fmt.Sprintf("Change the status of %s from %s to %s?", a.row.RowLabel(), a.row.RowStatus(), a.target)
	case DeleteDialogOpen:
		d.Title = "Delete " + a.row.RowLabel()
		d.Description = fmt.Sprintf("%s will be permanently deleted. This cannot be undone.", a.row.RowLabel())
	}
	return d
}
