package listing

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

var (
	ErrAlreadyInitialized = errors.New("listing: controller already initialized")
	ErrNotInitialized     = errors.New("listing: controller not initialized")
	ErrClosed             = errors.New("listing: controller closed")
	ErrFetchPanicked      = errors.New("listing: fetcher panicked")
)

type Page[E any] struct {
	Rows  []E
	Total int
}

type Fetcher[E any] interface {
	Fetch(ctx context.Context, params Params) (Page[E], error)
}

type FetcherFunc[E any] func(ctx context.Context, params Params) (Page[E], error)

func (f FetcherFunc[E]) Fetch(ctx context.Context, params Params) (Page[E], error) {
	return f(ctx, params)
}

// URLStore is where the state is mirrored. Replace must not add a history entry.
type URLStore interface {
	Query() url.Values
	Replace(q url.Values)
}

// View is a snapshot of what a list page shows.
type View[E any] struct {
	Rows      []E
	Total     int
	IsLoading bool
	Err       error
	State     State
	Params    Params
}

func (v View[E]) PageCount() int {
	size := v.State.Pagination.PageSize
	if size <= 0 || v.Total <= 0 {
		return 1
	}
	return (v.Total + size - 1) / size
}

type ControllerOption func(*options)

type options struct {
	logger *logrus.Entry
}

func WithLogger(logger *logrus.Entry) ControllerOption {
	return func(o *options) {
		o.logger = logger
	}
}

type request struct {
	seq    uint64
	params Params
}

type response[E any] struct {
	seq  uint64
	page Page[E]
	err  error
}

// Controller owns the query state of one list page, keeps the URL in sync with it and
// refetches on every change. Only the response to the latest request is applied; older
// in-flight fetches are cancelled and their responses dropped.
type Controller[E any] struct {
	desc    *Descriptor
	fetcher Fetcher[E]
	store   URLStore
	logger  *logrus.Entry

	mu      sync.Mutex
	state   State
	started bool
	issued  uint64
	applied uint64
	rows    []E
	total   int
	err     error
	changed chan struct{}

	requests  chan request
	responses chan response[E]
	done      chan struct{}
}

func NewController[E any](desc *Descriptor, fetcher Fetcher[E], store URLStore, opts ...ControllerOption) *Controller[E] {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Controller[E]{
		desc:      desc,
		fetcher:   fetcher,
		store:     store,
		logger:    o.logger.WithField("listing", desc.Name),
		state:     DefaultState(desc),
		changed:   make(chan struct{}),
		requests:  make(chan request),
		responses: make(chan response[E]),
		done:      make(chan struct{}),
	}
}

// Initialize restores the state from the URL store and issues the first fetch. The
// controller stops when ctx is done.
func (c *Controller[E]) Initialize(ctx context.Context) error {
	c.mu.Lock()
	if c.started {
		c.mu.Unlock()
		return ErrAlreadyInitialized
	}
	c.started = true
	c.state = ParseURL(c.desc, c.store.Query())
	go c.run(ctx)
	req := c.commitLocked()
	c.mu.Unlock()
	c.send(req)
	return nil
}

func (c *Controller[E]) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Clone()
}

func (c *Controller[E]) Params() Params {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Derive(c.desc, c.state)
}

func (c *Controller[E]) View() View[E] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewLocked()
}

func (c *Controller[E]) viewLocked() View[E] {
	return View[E]{
		Rows:      c.rows,
		Total:     c.total,
		IsLoading: c.issued != c.applied,
		Err:       c.err,
		State:     c.state.Clone(),
		Params:    Derive(c.desc, c.state),
	}
}

func (c *Controller[E]) SetSearchQuery(term string) {
	c.update(func(s *State) bool {
		if s.Search == term {
			return false
		}
		s.Search = term
		return true
	})
}

// SetFilters replaces the filter state. Fields absent from filters go back to default.
func (c *Controller[E]) SetFilters(filters FilterState) {
	c.update(func(s *State) bool {
		next := Normalize(c.desc, State{Filters: filters}).Filters
		if (State{Filters: next}).Equal(State{Filters: s.Filters}) {
			return false
		}
		s.Filters = next
		return true
	})
}

// UpdateFilters merges a partial filter state into the current one.
func (c *Controller[E]) UpdateFilters(partial FilterState) {
	c.update(func(s *State) bool {
		next := MergeFilters(c.desc, s.Filters, partial)
		if (State{Filters: next}).Equal(State{Filters: s.Filters}) {
			return false
		}
		s.Filters = next
		return true
	})
}

func (c *Controller[E]) SetSorting(sorting SortSpec) {
	c.update(func(s *State) bool {
		s.Sorting = normalizeSort(c.desc, sorting)
		return false
	})
}

func (c *Controller[E]) SetPagination(p Pagination) {
	c.update(func(s *State) bool {
		s.Pagination = normalizePagination(c.desc, p)
		return false
	})
}

func (c *Controller[E]) SetPage(index int) {
	c.update(func(s *State) bool {
		s.Pagination = normalizePagination(c.desc, Pagination{PageIndex: index, PageSize: s.Pagination.PageSize})
		return false
	})
}

// ClearFilters resets search and every filter to default.
func (c *Controller[E]) ClearFilters() {
	c.update(func(s *State) bool {
		def := DefaultFilters(c.desc)
		if s.Search == "" && (State{Filters: def}).Equal(State{Filters: s.Filters}) {
			return false
		}
		s.Search = ""
		s.Filters = def
		return true
	})
}

// Refresh refetches the current state.
func (c *Controller[E]) Refresh() {
	c.mutate(true, func(*State) bool { return false })
}

func (c *Controller[E]) update(mut func(s *State) bool) {
	c.mutate(false, mut)
}

// mutate applies mut to the state. mut reports whether search or filters changed,
// which resets the page index under ResetPageOnChange. Unless force is set, a change
// that leaves the state as it was neither replaces the URL nor refetches.
func (c *Controller[E]) mutate(force bool, mut func(s *State) bool) {
	c.mu.Lock()
	before := EncodeURL(c.desc, c.state).Encode()
	if mut(&c.state) && c.desc.PageReset == ResetPageOnChange {
		c.state.Pagination.PageIndex = 0
	}
	if !force && EncodeURL(c.desc, c.state).Encode() == before {
		c.mu.Unlock()
		return
	}
	if !c.started {
		c.store.Replace(EncodeURL(c.desc, c.state))
		c.mu.Unlock()
		return
	}
	req := c.commitLocked()
	c.mu.Unlock()
	c.send(req)
}

func (c *Controller[E]) commitLocked() request {
	c.store.Replace(EncodeURL(c.desc, c.state))
	c.issued++
	return request{seq: c.issued, params: Derive(c.desc, c.state)}
}

// send hands req to the loop. Concurrent setters may deliver out of order; the loop
// ignores any request older than the newest one it has seen.
func (c *Controller[E]) send(req request) {
	select {
	case c.requests <- req:
	case <-c.done:
	}
}

// Wait blocks until the latest request has been applied and returns the view along
// with the fetch error, if any.
func (c *Controller[E]) Wait(ctx context.Context) (View[E], error) {
	for {
		c.mu.Lock()
		if !c.started {
			c.mu.Unlock()
			return View[E]{}, ErrNotInitialized
		}
		if c.issued == c.applied {
			v := c.viewLocked()
			c.mu.Unlock()
			return v, v.Err
		}
		ch := c.changed
		c.mu.Unlock()

		select {
		case <-ch:
		case <-ctx.Done():
			return c.View(), ctx.Err()
		case <-c.done:
			return c.View(), ErrClosed
		}
	}
}

func (c *Controller[E]) run(ctx context.Context) {
	defer close(c.done)
	cancel := context.CancelFunc(func() {})
	var latest uint64
	for {
		select {
		case <-ctx.Done():
			cancel()
			return
		case req := <-c.requests:
			if req.seq <= latest {
				continue
			}
			latest = req.seq
			cancel()
			var fetchCtx context.Context
			fetchCtx, cancel = context.WithCancel(ctx)
			go c.fetch(fetchCtx, req)
		case resp := <-c.responses:
			c.apply(resp)
		}
	}
}

func (c *Controller[E]) fetch(ctx context.Context, req request) {
	start := time.Now()
	page, err := c.safeFetch(ctx, req.params)
	fetchDuration.WithLabelValues(c.desc.Name).Observe(time.Since(start).Seconds())
	result := "success"
	if err != nil {
		result = "error"
		if errors.Is(err, context.Canceled) {
			result = "cancelled"
		}
	}
	fetchTotal.WithLabelValues(c.desc.Name, result).Inc()

	select {
	case c.responses <- response[E]{seq: req.seq, page: page, err: err}:
	case <-c.done:
	}
}

// safeFetch turns a fetcher panic into an error; fetches run on their own goroutine
// where nothing else would recover it.
func (c *Controller[E]) safeFetch(ctx context.Context, p Params) (page Page[E], err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrFetchPanicked, r)
		}
	}()
	return c.fetcher.Fetch(ctx, p)
}

func (c *Controller[E]) apply(resp response[E]) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if resp.seq != c.issued {
		staleResponses.WithLabelValues(c.desc.Name).Inc()
		c.logger.WithField("seq", resp.seq).Debug("dropping stale list response")
		return
	}
	c.applied = resp.seq
	if resp.err != nil {
		c.logger.WithError(resp.err).Warn("list fetch failed")
		c.rows, c.total, c.err = nil, 0, resp.err
	} else {
		c.rows, c.total, c.err = resp.page.Rows, resp.page.Total, nil
	}
	close(c.changed)
	c.changed = make(chan struct{})
}

// MemoryURL is a URLStore kept in memory, used outside of a browser.
type MemoryURL struct {
	mu       sync.Mutex
	query    url.Values
	replaces int
}

func NewMemoryURL(rawQuery string) *MemoryURL {
	q, _ := url.ParseQuery(rawQuery)
	return &MemoryURL{query: q}
}

func (m *MemoryURL) Query() url.Values {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := url.Values{}
	for k, v := range m.query {
		out[k] = append([]string(nil), v...)
	}
	return out
}

func (m *MemoryURL) Replace(q url.Values) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.query = q
	m.replaces++
}

func (m *MemoryURL) String() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.query.Encode()
}

// Replaces counts Replace calls.
func (m *MemoryURL) Replaces() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.replaces
}
