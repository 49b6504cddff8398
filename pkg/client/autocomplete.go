package client

import (
	"context"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/ajeebtech/playerlens/pkg/models"
)

const (
	DefaultDebounce = 300 * time.Millisecond
	DefaultMinChars = 2
)

// Searcher runs one search query. *Client satisfies it.
type Searcher interface {
	Search(ctx context.Context, term string) ([]models.SearchResult, error)
}

// Suggestions is one update of the autocomplete list
type Suggestions struct {
	Query   string
	Results []models.SearchResult
	Loading bool
	Err     error
}

type AutocompleteOption func(*Autocomplete)

func WithDebounce(d time.Duration) AutocompleteOption {
	return func(a *Autocomplete) {
		if d >= 0 {
			a.delay = d
		}
	}
}

func WithMinChars(n int) AutocompleteOption {
	return func(a *Autocomplete) {
		if n > 0 {
			a.minChars = n
		}
	}
}

// Autocomplete turns keystrokes into search requests. Input is debounced,
// queries shorter than the minimum clear the list, and a newer query
// cancels any search still in flight so its results are never delivered.
type Autocomplete struct {
	searcher Searcher
	delay    time.Duration
	minChars int

	out  chan Suggestions
	done chan struct{}

	sendMu sync.Mutex

	mu      sync.Mutex
	seq     uint64
	timer   *time.Timer
	cancel  context.CancelFunc
	loading bool
	closed  bool
}

func NewAutocomplete(searcher Searcher, opts ...AutocompleteOption) *Autocomplete {
	a := &Autocomplete{
		searcher: searcher,
		delay:    DefaultDebounce,
		minChars: DefaultMinChars,
		out:      make(chan Suggestions, 16),
		done:     make(chan struct{}),
	}
	for _, o := range opts {
		o(a)
	}
	return a
}

// Suggestions delivers list updates. The channel is not closed; stop reading once Done is closed.
func (a *Autocomplete) Suggestions() <-chan Suggestions {
	return a.out
}

// Done is closed by Close
func (a *Autocomplete) Done() <-chan struct{} {
	return a.done
}

// Loading reports whether a search is in flight
func (a *Autocomplete) Loading() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.loading
}

// Type records the current input text
func (a *Autocomplete) Type(query string) {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return
	}

	a.supersedeLocked()
	seq := a.seq

	term := strings.TrimSpace(query)
	if utf8.RuneCountInString(term) < a.minChars {
		a.mu.Unlock()
		a.emit(seq, Suggestions{Query: query})
		return
	}

	a.timer = time.AfterFunc(a.delay, func() { a.run(seq, term) })
	a.mu.Unlock()
}

// Close stops pending and in-flight searches
func (a *Autocomplete) Close() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed {
		return
	}
	a.supersedeLocked()
	a.closed = true
	close(a.done)
}

func (a *Autocomplete) run(seq uint64, term string) {
	a.mu.Lock()
	if seq != a.seq || a.closed {
		a.mu.Unlock()
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	a.cancel = cancel
	a.loading = true
	a.mu.Unlock()

	a.emit(seq, Suggestions{Query: term, Loading: true})

	results, err := a.searcher.Search(ctx, term)
	cancel()

	a.mu.Lock()
	// Superseded while in flight
	if seq != a.seq || a.closed {
		a.mu.Unlock()
		return
	}
	a.loading = false
	a.cancel = nil
	a.mu.Unlock()

	a.emit(seq, Suggestions{Query: term, Results: results, Err: err})
}

// supersedeLocked invalidates the pending timer and any in-flight search
func (a *Autocomplete) supersedeLocked() {
	a.seq++
	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
	if a.cancel != nil {
		a.cancel()
		a.cancel = nil
	}
	a.loading = false
}

// emit delivers s unless a newer query has taken over. Sends are serialized
// and never hold mu, so Close can always release a blocked send.
func (a *Autocomplete) emit(seq uint64, s Suggestions) {
	a.sendMu.Lock()
	defer a.sendMu.Unlock()

	a.mu.Lock()
	current := seq == a.seq && !a.closed
	a.mu.Unlock()
	if !current {
		return
	}

	select {
	case a.out <- s:
	case <-a.done:
	}
}
