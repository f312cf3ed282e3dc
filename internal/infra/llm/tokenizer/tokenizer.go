package tokenizer

import (
	"log/slog"
	"sync/atomic"
	"unicode/utf8"

	"github.com/pkoukk/tiktoken-go"
)

const defaultEncoding = "cl100k_base"

// loadFunc resolves an encoding by name. tiktoken.GetEncoding may download
// the BPE ranks on first use.
type loadFunc func(encoding string) (*tiktoken.Tiktoken, error)

// Estimator counts prompt tokens. The encoding is loaded in the background
// from New; until it is ready, or if it cannot be loaded, the estimate falls
// back to one token per four runes.
type Estimator struct {
	encoding string
	logger   *slog.Logger

	enc   atomic.Pointer[tiktoken.Tiktoken]
	ready chan struct{}
}

// New returns an Estimator for the cl100k_base encoding and starts loading it.
func New(logger *slog.Logger) *Estimator {
	return newEstimator(logger, tiktoken.GetEncoding)
}

func newEstimator(logger *slog.Logger, load loadFunc) *Estimator {
	e := &Estimator{
		encoding: defaultEncoding,
		logger:   logger.With("component", "tokenizer"),
		ready:    make(chan struct{}),
	}
	go e.load(load)
	return e
}

func (e *Estimator) load(load loadFunc) {
	defer close(e.ready)
	enc, err := load(e.encoding)
	if err != nil {
		e.logger.Warn("token encoding unavailable, using rune estimate", "encoding", e.encoding, "error", err)
		return
	}
	e.enc.Store(enc)
	e.logger.Debug("token encoding loaded", "encoding", e.encoding)
}

// Ready is closed once loading has finished, successfully or not.
func (e *Estimator) Ready() <-chan struct{} {
	return e.ready
}

// Count returns the estimated token count of text. It never blocks on the
// encoding download.
func (e *Estimator) Count(text string) int {
	if text == "" {
		return 0
	}
	if enc := e.enc.Load(); enc != nil {
		return len(enc.Encode(text, nil, nil))
	}
	return approximate(text)
}

func approximate(text string) int {
	n := utf8.RuneCountInString(text)
	return (n + 3) / 4
}
