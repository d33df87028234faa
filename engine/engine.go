// Package engine is the top-level driver: it wires a table.Grammar to a
// parser.Parser and reports one of a small set of terminal result
// shapes.
package engine

import (
	"context"
	"errors"
	"time"

	pingerrors "github.com/pingcap/errors"
	"go.uber.org/zap"

	"github.com/Warfley/gold-parser-tools/lexer"
	"github.com/Warfley/gold-parser-tools/parser"
	"github.com/Warfley/gold-parser-tools/table"
)

// ErrCancelled is returned as Result.Err when a parse is cancelled via
// its context before reaching a terminal result.
var ErrCancelled = errors.New("parse cancelled")

// Result is the outcome of one Parse call: exactly one of Tree or Err is
// set. Use Successful to check which.
type Result struct {
	Tree parser.Tree
	Err  error
}

// Successful reports whether r represents an accepted parse.
func (r Result) Successful() bool {
	return r.Err == nil && r.Tree != nil
}

// Option configures a Parse call.
type Option func(*options)

type options struct {
	logger    *zap.Logger
	observers *parser.Observers
}

// WithLogger attaches a structured logger; the driver logs one debug
// line per parse (outcome, elapsed time). Defaults to zap.NewNop().
func WithLogger(l *zap.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithObservers attaches shift/reduce/token observer hooks. Optional.
func WithObservers(obs *parser.Observers) Option {
	return func(o *options) { o.observers = obs }
}

// Parse loads no grammar itself — g must already come from table.Load —
// and drives a single parse of input against it, applying opts.
func Parse(ctx context.Context, g *table.Grammar, input string, opts ...Option) Result {
	o := &options{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(o)
	}

	start := time.Now()
	p := parser.New(g)
	tr, err := p.Parse(ctx, input, o.observers)
	elapsed := time.Since(start)

	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			o.logger.Debug("parse cancelled", zap.Duration("elapsed", elapsed))
			return Result{Err: ErrCancelled}
		}

		o.logger.Debug("parse failed",
			zap.Duration("elapsed", elapsed),
			zap.String("kind", errorKind(err)),
			zap.Error(err),
		)
		return Result{Err: err}
	}

	o.logger.Debug("parse accepted", zap.Duration("elapsed", elapsed))
	return Result{Tree: tr}
}

// errorKind classifies an error returned by parser.Parse for logging.
// table.LoadError never reaches here: LoadAndParse returns it before
// calling Parse. lexer.LexError, lexer.GroupError, and parser.ParseError
// all arrive wrapped in pingerrors.Trace, so the switch has to compare
// against the traced cause rather than err itself.
func errorKind(err error) string {
	switch pingerrors.Cause(err).(type) {
	case *lexer.LexError:
		return "lex"
	case *lexer.GroupError:
		return "group"
	case *parser.ParseError:
		return "parse"
	default:
		return "unknown"
	}
}

// LoadAndParse is a convenience wrapper: it loads the grammar table
// and, on success, parses input against it in one call.
func LoadAndParse(ctx context.Context, tableBytes []byte, input string, opts ...Option) Result {
	g, err := table.Load(tableBytes)
	if err != nil {
		return Result{Err: err}
	}
	return Parse(ctx, g, input, opts...)
}
