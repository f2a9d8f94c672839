// Package parser assembles typed records from decoded page documents.
//
// A Parser runs the path queries of a record type against a document, builds
// entities from the fragments they return, offers every field to the plugin
// chain and validates the result. Parsers hold no per-document state and are
// safe for concurrent use.
package parser

import (
	"github.com/Gobusters/ectologger"
	"github.com/Ramsey-B/fern/pkg/builders"
	"github.com/Ramsey-B/fern/pkg/errors"
	"github.com/Ramsey-B/fern/pkg/expressions"
	"github.com/Ramsey-B/fern/pkg/locale"
	"github.com/Ramsey-B/fern/pkg/models"
	"github.com/Ramsey-B/fern/pkg/plugins"
	"github.com/Ramsey-B/fern/pkg/transforms"
)

// LocaleFunc reports the locale documents were fetched in.
type LocaleFunc func() string

type Option func(*Parser)

// WithChain sets the override chain. The process-wide default chain is used
// otherwise.
func WithChain(chain *plugins.Chain) Option {
	return func(p *Parser) {
		p.chain = chain
	}
}

func WithLogger(logger ectologger.Logger) Option {
	return func(p *Parser) {
		p.logger = logger
	}
}

func WithLocale(fn LocaleFunc) Option {
	return func(p *Parser) {
		p.locale = fn
	}
}

// WithEvaluator shares a compiled expression cache between parsers.
func WithEvaluator(evaluator *expressions.Evaluator) Option {
	return func(p *Parser) {
		p.evaluator = evaluator
	}
}

type Parser struct {
	evaluator *expressions.Evaluator
	chain     *plugins.Chain
	logger    ectologger.Logger
	locale    LocaleFunc
}

func New(opts ...Option) *Parser {
	p := &Parser{}
	for _, opt := range opts {
		opt(p)
	}

	if p.evaluator == nil {
		p.evaluator = expressions.NewEvaluator()
	}
	if p.chain == nil {
		p.chain = plugins.Default()
	}
	if p.logger == nil {
		p.logger = ectologger.NewEctoLogger(func(ectologger.EctoLogMessage) {})
	}
	if p.locale == nil {
		p.locale = func() string { return locale.Default }
	}

	if err := p.evaluator.Precompile(paths...); err != nil {
		p.logger.WithError(err).Error("failed to compile field queries")
	}

	return p
}

// paths holds the path of every field query, compiled when a parser is built.
var paths []string

func query(path string) expressions.Query {
	paths = append(paths, path)
	return expressions.Q(path)
}

// Chain returns the override chain the parser consults.
func (p *Parser) Chain() *plugins.Chain {
	return p.chain
}

// Locale returns the normalized locale records are tagged with.
func (p *Parser) Locale() string {
	normalized, ok := locale.Normalize(p.locale())
	if !ok {
		p.logger.WithField("locale", p.locale()).Warnf("unsupported locale, using %s", locale.Default)
	}
	return normalized
}

// ForLocale returns a parser sharing p's chain, evaluator and logger that
// tags records with locale.
func (p *Parser) ForLocale(locale string) *Parser {
	clone := *p
	clone.locale = func() string { return locale }
	return &clone
}

// extraction carries the state of a single parse: the document, the chain
// snapshot taken when the parse started and the first error hit. Once err is
// set every further step is a no-op.
type extraction struct {
	p        *Parser
	entity   string
	document any
	root     any
	snapshot plugins.Snapshot
	err      error
}

// begin resolves the root of a parse. The document is not found when the
// root is absent, or when anchors are given and none of them is present
// under it.
func (p *Parser) begin(entity string, document any, rootPath string, anchors ...string) (*extraction, error) {
	x := &extraction{
		p:        p,
		entity:   entity,
		document: document,
		snapshot: p.chain.Snapshot(),
	}

	root, err := p.evaluator.Evaluate(rootPath, document)
	if err != nil {
		return nil, errors.WrapParseError(err).AddEntity(entity)
	}
	if root == nil {
		return nil, errors.ErrNotFound
	}
	if len(anchors) > 0 && !hasAny(root, anchors) {
		return nil, errors.ErrNotFound
	}

	x.root = root
	return x, nil
}

func hasAny(root any, paths []string) bool {
	for _, path := range paths {
		if transforms.Has(root, path) {
			return true
		}
	}
	return false
}

// finish validates record once every field is resolved.
func (x *extraction) finish(record any) error {
	if x.err != nil {
		return x.err
	}
	return models.Validate(x.entity, record)
}

func (x *extraction) fail(err error) {
	if x.err == nil && err != nil {
		x.err = err
	}
}

// run evaluates q against the extraction root.
func (x *extraction) run(q expressions.Query) any {
	if x.err != nil {
		return nil
	}
	value, err := x.p.evaluator.Run(q, x.root)
	if err != nil {
		x.fail(errors.WrapParseError(err).AddEntity(x.entity))
		return nil
	}
	return value
}

// skip logs fragments dropped by builders.Collect.
func (x *extraction) skip(field string) builders.SkipFunc {
	return func(index int, err error) {
		x.p.logger.WithError(err).WithFields(map[string]any{
			"entity": x.entity,
			"field":  field,
			"index":  index,
		}).Debug("skipped fragment")
	}
}

// list runs q and returns its result as a fragment list.
func (x *extraction) list(q expressions.Query) []any {
	return transforms.AsList(x.run(q))
}

// value runs q and converts its result to T. Query transforms already
// produce T; convert handles raw results. An absent result is the zero T so
// that a skipped transform stays skipped.
func value[T any](x *extraction, q expressions.Query, convert func(any) T) T {
	raw := x.run(q)
	if raw == nil {
		var zero T
		return zero
	}
	if typed, ok := raw.(T); ok {
		return typed
	}
	return convert(raw)
}

// field offers computed to the snapshot under name.
func field[T any](x *extraction, name string, computed T) T {
	if x.err != nil || x.snapshot.Empty() {
		return computed
	}
	resolved, err := plugins.Resolve(x.snapshot, name, computed, x.document)
	if err != nil {
		var parseErr *errors.ParseError
		if errors.As(err, &parseErr) {
			parseErr.AddEntity(x.entity)
		}
		x.fail(err)
		return computed
	}
	return resolved
}

// Query transforms return typed values boxed as any.

func releaseDate(raw any) any { return transforms.ReleaseDate(raw) }
func join(raw any) any        { return transforms.Join(raw) }
func noneToEmpty(raw any) any { return transforms.NoneToEmpty(raw) }
func certificates(raw any) any {
	return transforms.Certificates(raw)
}
func mpaaReason(raw any) any   { return transforms.MPAAReason(raw) }
func aspectRatios(raw any) any { return transforms.AspectRatios(raw) }
func awards(raw any) any       { return transforms.Awards(raw) }
func voteRatings(raw any) any  { return transforms.VoteRatings(raw) }
func minutes(raw any) any      { return transforms.Minutes(raw) }
func trailers(raw any) any     { return transforms.Trailers(raw) }
func years(raw any) any        { return transforms.Years(raw) }
