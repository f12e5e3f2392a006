package jsonproc

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/Gobd/jsonproc/logging"
)

// DefaultReprocessLimit bounds nested re-dispatches at one location when
// [ReprocessTypeChanges] is enabled.
const DefaultReprocessLimit = 100

// Config holds Processor behavior. Build it through [New] and the
// ProcessorOption functions.
type Config struct {
	// Identifier names the processor for [Registry] use.
	Identifier string
	// ExactKinds disables widening: a callback registered for Number no
	// longer receives Int or Float values.
	ExactKinds bool
	// ReprocessChanges re-dispatches a location immediately when a
	// callback changes the kind of its value.
	ReprocessChanges bool
	// ReprocessLimit caps nested re-dispatches per location. Zero means
	// DefaultReprocessLimit.
	ReprocessLimit int
	// Logger receives debug records for failures swallowed by
	// AllowFailures callbacks. Defaults to a no-op logger.
	Logger logging.Logger
}

// Validate checks the configuration.
func (c Config) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.ReprocessLimit, validation.Min(1)),
	)
}

// ProcessorOption configures a Processor at construction.
type ProcessorOption func(*Config)

// WithIdentifier names the processor for [Registry] use.
func WithIdentifier(id string) ProcessorOption {
	return func(c *Config) {
		c.Identifier = id
	}
}

// ExactKinds disables widening dispatch (see [Config.ExactKinds]).
func ExactKinds() ProcessorOption {
	return func(c *Config) {
		c.ExactKinds = true
	}
}

// ReprocessTypeChanges enables immediate re-dispatch of a location when a
// callback changes its value's kind, so callbacks registered for the new
// kind run in the same pass. Bounded by [ReprocessLimit].
func ReprocessTypeChanges() ProcessorOption {
	return func(c *Config) {
		c.ReprocessChanges = true
	}
}

// ReprocessLimit caps nested re-dispatches per location; exceeding it
// fails the Process call with a *ConvergenceError. n must be positive.
func ReprocessLimit(n int) ProcessorOption {
	return func(c *Config) {
		c.ReprocessLimit = n
	}
}

// WithLogger sets the sink for debug records about swallowed failures.
func WithLogger(l logging.Logger) ProcessorOption {
	return func(c *Config) {
		c.Logger = l
	}
}

// Processor applies registered callbacks to every matching value in a
// JSON tree, depth-first and in place. Build with [New], attach callbacks
// with [Register], run with [Process].
//
// A Processor is safe for concurrent Process calls only if its callbacks
// are; Register must not run concurrently with Process.
type Processor struct {
	config Config
	order  []Kind
	byKind map[Kind][]Callback
}

// New builds a Processor. The error is a validation.Errors from the
// config check.
func New(opts ...ProcessorOption) (*Processor, error) {
	cfg := Config{
		ReprocessLimit: DefaultReprocessLimit,
		Logger:         logging.NewNop(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.ReprocessLimit == 0 {
		cfg.ReprocessLimit = DefaultReprocessLimit
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.NewNop()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Processor{
		config: cfg,
		byKind: make(map[Kind][]Callback),
	}, nil
}

// MustNew is like [New] but panics on error.
func MustNew(opts ...ProcessorOption) *Processor {
	p, err := New(opts...)
	if err != nil {
		panic(err)
	}
	return p
}

// Identifier returns the name set with [WithIdentifier], or "".
func (p *Processor) Identifier() string {
	return p.config.Identifier
}

// Register attaches cb to values of kind target. Several callbacks may
// share a kind; they run in registration order. Unless the processor was
// built with [ExactKinds], a callback also receives descendant kinds:
// Number callbacks see Int and Float values, Any callbacks see every
// value. Registration fails fast on unusable callbacks.
func (p *Processor) Register(target Kind, cb Callback) error {
	if target == Invalid {
		return &InvalidTargetError{Kind: target}
	}
	if err := cb.validate(); err != nil {
		return err
	}
	if _, ok := p.byKind[target]; !ok {
		p.order = append(p.order, target)
	}
	p.byKind[target] = append(p.byKind[target], cb)
	return nil
}

// MustRegister is like [Register] but panics on error.
func (p *Processor) MustRegister(target Kind, cb Callback) {
	if err := p.Register(target, cb); err != nil {
		panic(err)
	}
}

// Process walks root depth-first, applying registered callbacks to every
// location. root must be a map[string]any or []any; anything else is
// rejected with an *InvalidRootError. Containers are visited at most once
// per call; substructure injected by a callback is processed immediately,
// once.
func (p *Processor) Process(root any) error {
	return p.ProcessArgs(root, nil)
}

// ProcessArgs is [Process] with named arguments forwarded to callbacks
// that declared them with [RequireArgs].
func (p *Processor) ProcessArgs(root any, args Args) error {
	switch v := root.(type) {
	case map[string]any:
		return p.processMap(v, 0, args)
	case []any:
		return p.processSlice(v, 0, args)
	default:
		return &InvalidRootError{Value: root}
	}
}

// callbacksFor returns the callbacks applying to kind k, in first-
// registration order of their target kinds.
func (p *Processor) callbacksFor(k Kind) []Callback {
	var out []Callback
	for _, t := range p.order {
		if k == t || (!p.config.ExactKinds && k.Is(t)) {
			out = append(out, p.byKind[t]...)
		}
	}
	return out
}

func (p *Processor) processMap(obj map[string]any, depth int, args Args) error {
	// Locations are snapshotted up front; keys added by callbacks are not
	// visited, keys deleted by callbacks are skipped.
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	for _, k := range keys {
		loc := KeyLoc(k)
		if err := p.processLoc(mapContainer(obj), loc, depth, args, 0); err != nil {
			if errors.Is(err, Break) {
				break
			}
			return err
		}
		child, ok := mapContainer(obj).get(loc)
		if !ok {
			continue
		}
		if err := p.processChild(child, depth, args); err != nil {
			return err
		}
	}
	return nil
}

func (p *Processor) processSlice(list []any, depth int, args Args) error {
	for i := range list {
		loc := IndexLoc(i)
		if err := p.processLoc(sliceContainer(list), loc, depth, args, 0); err != nil {
			if errors.Is(err, Break) {
				break
			}
			return err
		}
		child, ok := sliceContainer(list).get(loc)
		if !ok {
			continue
		}
		if err := p.processChild(child, depth, args); err != nil {
			return err
		}
	}
	return nil
}

func (p *Processor) processChild(child any, depth int, args Args) error {
	switch c := child.(type) {
	case map[string]any:
		return p.processMap(c, depth+1, args)
	case []any:
		return p.processSlice(c, depth+1, args)
	}
	return nil
}

// processLoc runs the callbacks for one location. The callback list is
// fixed from the value's kind on entry; each callback then re-fetches the
// current value. hops counts nested re-dispatches after kind changes.
func (p *Processor) processLoc(c container, loc Loc, depth int, args Args, hops int) error {
	item, ok := c.get(loc)
	if !ok {
		return nil
	}
	for _, cb := range p.callbacksFor(KindOf(item)) {
		cur, ok := c.get(loc)
		if !ok {
			return nil
		}
		if cb.filter != nil && !cb.filter(cur, loc) {
			continue
		}
		if missing := cb.missingArgs(args); len(missing) > 0 {
			return &MissingArgsError{Callback: cb.name, Missing: missing}
		}
		out, err := cb.fn(Invocation{Value: cur, Loc: loc, Depth: depth, Args: args})
		if err != nil {
			if errors.Is(err, Break) {
				return Break
			}
			var argsErr *MissingArgsError
			if errors.As(err, &argsErr) {
				return err
			}
			if cb.allowFailures {
				p.config.Logger.Debug("callback failure allowed",
					logging.String("loc", loc.String()),
					logging.String("callback", cb.name),
					logging.Err(err))
				continue
			}
			return err
		}
		if cb.observe {
			continue
		}
		c.set(loc, out)
		if p.config.ReprocessChanges && KindOf(out) != KindOf(cur) {
			if hops >= p.config.ReprocessLimit {
				return &ConvergenceError{Loc: loc, Limit: p.config.ReprocessLimit}
			}
			if err := p.processLoc(c, loc, depth, args, hops+1); err != nil {
				return err
			}
		}
	}
	return nil
}

// container unifies write access to the two container shapes for the
// dispatcher.
type container interface {
	get(loc Loc) (any, bool)
	set(loc Loc, v any)
}

type mapContainer map[string]any

func (m mapContainer) get(loc Loc) (any, bool) {
	k, _ := loc.Key()
	v, ok := m[k]
	return v, ok
}

func (m mapContainer) set(loc Loc, v any) {
	k, _ := loc.Key()
	m[k] = v
}

type sliceContainer []any

func (s sliceContainer) get(loc Loc) (any, bool) {
	i, _ := loc.Index()
	if i < 0 || i >= len(s) {
		return nil, false
	}
	return s[i], true
}

func (s sliceContainer) set(loc Loc, v any) {
	i, _ := loc.Index()
	if i >= 0 && i < len(s) {
		s[i] = v
	}
}
