package ward

import "sync"

// Config tunes an Engine. The zero value is usable: no resolver, the
// default sampling budget, the default explain depth, a fixed seed.
type Config struct {
	// Resolver resolves forward references built with Ref. Nil rejects
	// every forward reference.
	Resolver Resolver

	// SampleBudget is the number of elements validated per container
	// check. Zero means DefaultSampleBudget.
	SampleBudget int

	// MaxExplainDepth bounds the exhaustive diagnostic walk. Zero means
	// DefaultMaxExplainDepth.
	MaxExplainDepth int

	// Seed feeds the sampling generator. A fixed seed keeps index
	// selection reproducible across runs.
	Seed uint64
}

// Engine compiles hints into check procedures and owns their cache. An
// Engine is safe for concurrent use; compilation of a shared hint from
// several goroutines produces exactly one cache entry.
type Engine struct {
	resolver Resolver
	sampler  *sampler
	maxDepth int
	cache    *procCache
}

// New builds an engine from cfg.
func New(cfg Config) *Engine {
	depth := cfg.MaxExplainDepth
	if depth <= 0 {
		depth = DefaultMaxExplainDepth
	}
	return &Engine{
		resolver: cfg.Resolver,
		sampler:  newSampler(cfg.SampleBudget, cfg.Seed),
		maxDepth: depth,
		cache:    newProcCache(),
	}
}

// Compile classifies a hint and returns its compiled check procedure,
// consulting the cache at every level of the hint tree. Structurally
// equal hints compile once per engine.
func (e *Engine) Compile(h Hint) (*Proc, error) {
	n, err := classify(h, e.resolver)
	if err != nil {
		return nil, err
	}
	return e.compileNode(n)
}

func (e *Engine) compileNode(n *Node) (*Proc, error) {
	return e.cache.getOrCompile(n.key, n.Sign, func() (*Proc, error) {
		return e.synthesize(n, e.compileNode)
	})
}

// CacheLen reports how many procedures the engine has compiled.
func (e *Engine) CacheLen() int { return e.cache.len() }

// The default engine backs the package-level API. It is created lazily
// and lives until process exit.
var (
	defaultOnce   sync.Once
	defaultEngine *Engine
)

// Default returns the process-wide engine.
func Default() *Engine {
	defaultOnce.Do(func() {
		defaultEngine = New(Config{})
	})
	return defaultEngine
}

// Compile compiles a hint on the default engine.
func Compile(h Hint) (*Proc, error) { return Default().Compile(h) }
