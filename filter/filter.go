package filter

import (
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/s0up4200/marquee/tmdb"
)

const defaultCacheSize = 100

// Marks carries the caller-owned flags exposed to expressions as Favorite,
// InLibrary and Requested. Unset funcs evaluate to false.
type Marks struct {
	Favorite  func(movieID int) bool
	InLibrary func(movieID int) bool
	Requested func(movieID int) bool
}

// Filter is a compiled filter expression
type Filter struct {
	expression string
	program    *vm.Program
}

// Expression returns the original expression
func (f *Filter) Expression() string {
	return f.expression
}

// Evaluate runs the filter against a movie
func (f *Filter) Evaluate(movie tmdb.MovieSummary, marks Marks) (bool, error) {
	result, err := expr.Run(f.program, newEnv(movie, marks))
	if err != nil {
		return false, &EvaluationError{Expression: f.expression, MovieID: movie.ID, Err: err}
	}
	// AsBool at compile time guarantees the type.
	return result.(bool), nil
}

// Match reports whether the movie matches. Evaluation errors count as no match.
func (f *Filter) Match(movie tmdb.MovieSummary, marks Marks) bool {
	ok, err := f.Evaluate(movie, marks)
	return err == nil && ok
}

// Apply returns the movies that match, in their original order. A nil Filter
// matches everything.
func (f *Filter) Apply(movies []tmdb.MovieSummary, marks Marks) []tmdb.MovieSummary {
	if f == nil {
		return append([]tmdb.MovieSummary{}, movies...)
	}

	matched := make([]tmdb.MovieSummary, 0, len(movies))
	for _, movie := range movies {
		if f.Match(movie, marks) {
			matched = append(matched, movie)
		}
	}
	return matched
}

// CompilerOption configures a Compiler
type CompilerOption func(*Compiler)

// WithCache sets the number of compiled expressions kept. Zero disables caching.
func WithCache(size int) CompilerOption {
	return func(c *Compiler) {
		if size <= 0 {
			c.cache = nil
			return
		}
		c.cache = newLRUCache[*Filter](size)
	}
}

// Compiler compiles expressions and caches the result
type Compiler struct {
	cache *lruCache[*Filter]
}

// NewCompiler creates a compiler with a cache of 100 expressions by default
func NewCompiler(opts ...CompilerOption) *Compiler {
	c := &Compiler{cache: newLRUCache[*Filter](defaultCacheSize)}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Compile checks an expression against the movie environment and compiles it.
// Unknown variables and non-boolean expressions are rejected.
func (c *Compiler) Compile(expression string) (*Filter, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return nil, &CompilationError{Expression: expression, Reason: "empty expression"}
	}

	if c.cache != nil {
		if cached, ok := c.cache.Get(expression); ok {
			return cached, nil
		}
	}

	program, err := expr.Compile(expression,
		expr.Env(compileEnv()),
		expr.AsBool(),
	)
	if err != nil {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "failed to compile expression",
			Err:        err,
		}
	}

	f := &Filter{expression: expression, program: program}
	if c.cache != nil {
		c.cache.Put(expression, f)
	}
	return f, nil
}

// CacheSize returns the number of cached expressions
func (c *Compiler) CacheSize() int {
	if c.cache == nil {
		return 0
	}
	return c.cache.Len()
}

// Clear drops all cached expressions
func (c *Compiler) Clear() {
	if c.cache != nil {
		c.cache.Clear()
	}
}

var defaultCompiler = NewCompiler()

// Parse compiles an expression with the shared compiler. A blank expression
// yields a nil Filter, which matches everything.
func Parse(expression string) (*Filter, error) {
	if strings.TrimSpace(expression) == "" {
		return nil, nil
	}
	return defaultCompiler.Compile(expression)
}
