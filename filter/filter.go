// Package filter provides client-side filtering of already-fetched
// catalog movies: compiled boolean expressions in the expr language, and
// fuzzy title matching. Filtering here happens after pagination; it never
// changes which remote endpoint is queried.
package filter

import (
	"strconv"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/reelfeed/reelfeed/catalog"
)

// Filter is a compiled filter expression ready for evaluation.
type Filter struct {
	expression string
	program    *vm.Program
}

// Compile parses and compiles a filter expression.
//
// Expressions evaluate against a single movie and must yield a boolean,
// e.g. `Rating >= 7.5 and hasGenre("Drama")` or `Year == 1999`.
func Compile(expression string) (*Filter, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "empty expression",
		}
	}

	program, err := expr.Compile(expression,
		expr.Env(helperFunctions()),
		expr.AllowUndefinedVariables(), // movie properties are added at runtime
		expr.AsBool(),
	)
	if err != nil {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "failed to compile expression",
			Err:        err,
		}
	}

	return &Filter{expression: expression, program: program}, nil
}

// Expression returns the original expression.
func (f *Filter) Expression() string {
	return f.expression
}

// Match evaluates the filter against a movie. Movies whose evaluation
// errors are treated as non-matching.
func (f *Filter) Match(movie catalog.Movie) bool {
	result, err := expr.Run(f.program, runtimeEnvironment(movie))
	if err != nil {
		return false
	}
	return result.(bool)
}

// Apply returns the movies matching the filter, preserving order.
func (f *Filter) Apply(movies []catalog.Movie) []catalog.Movie {
	var matched []catalog.Movie
	for _, movie := range movies {
		if f.Match(movie) {
			matched = append(matched, movie)
		}
	}
	return matched
}

// FuzzyMatch returns the movies whose title fuzzy-matches the pattern,
// case- and diacritic-insensitively, preserving order.
func FuzzyMatch(movies []catalog.Movie, pattern string) []catalog.Movie {
	if pattern == "" {
		return movies
	}
	var matched []catalog.Movie
	for _, movie := range movies {
		if fuzzy.MatchNormalizedFold(pattern, movie.Title) {
			matched = append(matched, movie)
		}
	}
	return matched
}

// helperFunctions is the static environment used for compile-time
// validation.
func helperFunctions() map[string]any {
	env := make(map[string]any, 16)
	addHelperFunctions(env)
	return env
}

func addHelperFunctions(env map[string]any) {
	env["contains"] = func(str, substr string) bool {
		return strings.Contains(strings.ToLower(str), strings.ToLower(substr))
	}
	env["startsWith"] = func(str, prefix string) bool {
		return strings.HasPrefix(strings.ToLower(str), strings.ToLower(prefix))
	}
	env["lower"] = strings.ToLower
	env["upper"] = strings.ToUpper
}

// runtimeEnvironment builds the evaluation environment for one movie.
func runtimeEnvironment(movie catalog.Movie) map[string]any {
	env := make(map[string]any, 32)
	addHelperFunctions(env)

	env["Movie"] = movie
	env["Title"] = movie.Title
	env["Overview"] = movie.Overview
	env["ReleaseDate"] = movie.ReleaseDate
	env["Year"] = releaseYear(movie.ReleaseDate)
	env["Rating"] = movie.Rating
	env["Votes"] = movie.Votes
	env["Genres"] = movie.Genres

	env["hasGenre"] = hasGenreFunc(movie.Genres)
	env["hasPoster"] = func() bool { return movie.PosterURL != "" }
	env["released"] = func() bool { return movie.ReleaseDate != catalog.UnknownReleaseDate }

	return env
}

func hasGenreFunc(genres []string) func(string) bool {
	return func(name string) bool {
		for _, g := range genres {
			if strings.EqualFold(g, name) {
				return true
			}
		}
		return false
	}
}

// releaseYear extracts the year from a YYYY-MM-DD release date, 0 when
// the date is missing or malformed.
func releaseYear(date string) int {
	if len(date) < 4 {
		return 0
	}
	year, err := strconv.Atoi(date[:4])
	if err != nil {
		return 0
	}
	return year
}
