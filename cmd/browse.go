package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/reelfeed/reelfeed/catalog"
	"github.com/reelfeed/reelfeed/feed"
	"github.com/reelfeed/reelfeed/filter"
)

var (
	sortKey    string
	genreNames []string
	minRating  float64
	year       int
	maxPages   int
	filterExpr string
	preset     string
	matchTitle string
)

// browseCmd represents the browse command
var browseCmd = &cobra.Command{
	Use:   "browse [category]",
	Short: "Browse a movie list page by page",
	Long: `Browse one of the catalog's movie lists: popular (default), now_playing,
top_rated, or upcoming.

When any of --sort, --genre, --min-rating, or --year is set the generic
discovery endpoint is queried instead of the natural list, with the
category's default sort filling in when --sort is absent.

--filter and --match narrow what is displayed client-side; they do not
change which pages are fetched.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBrowse,
}

func init() {
	rootCmd.AddCommand(browseCmd)

	browseCmd.Flags().StringVarP(&sortKey, "sort", "s", "", "sort order (popular, rating, newest, oldest, votes)")
	browseCmd.Flags().StringSliceVarP(&genreNames, "genre", "g", nil, "genre names to filter by (repeatable)")
	browseCmd.Flags().Float64Var(&minRating, "min-rating", 0, "minimum rating, 0 disables")
	browseCmd.Flags().IntVar(&year, "year", 0, "exact release year")
	browseCmd.Flags().IntVar(&maxPages, "pages", 0, "number of pages to fetch (0 = interactive)")
	browseCmd.Flags().StringVarP(&filterExpr, "filter", "f", "", "client-side filter expression")
	browseCmd.Flags().StringVarP(&preset, "preset", "p", "", "use a preset filter from config")
	browseCmd.Flags().StringVarP(&matchTitle, "match", "m", "", "fuzzy title match")
}

func runBrowse(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	category := catalog.CategoryPopular
	if len(args) > 0 {
		var err error
		category, err = catalog.CategoryFromKey(args[0])
		if err != nil {
			return err
		}
	}

	filters, err := buildFilters()
	if err != nil {
		return err
	}

	display, err := buildDisplayFilter()
	if err != nil {
		return err
	}

	limit := maxPages
	if limit == 0 {
		limit = cfg.Browse.MaxPages
	}
	interactive := limit == 0 && isatty.IsTerminal(os.Stdin.Fd())
	if limit == 0 && !interactive {
		limit = 1
	}

	logger.Info().
		Str("category", category.Key()).
		Bool("discovery", filters.NeedsDiscovery()).
		Int("active_filters", filters.ActiveCount()).
		Msg("Browsing movies")

	fd := feed.New(tmdbClient, category, logger,
		feed.WithPrefetchDistance(cfg.Browse.PrefetchDistance),
		feed.WithFilters(filters),
	)
	defer fd.Close()

	printBrowseHeader(category, filters)

	fd.Start(ctx)
	if err := resolveFailure(ctx, fd, interactive); err != nil {
		return err
	}

	printed := 0
	pagesShown := 0
	scanner := bufio.NewScanner(os.Stdin)

	for {
		items := fd.Items()
		printMovies(display.apply(items[printed:]), printed)
		printed = len(items)
		pagesShown++

		if fd.Exhausted() {
			fmt.Println("\nEnd of list.")
			return nil
		}
		if !interactive && pagesShown >= limit {
			return nil
		}
		if interactive {
			fmt.Printf("\n-- more -- [Enter to continue, q to quit]: ")
			if !scanner.Scan() {
				return scanner.Err()
			}
			if strings.ToLower(strings.TrimSpace(scanner.Text())) == "q" {
				return nil
			}
		}

		fd.OnVisible(ctx, printed-1)
		if err := resolveFailure(ctx, fd, interactive); err != nil {
			return err
		}
	}
}

// resolveFailure surfaces a failed load slot: interactively it offers a
// retry of the same page, otherwise it returns the error.
func resolveFailure(ctx context.Context, fd *feed.Feed, interactive bool) error {
	scanner := bufio.NewScanner(os.Stdin)
	for {
		state := failedState(fd)
		if state == nil {
			return nil
		}
		if !interactive {
			return fmt.Errorf("page load failed: %s", state.Message)
		}
		fmt.Printf("\n✗ Load failed: %s\n", state.Message)
		fmt.Printf("Retry? [y/N]: ")
		if !scanner.Scan() || strings.ToLower(strings.TrimSpace(scanner.Text())) != "y" {
			return fmt.Errorf("page load failed: %s", state.Message)
		}
		fd.Retry(ctx)
	}
}

func failedState(fd *feed.Feed) *feed.LoadState {
	initial, appendState, refresh := fd.States()
	for _, s := range []feed.LoadState{initial, appendState, refresh} {
		if s.IsFailed() {
			return &s
		}
	}
	return nil
}

// buildFilters assembles the filter/sort state sent to the remote service
func buildFilters() (catalog.Filters, error) {
	filters := catalog.Filters{
		MinRating: minRating,
		Year:      year,
	}

	if sortKey != "" {
		sort, err := catalog.SortFromKey(sortKey)
		if err != nil {
			return catalog.Filters{}, err
		}
		filters.Sort = sort
	}

	for _, name := range genreNames {
		genre, ok := catalog.GenreByName(name)
		if !ok {
			return catalog.Filters{}, fmt.Errorf("unknown genre: %s (see 'reelfeed genres')", name)
		}
		filters.GenreIDs = append(filters.GenreIDs, genre.ID)
	}

	return filters, nil
}

// displayFilter narrows what is printed, after fetching
type displayFilter struct {
	compiled *filter.Filter
	match    string
}

func buildDisplayFilter() (*displayFilter, error) {
	expr, err := displayExpression()
	if err != nil {
		return nil, err
	}

	d := &displayFilter{match: matchTitle}
	if expr != "" {
		d.compiled, err = filter.Compile(expr)
		if err != nil {
			return nil, fmt.Errorf("invalid filter expression: %w", err)
		}
	}
	return d, nil
}

// displayExpression determines the client-side filter expression to use
func displayExpression() (string, error) {
	// Priority: command line filter > preset > config default
	if filterExpr != "" {
		return filterExpr, nil
	}

	if preset != "" {
		if expression, ok := cfg.Filter.Presets[preset]; ok {
			return expression, nil
		}
		return "", fmt.Errorf("preset '%s' not found in config", preset)
	}

	return cfg.Filter.DefaultExpression, nil
}

func (d *displayFilter) apply(movies []catalog.Movie) []catalog.Movie {
	if d.compiled != nil {
		movies = d.compiled.Apply(movies)
	}
	return filter.FuzzyMatch(movies, d.match)
}

func printBrowseHeader(category catalog.Category, filters catalog.Filters) {
	fmt.Printf("%s", category.Label())
	if filters.NeedsDiscovery() {
		fmt.Printf(", sorted by %s", filters.SortOrDefault(category).Label())
		if n := filters.ActiveCount(); n > 0 {
			fmt.Printf(", %d filter(s) active", n)
		}
	}
	fmt.Println()
	fmt.Println(strings.Repeat("-", 80))
}

func printMovies(movies []catalog.Movie, offset int) {
	for i, movie := range movies {
		fmt.Printf("%4d. %s (%s)  ★ %.1f  (%d votes)\n",
			offset+i+1, movie.Title, movie.ReleaseDate, movie.Rating, movie.Votes)
		if len(movie.Genres) > 0 {
			fmt.Printf("      %s\n", strings.Join(movie.Genres, ", "))
		}
	}
}

// genresCmd prints the fixed genre catalog
var genresCmd = &cobra.Command{
	Use:   "genres",
	Short: "List the known movie genres",
	Run: func(cmd *cobra.Command, args []string) {
		for _, g := range catalog.Genres() {
			fmt.Printf("%6d  %s\n", g.ID, g.Name)
		}
	},
}

func init() {
	rootCmd.AddCommand(genresCmd)
}
