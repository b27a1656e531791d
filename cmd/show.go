package cmd

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/reelfeed/reelfeed/catalog"
)

var (
	castLimit    int
	withReviews  bool
	reviewedPage int
)

// showCmd represents the show command
var showCmd = &cobra.Command{
	Use:   "show <movie-id>",
	Short: "Show details and credits for a movie",
	Long:  `Fetch and display the full record for a single movie: details, cast and crew, and optionally the first page of reviews. The lookups run concurrently.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)

	showCmd.Flags().IntVar(&castLimit, "cast", 10, "number of cast members to show")
	showCmd.Flags().BoolVar(&withReviews, "reviews", false, "include the first page of reviews")
}

func runShow(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid movie id '%s': must be an integer", args[0])
	}

	ctx := context.Background()

	var (
		details catalog.Details
		credits catalog.Credits
		reviews []catalog.Review
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		wire, err := tmdbClient.MovieDetails(gctx, id)
		if err != nil {
			return err
		}
		details = catalog.DetailsFromWire(wire)
		return nil
	})
	g.Go(func() error {
		wire, err := tmdbClient.MovieCredits(gctx, id)
		if err != nil {
			return err
		}
		credits = catalog.CreditsFromWire(wire)
		return nil
	})
	if withReviews {
		g.Go(func() error {
			wire, err := tmdbClient.MovieReviews(gctx, id, 1)
			if err != nil {
				return err
			}
			reviews = catalog.ReviewsFromWire(wire.Results)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	printDetails(details)
	printCredits(credits)
	if withReviews {
		printReviews(reviews)
	}

	return nil
}

func printDetails(d catalog.Details) {
	fmt.Printf("%s (%s)\n", d.Title, d.ReleaseDate)
	if d.Tagline != "" {
		fmt.Printf("“%s”\n", d.Tagline)
	}
	fmt.Println(strings.Repeat("-", 80))
	fmt.Printf("Rating:   ★ %.1f (%d votes)\n", d.Rating, d.Votes)
	if d.Runtime > 0 {
		fmt.Printf("Runtime:  %dh %02dm\n", d.Runtime/60, d.Runtime%60)
	}
	if len(d.Genres) > 0 {
		fmt.Printf("Genres:   %s\n", strings.Join(d.Genres, ", "))
	}
	if d.Status != "" {
		fmt.Printf("Status:   %s\n", d.Status)
	}
	if d.Homepage != "" {
		fmt.Printf("Homepage: %s\n", d.Homepage)
	}
	if d.Overview != "" {
		fmt.Printf("\n%s\n", d.Overview)
	}
}

func printCredits(c catalog.Credits) {
	if len(c.Cast) > 0 {
		fmt.Printf("\nCast:\n")
		limit := min(castLimit, len(c.Cast))
		for _, member := range c.Cast[:limit] {
			fmt.Printf("  • %s as %s\n", member.Name, member.Character)
		}
	}

	var directors, writers []string
	for _, member := range c.Crew {
		switch member.Job {
		case "Director":
			directors = append(directors, member.Name)
		case "Writer", "Screenplay":
			writers = append(writers, member.Name)
		}
	}
	if len(directors) > 0 {
		fmt.Printf("\nDirected by: %s\n", strings.Join(directors, ", "))
	}
	if len(writers) > 0 {
		fmt.Printf("Written by:  %s\n", strings.Join(writers, ", "))
	}
}

func printReviews(reviews []catalog.Review) {
	if len(reviews) == 0 {
		fmt.Printf("\nNo reviews.\n")
		return
	}
	fmt.Printf("\nReviews:\n")
	for _, review := range reviews {
		printReview(review)
	}
}

func printReview(review catalog.Review) {
	fmt.Printf("\n» %s", review.Author)
	if review.HasRating {
		fmt.Printf(" (★ %.0f)", review.Rating)
	}
	fmt.Println()
	fmt.Println(truncate(review.Content, 400))
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "…"
}

// reviewsCmd represents the reviews command
var reviewsCmd = &cobra.Command{
	Use:   "reviews <movie-id>",
	Short: "List reviews for a movie",
	Long:  `List the reviews for a single movie. By default every page is walked; --page restricts the output to one page.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runReviews,
}

func init() {
	rootCmd.AddCommand(reviewsCmd)

	reviewsCmd.Flags().IntVar(&reviewedPage, "page", 0, "fetch a single page (0 = all pages)")
}

func runReviews(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid movie id '%s': must be an integer", args[0])
	}

	ctx := context.Background()

	if reviewedPage > 0 {
		page, err := tmdbClient.MovieReviews(ctx, id, reviewedPage)
		if err != nil {
			return err
		}
		fmt.Printf("Page %d of %d (%d reviews total)\n", page.Page, page.TotalPages, page.TotalResults)
		for _, review := range catalog.ReviewsFromWire(page.Results) {
			printReview(review)
		}
		return nil
	}

	var total int
	page := 1
	for {
		result, err := tmdbClient.MovieReviews(ctx, id, page)
		if err != nil {
			return err
		}
		for _, review := range catalog.ReviewsFromWire(result.Results) {
			printReview(review)
		}
		total += len(result.Results)

		if page >= result.TotalPages {
			break
		}
		page++
	}

	if total == 0 {
		fmt.Println("No reviews.")
	} else {
		fmt.Printf("\n%d review(s).\n", total)
	}
	return nil
}
