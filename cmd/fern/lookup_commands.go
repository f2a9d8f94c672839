package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/Ramsey-B/fern/pkg/models"
	"github.com/Ramsey-B/fern/pkg/service"
	"github.com/spf13/cobra"
)

func newTitleCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "title <id>",
		Short: "Look a title up on the site",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withLookupService(cmd.Context(), func(c context.Context, svc *service.Service) error {
				record, err := svc.GetTitle(c, args[0])
				if err != nil {
					return err
				}
				if jsonOutput {
					return writeJSON(cmd, models.StoredTitle{Record: record})
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTitle(record))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the record as JSON")
	return cmd
}

func newSearchCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search titles and people",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withLookupService(cmd.Context(), func(c context.Context, svc *service.Service) error {
				result, err := svc.SearchTitle(c, strings.Join(args, " "))
				if err != nil {
					return err
				}
				if jsonOutput {
					return writeJSON(cmd, result)
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderSearch(result))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the result as JSON")
	return cmd
}

func renderTitle(record models.TitleRecord) string {
	title := record.Base()

	rows := [][]string{
		{"ID", title.PrefixedID},
		{"Title", title.DisplayTitle()},
		{"Kind", title.Kind},
		{"Year", years(title.Year, title.YearEnd)},
		{"Rating", rating(title.Rating, title.Votes)},
		{"Runtime", optionalInt(title.Duration, " min")},
		{"Genres", strings.Join(title.Genres, ", ")},
		{"Languages", strings.Join(title.LanguagesText, ", ")},
		{"Countries", strings.Join(title.CountryCodes, ", ")},
		{"Cast", castNames(title.Cast(), 5)},
	}

	switch r := record.(type) {
	case *models.SeriesTitle:
		rows = append(rows, []string{"Seasons", strings.Join(r.InfoSeries.DisplaySeasons, ", ")})
	case *models.EpisodeTitle:
		rows = append(rows, []string{"Episode", r.InfoEpisode.String()})
		if r.InfoEpisode.SeriesTitle != nil {
			rows = append(rows, []string{"Series", *r.InfoEpisode.SeriesTitle})
		}
	}

	return renderTable([]string{"Field", "Value"}, rows, nil)
}

func renderSearch(result *models.SearchResult) string {
	var out strings.Builder

	rows := make([][]string, 0, len(result.Titles))
	for _, title := range result.Titles {
		kind := ""
		if title.Kind != nil {
			kind = *title.Kind
		}
		rows = append(rows, []string{title.PrefixedID, title.Title, kind, optionalInt(title.Year, "")})
	}
	out.WriteString(renderTable([]string{"ID", "Title", "Kind", "Year"}, rows, []columnAlignment{alignLeft, alignLeft, alignLeft, alignRight}))

	if len(result.Names) > 0 {
		rows = rows[:0]
		for _, name := range result.Names {
			rows = append(rows, []string{name.PrefixedID, name.Name, name.Job})
		}
		out.WriteString("\n")
		out.WriteString(renderTable([]string{"ID", "Name", "Job"}, rows, nil))
	}

	return out.String()
}

func optionalInt(v *int, suffix string) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v) + suffix
}

func years(start, end *int) string {
	if end == nil || (start != nil && *start == *end) {
		return optionalInt(start, "")
	}
	return optionalInt(start, "") + "-" + optionalInt(end, "")
}

func rating(value *float64, votes *int) string {
	if value == nil {
		return ""
	}
	if votes == nil {
		return strconv.FormatFloat(*value, 'f', 1, 64)
	}
	return fmt.Sprintf("%.1f (%d votes)", *value, *votes)
}

func castNames(cast []models.Credit, limit int) string {
	names := make([]string, 0, limit)
	for _, credit := range cast {
		if len(names) == limit {
			break
		}
		names = append(names, credit.Name)
	}
	return strings.Join(names, ", ")
}
