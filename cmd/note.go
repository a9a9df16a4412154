package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/sirupsen/logrus"
	"github.com/solvenote/solvenote"
	"github.com/solvenote/solvenote/internal/service"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(createNoteCmd())
	rootCmd.AddCommand(getNoteCmd())
	rootCmd.AddCommand(listNotesCmd())
	rootCmd.AddCommand(updateNoteCmd())
	rootCmd.AddCommand(deleteNoteCmd())
	rootCmd.AddCommand(checkinCmd())
	rootCmd.AddCommand(facetsCmd())
	rootCmd.AddCommand(statsCmd())
}

func createNoteCmd() *cobra.Command {
	var title string
	var content string
	var tags []string
	var difficulty string
	var sources []string
	var independent bool
	var problemURL string

	var required = []string{"title", "difficulty", "source"}

	command := &cobra.Command{
		Use:     "create",
		Short:   "create a note",
		Long:    `create a note for a solved problem`,
		Example: `solvenote create -t "Two Sum" -d EASY -s "LeetCode Top 100" --tags arrays,hashmap`,
		Run: func(cmd *cobra.Command, args []string) {
			if checkMissingFlags(cmd, required) {
				return
			}

			req := &solvenote.CreateNoteRequest{
				Title:       title,
				Tags:        tags,
				Difficulty:  strings.ToUpper(difficulty),
				Sources:     sources,
				Independent: independent,
			}
			if content != "" {
				if !json.Valid([]byte(content)) {
					color.Red("content must be a valid JSON document")
					return
				}
				req.Content = json.RawMessage(content)
			}
			if problemURL != "" {
				req.ProblemURL = &problemURL
			}

			note, err := apiClient().CreateNote(context.Background(), req)
			if err != nil {
				logrus.Error(err)
				return
			}

			logrus.Infof("note created with id: %s slug: %s", note.ID, note.Slug)
		},
	}

	command.Flags().StringVarP(&title, "title", "t", "", "title of the note (required)")
	command.Flags().StringVarP(&content, "content", "c", "", "content as a JSON document")
	command.Flags().StringSliceVar(&tags, "tags", nil, "tags for the note")
	command.Flags().StringVarP(&difficulty, "difficulty", "d", "", "EASY, MEDIUM or HARD (required)")
	command.Flags().StringSliceVarP(&sources, "source", "s", nil, "problem list the note belongs to (required)")
	command.Flags().BoolVar(&independent, "independent", false, "solved without help")
	command.Flags().StringVarP(&problemURL, "url", "u", "", "link to the original problem")

	command.Flags().SortFlags = false

	return command
}

func getNoteCmd() *cobra.Command {
	var noteID string
	var slug string

	command := &cobra.Command{
		Use:     "get",
		Short:   "get a note",
		Example: "solvenote get -n <note-id>\nsolvenote get --slug two-sum",
		Run: func(cmd *cobra.Command, args []string) {
			if noteID == "" && slug == "" {
				color.Red("missing: --note-id or --slug")
				return
			}

			var note *service.Note
			var err error
			if noteID != "" {
				note, err = apiClient().GetNote(context.Background(), noteID)
			} else {
				note, err = apiClient().GetNoteBySlug(context.Background(), slug)
			}
			if err != nil {
				logrus.Error(err)
				return
			}

			printNote(note)
		},
	}

	command.Flags().StringVarP(&noteID, "note-id", "n", "", "note id")
	command.Flags().StringVarP(&slug, "slug", "l", "", "note slug")

	command.SetHelpCommand(&cobra.Command{Use: "no-help", Hidden: true})
	command.Flags().SortFlags = false

	return command
}

func listNotesCmd() *cobra.Command {
	var tags []string
	var sources []string
	var mode string
	var tagsMode string
	var sourcesMode string
	var difficulty string
	var query string
	var sortKey string
	var order string
	var page int
	var pageSize int

	command := &cobra.Command{
		Use:   "list",
		Short: "list notes",
		Example: `solvenote list --tags arrays,hashmap --mode or
solvenote list -d HARD -q ladder --sort title --order asc`,
		Run: func(cmd *cobra.Command, args []string) {
			list, err := apiClient().ListNotes(context.Background(), &solvenote.ListNotesOptions{
				Tags:        tags,
				Sources:     sources,
				Mode:        mode,
				TagsMode:    tagsMode,
				SourcesMode: sourcesMode,
				Difficulty:  difficulty,
				Query:       query,
				Sort:        sortKey,
				Order:       order,
				Page:        page,
				PageSize:    pageSize,
			})
			if err != nil {
				logrus.Error(err)
				return
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.SetHeader([]string{"ID", "Title", "Difficulty", "Tags", "Solved", "Last Solved"})
			for _, note := range list.Items {
				difficulty := ""
				if note.Meta != nil {
					difficulty = string(note.Meta.Difficulty)
				}
				table.Append([]string{
					note.ID,
					note.Title,
					difficulty,
					strings.Join(note.Tags, ","),
					strconv.FormatInt(note.DisplayProgress.Count, 10),
					note.DisplayProgress.LatestDate,
				})
			}
			table.Render()

			fmt.Printf("page %d/%d, %d notes\n", list.Page, list.TotalPages, list.Total)
		},
	}

	command.Flags().StringSliceVar(&tags, "tags", nil, "filter by tags")
	command.Flags().StringSliceVar(&sources, "sources", nil, "filter by sources")
	command.Flags().StringVarP(&mode, "mode", "m", "", "facet match mode: and, or")
	command.Flags().StringVar(&tagsMode, "tags-mode", "", "tag match mode, overrides --mode")
	command.Flags().StringVar(&sourcesMode, "sources-mode", "", "source match mode, overrides --mode")
	command.Flags().StringVarP(&difficulty, "difficulty", "d", "", "filter by difficulty")
	command.Flags().StringVarP(&query, "query", "q", "", "search in title, slug and tags")
	command.Flags().StringVar(&sortKey, "sort", "", "sort key: updatedAt, createdAt, title")
	command.Flags().StringVar(&order, "order", "", "sort order: asc, desc")
	command.Flags().IntVar(&page, "page", 0, "page number")
	command.Flags().IntVar(&pageSize, "page-size", 0, "page size")

	command.Flags().SortFlags = false

	return command
}

func updateNoteCmd() *cobra.Command {
	var noteID string
	var title string
	var content string
	var tags []string
	var difficulty string
	var sources []string
	var problemURL string

	var required = []string{"note-id"}

	command := &cobra.Command{
		Use:     "update",
		Short:   "update a note",
		Long:    `update a note; only the provided fields change`,
		Example: `solvenote update -n <note-id> -t "Two Sum II" -d MEDIUM`,
		Run: func(cmd *cobra.Command, args []string) {
			if checkMissingFlags(cmd, required) {
				return
			}

			req := &solvenote.UpdateNoteRequest{}
			if title != "" {
				req.Title = &title
			}
			if content != "" {
				if !json.Valid([]byte(content)) {
					color.Red("content must be a valid JSON document")
					return
				}
				req.Content = json.RawMessage(content)
			}
			if cmd.Flag("tags").Changed {
				req.Tags = tags
			}
			if difficulty != "" {
				upper := strings.ToUpper(difficulty)
				req.Difficulty = &upper
			}
			if cmd.Flag("source").Changed {
				req.Sources = sources
			}
			if problemURL != "" {
				req.ProblemURL = &problemURL
			}

			note, err := apiClient().UpdateNote(context.Background(), noteID, req)
			if err != nil {
				logrus.Error(err)
				return
			}

			printNote(note)
		},
	}

	command.Flags().StringVarP(&noteID, "note-id", "n", "", "note id (required)")
	command.Flags().StringVarP(&title, "title", "t", "", "title")
	command.Flags().StringVarP(&content, "content", "c", "", "content as a JSON document")
	command.Flags().StringSliceVar(&tags, "tags", nil, "tags, replaces the current set")
	command.Flags().StringVarP(&difficulty, "difficulty", "d", "", "EASY, MEDIUM or HARD")
	command.Flags().StringSliceVarP(&sources, "source", "s", nil, "sources, replaces the current set")
	command.Flags().StringVarP(&problemURL, "url", "u", "", "link to the original problem")

	command.Flags().SortFlags = false

	return command
}

func deleteNoteCmd() *cobra.Command {
	var noteID string

	var required = []string{"note-id"}

	command := &cobra.Command{
		Use:     "delete",
		Short:   "delete a note",
		Example: "solvenote delete -n <note-id>",
		Run: func(cmd *cobra.Command, args []string) {
			if checkMissingFlags(cmd, required) {
				return
			}

			if err := apiClient().DeleteNote(context.Background(), noteID); err != nil {
				logrus.Error(err)
				return
			}

			color.Green("note deleted")
		},
	}

	command.Flags().StringVarP(&noteID, "note-id", "n", "", "note id (required)")
	command.Flags().SortFlags = false

	return command
}

func checkinCmd() *cobra.Command {
	var noteID string
	var date string

	var required = []string{"note-id"}

	command := &cobra.Command{
		Use:     "checkin",
		Short:   "record another attempt of a note",
		Example: "solvenote checkin -n <note-id> --date 2024-06-15",
		Run: func(cmd *cobra.Command, args []string) {
			if checkMissingFlags(cmd, required) {
				return
			}

			if date != "" {
				if _, err := time.Parse("2006-01-02", date); err != nil {
					color.Red("invalid date, expected YYYY-MM-DD")
					return
				}
			}

			note, err := apiClient().CheckIn(context.Background(), noteID, date)
			if err != nil {
				logrus.Error(err)
				return
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.SetHeader([]string{"ID", "First Solved", "Last Solved", "Times Solved"})
			table.Append([]string{
				note.ID,
				note.DisplayProgress.FirstDate,
				note.DisplayProgress.LatestDate,
				strconv.FormatInt(note.DisplayProgress.Count, 10),
			})
			table.Render()
		},
	}

	command.Flags().StringVarP(&noteID, "note-id", "n", "", "note id (required)")
	command.Flags().StringVarP(&date, "date", "d", "", "attempt date, defaults to today")
	command.Flags().SortFlags = false

	return command
}

func facetsCmd() *cobra.Command {
	command := &cobra.Command{
		Use:   "facets",
		Short: "list known tags and sources",
		Run: func(cmd *cobra.Command, args []string) {
			facets, err := apiClient().Facets(context.Background())
			if err != nil {
				logrus.Error(err)
				return
			}

			printField("Tags", strings.Join(facets.Tags, ", "))
			printField("Sources", strings.Join(facets.Sources, ", "))
		},
	}

	return command
}

func statsCmd() *cobra.Command {
	command := &cobra.Command{
		Use:   "stats",
		Short: "show dashboard statistics",
		Run: func(cmd *cobra.Command, args []string) {
			stats, err := apiClient().Stats(context.Background())
			if err != nil {
				logrus.Error(err)
				return
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.SetHeader([]string{"Total", "Easy", "Medium", "Hard"})
			table.Append([]string{
				strconv.Itoa(stats.TotalArticles),
				strconv.Itoa(stats.DifficultyDistribution.Easy),
				strconv.Itoa(stats.DifficultyDistribution.Medium),
				strconv.Itoa(stats.DifficultyDistribution.Hard),
			})
			table.Render()

			if len(stats.TopTags) > 0 {
				tagTable := tablewriter.NewWriter(os.Stdout)
				tagTable.SetHeader([]string{"Tag", "Count"})
				for _, tag := range stats.TopTags {
					tagTable.Append([]string{tag.Tag, strconv.Itoa(tag.Count)})
				}
				tagTable.Render()
			}

			trendTable := tablewriter.NewWriter(os.Stdout)
			trendTable.SetHeader([]string{"Month", "Notes"})
			for _, month := range stats.TrendLast6Months {
				trendTable.Append([]string{month.Month, strconv.Itoa(month.Count)})
			}
			trendTable.Render()
		},
	}

	return command
}

func printNote(note *service.Note) {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"ID", "Slug", "Difficulty", "Solved", "Last Solved"})
	difficulty := ""
	if note.Meta != nil {
		difficulty = string(note.Meta.Difficulty)
	}
	table.Append([]string{
		note.ID,
		note.Slug,
		difficulty,
		strconv.FormatInt(note.DisplayProgress.Count, 10),
		note.DisplayProgress.LatestDate,
	})
	table.Render()

	printField("Title", note.Title)
	printField("Tags", strings.Join(note.Tags, ", "))
	printField("Sources", strings.Join(note.Sources, ", "))
	if note.Meta != nil && note.Meta.ProblemURL != nil {
		printField("Problem", *note.Meta.ProblemURL)
	}
	printField("Content", service.Summary(note.Content, 0))
}

func printField(label, value string) {
	color.Set(color.FgCyan)
	fmt.Print(label)
	color.Unset()
	fmt.Printf(": %s\n", value)
}

// checkMissingFlags checks if the required flags are set and returns ok if they are set
func checkMissingFlags(cmd *cobra.Command, flags []string) bool {
	var missingFlags []string
	var providedFlags []string
	for _, required := range flags {
		if cmd.Flag(required).Changed == false {
			missingFlags = append(missingFlags, required)
		} else {
			value := cmd.Flag(required).Value.String()
			providedFlags = append(providedFlags, fmt.Sprintf("--%s=%s", required, value))
		}
	}

	if len(missingFlags) > 0 {
		var msg string
		for _, f := range missingFlags {
			msg += fmt.Sprintf("--%s ", f)
		}

		color.Red("missing: %s\n", msg)
		if len(providedFlags) > 0 {
			provided := strings.Join(providedFlags, " ")
			color.Green("provide: %s\n", provided)
		}

		cmd.Println("")

		cmd.Usage()

		return true
	}

	return false
}
