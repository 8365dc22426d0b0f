package cmd

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	creatorsListCmd.Flags().String("q", "", "substring filter on name, handle or platform")
	creatorsListCmd.Flags().Int("limit", 0, "maximum rows to return")

	dupesCmd.Flags().Float64("min", 0, "minimum correlation, 0 for the server default")

	creatorsCmd.AddCommand(creatorsListCmd)
	creatorsCmd.AddCommand(dupesCmd)
	creatorsCmd.AddCommand(rosterCmd)
	rootCmd.AddCommand(creatorsCmd)
}

var creatorsCmd = &cobra.Command{
	Use:   "creators",
	Short: "Inspect stored creators.",
}

var creatorsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored creators, optionally filtered.",
	Run: func(cmd *cobra.Command, args []string) {
		query, _ := cmd.Flags().GetString("q")
		limit, _ := cmd.Flags().GetInt("limit")

		var creators []struct {
			ID            int64  `json:"id"`
			Name          string `json:"name"`
			Handle        string `json:"handle"`
			Platform      string `json:"platform"`
			FollowerCount *int64 `json:"follower_count"`
		}
		res, err := client.R().
			SetContext(cmd.Context()).
			SetQueryParam("q", query).
			SetQueryParam("limit", strconv.Itoa(limit)).
			SetResult(&creators).
			Get("/v1/creators")
		if err := expect(res, err, 200); err != nil {
			log.Fatal(err)
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"ID", "Name", "Handle", "Platform", "Followers"})
		for _, c := range creators {
			followers := "-"
			if c.FollowerCount != nil {
				followers = strconv.FormatInt(*c.FollowerCount, 10)
			}
			t.AppendRow(table.Row{c.ID, c.Name, c.Handle, c.Platform, followers})
		}
		t.SetStyle(table.StyleRounded)
		t.Render()
	},
}

var rosterCmd = &cobra.Command{
	Use:   "roster <campaign id>",
	Short: "Print a campaign's creators with their scores.",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) < 1 {
			fmt.Fprintln(os.Stderr, "incorrect number of arguments")
			os.Exit(1)
		}
		campaignID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			log.Fatal(err)
		}

		var rows []struct {
			AssociationID int64    `json:"association_id"`
			Name          string   `json:"name"`
			Handle        string   `json:"handle"`
			Platform      string   `json:"platform"`
			TotalScore    *float64 `json:"total_score"`
		}
		res, err := client.R().
			SetContext(cmd.Context()).
			SetResult(&rows).
			Get(fmt.Sprintf("/v1/campaigns/%d/creators", campaignID))
		if err := expect(res, err, 200); err != nil {
			log.Fatal(err)
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"Association", "Name", "Handle", "Platform", "Total"})
		for _, row := range rows {
			total := "unscored"
			if row.TotalScore != nil {
				total = strconv.FormatFloat(*row.TotalScore, 'f', 2, 64)
			}
			t.AppendRow(table.Row{row.AssociationID, row.Name, row.Handle, row.Platform, total})
		}
		t.SetStyle(table.StyleRounded)
		t.Render()
	},
}

var dupesCmd = &cobra.Command{
	Use:   "dupes",
	Short: "Suggest likely duplicate creator rows.",
	Run: func(cmd *cobra.Command, args []string) {
		minCorrelation, _ := cmd.Flags().GetFloat64("min")

		type ref struct {
			ID       int64  `json:"ID"`
			Handle   string `json:"Handle"`
			Platform string `json:"Platform"`
		}
		var suggestions []struct {
			Left        ref     `json:"Left"`
			Right       ref     `json:"Right"`
			Correlation float64 `json:"Correlation"`
		}
		res, err := client.R().
			SetContext(cmd.Context()).
			SetQueryParam("min", strconv.FormatFloat(minCorrelation, 'f', -1, 64)).
			SetResult(&suggestions).
			Get("/v1/links/duplicates")
		if err := expect(res, err, 200); err != nil {
			log.Fatal(err)
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"Left", "Right", "Correlation"})
		for _, s := range suggestions {
			t.AppendRow(table.Row{
				fmt.Sprintf("%s (%s)", s.Left.Handle, s.Left.Platform),
				fmt.Sprintf("%s (%s)", s.Right.Handle, s.Right.Platform),
				strconv.FormatFloat(s.Correlation, 'f', 3, 64),
			})
		}
		t.SetStyle(table.StyleRounded)
		t.Render()
	},
}
