package cmd

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/spf13/cobra"
)

func init() {
	importCmd.Flags().Bool("dom", false, "crawl the rendered report instead of the collection API")
	importCmd.Flags().Bool("details", false, "fetch per-creator detail payloads")
	importCmd.Flags().Int("max-profiles", 100, "profile cap for crawl imports")
	importCmd.Flags().Int("detail-limit", 0, "how many crawled profiles get detail lookups, -1 for all")

	rootCmd.AddCommand(importCmd)
}

var importCmd = &cobra.Command{
	Use:   "import <campaign id> <publish link>",
	Short: "Import creators from a report or publish link into a campaign.",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) < 2 {
			fmt.Fprintln(os.Stderr, "incorrect number of arguments")
			os.Exit(1)
		}
		campaignID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			log.Fatal(err)
		}

		useDom, _ := cmd.Flags().GetBool("dom")
		withDetails, _ := cmd.Flags().GetBool("details")
		maxProfiles, _ := cmd.Flags().GetInt("max-profiles")
		detailLimit, _ := cmd.Flags().GetInt("detail-limit")

		var summary struct {
			Imported int      `json:"imported"`
			Warnings []string `json:"warnings"`
		}
		res, err := client.R().
			SetContext(cmd.Context()).
			SetBody(map[string]any{
				"publish_link": args[1],
				"use_dom":      useDom,
				"with_details": withDetails,
				"max_profiles": maxProfiles,
				"detail_limit": detailLimit,
			}).
			SetResult(&summary).
			Post(fmt.Sprintf("/v1/campaigns/%d/import", campaignID))
		if err := expect(res, err, 200); err != nil {
			log.Fatal(err)
		}

		log.Printf("imported %d creators", summary.Imported)
		for _, warning := range summary.Warnings {
			log.Printf("warning: %s", warning)
		}
	},
}
