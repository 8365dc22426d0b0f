package cmd

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/spf13/cobra"
)

func init() {
	scoreCmd.Flags().Bool("derive", false, "recompute reach/interest/engagement from the stored profile")
	scoreCmd.Flags().Bool("save-blended", false, "persist the blended engagement score")
	scoreCmd.Flags().Float64("reach", 0, "reach score (ignored with --derive)")
	scoreCmd.Flags().Float64("interest", 0, "interest score (ignored with --derive)")
	scoreCmd.Flags().Float64("engagement-rate", 0, "engagement rate percent (ignored with --derive)")
	scoreCmd.Flags().Float64("engagement", 0, "engagement score (ignored with --derive)")
	scoreCmd.Flags().Float64("originality", 0, "content originality slider")
	scoreCmd.Flags().Float64("creativity", 0, "content creativity slider")
	scoreCmd.Flags().Float64("organic", -1, "organic posts over the last two months, -1 for unknown")
	scoreCmd.Flags().Float64("sponsored", -1, "sponsored posts over the last two months, -1 for unknown")
	scoreCmd.Flags().Float64("authority", 0, "authority slider")
	scoreCmd.Flags().Float64("values", 0, "values slider")
	scoreCmd.Flags().String("notes", "", "qualitative notes")

	rootCmd.AddCommand(scoreCmd)
}

var scoreCmd = &cobra.Command{
	Use:   "score <association id>",
	Short: "Compute and save composite scores for one campaign creator.",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) < 1 {
			fmt.Fprintln(os.Stderr, "incorrect number of arguments")
			os.Exit(1)
		}
		associationID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			log.Fatal(err)
		}

		body := map[string]any{}
		flags := cmd.Flags()
		boolFlag := func(key, name string) {
			v, _ := flags.GetBool(name)
			body[key] = v
		}
		floatFlag := func(key, name string) {
			v, _ := flags.GetFloat64(name)
			body[key] = v
		}
		boolFlag("derive", "derive")
		boolFlag("save_blended", "save-blended")
		floatFlag("reach_score", "reach")
		floatFlag("interest_score", "interest")
		floatFlag("engagement_rate", "engagement-rate")
		floatFlag("engagement_score", "engagement")
		floatFlag("content_originality", "originality")
		floatFlag("content_creativity", "creativity")
		floatFlag("authority_overall", "authority")
		floatFlag("values_overall", "values")
		if v, _ := flags.GetFloat64("organic"); v >= 0 {
			body["organic_posts_l2m"] = v
		}
		if v, _ := flags.GetFloat64("sponsored"); v >= 0 {
			body["sponsored_posts_l2m"] = v
		}
		notes, _ := flags.GetString("notes")
		body["qualitative_notes"] = notes

		var saved map[string]any
		res, err := client.R().
			SetContext(cmd.Context()).
			SetBody(body).
			SetResult(&saved).
			Post(fmt.Sprintf("/v1/associations/%d/scores", associationID))
		if err := expect(res, err, 200); err != nil {
			log.Fatal(err)
		}

		log.Printf("saved scores: total %v", saved["total_score"])
	},
}
