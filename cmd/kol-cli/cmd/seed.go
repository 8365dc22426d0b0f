package cmd

import (
	"fmt"
	"log"
	"strconv"

	"github.com/mazen160/go-random"
	"github.com/spf13/cobra"
)

func init() {
	seedCmd.Flags().Int("count", 5, "how many placeholder links to import")

	rootCmd.AddCommand(seedCmd)
}

var seedPlatformHosts = []string{
	"www.instagram.com",
	"www.tiktok.com",
	"www.youtube.com",
}

// seedCmd fills a campaign with synthetic creators for demos and
// local development.
var seedCmd = &cobra.Command{
	Use:   "seed <campaign id>",
	Short: "Import randomly generated placeholder creators into a campaign.",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) < 1 {
			log.Fatal("incorrect number of arguments")
		}
		campaignID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			log.Fatal(err)
		}
		count, _ := cmd.Flags().GetInt("count")

		for i := 0; i < count; i++ {
			slug, err := random.String(8)
			if err != nil {
				log.Fatal(err)
			}
			hostIdx, err := random.IntRange(0, len(seedPlatformHosts))
			if err != nil {
				log.Fatal(err)
			}
			link := fmt.Sprintf("https://%s/%s", seedPlatformHosts[hostIdx], slug)

			var summary struct {
				Imported int `json:"imported"`
			}
			res, err := client.R().
				SetContext(cmd.Context()).
				SetBody(map[string]any{"publish_link": link}).
				SetResult(&summary).
				Post(fmt.Sprintf("/v1/campaigns/%d/import", campaignID))
			if err := expect(res, err, 200); err != nil {
				log.Fatal(err)
			}
			log.Printf("seeded %s", link)
		}
	},
}
