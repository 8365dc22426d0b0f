package cmd

import (
	"log"
	"os"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	campaignsCreateCmd.Flags().String("name", "", "campaign name (required)")
	campaignsCreateCmd.Flags().String("client", "", "client name")
	campaignsCreateCmd.Flags().String("market", "", "target market")
	campaignsCreateCmd.Flags().String("objective", "", "campaign objective text")
	campaignsCreateCmd.MarkFlagRequired("name")

	campaignsCmd.AddCommand(campaignsCreateCmd)
	campaignsCmd.AddCommand(campaignsListCmd)
	rootCmd.AddCommand(campaignsCmd)
}

type campaignBody struct {
	ID         int64   `json:"id"`
	Name       string  `json:"name"`
	ClientName *string `json:"client_name"`
	Market     *string `json:"market"`
	Objective  *string `json:"objective"`
	CreatedAt  int64   `json:"created_at"`
}

var campaignsCmd = &cobra.Command{
	Use:   "campaigns",
	Short: "Manage campaigns.",
}

var campaignsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new campaign.",
	Run: func(cmd *cobra.Command, args []string) {
		name, _ := cmd.Flags().GetString("name")
		clientName, _ := cmd.Flags().GetString("client")
		market, _ := cmd.Flags().GetString("market")
		objective, _ := cmd.Flags().GetString("objective")

		var created campaignBody
		res, err := client.R().
			SetContext(cmd.Context()).
			SetBody(map[string]string{
				"name":        name,
				"client_name": clientName,
				"market":      market,
				"objective":   objective,
			}).
			SetResult(&created).
			Post("/v1/campaigns")
		if err := expect(res, err, 201); err != nil {
			log.Fatal(err)
		}

		log.Printf("created campaign %d: %s", created.ID, created.Name)
	},
}

var campaignsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all campaigns.",
	Run: func(cmd *cobra.Command, args []string) {
		var campaigns []campaignBody
		res, err := client.R().
			SetContext(cmd.Context()).
			SetResult(&campaigns).
			Get("/v1/campaigns")
		if err := expect(res, err, 200); err != nil {
			log.Fatal(err)
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"ID", "Name", "Client", "Market", "Objective", "Created"})
		for _, c := range campaigns {
			t.AppendRow(table.Row{
				c.ID, c.Name,
				orDash(c.ClientName), orDash(c.Market), orDash(c.Objective),
				time.Unix(c.CreatedAt, 0).Format(time.DateOnly),
			})
		}
		t.SetStyle(table.StyleRounded)
		t.Render()
	},
}

func orDash(v *string) string {
	if v == nil || *v == "" {
		return "-"
	}
	return *v
}
