package cmd

import (
	"fmt"
	"os"

	"github.com/go-resty/resty/v2"
	"github.com/spf13/cobra"
)

var BaseUrl string
var AccessToken string

var client *resty.Client

var rootCmd = &cobra.Command{
	Use:   "kol-cli",
	Short: "kol-cli is a CLI interface for the TrueVibe creator scoring daemon.",
}

func Execute() {
	client = resty.New().SetBaseURL(BaseUrl)
	if AccessToken != "" {
		client.SetAuthToken(AccessToken)
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// expect runs a request and fails the command unless the status
// matches.
func expect(res *resty.Response, err error, status int) error {
	if err != nil {
		return err
	}
	if res.StatusCode() != status {
		return fmt.Errorf("unexpected status %d: %s", res.StatusCode(), res.String())
	}
	return nil
}
