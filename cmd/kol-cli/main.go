package main

import (
	"fmt"
	"os"
	"truevibe-backend/cmd/kol-cli/cmd"
)

func main() {
	baseUrl, ok := os.LookupEnv("KOLD_BASE_URL")
	if !ok {
		fmt.Println("You should specify the base url of the kol daemon in the environment variable KOLD_BASE_URL.")
		os.Exit(1)
	}
	cmd.BaseUrl = baseUrl
	cmd.AccessToken = os.Getenv("KOLD_ACCESS_TOKEN")

	cmd.Execute()
}
