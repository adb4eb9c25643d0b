// Package cmd contains the showcase client app.
package cmd

import (
	"os"
	"path/filepath"

	"github.com/codehive-india/showcase/business/core/session"
	"github.com/codehive-india/showcase/foundation/hive"
	"github.com/spf13/cobra"
)

var (
	gatewayURL string
	statePath  string
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&gatewayURL, "url", "u", "http://localhost:3001", "Url of the gateway.")
	rootCmd.PersistentFlags().StringVarP(&statePath, "state-path", "p", defaultStatePath(), "Path to the directory with local state.")
}

var rootCmd = &cobra.Command{
	Use:   "showcase",
	Short: "Client for the Code Hive India showcase",
}

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func defaultStatePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".showcase"
	}

	return filepath.Join(home, ".showcase")
}

func openSession() (*session.Store, error) {
	return session.New(statePath)
}

// newHiveClient constructs the direct node adapter from the same JSON node
// list the gateway consumes.
func newHiveClient() (*hive.Client, error) {
	nodes, err := hive.ParseNodes(os.Getenv("HIVE_API_NODES"))
	if err != nil {
		return nil, err
	}

	return hive.NewClient(nodes), nil
}
