package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Clear the active handle.",
	Run:   logoutRun,
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}

func logoutRun(cmd *cobra.Command, args []string) {
	store, err := openSession()
	if err != nil {
		log.Fatal(err)
	}

	if err := store.Logout(); err != nil {
		log.Fatal(err)
	}

	fmt.Println("logged out")
}
