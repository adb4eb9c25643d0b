package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Print the active handle.",
	Run:   whoamiRun,
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
}

func whoamiRun(cmd *cobra.Command, args []string) {
	store, err := openSession()
	if err != nil {
		log.Fatal(err)
	}

	if !store.IsLoggedIn() {
		fmt.Println("not logged in")
		return
	}

	fmt.Println(store.Current())
}
