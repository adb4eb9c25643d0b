package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
)

var loginCmd = &cobra.Command{
	Use:   "login [handle]",
	Short: "Set the active handle. The handle is taken on trust, not verified.",
	Args:  cobra.ExactArgs(1),
	Run:   loginRun,
}

func init() {
	rootCmd.AddCommand(loginCmd)
}

func loginRun(cmd *cobra.Command, args []string) {
	store, err := openSession()
	if err != nil {
		log.Fatal(err)
	}

	if err := store.Login(args[0]); err != nil {
		log.Fatal(err)
	}

	fmt.Println("logged in as:", args[0])
}
