package cmd

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/spf13/cobra"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history [handle]",
	Short: "Print recent account operations. Defaults to the active handle.",
	Args:  cobra.MaximumNArgs(1),
	Run:   historyRun,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "l", 10, "Number of operations to list.")
}

func historyRun(cmd *cobra.Command, args []string) {
	handle := ""
	if len(args) == 1 {
		handle = args[0]
	} else {
		store, err := openSession()
		if err != nil {
			log.Fatal(err)
		}
		handle = store.Current()
	}
	if handle == "" {
		log.Fatal("no handle specified and not logged in")
	}

	client, err := newHiveClient()
	if err != nil {
		log.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	entries, err := client.GetAccountHistory(ctx, handle, -1, historyLimit)
	if err != nil {
		log.Fatal(err)
	}

	for _, e := range entries {
		fmt.Printf("%d  %s  %s  block %d\n", e.Index, e.Timestamp, e.OpType, e.Block)
	}
}
