package cmd

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/codehive-india/showcase/foundation/hive"
	"github.com/spf13/cobra"
)

var accountCmd = &cobra.Command{
	Use:   "account [handle]",
	Short: "Print account balances and reputation. Defaults to the active handle.",
	Args:  cobra.MaximumNArgs(1),
	Run:   accountRun,
}

func init() {
	rootCmd.AddCommand(accountCmd)
}

func accountRun(cmd *cobra.Command, args []string) {
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

	account, err := client.GetAccount(ctx, handle)
	if err != nil {
		log.Fatal(err)
	}

	balance, err := account.Balances()
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println("Account:     ", account.Name)
	fmt.Println("Posts:       ", account.PostCount)

	rep, err := hive.FormatReputationString(account.Reputation.String())
	if err == nil {
		fmt.Println("Reputation:  ", rep)
	}

	fmt.Printf("HIVE:         %.3f\n", balance.Hive)
	fmt.Printf("HBD:          %.3f\n", balance.HBD)
	fmt.Printf("Savings HIVE: %.3f\n", balance.SavingsHive)
	fmt.Printf("Savings HBD:  %.3f\n", balance.SavingsHBD)
	fmt.Println("Vesting:     ", balance.VestingShares)
	fmt.Printf("Est. value:   $%.2f\n", hive.EstimateAccountValue(balance))
}
