package cmd

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/codehive-india/showcase/foundation/hive"
	"github.com/spf13/cobra"
)

var (
	trendingTag   string
	trendingLimit int
)

var trendingCmd = &cobra.Command{
	Use:   "trending",
	Short: "List trending posts.",
	Run:   trendingRun,
}

func init() {
	rootCmd.AddCommand(trendingCmd)
	trendingCmd.Flags().StringVarP(&trendingTag, "tag", "t", "", "Filter posts by tag.")
	trendingCmd.Flags().IntVarP(&trendingLimit, "limit", "l", 10, "Number of posts to list.")
}

func trendingRun(cmd *cobra.Command, args []string) {
	client, err := newHiveClient()
	if err != nil {
		log.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	discussions, err := client.GetDiscussions(ctx, "trending", hive.DiscussionQuery{
		Tag:   trendingTag,
		Limit: trendingLimit,
	})
	if err != nil {
		log.Fatal(err)
	}

	for _, d := range discussions {
		fmt.Printf("@%s/%s\n", d.Author, d.Permlink)
		fmt.Printf("  %s (votes: %d, payout: %s)\n", d.Title, d.NetVotes, d.PendingPayoutValue)
	}
}
