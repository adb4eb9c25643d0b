package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/codehive-india/showcase/business/core/broadcast"
	"github.com/codehive-india/showcase/business/core/post"
	"github.com/codehive-india/showcase/foundation/hive"
	"github.com/codehive-india/showcase/foundation/keychain"
	"github.com/spf13/cobra"
)

var (
	postTitle         string
	postDescription   string
	postDetails       string
	postImageURL      string
	postDemoURL       string
	postGithubURL     string
	postTags          string
	postBeneficiaries string
	keychainKeyPath   string
)

var postCmd = &cobra.Command{
	Use:   "post",
	Short: "Submit a project. Signs via a keychain key file, or falls back to the gateway's simulated endpoint.",
	Run:   postRun,
}

func init() {
	rootCmd.AddCommand(postCmd)
	postCmd.Flags().StringVar(&postTitle, "title", "", "Project title.")
	postCmd.Flags().StringVar(&postDescription, "description", "", "Short project description.")
	postCmd.Flags().StringVar(&postDetails, "details", "", "Full project description.")
	postCmd.Flags().StringVar(&postImageURL, "image", "", "Project image url.")
	postCmd.Flags().StringVar(&postDemoURL, "demo", "", "Live demo url.")
	postCmd.Flags().StringVar(&postGithubURL, "github", "", "GitHub repository url.")
	postCmd.Flags().StringVar(&postTags, "tags", "", "Comma separated tag list.")
	postCmd.Flags().StringVar(&postBeneficiaries, "beneficiaries", "", "Comma separated account:percentage list.")
	postCmd.Flags().StringVarP(&keychainKeyPath, "keychain", "k", "", "Path to a keychain private key file.")
}

func postRun(cmd *cobra.Command, args []string) {
	store, err := openSession()
	if err != nil {
		log.Fatal(err)
	}
	if !store.IsLoggedIn() {
		log.Fatal("not logged in")
	}
	author := store.Current()

	bens, err := post.ParseBeneficiaries(postBeneficiaries)
	if err != nil {
		log.Fatal(err)
	}

	body := post.Project{
		Title:           postTitle,
		Description:     postDescription,
		FullDescription: postDetails,
		ImageURL:        postImageURL,
		DemoURL:         postDemoURL,
		GithubURL:       postGithubURL,
	}.Body()

	tags := strings.Split(postTags, ",")

	ops, err := post.Compose(author, postTitle, body, tags, bens)
	if err != nil {
		log.Fatal(err)
	}

	if keychainKeyPath != "" {
		signWithKeychain(author, ops)
		return
	}

	postToGateway(author, body, tags, bens)
}

func signWithKeychain(author string, ops []hive.Operation) {
	kc := keychain.NewFileKeychain(keychainKeyPath)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	resp, err := broadcast.Sign(ctx, kc, author, ops)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(resp.Message)
}

func postToGateway(author string, body string, tags []string, bens []hive.Beneficiary) {
	payload, err := json.Marshal(struct {
		Author        string             `json:"author"`
		Title         string             `json:"title"`
		Body          string             `json:"body"`
		Tags          []string           `json:"tags"`
		Beneficiaries []hive.Beneficiary `json:"beneficiaries,omitempty"`
	}{
		Author:        author,
		Title:         postTitle,
		Body:          body,
		Tags:          tags,
		Beneficiaries: bens,
	})
	if err != nil {
		log.Fatal(err)
	}

	resp, err := http.Post(fmt.Sprintf("%s/api/post", gatewayURL), "application/json", bytes.NewBuffer(payload))
	if err != nil {
		log.Fatal(err)
	}
	defer resp.Body.Close()

	var result broadcast.Result
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		log.Fatal(err)
	}

	fmt.Println(result.Message)
	fmt.Println("post id:", result.PostID)
}
