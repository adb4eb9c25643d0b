package post

import (
	"fmt"
	"strings"
)

// defaultImageURL is used when a project submission carries no image.
const defaultImageURL = "https://images.unsplash.com/photo-1639762681057-408e52192e55?ixlib=rb-4.0.3&auto=format&fit=crop&w=1170&q=80"

// Project is a hackathon project submission.
type Project struct {
	Title           string
	Description     string
	FullDescription string
	ImageURL        string
	DemoURL         string
	GithubURL       string
}

// Body renders the markdown document published for a project.
func (p Project) Body() string {
	imageURL := p.ImageURL
	if imageURL == "" {
		imageURL = defaultImageURL
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", p.Title)
	fmt.Fprintf(&b, "%s\n\n", p.Description)
	fmt.Fprintf(&b, "![Project Image](%s)\n\n", imageURL)
	fmt.Fprintf(&b, "## Project Details\n\n%s\n\n", p.FullDescription)

	b.WriteString("## Links\n\n")
	if p.DemoURL != "" {
		fmt.Fprintf(&b, "- [Live Demo](%s)\n", p.DemoURL)
	}
	if p.GithubURL != "" {
		fmt.Fprintf(&b, "- [GitHub Repository](%s)\n", p.GithubURL)
	}

	b.WriteString("\n---\n\n*This project was submitted to the Code Hive India Hackathon.*\n")

	return b.String()
}
