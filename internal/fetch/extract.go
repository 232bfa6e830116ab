package fetch

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Board is a job board whose page layout is known.
type Board string

// Known boards.
const (
	BoardGreenhouse Board = "greenhouse"
	BoardLever      Board = "lever"
	BoardWorkday    Board = "workday"
	BoardAshby      Board = "ashby"
	BoardGeneric    Board = "generic"
)

var boardHosts = []struct {
	suffix string
	board  Board
}{
	{"greenhouse.io", BoardGreenhouse},
	{"lever.co", BoardLever},
	{"myworkdayjobs.com", BoardWorkday},
	{"workday.com", BoardWorkday},
	{"ashbyhq.com", BoardAshby},
}

// contentSelectors are tried in order; the first match holds the description.
var contentSelectors = map[Board][]string{
	BoardGreenhouse: {".job__description.body", ".job__description", "#content", ".job-post-container"},
	BoardLever:      {".posting-page", ".section-wrapper.page-full-width", ".posting-description"},
	BoardWorkday:    {"[data-automation-id='jobPostingDescription']", "[data-automation-id='jobDescription']"},
	BoardAshby:      {".ashby-job-posting-description", "[class*='_descriptionText']"},
	BoardGeneric: {
		".job-description", "#job-description", ".job-details", ".posting-content",
		"[data-testid='job-description']", "main", "article", "#content", ".content",
	},
}

// noiseSelectors are removed before extraction on every board.
var noiseSelectors = strings.Join([]string{
	"nav", "footer", "header", "script", "style", "noscript", "form", "iframe",
	".cookie-banner", ".cookie-consent", ".gdpr-notice",
	".application-form", "#application-form", ".apply-button-container", ".posting-apply", ".post-apply",
	".eeo-statement", ".eeo-section", ".voluntary-self-id", ".voluntary-disclosure", ".legal-disclosure",
	".social-share", ".share-buttons",
	"[data-automation-id='applyButton']",
}, ", ")

// DetectBoard identifies the job board from a posting URL.
func DetectBoard(rawURL string) Board {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return BoardGeneric
	}
	host := strings.ToLower(parsed.Hostname())
	for _, h := range boardHosts {
		if host == h.suffix || strings.HasSuffix(host, "."+h.suffix) {
			return h.board
		}
	}
	return BoardGeneric
}

// ExtractText returns the readable description text of a posting page, one
// line per block element. List items are prefixed with "- ".
func ExtractText(html string, board Board) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}
	doc.Find(noiseSelectors).Remove()

	selectors := append([]string{}, contentSelectors[board]...)
	if board != BoardGeneric {
		selectors = append(selectors, contentSelectors[BoardGeneric]...)
	}

	content := doc.Find("body")
	for _, selector := range selectors {
		if sel := doc.Find(selector); sel.Length() > 0 {
			content = sel.First()
			break
		}
	}

	content.Find("br").ReplaceWithHtml(blockBreak)
	content.Find("p, div, li, h1, h2, h3, h4, h5, h6, tr, section").Each(func(_ int, s *goquery.Selection) {
		if goquery.NodeName(s) == "li" {
			s.PrependHtml("- ")
		}
		s.AppendHtml(blockBreak)
	})

	return cleanLines(content.Text()), nil
}

// blockBreak marks the end of a block element. Source newlines inside a block
// are ordinary whitespace.
const blockBreak = "\u2029"

// cleanLines splits text at block breaks, collapses whitespace in each line
// and drops blank lines.
func cleanLines(text string) string {
	lines := strings.Split(text, blockBreak)
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if line = strings.Join(strings.Fields(line), " "); line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}
