package instagram

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// privateIndicators are the canonical private-account phrases and JSON
// fragments matched case-sensitively against the raw page text.
var privateIndicators = []string{
	"This Account is Private",
	"This account is private",
	`is_private":true`,
	"Account is private",
	"This profile is private",
	`private_profile":true`,
	`"is_private":true`,
}

// DetectPrivate reports whether a profile page presents private-account
// signals. This is a heuristic, not authoritative: the platform exposes no
// structured privacy flag outside the primary JSON payload, so false
// positives and negatives are accepted behavior.
func DetectPrivate(rawHTML string, doc *goquery.Document) bool {
	for _, indicator := range privateIndicators {
		if strings.Contains(rawHTML, indicator) {
			return true
		}
	}

	if doc == nil {
		return false
	}

	if desc := MetaContent(doc, "og:description"); desc != "" {
		if strings.Contains(strings.ToLower(desc), "private") {
			return true
		}
	}

	// A single text node mentioning both words is treated as a privacy
	// notice regardless of surrounding markup.
	for _, root := range doc.Nodes {
		if textNodeMentionsPrivateAccount(root) {
			return true
		}
	}

	return false
}

func textNodeMentionsPrivateAccount(n *html.Node) bool {
	if n.Type == html.TextNode {
		text := strings.ToLower(n.Data)
		if strings.Contains(text, "private") && strings.Contains(text, "account") {
			return true
		}
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if textNodeMentionsPrivateAccount(child) {
			return true
		}
	}
	return false
}
