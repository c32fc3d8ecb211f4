package lookup

import (
	"bytes"
	"errors"
	"strings"

	"golang.org/x/net/html"
)

// errNoTitle is returned when an HTML response carries no usable title.
var errNoTitle = errors.New("no title element in response")

// extractHTMLTitle pulls the document title out of an HTML response.
// Some product databases only offer HTML pages; their page title is
// usually "<product name> - <site name>", so the part before the first
// separator is the best name available.
func extractHTMLTitle(body []byte) (string, error) {
	doc, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		return "", err
	}

	var title string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "title" {
			if n.FirstChild != nil && n.FirstChild.Type == html.TextNode {
				title = strings.TrimSpace(n.FirstChild.Data)
			}
			return
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			if title != "" {
				return
			}
			walk(child)
		}
	}
	walk(doc)

	if title == "" {
		return "", errNoTitle
	}

	// Drop site-name suffixes like " - Open Food Facts" or " | Example".
	for _, sep := range []string{" - ", " | ", " – "} {
		if idx := strings.Index(title, sep); idx > 0 {
			title = title[:idx]
			break
		}
	}
	return strings.TrimSpace(title), nil
}
