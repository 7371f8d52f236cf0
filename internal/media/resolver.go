// Package media resolves movie titles against the streaming catalog so
// the chat can relay an embeddable player URL.
package media

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

var vidPattern = regexp.MustCompile(`var vid = '(.+?)';`)

// Resolver looks up a direct stream URL for a movie title on the
// catalog site: search page -> first result -> playback page script.
type Resolver struct {
	BaseURL string
	Client  *http.Client
}

// NewResolver builds a resolver for the given catalog site.
func NewResolver(baseURL string, client *http.Client) *Resolver {
	if client == nil {
		client = http.DefaultClient
	}
	return &Resolver{BaseURL: strings.TrimSuffix(baseURL, "/"), Client: client}
}

// Lookup returns the direct stream URL for a title, or an empty string
// when the title cannot be resolved. A failed lookup is not an error
// for the relay path, so callers usually only log it.
func (r *Resolver) Lookup(ctx context.Context, title string) (string, error) {
	searchURL := fmt.Sprintf("%s/search/?wd=%s", r.BaseURL, url.QueryEscape(title))
	searchPage, err := r.fetch(ctx, searchURL)
	if err != nil {
		return "", fmt.Errorf("failed to fetch search page: %w", err)
	}

	resultPath := firstResultLink(searchPage)
	if resultPath == "" {
		return "", nil
	}

	playbackPage, err := r.fetch(ctx, r.BaseURL+resultPath)
	if err != nil {
		return "", fmt.Errorf("failed to fetch playback page: %w", err)
	}

	return extractStreamURL(playbackPage), nil
}

func (r *Resolver) fetch(ctx context.Context, pageURL string) (*html.Node, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := r.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("unexpected status %d for %s", resp.StatusCode, pageURL)
	}

	return html.Parse(resp.Body)
}

// firstResultLink finds the href of the first search result anchor
// (class "fed-list-pics" on the catalog site).
func firstResultLink(doc *html.Node) string {
	var walk func(*html.Node) string
	walk = func(n *html.Node) string {
		if n.Type == html.ElementNode && n.Data == "a" && hasClass(n, "fed-list-pics") {
			for _, attr := range n.Attr {
				if attr.Key == "href" {
					return attr.Val
				}
			}
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			if href := walk(child); href != "" {
				return href
			}
		}
		return ""
	}
	return walk(doc)
}

// extractStreamURL pulls the vid assignment out of the playback page's
// inline scripts.
func extractStreamURL(doc *html.Node) string {
	var walk func(*html.Node) string
	walk = func(n *html.Node) string {
		if n.Type == html.ElementNode && n.Data == "script" && n.FirstChild != nil {
			if match := vidPattern.FindStringSubmatch(n.FirstChild.Data); match != nil {
				return match[1]
			}
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			if vid := walk(child); vid != "" {
				return vid
			}
		}
		return ""
	}
	return walk(doc)
}

func hasClass(n *html.Node, class string) bool {
	for _, attr := range n.Attr {
		if attr.Key != "class" {
			continue
		}
		for _, c := range strings.Fields(attr.Val) {
			if c == class {
				return true
			}
		}
	}
	return false
}
