package extract

import (
	"bytes"
	"fmt"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/JohannesKaufmann/html-to-markdown/plugin"
	"golang.org/x/net/html"
)

var droppedElements = map[string]bool{
	"script": true, "style": true, "noscript": true, "nav": true,
	"iframe": true, "form": true, "button": true, "svg": true,
}

// HTML converts HTML guideline pages into markdown.
type HTML struct {
	converter *md.Converter
}

// NewHTML creates an HTML extractor with GitHub-flavored tables and lists.
func NewHTML() *HTML {
	converter := md.NewConverter("", true, nil)
	converter.Use(plugin.GitHubFlavored())
	return &HTML{converter: converter}
}

func (h *HTML) Extract(data []byte) (string, error) {
	doc, err := html.Parse(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("parsing html: %w", err)
	}
	stripElements(doc)

	var sb strings.Builder
	if err := html.Render(&sb, doc); err != nil {
		return "", fmt.Errorf("rendering html: %w", err)
	}
	markdown, err := h.converter.ConvertString(sb.String())
	if err != nil {
		return "", fmt.Errorf("converting html to markdown: %w", err)
	}
	return markdown, nil
}

// Title returns the document <title>, or "" when absent.
func Title(data []byte) string {
	doc, err := html.Parse(bytes.NewReader(data))
	if err != nil {
		return ""
	}
	var title string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if title != "" {
			return
		}
		if n.Type == html.ElementNode && n.Data == "title" && n.FirstChild != nil {
			title = strings.TrimSpace(n.FirstChild.Data)
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return title
}

func stripElements(n *html.Node) {
	var remove []*html.Node
	var collect func(*html.Node)
	collect = func(node *html.Node) {
		if node.Type == html.ElementNode && droppedElements[node.Data] {
			remove = append(remove, node)
			return
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			collect(c)
		}
	}
	collect(n)
	for _, node := range remove {
		if node.Parent != nil {
			node.Parent.RemoveChild(node)
		}
	}
}
