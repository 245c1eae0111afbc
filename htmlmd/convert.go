package htmlmd

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/JohannesKaufmann/dom"
	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/pinemd"
	"golang.org/x/net/html"
)

// inlineCodeLimit is the length above which inline code is promoted to a
// fenced block.
const inlineCodeLimit = 80

// Ensure Converter implements pinemd.Converter at compile time.
var _ pinemd.Converter = (*Converter)(nil)

// Converter transforms sanitized chapter HTML into Markdown by walking
// the node tree recursively. Dispatch is by element kind over a closed
// set; unknown elements render transparently as their children's output,
// so new markup degrades to plain text instead of disappearing.
type Converter struct {
	site *pinemd.Site
}

// NewConverter creates a Converter for the given site profile.
func NewConverter(site *pinemd.Site) *Converter {
	return &Converter{site: site}
}

// Convert sanitizes and converts raw chapter HTML into a Markdown
// fragment. The underlying parser is lenient, so malformed markup
// degrades gracefully rather than failing the conversion.
func (c *Converter) Convert(raw []byte) (string, error) {
	clean := Sanitize(raw, c.site)

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(clean))
	if err != nil {
		return "", pinemd.Errorf(pinemd.EINVALID, "parse chapter HTML: %v", err)
	}

	// Structural chrome removal: anything the byte-level pass missed.
	doc.Find("nav, aside, header, footer").Remove()

	var sb strings.Builder
	for _, n := range doc.Find("body").Nodes {
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			sb.WriteString(c.render(child, 0))
		}
	}
	return strings.TrimSpace(sb.String()), nil
}

// nodeKind is the closed set of element kinds with dedicated emission
// rules. Everything else is kindOther and renders as passthrough.
type nodeKind int

const (
	kindOther nodeKind = iota
	kindHeading
	kindBlock
	kindList
	kindPre
	kindCode
	kindAnchor
	kindStrong
	kindEmphasis
	kindImage
	kindBreak
)

// classify maps an element to its emission rule.
func (c *Converter) classify(n *html.Node) nodeKind {
	switch n.Data {
	case "h1", "h2", "h3", "h4", "h5", "h6":
		return kindHeading
	case "p":
		return kindBlock
	case "div":
		if c.isCodeContainer(n) {
			return kindPre
		}
		return kindBlock
	case "ul", "ol":
		return kindList
	case "pre":
		return kindPre
	case "code":
		return kindCode
	case "a":
		return kindAnchor
	case "strong", "b":
		return kindStrong
	case "em", "i":
		return kindEmphasis
	case "img":
		return kindImage
	case "br":
		return kindBreak
	}
	return kindOther
}

// render converts one node to Markdown. indent is the column at which
// continuation lines of the current list item start; zero outside lists.
func (c *Converter) render(n *html.Node, indent int) string {
	switch n.Type {
	case html.TextNode:
		return c.renderText(n)
	case html.ElementNode:
		// dispatch below
	default:
		// Comments, doctypes and the like produce no output.
		return ""
	}

	switch c.classify(n) {
	case kindHeading:
		level := int(n.Data[1] - '0')
		return strings.Repeat("#", level) + " " + strings.TrimSpace(c.renderChildren(n, indent)) + "\n\n"
	case kindBlock:
		content := strings.TrimSpace(c.renderChildren(n, indent))
		if content == "" {
			return ""
		}
		return content + "\n\n"
	case kindList:
		return c.renderList(n, indent)
	case kindPre:
		// Children are not converted: text is extracted verbatim so the
		// code's internal formatting survives exactly.
		return fence(dom.CollectText(n))
	case kindCode:
		return c.renderCode(n)
	case kindAnchor:
		return c.renderAnchor(n, indent)
	case kindStrong:
		return "**" + strings.TrimSpace(c.renderChildren(n, indent)) + "**"
	case kindEmphasis:
		return "*" + strings.TrimSpace(c.renderChildren(n, indent)) + "*"
	case kindImage:
		return c.renderImage(n)
	case kindBreak:
		return "  \n"
	default:
		return c.renderChildren(n, indent)
	}
}

// renderChildren concatenates the conversion of n's children in sibling
// order.
func (c *Converter) renderChildren(n *html.Node, indent int) string {
	var sb strings.Builder
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		sb.WriteString(c.render(child, indent))
	}
	return sb.String()
}

// renderText emits text verbatim. Pure-whitespace text is dropped unless
// it sits inside a pre block, where whitespace is significant.
func (c *Converter) renderText(n *html.Node) string {
	if strings.TrimSpace(n.Data) != "" {
		return n.Data
	}
	if insidePre(n) {
		return n.Data
	}
	return ""
}

// renderList emits the direct list-item children of a ul/ol. Nested
// lists are handled by each item's own recursive conversion; embedded
// newlines are re-indented to align under the marker's text column.
func (c *Converter) renderList(n *html.Node, indent int) string {
	ordered := n.Data == "ol"
	var sb strings.Builder
	num := 1
	for li := n.FirstChild; li != nil; li = li.NextSibling {
		if li.Type != html.ElementNode || li.Data != "li" {
			continue
		}
		marker := "- "
		if ordered {
			marker = strconv.Itoa(num) + ". "
		}
		inner := strings.TrimSpace(c.renderChildren(li, indent+len(marker)))
		inner = strings.ReplaceAll(inner, "\n", "\n"+strings.Repeat(" ", indent+len(marker)))
		sb.WriteString(strings.Repeat(" ", indent))
		sb.WriteString(marker)
		sb.WriteString(inner)
		sb.WriteString("\n")
		if ordered {
			num++
		}
	}
	sb.WriteString("\n")
	return sb.String()
}

// renderCode emits inline code. Inside a pre block the text passes
// through untouched (the pre case owns the fencing). Long or multi-line
// inline code is promoted to a fenced block; content containing a
// backtick escalates to double-backtick delimiters.
func (c *Converter) renderCode(n *html.Node) string {
	text := dom.CollectText(n)
	if insidePre(n) {
		return text
	}
	if strings.ContainsRune(text, '\n') || len(text) > inlineCodeLimit {
		return fence(text)
	}
	if strings.Contains(text, "`") {
		return "``" + text + "``"
	}
	return "`" + text + "`"
}

// renderAnchor emits a Markdown link. Links into the manual become
// in-document anchors: a fragment is trusted verbatim as the target
// anchor id, a fragment-less manual link targets the slug of its last
// path segment. Everything else is an external link.
func (c *Converter) renderAnchor(n *html.Node, indent int) string {
	href := dom.GetAttributeOr(n, "href", "")
	text := strings.TrimSpace(c.renderChildren(n, indent))
	if href == "" {
		return text
	}

	full := c.site.AbsoluteURL(href)
	if c.site.ManualURL(full) {
		if i := strings.IndexByte(href, '#'); i != -1 {
			return "[" + text + "](#" + href[i+1:] + ")"
		}
		return "[" + text + "](#" + pinemd.Slugify(lastPathSegment(href)) + ")"
	}
	return "[" + text + "](" + full + ")"
}

// renderImage emits Markdown image syntax with an absolutized source
// URL, or nothing when the source attribute is missing.
func (c *Converter) renderImage(n *html.Node) string {
	src := dom.GetAttributeOr(n, "src", "")
	if src == "" {
		return ""
	}
	alt := dom.GetAttributeOr(n, "alt", "")
	return "![" + alt + "](" + c.site.AbsoluteURL(src) + ")"
}

// isCodeContainer matches the site's colorized code markup: a div
// carrying both class tokens from the site profile.
func (c *Converter) isCodeContainer(n *html.Node) bool {
	classes := strings.Fields(dom.GetAttributeOr(n, "class", ""))
	var first, second bool
	for _, cl := range classes {
		if cl == c.site.CodeClasses[0] {
			first = true
		}
		if cl == c.site.CodeClasses[1] {
			second = true
		}
	}
	return first && second
}

// insidePre reports whether any ancestor of n is a pre element.
func insidePre(n *html.Node) bool {
	for p := n.Parent; p != nil; p = p.Parent {
		if p.Type == html.ElementNode && p.Data == "pre" {
			return true
		}
	}
	return false
}

// fence wraps raw code text in a fenced block. Trailing newlines are
// stripped so the closing fence sits directly under the last line.
func fence(code string) string {
	return "```\n" + strings.TrimRight(code, "\n") + "\n```\n\n"
}

// lastPathSegment returns the last non-empty path segment of href.
func lastPathSegment(href string) string {
	trimmed := strings.TrimRight(href, "/")
	if i := strings.LastIndexByte(trimmed, '/'); i != -1 {
		return trimmed[i+1:]
	}
	return trimmed
}
