package pipeline

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	"inkwell/internal/models"
)

// maxOutlineLevel limits the outline to h1–h3; deeper headings are noise
// in a table of contents.
const maxOutlineLevel = 3

// outlineMD is a parser-only goldmark instance whose heading IDs match the
// ones the render stage emits, so outline anchors link into the HTML.
var outlineMD = goldmark.New(
	goldmark.WithParserOptions(parser.WithAutoHeadingID()),
)

// ExtractOutline collects the document headings from the working markdown
// body into an ordered outline.
func ExtractOutline(res Result) (Result, error) {
	src := []byte(res.Body)
	doc := outlineMD.Parser().Parse(text.NewReader(src))

	var outline []models.OutlineEntry
	err := ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		h, ok := n.(*ast.Heading)
		if !ok || h.Level > maxOutlineLevel {
			return ast.WalkContinue, nil
		}
		entry := models.OutlineEntry{
			Level: h.Level,
			Text:  nodeText(h, src),
		}
		if id, found := h.AttributeString("id"); found {
			if b, ok := id.([]byte); ok {
				entry.ID = string(b)
			}
		}
		outline = append(outline, entry)
		return ast.WalkSkipChildren, nil
	})
	if err != nil {
		return Result{}, err
	}

	res.Outline = outline
	return res, nil
}

// nodeText concatenates the text segments under a node.
func nodeText(n ast.Node, src []byte) string {
	var sb strings.Builder
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if entering {
			if t, ok := c.(*ast.Text); ok {
				sb.Write(t.Segment.Value(src))
			}
		}
		return ast.WalkContinue, nil
	})
	return sb.String()
}
