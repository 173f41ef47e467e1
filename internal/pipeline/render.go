// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package pipeline

import (
	"bytes"

	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

// md is the configured goldmark instance, reused across calls.
var md = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,         // GitHub-Flavored Markdown: tables, strikethrough, autolinks, task lists
		extension.Typographer, // Smart quotes and dashes
		highlighting.NewHighlighting( // Syntax highlighting for fenced code blocks
			highlighting.WithStyle("monokai"),
			highlighting.WithFormatOptions(),
		),
	),
	goldmark.WithParserOptions(
		parser.WithAutoHeadingID(), // Auto-generate heading IDs for anchors
	),
	goldmark.WithRendererOptions(
		// Raw HTML passes through unescaped: the sanitize stage runs first
		// and is the sole gatekeeper for what markup survives.
		html.WithUnsafe(),
	),
)

// RenderMarkdown converts the working markdown body into HTML. The body
// itself is left untouched so downstream stages can still parse the source.
func RenderMarkdown(res Result) (Result, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(res.Body), &buf); err != nil {
		return Result{}, err
	}
	res.HTML = buf.String()
	return res, nil
}
