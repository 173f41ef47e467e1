// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package pipeline transforms author-supplied markdown into the derived
// fields persisted on content items. A pipeline is an ordered chain of
// stages; each stage receives the cumulative result of the stages before it
// and may rewrite the working body or annotate the result. The first stage
// failure halts the chain and nothing downstream runs.
//
// Pipelines are stateless and safe for concurrent use.
package pipeline

import (
	"fmt"

	"inkwell/internal/models"
)

// Result carries the working content through the stage chain. Body starts
// as the raw markdown and may be rewritten by stages; HTML, Summary and
// Outline are filled in as the chain progresses.
type Result struct {
	Body    string
	HTML    string
	Summary string
	Outline []models.OutlineEntry
}

// StageFunc is one content transformation. It must be deterministic: the
// same input result always produces the same output result.
type StageFunc func(Result) (Result, error)

type stage struct {
	name string
	fn   StageFunc
}

// Pipeline chains stages in registration order.
type Pipeline struct {
	name   string
	stages []stage
}

// New creates an empty named pipeline.
func New(name string) *Pipeline {
	return &Pipeline{name: name}
}

// Append registers a stage at the end of the chain and returns the pipeline
// for call chaining.
func (p *Pipeline) Append(name string, fn StageFunc) *Pipeline {
	p.stages = append(p.stages, stage{name: name, fn: fn})
	return p
}

// Run executes the chain over the raw body. On stage failure it returns a
// zero Result and a *StageError naming the failed stage; later stages do
// not execute.
func (p *Pipeline) Run(rawBody string) (Result, error) {
	res := Result{Body: rawBody}
	for _, st := range p.stages {
		next, err := st.fn(res)
		if err != nil {
			return Result{}, &StageError{Pipeline: p.name, Stage: st.name, Err: err}
		}
		res = next
	}
	return res, nil
}

// StageError reports which stage of which pipeline failed.
type StageError struct {
	Pipeline string
	Stage    string
	Err      error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("pipeline %s: stage %s: %v", e.Pipeline, e.Stage, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

// ForArticles builds the article processing chain:
// sanitize → render → outline → summary.
func ForArticles() *Pipeline {
	return New("article").
		Append("sanitize", Sanitize).
		Append("render", RenderMarkdown).
		Append("outline", ExtractOutline).
		Append("summary", ExtractSummary(DefaultSummaryLength))
}

// ForComments builds the comment processing chain:
// sanitize → mask → render.
func ForComments(vocabulary []string) *Pipeline {
	return New("comment").
		Append("sanitize", Sanitize).
		Append("mask", MaskTerms(vocabulary)).
		Append("render", RenderMarkdown)
}
