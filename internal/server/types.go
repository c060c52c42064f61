package server

import (
	"github.com/Cyclone1070/lookout/internal/session"
	"github.com/Cyclone1070/lookout/internal/tool/search"
)

// Message types exchanged over the wire.
const (
	TypeList    = "list"
	TypePreview = "preview"
	TypeSelect  = "select"
	TypeCancel  = "cancel"
	TypeError   = "error"
)

// Message is one JSON line read from the client.
type Message struct {
	Type string         `json:"type"`
	Data map[string]any `json:"data,omitempty"`
}

// Reply is one JSON line written to the client.
type Reply struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// ListInput starts a search. An empty Mode selects the server default.
type ListInput struct {
	Search string `mapstructure:"search"`
	Mode   string `mapstructure:"mode"`
}

func (in ListInput) Validate() error {
	_, err := search.ParseMode(in.Mode)
	return err
}

// ListOutput reports one finished session.
type ListOutput struct {
	Session   string         `json:"session,omitempty"`
	Search    string         `json:"search"`
	Mode      string         `json:"mode"`
	Command   string         `json:"command"`
	Matches   []search.Match `json:"matches"`
	Outcome   string         `json:"outcome"`
	Warnings  int            `json:"warnings"`
	ElapsedMs int64          `json:"elapsed_ms"`
}

// NewListOutput converts a batch to its wire form. Matches is never nil.
func NewListOutput(b session.Batch) ListOutput {
	matches := b.Matches
	if matches == nil {
		matches = []search.Match{}
	}
	return ListOutput{
		Session:   b.SessionID,
		Search:    b.Query.Text,
		Mode:      b.Query.Mode.String(),
		Command:   b.Command,
		Matches:   matches,
		Outcome:   b.Outcome.String(),
		Warnings:  b.Warnings,
		ElapsedMs: b.Elapsed.Milliseconds(),
	}
}

// PreviewInput asks for the contents of a file from a match.
type PreviewInput struct {
	File string `mapstructure:"file"`
}

func (in PreviewInput) Validate() error {
	if in.File == "" {
		return &MissingFieldError{Field: "file"}
	}
	return nil
}

type PreviewOutput struct {
	File        string `json:"file"`
	Code        string `json:"code"`
	Theme       string `json:"theme"`
	Placeholder string `json:"placeholder,omitempty"`
}

// SelectInput picks a match location. Line is 1-based, Column 0-based.
type SelectInput struct {
	File   string `mapstructure:"file"`
	Line   int    `mapstructure:"line"`
	Column int    `mapstructure:"column"`
}

func (in SelectInput) Validate() error {
	if in.File == "" {
		return &MissingFieldError{Field: "file"}
	}
	if in.Line < 0 {
		return &NegativeFieldError{Field: "line", Value: in.Line}
	}
	if in.Column < 0 {
		return &NegativeFieldError{Field: "column", Value: in.Column}
	}
	return nil
}

type SelectOutput struct {
	Path   string `json:"path"`
	Line   int    `json:"line"`
	Column int    `json:"column"`
	Opened bool   `json:"opened"`
}

// ErrorOutput carries diagnostics and request failures.
type ErrorOutput struct {
	Message string `json:"message"`
	Source  string `json:"source,omitempty"`
	Session string `json:"session,omitempty"`
}
