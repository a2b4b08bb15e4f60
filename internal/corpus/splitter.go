package corpus

import (
	"fmt"
	"strings"
)

// Splitter breaks a raw document into indexable text chunks.
type Splitter interface {
	Split(text string) []string
}

// SplitterSpec describes how a corpus should be chunked. It is part of the
// corpus manifest the index builder reads.
type SplitterSpec struct {
	Kind      string `yaml:"kind"`
	ChunkSize int    `yaml:"chunkSize"`
	Overlap   int    `yaml:"overlap,omitempty"`
}

// NewSplitter builds a Splitter from its manifest description.
func NewSplitter(spec SplitterSpec) (Splitter, error) {
	switch spec.Kind {
	case "paragraph":
		return &ParagraphSplitter{ChunkSize: spec.ChunkSize}, nil
	case "window":
		return &WindowSplitter{ChunkSize: spec.ChunkSize, Overlap: spec.Overlap}, nil
	default:
		return nil, fmt.Errorf("unknown splitter kind %q", spec.Kind)
	}
}

// ParagraphSplitter splits a document on blank lines and greedily merges
// adjacent paragraphs into chunks of at most ChunkSize characters. A single
// paragraph longer than ChunkSize is kept whole rather than broken mid-thought.
type ParagraphSplitter struct {
	ChunkSize int
}

// Split returns the paragraph-aligned chunks of text, in document order.
func (s *ParagraphSplitter) Split(text string) []string {
	var paragraphs []string
	for _, p := range strings.Split(text, "\n\n") {
		p = strings.TrimSpace(p)
		if p != "" {
			paragraphs = append(paragraphs, p)
		}
	}

	size := s.ChunkSize
	if size <= 0 {
		return paragraphs
	}

	var chunks []string
	var current string
	for _, p := range paragraphs {
		switch {
		case current == "":
			current = p
		case len(current)+len("\n\n")+len(p) <= size:
			current = current + "\n\n" + p
		default:
			chunks = append(chunks, current)
			current = p
		}
	}
	if current != "" {
		chunks = append(chunks, current)
	}
	return chunks
}

// WindowSplitter cuts a document into fixed-size sliding windows of runes
// with Overlap runes shared between consecutive windows.
type WindowSplitter struct {
	ChunkSize int
	Overlap   int
}

// Split returns the overlapping windows of text, in document order. Windows
// are trimmed of surrounding whitespace and empty windows are dropped.
func (s *WindowSplitter) Split(text string) []string {
	runes := []rune(strings.TrimSpace(text))
	if len(runes) == 0 {
		return nil
	}

	size := s.ChunkSize
	if size <= 0 || len(runes) <= size {
		return []string{string(runes)}
	}

	step := size - s.Overlap
	if step <= 0 {
		step = size
	}

	var chunks []string
	for start := 0; start < len(runes); start += step {
		end := start + size
		if end > len(runes) {
			end = len(runes)
		}
		chunk := strings.TrimSpace(string(runes[start:end]))
		if chunk != "" {
			chunks = append(chunks, chunk)
		}
		if end == len(runes) {
			break
		}
	}
	return chunks
}
