package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Row is a "key: value" line with the key drawn in the accent color.
type Row struct {
	Key   string
	Value string
}

// Node is a single panel: optional heading, key/value rows and a wrapped paragraph, in that
// order. Class and ID select its CSS. Bounds is recomputed from the style on every Draw.
type Node struct {
	Class   string // e.g. "panel" for .panel
	ID      string // e.g. "controls" for #controls
	Heading string
	Rows    []Row
	Text    string
	Hidden  bool
	Bounds  rl.Rectangle
}

// NewNode creates a node with optional class, id and paragraph text.
func NewNode(class, id, text string) *Node {
	return &Node{Class: class, ID: id, Text: text}
}
