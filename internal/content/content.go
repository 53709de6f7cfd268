package content

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultPath is where an optional portfolio override is looked up, relative to the working directory.
const DefaultPath = "content/portfolio.yaml"

// Item is one portfolio project. Items are read-only once loaded.
type Item struct {
	Title        string   `yaml:"title" json:"title"`
	Description  string   `yaml:"description" json:"description"`
	Technologies []string `yaml:"technologies" json:"technologies"`
	Link         string   `yaml:"link,omitempty" json:"link,omitempty"`
}

// HasLink reports whether the item has an external link to open.
func (it Item) HasLink() bool {
	return strings.TrimSpace(it.Link) != ""
}

// file is the on-disk layout of a portfolio YAML file.
type file struct {
	Items []Item `yaml:"items"`
}

var defaultItems = []Item{
	{
		Title:        "E-Commerce Platform",
		Description:  "A full-stack e-commerce solution with React, Node.js, and MongoDB. Features include user authentication, payment processing, and admin dashboard.",
		Technologies: []string{"React", "Node.js", "MongoDB", "Stripe", "JWT"},
	},
	{
		Title:        "Task Management App",
		Description:  "A collaborative task management application with real-time updates using Socket.io and React.",
		Technologies: []string{"React", "Socket.io", "Express", "PostgreSQL"},
	},
	{
		Title:        "Weather Dashboard",
		Description:  "A responsive weather application that displays current weather and forecasts using external APIs.",
		Technologies: []string{"JavaScript", "Weather API", "Chart.js", "CSS3"},
	},
	{
		Title:        "Portfolio Website",
		Description:  "This interactive 3D portfolio built with raylib and Go to showcase projects in an immersive way.",
		Technologies: []string{"Go", "raylib", "OpenGL", "GLSL"},
	},
}

// Default returns a copy of the built-in portfolio list.
func Default() []Item {
	out := make([]Item, len(defaultItems))
	for i, it := range defaultItems {
		it.Technologies = append([]string(nil), it.Technologies...)
		out[i] = it
	}
	return out
}

// ErrEmptyTitle is returned when an item in a portfolio file has no title.
var ErrEmptyTitle = errors.New("content: item has empty title")

// Load reads a portfolio YAML file. A missing file is not an error: Default() is returned.
// A malformed file, an empty item list or an item without a title is an error.
func Load(path string) ([]Item, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("content: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes portfolio YAML and validates each item.
func Parse(data []byte) ([]Item, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("content: parse: %w", err)
	}
	if len(f.Items) == 0 {
		return nil, errors.New("content: no items")
	}
	for i := range f.Items {
		it := &f.Items[i]
		it.Title = strings.TrimSpace(it.Title)
		if it.Title == "" {
			return nil, fmt.Errorf("item %d: %w", i+1, ErrEmptyTitle)
		}
		it.Link = strings.TrimSpace(it.Link)
	}
	return f.Items, nil
}

// Marshal encodes items in the same layout Load reads.
func Marshal(items []Item) ([]byte, error) {
	return yaml.Marshal(file{Items: items})
}
