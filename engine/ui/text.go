package ui

import "github.com/hubastard/grove-inspector/engine/colors"

// Text is a label with optional rich-text attributes.
type Text struct {
	Text    string
	Heading bool
	Strong  bool
	Color   colors.Color // zero means the theme text color
}

// RichText wraps a plain string.
func RichText(s string) Text { return Text{Text: s} }

func (t Text) WithHeading() Text             { t.Heading = true; return t }
func (t Text) WithStrong() Text              { t.Strong = true; return t }
func (t Text) WithColor(c colors.Color) Text { t.Color = c; return t }
func (t Text) String() string                { return t.Text }
func (t Text) IsEmpty() bool                 { return t.Text == "" }

func (t Text) size(base float32) float32 {
	if t.Heading {
		return base * 1.25
	}
	return base
}
