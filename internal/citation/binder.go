// Package citation turns an answer's evidence list into renderable references.
package citation

import (
	"fmt"
	"html"
	"strings"

	"docassist/internal/entity"
)

const (
	// NoCitations marks an answer that came back without evidence.
	NoCitations = "No citations"
	Separator   = "; "
)

// Reference is one rendered citation. Href is empty for plain, non-actionable labels.
type Reference struct {
	Label string
	Href  string
}

func (r Reference) Linked() bool {
	return r.Href != ""
}

type Binding struct {
	References []Reference
}

// Label formats a citation as "<doc_name> (<chunk_id>)".
func Label(c entity.ChatCitation) string {
	return fmt.Sprintf("%s (%s)", c.DocName, c.ChunkId)
}

// Bind keeps the received order and passes duplicates through.
func Bind(citations []entity.ChatCitation) Binding {
	refs := make([]Reference, 0, len(citations))
	for _, c := range citations {
		refs = append(refs, Reference{Label: Label(c), Href: c.SourceLink})
	}
	return Binding{References: refs}
}

func (b Binding) Empty() bool {
	return len(b.References) == 0
}

// Render joins every reference through fn, or returns NoCitations when there are none.
func (b Binding) Render(fn func(Reference) string) string {
	if b.Empty() {
		return NoCitations
	}
	parts := make([]string, len(b.References))
	for i, r := range b.References {
		parts[i] = fn(r)
	}
	return strings.Join(parts, Separator)
}

func (b Binding) Text() string {
	return b.Render(func(r Reference) string { return r.Label })
}

// HTML renders linked references as anchors opening in a new browsing context.
func (b Binding) HTML() string {
	return b.Render(func(r Reference) string {
		label := html.EscapeString(r.Label)
		if !r.Linked() {
			return label
		}
		return fmt.Sprintf(`<a href="%s" target="_blank" rel="noopener">%s</a>`, html.EscapeString(r.Href), label)
	})
}
