package cli

import (
	"fmt"
	"strings"

	"docassist/internal/citation"
	"docassist/internal/corpus"
	"docassist/internal/entity"
	"docassist/internal/session"
)

// hyperlink wraps label in an OSC 8 escape so terminals that support it open href.
func hyperlink(label, href string) string {
	return "\x1b]8;;" + href + "\x1b\\" + label + "\x1b]8;;\x1b\\"
}

// CitationLine renders the citation display. Linked references become terminal
// hyperlinks, or "label <href>" when escapes are off. Plain ones stay plain text.
func CitationLine(b citation.Binding, escapes bool) string {
	if b.Empty() {
		return citation.NoCitations
	}
	return "Citations: " + b.Render(func(r citation.Reference) string {
		if !r.Linked() {
			return r.Label
		}
		if escapes {
			return hyperlink(r.Label, r.Href)
		}
		return fmt.Sprintf("%s <%s>", r.Label, r.Href)
	})
}

func DocumentBlock(docs []entity.Document) string {
	return "  " + strings.Join(corpus.Lines(docs), "\n  ")
}

func HistoryBlock(conv session.Conversation) string {
	if len(conv.Entries) == 0 {
		return "  (no messages)"
	}
	lines := make([]string, len(conv.Entries))
	for i, e := range conv.Entries {
		lines[i] = fmt.Sprintf("  %s: %s", roleLabel(e.Role), e.Text)
	}
	return strings.Join(lines, "\n")
}

func roleLabel(role entity.ChatRole) string {
	if role == entity.ChatRoleAssistant {
		return "Assistant"
	}
	return "You"
}

// parseCommand splits "/name rest" into ("name", "rest"). Lines without a leading
// slash are chat messages and return an empty name.
func parseCommand(line string) (name, args string) {
	line = strings.TrimSpace(line)
	if !strings.HasPrefix(line, "/") {
		return "", line
	}
	parts := strings.SplitN(line[1:], " ", 2)
	name = strings.ToLower(parts[0])
	if len(parts) == 2 {
		args = strings.TrimSpace(parts[1])
	}
	return name, args
}

// parseReportArgs strips a --summary flag from anywhere in args.
func parseReportArgs(args string) (raw string, includeSummary bool) {
	fields := strings.Fields(args)
	kept := fields[:0]
	for _, f := range fields {
		if f == "--summary" || f == "-s" {
			includeSummary = true
			continue
		}
		kept = append(kept, f)
	}
	return strings.Join(kept, " "), includeSummary
}
