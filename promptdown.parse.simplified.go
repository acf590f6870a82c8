package promptdown

import (
	"strings"
)

// parseSimplifiedConversation parses the bold-role block conversation format:
//
//	**User:**
//	Line one
//	Line two
//
//	**Assistant:**
//	Reply
//
// Everything between one role marker and the next is that entry's content,
// with leading/trailing blank lines trimmed and internal line breaks
// preserved. A line that merely resembles a marker (unmatched **) is ordinary
// content; the reader never speculatively splits on partial markers.
func parseSimplifiedConversation(lines []docLine) []Message {
	var conversation []Message
	var current *Message
	var content []string

	flush := func() {
		if current == nil {
			return
		}
		current.Content = joinBodyLines(content)
		conversation = append(conversation, *current)
		current = nil
		content = nil
	}

	for _, l := range lines {
		line := strings.TrimRight(l.text, " \t")
		if marker, ok := parseRoleMarker(strings.TrimSpace(line)); ok {
			flush()
			role, name := splitRoleName(marker)
			current = &Message{Role: role, Name: name}
			continue
		}
		if current != nil {
			content = append(content, line)
		}
	}
	flush()

	return conversation
}

// parseRoleMarker checks whether a trimmed line is a role marker of the form
// "**Role:**" and returns the inner role text. The marker must open with **,
// close with :**, and the role text must not itself contain **.
func parseRoleMarker(line string) (string, bool) {
	if !strings.HasPrefix(line, BoldMarker) || !strings.HasSuffix(line, RoleMarkerClose) {
		return "", false
	}
	if len(line) < len(BoldMarker)+len(RoleMarkerClose)+1 {
		return "", false
	}
	inner := line[len(BoldMarker) : len(line)-len(RoleMarkerClose)]
	if inner == "" || strings.Contains(inner, BoldMarker) {
		return "", false
	}
	return inner, true
}

// splitRoleName splits an optional parenthesized author name off a role
// marker, so "User (alice)" yields role "User" and name "alice".
func splitRoleName(marker string) (role, name string) {
	if !strings.HasSuffix(marker, ")") {
		return marker, ""
	}
	open := strings.LastIndex(marker, " (")
	if open <= 0 {
		return marker, ""
	}
	name = marker[open+2 : len(marker)-1]
	role = strings.TrimSpace(marker[:open])
	if role == "" || name == "" {
		return marker, ""
	}
	return role, name
}
