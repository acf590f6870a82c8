package promptdown

import (
	"strings"

	"go.uber.org/zap"
)

// parseTableConversation parses the pipe-delimited conversation table.
//
// The first pipe row supplies the column headers (matched case-insensitively:
// Role, Name, Content); the divider row and rows with fewer than two cells
// are skipped rather than failing, so hand-edited files with minor formatting
// drift still parse. Empty cells in a structurally complete row are kept: an
// empty content cell is a message with empty content, so such rows survive a
// round trip. Literal pipes in cells are escaped as "\|" and unescaped here.
func parseTableConversation(lines []docLine, logger *zap.Logger) []Message {
	var conversation []Message
	var headers []string

	for _, l := range lines {
		trimmed := strings.TrimSpace(l.text)
		if !strings.HasPrefix(trimmed, TablePipe) {
			// Blank line or stray text between rows: tolerated.
			continue
		}

		cells := splitTableRow(trimmed)
		if len(cells) == 0 {
			continue
		}

		if headers == nil {
			headers = make([]string, len(cells))
			for i, c := range cells {
				headers[i] = strings.ToLower(c)
			}
			continue
		}

		if isDividerRow(cells) {
			continue
		}

		if len(cells) < 2 {
			logger.Warn(LogMsgRowSkipped,
				zap.Int(LogFieldLine, l.num),
				zap.String(LogFieldRow, trimmed))
			continue
		}

		var msg Message
		msg.Role = RoleUser // default when the role cell is absent
		for i, header := range headers {
			if i >= len(cells) {
				break
			}
			value := unescapePipes(cells[i])
			switch header {
			case ColumnRole:
				if value != "" {
					msg.Role = value
				}
			case ColumnName:
				msg.Name = value
			case ColumnContent:
				msg.Content = value
			}
		}
		conversation = append(conversation, msg)
	}

	return conversation
}

// splitTableRow splits a table row on unescaped pipes and trims each cell.
// The structurally empty cells before the leading and after the trailing
// pipe are dropped; interior empty cells are kept so columns stay aligned.
func splitTableRow(row string) []string {
	var cells []string
	var sb strings.Builder

	for i := 0; i < len(row); i++ {
		ch := row[i]
		if ch == '\\' && i+1 < len(row) && row[i+1] == '|' {
			// Escaped pipe: keep the sequence for later unescaping.
			sb.WriteString(EscapedPipe)
			i++
			continue
		}
		if ch == '|' {
			cells = append(cells, strings.TrimSpace(sb.String()))
			sb.Reset()
			continue
		}
		sb.WriteByte(ch)
	}
	cells = append(cells, strings.TrimSpace(sb.String()))

	if len(cells) > 0 && cells[0] == "" {
		cells = cells[1:]
	}
	if len(cells) > 0 && cells[len(cells)-1] == "" {
		cells = cells[:len(cells)-1]
	}

	return cells
}

// isDividerRow reports whether every cell consists solely of dashes,
// matching the "|---|---|" row under the header.
func isDividerRow(cells []string) bool {
	for _, c := range cells {
		if strings.Trim(c, "-") != "" {
			return false
		}
	}
	return len(cells) > 0
}

// unescapePipes converts the "\|" escape back to a literal pipe.
func unescapePipes(s string) string {
	return strings.ReplaceAll(s, EscapedPipe, TablePipe)
}

// escapePipes converts literal pipes to the "\|" escape for table cells.
func escapePipes(s string) string {
	return strings.ReplaceAll(s, TablePipe, EscapedPipe)
}
