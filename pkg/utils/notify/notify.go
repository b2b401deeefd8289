package notify

import (
	"fmt"
	"io"
	"os"
	"strings"

	fcolor "github.com/fatih/color"
)

// MessageType selects the symbol and color of a message.
type MessageType int

const (
	// ErrorType marks failed operations (red ✗).
	ErrorType MessageType = iota
	// WarningType marks results that need attention (yellow ⚠).
	WarningType
	// ActivityType marks progress and summaries (plain ►).
	ActivityType
	// SuccessType marks changed resources (green ✔).
	SuccessType
	// InfoType marks resources left as they were (blue ℹ).
	InfoType
)

type style struct {
	symbol string
	color  *fcolor.Color
}

func styleFor(msgType MessageType) style {
	switch msgType {
	case ErrorType:
		return style{symbol: "✗ ", color: fcolor.New(fcolor.FgRed)}
	case WarningType:
		return style{symbol: "⚠ ", color: fcolor.New(fcolor.FgYellow)}
	case SuccessType:
		return style{symbol: "✔ ", color: fcolor.New(fcolor.FgGreen)}
	case InfoType:
		return style{symbol: "ℹ ", color: fcolor.New(fcolor.FgBlue)}
	case ActivityType:
		return style{symbol: "► ", color: fcolor.New(fcolor.Reset)}
	default:
		return style{color: fcolor.New(fcolor.Reset)}
	}
}

// Errorf writes an error message to writer.
func Errorf(writer io.Writer, format string, args ...any) {
	write(writer, ErrorType, format, args)
}

// Warningf writes a warning message to writer.
func Warningf(writer io.Writer, format string, args ...any) {
	write(writer, WarningType, format, args)
}

// Activityf writes a progress or summary message to writer.
func Activityf(writer io.Writer, format string, args ...any) {
	write(writer, ActivityType, format, args)
}

// Successf writes a success message to writer.
func Successf(writer io.Writer, format string, args ...any) {
	write(writer, SuccessType, format, args)
}

// Infof writes an informational message to writer.
func Infof(writer io.Writer, format string, args ...any) {
	write(writer, InfoType, format, args)
}

// write renders one message. Without args the format is printed verbatim so
// that literal percent signs survive. Continuation lines are indented under
// the first line's text. A nil writer means stdout.
func write(writer io.Writer, msgType MessageType, format string, args []any) {
	if writer == nil {
		writer = os.Stdout
	}

	content := format
	if len(args) > 0 {
		content = fmt.Sprintf(format, args...)
	}

	msgStyle := styleFor(msgType)

	_, err := msgStyle.color.Fprintf(writer, "%s%s\n", msgStyle.symbol, indent(content, msgStyle.symbol))
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "notify: failed to print message: %v\n", err)
	}
}

func indent(content, symbol string) string {
	if symbol == "" || !strings.Contains(content, "\n") {
		return content
	}

	padding := strings.Repeat(" ", len([]rune(symbol)))
	lines := strings.Split(content, "\n")

	for i := 1; i < len(lines); i++ {
		if lines[i] != "" {
			lines[i] = padding + lines[i]
		}
	}

	return strings.Join(lines, "\n")
}
