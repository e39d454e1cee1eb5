package log

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/davecgh/go-spew/spew"
	"github.com/fatih/color"
)

type contextKey string

const contextKeyRequestID contextKey = "request_id"

var out io.Writer = os.Stdout

// SetOutput redirects all log output. Used by tests and the CLI.
func SetOutput(w io.Writer) {
	out = w
}

// WithRequestID adds request ID to context for logging
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, contextKeyRequestID, requestID)
}

// RequestID retrieves request ID from context
func RequestID(ctx context.Context) string {
	if id, ok := ctx.Value(contextKeyRequestID).(string); ok {
		return id
	}
	return ""
}

// formatLog formats log message with optional request ID
func formatLog(requestID string, format string, a ...interface{}) string {
	msg := fmt.Sprintf(format, a...)
	if requestID != "" {
		return fmt.Sprintf("[req_id=%s] %s", requestID, msg)
	}
	return msg
}

func write(label string, attrs []color.Attribute, msg string) {
	tag := color.New(attrs...).SprintFunc()
	fmt.Fprintf(out, "%s %s\n", tag(label), msg)
}

// Info log information
func Info(format string, a ...interface{}) {
	write("[INFO] ", []color.Attribute{color.FgWhite, color.BgGreen}, fmt.Sprintf(format, a...))
}

// InfoWithContext logs information with context (includes request ID if available)
func InfoWithContext(ctx context.Context, format string, a ...interface{}) {
	write("[INFO] ", []color.Attribute{color.FgWhite, color.BgGreen}, formatLog(RequestID(ctx), format, a...))
}

// Warn log warning
func Warn(format string, a ...interface{}) {
	write("[WARN] ", []color.Attribute{color.FgWhite, color.BgYellow}, fmt.Sprintf(format, a...))
}

// WarnWithContext logs warning with context (includes request ID if available)
func WarnWithContext(ctx context.Context, format string, a ...interface{}) {
	write("[WARN] ", []color.Attribute{color.FgWhite, color.BgYellow}, formatLog(RequestID(ctx), format, a...))
}

// Error log error
func Error(format string, a ...interface{}) {
	write("[Error]", []color.Attribute{color.FgRed}, fmt.Sprintf(format, a...))
}

// ErrorWithContext logs error with context (includes request ID if available)
func ErrorWithContext(ctx context.Context, format string, a ...interface{}) {
	write("[Error]", []color.Attribute{color.FgRed}, formatLog(RequestID(ctx), format, a...))
}

// InfoStruct dumps values for debugging.
func InfoStruct(a ...interface{}) {
	fmt.Fprint(out, spew.Sdump(a...))
}
