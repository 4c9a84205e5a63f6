package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/abdul-hamid-achik/wave/packages/core/builder"
	"github.com/abdul-hamid-achik/wave/packages/http"
	"github.com/fatih/color"
	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
)

// jsonStyle is pretty's terminal style with bold yellow keys.
var jsonStyle = func() *pretty.Style {
	style := *pretty.TerminalStyle
	style.Key = [2]string{"\x1b[1;33m", "\x1b[0m"}
	return &style
}()

type ConsoleFormatter struct {
	writer  io.Writer
	verbose bool
	color   bool
}

type ConsoleOption func(*ConsoleFormatter)

func NewConsoleFormatter(opts ...ConsoleOption) *ConsoleFormatter {
	f := &ConsoleFormatter{
		writer: os.Stdout,
		color:  !color.NoColor,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func WithWriter(w io.Writer) ConsoleOption {
	return func(f *ConsoleFormatter) {
		f.writer = w
	}
}

func WithVerbose(v bool) ConsoleOption {
	return func(f *ConsoleFormatter) {
		f.verbose = v
	}
}

func WithNoColor(nc bool) ConsoleOption {
	return func(f *ConsoleFormatter) {
		if nc {
			f.color = false
		}
	}
}

// WithColor forces colors on or off regardless of the terminal.
func WithColor(enabled bool) ConsoleOption {
	return func(f *ConsoleFormatter) {
		f.color = enabled
	}
}

func (f *ConsoleFormatter) paint(attrs ...color.Attribute) func(a ...any) string {
	c := color.New(attrs...)
	if f.color {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c.SprintFunc()
}

func (f *ConsoleFormatter) statusColor(code int) func(a ...any) string {
	switch {
	case code >= 200 && code < 300:
		return f.paint(color.FgGreen, color.Bold)
	case code >= 300 && code < 400:
		return f.paint(color.FgYellow, color.Bold)
	case code >= 400 && code < 600:
		return f.paint(color.FgRed, color.Bold)
	default:
		return f.paint(color.FgWhite, color.Bold)
	}
}

// FormatResponse prints the status line, the relevant headers and the body.
// Every header is shown when verbose or when the status is 4xx/5xx;
// otherwise only Content-Type, and only for non-JSON bodies.
func (f *ConsoleFormatter) FormatResponse(resp *http.Response) {
	key := f.paint(color.FgBlue)
	value := f.paint(color.FgWhite)

	fmt.Fprintf(f.writer, "%s\n", f.statusColor(resp.StatusCode)(fmt.Sprintf("Status: %d", resp.StatusCode)))

	isJSON := gjson.ValidBytes(resp.Body)
	isError := resp.IsClientError() || resp.IsServerError()

	switch {
	case f.verbose || isError:
		for _, name := range resp.HeaderNames() {
			fmt.Fprintf(f.writer, "%s %s\n", key(name+":"), value(resp.Headers[name]))
		}
	case !isJSON:
		for _, name := range resp.HeaderNames() {
			if strings.EqualFold(name, "Content-Type") {
				fmt.Fprintf(f.writer, "%s %s\n", key(name+":"), value(resp.Headers[name]))
			}
		}
	}

	if isJSON {
		f.writeJSON(resp.Body)
		return
	}
	fmt.Fprintf(f.writer, "%s\n", value(string(resp.Body)))
}

func (f *ConsoleFormatter) writeJSON(body []byte) {
	out := pretty.Pretty(body)
	if f.color {
		out = pretty.Color(out, jsonStyle)
	}
	f.writer.Write(out)
	if len(out) == 0 || out[len(out)-1] != '\n' {
		fmt.Fprintln(f.writer)
	}
}

// FormatRequest prints a built request without sending it.
func (f *ConsoleFormatter) FormatRequest(req *builder.ResolvedRequest) {
	bold := f.paint(color.Bold)
	key := f.paint(color.FgBlue)
	cyan := f.paint(color.FgCyan)

	fmt.Fprintf(f.writer, "%s %s\n", bold(req.Method()), cyan(req.URL()))
	for _, h := range req.Headers() {
		fmt.Fprintf(f.writer, "%s %s\n", key(h.Name+":"), h.Value)
	}

	body := req.Body()
	if len(body) == 0 {
		return
	}
	fmt.Fprintln(f.writer)
	if gjson.ValidBytes(body) {
		f.writeJSON(body)
		return
	}
	fmt.Fprintf(f.writer, "%s\n", body)
}

// FormatError prints err and, when non-empty, a suggestion for fixing it.
func (f *ConsoleFormatter) FormatError(err error, suggestion string) {
	red := f.paint(color.FgRed)
	fmt.Fprintf(f.writer, "%s %v\n", red("Error:"), err)
	if suggestion != "" {
		yellow := f.paint(color.FgYellow)
		fmt.Fprintf(f.writer, "%s %s\n", yellow("Suggestion:"), suggestion)
	}
}
