package view

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/rodaine/table"
	"gopkg.in/yaml.v3"
)

// ViewType represents which view layer to use.
type ViewType rune

const (
	ViewNone  ViewType = 0
	ViewHuman ViewType = 'H'
	ViewJSON  ViewType = 'J'
	ViewYAML  ViewType = 'Y'
)

func (vt ViewType) String() string {
	switch vt {
	case ViewNone:
		return "none"
	case ViewHuman:
		return "human"
	case ViewJSON:
		return "json"
	case ViewYAML:
		return "yaml"
	default:
		return "unknown"
	}
}

// ParseOutputFormat maps the output setting to a view type. An empty format is human output
func ParseOutputFormat(format string) (ViewType, error) {
	switch strings.ToLower(format) {
	case "", "human":
		return ViewHuman, nil
	case "json":
		return ViewJSON, nil
	case "yaml":
		return ViewYAML, nil
	default:
		return ViewNone, fmt.Errorf("unknown output format %q", format)
	}
}

var (
	_ Viewer = (*HumanView)(nil)
	_ Viewer = (*JSONView)(nil)
	_ Viewer = (*YAMLView)(nil)
)

type Viewer interface {
	Logger() Logger
}

// NewViewer returns the view for vt writing results to s. Logs go to logs so machine output stays parseable
func NewViewer(vt ViewType, s *Stream, logs io.Writer, level LogLevel) Viewer {
	switch vt {
	case ViewHuman:
		return NewHumanView(s, newLogger(NewHumanLogger, logs, level))
	case ViewJSON:
		return NewJSONView(s, newLogger(NewJSONLogger, logs, level))
	case ViewYAML:
		return NewYAMLView(s, newLogger(NewJSONLogger, logs, level))
	default:
		panic("unknown view type")
	}
}

func newLogger(build func(io.Writer, LogLevel) Logger, w io.Writer, level LogLevel) Logger {
	if level == LogLevelSilent {
		return NewNopLogger()
	}
	return build(w, level)
}

type HumanView struct {
	*Stream
	logger Logger
}

func NewHumanView(s *Stream, logger Logger) *HumanView {
	return &HumanView{Stream: s, logger: logger}
}

func (h *HumanView) Logger() Logger {
	return h.logger
}

// newTable returns a table writing to the view's stream, styled like the rest of the CLI
func (h *HumanView) newTable(columns ...any) table.Table {
	return table.New(columns...).
		WithHeaderFormatter(color.New(color.FgGreen, color.Underline).SprintfFunc()).
		WithFirstColumnFormatter(color.New(color.FgYellow).SprintfFunc()).
		WithWriter(h.Writer)
}

// Highlight applies the CLI accent color
func Highlight(format string, a ...any) string {
	return color.RGB(50, 108, 229).Sprintf(format, a...)
}

// Alert applies the CLI error color
func Alert(format string, a ...any) string {
	return color.RGB(229, 50, 50).Sprintf(format, a...)
}

type JSONView struct {
	*Stream
	logger Logger
}

func NewJSONView(s *Stream, logger Logger) *JSONView {
	return &JSONView{Stream: s, logger: logger}
}

func (j *JSONView) Logger() Logger {
	return j.logger
}

func (j *JSONView) encode(value any) error {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return err
	}
	j.Println(string(data))
	return nil
}

type YAMLView struct {
	*Stream
	logger Logger
}

func NewYAMLView(s *Stream, logger Logger) *YAMLView {
	return &YAMLView{Stream: s, logger: logger}
}

func (y *YAMLView) Logger() Logger {
	return y.logger
}

func (y *YAMLView) encode(value any) error {
	encoder := yaml.NewEncoder(y.Writer)
	encoder.SetIndent(2)
	if err := encoder.Encode(value); err != nil {
		return err
	}
	return encoder.Close()
}

// encoder is implemented by the machine-readable views
type encoder interface {
	encode(value any) error
}

// machineView returns the encoder behind v, or nil for the human view
func machineView(v Viewer) encoder {
	switch vt := v.(type) {
	case *HumanView:
		return nil
	case *JSONView:
		return vt
	case *YAMLView:
		return vt
	default:
		panic("unknown view type")
	}
}
