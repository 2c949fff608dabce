package logger

import (
	"bytes"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger wraps a zap logger writing into an in-memory buffer, so the web
// viewer can show the construction log next to the diagram. Logs holds the
// buffer rendered as HTML after the latest entry.
type Logger struct {
	log    *zap.Logger
	logBuf *bytes.Buffer
	Logs   []string
}

// New returns a debug-level logger capturing colored console output in
// memory.
func New() *Logger {
	logBuf := &bytes.Buffer{}

	config := zapcore.EncoderConfig{
		TimeKey:        "time",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    colorLevelEncoder,
		EncodeTime:     customTimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	encoder := zapcore.NewConsoleEncoder(config)

	core := zapcore.NewTee(
		zapcore.NewCore(encoder, zapcore.AddSync(logBuf), zap.DebugLevel),
	)

	log := zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1), zap.AddStacktrace(zapcore.ErrorLevel))

	return &Logger{
		log:    log,
		logBuf: logBuf,
	}
}

// Nop returns a logger that discards everything. It is the default when no
// logger is configured.
func Nop() *Logger {
	return &Logger{log: zap.NewNop()}
}

func customTimeEncoder(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString(t.Format("[2006-01-02 | 15:04:05]"))
}

func colorLevelEncoder(level zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	var colorCode string
	switch level {
	case zapcore.DebugLevel:
		colorCode = "\033[36m" // Cyan
	case zapcore.InfoLevel:
		colorCode = "\033[32m" // Green
	case zapcore.WarnLevel:
		colorCode = "\033[33m" // Yellow
	case zapcore.ErrorLevel:
		colorCode = "\033[31m" // Red
	default:
		colorCode = "\033[0m" // Default
	}
	enc.AppendString(colorCode + level.String() + "\033[0m")
}

var ansiRe = regexp.MustCompile(`\x1b\[(\d+)m`)

// ansiToHTML converts ANSI color escapes in the buffered output to HTML
// spans with inline styles. Codes without a mapped color pass through
// unstyled; a reset closes the current span.
func ansiToHTML(input string) string {
	var out strings.Builder
	out.WriteString("<pre>")

	last := 0
	open := false
	for _, m := range ansiRe.FindAllStringSubmatchIndex(input, -1) {
		out.WriteString(input[last:m[0]])
		last = m[1]

		code := input[m[2]:m[3]]
		color, known := colorMap[code]
		if (known || code == "0") && open {
			out.WriteString("</span>")
			open = false
		}
		if known {
			out.WriteString(`<span style="color: ` + color + `;">`)
			open = true
		}
	}
	out.WriteString(input[last:])
	if open {
		out.WriteString("</span>")
	}
	out.WriteString("</pre>")

	return out.String()
}

var colorMap = map[string]string{
	"31": "red",
	"32": "green",
	"33": "yellow",
	"34": "blue",
	"36": "cyan",
}

// UpdateLogs re-renders the buffered output into Logs.
func (z *Logger) UpdateLogs() {
	if z.logBuf == nil {
		return
	}
	htmlLogs := ansiToHTML(z.logBuf.String())
	z.Logs = []string{htmlLogs}
}

// ClearLogs drops the buffered output.
func (z *Logger) ClearLogs() {
	if z.logBuf != nil {
		z.logBuf.Reset()
	}
	z.Logs = nil
}

func (z *Logger) Info(msg string, fields ...zap.Field) {
	z.log.Info(msg, fields...)
	z.UpdateLogs()
}

func (z *Logger) Debug(msg string, fields ...zap.Field) {
	z.log.Debug(msg, fields...)
	z.UpdateLogs()
}

func (z *Logger) Warn(msg string, fields ...zap.Field) {
	z.log.Warn(msg, fields...)
	z.UpdateLogs()
}

func (z *Logger) Error(msg string, fields ...zap.Field) {
	z.log.Error(msg, fields...)
	z.UpdateLogs()
}

func (z *Logger) Fatal(msg string, fields ...zap.Field) {
	z.log.Fatal(msg, fields...)
	z.UpdateLogs()
}
