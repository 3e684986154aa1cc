package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Logger 是进程内唯一的日志实例，由 main 构造后注入各组件。
type Logger struct {
	base   *slog.Logger
	level  *slog.LevelVar
	closer io.Closer
}

// New 基于任意 writer 构造 Logger（不负责关闭 writer）。
func New(w io.Writer, level string) *Logger {
	if w == nil {
		w = os.Stdout
	}
	lv := new(slog.LevelVar)
	lv.Set(ParseLevel(level))
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: lv})
	return &Logger{base: slog.New(handler), level: lv}
}

// Open 以追加模式打开日志文件；文件不会被截断或轮转。
func Open(path, level string) (*Logger, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return nil, fmt.Errorf("log path cannot be empty")
	}
	dir := filepath.Dir(trimmed)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	file, err := os.OpenFile(trimmed, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, err
	}
	l := New(file, level)
	l.closer = file
	return l, nil
}

// Nop 丢弃所有输出，供测试使用。
func Nop() *Logger {
	return New(io.Discard, "error")
}

func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// With 返回附带固定属性的子 Logger，共享同一输出与级别。
func (l *Logger) With(args ...any) *Logger {
	if l == nil {
		return nil
	}
	return &Logger{base: l.base.With(args...), level: l.level}
}

// Close 同步并关闭底层文件；子 Logger 调用无效果。
func (l *Logger) Close() error {
	if l == nil || l.closer == nil {
		return nil
	}
	closer := l.closer
	l.closer = nil
	if f, ok := closer.(*os.File); ok {
		_ = f.Sync()
	}
	return closer.Close()
}

func (l *Logger) active() *slog.Logger {
	if l == nil || l.base == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return l.base
}

func (l *Logger) Debugf(format string, v ...any) {
	l.active().Debug(fmt.Sprintf(format, v...))
}

func (l *Logger) Infof(format string, v ...any) {
	l.active().Info(fmt.Sprintf(format, v...))
}

func (l *Logger) Warnf(format string, v ...any) {
	l.active().Warn(fmt.Sprintf(format, v...))
}

func (l *Logger) Errorf(format string, v ...any) {
	l.active().Error(fmt.Sprintf(format, v...))
}
