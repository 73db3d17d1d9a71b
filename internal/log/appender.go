package log

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"
	"gopkg.in/yaml.v3"
)

// MultiWriter fans a log entry out to every configured appender. A failed
// appender never blocks the others.
type MultiWriter struct {
	writers []io.Writer
}

func NewMultiWriter() *MultiWriter {
	return &MultiWriter{writers: make([]io.Writer, 0)}
}

func (m *MultiWriter) Write(p []byte) (n int, err error) {
	for _, w := range m.writers {
		_, e := w.Write(p)
		if e != nil {
			err = e
		}
	}
	return len(p), err
}

func (m *MultiWriter) Add(writer io.Writer) *MultiWriter {
	m.writers = append(m.writers, writer)
	return m
}

// buildAppenders assembles the output writer chain. An empty appender list
// falls back to the console.
func buildAppenders(appenders []AppenderConfig) (io.Writer, error) {
	m := NewMultiWriter()
	if len(appenders) == 0 {
		return m.Add(os.Stdout), nil
	}

	for _, ac := range appenders {
		switch ac.Type {
		case "console":
			m.Add(os.Stdout)
		case "file":
			var opts FileAppenderOptions
			if err := decodeOptions(ac.Options, &opts); err != nil {
				return nil, fmt.Errorf("file appender options: %w", err)
			}
			if opts.Filename == "" {
				return nil, fmt.Errorf("file appender requires 'filename' option")
			}
			m.Add(&lumberjack.Logger{
				Filename:   opts.Filename,
				MaxSize:    opts.MaxSize,    // megabytes
				MaxBackups: opts.MaxBackups, // number of backups
				MaxAge:     opts.MaxAge,     // days
				Compress:   opts.Compress,
			})
		default:
			return nil, fmt.Errorf("unknown appender type: %s", ac.Type)
		}
	}
	return m, nil
}

// decodeOptions maps the free-form appender options onto a typed struct via
// a yaml round trip, so option structs reuse their yaml tags.
func decodeOptions(options map[string]interface{}, out interface{}) error {
	data, err := yaml.Marshal(options)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, out)
}
