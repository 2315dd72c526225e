package config

import (
	"bytes"
	"fmt"
	"io"
	"sort"

	"github.com/sirupsen/logrus"
)

// LogFormatter writes "bdfe: level: message key=value ..." lines.
type LogFormatter struct{}

func (f *LogFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	buf := bytes.Buffer{}
	buf.WriteString("bdfe: ")
	if entry.Level != logrus.InfoLevel {
		buf.WriteString(entry.Level.String())
		buf.WriteString(": ")
	}
	buf.WriteString(entry.Message)

	keys := make([]string, 0, len(entry.Data))
	for k := range entry.Data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&buf, " %s=%v", k, entry.Data[k])
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// NewLogger returns a logger writing to w at info level, or debug level
// when debug is set.
func NewLogger(w io.Writer, debug bool) *logrus.Logger {
	l := logrus.New()
	l.Out = w
	l.Formatter = &LogFormatter{}
	if debug {
		l.SetLevel(logrus.DebugLevel)
	}
	return l
}
