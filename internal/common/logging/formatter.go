package logging

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	log "github.com/sirupsen/logrus"
)

// CommandLineFormatter writes the message followed by sorted key=value fields. Warnings and
// errors are prefixed with their level. Stack traces are only written at debug level.
type CommandLineFormatter struct{}

func (f *CommandLineFormatter) Format(entry *log.Entry) ([]byte, error) {
	b := &bytes.Buffer{}
	if entry.Level <= log.WarnLevel {
		fmt.Fprintf(b, "%s: ", strings.ToUpper(entry.Level.String()))
	}
	b.WriteString(entry.Message)

	keys := make([]string, 0, len(entry.Data))
	for k := range entry.Data {
		if k == Stacktrace && !entry.Logger.IsLevelEnabled(log.DebugLevel) {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(b, " %s=%v", k, entry.Data[k])
	}
	b.WriteByte('\n')
	return b.Bytes(), nil
}
