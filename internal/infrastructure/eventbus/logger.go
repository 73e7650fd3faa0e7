package eventbus

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ThreeDotsLabs/watermill"

	usecasecontract "github.com/mikiasgoitom/Coursely/internal/usecase/contract"
)

// watermillLogger routes watermill's internal logging to the application logger.
type watermillLogger struct {
	logger usecasecontract.IAppLogger
	fields watermill.LogFields
}

func NewWatermillLogger(logger usecasecontract.IAppLogger) watermill.LoggerAdapter {
	return &watermillLogger{logger: logger}
}

func (l *watermillLogger) Error(msg string, err error, fields watermill.LogFields) {
	l.logger.Errorf("watermill: %s: %v%s", msg, err, formatFields(l.fields.Add(fields)))
}

func (l *watermillLogger) Info(msg string, fields watermill.LogFields) {
	l.logger.Debugf("watermill: %s%s", msg, formatFields(l.fields.Add(fields)))
}

func (l *watermillLogger) Debug(msg string, fields watermill.LogFields) {
	l.logger.Debugf("watermill: %s%s", msg, formatFields(l.fields.Add(fields)))
}

func (l *watermillLogger) Trace(msg string, fields watermill.LogFields) {}

func (l *watermillLogger) With(fields watermill.LogFields) watermill.LoggerAdapter {
	return &watermillLogger{logger: l.logger, fields: l.fields.Add(fields)}
}

func formatFields(fields watermill.LogFields) string {
	if len(fields) == 0 {
		return ""
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var b strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%v", k, fields[k])
	}
	return b.String()
}
