package logging

import (
	"fmt"
	stdlog "log"
	"os"

	"github.com/sirupsen/logrus"
)

// Init configures the standard logrus logger and routes the stdlib log package through it.
func Init(level, format string) error {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}

	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(lvl)

	switch format {
	case "json":
		logrus.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02 15:04:05",
		})
	default:
		logrus.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
		})
	}

	stdlog.SetFlags(0)
	stdlog.SetOutput(logrus.StandardLogger().Writer())
	return nil
}
