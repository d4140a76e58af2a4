// Package logger builds the logrus logger shared by both services.
package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

// New returns a logger tagged with appName. Development gets coloured text, everything else JSON.
// An unknown level falls back to info.
func New(appName, env, level string) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stdout)

	if env == "development" {
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		l.SetFormatter(&logrus.JSONFormatter{})
	}

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	l.SetLevel(lvl)

	l.AddHook(appHook{app: appName})
	return l
}

// appHook stamps every entry with the application name.
type appHook struct {
	app string
}

func (appHook) Levels() []logrus.Level { return logrus.AllLevels }

func (h appHook) Fire(e *logrus.Entry) error {
	if _, ok := e.Data["app"]; !ok {
		e.Data["app"] = h.app
	}
	return nil
}
