package logging

import (
	"io"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// RunIDHook stamps every entry with the id of the current invocation.
type RunIDHook struct {
	ID string
}

func NewRunIDHook() *RunIDHook {
	return &RunIDHook{ID: uuid.NewString()}
}

func (h *RunIDHook) Levels() []log.Level {
	return log.AllLevels
}

func (h *RunIDHook) Fire(entry *log.Entry) error {
	entry.Data[`run_id`] = h.ID
	return nil
}

// New builds the process logger. Output should not be stdout; the report owns it.
func New(out io.Writer) *log.Logger {
	logger := log.New()
	logger.SetOutput(out)
	logger.SetFormatter(&log.TextFormatter{
		TimestampFormat: time.RFC3339,
		FullTimestamp:   true,
	})
	logger.AddHook(NewRunIDHook())
	return logger
}
