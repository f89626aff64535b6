package core

import (
	"log"
	"os"
)

var (
	// LogInf logs informational events.
	LogInf = log.New(os.Stderr, "inf:", log.LstdFlags)
	// LogWrn logs warning events.
	LogWrn = log.New(os.Stderr, "wrn:", log.LstdFlags)
	// LogErr logs error events.
	LogErr = log.New(os.Stderr, "err:", log.LstdFlags)
)

// SetLogFile redirects all loggers to the file at path.
//
// Remarks:
//   - Empty path keeps logging to stderr.
func SetLogFile(path string) error {
	if path == "" {
		return nil
	}

	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		return err
	}

	for _, logger := range loggers() {
		logger.SetOutput(file)
		logger.SetFlags(log.LUTC | log.Ldate | log.Ltime | log.Lmicroseconds | log.Lshortfile)
	}

	return nil
}

// SetVerbose enables or disables informational logging.
func SetVerbose(verbose bool) {
	if verbose {
		LogInf.SetOutput(LogWrn.Writer())
	} else {
		LogInf.SetOutput(discard{})
	}
}

func loggers() []*log.Logger {
	return []*log.Logger{LogInf, LogWrn, LogErr}
}

type discard struct{}

func (discard) Write(p []byte) (int, error) {
	return len(p), nil
}
