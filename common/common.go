package common

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	logger "github.com/multiversx/mx-chain-logger-go"
	"github.com/multiversx/mx-chain-logger-go/file"
)

// AttachFileLogger attaches, if required, a log file
func AttachFileLogger(
	log logger.Logger,
	defaultLogsPath string,
	logFilePrefix string,
	saveLogFile bool,
	workingDir string) (FileLoggingHandler, error) {
	var err error
	var logFile FileLoggingHandler
	if saveLogFile {
		argsFileLogging := file.ArgsFileLogging{
			WorkingDir:      workingDir,
			DefaultLogsPath: defaultLogsPath,
			LogFilePrefix:   logFilePrefix,
		}
		logFile, err = file.NewFileLogging(argsFileLogging)
		if err != nil {
			return nil, fmt.Errorf("%w creating a log file", err)
		}
	}

	err = logger.SetDisplayByteSlice(logger.ToHex)
	log.LogIfError(err)

	return logFile, nil
}

// LoadEnvFile loads the provided .env file, if present, into the process
// environment. The exporter itself reads nothing from it directly: the file
// only carries the AZURE_* variables consumed by the credential chain, so a
// missing file is not an error.
func LoadEnvFile(envFile string) error {
	_, err := os.Stat(envFile)
	if os.IsNotExist(err) {
		return nil
	}

	return godotenv.Load(envFile)
}

// PollLoopStarter starts a go routine that calls the provided handler once
// right away and then periodically. The timer is armed only after the handler
// returns, so two executions can never overlap.
func PollLoopStarter(ctx context.Context, handler func(ctx context.Context), interval time.Duration) {
	go func() {
		timer := time.NewTimer(interval)
		defer timer.Stop()

		handler(ctx)

		for {
			select {
			case <-timer.C:
				handler(ctx)
				timer.Reset(interval)
			case <-ctx.Done():
				return
			}
		}
	}()
}
