package logger

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// logs go to stderr; stdout belongs to Maxwell once the process is replaced
var (
	output io.Writer = os.Stderr
	logger           = zerolog.New(newConsoleWriter(output)).With().Timestamp().Logger()
)

// SetOutput redirects console output, keeping the current level. Later Init calls write to w as well.
func SetOutput(w io.Writer) {
	output = w
	logger = zerolog.New(newConsoleWriter(output)).Level(logger.GetLevel()).With().Timestamp().Logger()
}

// Info writes record into os.Stderr with log level INFO
func Info(v ...interface{}) {
	if len(v) == 1 {
		logger.Info().Interface("message", v[0]).Send()
	} else {
		logger.Info().Msgf("%s", v...)
	}
}

// Infof writes record into os.Stderr with log level INFO
func Infof(format string, v ...interface{}) {
	logger.Info().Msgf(format, v...)
}

// Debug writes record into os.Stderr with log level DEBUG
func Debug(v ...interface{}) {
	logger.Debug().Msgf("%s", v...)
}

// Debugf writes record into os.Stderr with log level DEBUG
func Debugf(format string, v ...interface{}) {
	logger.Debug().Msgf(format, v...)
}

// Error writes record into os.Stderr with log level ERROR
func Error(v ...interface{}) {
	logger.Error().Msgf("%s", v...)
}

// Errorf writes record into os.Stderr with log level ERROR
func Errorf(format string, v ...interface{}) {
	logger.Error().Msgf(format, v...)
}

// Fatal writes record into os.Stderr with log level FATAL and exits
func Fatal(v ...interface{}) {
	logger.Fatal().Msgf("%s", v...)
	os.Exit(1)
}

// Fatalf writes record into os.Stderr with log level FATAL and exits
func Fatalf(format string, v ...interface{}) {
	logger.Fatal().Msgf(format, v...)
	os.Exit(1)
}

// Warn writes record into os.Stderr with log level WARN
func Warn(v ...interface{}) {
	logger.Warn().Msgf("%s", v...)
}

// Warnf writes record into os.Stderr with log level WARN
func Warnf(format string, v ...interface{}) {
	logger.Warn().Msgf(format, v...)
}

// Init configures the level and, when logFile is set, a rotating file next to the console output.
func Init(level, logFile string) error {
	parsed, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		return fmt.Errorf("invalid log level %q: %s", level, err)
	}
	if parsed == zerolog.NoLevel {
		parsed = zerolog.InfoLevel
	}

	zerolog.TimestampFunc = func() time.Time {
		return time.Now().UTC()
	}

	var out io.Writer = newConsoleWriter(output)
	if logFile != "" {
		rotatingFile := &lumberjack.Logger{
			Filename:   logFile,
			MaxSize:    100, // Max size in MB before log rotation
			MaxBackups: 5,
			MaxAge:     30, // days
			Compress:   true,
		}
		out = zerolog.MultiLevelWriter(out, rotatingFile)
	}

	logger = zerolog.New(out).Level(parsed).With().Timestamp().Logger()
	return nil
}

func newConsoleWriter(out io.Writer) zerolog.ConsoleWriter {
	var currentLevel string
	// ANSI color codes per level
	var logColors = map[string]string{
		"debug": "\033[36m", // Cyan
		"info":  "\033[32m", // Green
		"warn":  "\033[33m", // Yellow
		"error": "\033[31m", // Red
		"fatal": "\033[31m", // Red
	}

	return zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: "2006-01-02 15:04:05",
		FormatLevel: func(i interface{}) string {
			level, _ := i.(string)
			currentLevel = level
			color := logColors[level]
			return fmt.Sprintf("%s%s\033[0m", color, strings.ToUpper(level))
		},
		FormatMessage: func(i interface{}) string {
			msg := ""
			switch v := i.(type) {
			case string:
				msg = v
			case nil:
				return ""
			default:
				jsonMsg, err := json.Marshal(v)
				if err != nil {
					return err.Error()
				}
				return string(jsonMsg)
			}
			if currentLevel == zerolog.ErrorLevel.String() || currentLevel == zerolog.FatalLevel.String() {
				msg = fmt.Sprintf("\033[31m%s\033[0m", msg)
			}
			return msg
		},
		FormatTimestamp: func(i interface{}) string {
			return fmt.Sprintf("\033[90m%s\033[0m", i)
		},
	}
}

// ProcessOutputReader forwards the output of a child process into the logger line by line.
type ProcessOutputReader struct {
	Name      string // Name to identify the process in logs
	IsError   bool   // Whether this reader handles error output
	reader    *bufio.Scanner
	closeFn   func() error
	closeOnce sync.Once
	done      chan struct{}
}

// NewProcessLogger returns the reader and the write end that should be connected to the process output
func NewProcessLogger(name string, isError bool) (*ProcessOutputReader, *os.File, error) {
	r, w, err := os.Pipe()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create pipe: %v", err)
	}

	reader := &ProcessOutputReader{
		Name:    name,
		IsError: isError,
		reader:  bufio.NewScanner(r),
		closeFn: r.Close,
		done:    make(chan struct{}),
	}

	return reader, w, nil
}

// StartReading logs each line of the process output until the write end is closed.
// Java exceptions and their stack traces are logged at ERROR.
func (p *ProcessOutputReader) StartReading() {
	errorLinePattern := regexp.MustCompile(`(?i)(ERROR|FATAL|Exception|Error:|Failed to|java\.lang\.\w+Exception|^\s*Caused by:)`)
	stackTraceLinePattern := regexp.MustCompile(`^\s*at\s+[\w$.]+\([\w$]+\.java:\d+\)`)

	go func() {
		defer close(p.done)
		defer p.Close()
		inStackTrace := false

		for p.reader.Scan() {
			line := p.reader.Text()

			isErrorLine := p.IsError || errorLinePattern.MatchString(line)
			isStackTraceLine := stackTraceLinePattern.MatchString(line)

			if isErrorLine || isStackTraceLine {
				inStackTrace = true
			} else if inStackTrace && !strings.HasPrefix(strings.TrimSpace(line), "at ") {
				inStackTrace = false
			}

			if isErrorLine || isStackTraceLine || inStackTrace {
				Error(fmt.Sprintf("[%s] %s", p.Name, line))
			} else {
				Info(fmt.Sprintf("[%s] %s", p.Name, line))
			}
		}
	}()
}

// Wait blocks until the reader has drained the process output.
func (p *ProcessOutputReader) Wait() {
	<-p.done
}

// Close closes the reader
func (p *ProcessOutputReader) Close() {
	p.closeOnce.Do(func() {
		if p.closeFn != nil {
			if err := p.closeFn(); err != nil {
				fmt.Fprintf(os.Stderr, "Error closing ProcessOutputReader: %v\n", err)
			}
		}
	})
}

// SetupProcessLogger creates stdout and stderr readers for a process
// and returns write-ends that should be connected to the process stdout and stderr
func SetupProcessLogger(processName string) (*ProcessOutputReader, *ProcessOutputReader, *os.File, *os.File, error) {
	stdoutReader, stdoutWriter, err := NewProcessLogger(processName, false)
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("failed to create stdout reader: %v", err)
	}

	stderrReader, stderrWriter, err := NewProcessLogger(processName, true)
	if err != nil {
		stdoutReader.Close()
		stdoutWriter.Close()
		return nil, nil, nil, nil, fmt.Errorf("failed to create stderr reader: %v", err)
	}

	return stdoutReader, stderrReader, stdoutWriter, stderrWriter, nil
}

// SetupAndStartProcess starts cmd with its stdout and stderr logged via the logger.
// The returned wait function waits for the process and for its output to be drained.
func SetupAndStartProcess(processName string, cmd *exec.Cmd) (func() error, error) {
	stdoutReader, stderrReader, stdoutWriter, stderrWriter, err := SetupProcessLogger(processName)
	if err != nil {
		return nil, fmt.Errorf("failed to set up process output capture: %v", err)
	}

	cmd.Stdout = stdoutWriter
	cmd.Stderr = stderrWriter

	if err := cmd.Start(); err != nil {
		stdoutReader.Close()
		stderrReader.Close()
		stdoutWriter.Close()
		stderrWriter.Close()
		return nil, fmt.Errorf("failed to start process: %v", err)
	}

	stdoutReader.StartReading()
	stderrReader.StartReading()

	// the child holds its own copies of the write ends
	stdoutWriter.Close()
	stderrWriter.Close()

	return func() error {
		err := cmd.Wait()
		stdoutReader.Wait()
		stderrReader.Wait()
		return err
	}, nil
}
