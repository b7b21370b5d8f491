// Package log wires zap for the command-line tool. Library packages do not
// log; only the pipeline in main does.
package log

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mcncl/jsontree/internal/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var sugar *zap.SugaredLogger

// console is where CONSOLE and MULTI sinks write. Stdout is reserved for
// program output.
var console io.Writer = os.Stderr

func init() {
	if err := InitConsoleLog("SIMPLE", "WARN"); err != nil {
		panic(err)
	}
}

var levelMap = map[string]zapcore.Level{
	"DEBUG": zapcore.DebugLevel,
	"INFO":  zapcore.InfoLevel,
	"WARN":  zapcore.WarnLevel,
	"ERROR": zapcore.ErrorLevel,
	"FATAL": zapcore.FatalLevel,
}

type modeEncoder func() zapcore.Encoder

var modeMap = map[string]modeEncoder{
	"SIMPLE": getSimpleEncoder,
	"FULL":   getFullEncoder,
}

// SinkType selects where log lines go.
type SinkType int

const (
	SinkConsole SinkType = iota // default
	SinkFile
	SinkMulti
)

var sinkMap = map[string]SinkType{
	"":        SinkConsole,
	"CONSOLE": SinkConsole,
	"FILE":    SinkFile,
	"MULTI":   SinkMulti,
}

// GetSinkType parses a sink name case-insensitively.
func GetSinkType(sink string) (SinkType, error) {
	sinkType, ok := sinkMap[strings.ToUpper(sink)]
	if !ok {
		return SinkConsole, fmt.Errorf("illegal sink: %s", sink)
	}
	return sinkType, nil
}

// Log returns the process-wide logger.
func Log() *zap.SugaredLogger {
	return sugar
}

// Init configures the process-wide logger from cfg.
func Init(cfg config.LogConfig) error {
	sinkType, err := GetSinkType(cfg.Sink)
	if err != nil {
		return err
	}
	switch sinkType {
	case SinkFile:
		return InitFileLog(cfg.Mode, cfg.Level, cfg.Filename)
	case SinkMulti:
		return InitMultiLog(cfg.Mode, cfg.Level, cfg.Filename)
	default:
		return InitConsoleLog(cfg.Mode, cfg.Level)
	}
}

// InitConsoleLog logs to stderr.
func InitConsoleLog(mode, level string) error {
	encoder, zapLevel, err := getEncoderAndLevel(mode, level)
	if err != nil {
		return err
	}
	core := zapcore.NewCore(encoder(), zapcore.AddSync(console), zapLevel)
	sugar = zap.New(core, zap.AddCaller()).Sugar()
	return nil
}

// InitFileLog logs to a rotated file.
func InitFileLog(mode, level, filename string) error {
	encoder, zapLevel, err := getEncoderAndLevel(mode, level)
	if err != nil {
		return err
	}
	ws, err := createFileWriter(filename)
	if err != nil {
		return err
	}
	core := zapcore.NewCore(encoder(), ws, zapLevel)
	sugar = zap.New(core, zap.AddCaller()).Sugar()
	return nil
}

// InitMultiLog logs to both stderr and a rotated file.
func InitMultiLog(mode, level, filename string) error {
	encoder, zapLevel, err := getEncoderAndLevel(mode, level)
	if err != nil {
		return err
	}
	ws, err := createFileWriter(filename)
	if err != nil {
		return err
	}
	core := zapcore.NewCore(
		encoder(),
		zapcore.NewMultiWriteSyncer(zapcore.AddSync(console), ws),
		zapLevel,
	)
	sugar = zap.New(core, zap.AddCaller()).Sugar()
	return nil
}

func getEncoderAndLevel(mode, level string) (modeEncoder, zapcore.Level, error) {
	if mode == "" {
		mode = "SIMPLE"
	}
	encoder, ok := modeMap[strings.ToUpper(mode)]
	if !ok {
		return nil, zapcore.DebugLevel, fmt.Errorf("illegal log mode: %s", mode)
	}
	zapLevel, ok := levelMap[strings.ToUpper(level)]
	if !ok {
		return nil, zapcore.DebugLevel, fmt.Errorf("illegal log level: %s", level)
	}
	return encoder, zapLevel, nil
}

func createFileWriter(filename string) (zapcore.WriteSyncer, error) {
	if filename == "" {
		return nil, fmt.Errorf("file sink requires a filename")
	}
	return zapcore.AddSync(&lumberjack.Logger{
		Filename:   filename,
		MaxSize:    10, // megabytes
		MaxAge:     30, // days
		MaxBackups: 7,
		LocalTime:  true,
	}), nil
}

func getSimpleEncoder() zapcore.Encoder {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.CallerKey = ""
	encoderConfig.FunctionKey = ""
	encoderConfig.EncodeTime = nil
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	encoderConfig.ConsoleSeparator = "|"
	return zapcore.NewConsoleEncoder(encoderConfig)
}

func getFullEncoder() zapcore.Encoder {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.FunctionKey = "func"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	encoderConfig.ConsoleSeparator = "|"
	return zapcore.NewConsoleEncoder(encoderConfig)
}
