package logging

type Level string

const (
	LevelTrace Level = "trace"
	LevelDebug Level = "debug"
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
	LevelFatal Level = "fatal"
)

type Format string

const (
	FormatJSON    Format = "json"
	FormatConsole Format = "console"
)

type Config struct {
	Level  Level  `json:"log_level,omitempty" validate:"required,oneof=trace debug info warn error fatal"`
	Format Format `json:"log_format,omitempty" validate:"required,oneof=json console"`
}
