package shader

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"
)

// DefaultLogLimit is the size of the info log buffer, terminator included.
const DefaultLogLimit = 512

// diagnostics writes build failures to a stream in the classic
// ERROR::SHADER::... format and mirrors them to the structured log.
type diagnostics struct {
	w     io.Writer
	log   *zap.Logger
	limit int
}

func (d *diagnostics) readFailed(err *IoError) {
	fmt.Fprintf(d.w, "ERROR::SHADER::FILE_NOT_SUCCESSFULLY_READ: %v\n", err.Err)
	d.log.Error("shader source not read",
		zap.String("stage", err.Stage.label()),
		zap.String("path", err.Path),
		zap.Error(err.Err),
	)
}

func (d *diagnostics) compileFailed(src Source, infoLog string) {
	text := truncateLog(infoLog, d.limit)
	fmt.Fprintf(d.w, "ERROR::SHADER::%s::COMPILATION_FAILED\n%s\n", src.Stage, text)
	d.log.Error("shader compilation failed",
		zap.String("stage", src.Stage.label()),
		zap.String("path", src.Path),
		zap.String("log", text),
	)
}

func (d *diagnostics) linkFailed(program uint32, infoLog string) {
	text := truncateLog(infoLog, d.limit)
	fmt.Fprintf(d.w, "ERROR::SHADER::PROGRAM::LINKING_FAILED\n%s\n", text)
	d.log.Error("shader program linking failed",
		zap.Uint32("program", program),
		zap.String("log", text),
	)
}

// truncateLog bounds a backend log the way a fixed C buffer of limit bytes
// would: at most limit-1 bytes survive, cut on a rune boundary. Trailing
// newlines are dropped.
func truncateLog(s string, limit int) string {
	if limit > 0 && len(s) > limit-1 {
		end := limit - 1
		for end > 0 && !utf8.RuneStart(s[end]) {
			end--
		}
		s = s[:end]
	}
	return strings.TrimRight(s, "\x00\r\n")
}
