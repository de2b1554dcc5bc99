// Package debug gates assertions and verbose traces that are compiled out of
// release builds.
package debug

import (
	"fmt"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
)

// Assert panics if condition is false. It is a no-op unless the debug build
// tag is set.
func Assert(condition bool, args ...interface{}) {
	if Debug && !condition {
		panic(fmt.Sprint(append([]interface{}{"assertion failed: "}, args...)...))
	}
}

// Stack returns a formatted stack trace of the calling goroutine.
func Stack() string {
	var sbb strings.Builder
	WriteStack(&sbb)
	return sbb.String()
}

// WriteStack writes a formatted stack trace to sbb, trimming runtime frames
// unless the debug build tag is set.
func WriteStack(sbb *strings.Builder) {
	// derived from: https://golang.org/pkg/runtime/#example_Frames
	pc := make([]uintptr, 10)
	n := runtime.Callers(3, pc)
	if n == 0 {
		return
	}
	pc = pc[:n]
	frames := runtime.CallersFrames(pc)
	for {
		frame, more := frames.Next()
		fe := strings.Split(frame.Function, "/")
		function := fe[len(fe)-1]
		file := frame.File

		if !Debug {
			if strings.Contains(function, "runtime.gopanic") {
				continue
			}
			file = filepath.Base(file)
		}

		sbb.WriteString(function)
		sbb.WriteByte('\n')
		sbb.WriteByte('\t')
		sbb.WriteString(file)
		sbb.WriteByte(':')
		sbb.WriteString(strconv.Itoa(frame.Line))
		sbb.WriteByte('\n')
		if !more {
			break
		}
	}
}
