package profile

import (
	"runtime"
	"strings"
	"sync"
	"sync/atomic"
	"unicode"

	"github.com/google/pprof/profile"
)

// since we are assuming usage of this package from a single go routine, this channel only has
// one "producer", and one "consumer". it's purpose is to guarantee the order of execution of
// adding / removing a profiling session and sampling events, while enabling the caller
// (the synthesis go routine) to sample the events asynchronously.
var chCommands = make(chan command, 100)
var onceInit sync.Once

type command struct {
	p      *Profile
	pc     []uintptr
	remove bool
}

func worker() {
	for c := range chCommands {
		if c.p != nil {
			if c.remove {
				for i := 0; i < len(sessions); i++ {
					if sessions[i] == c.p {
						sessions[i] = sessions[len(sessions)-1]
						sessions = sessions[:len(sessions)-1]
						break
					}
				}
				close(c.p.chDone)

				// decrement active sessions
				atomic.AddUint32(&activeSessions, ^uint32(0))
			} else {
				sessions = append(sessions, c.p)
			}
			continue
		}

		// it's a sampling of event (gate)
		collectSample(c.pc)
	}

}

// collectSample must be called from the worker go routine
func collectSample(pc []uintptr) {
	// for each session we may have a distinct sample, since ids of functions and locations may mismatch
	samples := make([]*profile.Sample, len(sessions))
	for i := range samples {
		samples[i] = &profile.Sample{Value: []int64{1}}
	}

	frames := runtime.CallersFrames(pc)
	// Loop to get frames.
	// A fixed number of pcs can expand to an indefinite number of Frames.
	for {
		frame, more := frames.Next()

		if strings.HasPrefix(frame.Function, "testing.") || strings.HasPrefix(frame.Function, "runtime.") {
			break
		}

		if strings.HasSuffix(frame.Function, ".func1") {
			// filter anonymous func
			continue
		}

		// filter the emit helpers so gates are attributed to the algorithm
		if filterSynthPrivateFunc(frame.Function) {
			if !more {
				break
			}
			continue
		}

		frame.Function = strings.ReplaceAll(frame.Function, "[...]", "[T]")

		for i := range samples {
			samples[i].Location = append(samples[i].Location, sessions[i].getLocation(&frame))
		}

		if !more {
			break
		}
		if isSynthEntryPoint(frame.Function) {
			for i := range sessions {
				sessions[i].onceSetName.Do(func() {
					// once per profile session, we name the profile after the
					// synthesis entry point that produced the first gate
					fe := strings.Split(frame.Function, "/")
					sessions[i].pprof.Mapping = []*profile.Mapping{
						{ID: 1, File: fe[len(fe)-1]},
					}
				})
			}
		}
	}

	for i := range sessions {
		sessions[i].pprof.Sample = append(sessions[i].pprof.Sample, samples[i])
	}
}

// isSynthEntryPoint reports whether the function is an exported synthesis
// entry point; the first one seen names the profile.
func isSynthEntryPoint(f string) bool {
	const synthPrefix = "github.com/qsynth/qsynth/synth."
	if !strings.HasPrefix(f, synthPrefix) || len(f) == len(synthPrefix) {
		return false
	}
	c := []rune(f[len(synthPrefix):])[0]
	return unicode.IsUpper(c)
}

func filterSynthPrivateFunc(f string) bool {
	const synthPrefix = "github.com/qsynth/qsynth/synth."
	if strings.HasPrefix(f, synthPrefix) && len(f) > len(synthPrefix) {
		// filter synth package private helpers from the trace.
		c := []rune(f)[len(synthPrefix)]
		if unicode.IsLower(c) {
			return true
		}
	}
	return strings.HasPrefix(f, "github.com/qsynth/qsynth/circuit.")
}
