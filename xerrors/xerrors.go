// Package xerrors provides a small set of error-handling helpers used
// throughout wincore, extending the standard library errors package.
package xerrors

import (
	"log/slog"
	"runtime"
	"strconv"
)

// Log logs err (if non-nil) at error level, tagged with caller info, and
// returns it unchanged. Intended usage:
//
//	return xerrors.Log(doSomething())
func Log(err error) error {
	if err != nil {
		slog.Error(err.Error() + " | " + CallerInfo())
	}
	return err
}

// Log1 logs err (if non-nil) and returns v regardless. Intended usage:
//
//	v := xerrors.Log1(doSomething())
func Log1[T any](v T, err error) T {
	if err != nil {
		slog.Error(err.Error() + " | " + CallerInfo())
	}
	return v
}

// Must panics if err is non-nil. Reserved for precondition violations that
// must crash early with a clear message rather than be recovered from.
func Must(err error) {
	if err != nil {
		panic(err)
	}
}

// Must1 panics if err is non-nil, otherwise returns v.
func Must1[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

// CallerInfo returns file:line information about the caller of the
// function that called CallerInfo, for attaching to log lines.
func CallerInfo() string {
	pc, file, line, _ := runtime.Caller(2)
	fn := runtime.FuncForPC(pc)
	name := "?"
	if fn != nil {
		name = fn.Name()
	}
	return name + " " + file + ":" + strconv.Itoa(line)
}
