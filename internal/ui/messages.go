package ui

import (
	"fmt"
	"io"
)

func OK(w io.Writer, msg string) {
	fmt.Fprintln(w, current.Success.Render(current.SymOK+" "+msg))
}

func Fail(w io.Writer, msg string) {
	fmt.Fprintln(w, current.Error.Render(current.SymFail+" "+msg))
}

func Warn(w io.Writer, msg string) {
	fmt.Fprintln(w, current.Warn.Render(current.SymWarn+" "+msg))
}

func Info(w io.Writer, msg string) {
	fmt.Fprintln(w, current.Muted.Render(msg))
}
