package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// printError 向 w 输出 "ERROR: <msg>"。
// 仅当 w 是终端且未设置 NO_COLOR 时，前缀以红色显示。
func printError(w io.Writer, msg string) {
	prefix := "ERROR:"
	if colorEnabled(w) {
		c := color.New(color.FgRed, color.Bold)
		c.EnableColor()
		prefix = c.Sprint(prefix)
	}
	fmt.Fprintf(w, "%s %s\n", prefix, msg)
}

func colorEnabled(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
