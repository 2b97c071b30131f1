// Package ui formats console messages with a coloured indicator.
package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

var (
	green  = color.New(color.FgGreen).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
	blue   = color.New(color.FgBlue).SprintFunc()
)

// Status formats "[-] message..."
func Status(message string) string {
	return fmt.Sprintf("\n[%s] %s...", green("-"), message)
}

// Question formats "[?] message: "
func Question(message string) string {
	return fmt.Sprintf("\n[%s] %s: ", yellow("?"), message)
}

// Alert formats "[!] message..."
func Alert(message string) string {
	return fmt.Sprintf("\n[%s] %s...", red("!"), message)
}

// Info formats "[i] message"
func Info(message string) string {
	return fmt.Sprintf("\n[%s] %s", blue("i"), message)
}

// Console writes formatted messages; alerts go to Err
type Console struct {
	Out io.Writer
	Err io.Writer
}

// NewConsole returns a console on stdout and stderr
func NewConsole() *Console {
	return &Console{Out: os.Stdout, Err: os.Stderr}
}

func (c *Console) Statusf(format string, a ...any) {
	fmt.Fprintln(c.Out, Status(fmt.Sprintf(format, a...)))
}

func (c *Console) Infof(format string, a ...any) {
	fmt.Fprintln(c.Out, Info(fmt.Sprintf(format, a...)))
}

func (c *Console) Alertf(format string, a ...any) {
	fmt.Fprintln(c.Err, Alert(fmt.Sprintf(format, a...)))
}
