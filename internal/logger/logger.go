package logger

import (
	"fmt"
	"os"
	"time"
)

// ANSI color codes. Colors are skipped when stdout is not a terminal
// (e.g. piped into a file or CI log).
const (
	reset  = "\033[0m"
	red    = "\033[31m"
	green  = "\033[32m"
	yellow = "\033[33m"
	blue   = "\033[34m"
	cyan   = "\033[36m"
	gray   = "\033[90m"
	bold   = "\033[1m"
)

func colorEnabled() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}

func paint(color, s string) string {
	if !colorEnabled() {
		return s
	}
	return color + s + reset
}

func emit(color, level, tag, msg string) {
	ts := time.Now().Format("15:04:05")
	fmt.Fprintf(os.Stdout, "%s %s %s %s\n",
		paint(gray, ts),
		paint(color, fmt.Sprintf("%-4s", level)),
		paint(bold, fmt.Sprintf("[%s]", tag)),
		msg)
}

// Info logs a neutral informational message.
func Info(tag, msg string) { emit(blue, "INFO", tag, msg) }

// Success logs a positive outcome.
func Success(tag, msg string) { emit(green, "OK", tag, msg) }

// Warn logs a recoverable problem.
func Warn(tag, msg string) { emit(yellow, "WARN", tag, msg) }

// Error logs a failure.
func Error(tag, msg string) { emit(red, "ERR", tag, msg) }

// Section prints a visual divider with a title.
func Section(title string) {
	fmt.Fprintf(os.Stdout, "\n%s\n", paint(cyan, "── "+title+" "+"─────────────────────────"))
}

// Stats prints a key/value pair aligned under the current section.
func Stats(key string, value interface{}) {
	fmt.Fprintf(os.Stdout, "   %s %v\n", paint(gray, fmt.Sprintf("%-20s", key+":")), value)
}

// Server announces the listen address.
func Server(addr string) {
	fmt.Fprintf(os.Stdout, "\n   %s %s\n\n",
		paint(green, "Dashboard listening on"),
		paint(bold, "http://"+addr))
}

// Banner prints the startup banner with the build version.
func Banner(version string) {
	if version == "" {
		version = "dev"
	}
	fmt.Fprintf(os.Stdout, "%s\n", paint(cyan, `
   ___  ____   __   ____  ____  ____   __    __   ____  ____
  / __)(  _ \ / _\ (  __)(_  _)(  _ \ /  \  / _\ (  _ \(    \
 ( (__  )   //    \ ) _)   )(   ) _ ((  O )/    \ )   / ) D (
  \___)(__\_)\_/\_/(__)   (__) (____/ \__/ \_/\_/(__\_)(____/`))
	fmt.Fprintf(os.Stdout, "   %s %s\n\n", paint(gray, "server stats dashboard"), paint(bold, version))
}
