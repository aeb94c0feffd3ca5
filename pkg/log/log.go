package log

import (
	"fmt"
	"io"
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/viper"
)

// Output is the primary log output stream. All messages are printed to
// stderr so that the actual command output on stdout stays parseable.
var Output io.Writer = os.Stderr

func log(style *pterm.Style, icon string, a ...any) {
	s := icon + style.Sprint(a...)
	if len(s) == 0 || s[len(s)-1] != '\n' {
		s += "\n"
	}

	// Clear the updating spinner printer output if any, so that the
	// message doesn't end up glued to the spinner text.
	if currentProgressSpinner != nil {
		_ = currentProgressSpinner.Stop()
		currentProgressSpinner = nil
	}

	fmt.Fprint(Output, s)
}

// Successf highlights a message as successful
func Successf(format string, a ...any) {
	Success(fmt.Sprintf(format, a...))
}

func Success(a ...any) {
	log(GetPtermSuccessStyle(), "✅ ", a...)
}

// Warnf highlights a message as a warning
func Warnf(format string, a ...any) {
	Warn(fmt.Sprintf(format, a...))
}

func Warn(a ...any) {
	log(&pterm.Style{pterm.FgYellow, pterm.Bold}, "⚠️ ", a...)
}

// Notef highlights a message as a note
func Notef(format string, a ...any) {
	Note(fmt.Sprintf(format, a...))
}

func Note(a ...any) {
	log(&pterm.Style{pterm.FgLightYellow}, "", a...)
}

// Errorf highlights a message as an error and shows the stack trace if
// the --verbose flag is active
func Errorf(err error, format string, a ...any) {
	logError(err, fmt.Sprintf(format, a...))
}

func Error(err error, a ...any) {
	logError(err, a...)
}

func logError(err error, a ...any) {
	// If no message is provided, print the message of the error
	if len(a) == 0 {
		a = []any{err.Error()}
	}

	if viper.GetBool("verbose") {
		// Print the stack trace if available
		log(GetPtermErrorStyle(), "❌ ", fmt.Sprintf("%+v\n", err))
	}
	log(GetPtermErrorStyle(), "❌ ", a...)
}

// Infof outputs a regular user message without any highlighting
func Infof(format string, a ...any) {
	Info(fmt.Sprintf(format, a...))
}

func Info(a ...any) {
	log(&pterm.Style{pterm.FgGray}, "", a...)
}

// Debugf outputs additional information when the --verbose flag is active
func Debugf(format string, a ...any) {
	Debug(fmt.Sprintf(format, a...))
}

func Debug(a ...any) {
	if viper.GetBool("verbose") {
		log(&pterm.Style{pterm.FgGray}, "🔍 ", a...)
	}
}

// Printf writes without any colors
func Printf(format string, a ...any) {
	Print(fmt.Sprintf(format, a...))
}

func Print(a ...any) {
	log(&pterm.Style{pterm.FgDefault}, "", a...)
}
