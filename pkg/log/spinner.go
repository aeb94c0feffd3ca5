package log

import (
	"github.com/pterm/pterm"
)

const (
	ResolveInProgressMsg        string = "Resolving shared library dependencies..."
	ResolveInProgressSuccessMsg string = "Resolving shared library dependencies... Done."
	ResolveInProgressErrorMsg   string = "Resolving shared library dependencies... Error."

	StageInProgressMsg        string = "Staging distribution tree..."
	StageInProgressSuccessMsg string = "Staging distribution tree... Done."
	StageInProgressErrorMsg   string = "Staging distribution tree... Error."
)

func GetPtermErrorStyle() *pterm.Style {
	return &pterm.Style{pterm.FgRed, pterm.Bold}
}

func GetPtermSuccessStyle() *pterm.Style {
	return &pterm.Style{pterm.FgGreen}
}

// Set this, so it can be checked and used in the logging process
// to ensure correct output
var currentProgressSpinner *pterm.SpinnerPrinter

func CreateCurrentProgressSpinner(style *pterm.Style, msg string) {
	spinner := pterm.DefaultSpinner
	if style != nil {
		spinner.Style = style
		spinner.MessageStyle = style
	}
	// error can be ignored here since pterm doesn't return one
	currentProgressSpinner, _ = spinner.Start(msg)
}

func StopCurrentProgressSpinner(style *pterm.Style, msg string) {
	if currentProgressSpinner == nil {
		return
	}

	if style != nil {
		currentProgressSpinner.Style = style
		currentProgressSpinner.MessageStyle = style
	}

	if msg != "" {
		currentProgressSpinner.UpdateText(msg)
	}

	// error can be ignored here since pterm doesn't return one
	currentProgressSpinner.RemoveWhenDone = false
	_ = currentProgressSpinner.Stop()
	currentProgressSpinner = nil
}
