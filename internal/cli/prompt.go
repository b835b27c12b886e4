package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/mattn/go-isatty"
)

// errNotInteractive is returned when confirmation is needed without a terminal.
var errNotInteractive = errors.New("confirmation required but stdin is not a terminal; pass --yes")

// confirmDelete asks whether dir may be deleted. Tests replace it.
var confirmDelete = promptConfirmDelete

func promptConfirmDelete(dir string) (bool, error) {
	if !isTerminal(os.Stdin) {
		return false, errNotInteractive
	}

	var result bool
	prompt := &survey.Confirm{
		Message: fmt.Sprintf("Delete existing web folder %s?", dir),
		Default: false,
		Help:    "Everything inside the folder is removed before the gallery is written.",
	}
	if err := survey.AskOne(prompt, &result); err != nil {
		return false, err
	}
	return result, nil
}

// isTerminal reports whether f is attached to a terminal.
func isTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
