package cli

import (
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/mattn/go-isatty"
)

// confirm asks a yes/no question. Off a terminal it declines without asking.
func confirm(prompt string) (bool, error) {
	if !isatty.IsTerminal(os.Stdin.Fd()) {
		return false, nil
	}
	var answer bool
	err := survey.AskOne(&survey.Confirm{Message: prompt, Default: false}, &answer)
	if err != nil {
		return false, err
	}
	return answer, nil
}

// editMessage lets the user edit a commit message in their editor. Off a
// terminal the default is kept.
func editMessage(defaultMessage string) (string, error) {
	if !isatty.IsTerminal(os.Stdin.Fd()) {
		return defaultMessage, nil
	}
	message := defaultMessage
	err := survey.AskOne(&survey.Editor{
		Message:       "Merge commit message",
		Default:       defaultMessage,
		AppendDefault: true,
		HideDefault:   true,
	}, &message)
	if err != nil {
		return "", err
	}
	return message, nil
}
