package ux

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// Confirm prompts the user for yes/no confirmation
func Confirm(message string, defaultYes bool) bool {
	reader := bufio.NewReader(os.Stdin)

	prompt := message
	if defaultYes {
		prompt += " (Y/n): "
	} else {
		prompt += " (y/N): "
	}

	fmt.Print(prompt)
	response, err := reader.ReadString('\n')
	if err != nil {
		return defaultYes
	}

	response = strings.TrimSpace(strings.ToLower(response))
	if response == "" {
		return defaultYes
	}
	return response == "y" || response == "yes"
}

// ConfirmOverwrite asks before clobbering an existing file. Missing
// files need no confirmation.
func ConfirmOverwrite(path string) bool {
	if _, err := os.Stat(path); err != nil {
		return true
	}
	return Confirm(fmt.Sprintf("%s already exists. Overwrite?", path), false)
}
