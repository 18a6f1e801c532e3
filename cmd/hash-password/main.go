package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/debemdeboas/oremos-juntos/internal/procedure"
)

// main prints bcrypt hashes for CMS_PASSWORD_HASH, one per password entered.
func main() {
	promptStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("63")).Bold(true)
	outputStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("212"))
	errorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("196"))

	fmt.Println("Enter passwords one by one. Type 'quit' to exit.")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print(promptStyle.Render("Password: "))

		if !scanner.Scan() {
			break // EOF
		}

		password := strings.TrimSpace(scanner.Text())
		if password == "" {
			continue
		}
		if password == "quit" {
			break
		}

		hash, err := procedure.HashPassword(password)
		if err != nil {
			fmt.Println(errorStyle.Render("Error: " + err.Error()))
			continue
		}

		fmt.Println(outputStyle.Render("CMS_PASSWORD_HASH=" + hash))
	}

	if err := scanner.Err(); err != nil {
		fmt.Println(errorStyle.Render("Error reading input: " + err.Error()))
		os.Exit(1)
	}
}
