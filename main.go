package main

import (
	"fmt"
	"os"

	"github.com/gerunddev/quizmd/internal/commands"
	"github.com/gerunddev/quizmd/internal/config"
)

const version = "0.1.0"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(commands.ExitUsage)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "convert":
		os.Exit(commands.Convert(args))
	case "check", "validate":
		os.Exit(commands.Check(args))
	case "preview", "show":
		os.Exit(commands.Preview(args))
	case "browse":
		os.Exit(commands.Browse(args))
	case "diff":
		os.Exit(commands.Diff(args))
	case "config":
		os.Exit(commands.Config(args))
	case "version", "-v", "--version":
		fmt.Printf("quizmd v%s\n", version)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(commands.ExitUsage)
	}
}

func printUsage() {
	usage := fmt.Sprintf(`quizmd - Convert quiz question spreadsheets into Markdown

Usage:
  quizmd <command> [options]

Commands:
  convert     Write one Markdown file per question
  check       Validate every question without writing files
  preview     Render a single question in the terminal
  browse      Browse all questions of a file interactively
  diff        Show how regenerated files differ from the output directory
  config      Show the effective configuration
  version     Show version information
  help        Show this help message

Options:
  convert <file> [output-dir] [--dry-run] [--diff] [--strict] [--force] [--quiet]
  check <file> [--strict]
  preview <file> <n> [--raw]
  browse <file> [output-dir]
  diff <file> [output-dir]
  config [--init]

Sources:
  .csv              header row followed by one question per row
  .yaml .yml .json  a list of questions, or a mapping with a questions key

Examples:
  quizmd convert questions.csv
  quizmd convert questions.csv ./cards --dry-run
  quizmd check questions.csv
  quizmd preview questions.csv 3
  quizmd browse questions.yaml

Configuration:
  Config file: %s
  State file:  %s
`, config.ConfigPath(), config.StateFilePath())
	fmt.Print(usage)
}
