// Package main provides the refiner scaffolding CLI.
// Usage: refinergen make --name Product [--package refiners] [--dir .] [--builder squirrel|gorm]
package main

import (
	"fmt"
	"os"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "make":
		makeRefiner(os.Args[2:])
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`Refiner scaffolding CLI

Usage:
  refinergen <command> [options]

Commands:
  make      Generate a refiner skeleton
  help      Show this help

Options (make):
  --name      Resource name, e.g. Product (required)
  --package   Go package of the generated file (default "refiners")
  --dir       Output directory (default ".")
  --builder   Query builder: squirrel or gorm (default "squirrel")

Examples:
  refinergen make --name Product
  refinergen make --name OrderLine --package orders --dir internal/domain/orders --builder gorm`)
}

func makeRefiner(args []string) {
	opts, err := parseArgs(args)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		printUsage()
		os.Exit(1)
	}

	path, err := generate(opts)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Refiner created: %s\n", path)
}

func parseArgs(args []string) (options, error) {
	opts := options{Package: "refiners", Dir: ".", Builder: builderSquirrel}

	for i := 0; i < len(args); i++ {
		if i+1 >= len(args) {
			return opts, fmt.Errorf("missing value for %s", args[i])
		}
		switch args[i] {
		case "--name":
			opts.Name = args[i+1]
		case "--package":
			opts.Package = args[i+1]
		case "--dir":
			opts.Dir = args[i+1]
		case "--builder":
			opts.Builder = args[i+1]
		default:
			return opts, fmt.Errorf("unknown option %s", args[i])
		}
		i++
	}
	return opts, opts.validate()
}
