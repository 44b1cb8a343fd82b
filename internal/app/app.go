package app

import (
	"fmt"
	"os"
	"strings"
)

// Run executes the CLI command and returns a process exit code.
func Run(args []string) int {
	if len(args) == 0 {
		printUsage()
		return 2
	}

	switch strings.ToLower(strings.TrimSpace(args[0])) {
	case "help", "--help", "-h":
		printUsage()
		return 0
	case "health":
		return runHealth(args[1:])
	case "build-kb":
		return runBuildKB(args[1:])
	case "dedupe":
		return runDedupe(args[1:])
	case "retrieve":
		return runRetrieve(args[1:])
	case "generate":
		return runGenerate(args[1:])
	case "import":
		return runImport(args[1:])
	case "serve":
		return runServe(args[1:])
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", args[0])
		printUsage()
		return 2
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "faqforge CLI")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Usage:")
	fmt.Fprintln(os.Stderr, "  faqforge <command> [flags]")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Commands:")
	fmt.Fprintln(os.Stderr, "  health    Verify database connectivity")
	fmt.Fprintln(os.Stderr, "  build-kb  Build the deduplicated knowledge corpus from CSV exports")
	fmt.Fprintln(os.Stderr, "  dedupe    Cluster and merge question exports into canonical questions")
	fmt.Fprintln(os.Stderr, "  retrieve  Query the knowledge corpus with the TF-IDF index")
	fmt.Fprintln(os.Stderr, "  generate  Generate articles for pending questions via the model API")
	fmt.Fprintln(os.Stderr, "  import    Load generated articles into the Postgres questions table")
	fmt.Fprintln(os.Stderr, "  serve     Start the Echo read API over the question store")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Use \"faqforge <command> -h\" for command-specific flags.")
}
