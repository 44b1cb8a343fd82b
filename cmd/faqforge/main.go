package main

import (
	"os"

	"proxyfaqs.dev/faqforge/internal/app"
)

func main() {
	os.Exit(app.Run(os.Args[1:]))
}
