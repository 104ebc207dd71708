// Command blueprint generates PDF documents from JSON schema files.
//
// # Usage
//
//	blueprint generate <schema.json> [flags]
//	blueprint formats
//
// Flags of generate may appear before or after the schema path:
//
//	-d, --data <json|path>    data passed to the schema (inline JSON or a JSON file)
//	-o, --output <path>       output file, "-" for stdout (default ./output.pdf)
//	--orientation <o>         portrait or landscape (default portrait)
//	--format <name|WxH>       A2, A3, A4, A5, letter, card or WIDTHxHEIGHT in points (default A4)
//	-v, --verbose             log diagnostics to stderr
//
// The exit code is 0 on success and 1 on any error.
package main

import (
	"os"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}
