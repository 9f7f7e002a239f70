// Package main provides the entry point for the doclink CLI.
//
// doclink validates that a static documentation set's internal hyperlinks
// and resource references point to files that exist on disk. It is a
// build-time sanity check intended to run in continuous integration.
//
// Usage:
//
//	doclink
//	doclink check --root docs
//	doclink compare docs
//
// See --help for all available options.
package main

// main is the entry point for doclink.
func main() {
	Execute()
}
