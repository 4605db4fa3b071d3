// Package schemas embeds the JSON Schemas used to validate generative-model
// output before it reaches users.
package schemas

import "embed"

//go:embed *.schema.json
var Files embed.FS

// Read returns the raw bytes of an embedded schema file.
func Read(name string) ([]byte, error) {
	return Files.ReadFile(name)
}
