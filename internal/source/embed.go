package source

import (
	"embed"
	"io/fs"
)

// defaultBundle holds the skill bundle shipped inside the binary, used
// when no --source directory is given.
//
//go:embed all:bundle
var defaultBundle embed.FS

// LoadEmbedded loads the bundle packaged with the binary.
func LoadEmbedded() (*Bundle, error) {
	sub, err := fs.Sub(defaultBundle, "bundle")
	if err != nil {
		return nil, err
	}
	return LoadFS(sub)
}
