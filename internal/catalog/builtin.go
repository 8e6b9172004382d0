package catalog

import (
	"embed"
	"io/fs"
)

// builtinCatalogs embeds the catalogs shipped with the binary.
// The structure is:
//   - catalogs/<group>/catalog.yaml
//
//go:embed catalogs
var builtinCatalogs embed.FS

// BuiltinFS returns the embedded filesystem containing the builtin catalogs.
func BuiltinFS() fs.FS {
	return builtinCatalogs
}

// Builtin loads the catalogs embedded in the binary.
func Builtin() (*Catalog, error) {
	return LoadFromYAML(builtinCatalogs)
}
