package assets

// Resolve returns the loader for a configured template directory.
// An empty dir selects the embedded set.
func Resolve(dir string) (Loader, error) {
	if dir == "" {
		return NewEmbeddedLoader(), nil
	}
	return NewFilesystemLoader(dir)
}
