package project

// FileStore removes stored document files; external URL locations are
// ignored by the implementation.
type FileStore interface {
	Remove(location string) error
}
