package ports

// FileWriter writes files atomically: readers observe either the previous
// content or the complete new content, never a partial write.
//
//go:generate mockgen -source=writer.go -destination=mocks/mock_writer.go -package=mocks
type FileWriter interface {
	// WriteFile atomically replaces the file at path with data.
	WriteFile(path string, data []byte) error
}
