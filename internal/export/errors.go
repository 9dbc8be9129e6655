package export

import "fmt"

// MissingInputError reports a structurally broken export: an expected file is
// absent from a present category directory, or a required key is missing from
// a loaded file. These are fatal; an absent category directory is not.
type MissingInputError struct {
	Path string
	Key  string
}

func (e *MissingInputError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("export input %s: missing required key %q", e.Path, e.Key)
	}
	return fmt.Sprintf("export input %s: missing", e.Path)
}
