package model

import "fmt"

// Config is resolved once by the command layer and handed to the domain.
type Config struct {
	HandinRoot Path
	Section    int
	// Project is 0 when the operator picks the project per grading run.
	Project   int
	Editor    string
	SourceExt string
	Parallel  int
}

// SectionDir returns <handin-root>/Section<NNN>.
func (c Config) SectionDir() Path {
	return c.HandinRoot.Join(fmt.Sprintf("Section%03d", c.Section))
}
