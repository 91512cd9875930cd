package model

// ScoresheetState describes how a submission's score file was resolved.
type ScoresheetState string

const (
	// ScoresheetOK means exactly one score file exists.
	ScoresheetOK ScoresheetState = "ok"
	// ScoresheetMissing means no score file exists.
	ScoresheetMissing ScoresheetState = "missing"
	// ScoresheetAmbiguous means more than one score file exists.
	ScoresheetAmbiguous ScoresheetState = "ambiguous"
	// ScoresheetMalformed means the score file has no point tokens.
	ScoresheetMalformed ScoresheetState = "malformed"
	// ScoresheetNone is used for students without a submission.
	ScoresheetNone ScoresheetState = "-"
)

// StatusRow is one line of the section status report.
type StatusRow struct {
	NetID       string          `yaml:"netid"`
	Project     int             `yaml:"project"`
	Submitted   bool            `yaml:"submitted"`
	Graded      bool            `yaml:"graded"`
	GradedBy    string          `yaml:"graded_by,omitempty"`
	Scoresheet  ScoresheetState `yaml:"scoresheet"`
	StatedTotal *int            `yaml:"stated_total,omitempty"`
	SourceFiles int             `yaml:"source_files"`
}
