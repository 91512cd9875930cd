package model

// Submission is one student's handin for one project.
//
// Graded mirrors the marker file on disk: it is computed at discovery and set
// only after the marker has been written.
type Submission struct {
	NetID       string
	Location    Path
	Project     int
	SourceFiles []Path
	AllFiles    []Path
	Graded      bool
	GradedBy    string

	// Scoresheet is empty unless exactly one score file was found.
	Scoresheet        Path
	ScoresheetMatches int
}

// HasScoresheet reports whether a single scoresheet was resolved.
func (s *Submission) HasScoresheet() bool {
	return s != nil && s.Scoresheet != ""
}

// Student groups every project submission of one netid.
type Student struct {
	NetID       string
	Location    Path
	Submissions map[int]*Submission
}

// Submission returns the submission for project, if the student handed one in.
func (s *Student) Submission(project int) (*Submission, bool) {
	if s == nil || s.Submissions == nil {
		return nil, false
	}

	sub, ok := s.Submissions[project]

	return sub, ok
}
