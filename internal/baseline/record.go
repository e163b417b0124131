package baseline

// SchemaVersion tags the current record layout.
const SchemaVersion = "v1"

// Record is the last accepted state of the checked codebase.
//
// Counts are pointers so that "never initialized" stays distinct from zero.
type Record struct {
	FileVersion    string   `json:"file_version"`
	ToolVersion    *string  `json:"mypy_version"`
	ToolArgs       []string `json:"mypy_args"`
	TotalErrors    *int     `json:"total_errors"`
	FilesInError   *int     `json:"files_in_error"`
	LastFullOutput []string `json:"last_full_output"`
}

// Fresh returns an uninitialized record tagged with the current schema.
func Fresh() Record {
	return Record{FileVersion: SchemaVersion}
}

// Initialized reports whether both counts have been recorded.
func (r Record) Initialized() bool {
	return r.TotalErrors != nil && r.FilesInError != nil
}

// Clone returns a deep copy of r.
func (r Record) Clone() Record {
	c := r
	if r.ToolVersion != nil {
		c.ToolVersion = String(*r.ToolVersion)
	}
	if r.TotalErrors != nil {
		c.TotalErrors = Int(*r.TotalErrors)
	}
	if r.FilesInError != nil {
		c.FilesInError = Int(*r.FilesInError)
	}
	if r.ToolArgs != nil {
		c.ToolArgs = append([]string{}, r.ToolArgs...)
	}
	if r.LastFullOutput != nil {
		c.LastFullOutput = append([]string{}, r.LastFullOutput...)
	}
	return c
}

// Int returns a pointer to n.
func Int(n int) *int { return &n }

// String returns a pointer to s.
func String(s string) *string { return &s }
