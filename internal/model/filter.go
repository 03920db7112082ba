package model

// FilterOptions narrows the displayed task set. Nil or empty fields impose no constraint.
type FilterOptions struct {
	Status     *Status
	Priority   *Priority
	CategoryID *string
	SearchTerm string
}

func (f FilterOptions) IsZero() bool {
	return f.Status == nil && f.Priority == nil && f.CategoryID == nil && f.SearchTerm == ""
}

// Clone returns a copy that shares no pointers with f.
func (f FilterOptions) Clone() FilterOptions {
	if f.Status != nil {
		s := *f.Status
		f.Status = &s
	}
	if f.Priority != nil {
		p := *f.Priority
		f.Priority = &p
	}
	if f.CategoryID != nil {
		id := *f.CategoryID
		f.CategoryID = &id
	}
	return f
}

// FilterPatch is a partial update of FilterOptions. A Set* flag with a nil value clears that field.
type FilterPatch struct {
	SetStatus     bool
	Status        *Status
	SetPriority   bool
	Priority      *Priority
	SetCategoryID bool
	CategoryID    *string
	SetSearchTerm bool
	SearchTerm    string
}

// Apply merges the patch into f and returns the result.
func (p FilterPatch) Apply(f FilterOptions) FilterOptions {
	if p.SetStatus {
		f.Status = p.Status
	}
	if p.SetPriority {
		f.Priority = p.Priority
	}
	if p.SetCategoryID {
		f.CategoryID = p.CategoryID
	}
	if p.SetSearchTerm {
		f.SearchTerm = p.SearchTerm
	}
	return f
}

// Statistics is derived from the task collection and recomputed on every change.
type Statistics struct {
	Total      int
	ByStatus   map[Status]int
	ByPriority map[Priority]int
	// ByCategory only holds categories with at least one task; a missing key means zero.
	ByCategory map[string]int
}

// CompletionRate is the rounded percentage of done tasks.
func (s Statistics) CompletionRate() int {
	return percentOf(s.ByStatus[StatusDone], s.Total)
}

func (s Statistics) InProgressRate() int {
	return percentOf(s.ByStatus[StatusInProgress], s.Total)
}

func percentOf(n, total int) int {
	if total <= 0 {
		return 0
	}
	return (n*200 + total) / (2 * total)
}
