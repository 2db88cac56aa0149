package model

type Document struct {
	ID     string `json:"id"`
	UserID string `json:"user_id"`
	Title  string `json:"title"`
	// Blocks is the serialized block list (JSON array), the document's
	// single source of truth between sessions.
	Blocks string `json:"blocks"`
	Cover  string `json:"cover,omitempty"`
	State  int    `json:"state"`
	Ctime  int64  `json:"ctime"`
	Mtime  int64  `json:"mtime"`
}

// CoverInfo is the inner title page metadata the parse service extracts from
// an uploaded thesis.
type CoverInfo struct {
	Title       string `json:"title,omitempty"`
	Type        string `json:"type,omitempty"`
	Student     string `json:"student,omitempty"`
	Program     string `json:"program,omitempty"`
	Track       string `json:"track,omitempty"`
	Mentor      string `json:"mentor,omitempty"`
	CoMentor    string `json:"co_mentor,omitempty"`
	Proofreader string `json:"proofreader,omitempty"`
}
