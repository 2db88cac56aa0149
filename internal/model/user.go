package model

type User struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	PasswordHash  string `json:"-"`
	Name          string `json:"name"`
	University    string `json:"university"`
	Program       string `json:"program"`
	Language      string `json:"language"`
	CitationStyle string `json:"citation_style"`
	VoiceID       string `json:"voice_id"`
	Ctime         int64  `json:"ctime"`
	Mtime         int64  `json:"mtime"`
}
