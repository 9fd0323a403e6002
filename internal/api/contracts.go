package api

import "time"

// requests---------------------

type CreateNoteRequest struct {
	Text string `json:"text"`
}

type CreateDocumentRequest struct {
	Title  string `json:"title"`
	FileId string `json:"file_id"`
}

type AskRequest struct {
	Question string `json:"question"`
}

type UploadURLRequest struct {
	Filename string `json:"filename"`
}

// responses--------------------

type NoteResponse struct {
	Id           string    `json:"id"`
	Text         string    `json:"text"`
	HasEmbedding bool      `json:"has_embedding"`
	CreatedAt    time.Time `json:"created_at"`
}

type DocumentResponse struct {
	Id           string    `json:"id"`
	Title        string    `json:"title"`
	FileId       string    `json:"file_id"`
	Description  string    `json:"description"`
	HasEmbedding bool      `json:"has_embedding"`
	DownloadURL  string    `json:"download_url,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

type ChatMessageResponse struct {
	Id        string    `json:"id"`
	Text      string    `json:"text"`
	IsHuman   bool      `json:"is_human"`
	CreatedAt time.Time `json:"created_at"`
}

type SearchResultResponse struct {
	Type     string            `json:"type"`
	Score    float64           `json:"score"`
	Note     *NoteResponse     `json:"note,omitempty"`
	Document *DocumentResponse `json:"document,omitempty"`
}

type AskResponse struct {
	Answer string `json:"answer"`
}

type UploadURLResponse struct {
	FileId string `json:"file_id"`
	URL    string `json:"url"`
}

type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
