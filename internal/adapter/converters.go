package adapter

import (
	"github.com/aanandhisonduri/BigBrain/internal/api"
	"github.com/aanandhisonduri/BigBrain/internal/domain/model"
)

func ToNoteResponse(note *model.Note) api.NoteResponse {
	return api.NoteResponse{
		Id:           note.Id,
		Text:         note.Text,
		HasEmbedding: len(note.Embedding) > 0,
		CreatedAt:    note.CreatedAt,
	}
}

func ToNoteResponses(notes []*model.Note) []api.NoteResponse {
	out := make([]api.NoteResponse, 0, len(notes))
	for _, note := range notes {
		out = append(out, ToNoteResponse(note))
	}
	return out
}

func ToDocumentResponse(doc *model.Document) api.DocumentResponse {
	return api.DocumentResponse{
		Id:           doc.Id,
		Title:        doc.Title,
		FileId:       doc.FileId,
		Description:  doc.Description,
		HasEmbedding: len(doc.Embedding) > 0,
		CreatedAt:    doc.CreatedAt,
	}
}

func ToDocumentResponses(docs []*model.Document) []api.DocumentResponse {
	out := make([]api.DocumentResponse, 0, len(docs))
	for _, doc := range docs {
		out = append(out, ToDocumentResponse(doc))
	}
	return out
}

func ToChatMessageResponses(messages []model.ChatMessage) []api.ChatMessageResponse {
	out := make([]api.ChatMessageResponse, 0, len(messages))
	for _, msg := range messages {
		out = append(out, api.ChatMessageResponse{
			Id:        msg.Id,
			Text:      msg.Text,
			IsHuman:   msg.IsHuman,
			CreatedAt: msg.CreatedAt,
		})
	}
	return out
}

func ToSearchResultResponses(results []model.SearchResult) []api.SearchResultResponse {
	out := make([]api.SearchResultResponse, 0, len(results))
	for _, result := range results {
		item := api.SearchResultResponse{
			Type:  string(result.Kind),
			Score: result.Score,
		}
		if result.Kind == model.KindNote {
			note := ToNoteResponse(result.Note)
			item.Note = &note
		} else {
			doc := ToDocumentResponse(result.Document)
			item.Document = &doc
		}
		out = append(out, item)
	}
	return out
}
