package note

import "notekeeper/internal/domain/note"

type listOutput struct {
	Body ListResponse
}

type ListResponse struct {
	Notes []note.Note `json:"notes"`
}

type idInput struct {
	ID string `path:"id"`
}

type findOutput struct {
	Body note.Note
}

type createInput struct {
	Body note.Draft
}

type updateInput struct {
	ID   string `path:"id"`
	Body note.Draft
}

type output struct {
	Body response
}

type response struct {
	ID     string `json:"id,omitempty"`
	Status string `json:"status"`
}
