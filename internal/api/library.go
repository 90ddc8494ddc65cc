package api

import (
	"net/http"
	"time"

	"eduwrite-backend/internal/store"
	"eduwrite-backend/pkg/api"
)

const historyLimit = 50

func (s *BackendService) CreateDocument(r *http.Request) (any, error) {
	req, err := ParseRequest[api.CreateDocumentRequest](r)
	if err != nil {
		return nil, err
	}
	if req.UserId == "" {
		return nil, CodedErrorf(http.StatusBadRequest, "Missing user_id")
	}

	ctx := r.Context()
	user, err := s.resolveUser(ctx, req.UserId)
	if err != nil {
		return nil, err
	}

	title := req.Title
	if title == "" {
		title = "Untitled Document"
	}
	now := time.Now().UTC()
	id, err := s.store.CreateDocument(ctx, &store.Document{
		UserID:    user.ID.Hex(),
		Title:     title,
		Content:   req.Content,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return nil, CodedErrorf(http.StatusInternalServerError, "error creating document: %v", err)
	}
	return api.CreateDocumentResponse{Status: "success", DocId: id.Hex()}, nil
}

func (s *BackendService) ListDocuments(r *http.Request) (any, error) {
	query, err := ParseRequestQueryParams[api.UserQuery](r)
	if err != nil {
		return nil, err
	}
	if query.UserId == "" {
		return nil, CodedErrorf(http.StatusBadRequest, "Missing user_id")
	}

	ctx := r.Context()
	user, err := s.resolveUser(ctx, query.UserId)
	if err != nil {
		return nil, err
	}

	docs, err := s.store.ListDocuments(ctx, user.ID.Hex())
	if err != nil {
		return nil, CodedErrorf(http.StatusInternalServerError, "error listing documents: %v", err)
	}
	out := make([]api.Document, 0, len(docs))
	for _, doc := range docs {
		out = append(out, api.Document{
			Id:        doc.ID.Hex(),
			UserId:    doc.UserID,
			Title:     doc.Title,
			Content:   doc.Content,
			CreatedAt: doc.CreatedAt,
			UpdatedAt: doc.UpdatedAt,
		})
	}
	return api.ListDocumentsResponse{Status: "success", Documents: out}, nil
}

func (s *BackendService) GetHistory(r *http.Request) (any, error) {
	query, err := ParseRequestQueryParams[api.UserQuery](r)
	if err != nil {
		return nil, err
	}
	if query.UserId == "" {
		return nil, CodedErrorf(http.StatusBadRequest, "Missing user_id")
	}

	ctx := r.Context()
	user, err := s.resolveUser(ctx, query.UserId)
	if err != nil {
		// An unknown user simply has no history.
		return api.HistoryResponse{Status: "success", History: []api.HistoryItem{}}, nil
	}

	records, err := s.store.ListRecords(ctx, user.ID.Hex(), historyLimit)
	if err != nil {
		return nil, CodedErrorf(http.StatusInternalServerError, "error listing history: %v", err)
	}
	items := make([]api.HistoryItem, 0, len(records))
	for _, rec := range records {
		items = append(items, api.HistoryItem{
			Id:          rec.ID.Hex(),
			UserId:      rec.UserID,
			Topic:       rec.Topic,
			ContentType: rec.ContentType,
			Response:    rec.Response,
			CreatedAt:   rec.CreatedAt,
			HadFile:     rec.HadFile,
			Mode:        rec.Mode,
			PdfName:     rec.PDFName,
		})
	}
	return api.HistoryResponse{Status: "success", History: items}, nil
}

func (s *BackendService) ClearHistory(r *http.Request) (any, error) {
	req, err := ParseRequest[api.ClearHistoryRequest](r)
	if err != nil {
		return nil, err
	}
	if req.UserId == "" {
		return nil, CodedErrorf(http.StatusBadRequest, "User ID is required")
	}

	// Deletes by the identifier as sent. ClearRecords also sweeps the legacy
	// ObjectID form when the identifier is a 24-char hex string.
	count, err := s.store.ClearRecords(r.Context(), req.UserId)
	if err != nil {
		return nil, CodedErrorf(http.StatusInternalServerError, "error clearing history: %v", err)
	}
	return api.ClearHistoryResponse{Status: "success", DeletedCount: count}, nil
}
