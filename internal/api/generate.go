package api

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"eduwrite-backend/internal/extract"
	"eduwrite-backend/internal/llm"
	"eduwrite-backend/internal/prompts"
	"eduwrite-backend/internal/store"
	"eduwrite-backend/pkg/api"
)

const (
	maxUploadMemory = 32 << 20

	// Rune caps applied to extracted file text before it enters a prompt.
	generateContextLimit = 4000
	pdfChatContextLimit  = 9000

	defaultAcademicYear = "1st"
)

type fileUpload struct {
	filename string
	contents []byte
}

// parseGenerateRequest accepts both encodings of a generation request: a
// plain JSON body, or a multipart form carrying the same fields plus an
// optional grounding file.
func parseGenerateRequest(r *http.Request) (api.GenerateRequest, *fileUpload, error) {
	if !strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		req, err := ParseRequest[api.GenerateRequest](r)
		return req, nil, err
	}

	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		return api.GenerateRequest{}, nil, CodedErrorf(http.StatusBadRequest, "unable to parse multipart form: %v", err)
	}
	req := api.GenerateRequest{
		Topic:        r.FormValue("topic"),
		ContentType:  r.FormValue("content_type"),
		UserId:       r.FormValue("user_id"),
		Mode:         r.FormValue("mode"),
		AcademicYear: r.FormValue("academic_year"),
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		return req, nil, nil
	}
	defer file.Close()
	contents, err := io.ReadAll(file)
	if err != nil {
		return api.GenerateRequest{}, nil, CodedErrorf(http.StatusBadRequest, "error reading uploaded file: %v", err)
	}
	return req, &fileUpload{filename: header.Filename, contents: contents}, nil
}

func (s *BackendService) Generate(r *http.Request) (any, error) {
	req, upload, err := parseGenerateRequest(r)
	if err != nil {
		return nil, err
	}
	if req.Topic == "" || req.UserId == "" {
		return nil, CodedErrorf(http.StatusBadRequest, "Missing data")
	}
	if req.ContentType == "" {
		req.ContentType = prompts.DefaultContentType
	}
	if req.AcademicYear == "" {
		req.AcademicYear = defaultAcademicYear
	}
	mode := prompts.NormalizeMode(req.Mode)

	key := cacheKey(req.Topic, req.ContentType, req.AcademicYear, mode)
	if content, ok := s.cache.get(key); ok {
		return api.GenerateResponse{Content: content}, nil
	}

	userPrompt := req.Topic
	if upload != nil {
		text, err := extract.Text(upload.filename, upload.contents)
		if err != nil {
			slog.Warn("file extraction failed, generating without file context",
				"file", upload.filename, "error", err)
		} else if strings.TrimSpace(text) != "" {
			userPrompt = fmt.Sprintf("Context from uploaded file (%s):\n%s\n\nUser Question: %s",
				upload.filename, extract.Truncate(text, generateContextLimit), req.Topic)
		}
	}

	ctx := r.Context()
	user, err := s.resolveUser(ctx, req.UserId)
	if err != nil {
		return nil, err
	}

	profile := prompts.Profile(mode)
	systemPrompt := prompts.Render(req.ContentType, req.AcademicYear, mode)

	content, err := s.llm.Generate(ctx, systemPrompt, userPrompt, llm.Options{
		Model:       s.model,
		MaxTokens:   profile.MaxTokens,
		Temperature: profile.Temperature,
	})
	if err != nil {
		return nil, CodedErrorf(http.StatusInternalServerError, "generation failed: %v", err)
	}

	if err := s.store.AddRecord(ctx, &store.GenerationRecord{
		UserID:      user.ID.Hex(),
		Topic:       req.Topic,
		ContentType: req.ContentType,
		Response:    content,
		CreatedAt:   time.Now().UTC(),
		HadFile:     upload != nil,
		Mode:        mode,
	}); err != nil {
		return nil, CodedErrorf(http.StatusInternalServerError, "error saving generation record: %v", err)
	}

	s.cache.put(key, content)
	return api.GenerateResponse{Content: content}, nil
}

func (s *BackendService) PDFChat(r *http.Request) (any, error) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		return nil, CodedErrorf(http.StatusBadRequest, "unable to parse multipart form: %v", err)
	}
	question := r.FormValue("question")
	userID := r.FormValue("user_id")
	contentType := r.FormValue("content_type")
	if contentType == "" {
		contentType = prompts.DefaultContentType
	}

	file, header, err := r.FormFile("file")
	if err != nil || question == "" || userID == "" {
		return nil, CodedErrorf(http.StatusBadRequest, "Missing file, question, or user_id")
	}
	defer file.Close()

	if !strings.HasSuffix(strings.ToLower(header.Filename), ".pdf") {
		return nil, CodedErrorf(http.StatusBadRequest, "Only PDF files are supported")
	}
	contents, err := io.ReadAll(file)
	if err != nil {
		return nil, CodedErrorf(http.StatusBadRequest, "error reading uploaded file: %v", err)
	}
	text, err := extract.PDFText(contents)
	if err != nil {
		return nil, CodedErrorf(http.StatusBadRequest, "Error processing PDF: %v", err)
	}
	if strings.TrimSpace(text) == "" {
		return nil, CodedErrorf(http.StatusBadRequest, "Could not extract text from PDF")
	}

	ctx := r.Context()
	user, err := s.resolveUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	userPrompt := fmt.Sprintf("DOCUMENT CONTENT:\n%s\n\nUSER QUESTION: %s",
		extract.Truncate(text, pdfChatContextLimit), question)

	content, err := s.llm.Generate(ctx, pdfChatSystemPrompt(contentType), userPrompt, llm.Options{
		Model:       s.model,
		MaxTokens:   2048,
		Temperature: 0.3,
	})
	if err != nil {
		return nil, CodedErrorf(http.StatusInternalServerError, "generation failed: %v", err)
	}

	if err := s.store.AddRecord(ctx, &store.GenerationRecord{
		UserID:      user.ID.Hex(),
		Topic:       question,
		ContentType: contentType,
		Response:    content,
		CreatedAt:   time.Now().UTC(),
		HadFile:     true,
		Mode:        "pdf",
		PDFName:     header.Filename,
	}); err != nil {
		return nil, CodedErrorf(http.StatusInternalServerError, "error saving generation record: %v", err)
	}

	return api.GenerateResponse{Content: content}, nil
}

func pdfChatSystemPrompt(contentType string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are an expert academic assistant specializing in %s. Use the provided PDF context to answer the user's request accurately.", contentType)
	switch contentType {
	case "Quiz":
		b.WriteString(" Focus on generating challenging and relevant questions based on the text.")
	case "Summary":
		b.WriteString(" Focus on providing a concise yet comprehensive summary of the main points.")
	case "Formula Sheet":
		b.WriteString(" Focus on extracting and explaining all important formulas, variables, and constants.")
	}
	return b.String()
}
