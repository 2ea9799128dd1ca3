package backend

import (
	"context"
	"net/http"
	"net/url"
)

// Document analysis, moot court, and translation all run in the backend's
// AI pipeline; the gateway only submits jobs and polls status.

type SubmitAnalysisInput struct {
	DocumentID string `json:"document_id"`
	Mode       string `json:"mode,omitempty"`
}

func (c *Client) SubmitAnalysis(ctx context.Context, in SubmitAnalysisInput) (AnalysisJob, error) {
	var job AnalysisJob
	err := c.do(ctx, http.MethodPost, "/internal/v1/analysis", in, &job)
	return job, err
}

func (c *Client) GetAnalysis(ctx context.Context, id string) (AnalysisJob, error) {
	var job AnalysisJob
	err := c.do(ctx, http.MethodGet, "/internal/v1/analysis/"+url.PathEscape(id), nil, &job)
	return job, err
}

type CreateMootSessionInput struct {
	Topic string `json:"topic"`
}

func (c *Client) CreateMootSession(ctx context.Context, in CreateMootSessionInput) (MootSession, error) {
	var session MootSession
	err := c.do(ctx, http.MethodPost, "/internal/v1/moot/sessions", in, &session)
	return session, err
}

type MootMessageInput struct {
	Content string `json:"content"`
}

func (c *Client) SendMootMessage(ctx context.Context, sessionID string, in MootMessageInput) (MootMessage, error) {
	var msg MootMessage
	err := c.do(ctx, http.MethodPost, "/internal/v1/moot/sessions/"+url.PathEscape(sessionID)+"/messages", in, &msg)
	return msg, err
}

type SubmitTranslationInput struct {
	DocumentID string `json:"document_id,omitempty"`
	Text       string `json:"text,omitempty"`
	SourceLang string `json:"source_lang"`
	TargetLang string `json:"target_lang"`
}

func (c *Client) SubmitTranslation(ctx context.Context, in SubmitTranslationInput) (TranslationJob, error) {
	var job TranslationJob
	err := c.do(ctx, http.MethodPost, "/internal/v1/translations", in, &job)
	return job, err
}

func (c *Client) GetTranslation(ctx context.Context, id string) (TranslationJob, error) {
	var job TranslationJob
	err := c.do(ctx, http.MethodGet, "/internal/v1/translations/"+url.PathEscape(id), nil, &job)
	return job, err
}
