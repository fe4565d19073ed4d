// Package aiclient talks to the external AI analysis backend.
package aiclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"syscall"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"

	"github.com/jonathan/resume-builder/internal/types"
)

// Backend paths
const (
	PathAnalyze      = "/analyze"
	PathAnalyzePDF   = "/analyze-pdf"
	PathImportResume = "/import-resume"
	PathHealth       = "/health"
)

// Fallback error texts shown when the backend gives no message.
const (
	FallbackAnalyze = "Analysis failed"
	FallbackImport  = "Failed to parse resume"
	InvalidResponse = "Invalid response from server"
)

// DefaultTimeout bounds every outbound call unless configured otherwise.
const DefaultTimeout = 120 * time.Second

// Response is a raw backend response, forwarded unchanged by the proxy.
type Response struct {
	Status      int
	ContentType string
	Body        []byte
}

// File is one uploaded document.
type File struct {
	Name   string
	Reader io.Reader
}

// Client calls the AI backend. It never retries.
type Client struct {
	baseURL string
	http    *resty.Client
}

// New creates a client for baseURL.
func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	rc := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetRetryCount(0)
	return &Client{baseURL: baseURL, http: rc}
}

// BaseURL returns the configured backend URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// ForwardJSON posts a raw JSON body to path.
func (c *Client) ForwardJSON(ctx context.Context, path string, body []byte) (*Response, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		Post(path)
	return c.wrap(resp, err)
}

// ForwardFile posts file as multipart field "file" plus any extra fields.
func (c *Client) ForwardFile(ctx context.Context, path string, file File, fields map[string]string) (*Response, error) {
	req := c.http.R().
		SetContext(ctx).
		SetMultipartField("file", file.Name, "application/pdf", file.Reader)
	form := make(map[string]string, len(fields))
	for k, v := range fields {
		if v != "" {
			form[k] = v
		}
	}
	if len(form) > 0 {
		req.SetMultipartFormData(form)
	}
	resp, err := req.Post(path)
	return c.wrap(resp, err)
}

// ForwardGet performs a GET on path.
func (c *Client) ForwardGet(ctx context.Context, path string) (*Response, error) {
	resp, err := c.http.R().SetContext(ctx).Get(path)
	return c.wrap(resp, err)
}

func (c *Client) wrap(resp *resty.Response, err error) (*Response, error) {
	if err != nil {
		if isUnreachable(err) {
			return nil, &UnreachableError{URL: c.baseURL, Cause: err}
		}
		return nil, fmt.Errorf("ai backend request failed: %w", err)
	}
	return &Response{
		Status:      resp.StatusCode(),
		ContentType: resp.Header().Get("Content-Type"),
		Body:        resp.Body(),
	}, nil
}

func isUnreachable(err error) bool {
	if errors.Is(err, syscall.ECONNREFUSED) {
		return true
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) && opErr.Op == "dial" {
		return true
	}
	var dnsErr *net.DNSError
	return errors.As(err, &dnsErr)
}

func checkStatus(resp *Response, fallback string) error {
	if resp.Status >= 200 && resp.Status < 300 {
		return nil
	}
	return &BackendError{
		Status:  resp.Status,
		Message: ErrorMessage(resp.Body, fallback),
		Body:    resp.Body,
	}
}

// Analyze sends the document for analysis.
func (c *Client) Analyze(ctx context.Context, doc types.ResumeDocument, jobDescription string) (*types.AnalysisResult, error) {
	body, err := json.Marshal(types.AnalyzeRequest{ResumeData: doc, JobDescription: jobDescription})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal analyze request: %w", err)
	}
	resp, err := c.ForwardJSON(ctx, PathAnalyze, body)
	if err != nil {
		return nil, err
	}
	return decodeAnalysis(resp)
}

// AnalyzePDF sends an uploaded PDF for analysis.
func (c *Client) AnalyzePDF(ctx context.Context, file File, jobDescription string) (*types.AnalysisResult, error) {
	resp, err := c.ForwardFile(ctx, PathAnalyzePDF, file, map[string]string{"job_description": jobDescription})
	if err != nil {
		return nil, err
	}
	return decodeAnalysis(resp)
}

func decodeAnalysis(resp *Response) (*types.AnalysisResult, error) {
	if err := checkStatus(resp, FallbackAnalyze); err != nil {
		return nil, err
	}
	var result types.AnalysisResult
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, &InvalidResponseError{Message: InvalidResponse}
	}
	return &result, nil
}

// ImportResume uploads a PDF and returns the parsed document. The raw
// payload is returned alongside for schema validation.
func (c *Client) ImportResume(ctx context.Context, file File) (*types.ResumeDocument, []byte, error) {
	resp, err := c.ForwardFile(ctx, PathImportResume, file, nil)
	if err != nil {
		return nil, nil, err
	}
	if err := checkStatus(resp, FallbackImport); err != nil {
		return nil, nil, err
	}

	if !gjson.GetBytes(resp.Body, "success").Bool() {
		return nil, nil, &InvalidResponseError{Message: InvalidResponse}
	}
	data := gjson.GetBytes(resp.Body, "data")
	if !data.IsObject() {
		return nil, nil, &InvalidResponseError{Message: InvalidResponse}
	}

	raw := []byte(data.Raw)
	var doc types.ResumeDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, nil, &InvalidResponseError{Message: InvalidResponse}
	}
	return &doc, raw, nil
}

// Health returns the backend's health payload.
func (c *Client) Health(ctx context.Context) (json.RawMessage, error) {
	resp, err := c.ForwardGet(ctx, PathHealth)
	if err != nil {
		return nil, err
	}
	if resp.Status != http.StatusOK {
		return nil, &BackendError{Status: resp.Status, Message: ErrorMessage(resp.Body, "unhealthy")}
	}
	return json.RawMessage(resp.Body), nil
}
