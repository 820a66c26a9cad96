package client

import (
	"bytes"
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"sync"
	"time"

	"golang.org/x/exp/slog"

	"notekeeper/internal/app/client/config"
	"notekeeper/internal/domain/note"
)

const statusError = "Error"

type httpClient struct {
	client    *http.Client
	log       *slog.Logger
	baseURL   string
	userAgent string

	mu    sync.RWMutex
	token string
}

var _ Remote = (*httpClient)(nil)

func NewHTTPClient(cfg *config.Config, log *slog.Logger) (*httpClient, error) {
	transport := &http.Transport{
		MaxIdleConns:        10,
		IdleConnTimeout:     90 * time.Second,
		MaxIdleConnsPerHost: 2,
	}

	scheme := "http://"
	if cfg.EnableTLS {
		scheme = "https://"

		if cfg.CACertPath != "" {
			pem, err := os.ReadFile(cfg.CACertPath)
			if err != nil {
				return nil, fmt.Errorf("ошибка чтения CA сертификата: %w", err)
			}

			pool := x509.NewCertPool()
			if !pool.AppendCertsFromPEM(pem) {
				return nil, fmt.Errorf("CA сертификат не распознан: %s", cfg.CACertPath)
			}
			transport.TLSClientConfig = &tls.Config{RootCAs: pool, MinVersion: tls.VersionTLS12}
		}
	}

	baseURL := cfg.ServerAddress
	if !strings.Contains(baseURL, "://") {
		baseURL = scheme + baseURL
	}

	return &httpClient{
		client:    &http.Client{Timeout: cfg.RequestTimeout, Transport: transport},
		log:       log.With(slog.String("component", "http_client")),
		baseURL:   strings.TrimRight(baseURL, "/"),
		userAgent: "Notekeeper-Client/1.0",
	}, nil
}

// SetToken устанавливает токен сессии для последующих запросов
func (h *httpClient) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = token
}

func (h *httpClient) currentToken() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

// HealthCheck проверяет доступность сервера и его базы
func (h *httpClient) HealthCheck(ctx context.Context) error {
	var health struct {
		Status   string `json:"status"`
		Database string `json:"database"`
	}

	if err := h.do(ctx, http.MethodGet, "/api/v1/health", nil, &health); err != nil {
		return fmt.Errorf("сервер недоступен: %w", err)
	}

	if health.Status != "OK" {
		return fmt.Errorf("сервер работает с ограничениями: база %s", health.Database)
	}

	return nil
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *httpClient) SignIn(ctx context.Context, email, password string) (Identity, error) {
	var resp struct {
		Token  string `json:"token"`
		Email  string `json:"email"`
		Status string `json:"status"`
		Error  string `json:"error"`
	}

	err := h.do(ctx, http.MethodPost, "/user/login", credentialsRequest{Email: email, Password: password}, &resp)
	if err != nil {
		return Identity{}, fmt.Errorf("%w: %w", ErrAuth, err)
	}

	if resp.Status == statusError || resp.Token == "" {
		return Identity{}, fmt.Errorf("%w: %s", ErrAuth, orDefault(resp.Error, "сервер не выдал токен"))
	}

	return Identity{Email: orDefault(resp.Email, email), Token: resp.Token}, nil
}

func (h *httpClient) SignUp(ctx context.Context, email, password string) error {
	var resp struct {
		Status string `json:"status"`
		Error  string `json:"error"`
	}

	err := h.do(ctx, http.MethodPost, "/user/register", credentialsRequest{Email: email, Password: password}, &resp)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrAuth, err)
	}

	if resp.Status == statusError {
		return fmt.Errorf("%w: %s", ErrAuth, orDefault(resp.Error, "регистрация отклонена"))
	}

	return nil
}

// SignOut завершает сессию на сервере. Без токена завершать нечего.
func (h *httpClient) SignOut(ctx context.Context) error {
	if h.currentToken() == "" {
		return nil
	}

	if err := h.do(ctx, http.MethodPost, "/user/logout", nil, nil); err != nil {
		if errors.Is(err, ErrUnauthorized) {
			// сессия уже истекла на сервере
			h.SetToken("")
			return nil
		}
		return fmt.Errorf("%w: %w", ErrAuth, err)
	}

	h.SetToken("")
	return nil
}

func (h *httpClient) List(ctx context.Context) ([]note.Note, error) {
	var resp struct {
		Notes []note.Note `json:"notes"`
	}

	if err := h.do(ctx, http.MethodGet, "/api/notes", nil, &resp); err != nil {
		return nil, err
	}

	return resp.Notes, nil
}

func (h *httpClient) Create(ctx context.Context, title, content string) (string, error) {
	var resp struct {
		ID string `json:"id"`
	}

	if err := h.do(ctx, http.MethodPost, "/api/notes", note.Draft{Title: title, Content: content}, &resp); err != nil {
		return "", err
	}

	return resp.ID, nil
}

func (h *httpClient) Update(ctx context.Context, id, title, content string) error {
	return h.do(ctx, http.MethodPut, "/api/notes/"+url.PathEscape(id), note.Draft{Title: title, Content: content}, nil)
}

func (h *httpClient) Delete(ctx context.Context, id string) error {
	return h.do(ctx, http.MethodDelete, "/api/notes/"+url.PathEscape(id), nil, nil)
}

func (h *httpClient) do(ctx context.Context, method, path string, body, result any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("ошибка маршалинга тела запроса: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, h.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("ошибка создания запроса: %w", err)
	}

	req.Header.Set("User-Agent", h.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := h.currentToken(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	h.log.Debug("отправка запроса", "method", method, "path", path)

	resp, err := h.client.Do(req)
	if err != nil {
		return fmt.Errorf("ошибка выполнения запроса: %w", err)
	}
	defer resp.Body.Close()

	return h.parseResponse(resp, result)
}

// problem - тело ошибки huma (RFC 9457)
type problem struct {
	Title  string `json:"title"`
	Detail string `json:"detail"`
	Errors []struct {
		Message  string `json:"message"`
		Location string `json:"location"`
	} `json:"errors"`
}

func (p problem) message() string {
	parts := make([]string, 0, len(p.Errors)+1)
	if p.Detail != "" {
		parts = append(parts, p.Detail)
	} else if p.Title != "" {
		parts = append(parts, p.Title)
	}
	for _, e := range p.Errors {
		if e.Location != "" {
			parts = append(parts, e.Location+": "+e.Message)
		} else {
			parts = append(parts, e.Message)
		}
	}
	return strings.Join(parts, "; ")
}

func (h *httpClient) parseResponse(resp *http.Response, result any) error {
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("ошибка чтения ответа: %w", err)
	}

	h.log.Debug("получен ответ", "status", resp.StatusCode)

	if resp.StatusCode >= http.StatusBadRequest {
		var p problem
		msg := fmt.Sprintf("статус %d", resp.StatusCode)
		if err := json.Unmarshal(data, &p); err == nil && p.message() != "" {
			msg = p.message()
		}

		switch resp.StatusCode {
		case http.StatusUnauthorized:
			return ErrUnauthorized
		case http.StatusNotFound:
			return note.ErrNotFound
		case http.StatusUnprocessableEntity, http.StatusBadRequest:
			return fmt.Errorf("%w: %s", note.ErrInvalidInput, msg)
		default:
			return fmt.Errorf("ошибка сервера: %s", msg)
		}
	}

	if result != nil && len(data) > 0 {
		if err := json.Unmarshal(data, result); err != nil {
			return fmt.Errorf("ошибка парсинга ответа: %w", err)
		}
	}

	return nil
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
