// Package client es el cliente HTTP de la API para la aplicación de escritorio.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/jhoicas/erpcrm-api/internal/application/dto"
)

const (
	// DefaultBaseURL dirección de la API en desarrollo.
	DefaultBaseURL = "http://localhost:5000"
	DefaultTimeout = 30 * time.Second

	headerTenantID = "X-Tenant-Id"
	maxErrorBody   = 64 * 1024
)

// ErrNoSession se devuelve al llamar rutas de firma sin login previo.
var ErrNoSession = errors.New("client: oturum açılmamış")

// APIError respuesta no-2xx de la API.
type APIError struct {
	Status  int
	Code    string
	Message string
	Field   string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("client: HTTP %d", e.Status)
	}
	return e.Message
}

// IsStatus indica si err es un APIError con ese código HTTP.
func IsStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == status
}

// Config parámetros del cliente.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Client llama a la API con el token y el X-Tenant-Id de la sesión.
type Client struct {
	baseURL    string
	session    *Session
	httpClient *http.Client
}

// New construye el cliente. BaseURL y Timeout vacíos toman los valores por defecto.
func New(cfg Config, session *Session) *Client {
	base := strings.TrimRight(cfg.BaseURL, "/")
	if base == "" {
		base = DefaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if session == nil {
		session = NewSession()
	}
	return &Client{
		baseURL:    base,
		session:    session,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Session sesión asociada al cliente.
func (c *Client) Session() *Session { return c.session }

// do serializa body, envía la petición y decodifica la respuesta en out (si no es nil).
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("client: serializar request: %w", err)
		}
		rd = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+"/api/"+path, rd)
	if err != nil {
		return fmt.Errorf("client: crear HTTP request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if tok := c.session.Token(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	if tid := c.session.TenantID(); tid > 0 {
		req.Header.Set(headerTenantID, strconv.FormatInt(tid, 10))
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("client: timeout o cancelación: %w", ctx.Err())
		}
		return fmt.Errorf("client: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		apiErr := &APIError{Status: resp.StatusCode}
		var e dto.ErrorResponse
		if json.Unmarshal(raw, &e) == nil {
			apiErr.Code, apiErr.Message, apiErr.Field = e.Code, e.Message, e.Field
		}
		return apiErr
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("client: deserializar respuesta de %s: %w", path, err)
	}
	return nil
}

func (c *Client) tenantCall(ctx context.Context, method, path string, body, out any) error {
	if c.session.TenantID() <= 0 {
		return ErrNoSession
	}
	return c.do(ctx, method, path, body, out)
}

func searchPath(resource, q string) string {
	return resource + "/search?q=" + url.QueryEscape(q)
}

func idPath(resource string, id int64) string {
	return resource + "/" + strconv.FormatInt(id, 10)
}

// ── Auth ─────────────────────────────────────────────────────────────────────

// Login autentica y abre la sesión.
func (c *Client) Login(ctx context.Context, email, password string) (*dto.LoginResponse, error) {
	var out dto.LoginResponse
	if err := c.do(ctx, http.MethodPost, "auth/login", dto.LoginRequest{Email: email, Password: password}, &out); err != nil {
		return nil, err
	}
	c.session.Start(&out)
	return &out, nil
}

// Logout cierra la sesión local; la API no guarda estado de sesión.
func (c *Client) Logout() { c.session.Clear() }

// ── Cari ─────────────────────────────────────────────────────────────────────

func (c *Client) ListCari(ctx context.Context) ([]dto.CariResponse, error) {
	var out []dto.CariResponse
	if err := c.tenantCall(ctx, http.MethodGet, "cari", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) SearchCari(ctx context.Context, q string) ([]dto.CariResponse, error) {
	var out []dto.CariResponse
	if err := c.tenantCall(ctx, http.MethodGet, searchPath("cari", q), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateCari(ctx context.Context, in dto.CariRequest) (*dto.CariResponse, error) {
	var out dto.CariResponse
	if err := c.tenantCall(ctx, http.MethodPost, "cari", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteCari(ctx context.Context, id int64) error {
	return c.tenantCall(ctx, http.MethodDelete, idPath("cari", id), nil, nil)
}

// ── Stok ─────────────────────────────────────────────────────────────────────

func (c *Client) ListStok(ctx context.Context) ([]dto.StokResponse, error) {
	var out []dto.StokResponse
	if err := c.tenantCall(ctx, http.MethodGet, "stok", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) SearchStok(ctx context.Context, q string) ([]dto.StokResponse, error) {
	var out []dto.StokResponse
	if err := c.tenantCall(ctx, http.MethodGet, searchPath("stok", q), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) DeleteStok(ctx context.Context, id int64) error {
	return c.tenantCall(ctx, http.MethodDelete, idPath("stok", id), nil, nil)
}

// ── Fatura ───────────────────────────────────────────────────────────────────

func (c *Client) ListFatura(ctx context.Context) ([]dto.FaturaListItem, error) {
	var out []dto.FaturaListItem
	if err := c.tenantCall(ctx, http.MethodGet, "fatura", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) SearchFatura(ctx context.Context, q string) ([]dto.FaturaListItem, error) {
	var out []dto.FaturaListItem
	if err := c.tenantCall(ctx, http.MethodGet, searchPath("fatura", q), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) DeleteFatura(ctx context.Context, id int64) error {
	return c.tenantCall(ctx, http.MethodDelete, idPath("fatura", id), nil, nil)
}

// ── Dashboard ────────────────────────────────────────────────────────────────

func (c *Client) DashboardStats(ctx context.Context) (*dto.DashboardStatsResponse, error) {
	var out dto.DashboardStatsResponse
	if err := c.tenantCall(ctx, http.MethodGet, "dashboard/stats", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
