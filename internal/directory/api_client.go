package directory

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go-employee/internal/eventbus"
	"go-employee/internal/events"
	"go-employee/internal/shared/apperror"
	"go-employee/internal/shared/contextutil"

	"go.uber.org/zap"
)

const defaultTimeout = 10 * time.Second

type APIClientConfig struct {
	BaseURL     string
	Timeout     time.Duration // per-call, default 10 detik
	Credentials CredentialProvider
}

// APIClient membicarakan endpoint koleksi remote memakai envelope
// {status, message, data, pagination}. Error transport tidak pernah bocor:
// semua kegagalan dinormalkan ke taksonomi apperror.
type APIClient struct {
	baseURL string
	client  *http.Client
	creds   CredentialProvider
	bus     *eventbus.Bus
	logger  *zap.Logger
}

func NewAPIClient(cfg APIClientConfig, bus *eventbus.Bus, logger ...*zap.Logger) *APIClient {
	l := zap.L().Named("directory.api")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("directory.api")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &APIClient{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		creds:   cfg.Credentials,
		bus:     bus,
		logger:  l,
	}
}

var _ Directory = (*APIClient)(nil)

// envelope memetakan bentuk respons backend. Field pagination yang tidak
// dikirim backend dihitung ulang oleh klien, tidak pernah dibiarkan kosong.
type envelope struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    struct {
		Employees []Employee `json:"employees"`
		Divisions []Division `json:"divisions"`
		Employee  *Employee  `json:"employee"`
	} `json:"data"`
	Pagination *struct {
		CurrentPage int   `json:"current_page"`
		LastPage    int   `json:"last_page"`
		PerPage     int   `json:"per_page"`
		Total       int64 `json:"total"`
		From        int   `json:"from"`
		To          int   `json:"to"`
	} `json:"pagination"`
}

var errUnreachable = apperror.New(
	apperror.CodeInternalError,
	"Tidak dapat menghubungi server",
	http.StatusInternalServerError,
)

var errMalformed = apperror.New(
	apperror.CodeInternalError,
	"Respons server tidak dikenali",
	http.StatusInternalServerError,
)

// mapFailure menormalkan respons non-2xx menjadi satu dari empat jenis
// kegagalan; message dari server diteruskan apa adanya.
func mapFailure(statusCode int, message string) error {
	if message == "" {
		message = fmt.Sprintf("Request gagal dengan status %d", statusCode)
	}

	var code string
	switch {
	case statusCode == http.StatusUnauthorized:
		code = apperror.CodeUnauthorized
	case statusCode == http.StatusNotFound:
		code = apperror.CodeNotFound
	case statusCode == http.StatusBadRequest || statusCode == http.StatusUnprocessableEntity:
		code = apperror.CodeInvalidInput
	default:
		code = apperror.CodeInternalError
	}
	return apperror.New(code, message, statusCode)
}

// do menjalankan satu round-trip dan mengembalikan envelope yang sudah
// didecode. Error yang dikembalikan selalu *apperror.AppError.
func (c *APIClient) do(ctx context.Context, method, path string, query url.Values, body any) (*envelope, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reqBody *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, apperror.Wrap(err, apperror.CodeInternalError,
				"Gagal menyusun request", http.StatusInternalServerError)
		}
		reqBody = bytes.NewReader(payload)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.CodeInternalError,
			"Gagal menyusun request", http.StatusInternalServerError)
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.creds != nil {
		token, err := c.creds.Token(ctx)
		if err != nil {
			return nil, apperror.Wrap(err, apperror.CodeUnauthorized,
				"Kredensial tidak tersedia", http.StatusUnauthorized)
		}
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.client.Do(req)
	if err != nil {
		// network error dan timeout dinormalkan ke jenis yang sama
		c.logger.Warn("request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err),
		)
		return nil, apperror.Wrap(err, errUnreachable.Code, errUnreachable.Message, errUnreachable.HTTPStatus)
	}
	defer resp.Body.Close()

	var env envelope
	decodeErr := json.NewDecoder(resp.Body).Decode(&env)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, mapFailure(resp.StatusCode, env.Message)
	}
	if decodeErr != nil {
		c.logger.Warn("malformed response payload",
			zap.String("path", path),
			zap.Error(decodeErr),
		)
		return nil, apperror.Wrap(decodeErr, errMalformed.Code, errMalformed.Message, errMalformed.HTTPStatus)
	}
	if env.Status != "success" {
		return nil, mapFailure(resp.StatusCode, env.Message)
	}

	return &env, nil
}

func (c *APIClient) publish(ctx context.Context, eventType, resourceID string) {
	if c.bus == nil {
		return
	}
	rid := contextutil.GetRequestID(ctx)
	c.bus.Publish(events.EmployeesKey, events.NewChangeEvent(eventType, resourceID, rid))
}

func (c *APIClient) ListEmployees(ctx context.Context, filter Filter, page PageRequest) (PageResult, error) {
	page = page.normalize()

	query := url.Values{}
	if filter.Name != "" {
		query.Set("name", filter.Name)
	}
	if filter.DivisionID != "" {
		query.Set("division_id", filter.DivisionID)
	}
	query.Set("page", strconv.Itoa(page.Page))
	query.Set("limit", strconv.Itoa(page.Limit))

	env, err := c.do(ctx, http.MethodGet, "/employees", query, nil)
	if err != nil {
		return PageResult{}, err
	}

	items := env.Data.Employees
	if items == nil {
		items = []Employee{}
	}

	// Normalisasi: mulai dari nilai request, timpa dengan apa yang dikirim
	// backend, lalu hitung field yang hilang secara deterministik.
	result := PageResult{
		Items:       items,
		CurrentPage: page.Page,
		PerPage:     page.Limit,
		Total:       int64(len(items)),
	}
	if p := env.Pagination; p != nil {
		if p.CurrentPage > 0 {
			result.CurrentPage = p.CurrentPage
		}
		if p.PerPage > 0 {
			result.PerPage = p.PerPage
		}
		result.Total = p.Total
		result.LastPage = p.LastPage
		result.From = p.From
		result.To = p.To
	}
	if result.LastPage < 1 {
		result.LastPage = lastPageFor(result.Total, result.PerPage)
	}
	if result.From == 0 && result.To == 0 {
		result.From, result.To = boundsFor(result.CurrentPage, result.PerPage, len(items))
	}
	if result.Total == 0 {
		result.From, result.To = 0, 0
		result.LastPage = 1
	}

	return result, nil
}

func (c *APIClient) ListDivisions(ctx context.Context, name string) ([]Division, error) {
	query := url.Values{}
	if name != "" {
		query.Set("name", name)
	}

	env, err := c.do(ctx, http.MethodGet, "/divisions", query, nil)
	if err != nil {
		return nil, err
	}

	divs := env.Data.Divisions
	if divs == nil {
		divs = []Division{}
	}
	return divs, nil
}

func (c *APIClient) CreateEmployee(ctx context.Context, input EmployeeInput) (string, error) {
	if err := validateInput(&input); err != nil {
		return "", err
	}

	body := map[string]string{
		"name":     input.Name,
		"phone":    input.Phone,
		"division": input.Division,
		"position": input.Position,
		"image":    input.Image,
	}

	env, err := c.do(ctx, http.MethodPost, "/employees", nil, body)
	if err != nil {
		return "", err
	}

	var id string
	if env.Data.Employee != nil {
		id = env.Data.Employee.ID
	}

	c.publish(ctx, "created", id)
	return id, nil
}

func (c *APIClient) UpdateEmployee(ctx context.Context, id string, update EmployeeUpdate) error {
	if strings.TrimSpace(id) == "" {
		return apperror.ErrNotFound
	}

	body := map[string]string{}
	set := func(field string, p *string) {
		if p != nil {
			body[field] = strings.TrimSpace(*p)
		}
	}
	set("name", update.Name)
	set("phone", update.Phone)
	set("division", update.Division)
	set("position", update.Position)
	if update.Image != nil {
		body["image"] = *update.Image
	}

	if _, err := c.do(ctx, http.MethodPut, "/employees/"+url.PathEscape(id), nil, body); err != nil {
		return err
	}

	c.publish(ctx, "updated", id)
	return nil
}

func (c *APIClient) DeleteEmployee(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return apperror.ErrNotFound
	}

	if _, err := c.do(ctx, http.MethodDelete, "/employees/"+url.PathEscape(id), nil, nil); err != nil {
		return err
	}

	c.publish(ctx, "deleted", id)
	return nil
}
