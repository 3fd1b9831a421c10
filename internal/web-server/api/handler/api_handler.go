package handler

import (
	"VCS_Basic_Web_App/internal/web-server/api/dto/response"
	apperrors "VCS_Basic_Web_App/internal/web-server/errors"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	healthMessage = "Backend is connected and running!"
	dataMessage   = "Frontend-Backend connection successful!"
	echoMessage   = "POST request received successfully"
	serverName    = "Gin"
)

type ApiHandler interface {
	Health() gin.HandlerFunc
	GetData() gin.HandlerFunc
	Echo() gin.HandlerFunc
}

type apiHandler struct {
	Logger
	environment string
	startedAt   time.Time
	now         func() time.Time
	randIntN    func(n int) int
}

// Health never fails: if the process can answer, it is up.
func (h *apiHandler) Health() gin.HandlerFunc {
	return func(c *gin.Context) {
		now := h.now()
		uptime := now.Sub(h.startedAt).Seconds()
		if uptime < 0 {
			uptime = 0
		}
		c.JSON(http.StatusOK, response.HealthResponse{
			Status:      response.StatusSuccess,
			Message:     healthMessage,
			Timestamp:   response.FormatTimestamp(now),
			Environment: h.environment,
			Uptime:      uptime,
		})
	}
}

func (h *apiHandler) GetData() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, response.DataResponse{
			Status: response.StatusSuccess,
			Data: response.SampleData{
				Message:      dataMessage,
				Server:       serverName,
				Timestamp:    response.FormatTimestamp(h.now()),
				RandomNumber: h.randIntN(1000),
			},
		})
	}
}

func (h *apiHandler) Echo() gin.HandlerFunc {
	return func(c *gin.Context) {
		received, err := h.readBody(c)
		if err != nil {
			err = fmt.Errorf("ApiHandler.Echo: %w", err)
			h.LoggingError(c, err, "failed to read echo request body", zap.WarnLevel)
			_ = c.Error(err)
			return
		}
		c.JSON(http.StatusOK, response.EchoResponse{
			Status:       response.StatusSuccess,
			Message:      echoMessage,
			ReceivedData: received,
			Timestamp:    response.FormatTimestamp(h.now()),
		})
	}
}

// readBody decodes JSON and urlencoded bodies; any other content type echoes an empty object.
func (h *apiHandler) readBody(c *gin.Context) (json.RawMessage, error) {
	empty := json.RawMessage("{}")
	if c.Request.Body == nil {
		return empty, nil
	}
	b, err := io.ReadAll(c.Request.Body)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return nil, apperrors.NewValidationError(fmt.Errorf("body exceeds %d bytes: %w", maxBytesErr.Limit, apperrors.ErrBodyTooLarge))
		}
		return nil, apperrors.NewTransportError(err)
	}

	switch c.ContentType() {
	case gin.MIMEJSON:
		b = bytes.TrimSpace(b)
		if len(b) == 0 {
			return empty, nil
		}
		if !json.Valid(b) {
			return nil, apperrors.NewValidationError(apperrors.ErrMalformedBody)
		}
		return b, nil
	case gin.MIMEPOSTForm:
		values, err := url.ParseQuery(string(b))
		if err != nil {
			return nil, apperrors.NewValidationError(fmt.Errorf("%w: %v", apperrors.ErrMalformedBody, err))
		}
		encoded, err := json.Marshal(nestFormValues(values))
		if err != nil {
			return nil, apperrors.NewInternalError(err)
		}
		return encoded, nil
	default:
		return empty, nil
	}
}

// nestFormValues expands bracketed keys the way extended urlencoded parsers do:
// a[b]=1 becomes {"a":{"b":"1"}}, a[]=1&a[]=2 and repeated keys become arrays.
func nestFormValues(values url.Values) map[string]any {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	root := make(map[string]any, len(values))
	for _, k := range keys {
		path := splitFormKey(k)
		for _, v := range values[k] {
			setFormValue(root, path, v)
		}
	}
	return root
}

// splitFormKey turns "a[b][]" into ["a", "b", ""]. Keys that are not well formed stay flat.
func splitFormKey(key string) []string {
	open := strings.IndexByte(key, '[')
	if open <= 0 || !strings.HasSuffix(key, "]") {
		return []string{key}
	}
	path := []string{key[:open]}
	rest := key[open:]
	for rest != "" {
		if rest[0] != '[' {
			return []string{key}
		}
		end := strings.IndexByte(rest, ']')
		if end < 0 {
			return []string{key}
		}
		path = append(path, rest[1:end])
		rest = rest[end+1:]
	}
	return path
}

func setFormValue(node map[string]any, path []string, value string) {
	key := path[0]
	if len(path) == 1 {
		switch existing := node[key].(type) {
		case nil:
			node[key] = value
		case string:
			node[key] = []any{existing, value}
		case []any:
			node[key] = append(existing, value)
		}
		return
	}
	if len(path) == 2 && path[1] == "" {
		list, _ := node[key].([]any)
		node[key] = append(list, value)
		return
	}
	child, ok := node[key].(map[string]any)
	if !ok {
		child = make(map[string]any)
		node[key] = child
	}
	setFormValue(child, path[1:], value)
}

func NewApiHandler(l *zap.Logger, environment string, startedAt time.Time) ApiHandler {
	return &apiHandler{
		Logger:      NewLogger(l),
		environment: environment,
		startedAt:   startedAt,
		now:         time.Now,
		randIntN:    rand.IntN,
	}
}

