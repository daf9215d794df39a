package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"sort"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cast"

	"github.com/Konsultn-Engineering/sqlbridge/query"
)

// Tables and ordering used by the CRUD routes.
const (
	UserTable   = "user_list"
	GoodsTable  = "goods_list"
	IPTable     = "ip_list"
	GoodsOrder  = "carate_at"
	defaultBody = 1 << 20
)

// Sessions hands out one builder per request.
type Sessions interface {
	Table(name string) *query.Builder
	Ping(ctx context.Context) error
}

type handlers struct {
	sessions     Sessions
	maxBodyBytes int64
}

func (h *handlers) insert(w http.ResponseWriter, r *http.Request) {
	body, ok := h.decode(w, r)
	if !ok {
		return
	}

	username, _ := body.Get("username")
	password, _ := body.Get("password")
	if !present(username) || !present(password) {
		respond(w, CodeMissingParams, nil, "")
		return
	}

	data := query.NewData()
	data.Set("username", username)
	data.Set("password", password)

	if _, err := h.sessions.Table(UserTable).Insert(data).Execute(r.Context()); err != nil {
		h.fail(w, r, err)
		return
	}
	respond(w, CodeOK, nil, "")
}

func (h *handlers) delete(w http.ResponseWriter, r *http.Request) {
	body, ok := h.decode(w, r)
	if !ok {
		return
	}

	id, _ := body.Get("id")
	if !present(id) {
		respond(w, CodeMissingParams, nil, "")
		return
	}

	res, err := h.sessions.Table(GoodsTable).
		Delete().
		Where(query.Eq("id", id)).
		Execute(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if res.RowsAffected == 0 {
		respond(w, CodeIDMissing, nil, "")
		return
	}
	respond(w, CodeOK, nil, "")
}

func (h *handlers) update(w http.ResponseWriter, r *http.Request) {
	body, ok := h.decode(w, r)
	if !ok {
		return
	}

	id, _ := body.Get("id")
	if !present(id) {
		respond(w, CodeMissingParams, nil, "")
		return
	}
	body.Delete("id")
	if body.Len() == 0 {
		respond(w, CodeMissingParams, nil, "")
		return
	}

	res, err := h.sessions.Table(IPTable).
		Where(query.Eq("id", id)).
		Update(body).
		Execute(r.Context())
	if errors.Is(err, query.ErrInvalidIdentifier) {
		respond(w, CodeUnknownField, nil, "")
		return
	}
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if res.RowsAffected == 0 {
		respond(w, CodeIDMissing, nil, "")
		return
	}
	respond(w, CodeOK, nil, "")
}

func (h *handlers) selectGoods(w http.ResponseWriter, r *http.Request) {
	body, ok := h.decode(w, r)
	if !ok {
		return
	}

	b := h.sessions.Table(GoodsTable).OrderBy(GoodsOrder, "desc")

	rawSize, hasSize := body.Get("pageSize")
	rawNum, hasNum := body.Get("pageNum")
	if hasSize || hasNum {
		size, errSize := cast.ToIntE(rawSize)
		num, errNum := cast.ToIntE(rawNum)
		if errSize != nil || errNum != nil || size < 1 || num < 1 {
			respond(w, CodeBadRequest, nil, "")
			return
		}
		b.Limit(size, num)
	}

	res, err := b.Execute(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	respond(w, CodeOK, map[string]any{"list": res.Records}, "")
}

func (h *handlers) testGet(w http.ResponseWriter, r *http.Request) {
	respond(w, CodeOK, nil, "")
}

func (h *handlers) health(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Ping(r.Context()); err != nil {
		h.fail(w, r, err)
		return
	}
	respond(w, CodeOK, nil, "")
}

// fail logs err with the request logger and answers with a server error.
// Backend text never reaches the client.
func (h *handlers) fail(w http.ResponseWriter, r *http.Request, err error) {
	zerolog.Ctx(r.Context()).Error().Err(err).Str("path", r.URL.Path).Msg("Request failed")
	respond(w, CodeServerError, nil, "")
}

// decode reads a JSON object or urlencoded form into ordered data. An empty
// body yields empty data. On failure it has already written the response.
func (h *handlers) decode(w http.ResponseWriter, r *http.Request) (*query.Data, bool) {
	limit := h.maxBodyBytes
	if limit <= 0 {
		limit = defaultBody
	}

	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, limit))
	if err != nil {
		zerolog.Ctx(r.Context()).Debug().Err(err).Msg("Failed to read body")
		respond(w, CodeBadRequest, nil, "")
		return nil, false
	}

	data, err := parseBody(r.Header.Get("Content-Type"), raw)
	if err != nil {
		zerolog.Ctx(r.Context()).Debug().Err(err).Msg("Malformed body")
		respond(w, CodeBadRequest, nil, "")
		return nil, false
	}
	return data, true
}

func parseBody(contentType string, raw []byte) (*query.Data, error) {
	data := query.NewData()
	if len(strings.TrimSpace(string(raw))) == 0 {
		return data, nil
	}

	mediaType, _, _ := mime.ParseMediaType(contentType)
	if mediaType == "application/x-www-form-urlencoded" {
		values, err := url.ParseQuery(string(raw))
		if err != nil {
			return nil, err
		}
		// Form fields carry no order; sort for stable statements.
		keys := make([]string, 0, len(values))
		for k := range values {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			data.Set(k, values.Get(k))
		}
		return data, nil
	}

	if err := data.UnmarshalJSON(raw); err != nil {
		return nil, fmt.Errorf("decode json object: %w", err)
	}

	// The ordered map decodes numbers as float64; decode them again as
	// json.Number so integers beyond 2^53 keep every digit.
	var numbers map[string]any
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&numbers); err != nil {
		return nil, fmt.Errorf("decode json object: %w", err)
	}
	for pair := data.Oldest(); pair != nil; pair = pair.Next() {
		if n, ok := numbers[pair.Key].(json.Number); ok {
			pair.Value = normalizeNumber(n)
		}
	}
	return data, nil
}

// normalizeNumber returns n as int64 when it is an integer in range, else as
// float64. Nested values keep encoding/json's float64.
func normalizeNumber(n json.Number) any {
	if i, err := n.Int64(); err == nil {
		return i
	}
	if f, err := n.Float64(); err == nil {
		return f
	}
	return n.String()
}

func present(v any) bool {
	if v == nil {
		return false
	}
	if s, ok := v.(string); ok {
		return s != ""
	}
	return true
}
