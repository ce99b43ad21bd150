package http

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
)

// pathID parses a positive integer path variable.
func pathID(r *http.Request, name string) (int64, error) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, validationError("%s must be a positive integer", name)
	}
	return id, nil
}

func queryInt32(r *http.Request, name string, def int32) (int32, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || v < 0 {
		return 0, validationError("%s must be a non-negative integer", name)
	}
	return int32(v), nil
}

// queryIDTokens collects every value of a repeated parameter, splitting
// comma-separated lists. It returns nil when the parameter is absent.
func queryIDTokens(r *http.Request, name string) []string {
	values, ok := r.URL.Query()[name]
	if !ok {
		return nil
	}
	tokens := make([]string, 0, len(values))
	for _, v := range values {
		tokens = append(tokens, strings.Split(v, ",")...)
	}
	return tokens
}

func queryBool(r *http.Request, name string) (*bool, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, validationError("%s must be true or false", name)
	}
	return &v, nil
}
