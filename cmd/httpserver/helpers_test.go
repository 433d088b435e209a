//go:build integration

package httpserver_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-petr/pet-vending/cmd/httpserver"
	"github.com/go-petr/pet-vending/internal/domain"
	"github.com/go-petr/pet-vending/internal/middleware"
	"github.com/go-petr/pet-vending/pkg/tokenpkg"
)

type response struct {
	AccessToken  string          `json:"access_token"`
	RefreshToken string          `json:"refresh_token"`
	Data         json.RawMessage `json:"data"`
	Error        string          `json:"error"`
}

// do sends a json request to the server, authorized with token unless it is empty.
func do(server *httpserver.Server, method, url, token string, body any) (int, response, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return 0, response{}, err
		}

		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		return 0, response{}, err
	}

	if token != "" {
		req.Header.Set(middleware.AuthHeaderKey, middleware.AuthTypeBearer+" "+token)
	}

	recorder := httptest.NewRecorder()
	server.ServeHTTP(recorder, req)

	var res response
	if err := json.NewDecoder(recorder.Body).Decode(&res); err != nil {
		return recorder.Code, response{}, fmt.Errorf("%s %s: decoding response body: %w", method, url, err)
	}

	return recorder.Code, res, nil
}

func call(t *testing.T, server *httpserver.Server, method, url, token string, body any) (int, response) {
	t.Helper()

	code, res, err := do(server, method, url, token, body)
	if err != nil {
		t.Fatalf("do(%v, %v) returned error: %v", method, url, err)
	}

	return code, res
}

// tokenFor issues an access token for an already stored user.
func tokenFor(t *testing.T, server *httpserver.Server, user domain.User) string {
	t.Helper()

	tokenMaker, err := tokenpkg.NewMaker(server.Config.TokenType, server.Config.TokenSymmetricKey)
	if err != nil {
		t.Fatalf("tokenpkg.NewMaker() returned error: %v", err)
	}

	token, _, err := tokenMaker.CreateToken(user.ID, user.Username, string(user.Role), time.Minute)
	if err != nil {
		t.Fatalf("tokenMaker.CreateToken() returned error: %v", err)
	}

	return token
}

func decodeData(t *testing.T, res response, v any) {
	t.Helper()

	if err := json.Unmarshal(res.Data, v); err != nil {
		t.Fatalf("json.Unmarshal(%s) returned error: %v", res.Data, err)
	}
}
