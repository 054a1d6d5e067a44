package mux

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"videopoker-server/internal/jwt"
	"videopoker-server/pkg/deck"
	"videopoker-server/pkg/economy"
	"videopoker-server/pkg/economy/memory"
	"videopoker-server/pkg/economy/storetest"
	"videopoker-server/pkg/videopoker"
)

var cbg = context.Background()

type testServer struct {
	*httptest.Server
	store economy.Store
}

func newTestServer(t *testing.T, opts ...Option) *testServer {
	return newTestServerWithStore(t, memory.New(storetest.Options()), opts...)
}

func newTestServerWithStore(t *testing.T, store economy.Store, opts ...Option) *testServer {
	t.Helper()
	setupJWT()

	ts := httptest.NewServer(NewMux("v1.2.3", videopoker.New(store), opts...))
	t.Cleanup(ts.Close)

	return &testServer{Server: ts, store: store}
}

func setupJWT() {
	jwt.SetKey([]byte("mux-test-secret"), time.Hour)
}

// signUp creates a user through the API and returns the response
func (ts *testServer) signUp(t *testing.T, name string) accountResponse {
	t.Helper()

	var resp accountResponse
	assertPost(t, ts.Server, "/api/signup", credentialsPayload{Name: name, Password: "secret"}, &resp, 200)
	return resp
}

// force replaces the cards of a round so its outcome is known
func (ts *testServer) force(t *testing.T, roundID, cards string) {
	t.Helper()

	if err := ts.store.ReplaceRoundCards(cbg, roundID, deck.CardsFromString(cards)); err != nil {
		t.Fatal(err)
	}
}

func assertDo(t *testing.T, req *http.Request, respObj interface{}, statusCode int, signedJWT ...string) *http.Response {
	t.Helper()

	if len(signedJWT) > 0 {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", signedJWT[0]))
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Error(err)
		return nil
	}
	defer resp.Body.Close()

	if statusCode != resp.StatusCode {
		b, _ := io.ReadAll(resp.Body)
		t.Log(string(b))
		assert.Equal(t, statusCode, resp.StatusCode)
		return nil
	}

	if respObj != nil {
		if err := json.NewDecoder(resp.Body).Decode(respObj); err != nil {
			t.Error(err)
			return nil
		}
	}

	return resp
}

func assertGetWithResp(t *testing.T, ts *httptest.Server, path string, respObj interface{}, statusCode int, signedJWT ...string) *http.Response {
	t.Helper()

	req, err := http.NewRequest(http.MethodGet, ts.URL+path, nil)
	if err != nil {
		t.Error(err)
		return nil
	}

	return assertDo(t, req, respObj, statusCode, signedJWT...)
}

func assertGet(t *testing.T, ts *httptest.Server, path string, respObj interface{}, statusCode int, signedJWT ...string) {
	t.Helper()
	_ = assertGetWithResp(t, ts, path, respObj, statusCode, signedJWT...)
}

func assertPostWithResp(t *testing.T, ts *httptest.Server, path string, payload interface{}, respObj interface{}, statusCode int, signedJWT ...string) *http.Response {
	t.Helper()

	var body io.Reader
	switch val := payload.(type) {
	case string:
		body = strings.NewReader(val)
	default:
		b, err := json.Marshal(val)
		if err != nil {
			t.Error(err)
			return nil
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequest(http.MethodPost, ts.URL+path, body)
	if err != nil {
		t.Error(err)
		return nil
	}
	req.Header.Set("Content-Type", "application/json")

	return assertDo(t, req, respObj, statusCode, signedJWT...)
}

func assertPost(t *testing.T, ts *httptest.Server, path string, payload interface{}, respObj interface{}, statusCode int, signedJWT ...string) {
	t.Helper()
	_ = assertPostWithResp(t, ts, path, payload, respObj, statusCode, signedJWT...)
}
