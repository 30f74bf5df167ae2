package mux

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"pickupsixes-server/internal/config"
	"pickupsixes-server/internal/jwt"
)

func setupJWT() {
	os.Setenv("PSX_JWT_PUBLIC_KEY", "testdata/public.pem")
	os.Setenv("PSX_JWT_PRIVATE_KEY", "testdata/private.key")
	if err := config.Load(); err != nil {
		panic(err)
	}

	jwt.LoadKeys()
}

func Test_parsePaginationOptions(t *testing.T) {
	req := func(queryString string) *http.Request {
		req, _ := http.NewRequest(http.MethodGet, "https://example.domain/"+queryString, nil)
		return req
	}

	start, rows, err := parsePaginationOptions(req(""))
	assert.NoError(t, err)
	assert.Equal(t, int64(0), start)
	assert.Equal(t, defaultRows, rows)

	start, rows, err = parsePaginationOptions(req("?start=10&rows=25"))
	assert.NoError(t, err)
	assert.Equal(t, int64(10), start)
	assert.Equal(t, 25, rows)

	start, rows, err = parsePaginationOptions(req("?start=-1&rows=25"))
	assert.EqualError(t, err, "start cannot be less than zero")
	assert.Equal(t, int64(0), start)
	assert.Equal(t, 0, rows)

	start, rows, err = parsePaginationOptions(req("?start=0&rows=0"))
	assert.EqualError(t, err, "rows must be greater than zero")
	assert.Equal(t, int64(0), start)
	assert.Equal(t, 0, rows)

	start, rows, err = parsePaginationOptions(req(fmt.Sprintf("?start=0&rows=%d", maxRows+1)))
	assert.EqualError(t, err, fmt.Sprintf("rows cannot be greater than %d", maxRows))
	assert.Equal(t, int64(0), start)
	assert.Equal(t, 0, rows)
}

func Test_authRouter_rejectsMissingCredentials(t *testing.T) {
	setupJWT()
	m := NewMux("")

	m.authRouter.Path("/test").HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, 200, "OK")
	})

	ts := httptest.NewServer(m)
	defer ts.Close()

	var errObj errorResponse
	assertGet(t, ts, "/test", &errObj, 401)
	assert.Equal(t, "Unauthorized", errObj.Message)

	// garbage tokens never reach the handler either
	assertGet(t, ts, "/test", &errObj, 401, "not-a-jwt")
	assert.Equal(t, "Unauthorized", errObj.Message)
}

func Test_lobbyRouter_rejectsMalformedUUID(t *testing.T) {
	ts := httptest.NewServer(NewMux(""))
	defer ts.Close()

	// a path that doesn't match the UUID pattern never matches the route
	assertGet(t, ts, "/lobby/nope/game/turn", nil, 404)
}

func Test_decodeRequest(t *testing.T) {
	type payload struct {
		Name string `json:"name"`
	}

	handler := func(w http.ResponseWriter, r *http.Request) {
		var p payload
		if !decodeRequest(w, r, &p) {
			return
		}

		writeJSON(w, 200, p)
	}

	ts := httptest.NewServer(http.HandlerFunc(handler))
	defer ts.Close()

	var p payload
	assertPost(t, ts, "/", payload{Name: "hello"}, &p, 200)
	assert.Equal(t, "hello", p.Name)

	var errObj errorResponse
	assertPost(t, ts, "/", "{bad json", &errObj, 400)

	req, _ := http.NewRequest(http.MethodPost, ts.URL, nil)
	req.Header.Set("Content-Type", "text/plain")
	resp, err := http.DefaultClient.Do(req)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusUnsupportedMediaType, resp.StatusCode)
	_ = resp.Body.Close()
}
