package mux

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_validDisplayNameRx(t *testing.T) {
	valid := []string{
		"",
		"Alice",
		"Alice B",
		"Ålice 99",
	}

	for _, name := range valid {
		assert.True(t, validDisplayNameRx.MatchString(name), name)
	}

	invalid := []string{
		"<script>",
		"tab\tname",
		"way too long way too long way too long way too long",
	}

	for _, name := range invalid {
		assert.False(t, validDisplayNameRx.MatchString(name), name)
	}
}

func Test_postPlayer_validation(t *testing.T) {
	ts := httptest.NewServer(NewMux(""))
	defer ts.Close()

	var errObj errorResponse

	assertPost(t, ts, "/player", playerPayload{Email: "bad", Password: "123456"}, &errObj, 400)
	assert.Equal(t, "missing or invalid email address", errObj.Message)

	assertPost(t, ts, "/player", playerPayload{Email: "a@example.com", Password: "123"}, &errObj, 400)
	assert.Equal(t, "password must be 6 or more characters", errObj.Message)

	assertPost(t, ts, "/player", playerPayload{DisplayName: "<bad>", Email: "a@example.com", Password: "123456"}, &errObj, 400)
	assert.Equal(t, "display name must only contain letters, numbers, and spaces, and be 40 characters or less", errObj.Message)
}
