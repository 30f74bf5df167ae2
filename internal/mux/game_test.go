package mux

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"pickupsixes-server/pkg/game"
	"pickupsixes-server/pkg/lobby"
)

func Test_writeGameError(t *testing.T) {
	statusFor := func(err error) int {
		w := httptest.NewRecorder()
		writeGameError(w, err)
		return w.Code
	}

	assert.Equal(t, http.StatusBadRequest, statusFor(game.ErrCardNotFound))
	assert.Equal(t, http.StatusBadRequest, statusFor(game.ErrInvalidPileSource))
	assert.Equal(t, http.StatusBadRequest, statusFor(game.ErrInvalidCardRank))
	assert.Equal(t, http.StatusBadRequest, statusFor(game.ErrNotPlayersTurn))
	assert.Equal(t, http.StatusBadRequest, statusFor(game.ErrPlayerNotInGame))
	assert.Equal(t, http.StatusBadRequest, statusFor(game.ErrGameNotStarted))
	assert.Equal(t, http.StatusBadRequest, statusFor(game.ErrGameIsOver))
	assert.Equal(t, http.StatusBadRequest, statusFor(game.PlayerCountError(1)))
	assert.Equal(t, http.StatusBadGateway, statusFor(game.InsufficientDeckError{Cards: 10, Players: 2}))
	assert.Equal(t, http.StatusConflict, statusFor(lobby.ErrConcurrencyConflict))
	assert.Equal(t, http.StatusNotFound, statusFor(sql.ErrNoRows))
	assert.Equal(t, http.StatusInternalServerError, statusFor(errors.New("boom")))
}

func Test_writeGameError_messageSurvivesForRuleErrors(t *testing.T) {
	w := httptest.NewRecorder()
	writeGameError(w, game.ErrInvalidCardRank)

	var errObj errorResponse
	assert.NoError(t, json.NewDecoder(w.Body).Decode(&errObj))
	assert.Equal(t, game.ErrInvalidCardRank.Error(), errObj.Message)
	assert.Equal(t, http.StatusBadRequest, errObj.StatusCode)
}
