package mux

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"videopoker-server/pkg/deck"
	"videopoker-server/pkg/economy"
	"videopoker-server/pkg/economy/memory"
	"videopoker-server/pkg/economy/storetest"
	"videopoker-server/pkg/videopoker"
)

func newFormRequest(url string) (*http.Request, error) {
	req, err := http.NewRequest(http.MethodPost, url, strings.NewReader("name=alice"))
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req, nil
}

func startRound(t *testing.T, ts *testServer, user accountResponse, ante int64) videopoker.Started {
	t.Helper()

	var started videopoker.Started
	assertPost(t, ts.Server, "/api/start", startPayload{UserID: user.ID, Ante: ante}, &started, 200, user.Token)
	return started
}

func TestStatus(t *testing.T) {
	ts := newTestServer(t)
	alice := ts.signUp(t, "alice")

	var status videopoker.Status
	assertGet(t, ts.Server, "/api/status/"+alice.ID, &status, 200)
	assert.Equal(t, videopoker.Status{Wallet: 1000, WinPool: storetest.InitialWinPool}, status)

	var errObj errorResponse
	assertGet(t, ts.Server, "/api/status/missing", &errObj, 404)
	assert.Equal(t, "user_not_found", errObj.Code)
}

func TestStart(t *testing.T) {
	a := assert.New(t)
	ts := newTestServer(t)
	alice := ts.signUp(t, "alice")

	started := startRound(t, ts, alice, 10)
	a.NotEmpty(started.RoundID)
	a.Len(started.Cards, 5)
	a.Equal(int64(990), started.Wallet)
	a.Equal(storetest.InitialWinPool, started.WinPool)
}

func TestStart_wireFormat(t *testing.T) {
	ts := newTestServer(t)
	alice := ts.signUp(t, "alice")

	var raw map[string]interface{}
	assertPost(t, ts.Server, "/api/start", map[string]interface{}{"user_id": alice.ID, "ante": 10}, &raw, 200)

	assert.IsType(t, "", raw["round_id"])
	assert.Equal(t, float64(990), raw["wallet"])
	assert.Equal(t, float64(storetest.InitialWinPool), raw["win_pool"])

	cards := raw["cards"].([]interface{})
	require.Len(t, cards, 5)
	card := cards[0].(map[string]interface{})
	assert.Contains(t, card, "rank")
	assert.Contains(t, card, "suit")
}

func TestStart_errors(t *testing.T) {
	ts := newTestServer(t)
	alice := ts.signUp(t, "alice")
	bob := ts.signUp(t, "bob")

	tests := []struct {
		name    string
		payload startPayload
		token   string
		status  int
		code    string
	}{
		{"unknown user", startPayload{UserID: "missing", Ante: 10}, "", 404, "user_not_found"},
		{"zero ante", startPayload{UserID: alice.ID, Ante: 0}, alice.Token, 400, "invalid_ante"},
		{"over wallet", startPayload{UserID: alice.ID, Ante: 1001}, alice.Token, 409, "insufficient_funds"},
		{"someone else's token", startPayload{UserID: alice.ID, Ante: 10}, bob.Token, 403, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var errObj errorResponse
			if tt.token != "" {
				assertPost(t, ts.Server, "/api/start", tt.payload, &errObj, tt.status, tt.token)
			} else {
				assertPost(t, ts.Server, "/api/start", tt.payload, &errObj, tt.status)
			}
			assert.Equal(t, tt.code, errObj.Code)
		})
	}

	var status videopoker.Status
	assertGet(t, ts.Server, "/api/status/"+alice.ID, &status, 200)
	assert.Equal(t, int64(1000), status.Wallet)
}

func TestStart_poolTooSmall(t *testing.T) {
	opts := storetest.Options()
	opts.InitialWinPool = 100
	ts := newTestServerWithStore(t, memory.New(opts))
	alice := ts.signUp(t, "alice")

	var errObj errorResponse
	assertPost(t, ts.Server, "/api/start", startPayload{UserID: alice.ID, Ante: 10}, &errObj, 409)
	assert.Equal(t, "win pool too small, max ante allowed 2", errObj.Message)
	assert.Equal(t, "pool_too_small", errObj.Code)
}

type brokenRoundStore struct {
	economy.Store
}

func (brokenRoundStore) CreateRound(context.Context, string, int64, []deck.Card) (string, error) {
	return "", errors.New("connection reset")
}

func TestStart_internalError(t *testing.T) {
	ts := newTestServerWithStore(t, brokenRoundStore{memory.New(storetest.Options())})
	alice := ts.signUp(t, "alice")

	var errObj errorResponse
	assertPost(t, ts.Server, "/api/start", startPayload{UserID: alice.ID, Ante: 10}, &errObj, 500)
	assert.Equal(t, "Internal Server Error", errObj.Message)
	assert.Empty(t, errObj.Code)
}

func TestDiscard(t *testing.T) {
	a := assert.New(t)
	ts := newTestServer(t)
	alice := ts.signUp(t, "alice")
	started := startRound(t, ts, alice, 10)

	var discarded videopoker.Discarded
	assertPost(t, ts.Server, "/api/discard", discardPayload{
		UserID:         alice.ID,
		RoundID:        started.RoundID,
		DiscardIndices: []int{0, 1},
	}, &discarded, 200, alice.Token)

	a.Len(discarded.Cards, 5)
	a.Equal(int64(980), discarded.Wallet)
	a.Equal(int64(10), discarded.TotalBet)
	a.Equal(started.Cards[2:], discarded.Cards[2:])
}

func TestDiscard_errors(t *testing.T) {
	ts := newTestServer(t)
	alice := ts.signUp(t, "alice")
	bob := ts.signUp(t, "bob")
	started := startRound(t, ts, alice, 10)

	var errObj errorResponse
	assertPost(t, ts.Server, "/api/discard", discardPayload{UserID: bob.ID, RoundID: started.RoundID, DiscardIndices: []int{0}}, &errObj, 403, bob.Token)
	assert.Equal(t, "owner_mismatch", errObj.Code)

	assertPost(t, ts.Server, "/api/discard", discardPayload{UserID: alice.ID, RoundID: "missing", DiscardIndices: []int{0}}, &errObj, 404)
	assert.Equal(t, "round_not_found", errObj.Code)

	assertPost(t, ts.Server, "/api/discard", discardPayload{UserID: alice.ID, RoundID: started.RoundID, DiscardIndices: []int{-1}}, &errObj, 400)
	assert.Equal(t, "invalid_discard", errObj.Code)

	assertPost(t, ts.Server, "/api/reveal", revealPayload{UserID: alice.ID, RoundID: started.RoundID}, nil, 200)
	assertPost(t, ts.Server, "/api/discard", discardPayload{UserID: alice.ID, RoundID: started.RoundID, DiscardIndices: []int{0}}, &errObj, 400)
	assert.Equal(t, "round_not_active", errObj.Code)
}

func TestReveal(t *testing.T) {
	a := assert.New(t)
	ts := newTestServer(t)
	alice := ts.signUp(t, "alice")

	started := startRound(t, ts, alice, 100)
	ts.force(t, started.RoundID, "2c,7d,9h,12s,14c")

	var revealed videopoker.Revealed
	assertPost(t, ts.Server, "/api/reveal", revealPayload{UserID: alice.ID, RoundID: started.RoundID}, &revealed, 200, alice.Token)
	a.Equal(videopoker.Revealed{
		Wallet:      900,
		WinPool:     storetest.InitialWinPool + 75,
		HouseProfit: 25,
		HandRank:    "HighCard",
	}, revealed)

	var errObj errorResponse
	assertPost(t, ts.Server, "/api/reveal", revealPayload{UserID: alice.ID, RoundID: started.RoundID}, &errObj, 400, alice.Token)
	a.Equal("round_not_active", errObj.Code)

	assertPost(t, ts.Server, "/api/reveal", revealPayload{UserID: alice.ID, RoundID: "missing"}, &errObj, 404, alice.Token)
	a.Equal("round_not_found", errObj.Code)
}

func TestReveal_win(t *testing.T) {
	a := assert.New(t)
	ts := newTestServer(t)
	alice := ts.signUp(t, "alice")

	started := startRound(t, ts, alice, 10)
	ts.force(t, started.RoundID, "10h,11h,12h,13h,14h")

	var raw map[string]interface{}
	assertPost(t, ts.Server, "/api/reveal", revealPayload{UserID: alice.ID, RoundID: started.RoundID}, &raw, 200)
	a.Equal("StraightFlush", raw["hand_rank"])
	a.Equal(float64(50), raw["multiplier"])
	a.Equal(float64(500), raw["payout"])
	a.Equal(float64(1490), raw["wallet"])
	a.Equal(float64(storetest.InitialWinPool-500), raw["win_pool"])
	a.Equal(float64(0), raw["house_profit"])
}

func TestReveal_poolShortfall(t *testing.T) {
	ts := newTestServer(t)
	alice := ts.signUp(t, "alice")

	started := startRound(t, ts, alice, 10)
	ts.force(t, started.RoundID, "9c,9d,9h,9s,14c")

	_, err := ts.store.DebitWinPool(cbg, storetest.InitialWinPool-100)
	require.NoError(t, err)

	var errObj errorResponse
	assertPost(t, ts.Server, "/api/reveal", revealPayload{UserID: alice.ID, RoundID: started.RoundID}, &errObj, 409)
	assert.Equal(t, "pool_shortfall", errObj.Code)

	var status videopoker.Status
	assertGet(t, ts.Server, "/api/status/"+alice.ID, &status, 200)
	assert.Equal(t, videopoker.Status{Wallet: 1000, WinPool: 100}, status)
}

func TestPayTable(t *testing.T) {
	ts := newTestServer(t)

	var rows []struct {
		Hand       string `json:"hand"`
		Multiplier int64  `json:"multiplier"`
	}
	assertGet(t, ts.Server, "/api/paytable", &rows, 200)
	require.Len(t, rows, 9)
	assert.Equal(t, "Straight flush", rows[0].Hand)
	assert.Equal(t, int64(50), rows[0].Multiplier)
	assert.Equal(t, "High card", rows[8].Hand)
}
