package httpserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/raweeng/Nulldle/internal/dict"
	"github.com/raweeng/Nulldle/internal/kv"
	"github.com/raweeng/Nulldle/internal/stats"
)

const testWords = "house\nworld\nwould\ncrane\napple\n"

// newTestServer spins up a full server over an in-memory kv store and a
// cookie-aware client, so anonymous ownership works like a real browser.
func newTestServer(t *testing.T) (*httptest.Server, *http.Client) {
	t.Helper()
	d, err := dict.Load(strings.NewReader(testWords))
	if err != nil {
		t.Fatalf("load test dictionary: %v", err)
	}
	store := kv.NewMemory()
	s := New(d, stats.New(store), store, Config{RateRPS: 1000, RateBurst: 1000})

	ts := httptest.NewServer(s.Router())
	t.Cleanup(ts.Close)

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("cookiejar: %v", err)
	}
	return ts, &http.Client{Jar: jar}
}

type stateResp struct {
	State        string `json:"state"`
	Guesses      [][]letterResp
	Input        string `json:"input"`
	Over         bool   `json:"over"`
	Won          bool   `json:"won"`
	AttemptsLeft int    `json:"attemptsLeft"`
	Error        string `json:"error"`
	Target       string `json:"target"`
}

type letterResp struct {
	Letter string `json:"letter"`
	Status string `json:"status"`
}

func postJSON(t *testing.T, c *http.Client, url string, body any) *http.Response {
	t.Helper()
	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	resp, err := c.Post(url, "application/json", bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var v T
	if err := json.NewDecoder(resp.Body).Decode(&v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return v
}

func TestGameWinFlow(t *testing.T) {
	ts, c := newTestServer(t)

	resp := postJSON(t, c, ts.URL+"/game/new", map[string]string{"word": "house"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("new game status = %d", resp.StatusCode)
	}
	st := decode[stateResp](t, resp)
	if st.State != "playing" || st.Target != "" {
		t.Fatalf("fresh game state = %q target = %q", st.State, st.Target)
	}

	st = decode[stateResp](t, postJSON(t, c, ts.URL+"/game/guess", map[string]string{"guess": "world"}))
	if st.State != "playing" || len(st.Guesses) != 1 || st.AttemptsLeft != 5 {
		t.Fatalf("after first guess: state=%q guesses=%d left=%d", st.State, len(st.Guesses), st.AttemptsLeft)
	}

	st = decode[stateResp](t, postJSON(t, c, ts.URL+"/game/guess", map[string]string{"guess": "house"}))
	if st.State != "won" || !st.Won || !st.Over {
		t.Fatalf("winning guess: state=%q won=%v over=%v", st.State, st.Won, st.Over)
	}
	if st.Target != "house" {
		t.Errorf("target not revealed after win: %q", st.Target)
	}
	for _, lr := range st.Guesses[1] {
		if lr.Status != "correct" {
			t.Errorf("winning row has status %q", lr.Status)
		}
	}

	// The completed game shows up in the stats summary.
	resp, err := c.Get(ts.URL + "/stats/summary")
	if err != nil {
		t.Fatalf("GET summary: %v", err)
	}
	sum := decode[struct {
		Wins               int     `json:"wins"`
		GamesPlayed        int     `json:"gamesPlayed"`
		TopDurationsMillis []int64 `json:"topDurationsMillis"`
	}](t, resp)
	if sum.Wins != 1 || sum.GamesPlayed != 1 || len(sum.TopDurationsMillis) != 1 {
		t.Errorf("summary after win = %+v", sum)
	}
}

func TestInvalidGuessLeavesSessionUnchanged(t *testing.T) {
	ts, c := newTestServer(t)

	postJSON(t, c, ts.URL+"/game/new", map[string]string{"word": "house"}).Body.Close()

	resp := postJSON(t, c, ts.URL+"/game/guess", map[string]string{"guess": "zzzzz"})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("invalid word status = %d, want 400", resp.StatusCode)
	}
	st := decode[stateResp](t, resp)
	if st.Error == "" {
		t.Error("expected error message for invalid word")
	}

	resp, err := c.Get(ts.URL + "/game/state")
	if err != nil {
		t.Fatalf("GET state: %v", err)
	}
	st = decode[stateResp](t, resp)
	if len(st.Guesses) != 0 || st.State != "playing" {
		t.Errorf("invalid word mutated session: guesses=%d state=%q", len(st.Guesses), st.State)
	}
}

func TestCustomWordRejected(t *testing.T) {
	ts, c := newTestServer(t)

	for _, word := range []string{"zzzzz", "abc"} {
		resp := postJSON(t, c, ts.URL+"/game/new", map[string]string{"word": word})
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("custom word %q status = %d, want 400", word, resp.StatusCode)
		}
		resp.Body.Close()
	}
}

func TestInputEndpoint(t *testing.T) {
	ts, c := newTestServer(t)

	st := decode[stateResp](t, postJSON(t, c, ts.URL+"/game/input", map[string]string{"text": "WORLD"}))
	if st.Input != "world" {
		t.Errorf("input = %q, want normalized \"world\"", st.Input)
	}
}

func TestStateHidesTargetWhilePlaying(t *testing.T) {
	ts, c := newTestServer(t)

	resp, err := c.Get(ts.URL + "/game/state")
	if err != nil {
		t.Fatalf("GET state: %v", err)
	}
	st := decode[stateResp](t, resp)
	if st.Target != "" {
		t.Errorf("target leaked while playing: %q", st.Target)
	}
	if st.AttemptsLeft != 6 {
		t.Errorf("attemptsLeft = %d, want 6", st.AttemptsLeft)
	}
}

func TestAuthFlow(t *testing.T) {
	ts, c := newTestServer(t)

	resp := postJSON(t, c, ts.URL+"/auth/signup", map[string]string{
		"username": "player_one",
		"password": "correcthorse",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("signup status = %d", resp.StatusCode)
	}
	resp.Body.Close()

	resp, err := c.Get(ts.URL + "/auth/me")
	if err != nil {
		t.Fatalf("GET me: %v", err)
	}
	me := decode[struct {
		Username string `json:"username"`
	}](t, resp)
	if me.Username != "player_one" {
		t.Errorf("me = %q, want player_one", me.Username)
	}

	// Duplicate signup is refused.
	resp = postJSON(t, c, ts.URL+"/auth/signup", map[string]string{
		"username": "player_one",
		"password": "correcthorse",
	})
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("duplicate signup status = %d, want 409", resp.StatusCode)
	}
	resp.Body.Close()

	postJSON(t, c, ts.URL+"/auth/logout", nil).Body.Close()
	resp, err = c.Get(ts.URL + "/auth/me")
	if err != nil {
		t.Fatalf("GET me after logout: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("me after logout status = %d, want 401", resp.StatusCode)
	}

	// Login works again with the same credentials.
	resp = postJSON(t, c, ts.URL+"/auth/login", map[string]string{
		"username": "player_one",
		"password": "correcthorse",
	})
	if resp.StatusCode != http.StatusOK {
		t.Errorf("login status = %d", resp.StatusCode)
	}
	resp.Body.Close()
}
