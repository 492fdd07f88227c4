package httpserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/impostorparty/go-server/internal/lobby"
	"github.com/impostorparty/go-server/internal/random"
)

const testPassword = "hunter2"

func newTestServer() *Server {
	src := random.NewCryptoSource()
	svc := lobby.NewService(
		lobby.NewRegistry(),
		lobby.NewCodeGenerator(src),
		lobby.NewRoleAssigner(src, []string{"dom", "chmura", "silnik"}),
	)
	return New(svc, NewAdminAuth(testPassword, ""), nil)
}

func doJSON(t *testing.T, srv *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), "body=%s", w.Body.String())
	return out
}

func createLobby(t *testing.T, srv *Server, adminName string, maxPlayers int) string {
	t.Helper()
	w := doJSON(t, srv, http.MethodPost, "/api/lobby/create", map[string]any{
		"adminPassword": testPassword,
		"adminName":     adminName,
		"maxPlayers":    maxPlayers,
		"difficulty":    "sredni",
	})
	require.Equal(t, http.StatusOK, w.Code, "body=%s", w.Body.String())
	return decode(t, w)["code"].(string)
}

func TestHealth(t *testing.T) {
	srv := newTestServer()
	w := doJSON(t, srv, http.MethodGet, "/api/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decode(t, w)["ok"])
}

func TestCreateRequiresPassword(t *testing.T) {
	srv := newTestServer()
	w := doJSON(t, srv, http.MethodPost, "/api/lobby/create", map[string]any{
		"adminPassword": "wrong",
		"adminName":     "Ala",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, false, decode(t, w)["ok"])
}

func TestCreateValidation(t *testing.T) {
	srv := newTestServer()

	w := doJSON(t, srv, http.MethodPost, "/api/lobby/create", map[string]any{
		"adminPassword": testPassword,
		"adminName":     "   ",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	req := httptest.NewRequest(http.MethodPost, "/api/lobby/create", bytes.NewBufferString("{not json"))
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateResponseShape(t *testing.T) {
	srv := newTestServer()
	w := doJSON(t, srv, http.MethodPost, "/api/lobby/create", map[string]any{
		"adminPassword": testPassword,
		"adminName":     "Ala",
		"maxPlayers":    5,
		"difficulty":    "sredni",
	})
	require.Equal(t, http.StatusOK, w.Code)

	out := decode(t, w)
	assert.Equal(t, true, out["ok"])
	assert.Len(t, out["code"].(string), 8)
	assert.Equal(t, float64(1), out["playerId"])

	lob := out["lobby"].(map[string]any)
	assert.Equal(t, "sredni", lob["difficulty"])
	assert.Equal(t, false, lob["started"])
	assert.Equal(t, false, lob["filled"])
	players := lob["players"].([]any)
	require.Len(t, players, 1)
	admin := players[0].(map[string]any)
	assert.Equal(t, "Ala", admin["name"])
	assert.Equal(t, true, admin["isAdmin"])
	// Summary must never expose role fields.
	assert.NotContains(t, lob, "impostorId")
	assert.NotContains(t, lob, "secretWord")
}

func TestStateEndpoint(t *testing.T) {
	srv := newTestServer()
	code := createLobby(t, srv, "Ala", 5)

	w := doJSON(t, srv, http.MethodGet, "/api/lobby/state?code="+code, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	out := decode(t, w)
	assert.Equal(t, code, out["lobby"].(map[string]any)["code"])

	w = doJSON(t, srv, http.MethodGet, "/api/lobby/state?code=00000000", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestJoinEndpoint(t *testing.T) {
	srv := newTestServer()
	code := createLobby(t, srv, "Ala", 3)

	w := doJSON(t, srv, http.MethodPost, "/api/lobby/join", map[string]any{"code": code, "name": "Ola"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(2), decode(t, w)["playerId"])

	// Case-insensitive duplicate of the admin name.
	w = doJSON(t, srv, http.MethodPost, "/api/lobby/join", map[string]any{"code": code, "name": "ala"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Unknown lobby.
	w = doJSON(t, srv, http.MethodPost, "/api/lobby/join", map[string]any{"code": "00000000", "name": "Ewa"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Fill the lobby, then one more.
	w = doJSON(t, srv, http.MethodPost, "/api/lobby/join", map[string]any{"code": code, "name": "Jan"})
	require.Equal(t, http.StatusOK, w.Code)
	w = doJSON(t, srv, http.MethodPost, "/api/lobby/join", map[string]any{"code": code, "name": "Ewa"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStartAndRoleFlow(t *testing.T) {
	srv := newTestServer()
	code := createLobby(t, srv, "Ala", 5)

	// Role before start.
	w := doJSON(t, srv, http.MethodGet, "/api/lobby/role?code="+code+"&playerId=1", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Too few players.
	w = doJSON(t, srv, http.MethodPost, "/api/lobby/start", map[string]any{"code": code, "adminPassword": testPassword})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	for _, name := range []string{"Ola", "Jan"} {
		w = doJSON(t, srv, http.MethodPost, "/api/lobby/join", map[string]any{"code": code, "name": name})
		require.Equal(t, http.StatusOK, w.Code)
	}

	// Wrong password on start.
	w = doJSON(t, srv, http.MethodPost, "/api/lobby/start", map[string]any{"code": code, "adminPassword": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, srv, http.MethodPost, "/api/lobby/start", map[string]any{"code": code, "adminPassword": testPassword})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decode(t, w)["lobby"].(map[string]any)["started"])

	// Restart is rejected.
	w = doJSON(t, srv, http.MethodPost, "/api/lobby/start", map[string]any{"code": code, "adminPassword": testPassword})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Exactly one player sees word:null; the rest share one word.
	impostors, words := 0, map[string]int{}
	for _, id := range []string{"1", "2", "3"} {
		w = doJSON(t, srv, http.MethodGet, "/api/lobby/role?code="+code+"&playerId="+id, nil)
		require.Equal(t, http.StatusOK, w.Code)
		out := decode(t, w)
		if out["isImpostor"] == true {
			impostors++
			assert.Nil(t, out["word"])
		} else {
			words[out["word"].(string)]++
		}
	}
	assert.Equal(t, 1, impostors)
	assert.Len(t, words, 1)

	// Unknown player and malformed playerId: both resolve to no player.
	w = doJSON(t, srv, http.MethodGet, "/api/lobby/role?code="+code+"&playerId=99", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = doJSON(t, srv, http.MethodGet, "/api/lobby/role?code="+code+"&playerId=abc", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRolePrecedenceWithMalformedPlayerID(t *testing.T) {
	srv := newTestServer()

	// Unknown lobby wins over a malformed playerId.
	w := doJSON(t, srv, http.MethodGet, "/api/lobby/role?code=00000000&playerId=abc", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Not-started wins over a malformed playerId on a known lobby.
	code := createLobby(t, srv, "Ala", 5)
	w = doJSON(t, srv, http.MethodGet, "/api/lobby/role?code="+code+"&playerId=abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStatsDisabledWithoutHistory(t *testing.T) {
	srv := newTestServer()
	w := doJSON(t, srv, http.MethodGet, "/api/stats", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestJSON404(t *testing.T) {
	srv := newTestServer()
	w := doJSON(t, srv, http.MethodGet, "/api/nope", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, false, decode(t, w)["ok"])
}
