package integration

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTodoLifecycle(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	token := registerUser(t, app, "a@example.com", "secret123")

	created := createTodo(t, app, token, "buy milk")
	assert.Equal(t, "buy milk", created["text"])
	assert.Equal(t, false, created["completed"])
	assert.Nil(t, created["completedAt"])
	todoID, ok := created["id"].(string)
	require.True(t, ok)

	// List
	resp := app.doJSON(t, http.MethodGet, "/todos", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "OK", body["status"])
	todos, ok := body["todos"].([]any)
	require.True(t, ok)
	require.Len(t, todos, 1)
	assert.Equal(t, "buy milk", todos[0].(map[string]any)["text"])

	// Read one
	resp = app.doJSON(t, http.MethodGet, "/todos/"+todoID, token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body = decodeBody(t, resp)
	assert.Equal(t, "OK", body["status"])
	assert.Equal(t, todoID, body["todo"].(map[string]any)["id"])

	// Complete it
	resp = app.doJSON(t, http.MethodPatch, "/todos/"+todoID, token, map[string]any{"completed": true})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body = decodeBody(t, resp)
	todo := body["todo"].(map[string]any)
	assert.Equal(t, true, todo["completed"])
	assert.NotNil(t, todo["completedAt"])

	// Un-complete it
	resp = app.doJSON(t, http.MethodPatch, "/todos/"+todoID, token, map[string]any{"completed": false})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body = decodeBody(t, resp)
	todo = body["todo"].(map[string]any)
	assert.Equal(t, false, todo["completed"])
	assert.Nil(t, todo["completedAt"])

	// Delete
	resp = app.doJSON(t, http.MethodDelete, "/todos/"+todoID, token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body = decodeBody(t, resp)
	assert.Equal(t, "OK", body["status"])
	assert.Equal(t, todoID, body["deletedTodo"].(map[string]any)["id"])

	// Gone
	resp = app.doJSON(t, http.MethodGet, "/todos/"+todoID, token, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestTodoCreateValidation(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	token := registerUser(t, app, "a@example.com", "secret123")

	for _, text := range []string{"", "   "} {
		resp := app.doJSON(t, http.MethodPost, "/todos", token, map[string]string{"text": text})
		resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	}
}

func TestTodoOwnershipIsolation(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	aliceToken := registerUser(t, app, "alice@example.com", "secret123")
	bobToken := registerUser(t, app, "bob@example.com", "secret123")

	aliceTodo := createTodo(t, app, aliceToken, "alice's secret todo")
	createTodo(t, app, bobToken, "bob's todo")

	// Bob's list never includes Alice's todo.
	resp := app.doJSON(t, http.MethodGet, "/todos", bobToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	todos := body["todos"].([]any)
	require.Len(t, todos, 1)
	assert.Equal(t, "bob's todo", todos[0].(map[string]any)["text"])

	// Alice's todo looks missing to Bob, not forbidden.
	aliceTodoID := aliceTodo["id"].(string)
	for _, method := range []string{http.MethodGet, http.MethodDelete, http.MethodPatch} {
		resp := app.doJSON(t, method, "/todos/"+aliceTodoID, bobToken, map[string]any{"completed": true})
		resp.Body.Close()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode, "method %s", method)
	}

	// And is untouched for Alice.
	resp = app.doJSON(t, http.MethodGet, "/todos/"+aliceTodoID, aliceToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body = decodeBody(t, resp)
	assert.Equal(t, false, body["todo"].(map[string]any)["completed"])
}

func TestTodoMalformedIDVsMissingID(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	token := registerUser(t, app, "a@example.com", "secret123")

	// Structurally invalid id is a client error before any lookup.
	for _, method := range []string{http.MethodGet, http.MethodDelete, http.MethodPatch} {
		resp := app.doJSON(t, method, "/todos/123", token, map[string]any{"completed": true})
		resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "method %s", method)
	}

	// Well-formed but unknown id is not found.
	missingID := uuid.NewString()
	for _, method := range []string{http.MethodGet, http.MethodDelete, http.MethodPatch} {
		resp := app.doJSON(t, method, "/todos/"+missingID, token, map[string]any{"completed": true})
		resp.Body.Close()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode, "method %s", method)
	}
}
