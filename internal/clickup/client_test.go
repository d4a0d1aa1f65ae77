package clickup

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testServer(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// The real API responds with JSON; without this header resty
		// skips unmarshalling into SetResult targets.
		w.Header().Set("Content-Type", "application/json")
		handler(w, r)
	}))
	t.Cleanup(srv.Close)
	return newClient("pk_test", srv.URL)
}

func TestGetTask(t *testing.T) {
	cl := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "pk_test", r.Header.Get("Authorization"))
		assert.NotEmpty(t, r.Header.Get("X-Request-Id"))
		if r.URL.Path != "/task/abc123" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		json.NewEncoder(w).Encode(Task{ID: "abc123", Name: "Test"})
	})

	task, found, err := cl.GetTask("abc123")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "Test", task.Name)

	_, found, err = cl.GetTask("missing")
	require.NoError(t, err, "a negative probe is not an error")
	assert.False(t, found)
}

func TestCreateTask(t *testing.T) {
	cl := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/list/list1/task", r.URL.Path)
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Test", body["name"])
		json.NewEncoder(w).Encode(Task{ID: "abc123", Name: "Test"})
	})

	task, err := cl.CreateTask("list1", map[string]any{"name": "Test"})

	require.NoError(t, err)
	assert.Equal(t, "abc123", task.ID)
}

func TestCreateTask_ServerError(t *testing.T) {
	cl := testServer(t, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"err":"Team not authorized","ECODE":"OAUTH_027"}`, http.StatusUnauthorized)
	})

	_, err := cl.CreateTask("list1", map[string]any{"name": "Test"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "error creating task")
}

func TestUpdateTask(t *testing.T) {
	cl := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/task/abc123", r.URL.Path)
		json.NewEncoder(w).Encode(Task{ID: "abc123", Name: "Renamed"})
	})

	task, err := cl.UpdateTask("abc123", map[string]any{"name": "Renamed"})

	require.NoError(t, err)
	assert.Equal(t, "Renamed", task.Name)
}

func TestGetListStatuses(t *testing.T) {
	cl := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/list/list1", r.URL.Path)
		json.NewEncoder(w).Encode(List{
			ID:    "list1",
			Space: SpaceRef{ID: "space1"},
			Statuses: []Status{
				{Status: "to do", OrderIndex: 0},
				{Status: "done", OrderIndex: 1},
			},
		})
	})

	statuses, err := cl.GetListStatuses("list1")

	require.NoError(t, err)
	require.Len(t, statuses, 2)
	assert.Equal(t, "to do", statuses[0].Status)
	assert.Equal(t, 1, statuses[1].OrderIndex)
}

func TestGetListFields(t *testing.T) {
	cl := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/list/list1/field", r.URL.Path)
		io.WriteString(w, `{"fields":[{"id":"f1","name":"Severity","type":"drop_down"}]}`)
	})

	fields, err := cl.GetListFields("list1")

	require.NoError(t, err)
	require.Len(t, fields, 1)
	assert.Equal(t, "f1", fields[0].ID)
	assert.Equal(t, "Severity", fields[0].Name)
}

func TestGetSpaceTags(t *testing.T) {
	cl := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/space/space1/tag", r.URL.Path)
		io.WriteString(w, `{"tags":[{"name":"urgent"},{"name":"later"}]}`)
	})

	tags, err := cl.GetSpaceTags("space1")

	require.NoError(t, err)
	require.Len(t, tags, 2)
	assert.Equal(t, "urgent", tags[0].Name)
}

func TestFindListID(t *testing.T) {
	cl := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/space/space1/list":
			io.WriteString(w, `{"lists":[{"id":"l1","name":"Backlog"},{"id":"l2","name":"Sprint"}]}`)
		case "/folder/folder1/list":
			io.WriteString(w, `{"lists":[{"id":"l3","name":"Archive"}]}`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	id, err := cl.FindListID("space1", "Sprint", "")
	require.NoError(t, err)
	assert.Equal(t, "l2", id)

	id, err = cl.FindListID("", "Archive", "folder1")
	require.NoError(t, err)
	assert.Equal(t, "l3", id)

	_, err = cl.FindListID("space1", "Nope", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no list named")
}

func TestListTasks(t *testing.T) {
	cl := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/list/list1/task", r.URL.Path)
		io.WriteString(w, `{"tasks":[{"id":"t1","name":"one"},{"id":"t2","name":"two"}]}`)
	})

	tasks, err := cl.ListTasks("list1")

	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, "t2", tasks[1].ID)
}

func TestUploadAttachment(t *testing.T) {
	cl := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/task/abc123/attachment", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))
		file, header, err := r.FormFile("attachment")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "report.pdf", header.Filename)
		data, err := io.ReadAll(file)
		require.NoError(t, err)
		assert.Equal(t, "data", string(data))
		w.WriteHeader(http.StatusOK)
	})

	err := cl.UploadAttachment("abc123", "report.pdf", strings.NewReader("data"))

	assert.NoError(t, err)
}

func TestUploadAttachment_TaskMissing(t *testing.T) {
	cl := testServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	err := cl.UploadAttachment("missing", "report.pdf", strings.NewReader("data"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}
