package directory_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go-employee/internal/directory"
	"go-employee/internal/eventbus"
	"go-employee/internal/events"
	"go-employee/internal/shared/apperror"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func newClientBus(t *testing.T, server *httptest.Server, creds directory.CredentialProvider) (*directory.APIClient, *[]events.ChangeEvent) {
	t.Helper()

	bus := eventbus.New(eventbus.WithLogger(zap.NewNop()))
	published := &[]events.ChangeEvent{}
	bus.Subscribe(events.EmployeesKey, func(ev eventbus.Event) {
		if change, ok := ev.Value.(events.ChangeEvent); ok {
			*published = append(*published, change)
		}
	})

	client := directory.NewAPIClient(directory.APIClientConfig{
		BaseURL:     server.URL,
		Credentials: creds,
	}, bus, zap.NewNop())

	return client, published
}

func TestAPIClient_ListEmployees(t *testing.T) {
	ctx := context.Background()

	t.Run("success with backend pagination", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/employees", r.URL.Path)
			assert.Equal(t, "an", r.URL.Query().Get("name"))
			assert.Equal(t, "div-004", r.URL.Query().Get("division_id"))
			assert.Equal(t, "2", r.URL.Query().Get("page"))
			assert.Equal(t, "6", r.URL.Query().Get("limit"))
			assert.Equal(t, "Bearer token-abc", r.Header.Get("Authorization"))

			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{
				"status": "success",
				"message": "Data karyawan berhasil diambil",
				"data": {"employees": [
					{"id":"emp-001","name":"Akbar Ryyan Saputra","phone":"081234567890",
					 "division":{"id":"div-004","name":"Backend"},"position":"Backend Developer"}
				]},
				"pagination": {"current_page":2,"last_page":2,"per_page":6,"total":7,"from":7,"to":7}
			}`))
		}))
		defer server.Close()

		client, published := newClientBus(t, server, directory.StaticCredential("token-abc"))

		result, err := client.ListEmployees(ctx,
			directory.Filter{Name: "an", DivisionID: "div-004"},
			directory.PageRequest{Page: 2, Limit: 6},
		)

		assert.NoError(t, err)
		assert.Len(t, result.Items, 1)
		assert.Equal(t, "Akbar Ryyan Saputra", result.Items[0].Name)
		assert.Equal(t, "Backend", result.Items[0].Division.Name)
		assert.Equal(t, 2, result.CurrentPage)
		assert.Equal(t, 2, result.LastPage)
		assert.Equal(t, 6, result.PerPage)
		assert.Equal(t, int64(7), result.Total)
		assert.Equal(t, 7, result.From)
		assert.Equal(t, 7, result.To)

		// list adalah operasi baca, tidak boleh ada publish
		assert.Empty(t, *published)
	})

	t.Run("missing pagination fields are computed", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{
				"status": "success",
				"message": "ok",
				"data": {"employees": [
					{"id":"emp-001","name":"A"},
					{"id":"emp-002","name":"B"},
					{"id":"emp-003","name":"C"}
				]},
				"pagination": {"total": 13}
			}`))
		}))
		defer server.Close()

		client, _ := newClientBus(t, server, nil)

		result, err := client.ListEmployees(ctx, directory.Filter{}, directory.PageRequest{Page: 2, Limit: 5})

		assert.NoError(t, err)
		assert.Equal(t, 2, result.CurrentPage)
		assert.Equal(t, 5, result.PerPage)
		assert.Equal(t, int64(13), result.Total)
		assert.Equal(t, 3, result.LastPage) // ceil(13/5)
		assert.Equal(t, 6, result.From)
		assert.Equal(t, 8, result.To)
	})

	t.Run("empty result never reports bounds", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"status":"success","message":"ok","data":{"employees":[]},
				"pagination":{"current_page":1,"per_page":10,"total":0}}`))
		}))
		defer server.Close()

		client, _ := newClientBus(t, server, nil)

		result, err := client.ListEmployees(ctx, directory.Filter{Name: "zzz"}, directory.PageRequest{})

		assert.NoError(t, err)
		assert.NotNil(t, result.Items)
		assert.Empty(t, result.Items)
		assert.Equal(t, int64(0), result.Total)
		assert.Equal(t, 1, result.LastPage)
		assert.Equal(t, 0, result.From)
		assert.Equal(t, 0, result.To)
	})

	t.Run("page request is normalized before the call", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "1", r.URL.Query().Get("page"))
			assert.Equal(t, "10", r.URL.Query().Get("limit"))
			w.Write([]byte(`{"status":"success","data":{"employees":[]}}`))
		}))
		defer server.Close()

		client, _ := newClientBus(t, server, nil)

		_, err := client.ListEmployees(ctx, directory.Filter{}, directory.PageRequest{Page: -1, Limit: 0})
		assert.NoError(t, err)
	})
}

func TestAPIClient_FailureTaxonomy(t *testing.T) {
	ctx := context.Background()

	serverWith := func(status int, body string) *httptest.Server {
		return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(status)
			w.Write([]byte(body))
		}))
	}

	t.Run("401 is unauthorized with server message", func(t *testing.T) {
		server := serverWith(http.StatusUnauthorized,
			`{"status":"error","message":"Token sudah kedaluwarsa"}`)
		defer server.Close()

		client, _ := newClientBus(t, server, nil)

		_, err := client.ListEmployees(ctx, directory.Filter{}, directory.PageRequest{})

		assert.True(t, apperror.IsUnauthorized(err))
		assert.Contains(t, err.Error(), "Token sudah kedaluwarsa")
	})

	t.Run("404 is not found", func(t *testing.T) {
		server := serverWith(http.StatusNotFound,
			`{"status":"error","message":"Karyawan tidak ditemukan"}`)
		defer server.Close()

		client, published := newClientBus(t, server, nil)

		err := client.DeleteEmployee(ctx, "emp-404")

		assert.True(t, apperror.IsNotFound(err))
		assert.Contains(t, err.Error(), "Karyawan tidak ditemukan")
		assert.Empty(t, *published)
	})

	t.Run("422 is invalid input", func(t *testing.T) {
		server := serverWith(http.StatusUnprocessableEntity,
			`{"status":"error","message":"Phone is invalid"}`)
		defer server.Close()

		client, published := newClientBus(t, server, nil)

		_, err := client.CreateEmployee(ctx, directory.EmployeeInput{
			Name: "X", Phone: "abc", Division: "div-001", Position: "Dev",
		})

		assert.True(t, apperror.IsInvalidInput(err))
		assert.Empty(t, *published)
	})

	t.Run("500 is an unknown failure", func(t *testing.T) {
		server := serverWith(http.StatusInternalServerError,
			`{"status":"error","message":"boom"}`)
		defer server.Close()

		client, _ := newClientBus(t, server, nil)

		_, err := client.ListEmployees(ctx, directory.Filter{}, directory.PageRequest{})
		assert.Equal(t, apperror.CodeInternalError, apperror.CodeOf(err))
	})

	t.Run("unreachable server is an unknown failure", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		server.Close() // langsung ditutup: semua request akan gagal di transport

		client, published := newClientBus(t, server, nil)

		_, err := client.ListEmployees(ctx, directory.Filter{}, directory.PageRequest{})

		assert.Equal(t, apperror.CodeInternalError, apperror.CodeOf(err))
		assert.Contains(t, err.Error(), "Tidak dapat menghubungi server")
		assert.Empty(t, *published)
	})

	t.Run("timeout is an unknown failure", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(200 * time.Millisecond)
		}))
		defer server.Close()

		bus := eventbus.New(eventbus.WithLogger(zap.NewNop()))
		client := directory.NewAPIClient(directory.APIClientConfig{
			BaseURL: server.URL,
			Timeout: 20 * time.Millisecond,
		}, bus, zap.NewNop())

		_, err := client.ListEmployees(ctx, directory.Filter{}, directory.PageRequest{})
		assert.Equal(t, apperror.CodeInternalError, apperror.CodeOf(err))
	})

	t.Run("malformed success payload is an unknown failure", func(t *testing.T) {
		server := serverWith(http.StatusOK, `<!doctype html><html>`)
		defer server.Close()

		client, _ := newClientBus(t, server, nil)

		_, err := client.ListEmployees(ctx, directory.Filter{}, directory.PageRequest{})

		assert.Equal(t, apperror.CodeInternalError, apperror.CodeOf(err))
		assert.Contains(t, err.Error(), "Respons server tidak dikenali")
	})

	t.Run("error status in a 200 envelope is still a failure", func(t *testing.T) {
		server := serverWith(http.StatusOK, `{"status":"error","message":"ada masalah"}`)
		defer server.Close()

		client, _ := newClientBus(t, server, nil)

		_, err := client.ListEmployees(ctx, directory.Filter{}, directory.PageRequest{})
		assert.Error(t, err)
	})
}

func TestAPIClient_CreateEmployee(t *testing.T) {
	ctx := context.Background()

	t.Run("success publishes one created event", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/employees", r.URL.Path)

			var body map[string]string
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "Dewi Lestari", body["name"])
			assert.Equal(t, "div-002", body["division"])

			w.WriteHeader(http.StatusCreated)
			w.Write([]byte(`{"status":"success","message":"Karyawan berhasil ditambahkan",
				"data":{"employee":{"id":"emp-007","name":"Dewi Lestari"}}}`))
		}))
		defer server.Close()

		client, published := newClientBus(t, server, nil)

		id, err := client.CreateEmployee(ctx, directory.EmployeeInput{
			Name:     "Dewi Lestari",
			Phone:    "081234567896",
			Division: "div-002",
			Position: "QA Engineer",
		})

		assert.NoError(t, err)
		assert.Equal(t, "emp-007", id)
		assert.Len(t, *published, 1)
		assert.Equal(t, "created", (*published)[0].EventType)
		assert.Equal(t, "emp-007", (*published)[0].ResourceID)
	})

	t.Run("missing field is rejected without a round-trip", func(t *testing.T) {
		requests := 0
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requests++
		}))
		defer server.Close()

		client, published := newClientBus(t, server, nil)

		_, err := client.CreateEmployee(ctx, directory.EmployeeInput{
			Name: "  ", Phone: "0812", Division: "div-001", Position: "Dev",
		})

		assert.True(t, apperror.IsInvalidInput(err))
		assert.Contains(t, err.Error(), "Name is required")
		assert.Equal(t, 0, requests)
		assert.Empty(t, *published)
	})
}

func TestAPIClient_UpdateEmployee(t *testing.T) {
	ctx := context.Background()

	t.Run("sends only provided fields", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPut, r.Method)
			assert.Equal(t, "/employees/emp-003", r.URL.Path)

			var body map[string]string
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, map[string]string{"name": "Budi Hartono"}, body)

			w.Write([]byte(`{"status":"success","message":"Karyawan berhasil diupdate","data":{}}`))
		}))
		defer server.Close()

		client, published := newClientBus(t, server, nil)

		name := "Budi Hartono"
		err := client.UpdateEmployee(ctx, "emp-003", directory.EmployeeUpdate{Name: &name})

		assert.NoError(t, err)
		assert.Len(t, *published, 1)
		assert.Equal(t, "updated", (*published)[0].EventType)
		assert.Equal(t, "emp-003", (*published)[0].ResourceID)
	})

	t.Run("blank id is not found", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		defer server.Close()

		client, _ := newClientBus(t, server, nil)

		err := client.UpdateEmployee(ctx, "  ", directory.EmployeeUpdate{})
		assert.True(t, apperror.IsNotFound(err))
	})
}

func TestAPIClient_DeleteEmployee(t *testing.T) {
	ctx := context.Background()

	t.Run("success publishes one deleted event", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodDelete, r.Method)
			assert.Equal(t, "/employees/emp-005", r.URL.Path)
			w.Write([]byte(`{"status":"success","message":"Karyawan berhasil dihapus"}`))
		}))
		defer server.Close()

		client, published := newClientBus(t, server, nil)

		assert.NoError(t, client.DeleteEmployee(ctx, "emp-005"))
		assert.Len(t, *published, 1)
		assert.Equal(t, "deleted", (*published)[0].EventType)
	})
}
