package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"storeit/config"
)

// Canned identifiers the fake hands out
const (
	fakeAccountID     = "acct-1"
	fakeSessionID     = "sess-1"
	fakeSessionSecret = "session-secret"
	fakePasscode      = "123456"
)

// fakeAppwrite emulates the handful of Appwrite endpoints the app
// consumes, with switches to make individual calls fail.
type fakeAppwrite struct {
	srv *httptest.Server

	mu          sync.Mutex
	userDocs    []map[string]any
	fileDocs    map[string]map[string]any
	blobs       map[string][]byte
	deletedBlob []string
	emailTokens int
	sessions    map[string]string // secret -> account id

	failCreateFileDoc bool
	failDeleteFileDoc bool
}

func newFakeAppwrite(t *testing.T) *fakeAppwrite {
	f := &fakeAppwrite{
		fileDocs: map[string]map[string]any{},
		blobs:    map[string][]byte{},
		sessions: map[string]string{},
	}

	mux := http.NewServeMux()

	mux.HandleFunc("POST /account/tokens/email", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.emailTokens++
		f.mu.Unlock()

		writeJSON(w, http.StatusCreated, map[string]any{
			"$id":    "tok-1",
			"userId": fakeAccountID,
		})
	})

	mux.HandleFunc("POST /account/sessions/token", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			UserID string `json:"userId"`
			Secret string `json:"secret"`
		}
		json.NewDecoder(r.Body).Decode(&body)

		if body.Secret != fakePasscode {
			writeError(w, http.StatusUnauthorized, "user_invalid_token", "Invalid token passed in the request")
			return
		}

		f.mu.Lock()
		f.sessions[fakeSessionSecret] = body.UserID
		f.mu.Unlock()

		writeJSON(w, http.StatusCreated, map[string]any{
			"$id":    fakeSessionID,
			"userId": body.UserID,
			"secret": fakeSessionSecret,
		})
	})

	mux.HandleFunc("GET /account", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		accountID, ok := f.sessions[r.Header.Get("X-Appwrite-Session")]
		f.mu.Unlock()

		if !ok {
			writeError(w, http.StatusUnauthorized, "general_unauthorized_scope", "User (role: guests) missing scope (account)")
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"$id":   accountID,
			"email": "owner@example.com",
		})
	})

	mux.HandleFunc("DELETE /account/sessions/current", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		delete(f.sessions, r.Header.Get("X-Appwrite-Session"))
		f.mu.Unlock()

		w.WriteHeader(http.StatusNoContent)
	})

	mux.HandleFunc("GET /databases/{db}/collections/{col}/documents", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()

		var docs []map[string]any
		if r.PathValue("col") == "users" {
			docs = f.userDocs
		} else {
			for _, d := range f.fileDocs {
				docs = append(docs, d)
			}
		}

		docs = applyEqualFilters(docs, r.URL.Query()["queries[]"])

		writeJSON(w, http.StatusOK, map[string]any{
			"total":     len(docs),
			"documents": docs,
		})
	})

	mux.HandleFunc("POST /databases/{db}/collections/{col}/documents", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			DocumentID string         `json:"documentId"`
			Data       map[string]any `json:"data"`
		}
		json.NewDecoder(r.Body).Decode(&body)

		f.mu.Lock()
		defer f.mu.Unlock()

		if r.PathValue("col") == "files" && f.failCreateFileDoc {
			writeError(w, http.StatusInternalServerError, "general_unknown", "Internal server error")
			return
		}

		doc := body.Data
		doc["$id"] = body.DocumentID
		now := time.Now().UTC().Format(time.RFC3339)
		doc["$createdAt"] = now
		doc["$updatedAt"] = now

		if r.PathValue("col") == "users" {
			f.userDocs = append(f.userDocs, doc)
		} else {
			f.fileDocs[body.DocumentID] = doc
		}

		writeJSON(w, http.StatusCreated, doc)
	})

	mux.HandleFunc("PATCH /databases/{db}/collections/{col}/documents/{id}", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Data map[string]any `json:"data"`
		}
		json.NewDecoder(r.Body).Decode(&body)

		f.mu.Lock()
		defer f.mu.Unlock()

		doc, ok := f.fileDocs[r.PathValue("id")]
		if !ok {
			writeError(w, http.StatusNotFound, "document_not_found", "Document with the requested ID could not be found")
			return
		}

		for k, v := range body.Data {
			doc[k] = v
		}
		doc["$updatedAt"] = time.Now().UTC().Format(time.RFC3339)

		writeJSON(w, http.StatusOK, doc)
	})

	mux.HandleFunc("DELETE /databases/{db}/collections/{col}/documents/{id}", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()

		if f.failDeleteFileDoc {
			writeError(w, http.StatusInternalServerError, "general_unknown", "Internal server error")
			return
		}

		if _, ok := f.fileDocs[r.PathValue("id")]; !ok {
			writeError(w, http.StatusNotFound, "document_not_found", "Document with the requested ID could not be found")
			return
		}

		delete(f.fileDocs, r.PathValue("id"))
		w.WriteHeader(http.StatusNoContent)
	})

	mux.HandleFunc("POST /storage/buckets/{bucket}/files", func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(32 << 20); err != nil {
			writeError(w, http.StatusBadRequest, "general_bad_request", err.Error())
			return
		}

		fileID := r.FormValue("fileId")
		file, header, err := r.FormFile("file")
		if err != nil {
			writeError(w, http.StatusBadRequest, "general_bad_request", err.Error())
			return
		}
		defer file.Close()

		data, _ := io.ReadAll(file)

		f.mu.Lock()
		f.blobs[fileID] = data
		f.mu.Unlock()

		writeJSON(w, http.StatusCreated, map[string]any{
			"$id":          fileID,
			"name":         header.Filename,
			"sizeOriginal": len(data),
		})
	})

	mux.HandleFunc("DELETE /storage/buckets/{bucket}/files/{id}", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		delete(f.blobs, r.PathValue("id"))
		f.deletedBlob = append(f.deletedBlob, r.PathValue("id"))
		f.mu.Unlock()

		w.WriteHeader(http.StatusNoContent)
	})

	f.srv = httptest.NewServer(mux)
	t.Cleanup(f.srv.Close)

	return f
}

// seedUser registers the canonical logged-in user and its session.
func (f *fakeAppwrite) seedUser() {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.sessions[fakeSessionSecret] = fakeAccountID
	f.userDocs = append(f.userDocs, map[string]any{
		"$id":       "user-1",
		"fullName":  "Owner One",
		"email":     "owner@example.com",
		"avatar":    "https://example.com/avatar",
		"accountId": fakeAccountID,
	})
}

func (f *fakeAppwrite) seedFile(id string, doc map[string]any) {
	f.mu.Lock()
	defer f.mu.Unlock()

	doc["$id"] = id
	if _, ok := doc["$updatedAt"]; !ok {
		doc["$updatedAt"] = time.Now().UTC().Format(time.RFC3339)
	}
	f.fileDocs[id] = doc
}

// applyEqualFilters honors top-level equal queries so user lookups by
// email/accountId and owned-file listings behave. Everything else (or,
// contains, ordering) is the unit under test on the client side, not
// re-implemented here.
func applyEqualFilters(docs []map[string]any, rawQueries []string) []map[string]any {
	for _, raw := range rawQueries {
		var q struct {
			Method    string `json:"method"`
			Attribute string `json:"attribute"`
			Values    []any  `json:"values"`
		}
		if err := json.Unmarshal([]byte(raw), &q); err != nil {
			continue
		}
		if q.Method != "equal" || len(q.Values) != 1 {
			continue
		}

		var kept []map[string]any
		for _, d := range docs {
			if fmt.Sprint(d[q.Attribute]) == fmt.Sprint(q.Values[0]) {
				kept = append(kept, d)
			}
		}
		docs = kept
	}

	return docs
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, code int, errType, message string) {
	writeJSON(w, code, map[string]any{
		"code":    code,
		"type":    errType,
		"message": message,
	})
}

func newTestAPI(t *testing.T, fake *fakeAppwrite) *API {
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		LogLevel:    "error",
		Port:        0,
		CORSOrigins: []string{"http://localhost:3000"},
		Appwrite: config.Appwrite{
			Endpoint:          fake.srv.URL,
			ProjectID:         "proj",
			DatabaseID:        "db",
			UsersCollectionID: "users",
			FilesCollectionID: "files",
			BucketID:          "bucket",
			SecretKey:         "admin-key",
		},
		StorageType:   "appwrite",
		Capacity:      2 << 30,
		UploadMaxSize: 10 << 20,
		CookieName:    "appwrite-session",
		CookieSecure:  false,
		SignInPath:    "/sign-in",
	}

	a, err := NewRouter(cfg)
	require.NoError(t, err)

	return a
}

func sessionCookie() *http.Cookie {
	return &http.Cookie{Name: "appwrite-session", Value: fakeSessionSecret}
}
