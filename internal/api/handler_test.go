package api

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/talentscout/intake/internal/ai"
	"github.com/talentscout/intake/internal/chatlog"
	"github.com/talentscout/intake/internal/engine"
	"github.com/talentscout/intake/internal/geo"
	"github.com/talentscout/intake/internal/session"
	"github.com/talentscout/intake/internal/store"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	repo, err := store.NewSQLite(filepath.Join(t.TempDir(), "intake.db"))
	if err != nil {
		t.Fatalf("NewSQLite failed: %v", err)
	}
	t.Cleanup(func() { _ = repo.Close() })

	eng := engine.New(session.NewManager(), geo.NewStaticLookup(), ai.NewStaticSource(), repo, nil)
	eng.SetPhrases(engine.FixedPhrases{})

	chatLog, err := chatlog.New(chatlog.Config{Enabled: false}, nil)
	if err != nil {
		t.Fatalf("chatlog.New failed: %v", err)
	}

	r := chi.NewRouter()
	NewHandler(eng, repo, chatLog).RegisterRoutes(r)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func postChat(t *testing.T, srv *httptest.Server, body string) *engine.Reply {
	t.Helper()

	resp, err := http.Post(srv.URL+"/chat", "application/json", bytes.NewBufferString(body))
	if err != nil {
		t.Fatalf("POST /chat failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var reply engine.Reply
	if err := json.NewDecoder(resp.Body).Decode(&reply); err != nil {
		t.Fatalf("failed to decode reply: %v", err)
	}
	return &reply
}

func TestChatConversationOverHTTP(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)

	first := postChat(t, srv, `{"message": "Hi"}`)
	if first.SessionID == "" {
		t.Fatal("expected a session id")
	}
	if first.Next != "full_name" {
		t.Errorf("expected next=full_name, got %q", first.Next)
	}

	id := first.SessionID
	reply := postChat(t, srv, `{"message": "Jane Doe", "session_id": "`+id+`"}`)
	if reply.Next != "email" {
		t.Errorf("expected next=email, got %q", reply.Next)
	}
	if reply.SessionID != id {
		t.Errorf("session id changed: %q -> %q", id, reply.SessionID)
	}

	reply = postChat(t, srv, `{"message": "nope", "session_id": "`+id+`"}`)
	if reply.Next != "email" {
		t.Errorf("expected re-prompt at email, got %q", reply.Next)
	}
}

func TestChatAcceptsTechStackList(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)

	first := postChat(t, srv, `{"message": "Hi"}`)
	id := first.SessionID

	for _, msg := range []string{"Jane Doe", "jane@x.com", "+1", "5551234567", "3", "Backend Engineer", "Austin", "560001", "yes"} {
		body, _ := json.Marshal(map[string]string{"message": msg, "session_id": id})
		postChat(t, srv, string(body))
	}

	reply := postChat(t, srv, `{"message": ["Python", "SQL"], "session_id": "`+id+`"}`)
	if reply.Next != "resume_upload" {
		t.Errorf("expected next=resume_upload for list message, got %q", reply.Next)
	}

	reply = postChat(t, srv, `{"message": "skip", "session_id": "`+id+`"}`)
	if reply.Next != "questions" || reply.Question == "" {
		t.Errorf("expected first question, got next=%q question=%q", reply.Next, reply.Question)
	}
}

func TestChatRejectsBadBody(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)

	resp, err := http.Post(srv.URL+"/chat", "application/json", bytes.NewBufferString("{not json"))
	if err != nil {
		t.Fatalf("POST failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", resp.StatusCode)
	}

	resp, err = http.Post(srv.URL+"/chat", "application/json", bytes.NewBufferString(`{"message": 42}`))
	if err != nil {
		t.Fatalf("POST failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400 for numeric message, got %d", resp.StatusCode)
	}
}

func TestEndEndpoint(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)

	first := postChat(t, srv, `{"message": "Hi"}`)

	resp, err := http.Post(srv.URL+"/end", "application/json",
		bytes.NewBufferString(`{"session_id": "`+first.SessionID+`"}`))
	if err != nil {
		t.Fatalf("POST /end failed: %v", err)
	}
	defer resp.Body.Close()

	var reply engine.Reply
	if err := json.NewDecoder(resp.Body).Decode(&reply); err != nil {
		t.Fatalf("failed to decode reply: %v", err)
	}
	if reply.Next != "done" {
		t.Errorf("expected done, got %q", reply.Next)
	}

	// The old id now starts a fresh conversation.
	again := postChat(t, srv, `{"message": "Hi", "session_id": "`+first.SessionID+`"}`)
	if again.SessionID == first.SessionID {
		t.Error("expected a fresh session after end")
	}
}

func TestPrivacyNotice(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/privacy")
	if err != nil {
		t.Fatalf("GET /privacy failed: %v", err)
	}
	defer resp.Body.Close()

	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if body["notice"] == "" {
		t.Error("expected a privacy notice")
	}
}

func TestScreeningsEndpoint(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/screenings")
	if err != nil {
		t.Fatalf("GET /screenings failed: %v", err)
	}
	defer resp.Body.Close()

	var body struct {
		Count int `json:"count"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if body.Count != 0 {
		t.Errorf("expected no screenings yet, got %d", body.Count)
	}

	resp, err = http.Get(srv.URL + "/screenings?limit=bogus")
	if err != nil {
		t.Fatalf("GET failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400 for bad limit, got %d", resp.StatusCode)
	}
}

func TestUploadResumeRejectsNonPDF(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("resume", "resume.docx")
	if err != nil {
		t.Fatalf("CreateFormFile failed: %v", err)
	}
	if _, err := part.Write([]byte("not a pdf")); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	mw.Close()

	resp, err := http.Post(srv.URL+"/upload_resume", mw.FormDataContentType(), &buf)
	if err != nil {
		t.Fatalf("POST /upload_resume failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400 for non-PDF, got %d", resp.StatusCode)
	}
}

func TestUploadResumeRequiresFile(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	mw.Close()

	resp, err := http.Post(srv.URL+"/upload_resume", mw.FormDataContentType(), &buf)
	if err != nil {
		t.Fatalf("POST /upload_resume failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400 for missing file, got %d", resp.StatusCode)
	}
}

func TestJSONHelper(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	JSON(w, http.StatusOK, map[string]string{"foo": "bar"})

	resp := w.Result()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected status 200, got %d", resp.StatusCode)
	}
	var got map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if got["foo"] != "bar" {
		t.Errorf("expected foo=bar, got %v", got["foo"])
	}
}
