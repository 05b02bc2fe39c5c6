package database

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"vibeforge-server/modules/common/apperr"
)

// newFakeClient - httptest 서버를 바라보는 DB 클라이언트 생성
func newFakeClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClientWithURL(server.URL, "test-service-key")
	if err != nil {
		t.Fatalf("DB 클라이언트 생성 실패: %v", err)
	}
	return client, server
}

func writeRows(w http.ResponseWriter, rows string) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Range", "0-0/1")
	w.Write([]byte(rows))
}

func TestListTracksOrdering(t *testing.T) {
	var gotOrder string
	client, _ := newFakeClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/tracks") {
			t.Errorf("예상치 못한 경로: %s", r.URL.Path)
		}
		gotOrder = r.URL.Query().Get("order")
		writeRows(w, `[
			{"id":"t2","title":"Midnight City","created_at":"2026-02-01T00:00:00Z","updated_at":"2026-02-01T00:00:00Z"},
			{"id":"t1","title":"Neon Highway","created_at":"2026-01-01T00:00:00Z","updated_at":"2026-01-01T00:00:00Z"}
		]`)
	}))

	tracks, err := client.ListTracks()
	if err != nil {
		t.Fatalf("ListTracks 실패: %v", err)
	}

	if !strings.Contains(gotOrder, "created_at.desc") {
		t.Errorf("order 파라미터에 created_at.desc 누락: %q", gotOrder)
	}
	if len(tracks) != 2 {
		t.Fatalf("트랙 수 = %d, 기대값 2", len(tracks))
	}
	if tracks[0].ID != "t2" || tracks[1].ID != "t1" {
		t.Errorf("최신순 정렬 불일치: %s, %s", tracks[0].ID, tracks[1].ID)
	}
}

func TestGetCharacterNotFound(t *testing.T) {
	client, _ := newFakeClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.URL.RawQuery, "id=eq.missing") {
			t.Errorf("id 필터 누락: %s", r.URL.RawQuery)
		}
		writeRows(w, `[]`)
	}))

	_, err := client.GetCharacter("missing")
	var nfErr *apperr.NotFoundError
	if !errors.As(err, &nfErr) {
		t.Fatalf("NotFoundError 기대, 실제: %v", err)
	}
	if nfErr.Resource != "character" || nfErr.ID != "missing" {
		t.Errorf("NotFound 내용 불일치: %+v", nfErr)
	}
}

func TestUpdateTrackNotFound(t *testing.T) {
	client, _ := newFakeClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "PATCH" {
			t.Errorf("method = %s, 기대값 PATCH", r.Method)
		}
		writeRows(w, `[]`)
	}))

	_, err := client.UpdateTrack("missing", map[string]interface{}{"title": "x", "updated_at": "now()"})
	var nfErr *apperr.NotFoundError
	if !errors.As(err, &nfErr) {
		t.Fatalf("NotFoundError 기대, 실제: %v", err)
	}
}

func TestDeleteVideo(t *testing.T) {
	t.Run("존재하는 행 삭제", func(t *testing.T) {
		client, _ := newFakeClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != "DELETE" {
				t.Errorf("method = %s, 기대값 DELETE", r.Method)
			}
			writeRows(w, `[{"id":"v1"}]`)
		}))

		if err := client.DeleteVideo("v1"); err != nil {
			t.Fatalf("DeleteVideo 실패: %v", err)
		}
	})

	t.Run("없는 행은 NotFound", func(t *testing.T) {
		client, _ := newFakeClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			writeRows(w, `[]`)
		}))

		err := client.DeleteVideo("missing")
		var nfErr *apperr.NotFoundError
		if !errors.As(err, &nfErr) {
			t.Fatalf("NotFoundError 기대, 실제: %v", err)
		}
	})
}

// characterStore - create→get→update→delete 왕복 검증용 인메모리 PostgREST 흉내
type characterStore struct {
	t    *testing.T
	rows map[string]map[string]interface{}
}

func (s *characterStore) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	idFilter := ""
	for _, part := range strings.Split(r.URL.RawQuery, "&") {
		if strings.HasPrefix(part, "id=eq.") {
			idFilter = strings.TrimPrefix(part, "id=eq.")
		}
	}

	switch r.Method {
	case "POST":
		var insert map[string]interface{}
		if err := json.NewDecoder(r.Body).Decode(&insert); err != nil {
			s.t.Fatalf("insert 바디 파싱 실패: %v", err)
		}
		insert["id"] = "c1"
		insert["created_at"] = "2026-01-01T00:00:00Z"
		insert["updated_at"] = "2026-01-01T00:00:00Z"
		s.rows["c1"] = insert
		s.respond(w, insert)
	case "PATCH":
		row, ok := s.rows[idFilter]
		if !ok {
			writeRows(w, `[]`)
			return
		}
		var patch map[string]interface{}
		if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
			s.t.Fatalf("patch 바디 파싱 실패: %v", err)
		}
		delete(patch, "updated_at")
		for k, v := range patch {
			row[k] = v
		}
		s.respond(w, row)
	case "DELETE":
		row, ok := s.rows[idFilter]
		if !ok {
			writeRows(w, `[]`)
			return
		}
		delete(s.rows, idFilter)
		s.respond(w, row)
	default:
		row, ok := s.rows[idFilter]
		if !ok {
			writeRows(w, `[]`)
			return
		}
		s.respond(w, row)
	}
}

func (s *characterStore) respond(w http.ResponseWriter, row map[string]interface{}) {
	data, _ := json.Marshal([]map[string]interface{}{row})
	writeRows(w, string(data))
}

func TestCharacterRoundTrip(t *testing.T) {
	store := &characterStore{t: t, rows: make(map[string]map[string]interface{})}
	client, _ := newFakeClient(t, store)

	created, err := client.CreateCharacter(map[string]interface{}{
		"name":         "네오",
		"style_prompt": "cyberpunk aesthetic",
	})
	if err != nil {
		t.Fatalf("CreateCharacter 실패: %v", err)
	}
	if created.ID == "" || created.Name != "네오" || created.StylePrompt != "cyberpunk aesthetic" {
		t.Errorf("생성 결과 불일치: %+v", created)
	}

	got, err := client.GetCharacter(created.ID)
	if err != nil {
		t.Fatalf("GetCharacter 실패: %v", err)
	}
	if got.Name != "네오" {
		t.Errorf("조회 결과 불일치: %s", got.Name)
	}

	updated, err := client.UpdateCharacter(created.ID, map[string]interface{}{
		"name":       "노바",
		"updated_at": "now()",
	})
	if err != nil {
		t.Fatalf("UpdateCharacter 실패: %v", err)
	}
	if updated.Name != "노바" || updated.StylePrompt != "cyberpunk aesthetic" {
		t.Errorf("부분 병합 결과 불일치: %+v", updated)
	}

	if err := client.DeleteCharacter(created.ID); err != nil {
		t.Fatalf("DeleteCharacter 실패: %v", err)
	}

	_, err = client.GetCharacter(created.ID)
	var nfErr *apperr.NotFoundError
	if !errors.As(err, &nfErr) {
		t.Fatalf("삭제 후 NotFoundError 기대, 실제: %v", err)
	}
}
