package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/ajitkumar0/Imagegenenerator-sub002/core"
)

func TestTextToImageEmptyPromptNeverSent(t *testing.T) {
	var requests atomic.Int32
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		w.Write([]byte(`{}`))
	})

	c := newTestClient(t, handler, nil)
	_, err := c.TextToImage(context.Background(), TextToImageRequest{Prompt: "   "})
	if err == nil {
		t.Fatal("TextToImage() should reject an empty prompt")
	}
	if !errors.Is(err, core.ErrPromptRequired) {
		t.Errorf("error = %v, want ErrPromptRequired", err)
	}
	if info := core.InfoFromError(err); info.Kind != core.KindValidation {
		t.Errorf("kind = %q, want %q", info.Kind, core.KindValidation)
	}
	if got := requests.Load(); got != 0 {
		t.Errorf("requests = %d, the call must never reach the network", got)
	}
}

func TestTextToImageSuccess(t *testing.T) {
	var gotBody map[string]any
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/generate/text-to-image" {
			t.Errorf("path = %q", r.URL.Path)
		}
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"generation_id":          "gen-9",
			"status":                 "queued",
			"message":                "Generation queued",
			"estimated_time_seconds": 5,
			"credits_deducted":       1,
		})
	})

	c := newTestClient(t, handler, nil)
	created, err := c.TextToImage(context.Background(), TextToImageRequest{
		Prompt: "a lighthouse at dusk",
		Model:  "flux-schnell",
	})
	if err != nil {
		t.Fatalf("TextToImage() error = %v", err)
	}

	if created.ID != "gen-9" {
		t.Errorf("ID = %q, want gen-9", created.ID)
	}
	if created.Status != StatusQueued {
		t.Errorf("Status = %q, want queued", created.Status)
	}
	if gotBody["prompt"] != "a lighthouse at dusk" {
		t.Errorf("request prompt = %v", gotBody["prompt"])
	}
}

func TestImageToImageSendsSourceReference(t *testing.T) {
	var gotBody map[string]any
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/generate/image-to-image" {
			t.Errorf("path = %q", r.URL.Path)
		}
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_ = json.NewEncoder(w).Encode(map[string]any{"generation_id": "gen-10", "status": "queued"})
	})

	c := newTestClient(t, handler, nil)
	_, err := c.ImageToImage(context.Background(), ImageToImageRequest{
		Prompt:        "make it watercolor",
		SourceImageID: "img-3",
		Strength:      0.6,
	})
	if err != nil {
		t.Fatalf("ImageToImage() error = %v", err)
	}
	if gotBody["source_image_id"] != "img-3" {
		t.Errorf("source_image_id = %v, want img-3", gotBody["source_image_id"])
	}
}

func TestUploadImageMultipart(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
			t.Errorf("Content-Type = %q, want multipart", r.Header.Get("Content-Type"))
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			t.Fatalf("FormFile() error = %v", err)
		}
		defer file.Close()

		if header.Filename != "sunset.png" {
			t.Errorf("filename = %q, want sunset.png", header.Filename)
		}
		content, _ := io.ReadAll(file)
		if string(content) != "png-bytes" {
			t.Errorf("file content = %q", content)
		}

		_ = json.NewEncoder(w).Encode(map[string]any{
			"id": "img-3", "filename": "sunset.png", "blob_url": "https://blob/img-3", "size_bytes": 9,
		})
	})

	c := newTestClient(t, handler, nil)
	result, err := c.UploadImage(context.Background(), "sunset.png", strings.NewReader("png-bytes"))
	if err != nil {
		t.Fatalf("UploadImage() error = %v", err)
	}
	if result.ID != "img-3" || result.SizeBytes != 9 {
		t.Errorf("result = %+v", result)
	}
}

func TestGenerationsListQuery(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("limit") != "20" || q.Get("offset") != "40" || q.Get("status") != "completed" {
			t.Errorf("query = %v", q)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"generations": []map[string]any{{"generation_id": "gen-1", "status": "completed"}},
			"total":       61, "page": 3, "page_size": 20,
		})
	})

	c := newTestClient(t, handler, nil)
	list, err := c.Generations(context.Background(), ListGenerationsOptions{
		Limit: 20, Offset: 40, Status: StatusCompleted,
	})
	if err != nil {
		t.Fatalf("Generations() error = %v", err)
	}
	if list.Total != 61 || len(list.Generations) != 1 {
		t.Errorf("list = %+v", list)
	}
}

func TestGenerationStatusWireAliases(t *testing.T) {
	tests := []struct {
		wire string
		want GenerationStatus
	}{
		{"pending", StatusQueued},
		{"processing", StatusRunning},
		{"queued", StatusQueued},
		{"running", StatusRunning},
		{"completed", StatusCompleted},
		{"failed", StatusFailed},
		{"cancelled", StatusCancelled},
	}

	for _, tt := range tests {
		t.Run(tt.wire, func(t *testing.T) {
			var g Generation
			payload := `{"generation_id":"g","status":"` + tt.wire + `"}`
			if err := json.Unmarshal([]byte(payload), &g); err != nil {
				t.Fatalf("Unmarshal() error = %v", err)
			}
			if g.Status != tt.want {
				t.Errorf("status = %q, want %q", g.Status, tt.want)
			}
		})
	}
}

func TestDeleteAndCancelGeneration(t *testing.T) {
	var gotMethod, gotPath string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath = r.Method, r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	})

	c := newTestClient(t, handler, nil)

	if err := c.DeleteGeneration(context.Background(), "gen-1"); err != nil {
		t.Fatalf("DeleteGeneration() error = %v", err)
	}
	if gotMethod != http.MethodDelete || gotPath != "/api/v1/generate/gen-1" {
		t.Errorf("got %s %s", gotMethod, gotPath)
	}

	if err := c.CancelGeneration(context.Background(), "gen-1"); err != nil {
		t.Fatalf("CancelGeneration() error = %v", err)
	}
	if gotMethod != http.MethodPost || gotPath != "/api/v1/generate/gen-1/cancel" {
		t.Errorf("got %s %s", gotMethod, gotPath)
	}
}

func TestDownloadZipReturnsRawArchive(t *testing.T) {
	archive := []byte("PK\x03\x04fake-zip")
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string][]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		if len(body["generation_ids"]) != 2 {
			t.Errorf("generation_ids = %v", body["generation_ids"])
		}
		w.Header().Set("Content-Type", "application/zip")
		w.Write(archive)
	})

	c := newTestClient(t, handler, nil)
	got, err := c.DownloadZip(context.Background(), []string{"gen-1", "gen-2"})
	if err != nil {
		t.Fatalf("DownloadZip() error = %v", err)
	}
	if string(got) != string(archive) {
		t.Errorf("archive bytes differ")
	}
}
