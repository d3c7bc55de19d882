package ingest

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"net/url"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"dealership/internal/domain"
	"dealership/internal/imaging"
	"dealership/internal/storage"
)

const testBucket = "dealer-images"

type memObject struct {
	data        []byte
	contentType string
	metadata    map[string]string
}

// memStore is an in-memory ObjectStore for orchestration tests.
type memStore struct {
	objects      map[string]memObject
	downloadErrs map[string]error
	uploadErr    error
}

func newMemStore() *memStore {
	return &memStore{objects: map[string]memObject{}, downloadErrs: map[string]error{}}
}

func refKey(ref storage.ObjectRef) string { return ref.Bucket + "/" + ref.Key }

func (m *memStore) Download(_ context.Context, ref storage.ObjectRef) ([]byte, string, error) {
	if err := m.downloadErrs[refKey(ref)]; err != nil {
		return nil, "", err
	}
	obj, ok := m.objects[refKey(ref)]
	if !ok {
		return nil, "", fmt.Errorf("%w: %s", storage.ErrObjectNotFound, refKey(ref))
	}
	return obj.data, obj.contentType, nil
}

func (m *memStore) Upload(_ context.Context, ref storage.ObjectRef, data []byte, contentType string, metadata map[string]string) error {
	if m.uploadErr != nil {
		return m.uploadErr
	}
	m.objects[refKey(ref)] = memObject{data: data, contentType: contentType, metadata: metadata}
	return nil
}

func (m *memStore) PresignPut(context.Context, string, time.Duration) (*url.URL, error) {
	return nil, storage.ErrPresignUnsupported
}

type fakeVehicles struct {
	vehicles map[string]*domain.Vehicle
	order    []string
}

func newFakeVehicles(vehicles ...*domain.Vehicle) *fakeVehicles {
	f := &fakeVehicles{vehicles: map[string]*domain.Vehicle{}}
	for _, v := range vehicles {
		f.vehicles[v.ID] = v
		f.order = append(f.order, v.ID)
	}
	return f
}

func (f *fakeVehicles) ListAll(context.Context) ([]domain.Vehicle, error) {
	out := make([]domain.Vehicle, 0, len(f.order))
	for _, id := range f.order {
		out = append(out, *f.vehicles[id])
	}
	return out, nil
}

func (f *fakeVehicles) GetByID(_ context.Context, id string) (*domain.Vehicle, error) {
	v, ok := f.vehicles[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return v, nil
}

func (f *fakeVehicles) Create(context.Context, *domain.VehicleInput) (*domain.Vehicle, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeVehicles) Update(context.Context, string, *domain.VehicleInput) (*domain.Vehicle, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeVehicles) Delete(context.Context, string) error { return errors.New("not implemented") }

func (f *fakeVehicles) AppendImage(_ context.Context, id, path string) error {
	v, ok := f.vehicles[id]
	if !ok {
		return domain.ErrNotFound
	}
	v.Images = append(v.Images, path)
	return nil
}

// passthrough leaves bytes untouched, isolating orchestration behavior from
// the transform engine.
type passthrough struct{}

func (passthrough) Normalize(data []byte) ([]byte, error) { return data, nil }

type failingNormalizer struct{}

func (failingNormalizer) Normalize([]byte) ([]byte, error) {
	return nil, errors.New("simulated transform failure")
}

func testJPEG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{G: 180, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, nil); err != nil {
		t.Fatalf("encode fixture: %v", err)
	}
	return buf.Bytes()
}

func TestReprocessAll_ContinuesPastFailures(t *testing.T) {
	store := newMemStore()
	store.objects[testBucket+"/uploads/ok1"] = memObject{data: []byte("a")}
	store.objects[testBucket+"/uploads/ok2"] = memObject{data: []byte("b")}
	store.downloadErrs[testBucket+"/uploads/broken"] = storage.ErrUnavailable

	vehicles := newFakeVehicles(
		&domain.Vehicle{ID: "v1", Images: []string{"/objects/" + testBucket + "/uploads/ok1"}},
		&domain.Vehicle{ID: "v2", Images: []string{
			"/objects/" + testBucket + "/uploads/broken",
			"/objects/" + testBucket + "/uploads/ok2",
		}},
		&domain.Vehicle{ID: "v3", Images: []string{"https://cdn.example.com/legacy.png"}},
	)

	ing := New(store, passthrough{}, vehicles, testBucket, zerolog.Nop())
	report, err := ing.ReprocessAll(context.Background())
	if err != nil {
		t.Fatalf("reprocess: %v", err)
	}

	if report.ErrorCount != 1 {
		t.Fatalf("expected 1 error, got %d", report.ErrorCount)
	}
	if report.ProcessedCount != 2 {
		t.Fatalf("expected 2 processed, got %d", report.ProcessedCount)
	}
	if report.TotalVehicles != 3 {
		t.Fatalf("expected 3 vehicles scanned, got %d", report.TotalVehicles)
	}
}

func TestIngestUpload_DegradesWhenProcessingFails(t *testing.T) {
	store := newMemStore()
	store.objects[testBucket+"/uploads/raw1"] = memObject{data: []byte("raw")}
	vehicles := newFakeVehicles(&domain.Vehicle{ID: "v1"})

	ing := New(store, failingNormalizer{}, vehicles, testBucket, zerolog.Nop())
	path, err := ing.IngestUpload(context.Background(), "https://storage.example.com/"+testBucket+"/uploads/raw1?sig=x", "v1")
	if err != nil {
		t.Fatalf("ingest should degrade, not fail: %v", err)
	}
	if path == "" {
		t.Fatal("expected a usable path despite processing failure")
	}

	v := vehicles.vehicles["v1"]
	if len(v.Images) != 1 || v.Images[0] != path {
		t.Fatalf("expected path appended to vehicle, got %v", v.Images)
	}
	// Raw bytes stay in place when the transform fails.
	if got := store.objects[testBucket+"/uploads/raw1"].data; string(got) != "raw" {
		t.Fatalf("raw object should be untouched, got %q", got)
	}
}

func TestIngestUpload_AttachToMissingVehicle(t *testing.T) {
	store := newMemStore()
	store.objects[testBucket+"/uploads/raw2"] = memObject{data: []byte("raw")}

	ing := New(store, passthrough{}, newFakeVehicles(), testBucket, zerolog.Nop())
	_, err := ing.IngestUpload(context.Background(), "https://storage.example.com/"+testBucket+"/uploads/raw2", "ghost")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestIngestUpload_FallbackExtraction(t *testing.T) {
	store := newMemStore()
	ing := New(store, passthrough{}, newFakeVehicles(), testBucket, zerolog.Nop())

	// The invalid port keeps url.Parse from succeeding; the fallback scans
	// the raw string for the uploads marker instead.
	path, err := ing.IngestUpload(context.Background(), "http://storage.example.com:bad/"+testBucket+"/uploads/xyz789", "")
	if err != nil {
		t.Fatalf("expected fallback extraction to keep the flow alive: %v", err)
	}
	want := "/objects/" + testBucket + "/uploads/xyz789"
	if path != want {
		t.Fatalf("fallback path: got %q, want %q", path, want)
	}
}

func TestProcessAndReplace_OverwritesInPlace(t *testing.T) {
	store := newMemStore()
	ref := storage.ObjectRef{Bucket: testBucket, Key: "uploads/abc123"}
	store.objects[refKey(ref)] = memObject{data: testJPEG(t, 1920, 1080), contentType: "image/jpeg"}

	proc := imaging.NewProcessor("", zerolog.Nop())
	ing := New(store, proc, newFakeVehicles(), testBucket, zerolog.Nop())

	if err := ing.ProcessAndReplace(context.Background(), ref); err != nil {
		t.Fatalf("process and replace: %v", err)
	}

	obj := store.objects[refKey(ref)]
	if obj.contentType != "image/jpeg" {
		t.Fatalf("expected image/jpeg content type, got %q", obj.contentType)
	}
	if obj.metadata["processed"] != "true" {
		t.Fatalf("expected processed marker, got %v", obj.metadata)
	}
	if obj.metadata["processed-at"] == "" {
		t.Fatal("expected processing timestamp in metadata")
	}

	img, _, err := image.Decode(bytes.NewReader(obj.data))
	if err != nil {
		t.Fatalf("stored object no longer decodes: %v", err)
	}
	if img.Bounds().Dx() != imaging.CanvasWidth || img.Bounds().Dy() != imaging.CanvasHeight {
		t.Fatalf("stored object is %v, want %dx%d", img.Bounds(), imaging.CanvasWidth, imaging.CanvasHeight)
	}
}

func TestIngestUpload_EndToEnd(t *testing.T) {
	store := newMemStore()
	ref := storage.ObjectRef{Bucket: testBucket, Key: "uploads/abc123"}
	store.objects[refKey(ref)] = memObject{data: testJPEG(t, 1920, 1080), contentType: "image/jpeg"}
	vehicles := newFakeVehicles(&domain.Vehicle{ID: "v1", Images: []string{"/objects/" + testBucket + "/uploads/old"}})

	proc := imaging.NewProcessor("", zerolog.Nop())
	ing := New(store, proc, vehicles, testBucket, zerolog.Nop())

	uploadURL := "https://storage.example.com/" + testBucket + "/uploads/abc123?X-Amz-Signature=abc&X-Amz-Expires=900"
	path, err := ing.IngestUpload(context.Background(), uploadURL, "v1")
	if err != nil {
		t.Fatalf("ingest upload: %v", err)
	}

	got, err := storage.ResolvePath(path)
	if err != nil {
		t.Fatalf("returned path does not resolve: %v", err)
	}
	if got != ref {
		t.Fatalf("resolved ref %+v, want %+v", got, ref)
	}

	img, format, err := image.Decode(bytes.NewReader(store.objects[refKey(ref)].data))
	if err != nil {
		t.Fatalf("stored object no longer decodes: %v", err)
	}
	if format != "jpeg" || img.Bounds().Dx() != 800 || img.Bounds().Dy() != 600 {
		t.Fatalf("stored object is %s %v, want 800x600 jpeg", format, img.Bounds())
	}

	images := vehicles.vehicles["v1"].Images
	if len(images) == 0 || images[len(images)-1] != path {
		t.Fatalf("expected %q as last vehicle image, got %v", path, images)
	}
}
