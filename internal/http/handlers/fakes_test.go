package handlers

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"dealership/internal/domain"
	"dealership/internal/ingest"
	"dealership/internal/storage"
)

type fakeVehicleRepo struct {
	vehicles  map[string]*domain.Vehicle
	listErr   error
	appendErr error
}

func newFakeVehicleRepo() *fakeVehicleRepo {
	return &fakeVehicleRepo{vehicles: make(map[string]*domain.Vehicle)}
}

func (f *fakeVehicleRepo) ListAll(ctx context.Context) ([]domain.Vehicle, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []domain.Vehicle
	for _, v := range f.vehicles {
		out = append(out, *v)
	}
	return out, nil
}

func (f *fakeVehicleRepo) GetByID(ctx context.Context, id string) (*domain.Vehicle, error) {
	v, ok := f.vehicles[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := *v
	return &copied, nil
}

func (f *fakeVehicleRepo) Create(ctx context.Context, in *domain.VehicleInput) (*domain.Vehicle, error) {
	v := &domain.Vehicle{
		ID:        fmt.Sprintf("v%d", len(f.vehicles)+1),
		Status:    domain.VehicleStatusAvailable,
		Images:    in.Images,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if in.Make != nil {
		v.Make = *in.Make
	}
	if in.Model != nil {
		v.Model = *in.Model
	}
	if in.Year != nil {
		v.Year = *in.Year
	}
	if in.Price != nil {
		v.Price = *in.Price
	}
	f.vehicles[v.ID] = v
	return v, nil
}

func (f *fakeVehicleRepo) Update(ctx context.Context, id string, in *domain.VehicleInput) (*domain.Vehicle, error) {
	v, ok := f.vehicles[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if in.Price != nil {
		v.Price = *in.Price
	}
	if in.Status != nil {
		v.Status = domain.VehicleStatus(*in.Status)
	}
	copied := *v
	return &copied, nil
}

func (f *fakeVehicleRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.vehicles[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.vehicles, id)
	return nil
}

func (f *fakeVehicleRepo) AppendImage(ctx context.Context, id string, path string) error {
	if f.appendErr != nil {
		return f.appendErr
	}
	v, ok := f.vehicles[id]
	if !ok {
		return domain.ErrNotFound
	}
	v.Images = append(v.Images, path)
	return nil
}

type fakeBrokerRepo struct {
	created []domain.BrokerRequestInput
}

func (f *fakeBrokerRepo) ListAll(ctx context.Context) ([]domain.BrokerRequest, error) {
	var out []domain.BrokerRequest
	for i, in := range f.created {
		out = append(out, domain.BrokerRequest{
			ID:                fmt.Sprintf("b%d", i+1),
			FirstName:         in.FirstName,
			LastName:          in.LastName,
			Email:             in.Email,
			Phone:             in.Phone,
			VehicleSelections: in.VehicleSelections,
			MaxBudget:         in.MaxBudget,
			DepositAgreed:     in.DepositAgreed,
			Status:            domain.BrokerStatusPending,
		})
	}
	return out, nil
}

func (f *fakeBrokerRepo) Create(ctx context.Context, in *domain.BrokerRequestInput) (*domain.BrokerRequest, error) {
	f.created = append(f.created, *in)
	return &domain.BrokerRequest{
		ID:                fmt.Sprintf("b%d", len(f.created)),
		FirstName:         in.FirstName,
		LastName:          in.LastName,
		Email:             in.Email,
		Phone:             in.Phone,
		VehicleSelections: in.VehicleSelections,
		MaxBudget:         in.MaxBudget,
		DepositAgreed:     in.DepositAgreed,
		Status:            domain.BrokerStatusPending,
		CreatedAt:         time.Now(),
	}, nil
}

type fakeContactRepo struct {
	items []domain.ContactInquiry
}

func (f *fakeContactRepo) ListAll(ctx context.Context) ([]domain.ContactInquiry, error) {
	return f.items, nil
}

func (f *fakeContactRepo) Create(ctx context.Context, in *domain.ContactInquiryInput) (*domain.ContactInquiry, error) {
	q := domain.ContactInquiry{
		ID: fmt.Sprintf("c%d", len(f.items)+1), Name: in.Name, Email: in.Email,
		Subject: in.Subject, Message: in.Message, Status: domain.InquiryStatusNew, CreatedAt: time.Now(),
	}
	f.items = append(f.items, q)
	return &q, nil
}

func (f *fakeContactRepo) Delete(ctx context.Context, id string) error {
	for i, q := range f.items {
		if q.ID == id {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

type fakeVehicleInquiryRepo struct {
	items []domain.VehicleInquiry
}

func (f *fakeVehicleInquiryRepo) ListAll(ctx context.Context) ([]domain.VehicleInquiry, error) {
	return f.items, nil
}

func (f *fakeVehicleInquiryRepo) Create(ctx context.Context, in *domain.VehicleInquiryInput) (*domain.VehicleInquiry, error) {
	q := domain.VehicleInquiry{
		ID: fmt.Sprintf("q%d", len(f.items)+1), VehicleID: in.VehicleID,
		FirstName: in.FirstName, LastName: in.LastName, Email: in.Email,
		Phone: in.Phone, Message: in.Message, Status: domain.InquiryStatusNew, CreatedAt: time.Now(),
	}
	f.items = append(f.items, q)
	return &q, nil
}

func (f *fakeVehicleInquiryRepo) Delete(ctx context.Context, id string) error {
	for i, q := range f.items {
		if q.ID == id {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

type fakeMarketingRepo struct {
	items []domain.MarketingSource
	stats []domain.SourceStat
}

func (f *fakeMarketingRepo) ListAll(ctx context.Context) ([]domain.MarketingSource, error) {
	return f.items, nil
}

func (f *fakeMarketingRepo) Create(ctx context.Context, src *domain.MarketingSource) (*domain.MarketingSource, error) {
	saved := *src
	saved.ID = fmt.Sprintf("m%d", len(f.items)+1)
	saved.CreatedAt = time.Now()
	f.items = append(f.items, saved)
	return &saved, nil
}

func (f *fakeMarketingRepo) Stats(ctx context.Context) ([]domain.SourceStat, error) {
	return f.stats, nil
}

type fakeAdminRepo struct {
	users map[string]*domain.AdminUser
}

func newFakeAdminRepo() *fakeAdminRepo {
	return &fakeAdminRepo{users: make(map[string]*domain.AdminUser)}
}

func (f *fakeAdminRepo) GetByUsername(ctx context.Context, username string) (*domain.AdminUser, error) {
	u, ok := f.users[username]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := *u
	return &copied, nil
}

func (f *fakeAdminRepo) Create(ctx context.Context, user *domain.AdminUser) (*domain.AdminUser, error) {
	if _, ok := f.users[user.Username]; ok {
		return nil, domain.ErrDuplicateUsername
	}
	saved := *user
	saved.ID = fmt.Sprintf("a%d", len(f.users)+1)
	saved.CreatedAt = time.Now()
	f.users[user.Username] = &saved
	return &saved, nil
}

type fakeStore struct {
	objects      map[string][]byte
	contentTypes map[string]string
	presignErr   error
}

func newFakeStore() *fakeStore {
	return &fakeStore{objects: make(map[string][]byte), contentTypes: make(map[string]string)}
}

func (s *fakeStore) key(ref storage.ObjectRef) string {
	return ref.Bucket + "/" + ref.Key
}

func (s *fakeStore) Download(ctx context.Context, ref storage.ObjectRef) ([]byte, string, error) {
	data, ok := s.objects[s.key(ref)]
	if !ok {
		return nil, "", storage.ErrObjectNotFound
	}
	return data, s.contentTypes[s.key(ref)], nil
}

func (s *fakeStore) Upload(ctx context.Context, ref storage.ObjectRef, data []byte, contentType string, metadata map[string]string) error {
	s.objects[s.key(ref)] = data
	s.contentTypes[s.key(ref)] = contentType
	return nil
}

func (s *fakeStore) PresignPut(ctx context.Context, key string, expiry time.Duration) (*url.URL, error) {
	if s.presignErr != nil {
		return nil, s.presignErr
	}
	return url.Parse("http://storage.test/dealer-images/" + key + "?sig=abc")
}

type passNormalizer struct{}

func (passNormalizer) Normalize(data []byte) ([]byte, error) { return data, nil }

func newTestApp() (*App, *fakeVehicleRepo, *fakeStore) {
	vehicles := newFakeVehicleRepo()
	store := newFakeStore()
	app := &App{
		Log:              zerolog.Nop(),
		Vehicles:         vehicles,
		BrokerRequests:   &fakeBrokerRepo{},
		ContactInquiries: &fakeContactRepo{},
		VehicleInquiries: &fakeVehicleInquiryRepo{},
		Marketing:        &fakeMarketingRepo{},
		Admins:           newFakeAdminRepo(),
		Store:            store,
		Ingest:           ingest.New(store, passNormalizer{}, vehicles, "dealer-images", zerolog.Nop()),
		SessionSecret:    "test-secret",
		SessionTTL:       time.Hour,
		Bucket:           "dealer-images",
		UploadURLTTL:     15 * time.Minute,
	}
	return app, vehicles, store
}

func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func bodyReader(body string) io.Reader {
	if body == "" {
		return nil
	}
	return strings.NewReader(body)
}

func doJSON(h http.HandlerFunc, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, bodyReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}
