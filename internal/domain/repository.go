package domain

import "context"

// VehicleRepository defines persistence for inventory listings.
type VehicleRepository interface {
	ListAll(ctx context.Context) ([]Vehicle, error)
	GetByID(ctx context.Context, id string) (*Vehicle, error)
	Create(ctx context.Context, in *VehicleInput) (*Vehicle, error)
	Update(ctx context.Context, id string, in *VehicleInput) (*Vehicle, error)
	Delete(ctx context.Context, id string) error
	// AppendImage atomically appends a normalized image path to the
	// vehicle's image list. Concurrent appends for the same vehicle must
	// not lose entries.
	AppendImage(ctx context.Context, id string, path string) error
}

// BrokerRequestRepository defines persistence for broker-service requests.
type BrokerRequestRepository interface {
	ListAll(ctx context.Context) ([]BrokerRequest, error)
	Create(ctx context.Context, in *BrokerRequestInput) (*BrokerRequest, error)
}

// ContactInquiryRepository defines persistence for contact-form leads.
type ContactInquiryRepository interface {
	ListAll(ctx context.Context) ([]ContactInquiry, error)
	Create(ctx context.Context, in *ContactInquiryInput) (*ContactInquiry, error)
	Delete(ctx context.Context, id string) error
}

// VehicleInquiryRepository defines persistence for listing-specific leads.
type VehicleInquiryRepository interface {
	ListAll(ctx context.Context) ([]VehicleInquiry, error)
	Create(ctx context.Context, in *VehicleInquiryInput) (*VehicleInquiry, error)
	Delete(ctx context.Context, id string) error
}

// MarketingSourceRepository defines persistence for attribution events.
type MarketingSourceRepository interface {
	ListAll(ctx context.Context) ([]MarketingSource, error)
	Create(ctx context.Context, src *MarketingSource) (*MarketingSource, error)
	Stats(ctx context.Context) ([]SourceStat, error)
}

// AdminUserRepository defines persistence for dashboard accounts.
type AdminUserRepository interface {
	GetByUsername(ctx context.Context, username string) (*AdminUser, error)
	Create(ctx context.Context, user *AdminUser) (*AdminUser, error)
}
