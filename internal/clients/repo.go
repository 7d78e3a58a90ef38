package clients

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hmranwar/guardpost-backend/pkg/db/models"
)

// Repository persists clients and their contact, address, site, contract,
// and guard-assignment sub-resources. Single-row getters return (nil, nil)
// when no row matches.
type Repository interface {
	ListClients(ctx context.Context) ([]models.Client, error)
	GetClient(ctx context.Context, id uuid.UUID) (*models.Client, error)
	CreateClient(ctx context.Context, client *models.Client) error
	UpdateClient(ctx context.Context, client *models.Client) error
	DeleteClient(ctx context.Context, id uuid.UUID) error

	ListContacts(ctx context.Context, clientID uuid.UUID) ([]models.ClientContact, error)
	GetContact(ctx context.Context, clientID, id uuid.UUID) (*models.ClientContact, error)
	CreateContact(ctx context.Context, contact *models.ClientContact) error
	UpdateContact(ctx context.Context, contact *models.ClientContact) error
	DeleteContact(ctx context.Context, clientID, id uuid.UUID) error

	ListAddresses(ctx context.Context, clientID uuid.UUID) ([]models.ClientAddress, error)
	GetAddress(ctx context.Context, clientID, id uuid.UUID) (*models.ClientAddress, error)
	CreateAddress(ctx context.Context, address *models.ClientAddress) error
	UpdateAddress(ctx context.Context, address *models.ClientAddress) error
	DeleteAddress(ctx context.Context, clientID, id uuid.UUID) error

	ListSites(ctx context.Context, clientID uuid.UUID) ([]models.ClientSite, error)
	GetSite(ctx context.Context, clientID, id uuid.UUID) (*models.ClientSite, error)
	GetSiteByID(ctx context.Context, id uuid.UUID) (*models.ClientSite, error)
	CreateSite(ctx context.Context, site *models.ClientSite) error
	UpdateSite(ctx context.Context, site *models.ClientSite) error
	DeleteSite(ctx context.Context, clientID, id uuid.UUID) error

	ListContracts(ctx context.Context, clientID uuid.UUID) ([]models.ClientContract, error)
	GetContract(ctx context.Context, clientID, id uuid.UUID) (*models.ClientContract, error)
	CreateContract(ctx context.Context, contract *models.ClientContract) error
	UpdateContract(ctx context.Context, contract *models.ClientContract) error
	DeleteContract(ctx context.Context, clientID, id uuid.UUID) error

	ListAssignments(ctx context.Context, siteID uuid.UUID) ([]models.SiteAssignment, error)
	GetAssignment(ctx context.Context, siteID, id uuid.UUID) (*models.SiteAssignment, error)
	CreateAssignment(ctx context.Context, assignment *models.SiteAssignment) error
	UpdateAssignment(ctx context.Context, assignment *models.SiteAssignment) error
	ListOpenAssignments(ctx context.Context) ([]models.SiteAssignment, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a client repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func firstOrNil[T any](db *gorm.DB, conds ...any) (*T, error) {
	var row T
	err := db.First(&row, conds...).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *repository) ListClients(ctx context.Context) ([]models.Client, error) {
	var clients []models.Client
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&clients).Error; err != nil {
		return nil, err
	}
	return clients, nil
}

func (r *repository) GetClient(ctx context.Context, id uuid.UUID) (*models.Client, error) {
	return firstOrNil[models.Client](r.db.WithContext(ctx), "id = ?", id)
}

func (r *repository) CreateClient(ctx context.Context, client *models.Client) error {
	if client.ID == uuid.Nil {
		client.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(client).Error
}

func (r *repository) UpdateClient(ctx context.Context, client *models.Client) error {
	return r.db.WithContext(ctx).Save(client).Error
}

func (r *repository) DeleteClient(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Client{}, "id = ?", id).Error
}

func (r *repository) ListContacts(ctx context.Context, clientID uuid.UUID) ([]models.ClientContact, error) {
	var contacts []models.ClientContact
	if err := r.db.WithContext(ctx).Where("client_id = ?", clientID).Find(&contacts).Error; err != nil {
		return nil, err
	}
	return contacts, nil
}

func (r *repository) GetContact(ctx context.Context, clientID, id uuid.UUID) (*models.ClientContact, error) {
	return firstOrNil[models.ClientContact](r.db.WithContext(ctx), "id = ? AND client_id = ?", id, clientID)
}

func (r *repository) CreateContact(ctx context.Context, contact *models.ClientContact) error {
	if contact.ID == uuid.Nil {
		contact.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(contact).Error
}

func (r *repository) UpdateContact(ctx context.Context, contact *models.ClientContact) error {
	return r.db.WithContext(ctx).Save(contact).Error
}

func (r *repository) DeleteContact(ctx context.Context, clientID, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("client_id = ?", clientID).
		Delete(&models.ClientContact{}, "id = ?", id).Error
}

func (r *repository) ListAddresses(ctx context.Context, clientID uuid.UUID) ([]models.ClientAddress, error) {
	var addresses []models.ClientAddress
	if err := r.db.WithContext(ctx).Where("client_id = ?", clientID).Find(&addresses).Error; err != nil {
		return nil, err
	}
	return addresses, nil
}

func (r *repository) GetAddress(ctx context.Context, clientID, id uuid.UUID) (*models.ClientAddress, error) {
	return firstOrNil[models.ClientAddress](r.db.WithContext(ctx), "id = ? AND client_id = ?", id, clientID)
}

func (r *repository) CreateAddress(ctx context.Context, address *models.ClientAddress) error {
	if address.ID == uuid.Nil {
		address.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(address).Error
}

func (r *repository) UpdateAddress(ctx context.Context, address *models.ClientAddress) error {
	return r.db.WithContext(ctx).Save(address).Error
}

func (r *repository) DeleteAddress(ctx context.Context, clientID, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("client_id = ?", clientID).
		Delete(&models.ClientAddress{}, "id = ?", id).Error
}

func (r *repository) ListSites(ctx context.Context, clientID uuid.UUID) ([]models.ClientSite, error) {
	var sites []models.ClientSite
	if err := r.db.WithContext(ctx).Where("client_id = ?", clientID).Find(&sites).Error; err != nil {
		return nil, err
	}
	return sites, nil
}

func (r *repository) GetSite(ctx context.Context, clientID, id uuid.UUID) (*models.ClientSite, error) {
	return firstOrNil[models.ClientSite](r.db.WithContext(ctx), "id = ? AND client_id = ?", id, clientID)
}

func (r *repository) GetSiteByID(ctx context.Context, id uuid.UUID) (*models.ClientSite, error) {
	return firstOrNil[models.ClientSite](r.db.WithContext(ctx), "id = ?", id)
}

func (r *repository) CreateSite(ctx context.Context, site *models.ClientSite) error {
	if site.ID == uuid.Nil {
		site.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(site).Error
}

func (r *repository) UpdateSite(ctx context.Context, site *models.ClientSite) error {
	return r.db.WithContext(ctx).Save(site).Error
}

func (r *repository) DeleteSite(ctx context.Context, clientID, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("client_id = ?", clientID).
		Delete(&models.ClientSite{}, "id = ?", id).Error
}

func (r *repository) ListContracts(ctx context.Context, clientID uuid.UUID) ([]models.ClientContract, error) {
	var contracts []models.ClientContract
	if err := r.db.WithContext(ctx).Where("client_id = ?", clientID).Find(&contracts).Error; err != nil {
		return nil, err
	}
	return contracts, nil
}

func (r *repository) GetContract(ctx context.Context, clientID, id uuid.UUID) (*models.ClientContract, error) {
	return firstOrNil[models.ClientContract](r.db.WithContext(ctx), "id = ? AND client_id = ?", id, clientID)
}

func (r *repository) CreateContract(ctx context.Context, contract *models.ClientContract) error {
	if contract.ID == uuid.Nil {
		contract.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(contract).Error
}

func (r *repository) UpdateContract(ctx context.Context, contract *models.ClientContract) error {
	return r.db.WithContext(ctx).Save(contract).Error
}

func (r *repository) DeleteContract(ctx context.Context, clientID, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("client_id = ?", clientID).
		Delete(&models.ClientContract{}, "id = ?", id).Error
}

func (r *repository) ListAssignments(ctx context.Context, siteID uuid.UUID) ([]models.SiteAssignment, error) {
	var assignments []models.SiteAssignment
	if err := r.db.WithContext(ctx).
		Where("site_id = ?", siteID).
		Order("created_at DESC").
		Find(&assignments).Error; err != nil {
		return nil, err
	}
	return assignments, nil
}

func (r *repository) GetAssignment(ctx context.Context, siteID, id uuid.UUID) (*models.SiteAssignment, error) {
	return firstOrNil[models.SiteAssignment](r.db.WithContext(ctx), "id = ? AND site_id = ?", id, siteID)
}

func (r *repository) CreateAssignment(ctx context.Context, assignment *models.SiteAssignment) error {
	if assignment.ID == uuid.Nil {
		assignment.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(assignment).Error
}

func (r *repository) UpdateAssignment(ctx context.Context, assignment *models.SiteAssignment) error {
	return r.db.WithContext(ctx).Save(assignment).Error
}

// ListOpenAssignments returns postings with no end date across all sites.
func (r *repository) ListOpenAssignments(ctx context.Context) ([]models.SiteAssignment, error) {
	var assignments []models.SiteAssignment
	if err := r.db.WithContext(ctx).Where("to_date IS NULL").Find(&assignments).Error; err != nil {
		return nil, err
	}
	return assignments, nil
}
