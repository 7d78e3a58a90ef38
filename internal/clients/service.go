package clients

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hmranwar/guardpost-backend/internal/employees"
	"github.com/hmranwar/guardpost-backend/pkg/db/models"
	"github.com/hmranwar/guardpost-backend/pkg/db/types"
	pkgerrors "github.com/hmranwar/guardpost-backend/pkg/errors"
	"github.com/hmranwar/guardpost-backend/pkg/listing"
)

// Service manages clients with their contacts, addresses, sites, and
// contracts, plus guard postings on sites.
type Service interface {
	ListClients(ctx context.Context) ([]models.Client, error)
	GetClient(ctx context.Context, id uuid.UUID) (*ClientDetail, error)
	CreateClient(ctx context.Context, input ClientInput) (*models.Client, error)
	UpdateClient(ctx context.Context, id uuid.UUID, input ClientUpdateInput) (*models.Client, error)
	DeleteClient(ctx context.Context, id uuid.UUID) error

	ListContacts(ctx context.Context, clientID uuid.UUID) ([]models.ClientContact, error)
	CreateContact(ctx context.Context, clientID uuid.UUID, input ContactInput) (*models.ClientContact, error)
	UpdateContact(ctx context.Context, clientID, id uuid.UUID, input ContactInput) (*models.ClientContact, error)
	DeleteContact(ctx context.Context, clientID, id uuid.UUID) error

	ListAddresses(ctx context.Context, clientID uuid.UUID) ([]models.ClientAddress, error)
	CreateAddress(ctx context.Context, clientID uuid.UUID, input AddressInput) (*models.ClientAddress, error)
	UpdateAddress(ctx context.Context, clientID, id uuid.UUID, input AddressInput) (*models.ClientAddress, error)
	DeleteAddress(ctx context.Context, clientID, id uuid.UUID) error

	ListSites(ctx context.Context, clientID uuid.UUID) ([]models.ClientSite, error)
	CreateSite(ctx context.Context, clientID uuid.UUID, input SiteInput) (*models.ClientSite, error)
	UpdateSite(ctx context.Context, clientID, id uuid.UUID, input SiteUpdateInput) (*models.ClientSite, error)
	DeleteSite(ctx context.Context, clientID, id uuid.UUID) error

	ListContracts(ctx context.Context, clientID uuid.UUID) ([]models.ClientContract, error)
	CreateContract(ctx context.Context, clientID uuid.UUID, input ContractInput) (*models.ClientContract, error)
	UpdateContract(ctx context.Context, clientID, id uuid.UUID, input ContractUpdateInput) (*models.ClientContract, error)
	DeleteContract(ctx context.Context, clientID, id uuid.UUID) error

	ListSiteGuards(ctx context.Context, siteID uuid.UUID) ([]SiteGuard, error)
	AssignGuard(ctx context.Context, siteID uuid.UUID, input AssignmentInput) (*models.SiteAssignment, error)
	EjectGuard(ctx context.Context, siteID, assignmentID uuid.UUID, input EjectInput) (*models.SiteAssignment, error)
	AvailableGuards(ctx context.Context) ([]models.Employee, error)
}

// ClientDetail is a client with its sub-resources inlined.
type ClientDetail struct {
	models.Client
	Contacts  []models.ClientContact  `json:"contacts"`
	Addresses []models.ClientAddress  `json:"addresses"`
	Sites     []models.ClientSite     `json:"sites"`
	Contracts []models.ClientContract `json:"contracts"`
}

// ClientInput creates a client.
type ClientInput struct {
	Name     string `json:"name" validate:"required"`
	Industry string `json:"industry"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	Status   string `json:"status"`
	Notes    string `json:"notes"`
}

// ClientUpdateInput carries partial client updates.
type ClientUpdateInput struct {
	Name     *string `json:"name"`
	Industry *string `json:"industry"`
	Phone    *string `json:"phone"`
	Email    *string `json:"email"`
	Status   *string `json:"status"`
	Notes    *string `json:"notes"`
}

// ContactInput creates or replaces a client contact.
type ContactInput struct {
	Name  string `json:"name" validate:"required"`
	Role  string `json:"role"`
	Phone string `json:"phone"`
	Email string `json:"email"`
}

// AddressInput creates or replaces a client address.
type AddressInput struct {
	Label   string `json:"label"`
	Line1   string `json:"line1" validate:"required"`
	Line2   string `json:"line2"`
	City    string `json:"city"`
	Region  string `json:"region"`
	Country string `json:"country"`
}

// SiteInput creates a guarded site.
type SiteInput struct {
	Name           string `json:"name" validate:"required"`
	Address        string `json:"address"`
	GuardsRequired int    `json:"guards_required"`
	Status         string `json:"status"`
}

// SiteUpdateInput carries partial site updates.
type SiteUpdateInput struct {
	Name           *string `json:"name"`
	Address        *string `json:"address"`
	GuardsRequired *int    `json:"guards_required"`
	Status         *string `json:"status"`
}

// ContractInput creates a service contract.
type ContractInput struct {
	ContractNumber string           `json:"contract_number" validate:"required"`
	StartDate      types.Date       `json:"start_date" validate:"required"`
	EndDate        *types.Date      `json:"end_date"`
	MonthlyValue   *decimal.Decimal `json:"monthly_value"`
	Status         string           `json:"status"`
}

// ContractUpdateInput carries partial contract updates.
type ContractUpdateInput struct {
	ContractNumber *string          `json:"contract_number"`
	StartDate      *types.Date      `json:"start_date"`
	EndDate        *types.Date      `json:"end_date"`
	MonthlyValue   *decimal.Decimal `json:"monthly_value"`
	Status         *string          `json:"status"`
}

// AssignmentInput posts a guard to a site. FromDate defaults to today.
type AssignmentInput struct {
	EmployeeID string      `json:"employee_id" validate:"required"`
	Shift      string      `json:"shift"`
	FromDate   *types.Date `json:"from_date"`
}

// EjectInput ends a posting. ToDate defaults to today.
type EjectInput struct {
	ToDate *types.Date `json:"to_date"`
}

// SiteGuard is a posting enriched with the guard's name for display.
type SiteGuard struct {
	models.SiteAssignment
	EmployeeName string `json:"employee_name"`
}

const defaultClientStatus = "active"

type service struct {
	repo      Repository
	employees employees.Repository
}

// NewService builds the client management service.
func NewService(repo Repository, employeeRepo employees.Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("client repository required")
	}
	if employeeRepo == nil {
		return nil, fmt.Errorf("employee repository required")
	}
	return &service{repo: repo, employees: employeeRepo}, nil
}

func (s *service) ListClients(ctx context.Context) ([]models.Client, error) {
	clients, err := s.repo.ListClients(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing clients")
	}
	return clients, nil
}

func (s *service) getClient(ctx context.Context, id uuid.UUID) (*models.Client, error) {
	client, err := s.repo.GetClient(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading client")
	}
	if client == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "client not found")
	}
	return client, nil
}

func (s *service) GetClient(ctx context.Context, id uuid.UUID) (*ClientDetail, error) {
	client, err := s.getClient(ctx, id)
	if err != nil {
		return nil, err
	}

	contacts, err := s.repo.ListContacts(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading client contacts")
	}
	addresses, err := s.repo.ListAddresses(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading client addresses")
	}
	sites, err := s.repo.ListSites(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading client sites")
	}
	contracts, err := s.repo.ListContracts(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading client contracts")
	}

	return &ClientDetail{
		Client:    *client,
		Contacts:  contacts,
		Addresses: addresses,
		Sites:     sites,
		Contracts: contracts,
	}, nil
}

func (s *service) CreateClient(ctx context.Context, input ClientInput) (*models.Client, error) {
	if input.Name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}

	status := input.Status
	if status == "" {
		status = defaultClientStatus
	}

	client := &models.Client{
		Name:     input.Name,
		Industry: input.Industry,
		Phone:    input.Phone,
		Email:    input.Email,
		Status:   status,
		Notes:    input.Notes,
	}
	if err := s.repo.CreateClient(ctx, client); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating client")
	}
	return client, nil
}

func (s *service) UpdateClient(ctx context.Context, id uuid.UUID, input ClientUpdateInput) (*models.Client, error) {
	client, err := s.getClient(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		client.Name = *input.Name
	}
	if input.Industry != nil {
		client.Industry = *input.Industry
	}
	if input.Phone != nil {
		client.Phone = *input.Phone
	}
	if input.Email != nil {
		client.Email = *input.Email
	}
	if input.Status != nil {
		client.Status = *input.Status
	}
	if input.Notes != nil {
		client.Notes = *input.Notes
	}

	if err := s.repo.UpdateClient(ctx, client); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating client")
	}
	return client, nil
}

func (s *service) DeleteClient(ctx context.Context, id uuid.UUID) error {
	if _, err := s.getClient(ctx, id); err != nil {
		return err
	}
	if err := s.repo.DeleteClient(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "deleting client")
	}
	return nil
}

func (s *service) ListContacts(ctx context.Context, clientID uuid.UUID) ([]models.ClientContact, error) {
	if _, err := s.getClient(ctx, clientID); err != nil {
		return nil, err
	}
	contacts, err := s.repo.ListContacts(ctx, clientID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing contacts")
	}
	return contacts, nil
}

func (s *service) CreateContact(ctx context.Context, clientID uuid.UUID, input ContactInput) (*models.ClientContact, error) {
	if input.Name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if _, err := s.getClient(ctx, clientID); err != nil {
		return nil, err
	}

	contact := &models.ClientContact{
		ClientID: clientID,
		Name:     input.Name,
		Role:     input.Role,
		Phone:    input.Phone,
		Email:    input.Email,
	}
	if err := s.repo.CreateContact(ctx, contact); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating contact")
	}
	return contact, nil
}

func (s *service) UpdateContact(ctx context.Context, clientID, id uuid.UUID, input ContactInput) (*models.ClientContact, error) {
	contact, err := s.repo.GetContact(ctx, clientID, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading contact")
	}
	if contact == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "contact not found")
	}

	contact.Name = input.Name
	contact.Role = input.Role
	contact.Phone = input.Phone
	contact.Email = input.Email
	if err := s.repo.UpdateContact(ctx, contact); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating contact")
	}
	return contact, nil
}

func (s *service) DeleteContact(ctx context.Context, clientID, id uuid.UUID) error {
	if err := s.repo.DeleteContact(ctx, clientID, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "deleting contact")
	}
	return nil
}

func (s *service) ListAddresses(ctx context.Context, clientID uuid.UUID) ([]models.ClientAddress, error) {
	if _, err := s.getClient(ctx, clientID); err != nil {
		return nil, err
	}
	addresses, err := s.repo.ListAddresses(ctx, clientID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing addresses")
	}
	return addresses, nil
}

func (s *service) CreateAddress(ctx context.Context, clientID uuid.UUID, input AddressInput) (*models.ClientAddress, error) {
	if input.Line1 == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "line1 is required")
	}
	if _, err := s.getClient(ctx, clientID); err != nil {
		return nil, err
	}

	address := &models.ClientAddress{
		ClientID: clientID,
		Label:    input.Label,
		Line1:    input.Line1,
		Line2:    input.Line2,
		City:     input.City,
		Region:   input.Region,
		Country:  input.Country,
	}
	if err := s.repo.CreateAddress(ctx, address); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating address")
	}
	return address, nil
}

func (s *service) UpdateAddress(ctx context.Context, clientID, id uuid.UUID, input AddressInput) (*models.ClientAddress, error) {
	address, err := s.repo.GetAddress(ctx, clientID, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading address")
	}
	if address == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "address not found")
	}

	address.Label = input.Label
	address.Line1 = input.Line1
	address.Line2 = input.Line2
	address.City = input.City
	address.Region = input.Region
	address.Country = input.Country
	if err := s.repo.UpdateAddress(ctx, address); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating address")
	}
	return address, nil
}

func (s *service) DeleteAddress(ctx context.Context, clientID, id uuid.UUID) error {
	if err := s.repo.DeleteAddress(ctx, clientID, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "deleting address")
	}
	return nil
}

func (s *service) ListSites(ctx context.Context, clientID uuid.UUID) ([]models.ClientSite, error) {
	if _, err := s.getClient(ctx, clientID); err != nil {
		return nil, err
	}
	sites, err := s.repo.ListSites(ctx, clientID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing sites")
	}
	return sites, nil
}

func (s *service) CreateSite(ctx context.Context, clientID uuid.UUID, input SiteInput) (*models.ClientSite, error) {
	if input.Name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if _, err := s.getClient(ctx, clientID); err != nil {
		return nil, err
	}

	status := input.Status
	if status == "" {
		status = defaultClientStatus
	}

	site := &models.ClientSite{
		ClientID:       clientID,
		Name:           input.Name,
		Address:        input.Address,
		GuardsRequired: input.GuardsRequired,
		Status:         status,
	}
	if err := s.repo.CreateSite(ctx, site); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating site")
	}
	return site, nil
}

func (s *service) UpdateSite(ctx context.Context, clientID, id uuid.UUID, input SiteUpdateInput) (*models.ClientSite, error) {
	site, err := s.repo.GetSite(ctx, clientID, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading site")
	}
	if site == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "site not found")
	}

	if input.Name != nil {
		site.Name = *input.Name
	}
	if input.Address != nil {
		site.Address = *input.Address
	}
	if input.GuardsRequired != nil {
		site.GuardsRequired = *input.GuardsRequired
	}
	if input.Status != nil {
		site.Status = *input.Status
	}
	if err := s.repo.UpdateSite(ctx, site); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating site")
	}
	return site, nil
}

func (s *service) DeleteSite(ctx context.Context, clientID, id uuid.UUID) error {
	if err := s.repo.DeleteSite(ctx, clientID, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "deleting site")
	}
	return nil
}

func (s *service) ListContracts(ctx context.Context, clientID uuid.UUID) ([]models.ClientContract, error) {
	if _, err := s.getClient(ctx, clientID); err != nil {
		return nil, err
	}
	contracts, err := s.repo.ListContracts(ctx, clientID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing contracts")
	}
	return contracts, nil
}

func (s *service) CreateContract(ctx context.Context, clientID uuid.UUID, input ContractInput) (*models.ClientContract, error) {
	if input.ContractNumber == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "contract_number is required")
	}
	if input.StartDate.IsZero() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "start_date is required")
	}
	if input.EndDate != nil && input.EndDate.Before(input.StartDate) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "end_date before start_date")
	}
	if _, err := s.getClient(ctx, clientID); err != nil {
		return nil, err
	}

	status := input.Status
	if status == "" {
		status = defaultClientStatus
	}

	contract := &models.ClientContract{
		ClientID:       clientID,
		ContractNumber: input.ContractNumber,
		StartDate:      input.StartDate,
		EndDate:        input.EndDate,
		MonthlyValue:   input.MonthlyValue,
		Status:         status,
	}
	if err := s.repo.CreateContract(ctx, contract); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating contract")
	}
	return contract, nil
}

func (s *service) UpdateContract(ctx context.Context, clientID, id uuid.UUID, input ContractUpdateInput) (*models.ClientContract, error) {
	contract, err := s.repo.GetContract(ctx, clientID, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading contract")
	}
	if contract == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "contract not found")
	}

	if input.ContractNumber != nil {
		contract.ContractNumber = *input.ContractNumber
	}
	if input.StartDate != nil {
		contract.StartDate = *input.StartDate
	}
	if input.EndDate != nil {
		contract.EndDate = input.EndDate
	}
	if input.MonthlyValue != nil {
		contract.MonthlyValue = input.MonthlyValue
	}
	if input.Status != nil {
		contract.Status = *input.Status
	}
	if contract.EndDate != nil && contract.EndDate.Before(contract.StartDate) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "end_date before start_date")
	}
	if err := s.repo.UpdateContract(ctx, contract); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating contract")
	}
	return contract, nil
}

func (s *service) DeleteContract(ctx context.Context, clientID, id uuid.UUID) error {
	if err := s.repo.DeleteContract(ctx, clientID, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "deleting contract")
	}
	return nil
}

func (s *service) getSite(ctx context.Context, siteID uuid.UUID) (*models.ClientSite, error) {
	site, err := s.repo.GetSiteByID(ctx, siteID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading site")
	}
	if site == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "site not found")
	}
	return site, nil
}

// ListSiteGuards returns the site's postings enriched with guard names.
func (s *service) ListSiteGuards(ctx context.Context, siteID uuid.UUID) ([]SiteGuard, error) {
	if _, err := s.getSite(ctx, siteID); err != nil {
		return nil, err
	}

	assignments, err := s.repo.ListAssignments(ctx, siteID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing site guards")
	}

	guards := make([]SiteGuard, 0, len(assignments))
	for _, assignment := range assignments {
		name := "Unknown"
		if employee, err := s.employees.GetByEmployeeID(ctx, assignment.EmployeeID); err == nil && employee != nil {
			name = employee.FullName
		}
		guards = append(guards, SiteGuard{SiteAssignment: assignment, EmployeeName: name})
	}
	return guards, nil
}

func (s *service) AssignGuard(ctx context.Context, siteID uuid.UUID, input AssignmentInput) (*models.SiteAssignment, error) {
	if input.EmployeeID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "employee_id is required")
	}
	if _, err := s.getSite(ctx, siteID); err != nil {
		return nil, err
	}
	employee, err := s.employees.GetByEmployeeID(ctx, input.EmployeeID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading employee")
	}
	if employee == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "employee not found")
	}

	fromDate := types.DateOf(time.Now())
	if input.FromDate != nil && !input.FromDate.IsZero() {
		fromDate = *input.FromDate
	}

	assignment := &models.SiteAssignment{
		SiteID:     siteID,
		EmployeeID: input.EmployeeID,
		Shift:      input.Shift,
		FromDate:   fromDate,
	}
	if err := s.repo.CreateAssignment(ctx, assignment); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "assigning guard")
	}
	return assignment, nil
}

// EjectGuard ends an open posting by stamping its end date. Ejecting a
// posting that already ended is a state conflict.
func (s *service) EjectGuard(ctx context.Context, siteID, assignmentID uuid.UUID, input EjectInput) (*models.SiteAssignment, error) {
	assignment, err := s.repo.GetAssignment(ctx, siteID, assignmentID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading assignment")
	}
	if assignment == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "assignment not found")
	}
	if assignment.ToDate != nil {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "assignment already ended")
	}

	toDate := types.DateOf(time.Now())
	if input.ToDate != nil && !input.ToDate.IsZero() {
		toDate = *input.ToDate
	}
	assignment.ToDate = &toDate

	if err := s.repo.UpdateAssignment(ctx, assignment); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "ejecting guard")
	}
	return assignment, nil
}

// AvailableGuards lists active employees without an open posting.
func (s *service) AvailableGuards(ctx context.Context) ([]models.Employee, error) {
	status := "Active"
	active, err := s.employees.List(ctx, employees.ListFilter{
		Status: &status,
		Params: listing.Params{Limit: listing.MaxLimit},
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing active employees")
	}

	open, err := s.repo.ListOpenAssignments(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing open assignments")
	}

	assigned := make(map[string]struct{}, len(open))
	for _, assignment := range open {
		assigned[assignment.EmployeeID] = struct{}{}
	}

	available := make([]models.Employee, 0, len(active))
	for _, employee := range active {
		if _, ok := assigned[employee.EmployeeID]; !ok {
			available = append(available, employee)
		}
	}
	return available, nil
}
