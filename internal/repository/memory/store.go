// Package memory provides in-process repositories sharing one lock-protected
// store. They follow the postgres repositories' semantics, including the
// conditional studio claim and release, and support injected failures.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"stayos/internal/domain"
	"stayos/internal/port"
)

// Operation names accepted by Store.FailOn.
const (
	OpResidentCreate = "resident.create"
	OpResidentDelete = "resident.delete"
	OpStudioClaim    = "studio.claim"
	OpStudioRelease  = "studio.release"
	OpLeadDelete     = "lead.delete"
	OpInvoiceCreate  = "invoice.create"
)

// Store holds every entity in memory.
type Store struct {
	mu        sync.Mutex
	residents map[uuid.UUID]domain.Resident
	studios   map[uuid.UUID]domain.Studio
	leads     map[uuid.UUID]domain.Lead
	invoices  map[uuid.UUID]domain.Invoice
	plans     map[uuid.UUID]domain.PaymentPlan
	failures  map[string]error
	targeted  map[string]map[uuid.UUID]error
	calls     map[string]int
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		residents: make(map[uuid.UUID]domain.Resident),
		studios:   make(map[uuid.UUID]domain.Studio),
		leads:     make(map[uuid.UUID]domain.Lead),
		invoices:  make(map[uuid.UUID]domain.Invoice),
		plans:     make(map[uuid.UUID]domain.PaymentPlan),
		failures:  make(map[string]error),
		targeted:  make(map[string]map[uuid.UUID]error),
		calls:     make(map[string]int),
	}
}

// FailOn makes every later call of op return err. A nil err clears it.
func (s *Store) FailOn(op string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err == nil {
		delete(s.failures, op)
		return
	}
	s.failures[op] = err
}

// FailOnID makes later calls of op that target id return err. The id is the
// resident for resident ops, the studio for studio ops and the lead for lead
// ops. A nil err clears it.
func (s *Store) FailOnID(op string, id uuid.UUID, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err == nil {
		delete(s.targeted[op], id)
		return
	}
	if s.targeted[op] == nil {
		s.targeted[op] = make(map[uuid.UUID]error)
	}
	s.targeted[op][id] = err
}

// Calls returns how many times op was invoked, including failed calls.
func (s *Store) Calls(op string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[op]
}

// enter records a call and returns the injected failure, if any. Callers hold mu.
func (s *Store) enter(op string) error {
	s.calls[op]++
	return s.failures[op]
}

// enterID is enter for ops aimed at one entity. A targeted failure wins.
func (s *Store) enterID(op string, id uuid.UUID) error {
	if err := s.enter(op); err != nil {
		return err
	}
	return s.targeted[op][id]
}

// Residents returns a ResidentRepository view of the store.
func (s *Store) Residents() port.ResidentRepository { return residentView{s} }

// Studios returns a StudioRepository view of the store.
func (s *Store) Studios() port.StudioRepository { return studioView{s} }

// Leads returns a LeadRepository view of the store.
func (s *Store) Leads() port.LeadRepository { return leadView{s} }

// Invoices returns an InvoiceRepository view of the store.
func (s *Store) Invoices() port.InvoiceRepository { return invoiceView{s} }

// PaymentPlans returns a PaymentPlanRepository view of the store.
func (s *Store) PaymentPlans() port.PaymentPlanRepository { return planView{s} }

// SeedStudio inserts a vacant studio and returns it.
func (s *Store) SeedStudio(tenantID uuid.UUID, name string) domain.Studio {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now().UTC()
	st := domain.Studio{ID: uuid.New(), TenantID: tenantID, Name: name, CreatedAt: now, UpdatedAt: now}
	s.studios[st.ID] = st
	return st
}

// SeedLead inserts a lead and returns it.
func (s *Store) SeedLead(lead domain.Lead) domain.Lead {
	s.mu.Lock()
	defer s.mu.Unlock()
	if lead.ID == uuid.Nil {
		lead.ID = uuid.New()
	}
	s.leads[lead.ID] = lead
	return lead
}

// AllStudios returns a snapshot of every studio.
func (s *Store) AllStudios() []domain.Studio {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Studio, 0, len(s.studios))
	for _, st := range s.studios {
		out = append(out, st)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// AllResidents returns a snapshot of every resident of both variants.
func (s *Store) AllResidents() []domain.Resident {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Resident, 0, len(s.residents))
	for _, r := range s.residents {
		out = append(out, r)
	}
	return out
}

// AllInvoices returns a snapshot of every invoice.
func (s *Store) AllInvoices() []domain.Invoice {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Invoice, 0, len(s.invoices))
	for _, inv := range s.invoices {
		out = append(out, inv)
	}
	return out
}

func paginate[T any](items []T, offset, limit int) []T {
	if offset >= len(items) {
		return []T{}
	}
	end := offset + limit
	if limit <= 0 || end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}

type residentView struct{ s *Store }

func (v residentView) Create(_ context.Context, resident *domain.Resident) error {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	if err := v.s.enter(OpResidentCreate); err != nil {
		return err
	}
	if !resident.Variant.Valid() {
		return domain.ErrInvalidVariant
	}
	if !v.planExists(resident) {
		return domain.ErrUnknownReference
	}
	resident.ID = uuid.New()
	now := time.Now().UTC()
	resident.CreatedAt = now
	resident.UpdatedAt = now
	v.s.residents[resident.ID] = *resident
	return nil
}

func (v residentView) GetByID(_ context.Context, tenantID uuid.UUID, variant domain.Variant, residentID uuid.UUID) (*domain.Resident, error) {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	r, ok := v.s.residents[residentID]
	if !ok || r.TenantID != tenantID || r.Variant != variant {
		return nil, domain.ErrNotFound
	}
	return &r, nil
}

func (v residentView) List(_ context.Context, tenantID uuid.UUID, variant domain.Variant, offset, limit int) ([]domain.Resident, int, error) {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	var out []domain.Resident
	for _, r := range v.s.residents {
		if r.TenantID == tenantID && r.Variant == variant {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return paginate(out, offset, limit), len(out), nil
}

func (v residentView) ListAssigned(_ context.Context, tenantID uuid.UUID) ([]domain.Resident, error) {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	var out []domain.Resident
	for _, r := range v.s.residents {
		if r.TenantID == tenantID && r.AssignedStudioID != nil {
			out = append(out, r)
		}
	}
	return out, nil
}

func (v residentView) Update(_ context.Context, resident *domain.Resident) error {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	existing, ok := v.s.residents[resident.ID]
	if !ok || existing.TenantID != resident.TenantID || existing.Variant != resident.Variant {
		return domain.ErrNotFound
	}
	if !v.planExists(resident) {
		return domain.ErrUnknownReference
	}
	resident.UpdatedAt = time.Now().UTC()
	v.s.residents[resident.ID] = *resident
	return nil
}

// planExists mirrors the students.payment_plan_id foreign key. Callers hold mu.
func (v residentView) planExists(resident *domain.Resident) bool {
	if resident.Variant != domain.VariantStudent || resident.PaymentPlanID == nil {
		return true
	}
	_, ok := v.s.plans[*resident.PaymentPlanID]
	return ok
}

func (v residentView) ClearStudio(_ context.Context, tenantID uuid.UUID, ref domain.ResidentRef) error {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	r, ok := v.s.residents[ref.ID]
	if !ok || r.TenantID != tenantID || r.Variant != ref.Variant {
		return domain.ErrNotFound
	}
	r.AssignedStudioID = nil
	v.s.residents[ref.ID] = r
	return nil
}

func (v residentView) Delete(_ context.Context, tenantID uuid.UUID, variant domain.Variant, residentID uuid.UUID) error {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	if err := v.s.enterID(OpResidentDelete, residentID); err != nil {
		return err
	}
	r, ok := v.s.residents[residentID]
	if !ok || r.TenantID != tenantID || r.Variant != variant {
		return domain.ErrNotFound
	}
	delete(v.s.residents, residentID)
	return nil
}

type studioView struct{ s *Store }

func (v studioView) Create(_ context.Context, studio *domain.Studio) error {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	studio.ID = uuid.New()
	now := time.Now().UTC()
	studio.CreatedAt, studio.UpdatedAt = now, now
	studio.Occupied, studio.OccupiedBy, studio.OccupantVariant = false, nil, nil
	v.s.studios[studio.ID] = *studio
	return nil
}

func (v studioView) GetByID(_ context.Context, tenantID, studioID uuid.UUID) (*domain.Studio, error) {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	st, ok := v.s.studios[studioID]
	if !ok || st.TenantID != tenantID {
		return nil, domain.ErrNotFound
	}
	return &st, nil
}

func (v studioView) List(_ context.Context, tenantID uuid.UUID, vacantOnly bool, offset, limit int) ([]domain.Studio, int, error) {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	var out []domain.Studio
	for _, st := range v.s.studios {
		if st.TenantID == tenantID && (!vacantOnly || !st.Occupied) {
			out = append(out, st)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return paginate(out, offset, limit), len(out), nil
}

func (v studioView) ListOccupied(_ context.Context, tenantID uuid.UUID) ([]domain.Studio, error) {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	var out []domain.Studio
	for _, st := range v.s.studios {
		if st.TenantID == tenantID && st.Occupied {
			out = append(out, st)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (v studioView) Update(_ context.Context, studio *domain.Studio) error {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	st, ok := v.s.studios[studio.ID]
	if !ok || st.TenantID != studio.TenantID {
		return domain.ErrNotFound
	}
	st.Name, st.Floor, st.MonthlyRate = studio.Name, studio.Floor, studio.MonthlyRate
	st.UpdatedAt = time.Now().UTC()
	v.s.studios[st.ID] = st
	*studio = st
	return nil
}

func (v studioView) Delete(_ context.Context, tenantID, studioID uuid.UUID) error {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	st, ok := v.s.studios[studioID]
	if !ok || st.TenantID != tenantID {
		return domain.ErrNotFound
	}
	if st.Occupied {
		return domain.ErrStudioOccupied
	}
	delete(v.s.studios, studioID)
	return nil
}

func (v studioView) Claim(_ context.Context, tenantID, studioID uuid.UUID, ref domain.ResidentRef) error {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	if err := v.s.enterID(OpStudioClaim, studioID); err != nil {
		return err
	}
	st, ok := v.s.studios[studioID]
	if !ok || st.TenantID != tenantID {
		return domain.ErrNotFound
	}
	if st.Occupied && !st.HeldBy(ref.ID) {
		return domain.ErrStudioOccupied
	}
	id, variant := ref.ID, ref.Variant
	st.Occupied, st.OccupiedBy, st.OccupantVariant = true, &id, &variant
	st.UpdatedAt = time.Now().UTC()
	v.s.studios[studioID] = st
	return nil
}

func (v studioView) Release(_ context.Context, tenantID, studioID, holder uuid.UUID) error {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	if err := v.s.enterID(OpStudioRelease, studioID); err != nil {
		return err
	}
	st, ok := v.s.studios[studioID]
	if !ok || st.TenantID != tenantID {
		return domain.ErrNotFound
	}
	if !st.Occupied {
		return nil
	}
	if !st.HeldBy(holder) {
		return domain.ErrStudioOccupied
	}
	st.Occupied, st.OccupiedBy, st.OccupantVariant = false, nil, nil
	st.UpdatedAt = time.Now().UTC()
	v.s.studios[studioID] = st
	return nil
}

type leadView struct{ s *Store }

func (v leadView) Create(_ context.Context, lead *domain.Lead) error {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	lead.ID = uuid.New()
	now := time.Now().UTC()
	lead.CreatedAt, lead.UpdatedAt = now, now
	v.s.leads[lead.ID] = *lead
	return nil
}

func (v leadView) GetByID(_ context.Context, tenantID, leadID uuid.UUID) (*domain.Lead, error) {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	l, ok := v.s.leads[leadID]
	if !ok || l.TenantID != tenantID {
		return nil, domain.ErrNotFound
	}
	return &l, nil
}

func (v leadView) List(_ context.Context, tenantID uuid.UUID, offset, limit int) ([]domain.Lead, int, error) {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	var out []domain.Lead
	for _, l := range v.s.leads {
		if l.TenantID == tenantID {
			out = append(out, l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return paginate(out, offset, limit), len(out), nil
}

func (v leadView) Update(_ context.Context, lead *domain.Lead) error {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	existing, ok := v.s.leads[lead.ID]
	if !ok || existing.TenantID != lead.TenantID {
		return domain.ErrNotFound
	}
	lead.UpdatedAt = time.Now().UTC()
	v.s.leads[lead.ID] = *lead
	return nil
}

func (v leadView) Delete(_ context.Context, tenantID, leadID uuid.UUID) error {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	if err := v.s.enterID(OpLeadDelete, leadID); err != nil {
		return err
	}
	l, ok := v.s.leads[leadID]
	if !ok || l.TenantID != tenantID {
		return domain.ErrNotFound
	}
	delete(v.s.leads, leadID)
	return nil
}

type invoiceView struct{ s *Store }

func (v invoiceView) Create(_ context.Context, invoice *domain.Invoice) error {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	if err := v.s.enter(OpInvoiceCreate); err != nil {
		return err
	}
	invoice.ID = uuid.New()
	now := time.Now().UTC()
	invoice.CreatedAt, invoice.UpdatedAt = now, now
	v.s.invoices[invoice.ID] = *invoice
	return nil
}

func (v invoiceView) GetByID(_ context.Context, tenantID, invoiceID uuid.UUID) (*domain.Invoice, error) {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	inv, ok := v.s.invoices[invoiceID]
	if !ok || inv.TenantID != tenantID {
		return nil, domain.ErrNotFound
	}
	return &inv, nil
}

func (v invoiceView) List(_ context.Context, tenantID uuid.UUID, filters domain.InvoiceFilters, offset, limit int) ([]domain.Invoice, int, error) {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	var out []domain.Invoice
	for _, inv := range v.s.invoices {
		if inv.TenantID != tenantID {
			continue
		}
		if filters.Status != "" && inv.Status != filters.Status {
			continue
		}
		if filters.ResidentID != nil && inv.ResidentID != *filters.ResidentID {
			continue
		}
		out = append(out, inv)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DueDate.After(out[j].DueDate) })
	return paginate(out, offset, limit), len(out), nil
}

func (v invoiceView) UpdateStatus(_ context.Context, tenantID, invoiceID uuid.UUID, status domain.InvoiceStatus) error {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	inv, ok := v.s.invoices[invoiceID]
	if !ok || inv.TenantID != tenantID {
		return domain.ErrNotFound
	}
	if inv.Status != domain.InvoiceStatusPending && inv.Status != domain.InvoiceStatusOverdue {
		return domain.ErrInvoiceNotPending
	}
	now := time.Now().UTC()
	inv.Status = status
	inv.PaidAt = nil
	if status == domain.InvoiceStatusPaid {
		inv.PaidAt = &now
	}
	inv.UpdatedAt = now
	v.s.invoices[invoiceID] = inv
	return nil
}

func (v invoiceView) MarkOverdue(_ context.Context, asOf time.Time) (int64, error) {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	var n int64
	for id, inv := range v.s.invoices {
		if inv.Status == domain.InvoiceStatusPending && inv.DueDate.Before(asOf) {
			inv.Status = domain.InvoiceStatusOverdue
			v.s.invoices[id] = inv
			n++
		}
	}
	return n, nil
}

type planView struct{ s *Store }

func (v planView) Create(_ context.Context, plan *domain.PaymentPlan) error {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	plan.ID = uuid.New()
	now := time.Now().UTC()
	plan.CreatedAt, plan.UpdatedAt = now, now
	v.s.plans[plan.ID] = *plan
	return nil
}

func (v planView) GetByID(_ context.Context, tenantID, planID uuid.UUID) (*domain.PaymentPlan, error) {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	p, ok := v.s.plans[planID]
	if !ok || p.TenantID != tenantID {
		return nil, domain.ErrNotFound
	}
	return &p, nil
}

func (v planView) List(_ context.Context, tenantID uuid.UUID) ([]domain.PaymentPlan, error) {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	var out []domain.PaymentPlan
	for _, p := range v.s.plans {
		if p.TenantID == tenantID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (v planView) Update(_ context.Context, plan *domain.PaymentPlan) error {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	existing, ok := v.s.plans[plan.ID]
	if !ok || existing.TenantID != plan.TenantID {
		return domain.ErrNotFound
	}
	plan.UpdatedAt = time.Now().UTC()
	v.s.plans[plan.ID] = *plan
	return nil
}

func (v planView) Delete(_ context.Context, tenantID, planID uuid.UUID) error {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	p, ok := v.s.plans[planID]
	if !ok || p.TenantID != tenantID {
		return domain.ErrNotFound
	}
	delete(v.s.plans, planID)
	return nil
}
