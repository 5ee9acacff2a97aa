// Package memory реализует хранилище данных в памяти процесса.
// Используется для локальной разработки и тестов без PostgreSQL.
// Допуск лидов сериализуется мьютексом подрядчика, поэтому гонка
// конкурентных заявок к одному подрядчику исключена и здесь.
package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/d-directory/d-directory/internal/models"
)

// Store хранит все сущности каталога в памяти.
type Store struct {
	mu sync.RWMutex

	contractors   map[int]*models.Contractor
	plans         map[int]*models.Plan
	projectTypes  map[int]*models.ProjectType
	subscriptions map[int]*models.Subscription
	leads         map[int]*models.Lead
	users         map[string]*models.User

	// Отдельный мьютекс на подрядчика сериализует проверку квоты
	// и вставку лида для конкурентных заявок.
	contractorLocks map[int]*sync.Mutex

	nextContractorID   int
	nextPlanID         int
	nextProjectTypeID  int
	nextSubscriptionID int
	nextLeadID         int
}

// New создаёт пустое хранилище в памяти.
func New() *Store {
	return &Store{
		contractors:     make(map[int]*models.Contractor),
		plans:           make(map[int]*models.Plan),
		projectTypes:    make(map[int]*models.ProjectType),
		subscriptions:   make(map[int]*models.Subscription),
		leads:           make(map[int]*models.Lead),
		users:           make(map[string]*models.User),
		contractorLocks: make(map[int]*sync.Mutex),
	}
}

func (s *Store) contractorLock(contractorID int) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.contractorLocks[contractorID]
	if !ok {
		lock = &sync.Mutex{}
		s.contractorLocks[contractorID] = lock
	}
	return lock
}

func copyContractor(c *models.Contractor) *models.Contractor {
	clone := *c
	clone.ProjectTypes = append([]string(nil), c.ProjectTypes...)
	return &clone
}

// CreateContractor сохраняет новую карточку подрядчика и возвращает её ID.
func (s *Store) CreateContractor(ctx context.Context, c models.Contractor) (int, error) {
	const op = "memory.CreateContractor"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextContractorID++
	c.ID = s.nextContractorID
	now := time.Now()
	c.CreatedAt = now
	c.UpdatedAt = now
	s.contractors[c.ID] = copyContractor(&c)
	return c.ID, nil
}

// GetContractor возвращает карточку подрядчика по её ID.
func (s *Store) GetContractor(ctx context.Context, id int) (*models.Contractor, error) {
	const op = "memory.GetContractor"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.contractors[id]
	if !ok {
		return nil, fmt.Errorf("%s: %w", op, models.ErrContractorNotFound)
	}
	return copyContractor(c), nil
}

func matchesFilter(c *models.Contractor, filter models.ContractorFilter) bool {
	if filter.Category != "" && c.Category != filter.Category {
		return false
	}
	if filter.Location != "" &&
		!strings.Contains(strings.ToLower(c.Location), strings.ToLower(filter.Location)) {
		return false
	}
	if filter.Radius > 0 && c.ServiceRadius < filter.Radius {
		return false
	}
	if filter.Search != "" {
		needle := strings.ToLower(filter.Search)
		if !strings.Contains(strings.ToLower(c.Name), needle) &&
			!strings.Contains(strings.ToLower(c.Description), needle) &&
			!strings.Contains(strings.ToLower(c.Category), needle) {
			return false
		}
	}
	return true
}

// ListContractors возвращает карточки подрядчиков с учётом фильтров каталога.
func (s *Store) ListContractors(ctx context.Context, filter models.ContractorFilter) ([]*models.Contractor, error) {
	const op = "memory.ListContractors"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*models.Contractor
	for _, c := range s.contractors {
		if matchesFilter(c, filter) {
			result = append(result, copyContractor(c))
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

// UpdateContractor обновляет карточку подрядчика по её ID
// и возвращает количество изменённых записей.
func (s *Store) UpdateContractor(ctx context.Context, c models.Contractor, id int) (int, error) {
	const op = "memory.UpdateContractor"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.contractors[id]
	if !ok {
		return 0, nil
	}
	c.ID = id
	c.CreatedAt = existing.CreatedAt
	c.UpdatedAt = time.Now()
	s.contractors[id] = copyContractor(&c)
	return 1, nil
}

// DeleteContractor удаляет карточку подрядчика по её ID
// и возвращает количество удалённых записей.
func (s *Store) DeleteContractor(ctx context.Context, id int) (int, error) {
	const op = "memory.DeleteContractor"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.contractors[id]; !ok {
		return 0, nil
	}
	delete(s.contractors, id)
	return 1, nil
}

// SavePlan сохраняет тарифный план и возвращает его ID.
func (s *Store) SavePlan(ctx context.Context, p models.Plan) (int, error) {
	const op = "memory.SavePlan"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextPlanID++
	p.ID = s.nextPlanID
	clone := p
	clone.Features = append([]string(nil), p.Features...)
	s.plans[p.ID] = &clone
	return p.ID, nil
}

// ListPlans возвращает активные тарифные планы по возрастанию цены.
func (s *Store) ListPlans(ctx context.Context) ([]*models.Plan, error) {
	const op = "memory.ListPlans"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*models.Plan
	for _, p := range s.plans {
		if !p.Active {
			continue
		}
		clone := *p
		clone.Features = append([]string(nil), p.Features...)
		result = append(result, &clone)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Price < result[j].Price })
	return result, nil
}

// GetPlan возвращает тарифный план по его ID.
func (s *Store) GetPlan(ctx context.Context, id int) (*models.Plan, error) {
	const op = "memory.GetPlan"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.plans[id]
	if !ok {
		return nil, fmt.Errorf("%s: %w", op, models.ErrPlanNotFound)
	}
	clone := *p
	clone.Features = append([]string(nil), p.Features...)
	return &clone, nil
}

// SaveProjectType сохраняет категорию работ и возвращает её ID.
func (s *Store) SaveProjectType(ctx context.Context, pt models.ProjectType) (int, error) {
	const op = "memory.SaveProjectType"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextProjectTypeID++
	pt.ID = s.nextProjectTypeID
	clone := pt
	s.projectTypes[pt.ID] = &clone
	return pt.ID, nil
}

// ListProjectTypes возвращает все категории работ каталога.
func (s *Store) ListProjectTypes(ctx context.Context) ([]*models.ProjectType, error) {
	const op = "memory.ListProjectTypes"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*models.ProjectType
	for _, pt := range s.projectTypes {
		clone := *pt
		result = append(result, &clone)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (s *Store) activeSubscriptionLocked(contractorID int) *models.Subscription {
	for _, sub := range s.subscriptions {
		if sub.ContractorID == contractorID && sub.Status == models.SubscriptionStatusActive {
			return sub
		}
	}
	return nil
}

// GetActiveSubscription возвращает активную подписку подрядчика.
func (s *Store) GetActiveSubscription(ctx context.Context, contractorID int) (*models.Subscription, error) {
	const op = "memory.GetActiveSubscription"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	sub := s.activeSubscriptionLocked(contractorID)
	if sub == nil {
		return nil, fmt.Errorf("%s: %w", op, models.ErrSubscriptionNotFound)
	}
	clone := *sub
	return &clone, nil
}

// GetSubscriptionWithPlan возвращает активную подписку подрядчика
// вместе с её тарифным планом.
func (s *Store) GetSubscriptionWithPlan(ctx context.Context, contractorID int) (*models.SubscriptionWithPlan, error) {
	const op = "memory.GetSubscriptionWithPlan"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	sub := s.activeSubscriptionLocked(contractorID)
	if sub == nil {
		return nil, fmt.Errorf("%s: %w", op, models.ErrSubscriptionNotFound)
	}
	plan, ok := s.plans[sub.PlanID]
	if !ok {
		return nil, fmt.Errorf("%s: %w", op, models.ErrPlanNotFound)
	}
	result := &models.SubscriptionWithPlan{Subscription: *sub, Plan: *plan}
	result.Plan.Features = append([]string(nil), plan.Features...)
	return result, nil
}

// ReplaceSubscription деактивирует текущую активную подписку подрядчика
// и создаёт новую с нулевым счётчиком лидов.
func (s *Store) ReplaceSubscription(ctx context.Context, sub models.Subscription) (int, error) {
	const op = "memory.ReplaceSubscription"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	lock := s.contractorLock(sub.ContractorID)
	lock.Lock()
	defer lock.Unlock()

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	if current := s.activeSubscriptionLocked(sub.ContractorID); current != nil {
		current.Status = models.SubscriptionStatusInactive
		current.UpdatedAt = now
	}

	s.nextSubscriptionID++
	sub.ID = s.nextSubscriptionID
	sub.LeadsUsed = 0
	sub.Status = models.SubscriptionStatusActive
	sub.CreatedAt = now
	sub.UpdatedAt = now
	clone := sub
	s.subscriptions[sub.ID] = &clone
	return sub.ID, nil
}

// IncrementLeadUsage увеличивает счётчик использованных лидов
// активной подписки подрядчика на единицу.
func (s *Store) IncrementLeadUsage(ctx context.Context, contractorID int) error {
	const op = "memory.IncrementLeadUsage"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Без активной подписки инкремент пропускается молча.
	sub := s.activeSubscriptionLocked(contractorID)
	if sub == nil {
		return nil
	}
	sub.LeadsUsed++
	sub.UpdatedAt = time.Now()
	return nil
}

// AdmitLead проводит заявку через шлюз квоты. Проверка счётчика и вставка
// лида выполняются под мьютексом подрядчика, отдельным от общего мьютекса
// хранилища, поэтому заявки к разным подрядчикам не мешают друг другу.
// Подрядчик без активной подписки принимает заявки без учёта квоты.
func (s *Store) AdmitLead(ctx context.Context, lead models.Lead) (*models.Lead, error) {
	const op = "memory.AdmitLead"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	lock := s.contractorLock(lead.ContractorID)
	lock.Lock()
	defer lock.Unlock()

	s.mu.Lock()
	defer s.mu.Unlock()

	sub := s.activeSubscriptionLocked(lead.ContractorID)
	if sub != nil {
		plan, ok := s.plans[sub.PlanID]
		if !ok {
			return nil, fmt.Errorf("%s: %w", op, models.ErrPlanNotFound)
		}
		if sub.LeadsUsed >= plan.MonthlyLeadQuota {
			return nil, fmt.Errorf("%s: %w", op, &models.QuotaExceededError{
				LeadsUsed:        sub.LeadsUsed,
				MonthlyLeadQuota: plan.MonthlyLeadQuota,
			})
		}
	}

	s.nextLeadID++
	now := time.Now()
	lead.ID = s.nextLeadID
	lead.Status = models.LeadStatusNew
	lead.CreatedAt = now
	lead.UpdatedAt = now
	clone := lead
	s.leads[lead.ID] = &clone

	if sub != nil {
		sub.LeadsUsed++
		sub.UpdatedAt = now
	}

	result := lead
	return &result, nil
}

// ListLeads возвращает лиды, свежие первыми. Фильтр по подрядчику опционален.
func (s *Store) ListLeads(ctx context.Context, filter models.LeadFilter) ([]*models.Lead, error) {
	const op = "memory.ListLeads"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*models.Lead
	for _, lead := range s.leads {
		if filter.ContractorID != nil && lead.ContractorID != *filter.ContractorID {
			continue
		}
		clone := *lead
		result = append(result, &clone)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].ID > result[j].ID
		}
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

// GetLead возвращает лид по его ID.
func (s *Store) GetLead(ctx context.Context, id int) (*models.Lead, error) {
	const op = "memory.GetLead"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	lead, ok := s.leads[id]
	if !ok {
		return nil, fmt.Errorf("%s: %w", op, models.ErrLeadNotFound)
	}
	clone := *lead
	return &clone, nil
}

// UpdateLeadStatus переводит лид в новый статус воронки.
func (s *Store) UpdateLeadStatus(ctx context.Context, id int, status string) (*models.Lead, error) {
	const op = "memory.UpdateLeadStatus"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	lead, ok := s.leads[id]
	if !ok {
		return nil, fmt.Errorf("%s: %w", op, models.ErrLeadNotFound)
	}
	lead.Status = status
	lead.UpdatedAt = time.Now()
	clone := *lead
	return &clone, nil
}

// RegisterUser сохраняет нового пользователя и возвращает его UID.
func (s *Store) RegisterUser(ctx context.Context, user models.User) (string, error) {
	const op = "memory.RegisterUser"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[user.Username]; ok {
		return "", fmt.Errorf("%s: username already taken", op)
	}
	user.UID = uuid.New().String()
	user.CreatedAt = time.Now()
	clone := user
	s.users[user.Username] = &clone
	return user.UID, nil
}

// GetUserByUsername возвращает пользователя по его username.
func (s *Store) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	const op = "memory.GetUserByUsername"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[username]
	if !ok {
		return nil, fmt.Errorf("%s: user not found", op)
	}
	clone := *user
	return &clone, nil
}
