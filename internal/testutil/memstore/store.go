// Package memstore хранилище каталога и заказов в памяти для тестов use case.
// Повторяет поведение PostgreSQL там, где на него опирается бизнес-логика:
// ограничение исключения по занятости ресурсов и откат транзакции целиком.
package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
	catalogRepo "github.com/m04kA/SMC-VenueBookingService/internal/infra/storage/catalog"
	orderRepo "github.com/m04kA/SMC-VenueBookingService/internal/infra/storage/order"
)

type link struct {
	resourceID int64
	start      time.Time
	end        time.Time
}

type state struct {
	orders map[int64]domain.Order
	links  map[int64][]link
	nextID int64
}

func (s state) clone() state {
	cp := state{
		orders: make(map[int64]domain.Order, len(s.orders)),
		links:  make(map[int64][]link, len(s.links)),
		nextID: s.nextID,
	}
	for id, o := range s.orders {
		o.Extras = append([]string(nil), o.Extras...)
		cp.orders[id] = o
	}
	for id, l := range s.links {
		cp.links[id] = append([]link(nil), l...)
	}
	return cp
}

// Store каталог и заказы в памяти
type Store struct {
	txMu sync.Mutex
	mu   sync.Mutex

	services  map[int64]domain.Service
	resources map[int64][]domain.Resource
	st        state

	// Now для CreatedAt/UpdatedAt
	Now func() time.Time
}

// New создаёт пустое хранилище
func New() *Store {
	return &Store{
		services:  make(map[int64]domain.Service),
		resources: make(map[int64][]domain.Resource),
		st: state{
			orders: make(map[int64]domain.Order),
			links:  make(map[int64][]link),
			nextID: 1,
		},
		Now: time.Now,
	}
}

// AddService добавляет услугу и её ресурсы
func (s *Store) AddService(service domain.Service, resources ...domain.Resource) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.services[service.ID] = service
	s.resources[service.ID] = append(s.resources[service.ID], resources...)
}

// DoSerializable выполняет fn эксклюзивно и откатывает изменения при ошибке
func (s *Store) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.Lock()
	snapshot := s.st.clone()
	s.mu.Unlock()

	if err := fn(ctx); err != nil {
		s.mu.Lock()
		s.st = snapshot
		s.mu.Unlock()
		return err
	}
	return nil
}

// GetService реализует чтение каталога
func (s *Store) GetService(_ context.Context, id int64) (*domain.Service, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	svc, ok := s.services[id]
	if !ok {
		return nil, catalogRepo.ErrServiceNotFound
	}
	return &svc, nil
}

// GetResourcesForService возвращает ресурсы услуги по возрастанию ID
func (s *Store) GetResourcesForService(_ context.Context, serviceID int64) ([]domain.Resource, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := append([]domain.Resource(nil), s.resources[serviceID]...)
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Create сохраняет заказ
func (s *Store) Create(_ context.Context, order *domain.Order) (*domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.services[order.ServiceID]; !ok {
		return nil, orderRepo.ErrForeignKey
	}

	o := *order
	o.ID = s.st.nextID
	s.st.nextID++
	o.OrderDate = o.OrderDate.UTC()
	o.CreatedAt = s.Now()
	o.UpdatedAt = o.CreatedAt
	o.Service, o.User, o.Resources = nil, nil, nil
	s.st.orders[o.ID] = o

	out := o
	return &out, nil
}

// AddResources занимает ресурсы. Пересечение с активной занятостью даёт ErrResourceBusy.
func (s *Store) AddResources(_ context.Context, orderID, serviceID int64, start, end time.Time, resourceIDs []int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, id := range resourceIDs {
		if !s.belongs(id, serviceID) {
			return orderRepo.ErrForeignKey
		}
		if s.conflicts(id, start, end, orderID) {
			return orderRepo.ErrResourceBusy
		}
	}

	for _, id := range resourceIDs {
		s.st.links[orderID] = append(s.st.links[orderID], link{resourceID: id, start: start.UTC(), end: end.UTC()})
	}
	return nil
}

// GetByID возвращает заказ с услугой и ресурсами
func (s *Store) GetByID(_ context.Context, id int64) (*domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.st.orders[id]
	if !ok {
		return nil, orderRepo.ErrOrderNotFound
	}
	return s.hydrate(o), nil
}

// GetBusyIntervals возвращает занятость не отменённых заказов, пересекающую окно
func (s *Store) GetBusyIntervals(_ context.Context, q orderRepo.BusyQuery) ([]domain.BusyInterval, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	wanted := make(map[int64]bool, len(q.ResourceIDs))
	for _, id := range q.ResourceIDs {
		wanted[id] = true
	}

	out := make([]domain.BusyInterval, 0)
	for orderID, links := range s.st.links {
		o := s.st.orders[orderID]
		if !o.Status.OccupiesCalendar() {
			continue
		}
		if q.ExcludeOrderID != nil && orderID == *q.ExcludeOrderID {
			continue
		}
		for _, l := range links {
			if !wanted[l.resourceID] || !domain.Overlaps(q.From, q.To, l.start, l.end) {
				continue
			}
			out = append(out, domain.BusyInterval{OrderID: orderID, ResourceID: l.resourceID, Start: l.start, End: l.end})
		}
	}
	return out, nil
}

// UpdateStatus меняет статус, возврат из cancelled проверяет занятость
func (s *Store) UpdateStatus(_ context.Context, id int64, status domain.OrderStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.st.orders[id]
	if !ok {
		return orderRepo.ErrOrderNotFound
	}
	if !o.Status.OccupiesCalendar() && status.OccupiesCalendar() {
		for _, l := range s.st.links[id] {
			if s.conflicts(l.resourceID, l.start, l.end, id) {
				return orderRepo.ErrResourceBusy
			}
		}
	}
	o.Status = status
	o.UpdatedAt = s.Now()
	s.st.orders[id] = o
	return nil
}

// UpdateSchedule переносит заказ и его занятость
func (s *Store) UpdateSchedule(_ context.Context, id int64, start, end time.Time, totalPrice decimal.Decimal) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.st.orders[id]
	if !ok {
		return orderRepo.ErrOrderNotFound
	}
	if o.Status.OccupiesCalendar() {
		for _, l := range s.st.links[id] {
			if s.conflicts(l.resourceID, start, end, id) {
				return orderRepo.ErrResourceBusy
			}
		}
	}

	o.OrderDate = start.UTC()
	o.TotalPrice = totalPrice
	o.UpdatedAt = s.Now()
	s.st.orders[id] = o

	links := s.st.links[id]
	for i := range links {
		links[i].start, links[i].end = start.UTC(), end.UTC()
	}
	return nil
}

// Orders возвращает все заказы по возрастанию ID
func (s *Store) Orders() []*domain.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*domain.Order, 0, len(s.st.orders))
	for _, o := range s.st.orders {
		out = append(out, s.hydrate(o))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *Store) hydrate(o domain.Order) *domain.Order {
	if svc, ok := s.services[o.ServiceID]; ok {
		o.Service = &svc
	}
	o.Resources = make([]domain.Resource, 0, len(s.st.links[o.ID]))
	for _, l := range s.st.links[o.ID] {
		for _, r := range s.resources[o.ServiceID] {
			if r.ID == l.resourceID {
				o.Resources = append(o.Resources, r)
			}
		}
	}
	o.Extras = append([]string(nil), o.Extras...)
	return &o
}

func (s *Store) belongs(resourceID, serviceID int64) bool {
	for _, r := range s.resources[serviceID] {
		if r.ID == resourceID {
			return true
		}
	}
	return false
}

func (s *Store) conflicts(resourceID int64, start, end time.Time, exceptOrderID int64) bool {
	for orderID, links := range s.st.links {
		if orderID == exceptOrderID || !s.st.orders[orderID].Status.OccupiesCalendar() {
			continue
		}
		for _, l := range links {
			if l.resourceID == resourceID && domain.Overlaps(start, end, l.start, l.end) {
				return true
			}
		}
	}
	return false
}
