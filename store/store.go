// store/store.go
// Package store holds the inventory published by the Jamf client: the computer list,
// the mobile device list and the most recently fetched device detail (typed and raw).
// Every write replaces its value wholesale and notifies subscribers.
package store

import (
	"maps"
	"slices"
	"sync"

	"github.com/deploymenttheory/go-jamfpro-mdm-client/logger"
	"github.com/deploymenttheory/go-jamfpro-mdm-client/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// EventKind names the value that changed.
type EventKind int

const (
	EventComputers EventKind = iota
	EventMobileDevices
	EventMobileDeviceDetail
	EventMobileDeviceDetailRaw
)

func (k EventKind) String() string {
	switch k {
	case EventComputers:
		return "computers"
	case EventMobileDevices:
		return "mobileDevices"
	case EventMobileDeviceDetail:
		return "mobileDeviceDetail"
	case EventMobileDeviceDetailRaw:
		return "mobileDeviceDetailRaw"
	default:
		return "unknown"
	}
}

// Event is delivered to subscribers after a value was replaced.
type Event struct {
	Kind  EventKind
	Count int // number of records now held for Kind
}

type subscription struct {
	id uuid.UUID
	fn func(Event)
}

// Store is safe for concurrent use. Overlapping writes of the same value are not ordered:
// the last writer wins.
type Store struct {
	log logger.Logger

	mu            sync.RWMutex
	computers     []models.Computer
	mobileDevices []models.MobileDeviceSummary
	detail        *models.MobileDeviceDetail
	detailRaw     map[string]any

	subsMu      sync.Mutex
	subscribers []subscription
}

// New returns an empty Store.
func New(log logger.Logger) *Store {
	if log == nil {
		log = logger.NewNopLogger()
	}
	return &Store{log: log}
}

// Computers returns a copy of the current computer list.
func (s *Store) Computers() []models.Computer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.computers)
}

// MobileDevices returns a copy of the current mobile device list.
func (s *Store) MobileDevices() []models.MobileDeviceSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.mobileDevices)
}

// MobileDeviceDetail returns a copy of the last fetched detail, or nil.
func (s *Store) MobileDeviceDetail() *models.MobileDeviceDetail {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.detail == nil {
		return nil
	}
	detail := *s.detail
	return &detail
}

// MobileDeviceDetailRaw returns a shallow copy of the last fetched raw detail, or nil.
// Nested maps and slices are shared and must not be modified.
func (s *Store) MobileDeviceDetailRaw() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return maps.Clone(s.detailRaw)
}

// SetComputers replaces the computer list.
func (s *Store) SetComputers(computers []models.Computer) {
	computers = slices.Clone(computers)
	s.mu.Lock()
	s.computers = computers
	s.mu.Unlock()
	s.notify(Event{Kind: EventComputers, Count: len(computers)})
}

// SetMobileDevices replaces the mobile device list.
func (s *Store) SetMobileDevices(devices []models.MobileDeviceSummary) {
	devices = slices.Clone(devices)
	s.mu.Lock()
	s.mobileDevices = devices
	s.mu.Unlock()
	s.notify(Event{Kind: EventMobileDevices, Count: len(devices)})
}

// SetMobileDeviceDetail replaces the stored detail.
func (s *Store) SetMobileDeviceDetail(detail models.MobileDeviceDetail) {
	s.mu.Lock()
	s.detail = &detail
	s.mu.Unlock()
	s.notify(Event{Kind: EventMobileDeviceDetail, Count: 1})
}

// SetMobileDeviceDetailRaw replaces the stored raw detail.
func (s *Store) SetMobileDeviceDetailRaw(raw map[string]any) {
	raw = maps.Clone(raw)
	s.mu.Lock()
	s.detailRaw = raw
	s.mu.Unlock()
	s.notify(Event{Kind: EventMobileDeviceDetailRaw, Count: len(raw)})
}

// Subscribe registers fn for every subsequent change and returns the function that removes it.
// fn runs on the goroutine that made the change, after the new value is visible to readers.
func (s *Store) Subscribe(fn func(Event)) (unsubscribe func()) {
	id := uuid.New()

	s.subsMu.Lock()
	s.subscribers = append(s.subscribers, subscription{id: id, fn: fn})
	s.subsMu.Unlock()

	s.log.Debug("Store subscriber added", zap.String("subscription_id", id.String()))

	var once sync.Once
	return func() {
		once.Do(func() {
			s.subsMu.Lock()
			s.subscribers = slices.DeleteFunc(s.subscribers, func(sub subscription) bool { return sub.id == id })
			s.subsMu.Unlock()
			s.log.Debug("Store subscriber removed", zap.String("subscription_id", id.String()))
		})
	}
}

func (s *Store) notify(event Event) {
	s.subsMu.Lock()
	subs := slices.Clone(s.subscribers)
	s.subsMu.Unlock()

	s.log.Debug("Store updated", zap.String("kind", event.Kind.String()), zap.Int("records", event.Count), zap.Int("subscribers", len(subs)))

	for _, sub := range subs {
		sub.fn(event)
	}
}
