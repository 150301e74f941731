// Package store owns the process-wide catalog snapshot.
//
// Readers call Current once per request and keep the returned pointer; a
// reload builds a complete new Snapshot off to the side and publishes it with
// a single atomic swap, so products, services and the knowledge text always
// change together.
package store

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/MJBeltran13/ai-chatbot-shop/internal/catalog"
	"github.com/MJBeltran13/ai-chatbot-shop/internal/document"
	"github.com/MJBeltran13/ai-chatbot-shop/internal/logger"
)

// ErrNotLoaded is returned when the catalog has never been loaded
// successfully.
var ErrNotLoaded = errors.New("store: catalog not loaded")

// Snapshot is one immutable generation of catalog data.
type Snapshot struct {
	Version   uint64
	// Digest identifies the catalog content across processes; equal
	// documents give equal digests.
	Digest    string
	Products  *catalog.Products
	Services  *catalog.Services
	Warranty  string
	FAQ       string
	Contact   string
	Raw       string
	Knowledge string
	Source    []string
	LoadedAt  time.Time
}

func emptySnapshot() *Snapshot {
	return &Snapshot{
		Products: catalog.NewProducts(),
		Services: catalog.NewServices(),
		Warranty: catalog.NotFound(catalog.WarrantySpec.Name),
		FAQ:      catalog.NotFound(catalog.FAQSpec.Name),
		Contact:  catalog.NotFound(catalog.ContactSpec.Name),
	}
}

// Available reports whether there is anything to answer from.
func (s *Snapshot) Available() bool {
	if s == nil {
		return false
	}
	return s.Products.Len() > 0 || s.Services.Len() > 0 || strings.TrimSpace(s.Raw) != ""
}

// Require returns ErrNotLoaded for an unavailable snapshot.
func (s *Snapshot) Require() error {
	if !s.Available() {
		return ErrNotLoaded
	}
	return nil
}

// DocumentLoader supplies the raw catalog text.
type DocumentLoader interface {
	Load(ctx context.Context) (document.Document, error)
}

// Store publishes catalog snapshots.
type Store struct {
	loader DocumentLoader
	log    logger.Logger

	current atomic.Pointer[Snapshot]
	version atomic.Uint64

	// loadMu serializes loads; readers never take it.
	loadMu  sync.Mutex
	lastErr atomic.Pointer[error]

	listenersMu sync.RWMutex
	listeners   []func(*Snapshot)
}

// New returns a store holding the empty snapshot until Load succeeds.
func New(loader DocumentLoader, log logger.Logger) *Store {
	if log == nil {
		log = logger.NewNop()
	}
	s := &Store{loader: loader, log: log}
	s.current.Store(emptySnapshot())
	return s
}

// Current returns the published snapshot. It never returns nil.
func (s *Store) Current() *Snapshot {
	return s.current.Load()
}

// LastError returns the error of the most recent failed load, or nil after a
// successful one.
func (s *Store) LastError() error {
	if p := s.lastErr.Load(); p != nil {
		return *p
	}
	return nil
}

// OnReload registers fn to run after every successful publish.
func (s *Store) OnReload(fn func(*Snapshot)) {
	s.listenersMu.Lock()
	defer s.listenersMu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// Load reads the documents, rebuilds the catalog and publishes it. On failure
// the previous snapshot stays in place and the error is returned.
func (s *Store) Load(ctx context.Context) (*Snapshot, error) {
	s.loadMu.Lock()
	defer s.loadMu.Unlock()

	start := time.Now()
	doc, err := s.loader.Load(ctx)
	if err != nil {
		return nil, s.fail(fmt.Errorf("load documents: %w", err))
	}

	c := catalog.Build(doc.Text, doc.Supplement)
	if c.Empty() {
		return nil, s.fail(fmt.Errorf("build catalog: %w", document.ErrNoText))
	}

	snap := &Snapshot{
		Version:   s.version.Add(1),
		Digest:    digest(c.Knowledge),
		Products:  c.Products,
		Services:  c.Services,
		Warranty:  c.Warranty,
		FAQ:       c.FAQ,
		Contact:   c.Contact,
		Raw:       c.Raw,
		Knowledge: c.Knowledge,
		Source:    doc.Source,
		LoadedAt:  time.Now(),
	}
	s.current.Store(snap)
	s.lastErr.Store(nil)

	s.log.Info("catalog loaded", map[string]interface{}{
		"version":  snap.Version,
		"products": snap.Products.Len(),
		"services": snap.Services.Len(),
		"sources":  snap.Source,
		"took_ms":  time.Since(start).Milliseconds(),
	})

	s.listenersMu.RLock()
	listeners := make([]func(*Snapshot), len(s.listeners))
	copy(listeners, s.listeners)
	s.listenersMu.RUnlock()
	for _, fn := range listeners {
		fn(snap)
	}
	return snap, nil
}

func (s *Store) fail(err error) error {
	s.lastErr.Store(&err)
	fields := map[string]interface{}{"serving_version": s.Current().Version}
	if s.Current().Available() {
		s.log.WithError(err).Warn("catalog reload failed, keeping previous catalog", fields)
	} else {
		s.log.WithError(err).Error("catalog unavailable", fields)
	}
	return err
}

func digest(knowledge string) string {
	sum := sha256.Sum256([]byte(knowledge))
	return hex.EncodeToString(sum[:8])
}
