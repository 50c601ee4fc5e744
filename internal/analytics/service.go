package analytics

import (
	"context"
	"encoding/json"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/sereneleaf/storefront-backend/pkg/config"
	"github.com/sereneleaf/storefront-backend/pkg/logger"
	"github.com/sereneleaf/storefront-backend/pkg/metrics"
)

const publishTimeout = 5 * time.Second

// Service is the fire-and-forget analytics emitter. The sink resolves
// asynchronously at startup; every emission before the sink is ready is
// dropped and counted, never queued. Emissions never block or fail the
// request that produced them.
type Service struct {
	enabled bool
	logg    *logger.Logger
	metrics *metrics.AnalyticsMetrics
	search  *debouncer
	sink    atomic.Value
	now     func() time.Time
	publish func(fn func())
}

type sinkBox struct {
	sink Sink
}

func NewService(cfg config.AnalyticsConfig, search config.SearchConfig, m *metrics.AnalyticsMetrics, logg *logger.Logger) *Service {
	return &Service{
		enabled: cfg.Enabled,
		logg:    logg,
		metrics: m,
		search:  newDebouncer(search.DebounceWindow),
		now:     time.Now,
		publish: func(fn func()) { go fn() },
	}
}

// SetSink installs the delivery sink. Safe to call once resolution
// finishes while emissions are already flowing.
func (s *Service) SetSink(sink Sink) {
	s.sink.Store(sinkBox{sink: sink})
}

// ResolveSink runs the resolver in the background and installs its result.
// Events emitted before resolution completes are dropped. A failed
// resolution leaves the service dropping for its lifetime.
func (s *Service) ResolveSink(ctx context.Context, resolve func(context.Context) (Sink, error)) {
	if !s.enabled {
		return
	}
	go func() {
		sink, err := resolve(ctx)
		if err != nil {
			if s.logg != nil {
				s.logg.Error(ctx, "analytics sink resolution failed, events will be dropped", err)
			}
			return
		}
		s.SetSink(sink)
		if s.logg != nil {
			s.logg.Info(ctx, "analytics sink ready")
		}
	}()
}

// Track emits a named track event.
func (s *Service) Track(ctx context.Context, anonymousID, name string, payload any) {
	s.emit(ctx, KindTrack, name, anonymousID, payload)
}

// Page emits a page view.
func (s *Service) Page(ctx context.Context, anonymousID string, payload PagePayload) {
	s.emit(ctx, KindPage, "", anonymousID, payload)
}

// Identify emits profile traits for the anonymous visitor.
func (s *Service) Identify(ctx context.Context, anonymousID string, traits IdentifyTraits) {
	s.emit(ctx, KindIdentify, "", anonymousID, traits)
}

// TrackSearch debounces Products Searched per visitor so only the last
// query in a typing burst is emitted.
func (s *Service) TrackSearch(anonymousID string, payload SearchPayload) {
	s.search.Call(anonymousID, func() {
		s.emit(context.Background(), KindTrack, EventProductsSearched, anonymousID, payload)
	})
}

// Close stops the search debouncer, cancelling any pending emission.
func (s *Service) Close() {
	s.search.Stop()
}

func (s *Service) currentSink() Sink {
	if box, ok := s.sink.Load().(sinkBox); ok {
		return box.sink
	}
	return nil
}

func (s *Service) emit(ctx context.Context, kind Kind, name, anonymousID string, payload any) {
	if !s.enabled {
		return
	}
	sink := s.currentSink()
	if sink == nil {
		s.metrics.IncDropped("sink_unready")
		return
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		s.metrics.IncDropped("marshal_failed")
		if s.logg != nil {
			s.logg.Error(ctx, "analytics payload marshal failed", err)
		}
		return
	}

	envelope := Envelope{
		Version:     envelopeVersion,
		EventID:     uuid.NewString(),
		Kind:        kind,
		Name:        name,
		AnonymousID: anonymousID,
		OccurredAt:  s.now().UTC(),
		Payload:     raw,
	}

	label := name
	if label == "" {
		label = string(kind)
	}

	s.publish(func() {
		// Detached from the request context so a finished request
		// cannot cancel the publish.
		pubCtx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		defer cancel()
		if err := sink.Publish(pubCtx, envelope); err != nil {
			s.metrics.IncDropped("publish_failed")
			if s.logg != nil {
				s.logg.Error(pubCtx, "analytics publish failed", err)
			}
			return
		}
		s.metrics.IncPublished(label)
	})
}
