// Package session stores verification-journey state server side, keyed by
// the opaque session cookie. Entries carry a sliding TTL so abandoned
// journeys disappear on their own.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shandysiswandi/authgate/internal/gateway/entity"
	"github.com/shandysiswandi/authgate/internal/pkg/goerror"
	"github.com/shandysiswandi/authgate/internal/pkg/instrument"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const defaultTTL = 30 * time.Minute

type Store struct {
	client *redis.Client
	ins    instrument.Instrumentation
	prefix string
	ttl    time.Duration
}

func NewStore(client *redis.Client, ins instrument.Instrumentation, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = defaultTTL
	}

	return &Store{
		client: client,
		ins:    ins,
		prefix: "session:",
		ttl:    ttl,
	}
}

func (s *Store) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("gateway.outbound.session").Start(ctx, name)
}

func (s *Store) endSpan(span trace.Span, err error) {
	if err != nil && !errors.Is(err, goerror.ErrNotFound) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

func (s *Store) Get(ctx context.Context, id string) (_ *entity.Session, err error) {
	ctx, span := s.startSpan(ctx, "Get")
	defer func() { s.endSpan(span, err) }()

	raw, err := s.client.Get(ctx, s.prefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, goerror.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var sess entity.Session
	if err = json.Unmarshal(raw, &sess); err != nil {
		return nil, err
	}

	return &sess, nil
}

func (s *Store) Save(ctx context.Context, sess *entity.Session) (err error) {
	ctx, span := s.startSpan(ctx, "Save")
	defer func() { s.endSpan(span, err) }()

	raw, err := json.Marshal(sess)
	if err != nil {
		return err
	}

	return s.client.Set(ctx, s.prefix+sess.ID, raw, s.ttl).Err()
}

func (s *Store) Delete(ctx context.Context, id string) (err error) {
	ctx, span := s.startSpan(ctx, "Delete")
	defer func() { s.endSpan(span, err) }()

	return s.client.Del(ctx, s.prefix+id).Err()
}
