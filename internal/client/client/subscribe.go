package client

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/sethvargo/go-retry"

	"github.com/dmitrijs2005/petzy/internal/prefs"
	pb "github.com/dmitrijs2005/petzy/internal/proto"
)

// Subscribe starts a background stream for document id. The returned func
// cancels it; callbacks may still be running when it returns.
func (s *GRPCClient) Subscribe(ctx context.Context, id string, onNext func(*prefs.Document), onError func(error)) (func(), error) {
	if id == "" {
		return nil, errors.New("subscribe: empty document id")
	}
	if onNext == nil {
		return nil, errors.New("subscribe: nil onNext")
	}
	if onError == nil {
		onError = func(error) {}
	}

	ctx, cancel := context.WithCancel(ctx)
	go s.runSubscription(ctx, id, onNext, onError)

	return cancel, nil
}

func (s *GRPCClient) backoff() retry.Backoff {
	base, ceiling := s.baseBackoff, s.maxBackoff
	if base <= 0 {
		base = defaultBaseBackoff
	}
	if ceiling <= 0 {
		ceiling = defaultMaxBackoff
	}
	return retry.WithCappedDuration(ceiling, retry.NewExponential(base))
}

// runSubscription reopens the stream until ctx is done or the session is
// rejected. A stream that delivered at least one snapshot reconnects right
// away with a fresh backoff.
func (s *GRPCClient) runSubscription(ctx context.Context, id string, onNext func(*prefs.Document), onError func(error)) {
	for ctx.Err() == nil {
		stop := false

		_ = retry.Do(ctx, s.backoff(), func(ctx context.Context) error {
			received, err := s.streamOnce(ctx, id, onNext, onError)
			if ctx.Err() != nil {
				return nil
			}

			if isTokenExpired(err) && s.refreshTokens(ctx) == nil {
				return retry.RetryableError(err)
			}

			mapped := s.mapStreamError(err)
			onError(mapped)

			if errors.Is(mapped, ErrUnauthorized) {
				stop = true
				return mapped
			}
			if received {
				return mapped
			}
			return retry.RetryableError(mapped)
		})

		if stop {
			return
		}
	}
}

func (s *GRPCClient) streamOnce(ctx context.Context, id string, onNext func(*prefs.Document), onError func(error)) (bool, error) {
	stream, err := s.client.Subscribe(ctx, &pb.SubscribeRequest{Id: id})
	if err != nil {
		return false, err
	}

	received := false
	for {
		snap, err := stream.Recv()
		if err != nil {
			return received, err
		}
		received = true

		doc, err := snapshotDocument(snap)
		if err != nil {
			onError(err)
			continue
		}
		onNext(doc)
	}
}

// snapshotDocument returns nil for a snapshot of a missing document.
func snapshotDocument(snap *pb.DocumentSnapshot) (*prefs.Document, error) {
	if !snap.GetExists() || snap.GetDocument() == nil {
		return nil, nil
	}
	doc, err := prefs.DecodeDocument(snap.GetDocument().GetBody())
	if err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return doc, nil
}

func (s *GRPCClient) mapStreamError(err error) error {
	if errors.Is(err, io.EOF) {
		return ErrUnavailable
	}
	return s.mapError(err)
}
