package session

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/onboarding-engine/internal/localstore"
	"github.com/jonathan/onboarding-engine/internal/types"
)

// RemoteStore is the subset of the session API the coordinator depends on.
// *Client satisfies it.
type RemoteStore interface {
	GetSession(ctx context.Context) (*types.OnboardingSession, error)
	SaveSession(ctx context.Context, sess *types.OnboardingSession) (*types.OnboardingSession, error)
	DeleteSession(ctx context.Context) error
}

// Coordinator reconciles the device-local cache with the remote session
// record. The local cache is authoritative for same-session continuity; the
// remote record is the cross-device source of truth.
type Coordinator struct {
	userID uuid.UUID
	local  localstore.Store
	remote RemoteStore
	now    func() time.Time
}

// NewCoordinator creates a Coordinator for the given user.
func NewCoordinator(userID uuid.UUID, local localstore.Store, remote RemoteStore) *Coordinator {
	return &Coordinator{
		userID: userID,
		local:  local,
		remote: remote,
		now:    time.Now,
	}
}

// Load hydrates a session: local cache first, then the remote record. A nil
// session means a cold start; a missing session is normal, not a fault, so
// no error is ever surfaced. fromCache reports which store supplied the
// session.
//
// A cached snapshot is used only when it decodes cleanly against the session
// schema and belongs to the coordinator's user. A snapshot cached by a
// different authenticated user is ignored, never merged.
func (c *Coordinator) Load(ctx context.Context) (sess *types.OnboardingSession, fromCache bool) {
	raw, err := c.local.Read(ctx)
	if err != nil {
		log.Printf("onboarding: local cache read failed: %v", err)
	}
	if raw != nil {
		cached, err := DecodeSnapshot(raw)
		if err != nil {
			log.Printf("onboarding: ignoring cached session: %v", err)
		} else if cached.UserID != c.userID {
			log.Printf("onboarding: ignoring cached session for different user")
		} else {
			return cached, true
		}
	}

	remote, err := c.remote.GetSession(ctx)
	if err != nil {
		log.Printf("onboarding: remote session load failed: %v", err)
		return nil, false
	}
	if remote == nil || remote.UserID != c.userID {
		return nil, false
	}
	return remote, false
}

// Save writes the snapshot to the local cache, then upserts the remote
// record. Failures on either side are logged and swallowed: autosave must
// never interrupt typing or navigation. The next natural save trigger is the
// only retry.
func (c *Coordinator) Save(ctx context.Context, sess *types.OnboardingSession) {
	sess.UserID = c.userID
	sess.LastSavedAt = c.now()

	raw, err := EncodeSnapshot(sess)
	if err != nil {
		log.Printf("onboarding: failed to encode session: %v", err)
		return
	}
	if err := c.local.Write(ctx, raw); err != nil {
		log.Printf("onboarding: local cache write failed: %v", err)
	}

	if saved, err := c.remote.SaveSession(ctx, sess); err != nil {
		log.Printf("onboarding: remote session save failed: %v", err)
	} else if saved != nil && saved.ID != uuid.Nil {
		sess.ID = saved.ID
	}
}

// Clear wipes both stores. The local wipe must succeed (the caller just
// completed onboarding and a stale cache would resurrect the flow); the
// remote wipe is best effort and only logged.
func (c *Coordinator) Clear(ctx context.Context) error {
	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return c.local.Clear(gCtx)
	})
	g.Go(func() error {
		if err := c.remote.DeleteSession(gCtx); err != nil {
			log.Printf("onboarding: remote session clear failed: %v", err)
		}
		return nil
	})

	return g.Wait()
}
