package characterservice_test

import (
	"context"
	"database/sql"
	"sync/atomic"

	"github.com/hraharahra/pathfinder/internal/app"
	"github.com/hraharahra/pathfinder/internal/app/charactercache"
	"github.com/hraharahra/pathfinder/internal/app/characterservice"
	"github.com/hraharahra/pathfinder/internal/app/storage"
	"github.com/hraharahra/pathfinder/internal/app/storage/testutil"
	"github.com/hraharahra/pathfinder/internal/memcache"
)

// fakeIdentityClient is a canned identity provider for tests.
type fakeIdentityClient struct {
	locationErr    error
	locationResult *app.LocationResult
	profile        *app.Profile
	profileErr     error
	refreshCalls   atomic.Int32
	refreshErr     error
	token          *app.Token
	verification   *app.IdentityVerification
	verifyErr      error
}

func (f *fakeIdentityClient) RefreshToken(ctx context.Context, refreshToken string) (*app.Token, error) {
	f.refreshCalls.Add(1)
	if f.refreshErr != nil {
		return nil, f.refreshErr
	}
	if f.token != nil {
		return f.token, nil
	}
	return &app.Token{AccessToken: "access-fresh", RefreshToken: "refresh-fresh"}, nil
}

func (f *fakeIdentityClient) VerifyIdentity(ctx context.Context, accessToken string) (*app.IdentityVerification, error) {
	if f.verifyErr != nil {
		return nil, f.verifyErr
	}
	return f.verification, nil
}

func (f *fakeIdentityClient) FetchProfile(ctx context.Context, accessToken string, characterID int32) (*app.Profile, error) {
	if f.profileErr != nil {
		return nil, f.profileErr
	}
	return f.profile, nil
}

func (f *fakeIdentityClient) FetchLocation(ctx context.Context, accessToken string, characterID int32) (*app.LocationResult, error) {
	if f.locationErr != nil {
		return nil, f.locationErr
	}
	return f.locationResult, nil
}

type testEnv struct {
	cc      *charactercache.CharacterCache
	db      *sql.DB
	factory testutil.Factory
	s       *characterservice.CharacterService
	st      *storage.Storage
}

// startService wires a character service with in-memory storage and cache.
func startService(ic app.IdentityClient, cfg characterservice.Config) testEnv {
	db, st, factory := testutil.NewDBInMemory()
	cc := charactercache.New(memcache.NewWithTimeout(0), st)
	s := characterservice.New(st, cc, ic, cfg)
	return testEnv{cc: cc, db: db, factory: factory, s: s, st: st}
}
