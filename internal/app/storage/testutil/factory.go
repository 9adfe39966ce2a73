package testutil

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"math/rand"
	"strings"
	"sync/atomic"
	"time"

	"github.com/icrowley/fake"

	"github.com/hraharahra/pathfinder/internal/app"
	"github.com/hraharahra/pathfinder/internal/app/storage"
)

// EVE IDs
const (
	startIDAlliance    = 99_000_001
	startIDCharacter   = 90_000_001
	startIDCorporation = 98_000_001
	startIDFaction     = 500_001
	startIDSolarSystem = 30_000_001
	startIDStation     = 60_000_001
)

var (
	allianceID    atomic.Int64
	characterID   atomic.Int64
	corporationID atomic.Int64
	solarSystemID atomic.Int64
	stationID     atomic.Int64
	userID        atomic.Int64
)

func init() {
	allianceID.Store(startIDAlliance)
	characterID.Store(startIDCharacter)
	corporationID.Store(startIDCorporation)
	solarSystemID.Store(startIDSolarSystem)
	stationID.Store(startIDStation)
}

// Factory creates test objects in the database.
type Factory struct {
	st *storage.Storage
}

func NewFactory(st *storage.Storage) Factory {
	return Factory{st: st}
}

func (f Factory) RandomTime() time.Time {
	hours := time.Duration(rand.Intn(100_000))
	seconds := time.Duration(rand.Intn(3600))
	d := hours*time.Hour + seconds*time.Second
	return time.Now().Add(-d).UTC()
}

// RandomOwnerHash returns an opaque owner hash like the provider reports them.
func (f Factory) RandomOwnerHash() string {
	h := md5.Sum([]byte(fake.CharactersN(16)))
	return hex.EncodeToString(h[:])
}

// CreateCharacter creates and returns a new character. Empty optional values are not filled.
func (f Factory) CreateCharacter(args ...storage.CreateCharacterParams) *app.Character {
	var arg storage.CreateCharacterParams
	if len(args) > 0 {
		arg = args[0]
	}
	if arg.ID == 0 {
		arg.ID = int32(characterID.Add(1))
	}
	if arg.Name == "" {
		arg.Name = fake.FullName()
	}
	if arg.OwnerHash == "" {
		arg.OwnerHash = f.RandomOwnerHash()
	}
	ctx := context.Background()
	if err := f.st.CreateCharacter(ctx, arg); err != nil {
		panic(err)
	}
	c, err := f.st.GetCharacter(ctx, arg.ID)
	if err != nil {
		panic(err)
	}
	return c
}

// CreateCharacterFull creates and returns a new character with a corporation and an alliance.
func (f Factory) CreateCharacterFull(args ...storage.CreateCharacterParams) *app.Character {
	var arg storage.CreateCharacterParams
	if len(args) > 0 {
		arg = args[0]
	}
	if arg.CorporationID.IsEmpty() {
		corporation := f.CreateEveCorporation()
		arg.CorporationID.Set(corporation.ID)
	}
	if arg.AllianceID.IsEmpty() {
		alliance := f.CreateEveAlliance()
		arg.AllianceID.Set(alliance.ID)
	}
	if arg.LastLoginAt.IsEmpty() {
		arg.LastLoginAt.Set(f.RandomTime())
	}
	return f.CreateCharacter(arg)
}

func (f Factory) CreateEveCorporation(args ...app.EveCorporation) *app.EveCorporation {
	var arg app.EveCorporation
	if len(args) > 0 {
		arg = args[0]
	}
	if arg.ID == 0 {
		arg.ID = int32(corporationID.Add(1))
	}
	if arg.Name == "" {
		arg.Name = fake.Company()
	}
	if arg.Ticker == "" {
		arg.Ticker = strings.ToUpper(fake.CharactersN(4))
	}
	ctx := context.Background()
	if err := f.st.UpdateOrCreateEveCorporation(ctx, &arg); err != nil {
		panic(err)
	}
	return &arg
}

func (f Factory) CreateEveAlliance(args ...app.EveAlliance) *app.EveAlliance {
	var arg app.EveAlliance
	if len(args) > 0 {
		arg = args[0]
	}
	if arg.ID == 0 {
		arg.ID = int32(allianceID.Add(1))
	}
	if arg.Name == "" {
		arg.Name = fake.Company()
	}
	if arg.Ticker == "" {
		arg.Ticker = strings.ToUpper(fake.CharactersN(4))
	}
	ctx := context.Background()
	if err := f.st.UpdateOrCreateEveAlliance(ctx, &arg); err != nil {
		panic(err)
	}
	return &arg
}

// CreateCharacterToken creates a token for a character.
// A character is created when none is given.
func (f Factory) CreateCharacterToken(args ...storage.UpdateOrCreateCharacterTokenParams) *app.CharacterToken {
	var arg storage.UpdateOrCreateCharacterTokenParams
	if len(args) > 0 {
		arg = args[0]
	}
	if arg.CharacterID == 0 {
		c := f.CreateCharacter()
		arg.CharacterID = c.ID
	}
	if arg.AccessToken == "" {
		arg.AccessToken = fake.CharactersN(32)
	}
	if arg.RefreshToken == "" {
		arg.RefreshToken = fake.CharactersN(32)
	}
	if arg.IssuedAt.IsZero() {
		arg.IssuedAt = time.Now().UTC()
	}
	ctx := context.Background()
	if err := f.st.UpdateOrCreateCharacterToken(ctx, arg); err != nil {
		panic(err)
	}
	t, err := f.st.GetCharacterToken(ctx, arg.CharacterID)
	if err != nil {
		panic(err)
	}
	return t
}

func (f Factory) CreateCharacterAuthentication(args ...storage.CreateCharacterAuthenticationParams) *app.CharacterAuthentication {
	var arg storage.CreateCharacterAuthenticationParams
	if len(args) > 0 {
		arg = args[0]
	}
	if arg.CharacterID == 0 {
		c := f.CreateCharacter()
		arg.CharacterID = c.ID
	}
	if arg.Selector == "" {
		arg.Selector = fake.CharactersN(12)
	}
	if arg.Token == "" {
		arg.Token = fake.CharactersN(32)
	}
	if arg.CreatedAt.IsZero() {
		arg.CreatedAt = time.Now().UTC()
	}
	if arg.ExpiresAt.IsZero() {
		arg.ExpiresAt = time.Now().Add(24 * time.Hour).UTC()
	}
	o, err := f.st.CreateCharacterAuthentication(context.Background(), arg)
	if err != nil {
		panic(err)
	}
	return o
}

func (f Factory) CreateUserCharacter(characterID int32) *app.UserCharacter {
	o, err := f.st.CreateUserCharacter(context.Background(), characterID, userID.Add(1))
	if err != nil {
		panic(err)
	}
	return o
}

func (f Factory) CreateCharacterLocation(args ...storage.UpdateOrCreateCharacterLocationParams) *app.CharacterLocation {
	var arg storage.UpdateOrCreateCharacterLocationParams
	if len(args) > 0 {
		arg = args[0]
	}
	if arg.CharacterID == 0 {
		c := f.CreateCharacter()
		arg.CharacterID = c.ID
	}
	if arg.SolarSystemID == 0 {
		arg.SolarSystemID = int32(solarSystemID.Add(1))
	}
	if arg.SolarSystemName == "" {
		arg.SolarSystemName = fmt.Sprintf("%s-%s", strings.ToUpper(fake.CharactersN(2)), fake.DigitsN(4))
	}
	if arg.UpdatedAt.IsZero() {
		arg.UpdatedAt = time.Now().UTC()
	}
	ctx := context.Background()
	if err := f.st.UpdateOrCreateCharacterLocation(ctx, arg); err != nil {
		panic(err)
	}
	o, err := f.st.GetCharacterLocation(ctx, arg.CharacterID)
	if err != nil {
		panic(err)
	}
	return o
}

// CreateMap creates a map. Called without params it creates an active private map.
func (f Factory) CreateMap(args ...storage.CreateMapParams) *app.Map {
	var arg storage.CreateMapParams
	if len(args) > 0 {
		arg = args[0]
	} else {
		arg.Active = true
	}
	if arg.Name == "" {
		arg.Name = fake.Word()
	}
	if arg.Scope == "" {
		arg.Scope = app.MapScopePrivate
	}
	if arg.CreatedAt.IsZero() {
		arg.CreatedAt = f.RandomTime()
	}
	m, err := f.st.CreateMap(context.Background(), arg)
	if err != nil {
		panic(err)
	}
	return m
}
