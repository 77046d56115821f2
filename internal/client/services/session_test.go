package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apexfit/apexfit-go/internal/client/api"
	"github.com/apexfit/apexfit-go/internal/client/credentials"
	"github.com/apexfit/apexfit-go/internal/client/models"
	"github.com/apexfit/apexfit-go/internal/client/registration"
	"github.com/apexfit/apexfit-go/internal/common"
	"github.com/apexfit/apexfit-go/internal/logging"
)

// ---- fakes ----

// fakeClient implements api.Client for session controller tests.
type fakeClient struct {
	LoginRet *api.AuthResult
	LoginErr error

	RegisterRet   *api.AuthResult
	RegisterErr   error
	RegisterCalls int

	LogoutErr   error
	LogoutCalls int

	MeRet *api.AuthResult
	MeErr error

	ChangePasswordErr error

	SendOTPErr   error
	VerifyOTPErr error

	// captured arguments
	LastLoginEmail    string
	LastLoginPassword string
	LastRegister      models.RegistrationPayload
	LastLogoutToken   string
	LastOTPEmail      string
	LastOTPCode       string

	// OnLogin runs inside Login, before returning. Used to observe the
	// busy flag mid-flight.
	OnLogin func()
}

func (f *fakeClient) Login(ctx context.Context, email, password string) (*api.AuthResult, error) {
	f.LastLoginEmail, f.LastLoginPassword = email, password
	if f.OnLogin != nil {
		f.OnLogin()
	}
	return f.LoginRet, f.LoginErr
}

func (f *fakeClient) Register(ctx context.Context, payload models.RegistrationPayload) (*api.AuthResult, error) {
	f.RegisterCalls++
	f.LastRegister = payload
	return f.RegisterRet, f.RegisterErr
}

func (f *fakeClient) Logout(ctx context.Context, refreshToken string) error {
	f.LogoutCalls++
	f.LastLogoutToken = refreshToken
	return f.LogoutErr
}

func (f *fakeClient) SendOTP(ctx context.Context, email string) error {
	f.LastOTPEmail = email
	return f.SendOTPErr
}

func (f *fakeClient) VerifyOTP(ctx context.Context, email, code string) error {
	f.LastOTPEmail, f.LastOTPCode = email, code
	return f.VerifyOTPErr
}

func (f *fakeClient) Me(ctx context.Context) (*api.AuthResult, error) { return f.MeRet, f.MeErr }

func (f *fakeClient) ChangePassword(ctx context.Context, current, updated string) error {
	return f.ChangePasswordErr
}

// memorySnapshot implements SnapshotStore in memory.
type memorySnapshot struct {
	user   *models.SessionUser
	saves  int
	clears int
}

func (m *memorySnapshot) Load(_ context.Context) (*models.SessionUser, bool) {
	if m.user == nil {
		return nil, false
	}
	u := *m.user
	return &u, true
}

func (m *memorySnapshot) Save(_ context.Context, user models.SessionUser) {
	m.saves++
	m.user = &user
}

func (m *memorySnapshot) Clear(_ context.Context) {
	m.clears++
	m.user = nil
}

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func newController(t *testing.T, client *fakeClient) (*SessionController, *credentials.Store, *memorySnapshot) {
	t.Helper()
	store := credentials.NewStore(credentials.NewMemoryBackend(), credentials.NewMemoryBackend(), testLogger())
	snap := &memorySnapshot{}
	return NewSessionController(client, store, snap, testLogger()), store, snap
}

func memberResult() *api.AuthResult {
	return &api.AuthResult{
		Account: models.Account{ID: "u1", Email: "john@example.com", UserType: models.UserTypeMember, IsActive: true},
		Profile: &models.Profile{ID: "p1", AccountID: "u1", Username: "john_doe", FirstName: "John", LastName: "Doe"},
		Tokens:  &models.Credentials{AccessToken: "A1", RefreshToken: "R1"},
	}
}

// ---- login ----

func TestLogin_Success(t *testing.T) {
	client := &fakeClient{LoginRet: memberResult()}
	c, store, snap := newController(t, client)
	ctx := context.Background()

	require.NoError(t, c.Login(ctx, "john@example.com", "secret1"))

	assert.Equal(t, StateAuthenticated, c.State())
	require.NotNil(t, c.User())
	assert.Equal(t, models.UserTypeMember, c.User().Role)
	assert.Equal(t, "John Doe", c.User().Name)

	stored := store.Get(ctx)
	require.NotNil(t, stored)
	assert.Equal(t, models.Credentials{AccessToken: "A1", RefreshToken: "R1"}, *stored)

	assert.Equal(t, 1, snap.saves, "snapshot mirrors the new session")
	assert.False(t, c.Busy())
	assert.Equal(t, "john@example.com", client.LastLoginEmail)
}

func TestLogin_BusyDuringFlight(t *testing.T) {
	client := &fakeClient{LoginRet: memberResult()}
	c, _, _ := newController(t, client)
	client.OnLogin = func() {
		assert.True(t, c.Busy(), "busy flag must be set while the exchange is in flight")
	}

	require.NoError(t, c.Login(context.Background(), "john@example.com", "secret1"))
	assert.False(t, c.Busy(), "busy flag must be cleared on success")
}

func TestLogin_FailureStaysUnauthenticated(t *testing.T) {
	client := &fakeClient{LoginErr: errors.New("invalid email or password")}
	c, store, _ := newController(t, client)

	err := c.Login(context.Background(), "john@example.com", "wrong")
	require.EqualError(t, err, "invalid email or password")

	assert.Equal(t, StateUnauthenticated, c.State())
	assert.Nil(t, c.User())
	assert.False(t, store.Has(context.Background()))
	assert.False(t, c.Busy(), "busy flag must be cleared on failure")
}

func TestLogin_MissingTokensIsAnError(t *testing.T) {
	res := memberResult()
	res.Tokens = nil
	client := &fakeClient{LoginRet: res}
	c, store, _ := newController(t, client)

	require.Error(t, c.Login(context.Background(), "john@example.com", "secret1"))
	assert.Equal(t, StateUnauthenticated, c.State())
	assert.False(t, store.Has(context.Background()), "no user may be set without matching tokens")
}

// ---- signup ----

func validFields() registration.Fields {
	return registration.Fields{FullName: "John Doe", Email: "john@example.com", Password: "Secret12"}
}

func TestSignup_ImmediateTokens(t *testing.T) {
	client := &fakeClient{RegisterRet: memberResult()}
	c, store, _ := newController(t, client)

	pending, err := c.Signup(context.Background(), models.UserTypeMember, validFields())
	require.NoError(t, err)
	assert.False(t, pending)
	assert.Equal(t, StateAuthenticated, c.State())
	assert.True(t, store.Has(context.Background()))
	assert.Equal(t, models.UserTypeMember, client.LastRegister.UserType)
	assert.NotEmpty(t, client.LastRegister.Username)
}

func TestSignup_PendingVerification(t *testing.T) {
	res := memberResult()
	res.Tokens = nil
	res.Profile = nil
	client := &fakeClient{RegisterRet: res}
	c, store, _ := newController(t, client)

	pending, err := c.Signup(context.Background(), models.UserTypeMember, validFields())
	require.NoError(t, err)
	assert.True(t, pending)
	assert.Equal(t, StateUnauthenticated, c.State())
	assert.False(t, store.Has(context.Background()))
	assert.False(t, c.Busy())
}

func TestSignup_ValidationFailsBeforeNetwork(t *testing.T) {
	client := &fakeClient{}
	c, _, _ := newController(t, client)

	fields := validFields()
	fields.Password = "weak"
	_, err := c.Signup(context.Background(), models.UserTypeMember, fields)
	require.ErrorIs(t, err, common.ErrValidation)
	assert.Zero(t, client.RegisterCalls, "invalid input must not reach the backend")
	assert.False(t, c.Busy())
}

func TestSignup_GymOwnerPayloadCarriesGymName(t *testing.T) {
	client := &fakeClient{RegisterRet: memberResult()}
	c, _, _ := newController(t, client)

	fields := validFields()
	fields.GymName = "Iron Temple"
	_, err := c.Signup(context.Background(), models.UserTypeGymOwner, fields)
	require.NoError(t, err)
	assert.Equal(t, "Iron Temple", client.LastRegister.GymName)
}

// ---- logout ----

func TestLogout_ClearsEverythingAndIsIdempotent(t *testing.T) {
	client := &fakeClient{LoginRet: memberResult()}
	c, store, snap := newController(t, client)
	ctx := context.Background()

	require.NoError(t, c.Login(ctx, "john@example.com", "secret1"))

	c.Logout(ctx)
	assert.Equal(t, StateUnauthenticated, c.State())
	assert.Nil(t, c.User())
	assert.False(t, store.Has(ctx))
	assert.Nil(t, snap.user)
	assert.Equal(t, 1, client.LogoutCalls)
	assert.Equal(t, "R1", client.LastLogoutToken)

	// Second logout: no credentials left, so no server call, and no panic.
	c.Logout(ctx)
	assert.Equal(t, StateUnauthenticated, c.State())
	assert.Equal(t, 1, client.LogoutCalls)
}

func TestLogout_ServerFailureStillClearsLocally(t *testing.T) {
	client := &fakeClient{LoginRet: memberResult(), LogoutErr: errors.New("boom")}
	c, store, _ := newController(t, client)
	ctx := context.Background()

	require.NoError(t, c.Login(ctx, "john@example.com", "secret1"))
	c.Logout(ctx)

	assert.Equal(t, StateUnauthenticated, c.State())
	assert.False(t, store.Has(ctx))
}

// ---- restore ----

func TestRestore_WithSnapshotAndTokens(t *testing.T) {
	client := &fakeClient{}
	c, store, snap := newController(t, client)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, models.Credentials{AccessToken: "A1", RefreshToken: "R1"}))
	snap.user = &models.SessionUser{ID: "u1", Email: "john@example.com", Role: models.UserTypeMember}

	assert.Equal(t, StateLoading, c.State(), "initial state before restore")
	c.Restore(ctx)

	assert.Equal(t, StateAuthenticated, c.State())
	require.NotNil(t, c.User())
	assert.Equal(t, "u1", c.User().ID)
}

func TestRestore_NoSnapshot(t *testing.T) {
	c, _, _ := newController(t, &fakeClient{})
	c.Restore(context.Background())
	assert.Equal(t, StateUnauthenticated, c.State())
}

func TestRestore_SnapshotWithoutTokensIsDiscarded(t *testing.T) {
	c, _, snap := newController(t, &fakeClient{})
	snap.user = &models.SessionUser{ID: "u1", Email: "x@y.z", Role: models.UserTypeMember}

	c.Restore(context.Background())

	assert.Equal(t, StateUnauthenticated, c.State())
	assert.Nil(t, snap.user, "orphan snapshot must be cleared")
}

// ---- in-memory mutations ----

func TestSwitchRole(t *testing.T) {
	client := &fakeClient{LoginRet: memberResult()}
	c, _, snap := newController(t, client)
	ctx := context.Background()

	require.ErrorIs(t, c.SwitchRole(ctx, models.UserTypeAdmin), common.ErrNotLoggedIn)

	require.NoError(t, c.Login(ctx, "john@example.com", "secret1"))
	require.NoError(t, c.SwitchRole(ctx, models.UserTypeGymOwner))
	assert.Equal(t, models.UserTypeGymOwner, c.User().Role)
	assert.Equal(t, models.UserTypeGymOwner, snap.user.Role, "snapshot mirrors the switch")

	require.ErrorIs(t, c.SwitchRole(ctx, models.UserType("WIZARD")), common.ErrValidation)
}

func TestUpdateUser_PartialEdit(t *testing.T) {
	client := &fakeClient{LoginRet: memberResult()}
	c, _, snap := newController(t, client)
	ctx := context.Background()

	require.ErrorIs(t, c.UpdateUser(ctx, UserUpdate{}), common.ErrNotLoggedIn)

	require.NoError(t, c.Login(ctx, "john@example.com", "secret1"))

	avatar := "http://cdn/new.png"
	require.NoError(t, c.UpdateUser(ctx, UserUpdate{Avatar: &avatar}))
	assert.Equal(t, "http://cdn/new.png", c.User().Avatar)
	assert.Equal(t, "John Doe", c.User().Name, "unset fields stay untouched")
	assert.Equal(t, avatar, snap.user.Avatar)
}

// ---- supplementary operations ----

func TestMe_RefreshesUserAndSnapshot(t *testing.T) {
	client := &fakeClient{LoginRet: memberResult()}
	c, _, snap := newController(t, client)
	ctx := context.Background()
	require.NoError(t, c.Login(ctx, "john@example.com", "secret1"))

	updated := memberResult()
	updated.Profile.FirstName = "Johnny"
	client.MeRet = updated

	u, err := c.Me(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Johnny Doe", u.Name)
	assert.Equal(t, "Johnny Doe", snap.user.Name)
}

func TestChangePassword_ValidatesBeforeNetwork(t *testing.T) {
	client := &fakeClient{ChangePasswordErr: errors.New("should not be reached")}
	c, _, _ := newController(t, client)

	err := c.ChangePassword(context.Background(), "OldPass1", "weak")
	require.ErrorIs(t, err, common.ErrValidation)
}

func TestVerifyOTP_Proxies(t *testing.T) {
	client := &fakeClient{}
	c, _, _ := newController(t, client)

	require.NoError(t, c.VerifyOTP(context.Background(), "john@example.com", "123456"))
	assert.Equal(t, "john@example.com", client.LastOTPEmail)
	assert.Equal(t, "123456", client.LastOTPCode)
}
