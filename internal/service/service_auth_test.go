// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/erp-accounts/internal/access"
	"github.com/MKhiriev/erp-accounts/internal/adapter"
	"github.com/MKhiriev/erp-accounts/internal/app"
	"github.com/MKhiriev/erp-accounts/internal/metrics"
	"github.com/MKhiriev/erp-accounts/internal/mock"
	"github.com/MKhiriev/erp-accounts/internal/store"
	"github.com/MKhiriev/erp-accounts/internal/utils"
	"github.com/MKhiriev/erp-accounts/internal/validators"
	"github.com/MKhiriev/erp-accounts/models"
)

const testSiteURL = "https://erp.example.com"

// testDeps holds the mocks behind the services under test.
type testDeps struct {
	users       *mock.MockUserRepository
	events      *mock.MockReconciliationRepository
	identity    *mock.MockIdentityProvider
	notifier    *mock.MockNotifier
	revalidator *mock.MockRevalidator
	metrics     *metrics.Metrics
}

func newTestDeps(t *testing.T) *testDeps {
	t.Helper()
	ctrl := gomock.NewController(t)
	return &testDeps{
		users:       mock.NewMockUserRepository(ctrl),
		events:      mock.NewMockReconciliationRepository(ctrl),
		identity:    mock.NewMockIdentityProvider(ctrl),
		notifier:    mock.NewMockNotifier(ctrl),
		revalidator: mock.NewMockRevalidator(ctrl),
		metrics:     metrics.New(prometheus.NewRegistry()),
	}
}

func (d *testDeps) reconciler() *reconciler {
	return &reconciler{
		identity: d.identity,
		users:    d.users,
		events:   d.events,
		ids:      utils.NewUUIDGenerator(),
		metrics:  d.metrics,
	}
}

func (d *testDeps) authService(jwtSecret string) *authService {
	return &authService{
		users:       d.users,
		rules:       access.NewRules(d.users),
		identity:    d.identity,
		notifier:    d.notifier,
		validator:   validators.NewAccountValidator(),
		reconciler:  d.reconciler(),
		revalidator: d.revalidator,
		siteURL:     testSiteURL,
		jwtSecret:   jwtSecret,
	}
}

func (d *testDeps) reconciliationCount(kind models.ReconciliationKind) float64 {
	return testutil.ToFloat64(d.metrics.Reconciliation.WithLabelValues(string(kind)))
}

func signupForm(email, name string) models.SignupForm {
	return models.SignupForm{Email: email, Password: "Pw1!", ConfirmPassword: "Pw1!", FullName: name}
}

// ── Signup ───────────────────────────────────────────────────────────────────

func TestSignup_FirstUserBecomesAdminLaterGuest(t *testing.T) {
	ctx := context.Background()
	d := newTestDeps(t)
	svc := d.authService("")

	ada := models.Identity{ID: "id-ada", Email: "a@x.com"}
	bob := models.Identity{ID: "id-bob", Email: "b@x.com"}

	gomock.InOrder(
		d.identity.EXPECT().SignUp(ctx, "a@x.com", "Pw1!", "Ada Lovelace").Return(ada, nil),
		d.users.EXPECT().CountByRole(ctx, models.RoleAdmin).Return(0, nil),
		d.users.EXPECT().Create(ctx, gomock.Any(), true).DoAndReturn(
			func(_ context.Context, u models.User, _ bool) (models.User, error) {
				assert.Equal(t, "id-ada", u.UserID)
				assert.Equal(t, "Ada Lovelace", u.Name)
				u.Role = models.RoleAdmin
				return u, nil
			}),
		d.notifier.EXPECT().Notify(ctx, models.ContactTask("a@x.com", "Ada Lovelace")),
		d.revalidator.EXPECT().Revalidate(ctx, AdminUsersPath),

		d.identity.EXPECT().SignUp(ctx, "b@x.com", "Pw1!", "Bob Lee").Return(bob, nil),
		d.users.EXPECT().CountByRole(ctx, models.RoleAdmin).Return(1, nil),
		d.users.EXPECT().Create(ctx, gomock.Any(), false).DoAndReturn(
			func(_ context.Context, u models.User, _ bool) (models.User, error) {
				assert.Equal(t, models.RoleGuest, u.Role)
				return u, nil
			}),
		d.notifier.EXPECT().Notify(ctx, models.ContactTask("b@x.com", "Bob Lee")),
		d.revalidator.EXPECT().Revalidate(ctx, AdminUsersPath),
	)

	require.NoError(t, svc.Signup(ctx, signupForm("a@x.com", "Ada Lovelace")))
	require.NoError(t, svc.Signup(ctx, signupForm(" B@X.com ", "Bob Lee")))
}

func TestSignup_ValidationFailsBeforeProvider(t *testing.T) {
	d := newTestDeps(t)
	svc := d.authService("")

	form := signupForm("a@x.com", "Ada")
	form.ConfirmPassword = "other"

	err := svc.Signup(context.Background(), form)
	require.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, app.MsgPasswordsDoNotMatch, UserMessage(err))
}

func TestSignup_ProviderErrorIsVerbatim(t *testing.T) {
	ctx := context.Background()
	d := newTestDeps(t)
	svc := d.authService("")

	providerErr := adapter.NewProviderError(422, "User already registered")
	d.identity.EXPECT().SignUp(ctx, "a@x.com", "Pw1!", "Ada").Return(models.Identity{}, providerErr)

	err := svc.Signup(ctx, signupForm("a@x.com", "Ada"))
	require.ErrorIs(t, err, ErrProvider)
	assert.Equal(t, "User already registered", UserMessage(err))
}

func TestSignup_DirectoryFailureDeletesIdentity(t *testing.T) {
	ctx := context.Background()
	d := newTestDeps(t)
	svc := d.authService("")

	identity := models.Identity{ID: "id-1", Email: "a@x.com"}
	d.identity.EXPECT().SignUp(ctx, "a@x.com", "Pw1!", "Ada").Return(identity, nil)
	d.users.EXPECT().CountByRole(ctx, models.RoleAdmin).Return(1, nil)
	d.users.EXPECT().Create(ctx, gomock.Any(), false).Return(models.User{}, errors.New("insert failed"))
	d.identity.EXPECT().AdminDeleteUser(ctx, "id-1").Return(nil)

	err := svc.Signup(ctx, signupForm("a@x.com", "Ada"))
	require.ErrorIs(t, err, ErrDirectory)
	assert.Equal(t, app.MsgInternalServerError, UserMessage(err))
	assert.Zero(t, d.reconciliationCount(models.OrphanedIdentity))
}

func TestSignup_FailedCompensationIsRecorded(t *testing.T) {
	ctx := context.Background()
	d := newTestDeps(t)
	svc := d.authService("")

	identity := models.Identity{ID: "id-1", Email: "a@x.com"}
	d.identity.EXPECT().SignUp(ctx, "a@x.com", "Pw1!", "Ada").Return(identity, nil)
	d.users.EXPECT().CountByRole(ctx, models.RoleAdmin).Return(0, errors.New("db down"))
	d.identity.EXPECT().AdminDeleteUser(ctx, "id-1").Return(errors.New("provider down"))
	d.events.EXPECT().Save(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, e models.ReconciliationEvent) error {
			assert.Equal(t, models.OrphanedIdentity, e.Kind)
			assert.Equal(t, "id-1", e.UserID)
			assert.Equal(t, "a@x.com", e.Email)
			assert.NotEmpty(t, e.ID)
			assert.Nil(t, e.ResolvedAt)
			return nil
		})

	err := svc.Signup(ctx, signupForm("a@x.com", "Ada"))
	require.ErrorIs(t, err, ErrDirectory)
	assert.Equal(t, float64(1), d.reconciliationCount(models.OrphanedIdentity))
}

func TestSignup_DuplicateRow(t *testing.T) {
	tests := []struct {
		name       string
		rowByID    models.User
		rowByIDErr error
		wantDelete bool
		wantEvent  bool
	}{
		{
			// email taken by another identity, the new one is removed again
			name:       "row belongs to another identity",
			rowByIDErr: store.ErrUserNotFound,
			wantDelete: true,
		},
		{
			// repeat signup of an unconfirmed email returns the existing identity
			name:    "row already mirrors the identity",
			rowByID: models.User{UserID: "id-1", Email: "a@x.com", Role: models.RoleAdmin},
		},
		{
			name:       "row lookup fails",
			rowByIDErr: errors.New("db down"),
			wantEvent:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			d := newTestDeps(t)
			svc := d.authService("")

			identity := models.Identity{ID: "id-1", Email: "a@x.com"}
			d.identity.EXPECT().SignUp(ctx, "a@x.com", "Pw1!", "Ada").Return(identity, nil)
			d.users.EXPECT().CountByRole(ctx, models.RoleAdmin).Return(1, nil)
			d.users.EXPECT().Create(ctx, gomock.Any(), false).Return(models.User{}, store.ErrUserAlreadyExists)
			d.users.EXPECT().FindByID(ctx, "id-1").Return(tt.rowByID, tt.rowByIDErr)

			if tt.wantDelete {
				d.identity.EXPECT().AdminDeleteUser(ctx, "id-1").Return(nil)
			} else {
				d.identity.EXPECT().AdminDeleteUser(gomock.Any(), gomock.Any()).Times(0)
			}
			if tt.wantEvent {
				d.events.EXPECT().Save(ctx, gomock.Any()).DoAndReturn(
					func(_ context.Context, e models.ReconciliationEvent) error {
						assert.Equal(t, models.OrphanedIdentity, e.Kind)
						assert.Equal(t, "id-1", e.UserID)
						return nil
					})
			}

			err := svc.Signup(ctx, signupForm("a@x.com", "Ada"))
			require.ErrorIs(t, err, ErrUserAlreadyExists)
			assert.Equal(t, app.MsgUserAlreadyExists, UserMessage(err))

			wantCount := float64(0)
			if tt.wantEvent {
				wantCount = 1
			}
			assert.Equal(t, wantCount, d.reconciliationCount(models.OrphanedIdentity))
		})
	}
}

// ── Login ────────────────────────────────────────────────────────────────────

func TestLogin_Success(t *testing.T) {
	ctx := context.Background()
	d := newTestDeps(t)
	svc := d.authService("")

	session := &models.Session{AccessToken: "at", UserID: "u-1", Email: "a@x.com"}
	d.users.EXPECT().FindByEmail(ctx, "a@x.com").Return(models.User{UserID: "u-1"}, nil)
	d.identity.EXPECT().SignInWithPassword(ctx, "a@x.com", "secret").Return(session, models.Identity{ID: "u-1"}, nil)
	d.users.EXPECT().UpdateLastLogin(ctx, "u-1", gomock.Any()).Return(nil)
	d.revalidator.EXPECT().Revalidate(ctx, AdminUsersPath)

	got, err := svc.Login(ctx, models.LoginForm{Email: "A@x.com", Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, session, got)
}

func TestLogin_DisabledUserNeverReachesProvider(t *testing.T) {
	ctx := context.Background()
	d := newTestDeps(t)
	svc := d.authService("")

	d.users.EXPECT().FindByEmail(ctx, "a@x.com").Return(models.User{UserID: "u-1", IsDisabled: true}, nil)
	d.identity.EXPECT().SignInWithPassword(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	_, err := svc.Login(ctx, models.LoginForm{Email: "a@x.com", Password: "secret"})
	require.ErrorIs(t, err, ErrAccountDisabled)
	assert.Equal(t, "Your account has been disabled. Please contact support.", UserMessage(err))
}

func TestLogin_MissingRowStillAsksProvider(t *testing.T) {
	ctx := context.Background()
	d := newTestDeps(t)
	svc := d.authService("")

	d.users.EXPECT().FindByEmail(ctx, "a@x.com").Return(models.User{}, store.ErrUserNotFound)
	d.identity.EXPECT().SignInWithPassword(ctx, "a@x.com", "wrong-pass").
		Return(nil, models.Identity{}, adapter.NewProviderError(400, "Invalid login credentials"))

	_, err := svc.Login(ctx, models.LoginForm{Email: "a@x.com", Password: "wrong-pass"})
	require.ErrorIs(t, err, ErrProvider)
	assert.Equal(t, "Invalid login credentials", UserMessage(err))
}

func TestLogin_ShortPasswordNeverReachesProvider(t *testing.T) {
	ctx := context.Background()
	d := newTestDeps(t)
	svc := d.authService("")

	d.users.EXPECT().FindByEmail(gomock.Any(), gomock.Any()).Times(0)
	d.identity.EXPECT().SignInWithPassword(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	_, err := svc.Login(ctx, models.LoginForm{Email: "a@x.com", Password: "abc"})
	require.ErrorIs(t, err, ErrValidation)
	require.ErrorIs(t, err, validators.ErrPasswordTooShort)
}

func TestLogin_LastLoginFailureIsIgnored(t *testing.T) {
	ctx := context.Background()
	d := newTestDeps(t)
	svc := d.authService("")

	session := &models.Session{AccessToken: "at", UserID: "u-1"}
	d.users.EXPECT().FindByEmail(ctx, "a@x.com").Return(models.User{UserID: "u-1"}, nil)
	d.identity.EXPECT().SignInWithPassword(ctx, "a@x.com", "secret").Return(session, models.Identity{}, nil)
	d.users.EXPECT().UpdateLastLogin(ctx, "u-1", gomock.Any()).Return(errors.New("db down"))
	d.revalidator.EXPECT().Revalidate(gomock.Any(), gomock.Any()).Times(0)

	_, err := svc.Login(ctx, models.LoginForm{Email: "a@x.com", Password: "secret"})
	require.NoError(t, err)
}

func TestLogin_DirectoryLookupError(t *testing.T) {
	ctx := context.Background()
	d := newTestDeps(t)
	svc := d.authService("")

	d.users.EXPECT().FindByEmail(ctx, "a@x.com").Return(models.User{}, errors.New("db down"))

	_, err := svc.Login(ctx, models.LoginForm{Email: "a@x.com", Password: "secret"})
	require.ErrorIs(t, err, ErrDirectory)
}

// ── OAuth ────────────────────────────────────────────────────────────────────

func TestGoogleLogin_BuildsAuthorizeRedirect(t *testing.T) {
	ctx := context.Background()
	d := newTestDeps(t)
	svc := d.authService("")

	d.identity.EXPECT().OAuthURL("google", testSiteURL+OAuthCallbackPath, gomock.Any()).
		DoAndReturn(func(_, _, verifier string) string {
			return "https://id.example.com/auth/v1/authorize?v=" + verifier
		})

	redirect, err := svc.GoogleLogin(ctx, nil)
	require.NoError(t, err)
	assert.NotEmpty(t, redirect.CodeVerifier)
	assert.True(t, strings.HasSuffix(redirect.Location, redirect.CodeVerifier))
}

func TestGoogleLogin_DisabledSessionIsSignedOut(t *testing.T) {
	ctx := context.Background()
	d := newTestDeps(t)
	svc := d.authService("")

	session := &models.Session{AccessToken: "at", UserID: "u-1"}
	d.users.EXPECT().FindByID(ctx, "u-1").Return(models.User{UserID: "u-1", IsDisabled: true}, nil)
	d.identity.EXPECT().SignOut(ctx, "at").Return(nil)

	redirect, err := svc.GoogleLogin(ctx, session)
	require.NoError(t, err)
	assert.Equal(t, LoginPath+"?error="+url.QueryEscape(app.MsgAccountDisabled), redirect.Location)
	assert.Empty(t, redirect.CodeVerifier)
}

func TestOAuthCallback_MissingCode(t *testing.T) {
	d := newTestDeps(t)
	svc := d.authService("")

	_, err := svc.OAuthCallback(context.Background(), "", "verifier")
	require.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, app.MsgOAuthFailed, UserMessage(err))
}

func TestOAuthCallback_ExistingUser(t *testing.T) {
	ctx := context.Background()
	d := newTestDeps(t)
	svc := d.authService("")

	session := &models.Session{AccessToken: "at", UserID: "u-1"}
	d.identity.EXPECT().ExchangeCodeForSession(ctx, "code", "verifier").Return(session, models.Identity{ID: "u-1"}, nil)
	d.users.EXPECT().FindByID(ctx, "u-1").Return(models.User{UserID: "u-1", Role: models.RoleStaff}, nil)
	d.users.EXPECT().UpdateLastLogin(ctx, "u-1", gomock.Any()).Return(nil)
	d.revalidator.EXPECT().Revalidate(ctx, AdminUsersPath)

	got, err := svc.OAuthCallback(ctx, "code", "verifier")
	require.NoError(t, err)
	assert.Equal(t, session, got)
}

func TestOAuthCallback_DisabledUserIsSignedOut(t *testing.T) {
	ctx := context.Background()
	d := newTestDeps(t)
	svc := d.authService("")

	session := &models.Session{AccessToken: "at", UserID: "u-1"}
	d.identity.EXPECT().ExchangeCodeForSession(ctx, "code", "verifier").Return(session, models.Identity{ID: "u-1"}, nil)
	d.users.EXPECT().FindByID(ctx, "u-1").Return(models.User{UserID: "u-1", IsDisabled: true}, nil)
	d.identity.EXPECT().SignOut(ctx, "at").Return(nil)

	_, err := svc.OAuthCallback(ctx, "code", "verifier")
	require.ErrorIs(t, err, ErrAccountDisabled)
}

func TestOAuthCallback_ProvisionsFirstTimeUser(t *testing.T) {
	ctx := context.Background()
	d := newTestDeps(t)
	svc := d.authService("")

	session := &models.Session{AccessToken: "at", UserID: "u-1", Email: "g@x.com"}
	identity := models.Identity{ID: "u-1", Email: "G@x.com", UserMetadata: map[string]any{"name": "Grace Hopper"}}

	d.identity.EXPECT().ExchangeCodeForSession(ctx, "code", "verifier").Return(session, identity, nil)
	d.users.EXPECT().FindByID(ctx, "u-1").Return(models.User{}, store.ErrUserNotFound)
	d.users.EXPECT().CountByRole(ctx, models.RoleAdmin).Return(1, nil)
	d.users.EXPECT().Create(ctx, models.User{UserID: "u-1", Email: "g@x.com", Name: "Grace Hopper", Role: models.RoleGuest}, false).
		Return(models.User{UserID: "u-1", Email: "g@x.com", Name: "Grace Hopper", Role: models.RoleGuest}, nil)
	d.notifier.EXPECT().Notify(ctx, models.ContactTask("g@x.com", "Grace Hopper"))
	d.users.EXPECT().UpdateLastLogin(ctx, "u-1", gomock.Any()).Return(nil)
	// once for the new row, once for its last login
	d.revalidator.EXPECT().Revalidate(ctx, AdminUsersPath).Times(2)

	_, err := svc.OAuthCallback(ctx, "code", "verifier")
	require.NoError(t, err)
}

func TestOAuthCallback_ProvisioningFailureRecordsOrphan(t *testing.T) {
	ctx := context.Background()
	d := newTestDeps(t)
	svc := d.authService("")

	session := &models.Session{AccessToken: "at", UserID: "u-1", Email: "g@x.com"}
	d.identity.EXPECT().ExchangeCodeForSession(ctx, "code", "verifier").
		Return(session, models.Identity{ID: "u-1", Email: "g@x.com"}, nil)
	d.users.EXPECT().FindByID(ctx, "u-1").Return(models.User{}, store.ErrUserNotFound)
	d.users.EXPECT().CountByRole(ctx, models.RoleAdmin).Return(1, nil)
	d.users.EXPECT().Create(ctx, gomock.Any(), false).Return(models.User{}, errors.New("insert failed"))
	d.events.EXPECT().Save(ctx, gomock.Any()).Return(nil)
	d.identity.EXPECT().SignOut(ctx, "at").Return(nil)
	d.identity.EXPECT().AdminDeleteUser(gomock.Any(), gomock.Any()).Times(0)

	_, err := svc.OAuthCallback(ctx, "code", "verifier")
	require.ErrorIs(t, err, ErrDirectory)
	assert.Equal(t, float64(1), d.reconciliationCount(models.OrphanedIdentity))
}

// ── Authenticate / Logout / ResetPassword ────────────────────────────────────

func TestAuthenticate_LocalJWT(t *testing.T) {
	ctx := context.Background()
	d := newTestDeps(t)
	svc := d.authService("jwt-secret")

	issuer := "https://id.example.com/auth/v1"
	token, err := utils.GenerateAccessToken(issuer, "u-1", "a@x.com", time.Hour, "jwt-secret")
	require.NoError(t, err)

	d.identity.EXPECT().Issuer().Return(issuer).AnyTimes()

	session, err := svc.Authenticate(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "u-1", session.UserID)
	assert.Equal(t, "a@x.com", session.Email)
	assert.False(t, session.ExpiresAt.IsZero())

	_, err = svc.Authenticate(ctx, token+"x")
	require.ErrorIs(t, err, ErrUnauthenticated)
}

func TestAuthenticate_ProviderLookup(t *testing.T) {
	ctx := context.Background()
	d := newTestDeps(t)
	svc := d.authService("")

	d.identity.EXPECT().GetUser(ctx, "good").Return(models.Identity{ID: "u-1", Email: "a@x.com"}, nil)
	d.identity.EXPECT().GetUser(ctx, "bad").Return(models.Identity{}, adapter.NewProviderError(401, ""))

	session, err := svc.Authenticate(ctx, "good")
	require.NoError(t, err)
	assert.Equal(t, "u-1", session.UserID)

	_, err = svc.Authenticate(ctx, "bad")
	require.ErrorIs(t, err, ErrUnauthenticated)

	_, err = svc.Authenticate(ctx, "")
	require.ErrorIs(t, err, ErrUnauthenticated)
}

func TestLogout(t *testing.T) {
	ctx := context.Background()
	d := newTestDeps(t)
	svc := d.authService("")

	require.NoError(t, svc.Logout(ctx, nil))

	d.identity.EXPECT().SignOut(ctx, "at").Return(nil)
	require.NoError(t, svc.Logout(ctx, &models.Session{AccessToken: "at"}))
}

func TestResetPassword_RedirectsToResetPage(t *testing.T) {
	ctx := context.Background()
	d := newTestDeps(t)
	svc := d.authService("")

	d.identity.EXPECT().ResetPasswordForEmail(ctx, "a@x.com", testSiteURL+ResetPasswordPath).Return(nil)
	require.NoError(t, svc.ResetPassword(ctx, models.ResetPasswordForm{Email: "a@x.com"}))

	err := svc.ResetPassword(ctx, models.ResetPasswordForm{Email: "not-an-email"})
	require.ErrorIs(t, err, ErrValidation)
}

// ── GetUserDataAndRole ───────────────────────────────────────────────────────

func TestGetUserDataAndRole(t *testing.T) {
	ctx := context.Background()
	session := &models.Session{AccessToken: "at", UserID: "u-1"}

	tests := []struct {
		name     string
		session  *models.Session
		row      models.User
		rowErr   error
		wantRole models.Role
		wantErr  error
		wantMsg  string
	}{
		{name: "no session", session: nil, wantErr: ErrUnauthenticated},
		{name: "staff", session: session, row: models.User{UserID: "u-1", Role: models.RoleStaff}, wantRole: models.RoleStaff},
		{name: "missing row", session: session, rowErr: store.ErrUserNotFound, wantErr: ErrInconsistentState, wantMsg: "User profile not found. Please contact support."},
		{name: "disabled", session: session, row: models.User{UserID: "u-1", IsDisabled: true}, wantErr: ErrAccountDisabled},
		{name: "db error", session: session, rowErr: errors.New("db down"), wantErr: ErrDirectory},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newTestDeps(t)
			svc := d.authService("")
			if tt.session != nil {
				d.users.EXPECT().FindByID(ctx, "u-1").Return(tt.row, tt.rowErr)
			}

			got, err := svc.GetUserDataAndRole(ctx, tt.session)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				if tt.wantMsg != "" {
					assert.Equal(t, tt.wantMsg, UserMessage(err))
				}
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantRole, got.Role)
		})
	}
}

func TestLoginRedirectFor(t *testing.T) {
	assert.Equal(t, LoginPath, LoginRedirectFor(unauthenticatedError(nil)).Location)
	assert.Equal(t, LoginPath+"?error="+url.QueryEscape(app.MsgAccountDisabled), LoginRedirectFor(disabledError()).Location)
}
