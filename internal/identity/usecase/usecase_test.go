package usecase

import (
	"context"
	"errors"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/casbin/casbin/v3"
	"github.com/casbin/casbin/v3/model"

	"github.com/VenkataSiriPriya/Backend-acg/internal/identity/entity"
	"github.com/VenkataSiriPriya/Backend-acg/internal/pkg/clock"
	"github.com/VenkataSiriPriya/Backend-acg/internal/pkg/config"
	"github.com/VenkataSiriPriya/Backend-acg/internal/pkg/goerror"
	"github.com/VenkataSiriPriya/Backend-acg/internal/pkg/goroutine"
	"github.com/VenkataSiriPriya/Backend-acg/internal/pkg/hash"
	"github.com/VenkataSiriPriya/Backend-acg/internal/pkg/instrument"
	"github.com/VenkataSiriPriya/Backend-acg/internal/pkg/jwt"
	"github.com/VenkataSiriPriya/Backend-acg/internal/pkg/mail"
	"github.com/VenkataSiriPriya/Backend-acg/internal/pkg/otp"
	"github.com/VenkataSiriPriya/Backend-acg/internal/pkg/validator"
)

var reMailCode = regexp.MustCompile(`[0-9]{6}`)

type fakeRepoDB struct {
	mu        sync.Mutex
	usersByID map[int64]entity.User
	passwords map[int64]string

	updatePasswordErr error
	deleted           []int64
}

func newFakeRepoDB() *fakeRepoDB {
	return &fakeRepoDB{
		usersByID: make(map[int64]entity.User),
		passwords: make(map[int64]string),
	}
}

func (f *fakeRepoDB) seed(u entity.User, passwordHash string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.usersByID[u.ID] = u
	f.passwords[u.ID] = passwordHash
}

func (f *fakeRepoDB) GetUserByEmail(_ context.Context, email string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, u := range f.usersByID {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, goerror.ErrNotFound
}

func (f *fakeRepoDB) GetUserByUsername(_ context.Context, username string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, u := range f.usersByID {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, goerror.ErrNotFound
}

func (f *fakeRepoDB) GetUserLoginInfo(_ context.Context, email string) (*entity.UserLoginInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for id, u := range f.usersByID {
		if u.Email == email {
			return &entity.UserLoginInfo{
				ID:           u.ID,
				Username:     u.Username,
				Email:        u.Email,
				Role:         u.Role,
				PasswordHash: f.passwords[id],
			}, nil
		}
	}
	return nil, goerror.ErrNotFound
}

func (f *fakeRepoDB) GetUserList(_ context.Context) ([]entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	users := make([]entity.User, 0, len(f.usersByID))
	for _, u := range f.usersByID {
		users = append(users, u)
	}
	return users, nil
}

func (f *fakeRepoDB) GetUserByID(_ context.Context, id int64) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	u, ok := f.usersByID[id]
	if !ok {
		return nil, goerror.ErrNotFound
	}
	return &u, nil
}

func (f *fakeRepoDB) CreateUser(_ context.Context, user entity.NewUser, passwordHash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, u := range f.usersByID {
		if u.Email == user.Email {
			return goerror.ErrConflict
		}
	}
	f.usersByID[user.ID] = entity.User{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		Role:     user.Role,
	}
	f.passwords[user.ID] = passwordHash
	return nil
}

func (f *fakeRepoDB) UpdateUserPassword(_ context.Context, userID int64, passwordHash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.updatePasswordErr != nil {
		err := f.updatePasswordErr
		f.updatePasswordErr = nil
		return err
	}
	if _, ok := f.usersByID[userID]; !ok {
		return goerror.ErrNotFound
	}
	f.passwords[userID] = passwordHash
	return nil
}

func (f *fakeRepoDB) DeleteUser(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	delete(f.usersByID, id)
	delete(f.passwords, id)
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeMessaging struct {
	mu        sync.Mutex
	published []UserRegisteredEvent
}

func (f *fakeMessaging) PublishUserRegistered(_ context.Context, msg UserRegisteredEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.published = append(f.published, msg)
	return nil
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []mail.Message
	err  error
}

func (f *fakeMailer) Send(_ context.Context, msg mail.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, msg)
	return nil
}

func (f *fakeMailer) Close() error { return nil }

func (f *fakeMailer) lastCode(t *testing.T) string {
	t.Helper()

	f.mu.Lock()
	defer f.mu.Unlock()

	if len(f.sent) == 0 {
		t.Fatal("expected at least one mail to be sent")
	}
	code := reMailCode.FindString(f.sent[len(f.sent)-1].TextBody)
	if code == "" {
		t.Fatalf("no code found in mail body %q", f.sent[len(f.sent)-1].TextBody)
	}
	return code
}

type fakeJWT struct {
	err error
}

func (f *fakeJWT) Generate(uid int64, email, role string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return "token-for-" + email + "-" + role, nil
}

func (f *fakeJWT) Verify(string) (jwt.Claims, error) { return jwt.Claims{}, nil }

type fakeConfig struct {
	config.Config
	strings map[string]string
	minutes map[string]time.Duration
}

func (f *fakeConfig) GetString(key string) string { return f.strings[key] }

func (f *fakeConfig) GetMinute(key string) time.Duration { return f.minutes[key] }

type fakeNumberID struct {
	mu   sync.Mutex
	next int64
}

func (f *fakeNumberID) Generate() int64 {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.next++
	return f.next
}

type fixture struct {
	uc        *Usecase
	repoDB    *fakeRepoDB
	messaging *fakeMessaging
	mailer    *fakeMailer
	cfg       *fakeConfig
	goroutine *goroutine.Manager
	bcrypt    hash.Hash
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	v10, err := validator.NewV10Validator()
	if err != nil {
		t.Fatalf("failed to build validator: %v", err)
	}

	m, err := model.NewModelFromString(`
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && (p.obj == "*" || r.obj == p.obj) && (p.act == "*" || r.act == p.act)
`)
	if err != nil {
		t.Fatalf("failed to build casbin model: %v", err)
	}
	enforcer, err := casbin.NewEnforcer(m)
	if err != nil {
		t.Fatalf("failed to build enforcer: %v", err)
	}
	if _, err := enforcer.AddPolicy("admin", "users", "*"); err != nil {
		t.Fatalf("failed to add policy: %v", err)
	}

	clk := clock.New()
	repoDB := newFakeRepoDB()
	messaging := &fakeMessaging{}
	mailer := &fakeMailer{}
	bcrypt := hash.NewBcrypt(4, "pepper")
	gm := goroutine.NewManager(10)
	cfg := &fakeConfig{
		strings: map[string]string{},
		minutes: map[string]time.Duration{},
	}

	uc := New(Dependency{
		RepoDB:        repoDB,
		RepoMessaging: messaging,
		Validator:     v10,
		Config:        cfg,
		Bcrypt:        bcrypt,
		OTP:           otp.NewManager(otp.NewMemoryStore(clk, time.Hour), hash.NewHMACSHA256("test-secret"), clk, 10*time.Minute),
		Mail:          mailer,
		UID:           &fakeNumberID{},
		Clock:         clk,
		JWT:           &fakeJWT{},
		Instrument:    instrument.NewNoop(),
		Enforcer:      enforcer,
		Goroutine:     gm,
	})

	return &fixture{
		uc:        uc,
		repoDB:    repoDB,
		messaging: messaging,
		mailer:    mailer,
		cfg:       cfg,
		goroutine: gm,
		bcrypt:    bcrypt,
	}
}

func (f *fixture) seedUser(t *testing.T, username, email, password string) entity.User {
	t.Helper()

	hashed, err := f.bcrypt.Hash(password)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := entity.User{
		ID:       int64(len(f.repoDB.usersByID) + 100),
		Username: username,
		Email:    email,
		Role:     entity.RoleUser,
	}
	f.repoDB.seed(user, string(hashed))
	return user
}

func assertCode(t *testing.T, err error, want goerror.Code) {
	t.Helper()

	var ge *goerror.Error
	if !errors.As(err, &ge) {
		t.Fatalf("expected *goerror.Error, got %T: %v", err, err)
	}
	if ge.Code() != want {
		t.Fatalf("error code = %s, want %s", ge.Code(), want)
	}
}

func adminContext() context.Context {
	return jwt.SetAuth(context.Background(), jwt.Claims{UserID: 1, UserRole: "admin"})
}

func TestRegister(t *testing.T) {
	f := newFixture(t)

	err := f.uc.Register(context.Background(), RegisterInput{
		Username: "alice",
		Email:    "Alice@Example.com",
		Password: "s3cret-pass",
	})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	user, err := f.repoDB.GetUserByEmail(context.Background(), "alice@example.com")
	if err != nil {
		t.Fatalf("user not persisted: %v", err)
	}
	if user.Username != "alice" {
		t.Fatalf("username = %q, want %q", user.Username, "alice")
	}
	if user.Role != entity.RoleUser {
		t.Fatalf("role = %q, want %q", user.Role, entity.RoleUser)
	}

	if err := f.goroutine.Wait(); err != nil {
		t.Fatalf("background tasks failed: %v", err)
	}
	if len(f.messaging.published) != 1 {
		t.Fatalf("published events = %d, want 1", len(f.messaging.published))
	}
	if f.messaging.published[0].Email != "alice@example.com" {
		t.Fatalf("published email = %q", f.messaging.published[0].Email)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	f := newFixture(t)
	f.seedUser(t, "alice", "alice@example.com", "s3cret-pass")

	err := f.uc.Register(context.Background(), RegisterInput{
		Username: "alice2",
		Email:    "alice@example.com",
		Password: "s3cret-pass",
	})

	assertCode(t, err, goerror.CodeConflict)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	f := newFixture(t)
	f.seedUser(t, "alice", "alice@example.com", "s3cret-pass")

	err := f.uc.Register(context.Background(), RegisterInput{
		Username: "alice",
		Email:    "other@example.com",
		Password: "s3cret-pass",
	})

	assertCode(t, err, goerror.CodeConflict)
}

func TestRegisterInvalidInput(t *testing.T) {
	f := newFixture(t)

	err := f.uc.Register(context.Background(), RegisterInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "short",
	})

	assertCode(t, err, goerror.CodeInvalidInput)
}

func TestLogin(t *testing.T) {
	f := newFixture(t)
	f.seedUser(t, "alice", "alice@example.com", "s3cret-pass")

	out, err := f.uc.Login(context.Background(), LoginInput{
		Email:    "alice@example.com",
		Password: "s3cret-pass",
	})
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	if out.Username != "alice" {
		t.Fatalf("username = %q, want %q", out.Username, "alice")
	}
	if out.Role != entity.RoleUser {
		t.Fatalf("role = %q, want %q", out.Role, entity.RoleUser)
	}
	if out.AccessToken == "" {
		t.Fatal("expected a non-empty access token")
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Login(context.Background(), LoginInput{
		Email:    "ghost@example.com",
		Password: "whatever1",
	})

	assertCode(t, err, goerror.CodeNotFound)
}

func TestLoginWrongPassword(t *testing.T) {
	f := newFixture(t)
	f.seedUser(t, "alice", "alice@example.com", "s3cret-pass")

	_, err := f.uc.Login(context.Background(), LoginInput{
		Email:    "alice@example.com",
		Password: "wrong-pass",
	})

	assertCode(t, err, goerror.CodeUnauthorized)
}

func TestLoginAdminAccount(t *testing.T) {
	f := newFixture(t)
	f.cfg.strings["modules.identity.admin_email"] = "admin@example.com"
	f.cfg.strings["modules.identity.admin_password"] = "super-secret"

	out, err := f.uc.Login(context.Background(), LoginInput{
		Email:    "Admin@Example.com",
		Password: "super-secret",
	})
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if out.Role != entity.RoleAdmin {
		t.Fatalf("role = %q, want %q", out.Role, entity.RoleAdmin)
	}
	if out.UserID != 0 {
		t.Fatalf("user id = %d, want 0", out.UserID)
	}

	_, err = f.uc.Login(context.Background(), LoginInput{
		Email:    "admin@example.com",
		Password: "wrong-secret",
	})
	assertCode(t, err, goerror.CodeUnauthorized)
}

func TestOTPRequestVerifyReset(t *testing.T) {
	f := newFixture(t)
	user := f.seedUser(t, "alice", "alice@example.com", "old-password")

	out, err := f.uc.OTPRequest(context.Background(), OTPRequestInput{Email: "alice@example.com"})
	if err != nil {
		t.Fatalf("OTPRequest() error = %v", err)
	}
	if out.ExpiresIn != int64((10 * time.Minute).Seconds()) {
		t.Fatalf("expires in = %d, want %d", out.ExpiresIn, int64((10 * time.Minute).Seconds()))
	}

	code := f.mailer.lastCode(t)

	if err := f.uc.OTPVerify(context.Background(), OTPVerifyInput{Email: "alice@example.com", Code: code}); err != nil {
		t.Fatalf("OTPVerify() error = %v", err)
	}

	// Verify does not consume, so reset with the same code still works.
	err = f.uc.PasswordReset(context.Background(), PasswordResetInput{
		Email:       "alice@example.com",
		Code:        code,
		NewPassword: "new-password",
	})
	if err != nil {
		t.Fatalf("PasswordReset() error = %v", err)
	}

	if _, err := f.uc.Login(context.Background(), LoginInput{
		Email:    "alice@example.com",
		Password: "new-password",
	}); err != nil {
		t.Fatalf("login with new password failed: %v", err)
	}
	_, err = f.uc.Login(context.Background(), LoginInput{
		Email:    "alice@example.com",
		Password: "old-password",
	})
	assertCode(t, err, goerror.CodeUnauthorized)

	// The code is burned after a successful reset.
	err = f.uc.PasswordReset(context.Background(), PasswordResetInput{
		Email:       user.Email,
		Code:        code,
		NewPassword: "another-pass",
	})
	assertCode(t, err, goerror.CodeNotFound)
}

func TestOTPRequestUnknownEmail(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.OTPRequest(context.Background(), OTPRequestInput{Email: "ghost@example.com"})

	assertCode(t, err, goerror.CodeNotFound)
}

func TestOTPRequestMailFailure(t *testing.T) {
	f := newFixture(t)
	f.seedUser(t, "alice", "alice@example.com", "s3cret-pass")
	f.mailer.err = errors.New("smtp down")

	_, err := f.uc.OTPRequest(context.Background(), OTPRequestInput{Email: "alice@example.com"})

	assertCode(t, err, goerror.CodeDependency)
}

func TestOTPVerifyWrongCode(t *testing.T) {
	f := newFixture(t)
	f.seedUser(t, "alice", "alice@example.com", "s3cret-pass")

	if _, err := f.uc.OTPRequest(context.Background(), OTPRequestInput{Email: "alice@example.com"}); err != nil {
		t.Fatalf("OTPRequest() error = %v", err)
	}
	code := f.mailer.lastCode(t)
	wrong := "000000"
	if wrong == code {
		wrong = "000001"
	}

	err := f.uc.OTPVerify(context.Background(), OTPVerifyInput{Email: "alice@example.com", Code: wrong})

	assertCode(t, err, goerror.CodeMismatch)
}

func TestOTPVerifyWithoutRequest(t *testing.T) {
	f := newFixture(t)

	err := f.uc.OTPVerify(context.Background(), OTPVerifyInput{Email: "alice@example.com", Code: "123456"})

	assertCode(t, err, goerror.CodeNotFound)
}

func TestPasswordResetCommitFailureKeepsCode(t *testing.T) {
	f := newFixture(t)
	f.seedUser(t, "alice", "alice@example.com", "old-password")

	if _, err := f.uc.OTPRequest(context.Background(), OTPRequestInput{Email: "alice@example.com"}); err != nil {
		t.Fatalf("OTPRequest() error = %v", err)
	}
	code := f.mailer.lastCode(t)

	f.repoDB.updatePasswordErr = errors.New("db down")
	err := f.uc.PasswordReset(context.Background(), PasswordResetInput{
		Email:       "alice@example.com",
		Code:        code,
		NewPassword: "new-password",
	})
	if err == nil {
		t.Fatal("expected an error when the update fails")
	}

	// The code survives a failed update so the user can retry.
	err = f.uc.PasswordReset(context.Background(), PasswordResetInput{
		Email:       "alice@example.com",
		Code:        code,
		NewPassword: "new-password",
	})
	if err != nil {
		t.Fatalf("retry after failed update error = %v", err)
	}
}

func TestUserList(t *testing.T) {
	f := newFixture(t)
	f.seedUser(t, "alice", "alice@example.com", "s3cret-pass")
	f.seedUser(t, "bob", "bob@example.com", "s3cret-pass")

	out, err := f.uc.UserList(adminContext())
	if err != nil {
		t.Fatalf("UserList() error = %v", err)
	}
	if len(out.Users) != 2 {
		t.Fatalf("users = %d, want 2", len(out.Users))
	}
}

func TestUserListRequiresAuth(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.UserList(context.Background())
	assertCode(t, err, goerror.CodeUnauthorized)

	userCtx := jwt.SetAuth(context.Background(), jwt.Claims{UserID: 7, UserRole: "user"})
	_, err = f.uc.UserList(userCtx)
	assertCode(t, err, goerror.CodeForbidden)
}

func TestUserDelete(t *testing.T) {
	f := newFixture(t)
	user := f.seedUser(t, "alice", "alice@example.com", "s3cret-pass")

	if err := f.uc.UserDelete(adminContext(), UserDeleteInput{ID: user.ID}); err != nil {
		t.Fatalf("UserDelete() error = %v", err)
	}

	if _, err := f.repoDB.GetUserByID(context.Background(), user.ID); !errors.Is(err, goerror.ErrNotFound) {
		t.Fatalf("expected user to be gone, got %v", err)
	}
}

func TestUserDeleteUnknownID(t *testing.T) {
	f := newFixture(t)

	err := f.uc.UserDelete(adminContext(), UserDeleteInput{ID: 9999})

	assertCode(t, err, goerror.CodeNotFound)
}
