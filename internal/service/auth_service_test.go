package service

import (
	"testing"
	"time"

	"treasure_hunt_backend/internal/config"
	"treasure_hunt_backend/internal/model"
	"treasure_hunt_backend/internal/repository"
	"treasure_hunt_backend/internal/util"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func testAuthConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{
			Secret:     "unit-test-secret-not-for-production!",
			ExpireTime: time.Hour,
		},
	}
}

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func TestNormalizeUsername(t *testing.T) {
	assert.Equal(t, "team rocket", NormalizeUsername("  Team Rocket "))
	assert.Equal(t, "finders", NormalizeUsername("FINDERS"))
}

func TestLoginWrongPassword(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery("SELECT (.+) FROM `users` WHERE username").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "password", "role", "device_id", "points"}).
			AddRow(1, "finders", hashPassword(t, "right-horse"), "participant", nil, 0))

	svc := NewAuthService(repository.NewUserRepository(db), testAuthConfig())

	result, err := svc.Login("finders", "wrong-horse", "device-a")
	assert.Nil(t, result)
	assert.ErrorIs(t, err, util.ErrInvalidCredentials)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLoginUnknownUser(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery("SELECT (.+) FROM `users` WHERE username").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	svc := NewAuthService(repository.NewUserRepository(db), testAuthConfig())

	_, err := svc.Login("nobody", "whatever", "device-a")
	// indistinguishable from a bad password on purpose
	assert.ErrorIs(t, err, util.ErrInvalidCredentials)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLoginFlagsSupersededDevice(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery("SELECT (.+) FROM `users` WHERE username").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "password", "role", "device_id", "points"}).
			AddRow(1, "finders", hashPassword(t, "open-sesame"), "participant", "old-device", 0))
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `users` SET").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	svc := NewAuthService(repository.NewUserRepository(db), testAuthConfig())

	result, err := svc.Login("finders", "open-sesame", "new-device")
	require.NoError(t, err)
	assert.True(t, result.PreviousSessionInvalidated)
	assert.NotEmpty(t, result.Token)

	claims, err := util.ParseJWT(result.Token, testAuthConfig().JWT.Secret)
	require.NoError(t, err)
	assert.Equal(t, "new-device", claims.DeviceID)
	assert.Equal(t, "finders", claims.Username)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLoginSameDeviceNotFlagged(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery("SELECT (.+) FROM `users` WHERE username").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "password", "role", "device_id", "points"}).
			AddRow(1, "finders", hashPassword(t, "open-sesame"), "participant", "device-a", 0))
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `users` SET").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	svc := NewAuthService(repository.NewUserRepository(db), testAuthConfig())

	result, err := svc.Login("finders", "open-sesame", "device-a")
	require.NoError(t, err)
	assert.False(t, result.PreviousSessionInvalidated)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRegisterDuplicateUsername(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery("SELECT (.+) FROM `users` WHERE username").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username"}).AddRow(1, "finders"))

	svc := NewAuthService(repository.NewUserRepository(db), testAuthConfig())

	_, err := svc.Register("Finders", "secret-pass", model.Participant)
	assert.ErrorIs(t, err, util.ErrDuplicateUser)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRegisterRejectsUnknownRole(t *testing.T) {
	db, _ := newMockDB(t)

	svc := NewAuthService(repository.NewUserRepository(db), testAuthConfig())

	_, err := svc.Register("finders", "secret-pass", model.UserRole("superuser"))
	assert.ErrorIs(t, err, util.ErrInvalidRole)
}

func TestVerifyDeviceMismatch(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery("SELECT (.+) FROM `users` WHERE `users`.`id`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "password", "role", "device_id", "points"}).
			AddRow(1, "finders", "irrelevant", "participant", "newer-device", 0))

	svc := NewAuthService(repository.NewUserRepository(db), testAuthConfig())

	err := svc.VerifyDevice(&util.Claims{UserID: 1, DeviceID: "older-device"})
	assert.ErrorIs(t, err, util.ErrSessionExpired)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestVerifyDeviceMatch(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery("SELECT (.+) FROM `users` WHERE `users`.`id`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "password", "role", "device_id", "points"}).
			AddRow(1, "finders", "irrelevant", "participant", "device-a", 0))

	svc := NewAuthService(repository.NewUserRepository(db), testAuthConfig())

	assert.NoError(t, svc.VerifyDevice(&util.Claims{UserID: 1, DeviceID: "device-a"}))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLogoutFromSupersededSessionIsNoop(t *testing.T) {
	db, mock := newMockDB(t)

	// the conditional WHERE matches nothing, which is still success
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `users` SET").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	svc := NewAuthService(repository.NewUserRepository(db), testAuthConfig())

	assert.NoError(t, svc.Logout(1, "older-device"))
	require.NoError(t, mock.ExpectationsWereMet())
}
