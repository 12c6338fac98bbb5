package util

import (
	"testing"
	"time"

	"treasure_hunt_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseJWT(t *testing.T) {
	user := &model.User{
		Username: "finders",
		Role:     model.Participant,
	}
	user.ID = 42

	token, err := GenerateJWT(user, "device-a", "unit-test-secret", time.Hour)
	require.NoError(t, err)

	claims, err := ParseJWT(token, "unit-test-secret")
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "finders", claims.Username)
	assert.Equal(t, model.Participant, claims.Role)
	assert.Equal(t, "device-a", claims.DeviceID)
}

func TestParseJWTWrongSecret(t *testing.T) {
	user := &model.User{Username: "finders", Role: model.Participant}
	user.ID = 1

	token, err := GenerateJWT(user, "device-a", "secret-one", time.Hour)
	require.NoError(t, err)

	_, err = ParseJWT(token, "secret-two")
	assert.Error(t, err)
}

func TestParseJWTExpired(t *testing.T) {
	user := &model.User{Username: "finders", Role: model.Participant}
	user.ID = 1

	token, err := GenerateJWT(user, "device-a", "unit-test-secret", -time.Minute)
	require.NoError(t, err)

	_, err = ParseJWT(token, "unit-test-secret")
	assert.Error(t, err)
}
