package keys

import (
	"context"
	"testing"

	"github.com/davbox/davboxd/entities"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestUser(t *testing.T) {
	user := &entities.User{Username: "test"}
	ctx := SetUser(context.Background(), user)

	got, ok := GetUser(ctx)
	assert.True(t, ok)
	assert.Equal(t, user, got)
	assert.Equal(t, user, MustGetUser(ctx))
}

func TestUser_withEmptyContext(t *testing.T) {
	_, ok := GetUser(context.Background())
	assert.False(t, ok)
	assert.Panics(t, func() { MustGetUser(context.Background()) })
}

func TestLog(t *testing.T) {
	log := logrus.WithField("test", "test")
	ctx := SetLog(context.Background(), log)

	got, ok := GetLog(ctx)
	assert.True(t, ok)
	assert.Equal(t, log, got)
	assert.Equal(t, log, MustGetLog(ctx))
}

func TestTraceID(t *testing.T) {
	ctx := SetTraceID(context.Background(), "some-trace")

	got, ok := GetTraceID(ctx)
	assert.True(t, ok)
	assert.Equal(t, "some-trace", got)
	assert.Equal(t, "some-trace", MustGetTraceID(ctx))
}
