package object_test

import (
	"testing"

	"github.com/golang/mock/gomock"
	logtest "github.com/lthibault/log/test"
	"github.com/stretchr/testify/require"

	"github.com/momentics/hioload-core/core/object"
)

func TestInvariantViolationIsLogged(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	logger := logtest.NewMockLogger(ctrl)
	logger.EXPECT().
		WithField("op", "Release").
		Return(logger).
		Times(1)
	logger.EXPECT().
		WithField("type", "Blob").
		Return(logger).
		Times(1)
	logger.EXPECT().
		Error(gomock.Any()).
		Times(1)

	prev := object.Logger()
	object.SetLogger(logger)
	defer object.SetLogger(prev)

	o, err := object.Create(blobType, []byte("x"))
	require.NoError(t, err)
	alias := o
	object.Release(&o)

	require.Panics(t, func() { object.Release(&alias) })
}
