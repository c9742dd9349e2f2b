package eventbus

import (
	"testing"

	"github.com/nats-io/nkeys"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNKeyOption(t *testing.T) {
	user, err := nkeys.CreateUser()
	require.NoError(t, err)
	seed, err := user.Seed()
	require.NoError(t, err)

	opt, err := NKeyOption(string(seed))
	require.NoError(t, err)
	assert.NotNil(t, opt)

	account, err := nkeys.CreateAccount()
	require.NoError(t, err)
	accountSeed, err := account.Seed()
	require.NoError(t, err)
	_, err = NKeyOption(string(accountSeed))
	assert.ErrorIs(t, err, ErrNotUserSeed)

	_, err = NKeyOption("not-a-seed")
	assert.Error(t, err)
}
