package eventbus

import (
	"errors"
	"fmt"

	nc "github.com/nats-io/nats.go"
	"github.com/nats-io/nkeys"
)

// ErrNotUserSeed is returned for seeds of accounts, operators or servers.
var ErrNotUserSeed = errors.New("nkey seed is not a user seed")

// NKeyOption authenticates a NATS connection with a user nkey seed. The seed never
// leaves the process; only nonce signatures are sent.
func NKeyOption(seed string) (nc.Option, error) {
	kp, err := nkeys.FromSeed([]byte(seed))
	if err != nil {
		return nil, fmt.Errorf("invalid nkey seed: %w", err)
	}
	pub, err := kp.PublicKey()
	if err != nil {
		return nil, fmt.Errorf("failed to derive nkey public key: %w", err)
	}
	if !nkeys.IsValidPublicUserKey(pub) {
		return nil, ErrNotUserSeed
	}
	return nc.Nkey(pub, kp.Sign), nil
}
