package wallet

import (
	"fmt"

	"github.com/gcash/bchd/chaincfg"
	"github.com/gcash/bchutil"
	"github.com/gcash/bchutil/hdkeychain"
)

// KeyRing derives single-use payment keypairs from one master extended key.
// Each payment address is the child m/0/index; the database only ever sees
// the index and the cash address, so a leaked payment_addresses table holds
// nothing spendable.
type KeyRing struct {
	branch *hdkeychain.ExtendedKey
	params *chaincfg.Params
	prefix string
}

func NewKeyRing(masterKey, network string) (*KeyRing, error) {
	params, err := Params(network)
	if err != nil {
		return nil, err
	}

	master, err := hdkeychain.NewKeyFromString(masterKey)
	if err != nil {
		return nil, fmt.Errorf("hdkeychain.NewKeyFromString -> %w", err)
	}
	if !master.IsPrivate() {
		return nil, fmt.Errorf("master key is not an extended private key")
	}

	branch, err := master.Child(0)
	if err != nil {
		return nil, fmt.Errorf("master.Child -> %w", err)
	}

	return &KeyRing{
		branch: branch,
		params: params,
		prefix: params.CashAddressPrefix,
	}, nil
}

// Address derives the cash address for a child index.
func (k *KeyRing) Address(index uint32) (string, error) {
	child, err := k.branch.Child(index)
	if err != nil {
		return "", fmt.Errorf("k.branch.Child -> %w", err)
	}

	addr, err := child.Address(k.params)
	if err != nil {
		return "", fmt.Errorf("child.Address -> %w", err)
	}

	return k.prefix + ":" + addr.EncodeAddress(), nil
}

// WIF re-derives the spending key for a child index. Callers must treat the
// result as a secret: pass it to the wallet gateway and drop it.
func (k *KeyRing) WIF(index uint32) (string, error) {
	child, err := k.branch.Child(index)
	if err != nil {
		return "", fmt.Errorf("k.branch.Child -> %w", err)
	}

	priv, err := child.ECPrivKey()
	if err != nil {
		return "", fmt.Errorf("child.ECPrivKey -> %w", err)
	}

	wif, err := bchutil.NewWIF(priv, k.params, true)
	if err != nil {
		return "", fmt.Errorf("bchutil.NewWIF -> %w", err)
	}

	return wif.String(), nil
}
