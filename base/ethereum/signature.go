package ethereum

import (
	"crypto/ecdsa"
	"fmt"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/x-xyz/settlement/domain"
)

// ValidateMsgSignature reports whether signature is signer's personal_sign over message.
func ValidateMsgSignature(message []byte, signature string, signer domain.Address) (bool, error) {
	recovered, err := RecoverMsgSigner(message, signature)
	if err != nil {
		return false, err
	}
	return recovered.Equals(signer), nil
}

// RecoverMsgSigner returns the lowercased address that produced a personal_sign signature.
func RecoverMsgSigner(message []byte, signature string) (domain.Address, error) {
	sig, err := hexutil.Decode(signature)
	if err != nil {
		return "", domain.ErrInvalidSignature
	}
	addr, err := ecRecover(accounts.TextHash(message), sig)
	if err != nil {
		return "", err
	}
	return domain.Address(addr.Hex()).ToLower(), nil
}

// SignMsg produces a personal_sign signature, mostly for tests and tooling.
func SignMsg(message []byte, key *ecdsa.PrivateKey) (string, error) {
	sig, err := crypto.Sign(accounts.TextHash(message), key)
	if err != nil {
		return "", err
	}
	sig[crypto.RecoveryIDOffset] += 27
	return hexutil.Encode(sig), nil
}

func GenerateKey() (*ecdsa.PrivateKey, domain.Address, error) {
	key, err := crypto.GenerateKey()
	if err != nil {
		return nil, "", err
	}
	return key, domain.Address(crypto.PubkeyToAddress(key.PublicKey).Hex()).ToLower(), nil
}

func ecRecover(hash []byte, sig []byte) (common.Address, error) {
	if len(sig) != crypto.SignatureLength {
		return common.Address{}, fmt.Errorf("signature must be %d bytes long", crypto.SignatureLength)
	}

	// wallets disagree on whether V is 0/1 or 27/28
	v := sig[crypto.RecoveryIDOffset]
	if v >= 27 {
		v -= 27
	}
	if v != 0 && v != 1 {
		return common.Address{}, domain.ErrInvalidSignature
	}

	normalized := make([]byte, len(sig))
	copy(normalized, sig)
	normalized[crypto.RecoveryIDOffset] = v

	rpk, err := crypto.SigToPub(hash, normalized)
	if err != nil {
		return common.Address{}, err
	}

	return crypto.PubkeyToAddress(*rpk), nil
}
