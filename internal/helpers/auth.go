package helpers

import (
	"encoding/base64"
	"errors"
	"strings"

	"github.com/alexedwards/argon2id"
)

var errInvalidRunToken = errors.New("invalid run token")

func CreateHash(password string) (string, error) {
	argonParams := argon2id.Params{
		Memory:      64 * 1024,
		Iterations:  3,
		Parallelism: 2,
		SaltLength:  32,
		KeyLength:   32,
	}
	hash, err := argon2id.CreateHash(password, &argonParams)
	if err != nil {
		return "", errors.New("can not create hash password")
	}

	return hash, nil
}

// CompareRunToken decodes the base64 header value and checks it against the configured hash.
func CompareRunToken(headerValue string, hash string) error {
	headerValue = strings.TrimSpace(headerValue)
	if headerValue == "" || hash == "" {
		return errInvalidRunToken
	}

	token, err := base64.StdEncoding.DecodeString(headerValue)
	if err != nil || len(token) == 0 {
		return errInvalidRunToken
	}

	match, err := argon2id.ComparePasswordAndHash(string(token), hash)
	if err != nil {
		return err
	}
	if !match {
		return errInvalidRunToken
	}
	return nil
}
