package helper

import (
	"crypto/rand"
	"crypto/rsa"

	"golang.org/x/crypto/ssh"
)

// AuthorizedKey generates a throwaway RSA public key in authorized_keys format.
func AuthorizedKey() []byte {
	priv, err := rsa.GenerateKey(rand.Reader, 1024)
	if err != nil {
		panic(err)
	}
	pub, err := ssh.NewPublicKey(&priv.PublicKey)
	if err != nil {
		panic(err)
	}
	return ssh.MarshalAuthorizedKey(pub)
}
