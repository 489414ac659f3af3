package server

import (
	"encoding/hex"
	"net"
	"net/http"
	"strings"

	"golang.org/x/crypto/blake2b"
)

const unknownClient = "unknown"

// ClientKeyer derives the rate-limit key of a request. The raw address never
// leaves this type: callers only see its salted BLAKE2b-256 digest.
type ClientKeyer struct {
	trustProxyHeaders bool
	salt              []byte
}

func NewClientKeyer(trustProxyHeaders bool, salt string) ClientKeyer {
	return ClientKeyer{trustProxyHeaders: trustProxyHeaders, salt: []byte(salt)}
}

// ClientIP returns the best-effort network identity of the caller.
func (k ClientKeyer) ClientIP(r *http.Request) string {
	if k.trustProxyHeaders {
		if forwarded := strings.TrimSpace(r.Header.Get("X-Forwarded-For")); forwarded != "" {
			first, _, _ := strings.Cut(forwarded, ",")
			if ip := strings.TrimSpace(first); ip != "" {
				return ip
			}
		}
		for _, header := range []string{"X-Real-IP", "CF-Connecting-IP"} {
			if ip := strings.TrimSpace(r.Header.Get(header)); ip != "" {
				return ip
			}
		}
	}

	remote := strings.TrimSpace(r.RemoteAddr)
	if remote == "" {
		return unknownClient
	}
	host, _, err := net.SplitHostPort(remote)
	if err != nil {
		return remote
	}
	return host
}

// Key hashes the client IP with the configured salt.
func (k ClientKeyer) Key(r *http.Request) string {
	h, _ := blake2b.New256(nil)
	h.Write(k.salt)
	h.Write([]byte{0})
	h.Write([]byte(k.ClientIP(r)))
	return hex.EncodeToString(h.Sum(nil))
}
