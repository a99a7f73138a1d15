// Package token mints and verifies the HS256-signed bearer tokens that carry
// an Identity between requests. Tokens are self-contained: validity is
// derived from the signature and expiry alone, so no server-side record of
// issued tokens exists. Rotating the signing secret invalidates every
// outstanding token at once.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/VenkateshW22/teamflow-api/internal/core/identity"
)

var ErrTokenMalformed = errors.New("malformed token")
var ErrSignatureInvalid = errors.New("token signature mismatch")
var ErrTokenExpired = errors.New("token expired")
var ErrEmptySubject = errors.New("token subject must not be empty")

const defaultTTL = 24 * time.Hour

// Codec signs and verifies tokens with a process-wide secret. The secret is
// read-only after construction, so a single Codec is safe for concurrent use.
type Codec struct {
	secret []byte
	ttl    time.Duration
	leeway time.Duration
	now    func() time.Time
}

type claims struct {
	UserID string   `json:"uid,omitempty"`
	Email  string   `json:"email,omitempty"`
	Roles  []string `json:"roles"`
	jwt.RegisteredClaims
}

// NewCodec returns a Codec minting tokens valid for ttl. A non-positive ttl
// falls back to 24h. leeway is the clock-skew grace applied during expiry
// checks; the default configuration passes zero.
func NewCodec(secret string, ttl, leeway time.Duration) *Codec {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Codec{secret: []byte(secret), ttl: ttl, leeway: leeway, now: time.Now}
}

// Mint encodes the identity into a signed token. IssuedAt and ExpiresAt on
// the input are ignored; the codec stamps them from its own clock.
func (c *Codec) Mint(id identity.Identity) (string, error) {
	if id.Subject == "" {
		return "", ErrEmptySubject
	}

	now := c.now().UTC()
	cl := claims{
		UserID: id.UserID,
		Email:  id.Email,
		Roles:  id.Roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.Subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, cl).SignedString(c.secret)
}

// Verify parses and validates a token string, returning the embedded
// identity. Failures are reported through the package sentinel errors so
// callers can distinguish malformed input, forged signatures, and expiry.
func (c *Codec) Verify(tokenString string) (identity.Identity, error) {
	var cl claims
	opts := []jwt.ParserOption{
		jwt.WithTimeFunc(c.now),
		jwt.WithLeeway(c.leeway),
	}

	tkn, err := jwt.ParseWithClaims(tokenString, &cl, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return c.secret, nil
	}, opts...)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return identity.Identity{}, ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return identity.Identity{}, ErrSignatureInvalid
		default:
			return identity.Identity{}, ErrTokenMalformed
		}
	}
	if !tkn.Valid || cl.Subject == "" {
		return identity.Identity{}, ErrTokenMalformed
	}

	id := identity.Identity{
		Subject: cl.Subject,
		UserID:  cl.UserID,
		Email:   cl.Email,
		Roles:   cl.Roles,
	}
	if cl.IssuedAt != nil {
		id.IssuedAt = cl.IssuedAt.Time
	}
	if cl.ExpiresAt != nil {
		id.ExpiresAt = cl.ExpiresAt.Time
	}
	return id, nil
}
