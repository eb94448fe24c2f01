package clerk

import (
	"context"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"math/big"
	"net/http"
	"sync"
	"time"

	"midatopay/internal/errors"
)

const defaultKeyCacheTTL = 10 * time.Minute

// keySet caches the RSA keys of the Clerk instance by kid.
type keySet struct {
	jwksURL    string
	secretKey  string
	httpClient *http.Client
	cacheTTL   time.Duration
	now        func() time.Time

	mu       sync.RWMutex
	expires  time.Time
	keyByKID map[string]*rsa.PublicKey
}

func newKeySet(jwksURL, secretKey string, httpClient *http.Client, cacheTTL time.Duration) *keySet {
	if cacheTTL <= 0 {
		cacheTTL = defaultKeyCacheTTL
	}

	return &keySet{
		jwksURL:    jwksURL,
		secretKey:  secretKey,
		httpClient: httpClient,
		cacheTTL:   cacheTTL,
		now:        time.Now,
		keyByKID:   map[string]*rsa.PublicKey{},
	}
}

func (k *keySet) publicKey(ctx context.Context, kid string) (*rsa.PublicKey, error) {
	if key := k.cachedKey(kid); key != nil {
		return key, nil
	}

	if err := k.refresh(ctx); err != nil {
		return nil, err
	}

	if key := k.cachedKey(kid); key != nil {
		return key, nil
	}

	return nil, errors.Errorf("key not found for kid %s", kid)
}

func (k *keySet) cachedKey(kid string) *rsa.PublicKey {
	now := k.now()

	k.mu.RLock()
	defer k.mu.RUnlock()

	if now.After(k.expires) {
		return nil
	}

	return k.keyByKID[kid]
}

func (k *keySet) refresh(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, k.jwksURL, nil)
	if err != nil {
		return errors.WithStack(err)
	}
	req.Header.Set("Authorization", "Bearer "+k.secretKey)

	resp, err := k.httpClient.Do(req)
	if err != nil {
		return errors.Wrap(err, "fetch jwks")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return errors.Errorf("jwks endpoint returned %d", resp.StatusCode)
	}

	var payload struct {
		Keys []struct {
			Kid string `json:"kid"`
			Kty string `json:"kty"`
			N   string `json:"n"`
			E   string `json:"e"`
		} `json:"keys"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return errors.Wrap(err, "decode jwks")
	}

	keys := make(map[string]*rsa.PublicKey, len(payload.Keys))
	for _, key := range payload.Keys {
		if key.Kid == "" || key.Kty != "RSA" || key.N == "" || key.E == "" {
			continue
		}
		pub, err := parseRSAPublicKey(key.N, key.E)
		if err != nil {
			continue
		}
		keys[key.Kid] = pub
	}
	if len(keys) == 0 {
		return errors.New("no usable RSA keys in JWKS")
	}

	k.mu.Lock()
	k.keyByKID = keys
	k.expires = k.now().Add(k.cacheTTL)
	k.mu.Unlock()

	return nil
}

func parseRSAPublicKey(n, e string) (*rsa.PublicKey, error) {
	nb, err := base64.RawURLEncoding.DecodeString(n)
	if err != nil {
		return nil, errors.Wrap(err, "failed to decode modulus")
	}
	eb, err := base64.RawURLEncoding.DecodeString(e)
	if err != nil {
		return nil, errors.Wrap(err, "failed to decode exponent")
	}

	var exp uint64
	for _, b := range eb {
		exp = (exp << 8) | uint64(b)
	}
	if exp == 0 {
		return nil, errors.New("invalid exponent")
	}

	return &rsa.PublicKey{
		N: new(big.Int).SetBytes(nb),
		E: int(exp),
	}, nil
}
