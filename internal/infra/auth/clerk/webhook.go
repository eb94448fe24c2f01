package clerk

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"math"
	"strconv"
	"strings"
	"time"

	"midatopay/config"
	domainerrors "midatopay/internal/domain/errors"
	"midatopay/internal/domain/service"
	"midatopay/internal/errors"
)

const (
	webhookSecretPrefix     = "whsec_"
	webhookSignatureVersion = "v1"
	defaultWebhookTolerance = 5 * time.Minute
)

// svixVerifier checks Svix signatures on Clerk webhook deliveries.
type svixVerifier struct {
	key       []byte
	tolerance time.Duration
	now       func() time.Time
}

// NewWebhookVerifier decodes the configured whsec_ secret. An empty secret yields a
// verifier that reports Configured() == false.
func NewWebhookVerifier(cfg *config.Config) (service.WebhookVerifier, error) {
	v := &svixVerifier{tolerance: defaultWebhookTolerance, now: time.Now}
	if cfg.Clerk == nil {
		return v, nil
	}
	if cfg.Clerk.WebhookTolerance > 0 {
		v.tolerance = cfg.Clerk.WebhookTolerance
	}

	secret := strings.TrimSpace(cfg.Clerk.WebhookSecret)
	if secret == "" {
		return v, nil
	}

	key, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(secret, webhookSecretPrefix))
	if err != nil {
		return nil, errors.Wrap(err, "clerk.webhookSecret is not a valid whsec_ secret")
	}
	v.key = key

	return v, nil
}

func (v *svixVerifier) Configured() bool {
	return len(v.key) > 0
}

func (v *svixVerifier) Verify(headers service.WebhookHeaders, payload []byte) error {
	if !v.Configured() {
		return domainerrors.ErrWebhookNotConfigured
	}
	if headers.ID == "" || headers.Timestamp == "" || headers.Signature == "" {
		return domainerrors.ErrWebhookSignatureInvalid.WithDetails("missing svix headers")
	}

	ts, err := strconv.ParseInt(headers.Timestamp, 10, 64)
	if err != nil {
		return domainerrors.ErrWebhookSignatureInvalid.WithDetails("invalid svix-timestamp")
	}
	skew := v.now().Sub(time.Unix(ts, 0))
	if math.Abs(float64(skew)) > float64(v.tolerance) {
		return domainerrors.ErrWebhookSignatureInvalid.WithDetails("svix-timestamp outside tolerance")
	}

	expected := v.sign(headers.ID, headers.Timestamp, payload)
	for _, entry := range strings.Fields(headers.Signature) {
		version, sig, ok := strings.Cut(entry, ",")
		if !ok || version != webhookSignatureVersion {
			continue
		}
		decoded, err := base64.StdEncoding.DecodeString(sig)
		if err != nil {
			continue
		}
		if hmac.Equal(decoded, expected) {
			return nil
		}
	}

	return domainerrors.ErrWebhookSignatureInvalid.WithDetails("no matching signature")
}

func (v *svixVerifier) sign(id, timestamp string, payload []byte) []byte {
	mac := hmac.New(sha256.New, v.key)
	mac.Write([]byte(id))
	mac.Write([]byte{'.'})
	mac.Write([]byte(timestamp))
	mac.Write([]byte{'.'})
	mac.Write(payload)

	return mac.Sum(nil)
}
