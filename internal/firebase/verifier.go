package firebase

import (
	"context"
	"crypto/rsa"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/triviapro/user-service/internal/config"
	"github.com/triviapro/user-service/internal/domain"
)

// ErrNotInitialized is returned when federated sign-in is attempted but no
// Firebase project is configured. The process starts fine without one; the
// failure surfaces on first use.
var ErrNotInitialized = errors.New("firebase verifier not initialized: FIREBASE_PROJECT_ID is not set")

// ErrInvalidToken covers every verification failure; callers do not
// distinguish expired, malformed or revoked tokens.
var ErrInvalidToken = errors.New("invalid firebase id token")

const defaultKeyTTL = time.Hour

var maxAgeRegex = regexp.MustCompile(`max-age=(\d+)`)

// Verifier checks Firebase ID tokens against Google's securetoken X.509
// certificates. Keys are cached until the Cache-Control max-age elapses.
type Verifier struct {
	projectID string
	certURL   string
	client    *http.Client

	mu        sync.RWMutex
	keys      map[string]*rsa.PublicKey
	expiresAt time.Time
}

// NewVerifier creates a verifier handle. An empty project id yields an
// unconfigured verifier whose VerifyIDToken fails with ErrNotInitialized.
func NewVerifier(cfg config.FirebaseConfig) *Verifier {
	return &Verifier{
		projectID: cfg.ProjectID,
		certURL:   cfg.CertURL,
		client:    &http.Client{Timeout: 10 * time.Second},
	}
}

// VerifyIDToken verifies an externally-issued ID token and returns the
// identity it vouches for.
func (v *Verifier) VerifyIDToken(ctx context.Context, idToken string) (*domain.ExternalIdentity, error) {
	if v.projectID == "" {
		return nil, ErrNotInitialized
	}

	token, err := jwt.Parse(idToken, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}

		kid, ok := token.Header["kid"].(string)
		if !ok {
			return nil, fmt.Errorf("missing kid header")
		}

		return v.publicKey(ctx, kid)
	},
		jwt.WithIssuer("https://securetoken.google.com/"+v.projectID),
		jwt.WithAudience(v.projectID),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	uid, _ := claims["sub"].(string)
	if uid == "" {
		return nil, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}

	identity := &domain.ExternalIdentity{UID: uid}
	identity.Email, _ = claims["email"].(string)
	identity.DisplayName, _ = claims["name"].(string)
	identity.EmailVerified, _ = claims["email_verified"].(bool)

	return identity, nil
}

func (v *Verifier) publicKey(ctx context.Context, kid string) (*rsa.PublicKey, error) {
	v.mu.RLock()
	if time.Now().Before(v.expiresAt) {
		if key, ok := v.keys[kid]; ok {
			v.mu.RUnlock()
			return key, nil
		}
	}
	v.mu.RUnlock()

	if err := v.refreshKeys(ctx); err != nil {
		return nil, err
	}

	v.mu.RLock()
	defer v.mu.RUnlock()

	key, ok := v.keys[kid]
	if !ok {
		return nil, fmt.Errorf("no certificate for kid %q", kid)
	}

	return key, nil
}

func (v *Verifier) refreshKeys(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, v.certURL, nil)
	if err != nil {
		return fmt.Errorf("failed to build cert request: %w", err)
	}

	resp, err := v.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to fetch certificates: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("certificate endpoint returned %d", resp.StatusCode)
	}

	var certs map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&certs); err != nil {
		return fmt.Errorf("failed to decode certificates: %w", err)
	}

	keys := make(map[string]*rsa.PublicKey, len(certs))
	for kid, certPEM := range certs {
		key, err := parseCert(certPEM)
		if err != nil {
			return fmt.Errorf("failed to parse certificate %q: %w", kid, err)
		}
		keys[kid] = key
	}

	v.mu.Lock()
	v.keys = keys
	v.expiresAt = time.Now().Add(keyTTL(resp.Header.Get("Cache-Control")))
	v.mu.Unlock()

	return nil
}

func parseCert(certPEM string) (*rsa.PublicKey, error) {
	block, _ := pem.Decode([]byte(certPEM))
	if block == nil {
		return nil, fmt.Errorf("no PEM block found")
	}

	cert, err := x509.ParseCertificate(block.Bytes)
	if err != nil {
		return nil, err
	}

	key, ok := cert.PublicKey.(*rsa.PublicKey)
	if !ok {
		return nil, fmt.Errorf("certificate does not carry an RSA key")
	}

	return key, nil
}

func keyTTL(cacheControl string) time.Duration {
	match := maxAgeRegex.FindStringSubmatch(cacheControl)
	if len(match) == 2 {
		if secs, err := strconv.Atoi(match[1]); err == nil && secs > 0 {
			return time.Duration(secs) * time.Second
		}
	}
	return defaultKeyTTL
}
