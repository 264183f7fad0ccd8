package credential

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"regexp"
	"strings"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/credential"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/clock"
	"golang.org/x/crypto/blake2b"
)

// TokenLength is the fixed length of every issued token.
const TokenLength = 32

// MaxPayloadBytes bounds a scanned payload; printed badges are far smaller.
const MaxPayloadBytes = 4096

var (
	compactPathRegex = regexp.MustCompile(`^/q/([^/?#]+)/?$`)
	driverPaths      = []string{"mobile-driver", "driver-view"}
)

type canonicalPayload struct {
	ID    string `json:"id"`
	Token string `json:"token"`
}

// Encode produces the canonical JSON payload. Legacy URL shapes are never emitted.
// Fields are trimmed the same way Decode trims them.
func Encode(employeeID, token string) string {
	b, _ := json.Marshal(canonicalPayload{ID: strings.TrimSpace(employeeID), Token: strings.TrimSpace(token)})
	return string(b)
}

// Decode turns a raw scanned string into a Credential. Every failure is a
// *credential.DecodeError.
func Decode(raw string) (credential.Credential, error) {
	if len(raw) > MaxPayloadBytes {
		return credential.Credential{}, decodeError(credential.ReasonTooLarge, raw[:64])
	}
	input := strings.TrimSpace(raw)
	if input == "" {
		return credential.Credential{}, decodeError(credential.ReasonBlank, raw)
	}

	if strings.HasPrefix(input, "{") {
		return decodeJSON(input, credential.FormatJSON)
	}

	u, err := url.Parse(input)
	if err != nil {
		return credential.Credential{}, decodeError(credential.ReasonUnrecognizedFormat, raw)
	}
	path, query := routeOf(u)

	if nik := strings.TrimSpace(query.Get("nik")); nik != "" && isDriverPath(path) {
		return credential.Credential{
			EmployeeID: nik,
			Token:      credential.TokenAssertedByURL,
			Format:     credential.FormatURLNIK,
		}, nil
	}

	if m := compactPathRegex.FindStringSubmatch(path); m != nil {
		token, err := url.PathUnescape(m[1])
		if err != nil || strings.TrimSpace(token) == "" {
			return credential.Credential{}, decodeError(credential.ReasonUnrecognizedFormat, raw)
		}
		return credential.Credential{
			EmployeeID: credential.IdentityFromToken,
			Token:      token,
			Format:     credential.FormatCompact,
		}, nil
	}

	for _, key := range []string{"data", "qr"} {
		if value := strings.TrimSpace(query.Get(key)); value != "" {
			// Only the canonical JSON shape is accepted inside data=/qr=
			return decodeJSON(value, credential.FormatURLData)
		}
	}

	return credential.Credential{}, decodeError(credential.ReasonUnrecognizedFormat, raw)
}

func decodeJSON(input string, format credential.Format) (credential.Credential, error) {
	dec := json.NewDecoder(bytes.NewReader([]byte(input)))
	dec.UseNumber()

	var fields map[string]interface{}
	if err := dec.Decode(&fields); err != nil {
		return credential.Credential{}, decodeError(credential.ReasonMalformedJSON, input)
	}
	// the payload must be exactly one JSON value
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return credential.Credential{}, decodeError(credential.ReasonMalformedJSON, input)
	}

	id := scalarString(fields["id"])
	token := scalarString(fields["token"])
	if id == "" || token == "" {
		return credential.Credential{}, decodeError(credential.ReasonMissingFields, input)
	}

	return credential.Credential{EmployeeID: id, Token: token, Format: format}, nil
}

// routeOf returns the effective path and query, following hash-routed URLs
// such as https://host/#/driver-view?nik=123.
func routeOf(u *url.URL) (string, url.Values) {
	path, query := u.Path, u.Query()
	if u.Fragment == "" {
		return path, query
	}
	frag, err := url.Parse(u.Fragment)
	if err != nil {
		return path, query
	}
	for k, vs := range frag.Query() {
		for _, v := range vs {
			query.Add(k, v)
		}
	}
	if frag.Path != "" {
		path = strings.TrimSuffix(path, "/") + "/" + strings.TrimPrefix(frag.Path, "/")
	}
	return path, query
}

func isDriverPath(path string) bool {
	for _, p := range driverPaths {
		if strings.Contains(path, p) {
			return true
		}
	}
	return false
}

func scalarString(v interface{}) string {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val)
	case json.Number:
		return val.String()
	default:
		return ""
	}
}

func decodeError(reason, input string) error {
	return &credential.DecodeError{Reason: reason, Input: input}
}

// Issuer derives opaque fixed-length tokens from the employee id, a shared
// secret and the issuance time. It obfuscates; it does not authenticate.
type Issuer struct {
	key   []byte
	clock clock.Clock
}

func NewIssuer(secret string, clk clock.Clock) (*Issuer, error) {
	if secret == "" {
		return nil, credential.ErrIssuerMissingKey
	}
	key := []byte(secret)
	if len(key) > blake2b.Size {
		sum := blake2b.Sum512(key)
		key = sum[:]
	}
	return &Issuer{key: key, clock: clk}, nil
}

// Issue returns a new token for employeeID.
func (i *Issuer) Issue(employeeID string) (string, error) {
	if strings.TrimSpace(employeeID) == "" {
		return "", credential.ErrEmptyEmployeeID
	}
	h, err := blake2b.New256(i.key)
	if err != nil {
		return "", fmt.Errorf("failed to init token hash: %w", err)
	}
	fmt.Fprintf(h, "%s|%d", employeeID, i.clock.Now().UnixNano())
	return hex.EncodeToString(h.Sum(nil))[:TokenLength], nil
}
