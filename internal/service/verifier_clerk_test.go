package service

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"strconv"
	"testing"

	"webhook-verifier/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	svix "github.com/svix/svix-webhooks/go"
)

var (
	clerkKey    = []byte("clerk-signing-key-0123456789abcd")
	clerkSecret = "whsec_" + base64.StdEncoding.EncodeToString(clerkKey)
)

const clerkBody = `{"type":"user.created","data":{"id":"user_29w83sxmDNGwOuEthce5gg56FcC"}}`

// signClerk computes the svix signature directly, independent of the library
// under test.
func signClerk(key []byte, msgID, timestamp, body string) string {
	mac := hmac.New(sha256.New, key)
	mac.Write([]byte(msgID + "." + timestamp + "." + body))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

func clerkHeaders(msgID, timestamp, signature string) map[string]string {
	return map[string]string{
		"Svix-Id":        msgID,
		"Svix-Timestamp": timestamp,
		"Svix-Signature": signature,
	}
}

func newTestClerkVerifier(secret string) *ClerkVerifier {
	return NewClerkVerifier(secret, NewReplayGuard(300, fixedClock))
}

func TestClerkVerifier_Valid(t *testing.T) {
	ts := strconv.FormatInt(testNow.Unix(), 10)
	sig := signClerk(clerkKey, "msg_2LtjF3", ts, clerkBody)

	result := newTestClerkVerifier(clerkSecret).Verify(context.Background(),
		newTestRequest(clerkHeaders("msg_2LtjF3", ts, "v1,"+sig), clerkBody))

	require.True(t, result.IsValid, result.Error)
	assert.Equal(t, domain.PlatformClerk, result.Platform)
	assert.Empty(t, result.Error)
	assert.Equal(t, "user.created", result.Payload["type"])
	assert.Equal(t, "msg_2LtjF3", result.Metadata[domain.MetaDeliveryID])
	assert.Equal(t, ts, result.Metadata[domain.MetaTimestamp])
	assert.Equal(t, "user.created", result.Metadata[domain.MetaEventType])
}

func TestClerkVerifier_AnyOfMultipleSignatures(t *testing.T) {
	ts := strconv.FormatInt(testNow.Unix(), 10)
	good := signClerk(clerkKey, "msg_1", ts, clerkBody)
	stale := signClerk([]byte("rotated-out-key"), "msg_1", ts, clerkBody)

	for _, header := range []string{
		"v1," + stale + " v1," + good,
		"v1," + good + " v1," + stale,
		"v2,ignored v1," + good,
		"malformed v1," + good,
	} {
		result := newTestClerkVerifier(clerkSecret).Verify(context.Background(),
			newTestRequest(clerkHeaders("msg_1", ts, header), clerkBody))
		assert.True(t, result.IsValid, "header %q: %s", header, result.Error)
	}
}

func TestClerkVerifier_MissingHeaders(t *testing.T) {
	ts := strconv.FormatInt(testNow.Unix(), 10)
	full := clerkHeaders("msg_1", ts, "v1,abc")

	for _, drop := range []string{"Svix-Id", "Svix-Timestamp", "Svix-Signature"} {
		headers := map[string]string{}
		for k, v := range full {
			if k != drop {
				headers[k] = v
			}
		}

		result := newTestClerkVerifier(clerkSecret).Verify(context.Background(), newTestRequest(headers, clerkBody))

		assertRejected(t, result, domain.PlatformClerk, domain.ReasonMissingHeaders)
		assert.Contains(t, result.Error, "Clerk")
	}
}

func TestClerkVerifier_StaleTimestamp(t *testing.T) {
	ts := strconv.FormatInt(testNow.Unix()-301, 10)
	sig := signClerk(clerkKey, "msg_1", ts, clerkBody)

	result := newTestClerkVerifier(clerkSecret).Verify(context.Background(),
		newTestRequest(clerkHeaders("msg_1", ts, "v1,"+sig), clerkBody))

	assertRejected(t, result, domain.PlatformClerk, domain.ReasonStaleTimestamp)
}

func TestClerkVerifier_MalformedTimestamp(t *testing.T) {
	result := newTestClerkVerifier(clerkSecret).Verify(context.Background(),
		newTestRequest(clerkHeaders("msg_1", "yesterday", "v1,abc"), clerkBody))

	assertRejected(t, result, domain.PlatformClerk, domain.ReasonMalformedSignature)
}

func TestClerkVerifier_MutatedBody(t *testing.T) {
	ts := strconv.FormatInt(testNow.Unix(), 10)
	sig := signClerk(clerkKey, "msg_1", ts, clerkBody)

	result := newTestClerkVerifier(clerkSecret).Verify(context.Background(),
		newTestRequest(clerkHeaders("msg_1", ts, "v1,"+sig), mutateByte(clerkBody)))

	assertRejected(t, result, domain.PlatformClerk, domain.ReasonSignatureMismatch)
	assert.Contains(t, result.Error, "signature")
}

func TestClerkVerifier_SignedIDIsBound(t *testing.T) {
	ts := strconv.FormatInt(testNow.Unix(), 10)
	sig := signClerk(clerkKey, "msg_1", ts, clerkBody)

	result := newTestClerkVerifier(clerkSecret).Verify(context.Background(),
		newTestRequest(clerkHeaders("msg_2", ts, "v1,"+sig), clerkBody))

	assertRejected(t, result, domain.PlatformClerk, domain.ReasonSignatureMismatch)
}

func TestClerkVerifier_InvalidSecret(t *testing.T) {
	ts := strconv.FormatInt(testNow.Unix(), 10)

	for _, secret := range []string{"whsec_", "whsec_!!not-base64!!"} {
		result := newTestClerkVerifier(secret).Verify(context.Background(),
			newTestRequest(clerkHeaders("msg_1", ts, "v1,abc"), clerkBody))

		assertRejected(t, result, domain.PlatformClerk, domain.ReasonInternal)
	}
}

func TestClerkVerifier_NonJSONBody(t *testing.T) {
	ts := strconv.FormatInt(testNow.Unix(), 10)
	body := "plain text"
	sig := signClerk(clerkKey, "msg_1", ts, body)

	result := newTestClerkVerifier(clerkSecret).Verify(context.Background(),
		newTestRequest(clerkHeaders("msg_1", ts, "v1,"+sig), body))

	assert.True(t, result.IsValid)
	assert.Nil(t, result.Payload)
	assert.NotContains(t, result.Metadata, domain.MetaEventType)
}

func TestClerkVerifier_TimestampAtToleranceBoundary(t *testing.T) {
	tests := []struct {
		name   string
		offset int64
		valid  bool
	}{
		{"past at boundary", -300, true},
		{"future at boundary", 300, true},
		{"past one second beyond", -301, false},
		{"future one second beyond", 301, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := strconv.FormatInt(testNow.Unix()+tt.offset, 10)
			sig := signClerk(clerkKey, "msg_1", ts, clerkBody)

			result := newTestClerkVerifier(clerkSecret).Verify(context.Background(),
				newTestRequest(clerkHeaders("msg_1", ts, "v1,"+sig), clerkBody))

			if tt.valid {
				assert.True(t, result.IsValid, result.Error)
				return
			}
			assertRejected(t, result, domain.PlatformClerk, domain.ReasonStaleTimestamp)
		})
	}
}

func TestClerkVerifier_AcceptsSvixSignedDelivery(t *testing.T) {
	hook, err := svix.NewWebhook(clerkSecret)
	require.NoError(t, err)
	header, err := hook.Sign("msg_svix", testNow, []byte(clerkBody))
	require.NoError(t, err)

	ts := strconv.FormatInt(testNow.Unix(), 10)
	assert.Equal(t, "v1,"+signClerk(clerkKey, "msg_svix", ts, clerkBody), header)

	result := newTestClerkVerifier(clerkSecret).Verify(context.Background(),
		newTestRequest(clerkHeaders("msg_svix", ts, header), clerkBody))
	assert.True(t, result.IsValid, result.Error)
}
