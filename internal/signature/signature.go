// Package signature authenticates inbound payment confirmations.
//
// Two schemes exist because the two payment providers define authenticity
// differently: the signature-based gateway signs "order_id|payment_id" with
// HMAC-SHA256, while the callback-based gateway hashes every payload value,
// sorted by key, together with a shared salt using SHA-512.
package signature

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"sort"
	"strings"
)

// Field names understood by the HMAC scheme.
const (
	FieldOrderID   = "order_id"
	FieldPaymentID = "payment_id"
)

// Scheme verifies a claimed signature over a set of payload fields.
type Scheme interface {
	Verify(fields map[string]string, claimed string) bool
}

// HMAC is the signature-based gateway scheme.
type HMAC struct {
	Secret string
}

func (h HMAC) Verify(fields map[string]string, claimed string) bool {
	if h.Secret == "" || claimed == "" {
		return false
	}
	expected := HMACSignature(h.Secret, fields[FieldOrderID], fields[FieldPaymentID])
	return equal(expected, claimed)
}

// HMACSignature returns hex(HMAC-SHA256(secret, orderID + "|" + paymentID)).
func HMACSignature(secret, orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

// SaltedHash is the callback-based gateway scheme. The claimed hash must
// not be part of fields.
type SaltedHash struct {
	Salt string
}

func (s SaltedHash) Verify(fields map[string]string, claimed string) bool {
	if claimed == "" {
		return false
	}
	return equal(SaltedHashOf(fields, s.Salt), claimed)
}

// SaltedHashOf returns upper(hex(SHA512(v1|v2|...|vn|salt))) where the
// values are ordered by their keys.
func SaltedHashOf(fields map[string]string, salt string) string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteByte('|')
		}
		b.WriteString(fields[k])
	}
	b.WriteByte('|')
	b.WriteString(salt)

	sum := sha512.Sum512([]byte(b.String()))
	return strings.ToUpper(hex.EncodeToString(sum[:]))
}

// equal compares exactly, in constant time.
func equal(expected, claimed string) bool {
	return subtle.ConstantTimeCompare([]byte(expected), []byte(claimed)) == 1
}
