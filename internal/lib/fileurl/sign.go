// Package fileurl signs product image URLs with an HMAC and an expiry so that
// image links can be handed to browsers without exposing storage ids forever.
package fileurl

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var now = time.Now

// SignURL returns basePath/fileID with expires and sig query parameters.
// The signature covers "{fileID}:{expiresUnix}" using HMAC-SHA256.
func SignURL(basePath, fileID, secret string, ttl time.Duration) string {
	expires := now().Add(ttl).Unix()
	sig := computeHMAC(fileID, expires, secret)
	return fmt.Sprintf("%s/%s?expires=%d&sig=%s", strings.TrimRight(basePath, "/"), fileID, expires, sig)
}

// Verify checks that the signature is valid and the URL has not expired.
func Verify(fileID, expires, sig, secret string) bool {
	exp, err := strconv.ParseInt(expires, 10, 64)
	if err != nil {
		return false
	}
	if now().Unix() > exp {
		return false
	}
	expected := computeHMAC(fileID, exp, secret)
	return hmac.Equal([]byte(sig), []byte(expected))
}

func computeHMAC(fileID string, expires int64, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(fmt.Sprintf("%s:%d", fileID, expires)))
	return hex.EncodeToString(mac.Sum(nil))
}
