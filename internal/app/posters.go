package app

import (
	"context"
	"strings"
	"time"
)

// Posters are served through signed URLs valid for 7 days, the presign
// maximum. URLs are derived fresh on every read and never stored.
const signedURLTTL = 604800 * time.Second

// posterSignedURL swaps a stored poster reference for a signed URL. The
// stored value may carry a path prefix; the object key is always its last
// segment. Failures degrade the record instead of failing the request: the
// error is logged and the empty string returned.
func (app *application) posterSignedURL(ctx context.Context, stored string) string {
	key := stored
	if i := strings.LastIndex(key, "/"); i >= 0 {
		key = key[i+1:]
	}

	url, err := app.blobStore.SignedURL(ctx, key, signedURLTTL)
	if err != nil {
		app.logger.Error("failed to sign poster URL", "key", key, "error", err)
		return ""
	}

	return url
}
