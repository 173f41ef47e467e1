// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import "net/http"

// SecureHeaders stamps defensive headers on every API response. The API
// serves JSON with uploader-controlled file names and article bodies in
// it, so sniffing and framing are both shut off outright.
func SecureHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()

		// JSON must never be sniffed into something executable.
		h.Set("X-Content-Type-Options", "nosniff")

		// An API has no legitimate reason to be framed at all.
		h.Set("X-Frame-Options", "DENY")

		// The legacy XSS filter does more harm than good.
		h.Set("X-XSS-Protection", "0")

		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")

		next.ServeHTTP(w, r)
	})
}
