package middleware

import (
	"net/http"
	"strings"

	"github.com/RahatDev11/anys-beauty-corner-sub000/internal/identity"
)

const (
	HeaderUserID    = "X-User-Id"
	HeaderUserName  = "X-User-Name"
	HeaderUserEmail = "X-User-Email"
	HeaderDeviceID  = "X-Device-Id"
)

// ResolveOwner reads the identity headers set by the client: X-User-Id when
// the upstream sign-in layer authenticated the user, X-Device-Id always.
// Both may be present; the cart engine uses them for its dual persistence.
// Requests carrying neither stay anonymous-less and are rejected by
// handlers that need an owner.
func ResolveOwner(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		owner := identity.Owner{
			UserID:      strings.TrimSpace(r.Header.Get(HeaderUserID)),
			DeviceKey:   strings.TrimSpace(r.Header.Get(HeaderDeviceID)),
			DisplayName: strings.TrimSpace(r.Header.Get(HeaderUserName)),
			Email:       strings.TrimSpace(r.Header.Get(HeaderUserEmail)),
		}

		if owner.Valid() {
			r = r.WithContext(identity.WithOwner(r.Context(), owner))
		}
		next.ServeHTTP(w, r)
	})
}
