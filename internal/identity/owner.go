package identity

import "context"

// Owner identifies who a cart belongs to. Authenticated users carry a
// UserID assigned by the upstream sign-in layer; anonymous visitors carry
// only a device key minted by the client. Both may be present at once;
// the cart engine writes to the device scope unconditionally and to the
// user scope when authenticated.
type Owner struct {
	UserID      string
	DeviceKey   string
	DisplayName string
	Email       string
}

func (o Owner) Authenticated() bool {
	return o.UserID != ""
}

// Key returns the owner key carts and orders are scoped to: the user id
// when authenticated, otherwise the device key.
func (o Owner) Key() string {
	if o.UserID != "" {
		return o.UserID
	}
	return o.DeviceKey
}

func (o Owner) Valid() bool {
	return o.UserID != "" || o.DeviceKey != ""
}

type ctxKey struct{}

func WithOwner(ctx context.Context, o Owner) context.Context {
	return context.WithValue(ctx, ctxKey{}, o)
}

func FromContext(ctx context.Context) (Owner, bool) {
	o, ok := ctx.Value(ctxKey{}).(Owner)
	return o, ok && o.Valid()
}
