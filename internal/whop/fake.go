// File: internal/whop/fake.go
package whop

import "context"

// FakeVerifier substitutes the real client in handler tests.
type FakeVerifier struct {
	AuthorizationURLFn  func(redirectURI, state string) string
	VerifyCodeFn        func(ctx context.Context, code, redirectURI string) (*Membership, error)
	VerifyEmailFn       func(ctx context.Context, email string) (*Membership, error)
	VerifyAccessTokenFn func(ctx context.Context, accessToken, membershipID string) (*Membership, error)
}

var _ Verifier = (*FakeVerifier)(nil)

func (f *FakeVerifier) AuthorizationURL(redirectURI, state string) string {
	if f.AuthorizationURLFn != nil {
		return f.AuthorizationURLFn(redirectURI, state)
	}
	panic("unexpected AuthorizationURL")
}

func (f *FakeVerifier) VerifyCode(ctx context.Context, code, redirectURI string) (*Membership, error) {
	if f.VerifyCodeFn != nil {
		return f.VerifyCodeFn(ctx, code, redirectURI)
	}
	panic("unexpected VerifyCode")
}

func (f *FakeVerifier) VerifyEmail(ctx context.Context, email string) (*Membership, error) {
	if f.VerifyEmailFn != nil {
		return f.VerifyEmailFn(ctx, email)
	}
	panic("unexpected VerifyEmail")
}

func (f *FakeVerifier) VerifyAccessToken(ctx context.Context, accessToken, membershipID string) (*Membership, error) {
	if f.VerifyAccessTokenFn != nil {
		return f.VerifyAccessTokenFn(ctx, accessToken, membershipID)
	}
	panic("unexpected VerifyAccessToken")
}
