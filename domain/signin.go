package domain

// SignInMethod is the tagged union of supported sign-in flows. Exactly one
// constructor applies per attempt; the auth use case dispatches on the tag.
type SignInMethod struct {
	Credentials *CredentialsSignIn
	Provider    *ProviderSignIn
}

// CredentialsSignIn carries an email/password pair.
type CredentialsSignIn struct {
	Email    string
	Password string
}

// ProviderSignIn carries a verified external identity, produced by the
// provider adapter after the OAuth handshake.
type ProviderSignIn struct {
	Name        string
	ExternalID  string
	Email       string
	DisplayName string
}

// WithCredentials builds a credentials sign-in method.
func WithCredentials(email, password string) SignInMethod {
	return SignInMethod{Credentials: &CredentialsSignIn{Email: email, Password: password}}
}

// WithProvider builds an external-provider sign-in method.
func WithProvider(identity ProviderSignIn) SignInMethod {
	return SignInMethod{Provider: &identity}
}
